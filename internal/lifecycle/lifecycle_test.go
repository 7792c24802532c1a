package lifecycle

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePlugin struct {
	name       string
	setupErr   error
	torndown   *[]string
	teardownOK bool
}

func (p fakePlugin) Name() string { return p.name }
func (p fakePlugin) Setup(ctx context.Context) error { return p.setupErr }
func (p fakePlugin) Teardown(ctx context.Context) error {
	*p.torndown = append(*p.torndown, p.name)
	if !p.teardownOK {
		return fmt.Errorf("teardown failed: %s", p.name)
	}
	return nil
}

func TestLifecycle_PluginsTeardownInReverseOrder(t *testing.T) {
	var torndown []string
	l := &Lifecycle{Plugins: []Plugin{
		fakePlugin{name: "a", torndown: &torndown, teardownOK: true},
		fakePlugin{name: "b", torndown: &torndown, teardownOK: true},
	}}

	require.NoError(t, l.Setup(context.Background(), nil))

	var errs []error
	l.Teardown(context.Background(), func(err error) { errs = append(errs, err) })

	assert.Equal(t, []string{"b", "a"}, torndown)
	assert.Empty(t, errs)
}

func TestLifecycle_FailedPluginSetupStopsSetupButNotTeardownOfEarlierOnes(t *testing.T) {
	var torndown []string
	l := &Lifecycle{Plugins: []Plugin{
		fakePlugin{name: "a", torndown: &torndown, teardownOK: true},
		fakePlugin{name: "b", torndown: &torndown, setupErr: fmt.Errorf("boom")},
		fakePlugin{name: "c", torndown: &torndown, teardownOK: true},
	}}

	err := l.Setup(context.Background(), nil)
	require.Error(t, err)

	l.Teardown(context.Background(), func(error) {})
	// only "a" completed setup before "b" failed; "c" never ran.
	assert.Equal(t, []string{"a"}, torndown)
}

func TestLifecycle_TeardownNeverShortCircuits(t *testing.T) {
	var torndown []string
	l := &Lifecycle{
		Plugins: []Plugin{
			fakePlugin{name: "a", torndown: &torndown, teardownOK: false},
			fakePlugin{name: "b", torndown: &torndown, teardownOK: true},
		},
		GlobalTeardown: func(ctx context.Context) error { return fmt.Errorf("global teardown failed") },
	}
	require.NoError(t, l.Setup(context.Background(), nil))

	var errs []error
	l.Teardown(context.Background(), func(err error) { errs = append(errs, err) })

	assert.Equal(t, []string{"b", "a"}, torndown)
	assert.Len(t, errs, 2) // global teardown + plugin "a"
}

func TestLifecycle_GlobalSetupReturnedFuncRunsBeforeGlobalTeardown(t *testing.T) {
	var order []string
	l := &Lifecycle{
		GlobalSetup: func(ctx context.Context) (TeardownFunc, error) {
			return func(ctx context.Context) error {
				order = append(order, "setup-returned-fn")
				return nil
			}, nil
		},
		GlobalTeardown: func(ctx context.Context) error {
			order = append(order, "global-teardown")
			return nil
		},
	}
	require.NoError(t, l.Setup(context.Background(), nil))
	l.Teardown(context.Background(), func(error) {})

	assert.Equal(t, []string{"setup-returned-fn", "global-teardown"}, order)
}
