package viewer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/torcrun/torc/internal/storage"
)

func TestView_NoFailuresReturnsWithoutStartingApp(t *testing.T) {
	v := New()
	err := v.View(&storage.RunRecord{RunID: "run-1", TotalTests: 3, PassedTests: 3})
	assert.NoError(t, err)
}

func TestFormatFailureDetails_IncludesMessageAndTruncatesStack(t *testing.T) {
	stack := ""
	for i := 0; i < 15; i++ {
		stack += "frame\n"
	}
	f := storage.FailureDetail{File: "a.test.ts", Title: "does a thing", Message: "boom", Stack: stack}

	out := formatFailureDetails(f)
	assert.Contains(t, out, "does a thing")
	assert.Contains(t, out, "boom")
	assert.Contains(t, out, "more lines")
}

func TestFormatFailureStats_FallsBackWhenTitleMissing(t *testing.T) {
	out := formatFailureStats(storage.FailureDetail{}, 2)
	assert.Contains(t, out, "unknown path")
	assert.Contains(t, out, "Test 2")
}
