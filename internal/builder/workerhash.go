package builder

import (
	"fmt"
	"hash/fnv"
	"sort"

	"github.com/torcrun/torc/internal/config"
)

// WorkerHash computes the opaque, stable identifier two tests must share
// to be eligible for the same worker process: it is a function only of
// the project's worker-scoped fixtures (identity, fixture params) and the
// repeatEach index.
func WorkerHash(project config.Project, repeatIdx int) string {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s\x00%d\x00", project.ID, repeatIdx)

	keys := make([]string, 0, len(project.Use))
	for k := range project.Use {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(h, "%s=%v\x00", k, project.Use[k])
	}

	return fmt.Sprintf("%x", h.Sum64())
}
