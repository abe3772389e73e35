package runner

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/Yogerlan/json-decoder/internal/fragment"
)

// runTrace writes debug details for one decode run, tagged with a run ID so
// traces from repeated invocations can be told apart.
type runTrace struct {
	enabled bool
	id      string
	out     io.Writer
}

func (r *Runner) newTrace() *runTrace {
	t := &runTrace{enabled: r.config.Debug, out: r.stderr}
	if t.enabled {
		t.id = uuid.New().String()
		t.printf("input=%s format=%s max-depth=%d", displayName(r.config.InputFile), r.config.Format, r.config.MaxDepth)
	}
	return t
}

func (t *runTrace) printf(format string, a ...any) {
	if !t.enabled {
		return
	}
	fmt.Fprintf(t.out, "[jd %s] %s\n", t.id, fmt.Sprintf(format, a...))
}

func (t *runTrace) table(table *fragment.Table) {
	t.printf("table built: %d slots (%d base, %d overrides)", table.Len(), table.BaseLen(), table.Overrides())
}

func (t *runTrace) decoded(elapsed time.Duration) {
	t.printf("decoded in %s", elapsed)
}

func (t *runTrace) matched(expr string, count int) {
	t.printf("query %s matched %d value(s)", expr, count)
}

func displayName(inputFile string) string {
	if inputFile == "" {
		return "<stdin>"
	}
	return inputFile
}
