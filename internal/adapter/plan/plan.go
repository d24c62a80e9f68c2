// Package plan reads the repair-plan timeline exported from the residents'
// meeting. The file is a standalone HTML Gantt chart embedded verbatim.
package plan

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/couchcryptid/quake-damage-dashboard/internal/observability"
)

// DefaultFile is the timeline file expected in the working directory.
const DefaultFile = "meeting_plan_gantt_updated.html"

// FrameHeight is the fixed height, in pixels, of the embedded timeline panel.
const FrameHeight = 600

// Plan is the content of the plan tab. Exactly one of HTML and Warning is set.
type Plan struct {
	HTML    string
	Height  int
	Warning string
}

// Available reports whether the timeline was read.
func (p Plan) Available() bool { return p.Warning == "" }

// Reader loads the timeline file on every call so edits show up without a
// restart.
type Reader struct {
	path    string
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewReader creates a Reader for path relative to the working directory, or
// absolute.
func NewReader(path string, logger *slog.Logger, metrics *observability.Metrics) *Reader {
	if path == "" {
		path = DefaultFile
	}
	return &Reader{path: path, logger: logger, metrics: metrics}
}

// Read returns the timeline. A missing or unreadable file yields a Plan with
// a warning instead of an error; the rest of the page renders regardless.
func (r *Reader) Read() Plan {
	data, err := os.ReadFile(r.path)
	if err == nil {
		return Plan{HTML: string(data), Height: FrameHeight}
	}

	r.metrics.PlanMissing.Inc()
	if errors.Is(err, fs.ErrNotExist) {
		r.logger.Warn("plan file not found", "path", r.path)
		return Plan{Warning: fmt.Sprintf("ไม่พบไฟล์ Gantt Chart: กรุณาวาง '%s' ไว้ในโฟลเดอร์เดียวกัน", r.path)}
	}
	r.logger.Warn("plan file unreadable", "path", r.path, "error", err)
	return Plan{Warning: fmt.Sprintf("อ่านไฟล์ Gantt Chart '%s' ไม่สำเร็จ: %v", r.path, err)}
}
