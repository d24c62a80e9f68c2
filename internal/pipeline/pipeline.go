package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/quake-damage-dashboard/internal/domain"
	"github.com/couchcryptid/quake-damage-dashboard/internal/observability"
)

// Publisher hands a finished report to a downstream consumer.
type Publisher interface {
	Publish(ctx context.Context, report domain.Report) error
}

// Pipeline runs load → resolve → normalize → filter → aggregate once per
// call. Runs share nothing but metrics and the readiness flag.
type Pipeline struct {
	loader    domain.TableLoader
	publisher Publisher
	logger    *slog.Logger
	metrics   *observability.Metrics
	ready     atomic.Bool
}

// New creates a Pipeline. Pass a nil publisher to skip snapshot publishing.
func New(loader domain.TableLoader, publisher Publisher, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		loader:    loader,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
	}
}

// CheckReadiness returns nil once a report has been built from the sheet,
// or an error describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("no report has been built from the sheet yet")
	}
	return nil
}

// Run fetches the sheet and builds the report for filter. A fetch failure is
// returned as a *domain.FetchError and a missing column as a
// *domain.ColumnNotFoundError; no partial report is produced in either case.
func (p *Pipeline) Run(ctx context.Context, filter domain.Filter) (domain.Report, error) {
	table, err := p.load(ctx)
	if err != nil {
		p.metrics.Renders.WithLabelValues("fetch_error").Inc()
		p.logger.Error("load sheet failed", "error", err)
		return domain.Report{}, err
	}

	report, err := domain.BuildReport(table, filter)
	if err != nil {
		p.metrics.Renders.WithLabelValues("column_error").Inc()
		p.logger.Error("build report failed", "error", err, "sheet_id", table.SheetID, "columns", len(table.Header))
		return domain.Report{}, err
	}

	p.metrics.EntriesCreated.Observe(float64(report.EntryCount))
	p.metrics.Renders.WithLabelValues("success").Inc()
	p.ready.Store(true)

	p.logger.Debug("report built",
		"sheet_id", report.SheetID,
		"rows", report.RecordCount,
		"entries", report.EntryCount,
		"view", report.ViewCount,
		"room_query", filter.RoomQuery,
	)

	p.publish(ctx, report)
	return report, nil
}

func (p *Pipeline) load(ctx context.Context) (domain.Table, error) {
	start := time.Now()
	table, err := p.loader.Load(ctx)
	p.metrics.FetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		p.metrics.FetchRequests.WithLabelValues("error").Inc()
		return domain.Table{}, err
	}
	p.metrics.FetchRequests.WithLabelValues("success").Inc()
	p.metrics.RowsFetched.Observe(float64(len(table.Records)))
	return table, nil
}

// publish sends the snapshot if a publisher is configured. Failures are
// logged and counted; they never fail the render.
func (p *Pipeline) publish(ctx context.Context, report domain.Report) {
	if p.publisher == nil {
		return
	}
	if err := p.publisher.Publish(ctx, report); err != nil {
		p.metrics.PublishErrors.Inc()
		p.logger.Warn("publish report failed", "error", err, "sheet_id", report.SheetID)
		return
	}
	p.metrics.ReportsPublished.Inc()
}
