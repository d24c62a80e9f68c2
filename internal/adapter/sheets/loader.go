package sheets

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/quake-damage-dashboard/internal/config"
	"github.com/couchcryptid/quake-damage-dashboard/internal/domain"
	"github.com/couchcryptid/quake-damage-dashboard/internal/observability"
)

// NewLoader picks the source for cfg: the Sheets API when an API key is set,
// the public CSV export otherwise. A positive CacheTTL wraps either in a
// CachedLoader.
func NewLoader(ctx context.Context, cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) (domain.TableLoader, error) {
	var loader domain.TableLoader
	if cfg.SheetsAPIKey != "" {
		client, err := NewAPIClient(ctx, cfg.SheetID, cfg.SheetsRange, cfg.SheetsAPIKey, cfg.FetchTimeout, logger)
		if err != nil {
			return nil, err
		}
		logger.Info("sheet source: sheets api", "sheet_id", cfg.SheetID, "range", cfg.SheetsRange)
		loader = client
	} else {
		client := NewClient(cfg.SheetID, cfg.SheetBaseURL, cfg.FetchTimeout, logger)
		logger.Info("sheet source: csv export", "sheet_id", cfg.SheetID, "url", client.ExportURL())
		loader = client
	}

	if cfg.CacheTTL > 0 {
		logger.Info("sheet cache enabled", "ttl", cfg.CacheTTL)
		loader = NewCachedLoader(loader, cfg.SheetID, cfg.CacheTTL, metrics)
	}
	return loader, nil
}
