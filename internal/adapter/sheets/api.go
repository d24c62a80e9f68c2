package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	"github.com/couchcryptid/quake-damage-dashboard/internal/domain"
)

// APIClient implements domain.TableLoader through the Sheets v4 values API
// with an API key. It reads the same viewer-shared sheet as Client but is not
// subject to the export endpoint's redirects and rate limiting.
type APIClient struct {
	sheetID   string
	readRange string
	timeout   time.Duration
	service   *gsheets.Service
	logger    *slog.Logger
}

// NewAPIClient creates a Sheets API client. Extra options are appended after
// the API key, which lets tests point the client at a local endpoint.
func NewAPIClient(ctx context.Context, sheetID, readRange, apiKey string, timeout time.Duration, logger *slog.Logger, opts ...option.ClientOption) (*APIClient, error) {
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := gsheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &APIClient{
		sheetID:   sheetID,
		readRange: readRange,
		timeout:   timeout,
		service:   svc,
		logger:    logger,
	}, nil
}

// SheetID returns the sheet this client reads.
func (c *APIClient) SheetID() string { return c.sheetID }

// Load reads the configured range. The first row is the header.
func (c *APIClient) Load(ctx context.Context) (domain.Table, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.service.Spreadsheets.Values.Get(c.sheetID, c.readRange).Context(ctx).Do()
	if err != nil {
		return domain.Table{}, &domain.FetchError{SheetID: c.sheetID, Err: fmt.Errorf("values get: %w", err)}
	}
	if len(resp.Values) == 0 {
		return domain.Table{}, &domain.FetchError{SheetID: c.sheetID, Err: errEmptySheet}
	}

	header := make([]string, len(resp.Values[0]))
	for i, v := range resp.Values[0] {
		header[i] = fmt.Sprint(v)
	}

	records := make([]domain.RawRecord, 0, len(resp.Values)-1)
	for _, row := range resp.Values[1:] {
		rec := make(domain.RawRecord, len(row))
		for i, v := range row {
			if v == nil {
				continue
			}
			rec[i] = cell(fmt.Sprint(v))
		}
		records = append(records, rec)
	}

	c.logger.Debug("sheet values read", "sheet_id", c.sheetID, "range", resp.Range, "rows", len(records))
	return domain.Table{SheetID: c.sheetID, Header: header, Records: records}, nil
}
