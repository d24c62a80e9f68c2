package sheets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"time"

	"github.com/couchcryptid/quake-damage-dashboard/internal/domain"
)

var errExportHTML = errors.New("export returned HTML instead of CSV; is the sheet shared for viewing?")

const (
	// DefaultBaseURL serves the public CSV export of shared sheets.
	DefaultBaseURL = "https://docs.google.com"

	maxErrorBody = 512
)

// Client implements domain.TableLoader using the sheet's CSV export endpoint.
// The sheet must be shared with "anyone with the link" viewer access.
type Client struct {
	sheetID    string
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates a CSV export client for one sheet.
func NewClient(sheetID, baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		sheetID: sheetID,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		logger:  logger,
	}
}

// SheetID returns the sheet this client reads.
func (c *Client) SheetID() string { return c.sheetID }

// ExportURL returns the CSV export URL for the client's sheet.
func (c *Client) ExportURL() string {
	return fmt.Sprintf("%s/spreadsheets/d/%s/export?format=csv", c.baseURL, url.PathEscape(c.sheetID))
}

// Load downloads and parses the whole sheet.
func (c *Client) Load(ctx context.Context) (domain.Table, error) {
	header, records, err := c.fetch(ctx)
	if err != nil {
		return domain.Table{}, &domain.FetchError{SheetID: c.sheetID, Err: err}
	}
	c.logger.Debug("sheet downloaded", "sheet_id", c.sheetID, "columns", len(header), "rows", len(records))
	return domain.Table{SheetID: c.sheetID, Header: header, Records: records}, nil
}

func (c *Client) fetch(ctx context.Context) ([]string, []domain.RawRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ExportURL(), nil)
	if err != nil {
		return nil, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("export request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, nil, fmt.Errorf("export error: status %d: %s", resp.StatusCode, body)
	}

	// Private sheets answer 200 with the Google sign-in page.
	if mt, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type")); err == nil && mt == "text/html" {
		return nil, nil, errExportHTML
	}

	return parseCSV(resp.Body)
}
