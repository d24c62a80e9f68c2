package sheets

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/quake-damage-dashboard/internal/config"
	"github.com/couchcryptid/quake-damage-dashboard/internal/observability"
)

func TestNewLoader(t *testing.T) {
	base := config.Config{
		SheetID:      testSheetID,
		SheetBaseURL: DefaultBaseURL,
		SheetsRange:  "A:ZZ",
		FetchTimeout: time.Second,
	}

	t.Run("csv export by default", func(t *testing.T) {
		cfg := base
		loader, err := NewLoader(context.Background(), &cfg, discardLogger(), observability.NewMetricsForTesting())
		require.NoError(t, err)
		assert.IsType(t, &Client{}, loader)
	})

	t.Run("sheets api with key", func(t *testing.T) {
		cfg := base
		cfg.SheetsAPIKey = "test-key"
		loader, err := NewLoader(context.Background(), &cfg, discardLogger(), observability.NewMetricsForTesting())
		require.NoError(t, err)
		assert.IsType(t, &APIClient{}, loader)
	})

	t.Run("cache with positive ttl", func(t *testing.T) {
		cfg := base
		cfg.CacheTTL = time.Minute
		loader, err := NewLoader(context.Background(), &cfg, discardLogger(), observability.NewMetricsForTesting())
		require.NoError(t, err)
		assert.IsType(t, &CachedLoader{}, loader)
	})
}
