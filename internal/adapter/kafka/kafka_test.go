package kafka

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/quake-damage-dashboard/internal/config"
	"github.com/couchcryptid/quake-damage-dashboard/internal/domain"
)

func exampleReport(now time.Time) domain.Report {
	return domain.Report{
		SheetID:     "sheet-1",
		GeneratedAt: now,
		Filter:      domain.Filter{RoomQuery: "12", DamageTypes: []string{"ผนังร้าว"}},
		RecordCount: 4,
		EntryCount:  6,
		ViewCount:   2,
		Frequencies: domain.FrequencySummary{{DamageType: "ผนังร้าว", Count: 2}},
		TopRooms:    domain.RoomSummary{{Room: "1205", Count: 2}},
		Links:       []domain.LinkRow{{Room: "1205", DamageType: "ผนังร้าว"}},
		Entries:     []domain.NormalizedEntry{{Room: "1205", DamageType: "ผนังร้าว"}},
	}
}

func TestSerializeToMessage(t *testing.T) {
	now := time.Date(2025, 3, 28, 14, 0, 0, 0, time.UTC)

	msg, err := serializeToMessage(exampleReport(now))
	require.NoError(t, err)

	assert.Equal(t, []byte("sheet-1"), msg.Key)
	assert.Len(t, msg.Headers, 2)
	assert.Equal(t, "sheet_id", msg.Headers[0].Key)
	assert.Equal(t, []byte("sheet-1"), msg.Headers[0].Value)
	assert.Equal(t, "generated_at", msg.Headers[1].Key)
	assert.Equal(t, []byte(now.Format(time.RFC3339)), msg.Headers[1].Value)

	var snap Snapshot
	require.NoError(t, json.Unmarshal(msg.Value, &snap))
	assert.Equal(t, "12", snap.Filter.RoomQuery)
	assert.Equal(t, []string{"ผนังร้าว"}, snap.Filter.DamageTypes)
	assert.Equal(t, 6, snap.EntryCount)
	assert.Equal(t, 2, snap.ViewCount)
	assert.Equal(t, domain.RoomSummary{{Room: "1205", Count: 2}}, snap.TopRooms)
	assert.True(t, now.Equal(snap.GeneratedAt))
}

func TestSerializeToMessage_OmitsRowLevelData(t *testing.T) {
	msg, err := serializeToMessage(exampleReport(time.Now()))
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &body))
	assert.NotContains(t, body, "links")
	assert.NotContains(t, body, "entries")
	assert.NotContains(t, body, "columns")
}

func TestNewPublisher(t *testing.T) {
	cfg := &config.Config{KafkaBrokers: []string{"localhost:9092"}, KafkaReportTopic: "reports"}
	p := NewPublisher(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Equal(t, "reports", p.writer.Topic)
	assert.NoError(t, p.Close())
}
