package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/quake-damage-dashboard/internal/config"
	"github.com/couchcryptid/quake-damage-dashboard/internal/domain"
)

// Publisher writes report snapshots to a Kafka topic.
// It implements pipeline.Publisher.
type Publisher struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewPublisher creates a Kafka producer for the configured report topic.
func NewPublisher(cfg *config.Config, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaReportTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{writer: w, logger: logger}
}

// Publish serializes report and writes it as a single message keyed by sheet ID,
// so snapshots of one sheet stay ordered on one partition.
func (p *Publisher) Publish(ctx context.Context, report domain.Report) error {
	msg, err := serializeToMessage(report)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write report snapshot: %w", err)
	}
	p.logger.Debug("report published", "topic", p.writer.Topic, "sheet_id", report.SheetID, "bytes", len(msg.Value))
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// Snapshot is the message body written for each report.
type Snapshot struct {
	SheetID     string                  `json:"sheet_id"`
	GeneratedAt time.Time               `json:"generated_at"`
	Filter      domain.Filter           `json:"filter"`
	RecordCount int                     `json:"record_count"`
	EntryCount  int                     `json:"entry_count"`
	ViewCount   int                     `json:"view_count"`
	Frequencies domain.FrequencySummary `json:"frequencies"`
	TopRooms    domain.RoomSummary      `json:"top_rooms"`
}

func newSnapshot(report domain.Report) Snapshot {
	return Snapshot{
		SheetID:     report.SheetID,
		GeneratedAt: report.GeneratedAt,
		Filter:      report.Filter,
		RecordCount: report.RecordCount,
		EntryCount:  report.EntryCount,
		ViewCount:   report.ViewCount,
		Frequencies: report.Frequencies,
		TopRooms:    report.TopRooms,
	}
}

// serializeToMessage marshals a report snapshot into a Kafka message.
func serializeToMessage(report domain.Report) (kafkago.Message, error) {
	data, err := json.Marshal(newSnapshot(report))
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize report snapshot: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(report.SheetID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "sheet_id", Value: []byte(report.SheetID)},
			{Key: "generated_at", Value: []byte(report.GeneratedAt.Format(time.RFC3339))},
		},
	}, nil
}
