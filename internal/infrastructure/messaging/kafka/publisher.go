// Package kafka publishes circuit validation findings to a Kafka topic so
// downstream design tooling can react to capacity problems without polling
// the API.
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/turtacn/FireCircuit-Intelligence/internal/config"
	"github.com/turtacn/FireCircuit-Intelligence/internal/domain/validation"
	"github.com/turtacn/FireCircuit-Intelligence/internal/infrastructure/monitoring/logging"
	apperrors "github.com/turtacn/FireCircuit-Intelligence/pkg/errors"
	"github.com/turtacn/FireCircuit-Intelligence/pkg/types/common"
)

// IssueEvent is the wire payload for one validated circuit.  Events are
// keyed by circuit ID so all findings for a circuit land on one partition
// in order.
type IssueEvent struct {
	EventID    string             `json:"event_id"`
	CircuitID  string             `json:"circuit_id"`
	Kind       string             `json:"kind"` // "branch" or "power_supply"
	Worst      common.Severity    `json:"worst_severity"`
	Issues     []validation.Issue `json:"issues"`
	OccurredAt time.Time          `json:"occurred_at"`
}

// IssuePublisher delivers validation findings to interested consumers.
type IssuePublisher interface {
	PublishIssues(ctx context.Context, event IssueEvent) error
	Close() error
}

type publisher struct {
	writer *kafka.Writer
	log    logging.Logger
}

// NewPublisher builds a Kafka-backed IssuePublisher.  When kafka is
// disabled in configuration a no-op publisher is returned so callers never
// branch on the setting.
func NewPublisher(cfg config.KafkaConfig, log logging.Logger) IssuePublisher {
	if !cfg.Enabled {
		return NopPublisher{}
	}
	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: cfg.BatchTimeout,
		RequiredAcks: kafka.RequireOne,
	}
	return &publisher{
		writer: w,
		log:    log.Named("kafka_publisher"),
	}
}

func (p *publisher) PublishIssues(ctx context.Context, event IssueEvent) error {
	if len(event.Issues) == 0 {
		return nil
	}
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeSerialization, "encode issue event")
	}
	msg := kafka.Message{
		Key:   []byte(event.CircuitID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "kind", Value: []byte(event.Kind)},
			{Key: "severity", Value: []byte(event.Worst.String())},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Error("publish validation issues failed",
			logging.String("circuit_id", event.CircuitID), logging.Err(err))
		return apperrors.Wrap(err, apperrors.ErrCodeServiceUnavailable, "publish issue event")
	}
	p.log.Debug("published validation issues",
		logging.String("circuit_id", event.CircuitID),
		logging.Int("issues", len(event.Issues)))
	return nil
}

func (p *publisher) Close() error {
	return p.writer.Close()
}

// NopPublisher discards every event.  Used when kafka is disabled and in
// tests.
type NopPublisher struct{}

func (NopPublisher) PublishIssues(context.Context, IssueEvent) error { return nil }
func (NopPublisher) Close() error                                    { return nil }
