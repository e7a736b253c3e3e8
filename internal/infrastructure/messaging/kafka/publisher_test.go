package kafka

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/FireCircuit-Intelligence/internal/config"
	"github.com/turtacn/FireCircuit-Intelligence/internal/domain/validation"
	"github.com/turtacn/FireCircuit-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FireCircuit-Intelligence/pkg/types/common"
)

func TestNewPublisher_DisabledReturnsNop(t *testing.T) {
	p := NewPublisher(config.KafkaConfig{Enabled: false}, logging.NewNopLogger())
	_, ok := p.(NopPublisher)
	assert.True(t, ok)
	assert.NoError(t, p.PublishIssues(context.Background(), IssueEvent{CircuitID: "nac-1"}))
	assert.NoError(t, p.Close())
}

func TestPublishIssues_EmptyEventSkipsDelivery(t *testing.T) {
	// No broker is reachable here; an event with no issues must return
	// before any write is attempted.
	p := NewPublisher(config.KafkaConfig{
		Enabled: true,
		Brokers: []string{"localhost:9092"},
		Topic:   "firecircuit.validation.issues",
	}, logging.NewNopLogger())
	defer p.Close()

	err := p.PublishIssues(context.Background(), IssueEvent{CircuitID: "nac-1"})
	assert.NoError(t, err)
}

func TestIssueEvent_WireFormat(t *testing.T) {
	event := IssueEvent{
		EventID:   "evt-1",
		CircuitID: "nac-4",
		Kind:      "branch",
		Worst:     common.SeverityWarning,
		Issues: []validation.Issue{
			validation.NewIssue(common.SeverityWarning, "CIR_002", "spare capacity exceeded"),
		},
	}
	payload, err := json.Marshal(event)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, "nac-4", decoded["circuit_id"])
	assert.Equal(t, "warning", decoded["worst_severity"])

	issues, ok := decoded["issues"].([]any)
	require.True(t, ok)
	require.Len(t, issues, 1)
}
