package common

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID_Unique(t *testing.T) {
	a := NewID()
	b := NewID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestGenerateID_Prefix(t *testing.T) {
	id := GenerateID("issue")
	assert.True(t, strings.HasPrefix(id, "issue-"))
	assert.NotEqual(t, id, GenerateID("issue"))
}

func TestSeverity_Ordering(t *testing.T) {
	assert.True(t, SeverityInfo < SeverityWarning)
	assert.True(t, SeverityWarning < SeverityError)
	assert.True(t, SeverityError < SeverityCritical)
}

func TestSeverity_Blocking(t *testing.T) {
	assert.False(t, SeverityInfo.Blocking())
	assert.False(t, SeverityWarning.Blocking())
	assert.True(t, SeverityError.Blocking())
	assert.True(t, SeverityCritical.Blocking())
}

func TestSeverity_JSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(SeverityWarning)
	require.NoError(t, err)
	assert.Equal(t, `"warning"`, string(data))

	var s Severity
	require.NoError(t, json.Unmarshal([]byte(`"critical"`), &s))
	assert.Equal(t, SeverityCritical, s)

	assert.Error(t, json.Unmarshal([]byte(`"fatal"`), &s))
}

func TestTimestamp_JSONRoundTrip(t *testing.T) {
	orig := Timestamp(time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC))
	data, err := json.Marshal(orig)
	require.NoError(t, err)

	var decoded Timestamp
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, orig.Time().Equal(decoded.Time()))
}

func TestNewSuccessResponse(t *testing.T) {
	resp := NewSuccessResponse("payload")
	assert.True(t, resp.Success)
	assert.Equal(t, "payload", resp.Data)
	assert.Nil(t, resp.Error)
	assert.NotEmpty(t, resp.RequestID)
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse[any]("CLS_001", "cannot classify", "family=XQZ-900")
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "CLS_001", resp.Error.Code)
	assert.Equal(t, "family=XQZ-900", resp.Error.Detail)
}
