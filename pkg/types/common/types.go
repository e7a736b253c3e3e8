// Package common defines shared primitive types used across the
// FireCircuit-Intelligence engine: identifiers, timestamps, severities, and
// generic API/batch envelopes.  No business logic lives here.
package common

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ID is a string alias for UUID v4.
type ID string

// Metadata is an open-ended key-value bag reserved for vendor extensions.
// The engine itself never reasons about Metadata contents; typed fields on
// the owning structs carry everything the core logic reads.
type Metadata map[string]interface{}

// NewID returns a freshly generated UUID v4 ID.
func NewID() ID {
	return ID(uuid.New().String())
}

// GenerateID generates a unique identifier with an optional prefix, e.g.
// GenerateID("issue") -> "issue-5f3c...".
func GenerateID(prefix string) string {
	if prefix == "" {
		return uuid.New().String()
	}
	return fmt.Sprintf("%s-%s", prefix, uuid.New().String())
}

// Severity ranks validation findings.  Ordering matters: higher values are
// more severe, and a result is "valid" iff it carries nothing at or above
// SeverityError.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
	SeverityCritical
)

var severityNames = map[Severity]string{
	SeverityInfo:     "info",
	SeverityWarning:  "warning",
	SeverityError:    "error",
	SeverityCritical: "critical",
}

func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return fmt.Sprintf("severity(%d)", int(s))
}

// Blocking reports whether a finding of this severity blocks acceptance of
// the validated subject.
func (s Severity) Blocking() bool {
	return s >= SeverityError
}

// MarshalJSON encodes the severity as its lowercase name.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a lowercase severity name.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for sev, n := range severityNames {
		if n == name {
			*s = sev
			return nil
		}
	}
	return fmt.Errorf("common: unknown severity %q", name)
}

// Timestamp is a time.Time alias with ISO 8601 JSON serialization.
type Timestamp time.Time

// NewTimestamp returns the current UTC time as a Timestamp.
func NewTimestamp() Timestamp {
	return Timestamp(time.Now().UTC())
}

// Time converts the Timestamp back to a time.Time.
func (t Timestamp) Time() time.Time {
	return time.Time(t)
}

// MarshalJSON implements json.Marshaler, using RFC 3339 format.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(t).Format(time.RFC3339Nano))
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		parsed, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return err
		}
	}
	*t = Timestamp(parsed)
	return nil
}

// ErrorDetail provides structured error information for API responses.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// APIResponse is the generic wrapper for all API responses.
type APIResponse[T any] struct {
	Success   bool         `json:"success"`
	Data      T            `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	RequestID string       `json:"request_id"`
	Timestamp Timestamp    `json:"timestamp"`
}

// NewSuccessResponse creates a successful APIResponse.
func NewSuccessResponse[T any](data T) APIResponse[T] {
	return APIResponse[T]{
		Success:   true,
		Data:      data,
		RequestID: GenerateID("req"),
		Timestamp: NewTimestamp(),
	}
}

// NewErrorResponse creates a failed APIResponse carrying an ErrorDetail.
func NewErrorResponse[T any](code, message, detail string) APIResponse[T] {
	return APIResponse[T]{
		Success:   false,
		Error:     &ErrorDetail{Code: code, Message: message, Detail: detail},
		RequestID: GenerateID("req"),
		Timestamp: NewTimestamp(),
	}
}

// BatchError describes a single failed item in a batch operation.
type BatchError struct {
	Index int         `json:"index"`
	Error ErrorDetail `json:"error"`
}

// BatchSummary reports per-item outcomes of a batch operation.  Batch
// operations never abort wholesale on one item's failure; they account for
// it here instead.
type BatchSummary struct {
	TotalProcessed int          `json:"total_processed"`
	Succeeded      int          `json:"succeeded"`
	Failed         int          `json:"failed"`
	Errors         []BatchError `json:"errors,omitempty"`
}
