// Package testutil carries shared test doubles.  Production code must
// never import it.
package testutil

import (
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/turtacn/FireCircuit-Intelligence/internal/infrastructure/monitoring/logging"
)

// MockLogger is a testify mock of logging.Logger for tests that assert on
// logging behavior.  Set expectations with On("Warn", ...) as usual; With
// and Named return the receiver so chained calls keep recording on the
// same mock.
type MockLogger struct {
	mock.Mock
}

var _ logging.Logger = (*MockLogger)(nil)

func (m *MockLogger) Debug(msg string, fields ...logging.Field) { m.Called(msg, fields) }
func (m *MockLogger) Info(msg string, fields ...logging.Field)  { m.Called(msg, fields) }
func (m *MockLogger) Warn(msg string, fields ...logging.Field)  { m.Called(msg, fields) }
func (m *MockLogger) Error(msg string, fields ...logging.Field) { m.Called(msg, fields) }
func (m *MockLogger) Fatal(msg string, fields ...logging.Field) { m.Called(msg, fields) }

func (m *MockLogger) With(...logging.Field) logging.Logger { return m }
func (m *MockLogger) Named(string) logging.Logger          { return m }

// Entry is one captured log call.
type Entry struct {
	Level   string
	Message string
	Fields  []logging.Field
}

// RecordingLogger captures every entry for inspection without the
// expectation ceremony of MockLogger.  Safe for concurrent use.
type RecordingLogger struct {
	mu      sync.Mutex
	entries []Entry
}

var _ logging.Logger = (*RecordingLogger)(nil)

func (r *RecordingLogger) record(level, msg string, fields []logging.Field) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Level: level, Message: msg, Fields: fields})
}

func (r *RecordingLogger) Debug(msg string, fields ...logging.Field) { r.record("debug", msg, fields) }
func (r *RecordingLogger) Info(msg string, fields ...logging.Field)  { r.record("info", msg, fields) }
func (r *RecordingLogger) Warn(msg string, fields ...logging.Field)  { r.record("warn", msg, fields) }
func (r *RecordingLogger) Error(msg string, fields ...logging.Field) { r.record("error", msg, fields) }
func (r *RecordingLogger) Fatal(msg string, fields ...logging.Field) { r.record("fatal", msg, fields) }

func (r *RecordingLogger) With(...logging.Field) logging.Logger { return r }
func (r *RecordingLogger) Named(string) logging.Logger          { return r }

// Entries returns a copy of the captured entries.
func (r *RecordingLogger) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// MessagesAt returns the messages captured at the given level.
func (r *RecordingLogger) MessagesAt(level string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, e := range r.entries {
		if e.Level == level {
			out = append(out, e.Message)
		}
	}
	return out
}
