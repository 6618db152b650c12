package logging

import "sync"

// MockEntry records a single logged message for later inspection in tests.
type MockEntry struct {
	Level   string
	Message string
	Fields  []Field
}

// MockLogger is a Logger implementation that records entries instead of
// emitting them. It is safe for concurrent use.
type MockLogger struct {
	mu      sync.Mutex
	entries []MockEntry
	fields  []Field
}

// NewMockLogger creates an empty MockLogger.
func NewMockLogger() *MockLogger {
	return &MockLogger{}
}

// Entries returns a copy of everything logged so far.
func (m *MockLogger) Entries() []MockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

// HasMessage reports whether any entry carries the given message.
func (m *MockLogger) HasMessage(msg string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.entries {
		if e.Message == msg {
			return true
		}
	}
	return false
}

func (m *MockLogger) record(level, msg string, fields []Field) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := make([]Field, 0, len(m.fields)+len(fields))
	all = append(all, m.fields...)
	all = append(all, fields...)
	m.entries = append(m.entries, MockEntry{Level: level, Message: msg, Fields: all})
}

func (m *MockLogger) Debug(msg string, fields ...Field) { m.record("debug", msg, fields) }
func (m *MockLogger) Info(msg string, fields ...Field)  { m.record("info", msg, fields) }
func (m *MockLogger) Warn(msg string, fields ...Field)  { m.record("warn", msg, fields) }
func (m *MockLogger) Error(msg string, fields ...Field) { m.record("error", msg, fields) }

// Fatal records the message without exiting so tests can assert on it.
func (m *MockLogger) Fatal(msg string, fields ...Field) { m.record("fatal", msg, fields) }

func (m *MockLogger) Fatalf(msg string, args ...interface{}) { m.record("fatal", msg, nil) }

func (m *MockLogger) WithError(err error) Logger {
	return m.WithField(FieldError, err)
}

func (m *MockLogger) WithField(key string, value interface{}) Logger {
	return m.WithFields(Field{Key: key, Value: value})
}

func (m *MockLogger) WithFields(fields ...Field) Logger {
	merged := make([]Field, 0, len(m.fields)+len(fields))
	merged = append(merged, m.fields...)
	merged = append(merged, fields...)
	return &sharedMockLogger{root: m, fields: merged}
}

// sharedMockLogger forwards records to the root mock so entries accumulate in
// one place regardless of how many With* derivations were made.
type sharedMockLogger struct {
	root   *MockLogger
	fields []Field
}

func (s *sharedMockLogger) record(level, msg string, fields []Field) {
	all := make([]Field, 0, len(s.fields)+len(fields))
	all = append(all, s.fields...)
	all = append(all, fields...)
	s.root.record(level, msg, all)
}

func (s *sharedMockLogger) Debug(msg string, fields ...Field) { s.record("debug", msg, fields) }
func (s *sharedMockLogger) Info(msg string, fields ...Field)  { s.record("info", msg, fields) }
func (s *sharedMockLogger) Warn(msg string, fields ...Field)  { s.record("warn", msg, fields) }
func (s *sharedMockLogger) Error(msg string, fields ...Field) { s.record("error", msg, fields) }
func (s *sharedMockLogger) Fatal(msg string, fields ...Field) { s.record("fatal", msg, fields) }
func (s *sharedMockLogger) Fatalf(msg string, args ...interface{}) {
	s.record("fatal", msg, nil)
}

func (s *sharedMockLogger) WithError(err error) Logger {
	return s.WithField(FieldError, err)
}

func (s *sharedMockLogger) WithField(key string, value interface{}) Logger {
	return s.WithFields(Field{Key: key, Value: value})
}

func (s *sharedMockLogger) WithFields(fields ...Field) Logger {
	merged := make([]Field, 0, len(s.fields)+len(fields))
	merged = append(merged, s.fields...)
	merged = append(merged, fields...)
	return &sharedMockLogger{root: s.root, fields: merged}
}
