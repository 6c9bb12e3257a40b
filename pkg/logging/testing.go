package logging

import (
	"bufio"
	"bytes"
	"encoding/json"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

// Entry is one decoded JSON log line.
type Entry map[string]any

// Message returns the entry's message field.
func (e Entry) Message() string {
	msg, _ := e[zerolog.MessageFieldName].(string)
	return msg
}

// Recorder captures every log line written through its Logger.
type Recorder struct {
	Logger *zerolog.Logger

	mu  sync.Mutex
	buf bytes.Buffer
}

// Write implements io.Writer. Recorders are shared by concurrent workers.
func (r *Recorder) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.buf.Write(p)
}

// NewRecorder returns a Recorder logging at trace level. The global level
// is lowered for the test and restored on cleanup.
func NewRecorder(t testing.TB) *Recorder {
	t.Helper()

	level := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(level) })

	r := &Recorder{}
	logger := zerolog.New(r).Level(zerolog.TraceLevel).With().Timestamp().Logger()
	r.Logger = &logger
	return r
}

// RecordDefault installs a Recorder as the default logger for the test.
func RecordDefault(t testing.TB) *Recorder {
	t.Helper()

	original := *Default()
	r := NewRecorder(t)
	SetDefault(*r.Logger)
	t.Cleanup(func() { SetDefault(original) })
	return r
}

// Entries decodes the captured lines. Lines that are not JSON are skipped.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	data := bytes.Clone(r.buf.Bytes())
	r.mu.Unlock()

	var entries []Entry
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		var e Entry
		if json.Unmarshal(sc.Bytes(), &e) == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

// Find returns the entries whose message is msg.
func (r *Recorder) Find(msg string) []Entry {
	var out []Entry
	for _, e := range r.Entries() {
		if e.Message() == msg {
			out = append(out, e)
		}
	}
	return out
}

// Reset discards everything captured so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buf.Reset()
}
