// Package notify is the transient user-notification surface, the analog
// of the storefront's toast messages. State services emit through it;
// the binary wires a log-backed implementation and tests wire a recorder.
package notify

import (
	"sync"

	"nothingelse-storefront/pkg/logger"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelError   Level = "error"
)

// Notifier delivers transient user-facing messages.
type Notifier interface {
	Success(msg string)
	Info(msg string)
	Error(msg string)
}

// LogNotifier writes notifications to the structured log.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Success(msg string) {
	logger.Info().Str("notice", string(LevelSuccess)).Msg(msg)
}

func (n *LogNotifier) Info(msg string) {
	logger.Info().Str("notice", string(LevelInfo)).Msg(msg)
}

func (n *LogNotifier) Error(msg string) {
	logger.Error().Str("notice", string(LevelError)).Msg(msg)
}

// Notice is one recorded notification.
type Notice struct {
	Level   Level
	Message string
}

// Recorder captures notifications for assertions in tests.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Success(msg string) { r.record(LevelSuccess, msg) }
func (r *Recorder) Info(msg string)    { r.record(LevelInfo, msg) }
func (r *Recorder) Error(msg string)   { r.record(LevelError, msg) }

func (r *Recorder) record(level Level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, Notice{Level: level, Message: msg})
}

// Notices returns a copy of everything recorded so far.
func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notice, len(r.notices))
	copy(out, r.notices)
	return out
}

// Last returns the most recent notice, if any.
func (r *Recorder) Last() (Notice, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notices) == 0 {
		return Notice{}, false
	}
	return r.notices[len(r.notices)-1], true
}
