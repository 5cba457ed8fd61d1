package notifyfake

import (
	"sync"

	"github.com/jrsteele09/go-budget-console/notify"
)

var _ notify.Notifier = (*Recorder)(nil)

type Message struct {
	Level notify.Level
	Text  string
}

// Recorder keeps every notification for assertions
type Recorder struct {
	mu       sync.Mutex
	messages []Message
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Error(msg string)   { r.add(notify.LevelError, msg) }
func (r *Recorder) Warning(msg string) { r.add(notify.LevelWarning, msg) }
func (r *Recorder) Info(msg string)    { r.add(notify.LevelInfo, msg) }

func (r *Recorder) add(level notify.Level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, Message{Level: level, Text: msg})
}

func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.messages...)
}

// Last returns the most recent message or false when none was sent
func (r *Recorder) Last() (Message, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.messages) == 0 {
		return Message{}, false
	}
	return r.messages[len(r.messages)-1], true
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = nil
}
