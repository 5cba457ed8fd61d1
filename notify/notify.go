// Package notify is the user-facing message channel. Callers fire and forget;
// rendering belongs to the implementation.
package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/jrsteele09/go-budget-console/internal/ui"
	"github.com/rs/zerolog/log"
)

type Level string

const (
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelInfo    Level = "info"
)

// User-facing messages raised by the core
const (
	MsgSessionExpired    = "Session expired, please log in again"
	MsgPermissionDenied  = "Permission denied"
	MsgRequestFailed     = "Request failed"
	MsgNetworkError      = "Network error, check the server connection"
	MsgNoRoutePermission = "You do not have permission to access this page"
	MsgAuthFailed        = "Authentication failed"
)

type Notifier interface {
	Error(msg string)
	Warning(msg string)
	Info(msg string)
}

var _ Notifier = (*Console)(nil)

// Console prints one line per message to w
type Console struct {
	mu     sync.Mutex
	w      io.Writer
	colour bool
}

func NewConsole(w io.Writer, colour bool) *Console {
	return &Console{w: w, colour: colour}
}

func (c *Console) Error(msg string) {
	c.write(LevelError, ui.RedInverse, msg)
}

func (c *Console) Warning(msg string) {
	c.write(LevelWarning, ui.YellowInverse, msg)
}

func (c *Console) Info(msg string) {
	c.write(LevelInfo, ui.CyanInverse, msg)
}

func (c *Console) write(level Level, colour, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	tag := ui.Colour(c.colour, colour, fmt.Sprintf(" %-7s ", level))
	if _, err := fmt.Fprintf(c.w, "%s %s\n", tag, msg); err != nil {
		log.Err(err).Msg("Failed to write notification")
	}
}

var _ Notifier = Log{}

// Log routes notifications to the global zerolog logger
type Log struct{}

func NewLog() Log {
	return Log{}
}

func (Log) Error(msg string) {
	log.Error().Str("notify", string(LevelError)).Msg(msg)
}

func (Log) Warning(msg string) {
	log.Warn().Str("notify", string(LevelWarning)).Msg(msg)
}

func (Log) Info(msg string) {
	log.Info().Str("notify", string(LevelInfo)).Msg(msg)
}
