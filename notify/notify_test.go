package notify_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/jrsteele09/go-budget-console/notify"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
)

func TestConsole(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsole(&buf, false)

	c.Error(notify.MsgSessionExpired)
	c.Warning(notify.MsgNoRoutePermission)
	c.Info("logged in")

	require.Equal(t,
		" error   "+" "+notify.MsgSessionExpired+"\n"+
			" warning "+" "+notify.MsgNoRoutePermission+"\n"+
			" info    "+" logged in\n",
		buf.String())
}

func TestConsoleColour(t *testing.T) {
	var buf bytes.Buffer
	notify.NewConsole(&buf, true).Error("boom")
	require.Contains(t, buf.String(), "\033[7;31m")
	require.Contains(t, buf.String(), "boom")
}

func TestLog(t *testing.T) {
	var buf bytes.Buffer
	previous := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = previous })

	n := notify.NewLog()
	n.Error(notify.MsgSessionExpired)
	n.Warning(notify.MsgNoRoutePermission)
	n.Info("logged in")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)

	want := []map[string]string{
		{"level": "error", "notify": "error", "message": notify.MsgSessionExpired},
		{"level": "warn", "notify": "warning", "message": notify.MsgNoRoutePermission},
		{"level": "info", "notify": "info", "message": "logged in"},
	}
	for i, line := range lines {
		var got map[string]string
		require.NoError(t, json.Unmarshal([]byte(line), &got))
		require.Equal(t, want[i], got)
	}
}
