package server

import (
	"fmt"
	"time"

	"github.com/kavehsim/lumensim/pkg/simulator"
)

// ConsoleMessage is one timestamped log line destined for the browser's
// console panel.
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`
}

// WebLogger implements simulator.Logger by fanning every Printf call out to
// both stdout and a per-connection console channel, so a browser client can
// watch the same diagnostics an operator would see on stdout.
type WebLogger struct {
	sessionID   string
	consoleChan chan<- ConsoleMessage
}

// NewWebLogger creates a logger scoped to one SSE connection.
func NewWebLogger(sessionID string, consoleChan chan<- ConsoleMessage) simulator.Logger {
	return &WebLogger{sessionID: sessionID, consoleChan: consoleChan}
}

// Printf implements simulator.Logger.
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	fmt.Print(message)

	if wl.consoleChan == nil {
		return
	}
	select {
	case wl.consoleChan <- ConsoleMessage{Message: message, Timestamp: time.Now(), Level: "info"}:
	default:
	}
}
