package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"overterm/internal/config"
	"overterm/internal/term"
)

// Bubble Tea messages

// logMsg carries one host log record queued by the slog sink.
type logMsg term.Message

// config watcher lifecycle
type watchStartedMsg struct{ w *config.Watcher }
type configChangedMsg struct{}

// LogQueue hands slog records from any goroutine to the program loop. It is
// drained by a subscription command, so logging from inside Update never
// blocks on the program.
type LogQueue chan term.Message

// NewLogQueue returns a queue holding up to n undelivered records.
func NewLogQueue(n int) LogQueue { return make(LogQueue, n) }

// Deliver enqueues m, dropping it when the queue is full. It matches
// sink.Deliver.
func (q LogQueue) Deliver(m term.Message) {
	select {
	case q <- m:
	default:
	}
}

func waitLogCmd(q LogQueue) tea.Cmd {
	return func() tea.Msg {
		if q == nil {
			return nil
		}
		m, ok := <-q
		if !ok {
			return nil
		}
		return logMsg(m)
	}
}

func startWatchCmd(path string) tea.Cmd {
	return func() tea.Msg {
		w, err := config.Watch(path)
		if err != nil {
			return nil
		}
		return watchStartedMsg{w: w}
	}
}

func watchSubscribeCmd(w *config.Watcher) tea.Cmd {
	return func() tea.Msg {
		if w == nil {
			return nil
		}
		if _, ok := <-w.C(); !ok {
			return nil
		}
		// let editors finish writing before reloading
		time.Sleep(120 * time.Millisecond)
		return configChangedMsg{}
	}
}
