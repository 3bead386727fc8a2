// Package tui renders a terminal monitor for a running peer: the active
// buckets, the syncing state and link flags, and storage error messages.
// It also serves as the peer's UI closer and error reporter.
package tui

import (
	"context"
	"errors"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/bucket-sync/internal/logger"
	"github.com/MKhiriev/bucket-sync/models"
)

// StatusSource provides the snapshots the monitor renders.
type StatusSource interface {
	Status(ctx context.Context) (models.PeerStatus, error)
}

type TUI struct {
	buildInfo models.AppBuildInfo
	logger    *logger.Logger

	mu      sync.Mutex
	program *tea.Program
	closed  bool
	// queue holds messages not yet handed to the program, oldest first.
	queue []tea.Msg
	wake  chan struct{}
}

func New(buildInfo models.AppBuildInfo, logger *logger.Logger) *TUI {
	return &TUI{buildInfo: buildInfo, logger: logger, wake: make(chan struct{}, 1)}
}

// Run shows the monitor until the user quits, CloseAll is called or ctx is
// done.
func (t *TUI) Run(ctx context.Context, source StatusSource) error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		t.logger.Info().Str("func", "TUI.Run").Msg("UI closed before it was shown")
		return nil
	}
	model := newMonitorModel(ctx, source, t.buildInfo)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	t.program = program
	t.mu.Unlock()

	done := make(chan struct{})
	forwarded := make(chan struct{})
	go func() {
		defer close(forwarded)
		t.forward(done, program.Send)
	}()
	t.signal()

	_, err := program.Run()
	close(done)
	<-forwarded

	t.mu.Lock()
	t.program = nil
	t.closed = true
	t.queue = nil
	t.mu.Unlock()

	if err != nil && !(errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil) {
		return err
	}
	return nil
}

// CloseAll quits the monitor.
func (t *TUI) CloseAll() {
	t.logger.Info().Str("func", "TUI.CloseAll").Msg("closing UI")
	t.send(closeAllMsg{}, true)
}

// ShowError displays msg in an overlay until dismissed.
func (t *TUI) ShowError(msg string) {
	t.logger.Warn().Str("func", "TUI.ShowError").Str("message", msg).Msg("showing error")
	t.send(showErrorMsg{message: msg}, false)
}

// send queues msg without blocking the caller, which is usually the peer's
// event loop. Messages sent before Run are delivered once the program
// starts; closing before Run cancels them.
func (t *TUI) send(msg tea.Msg, closing bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return
	}
	if t.program == nil && closing {
		t.closed = true
		t.queue = nil
		return
	}
	t.queue = append(t.queue, msg)
	t.signal()
}

func (t *TUI) signal() {
	select {
	case t.wake <- struct{}{}:
	default:
	}
}

// forward hands queued messages to deliver one at a time, in the order
// they were sent, until done is closed.
func (t *TUI) forward(done <-chan struct{}, deliver func(tea.Msg)) {
	for {
		select {
		case <-done:
			return
		case <-t.wake:
		}

		t.mu.Lock()
		batch := t.queue
		t.queue = nil
		t.mu.Unlock()

		for _, msg := range batch {
			select {
			case <-done:
				return
			default:
			}
			deliver(msg)
		}
	}
}
