package peer

import (
	"context"
	"errors"

	"github.com/MKhiriev/bucket-sync/internal/logger"
	"github.com/MKhiriev/bucket-sync/internal/tui"
)

// errUIClosed stops the remaining workers once the monitor has exited.
var errUIClosed = errors.New("monitor closed")

type monitor interface {
	Run(ctx context.Context, source tui.StatusSource) error
}

// uiWorker runs the terminal monitor. Closing the monitor, by the user or by
// an honored auto-close request, ends the peer.
type uiWorker struct {
	ui     monitor
	source tui.StatusSource
}

func (w *uiWorker) Run(ctx context.Context) error {
	if err := w.ui.Run(ctx, w.source); err != nil {
		return err
	}
	if ctx.Err() != nil {
		return nil
	}
	return errUIClosed
}

// logReporter reports user-facing errors to the log when no monitor is shown.
type logReporter struct {
	logger *logger.Logger
}

func (r logReporter) ShowError(msg string) {
	r.logger.Error().Str("func", "logReporter.ShowError").Msg(msg)
}
