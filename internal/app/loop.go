package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	statepkg "github.com/kk-code-lab/clipfrag/internal/state"
	inputui "github.com/kk-code-lab/clipfrag/internal/ui/input"
)

// ErrInputClosed is returned when command input ends before the session does.
var ErrInputClosed = errors.New("command input closed")

// Run drives the session until it reaches a terminal phase. Interrupts surface
// as ctx.Err() and leave the clipboard as it was.
func (app *Application) Run(ctx context.Context) error {
	if err := app.renderer.Encoding(app.session.Encoding); err != nil {
		return err
	}
	if _, err := app.reducer.Reduce(app.session, statepkg.StartAction{}); err != nil {
		return err
	}

	for !app.session.Terminal() {
		if err := app.renderer.Render(app.session); err != nil {
			return err
		}

		action, err := app.input.Next(ctx)
		switch {
		case errors.Is(err, inputui.ErrInvalidCommand):
			if err := app.renderer.Invalid(); err != nil {
				return err
			}
			continue
		case errors.Is(err, io.EOF):
			return ErrInputClosed
		case err != nil:
			if ctx.Err() != nil {
				app.log.Debug("Session interrupted", zap.String("session", app.session.ID), zap.Stringer("phase", app.session.Phase))
				return ctx.Err()
			}
			return fmt.Errorf("unable to read command: %w", err)
		}

		if _, err := app.reducer.Reduce(app.session, action); err != nil {
			return err
		}
	}

	app.log.Debug("Session finished", zap.String("session", app.session.ID), zap.Stringer("phase", app.session.Phase))
	return nil
}
