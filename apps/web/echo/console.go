package echoweb

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/console"
)

type consoleUI struct {
	logger core.Logger
}

// workspace returns the session workspace with its student list loaded. A failed load is kept in
// the workspace state and shown on the page.
func (ui *consoleUI) workspace(ctx echo.Context) (*console.Workspace, error) {
	ws, err := getContextWorkspace(ctx)
	if err != nil {
		return nil, err
	}
	if err = ws.Load(ctx.Request().Context()); err != nil {
		ui.logger.Warn("loading students", err, getContextSession(ctx))
	}
	return ws, nil
}

func (ui *consoleUI) render(ctx echo.Context, ws *console.Workspace, code int) error {
	return ctx.Render(code, pageTemplate, newPageData(ws.Snapshot()))
}

func (ui *consoleUI) redirectHome(ctx echo.Context) error {
	return ctx.Redirect(http.StatusSeeOther, "/")
}

// settle answers a console action that returned `err`, calling `done` on success.
// Errors kept in the workspace state (invalid input, busy dialog, API failure) re-render the page;
// the others go to the HTTP error handler.
func (ui *consoleUI) settle(ctx echo.Context, ws *console.Workspace, err error, done func() error) error {
	if err == nil {
		return done()
	}

	switch cause := errors.Cause(err); cause {
	case console.ErrBusy:
		return ui.render(ctx, ws, http.StatusConflict)
	case console.ErrNotFound, console.ErrNotOpen, console.ErrNotLoaded:
		return err
	default:
		if _, ok := cause.(*core.ValidationError); ok {
			return ui.render(ctx, ws, http.StatusBadRequest)
		}
	}

	ui.logger.Warn("api call failed", err, getContextSession(ctx))
	return ui.render(ctx, ws, http.StatusBadGateway)
}

func paramID(ctx echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(ctx.Param(name))
	if err != nil || id <= 0 {
		return 0, errHttpNotFound
	}
	return id, nil
}
