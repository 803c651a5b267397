package echoweb

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func registerAttendanceRoutes(app *echo.Echo, ui *consoleUI) {
	app.GET("/students/:id/attendance", ui.openAttendance)
	app.POST("/attendance/close", ui.closeAttendance)
	app.GET("/attendance/:attendanceID/edit", ui.openStatusEdit)
	app.POST("/attendance/:attendanceID", ui.updateStatus)
	app.POST("/attendance/edit/close", ui.closeStatusEdit)
}

// Handlers

func (ui *consoleUI) openAttendance(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	ws, err := ui.workspace(ctx)
	if err != nil {
		return err
	}
	return ui.settle(ctx, ws, ws.OpenAttendance(ctx.Request().Context(), id), func() error {
		return ui.render(ctx, ws, http.StatusOK)
	})
}

func (ui *consoleUI) closeAttendance(ctx echo.Context) error {
	ws, err := getContextWorkspace(ctx)
	if err != nil {
		return err
	}
	return ui.settle(ctx, ws, ws.CloseAttendance(), func() error {
		return ui.redirectHome(ctx)
	})
}

func (ui *consoleUI) openStatusEdit(ctx echo.Context) error {
	id, err := paramID(ctx, "attendanceID")
	if err != nil {
		return err
	}
	ws, err := getContextWorkspace(ctx)
	if err != nil {
		return err
	}
	return ui.settle(ctx, ws, ws.OpenStatusEdit(id), func() error {
		return ui.render(ctx, ws, http.StatusOK)
	})
}

func (ui *consoleUI) updateStatus(ctx echo.Context) error {
	id, err := paramID(ctx, "attendanceID")
	if err != nil {
		return err
	}
	ws, err := getContextWorkspace(ctx)
	if err != nil {
		return err
	}
	return ui.settle(ctx, ws, ws.SubmitStatus(ctx.Request().Context(), id, ctx.FormValue("status")), func() error {
		return ui.redirectHome(ctx)
	})
}

func (ui *consoleUI) closeStatusEdit(ctx echo.Context) error {
	ws, err := getContextWorkspace(ctx)
	if err != nil {
		return err
	}
	return ui.settle(ctx, ws, ws.CloseStatusEdit(), func() error {
		return ui.redirectHome(ctx)
	})
}
