package echoweb

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func registerLessonRoutes(app *echo.Echo, ui *consoleUI) {
	app.GET("/students/:id/lessons", ui.openLessons)
	app.POST("/lessons/close", ui.closeLessons)
	app.GET("/lessons/:gradeID/edit", ui.openGradeEdit)
	app.POST("/lessons/:gradeID", ui.updateGrade)
	app.POST("/lessons/edit/close", ui.closeGradeEdit)
}

// Handlers

func (ui *consoleUI) openLessons(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	ws, err := ui.workspace(ctx)
	if err != nil {
		return err
	}
	return ui.settle(ctx, ws, ws.OpenLessons(ctx.Request().Context(), id), func() error {
		return ui.render(ctx, ws, http.StatusOK)
	})
}

func (ui *consoleUI) closeLessons(ctx echo.Context) error {
	ws, err := getContextWorkspace(ctx)
	if err != nil {
		return err
	}
	return ui.settle(ctx, ws, ws.CloseLessons(), func() error {
		return ui.redirectHome(ctx)
	})
}

func (ui *consoleUI) openGradeEdit(ctx echo.Context) error {
	id, err := paramID(ctx, "gradeID")
	if err != nil {
		return err
	}
	ws, err := getContextWorkspace(ctx)
	if err != nil {
		return err
	}
	return ui.settle(ctx, ws, ws.OpenGradeEdit(id), func() error {
		return ui.render(ctx, ws, http.StatusOK)
	})
}

func (ui *consoleUI) updateGrade(ctx echo.Context) error {
	id, err := paramID(ctx, "gradeID")
	if err != nil {
		return err
	}
	ws, err := getContextWorkspace(ctx)
	if err != nil {
		return err
	}
	return ui.settle(ctx, ws, ws.SubmitGrade(ctx.Request().Context(), id, ctx.FormValue("grade")), func() error {
		return ui.redirectHome(ctx)
	})
}

func (ui *consoleUI) closeGradeEdit(ctx echo.Context) error {
	ws, err := getContextWorkspace(ctx)
	if err != nil {
		return err
	}
	return ui.settle(ctx, ws, ws.CloseGradeEdit(), func() error {
		return ui.redirectHome(ctx)
	})
}
