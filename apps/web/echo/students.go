package echoweb

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core/console"
	"github.com/trezcool/gradebook/services/export"
)

func registerStudentRoutes(app *echo.Echo, ui *consoleUI) {
	app.GET("/", ui.listStudents)
	app.GET("/students/export.xlsx", ui.exportStudents)
	app.GET("/students/new", ui.openCreate)
	app.POST("/students", ui.createStudent)
	app.GET("/students/:id/edit", ui.openEdit)
	app.POST("/students/:id", ui.updateStudent)
	app.POST("/dialogs/student/close", ui.closeStudentDialog)
}

// Handlers

func (ui *consoleUI) listStudents(ctx echo.Context) error {
	ws, err := ui.workspace(ctx)
	if err != nil {
		return err
	}
	if q, ok := ctx.QueryParams()["q"]; ok && len(q) > 0 {
		ws.SetQuery(q[0])
	}

	code := http.StatusOK
	if v := ws.Snapshot(); v.LoadErr != "" {
		code = http.StatusBadGateway
	}
	return ui.render(ctx, ws, code)
}

func (ui *consoleUI) exportStudents(ctx echo.Context) error {
	ws, err := ui.workspace(ctx)
	if err != nil {
		return err
	}
	v := ws.Snapshot()
	if !v.Loaded {
		return echo.NewHTTPError(http.StatusBadGateway, v.LoadErr)
	}

	students := v.Students
	if q, ok := ctx.QueryParams()["q"]; ok && len(q) > 0 {
		students = ws.Search(q[0])
	}

	var buf bytes.Buffer
	if err = exportsvc.WriteStudents(&buf, students); err != nil {
		return errors.Wrap(err, "exporting students")
	}
	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", "students.xlsx"))
	return ctx.Blob(http.StatusOK, exportsvc.ContentType, buf.Bytes())
}

func (ui *consoleUI) openCreate(ctx echo.Context) error {
	ws, err := ui.workspace(ctx)
	if err != nil {
		return err
	}
	return ui.settle(ctx, ws, ws.OpenCreate(), func() error {
		return ui.render(ctx, ws, http.StatusOK)
	})
}

func (ui *consoleUI) createStudent(ctx echo.Context) error {
	ws, err := getContextWorkspace(ctx)
	if err != nil {
		return err
	}
	var form console.StudentForm
	if err = ctx.Bind(&form); err != nil {
		return errors.Wrap(err, "binding to StudentForm")
	}
	_, err = ws.SubmitStudent(ctx.Request().Context(), 0, form)
	return ui.settle(ctx, ws, err, func() error {
		return ui.redirectHome(ctx)
	})
}

func (ui *consoleUI) openEdit(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	ws, err := ui.workspace(ctx)
	if err != nil {
		return err
	}
	return ui.settle(ctx, ws, ws.OpenEdit(id), func() error {
		return ui.render(ctx, ws, http.StatusOK)
	})
}

func (ui *consoleUI) updateStudent(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	ws, err := getContextWorkspace(ctx)
	if err != nil {
		return err
	}
	var form console.StudentForm
	if err = ctx.Bind(&form); err != nil {
		return errors.Wrap(err, "binding to StudentForm")
	}
	_, err = ws.SubmitStudent(ctx.Request().Context(), id, form)
	return ui.settle(ctx, ws, err, func() error {
		return ui.redirectHome(ctx)
	})
}

func (ui *consoleUI) closeStudentDialog(ctx echo.Context) error {
	ws, err := getContextWorkspace(ctx)
	if err != nil {
		return err
	}
	return ui.settle(ctx, ws, ws.CloseStudentDialog(), func() error {
		return ui.redirectHome(ctx)
	})
}
