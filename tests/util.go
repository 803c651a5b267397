package testutil

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/attendance"
	"github.com/trezcool/gradebook/core/grade"
	"github.com/trezcool/gradebook/core/student"
	"github.com/trezcool/gradebook/services/logger"
	"github.com/trezcool/gradebook/storage/inmem"
)

// Envelope is the body of every students API response.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Message string      `json:"message,omitempty"`
}

// NewConfig returns the configuration used by tests.
func NewConfig() *core.Config {
	return &core.Config{
		Env:      "TEST",
		TestMode: true,
		AppName:  "Gradebook",
		Build:    "test",
		Web:      core.WebConfig{Address: ":0", SessionIdle: time.Hour, ShutdownTimeout: time.Second},
		API:      core.APIConfig{Timeout: 5 * time.Second},
	}
}

// NewLogger returns a logger writing to `w` with error reporting disabled.
func NewLogger(w io.Writer, conf *core.Config) core.Logger {
	return logsvc.NewRollbarLogger(log.New(w, "TEST : ", log.LstdFlags), conf)
}

// NewValidator returns a validator with every app validator registered.
func NewValidator() (*validator.Validate, ut.Translator) {
	validate, translator := core.NewValidator()
	grade.InitValidators(validate, translator)
	attendance.InitValidators(validate, translator)
	return validate, translator
}

// OpenDB returns an in-memory DB seeded with demo data.
func OpenDB() *inmemdb.DB {
	db := inmemdb.Open()
	inmemdb.Seed(db)
	return db
}

// QueryStudents returns every student of `db`.
func QueryStudents(t *testing.T, db *inmemdb.DB) []student.Student {
	students, err := inmemdb.NewStudentRepository(db).QueryAllStudents(context.Background())
	if err != nil {
		t.Fatalf("QueryStudents() failed: %v", err)
	}
	return students
}

// QueryLessons returns the lessons of student `studentID`.
func QueryLessons(t *testing.T, db *inmemdb.DB, studentID int) []grade.Lesson {
	lessons, err := inmemdb.NewGradeRepository(db).QueryLessons(context.Background(), studentID)
	if err != nil {
		t.Fatalf("QueryLessons() failed: %v", err)
	}
	return lessons
}

// QueryRecords returns the attendance records of student `studentID`.
func QueryRecords(t *testing.T, db *inmemdb.DB, studentID int) []attendance.Record {
	records, err := inmemdb.NewAttendanceRepository(db).QueryRecords(context.Background(), studentID)
	if err != nil {
		t.Fatalf("QueryRecords() failed: %v", err)
	}
	return records
}

// NewAPIServer starts a fake students API serving `db`. See NewAPIHandler.
func NewAPIServer(t *testing.T, db *inmemdb.DB) *httptest.Server {
	srv := httptest.NewServer(NewAPIHandler(db))
	t.Cleanup(srv.Close)
	return srv
}

// NewAPIHandler returns a fake students API serving `db` with the real envelope and endpoints.
// Lists are sent nested one level deep and attendance updates are confirmed without data, like
// the production API does.
func NewAPIHandler(db *inmemdb.DB) http.Handler {
	students := inmemdb.NewStudentRepository(db)
	grades := inmemdb.NewGradeRepository(db)
	records := inmemdb.NewAttendanceRepository(db)

	e := echo.New()
	e.HideBanner = true

	ok := func(c echo.Context, data interface{}) error {
		return c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
	}
	fail := func(c echo.Context, code int, msg string) error {
		return c.JSON(code, Envelope{Success: false, Message: msg})
	}
	studentID := func(c echo.Context) (int, bool) {
		id, err := strconv.Atoi(c.QueryParam("student_id"))
		return id, err == nil
	}

	e.GET("/api/students", func(c echo.Context) error {
		all, err := students.QueryAllStudents(c.Request().Context())
		if err != nil {
			return fail(c, http.StatusInternalServerError, err.Error())
		}
		return ok(c, [][]student.Student{all})
	})
	e.POST("/api/student", func(c echo.Context) error {
		var ns student.NewStudent
		if err := c.Bind(&ns); err != nil {
			return fail(c, http.StatusBadRequest, "invalid body")
		}
		s, err := students.CreateStudent(c.Request().Context(), ns)
		if err != nil {
			return fail(c, http.StatusInternalServerError, err.Error())
		}
		return ok(c, s)
	})
	e.PUT("/api/student", func(c echo.Context) error {
		var us student.UpdateStudent
		if err := c.Bind(&us); err != nil {
			return fail(c, http.StatusBadRequest, "invalid body")
		}
		s, err := students.UpdateStudent(c.Request().Context(), us)
		if err != nil {
			return fail(c, http.StatusNotFound, "Student not found")
		}
		return ok(c, s)
	})
	e.GET("/api/grade", func(c echo.Context) error {
		id, valid := studentID(c)
		if !valid {
			return fail(c, http.StatusBadRequest, "student_id is required")
		}
		lessons, err := grades.QueryLessons(c.Request().Context(), id)
		if err != nil {
			return fail(c, http.StatusInternalServerError, err.Error())
		}
		return ok(c, [][]grade.Lesson{lessons})
	})
	e.PUT("/api/grade", func(c echo.Context) error {
		var upd grade.Update
		if err := c.Bind(&upd); err != nil {
			return fail(c, http.StatusBadRequest, "invalid body")
		}
		confirmed, err := grades.UpdateGrade(c.Request().Context(), upd)
		if err != nil {
			return fail(c, http.StatusOK, "Grade not found")
		}
		return ok(c, confirmed)
	})
	e.GET("/api/attendance", func(c echo.Context) error {
		id, valid := studentID(c)
		if !valid {
			return fail(c, http.StatusBadRequest, "student_id is required")
		}
		recs, err := records.QueryRecords(c.Request().Context(), id)
		if err != nil {
			return fail(c, http.StatusInternalServerError, err.Error())
		}
		return ok(c, [][]attendance.Record{recs})
	})
	e.PUT("/api/attendance", func(c echo.Context) error {
		var upd attendance.StatusUpdate
		if err := c.Bind(&upd); err != nil {
			return fail(c, http.StatusBadRequest, "invalid body")
		}
		if _, err := records.UpdateStatus(c.Request().Context(), upd); err != nil {
			return fail(c, http.StatusOK, "Attendance record not found")
		}
		return ok(c, nil)
	})

	return e
}
