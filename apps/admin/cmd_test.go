package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/attendance"
	"github.com/trezcool/gradebook/core/console"
	"github.com/trezcool/gradebook/core/grade"
	"github.com/trezcool/gradebook/services/export"
	"github.com/trezcool/gradebook/storage/inmem"
	"github.com/trezcool/gradebook/tests"
)

func setup(t *testing.T) (*commandLine, *inmemdb.DB, *bytes.Buffer) {
	db := testutil.OpenDB()
	validate, translator := testutil.NewValidator()
	out := new(bytes.Buffer)

	cli := &commandLine{
		ws: console.NewWorkspace(console.Deps{
			Students:   inmemdb.NewStudentRepository(db),
			Grades:     inmemdb.NewGradeRepository(db),
			Attendance: inmemdb.NewAttendanceRepository(db),
			Validate:   validate,
			Translator: translator,
		}),
		out: out,
	}
	return cli, db, out
}

type cliTest struct {
	name    string
	args    []string // without program name
	wantErr error
	wantOut []string
}

func runTests(t *testing.T, cli *commandLine, out *bytes.Buffer, tests []cliTest) {
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			out.Reset()
			err := cli.run(args)
			if tt.wantErr != nil {
				if errors.Cause(err) != tt.wantErr {
					t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("cli.run() unexpected error = %v", err)
			}
			for _, s := range tt.wantOut {
				assert.Contains(t, out.String(), s)
			}
		})
	}
}

func Test_commandLine_usage(t *testing.T) {
	cli, _, out := setup(t)

	runTests(t, cli, out, []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "update: no id", args: []string{"update", "-first", "x"}, wantErr: errHelp},
		{name: "update: nothing to change", args: []string{"update", "-id", "1"}, wantErr: errHelp},
		{name: "grades: no student", args: []string{"grades"}, wantErr: errHelp},
		{name: "setgrade: no grade", args: []string{"setgrade", "-student", "1", "-lesson", "1"}, wantErr: errHelp},
		{name: "attendance: no student", args: []string{"attendance"}, wantErr: errHelp},
		{name: "setstatus: no record", args: []string{"setstatus", "-student", "1", "-status", "Late"}, wantErr: errHelp},
	})

	out.Reset()
	require.Equal(t, errHelp, cli.run([]string{"admin"}))
	assert.Contains(t, out.String(), "Usage:")
}

func Test_commandLine_students(t *testing.T) {
	cli, db, out := setup(t)

	runTests(t, cli, out, []cliTest{
		{name: "list all", args: []string{"students"}, wantOut: []string{"Amani", "Ruth", "4 of 4 students"}},
		{name: "search", args: []string{"students", "-q", "GRA"}, wantOut: []string{"Grace", "1 of 4 students"}},
		{name: "no match", args: []string{"students", "-q", "zzz"}, wantOut: []string{"No records.", "0 of 4 students"}},
		{
			name:    "add",
			args:    []string{"add", "-first", "Esther", "-last", "Kanku", "-phone", "243810000005"},
			wantOut: []string{"Student 5 created: Esther Kanku"},
		},
	})

	t.Run("add: invalid phone", func(t *testing.T) {
		err := cli.run([]string{"admin", "add", "-first", "Bad", "-last", "Phone", "-phone", "12ab"})
		var vErr *core.ValidationError
		require.True(t, errors.As(err, &vErr), "error = %v", err)
		assert.Contains(t, vErr.FieldMap(), "phone")
		assert.Len(t, testutil.QueryStudents(t, db), 5)
	})

	runTests(t, cli, out, []cliTest{
		{name: "update unknown", args: []string{"update", "-id", "42", "-first", "x"}, wantErr: console.ErrNotFound},
		{name: "update first name", args: []string{"update", "-id", "2", "-first", "Gracia"}, wantOut: []string{"Student 2 updated: Gracia Mbuyi"}},
		{name: "list sees changes", args: []string{"students"}, wantOut: []string{"Esther", "Gracia", "5 of 5 students"}},
	})

	for _, s := range testutil.QueryStudents(t, db) {
		if s.ID == 2 {
			assert.Equal(t, "Gracia", s.FirstName)
			assert.Equal(t, "Mbuyi", s.LastName)
			assert.Equal(t, "243810000002", s.Phone)
		}
	}
}

func Test_commandLine_grades(t *testing.T) {
	cli, db, out := setup(t)

	runTests(t, cli, out, []cliTest{
		{name: "unknown student", args: []string{"grades", "-student", "42"}, wantErr: console.ErrNotFound},
		{name: "list", args: []string{"grades", "-student", "1"}, wantOut: []string{"Grades of Amani Kabila", "Mathematics", "Physics", "Literature"}},
		{name: "unknown lesson", args: []string{"setgrade", "-student", "1", "-lesson", "4", "-grade", "A"}, wantErr: console.ErrNotFound},
		{name: "set", args: []string{"setgrade", "-student", "1", "-lesson", "2", "-grade", "f"}, wantOut: []string{"Physics: grade set to F"}},
	})

	for _, l := range testutil.QueryLessons(t, db, 1) {
		if l.ID == 2 {
			assert.Equal(t, grade.F, l.Grade)
		}
	}

	t.Run("invalid grade", func(t *testing.T) {
		err := cli.run([]string{"admin", "setgrade", "-student", "1", "-lesson", "1", "-grade", "Z"})
		var vErr *core.ValidationError
		require.True(t, errors.As(err, &vErr), "error = %v", err)
		assert.Equal(t, grade.A, testutil.QueryLessons(t, db, 1)[0].Grade)
	})
}

func Test_commandLine_attendance(t *testing.T) {
	cli, db, out := setup(t)

	runTests(t, cli, out, []cliTest{
		{name: "unknown student", args: []string{"attendance", "-student", "42"}, wantErr: console.ErrNotFound},
		{name: "list", args: []string{"attendance", "-student", "1"}, wantOut: []string{"Attendance of Amani Kabila", "2024-09-02", "A101", "Absent"}},
		{name: "unknown record", args: []string{"setstatus", "-student", "1", "-record", "9", "-status", "Late"}, wantErr: console.ErrNotFound},
		{name: "set", args: []string{"setstatus", "-student", "1", "-record", "1", "-status", "present"}, wantOut: []string{"Mathematics on 2024-09-02: status set to Present"}},
	})

	assert.Equal(t, attendance.Present, testutil.QueryRecords(t, db, 1)[0].Status)
}

func Test_commandLine_export(t *testing.T) {
	cli, _, out := setup(t)
	path := filepath.Join(t.TempDir(), "students.xlsx")

	runTests(t, cli, out, []cliTest{
		{name: "export", args: []string{"export", "-q", "a", "-o", path}, wantOut: []string{"exported to " + path}},
	})

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	book, err := excelize.OpenReader(f)
	require.NoError(t, err)
	rows, err := book.GetRows(exportsvc.StudentsSheet)
	require.NoError(t, err)
	// header + Amani, Grace, Ruth (Joel has no "a")
	assert.Len(t, rows, 4)
}
