package exportsvc

import (
	"io"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/trezcool/gradebook/core/student"
)

const (
	StudentsSheet = "Students"
	ContentType   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var studentsHeader = []interface{}{"ID", "First name", "Last name", "Phone"}

// WriteStudents writes `students` as an XLSX workbook with a single sheet, one row per student
// after a bold header row.
func WriteStudents(w io.Writer, students []student.Student) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cErr := f.Close(); cErr != nil && err == nil {
			err = errors.Wrap(cErr, "f.Close()")
		}
	}()

	if err = f.SetSheetName(f.GetSheetName(0), StudentsSheet); err != nil {
		return errors.Wrap(err, "f.SetSheetName()")
	}
	if err = f.SetSheetRow(StudentsSheet, "A1", &studentsHeader); err != nil {
		return errors.Wrap(err, "f.SetSheetRow(header)")
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return errors.Wrap(err, "f.NewStyle()")
	}
	if err = f.SetCellStyle(StudentsSheet, "A1", "D1", bold); err != nil {
		return errors.Wrap(err, "f.SetCellStyle()")
	}
	if err = f.SetColWidth(StudentsSheet, "B", "D", 20); err != nil {
		return errors.Wrap(err, "f.SetColWidth()")
	}

	for i, s := range students {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.Wrap(err, "excelize.CoordinatesToCellName()")
		}
		// phone stays a string so leading zeros survive
		row := []interface{}{s.ID, s.FirstName, s.LastName, s.Phone}
		if err = f.SetSheetRow(StudentsSheet, cell, &row); err != nil {
			return errors.Wrapf(err, "f.SetSheetRow(%s)", cell)
		}
	}

	if err = f.Write(w); err != nil {
		return errors.Wrap(err, "f.Write()")
	}
	return nil
}
