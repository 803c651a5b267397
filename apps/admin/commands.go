package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core/console"
	"github.com/trezcool/gradebook/core/student"
	"github.com/trezcool/gradebook/services/export"
)

func (cli *commandLine) load(ctx context.Context) error {
	if err := cli.ws.Load(ctx); err != nil {
		return errors.Wrap(err, "loading students")
	}
	return nil
}

func (cli *commandLine) listStudents(ctx context.Context, query string) error {
	if err := cli.load(ctx); err != nil {
		return err
	}
	cli.ws.SetQuery(query)
	view := cli.ws.Snapshot()
	cli.printStudents(view.Students)
	cli.muted(fmt.Sprintf("%d of %d students", len(view.Students), view.Total))
	return nil
}

func (cli *commandLine) addStudent(ctx context.Context, form console.StudentForm) error {
	if err := cli.load(ctx); err != nil {
		return err
	}
	if err := cli.ws.OpenCreate(); err != nil {
		return err
	}
	s, err := cli.ws.SubmitStudent(ctx, 0, form)
	if err != nil {
		return err
	}
	cli.ok(fmt.Sprintf("Student %d created: %s", s.ID, s.FullName()))
	return nil
}

// updateStudent changes the given fields of student `id`, keeping the others.
func (cli *commandLine) updateStudent(ctx context.Context, id int, changes map[string]*string) error {
	if err := cli.load(ctx); err != nil {
		return err
	}
	if err := cli.ws.OpenEdit(id); err != nil {
		return errors.Wrapf(err, "student %d", id)
	}
	form := cli.ws.Snapshot().Student.Form
	if v, ok := changes["first"]; ok {
		form.FirstName = *v
	}
	if v, ok := changes["last"]; ok {
		form.LastName = *v
	}
	if v, ok := changes["phone"]; ok {
		form.Phone = *v
	}
	s, err := cli.ws.SubmitStudent(ctx, id, form)
	if err != nil {
		return err
	}
	cli.ok(fmt.Sprintf("Student %d updated: %s", s.ID, s.FullName()))
	return nil
}

func (cli *commandLine) openLessons(ctx context.Context, studentID int) (console.LessonsModal, error) {
	if err := cli.load(ctx); err != nil {
		return console.LessonsModal{}, err
	}
	if err := cli.ws.OpenLessons(ctx, studentID); err != nil {
		return console.LessonsModal{}, errors.Wrapf(err, "grades of student %d", studentID)
	}
	return cli.ws.Snapshot().Lessons, nil
}

func (cli *commandLine) listLessons(ctx context.Context, studentID int) error {
	m, err := cli.openLessons(ctx, studentID)
	if err != nil {
		return err
	}
	cli.title(fmt.Sprintf("Grades of %s", m.Student.FullName()))
	cli.printLessons(m.Lessons)
	return nil
}

func (cli *commandLine) setGrade(ctx context.Context, studentID, lessonID int, value string) error {
	if _, err := cli.openLessons(ctx, studentID); err != nil {
		return err
	}
	if err := cli.ws.OpenGradeEdit(lessonID); err != nil {
		return errors.Wrapf(err, "lesson %d", lessonID)
	}
	if err := cli.ws.SubmitGrade(ctx, lessonID, value); err != nil {
		return err
	}
	for _, l := range cli.ws.Snapshot().Lessons.Lessons {
		if l.ID == lessonID {
			cli.ok(fmt.Sprintf("%s: grade set to %s", l.CourseName, l.Grade))
		}
	}
	return nil
}

func (cli *commandLine) openAttendance(ctx context.Context, studentID int) (console.AttendanceModal, error) {
	if err := cli.load(ctx); err != nil {
		return console.AttendanceModal{}, err
	}
	if err := cli.ws.OpenAttendance(ctx, studentID); err != nil {
		return console.AttendanceModal{}, errors.Wrapf(err, "attendance of student %d", studentID)
	}
	return cli.ws.Snapshot().Attendance, nil
}

func (cli *commandLine) listRecords(ctx context.Context, studentID int) error {
	m, err := cli.openAttendance(ctx, studentID)
	if err != nil {
		return err
	}
	cli.title(fmt.Sprintf("Attendance of %s", m.Student.FullName()))
	cli.printRecords(m.Records)
	return nil
}

func (cli *commandLine) setStatus(ctx context.Context, studentID, recordID int, value string) error {
	if _, err := cli.openAttendance(ctx, studentID); err != nil {
		return err
	}
	if err := cli.ws.OpenStatusEdit(recordID); err != nil {
		return errors.Wrapf(err, "attendance record %d", recordID)
	}
	if err := cli.ws.SubmitStatus(ctx, recordID, value); err != nil {
		return err
	}
	for _, r := range cli.ws.Snapshot().Attendance.Records {
		if r.ID == recordID {
			cli.ok(fmt.Sprintf("%s on %s: status set to %s", r.CourseName, r.Date, r.Status))
		}
	}
	return nil
}

func (cli *commandLine) exportStudents(ctx context.Context, query, path string) (err error) {
	if err = cli.load(ctx); err != nil {
		return err
	}
	students := cli.ws.Search(query)

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating export file")
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errors.Wrap(cerr, "closing export file")
		}
	}()
	if err = exportsvc.WriteStudents(f, students); err != nil {
		return err
	}
	cli.ok(fmt.Sprintf("%d students exported to %s", len(students), path))
	return nil
}

func studentRow(s student.Student) []string {
	return []string{strconv.Itoa(s.ID), s.FirstName, s.LastName, s.Phone}
}
