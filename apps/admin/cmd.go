package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/trezcool/gradebook/core/console"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	ws  *console.Workspace
	out io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  students [-q QUERY]                                  - list students, optionally filtered")
	fmt.Fprintln(cli.out, "  add -first NAME -last NAME -phone DIGITS             - add a student")
	fmt.Fprintln(cli.out, "  update -id ID [-first NAME] [-last NAME] [-phone DIGITS] - update a student")
	fmt.Fprintln(cli.out, "  grades -student ID                                   - list a student's grades")
	fmt.Fprintln(cli.out, "  setgrade -student ID -lesson ID -grade A|B|C|D|F     - set a grade")
	fmt.Fprintln(cli.out, "  attendance -student ID                               - list a student's attendance")
	fmt.Fprintln(cli.out, "  setstatus -student ID -record ID -status Absent|Late|Present - set an attendance status")
	fmt.Fprintln(cli.out, "  export [-q QUERY] [-o FILE]                          - export students to an XLSX file")
}

func (cli *commandLine) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	return fs
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}
	ctx := context.Background()

	studentsCmd := cli.newFlagSet("students")
	studentsQuery := studentsCmd.String("q", "", "Search by first name, last name or ID.")

	addCmd := cli.newFlagSet("add")
	addFirst := addCmd.String("first", "", "First name.")
	addLast := addCmd.String("last", "", "Last name.")
	addPhone := addCmd.String("phone", "", "Phone number, 7 to 15 digits.")

	updateCmd := cli.newFlagSet("update")
	updateID := updateCmd.Int("id", 0, "The student's ID.")
	updateFirst := updateCmd.String("first", "", "New first name.")
	updateLast := updateCmd.String("last", "", "New last name.")
	updatePhone := updateCmd.String("phone", "", "New phone number.")

	gradesCmd := cli.newFlagSet("grades")
	gradesStudent := gradesCmd.Int("student", 0, "The student's ID.")

	setGradeCmd := cli.newFlagSet("setgrade")
	setGradeStudent := setGradeCmd.Int("student", 0, "The student's ID.")
	setGradeLesson := setGradeCmd.Int("lesson", 0, "The grade ID of the lesson.")
	setGradeValue := setGradeCmd.String("grade", "", "The new grade.")

	attendanceCmd := cli.newFlagSet("attendance")
	attendanceStudent := attendanceCmd.Int("student", 0, "The student's ID.")

	setStatusCmd := cli.newFlagSet("setstatus")
	setStatusStudent := setStatusCmd.Int("student", 0, "The student's ID.")
	setStatusRecord := setStatusCmd.Int("record", 0, "The attendance record ID.")
	setStatusValue := setStatusCmd.String("status", "", "The new status.")

	exportCmd := cli.newFlagSet("export")
	exportQuery := exportCmd.String("q", "", "Only export the students matching QUERY.")
	exportFile := exportCmd.String("o", "students.xlsx", "Output file.")

	switch args[1] {
	case "students":
		if err := studentsCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.listStudents(ctx, *studentsQuery)
	case "add":
		if err := addCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.addStudent(ctx, console.StudentForm{FirstName: *addFirst, LastName: *addLast, Phone: *addPhone})
	case "update":
		if err := updateCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *updateID == 0 {
			updateCmd.Usage()
			return errHelp
		}
		changes := make(map[string]*string)
		updateCmd.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "first":
				changes[f.Name] = updateFirst
			case "last":
				changes[f.Name] = updateLast
			case "phone":
				changes[f.Name] = updatePhone
			}
		})
		if len(changes) == 0 {
			updateCmd.Usage()
			return errHelp
		}
		return cli.updateStudent(ctx, *updateID, changes)
	case "grades":
		if err := gradesCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *gradesStudent == 0 {
			gradesCmd.Usage()
			return errHelp
		}
		return cli.listLessons(ctx, *gradesStudent)
	case "setgrade":
		if err := setGradeCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *setGradeStudent == 0 || *setGradeLesson == 0 || strings.TrimSpace(*setGradeValue) == "" {
			setGradeCmd.Usage()
			return errHelp
		}
		return cli.setGrade(ctx, *setGradeStudent, *setGradeLesson, *setGradeValue)
	case "attendance":
		if err := attendanceCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *attendanceStudent == 0 {
			attendanceCmd.Usage()
			return errHelp
		}
		return cli.listRecords(ctx, *attendanceStudent)
	case "setstatus":
		if err := setStatusCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *setStatusStudent == 0 || *setStatusRecord == 0 || strings.TrimSpace(*setStatusValue) == "" {
			setStatusCmd.Usage()
			return errHelp
		}
		return cli.setStatus(ctx, *setStatusStudent, *setStatusRecord, *setStatusValue)
	case "export":
		if err := exportCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.exportStudents(ctx, *exportQuery, *exportFile)
	default:
		cli.printUsage()
		return errHelp
	}
}
