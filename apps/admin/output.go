package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/trezcool/gradebook/core/attendance"
	"github.com/trezcool/gradebook/core/grade"
	"github.com/trezcool/gradebook/core/student"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
)

func (cli *commandLine) ok(msg string)    { fmt.Fprintln(cli.out, successStyle.Render("✔ "+msg)) }
func (cli *commandLine) title(msg string) { fmt.Fprintln(cli.out, titleStyle.Render(msg)) }
func (cli *commandLine) muted(msg string) { fmt.Fprintln(cli.out, mutedStyle.Render(msg)) }

func failMessage(msg string) string {
	return errorStyle.Render("✖ " + msg)
}

func (cli *commandLine) printTable(headers []string, rows [][]string) {
	if len(rows) == 0 {
		cli.muted("No records.")
		return
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...)
	fmt.Fprintln(cli.out, t.String())
}

func (cli *commandLine) printStudents(students []student.Student) {
	rows := make([][]string, 0, len(students))
	for _, s := range students {
		rows = append(rows, studentRow(s))
	}
	cli.printTable([]string{"ID", "First name", "Last name", "Phone"}, rows)
}

func (cli *commandLine) printLessons(lessons []grade.Lesson) {
	rows := make([][]string, 0, len(lessons))
	for _, l := range lessons {
		rows = append(rows, []string{strconv.Itoa(l.ID), l.CourseName, string(l.Grade)})
	}
	cli.printTable([]string{"ID", "Course", "Grade"}, rows)
}

func (cli *commandLine) printRecords(records []attendance.Record) {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{strconv.Itoa(r.ID), r.Date, r.Weekday, r.CourseName, r.RoomNumber, string(r.Status)})
	}
	cli.printTable([]string{"ID", "Date", "Day", "Course", "Room", "Status"}, rows)
}
