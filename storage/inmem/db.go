package inmemdb

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core/attendance"
	"github.com/trezcool/gradebook/core/grade"
	"github.com/trezcool/gradebook/core/student"
)

var (
	ErrStudentNotFound = errors.New("student not found")
	ErrGradeNotFound   = errors.New("grade not found")
	ErrRecordNotFound  = errors.New("attendance record not found")
)

type (
	// DB is an in-process stand-in for the students REST API.
	DB struct {
		student    *studentTable
		grade      *gradeTable
		attendance *attendanceTable
	}

	studentTable struct {
		mutex   sync.RWMutex
		pkCount int
		rows    []student.Student
	}

	gradeTable struct {
		mutex   sync.RWMutex
		pkCount int
		rows    map[int][]grade.Lesson // by student ID
	}

	attendanceTable struct {
		mutex   sync.RWMutex
		pkCount int
		rows    map[int][]attendance.Record // by student ID
	}
)

func Open() *DB {
	return &DB{
		student:    &studentTable{},
		grade:      &gradeTable{rows: make(map[int][]grade.Lesson)},
		attendance: &attendanceTable{rows: make(map[int][]attendance.Record)},
	}
}

// InsertStudent stores `s` as is, assigning an ID if it has none.
func (db *DB) InsertStudent(s student.Student) student.Student {
	t := db.student
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if s.ID == 0 {
		t.pkCount++
		s.ID = t.pkCount
	} else if s.ID > t.pkCount {
		t.pkCount = s.ID
	}
	t.rows = append(t.rows, s)
	return s
}

// InsertLesson stores a lesson for a student, assigning an ID if it has none.
func (db *DB) InsertLesson(studentID int, l grade.Lesson) grade.Lesson {
	t := db.grade
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if l.ID == 0 {
		t.pkCount++
		l.ID = t.pkCount
	} else if l.ID > t.pkCount {
		t.pkCount = l.ID
	}
	t.rows[studentID] = append(t.rows[studentID], l)
	return l
}

// InsertRecord stores an attendance record for a student, assigning an ID if it has none.
func (db *DB) InsertRecord(studentID int, r attendance.Record) attendance.Record {
	t := db.attendance
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if r.ID == 0 {
		t.pkCount++
		r.ID = t.pkCount
	} else if r.ID > t.pkCount {
		t.pkCount = r.ID
	}
	t.rows[studentID] = append(t.rows[studentID], r)
	return r
}

// Seed fills `db` with a few demo students, grades and attendance records.
func Seed(db *DB) {
	courses := []struct{ name, weekday, room string }{
		{"Mathematics", "Monday", "A101"},
		{"Physics", "Wednesday", "B204"},
		{"Literature", "Friday", "C310"},
	}
	people := []student.Student{
		{FirstName: "Amani", LastName: "Kabila", Phone: "243810000001"},
		{FirstName: "Grace", LastName: "Mbuyi", Phone: "243810000002"},
		{FirstName: "Joel", LastName: "Tshisekedi", Phone: "243810000003"},
		{FirstName: "Ruth", LastName: "Ilunga", Phone: "243810000004"},
	}
	dates := []string{"2024-09-02", "2024-09-04", "2024-09-06"}

	for i, p := range people {
		s := db.InsertStudent(p)
		for j, c := range courses {
			db.InsertLesson(s.ID, grade.Lesson{
				CourseName: c.name,
				Grade:      grade.Grades[(i+j)%len(grade.Grades)],
			})
			db.InsertRecord(s.ID, attendance.Record{
				Date:       dates[j],
				Status:     attendance.Statuses[(i+j)%len(attendance.Statuses)],
				CourseName: c.name,
				Weekday:    c.weekday,
				RoomNumber: c.room,
			})
		}
	}
}
