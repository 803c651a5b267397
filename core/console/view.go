package console

import (
	"github.com/trezcool/gradebook/core/attendance"
	"github.com/trezcool/gradebook/core/grade"
	"github.com/trezcool/gradebook/core/student"
)

type (
	// View is a point-in-time copy of a Workspace, safe to render without holding its lock.
	View struct {
		Loaded     bool
		LoadErr    string
		Query      string
		Students   []student.Student // filtered by Query
		Total      int
		Student    StudentDialog
		Lessons    LessonsModal
		Attendance AttendanceModal
	}

	StudentDialog struct {
		State     DialogState
		Editing   bool
		StudentID int
		Form      StudentForm
		FieldErrs map[string]string
		Err       string
	}

	LessonsModal struct {
		State     ModalState
		StudentID int
		Student   student.Student
		Lessons   []grade.Lesson
		Err       string
		Edit      GradeDialog
	}

	GradeDialog struct {
		State     DialogState
		LessonID  int
		Value     string
		FieldErrs map[string]string
		Err       string
	}

	AttendanceModal struct {
		State     ModalState
		StudentID int
		Student   student.Student
		Records   []attendance.Record
		Err       string
		Edit      StatusDialog
	}

	StatusDialog struct {
		State     DialogState
		RecordID  int
		Value     string
		FieldErrs map[string]string
		Err       string
	}
)

func (s DialogState) IsOpen() bool       { return s != DialogClosed }
func (s DialogState) IsSubmitting() bool { return s == DialogSubmitting }
func (s ModalState) IsOpen() bool        { return s != ModalClosed }

func (s ModalState) String() string {
	switch s {
	case ModalLoading:
		return "loading"
	case ModalLoaded:
		return "loaded"
	case ModalFailed:
		return "failed"
	default:
		return "closed"
	}
}

// Snapshot returns a copy of the workspace state.
func (ws *Workspace) Snapshot() View {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	v := View{
		Loaded:   ws.roster.Loaded(),
		LoadErr:  ws.loadErr,
		Query:    ws.query,
		Students: ws.roster.Filter(ws.query),
		Total:    ws.roster.Len(),
	}

	sd := ws.studentDlg
	v.Student = StudentDialog{
		State:     sd.state,
		Editing:   sd.editing,
		StudentID: sd.studentID,
		Form:      sd.form,
		FieldErrs: copyMap(sd.fieldErrs),
		Err:       sd.submitErr,
	}

	lm := ws.lessons
	v.Lessons = LessonsModal{
		State:     lm.state,
		StudentID: lm.studentID,
		Lessons:   append([]grade.Lesson(nil), lm.lessons...),
		Err:       lm.err,
		Edit: GradeDialog{
			State:     lm.edit.state,
			LessonID:  lm.edit.lessonID,
			Value:     lm.edit.value,
			FieldErrs: copyMap(lm.edit.fieldErrs),
			Err:       lm.edit.submitErr,
		},
	}
	v.Lessons.Student, _ = ws.roster.Get(lm.studentID)

	am := ws.attendance
	v.Attendance = AttendanceModal{
		State:     am.state,
		StudentID: am.studentID,
		Records:   append([]attendance.Record(nil), am.records...),
		Err:       am.err,
		Edit: StatusDialog{
			State:     am.edit.state,
			RecordID:  am.edit.recordID,
			Value:     am.edit.value,
			FieldErrs: copyMap(am.edit.fieldErrs),
			Err:       am.edit.submitErr,
		},
	}
	v.Attendance.Student, _ = ws.roster.Get(am.studentID)

	return v
}

func copyMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	cp := make(map[string]string, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}
