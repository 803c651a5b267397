package console

import (
	"context"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/grade"
)

type gradeDialog struct {
	state     DialogState
	lessonID  int
	value     string
	fieldErrs map[string]string
	submitErr string
}

type lessonsModal struct {
	state     ModalState
	gen       uint64
	studentID int
	lessons   []grade.Lesson
	err       string
	edit      gradeDialog
}

// close resets the modal. The generation keeps growing so that late fetch results are dropped.
func (m *lessonsModal) close() {
	*m = lessonsModal{gen: m.gen + 1}
}

// OpenLessons opens the lessons modal of the listed student `studentID` and fetches its lessons.
// A fetch failure leaves the modal open with the error message. The result of a fetch that was
// superseded (modal closed or reopened meanwhile) is dropped.
func (ws *Workspace) OpenLessons(ctx context.Context, studentID int) error {
	ws.mu.Lock()
	if _, ok := ws.roster.Get(studentID); !ok {
		ws.mu.Unlock()
		return ErrNotFound
	}
	m := &ws.lessons
	if m.edit.state == DialogSubmitting {
		ws.mu.Unlock()
		return ErrBusy
	}
	m.close()
	m.state = ModalLoading
	m.studentID = studentID
	gen := m.gen
	ws.mu.Unlock()

	lessons, err := ws.deps.Grades.QueryLessons(ctx, studentID)

	ws.mu.Lock()
	defer ws.mu.Unlock()
	if m.gen != gen || m.state != ModalLoading {
		return nil
	}
	if err != nil {
		m.state = ModalFailed
		m.err = err.Error()
		return err
	}
	m.state = ModalLoaded
	m.lessons = lessons
	return nil
}

// CloseLessons closes the lessons modal. It is refused while a grade update is in flight.
func (ws *Workspace) CloseLessons() error {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	if ws.lessons.edit.state == DialogSubmitting {
		return ErrBusy
	}
	ws.lessons.close()
	return nil
}

// OpenGradeEdit opens the grade dialog of lesson `lessonID` from the loaded lessons modal.
func (ws *Workspace) OpenGradeEdit(lessonID int) error {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	m := &ws.lessons
	if m.state != ModalLoaded {
		return ErrNotOpen
	}
	if m.edit.state == DialogSubmitting {
		return ErrBusy
	}
	for _, l := range m.lessons {
		if l.ID == lessonID {
			m.edit = gradeDialog{state: DialogOpen, lessonID: l.ID, value: string(l.Grade)}
			return nil
		}
	}
	return ErrNotFound
}

func (ws *Workspace) CloseGradeEdit() error {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	if ws.lessons.edit.state == DialogSubmitting {
		return ErrBusy
	}
	ws.lessons.edit = gradeDialog{}
	return nil
}

// SubmitGrade sends the new grade of the lesson being edited.
// On success the confirmed grade replaces the one shown in the modal and the dialog closes.
func (ws *Workspace) SubmitGrade(ctx context.Context, lessonID int, value string) error {
	ws.mu.Lock()
	dlg := &ws.lessons.edit
	switch dlg.state {
	case DialogClosed:
		ws.mu.Unlock()
		return ErrNotOpen
	case DialogSubmitting:
		ws.mu.Unlock()
		return ErrBusy
	}
	if dlg.lessonID != lessonID {
		ws.mu.Unlock()
		return ErrNotOpen
	}
	dlg.value = value
	dlg.submitErr = ""

	upd := grade.Update{GradeID: dlg.lessonID, Grade: grade.Grade(value)}
	if err := upd.Validate(ws.deps.Validate); err != nil {
		err = core.TranslateValidationErrors(err, ws.deps.Translator)
		dlg.fieldErrs = fieldErrors(err)
		ws.mu.Unlock()
		return err
	}
	dlg.fieldErrs = nil
	dlg.state = DialogSubmitting
	ws.mu.Unlock()

	confirmed, err := ws.deps.Grades.UpdateGrade(ctx, upd)

	ws.mu.Lock()
	defer ws.mu.Unlock()
	if err != nil {
		dlg.state = DialogOpen
		dlg.submitErr = err.Error()
		return err
	}
	grade.Apply(ws.lessons.lessons, confirmed)
	*dlg = gradeDialog{}
	return nil
}
