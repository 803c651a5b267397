package console

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/student"
)

// StudentForm is the raw input of the add/edit student dialog.
type StudentForm struct {
	FirstName string `form:"first_name"`
	LastName  string `form:"last_name"`
	Phone     string `form:"phone"`
}

type studentDialog struct {
	state     DialogState
	editing   bool
	studentID int
	form      StudentForm
	fieldErrs map[string]string
	submitErr string
}

func (dlg *studentDialog) reset() {
	*dlg = studentDialog{}
}

func (dlg *studentDialog) open(editing bool, s student.Student) {
	*dlg = studentDialog{
		state:     DialogOpen,
		editing:   editing,
		studentID: s.ID,
		form:      StudentForm{FirstName: s.FirstName, LastName: s.LastName, Phone: s.Phone},
	}
}

// OpenCreate opens an empty add student dialog.
func (ws *Workspace) OpenCreate() error {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	if !ws.roster.Loaded() {
		return ErrNotLoaded
	}
	if ws.studentDlg.state == DialogSubmitting {
		return ErrBusy
	}
	ws.studentDlg.open(false, student.Student{})
	return nil
}

// OpenEdit opens the edit dialog prefilled with the listed student `id`.
func (ws *Workspace) OpenEdit(id int) error {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	if ws.studentDlg.state == DialogSubmitting {
		return ErrBusy
	}
	s, ok := ws.roster.Get(id)
	if !ok {
		return ErrNotFound
	}
	ws.studentDlg.open(true, s)
	return nil
}

// CloseStudentDialog closes the add/edit dialog. It is refused while a submission is in flight.
func (ws *Workspace) CloseStudentDialog() error {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	if ws.studentDlg.state == DialogSubmitting {
		return ErrBusy
	}
	ws.studentDlg.reset()
	return nil
}

// SubmitStudent validates `form` and sends it to the API. `studentID` names the dialog the form
// was filled in: 0 for the create dialog, the edited student's ID otherwise; a form for any other
// dialog is refused with ErrNotOpen. Invalid input is reported as a *core.ValidationError without
// calling the API. On success the saved student is merged into the list, the dialog closes and the
// student is returned; on failure the dialog stays open with the error message.
func (ws *Workspace) SubmitStudent(ctx context.Context, studentID int, form StudentForm) (student.Student, error) {
	ws.mu.Lock()
	dlg := &ws.studentDlg
	switch dlg.state {
	case DialogClosed:
		ws.mu.Unlock()
		return student.Student{}, ErrNotOpen
	case DialogSubmitting:
		ws.mu.Unlock()
		return student.Student{}, ErrBusy
	}
	if dlg.editing != (studentID != 0) || dlg.studentID != studentID {
		ws.mu.Unlock()
		return student.Student{}, ErrNotOpen
	}
	dlg.form = form
	dlg.submitErr = ""

	var (
		ns      student.NewStudent
		us      student.UpdateStudent
		err     error
		editing = dlg.editing
	)
	if editing {
		us = student.UpdateStudent{ID: dlg.studentID, FirstName: form.FirstName, LastName: form.LastName, Phone: form.Phone}
		err = us.Validate(ws.deps.Validate)
	} else {
		ns = student.NewStudent{FirstName: form.FirstName, LastName: form.LastName, Phone: form.Phone}
		err = ns.Validate(ws.deps.Validate)
	}
	if err != nil {
		err = core.TranslateValidationErrors(err, ws.deps.Translator)
		dlg.fieldErrs = fieldErrors(err)
		ws.mu.Unlock()
		return student.Student{}, err
	}
	dlg.fieldErrs = nil
	dlg.state = DialogSubmitting
	ws.mu.Unlock()

	var s student.Student
	if editing {
		s, err = ws.deps.Students.UpdateStudent(ctx, us)
	} else {
		s, err = ws.deps.Students.CreateStudent(ctx, ns)
	}

	if err == nil {
		err = checkSaved(s, us.ID)
	}

	ws.mu.Lock()
	defer ws.mu.Unlock()
	if err == nil && editing && !ws.roster.Replace(s) {
		err = errors.Errorf("student %d is no longer listed", s.ID)
	}
	if err != nil {
		dlg.state = DialogOpen
		dlg.submitErr = err.Error()
		return student.Student{}, err
	}
	if !editing {
		ws.roster.Add(s)
	}
	dlg.reset()
	return s, nil
}

// checkSaved rejects a saved student without an identifier, or one other than `wantID` when set.
func checkSaved(s student.Student, wantID int) error {
	if s.ID == 0 {
		return errors.New("the API returned a student without an ID")
	}
	if wantID != 0 && s.ID != wantID {
		return errors.Errorf("the API returned student %d instead of %d", s.ID, wantID)
	}
	return nil
}

func fieldErrors(err error) map[string]string {
	if vErr, ok := err.(*core.ValidationError); ok {
		return vErr.FieldMap()
	}
	return nil
}
