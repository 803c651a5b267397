package console

import (
	"context"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/attendance"
)

type statusDialog struct {
	state     DialogState
	recordID  int
	value     string
	fieldErrs map[string]string
	submitErr string
}

type attendanceModal struct {
	state     ModalState
	gen       uint64
	studentID int
	records   []attendance.Record
	err       string
	edit      statusDialog
}

func (m *attendanceModal) close() {
	*m = attendanceModal{gen: m.gen + 1}
}

// OpenAttendance opens the attendance modal of the listed student `studentID` and fetches its
// records. It behaves like OpenLessons.
func (ws *Workspace) OpenAttendance(ctx context.Context, studentID int) error {
	ws.mu.Lock()
	if _, ok := ws.roster.Get(studentID); !ok {
		ws.mu.Unlock()
		return ErrNotFound
	}
	m := &ws.attendance
	if m.edit.state == DialogSubmitting {
		ws.mu.Unlock()
		return ErrBusy
	}
	m.close()
	m.state = ModalLoading
	m.studentID = studentID
	gen := m.gen
	ws.mu.Unlock()

	records, err := ws.deps.Attendance.QueryRecords(ctx, studentID)

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
	m.records = records
	return nil
}

func (ws *Workspace) CloseAttendance() error {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	if ws.attendance.edit.state == DialogSubmitting {
		return ErrBusy
	}
	ws.attendance.close()
	return nil
}

// OpenStatusEdit opens the status dialog of record `recordID` from the loaded attendance modal.
func (ws *Workspace) OpenStatusEdit(recordID int) error {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	m := &ws.attendance
	if m.state != ModalLoaded {
		return ErrNotOpen
	}
	if m.edit.state == DialogSubmitting {
		return ErrBusy
	}
	for _, r := range m.records {
		if r.ID == recordID {
			m.edit = statusDialog{state: DialogOpen, recordID: r.ID, value: string(r.Status)}
			return nil
		}
	}
	return ErrNotFound
}

func (ws *Workspace) CloseStatusEdit() error {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	if ws.attendance.edit.state == DialogSubmitting {
		return ErrBusy
	}
	ws.attendance.edit = statusDialog{}
	return nil
}

// SubmitStatus sends the new status of the record being edited.
func (ws *Workspace) SubmitStatus(ctx context.Context, recordID int, value string) error {
	ws.mu.Lock()
	dlg := &ws.attendance.edit
	switch dlg.state {
	case DialogClosed:
		ws.mu.Unlock()
		return ErrNotOpen
	case DialogSubmitting:
		ws.mu.Unlock()
		return ErrBusy
	}
	if dlg.recordID != recordID {
		ws.mu.Unlock()
		return ErrNotOpen
	}
	dlg.value = value
	dlg.submitErr = ""

	upd := attendance.StatusUpdate{AttendanceID: dlg.recordID, Status: attendance.Status(value)}
	if err := upd.Validate(ws.deps.Validate); err != nil {
		err = core.TranslateValidationErrors(err, ws.deps.Translator)
		dlg.fieldErrs = fieldErrors(err)
		ws.mu.Unlock()
		return err
	}
	dlg.fieldErrs = nil
	dlg.state = DialogSubmitting
	ws.mu.Unlock()

	confirmed, err := ws.deps.Attendance.UpdateStatus(ctx, upd)

	ws.mu.Lock()
	defer ws.mu.Unlock()
	if err != nil {
		dlg.state = DialogOpen
		dlg.submitErr = err.Error()
		return err
	}
	attendance.Apply(ws.attendance.records, confirmed)
	*dlg = statusDialog{}
	return nil
}
