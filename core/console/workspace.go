package console

import (
	"context"
	"sync"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core/attendance"
	"github.com/trezcool/gradebook/core/grade"
	"github.com/trezcool/gradebook/core/student"
)

var (
	ErrBusy      = errors.New("a request is in flight, try again when it settles")
	ErrNotOpen   = errors.New("dialog is not open")
	ErrNotLoaded = errors.New("records are not loaded")
	ErrNotFound  = errors.New("record not found")
)

// DialogState is the state of a form dialog: Closed → Open → Submitting → Closed | Open.
type DialogState int

const (
	DialogClosed DialogState = iota
	DialogOpen
	DialogSubmitting
)

// ModalState is the state of a detail modal: Closed → Loading → Loaded | Failed → Closed.
type ModalState int

const (
	ModalClosed ModalState = iota
	ModalLoading
	ModalLoaded
	ModalFailed
)

type Deps struct {
	Students   student.Repository
	Grades     grade.Repository
	Attendance attendance.Repository
	Validate   *validator.Validate
	Translator ut.Translator
}

// Workspace holds the UI state of one console session: the student list, the search query and
// the open dialogs. It is safe for concurrent use; API calls are made without holding its lock.
type Workspace struct {
	mu   sync.Mutex
	deps Deps

	roster   student.Roster
	loadErr  string
	query    string
	lastSeen time.Time

	studentDlg studentDialog
	lessons    lessonsModal
	attendance attendanceModal
}

func NewWorkspace(deps Deps) *Workspace {
	return &Workspace{deps: deps, lastSeen: nowFunc()}
}

var nowFunc = time.Now // mockable

// Touch marks the workspace as used now.
func (ws *Workspace) Touch() {
	ws.mu.Lock()
	ws.lastSeen = nowFunc()
	ws.mu.Unlock()
}

func (ws *Workspace) LastSeen() time.Time {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return ws.lastSeen
}

// Load fetches the student list unless it is already loaded.
// A failure is kept as the load error and returned; calling Load again fetches again.
func (ws *Workspace) Load(ctx context.Context) error {
	ws.mu.Lock()
	if ws.roster.Loaded() {
		ws.mu.Unlock()
		return nil
	}
	ws.mu.Unlock()

	students, err := ws.deps.Students.QueryAllStudents(ctx)

	ws.mu.Lock()
	defer ws.mu.Unlock()
	if ws.roster.Loaded() { // loaded concurrently
		return nil
	}
	if err != nil {
		ws.loadErr = err.Error()
		return err
	}
	ws.loadErr = ""
	ws.roster.Set(students)
	return nil
}

// SetQuery sets the search query the student list is filtered with.
func (ws *Workspace) SetQuery(q string) {
	ws.mu.Lock()
	ws.query = q
	ws.mu.Unlock()
}

// Students returns the filtered student list.
func (ws *Workspace) Students() []student.Student {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return ws.roster.Filter(ws.query)
}

// Search returns the students matching `query`, regardless of the workspace query.
func (ws *Workspace) Search(query string) []student.Student {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return ws.roster.Filter(query)
}

// Student returns the listed student with the given ID.
func (ws *Workspace) Student(id int) (student.Student, bool) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return ws.roster.Get(id)
}
