package inmemdb

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/trezcool/gradebook/core/console"
)

// WorkspaceStore holds the console workspace of every browser session, keyed by session ID.
type WorkspaceStore struct {
	mutex sync.RWMutex
	deps  console.Deps
	rows  map[string]*console.Workspace
}

func NewWorkspaceStore(deps console.Deps) *WorkspaceStore {
	return &WorkspaceStore{
		deps: deps,
		rows: make(map[string]*console.Workspace),
	}
}

func (st *WorkspaceStore) Get(id string) (*console.Workspace, bool) {
	st.mutex.RLock()
	defer st.mutex.RUnlock()
	ws, ok := st.rows[id]
	return ws, ok
}

// Create starts a new session and returns its ID and workspace.
func (st *WorkspaceStore) Create() (string, *console.Workspace) {
	id := uuid.New().String()
	ws := console.NewWorkspace(st.deps)

	st.mutex.Lock()
	st.rows[id] = ws
	st.mutex.Unlock()
	return id, ws
}

func (st *WorkspaceStore) Len() int {
	st.mutex.RLock()
	defer st.mutex.RUnlock()
	return len(st.rows)
}

// Prune drops the workspaces unused for more than `maxIdle` and returns how many were dropped.
func (st *WorkspaceStore) Prune(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	st.mutex.Lock()
	defer st.mutex.Unlock()

	var pruned int
	for id, ws := range st.rows {
		if ws.LastSeen().Before(cutoff) {
			delete(st.rows, id)
			pruned++
		}
	}
	return pruned
}
