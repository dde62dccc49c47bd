package board

import (
	"fmt"
	"sync"

	"github.com/Verm1lion/SwarmOPS/internal/models"
)

// TaskLister loads a project's task list in board fetch order.
// repository.TaskRepository satisfies it.
type TaskLister interface {
	ListByProject(projectID uint64) ([]models.Task, error)
}

// Manager hands out one Reconciler per project board. Boards are loaded
// lazily from the store and kept for the life of the process; Load replaces
// a board with a fresh fetch.
type Manager struct {
	mu     sync.Mutex
	store  TaskStore
	lister TaskLister
	boards map[uint64]*Reconciler
}

// NewManager creates a board manager over the given store.
func NewManager(store TaskStore, lister TaskLister) *Manager {
	return &Manager{
		store:  store,
		lister: lister,
		boards: make(map[uint64]*Reconciler),
	}
}

// Get returns the project's reconciler, loading it on first use.
func (m *Manager) Get(projectID uint64) (*Reconciler, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if r, ok := m.boards[projectID]; ok {
		return r, nil
	}
	return m.loadLocked(projectID)
}

// Load refetches the project's tasks and replaces any cached board. Used on
// board view loads so a fresh view always starts from durable state.
func (m *Manager) Load(projectID uint64) (*Reconciler, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if old, ok := m.boards[projectID]; ok {
		old.Flush()
	}
	return m.loadLocked(projectID)
}

// Invalidate drops a cached board, draining its pending writes first.
func (m *Manager) Invalidate(projectID uint64) {
	m.mu.Lock()
	r, ok := m.boards[projectID]
	delete(m.boards, projectID)
	m.mu.Unlock()

	if ok {
		r.Flush()
	}
}

// Shutdown drains pending writes on every cached board.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	boards := make([]*Reconciler, 0, len(m.boards))
	for _, r := range m.boards {
		boards = append(boards, r)
	}
	m.mu.Unlock()

	for _, r := range boards {
		r.Flush()
	}
}

func (m *Manager) loadLocked(projectID uint64) (*Reconciler, error) {
	tasks, err := m.lister.ListByProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load board %d: %w", projectID, err)
	}

	r := NewReconciler(projectID, tasks, m.store)
	m.boards[projectID] = r
	return r, nil
}
