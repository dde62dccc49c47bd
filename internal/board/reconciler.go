package board

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/Verm1lion/SwarmOPS/internal/models"
)

var ErrTaskNotFound = errors.New("task not found on board")

// TaskStore is the slice of the persistence gateway the reconciler writes
// through. repository.TaskRepository satisfies it.
type TaskStore interface {
	Create(task *models.Task) error
	UpdateColumn(taskID uint64, newColumn models.ColumnID) error
	Delete(taskID uint64) error
}

// Target is the thing a dragged task is currently over: another task or a
// workflow column.
type Target struct {
	taskID uint64
	column models.ColumnID
}

// OverTask targets another task on the board.
func OverTask(taskID uint64) Target {
	return Target{taskID: taskID}
}

// OverColumn targets a workflow column directly.
func OverColumn(column models.ColumnID) Target {
	return Target{column: column}
}

// Reconciler owns the ordered task list of one project's board. It applies
// drag relocation gestures to local state synchronously and issues at most
// one durable column write per completed gesture. Local state is
// authoritative; a failed background write is logged, never retried and
// never rolled back.
type Reconciler struct {
	mu        sync.Mutex
	projectID uint64
	store     TaskStore

	// tasks is ordered; index is the vertical position within a column
	// after filtering. Seeded from the fetch order (created_at DESC).
	tasks    []models.Task
	activeID uint64

	// committed tracks the last durable column value per task, so a commit
	// with no net column change issues no write.
	committed map[uint64]models.ColumnID

	wg  sync.WaitGroup
	now func() time.Time
}

// NewReconciler builds a reconciler over a freshly fetched task list.
func NewReconciler(projectID uint64, tasks []models.Task, store TaskStore) *Reconciler {
	committed := make(map[uint64]models.ColumnID, len(tasks))
	for _, t := range tasks {
		committed[t.ID] = t.ColumnID
	}

	return &Reconciler{
		projectID: projectID,
		store:     store,
		tasks:     tasks,
		committed: committed,
		now:       time.Now,
	}
}

// BeginMove records the start of a relocation gesture.
func (r *Reconciler) BeginMove(taskID uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(taskID) < 0 {
		return ErrTaskNotFound
	}

	r.activeID = taskID
	return nil
}

// ContinueMove applies one drag-over step to local state. It never issues a
// durable write and never fails: a missing task or target is a no-op.
func (r *Reconciler) ContinueMove(taskID uint64, over Target) {
	r.mu.Lock()
	defer r.mu.Unlock()

	activeIndex := r.indexOf(taskID)
	if activeIndex < 0 {
		return
	}

	if over.taskID != 0 {
		if over.taskID == taskID {
			return
		}
		overIndex := r.indexOf(over.taskID)
		if overIndex < 0 {
			return
		}

		if r.tasks[activeIndex].ColumnID != r.tasks[overIndex].ColumnID {
			// Crossing into the target's column: adopt it, then slot the
			// task next to the target.
			r.tasks[activeIndex].ColumnID = r.tasks[overIndex].ColumnID
		}
		r.tasks = arrayMove(r.tasks, activeIndex, overIndex)
		return
	}

	if over.column.Valid() {
		// Dropped over an empty part of a column: only the column changes,
		// the flat index stays. Position inside the column falls out of the
		// next filter-by-column pass.
		r.tasks[activeIndex].ColumnID = over.column
	}
}

// CommitMove finalizes a gesture. It reads the task's current column from
// local state and issues exactly one background write when it differs from
// the last durable value. The write is not awaited; use Flush to drain.
// Returns the committed column and whether a write was issued.
func (r *Reconciler) CommitMove(taskID uint64) (models.ColumnID, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.activeID = 0

	idx := r.indexOf(taskID)
	if idx < 0 {
		return "", false
	}

	current := r.tasks[idx].ColumnID
	previous, ok := r.committed[taskID]
	if ok && previous == current {
		// Click without drag, or a repeated commit: column membership has
		// not changed, nothing to persist.
		return current, false
	}

	if current == models.ColumnDone {
		now := r.now()
		r.tasks[idx].CompletedAt = &now
	} else {
		r.tasks[idx].CompletedAt = nil
	}
	r.committed[taskID] = current

	r.wg.Add(1)
	go func(id uint64, column models.ColumnID) {
		defer r.wg.Done()
		if err := r.store.UpdateColumn(id, column); err != nil {
			log.Printf("board: column write failed for task %d: %v", id, err)
		}
	}(taskID, current)

	return current, true
}

// CreateTask persists a task and, on success, appends it to local state.
// On failure local state is unchanged and the error is returned.
func (r *Reconciler) CreateTask(task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	task.ProjectID = r.projectID
	if err := r.store.Create(task); err != nil {
		return err
	}

	r.tasks = append(r.tasks, *task)
	r.committed[task.ID] = task.ColumnID
	return nil
}

// DeleteTask removes the task from local state immediately, then issues the
// durable delete. A storage failure is returned to the caller but local
// state stays removed.
func (r *Reconciler) DeleteTask(taskID uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(taskID)
	if idx < 0 {
		return ErrTaskNotFound
	}

	r.tasks = append(r.tasks[:idx], r.tasks[idx+1:]...)
	delete(r.committed, taskID)

	if err := r.store.Delete(taskID); err != nil {
		log.Printf("board: durable delete failed for task %d, local state not reverted: %v", taskID, err)
		return err
	}
	return nil
}

// ActiveID returns the id of the task mid-gesture, or 0.
func (r *Reconciler) ActiveID() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.activeID
}

// Tasks returns a copy of the ordered task list.
func (r *Reconciler) Tasks() []models.Task {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Task, len(r.tasks))
	copy(out, r.tasks)
	return out
}

// Find returns a copy of one task by id.
func (r *Reconciler) Find(taskID uint64) (models.Task, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(taskID)
	if idx < 0 {
		return models.Task{}, false
	}
	return r.tasks[idx], true
}

// ByColumn partitions the ordered task list into the four workflow columns,
// preserving relative order.
func (r *Reconciler) ByColumn() map[models.ColumnID][]models.Task {
	r.mu.Lock()
	defer r.mu.Unlock()

	grouped := make(map[models.ColumnID][]models.Task, len(models.Columns))
	for _, col := range models.Columns {
		grouped[col] = []models.Task{}
	}
	for _, t := range r.tasks {
		grouped[t.ColumnID] = append(grouped[t.ColumnID], t)
	}
	return grouped
}

// Flush waits for all dispatched background writes to finish.
func (r *Reconciler) Flush() {
	r.wg.Wait()
}

// indexOf must be called with the lock held.
func (r *Reconciler) indexOf(taskID uint64) int {
	for i := range r.tasks {
		if r.tasks[i].ID == taskID {
			return i
		}
	}
	return -1
}

// arrayMove removes the element at from and reinserts it at to, keeping the
// relative order of every other element.
func arrayMove(tasks []models.Task, from, to int) []models.Task {
	if from == to || from < 0 || from >= len(tasks) || to < 0 || to >= len(tasks) {
		return tasks
	}

	moved := tasks[from]
	tasks = append(tasks[:from], tasks[from+1:]...)

	out := make([]models.Task, 0, len(tasks)+1)
	out = append(out, tasks[:to]...)
	out = append(out, moved)
	out = append(out, tasks[to:]...)
	return out
}
