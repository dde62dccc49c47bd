package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Verm1lion/SwarmOPS/internal/models"
)

var clock = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func doneTask(id uint64, completedAt time.Time) models.Task {
	t := completedAt
	return models.Task{
		ID:          id,
		ProjectID:   1,
		Title:       fmt.Sprintf("task %d", id),
		ColumnID:    models.ColumnDone,
		CompletedAt: &t,
		CreatedAt:   completedAt.AddDate(0, 0, -3),
	}
}

func openTask(id uint64, column models.ColumnID) models.Task {
	return models.Task{
		ID:        id,
		ProjectID: 1,
		Title:     fmt.Sprintf("task %d", id),
		ColumnID:  column,
		CreatedAt: clock.AddDate(0, 0, -1),
	}
}

func snapshot(tasks ...models.Task) Snapshot {
	return Snapshot{
		Projects: []models.Project{{ID: 1, Name: "Apollo"}},
		Tasks:    tasks,
	}
}

func TestEfficiencyRounding(t *testing.T) {
	tasks := []models.Task{
		doneTask(1, clock),
		doneTask(2, clock),
		doneTask(3, clock),
		doneTask(4, clock),
		openTask(5, models.ColumnTodo),
		openTask(6, models.ColumnTodo),
		openTask(7, models.ColumnTodo),
		openTask(8, models.ColumnIdea),
		openTask(9, models.ColumnIdea),
		openTask(10, models.ColumnInProgress),
	}

	d := Compute(snapshot(tasks...), clock)

	assert.Equal(t, 10, d.TotalTasks)
	assert.Equal(t, 4, d.CompletedTasks)
	assert.Equal(t, 40, d.Efficiency)
}

func TestEfficiencyEmptySnapshot(t *testing.T) {
	d := Compute(Snapshot{}, clock)

	assert.Equal(t, 0, d.Efficiency)
	assert.Equal(t, 0, d.EtcDays)
	assert.Zero(t, d.AverageVelocity)
	assert.Empty(t, d.RecentActivity)
	assert.Empty(t, d.UpcomingDeadlines)
	assert.Len(t, d.Velocity, 7)
}

func TestVelocityHistogramWindow(t *testing.T) {
	tasks := []models.Task{
		doneTask(1, clock),                   // today
		doneTask(2, clock),                   // today
		doneTask(3, clock.AddDate(0, 0, -6)), // oldest day in the window
		doneTask(4, clock.AddDate(0, 0, -7)), // outside the window
	}

	d := Compute(snapshot(tasks...), clock)

	require.Len(t, d.Velocity, 7)
	assert.Equal(t, clock.AddDate(0, 0, -6).Format("2006-01-02"), d.Velocity[0].Date)
	assert.Equal(t, clock.Format("2006-01-02"), d.Velocity[6].Date)
	assert.Equal(t, 1, d.Velocity[0].Count)
	assert.Equal(t, 2, d.Velocity[6].Count)

	// Average divides by the full window even when most days are empty
	assert.InDelta(t, 3.0/7.0, d.AverageVelocity, 1e-9)
}

func TestVelocityFallsBackToCreatedAt(t *testing.T) {
	// A DONE task without a completion timestamp counts on its creation day
	legacy := models.Task{
		ID:        1,
		ProjectID: 1,
		Title:     "legacy",
		ColumnID:  models.ColumnDone,
		CreatedAt: clock.AddDate(0, 0, -2),
	}

	d := Compute(snapshot(legacy), clock)

	assert.Equal(t, 1, d.Velocity[4].Count)
}

func TestEtcDaysRoundsUp(t *testing.T) {
	tasks := []models.Task{
		doneTask(1, clock),
		doneTask(2, clock),
		openTask(3, models.ColumnTodo),
	}

	d := Compute(snapshot(tasks...), clock)

	// 1 pending / (2/7 per day) = 3.5, rounded up
	assert.Equal(t, 4, d.EtcDays)
}

func TestEtcDaysUnknownWhenNoVelocity(t *testing.T) {
	d := Compute(snapshot(openTask(1, models.ColumnTodo)), clock)

	assert.Equal(t, EtcUnknownDays, d.EtcDays)
}

func TestEtcDaysZeroWhenNothingPending(t *testing.T) {
	// Completed outside the window: velocity is zero but nothing is pending
	d := Compute(snapshot(doneTask(1, clock.AddDate(0, 0, -30))), clock)

	assert.Equal(t, 0, d.EtcDays)
}

func TestRecentActivityCap(t *testing.T) {
	tasks := make([]models.Task, 0, 8)
	for i := uint64(1); i <= 8; i++ {
		tasks = append(tasks, openTask(i, models.ColumnTodo))
	}

	d := Compute(snapshot(tasks...), clock)

	require.Len(t, d.RecentActivity, 5)
	assert.Equal(t, uint64(1), d.RecentActivity[0].ID)
	assert.Equal(t, "Apollo", d.RecentActivity[0].ProjectName)
}

func TestUpcomingDeadlinesSortedAndFiltered(t *testing.T) {
	due := func(days int) *time.Time {
		d := clock.AddDate(0, 0, days)
		return &d
	}

	far := openTask(1, models.ColumnTodo)
	far.DueDate = due(10)
	near := openTask(2, models.ColumnInProgress)
	near.DueDate = due(2)
	finished := doneTask(3, clock)
	finished.DueDate = due(1)
	undated := openTask(4, models.ColumnTodo)

	d := Compute(snapshot(far, near, finished, undated), clock)

	require.Len(t, d.UpcomingDeadlines, 2)
	assert.Equal(t, uint64(2), d.UpcomingDeadlines[0].ID)
	assert.Equal(t, uint64(1), d.UpcomingDeadlines[1].ID)
}

func TestUpcomingDeadlinesCap(t *testing.T) {
	tasks := make([]models.Task, 0, 7)
	for i := uint64(1); i <= 7; i++ {
		task := openTask(i, models.ColumnTodo)
		due := clock.AddDate(0, 0, int(i))
		task.DueDate = &due
		tasks = append(tasks, task)
	}

	d := Compute(snapshot(tasks...), clock)

	require.Len(t, d.UpcomingDeadlines, 5)
	assert.Equal(t, uint64(1), d.UpcomingDeadlines[0].ID)
	assert.Equal(t, uint64(5), d.UpcomingDeadlines[4].ID)
}
