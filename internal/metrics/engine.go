package metrics

import (
	"math"
	"sort"
	"time"

	"github.com/Verm1lion/SwarmOPS/internal/models"
)

// EtcUnknownDays is the sentinel for "pending work exists but velocity is
// zero": the projection is unknown, not a real day count.
const EtcUnknownDays = 999

const velocityWindowDays = 7

const listLimit = 5

// Snapshot is a point-in-time read of projects and tasks. Tasks are expected
// in creation-time descending order, the persistence fetch order.
type Snapshot struct {
	Projects []models.Project
	Tasks    []models.Task
}

// DayCount is one bar of the velocity histogram.
type DayCount struct {
	Date  string `json:"date"`
	Day   string `json:"day"`
	Count int    `json:"count"`
}

// ActivityItem is a display projection of a recently created task.
type ActivityItem struct {
	ID          uint64    `json:"id"`
	ProjectName string    `json:"project_name"`
	Title       string    `json:"title"`
	CreatedAt   time.Time `json:"created_at"`
}

// Deadline is one row of the upcoming-deadlines list.
type Deadline struct {
	ID          uint64          `json:"id"`
	Title       string          `json:"title"`
	ProjectName string          `json:"project_name"`
	DueDate     time.Time       `json:"due_date"`
	Priority    models.Priority `json:"priority"`
}

// Dashboard is the derived view model.
type Dashboard struct {
	ActiveProjects    int            `json:"active_projects"`
	TotalTasks        int            `json:"total_tasks"`
	CompletedTasks    int            `json:"completed_tasks"`
	Efficiency        int            `json:"efficiency"`
	Velocity          []DayCount     `json:"velocity"`
	AverageVelocity   float64        `json:"average_velocity"`
	EtcDays           int            `json:"etc_days"`
	RecentActivity    []ActivityItem `json:"recent_activity"`
	UpcomingDeadlines []Deadline     `json:"upcoming_deadlines"`
}

// Compute derives the full dashboard from a snapshot. It is pure: no I/O, no
// cached state, recomputed from scratch on every call.
func Compute(snap Snapshot, now time.Time) Dashboard {
	projectNames := make(map[uint64]string, len(snap.Projects))
	for _, p := range snap.Projects {
		projectNames[p.ID] = p.Name
	}

	total := len(snap.Tasks)
	completed := 0
	for i := range snap.Tasks {
		if snap.Tasks[i].ColumnID == models.ColumnDone {
			completed++
		}
	}

	efficiency := 0
	if total > 0 {
		efficiency = int(math.Round(float64(completed) / float64(total) * 100))
	}

	velocity := velocityHistogram(snap.Tasks, now)
	sum := 0
	for _, d := range velocity {
		sum += d.Count
	}
	// Divide by the full window, not the days with data: a smoothed daily
	// rate rather than a conditional average.
	averageVelocity := float64(sum) / float64(velocityWindowDays)

	pending := total - completed
	etcDays := 0
	if averageVelocity > 0 {
		etcDays = int(math.Ceil(float64(pending) / averageVelocity))
	} else if pending > 0 {
		etcDays = EtcUnknownDays
	}

	return Dashboard{
		ActiveProjects:    len(snap.Projects),
		TotalTasks:        total,
		CompletedTasks:    completed,
		Efficiency:        efficiency,
		Velocity:          velocity,
		AverageVelocity:   averageVelocity,
		EtcDays:           etcDays,
		RecentActivity:    recentActivity(snap.Tasks, projectNames),
		UpcomingDeadlines: upcomingDeadlines(snap.Tasks, projectNames),
	}
}

// velocityHistogram counts completions per calendar day over the trailing
// window, oldest day first, today inclusive. Tasks in DONE without a
// completion timestamp fall back to their creation day; they predate
// completion tracking.
func velocityHistogram(tasks []models.Task, now time.Time) []DayCount {
	days := make([]DayCount, 0, velocityWindowDays)
	for i := velocityWindowDays - 1; i >= 0; i-- {
		d := now.AddDate(0, 0, -i)
		days = append(days, DayCount{
			Date: d.Format("2006-01-02"),
			Day:  d.Format("Mon")[:1],
		})
	}

	for i := range tasks {
		t := &tasks[i]
		if t.ColumnID != models.ColumnDone {
			continue
		}

		var day string
		if t.CompletedAt != nil {
			day = t.CompletedAt.Format("2006-01-02")
		} else {
			day = t.CreatedAt.Format("2006-01-02")
		}

		for j := range days {
			if days[j].Date == day {
				days[j].Count++
				break
			}
		}
	}

	return days
}

// recentActivity projects the five most recently created tasks. Input order
// is creation-time descending, so the head of the slice is the head of the
// feed.
func recentActivity(tasks []models.Task, projectNames map[uint64]string) []ActivityItem {
	items := make([]ActivityItem, 0, listLimit)
	for i := range tasks {
		if len(items) == listLimit {
			break
		}
		t := &tasks[i]
		items = append(items, ActivityItem{
			ID:          t.ID,
			ProjectName: nameOr(projectNames, t.ProjectID, "Unknown Project"),
			Title:       t.Title,
			CreatedAt:   t.CreatedAt,
		})
	}
	return items
}

// upcomingDeadlines lists unfinished tasks that have a due date, soonest
// first, capped at five. Tasks without a due date are excluded outright.
func upcomingDeadlines(tasks []models.Task, projectNames map[uint64]string) []Deadline {
	deadlines := make([]Deadline, 0)
	for i := range tasks {
		t := &tasks[i]
		if t.ColumnID == models.ColumnDone || t.DueDate == nil {
			continue
		}
		deadlines = append(deadlines, Deadline{
			ID:          t.ID,
			Title:       t.Title,
			ProjectName: nameOr(projectNames, t.ProjectID, "Project"),
			DueDate:     *t.DueDate,
			Priority:    t.Priority,
		})
	}

	sort.SliceStable(deadlines, func(i, j int) bool {
		return deadlines[i].DueDate.Before(deadlines[j].DueDate)
	})

	if len(deadlines) > listLimit {
		deadlines = deadlines[:listLimit]
	}
	return deadlines
}

func nameOr(names map[uint64]string, id uint64, fallback string) string {
	if name, ok := names[id]; ok {
		return name
	}
	return fallback
}
