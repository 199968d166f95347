// Package stats reduces sets of work reports into the dashboard summary and
// the per-user supervision groups.
package stats

import (
	"github.com/JoelBarbosa07/nomina-variable/models"
)

// A full week is 40 hours; weekly progress is expressed against it.
const fullWeekHours = 40

type Dashboard struct {
	TotalJobs       int            `json:"totalJobs"`
	TotalHours      float64        `json:"totalHours"`
	TotalEarnings   float64        `json:"totalEarnings"`
	PendingJobs     int            `json:"pendingJobs"`
	WeeklyProgress  float64        `json:"weeklyProgress"`
	JobDistribution map[string]int `json:"jobDistribution"`
}

// BuildDashboard reduces all of one user's reports into summary statistics.
// Monetary totals and the job distribution cover approved reports only;
// pendingJobs counts over the full set. An empty input yields zero values.
// WeeklyProgress is not clamped; values above 100 are the caller's to cap.
func BuildDashboard(reports []models.WorkReport) Dashboard {
	d := Dashboard{JobDistribution: make(map[string]int)}
	for _, r := range reports {
		switch r.Status {
		case models.StatusApproved:
			d.TotalJobs++
			d.TotalHours += r.HoursWorked
			d.TotalEarnings += r.CalculatedAmount
			d.JobDistribution[r.EffectiveJobType()]++
		case models.StatusPending:
			d.PendingJobs++
		}
	}
	d.WeeklyProgress = d.TotalHours / fullWeekHours * 100
	return d
}

type UserGroup struct {
	User          models.UserSummary  `json:"user"`
	Reports       []models.WorkReport `json:"reports"`
	TotalHours    float64             `json:"totalHours"`
	TotalEarnings float64             `json:"totalEarnings"`
	PendingCount  int                 `json:"pendingCount"`
}

// GroupByUser partitions reports by owning user, preserving the first-seen
// order of the input. Hour and earnings totals sum approved reports only;
// pendingCount counts pending ones. Reports whose User association was not
// loaded still group correctly, carrying just the owner id.
func GroupByUser(reports []models.WorkReport) []*UserGroup {
	groups := make([]*UserGroup, 0)
	byUser := make(map[string]*UserGroup)

	for _, r := range reports {
		g, ok := byUser[r.UserID]
		if !ok {
			g = &UserGroup{Reports: make([]models.WorkReport, 0)}
			if r.User != nil {
				g.User = r.User.Summary()
			} else {
				g.User = models.UserSummary{ID: r.UserID}
			}
			byUser[r.UserID] = g
			groups = append(groups, g)
		}

		g.Reports = append(g.Reports, r)
		switch r.Status {
		case models.StatusApproved:
			g.TotalHours += r.HoursWorked
			g.TotalEarnings += r.CalculatedAmount
		case models.StatusPending:
			g.PendingCount++
		}
	}
	return groups
}
