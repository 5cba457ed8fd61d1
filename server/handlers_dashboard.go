package server

import (
	"net/http"
)

// DashboardSummary is the cockpit overview served to every role
type DashboardSummary struct {
	ProjectName     string          `json:"project_name"`
	TotalBudget     float64         `json:"total_budget"`
	TotalSpent      float64         `json:"total_spent"`
	ReserveBudget   float64         `json:"reserve_budget"`
	SpentPercent    float64         `json:"spent_percent"`
	SubProjectCount int             `json:"sub_project_count"`
	CompletedCount  int             `json:"completed_count"`
	InProgressCount int             `json:"in_progress_count"`
	DelayedCount    int             `json:"delayed_count"`
	OverallProgress float64         `json:"overall_progress"`
	Categories      []CategorySpend `json:"categories"`
}

type CategorySpend struct {
	Name      string  `json:"name"`
	Allocated float64 `json:"allocated"`
	Spent     float64 `json:"spent"`
}

type subProject struct {
	status    string
	allocated float64
	progress  float64
}

// Development fixture, in units of 10k
var (
	fixtureProjectName = "Mine Expansion Phase II"
	fixtureTotalBudget = 52000.0
	fixtureReserveRate = 0.05
	fixtureCategories  = []CategorySpend{
		{Name: "Civil works", Allocated: 21000, Spent: 9800},
		{Name: "Equipment", Allocated: 18500, Spent: 7200},
		{Name: "Installation", Allocated: 6500, Spent: 1900},
		{Name: "Other costs", Allocated: 3400, Spent: 1250},
	}
	fixtureSubProjects = []subProject{
		{status: "completed", allocated: 8000, progress: 100},
		{status: "in_progress", allocated: 14000, progress: 55},
		{status: "in_progress", allocated: 12500, progress: 40},
		{status: "delayed", allocated: 9000, progress: 20},
		{status: "not_started", allocated: 5900, progress: 0},
	}
)

func (s *Server) DashboardSummaryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, buildSummary())
	}
}

func buildSummary() DashboardSummary {
	summary := DashboardSummary{
		ProjectName:     fixtureProjectName,
		TotalBudget:     fixtureTotalBudget,
		ReserveBudget:   fixtureTotalBudget * fixtureReserveRate,
		SubProjectCount: len(fixtureSubProjects),
		Categories:      append([]CategorySpend(nil), fixtureCategories...),
	}
	for _, c := range fixtureCategories {
		summary.TotalSpent += c.Spent
	}
	summary.SpentPercent = summary.TotalSpent / summary.TotalBudget * 100

	var allocated, weighted float64
	for _, sp := range fixtureSubProjects {
		switch sp.status {
		case "completed":
			summary.CompletedCount++
		case "in_progress":
			summary.InProgressCount++
		case "delayed":
			summary.DelayedCount++
		}
		allocated += sp.allocated
		weighted += sp.progress * sp.allocated
	}
	if allocated > 0 {
		summary.OverallProgress = weighted / allocated
	}
	return summary
}
