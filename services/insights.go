package services

import (
	"fmt"
	"sort"
	"strings"

	"rentready/models"
	"rentready/utils"
)

// InsightService aggregates a classified unit list into the summary used
// by the terminal report, the dashboard header and the print view.
type InsightService struct {
	logger *utils.Logger
}

// NewInsightService creates an InsightService.
func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

// Generate computes the category counts and rent statistics.
func (s *InsightService) Generate(units []*models.UnitRecord) *models.ReadyReport {
	report := &models.ReadyReport{
		CategoryCounts: make(map[models.Category]int),
		UnitsByProp:    make(map[string]int),
	}

	if len(units) == 0 {
		return report
	}

	report.TotalUnits = len(units)

	var rentTotal float64
	var priced int

	for _, u := range units {
		report.CategoryCounts[u.Category]++
		if u.Category == models.CategoryRentReady {
			report.ReadyNow++
		}
		if u.HasIssues {
			report.Flagged++
		}
		if u.Property != "" {
			report.UnitsByProp[u.Property]++
		}
		if u.AskingRent > 0 {
			priced++
			rentTotal += u.AskingRent
			if report.MinRent == 0 || u.AskingRent < report.MinRent {
				report.MinRent = u.AskingRent
			}
			if u.AskingRent > report.MaxRent {
				report.MaxRent = u.AskingRent
			}
		}
	}

	if priced > 0 {
		report.AverageRent = round2(rentTotal / float64(priced))
		report.MinRent = round2(report.MinRent)
		report.MaxRent = round2(report.MaxRent)
	}

	return report
}

// Print renders the summary to the terminal after a batch run.
func (s *InsightService) Print(r *models.ReadyReport, source string) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  RENT READY SUMMARY: %s\033[0m\n", source)
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Total units      : \033[1m%d\033[0m\n", r.TotalUnits)
	fmt.Printf("  Ready now        : \033[1;32m%d\033[0m\n", r.ReadyNow)
	fmt.Printf("  Flagged (issues) : \033[1;31m%d\033[0m\n", r.Flagged)
	fmt.Println()

	fmt.Printf("\033[1;33m  Units by Category\033[0m\n")
	fmt.Printf("  %s\n", thin)
	for _, cat := range models.Categories {
		count := r.CategoryCounts[cat]
		if count == 0 {
			continue
		}
		bar := strings.Repeat("█", count)
		fmt.Printf("  %-34s %s (%d)\n", truncate(string(cat), 32), bar, count)
	}
	fmt.Println()

	fmt.Printf("\033[1;33m  Asking Rent\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if r.AverageRent > 0 {
		fmt.Printf("  Average : \033[1;32m$%.2f\033[0m\n", r.AverageRent)
		fmt.Printf("  Minimum : \033[1;32m$%.2f\033[0m\n", r.MinRent)
		fmt.Printf("  Maximum : \033[1;32m$%.2f\033[0m\n", r.MaxRent)
	} else {
		fmt.Printf("  No rent data available\n")
	}
	fmt.Println()

	fmt.Printf("\033[1;33m  Units by Property\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.UnitsByProp) == 0 {
		fmt.Printf("  No property codes found\n")
	} else {
		type propCount struct {
			prop  string
			count int
		}
		var props []propCount
		for prop, cnt := range r.UnitsByProp {
			props = append(props, propCount{prop, cnt})
		}
		sort.Slice(props, func(i, j int) bool {
			return props[i].count > props[j].count
		})
		for _, pc := range props {
			fmt.Printf("  %-12s %s (%d)\n", truncate(pc.prop, 12), strings.Repeat("█", pc.count), pc.count)
		}
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
