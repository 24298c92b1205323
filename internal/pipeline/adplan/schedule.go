package adplan

import (
	"math"

	"github.com/andresuchdata/lgurt/backend-go/internal/domain"
	"github.com/andresuchdata/lgurt/backend-go/internal/numeric"
)

const (
	// WeeklyReduction is the ad-ratio cut applied per Phase 2 week.
	WeeklyReduction = 0.015
	// MaxWeeks caps the Phase 2 schedule.
	MaxWeeks = 12

	checkpointText = "Check organic rank and organic order volume"
)

// weeklyChecklists maps week-number buckets to their action checklist. A
// week uses the first bucket whose lastWeek is >= the week number.
var weeklyChecklists = []struct {
	lastWeek int
	actions  []string
}{
	{1, []string{"Lower long-tail keyword bids 20%", "Negate terms with no conversions in 7 days"}},
	{2, []string{"Negate terms with ACOS 50% above target", "Cut auto-campaign budget 15%"}},
	{4, []string{"Shrink budgets of inefficient campaigns", "Pause terms with >50 clicks and no orders"}},
	{6, []string{"Structural pass: merge similar campaigns", "Raise the share of core keywords"}},
	{math.MaxInt, []string{"Keep monitoring organic rank", "Pause further cuts if rank slips"}},
}

func checklistFor(week int) []string {
	for _, c := range weeklyChecklists {
		if week <= c.lastWeek {
			out := make([]string, len(c.actions))
			copy(out, c.actions)
			return out
		}
	}
	return nil
}

// weeksFor estimates the number of weekly steps to close gap, capped at MaxWeeks.
func weeksFor(gap float64) int {
	if gap <= 0 {
		return 0
	}
	// Tolerate float noise when gap is an exact multiple of the step.
	weeks := int(math.Ceil(gap/WeeklyReduction - 1e-9))
	if weeks > MaxWeeks {
		weeks = MaxWeeks
	}
	return weeks
}

// Schedule builds the weekly de-escalation from start down to target. Each
// week cuts at most WeeklyReduction and never undershoots target.
func Schedule(start, target, dailyRevenue float64) domain.Phase2 {
	gap := math.Max(0, start-target)
	phase := domain.Phase2{
		Gap:  gap,
		Plan: make([]domain.WeeklyStep, 0),
	}
	if gap <= 0 {
		return phase
	}

	ratio := start
	for week := 1; week <= weeksFor(gap); week++ {
		reduction := math.Min(WeeklyReduction, ratio-target)
		if reduction <= 0 {
			break
		}
		ratio -= reduction

		step := domain.WeeklyStep{
			Week:          week,
			TargetAdRatio: numeric.Round(ratio, 4),
			Delta:         numeric.Round(reduction, 4),
			DailyBudget:   numeric.Round(dailyRevenue*ratio, 2),
			Actions:       checklistFor(week),
		}
		if week%2 == 0 {
			cp := checkpointText
			step.Checkpoint = &cp
		}
		phase.Plan = append(phase.Plan, step)
	}

	phase.WeeksNeeded = len(phase.Plan)
	return phase
}
