package ledger

import (
	"math"
	"time"

	"github.com/ayoisaiah/cogload/internal/models"
	"github.com/ayoisaiah/cogload/internal/timeutil"
)

// DefaultDailyBudget is the number of points available per day.
const DefaultDailyBudget = 20.0

// Debt returns the overdraft of total against budget, never negative.
func Debt(total, budget float64) float64 {
	return math.Max(0, total-budget)
}

// DayTotals sums the effective cost of every event per calendar day,
// regardless of whether it has happened yet.
func DayTotals(events []models.Event) map[string]float64 {
	totals := make(map[string]float64)

	for i := range events {
		e := &events[i]
		totals[timeutil.DayKey(e.StartTime)] += EffectiveCost(e)
	}

	return totals
}

// MaxDailyDebt returns the largest daily overdraft across totals.
func MaxDailyDebt(totals map[string]float64, budget float64) float64 {
	var worst float64

	for _, total := range totals {
		worst = math.Max(worst, Debt(total, budget))
	}

	return worst
}

// Compute derives the budget state of the week containing asOf. Events must
// carry an up to date CalculatedCost.
func Compute(
	events []models.Event,
	asOf time.Time,
	dailyBudget float64,
) models.Budget {
	weekStart, weekEnd := timeutil.WeekRange(asOf)

	days := make([]models.DayBudget, timeutil.DaysInAWeek)
	index := make(map[string]int, len(days))

	for i := range days {
		days[i].Date = weekStart.AddDate(0, 0, i)
		index[timeutil.DayKey(days[i].Date)] = i
	}

	for i := range events {
		e := &events[i]

		if e.StartTime.Before(weekStart) || !e.StartTime.Before(weekEnd) {
			continue
		}

		idx, ok := index[timeutil.DayKey(e.StartTime)]
		if !ok {
			continue
		}

		c := EffectiveCost(e)

		days[idx].Scheduled += c
		if Spent(e, asOf) {
			days[idx].Spent += c
		}
	}

	b := models.Budget{
		AsOf:         asOf,
		Days:         days,
		DailyBudget:  dailyBudget,
		WeeklyBudget: dailyBudget * timeutil.DaysInAWeek,
	}

	today := timeutil.DayKey(asOf)

	for i := range days {
		days[i].Debt = Debt(days[i].Spent, dailyBudget)

		b.WeeklySpent += days[i].Spent
		b.WeeklyScheduled += days[i].Scheduled
		b.WeeklyDebt += days[i].Debt

		if timeutil.DayKey(days[i].Date) == today {
			b.DailySpent = days[i].Spent
			b.DailyScheduled = days[i].Scheduled
			b.DailyDebt = days[i].Debt
		}
	}

	b.DailyRemaining = dailyBudget - b.DailySpent

	return b
}
