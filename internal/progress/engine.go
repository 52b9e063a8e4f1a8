// Package progress computes derived progress values over stored goals and
// tracker entries. All computation happens on already-fetched rows; the
// engine never fails on empty inputs or unregistered goal kinds, it returns
// zero instead so callers can always render a number.
package progress

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/BhargavPabbaraju/LifeTrackerBackend/internal/goaltype"
	"github.com/BhargavPabbaraju/LifeTrackerBackend/internal/period"
	"github.com/BhargavPabbaraju/LifeTrackerBackend/internal/tracker"
)

// PeriodFilter narrows goals to a period. Zero components are unconstrained,
// so a year-only filter covers every goal of that year regardless of its
// month/week/quarter granularity.
type PeriodFilter struct {
	Year    int
	Month   int
	Week    int
	Quarter int
}

// Engine orchestrates goal-type dispatch over the store.
type Engine struct {
	db *gorm.DB
}

func NewEngine(db *gorm.DB) *Engine {
	return &Engine{db: db}
}

// OccurrenceProgress computes one entry's progress value. It is nil when the
// entry has no goal or the goal's kind is unregistered, and a zero value
// when log data is absent.
func (e *Engine) OccurrenceProgress(entry *tracker.TrackerEntry) (*goaltype.Value, error) {
	if entry.GoalID == nil {
		return nil, nil
	}
	var g tracker.Goal
	if err := e.db.First(&g, *entry.GoalID).Error; err != nil {
		return nil, fmt.Errorf("load goal %d: %w", *entry.GoalID, err)
	}
	def, ok := g.Definition()
	if !ok {
		return nil, nil
	}
	v := def.Progress(tracker.BlobMap(entry.LogData))
	return &v, nil
}

// GoalProgress aggregates every tracker entry linked to the goal into its
// overall percentage. An unregistered goal kind short-circuits to 0.
func (e *Engine) GoalProgress(g *tracker.Goal) (float64, error) {
	def, ok := g.Definition()
	if !ok {
		return 0, nil
	}
	var entries []tracker.TrackerEntry
	if err := e.db.Where("goal_id = ?", g.ID).Find(&entries).Error; err != nil {
		return 0, fmt.Errorf("load tracker entries for goal %d: %w", g.ID, err)
	}
	logs := make([]map[string]any, 0, len(entries))
	for _, entry := range entries {
		logs = append(logs, tracker.BlobMap(entry.LogData))
	}
	return def.Aggregate(tracker.BlobMap(g.GoalData), logs), nil
}

// DomainProgress is the arithmetic mean of overall_progress across the goal
// reviews of goals matching domain+filter, 0 when nothing matches.
func (e *Engine) DomainProgress(domainID uint, f PeriodFilter) (float64, error) {
	if err := period.Validate(f.Year, f.Month, f.Week, f.Quarter); err != nil {
		return 0, err
	}
	goals, err := e.matchGoals(domainID, f)
	if err != nil {
		return 0, err
	}
	if len(goals) == 0 {
		return 0, nil
	}
	ids := make([]uint, 0, len(goals))
	for _, g := range goals {
		ids = append(ids, g.ID)
	}
	var reviews []tracker.GoalReview
	if err := e.db.Where("goal_id IN ?", ids).Find(&reviews).Error; err != nil {
		return 0, fmt.Errorf("load goal reviews: %w", err)
	}
	if len(reviews) == 0 {
		return 0, nil
	}
	var sum float64
	for _, rv := range reviews {
		sum += rv.OverallProgress
	}
	return sum / float64(len(reviews)), nil
}

// RefreshGoalReview recomputes the review's overall progress from the goal's
// current tracker entries and persists it. The stored value stays as
// computed here until the next explicit save.
func (e *Engine) RefreshGoalReview(rv *tracker.GoalReview) error {
	var g tracker.Goal
	if err := e.db.First(&g, rv.GoalID).Error; err != nil {
		return fmt.Errorf("load goal %d: %w", rv.GoalID, err)
	}
	pct, err := e.GoalProgress(&g)
	if err != nil {
		return err
	}
	rv.OverallProgress = pct
	return e.db.Save(rv).Error
}

// RefreshDomainReview recomputes the rollup and persists it.
func (e *Engine) RefreshDomainReview(rv *tracker.DomainReview) error {
	f := PeriodFilter{
		Year:    rv.Year,
		Month:   intFrom(rv.Month),
		Week:    intFrom(rv.Week),
		Quarter: intFrom(rv.Quarter),
	}
	pct, err := e.DomainProgress(rv.DomainID, f)
	if err != nil {
		return err
	}
	rv.SummaryProgress = pct
	return e.db.Save(rv).Error
}

func (e *Engine) matchGoals(domainID uint, f PeriodFilter) ([]tracker.Goal, error) {
	q := e.db.Where("domain_id = ? AND year = ?", domainID, f.Year)
	if f.Month != 0 {
		q = q.Where("month = ?", f.Month)
	}
	if f.Week != 0 {
		q = q.Where("week = ?", f.Week)
	}
	if f.Quarter != 0 {
		q = q.Where("quarter = ?", f.Quarter)
	}
	var goals []tracker.Goal
	if err := q.Find(&goals).Error; err != nil {
		return nil, fmt.Errorf("match goals: %w", err)
	}
	return goals, nil
}

func intFrom(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
