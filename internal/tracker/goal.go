package tracker

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/BhargavPabbaraju/LifeTrackerBackend/internal/goaltype"
	"github.com/BhargavPabbaraju/LifeTrackerBackend/internal/period"
)

// ErrGoalLocked marks rejected edits to a goal's defining fields (domain,
// period, goal_type, goal_data) once schedule entries or tracker entries
// reference it. Descriptive fields stay editable.
var ErrGoalLocked = errors.New("goal has linked occurrences; only descriptive fields may change")

// Goal is a time-scoped commitment of a particular kind within a domain.
// Exactly one period shape holds: year, year+month, year+month+week or
// year+quarter; one goal per domain per period combination.
type Goal struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	DomainID uint   `gorm:"not null;uniqueIndex:idx_goal_domain_period" json:"domain_id"`
	Domain   Domain `json:"-"`
	Tags     []Tag  `gorm:"many2many:goal_tags" json:"tags,omitempty"`

	Year    int  `gorm:"not null;uniqueIndex:idx_goal_domain_period" json:"year"`
	Month   *int `gorm:"uniqueIndex:idx_goal_domain_period" json:"month,omitempty"`
	Week    *int `gorm:"uniqueIndex:idx_goal_domain_period" json:"week,omitempty"`
	Quarter *int `gorm:"uniqueIndex:idx_goal_domain_period" json:"quarter,omitempty"`

	Description string `json:"description"`

	GoalType string         `gorm:"size:100" json:"goal_type"`
	GoalData datatypes.JSON `json:"goal_data,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// A goal exclusively owns its schedule entries; tracker links are weak.
	Schedules []ScheduleEntry `gorm:"foreignKey:GoalID;constraint:OnDelete:CASCADE" json:"schedules,omitempty"`
	Trackers  []TrackerEntry  `gorm:"foreignKey:GoalID;constraint:OnDelete:SET NULL" json:"-"`
}

// Definition resolves the goal's kind via the registry. The second return is
// false for an unregistered goal_type; callers then skip type-dependent work.
func (g *Goal) Definition() (goaltype.Definition, bool) {
	return goaltype.Lookup(g.GoalType)
}

// PeriodRange resolves the goal's period fields to a [start, end] date range.
func (g *Goal) PeriodRange() (time.Time, time.Time, error) {
	return period.Resolve(g.Year, intOrZero(g.Month), intOrZero(g.Week), intOrZero(g.Quarter))
}

// BeforeSave rejects invalid period shapes, goal data missing fields its
// kind requires, and changes to defining fields once occurrences reference
// the goal. An unregistered goal_type skips data validation entirely.
func (g *Goal) BeforeSave(tx *gorm.DB) error {
	if err := period.Validate(g.Year, intOrZero(g.Month), intOrZero(g.Week), intOrZero(g.Quarter)); err != nil {
		return err
	}
	if g.ID != 0 {
		if err := g.checkLocked(tx); err != nil {
			return err
		}
	}
	def, ok := g.Definition()
	if !ok {
		return nil
	}
	return goaltype.Validate(BlobMap(g.GoalData), def.GoalSchema(), "goal data")
}

// checkLocked enforces immutability of defining fields: once any schedule
// entry or tracker entry references the goal, only description and tags may
// change. Reinterpreting stored logs under a different kind or period would
// corrupt every later progress computation.
func (g *Goal) checkLocked(tx *gorm.DB) error {
	session := tx.Session(&gorm.Session{NewDB: true})
	var prev Goal
	if err := session.First(&prev, g.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if g.DomainID == prev.DomainID && g.GoalType == prev.GoalType &&
		g.Year == prev.Year && eqIntPtr(g.Month, prev.Month) &&
		eqIntPtr(g.Week, prev.Week) && eqIntPtr(g.Quarter, prev.Quarter) &&
		bytes.Equal(g.GoalData, prev.GoalData) {
		return nil
	}
	var refs int64
	if err := session.Model(&TrackerEntry{}).Where("goal_id = ?", g.ID).Count(&refs).Error; err != nil {
		return err
	}
	if refs == 0 {
		if err := session.Model(&ScheduleEntry{}).Where("goal_id = ?", g.ID).Count(&refs).Error; err != nil {
			return err
		}
	}
	if refs > 0 {
		return fmt.Errorf("%w: goal %d", ErrGoalLocked, g.ID)
	}
	return nil
}

// ScheduleEntry is a planned occurrence of a goal on a specific date.
// Recurrence rules are not expanded here; entries are stored one by one.
type ScheduleEntry struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	GoalID uint `gorm:"not null;index" json:"goal_id"`

	Date        time.Time `gorm:"type:date;not null" json:"date"`
	StartTime   *string   `gorm:"size:5" json:"start_time,omitempty"` // "HH:MM"
	DurationMin *int      `json:"duration_min,omitempty"`

	PlanData datatypes.JSON `json:"plan_data,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Trackers []TrackerEntry `gorm:"foreignKey:ScheduleID;constraint:OnDelete:SET NULL" json:"-"`
}

// BeforeSave validates plan data against the owning goal's plan schema when
// the goal's kind is registered.
func (s *ScheduleEntry) BeforeSave(tx *gorm.DB) error {
	if s.GoalID == 0 {
		return nil
	}
	var g Goal
	if err := tx.Session(&gorm.Session{NewDB: true}).First(&g, s.GoalID).Error; err != nil {
		return err
	}
	def, ok := g.Definition()
	if !ok {
		return nil
	}
	return goaltype.Validate(BlobMap(s.PlanData), def.PlanSchema(), "plan data")
}

func intOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func eqIntPtr(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
