package tracker

import (
	"time"

	"gorm.io/gorm"

	"github.com/BhargavPabbaraju/LifeTrackerBackend/internal/period"
)

// GoalReview is a periodic snapshot of one goal. OverallProgress is
// recomputed and persisted each time the review is saved; it is NOT kept in
// sync with later tracker edits until the next explicit save.
type GoalReview struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	GoalID uint `gorm:"not null;uniqueIndex" json:"goal_id"`

	Notes       string `json:"notes,omitempty"`
	Adjustments string `json:"adjustments,omitempty"`

	OverallProgress float64 `json:"overall_progress"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DomainReview is a rollup snapshot over all goals of a domain in a period.
// SummaryProgress is the arithmetic mean of the matching goals' review
// progress, persisted on save.
type DomainReview struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	DomainID uint `gorm:"not null;uniqueIndex:idx_review_domain_period" json:"domain_id"`

	Year    int  `gorm:"not null;uniqueIndex:idx_review_domain_period" json:"year"`
	Month   *int `gorm:"uniqueIndex:idx_review_domain_period" json:"month,omitempty"`
	Week    *int `gorm:"uniqueIndex:idx_review_domain_period" json:"week,omitempty"`
	Quarter *int `gorm:"uniqueIndex:idx_review_domain_period" json:"quarter,omitempty"`

	Notes       string `json:"notes,omitempty"`
	Adjustments string `json:"adjustments,omitempty"`

	SummaryProgress float64 `json:"summary_progress"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeSave rejects invalid period shapes, same rules as Goal.
func (r *DomainReview) BeforeSave(tx *gorm.DB) error {
	return period.Validate(r.Year, intOrZero(r.Month), intOrZero(r.Week), intOrZero(r.Quarter))
}
