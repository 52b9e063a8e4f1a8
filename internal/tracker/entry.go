package tracker

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/BhargavPabbaraju/LifeTrackerBackend/internal/goaltype"
)

// ErrInvalidStatus marks a status outside the known lifecycle labels.
var ErrInvalidStatus = errors.New("invalid tracker status")

// Status is a flat lifecycle label on a tracker entry. Any status may move
// to any other; it never gates progress computation.
type Status string

const (
	StatusPlanned Status = "planned"
	StatusDone    Status = "done"
	StatusPartial Status = "partial"
	StatusSkipped Status = "skipped"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPlanned, StatusDone, StatusPartial, StatusSkipped:
		return true
	}
	return false
}

// TrackerEntry records what actually happened on a date. Its links to a goal
// and a schedule entry are weak: both are nullable and nulled out, not
// cascaded, when the referent is deleted. A standalone entry with neither
// link is valid.
type TrackerEntry struct {
	ID         uint  `gorm:"primaryKey" json:"id"`
	GoalID     *uint `gorm:"index" json:"goal_id,omitempty"`
	ScheduleID *uint `gorm:"index" json:"schedule_id,omitempty"`

	DomainID uint   `gorm:"not null;index" json:"domain_id"`
	Domain   Domain `json:"-"`
	Tags     []Tag  `gorm:"many2many:tracker_tags" json:"tags,omitempty"`

	Date        time.Time `gorm:"type:date;not null" json:"date"`
	Description string    `json:"description"`

	PlannedStartTime   *string `gorm:"size:5" json:"planned_start_time,omitempty"`
	PlannedDurationMin *int    `json:"planned_duration_min,omitempty"`
	ActualStartTime    *string `gorm:"size:5" json:"actual_start_time,omitempty"`
	ActualDurationMin  *int    `json:"actual_duration_min,omitempty"`

	LogData datatypes.JSON `json:"log_data,omitempty"`
	Status  Status         `gorm:"type:varchar(10);default:'planned'" json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeSave validates log data against the linked goal's log schema. No
// goal, or a goal of an unregistered kind, skips validation.
func (t *TrackerEntry) BeforeSave(tx *gorm.DB) error {
	if t.Status == "" {
		t.Status = StatusPlanned
	}
	if !t.Status.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidStatus, t.Status)
	}
	if t.GoalID == nil {
		return nil
	}
	var g Goal
	if err := tx.Session(&gorm.Session{NewDB: true}).First(&g, *t.GoalID).Error; err != nil {
		return err
	}
	def, ok := g.Definition()
	if !ok {
		return nil
	}
	return goaltype.Validate(BlobMap(t.LogData), def.LogSchema(), "log data")
}
