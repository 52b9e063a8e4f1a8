package tracker

// Domain is a top-level category goals and tracker entries belong to
// (a subject, a spending area, etc).
type Domain struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;size:100;not null" json:"name"`
}

// Tag is a free-form label shared by goals and tracker entries.
type Tag struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;size:100;not null" json:"name"`
}
