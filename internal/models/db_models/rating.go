package db_models

import "github.com/google/uuid"

// Rating is a single vote; the aggregate lives on the rated row.
type Rating struct {
	BaseModel
	ContentModel string     `gorm:"size:50;not null;index:idx_rating_object"`
	ObjectID     uuid.UUID  `gorm:"type:uuid;not null;index:idx_rating_object"`
	UserID       *uuid.UUID `gorm:"type:uuid;index"`
	Value        int        `gorm:"not null;check:value >= 1 AND value <= 5"`
}
