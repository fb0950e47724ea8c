package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ExerciseType string

const (
	ExerciseImageText     ExerciseType = "image_text"
	ExerciseMatchingPairs ExerciseType = "matching_pairs"
	ExerciseFillInBlank   ExerciseType = "fill_in_blank"
	ExerciseListening     ExerciseType = "listening_comprehension"
)

// Exercise belongs to a lesson and references one image. OrderIndex values
// within a lesson are always exactly 0..N-1, no gaps or duplicates; the
// ordering service and the delete path keep that invariant.
type Exercise struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	LessonID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"lesson_id"`
	Lesson       Lesson         `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	ImageID      uuid.UUID      `gorm:"type:uuid;not null" json:"image_id"`
	Image        Image          `gorm:"constraint:OnDelete:RESTRICT;" json:"-"`
	ExerciseType ExerciseType   `gorm:"type:varchar(30);not null" json:"exercise_type"`
	OrderIndex   int            `gorm:"not null;default:0" json:"order_index"`
	Metadata     datatypes.JSON `json:"metadata"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (e *Exercise) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// ExerciseAttempt is one learner answer to one exercise.
type ExerciseAttempt struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User       User      `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	ExerciseID uuid.UUID `gorm:"type:uuid;not null;index" json:"exercise_id"`
	Exercise   Exercise  `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	Correct    bool      `gorm:"not null" json:"correct"`
	AnsweredAt time.Time `gorm:"autoCreateTime" json:"answered_at"`
}

func (a *ExerciseAttempt) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
