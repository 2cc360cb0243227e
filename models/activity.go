package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ActivityGroupCreated   = "group_created"
	ActivityMemberJoined   = "member_joined"
	ActivityExpenseAdded   = "expense_added"
	ActivityExpenseDeleted = "expense_deleted"
)

type Activity struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	GroupID     uuid.UUID `gorm:"type:uuid;index" json:"groupId"`
	Actor       string    `gorm:"size:100" json:"actor"`
	Type        string    `gorm:"not null;size:30" json:"type"`
	ReferenceID uuid.UUID `gorm:"type:uuid" json:"referenceId,omitempty"`
	Description string    `json:"description"`
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`
}

func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
