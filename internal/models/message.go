package models

import (
	"time"

	"github.com/google/uuid"
)

// Message is a directed two-party message. Immutable after creation except
// for the read flag, which is flipped in a batch when the recipient opens
// the thread.
type Message struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SenderID    uuid.UUID `gorm:"type:uuid;not null;index" json:"sender_id"`
	RecipientID uuid.UUID `gorm:"type:uuid;not null;index" json:"recipient_id"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	Read        bool      `gorm:"default:false" json:"read"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
