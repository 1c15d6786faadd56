package dto

import "github.com/google/uuid"

type SendMessageRequest struct {
	RecipientID uuid.UUID `json:"recipient_id"`
	Content     string    `json:"content"`
}

type ContactResponse struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Unread    int64     `json:"unread"`
}
