package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stafflink-app/stafflink-backend/internal/dto"
	"github.com/stafflink-app/stafflink-backend/internal/models"
	"github.com/stafflink-app/stafflink-backend/internal/realtime"
	"github.com/stafflink-app/stafflink-backend/internal/tenant"
)

var (
	ErrEmptyMessage    = errors.New("message content is empty")
	ErrSelfMessage     = errors.New("cannot message yourself")
	ErrContactNotFound = errors.New("recipient is not in your company")
)

type MessageService struct {
	db  *gorm.DB
	hub *realtime.Hub
}

func NewMessageService(db *gorm.DB, hub *realtime.Hub) *MessageService {
	return &MessageService{db: db, hub: hub}
}

// Contacts lists everyone holding a role in the caller's company, excluding
// the caller, with their unread count from that contact.
func (s *MessageService) Contacts(identity *tenant.Identity) ([]dto.ContactResponse, error) {
	if identity.CompanyID == nil {
		return []dto.ContactResponse{}, nil
	}

	var assignments []models.UserRole
	err := s.db.Scopes(tenant.ForCompany(*identity.CompanyID)).
		Where("user_id <> ?", identity.UserID).
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}

	contacts := make([]dto.ContactResponse, 0, len(assignments))
	for _, assignment := range assignments {
		var profile models.Profile
		if err := s.db.First(&profile, "id = ?", assignment.UserID).Error; err != nil {
			continue
		}

		var unread int64
		s.db.Model(&models.Message{}).
			Where("sender_id = ? AND recipient_id = ? AND read = false", assignment.UserID, identity.UserID).
			Count(&unread)

		contacts = append(contacts, dto.ContactResponse{
			ID:        profile.ID,
			FirstName: profile.FirstName,
			LastName:  profile.LastName,
			Email:     profile.Email,
			Role:      assignment.Role,
			Unread:    unread,
		})
	}
	return contacts, nil
}

// Thread returns the two-party conversation in chronological order and, as
// a side effect, marks every unread message addressed to the caller as read
// in one batch update.
func (s *MessageService) Thread(identity *tenant.Identity, contactID uuid.UUID) ([]models.Message, error) {
	var messages []models.Message
	err := s.db.Scopes(tenant.Thread(identity.UserID, contactID)).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	result := s.db.Model(&models.Message{}).
		Where("sender_id = ? AND recipient_id = ? AND read = false", contactID, identity.UserID).
		Update("read", true)
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected > 0 {
		for i := range messages {
			if messages[i].RecipientID == identity.UserID {
				messages[i].Read = true
			}
		}
		// Read receipts are changes too; the sender's panel re-fetches.
		s.hub.Publish(realtime.Event{
			Table:      realtime.TableMessages,
			Action:     realtime.ActionUpdate,
			ActorID:    identity.UserID,
			Recipients: []uuid.UUID{contactID},
		})
	}

	return messages, nil
}

// Send stores a trimmed message. Whitespace-only content is rejected and the
// recipient must share a company with the caller.
func (s *MessageService) Send(identity *tenant.Identity, req *dto.SendMessageRequest) (*models.Message, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrEmptyMessage
	}
	if req.RecipientID == identity.UserID {
		return nil, ErrSelfMessage
	}
	if identity.CompanyID == nil {
		return nil, ErrContactNotFound
	}

	var assignment models.UserRole
	err := s.db.Scopes(tenant.ForCompany(*identity.CompanyID)).
		Where("user_id = ?", req.RecipientID).First(&assignment).Error
	if err != nil {
		return nil, ErrContactNotFound
	}

	message := models.Message{
		ID:          uuid.New(),
		SenderID:    identity.UserID,
		RecipientID: req.RecipientID,
		Content:     content,
		Read:        false,
	}

	if err := s.db.Create(&message).Error; err != nil {
		return nil, err
	}

	s.hub.Publish(realtime.Event{
		Table:      realtime.TableMessages,
		Action:     realtime.ActionInsert,
		RowID:      message.ID,
		ActorID:    identity.UserID,
		Recipients: []uuid.UUID{identity.UserID, req.RecipientID},
	})
	return &message, nil
}

// UnreadCount feeds the dashboard badge.
func (s *MessageService) UnreadCount(identity *tenant.Identity) (int64, error) {
	var count int64
	err := s.db.Model(&models.Message{}).
		Where("recipient_id = ? AND read = false", identity.UserID).
		Count(&count).Error
	return count, err
}
