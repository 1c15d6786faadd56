package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/stafflink-app/stafflink-backend/internal/dto"
	"github.com/stafflink-app/stafflink-backend/internal/services"
	"github.com/stafflink-app/stafflink-backend/internal/tenant"
)

type MessageHandler struct {
	messageService *services.MessageService
}

func NewMessageHandler(messageService *services.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

func (h *MessageHandler) Contacts(c *fiber.Ctx) error {
	identity, err := tenant.GetIdentity(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	contacts, err := h.messageService.Contacts(identity)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch contacts",
		})
	}
	return c.JSON(contacts)
}

// Thread handles GET /messages/:contactId. Opening a thread marks its
// unread messages as read.
func (h *MessageHandler) Thread(c *fiber.Ctx) error {
	identity, err := tenant.GetIdentity(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	contactID, err := uuid.Parse(c.Params("contactId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid contact ID",
		})
	}

	messages, err := h.messageService.Thread(identity, contactID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch messages",
		})
	}
	return c.JSON(messages)
}

func (h *MessageHandler) Send(c *fiber.Ctx) error {
	identity, err := tenant.GetIdentity(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	message, err := h.messageService.Send(identity, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyMessage), errors.Is(err, services.ErrSelfMessage):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrContactNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to send message",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(message)
}

func (h *MessageHandler) Unread(c *fiber.Ctx) error {
	identity, err := tenant.GetIdentity(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	count, err := h.messageService.UnreadCount(identity)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to count unread messages",
		})
	}
	return c.JSON(fiber.Map{"unread": count})
}
