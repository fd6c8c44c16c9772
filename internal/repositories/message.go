package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"anvaya/anvaya-api/internal/models"
)

type MessageRepository interface {
	Create(message *models.Message) error
	// FindConversation returns every message exchanged between the two
	// users, oldest first.
	FindConversation(userID, peerID uuid.UUID) ([]models.Message, error)
	// MarkConversationRead marks all unread messages from sender to
	// recipient as read.
	MarkConversationRead(senderID, recipientID uuid.UUID) error
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(message *models.Message) error {
	if err := r.db.Create(message).Error; err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

func (r *messageRepository) FindConversation(userID, peerID uuid.UUID) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			userID, peerID, peerID, userID).
		Order("created_at ASC").
		Find(&messages).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find conversation: %w", err)
	}

	return messages, nil
}

func (r *messageRepository) MarkConversationRead(senderID, recipientID uuid.UUID) error {
	err := r.db.Model(&models.Message{}).
		Where("sender_id = ? AND recipient_id = ? AND read_at IS NULL", senderID, recipientID).
		Update("read_at", time.Now()).Error

	if err != nil {
		return fmt.Errorf("failed to mark conversation read: %w", err)
	}

	return nil
}
