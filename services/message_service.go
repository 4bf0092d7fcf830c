package services

import (
	"homestay/config"
	"homestay/dto"
	"homestay/models"
)

// SaveMessage lưu tin nhắn giữa hai người dùng
func SaveMessage(senderID, receiverID uint, accommodationID *uint, content string) (models.Message, error) {
	message := models.Message{
		SenderID:        senderID,
		ReceiverID:      receiverID,
		AccommodationID: accommodationID,
		Content:         content,
	}

	if err := config.DB.Create(&message).Error; err != nil {
		return message, err
	}

	err := config.DB.Preload("Sender").First(&message, message.ID).Error
	return message, err
}

// GetConversation trả về tin nhắn giữa hai người, cũ trước mới sau
func GetConversation(userID, partnerID uint, page, limit int) ([]models.Message, int64, error) {
	var total int64
	base := config.DB.Model(&models.Message{}).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, partnerID, partnerID, userID)

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var messages []models.Message
	err := config.DB.Preload("Sender").
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, partnerID, partnerID, userID).
		Order("created_at ASC").
		Offset(page * limit).
		Limit(limit).
		Find(&messages).Error

	return messages, total, err
}

// MarkConversationRead đánh dấu đã đọc mọi tin nhắn partner gửi cho user
func MarkConversationRead(userID, partnerID uint) error {
	return config.DB.Model(&models.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND is_read = ?", partnerID, userID, false).
		Update("is_read", true).Error
}

// GetConversations liệt kê các cuộc trò chuyện của user kèm số tin chưa đọc
func GetConversations(userID uint) ([]dto.ConversationResponse, error) {
	var messages []models.Message
	if err := config.DB.Preload("Sender").Preload("Receiver").
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&messages).Error; err != nil {
		return nil, err
	}

	conversations := make([]dto.ConversationResponse, 0)
	seen := map[uint]bool{}

	for _, message := range messages {
		partnerID := message.SenderID
		partner := message.Sender
		if partnerID == userID {
			partnerID = message.ReceiverID
			partner = message.Receiver
		}
		if seen[partnerID] {
			continue
		}
		seen[partnerID] = true

		var unread int64
		if err := config.DB.Model(&models.Message{}).
			Where("sender_id = ? AND receiver_id = ? AND is_read = ?", partnerID, userID, false).
			Count(&unread).Error; err != nil {
			return nil, err
		}

		conversations = append(conversations, dto.ConversationResponse{
			PartnerID: partnerID,
			Partner: dto.UserInfo{
				ID:     partner.ID,
				Name:   partner.Name,
				Avatar: partner.Avatar,
			},
			LastMessage: dto.MessageResponse{
				ID:              message.ID,
				SenderID:        message.SenderID,
				ReceiverID:      message.ReceiverID,
				AccommodationID: message.AccommodationID,
				Content:         message.Content,
				IsRead:          message.IsRead,
				CreatedAt:       message.CreatedAt,
				Sender: dto.UserInfo{
					ID:     message.Sender.ID,
					Name:   message.Sender.Name,
					Avatar: message.Sender.Avatar,
				},
			},
			UnreadCount: unread,
		})
	}

	return conversations, nil
}
