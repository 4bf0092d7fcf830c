package dto

import "time"

type SendMessageRequest struct {
	ReceiverID      uint   `json:"receiverId" binding:"required"`
	AccommodationID *uint  `json:"accommodationId,omitempty"`
	Content         string `json:"content" binding:"required"`
}

type MessageResponse struct {
	ID              uint      `json:"id"`
	SenderID        uint      `json:"senderId"`
	ReceiverID      uint      `json:"receiverId"`
	AccommodationID *uint     `json:"accommodationId,omitempty"`
	Content         string    `json:"content"`
	IsRead          bool      `json:"isRead"`
	CreatedAt       time.Time `json:"createdAt"`
	Sender          UserInfo  `json:"sender"`
}

// ConversationResponse là tin nhắn mới nhất với một người và số tin chưa đọc
type ConversationResponse struct {
	PartnerID   uint            `json:"partnerId"`
	Partner     UserInfo        `json:"partner"`
	LastMessage MessageResponse `json:"lastMessage"`
	UnreadCount int64           `json:"unreadCount"`
}
