package models

import "time"

type Message struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	SenderID        uint      `json:"senderId"`
	ReceiverID      uint      `json:"receiverId"`
	AccommodationID *uint     `json:"accommodationId,omitempty"` // Chỗ ở đang trao đổi, nếu có
	Content         string    `gorm:"type:text;not null" json:"content"`
	IsRead          bool      `gorm:"default:false" json:"isRead"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"createdAt"`
	Sender          User      `json:"sender" gorm:"foreignKey:SenderID"`
	Receiver        User      `json:"receiver" gorm:"foreignKey:ReceiverID"`
}
