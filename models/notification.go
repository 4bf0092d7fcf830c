package models

import "time"

// Notification lưu thông báo cho từng người dùng (hủy đặt phòng quá hạn,
// thông báo từ quản trị viên)
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"userId" gorm:"index;not null"`
	Message     string    `json:"message" gorm:"type:text;not null"`
	Description string    `json:"description" gorm:"type:text"`
	IsRead      bool      `json:"isRead" gorm:"default:false"`
	CreatedAt   time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
	User        *User     `json:"user,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignKey:UserID;references:ID"`
}
