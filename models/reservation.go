package models

import (
	"time"
)

type Reservation struct {
	ID              uint          `json:"id" gorm:"primaryKey"`
	UserID          *uint         `json:"userId"`
	User            *User         `json:"user" gorm:"foreignKey:UserID"`
	AccommodationID uint          `json:"accommodationId"`
	Accommodation   Accommodation `json:"accommodation" gorm:"foreignKey:AccommodationID"`
	CheckInDate     string        `json:"checkInDate"`  // YYYY-MM-DD
	CheckOutDate    string        `json:"checkOutDate"` // YYYY-MM-DD, ngày trả phòng không tính đêm
	Status          int           `json:"status"`
	CreatedAt       time.Time     `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time     `gorm:"autoUpdateTime" json:"updatedAt"`
	GuestName       string        `json:"guestName,omitempty"`
	GuestEmail      string        `json:"guestEmail,omitempty"`
	GuestPhone      string        `json:"guestPhone,omitempty"`

	// Snapshot giá chốt một lần lúc đặt, không tính lại khi rule đổi
	Nights           int     `json:"nights"`
	Subtotal         float64 `json:"subtotal"`
	LongStayDiscount float64 `json:"longStayDiscount"`
	TotalPrice       float64 `json:"totalPrice"`
}
