package dto

import "time"

// CreateReservationRequest là request tạo đặt phòng, ngày dạng YYYY-MM-DD
type CreateReservationRequest struct {
	UserID          uint   `json:"userId"`
	AccommodationID uint   `json:"accommodationId" binding:"required"`
	CheckInDate     string `json:"checkInDate" binding:"required"`
	CheckOutDate    string `json:"checkOutDate" binding:"required"`
	GuestName       string `json:"guestName,omitempty"`
	GuestEmail      string `json:"guestEmail,omitempty"`
	GuestPhone      string `json:"guestPhone,omitempty"`
}

// ActorResponse là thông tin người đặt (user hoặc khách vãng lai)
type ActorResponse struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

type ReservationAccommodationResponse struct {
	ID       uint    `json:"id"`
	Type     int     `json:"type"`
	Name     string  `json:"name"`
	Address  string  `json:"address"`
	Ward     string  `json:"ward"`
	District string  `json:"district"`
	Province string  `json:"province"`
	Price    float64 `json:"price"`
	Avatar   string  `json:"avatar"`
}

type ReservationResponse struct {
	ID               uint                             `json:"id"`
	User             ActorResponse                    `json:"user"`
	Accommodation    ReservationAccommodationResponse `json:"accommodation"`
	CheckInDate      string                           `json:"checkInDate"`
	CheckOutDate     string                           `json:"checkOutDate"`
	Status           int                              `json:"status"`
	CreatedAt        time.Time                        `json:"createdAt"`
	UpdatedAt        time.Time                        `json:"updatedAt"`
	Nights           int                              `json:"nights"`
	Subtotal         float64                          `json:"subtotal"`
	LongStayDiscount float64                          `json:"longStayDiscount"`
	TotalPrice       float64                          `json:"totalPrice"`
}

// UpdateReservationStatusRequest là request chuyển trạng thái đặt phòng
type UpdateReservationStatusRequest struct {
	ID     uint `json:"id" binding:"required"`
	Status int  `json:"status"`
}
