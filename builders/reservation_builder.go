package builders

import (
	"homestay/models"
	"homestay/services/pricing"
)

// ReservationBuilder giúp tạo đặt phòng theo từng bước
type ReservationBuilder struct {
	reservation *models.Reservation
}

// NewReservationBuilder tạo instance mới của ReservationBuilder
func NewReservationBuilder() *ReservationBuilder {
	return &ReservationBuilder{
		reservation: &models.Reservation{},
	}
}

// WithUser thêm thông tin user
func (b *ReservationBuilder) WithUser(userID *uint) *ReservationBuilder {
	b.reservation.UserID = userID
	return b
}

// WithAccommodation thêm chỗ ở được đặt
func (b *ReservationBuilder) WithAccommodation(accommodationID uint) *ReservationBuilder {
	b.reservation.AccommodationID = accommodationID
	return b
}

// WithStatus thêm trạng thái
func (b *ReservationBuilder) WithStatus(status int) *ReservationBuilder {
	b.reservation.Status = status
	return b
}

// WithGuestInfo thêm thông tin khách vãng lai
func (b *ReservationBuilder) WithGuestInfo(guestName, guestPhone, guestEmail string) *ReservationBuilder {
	b.reservation.GuestName = guestName
	b.reservation.GuestPhone = guestPhone
	b.reservation.GuestEmail = guestEmail
	return b
}

// WithStay thêm khoảng lưu trú [checkIn, checkOut)
func (b *ReservationBuilder) WithStay(checkIn, checkOut string) *ReservationBuilder {
	b.reservation.CheckInDate = checkIn
	b.reservation.CheckOutDate = checkOut
	return b
}

// WithQuote chốt snapshot giá từ kết quả báo giá
func (b *ReservationBuilder) WithQuote(quote pricing.Result) *ReservationBuilder {
	b.reservation.Nights = quote.Nights
	b.reservation.Subtotal = quote.Subtotal
	b.reservation.LongStayDiscount = quote.LongStayDiscount
	b.reservation.TotalPrice = quote.Total
	return b
}

// Build tạo đặt phòng hoàn chỉnh
func (b *ReservationBuilder) Build() *models.Reservation {
	return b.reservation
}
