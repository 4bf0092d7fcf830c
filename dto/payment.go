package dto

import "time"

type CreatePaymentRequest struct {
	ReservationID uint `json:"reservationId" binding:"required"`
	Method        int  `json:"method"`
}

// PaymentCallbackRequest là payload cổng thanh toán gọi về
type PaymentCallbackRequest struct {
	PaymentCode string `json:"paymentCode" binding:"required"`
	GatewayRef  string `json:"gatewayRef"`
	Success     bool   `json:"success"`
}

type PaymentResponse struct {
	ID            uint       `json:"id"`
	PaymentCode   string     `json:"paymentCode"`
	ReservationID uint       `json:"reservationId"`
	Amount        float64    `json:"amount"`
	Method        int        `json:"method"`
	Status        int        `json:"status"`
	GatewayRef    string     `json:"gatewayRef,omitempty"`
	PaymentDate   *time.Time `json:"paymentDate,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}
