package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Payment method constants
const (
	PaymentMethodMobileMoney = 0
	PaymentMethodCard        = 1
	PaymentMethodPaypal      = 2
)

type Payment struct {
	ID            uint        `json:"id" gorm:"primaryKey"`
	PaymentCode   string      `json:"paymentCode" gorm:"unique;size:20"` // Mã giao dịch duy nhất
	ReservationID uint        `json:"reservationId"`
	Reservation   Reservation `json:"reservation" gorm:"foreignKey:ReservationID"`
	Amount        float64     `json:"amount"`
	Method        int         `json:"method"` // 0: mobile money, 1: thẻ, 2: PayPal
	Status        int         `json:"status"` // constants.PaymentStatus*
	GatewayRef    string      `json:"gatewayRef"` // Mã tham chiếu phía cổng thanh toán
	PaymentDate   *time.Time  `json:"paymentDate,omitempty"`
	CreatedAt     time.Time   `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time   `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (payment *Payment) BeforeCreate(tx *gorm.DB) (err error) {
	payment.PaymentCode = fmt.Sprintf("PAY%d", time.Now().UnixNano()/1e6)

	var count int64
	if err := tx.Model(&Payment{}).Where("payment_code = ?", payment.PaymentCode).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("PaymentCode đã tồn tại, hãy thử lại")
	}
	return nil
}

func (payment *Payment) ValidateMethod() error {
	if payment.Method < 0 || payment.Method > 2 {
		return fmt.Errorf("invalid Method: %d, must be between 0 and 2", payment.Method)
	}
	return nil
}
