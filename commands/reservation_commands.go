package commands

import (
	"homestay/models"

	"gorm.io/gorm"
)

// ReservationCommand định nghĩa interface cho các command
type ReservationCommand interface {
	Execute() error
}

// CreateReservationCommand command để tạo đặt phòng mới
type CreateReservationCommand struct {
	reservation *models.Reservation
	db          *gorm.DB
}

func NewCreateReservationCommand(reservation *models.Reservation, db *gorm.DB) *CreateReservationCommand {
	return &CreateReservationCommand{
		reservation: reservation,
		db:          db,
	}
}

func (c *CreateReservationCommand) Execute() error {
	return c.db.Create(c.reservation).Error
}

// UpdateReservationCommand command để cập nhật đặt phòng
type UpdateReservationCommand struct {
	reservation *models.Reservation
	db          *gorm.DB
}

func NewUpdateReservationCommand(reservation *models.Reservation, db *gorm.DB) *UpdateReservationCommand {
	return &UpdateReservationCommand{
		reservation: reservation,
		db:          db,
	}
}

func (c *UpdateReservationCommand) Execute() error {
	return c.db.Save(c.reservation).Error
}

// DeleteReservationCommand command để xóa đặt phòng
type DeleteReservationCommand struct {
	reservationID uint
	db            *gorm.DB
}

func NewDeleteReservationCommand(reservationID uint, db *gorm.DB) *DeleteReservationCommand {
	return &DeleteReservationCommand{
		reservationID: reservationID,
		db:            db,
	}
}

func (c *DeleteReservationCommand) Execute() error {
	return c.db.Delete(&models.Reservation{}, c.reservationID).Error
}
