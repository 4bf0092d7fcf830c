package jobs

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// ReservationExpirer định nghĩa interface cho việc hủy đặt phòng quá hạn
type ReservationExpirer interface {
	ExpireStaleReservations() error
}

var reservationExpirer ReservationExpirer

// SetReservationExpirer thiết lập implementation cho ReservationExpirer
func SetReservationExpirer(expirer ReservationExpirer) {
	reservationExpirer = expirer
}

// InitCronJobs khởi tạo các cron jobs
func InitCronJobs(c *cron.Cron) error {
	// Cron job chạy lúc 0h mỗi ngày
	_, err := c.AddFunc("0 0 * * *", func() {
		now := time.Now()
		log.Printf("Đang chạy hủy đặt phòng pending quá hạn lúc: %v", now)
		if reservationExpirer == nil {
			log.Printf("Lỗi: ReservationExpirer chưa được thiết lập")
			return
		}
		if err := reservationExpirer.ExpireStaleReservations(); err != nil {
			log.Printf("Lỗi khi hủy đặt phòng quá hạn: %v", err)
		}
	})
	if err != nil {
		return err
	}

	c.Start()
	log.Println("Cron jobs initialized successfully")
	return nil
}
