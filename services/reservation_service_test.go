package services

import (
	"context"
	"testing"
	"time"

	"homestay/constants"
	"homestay/models"
	"homestay/services/logger"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingObserver struct {
	messages []string
}

func (r *recordingObserver) Notify(message string) error {
	r.messages = append(r.messages, message)
	return nil
}

func ptrU(v uint) *uint { return &v }

func setupReservationService(t *testing.T) (*ReservationService, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Reservation{}, &models.Notification{}))

	service := NewReservationService(ReservationServiceOptions{
		DB:     db,
		Logger: logger.NewDefaultLogger(logger.ErrorLevel),
	}, nil)
	return service, db
}

func TestGetStalePendingReservations(t *testing.T) {
	service, db := setupReservationService(t)

	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")

	fresh := models.Reservation{
		AccommodationID: 1,
		CheckInDate:     tomorrow,
		CheckOutDate:    time.Now().AddDate(0, 0, 3).Format("2006-01-02"),
		Status:          constants.ReservationStatusPending,
	}
	require.NoError(t, db.Create(&fresh).Error)

	// Pending tạo quá 48h trước
	old := models.Reservation{
		AccommodationID: 1,
		CheckInDate:     tomorrow,
		CheckOutDate:    time.Now().AddDate(0, 0, 3).Format("2006-01-02"),
		Status:          constants.ReservationStatusPending,
	}
	require.NoError(t, db.Create(&old).Error)
	require.NoError(t, db.Model(&old).Update("created_at", time.Now().Add(-72*time.Hour)).Error)

	// Pending nhưng đã qua ngày nhận phòng
	missed := models.Reservation{
		AccommodationID: 1,
		CheckInDate:     yesterday,
		CheckOutDate:    tomorrow,
		Status:          constants.ReservationStatusPending,
	}
	require.NoError(t, db.Create(&missed).Error)

	// Confirmed không bao giờ bị quét
	confirmed := models.Reservation{
		AccommodationID: 1,
		CheckInDate:     yesterday,
		CheckOutDate:    tomorrow,
		Status:          constants.ReservationStatusConfirmed,
	}
	require.NoError(t, db.Create(&confirmed).Error)
	require.NoError(t, db.Model(&confirmed).Update("created_at", time.Now().Add(-72*time.Hour)).Error)

	stale, err := service.GetStalePendingReservations(context.Background())
	require.NoError(t, err)
	require.Len(t, stale, 2)

	staleIDs := map[uint]bool{}
	for _, reservation := range stale {
		staleIDs[reservation.ID] = true
	}
	assert.True(t, staleIDs[old.ID])
	assert.True(t, staleIDs[missed.ID])
	assert.False(t, staleIDs[fresh.ID])
}

func TestExpireStaleReservations(t *testing.T) {
	service, db := setupReservationService(t)

	user := models.User{Email: "guest@example.com", PhoneNumber: "0912345678"}
	require.NoError(t, db.Create(&user).Error)

	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	stale := models.Reservation{
		UserID:          ptrU(user.ID),
		AccommodationID: 1,
		CheckInDate:     yesterday,
		CheckOutDate:    tomorrow,
		Status:          constants.ReservationStatusPending,
	}
	require.NoError(t, db.Create(&stale).Error)

	// Session của user bị ảnh hưởng và của một user khác
	affected := &recordingObserver{}
	service.RegisterObserver(affected, user.ID)
	bystander := &recordingObserver{}
	service.RegisterObserver(bystander, user.ID+1)

	require.NoError(t, service.ExpireStaleReservations(context.Background()))

	var updated models.Reservation
	require.NoError(t, db.First(&updated, stale.ID).Error)
	assert.Equal(t, constants.ReservationStatusCancelled, updated.Status)

	// Thông báo hủy chỉ đến đúng user có đặt phòng
	require.Len(t, affected.messages, 1)
	assert.Contains(t, affected.messages[0], "CANCELLED")
	assert.Empty(t, bystander.messages)

	// Hủy xong phải lưu lại thông báo cho user
	var count int64
	require.NoError(t, db.Model(&models.Notification{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestExpireStaleReservationsNothingToDo(t *testing.T) {
	service, _ := setupReservationService(t)

	observer := &recordingObserver{}
	service.RegisterObserver(observer, 1)

	err := service.ExpireStaleReservations(context.Background())

	var serviceErr *ServiceError
	require.ErrorAs(t, err, &serviceErr)
	assert.Equal(t, ErrCodeNoStaleReserv, serviceErr.Code)
	assert.Empty(t, observer.messages)
}

func TestObserverRegistration(t *testing.T) {
	service, _ := setupReservationService(t)

	first := &recordingObserver{}
	second := &recordingObserver{}
	service.RegisterObserver(first, 7)
	service.RegisterObserver(second, 7)

	service.notifyObservers(7, "xin chào")
	assert.Equal(t, []string{"xin chào"}, first.messages)
	assert.Equal(t, []string{"xin chào"}, second.messages)

	// Gỡ một observer thì observer còn lại vẫn nhận tiếp
	service.RemoveObserver(first, 7)
	service.notifyObservers(7, "tin mới")
	assert.Equal(t, []string{"xin chào"}, first.messages)
	assert.Equal(t, []string{"xin chào", "tin mới"}, second.messages)

	// User chưa có session nào thì không có gì để gửi
	service.notifyObservers(99, "không ai nhận")
	assert.Len(t, second.messages, 2)
}
