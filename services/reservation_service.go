package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"
	_ "time/tzdata"

	"homestay/constants"
	"homestay/models"
	"homestay/services/logger"
	"homestay/services/notification"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"gorm.io/gorm"
)

const (
	DefaultTimezone = "Europe/Paris"
	// Đặt phòng pending quá hạn này mà chưa xác nhận sẽ bị hủy
	PendingExpiryHours = 48
)

const (
	ErrCodeInvalidTimezone = "INVALID_TIMEZONE"
	ErrCodeNoStaleReserv   = "NO_STALE_RESERVATIONS"
	ErrCodeUpdateFailed    = "UPDATE_FAILED"
	ErrCodeInvalidReservID = "INVALID_RESERVATION_ID"
)

type ServiceError struct {
	Code    string
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

type ReservationServiceInterface interface {
	GetStalePendingReservations(ctx context.Context) ([]models.Reservation, error)
	ExpireStaleReservations(ctx context.Context) error
}

// NotificationObserver nhận thông báo realtime cho một user
type NotificationObserver interface {
	Notify(message string) error
}

// MelodyObserver đẩy thông báo vào một session websocket cụ thể
type MelodyObserver struct {
	session *melody.Session
	userID  uint
}

func NewMelodyObserver(session *melody.Session, userID uint) *MelodyObserver {
	return &MelodyObserver{
		session: session,
		userID:  userID,
	}
}

func (o *MelodyObserver) Notify(message string) error {
	return o.session.Write([]byte(message))
}

type ReservationService struct {
	db          *gorm.DB
	logger      logger.Logger
	melody      *melody.Melody
	broadcaster notification.Service

	mu        sync.Mutex
	observers map[uint][]NotificationObserver
}

type ReservationServiceOptions struct {
	DB     *gorm.DB
	Logger logger.Logger
}

func NewReservationService(opts ReservationServiceOptions, m *melody.Melody) *ReservationService {
	return &ReservationService{
		db:          opts.DB,
		logger:      opts.Logger,
		melody:      m,
		broadcaster: notification.NewMelodyService(m),
		observers:   make(map[uint][]NotificationObserver),
	}
}

// GetStalePendingReservations lấy các đặt phòng pending đã quá hạn xác nhận
// hoặc đã qua ngày nhận phòng
func (s *ReservationService) GetStalePendingReservations(ctx context.Context) ([]models.Reservation, error) {
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return nil, &ServiceError{
			Code:    ErrCodeInvalidTimezone,
			Message: "timezone không hợp lệ",
			Err:     err,
		}
	}

	now := time.Now().In(loc)
	cutoff := now.Add(-PendingExpiryHours * time.Hour)
	today := now.Format("2006-01-02")

	var reservations []models.Reservation
	err = s.db.WithContext(ctx).
		Where("status = ?", constants.ReservationStatusPending).
		Where("created_at < ? OR check_in_date < ?", cutoff, today).
		Find(&reservations).Error
	if err != nil {
		return nil, &ServiceError{
			Code:    ErrCodeUpdateFailed,
			Message: "lỗi khi truy vấn đặt phòng quá hạn",
			Err:     err,
		}
	}
	return reservations, nil
}

func (s *ReservationService) cancelReservation(ctx context.Context, tx *gorm.DB, reservationID uint) error {
	if reservationID == 0 {
		return &ServiceError{
			Code:    ErrCodeInvalidReservID,
			Message: "reservation ID không hợp lệ",
		}
	}

	if err := tx.WithContext(ctx).Model(&models.Reservation{}).
		Where("id = ?", reservationID).
		Update("status", constants.ReservationStatusCancelled).Error; err != nil {
		return &ServiceError{
			Code:    ErrCodeUpdateFailed,
			Message: fmt.Sprintf("lỗi hủy đặt phòng %d", reservationID),
			Err:     err,
		}
	}
	s.logger.Info("✅ Đã hủy đặt phòng quá hạn %d", reservationID)
	return nil
}

// sendCancellationNotice đẩy thông báo hủy tới đúng các session của user bị
// ảnh hưởng; đặt phòng của khách vãng lai không có user để thông báo
func (s *ReservationService) sendCancellationNotice(reservation models.Reservation) {
	if reservation.UserID == nil {
		return
	}
	message := notification.NewMessageBuilder(reservation.ID, "CANCELLED").Build()
	s.notifyObservers(*reservation.UserID, message)
}

// lưu thông báo để user xem lại được sau khi offline
func (s *ReservationService) persistNotification(ctx context.Context, tx *gorm.DB, reservation models.Reservation) error {
	if reservation.UserID == nil {
		return nil
	}
	record := models.Notification{
		UserID:      *reservation.UserID,
		Message:     notification.NewMessageBuilder(reservation.ID, "CANCELLED").Build(),
		Description: fmt.Sprintf("Đặt phòng từ %s đến %s đã bị hủy do quá hạn xác nhận.", reservation.CheckInDate, reservation.CheckOutDate),
	}
	return tx.WithContext(ctx).Create(&record).Error
}

// ExpireStaleReservations hủy toàn bộ đặt phòng pending quá hạn trong một transaction
func (s *ReservationService) ExpireStaleReservations(ctx context.Context) error {
	reservations, err := s.GetStalePendingReservations(ctx)
	if err != nil {
		s.logger.Error("❌ Lỗi lấy đặt phòng quá hạn: %v", err)
		return err
	}
	if len(reservations) == 0 {
		s.logger.Info("ℹ️ Không có đặt phòng quá hạn nào để hủy hôm nay.")
		return &ServiceError{
			Code:    ErrCodeNoStaleReserv,
			Message: "không có đặt phòng quá hạn",
		}
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return &ServiceError{
			Code:    ErrCodeUpdateFailed,
			Message: "lỗi khi bắt đầu transaction",
			Err:     tx.Error,
		}
	}

	for _, reservation := range reservations {
		if err := s.cancelReservation(ctx, tx, reservation.ID); err != nil {
			tx.Rollback()
			return err
		}
		if err := s.persistNotification(ctx, tx, reservation); err != nil {
			tx.Rollback()
			return &ServiceError{
				Code:    ErrCodeUpdateFailed,
				Message: fmt.Sprintf("lỗi lưu thông báo cho đặt phòng %d", reservation.ID),
				Err:     err,
			}
		}
		s.sendCancellationNotice(reservation)
	}

	if err := tx.Commit().Error; err != nil {
		return &ServiceError{
			Code:    ErrCodeUpdateFailed,
			Message: "lỗi khi commit transaction",
			Err:     err,
		}
	}
	s.logger.Info("✅ Hoàn tất hủy %d đặt phòng quá hạn.", len(reservations))
	return nil
}

// RegisterObserver đăng ký observer nhận thông báo realtime cho user
func (s *ReservationService) RegisterObserver(observer NotificationObserver, userID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers[userID] = append(s.observers[userID], observer)
	s.logger.Info("Người quan sát đã đăng ký cho userID: %d", userID)
}

// RemoveObserver gỡ một observer của user (khi session đóng)
func (s *ReservationService) RemoveObserver(observer NotificationObserver, userID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	observers := s.observers[userID]
	for i, obs := range observers {
		if obs == observer {
			s.observers[userID] = append(observers[:i], observers[i+1:]...)
			break
		}
	}
	s.logger.Info("Đã xóa người quan sát cho userID: %d", userID)
}

// notifyObservers gửi message tới mọi observer đang đăng ký cho user
func (s *ReservationService) notifyObservers(userID uint, message string) {
	s.mu.Lock()
	observers := make([]NotificationObserver, len(s.observers[userID]))
	copy(observers, s.observers[userID])
	s.mu.Unlock()

	for _, observer := range observers {
		if err := observer.Notify(message); err != nil {
			s.logger.Error("❌ Không thông báo được userID %d: %v", userID, err)
		}
	}
}

func (s *ReservationService) NotifyAll(c *gin.Context) {
	var req struct {
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "tin nhắn là bắt buộc"})
		return
	}
	if err := s.broadcaster.SendMessage(req.Message); err != nil {
		s.logger.Error("❌ Lỗi gửi thông báo tổng: %v", err)
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	s.logger.Info("✅ Đã gửi thông báo tổng: %s", req.Message)
	c.JSON(200, gin.H{"message": "Broadcast sent"})
}

// NotifyUser gửi thông báo tới một user qua WebSocket và email
func (s *ReservationService) NotifyUser(c *gin.Context) {
	userIDStr := c.Param("userID")

	userID, err := strconv.ParseUint(userIDStr, 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid userID"})
		return
	}

	var req struct {
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "message is required"})
		return
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(404, gin.H{"error": "không tìm thấy người dùng"})
			return
		}
		c.JSON(500, gin.H{"error": "không thể lấy được người dùng"})
		return
	}

	s.notifyObservers(uint(userID), req.Message)

	record := models.Notification{
		UserID:  uint(userID),
		Message: req.Message,
	}
	if err := s.db.Create(&record).Error; err != nil {
		s.logger.Error("❌ Không lưu được thông báo cho userID %d: %v", userID, err)
	}

	if err := sendNews(user.Email, "Thông báo từ hệ thống", req.Message); err != nil {
		s.logger.Error("❌ Không gửi được email cho userID %d: %v", userID, err)
	}

	c.JSON(200, gin.H{"message": "Thông báo được gửi đến người dùng"})
}

type ReservationServiceAdapter struct {
	service ReservationServiceInterface
}

func NewReservationServiceAdapter(service ReservationServiceInterface) *ReservationServiceAdapter {
	return &ReservationServiceAdapter{service: service}
}

func (a *ReservationServiceAdapter) ExpireStaleReservations() error {
	return a.service.ExpireStaleReservations(context.Background())
}
