package controllers

import (
	"strings"

	"homestay/config"
	"homestay/models"
	"homestay/response"
	"homestay/services"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
)

type NotificationController struct {
	reservationService *services.ReservationService
	melody             *melody.Melody
}

func NewNotificationController(reservationService *services.ReservationService, melody *melody.Melody) *NotificationController {
	return &NotificationController{
		reservationService: reservationService,
		melody:             melody,
	}
}

func (ctrl *NotificationController) GetAllNotifications(c *gin.Context) {
	token := c.GetHeader("Authorization")
	if token == "" {
		response.Unauthorized(c)
		return
	}
	token = strings.TrimPrefix(token, "Bearer ")

	_, role, err := services.GetUserIDFromToken(token)
	if err != nil {
		response.Unauthorized(c)
		return
	}

	if role != 1 {
		response.Forbidden(c)
		return
	}

	var notifications []models.Notification
	if err := config.DB.Order("created_at DESC").Find(&notifications).Error; err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, notifications)
}

func (ctrl *NotificationController) GetNotifyByUser(c *gin.Context) {
	token := c.GetHeader("Authorization")
	if token == "" {
		response.Unauthorized(c)
		return
	}
	token = strings.TrimPrefix(token, "Bearer ")

	userID, err := services.GetIDFromToken(token)
	if err != nil {
		response.Unauthorized(c)
		return
	}

	var notifies []models.Notification
	if err := config.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&notifies).Error; err != nil {
		response.ServerError(c)
		return
	}

	// Đánh dấu đã đọc sau khi trả về danh sách
	if err := config.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error; err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, notifies)
}

// NotifyAll phát thông báo tới mọi phiên WebSocket đang mở
func (ctrl *NotificationController) NotifyAll(c *gin.Context) {
	ctrl.reservationService.NotifyAll(c)
}

// NotifyUser gửi thông báo tới một user, lưu lại và gửi kèm email
func (ctrl *NotificationController) NotifyUser(c *gin.Context) {
	ctrl.reservationService.NotifyUser(c)
}
