package controllers

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"homestay/config"
	"homestay/constants"
	"homestay/dto"
	"homestay/models"
	"homestay/response"
	"homestay/services"

	"github.com/gin-gonic/gin"
)

func convertToPaymentResponse(payment models.Payment) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:            payment.ID,
		PaymentCode:   payment.PaymentCode,
		ReservationID: payment.ReservationID,
		Amount:        payment.Amount,
		Method:        payment.Method,
		Status:        payment.Status,
		GatewayRef:    payment.GatewayRef,
		PaymentDate:   payment.PaymentDate,
		CreatedAt:     payment.CreatedAt,
	}
}

// CreatePayment khởi tạo giao dịch cho một đặt phòng, số tiền lấy từ snapshot giá
func CreatePayment(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		response.Unauthorized(c)
		return
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	currentUserID, currentUserRole, err := services.GetUserIDFromToken(tokenString)
	if err != nil {
		response.Unauthorized(c)
		return
	}

	var request dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var reservation models.Reservation
	if err := config.DB.First(&reservation, request.ReservationID).Error; err != nil {
		response.BadRequest(c, "Không tìm thấy đặt phòng")
		return
	}

	if currentUserRole == 0 && (reservation.UserID == nil || *reservation.UserID != currentUserID) {
		response.Forbidden(c)
		return
	}

	if reservation.Status != constants.ReservationStatusPending &&
		reservation.Status != constants.ReservationStatusConfirmed {
		response.BadRequest(c, "Đặt phòng không ở trạng thái có thể thanh toán")
		return
	}

	var paidCount int64
	config.DB.Model(&models.Payment{}).
		Where("reservation_id = ? AND status = ?", reservation.ID, constants.PaymentStatusSuccess).
		Count(&paidCount)
	if paidCount > 0 {
		response.Conflict(c, "Đặt phòng này đã được thanh toán")
		return
	}

	payment := models.Payment{
		ReservationID: reservation.ID,
		Amount:        reservation.TotalPrice,
		Method:        request.Method,
		Status:        constants.PaymentStatusPending,
	}

	if err := payment.ValidateMethod(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := config.DB.Create(&payment).Error; err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, convertToPaymentResponse(payment))
}

// PaymentCallback nhận kết quả từ cổng thanh toán theo paymentCode
func PaymentCallback(c *gin.Context) {
	var request dto.PaymentCallbackRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var payment models.Payment
	if err := config.DB.Preload("Reservation").
		Where("payment_code = ?", request.PaymentCode).
		First(&payment).Error; err != nil {
		response.NotFound(c)
		return
	}

	if payment.Status == constants.PaymentStatusSuccess {
		response.Conflict(c, "Giao dịch đã được xử lý trước đó")
		return
	}

	now := time.Now()
	payment.GatewayRef = request.GatewayRef
	payment.PaymentDate = &now
	if request.Success {
		payment.Status = constants.PaymentStatusSuccess
	} else {
		payment.Status = constants.PaymentStatusFailed
	}

	if err := config.DB.Save(&payment).Error; err != nil {
		response.ServerError(c)
		return
	}

	// Thanh toán thành công thì xác nhận luôn đặt phòng
	if request.Success && payment.Reservation.Status == constants.ReservationStatusPending {
		if err := config.DB.Model(&models.Reservation{}).
			Where("id = ?", payment.ReservationID).
			Update("status", constants.ReservationStatusConfirmed).Error; err != nil {
			response.ServerError(c)
			return
		}
		reservation := payment.Reservation
		if reservation.UserID != nil {
			invalidateReservationCaches(*reservation.UserID)
		} else {
			invalidateReservationCaches(0)
		}
		if reservation.GuestEmail != "" {
			currency := "EUR"
			if cfg, err := services.GetPricingConfiguration(reservation.AccommodationID); err == nil {
				currency = cfg.Currency
			}
			go func() {
				if err := services.SendReservationEmail(
					reservation.GuestEmail,
					fmt.Sprintf("RES%d", reservation.ID),
					reservation.TotalPrice,
					currency,
					reservation.CheckInDate,
					reservation.CheckOutDate,
				); err != nil {
					log.Printf("Lỗi khi gửi email xác nhận thanh toán: %v", err)
				}
			}()
		}
	}

	response.Success(c, convertToPaymentResponse(payment))
}

func GetPaymentDetail(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		response.Unauthorized(c)
		return
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	currentUserID, currentUserRole, err := services.GetUserIDFromToken(tokenString)
	if err != nil {
		response.Unauthorized(c)
		return
	}

	var payment models.Payment
	if err := config.DB.Preload("Reservation").First(&payment, c.Param("id")).Error; err != nil {
		response.NotFound(c)
		return
	}

	if currentUserRole == 0 &&
		(payment.Reservation.UserID == nil || *payment.Reservation.UserID != currentUserID) {
		response.Forbidden(c)
		return
	}

	response.Success(c, convertToPaymentResponse(payment))
}

// GetPayments liệt kê giao dịch, admin xem tất cả, chủ nhà xem của chỗ ở mình
func GetPayments(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		response.Unauthorized(c)
		return
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	currentUserID, currentUserRole, err := services.GetUserIDFromToken(tokenString)
	if err != nil {
		response.Unauthorized(c)
		return
	}

	page := 0
	limit := 10
	if pageStr := c.Query("page"); pageStr != "" {
		page, _ = strconv.Atoi(pageStr)
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		limit, _ = strconv.Atoi(limitStr)
	}

	query := config.DB.Model(&models.Payment{}).Preload("Reservation")

	switch currentUserRole {
	case 1:
		// admin xem tất cả
	case 2:
		query = query.Joins("JOIN reservations ON reservations.id = payments.reservation_id").
			Joins("JOIN accommodations ON accommodations.id = reservations.accommodation_id").
			Where("accommodations.user_id = ?", currentUserID)
	default:
		query = query.Joins("JOIN reservations ON reservations.id = payments.reservation_id").
			Where("reservations.user_id = ?", currentUserID)
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status, _ := strconv.Atoi(statusStr)
		query = query.Where("payments.status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		response.ServerError(c)
		return
	}

	var payments []models.Payment
	if err := query.Order("payments.created_at DESC").
		Offset(page * limit).
		Limit(limit).
		Find(&payments).Error; err != nil {
		response.ServerError(c)
		return
	}

	paymentResponses := make([]dto.PaymentResponse, 0, len(payments))
	for _, payment := range payments {
		paymentResponses = append(paymentResponses, convertToPaymentResponse(payment))
	}

	response.SuccessWithPagination(c, paymentResponses, page, limit, int(total))
}
