package controllers

import (
	"fmt"
	"log"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"homestay/builders"
	"homestay/commands"
	"homestay/config"
	"homestay/constants"
	"homestay/dto"
	"homestay/models"
	"homestay/response"
	"homestay/services"
	"homestay/validator"

	"github.com/gin-gonic/gin"
)

func convertToReservationAccommodationResponse(accommodation models.Accommodation) dto.ReservationAccommodationResponse {
	return dto.ReservationAccommodationResponse{
		ID:       accommodation.ID,
		Type:     accommodation.Type,
		Name:     accommodation.Name,
		Address:  accommodation.Address,
		Ward:     accommodation.Ward,
		District: accommodation.District,
		Province: accommodation.Province,
		Price:    accommodation.Price,
		Avatar:   accommodation.Avatar,
	}
}

func convertToReservationResponse(reservation models.Reservation) dto.ReservationResponse {
	var actor dto.ActorResponse
	if reservation.UserID != nil && reservation.User != nil {
		actor = dto.ActorResponse{Name: reservation.User.Name, Email: reservation.User.Email, PhoneNumber: reservation.User.PhoneNumber}
	} else {
		actor = dto.ActorResponse{Name: reservation.GuestName, Email: reservation.GuestEmail, PhoneNumber: reservation.GuestPhone}
	}

	return dto.ReservationResponse{
		ID:               reservation.ID,
		User:             actor,
		Accommodation:    convertToReservationAccommodationResponse(reservation.Accommodation),
		CheckInDate:      reservation.CheckInDate,
		CheckOutDate:     reservation.CheckOutDate,
		Status:           reservation.Status,
		CreatedAt:        reservation.CreatedAt,
		UpdatedAt:        reservation.UpdatedAt,
		Nights:           reservation.Nights,
		Subtotal:         reservation.Subtotal,
		LongStayDiscount: reservation.LongStayDiscount,
		TotalPrice:       reservation.TotalPrice,
	}
}

// hasOverlappingReservation kiểm tra chỗ ở đã có đặt phòng pending/confirmed
// chồng lấn với khoảng [checkIn, checkOut) chưa. Ngày trả phòng không tính
// là một đêm nên hai kỳ lưu trú kề nhau không bị coi là chồng lấn.
func hasOverlappingReservation(accommodationID uint, checkIn, checkOut string, excludeID uint) (bool, error) {
	var count int64
	tx := config.DB.Model(&models.Reservation{}).
		Where("accommodation_id = ?", accommodationID).
		Where("status IN ?", []int{constants.ReservationStatusPending, constants.ReservationStatusConfirmed}).
		Where("check_in_date < ? AND check_out_date > ?", checkOut, checkIn)
	if excludeID != 0 {
		tx = tx.Where("id <> ?", excludeID)
	}
	if err := tx.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func GetReservations(c *gin.Context) {
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

	cacheKey := fmt.Sprintf("reservations:all:user:%d", currentUserID)
	rdb, err := config.ConnectRedis()
	if err != nil {
		response.ServerError(c)
		return
	}

	var allReservations []models.Reservation

	if err := services.GetFromRedis(config.Ctx, rdb, cacheKey, &allReservations); err != nil || len(allReservations) == 0 {
		baseTx := config.DB.Model(&models.Reservation{}).
			Preload("Accommodation").
			Preload("User")

		// Chủ nhà chỉ thấy đặt phòng của chỗ ở mình quản lý
		if currentUserRole == 2 {
			baseTx = baseTx.Where("reservations.accommodation_id IN (?)",
				config.DB.Model(&models.Accommodation{}).Select("id").Where("user_id = ?", currentUserID))
		}

		if err := baseTx.Find(&allReservations).Error; err != nil {
			response.ServerError(c)
			return
		}

		if err := services.SetToRedis(config.Ctx, rdb, cacheKey, allReservations, 10*time.Minute); err != nil {
			log.Printf("Lỗi khi lưu danh sách đặt phòng vào Redis: %v", err)
		}
	}

	pageStr := c.Query("page")
	limitStr := c.Query("limit")
	nameFilter := c.Query("name")
	phoneStr := c.Query("phoneNumber")
	fromDateStr := c.Query("fromDate")
	toDateStr := c.Query("toDate")
	statusFilter := c.Query("status")

	page := 0
	limit := 10
	if pageStr != "" {
		if parsedPage, err := strconv.Atoi(pageStr); err == nil && parsedPage >= 0 {
			page = parsedPage
		}
	}
	if limitStr != "" {
		if parsedLimit, err := strconv.Atoi(limitStr); err == nil && parsedLimit > 0 {
			limit = parsedLimit
		}
	}

	filteredReservations := make([]models.Reservation, 0)
	for _, reservation := range allReservations {
		if nameFilter != "" {
			decodedName, _ := url.QueryUnescape(nameFilter)
			if !strings.Contains(strings.ToLower(reservation.Accommodation.Name), strings.ToLower(decodedName)) {
				continue
			}
		}
		if phoneStr != "" {
			if reservation.User != nil && !strings.Contains(strings.ToLower(reservation.User.PhoneNumber), strings.ToLower(phoneStr)) {
				continue
			}
			if reservation.User == nil && !strings.Contains(strings.ToLower(reservation.GuestPhone), strings.ToLower(phoneStr)) {
				continue
			}
		}
		if fromDateStr != "" {
			fromDate, err := time.Parse("2006-01-02", fromDateStr)
			if err != nil {
				response.BadRequest(c, "Sai định dạng fromDate")
				return
			}
			if reservation.CreatedAt.Before(fromDate) {
				continue
			}
		}
		if toDateStr != "" {
			toDate, err := time.Parse("2006-01-02", toDateStr)
			if err != nil {
				response.BadRequest(c, "Sai định dạng toDate")
				return
			}
			if reservation.UpdatedAt.After(toDate.AddDate(0, 0, 1)) {
				continue
			}
		}
		if statusFilter != "" {
			parsedStatusFilter, err := strconv.Atoi(statusFilter)
			if err == nil && reservation.Status != parsedStatusFilter {
				continue
			}
		}
		filteredReservations = append(filteredReservations, reservation)
	}

	totalFiltered := len(filteredReservations)

	// Xếp theo update mới nhất
	sort.Slice(filteredReservations, func(i, j int) bool {
		return filteredReservations[i].UpdatedAt.After(filteredReservations[j].UpdatedAt)
	})

	start := page * limit
	end := start + limit
	if start >= totalFiltered {
		filteredReservations = []models.Reservation{}
	} else if end > totalFiltered {
		filteredReservations = filteredReservations[start:totalFiltered]
	} else {
		filteredReservations = filteredReservations[start:end]
	}

	reservationResponses := make([]dto.ReservationResponse, 0, len(filteredReservations))
	for _, reservation := range filteredReservations {
		reservationResponses = append(reservationResponses, convertToReservationResponse(reservation))
	}

	response.SuccessWithPagination(c, reservationResponses, page, limit, totalFiltered)
}

func CreateReservation(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")

	var request dto.CreateReservationRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	var currentUserID uint
	var userId *uint
	var actor dto.ActorResponse

	if authHeader != "" {
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		userID, _, err := services.GetUserIDFromToken(tokenString)
		if err != nil {
			response.Unauthorized(c)
			return
		}
		currentUserID = userID

		var userInfo models.User
		if err := config.DB.First(&userInfo, currentUserID).Error; err != nil {
			response.NotFound(c)
			return
		}
		userId = &userInfo.ID
		actor = dto.ActorResponse{
			Name:        userInfo.Name,
			Email:       userInfo.Email,
			PhoneNumber: userInfo.PhoneNumber,
		}
	} else if request.UserID != 0 {
		var userInfo models.User
		if err := config.DB.First(&userInfo, request.UserID).Error; err != nil {
			response.NotFound(c)
			return
		}
		currentUserID = userInfo.ID
		userId = &userInfo.ID
		actor = dto.ActorResponse{
			Name:        userInfo.Name,
			Email:       userInfo.Email,
			PhoneNumber: userInfo.PhoneNumber,
		}
	} else {
		// Khách vãng lai: nếu số điện thoại trùng với một tài khoản thì gắn luôn
		var userInfo models.User
		if err := config.DB.Where("phone_number = ?", request.GuestPhone).First(&userInfo).Error; err == nil {
			userId = &userInfo.ID
			actor = dto.ActorResponse{
				Name:        userInfo.Name,
				Email:       userInfo.Email,
				PhoneNumber: userInfo.PhoneNumber,
			}
		} else {
			if request.GuestName == "" || request.GuestPhone == "" {
				response.BadRequest(c, "Khách vãng lai cần cung cấp tên và số điện thoại")
				return
			}
			userId = nil
			actor = dto.ActorResponse{
				Name:        request.GuestName,
				Email:       request.GuestEmail,
				PhoneNumber: request.GuestPhone,
			}
		}
	}

	checkInDate, err := time.Parse("2006-01-02", request.CheckInDate)
	if err != nil {
		response.BadRequest(c, "Ngày nhận phòng không hợp lệ")
		return
	}

	today := time.Now().Truncate(24 * time.Hour)
	if checkInDate.Before(today) {
		response.BadRequest(c, "Ngày nhận phòng không được nhỏ hơn ngày hiện tại")
		return
	}

	checkOutDate, err := time.Parse("2006-01-02", request.CheckOutDate)
	if err != nil {
		response.BadRequest(c, "Ngày trả phòng không hợp lệ")
		return
	}

	if !checkOutDate.After(checkInDate) {
		response.BadRequest(c, "Ngày trả phòng phải sau ngày nhận phòng")
		return
	}

	var accommodation models.Accommodation
	if err := config.DB.First(&accommodation, request.AccommodationID).Error; err != nil {
		response.NotFound(c)
		return
	}

	overlapping, err := hasOverlappingReservation(request.AccommodationID, request.CheckInDate, request.CheckOutDate, 0)
	if err != nil {
		response.ServerError(c)
		return
	}
	if overlapping {
		response.BadRequest(c, "Chỗ ở đã được đặt trong khoảng thời gian này")
		return
	}

	// Giá chốt một lần tại thời điểm đặt, rule đổi sau đó không ảnh hưởng
	pricingConfig, err := services.GetPricingConfiguration(request.AccommodationID)
	if err != nil {
		response.BadRequest(c, "Chỗ ở chưa có cấu hình giá")
		return
	}

	quote, err := services.QuoteStay(pricingConfig, request.CheckInDate, request.CheckOutDate)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	reservation := builders.NewReservationBuilder().
		WithUser(userId).
		WithAccommodation(request.AccommodationID).
		WithStay(request.CheckInDate, request.CheckOutDate).
		WithGuestInfo(request.GuestName, request.GuestPhone, request.GuestEmail).
		WithStatus(constants.ReservationStatusPending).
		WithQuote(quote).
		Build()
	reservation.CreatedAt = time.Now()
	reservation.UpdatedAt = time.Now()

	if err := validator.ValidateReservation(reservation); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	if err := commands.NewCreateReservationCommand(reservation, config.DB).Execute(); err != nil {
		response.ServerError(c)
		return
	}

	if err := config.DB.Preload("User").Preload("Accommodation").First(reservation, reservation.ID).Error; err != nil {
		response.ServerError(c)
		return
	}

	reservationResponse := convertToReservationResponse(*reservation)
	reservationResponse.User = actor

	if actor.Email != "" {
		code := fmt.Sprintf("RES%d", reservation.ID)
		if err := services.SendReservationEmail(actor.Email, code, reservation.TotalPrice, pricingConfig.Currency, reservation.CheckInDate, reservation.CheckOutDate); err != nil {
			fmt.Println("Gửi email không thành công:", err)
		}
	}

	invalidateReservationCaches(currentUserID)

	response.Success(c, reservationResponse)
}

func ChangeReservationStatus(c *gin.Context) {
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

	var req dto.UpdateReservationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	if req.Status < constants.ReservationStatusPending || req.Status > constants.ReservationStatusCancelled {
		response.BadRequest(c, "Trạng thái không hợp lệ")
		return
	}

	var reservation models.Reservation
	if err := config.DB.
		Preload("Accommodation").
		First(&reservation, req.ID).Error; err != nil {
		response.NotFound(c)
		return
	}

	// Khách chỉ được hủy đơn của mình trong vòng 24 giờ sau khi đặt
	if currentUserRole == 0 {
		if req.Status != constants.ReservationStatusCancelled {
			response.Forbidden(c)
			return
		}
		if reservation.UserID == nil || *reservation.UserID != currentUserID {
			response.Forbidden(c)
			return
		}
		if time.Since(reservation.CreatedAt).Hours() > 24 {
			response.BadRequest(c, "Liên hệ Admin để được hủy đặt phòng")
			return
		}
	}

	// Chủ nhà chỉ thao tác trên chỗ ở của mình
	if currentUserRole == 2 && reservation.Accommodation.UserID != currentUserID {
		response.Forbidden(c)
		return
	}

	if reservation.Status == constants.ReservationStatusCompleted ||
		reservation.Status == constants.ReservationStatusCancelled {
		response.BadRequest(c, "Đặt phòng đã kết thúc, không thể đổi trạng thái")
		return
	}

	reservation.Status = req.Status
	reservation.UpdatedAt = time.Now()

	if err := commands.NewUpdateReservationCommand(&reservation, config.DB).Execute(); err != nil {
		response.ServerError(c)
		return
	}

	invalidateReservationCaches(currentUserID)

	response.Success(c, gin.H{"message": "Trạng thái đặt phòng đã được cập nhật"})
}

func GetReservationDetail(c *gin.Context) {
	reservationId := c.Param("id")

	var reservation models.Reservation
	if err := config.DB.Preload("User").
		Preload("Accommodation").
		Where("id = ?", reservationId).
		First(&reservation).Error; err != nil {
		response.NotFound(c)
		return
	}

	response.Success(c, convertToReservationResponse(reservation))
}

// DeleteReservation xóa hẳn một đặt phòng, chỉ dành cho admin
func DeleteReservation(c *gin.Context) {
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
	if currentUserRole != 1 {
		response.Forbidden(c)
		return
	}

	reservationId, err := strconv.Atoi(c.Param("id"))
	if err != nil || reservationId <= 0 {
		response.BadRequest(c, "ID đặt phòng không hợp lệ")
		return
	}

	var reservation models.Reservation
	if err := config.DB.First(&reservation, reservationId).Error; err != nil {
		response.NotFound(c)
		return
	}

	if err := commands.NewDeleteReservationCommand(reservation.ID, config.DB).Execute(); err != nil {
		response.ServerError(c)
		return
	}

	invalidateReservationCaches(currentUserID)

	response.Success(c, gin.H{"id": reservation.ID})
}

func GetReservationsByUserId(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		response.Unauthorized(c)
		return
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	currentUserID, _, err := services.GetUserIDFromToken(tokenString)
	if err != nil {
		response.Unauthorized(c)
		return
	}

	var user models.User
	if err := config.DB.First(&user, currentUserID).Error; err != nil {
		response.ServerError(c)
		return
	}

	pageStr := c.Query("page")
	limitStr := c.Query("limit")
	page := 0
	limit := 10

	if pageStr != "" {
		if parsedPage, err := strconv.Atoi(pageStr); err == nil && parsedPage >= 0 {
			page = parsedPage
		}
	}
	if limitStr != "" {
		if parsedLimit, err := strconv.Atoi(limitStr); err == nil && parsedLimit > 0 {
			limit = parsedLimit
		}
	}

	// Gắn các đặt phòng khách vãng lai có cùng số điện thoại vào tài khoản
	if user.PhoneNumber != "" {
		if err := config.DB.Model(&models.Reservation{}).
			Where("guest_phone = ? AND user_id IS NULL", user.PhoneNumber).
			Update("user_id", currentUserID).Error; err != nil {
			response.ServerError(c)
			return
		}
	}

	var totalReservations int64
	if err := config.DB.Model(&models.Reservation{}).Where("user_id = ?", currentUserID).Count(&totalReservations).Error; err != nil {
		response.ServerError(c)
		return
	}

	var reservations []models.Reservation
	result := config.DB.Preload("User").
		Preload("Accommodation").
		Where("user_id = ?", currentUserID).
		Order("created_at DESC").
		Offset(page * limit).
		Limit(limit).
		Find(&reservations)

	if result.Error != nil {
		response.ServerError(c)
		return
	}

	reservationResponses := make([]dto.ReservationResponse, 0, len(reservations))
	for _, reservation := range reservations {
		reservationResponses = append(reservationResponses, convertToReservationResponse(reservation))
	}

	response.SuccessWithPagination(c, reservationResponses, page, limit, int(totalReservations))
}

func invalidateReservationCaches(currentUserID uint) {
	rdb, err := config.ConnectRedis()
	if err != nil {
		return
	}

	if err := DeleteKeysByPattern(config.Ctx, rdb, "reservations:*"); err != nil {
		fmt.Printf("Lỗi khi xóa cache đặt phòng: %v\n", err)
	}
	_ = services.DeleteFromRedis(config.Ctx, rdb, fmt.Sprintf("reservations:all:user:%d", currentUserID))
}
