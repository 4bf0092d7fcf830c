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
	"homestay/validator"

	"github.com/gin-gonic/gin"
)

func convertToReviewResponse(review models.Review) dto.ReviewResponse {
	return dto.ReviewResponse{
		ID:              review.ID,
		AccommodationID: review.AccommodationID,
		Comment:         review.Comment,
		Star:            review.Star,
		CreatedAt:       review.CreatedAt,
		UpdatedAt:       review.UpdatedAt,
		User: dto.UserInfo{
			ID:     review.User.ID,
			Name:   review.User.Name,
			Avatar: review.User.Avatar,
		},
	}
}

func GetAllReviews(c *gin.Context) {
	accommodationIdFilter := c.DefaultQuery("accommodationId", "")

	cacheKey := "reviews:all"
	if accommodationIdFilter != "" {
		cacheKey = fmt.Sprintf("reviews:accommodation:%s", accommodationIdFilter)
	}

	rdb, err := config.ConnectRedis()
	if err != nil {
		response.ServerError(c)
		return
	}

	var reviewResponses []dto.ReviewResponse

	if err := services.GetFromRedis(config.Ctx, rdb, cacheKey, &reviewResponses); err == nil && len(reviewResponses) > 0 {
		response.Success(c, reviewResponses)
		return
	}

	tx := config.DB.Preload("User")
	if accommodationIdFilter != "" {
		if parsedAccommodationId, err := strconv.Atoi(accommodationIdFilter); err == nil {
			tx = tx.Where("accommodation_id = ?", parsedAccommodationId)
		}
	}

	var reviews []models.Review
	if err := tx.Order("created_at DESC").Limit(20).Find(&reviews).Error; err != nil {
		response.ServerError(c)
		return
	}

	reviewResponses = make([]dto.ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		reviewResponses = append(reviewResponses, convertToReviewResponse(review))
	}

	if err := services.SetToRedis(config.Ctx, rdb, cacheKey, reviewResponses, 10*time.Minute); err != nil {
		log.Printf("Lỗi khi lưu danh sách đánh giá vào Redis: %v", err)
	}

	response.Success(c, reviewResponses)
}

func CreateReview(c *gin.Context) {
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

	var request dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	// Chỉ khách đã hoàn thành kỳ lưu trú mới được đánh giá
	var completedStays int64
	if err := config.DB.Model(&models.Reservation{}).
		Where("user_id = ? AND accommodation_id = ? AND status = ?", currentUserID, request.AccommodationID, constants.ReservationStatusCompleted).
		Count(&completedStays).Error; err != nil {
		response.ServerError(c)
		return
	}
	if completedStays == 0 {
		response.BadRequest(c, "Bạn cần hoàn thành kỳ lưu trú trước khi đánh giá")
		return
	}

	var existingReview models.Review
	if err := config.DB.Where("user_id = ? AND accommodation_id = ?", currentUserID, request.AccommodationID).First(&existingReview).Error; err == nil {
		response.Conflict(c, "Bạn đã đánh giá lưu trú này trước đó")
		return
	}

	review := models.Review{
		UserID:          currentUserID,
		AccommodationID: request.AccommodationID,
		Comment:         request.Comment,
		Star:            request.Star,
	}

	if err := validator.ValidateReview(&review); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	if err := config.DB.Create(&review).Error; err != nil {
		response.ServerError(c)
		return
	}

	if err := services.UpdateAccommodationRating(review.AccommodationID); err != nil {
		response.ServerError(c)
		return
	}

	invalidateReviewCaches(review.AccommodationID)

	response.Success(c, review)
}

func GetReviewDetail(c *gin.Context) {
	id := c.Param("id")
	var review models.Review
	if err := config.DB.Preload("User").First(&review, id).Error; err != nil {
		response.NotFound(c)
		return
	}

	response.Success(c, convertToReviewResponse(review))
}

func UpdateReview(c *gin.Context) {
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

	var request dto.UpdateReviewRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	var review models.Review
	if err := config.DB.First(&review, request.ID).Error; err != nil {
		response.NotFound(c)
		return
	}

	if review.UserID != currentUserID {
		response.Forbidden(c)
		return
	}

	review.Comment = request.Comment
	review.Star = request.Star

	if err := validator.ValidateReview(&review); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	if err := config.DB.Save(&review).Error; err != nil {
		response.ServerError(c)
		return
	}

	if err := services.UpdateAccommodationRating(review.AccommodationID); err != nil {
		response.ServerError(c)
		return
	}

	invalidateReviewCaches(review.AccommodationID)

	response.Success(c, convertToReviewResponse(review))
}

func DeleteReview(c *gin.Context) {
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

	id := c.Param("id")
	var review models.Review
	if err := config.DB.First(&review, id).Error; err != nil {
		response.NotFound(c)
		return
	}

	if currentUserRole != 1 && review.UserID != currentUserID {
		response.Forbidden(c)
		return
	}

	if err := config.DB.Delete(&review).Error; err != nil {
		response.ServerError(c)
		return
	}

	if err := services.UpdateAccommodationRating(review.AccommodationID); err != nil {
		response.ServerError(c)
		return
	}

	invalidateReviewCaches(review.AccommodationID)

	response.Success(c, nil)
}

func invalidateReviewCaches(accommodationID uint) {
	rdb, err := config.ConnectRedis()
	if err != nil {
		return
	}
	_ = services.DeleteFromRedis(config.Ctx, rdb, "reviews:all")
	_ = services.DeleteFromRedis(config.Ctx, rdb, fmt.Sprintf("reviews:accommodation:%d", accommodationID))
	_ = services.DeleteFromRedis(config.Ctx, rdb, "accommodations:all")
	_ = services.DeleteFromRedis(config.Ctx, rdb, fmt.Sprintf("accommodations:detail:%d", accommodationID))
}
