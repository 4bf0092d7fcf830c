package controllers

import (
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	"homestay/config"
	"homestay/dto"
	"homestay/models"
	"homestay/response"
	"homestay/services"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserController struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func NewUserController(db *gorm.DB, redisCli *redis.Client) UserController {
	return UserController{
		DB:    db,
		Redis: redisCli,
	}
}

func convertToUserResponse(user models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:               user.ID,
		Name:             user.Name,
		Email:            user.Email,
		PhoneNumber:      user.PhoneNumber,
		Role:             user.Role,
		CreatedAt:        user.CreatedAt,
		UpdatedAt:        user.UpdatedAt,
		Status:           user.Status,
		IsVerified:       user.IsVerified,
		Avatar:           user.Avatar,
		DateOfBirth:      user.DateOfBirth,
		AccommodationIDs: user.AccommodationIDs,
	}
}

func (u UserController) GetUsers(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		response.Unauthorized(c)
		return
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	_, currentUserRole, err := services.GetUserIDFromToken(tokenString)
	if err != nil {
		response.Unauthorized(c)
		return
	}

	if currentUserRole != 1 {
		response.Forbidden(c)
		return
	}

	pageStr := c.Query("page")
	limitStr := c.Query("limit")
	statusStr := c.Query("status")
	name := c.Query("name")
	roleStr := c.Query("role")

	page := 0
	limit := 10
	if pageStr != "" {
		page, _ = strconv.Atoi(pageStr)
	}
	if limitStr != "" {
		limit, _ = strconv.Atoi(limitStr)
	}

	cacheKey := "users:all"

	rdb, err := config.ConnectRedis()
	if err != nil {
		log.Printf("Không thể kết nối Redis: %v", err)
	}

	var allUsers []models.User

	if err := services.GetFromRedis(config.Ctx, rdb, cacheKey, &allUsers); err != nil || len(allUsers) == 0 {
		if err := u.DB.Find(&allUsers).Error; err != nil {
			response.ServerError(c)
			return
		}

		if err := services.SetToRedis(config.Ctx, rdb, cacheKey, allUsers, 10*time.Minute); err != nil {
			log.Printf("Lỗi khi lưu danh sách người dùng vào Redis: %v", err)
		}
	}

	var filteredUsers []models.User
	for _, user := range allUsers {
		if statusStr != "" {
			status, _ := strconv.Atoi(statusStr)
			if user.Status != status {
				continue
			}
		}
		if roleStr != "" {
			role, _ := strconv.Atoi(roleStr)
			if user.Role != role {
				continue
			}
		}
		if name != "" {
			if !strings.Contains(strings.ToLower(user.Name), strings.ToLower(name)) &&
				!strings.Contains(strings.ToLower(user.Email), strings.ToLower(name)) {
				continue
			}
		}
		filteredUsers = append(filteredUsers, user)
	}

	total := len(filteredUsers)

	sort.Slice(filteredUsers, func(i, j int) bool {
		return filteredUsers[i].UpdatedAt.After(filteredUsers[j].UpdatedAt)
	})

	start := page * limit
	end := start + limit
	if start >= total {
		filteredUsers = []models.User{}
	} else if end > total {
		filteredUsers = filteredUsers[start:]
	} else {
		filteredUsers = filteredUsers[start:end]
	}

	userResponses := make([]dto.UserResponse, 0, len(filteredUsers))
	for _, user := range filteredUsers {
		userResponses = append(userResponses, convertToUserResponse(user))
	}

	response.SuccessWithPagination(c, userResponses, page, limit, total)
}

// CreateUser cho admin tạo tài khoản chủ nhà hoặc admin khác
func (u UserController) CreateUser(c *gin.Context) {
	var request dto.CreateUserRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := services.CreateUser(models.User{
		Name:        request.Username,
		Email:       strings.ToLower(request.Email),
		Password:    request.Password,
		PhoneNumber: request.PhoneNumber,
		Role:        request.Role,
	})
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	rdb, redisErr := config.ConnectRedis()
	if redisErr == nil {
		_ = services.DeleteFromRedis(config.Ctx, rdb, "users:all")
	}

	response.Success(c, convertToUserResponse(user))
}

func (u UserController) GetUserByID(c *gin.Context) {
	var user models.User
	id := c.Param("id")

	if err := u.DB.First(&user, id).Error; err != nil {
		response.NotFound(c)
		return
	}

	response.Success(c, convertToUserResponse(user))
}

func (u UserController) UpdateUser(c *gin.Context) {
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

	var updateUser dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&updateUser); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var user models.User
	if err := u.DB.First(&user, currentUserID).Error; err != nil {
		response.NotFound(c)
		return
	}

	if strings.TrimSpace(updateUser.Name) != "" {
		user.Name = updateUser.Name
	}
	if strings.TrimSpace(updateUser.PhoneNumber) != "" {
		user.PhoneNumber = updateUser.PhoneNumber
	}
	if strings.TrimSpace(updateUser.Avatar) != "" {
		user.Avatar = updateUser.Avatar
	}
	user.Gender = updateUser.Gender
	if strings.TrimSpace(updateUser.DateOfBirth) != "" {
		user.DateOfBirth = updateUser.DateOfBirth
	}

	if err := u.DB.Save(&user).Error; err != nil {
		response.ServerError(c)
		return
	}

	rdb, redisErr := config.ConnectRedis()
	if redisErr == nil {
		_ = services.DeleteFromRedis(config.Ctx, rdb, "users:all")
	}

	response.Success(c, convertToUserResponse(user))
}

func (u UserController) ChangeUserStatus(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		response.Unauthorized(c)
		return
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	_, currentUserRole, err := services.GetUserIDFromToken(tokenString)
	if err != nil {
		response.Unauthorized(c)
		return
	}

	if currentUserRole != 1 {
		response.Forbidden(c)
		return
	}

	var statusRequest dto.UserStatusRequest
	if err := c.ShouldBindJSON(&statusRequest); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var user models.User
	if err := u.DB.First(&user, statusRequest.ID).Error; err != nil {
		response.NotFound(c)
		return
	}

	user.Status = statusRequest.Status
	if err := u.DB.Save(&user).Error; err != nil {
		response.ServerError(c)
		return
	}

	// Khóa chủ nhà thì ẩn luôn các chỗ ở của họ
	if user.Role == 2 && statusRequest.Status == 0 {
		if err := u.DB.Model(&models.Accommodation{}).
			Where("user_id = ?", user.ID).
			Update("status", 0).Error; err != nil {
			response.ServerError(c)
			return
		}
	}

	rdb, redisErr := config.ConnectRedis()
	if redisErr == nil {
		_ = services.DeleteFromRedis(config.Ctx, rdb, "users:all")
		_ = services.DeleteFromRedis(config.Ctx, rdb, "accommodations:all")
	}

	response.Success(c, convertToUserResponse(user))
}

func (u UserController) GetProfile(c *gin.Context) {
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

	cacheKey := fmt.Sprintf("users:profile:%d", currentUserID)
	rdb, redisErr := config.ConnectRedis()

	var user models.User
	if redisErr == nil {
		if err := services.GetFromRedis(config.Ctx, rdb, cacheKey, &user); err == nil && user.ID != 0 {
			response.Success(c, convertToUserResponse(user))
			return
		}
	}

	if err := u.DB.First(&user, currentUserID).Error; err != nil {
		response.NotFound(c)
		return
	}

	if redisErr == nil {
		if err := services.SetToRedis(config.Ctx, rdb, cacheKey, user, 10*time.Minute); err != nil {
			log.Printf("Lỗi khi lưu profile vào Redis: %v", err)
		}
	}

	response.Success(c, convertToUserResponse(user))
}

func (u UserController) ChangePassword(c *gin.Context) {
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

	var request dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var user models.User
	if err := u.DB.First(&user, currentUserID).Error; err != nil {
		response.NotFound(c)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(request.OldPassword)); err != nil {
		response.BadRequest(c, "Mật khẩu cũ không đúng")
		return
	}

	hashedPassword, err := services.HashPassword(request.NewPassword)
	if err != nil {
		response.ServerError(c)
		return
	}

	user.Password = hashedPassword
	if err := u.DB.Save(&user).Error; err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, nil)
}
