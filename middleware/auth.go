package middleware

import (
	"strings"

	"homestay/errors"
	"homestay/response"
	"homestay/services"
	"homestay/utils"

	"github.com/gin-gonic/gin"
)

func roleAllowed(role int, allowed []int) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

// AuthMiddleware xác thực token và (tùy chọn) giới hạn theo role
func AuthMiddleware(roles ...int) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		userID, userRole, err := services.GetUserIDFromToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		if len(roles) > 0 && !roleAllowed(userRole, roles) {
			response.Forbidden(c)
			c.Abort()
			return
		}

		c.Set("userID", userID)
		c.Set("userRole", userRole)
		c.Next()
	}
}

// RoleMiddleware kiểm tra role đã được AuthMiddleware gán vào context
func RoleMiddleware(roles ...int) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get("userRole")
		if !exists {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		if !roleAllowed(userRole.(int), roles) {
			response.Forbidden(c)
			c.Abort()
			return
		}

		c.Next()
	}
}

// ErrorHandler ghi log và chuyển lỗi cuối cùng của request thành response
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		utils.LogError("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)

		if appErr, ok := err.(*errors.AppError); ok {
			response.Error(c, 0, appErr.Message)
			return
		}
		response.ServerError(c)
	}
}
