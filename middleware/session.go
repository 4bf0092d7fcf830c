package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const sessionHeader = "X-Session-ID"

// SessionMiddleware đảm bảo mỗi request tìm kiếm có một sessionId,
// dùng làm khóa lưu bộ lọc gần nhất của khách
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionId := c.GetHeader(sessionHeader)
		if sessionId == "" {
			sessionId = uuid.NewString()
		}

		c.Set("sessionId", sessionId)

		// Trả lại header để client giữ session giữa các lần tìm kiếm
		c.Writer.Header().Set(sessionHeader, sessionId)

		c.Next()
	}
}
