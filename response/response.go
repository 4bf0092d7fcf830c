package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response là cấu trúc trả về chung của API
type Response struct {
	Code       int         `json:"code"`
	Mess       string      `json:"mess"`
	Data       interface{} `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

func fail(c *gin.Context, status int, mess string) {
	c.JSON(status, Response{Code: 0, Mess: mess})
}

// Success trả về response thành công
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Code: 1, Mess: "Thành công", Data: data})
}

// SuccessWithPagination trả về response thành công kèm phân trang
func SuccessWithPagination(c *gin.Context, data interface{}, page, limit, total int) {
	c.JSON(http.StatusOK, Response{
		Code:       1,
		Mess:       "Thành công",
		Data:       data,
		Pagination: &Pagination{Page: page, Limit: limit, Total: total},
	})
}

// Error trả về lỗi nghiệp vụ với mã tùy ý
func Error(c *gin.Context, code int, message string) {
	c.JSON(http.StatusBadRequest, Response{Code: code, Mess: message})
}

func ServerError(c *gin.Context) {
	fail(c, http.StatusInternalServerError, "Lỗi server")
}

func Unauthorized(c *gin.Context) {
	fail(c, http.StatusUnauthorized, "Chưa xác thực")
}

func Forbidden(c *gin.Context) {
	fail(c, http.StatusForbidden, "Không có quyền truy cập")
}

func NotFound(c *gin.Context) {
	fail(c, http.StatusNotFound, "Không tìm thấy")
}

func ValidationError(c *gin.Context, message string) {
	fail(c, http.StatusBadRequest, message)
}

func BadRequest(c *gin.Context, message string) {
	fail(c, http.StatusBadRequest, message)
}

func Conflict(c *gin.Context, message string) {
	fail(c, http.StatusConflict, message)
}
