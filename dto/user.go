package dto

import "time"

// UserResponse định nghĩa response cho user
type UserResponse struct {
	ID               uint      `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	PhoneNumber      string    `json:"phoneNumber"`
	Role             int       `json:"role"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
	Status           int       `json:"status,omitempty"`
	IsVerified       bool      `json:"isVerified,omitempty"`
	Avatar           string    `json:"avatar,omitempty"`
	DateOfBirth      string    `json:"dateOfBirth,omitempty"`
	AccommodationIDs []int64   `json:"accommodationIds,omitempty"`
}

// UserInfo là thông tin rút gọn nhúng trong các response khác
type UserInfo struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Avatar      string `json:"avatar"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// CreateUserRequest định nghĩa request tạo user
type CreateUserRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	Role        int    `json:"role"`
}

type UpdateUserRequest struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
	Avatar      string `json:"avatar"`
	DateOfBirth string `json:"dateOfBirth"`
	Gender      int    `json:"gender"`
}

// UserStatusRequest định nghĩa request cập nhật trạng thái user
type UserStatusRequest struct {
	Status int  `json:"status"`
	ID     uint `json:"id" binding:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}
