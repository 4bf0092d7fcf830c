package models

import (
	"time"

	"github.com/lib/pq"
)

type User struct {
	ID               uint          `gorm:"primaryKey" json:"id"`
	CreatedAt        time.Time     `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt        time.Time     `gorm:"autoUpdateTime" json:"updatedAt"`
	Name             string        `gorm:"default:New User" json:"name"`
	Email            string        `gorm:"unique" json:"email"`
	Password         string        `json:"password"`
	IsVerified       bool          `gorm:"default:false" json:"is_verified"`
	Code             string        `json:"code"` // Mã xác thực email
	CodeCreatedAt    time.Time     `gorm:"autoCreateTime" json:"codeCreatedAt"`
	PhoneNumber      string        `gorm:"unique;type:varchar(11);not null" json:"phoneNumber"`
	Avatar           string        `json:"avatar"`
	Role             int           `gorm:"default:0" json:"role"` // 0: khách, 1: admin, 2: chủ nhà
	Status           int           `gorm:"default:0" json:"status"`
	Gender           int           `json:"gender"`
	DateOfBirth      string        `gorm:"default:'2000-01-01'" json:"dateOfBirth"`
	AccommodationIDs pq.Int64Array `json:"accommodation_ids" gorm:"type:integer[]"` // Chỗ ở do chủ nhà quản lý
}
