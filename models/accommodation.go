package models

import (
	"encoding/json"
	"fmt"
	"time"
)

type Accommodation struct {
	ID               uint            `json:"id" gorm:"primaryKey"`
	Type             int             `json:"type"` // Loại chỗ ở: 0 căn hộ, 1 nhà nguyên căn, 2 villa, 3 homestay
	UserID           uint            `json:"userId"`
	Name             string          `json:"name"`
	Address          string          `json:"address"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
	Avatar           string          `json:"avatar"`
	Img              json.RawMessage `json:"img" gorm:"type:json"` // Danh sách ảnh
	ShortDescription string          `json:"shortDescription"`
	Description      string          `json:"description"`
	Status           int             `json:"status"` // 0: ẩn, 1: đang hoạt động, 2: chờ duyệt
	User             User            `json:"user" gorm:"foreignKey:UserID"`
	Reviews          []Review        `json:"reviews" gorm:"foreignKey:AccommodationID"`
	Amenities        json.RawMessage `json:"amenities" gorm:"type:json"`
	People           int             `json:"people"`
	Price            float64         `json:"price"` // Giá hiển thị, đồng bộ từ cấu hình giá
	AvgStar          float64         `json:"avgStar"`
	NumBed           int             `json:"numBed"`
	NumToilet        int             `json:"numToilet"`
	TimeCheckIn      string          `json:"timeCheckIn"`
	TimeCheckOut     string          `json:"timeCheckOut"`
	Province         string          `json:"province"`
	District         string          `json:"district"`
	Ward             string          `json:"ward"`
	Longitude        float64         `json:"longitude"`
	Latitude         float64         `json:"latitude"`
}

func (a *Accommodation) ValidateType() error {
	if a.Type < 0 || a.Type > 3 {
		return fmt.Errorf("invalid Type: %d, must be between 0 and 3", a.Type)
	}
	return nil
}

func (a *Accommodation) ValidateStatus() error {
	if a.Status < 0 || a.Status > 2 {
		return fmt.Errorf("invalid Status: %d, must be between 0 and 2", a.Status)
	}
	return nil
}
