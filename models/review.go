package models

import "time"

type Review struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	UserID          uint      `json:"userId"`
	AccommodationID uint      `json:"accommodationId"`
	Comment         string    `json:"comment"`
	Star            int       `json:"star"` // 1-5
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
	User            User      `json:"user" gorm:"foreignKey:UserID"`
}
