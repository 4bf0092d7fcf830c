package dto

import "time"

type ReviewResponse struct {
	ID              uint      `json:"id"`
	AccommodationID uint      `json:"accommodationId"`
	Comment         string    `json:"comment"`
	Star            int       `json:"star"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
	User            UserInfo  `json:"user"`
}

type CreateReviewRequest struct {
	AccommodationID uint   `json:"accommodationId" binding:"required"`
	Comment         string `json:"comment" binding:"required"`
	Star            int    `json:"star" binding:"required,min=1,max=5"`
}

type UpdateReviewRequest struct {
	ID      uint   `json:"id" binding:"required"`
	Comment string `json:"comment" binding:"required"`
	Star    int    `json:"star" binding:"required,min=1,max=5"`
}
