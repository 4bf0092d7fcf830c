package dto

import "encoding/json"

// AccommodationResponse định nghĩa response cho chỗ ở
type AccommodationResponse struct {
	ID               uint            `json:"id"`
	Type             int             `json:"type"`
	Name             string          `json:"name"`
	Address          string          `json:"address"`
	Avatar           string          `json:"avatar"`
	Img              json.RawMessage `json:"img"`
	ShortDescription string          `json:"shortDescription"`
	Description      string          `json:"description"`
	Status           int             `json:"status"`
	User             UserInfo        `json:"user"`
	Amenities        json.RawMessage `json:"amenities"`
	People           int             `json:"people"`
	Price            float64         `json:"price"`
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

type CreateAccommodationRequest struct {
	Type             int             `json:"type"`
	Name             string          `json:"name" binding:"required"`
	Address          string          `json:"address" binding:"required"`
	Avatar           string          `json:"avatar"`
	Img              json.RawMessage `json:"img"`
	ShortDescription string          `json:"shortDescription"`
	Description      string          `json:"description"`
	Amenities        json.RawMessage `json:"amenities"`
	People           int             `json:"people"`
	Price            float64         `json:"price"`
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

type UpdateAccommodationRequest struct {
	ID uint `json:"id" binding:"required"`
	CreateAccommodationRequest
}

type AccommodationStatusRequest struct {
	ID     uint `json:"id" binding:"required"`
	Status int  `json:"status"`
}

// SearchFilters là bộ lọc tìm kiếm được nhớ lại theo phiên
type SearchFilters struct {
	Type      string `json:"type,omitempty"`
	Province  string `json:"province,omitempty"`
	District  string `json:"district,omitempty"`
	Name      string `json:"name,omitempty"`
	NumBed    string `json:"numBed,omitempty"`
	NumToilet string `json:"numToilet,omitempty"`
	People    string `json:"people,omitempty"`
	Search    string `json:"search,omitempty"`
	FromDate  string `json:"fromDate,omitempty"`
	ToDate    string `json:"toDate,omitempty"`
}

