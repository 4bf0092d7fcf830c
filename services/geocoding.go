package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const goongGeocodeURL = "https://rsapi.goong.io/geocode"

var geocodeClient = &http.Client{Timeout: 10 * time.Second}

// goongGeocodeResponse ánh xạ phản hồi geocode của Goong
type goongGeocodeResponse struct {
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// ParseGeocodeResponse đọc kết quả đầu tiên từ phản hồi Goong
func ParseGeocodeResponse(body io.Reader) (float64, float64, error) {
	var parsed goongGeocodeResponse
	if err := json.NewDecoder(body).Decode(&parsed); err != nil {
		return 0, 0, fmt.Errorf("failed to parse response: %w", err)
	}
	if len(parsed.Results) == 0 {
		return 0, 0, errors.New("no results found")
	}
	loc := parsed.Results[0].Geometry.Location
	return loc.Lat, loc.Lng, nil
}

// GetCoordinatesFromAddress mã hóa địa chỉ đầy đủ thành tọa độ qua Goong
func GetCoordinatesFromAddress(address, district, province, ward, apiKey string) (float64, float64, error) {
	fullAddress := fmt.Sprintf("%s, %s, %s, %s", address, ward, district, province)

	query := url.Values{}
	query.Set("address", fullAddress)
	query.Set("api_key", apiKey)

	resp, err := geocodeClient.Get(goongGeocodeURL + "?" + query.Encode())
	if err != nil {
		return 0, 0, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("geocode API returned status %d", resp.StatusCode)
	}

	return ParseGeocodeResponse(resp.Body)
}
