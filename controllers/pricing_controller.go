package controllers

import (
	"errors"
	"strconv"

	"homestay/config"
	"homestay/dto"
	"homestay/models"
	"homestay/response"
	"homestay/services"
	"homestay/services/pricing"
	"homestay/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func parseAccommodationID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("accommodationId"))
	if err != nil || id <= 0 {
		response.BadRequest(c, "accommodationId không hợp lệ")
		return 0, false
	}
	return uint(id), true
}

// GetPricingConfiguration lấy cấu hình giá của một chỗ ở
func GetPricingConfiguration(c *gin.Context) {
	accommodationID, ok := parseAccommodationID(c)
	if !ok {
		return
	}

	cfg, err := services.GetPricingConfiguration(accommodationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}

	response.Success(c, dto.PricingConfigurationResponse{
		AccommodationID: cfg.AccommodationID,
		BasePrice:       cfg.BasePrice,
		Currency:        cfg.Currency,
		Rules:           cfg.Rules,
	})
}

// UpsertPricingConfiguration tạo hoặc cập nhật cấu hình giá; mỗi chỗ ở
// chỉ có một cấu hình
func UpsertPricingConfiguration(c *gin.Context) {
	accommodationID, ok := parseAccommodationID(c)
	if !ok {
		return
	}

	var request dto.PricingConfigurationRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	var accommodation models.Accommodation
	if err := config.DB.First(&accommodation, accommodationID).Error; err != nil {
		response.NotFound(c)
		return
	}

	cfg := models.PricingConfiguration{
		AccommodationID: accommodationID,
		BasePrice:       request.BasePrice,
		Currency:        request.Currency,
	}
	if cfg.Currency == "" {
		cfg.Currency = "EUR"
	}
	if err := validator.ValidatePricingConfiguration(&cfg); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	var existing models.PricingConfiguration
	err := config.DB.Where("accommodation_id = ?", accommodationID).First(&existing).Error
	switch {
	case err == nil:
		existing.BasePrice = cfg.BasePrice
		existing.Currency = cfg.Currency
		if err := config.DB.Save(&existing).Error; err != nil {
			response.ServerError(c)
			return
		}
		cfg = existing
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := config.DB.Create(&cfg).Error; err != nil {
			response.ServerError(c)
			return
		}
	default:
		response.ServerError(c)
		return
	}

	// Đồng bộ giá hiển thị của chỗ ở
	if err := config.DB.Model(&accommodation).Update("price", cfg.BasePrice).Error; err != nil {
		response.ServerError(c)
		return
	}

	services.InvalidatePricingCache(accommodationID)
	response.Success(c, cfg)
}

// QuotePrice tính báo giá cho một khoảng ngày, chỉ đọc, không lưu gì.
// Khoảng ngày rỗng trả về báo giá 0 đêm chứ không phải lỗi.
func QuotePrice(c *gin.Context) {
	accommodationID, ok := parseAccommodationID(c)
	if !ok {
		return
	}

	var request dto.QuoteRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	cfg, err := services.GetPricingConfiguration(accommodationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}

	result, err := services.QuoteStay(cfg, request.StartDate, request.EndDate)
	if err != nil {
		response.BadRequest(c, "Định dạng ngày không hợp lệ, cần YYYY-MM-DD")
		return
	}

	response.Success(c, buildQuoteResponse(cfg, result))
}

func buildQuoteResponse(cfg *models.PricingConfiguration, result pricing.Result) dto.QuoteResponse {
	nightlyPrices := make([]dto.NightlyPriceResponse, 0, len(result.NightlyPrices))
	for _, night := range result.NightlyPrices {
		nightlyPrices = append(nightlyPrices, dto.NightlyPriceResponse{
			Date:          night.Date.Format("2006-01-02"),
			BasePrice:     night.BasePrice,
			AdjustedPrice: night.AdjustedPrice,
			AppliedRules:  night.AppliedRules,
			IsWeekend:     night.IsWeekend,
		})
	}
	return dto.QuoteResponse{
		BasePrice:           cfg.BasePrice,
		Currency:            cfg.Currency,
		Nights:              result.Nights,
		WeekendNights:       result.WeekendNights,
		WeekNights:          result.WeekNights,
		NightlyPrices:       nightlyPrices,
		Subtotal:            result.Subtotal,
		LongStayDiscount:    result.LongStayDiscount,
		Total:               result.Total,
		AverageNightlyPrice: pricing.AverageNightlyPrice(result),
		AppliedRules:        result.AppliedRules,
	}
}

// CreatePricingRule thêm một rule vào cấu hình giá của chỗ ở
func CreatePricingRule(c *gin.Context) {
	accommodationID, ok := parseAccommodationID(c)
	if !ok {
		return
	}

	var request dto.PricingRuleRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	var cfg models.PricingConfiguration
	if err := config.DB.Where("accommodation_id = ?", accommodationID).First(&cfg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.BadRequest(c, "Chỗ ở chưa có cấu hình giá")
			return
		}
		response.ServerError(c)
		return
	}

	rule := buildRuleModel(request)
	rule.PricingConfigurationID = cfg.ID
	if err := validator.ValidatePricingRule(&rule); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	if err := config.DB.Create(&rule).Error; err != nil {
		response.ServerError(c)
		return
	}

	services.InvalidatePricingCache(accommodationID)
	response.Success(c, rule)
}

// UpdatePricingRule cập nhật một rule, thay toàn bộ các trường theo loại
func UpdatePricingRule(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		response.BadRequest(c, "ID rule không hợp lệ")
		return
	}

	var request dto.PricingRuleRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	var rule models.PricingRule
	if err := config.DB.First(&rule, id).Error; err != nil {
		response.NotFound(c)
		return
	}

	updated := buildRuleModel(request)
	updated.ID = rule.ID
	updated.PricingConfigurationID = rule.PricingConfigurationID
	updated.CreatedAt = rule.CreatedAt
	if err := validator.ValidatePricingRule(&updated); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	if err := config.DB.Save(&updated).Error; err != nil {
		response.ServerError(c)
		return
	}

	invalidateRuleCache(updated.PricingConfigurationID)
	response.Success(c, updated)
}

// DeletePricingRule xóa một rule, không đụng tới cấu hình
func DeletePricingRule(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		response.BadRequest(c, "ID rule không hợp lệ")
		return
	}

	var rule models.PricingRule
	if err := config.DB.First(&rule, id).Error; err != nil {
		response.NotFound(c)
		return
	}

	if err := config.DB.Delete(&rule).Error; err != nil {
		response.ServerError(c)
		return
	}

	invalidateRuleCache(rule.PricingConfigurationID)
	response.Success(c, gin.H{"id": rule.ID})
}

func invalidateRuleCache(configurationID uint) {
	var cfg models.PricingConfiguration
	if err := config.DB.First(&cfg, configurationID).Error; err == nil {
		services.InvalidatePricingCache(cfg.AccommodationID)
	}
}

func buildRuleModel(request dto.PricingRuleRequest) models.PricingRule {
	enabled := true
	if request.Enabled != nil {
		enabled = *request.Enabled
	}
	return models.PricingRule{
		Type:                      request.Type,
		Name:                      request.Name,
		Priority:                  request.Priority,
		Enabled:                   enabled,
		Season:                    request.Season,
		StartMonth:                request.StartMonth,
		EndMonth:                  request.EndMonth,
		PriceMultiplier:           request.PriceMultiplier,
		WeekendMultiplier:         request.WeekendMultiplier,
		WeekMultiplier:            request.WeekMultiplier,
		MinimumNights:             request.MinimumNights,
		DiscountPercentage:        request.DiscountPercentage,
		MaximumDiscountPercentage: request.MaximumDiscountPercentage,
		StartDate:                 request.StartDate,
		EndDate:                   request.EndDate,
	}
}
