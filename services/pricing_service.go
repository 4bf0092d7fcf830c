package services

import (
	"fmt"
	"log"
	"time"

	"homestay/config"
	"homestay/models"
	"homestay/services/pricing"

	"gorm.io/gorm"
)

const pricingCacheTTL = 30 * time.Minute

const dateLayout = "2006-01-02"

func PricingCacheKey(accommodationID uint) string {
	return fmt.Sprintf("pricing:config:%d", accommodationID)
}

// GetPricingConfiguration lấy cấu hình giá của một chỗ ở, thử Redis
// trước, không có thì truy vấn DB rồi ghi lại cache
func GetPricingConfiguration(accommodationID uint) (*models.PricingConfiguration, error) {
	cacheKey := PricingCacheKey(accommodationID)

	var cfg models.PricingConfiguration
	if config.RedisClient != nil {
		if err := GetFromRedis(config.Ctx, config.RedisClient, cacheKey, &cfg); err == nil && cfg.ID != 0 {
			return &cfg, nil
		}
	}

	if err := loadPricingConfiguration(config.DB, accommodationID, &cfg); err != nil {
		return nil, err
	}

	if config.RedisClient != nil {
		if err := SetToRedis(config.Ctx, config.RedisClient, cacheKey, cfg, pricingCacheTTL); err != nil {
			log.Printf("Lỗi khi lưu cấu hình giá vào Redis: %v", err)
		}
	}

	return &cfg, nil
}

// loadPricingConfiguration truy vấn cấu hình kèm rule, rule sắp theo id
// để thứ tự khai báo ổn định
func loadPricingConfiguration(db *gorm.DB, accommodationID uint, cfg *models.PricingConfiguration) error {
	return db.Preload("Rules", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("pricing_rules.id ASC")
	}).Where("accommodation_id = ?", accommodationID).First(cfg).Error
}

// InvalidatePricingCache xóa cache cấu hình giá sau khi mutation
func InvalidatePricingCache(accommodationID uint) {
	if config.RedisClient == nil {
		return
	}
	if err := DeleteFromRedis(config.Ctx, config.RedisClient, PricingCacheKey(accommodationID)); err != nil {
		log.Printf("Lỗi khi xóa cache cấu hình giá: %v", err)
	}
}

// BuildEngineConfig chuyển cấu hình giá từ model sang input của engine.
// Rule hỏng (thiếu trường, sai định dạng ngày) bị bỏ qua thay vì gây lỗi.
func BuildEngineConfig(cfg *models.PricingConfiguration) pricing.Config {
	engineCfg := pricing.Config{
		AccommodationID: cfg.AccommodationID,
		BasePrice:       cfg.BasePrice,
		Currency:        cfg.Currency,
	}
	for _, rule := range cfg.Rules {
		engineRule, ok := buildEngineRule(rule)
		if !ok {
			continue
		}
		engineCfg.Rules = append(engineCfg.Rules, engineRule)
	}
	return engineCfg
}

func buildEngineRule(rule models.PricingRule) (pricing.Rule, bool) {
	meta := pricing.RuleMeta{
		Name:     rule.Name,
		Priority: rule.Priority,
		Enabled:  rule.Enabled,
	}

	switch rule.Type {
	case pricing.RuleTypeSeason:
		if rule.StartMonth == nil || rule.EndMonth == nil || rule.PriceMultiplier == nil {
			return nil, false
		}
		season := pricing.SeasonHigh
		if rule.Season != nil {
			season = pricing.Season(*rule.Season)
		}
		return pricing.SeasonRule{
			RuleMeta:        meta,
			Season:          season,
			StartMonth:      *rule.StartMonth,
			EndMonth:        *rule.EndMonth,
			PriceMultiplier: *rule.PriceMultiplier,
		}, true
	case pricing.RuleTypeWeekend:
		if rule.WeekendMultiplier == nil || rule.WeekMultiplier == nil {
			return nil, false
		}
		return pricing.WeekendRule{
			RuleMeta:          meta,
			WeekendMultiplier: *rule.WeekendMultiplier,
			WeekMultiplier:    *rule.WeekMultiplier,
		}, true
	case pricing.RuleTypeLongStay:
		if rule.MinimumNights == nil || rule.DiscountPercentage == nil {
			return nil, false
		}
		return pricing.LongStayRule{
			RuleMeta:                  meta,
			MinimumNights:             *rule.MinimumNights,
			DiscountPercentage:        *rule.DiscountPercentage,
			MaximumDiscountPercentage: rule.MaximumDiscountPercentage,
		}, true
	case pricing.RuleTypeCustomPeriod:
		if rule.StartDate == nil || rule.EndDate == nil || rule.PriceMultiplier == nil {
			return nil, false
		}
		startDate, err := time.Parse(dateLayout, *rule.StartDate)
		if err != nil {
			return nil, false
		}
		endDate, err := time.Parse(dateLayout, *rule.EndDate)
		if err != nil {
			return nil, false
		}
		return pricing.CustomPeriodRule{
			RuleMeta:        meta,
			StartDate:       startDate,
			EndDate:         endDate,
			PriceMultiplier: *rule.PriceMultiplier,
		}, true
	}

	return nil, false
}

// QuoteStay tính báo giá cho một khoảng ngày ISO-8601 [startDate, endDate)
func QuoteStay(cfg *models.PricingConfiguration, startDate, endDate string) (pricing.Result, error) {
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return pricing.Result{}, fmt.Errorf("ngày nhận phòng không hợp lệ: %w", err)
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return pricing.Result{}, fmt.Errorf("ngày trả phòng không hợp lệ: %w", err)
	}

	return pricing.Calculate(BuildEngineConfig(cfg), pricing.DateRange{Start: start, End: end}), nil
}
