package services

import (
	"testing"

	"homestay/config"
	"homestay/models"
	"homestay/services/pricing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func ptrF(v float64) *float64 { return &v }
func ptrI(v int) *int         { return &v }
func ptrS(v string) *string   { return &v }

func setupPricingDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.PricingConfiguration{}, &models.PricingRule{}))
	config.DB = db
	config.RedisClient = nil
	return db
}

func TestGetPricingConfigurationLoadsRulesInOrder(t *testing.T) {
	db := setupPricingDB(t)

	cfg := models.PricingConfiguration{
		AccommodationID: 42,
		BasePrice:       100,
		Currency:        "EUR",
	}
	require.NoError(t, db.Create(&cfg).Error)

	rules := []models.PricingRule{
		{
			PricingConfigurationID: cfg.ID,
			Type:                   pricing.RuleTypeWeekend,
			Name:                   "Cuối tuần",
			Priority:               1,
			Enabled:                true,
			WeekendMultiplier:      ptrF(1.2),
			WeekMultiplier:         ptrF(1.0),
		},
		{
			PricingConfigurationID: cfg.ID,
			Type:                   pricing.RuleTypeLongStay,
			Name:                   "Dài hạn",
			Priority:               1,
			Enabled:                true,
			MinimumNights:          ptrI(7),
			DiscountPercentage:     ptrF(10),
		},
	}
	require.NoError(t, db.Create(&rules).Error)

	loaded, err := GetPricingConfiguration(42)
	require.NoError(t, err)
	require.Len(t, loaded.Rules, 2)
	assert.Equal(t, "Cuối tuần", loaded.Rules[0].Name)
	assert.Equal(t, "Dài hạn", loaded.Rules[1].Name)
	assert.Equal(t, 100.0, loaded.BasePrice)
}

func TestGetPricingConfigurationNotFound(t *testing.T) {
	setupPricingDB(t)

	_, err := GetPricingConfiguration(999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestBuildEngineConfigSkipsMalformedRules(t *testing.T) {
	cfg := &models.PricingConfiguration{
		AccommodationID: 7,
		BasePrice:       80,
		Currency:        "EUR",
		Rules: []models.PricingRule{
			{Type: pricing.RuleTypeSeason, Name: "Thiếu tháng", Enabled: true, PriceMultiplier: ptrF(1.5)},
			{Type: pricing.RuleTypeCustomPeriod, Name: "Ngày hỏng", Enabled: true, StartDate: ptrS("25/01/2025"), EndDate: ptrS("2025-02-02"), PriceMultiplier: ptrF(1.3)},
			{Type: pricing.RuleTypeWeekend, Name: "Cuối tuần", Enabled: true, WeekendMultiplier: ptrF(1.2), WeekMultiplier: ptrF(1.0)},
		},
	}

	engineCfg := BuildEngineConfig(cfg)

	require.Len(t, engineCfg.Rules, 1)
	assert.Equal(t, "Cuối tuần", engineCfg.Rules[0].Meta().Name)
	assert.Equal(t, 80.0, engineCfg.BasePrice)
}

func TestQuoteStay(t *testing.T) {
	cfg := &models.PricingConfiguration{
		AccommodationID: 7,
		BasePrice:       100,
		Currency:        "EUR",
		Rules: []models.PricingRule{
			{
				Type:              pricing.RuleTypeWeekend,
				Name:              "Cuối tuần",
				Priority:          1,
				Enabled:           true,
				WeekendMultiplier: ptrF(1.2),
				WeekMultiplier:    ptrF(1.0),
			},
		},
	}

	// 02/06/2025 là thứ Hai, 7 đêm
	result, err := QuoteStay(cfg, "2025-06-02", "2025-06-09")
	require.NoError(t, err)
	assert.Equal(t, 7, result.Nights)
	assert.Equal(t, 2, result.WeekendNights)
	assert.Equal(t, 740.0, result.Subtotal)
	assert.Equal(t, 740.0, result.Total)

	_, err = QuoteStay(cfg, "02/06/2025", "2025-06-09")
	assert.Error(t, err)
}
