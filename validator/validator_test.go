package validator

import (
	"testing"

	"homestay/models"
	"homestay/services/pricing"

	"github.com/stretchr/testify/assert"
)

func ptrF(v float64) *float64 { return &v }
func ptrI(v int) *int         { return &v }
func ptrS(v string) *string   { return &v }
func ptrU(v uint) *uint       { return &v }

func TestValidateUser(t *testing.T) {
	valid := models.User{
		Email:       "guest@example.com",
		Password:    "secret123",
		PhoneNumber: "0912345678",
		Role:        0,
	}
	assert.NoError(t, ValidateUser(&valid))

	badEmail := valid
	badEmail.Email = "not-an-email"
	assert.Error(t, ValidateUser(&badEmail))

	shortPassword := valid
	shortPassword.Password = "abc"
	assert.Error(t, ValidateUser(&shortPassword))

	badPhone := valid
	badPhone.PhoneNumber = "12ab"
	assert.Error(t, ValidateUser(&badPhone))

	badRole := valid
	badRole.Role = 7
	assert.Error(t, ValidateUser(&badRole))
}

func TestValidatePricingConfiguration(t *testing.T) {
	assert.NoError(t, ValidatePricingConfiguration(&models.PricingConfiguration{BasePrice: 50, Currency: "EUR"}))
	assert.Error(t, ValidatePricingConfiguration(&models.PricingConfiguration{BasePrice: 0, Currency: "EUR"}))
	assert.Error(t, ValidatePricingConfiguration(&models.PricingConfiguration{BasePrice: 50, Currency: "EURO"}))
}

func TestValidateSeasonRule(t *testing.T) {
	rule := models.PricingRule{
		Type:            pricing.RuleTypeSeason,
		Name:            "Mùa cao điểm",
		Season:          ptrS(string(pricing.SeasonHigh)),
		StartMonth:      ptrI(6),
		EndMonth:        ptrI(8),
		PriceMultiplier: ptrF(1.5),
	}
	assert.NoError(t, ValidatePricingRule(&rule))

	missingMonths := rule
	missingMonths.StartMonth = nil
	assert.Error(t, ValidatePricingRule(&missingMonths))

	badMonth := rule
	badMonth.EndMonth = ptrI(13)
	assert.Error(t, ValidatePricingRule(&badMonth))

	badSeason := rule
	badSeason.Season = ptrS("SPRING")
	assert.Error(t, ValidatePricingRule(&badSeason))
}

func TestValidateWeekendRule(t *testing.T) {
	rule := models.PricingRule{
		Type:              pricing.RuleTypeWeekend,
		Name:              "Cuối tuần",
		WeekendMultiplier: ptrF(1.2),
		WeekMultiplier:    ptrF(1.0),
	}
	assert.NoError(t, ValidatePricingRule(&rule))

	negative := rule
	negative.WeekendMultiplier = ptrF(-1)
	assert.Error(t, ValidatePricingRule(&negative))
}

func TestValidateLongStayRule(t *testing.T) {
	rule := models.PricingRule{
		Type:               pricing.RuleTypeLongStay,
		Name:               "Dài hạn",
		MinimumNights:      ptrI(7),
		DiscountPercentage: ptrF(10),
	}
	assert.NoError(t, ValidatePricingRule(&rule))

	overCap := rule
	overCap.DiscountPercentage = ptrF(120)
	assert.Error(t, ValidatePricingRule(&overCap))

	badCap := rule
	badCap.MaximumDiscountPercentage = ptrF(-5)
	assert.Error(t, ValidatePricingRule(&badCap))
}

func TestValidateCustomPeriodRule(t *testing.T) {
	rule := models.PricingRule{
		Type:            pricing.RuleTypeCustomPeriod,
		Name:            "Lễ hội",
		StartDate:       ptrS("2025-12-20"),
		EndDate:         ptrS("2026-01-05"),
		PriceMultiplier: ptrF(2.0),
	}
	assert.NoError(t, ValidatePricingRule(&rule))

	reversed := rule
	reversed.StartDate = ptrS("2026-01-05")
	reversed.EndDate = ptrS("2025-12-20")
	assert.Error(t, ValidatePricingRule(&reversed))

	badFormat := rule
	badFormat.StartDate = ptrS("20/12/2025")
	assert.Error(t, ValidatePricingRule(&badFormat))
}

func TestValidatePricingRuleUnknownType(t *testing.T) {
	rule := models.PricingRule{Type: "FLASH_SALE", Name: "Không hỗ trợ"}
	assert.Error(t, ValidatePricingRule(&rule))
}

func TestValidateReservation(t *testing.T) {
	userID := ptrU(3)
	valid := models.Reservation{
		UserID:          userID,
		AccommodationID: 1,
		CheckInDate:     "2025-07-01",
		CheckOutDate:    "2025-07-05",
	}
	assert.NoError(t, ValidateReservation(&valid))

	sameDay := valid
	sameDay.CheckOutDate = "2025-07-01"
	assert.Error(t, ValidateReservation(&sameDay))

	guest := models.Reservation{
		AccommodationID: 1,
		CheckInDate:     "2025-07-01",
		CheckOutDate:    "2025-07-05",
		GuestName:       "Nguyễn Văn A",
		GuestPhone:      "0912345678",
	}
	assert.NoError(t, ValidateReservation(&guest))

	guestNoPhone := guest
	guestNoPhone.GuestPhone = ""
	assert.Error(t, ValidateReservation(&guestNoPhone))
}

func TestValidateReview(t *testing.T) {
	valid := models.Review{AccommodationID: 1, Star: 5, Comment: "Tuyệt vời"}
	assert.NoError(t, ValidateReview(&valid))

	badStar := valid
	badStar.Star = 6
	assert.Error(t, ValidateReview(&badStar))

	empty := valid
	empty.Comment = ""
	assert.Error(t, ValidateReview(&empty))
}
