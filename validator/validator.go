package validator

import (
	"regexp"
	"time"

	"homestay/errors"
	"homestay/models"
	"homestay/services/pricing"
)

const dateLayout = "2006-01-02"

// ValidateUser validate thông tin user
func ValidateUser(user *models.User) error {
	if user.Email == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Email không được để trống", nil)
	}

	if !isValidEmail(user.Email) {
		return errors.NewAppError(errors.ErrCodeInvalidEmail, "Email không hợp lệ", nil)
	}

	if user.Password == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Mật khẩu không được để trống", nil)
	}

	if len(user.Password) < 6 {
		return errors.NewAppError(errors.ErrCodeValidation, "Mật khẩu phải có ít nhất 6 ký tự", nil)
	}

	if user.PhoneNumber == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Số điện thoại không được để trống", nil)
	}

	if !isValidPhone(user.PhoneNumber) {
		return errors.NewAppError(errors.ErrCodeInvalidPhone, "Số điện thoại không hợp lệ", nil)
	}

	if user.Role < 0 || user.Role > 2 {
		return errors.NewAppError(errors.ErrCodeInvalidRole, "Role không hợp lệ", nil)
	}

	return nil
}

// ValidatePricingConfiguration validate cấu hình giá trước khi lưu.
// Engine không tự validate nên mọi ràng buộc phải chặn ở đây.
func ValidatePricingConfiguration(cfg *models.PricingConfiguration) error {
	if cfg.BasePrice <= 0 {
		return errors.NewAppError(errors.ErrCodeInvalidAmount, "Giá gốc phải lớn hơn 0", nil)
	}

	if len(cfg.Currency) != 3 {
		return errors.NewAppError(errors.ErrCodeInvalidFormat, "Mã tiền tệ phải có 3 ký tự", nil)
	}

	return nil
}

// ValidatePricingRule validate một rule giá theo loại của nó
func ValidatePricingRule(rule *models.PricingRule) error {
	if rule.Name == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Tên rule không được để trống", nil)
	}

	switch rule.Type {
	case pricing.RuleTypeSeason:
		return validateSeasonRule(rule)
	case pricing.RuleTypeWeekend:
		return validateWeekendRule(rule)
	case pricing.RuleTypeLongStay:
		return validateLongStayRule(rule)
	case pricing.RuleTypeCustomPeriod:
		return validateCustomPeriodRule(rule)
	}

	return errors.NewAppError(errors.ErrCodeInvalidRuleType, "Loại rule không hợp lệ: "+rule.Type, nil)
}

func validateSeasonRule(rule *models.PricingRule) error {
	if rule.Season == nil || (*rule.Season != string(pricing.SeasonHigh) && *rule.Season != string(pricing.SeasonLow)) {
		return errors.NewAppError(errors.ErrCodeValidation, "Mùa phải là HIGH hoặc LOW", nil)
	}

	if rule.StartMonth == nil || rule.EndMonth == nil {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Rule theo mùa cần tháng bắt đầu và tháng kết thúc", nil)
	}

	if *rule.StartMonth < 1 || *rule.StartMonth > 12 || *rule.EndMonth < 1 || *rule.EndMonth > 12 {
		return errors.NewAppError(errors.ErrCodeInvalidMonth, "Tháng phải nằm trong khoảng 1 đến 12", nil)
	}

	return validateMultiplier(rule.PriceMultiplier, "Hệ số giá")
}

func validateWeekendRule(rule *models.PricingRule) error {
	if err := validateMultiplier(rule.WeekendMultiplier, "Hệ số cuối tuần"); err != nil {
		return err
	}
	return validateMultiplier(rule.WeekMultiplier, "Hệ số ngày thường")
}

func validateLongStayRule(rule *models.PricingRule) error {
	if rule.MinimumNights == nil || *rule.MinimumNights < 1 {
		return errors.NewAppError(errors.ErrCodeValidation, "Số đêm tối thiểu phải từ 1 trở lên", nil)
	}

	if rule.DiscountPercentage == nil || *rule.DiscountPercentage < 0 || *rule.DiscountPercentage > 100 {
		return errors.NewAppError(errors.ErrCodeInvalidPercentage, "Mức giảm giá phải nằm trong khoảng từ 0 đến 100", nil)
	}

	if rule.MaximumDiscountPercentage != nil && (*rule.MaximumDiscountPercentage < 0 || *rule.MaximumDiscountPercentage > 100) {
		return errors.NewAppError(errors.ErrCodeInvalidPercentage, "Mức giảm giá tối đa phải nằm trong khoảng từ 0 đến 100", nil)
	}

	return nil
}

func validateCustomPeriodRule(rule *models.PricingRule) error {
	if rule.StartDate == nil || rule.EndDate == nil {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Rule theo khoảng ngày cần ngày bắt đầu và ngày kết thúc", nil)
	}

	startDate, err := time.Parse(dateLayout, *rule.StartDate)
	if err != nil {
		return errors.NewAppError(errors.ErrCodeInvalidFormat, "Định dạng ngày bắt đầu không hợp lệ, cần YYYY-MM-DD", err)
	}

	endDate, err := time.Parse(dateLayout, *rule.EndDate)
	if err != nil {
		return errors.NewAppError(errors.ErrCodeInvalidFormat, "Định dạng ngày kết thúc không hợp lệ, cần YYYY-MM-DD", err)
	}

	if endDate.Before(startDate) {
		return errors.NewAppError(errors.ErrCodeValidation, "Ngày kết thúc phải sau ngày bắt đầu", nil)
	}

	return validateMultiplier(rule.PriceMultiplier, "Hệ số giá")
}

func validateMultiplier(multiplier *float64, label string) error {
	if multiplier == nil || *multiplier <= 0 {
		return errors.NewAppError(errors.ErrCodeInvalidMultiplier, label+" phải lớn hơn 0", nil)
	}
	return nil
}

// ValidateReservation validate thông tin đặt phòng
func ValidateReservation(reservation *models.Reservation) error {
	if reservation.AccommodationID == 0 {
		return errors.NewAppError(errors.ErrCodeRequiredField, "ID chỗ ở không được để trống", nil)
	}

	checkInDate, err := time.Parse(dateLayout, reservation.CheckInDate)
	if err != nil {
		return errors.NewAppError(errors.ErrCodeInvalidFormat, "Ngày nhận phòng không hợp lệ", err)
	}

	checkOutDate, err := time.Parse(dateLayout, reservation.CheckOutDate)
	if err != nil {
		return errors.NewAppError(errors.ErrCodeInvalidFormat, "Ngày trả phòng không hợp lệ", err)
	}

	if !checkOutDate.After(checkInDate) {
		return errors.NewAppError(errors.ErrCodeValidation, "Ngày trả phòng phải sau ngày nhận phòng", nil)
	}

	if reservation.UserID == nil {
		if reservation.GuestName == "" {
			return errors.NewAppError(errors.ErrCodeRequiredField, "Tên khách không được để trống", nil)
		}
		if reservation.GuestPhone == "" {
			return errors.NewAppError(errors.ErrCodeRequiredField, "Số điện thoại khách không được để trống", nil)
		}
		if !isValidPhone(reservation.GuestPhone) {
			return errors.NewAppError(errors.ErrCodeInvalidPhone, "Số điện thoại khách không hợp lệ", nil)
		}
		if reservation.GuestEmail != "" && !isValidEmail(reservation.GuestEmail) {
			return errors.NewAppError(errors.ErrCodeInvalidEmail, "Email khách không hợp lệ", nil)
		}
	}

	return nil
}

// ValidateReview validate đánh giá
func ValidateReview(review *models.Review) error {
	if review.AccommodationID == 0 {
		return errors.NewAppError(errors.ErrCodeRequiredField, "ID chỗ ở không được để trống", nil)
	}

	if review.Star < 1 || review.Star > 5 {
		return errors.NewAppError(errors.ErrCodeValidation, "Số sao phải từ 1 đến 5", nil)
	}

	if review.Comment == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Bình luận không được để trống", nil)
	}

	return nil
}

// isValidEmail kiểm tra email hợp lệ
func isValidEmail(email string) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(email)
}

// isValidPhone kiểm tra số điện thoại hợp lệ
func isValidPhone(phone string) bool {
	phoneRegex := regexp.MustCompile(`^[0-9]{10}$`)
	return phoneRegex.MatchString(phone)
}
