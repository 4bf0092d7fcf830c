package controllers

import (
	"context"
	"errors"
	"log"
	"os"
	"strings"
	"time"

	"homestay/config"
	"homestay/dto"
	"homestay/models"
	"homestay/response"
	"homestay/services"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/idtoken"
	"gorm.io/gorm"
)

const verificationCodeTTL = 5 * time.Minute

// findUserByIdentifier tìm user theo email hoặc số điện thoại
func findUserByIdentifier(identifier string) (models.User, error) {
	var user models.User
	err := config.DB.Where("email = ? OR phone_number = ?", identifier, identifier).First(&user).Error
	return user, err
}

func buildLoginResponse(user models.User) dto.UserLoginResponse {
	return dto.UserLoginResponse{
		UserID:       user.ID,
		UserName:     user.Name,
		UserEmail:    user.Email,
		UserVerified: user.IsVerified,
		UserPhone:    user.PhoneNumber,
		UserRole:     user.Role,
		UserStatus:   user.Status,
		UserAvatar:   user.Avatar,
		Gender:       user.Gender,
		DateOfBirth:  user.DateOfBirth,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}

// respondWithToken phát access token và trả về thông tin đăng nhập
func respondWithToken(c *gin.Context, user models.User, minutes int) {
	accessToken, err := services.GenerateToken(services.UserInfo{
		UserId: user.ID,
		Role:   user.Role,
	}, minutes, true)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"user_info":   buildLoginResponse(user),
		"accessToken": accessToken,
	})
}

func Login(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := findUserByIdentifier(strings.ToLower(input.Identifier))
	if err != nil {
		response.BadRequest(c, "Email hoặc mật khẩu không hợp lệ")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		response.BadRequest(c, "Email hoặc mật khẩu không hợp lệ")
		return
	}

	// Token đăng nhập thường có hạn 3 ngày
	respondWithToken(c, user, 60*24*3)
}

func Logout(c *gin.Context) {
	for _, cookie := range c.Request.Cookies() {
		c.SetCookie(cookie.Name, "", -1, "/", "", cookie.Secure, cookie.HttpOnly)
	}

	response.Success(c, nil)
}

func VerifyEmail(c *gin.Context) {
	code := c.Query("token")
	if code == "" {
		response.BadRequest(c, "Cần mã xác thực")
		return
	}

	var user models.User
	if err := config.DB.Where("code = ?", code).First(&user).Error; err != nil {
		response.BadRequest(c, "Có lỗi xảy ra khi xác minh email")
		return
	}

	if time.Since(user.CodeCreatedAt) > verificationCodeTTL {
		response.BadRequest(c, "Mã xác thực đã hết hạn. Vui lòng yêu cầu mã mới.")
		return
	}

	user.IsVerified = true
	user.Code = ""
	config.DB.Save(&user)

	response.Success(c, user)
}

func RegisterUser(c *gin.Context) {
	var input dto.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := services.CreateUser(models.User{
		Email:       input.Email,
		Password:    input.Password,
		PhoneNumber: input.PhoneNumber,
	})
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, user)
}

func ResendVerificationCode(c *gin.Context) {
	var input dto.IdentifierInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := findUserByIdentifier(input.Identifier)
	if err != nil {
		response.BadRequest(c, "Người dùng không tồn tại.")
		return
	}

	if err := services.RegenerateVerificationCode(user.ID); err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, nil)
}

func ForgetPassword(c *gin.Context) {
	var input dto.IdentifierInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := findUserByIdentifier(input.Identifier)
	if err != nil {
		response.BadRequest(c, "Người dùng không tồn tại.")
		return
	}

	if err := services.ResetPass(user); err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, nil)
}

func ResetPassword(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := findUserByIdentifier(input.Identifier)
	if err != nil {
		response.BadRequest(c, "Người dùng không tồn tại.")
		return
	}

	if err := services.NewPass(user, input.Password); err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, nil)
}

func VerifyCode(c *gin.Context) {
	var input dto.VerifyCodeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		response.BadRequest(c, "Không tìm thấy người dùng với email này")
		return
	}

	if user.Code != input.Code {
		response.BadRequest(c, "Mã xác thực không hợp lệ")
		return
	}

	if time.Since(user.CodeCreatedAt) > verificationCodeTTL {
		response.BadRequest(c, "Mã xác thực đã hết hạn. Vui lòng yêu cầu mã mới.")
		return
	}

	user.Code = ""
	user.IsVerified = true
	config.DB.Save(&user)

	response.Success(c, nil)
}

// AuthGoogle xử lý đăng nhập bằng tài khoản Google
func AuthGoogle(c *gin.Context) {
	var token struct {
		TokenId string `json:"tokenId"`
	}
	if err := c.ShouldBindJSON(&token); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	payload, err := verifyGoogleIDToken(token.TokenId)
	if err != nil {
		response.Unauthorized(c)
		return
	}

	googleUser := dto.GoogleUser{
		Name:          payload.Claims["name"].(string),
		Email:         payload.Claims["email"].(string),
		VerifiedEmail: payload.Claims["email_verified"].(bool),
		Picture:       payload.Claims["picture"].(string),
	}

	if !googleUser.VerifiedEmail {
		response.BadRequest(c, "Email chưa được Google xác minh")
		return
	}

	var user models.User
	result := config.DB.Where("email = ?", googleUser.Email).First(&user)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		user, err = services.CreateGoogleUser(googleUser.Name, googleUser.Email, googleUser.Picture)
		if err != nil {
			log.Println("Error creating google user:", err)
			response.ServerError(c)
			return
		}
	} else if result.Error != nil {
		response.ServerError(c)
		return
	}

	// Token ngắn hạn, client tự refresh sau khi đăng nhập Google
	respondWithToken(c, user, 15)
}

func verifyGoogleIDToken(tokenId string) (*idtoken.Payload, error) {
	return idtoken.Validate(context.Background(), tokenId, os.Getenv("GOOGLE_CLIENT_ID"))
}
