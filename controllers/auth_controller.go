package controllers

import (
	"strings"

	"label/config"
	"label/dto"
	"label/models"
	"label/response"
	"label/services"
	"label/validator"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

func Register(c *gin.Context) {
	var input dto.RegisterRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := validator.ValidateStruct(&input); err != nil {
		response.ValidationError(c, "Dữ liệu đăng ký không hợp lệ")
		return
	}

	user := models.User{
		Name:        input.Name,
		Email:       strings.ToLower(input.Email),
		Password:    input.Password,
		PhoneNumber: input.PhoneNumber,
		Role:        input.Role,
		BrandID:     input.BrandID,
	}

	created, err := services.CreateUser(user)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, dto.ActorResponse{
		ID:          created.ID,
		Name:        created.Name,
		Email:       created.Email,
		PhoneNumber: created.PhoneNumber,
	})
}

func Login(c *gin.Context) {
	var input dto.LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	input.Email = strings.ToLower(input.Email)

	var user models.User
	if err := config.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		response.BadRequest(c, "Email hoặc mật khẩu không hợp lệ")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		response.BadRequest(c, "Email hoặc mật khẩu không hợp lệ")
		return
	}

	userInfo := services.UserInfo{
		UserId: user.ID,
		Role:   user.Role,
	}
	if user.BrandID != nil {
		userInfo.BrandId = *user.BrandID
	}

	accessToken, err := services.GenerateToken(userInfo, 60*24*3, true)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	services.SetTokenCookies(c, accessToken)

	response.Success(c, dto.LoginResponse{
		Token: accessToken,
		User: dto.ActorResponse{
			ID:          user.ID,
			Name:        user.Name,
			Email:       user.Email,
			PhoneNumber: user.PhoneNumber,
		},
	})
}

func Logout(c *gin.Context) {
	cookies := c.Request.Cookies()
	for _, cookie := range cookies {
		c.SetCookie(cookie.Name, "", -1, "/", "", cookie.Secure, cookie.HttpOnly)
	}

	response.Success(c, nil)
}
