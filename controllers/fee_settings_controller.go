package controllers

import (
	"strconv"

	"label/commands"
	"label/config"
	"label/dto"
	"label/models"
	"label/response"
	"label/validator"

	"github.com/gin-gonic/gin"
)

// SaveFeeSettings tạo hoặc cập nhật cấu hình phí nền tảng của brand
func SaveFeeSettings(c *gin.Context) {
	var input dto.FeeSettingsRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	settings := models.FeeSettings{
		BrandID:              input.BrandID,
		TransactionFixedFee:  input.TransactionFixedFee,
		RevenuePercentageFee: input.RevenuePercentageFee,
		FeeRevenueType:       input.FeeRevenueType,
	}

	if err := validator.ValidateFeeSettings(&settings); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	var brand models.Brand
	if err := config.DB.First(&brand, settings.BrandID).Error; err != nil {
		response.NotFound(c)
		return
	}

	cmd := commands.NewSaveFeeSettingsCommand(&settings, config.DB)
	if err := cmd.Execute(); err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, settings)
}

// GetFeeSettings trả về cấu hình phí của brand; chưa cấu hình không phải
// lỗi, trả về cấu hình phí 0
func GetFeeSettings(c *gin.Context) {
	brandID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID brand không hợp lệ")
		return
	}

	var settings models.FeeSettings
	if err := config.DB.Where("brand_id = ?", uint(brandID)).First(&settings).Error; err != nil {
		settings = models.FeeSettings{BrandID: uint(brandID)}
	}

	response.Success(c, settings)
}
