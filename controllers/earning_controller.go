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

// CreateEarning ghi nhận một khoản doanh thu cho release. Bản ghi bất
// biến sau khi tạo, không có API sửa hay xóa.
func CreateEarning(c *gin.Context) {
	var input dto.CreateEarningRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	date, err := validator.ParseLedgerDate(input.Date)
	if err != nil {
		response.BadRequest(c, "Định dạng ngày không hợp lệ")
		return
	}

	earning := models.Earning{
		ReleaseID:   input.ReleaseID,
		Category:    input.Category,
		Amount:      input.Amount,
		Date:        date,
		Description: input.Description,
	}

	if err := validator.ValidateEarning(&earning); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	var release models.Release
	if err := config.DB.First(&release, earning.ReleaseID).Error; err != nil {
		response.NotFound(c)
		return
	}

	cmd := commands.NewRecordEarningCommand(&earning, config.DB)
	if err := cmd.Execute(); err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, earning)
}

func GetEarningsByRelease(c *gin.Context) {
	releaseID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID release không hợp lệ")
		return
	}

	var earnings []models.Earning
	if err := config.DB.Where("release_id = ?", uint(releaseID)).
		Order("date asc").Find(&earnings).Error; err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, earnings)
}
