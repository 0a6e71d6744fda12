package controllers

import (
	"strconv"

	"label/config"
	"label/constants"
	"label/models"
	"label/response"

	"github.com/gin-gonic/gin"
)

type CreateBrandRequest struct {
	Name     string `json:"name" binding:"required"`
	ParentID *uint  `json:"parentId"`
}

// CreateBrand tạo nhãn mới; có ParentID thì là sub-label trực thuộc
func CreateBrand(c *gin.Context) {
	var input CreateBrandRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if input.ParentID != nil {
		var parent models.Brand
		if err := config.DB.First(&parent, *input.ParentID).Error; err != nil {
			response.BadRequest(c, "Nhãn cha không tồn tại")
			return
		}
		// Không cho lồng sub-label dưới sub-label
		if parent.ParentID != nil {
			response.BadRequest(c, "Sub-label không thể có sub-label con")
			return
		}
	}

	brand := models.Brand{
		Name:     input.Name,
		ParentID: input.ParentID,
	}
	if err := config.DB.Create(&brand).Error; err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, brand)
}

func GetBrands(c *gin.Context) {
	tx := config.DB.Model(&models.Brand{})
	if parentStr := c.Query("parentId"); parentStr != "" {
		tx = tx.Where("parent_id = ?", parentStr)
	}

	var brands []models.Brand
	if err := tx.Find(&brands).Error; err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, brands)
}

// GetBrandArtists danh sách nghệ sĩ trực thuộc một brand
func GetBrandArtists(c *gin.Context) {
	brandID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID brand không hợp lệ")
		return
	}

	var artists []models.User
	if err := config.DB.Where("brand_id = ? AND role = ?",
		uint(brandID), constants.RoleArtist).Find(&artists).Error; err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, artists)
}
