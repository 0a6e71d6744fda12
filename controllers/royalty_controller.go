package controllers

import (
	"strconv"

	"label/config"
	"label/dto"
	"label/errors"
	"label/response"
	"label/services"

	"github.com/gin-gonic/gin"
)

// SaveRoyaltySplits thay toàn bộ phần chia royalty của release. Vượt trần
// 100% ở bất kỳ loại doanh thu nào thì từ chối cả danh sách, không ghi gì.
func SaveRoyaltySplits(c *gin.Context) {
	releaseID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID release không hợp lệ")
		return
	}

	var input dto.SaveRoyaltySplitsRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := services.SaveRoyaltySplits(config.DB, uint(releaseID), input.Splits)
	if err != nil {
		if appErr := errors.GetAppError(err); appErr != nil {
			switch appErr.Code {
			case errors.ErrCodeNotFound:
				response.NotFound(c)
			case errors.ErrCodeRoyaltyOverallocation,
				errors.ErrCodeDuplicateArtist,
				errors.ErrCodeInvalidPercentage,
				errors.ErrCodeRequiredField:
				response.ValidationError(c, appErr.Message)
			default:
				response.ServerError(c)
			}
			return
		}
		response.ServerError(c)
		return
	}

	response.Success(c, result)
}

func GetRoyaltySplits(c *gin.Context) {
	releaseID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID release không hợp lệ")
		return
	}

	result, err := services.GetRoyaltySplits(config.DB, uint(releaseID))
	if err != nil {
		if errors.HasCode(err, errors.ErrCodeNotFound) {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}

	response.Success(c, result)
}
