package controllers

import (
	"fmt"
	"strconv"

	"label/config"
	"label/errors"
	"label/response"
	"label/services"

	"github.com/gin-gonic/gin"
)

// GetBalance trả về số dư hiện tại của một nghệ sĩ hoặc sub-label, tính
// lại từ các bản ghi earning/payment mỗi lần gọi
func GetBalance(c *gin.Context) {
	subjectID, err := strconv.ParseUint(c.Query("subjectId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID đối tượng không hợp lệ")
		return
	}
	subjectKind := c.Query("subjectKind")

	summary, err := services.ComputeBalance(config.DB, uint(subjectID), subjectKind)
	if err != nil {
		if appErr := errors.GetAppError(err); appErr != nil {
			switch appErr.Code {
			case errors.ErrCodeNotFound:
				response.NotFound(c)
			case errors.ErrCodeInvalidSubjectKind:
				response.BadRequest(c, appErr.Message)
			default:
				response.ServerError(c)
			}
			return
		}
		response.ServerError(c)
		return
	}

	// Làm tròn 2 chữ số thập phân duy nhất tại đầu ra
	summary.GrossEarnings = summary.GrossEarnings.Round(2)
	summary.Fees = summary.Fees.Round(2)
	summary.Payments = summary.Payments.Round(2)
	summary.Balance = summary.Balance.Round(2)

	response.Success(c, summary)
}

// ExportStatement xuất sao kê CSV với cột Date, Description, Amount và
// Fee nếu có dòng mang phí. Làm tròn 2 chữ số chỉ khi ghi ra file.
func ExportStatement(c *gin.Context) {
	subjectID, err := strconv.ParseUint(c.Query("subjectId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID đối tượng không hợp lệ")
		return
	}
	subjectKind := c.Query("subjectKind")

	lines, err := services.BuildStatement(config.DB, uint(subjectID), subjectKind)
	if err != nil {
		if errors.HasCode(err, errors.ErrCodeInvalidSubjectKind) {
			response.BadRequest(c, "Loại đối tượng không hợp lệ")
			return
		}
		response.ServerError(c)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition",
		fmt.Sprintf("attachment; filename=statement_%s_%d.csv", subjectKind, subjectID))

	if err := services.RenderStatementCSV(c.Writer, lines); err != nil {
		return
	}
}
