package controllers

import (
	"strconv"

	"label/commands"
	"label/config"
	"label/constants"
	"label/dto"
	"label/models"
	"label/response"
	"label/validator"

	"github.com/gin-gonic/gin"
)

// CreatePayment ghi nhận một khoản chi trả cho nghệ sĩ hoặc sub-label.
// Phí xử lý đi kèm là dòng riêng trên ledger.
func CreatePayment(c *gin.Context) {
	var input dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	datePaid, err := validator.ParseLedgerDate(input.DatePaid)
	if err != nil {
		response.BadRequest(c, "Định dạng ngày không hợp lệ")
		return
	}

	payment := models.Payment{
		RecipientID:      input.RecipientID,
		RecipientKind:    input.RecipientKind,
		Amount:           input.Amount,
		ProcessingFee:    input.ProcessingFee,
		DatePaid:         datePaid,
		PaymentMethodRef: input.PaymentMethodRef,
	}

	if err := validator.ValidatePayment(&payment); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	// Người nhận phải tồn tại trước khi ghi sổ
	if payment.RecipientKind == constants.SubjectKindArtist {
		var artist models.User
		if err := config.DB.First(&artist, payment.RecipientID).Error; err != nil {
			response.NotFound(c)
			return
		}
	} else {
		var brand models.Brand
		if err := config.DB.First(&brand, payment.RecipientID).Error; err != nil {
			response.NotFound(c)
			return
		}
	}

	cmd := commands.NewRecordPaymentCommand(&payment, config.DB)
	if err := cmd.Execute(); err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, payment)
}

func GetPaymentsBySubject(c *gin.Context) {
	subjectID, err := strconv.ParseUint(c.Query("subjectId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID đối tượng không hợp lệ")
		return
	}
	subjectKind := c.Query("subjectKind")
	if subjectKind != constants.SubjectKindArtist && subjectKind != constants.SubjectKindSubLabel {
		response.BadRequest(c, "Loại đối tượng không hợp lệ")
		return
	}

	var payments []models.Payment
	if err := config.DB.Where("recipient_id = ? AND recipient_kind = ?",
		uint(subjectID), subjectKind).Order("date_paid asc").Find(&payments).Error; err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, payments)
}
