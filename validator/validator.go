package validator

import (
	"fmt"
	"strings"
	"time"

	"label/constants"
	"label/dto"
	"label/errors"
	"label/models"

	playground "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = playground.New()

var (
	zero       = decimal.Zero
	oneHundred = decimal.NewFromInt(100)
)

// ValidateStruct validate struct theo tag `validate`
func ValidateStruct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		return errors.NewAppError(errors.ErrCodeValidation, "Dữ liệu không hợp lệ", err)
	}
	return nil
}

// ValidateRoyaltySplits kiểm tra danh sách phần chia royalty của một release.
// Tỷ lệ đầu vào theo thang [0,100], độc lập theo từng loại doanh thu.
// Danh sách rỗng hợp lệ: nhãn giữ 100% mọi loại.
func ValidateRoyaltySplits(splits []dto.RoyaltySplitInput) error {
	seen := make(map[uint]bool)
	for _, split := range splits {
		if split.ArtistID == 0 {
			return errors.NewAppError(errors.ErrCodeRequiredField, "ID nghệ sĩ không được để trống", nil)
		}
		if seen[split.ArtistID] {
			return errors.NewAppError(errors.ErrCodeDuplicateArtist,
				fmt.Sprintf("Nghệ sĩ %d xuất hiện nhiều lần trong danh sách phần chia", split.ArtistID), nil)
		}
		seen[split.ArtistID] = true

		for category := models.CategoryStreaming; category <= models.CategoryPhysical; category++ {
			pct := split.CategoryPercentage(category)
			if pct.LessThan(zero) || pct.GreaterThan(oneHundred) {
				return errors.NewAppError(errors.ErrCodeInvalidPercentage,
					fmt.Sprintf("Tỷ lệ %s của nghệ sĩ %d phải nằm trong khoảng từ 0 đến 100",
						models.CategoryNames[category], split.ArtistID), nil)
			}
		}
	}

	// Tổng theo từng loại doanh thu không được vượt 100%; báo đủ mọi loại
	// vượt trần trong một lỗi duy nhất.
	var overallocated []string
	for category := models.CategoryStreaming; category <= models.CategoryPhysical; category++ {
		sum := zero
		for _, split := range splits {
			sum = sum.Add(split.CategoryPercentage(category))
		}
		if sum.GreaterThan(oneHundred) {
			overallocated = append(overallocated,
				fmt.Sprintf("%s (%s%%)", models.CategoryNames[category], sum.String()))
		}
	}
	if len(overallocated) > 0 {
		return errors.NewAppError(errors.ErrCodeRoyaltyOverallocation,
			"Tổng tỷ lệ vượt quá 100% ở các loại doanh thu: "+strings.Join(overallocated, ", "), nil)
	}

	return nil
}

// LabelShare tính phần còn lại của nhãn theo từng loại doanh thu (thang
// [0,100]). Chặn dưới tại 0; trường hợp vượt trần đã bị từ chối trước đó.
func LabelShare(splits []dto.RoyaltySplitInput) dto.LabelShareResponse {
	remainder := func(category int) decimal.Decimal {
		sum := zero
		for _, split := range splits {
			sum = sum.Add(split.CategoryPercentage(category))
		}
		share := oneHundred.Sub(sum)
		if share.LessThan(zero) {
			return zero
		}
		return share
	}

	return dto.LabelShareResponse{
		Streaming: remainder(models.CategoryStreaming),
		Sync:      remainder(models.CategorySync),
		Download:  remainder(models.CategoryDownload),
		Physical:  remainder(models.CategoryPhysical),
	}
}

// ValidateEarning kiểm tra một bản ghi doanh thu trước khi ghi sổ
func ValidateEarning(earning *models.Earning) error {
	if earning.ReleaseID == 0 {
		return errors.NewAppError(errors.ErrCodeRequiredField, "ID release không được để trống", nil)
	}
	if earning.Category < models.CategoryStreaming || earning.Category > models.CategoryPhysical {
		return errors.NewAppError(errors.ErrCodeInvalidFormat, "Loại doanh thu không hợp lệ", nil)
	}
	if earning.Amount.LessThan(zero) {
		return errors.NewAppError(errors.ErrCodeInvalidAmount, "Số tiền không được âm", nil)
	}
	return nil
}

// ValidatePayment kiểm tra một bản ghi chi trả trước khi ghi sổ
func ValidatePayment(payment *models.Payment) error {
	if payment.RecipientID == 0 {
		return errors.NewAppError(errors.ErrCodeRequiredField, "ID người nhận không được để trống", nil)
	}
	if payment.RecipientKind != constants.SubjectKindArtist && payment.RecipientKind != constants.SubjectKindSubLabel {
		return errors.NewAppError(errors.ErrCodeInvalidSubjectKind, "Loại người nhận không hợp lệ", nil)
	}
	if payment.Amount.LessThan(zero) {
		return errors.NewAppError(errors.ErrCodeInvalidAmount, "Số tiền không được âm", nil)
	}
	if payment.ProcessingFee.LessThan(zero) {
		return errors.NewAppError(errors.ErrCodeInvalidAmount, "Phí xử lý không được âm", nil)
	}
	return nil
}

// ValidateFeeSettings kiểm tra cấu hình phí nền tảng của một brand
func ValidateFeeSettings(settings *models.FeeSettings) error {
	if settings.BrandID == 0 {
		return errors.NewAppError(errors.ErrCodeRequiredField, "ID brand không được để trống", nil)
	}
	if settings.TransactionFixedFee.LessThan(zero) {
		return errors.NewAppError(errors.ErrCodeInvalidConfiguration, "Phí cố định không được âm", nil)
	}
	if settings.RevenuePercentageFee.LessThan(zero) {
		return errors.NewAppError(errors.ErrCodeInvalidConfiguration, "Tỷ lệ phí không được âm", nil)
	}
	if settings.FeeRevenueType != models.FeeRevenueTypeGross && settings.FeeRevenueType != models.FeeRevenueTypeNet {
		return errors.NewAppError(errors.ErrCodeInvalidConfiguration, "Loại phí doanh thu không hợp lệ", nil)
	}
	return nil
}

// ValidateEvent kiểm tra thông tin sự kiện
func ValidateEvent(event *models.Event) error {
	if event.Name == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Tên sự kiện không được để trống", nil)
	}
	if event.BrandID == 0 {
		return errors.NewAppError(errors.ErrCodeRequiredField, "ID brand không được để trống", nil)
	}
	if event.VerificationPin == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Mã PIN soát vé không được để trống", nil)
	}
	if event.TicketPrice.LessThan(zero) {
		return errors.NewAppError(errors.ErrCodeInvalidAmount, "Giá vé không được âm", nil)
	}
	return nil
}

// ParseLedgerDate parse ngày trên các bản ghi sổ, cho phép bỏ trống
func ParseLedgerDate(dateStr string) (time.Time, error) {
	if dateStr == "" {
		return time.Now(), nil
	}
	parsed, err := time.Parse("02/01/2006", dateStr)
	if err != nil {
		return time.Time{}, errors.NewAppError(errors.ErrCodeInvalidFormat, "Định dạng ngày không hợp lệ", err)
	}
	return parsed, nil
}
