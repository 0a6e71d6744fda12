package services

import (
	"label/errors"
	"label/models"

	"github.com/shopspring/decimal"
)

// ComputeFee tính phí nền tảng trên một giao dịch. settings nil nghĩa là
// brand chưa cấu hình phí, trả về 0. Kết quả giữ nguyên độ chính xác,
// chỉ làm tròn ở tầng xuất dữ liệu.
func ComputeFee(base decimal.Decimal, settings *models.FeeSettings) (decimal.Decimal, error) {
	if settings == nil {
		return decimal.Zero, nil
	}
	if settings.TransactionFixedFee.IsNegative() || settings.RevenuePercentageFee.IsNegative() {
		return decimal.Zero, errors.NewAppError(errors.ErrCodeInvalidConfiguration,
			"Cấu hình phí chứa giá trị âm", nil)
	}
	if base.IsNegative() {
		return decimal.Zero, errors.NewAppError(errors.ErrCodeInvalidAmount,
			"Số tiền tính phí không được âm", nil)
	}

	var fee decimal.Decimal
	switch settings.FeeRevenueType {
	case models.FeeRevenueTypeGross:
		fee = settings.TransactionFixedFee.Add(base.Mul(settings.RevenuePercentageFee))
	case models.FeeRevenueTypeNet:
		// Phần trăm tính trên số tiền sau khi trừ phí cố định
		net := base.Sub(settings.TransactionFixedFee)
		if net.IsNegative() {
			net = decimal.Zero
		}
		fee = settings.TransactionFixedFee.Add(net.Mul(settings.RevenuePercentageFee))
	default:
		return decimal.Zero, errors.NewAppError(errors.ErrCodeInvalidConfiguration,
			"Loại phí doanh thu không hợp lệ", nil)
	}

	// Phí không bao giờ vượt quá số tiền giao dịch
	if fee.GreaterThan(base) {
		fee = base
	}
	if fee.IsNegative() {
		fee = decimal.Zero
	}
	return fee, nil
}

// FeeSettingsForBrand tra cấu hình phí của brand, không có bản ghi trả nil
func FeeSettingsForBrand(brandID uint, settings []models.FeeSettings) *models.FeeSettings {
	for i := range settings {
		if settings[i].BrandID == brandID {
			return &settings[i]
		}
	}
	return nil
}
