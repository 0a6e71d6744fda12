package services

import (
	"testing"

	"label/errors"
	"label/models"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeFee(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		settings *models.FeeSettings
		want     string
		wantCode errors.ErrorCode
	}{
		{
			name:     "không có cấu hình thì phí bằng 0",
			base:     "100",
			settings: nil,
			want:     "0",
		},
		{
			name: "gross: phí cố định cộng phần trăm trên base",
			base: "200",
			settings: &models.FeeSettings{
				TransactionFixedFee:  dec("10"),
				RevenuePercentageFee: dec("0.05"),
				FeeRevenueType:       models.FeeRevenueTypeGross,
			},
			want: "20", // 10 + 200*0.05
		},
		{
			name: "net: phần trăm tính sau khi trừ phí cố định",
			base: "200",
			settings: &models.FeeSettings{
				TransactionFixedFee:  dec("10"),
				RevenuePercentageFee: dec("0.05"),
				FeeRevenueType:       models.FeeRevenueTypeNet,
			},
			want: "19.5", // 10 + (200-10)*0.05
		},
		{
			name: "net: phí cố định lớn hơn base thì chặn tại base",
			base: "5",
			settings: &models.FeeSettings{
				TransactionFixedFee:  dec("10"),
				RevenuePercentageFee: dec("0.05"),
				FeeRevenueType:       models.FeeRevenueTypeNet,
			},
			want: "5",
		},
		{
			name: "phí không vượt quá số tiền giao dịch",
			base: "10",
			settings: &models.FeeSettings{
				TransactionFixedFee:  dec("8"),
				RevenuePercentageFee: dec("0.5"),
				FeeRevenueType:       models.FeeRevenueTypeGross,
			},
			want: "10", // 8 + 5 = 13 > 10
		},
		{
			name: "base bằng 0 thì phí bằng 0",
			base: "0",
			settings: &models.FeeSettings{
				TransactionFixedFee:  dec("10"),
				RevenuePercentageFee: dec("0.05"),
				FeeRevenueType:       models.FeeRevenueTypeGross,
			},
			want: "0",
		},
		{
			name: "phí cố định âm là cấu hình hỏng",
			base: "100",
			settings: &models.FeeSettings{
				TransactionFixedFee:  dec("-1"),
				RevenuePercentageFee: dec("0.05"),
				FeeRevenueType:       models.FeeRevenueTypeGross,
			},
			wantCode: errors.ErrCodeInvalidConfiguration,
		},
		{
			name: "tỷ lệ âm là cấu hình hỏng",
			base: "100",
			settings: &models.FeeSettings{
				TransactionFixedFee:  dec("1"),
				RevenuePercentageFee: dec("-0.05"),
				FeeRevenueType:       models.FeeRevenueTypeNet,
			},
			wantCode: errors.ErrCodeInvalidConfiguration,
		},
		{
			name: "loại phí không hợp lệ",
			base: "100",
			settings: &models.FeeSettings{
				TransactionFixedFee:  dec("1"),
				RevenuePercentageFee: dec("0.05"),
				FeeRevenueType:       9,
			},
			wantCode: errors.ErrCodeInvalidConfiguration,
		},
		{
			name: "số tiền âm bị từ chối",
			base: "-1",
			settings: &models.FeeSettings{
				TransactionFixedFee:  dec("1"),
				RevenuePercentageFee: dec("0.05"),
				FeeRevenueType:       models.FeeRevenueTypeGross,
			},
			wantCode: errors.ErrCodeInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fee, err := ComputeFee(dec(tt.base), tt.settings)
			if tt.wantCode != "" {
				if err == nil {
					t.Fatalf("mong đợi lỗi %s, nhận fee=%s", tt.wantCode, fee)
				}
				if !errors.HasCode(err, tt.wantCode) {
					t.Fatalf("mong đợi mã %s, nhận %v", tt.wantCode, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("không mong đợi lỗi: %v", err)
			}
			if !fee.Equal(dec(tt.want)) {
				t.Errorf("fee = %s, mong đợi %s", fee, tt.want)
			}
		})
	}
}

func TestComputeFeeNoIntermediateRounding(t *testing.T) {
	// Cộng dồn nhiều khoản nhỏ rồi mới làm tròn phải cho cùng kết quả với
	// tính trên tổng, không tích lũy sai số
	settings := &models.FeeSettings{
		TransactionFixedFee:  decimal.Zero,
		RevenuePercentageFee: dec("0.333333"),
		FeeRevenueType:       models.FeeRevenueTypeGross,
	}

	sum := decimal.Zero
	for i := 0; i < 1000; i++ {
		fee, err := ComputeFee(dec("0.01"), settings)
		if err != nil {
			t.Fatalf("không mong đợi lỗi: %v", err)
		}
		sum = sum.Add(fee)
	}

	whole, err := ComputeFee(dec("10"), settings)
	if err != nil {
		t.Fatalf("không mong đợi lỗi: %v", err)
	}
	if !sum.Round(2).Equal(whole.Round(2)) {
		t.Errorf("tổng phí từng phần %s khác phí trên tổng %s", sum.Round(2), whole.Round(2))
	}
}
