package services

import (
	"bytes"
	"encoding/csv"
	"reflect"
	"testing"
	"time"

	"label/dto"
	"label/models"
)

// Kịch bản chuẩn: earning 1000 streaming, chia 60/30 thì nghệ sĩ nhận
// 600 và 300, nhãn giữ 100.
func TestWeightedEarningsSixtyThirty(t *testing.T) {
	earnings := []models.Earning{
		{ReleaseID: 1, Category: models.CategoryStreaming, Amount: dec("1000")},
	}
	splits := []models.RoyaltySplit{
		{ReleaseID: 1, ArtistID: 10, StreamingPercentage: dec("0.6")},
		{ReleaseID: 1, ArtistID: 20, StreamingPercentage: dec("0.3")},
	}

	if got := WeightedArtistEarnings(10, earnings, splits); !got.Equal(dec("600")) {
		t.Errorf("nghệ sĩ 10 = %s, mong đợi 600", got)
	}
	if got := WeightedArtistEarnings(20, earnings, splits); !got.Equal(dec("300")) {
		t.Errorf("nghệ sĩ 20 = %s, mong đợi 300", got)
	}
	if got := LabelResidualEarnings(earnings, splits); !got.Equal(dec("100")) {
		t.Errorf("phần nhãn = %s, mong đợi 100", got)
	}
}

func TestWeightedEarningsPerCategory(t *testing.T) {
	// Tỷ lệ độc lập theo loại doanh thu: split streaming không áp vào sync
	earnings := []models.Earning{
		{ReleaseID: 1, Category: models.CategoryStreaming, Amount: dec("100")},
		{ReleaseID: 1, Category: models.CategorySync, Amount: dec("100")},
	}
	splits := []models.RoyaltySplit{
		{ReleaseID: 1, ArtistID: 10, StreamingPercentage: dec("0.5"), SyncPercentage: dec("0.1")},
	}

	if got := WeightedArtistEarnings(10, earnings, splits); !got.Equal(dec("60")) {
		t.Errorf("tổng = %s, mong đợi 60 (50 streaming + 10 sync)", got)
	}
	if got := LabelResidualEarnings(earnings, splits); !got.Equal(dec("140")) {
		t.Errorf("phần nhãn = %s, mong đợi 140", got)
	}
}

func TestWeightedEarningsIgnoresUnrelatedReleases(t *testing.T) {
	earnings := []models.Earning{
		{ReleaseID: 1, Category: models.CategoryStreaming, Amount: dec("100")},
		{ReleaseID: 2, Category: models.CategoryStreaming, Amount: dec("500")},
	}
	splits := []models.RoyaltySplit{
		{ReleaseID: 1, ArtistID: 10, StreamingPercentage: dec("0.5")},
	}

	if got := WeightedArtistEarnings(10, earnings, splits); !got.Equal(dec("50")) {
		t.Errorf("tổng = %s, mong đợi 50: release 2 không có split của nghệ sĩ", got)
	}
}

func TestWeightedEarningsEmptySplits(t *testing.T) {
	earnings := []models.Earning{
		{ReleaseID: 1, Category: models.CategoryDownload, Amount: dec("250")},
	}

	if got := WeightedArtistEarnings(10, earnings, nil); !got.IsZero() {
		t.Errorf("không có split thì nghệ sĩ nhận 0, nhận %s", got)
	}
	if got := LabelResidualEarnings(earnings, nil); !got.Equal(dec("250")) {
		t.Errorf("không có split thì nhãn giữ toàn bộ, nhận %s", got)
	}
}

func TestSumPayments(t *testing.T) {
	payments := []models.Payment{
		{Amount: dec("100"), ProcessingFee: dec("2.5")},
		{Amount: dec("50.25"), ProcessingFee: dec("0")},
	}

	amounts, fees := SumPayments(payments)
	if !amounts.Equal(dec("150.25")) {
		t.Errorf("tổng chi trả = %s, mong đợi 150.25", amounts)
	}
	if !fees.Equal(dec("2.5")) {
		t.Errorf("tổng phí xử lý = %s, mong đợi 2.5", fees)
	}
}

func TestBalanceArithmetic(t *testing.T) {
	// balance = gross - fees - payments, phí xử lý là dòng riêng
	gross := dec("900")
	payments := []models.Payment{
		{Amount: dec("300"), ProcessingFee: dec("5")},
	}
	paid, processingFees := SumPayments(payments)

	balance := gross.Sub(processingFees).Sub(paid)
	if !balance.Equal(dec("595")) {
		t.Errorf("balance = %s, mong đợi 595", balance)
	}
}

func TestRenderStatementCSVWithFeeColumn(t *testing.T) {
	lines := []dto.StatementLine{
		{
			Date:        time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
			Description: "Doanh thu streaming",
			Amount:      dec("600"),
		},
		{
			Date:        time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
			Description: "Chuyển khoản",
			Amount:      dec("-300"),
			Fee:         dec("5"),
			HasFee:      true,
		},
	}

	var buf bytes.Buffer
	if err := RenderStatementCSV(&buf, lines); err != nil {
		t.Fatalf("không mong đợi lỗi: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("đọc lại csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("số dòng = %d, mong đợi 3", len(records))
	}

	wantHeader := []string{"Date", "Description", "Amount", "Fee"}
	if !reflect.DeepEqual(records[0], wantHeader) {
		t.Errorf("header = %v, mong đợi %v", records[0], wantHeader)
	}
	wantEarning := []string{"15/01/2026", "Doanh thu streaming", "600.00", ""}
	if !reflect.DeepEqual(records[1], wantEarning) {
		t.Errorf("dòng doanh thu = %v, mong đợi %v", records[1], wantEarning)
	}
	wantPayment := []string{"01/02/2026", "Chuyển khoản", "-300.00", "5.00"}
	if !reflect.DeepEqual(records[2], wantPayment) {
		t.Errorf("dòng chi trả = %v, mong đợi %v", records[2], wantPayment)
	}
}

func TestRenderStatementCSVOmitsFeeColumnWhenNoFees(t *testing.T) {
	lines := []dto.StatementLine{
		{
			Date:        time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
			Description: "Doanh thu download",
			Amount:      dec("120.505"),
		},
	}

	var buf bytes.Buffer
	if err := RenderStatementCSV(&buf, lines); err != nil {
		t.Fatalf("không mong đợi lỗi: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("đọc lại csv: %v", err)
	}
	if !reflect.DeepEqual(records[0], []string{"Date", "Description", "Amount"}) {
		t.Errorf("header = %v, không được có cột Fee", records[0])
	}
	// Làm tròn chỉ xảy ra lúc ghi ra file
	if records[1][2] != "120.51" {
		t.Errorf("amount = %q, mong đợi 120.51", records[1][2])
	}
}
