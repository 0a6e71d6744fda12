package services

import (
	"encoding/csv"
	"io"

	"label/constants"
	"label/dto"
	"label/errors"
	"label/models"
	"label/services/logger"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var one = decimal.NewFromInt(1)

// WeightedArtistEarnings tính tổng doanh thu của một nghệ sĩ: mỗi earning
// nhân với tỷ lệ chia của nghệ sĩ trên release đó theo đúng loại doanh thu.
// Không làm tròn trên tổng trung gian.
func WeightedArtistEarnings(artistID uint, earnings []models.Earning, splits []models.RoyaltySplit) decimal.Decimal {
	splitByRelease := make(map[uint]*models.RoyaltySplit)
	for i := range splits {
		if splits[i].ArtistID == artistID {
			splitByRelease[splits[i].ReleaseID] = &splits[i]
		}
	}

	total := decimal.Zero
	for _, earning := range earnings {
		split, ok := splitByRelease[earning.ReleaseID]
		if !ok {
			continue
		}
		total = total.Add(earning.Amount.Mul(split.CategoryPercentage(earning.Category)))
	}
	return total
}

// LabelResidualEarnings tính phần doanh thu còn lại thuộc về nhãn sau khi
// trừ toàn bộ phần chia của nghệ sĩ trên từng earning. Chia hợp lệ không
// bao giờ vượt 100% nên phần còn lại không âm.
func LabelResidualEarnings(earnings []models.Earning, splits []models.RoyaltySplit) decimal.Decimal {
	total := decimal.Zero
	for _, earning := range earnings {
		allocated := decimal.Zero
		for i := range splits {
			if splits[i].ReleaseID == earning.ReleaseID {
				allocated = allocated.Add(splits[i].CategoryPercentage(earning.Category))
			}
		}
		residual := one.Sub(allocated)
		if residual.IsNegative() {
			residual = decimal.Zero
		}
		total = total.Add(earning.Amount.Mul(residual))
	}
	return total
}

// SumPayments cộng dồn các khoản đã chi trả cùng phí xử lý của chúng.
// Phí xử lý là dòng riêng trên ledger, không trừ trùng vào gross.
func SumPayments(payments []models.Payment) (amounts decimal.Decimal, processingFees decimal.Decimal) {
	amounts = decimal.Zero
	processingFees = decimal.Zero
	for _, payment := range payments {
		amounts = amounts.Add(payment.Amount)
		processingFees = processingFees.Add(payment.ProcessingFee)
	}
	return amounts, processingFees
}

// ComputeBalance tính số dư hiện tại của một nghệ sĩ hoặc sub-label.
// Chỉ đọc các bản ghi earning/payment, không bao giờ ghi; mỗi lần gọi
// tính lại từ đầu. Cấu hình phí hỏng hạ về phí 0 thay vì chặn xem số dư.
func ComputeBalance(db *gorm.DB, subjectID uint, subjectKind string) (dto.BalanceSummary, error) {
	switch subjectKind {
	case constants.SubjectKindArtist:
		return computeArtistBalance(db, subjectID)
	case constants.SubjectKindSubLabel:
		return computeSubLabelBalance(db, subjectID)
	default:
		return dto.BalanceSummary{}, errors.NewAppError(errors.ErrCodeInvalidSubjectKind,
			"Loại đối tượng không hợp lệ", nil)
	}
}

func computeArtistBalance(db *gorm.DB, artistID uint) (dto.BalanceSummary, error) {
	var artist models.User
	if err := db.First(&artist, artistID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return dto.BalanceSummary{}, errors.NewAppError(errors.ErrCodeNotFound,
				"Không tìm thấy nghệ sĩ", err)
		}
		return dto.BalanceSummary{}, errors.NewAppError(errors.ErrCodeDBError, "Lỗi truy vấn nghệ sĩ", err)
	}

	var splits []models.RoyaltySplit
	if err := db.Where("artist_id = ?", artistID).Find(&splits).Error; err != nil {
		return dto.BalanceSummary{}, errors.NewAppError(errors.ErrCodeDBError, "Lỗi truy vấn phần chia", err)
	}

	releaseIDs := make([]uint, 0, len(splits))
	for _, split := range splits {
		releaseIDs = append(releaseIDs, split.ReleaseID)
	}

	var earnings []models.Earning
	if len(releaseIDs) > 0 {
		if err := db.Where("release_id IN ?", releaseIDs).Find(&earnings).Error; err != nil {
			return dto.BalanceSummary{}, errors.NewAppError(errors.ErrCodeDBError, "Lỗi truy vấn doanh thu", err)
		}
	}

	var payments []models.Payment
	if err := db.Where("recipient_id = ? AND recipient_kind = ?",
		artistID, constants.SubjectKindArtist).Find(&payments).Error; err != nil {
		return dto.BalanceSummary{}, errors.NewAppError(errors.ErrCodeDBError, "Lỗi truy vấn chi trả", err)
	}

	gross := WeightedArtistEarnings(artistID, earnings, splits)
	platformFee := decimal.Zero
	if artist.BrandID != nil {
		platformFee = brandPlatformFee(db, *artist.BrandID, gross)
	}
	paid, processingFees := SumPayments(payments)
	fees := platformFee.Add(processingFees)

	return dto.BalanceSummary{
		SubjectID:     artistID,
		SubjectKind:   constants.SubjectKindArtist,
		GrossEarnings: gross,
		Fees:          fees,
		Payments:      paid,
		Balance:       gross.Sub(fees).Sub(paid),
	}, nil
}

func computeSubLabelBalance(db *gorm.DB, brandID uint) (dto.BalanceSummary, error) {
	var brand models.Brand
	if err := db.First(&brand, brandID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return dto.BalanceSummary{}, errors.NewAppError(errors.ErrCodeNotFound,
				"Không tìm thấy sub-label", err)
		}
		return dto.BalanceSummary{}, errors.NewAppError(errors.ErrCodeDBError, "Lỗi truy vấn brand", err)
	}

	var releases []models.Release
	if err := db.Where("brand_id = ?", brandID).Find(&releases).Error; err != nil {
		return dto.BalanceSummary{}, errors.NewAppError(errors.ErrCodeDBError, "Lỗi truy vấn release", err)
	}

	releaseIDs := make([]uint, 0, len(releases))
	for _, release := range releases {
		releaseIDs = append(releaseIDs, release.ID)
	}

	var earnings []models.Earning
	var splits []models.RoyaltySplit
	if len(releaseIDs) > 0 {
		if err := db.Where("release_id IN ?", releaseIDs).Find(&earnings).Error; err != nil {
			return dto.BalanceSummary{}, errors.NewAppError(errors.ErrCodeDBError, "Lỗi truy vấn doanh thu", err)
		}
		if err := db.Where("release_id IN ?", releaseIDs).Find(&splits).Error; err != nil {
			return dto.BalanceSummary{}, errors.NewAppError(errors.ErrCodeDBError, "Lỗi truy vấn phần chia", err)
		}
	}

	// Doanh thu sự kiện của sub-label: vé đã gửi, trừ phí đã ghi trên vé
	var tickets []models.Ticket
	if err := db.Joins("JOIN events ON events.id = tickets.event_id").
		Where("events.brand_id = ? AND tickets.status = ?", brandID, models.TicketStatusSent).
		Find(&tickets).Error; err != nil {
		return dto.BalanceSummary{}, errors.NewAppError(errors.ErrCodeDBError, "Lỗi truy vấn vé", err)
	}

	musicEarnings := LabelResidualEarnings(earnings, splits)
	eventEarnings := decimal.Zero
	ticketFees := decimal.Zero
	for _, ticket := range tickets {
		eventEarnings = eventEarnings.Add(ticket.Price)
		ticketFees = ticketFees.Add(ticket.Fee)
	}
	gross := musicEarnings.Add(eventEarnings)

	// Phí nền tảng trả cho nhãn mẹ; sub-label gốc không chịu phí này
	platformFee := decimal.Zero
	if brand.ParentID != nil {
		platformFee = brandPlatformFee(db, *brand.ParentID, gross)
	}

	var payments []models.Payment
	if err := db.Where("recipient_id = ? AND recipient_kind = ?",
		brandID, constants.SubjectKindSubLabel).Find(&payments).Error; err != nil {
		return dto.BalanceSummary{}, errors.NewAppError(errors.ErrCodeDBError, "Lỗi truy vấn chi trả", err)
	}

	paid, processingFees := SumPayments(payments)
	fees := platformFee.Add(ticketFees).Add(processingFees)

	return dto.BalanceSummary{
		SubjectID:     brandID,
		SubjectKind:   constants.SubjectKindSubLabel,
		GrossEarnings: gross,
		Fees:          fees,
		Payments:      paid,
		Balance:       gross.Sub(fees).Sub(paid),
	}, nil
}

// brandPlatformFee tra cấu hình phí của brand rồi tính phí trên gross.
// Không có cấu hình hoặc cấu hình hỏng đều trả 0.
var feeLog = logger.NewDefaultLogger(logger.InfoLevel)

func brandPlatformFee(db *gorm.DB, brandID uint, gross decimal.Decimal) decimal.Decimal {
	if brandID == 0 {
		return decimal.Zero
	}
	var settings models.FeeSettings
	if err := db.Where("brand_id = ?", brandID).First(&settings).Error; err != nil {
		// Brand chưa cấu hình phí thì không chịu phí, không phải sự cố
		if err == gorm.ErrRecordNotFound {
			return decimal.Zero
		}
		feeLog.Error("đọc cấu hình phí brand %d: %v, hạ phí về 0", brandID, err)
		return decimal.Zero
	}
	fee, err := ComputeFee(gross, &settings)
	if err != nil {
		feeLog.Error("cấu hình phí brand %d hỏng: %v, hạ phí về 0", brandID, err)
		return decimal.Zero
	}
	return fee
}

// BuildStatement dựng các dòng sao kê cho một đối tượng: một dòng cho mỗi
// earning (đã nhân tỷ lệ) và một dòng cho mỗi payment kèm phí xử lý.
func BuildStatement(db *gorm.DB, subjectID uint, subjectKind string) ([]dto.StatementLine, error) {
	if subjectKind != constants.SubjectKindArtist && subjectKind != constants.SubjectKindSubLabel {
		return nil, errors.NewAppError(errors.ErrCodeInvalidSubjectKind, "Loại đối tượng không hợp lệ", nil)
	}

	var lines []dto.StatementLine

	if subjectKind == constants.SubjectKindArtist {
		var splits []models.RoyaltySplit
		if err := db.Where("artist_id = ?", subjectID).Find(&splits).Error; err != nil {
			return nil, errors.NewAppError(errors.ErrCodeDBError, "Lỗi truy vấn phần chia", err)
		}
		splitByRelease := make(map[uint]*models.RoyaltySplit)
		releaseIDs := make([]uint, 0, len(splits))
		for i := range splits {
			splitByRelease[splits[i].ReleaseID] = &splits[i]
			releaseIDs = append(releaseIDs, splits[i].ReleaseID)
		}

		var earnings []models.Earning
		if len(releaseIDs) > 0 {
			if err := db.Where("release_id IN ?", releaseIDs).
				Order("date asc").Find(&earnings).Error; err != nil {
				return nil, errors.NewAppError(errors.ErrCodeDBError, "Lỗi truy vấn doanh thu", err)
			}
		}
		for _, earning := range earnings {
			split := splitByRelease[earning.ReleaseID]
			lines = append(lines, dto.StatementLine{
				Date:        earning.Date,
				Description: earning.Description,
				Amount:      earning.Amount.Mul(split.CategoryPercentage(earning.Category)),
			})
		}
	} else {
		var releases []models.Release
		if err := db.Where("brand_id = ?", subjectID).Find(&releases).Error; err != nil {
			return nil, errors.NewAppError(errors.ErrCodeDBError, "Lỗi truy vấn release", err)
		}
		releaseIDs := make([]uint, 0, len(releases))
		for _, release := range releases {
			releaseIDs = append(releaseIDs, release.ID)
		}

		var earnings []models.Earning
		var splits []models.RoyaltySplit
		if len(releaseIDs) > 0 {
			if err := db.Where("release_id IN ?", releaseIDs).
				Order("date asc").Find(&earnings).Error; err != nil {
				return nil, errors.NewAppError(errors.ErrCodeDBError, "Lỗi truy vấn doanh thu", err)
			}
			if err := db.Where("release_id IN ?", releaseIDs).Find(&splits).Error; err != nil {
				return nil, errors.NewAppError(errors.ErrCodeDBError, "Lỗi truy vấn phần chia", err)
			}
		}
		for _, earning := range earnings {
			allocated := decimal.Zero
			for i := range splits {
				if splits[i].ReleaseID == earning.ReleaseID {
					allocated = allocated.Add(splits[i].CategoryPercentage(earning.Category))
				}
			}
			residual := one.Sub(allocated)
			if residual.IsNegative() {
				residual = decimal.Zero
			}
			lines = append(lines, dto.StatementLine{
				Date:        earning.Date,
				Description: earning.Description,
				Amount:      earning.Amount.Mul(residual),
			})
		}
	}

	var payments []models.Payment
	if err := db.Where("recipient_id = ? AND recipient_kind = ?", subjectID, subjectKind).
		Order("date_paid asc").Find(&payments).Error; err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Lỗi truy vấn chi trả", err)
	}
	for _, payment := range payments {
		description := payment.PaymentMethodRef
		if description == "" {
			description = "Chi trả"
		}
		lines = append(lines, dto.StatementLine{
			Date:        payment.DatePaid,
			Description: description,
			Amount:      payment.Amount.Neg(),
			Fee:         payment.ProcessingFee,
			HasFee:      true,
		})
	}

	return lines, nil
}

// RenderStatementCSV ghi sao kê ra CSV. Cột Fee chỉ xuất hiện khi có ít
// nhất một dòng mang phí; dòng không có phí để trống ô. Số tiền làm tròn
// 2 chữ số duy nhất tại lúc ghi.
func RenderStatementCSV(w io.Writer, lines []dto.StatementLine) error {
	hasFee := false
	for _, line := range lines {
		if line.HasFee {
			hasFee = true
			break
		}
	}

	writer := csv.NewWriter(w)

	header := []string{"Date", "Description", "Amount"}
	if hasFee {
		header = append(header, "Fee")
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, line := range lines {
		record := []string{
			line.Date.Format("02/01/2006"),
			line.Description,
			line.Amount.StringFixed(2),
		}
		if hasFee {
			fee := ""
			if line.HasFee {
				fee = line.Fee.StringFixed(2)
			}
			record = append(record, fee)
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
