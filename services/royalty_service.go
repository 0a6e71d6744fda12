package services

import (
	"label/dto"
	"label/errors"
	"label/models"
	"label/validator"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var decimalOneHundred = decimal.NewFromInt(100)

// SaveRoyaltySplits thay toàn bộ phần chia royalty của một release trong
// một transaction: xóa danh sách cũ rồi ghi danh sách mới, không bao giờ
// ghi một phần. Danh sách rỗng hợp lệ, nhãn giữ 100%.
func SaveRoyaltySplits(db *gorm.DB, releaseID uint, inputs []dto.RoyaltySplitInput) (*dto.RoyaltySplitsResponse, error) {
	if err := validator.ValidateRoyaltySplits(inputs); err != nil {
		return nil, err
	}

	var release models.Release
	if err := db.First(&release, releaseID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewAppError(errors.ErrCodeNotFound, "Không tìm thấy release", err)
		}
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Lỗi truy vấn release", err)
	}

	splits := make([]models.RoyaltySplit, 0, len(inputs))
	for i := range inputs {
		splits = append(splits, inputs[i].ToModel(releaseID))
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("release_id = ?", releaseID).
			Delete(&models.RoyaltySplit{}).Error; err != nil {
			return err
		}
		if len(splits) > 0 {
			if err := tx.Create(&splits).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Lỗi lưu phần chia royalty", err)
	}

	return &dto.RoyaltySplitsResponse{
		ReleaseID:  releaseID,
		Splits:     splits,
		LabelShare: validator.LabelShare(inputs),
	}, nil
}

// GetRoyaltySplits trả về phần chia hiện tại của release kèm phần còn lại
// của nhãn
func GetRoyaltySplits(db *gorm.DB, releaseID uint) (*dto.RoyaltySplitsResponse, error) {
	var release models.Release
	if err := db.First(&release, releaseID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewAppError(errors.ErrCodeNotFound, "Không tìm thấy release", err)
		}
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Lỗi truy vấn release", err)
	}

	var splits []models.RoyaltySplit
	if err := db.Where("release_id = ?", releaseID).
		Preload("Artist").Find(&splits).Error; err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Lỗi truy vấn phần chia", err)
	}

	inputs := make([]dto.RoyaltySplitInput, 0, len(splits))
	for _, split := range splits {
		inputs = append(inputs, dto.RoyaltySplitInput{
			ArtistID:            split.ArtistID,
			StreamingPercentage: split.StreamingPercentage.Mul(decimalOneHundred),
			SyncPercentage:      split.SyncPercentage.Mul(decimalOneHundred),
			DownloadPercentage:  split.DownloadPercentage.Mul(decimalOneHundred),
			PhysicalPercentage:  split.PhysicalPercentage.Mul(decimalOneHundred),
		})
	}

	return &dto.RoyaltySplitsResponse{
		ReleaseID:  releaseID,
		Splits:     splits,
		LabelShare: validator.LabelShare(inputs),
	}, nil
}
