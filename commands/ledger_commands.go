package commands

import (
	"label/models"

	"gorm.io/gorm"
)

// LedgerCommand định nghĩa interface cho các command ghi sổ
type LedgerCommand interface {
	Execute() error
}

// RecordEarningCommand command để ghi nhận một khoản doanh thu.
// Chỉ tạo mới, không bao giờ sửa bản ghi đã có.
type RecordEarningCommand struct {
	earning *models.Earning
	db      *gorm.DB
}

func NewRecordEarningCommand(earning *models.Earning, db *gorm.DB) *RecordEarningCommand {
	return &RecordEarningCommand{
		earning: earning,
		db:      db,
	}
}

func (c *RecordEarningCommand) Execute() error {
	return c.db.Create(c.earning).Error
}

// RecordPaymentCommand command để ghi nhận một khoản chi trả
type RecordPaymentCommand struct {
	payment *models.Payment
	db      *gorm.DB
}

func NewRecordPaymentCommand(payment *models.Payment, db *gorm.DB) *RecordPaymentCommand {
	return &RecordPaymentCommand{
		payment: payment,
		db:      db,
	}
}

func (c *RecordPaymentCommand) Execute() error {
	return c.db.Create(c.payment).Error
}

// SaveFeeSettingsCommand command để tạo hoặc cập nhật cấu hình phí của brand
type SaveFeeSettingsCommand struct {
	settings *models.FeeSettings
	db       *gorm.DB
}

func NewSaveFeeSettingsCommand(settings *models.FeeSettings, db *gorm.DB) *SaveFeeSettingsCommand {
	return &SaveFeeSettingsCommand{
		settings: settings,
		db:       db,
	}
}

func (c *SaveFeeSettingsCommand) Execute() error {
	var existing models.FeeSettings
	err := c.db.Where("brand_id = ?", c.settings.BrandID).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return c.db.Create(c.settings).Error
	}
	if err != nil {
		return err
	}
	c.settings.ID = existing.ID
	return c.db.Save(c.settings).Error
}
