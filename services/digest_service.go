package services

import (
	"context"
	"fmt"
	"time"

	"label/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SweeperAdapter nối SweepService vào chữ ký mà cron job mong đợi,
// quét trên toàn bộ sự kiện
type SweeperAdapter struct {
	sweeper *SweepService
}

func NewSweeperAdapter(sweeper *SweepService) *SweeperAdapter {
	return &SweeperAdapter{sweeper: sweeper}
}

func (a *SweeperAdapter) SweepAll(ctx context.Context, cutoff time.Time) (int, int, error) {
	result, err := a.sweeper.SweepAbandoned(ctx, 0, cutoff)
	return result.Verified, result.Canceled, err
}

// DigestService dựng bản tin tổng hợp hằng ngày cho dashboard vận hành.
// Chỉ đọc và broadcast, không bao giờ ghi số liệu tổng hợp xuống DB:
// số dư luôn được tính lại từ bản ghi gốc.
type DigestService struct {
	DB *gorm.DB
}

func NewDigestService(db *gorm.DB) *DigestService {
	return &DigestService{DB: db}
}

func (s *DigestService) BuildDailyDigest() (string, error) {
	since := time.Now().Add(-24 * time.Hour)

	var earnings []models.Earning
	if err := s.DB.Where("created_at >= ?", since).Find(&earnings).Error; err != nil {
		return "", err
	}
	earningTotal := decimal.Zero
	for _, earning := range earnings {
		earningTotal = earningTotal.Add(earning.Amount)
	}

	var ticketsSent int64
	if err := s.DB.Model(&models.Ticket{}).
		Where("status = ? AND updated_at >= ?", models.TicketStatusSent, since).
		Count(&ticketsSent).Error; err != nil {
		return "", err
	}

	var unreadNotifications int64
	if err := s.DB.Model(&models.Notification{}).
		Where("is_read = ?", false).Count(&unreadNotifications).Error; err != nil {
		return "", err
	}

	return fmt.Sprintf("📊 24h qua: %s doanh thu mới, %d vé đã gửi, %d thông báo chưa đọc.",
		earningTotal.Round(2).StringFixed(2), ticketsSent, unreadNotifications), nil
}
