package services

import (
	"time"

	"label/errors"
	"label/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TicketRepository tầng lưu trữ vé. Mọi chuyển trạng thái là một câu
// UPDATE duy nhất có guard trên status hiện tại; hai webhook trùng nhau
// chạy song song thì chỉ một câu UPDATE có hiệu lực.
type TicketRepository interface {
	Create(ticket *models.Ticket) error
	FindByID(id uint) (*models.Ticket, error)
	FindByPaymentLinkID(paymentLinkID string) (*models.Ticket, error)
	// ConfirmPayment chuyển New -> Payment Confirmed và ghi phí trong cùng
	// câu UPDATE. Trả false nếu vé không còn ở New.
	ConfirmPayment(id uint, fee decimal.Decimal) (bool, error)
	// AssignTicketCode gán mã vé, chỉ một lần; gọi lại không đổi mã cũ.
	AssignTicketCode(id uint, code string) error
	// MarkSent chuyển Payment Confirmed -> Sent. Trả false nếu vé đã rời
	// Payment Confirmed.
	MarkSent(id uint) (bool, error)
	// Cancel chuyển fromStatus -> Canceled. Trả false nếu vé không còn ở
	// fromStatus.
	Cancel(id uint, fromStatus int) (bool, error)
	// ListStaleNew liệt kê vé còn ở New tạo trước cutoff, lọc theo sự kiện
	// nếu eventID khác 0.
	ListStaleNew(eventID uint, cutoff time.Time) ([]models.Ticket, error)
}

// GormTicketRepository implement TicketRepository trên Postgres qua GORM
type GormTicketRepository struct {
	DB *gorm.DB
}

func NewGormTicketRepository(db *gorm.DB) *GormTicketRepository {
	return &GormTicketRepository{DB: db}
}

func (r *GormTicketRepository) Create(ticket *models.Ticket) error {
	if err := r.DB.Create(ticket).Error; err != nil {
		return errors.NewAppError(errors.ErrCodeDBError, "Lỗi tạo vé", err)
	}
	return nil
}

func (r *GormTicketRepository) FindByID(id uint) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := r.DB.Preload("Event").First(&ticket, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewAppError(errors.ErrCodeNotFound, "Không tìm thấy vé", err)
		}
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Lỗi truy vấn vé", err)
	}
	return &ticket, nil
}

func (r *GormTicketRepository) FindByPaymentLinkID(paymentLinkID string) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := r.DB.Preload("Event").
		Where("payment_link_id = ?", paymentLinkID).First(&ticket).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewAppError(errors.ErrCodeNotFound, "Không tìm thấy vé theo payment link", err)
		}
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Lỗi truy vấn vé", err)
	}
	return &ticket, nil
}

func (r *GormTicketRepository) ConfirmPayment(id uint, fee decimal.Decimal) (bool, error) {
	result := r.DB.Model(&models.Ticket{}).
		Where("id = ? AND status = ?", id, models.TicketStatusNew).
		Updates(map[string]interface{}{
			"status": models.TicketStatusPaymentConfirmed,
			"fee":    fee,
		})
	if result.Error != nil {
		return false, errors.NewAppError(errors.ErrCodeDBError, "Lỗi cập nhật trạng thái vé", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *GormTicketRepository) AssignTicketCode(id uint, code string) error {
	// Guard trên ticket_code rỗng: mã đã gán thì giữ nguyên, kể cả khi
	// bước gửi vé được chạy lại
	result := r.DB.Model(&models.Ticket{}).
		Where("id = ? AND (ticket_code IS NULL OR ticket_code = '')", id).
		Update("ticket_code", code)
	if result.Error != nil {
		return errors.NewAppError(errors.ErrCodeDBError, "Lỗi gán mã vé", result.Error)
	}
	return nil
}

func (r *GormTicketRepository) MarkSent(id uint) (bool, error) {
	result := r.DB.Model(&models.Ticket{}).
		Where("id = ? AND status = ?", id, models.TicketStatusPaymentConfirmed).
		Update("status", models.TicketStatusSent)
	if result.Error != nil {
		return false, errors.NewAppError(errors.ErrCodeDBError, "Lỗi cập nhật trạng thái vé", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *GormTicketRepository) Cancel(id uint, fromStatus int) (bool, error) {
	result := r.DB.Model(&models.Ticket{}).
		Where("id = ? AND status = ?", id, fromStatus).
		Update("status", models.TicketStatusCanceled)
	if result.Error != nil {
		return false, errors.NewAppError(errors.ErrCodeDBError, "Lỗi hủy vé", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *GormTicketRepository) ListStaleNew(eventID uint, cutoff time.Time) ([]models.Ticket, error) {
	query := r.DB.Where("status = ? AND created_at < ?", models.TicketStatusNew, cutoff)
	if eventID != 0 {
		query = query.Where("event_id = ?", eventID)
	}
	var tickets []models.Ticket
	if err := query.Find(&tickets).Error; err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Lỗi truy vấn vé quá hạn", err)
	}
	return tickets, nil
}
