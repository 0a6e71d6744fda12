package notification

import (
	"fmt"

	"label/models"

	"github.com/olahol/melody"
	"gorm.io/gorm"
)

// Service kênh thông báo vận hành. Reconciler và sweeper đẩy các sự cố
// webhook (payload hỏng, không khớp vé, gửi mail lỗi) qua đây; người dùng
// cuối không bao giờ thấy các lỗi này.
type Service interface {
	Notify(code string, message string, description string) error
}

// MelodyService broadcast thông báo qua websocket cho dashboard vận hành
// và lưu lại một bản ghi để tra cứu
type MelodyService struct {
	m  *melody.Melody
	db *gorm.DB
}

func NewMelodyService(m *melody.Melody, db *gorm.DB) *MelodyService {
	return &MelodyService{m: m, db: db}
}

func (s *MelodyService) Notify(code string, message string, description string) error {
	if s.db != nil {
		record := models.Notification{
			Code:        code,
			Message:     message,
			Description: description,
		}
		if err := s.db.Create(&record).Error; err != nil {
			return err
		}
	}
	if s.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	return s.m.Broadcast([]byte(fmt.Sprintf("🔔 [%s] %s", code, message)))
}

// WebhookFailureMessage dựng thông báo cho một webhook xử lý thất bại
type WebhookFailureMessage struct {
	code          string
	paymentLinkID string
	reason        string
}

func NewWebhookFailureMessage(code string, paymentLinkID string, reason string) *WebhookFailureMessage {
	return &WebhookFailureMessage{
		code:          code,
		paymentLinkID: paymentLinkID,
		reason:        reason,
	}
}

func (b *WebhookFailureMessage) Build() string {
	if b.paymentLinkID == "" {
		return fmt.Sprintf("Webhook thất bại: %s", b.reason)
	}
	return fmt.Sprintf("Webhook link %s thất bại: %s", b.paymentLinkID, b.reason)
}

// MailFailureMessage dựng thông báo khi gửi vé qua email thất bại,
// vé vẫn ở trạng thái đã xác nhận thanh toán chờ gửi lại
type MailFailureMessage struct {
	ticketID uint
	email    string
}

func NewMailFailureMessage(ticketID uint, email string) *MailFailureMessage {
	return &MailFailureMessage{ticketID: ticketID, email: email}
}

func (b *MailFailureMessage) Build() string {
	return fmt.Sprintf("Gửi vé %d tới %s thất bại, cần gửi lại thủ công.", b.ticketID, b.email)
}

// DeliveryStallMessage dựng thông báo khi vé đã xác nhận thanh toán nhưng
// không thể hoàn tất bước giao vé, vé đứng lại chờ gửi lại thủ công
type DeliveryStallMessage struct {
	ticketID uint
	reason   string
}

func NewDeliveryStallMessage(ticketID uint, reason string) *DeliveryStallMessage {
	return &DeliveryStallMessage{ticketID: ticketID, reason: reason}
}

func (b *DeliveryStallMessage) Build() string {
	return fmt.Sprintf("Vé %d kẹt ở trạng thái đã xác nhận: %s. Cần gửi lại thủ công.", b.ticketID, b.reason)
}
