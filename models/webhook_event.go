package models

import (
	"time"
)

// WebhookEvent lưu lại từng lần gateway gửi webhook để đối soát.
// Idempotency dựa trên payment_link_id chứ không phải gateway_event_id,
// vì gateway có thể gửi lại cùng một thanh toán với event id mới.
type WebhookEvent struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	GatewayEventID string    `json:"gatewayEventId" gorm:"type:varchar(64);index"`
	PaymentLinkID  string    `json:"paymentLinkId" gorm:"type:varchar(64);index"`
	Payload        string    `json:"payload" gorm:"type:text"`
	Outcome        string    `json:"outcome" gorm:"type:varchar(40)"`
	ReceivedAt     time.Time `json:"receivedAt" gorm:"autoCreateTime"`
}
