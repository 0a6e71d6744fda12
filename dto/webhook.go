package dto

import "encoding/json"

// PayloadKind phân loại payload webhook từ gateway
type PayloadKind int

const (
	// PayloadLink payload hợp lệ, type == "link", có payment link id
	PayloadLink PayloadKind = iota
	// PayloadUnhandled shape đúng nhưng type khác "link" (vd: charge trực
	// tiếp), không đoán mà ghi nhận và báo vận hành
	PayloadUnhandled
	// PayloadUnrecognized không đúng shape mong đợi
	PayloadUnrecognized
)

// WebhookPayload shape cố định của webhook gateway. Correlation id nằm ở
// data.attributes.data.{type,id}; mọi shape khác là InvalidPayload.
type WebhookPayload struct {
	Data struct {
		ID         string `json:"id"`
		Attributes struct {
			Data struct {
				Type string `json:"type"`
				ID   string `json:"id"`
			} `json:"data"`
		} `json:"attributes"`
	} `json:"data"`
}

// ParseWebhookPayload parse strict payload webhook, trả về kind tương ứng
func ParseWebhookPayload(raw []byte) (WebhookPayload, PayloadKind) {
	var payload WebhookPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return payload, PayloadUnrecognized
	}

	inner := payload.Data.Attributes.Data
	if inner.Type == "" || inner.ID == "" {
		return payload, PayloadUnrecognized
	}
	if inner.Type != "link" {
		return payload, PayloadUnhandled
	}
	return payload, PayloadLink
}

// PaymentLinkID correlation id của payment link trong payload
func (p *WebhookPayload) PaymentLinkID() string {
	return p.Data.Attributes.Data.ID
}

// GatewayEventID id của lần gửi webhook, có thể đổi giữa các lần resend
func (p *WebhookPayload) GatewayEventID() string {
	return p.Data.ID
}
