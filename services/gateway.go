package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"label/errors"
	"label/models"
)

// LinkStatus kết quả truy vấn lại trạng thái payment link tại gateway
type LinkStatus int

const (
	LinkStatusUnpaid LinkStatus = iota
	LinkStatusPaid
	// LinkStatusInconclusive: gateway không trả lời kịp hoặc trả lời không
	// đọc được. Không bao giờ coi là chưa thanh toán; để lần quét sau thử lại.
	LinkStatusInconclusive
)

// PaymentGateway cổng thanh toán bên ngoài. Reconciler và sweeper chỉ nói
// chuyện qua interface này.
type PaymentGateway interface {
	// CreatePaymentLink tạo link thanh toán cho một vé, trả về id link và
	// URL đưa cho người mua.
	CreatePaymentLink(ctx context.Context, ticket *models.Ticket) (string, string, error)
	// CheckPaymentLink truy vấn lại trạng thái một link. Timeout trả về
	// LinkStatusInconclusive, không phải lỗi cho caller xử lý ngay.
	CheckPaymentLink(ctx context.Context, paymentLinkID string) (LinkStatus, error)
}

// HTTPPaymentGateway implement PaymentGateway qua REST API của gateway
type HTTPPaymentGateway struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewHTTPPaymentGateway đọc cấu hình gateway từ biến môi trường
func NewHTTPPaymentGateway() *HTTPPaymentGateway {
	return &HTTPPaymentGateway{
		BaseURL: os.Getenv("GATEWAY_BASE_URL"),
		APIKey:  os.Getenv("GATEWAY_API_KEY"),
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type createLinkRequest struct {
	Amount      string `json:"amount"`
	Description string `json:"description"`
	ReferenceID string `json:"reference_id"`
}

type createLinkResponse struct {
	Data struct {
		ID          string `json:"id"`
		CheckoutURL string `json:"checkout_url"`
	} `json:"data"`
}

func (g *HTTPPaymentGateway) CreatePaymentLink(ctx context.Context, ticket *models.Ticket) (string, string, error) {
	payload := createLinkRequest{
		Amount:      ticket.Price.StringFixed(2),
		Description: fmt.Sprintf("Vé sự kiện #%d", ticket.EventID),
		ReferenceID: fmt.Sprintf("ticket-%d", ticket.ID),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", "", errors.NewAppError(errors.ErrCodeInvalidFormat, "Không thể tạo payload gateway", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", g.BaseURL+"/links", bytes.NewBuffer(body))
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.APIKey)

	resp, err := g.Client.Do(req)
	if err != nil {
		return "", "", errors.NewAppError(errors.ErrCodeDBError, "Gateway không phản hồi", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", "", errors.NewAppError(errors.ErrCodeInvalidOperation,
			fmt.Sprintf("Gateway trả về status %d", resp.StatusCode), nil)
	}

	var linkResp createLinkResponse
	if err := json.NewDecoder(resp.Body).Decode(&linkResp); err != nil {
		return "", "", errors.NewAppError(errors.ErrCodeInvalidFormat, "Không đọc được phản hồi gateway", err)
	}
	return linkResp.Data.ID, linkResp.Data.CheckoutURL, nil
}

type checkLinkResponse struct {
	Data struct {
		Attributes struct {
			Status string `json:"status"`
		} `json:"attributes"`
	} `json:"data"`
}

func (g *HTTPPaymentGateway) CheckPaymentLink(ctx context.Context, paymentLinkID string) (LinkStatus, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", g.BaseURL+"/links/"+paymentLinkID, nil)
	if err != nil {
		return LinkStatusInconclusive, err
	}
	req.Header.Set("Authorization", "Bearer "+g.APIKey)

	resp, err := g.Client.Do(req)
	if err != nil {
		// Timeout hoặc lỗi mạng: không kết luận, chờ lần quét sau
		return LinkStatusInconclusive, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return LinkStatusInconclusive, nil
	}

	var linkResp checkLinkResponse
	if err := json.NewDecoder(resp.Body).Decode(&linkResp); err != nil {
		return LinkStatusInconclusive, nil
	}

	switch linkResp.Data.Attributes.Status {
	case "paid":
		return LinkStatusPaid, nil
	case "unpaid", "expired":
		return LinkStatusUnpaid, nil
	default:
		return LinkStatusInconclusive, nil
	}
}
