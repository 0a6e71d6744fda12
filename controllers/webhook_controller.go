package controllers

import (
	"io"

	"label/response"
	"label/services"

	"github.com/gin-gonic/gin"
)

// WebhookController nhận webhook thanh toán từ gateway
type WebhookController struct {
	Reconciler *services.ReconcileService
}

func NewWebhookController(reconciler *services.ReconcileService) *WebhookController {
	return &WebhookController{Reconciler: reconciler}
}

// HandlePaymentWebhook xử lý một lần gửi webhook. Luôn trả 200 cho
// gateway kể cả khi payload hỏng hay không khớp vé; gateway gặp mã khác
// 2xx sẽ retry vô hạn.
func (wc *WebhookController) HandlePaymentWebhook(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.Acknowledge(c)
		return
	}

	wc.Reconciler.ProcessWebhook(raw)
	response.Acknowledge(c)
}
