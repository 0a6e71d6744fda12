package services

import (
	"fmt"
	"net/smtp"
	"os"

	"label/models"
)

// Mailer gửi email vé cho người mua. Tách interface để reconciler và
// sweeper không phụ thuộc SMTP thật khi test.
type Mailer interface {
	SendTicketEmail(ticket *models.Ticket) error
}

// SMTPMailer implement Mailer qua SMTP, cấu hình lấy từ biến môi trường
type SMTPMailer struct{}

func NewSMTPMailer() *SMTPMailer {
	return &SMTPMailer{}
}

// SendTicketEmail gửi vé điện tử kèm mã vé cho người mua
func (m *SMTPMailer) SendTicketEmail(ticket *models.Ticket) error {
	from := os.Getenv("SMTP_FROM")
	password := os.Getenv("SMTP_PASSWORD")
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")
	if port == "" {
		port = "587"
	}

	to := []string{ticket.BuyerEmail}
	subject := "Subject: Vé tham dự sự kiện của bạn\n"
	body := fmt.Sprintf(`
		<!DOCTYPE html>
		<html>
		<head>
			<meta charset="UTF-8">
			<title>Vé sự kiện</title>
		</head>
		<body>
			<p>Xin chào %s,</p>
			<p>Thanh toán của bạn cho sự kiện <strong>%s</strong> đã được xác nhận.</p>
			<p>Mã vé của bạn là: <strong>%s</strong></p>
			<p>Vui lòng xuất trình mã vé này tại cổng soát vé.</p>
			<p>Xin cảm ơn,<br>Ban tổ chức</p>
		</body>
		</html>
	`, ticket.BuyerName, ticket.Event.Name, ticket.TicketCode)

	msg := []byte("MIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n" + subject + "\n" + body)

	auth := smtp.PlainAuth("", from, password, host)
	return smtp.SendMail(host+":"+port, auth, from, to, msg)
}
