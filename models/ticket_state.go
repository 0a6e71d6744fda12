package models

import "errors"

// TicketState định nghĩa interface cho các trạng thái vé.
// New → Payment Confirmed → Sent, New/Payment Confirmed → Canceled.
// Sent và Canceled là trạng thái kết thúc; không được nhảy cóc trạng thái.
type TicketState interface {
	ConfirmPayment(ticket *Ticket) error
	Send(ticket *Ticket) error
	Cancel(ticket *Ticket) error
	Terminal() bool
}

// NewState trạng thái vé mới tạo, chưa thanh toán
type NewState struct{}

func (s *NewState) ConfirmPayment(ticket *Ticket) error {
	ticket.Status = TicketStatusPaymentConfirmed
	return nil
}

func (s *NewState) Send(ticket *Ticket) error {
	return errors.New("cannot send unpaid ticket")
}

func (s *NewState) Cancel(ticket *Ticket) error {
	ticket.Status = TicketStatusCanceled
	return nil
}

func (s *NewState) Terminal() bool { return false }

// PaymentConfirmedState trạng thái đã xác nhận thanh toán
type PaymentConfirmedState struct{}

func (s *PaymentConfirmedState) ConfirmPayment(ticket *Ticket) error {
	return errors.New("payment already confirmed")
}

func (s *PaymentConfirmedState) Send(ticket *Ticket) error {
	ticket.Status = TicketStatusSent
	return nil
}

func (s *PaymentConfirmedState) Cancel(ticket *Ticket) error {
	ticket.Status = TicketStatusCanceled
	return nil
}

func (s *PaymentConfirmedState) Terminal() bool { return false }

// SentState trạng thái đã gửi vé
type SentState struct{}

func (s *SentState) ConfirmPayment(ticket *Ticket) error {
	return errors.New("ticket already sent")
}

func (s *SentState) Send(ticket *Ticket) error {
	return errors.New("ticket already sent")
}

func (s *SentState) Cancel(ticket *Ticket) error {
	return errors.New("cannot cancel sent ticket")
}

func (s *SentState) Terminal() bool { return true }

// CanceledState trạng thái đã hủy
type CanceledState struct{}

func (s *CanceledState) ConfirmPayment(ticket *Ticket) error {
	return errors.New("ticket already canceled")
}

func (s *CanceledState) Send(ticket *Ticket) error {
	return errors.New("ticket already canceled")
}

func (s *CanceledState) Cancel(ticket *Ticket) error {
	return errors.New("ticket already canceled")
}

func (s *CanceledState) Terminal() bool { return true }

// GetTicketState trả về state tương ứng với trạng thái vé
func GetTicketState(status int) TicketState {
	switch status {
	case TicketStatusNew:
		return &NewState{}
	case TicketStatusPaymentConfirmed:
		return &PaymentConfirmedState{}
	case TicketStatusSent:
		return &SentState{}
	case TicketStatusCanceled:
		return &CanceledState{}
	default:
		return &NewState{}
	}
}
