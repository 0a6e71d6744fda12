package models

import "testing"

func TestTicketStateHappyPath(t *testing.T) {
	ticket := &Ticket{Status: TicketStatusNew}

	if err := GetTicketState(ticket.Status).ConfirmPayment(ticket); err != nil {
		t.Fatalf("xác nhận thanh toán vé mới: %v", err)
	}
	if ticket.Status != TicketStatusPaymentConfirmed {
		t.Fatalf("status = %d, mong đợi PaymentConfirmed", ticket.Status)
	}

	if err := GetTicketState(ticket.Status).Send(ticket); err != nil {
		t.Fatalf("gửi vé đã xác nhận: %v", err)
	}
	if ticket.Status != TicketStatusSent {
		t.Fatalf("status = %d, mong đợi Sent", ticket.Status)
	}
}

func TestTicketStateRejectsSkippingConfirm(t *testing.T) {
	ticket := &Ticket{Status: TicketStatusNew}
	if err := GetTicketState(ticket.Status).Send(ticket); err == nil {
		t.Error("không được gửi vé chưa thanh toán")
	}
	if ticket.Status != TicketStatusNew {
		t.Errorf("status = %d, chuyển thất bại không được đổi trạng thái", ticket.Status)
	}
}

func TestTicketStateCancelPaths(t *testing.T) {
	fromNew := &Ticket{Status: TicketStatusNew}
	if err := GetTicketState(fromNew.Status).Cancel(fromNew); err != nil {
		t.Errorf("hủy vé mới: %v", err)
	}
	if fromNew.Status != TicketStatusCanceled {
		t.Errorf("status = %d, mong đợi Canceled", fromNew.Status)
	}

	fromConfirmed := &Ticket{Status: TicketStatusPaymentConfirmed}
	if err := GetTicketState(fromConfirmed.Status).Cancel(fromConfirmed); err != nil {
		t.Errorf("hủy vé đã xác nhận: %v", err)
	}

	fromSent := &Ticket{Status: TicketStatusSent}
	if err := GetTicketState(fromSent.Status).Cancel(fromSent); err == nil {
		t.Error("không được hủy vé đã gửi")
	}
}

func TestTicketStateTerminal(t *testing.T) {
	tests := []struct {
		status   int
		terminal bool
	}{
		{TicketStatusNew, false},
		{TicketStatusPaymentConfirmed, false},
		{TicketStatusSent, true},
		{TicketStatusCanceled, true},
	}
	for _, tt := range tests {
		if got := GetTicketState(tt.status).Terminal(); got != tt.terminal {
			t.Errorf("Terminal(%d) = %v, mong đợi %v", tt.status, got, tt.terminal)
		}
	}
}

func TestTicketStateTerminalStatesRejectEverything(t *testing.T) {
	for _, status := range []int{TicketStatusSent, TicketStatusCanceled} {
		ticket := &Ticket{Status: status}
		state := GetTicketState(status)
		if err := state.ConfirmPayment(ticket); err == nil {
			t.Errorf("ConfirmPayment ở trạng thái %d phải bị từ chối", status)
		}
		if err := state.Send(ticket); err == nil {
			t.Errorf("Send ở trạng thái %d phải bị từ chối", status)
		}
		if ticket.Status != status {
			t.Errorf("trạng thái kết thúc %d bị đổi thành %d", status, ticket.Status)
		}
	}
}
