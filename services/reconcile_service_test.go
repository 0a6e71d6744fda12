package services

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"label/errors"
	"label/models"
	"label/services/logger"

	"github.com/shopspring/decimal"
)

// fakeTicketRepo lưu vé trong bộ nhớ, guard chuyển trạng thái bằng mutex
// giống câu UPDATE có điều kiện trên Postgres
type fakeTicketRepo struct {
	mu      sync.Mutex
	tickets map[uint]*models.Ticket
	nextID  uint
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: make(map[uint]*models.Ticket), nextID: 1}
}

func (r *fakeTicketRepo) add(ticket *models.Ticket) *models.Ticket {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ticket.ID == 0 {
		ticket.ID = r.nextID
		r.nextID++
	}
	copied := *ticket
	r.tickets[copied.ID] = &copied
	return ticket
}

func (r *fakeTicketRepo) Create(ticket *models.Ticket) error {
	r.add(ticket)
	return nil
}

func (r *fakeTicketRepo) FindByID(id uint) (*models.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, errors.NewAppError(errors.ErrCodeNotFound, "Không tìm thấy vé", nil)
	}
	copied := *ticket
	return &copied, nil
}

func (r *fakeTicketRepo) FindByPaymentLinkID(paymentLinkID string) (*models.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ticket := range r.tickets {
		if ticket.PaymentLinkID == paymentLinkID {
			copied := *ticket
			return &copied, nil
		}
	}
	return nil, errors.NewAppError(errors.ErrCodeNotFound, "Không tìm thấy vé theo payment link", nil)
}

func (r *fakeTicketRepo) ConfirmPayment(id uint, fee decimal.Decimal) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket, ok := r.tickets[id]
	if !ok || ticket.Status != models.TicketStatusNew {
		return false, nil
	}
	ticket.Status = models.TicketStatusPaymentConfirmed
	ticket.Fee = fee
	return true, nil
}

func (r *fakeTicketRepo) AssignTicketCode(id uint, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket, ok := r.tickets[id]
	if !ok {
		return errors.NewAppError(errors.ErrCodeNotFound, "Không tìm thấy vé", nil)
	}
	if ticket.TicketCode == "" {
		ticket.TicketCode = code
	}
	return nil
}

func (r *fakeTicketRepo) MarkSent(id uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket, ok := r.tickets[id]
	if !ok || ticket.Status != models.TicketStatusPaymentConfirmed {
		return false, nil
	}
	ticket.Status = models.TicketStatusSent
	return true, nil
}

func (r *fakeTicketRepo) Cancel(id uint, fromStatus int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket, ok := r.tickets[id]
	if !ok || ticket.Status != fromStatus {
		return false, nil
	}
	ticket.Status = models.TicketStatusCanceled
	return true, nil
}

func (r *fakeTicketRepo) ListStaleNew(eventID uint, cutoff time.Time) ([]models.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var stale []models.Ticket
	for _, ticket := range r.tickets {
		if ticket.Status != models.TicketStatusNew {
			continue
		}
		if eventID != 0 && ticket.EventID != eventID {
			continue
		}
		if ticket.CreatedAt.Before(cutoff) {
			stale = append(stale, *ticket)
		}
	}
	return stale, nil
}

func (r *fakeTicketRepo) status(id uint) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tickets[id].Status
}

func (r *fakeTicketRepo) code(id uint) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tickets[id].TicketCode
}

// fakeMailer đếm số lần gửi, có thể ép thất bại
type fakeMailer struct {
	mu        sync.Mutex
	sendCount int
	fail      bool
}

func (m *fakeMailer) SendTicketEmail(ticket *models.Ticket) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return fmt.Errorf("smtp: connection refused")
	}
	m.sendCount++
	return nil
}

func (m *fakeMailer) sent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sendCount
}

// fakeNotifier ghi lại các thông báo vận hành
type fakeNotifier struct {
	mu    sync.Mutex
	codes []string
}

func (n *fakeNotifier) Notify(code string, message string, description string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.codes = append(n.codes, code)
	return nil
}

func (n *fakeNotifier) received() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.codes...)
}

func newTestReconciler(repo *fakeTicketRepo, mailer *fakeMailer, notifier *fakeNotifier) *ReconcileService {
	return NewReconcileService(nil, repo, mailer, notifier,
		logger.NewDefaultLogger(logger.ErrorLevel))
}

func linkPayload(linkID string) []byte {
	return []byte(fmt.Sprintf(
		`{"data":{"id":"evt_1","attributes":{"data":{"type":"link","id":"%s"}}}}`, linkID))
}

func TestProcessWebhookFulfillsTicket(t *testing.T) {
	repo := newFakeTicketRepo()
	mailer := &fakeMailer{}
	notifier := &fakeNotifier{}
	service := newTestReconciler(repo, mailer, notifier)

	ticket := repo.add(&models.Ticket{
		PaymentLinkID: "link_abc",
		Status:        models.TicketStatusNew,
		Price:         dec("150"),
		BuyerEmail:    "buyer@example.com",
	})

	outcome := service.ProcessWebhook(linkPayload("link_abc"))

	if outcome != OutcomeFulfilled {
		t.Fatalf("outcome = %s, mong đợi fulfilled", outcome)
	}
	if repo.status(ticket.ID) != models.TicketStatusSent {
		t.Errorf("status = %d, mong đợi Sent", repo.status(ticket.ID))
	}
	if repo.code(ticket.ID) == "" {
		t.Error("mã vé phải được sinh khi gửi")
	}
	if mailer.sent() != 1 {
		t.Errorf("gửi mail %d lần, mong đợi 1", mailer.sent())
	}
}

func TestProcessWebhookDuplicatesAreNoops(t *testing.T) {
	repo := newFakeTicketRepo()
	mailer := &fakeMailer{}
	notifier := &fakeNotifier{}
	service := newTestReconciler(repo, mailer, notifier)

	ticket := repo.add(&models.Ticket{
		PaymentLinkID: "link_dup",
		Status:        models.TicketStatusNew,
		Price:         dec("100"),
	})

	if outcome := service.ProcessWebhook(linkPayload("link_dup")); outcome != OutcomeFulfilled {
		t.Fatalf("lần đầu = %s, mong đợi fulfilled", outcome)
	}
	firstCode := repo.code(ticket.ID)

	// Gateway gửi lại nhiều lần cùng một thanh toán
	for i := 0; i < 5; i++ {
		if outcome := service.ProcessWebhook(linkPayload("link_dup")); outcome != OutcomeDuplicate {
			t.Fatalf("lần gửi lại thứ %d = %s, mong đợi duplicate", i+1, outcome)
		}
	}

	if mailer.sent() != 1 {
		t.Errorf("gửi mail %d lần, mong đợi đúng 1", mailer.sent())
	}
	if repo.code(ticket.ID) != firstCode {
		t.Error("mã vé phải ổn định qua các lần gửi lại")
	}
	if service.DuplicateCount() != 5 {
		t.Errorf("đếm trùng = %d, mong đợi 5", service.DuplicateCount())
	}
}

func TestProcessWebhookConcurrentDuplicates(t *testing.T) {
	repo := newFakeTicketRepo()
	mailer := &fakeMailer{}
	notifier := &fakeNotifier{}
	service := newTestReconciler(repo, mailer, notifier)

	ticket := repo.add(&models.Ticket{
		PaymentLinkID: "link_race",
		Status:        models.TicketStatusNew,
		Price:         dec("100"),
	})

	const workers = 20
	var wg sync.WaitGroup
	outcomes := make(chan ReconcileOutcome, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			outcomes <- service.ProcessWebhook(linkPayload("link_race"))
		}()
	}
	wg.Wait()
	close(outcomes)

	fulfilled := 0
	for outcome := range outcomes {
		if outcome == OutcomeFulfilled {
			fulfilled++
		}
	}

	if fulfilled != 1 {
		t.Errorf("%d lần fulfilled, mong đợi đúng 1", fulfilled)
	}
	if mailer.sent() != 1 {
		t.Errorf("gửi mail %d lần, mong đợi đúng 1", mailer.sent())
	}
	if repo.status(ticket.ID) != models.TicketStatusSent {
		t.Errorf("status = %d, mong đợi Sent", repo.status(ticket.ID))
	}
}

func TestProcessWebhookInvalidPayload(t *testing.T) {
	repo := newFakeTicketRepo()
	mailer := &fakeMailer{}
	notifier := &fakeNotifier{}
	service := newTestReconciler(repo, mailer, notifier)

	tests := []struct {
		name    string
		raw     []byte
		outcome ReconcileOutcome
	}{
		{"json hỏng", []byte(`{not json`), OutcomeInvalidPayload},
		{"thiếu correlation id", []byte(`{"data":{"id":"evt_9","attributes":{"data":{}}}}`), OutcomeInvalidPayload},
		{"type khác link", []byte(`{"data":{"id":"evt_9","attributes":{"data":{"type":"charge","id":"ch_1"}}}}`), OutcomeUnhandledType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if outcome := service.ProcessWebhook(tt.raw); outcome != tt.outcome {
				t.Errorf("outcome = %s, mong đợi %s", outcome, tt.outcome)
			}
		})
	}

	if mailer.sent() != 0 {
		t.Errorf("payload hỏng không được gửi mail, đã gửi %d", mailer.sent())
	}
	if len(notifier.received()) != len(tests) {
		t.Errorf("mỗi payload hỏng phải báo vận hành một lần, nhận %d", len(notifier.received()))
	}
}

func TestProcessWebhookCorrelationFailure(t *testing.T) {
	repo := newFakeTicketRepo()
	mailer := &fakeMailer{}
	notifier := &fakeNotifier{}
	service := newTestReconciler(repo, mailer, notifier)

	outcome := service.ProcessWebhook(linkPayload("link_unknown"))

	if outcome != OutcomeCorrelationFailure {
		t.Fatalf("outcome = %s, mong đợi correlation_failure", outcome)
	}
	codes := notifier.received()
	if len(codes) != 1 || codes[0] != string(errors.ErrCodeCorrelationFailure) {
		t.Errorf("thông báo vận hành = %v, mong đợi CORRELATION_FAILURE", codes)
	}
}

func TestProcessWebhookCanceledTicketIsTerminal(t *testing.T) {
	repo := newFakeTicketRepo()
	mailer := &fakeMailer{}
	notifier := &fakeNotifier{}
	service := newTestReconciler(repo, mailer, notifier)

	ticket := repo.add(&models.Ticket{
		PaymentLinkID: "link_cancel",
		Status:        models.TicketStatusCanceled,
	})

	outcome := service.ProcessWebhook(linkPayload("link_cancel"))

	if outcome != OutcomeTerminalNoop {
		t.Fatalf("outcome = %s, mong đợi terminal_noop", outcome)
	}
	if repo.status(ticket.ID) != models.TicketStatusCanceled {
		t.Error("vé đã hủy không được đổi trạng thái")
	}
	if mailer.sent() != 0 {
		t.Error("vé đã hủy không được gửi mail")
	}
}

func TestMailFailureLeavesTicketConfirmed(t *testing.T) {
	repo := newFakeTicketRepo()
	mailer := &fakeMailer{fail: true}
	notifier := &fakeNotifier{}
	service := newTestReconciler(repo, mailer, notifier)

	ticket := repo.add(&models.Ticket{
		PaymentLinkID: "link_mail",
		Status:        models.TicketStatusNew,
		Price:         dec("100"),
		BuyerEmail:    "buyer@example.com",
	})

	outcome := service.ProcessWebhook(linkPayload("link_mail"))

	if outcome != OutcomeConfirmedDeliveryFailed {
		t.Fatalf("outcome = %s, mong đợi confirmed_delivery_failed", outcome)
	}
	// Tiền đã chuyển: vé đứng ở Payment Confirmed, không lùi về New
	if repo.status(ticket.ID) != models.TicketStatusPaymentConfirmed {
		t.Errorf("status = %d, mong đợi Payment Confirmed", repo.status(ticket.ID))
	}
	codes := notifier.received()
	if len(codes) != 1 || codes[0] != "MAIL_FAILED" {
		t.Errorf("thông báo vận hành = %v, mong đợi MAIL_FAILED", codes)
	}

	// Admin gửi lại sau khi SMTP phục hồi
	mailer.fail = false
	resendOutcome, err := service.ResendTicket(ticket.ID)
	if err != nil {
		t.Fatalf("gửi lại thất bại: %v", err)
	}
	if resendOutcome != OutcomeFulfilled {
		t.Fatalf("gửi lại = %s, mong đợi fulfilled", resendOutcome)
	}
	if repo.status(ticket.ID) != models.TicketStatusSent {
		t.Errorf("status sau gửi lại = %d, mong đợi Sent", repo.status(ticket.ID))
	}
	if mailer.sent() != 1 {
		t.Errorf("gửi mail %d lần, mong đợi 1", mailer.sent())
	}
}

// codeFailingRepo gán mã vé thất bại chừng nào fail còn bật
type codeFailingRepo struct {
	*fakeTicketRepo
	fail bool
}

func (r *codeFailingRepo) AssignTicketCode(id uint, code string) error {
	if r.fail {
		return fmt.Errorf("pq: connection reset by peer")
	}
	return r.fakeTicketRepo.AssignTicketCode(id, code)
}

func TestCodeFailureLeavesTicketConfirmed(t *testing.T) {
	repo := &codeFailingRepo{fakeTicketRepo: newFakeTicketRepo(), fail: true}
	mailer := &fakeMailer{}
	notifier := &fakeNotifier{}
	service := NewReconcileService(nil, repo, mailer, notifier,
		logger.NewDefaultLogger(logger.ErrorLevel))

	ticket := repo.add(&models.Ticket{
		PaymentLinkID: "link_code",
		Status:        models.TicketStatusNew,
		Price:         dec("100"),
		BuyerEmail:    "buyer@example.com",
	})

	outcome := service.ProcessWebhook(linkPayload("link_code"))

	if outcome != OutcomeConfirmedDeliveryFailed {
		t.Fatalf("outcome = %s, mong đợi confirmed_delivery_failed", outcome)
	}
	// Vé không được đi tới Sent với mã rỗng: cổng soát vé khớp theo mã
	if repo.status(ticket.ID) != models.TicketStatusPaymentConfirmed {
		t.Errorf("status = %d, mong đợi Payment Confirmed", repo.status(ticket.ID))
	}
	if got := repo.code(ticket.ID); got != "" {
		t.Errorf("mã vé = %q, mong đợi rỗng", got)
	}
	if mailer.sent() != 0 {
		t.Errorf("gửi mail %d lần, không được gửi khi chưa có mã", mailer.sent())
	}
	codes := notifier.received()
	if len(codes) != 1 || codes[0] != "TICKET_CODE_FAILED" {
		t.Errorf("thông báo vận hành = %v, mong đợi TICKET_CODE_FAILED", codes)
	}

	// DB phục hồi, admin gửi lại: mã được gán rồi vé mới đi tới Sent
	repo.fail = false
	resendOutcome, err := service.ResendTicket(ticket.ID)
	if err != nil {
		t.Fatalf("gửi lại thất bại: %v", err)
	}
	if resendOutcome != OutcomeFulfilled {
		t.Fatalf("gửi lại = %s, mong đợi fulfilled", resendOutcome)
	}
	if repo.status(ticket.ID) != models.TicketStatusSent {
		t.Errorf("status sau gửi lại = %d, mong đợi Sent", repo.status(ticket.ID))
	}
	if repo.code(ticket.ID) == "" {
		t.Error("vé đã gửi phải có mã")
	}
	if mailer.sent() != 1 {
		t.Errorf("gửi mail %d lần, mong đợi 1", mailer.sent())
	}
}

func TestResendTicketRejectsWrongState(t *testing.T) {
	repo := newFakeTicketRepo()
	mailer := &fakeMailer{}
	notifier := &fakeNotifier{}
	service := newTestReconciler(repo, mailer, notifier)

	ticket := repo.add(&models.Ticket{
		PaymentLinkID: "link_new",
		Status:        models.TicketStatusNew,
	})

	if _, err := service.ResendTicket(ticket.ID); !errors.HasCode(err, errors.ErrCodeInvalidTransition) {
		t.Errorf("mong đợi INVALID_TRANSITION, nhận %v", err)
	}
	if mailer.sent() != 0 {
		t.Error("vé chưa thanh toán không được gửi mail")
	}
}
