package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/mithaas/sweetshop-api/internal/domain/entity"
	"github.com/mithaas/sweetshop-api/internal/domain/enum"
	"github.com/mithaas/sweetshop-api/internal/domain/repository"
	"github.com/mithaas/sweetshop-api/pkg/apperror"
	"github.com/mithaas/sweetshop-api/pkg/email"
	"github.com/mithaas/sweetshop-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// --- Fakes ---

// fakeOrderRepo is an in-memory OrderRepository for one branch
type fakeOrderRepo struct {
	orders  map[uuid.UUID]*entity.Order
	creates int
	updates int
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]*entity.Order)}
}

func (f *fakeOrderRepo) Create(ctx context.Context, branchCode string, order *entity.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	cp := *order
	f.orders[order.ID] = &cp
	f.creates++
	return nil
}

func (f *fakeOrderRepo) Update(ctx context.Context, branchCode string, order *entity.Order) error {
	cp := *order
	f.orders[order.ID] = &cp
	f.updates++
	return nil
}

func (f *fakeOrderRepo) Delete(ctx context.Context, branchCode string, id uuid.UUID) error {
	delete(f.orders, id)
	return nil
}

func (f *fakeOrderRepo) GetByID(ctx context.Context, branchCode string, id uuid.UUID) (*entity.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrderRepo) GetByOrderNumber(ctx context.Context, branchCode, orderNumber string) (*entity.Order, error) {
	for _, o := range f.orders {
		if o.OrderNumber == orderNumber {
			cp := *o
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeOrderRepo) ListNumbersByPrefix(ctx context.Context, branchCode, prefix string) ([]string, error) {
	var numbers []string
	for _, o := range f.orders {
		if strings.HasPrefix(o.OrderNumber, prefix) {
			numbers = append(numbers, o.OrderNumber)
		}
	}
	return numbers, nil
}

func (f *fakeOrderRepo) List(ctx context.Context, branchCode string, params *repository.OrderFilterParams) ([]entity.Order, int64, error) {
	var out []entity.Order
	for _, o := range f.orders {
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

type fakeBranchRepo struct {
	branches map[string]*entity.Branch
}

func (f *fakeBranchRepo) Create(ctx context.Context, b *entity.Branch) error { return nil }
func (f *fakeBranchRepo) Update(ctx context.Context, b *entity.Branch) error { return nil }
func (f *fakeBranchRepo) Delete(ctx context.Context, id uuid.UUID) error     { return nil }
func (f *fakeBranchRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Branch, error) {
	return nil, nil
}
func (f *fakeBranchRepo) GetByCode(ctx context.Context, code string) (*entity.Branch, error) {
	return f.branches[strings.ToUpper(code)], nil
}
func (f *fakeBranchRepo) List(ctx context.Context) ([]entity.Branch, error) { return nil, nil }

type fakeChangelogRepo struct {
	entries []entity.ChangelogEntry
}

func (f *fakeChangelogRepo) Append(ctx context.Context, e *entity.ChangelogEntry) error {
	f.entries = append(f.entries, *e)
	return nil
}

func (f *fakeChangelogRepo) List(ctx context.Context, branchCode string, params *pagination.PaginationParams) ([]entity.ChangelogEntry, int64, error) {
	return f.entries, int64(len(f.entries)), nil
}

type fakeMailer struct {
	sent []email.OrderConfirmation
}

func (f *fakeMailer) SendOrderConfirmation(to string, oc email.OrderConfirmation) error {
	f.sent = append(f.sent, oc)
	return nil
}

// --- Helpers ---

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newTestService() (*OrderService, *fakeOrderRepo, *fakeChangelogRepo, *fakeMailer) {
	orders := newFakeOrderRepo()
	branches := &fakeBranchRepo{branches: map[string]*entity.Branch{
		"BD": {Code: "BD", Name: "Badarpur"},
	}}
	changelog := &fakeChangelogRepo{}
	mailer := &fakeMailer{}
	return NewOrderService(orders, branches, changelog, mailer), orders, changelog, mailer
}

func validInput() *OrderInput {
	return &OrderInput{
		OrderNumber:   "BD-GEN-001",
		CustomerName:  "Asha Gupta",
		CustomerPhone: "9876543210",
		Boxes: []entity.Box{{
			Items: []entity.BoxItem{
				{Name: "kaju katli", Qty: dec("2"), Price: dec("100"), Unit: "kg"},
				{Name: "rasgulla", Qty: dec("1"), Price: dec("50"), Unit: "kg"},
			},
			BoxCount: 3,
			Discount: dec("20"),
		}},
		Username: "ravi",
	}
}

// --- Tests ---

func TestNextOrderNumber(t *testing.T) {
	svc, orders, _, _ := newTestService()
	ctx := context.Background()

	for _, n := range []string{"BD-GEN-002", "BD-GEN-007", "BD-GEN-abc", "BD-DIW-050"} {
		orders.orders[uuid.New()] = &entity.Order{ID: uuid.New(), OrderNumber: n}
	}

	got, err := svc.NextOrderNumber(ctx, "BD", "BD-GEN")
	if err != nil {
		t.Fatalf("NextOrderNumber: %v", err)
	}
	if got != "BD-GEN-008" {
		t.Errorf("NextOrderNumber = %q, want BD-GEN-008", got)
	}

	got, err = svc.NextOrderNumber(ctx, "BD", "BD-RAK")
	if err != nil {
		t.Fatalf("NextOrderNumber: %v", err)
	}
	if got != "BD-RAK-001" {
		t.Errorf("NextOrderNumber = %q, want BD-RAK-001 for empty prefix", got)
	}
}

func TestNextSequenceSkipsMalformedSuffixes(t *testing.T) {
	numbers := []string{"BD-GEN-003", "BD-GEN-", "BD-GEN-1x", "BD-GEN-010"}
	if got := nextSequence(numbers, "BD-GEN-"); got != 11 {
		t.Errorf("nextSequence = %d, want 11", got)
	}
	if got := nextSequence(nil, "BD-GEN-"); got != 1 {
		t.Errorf("nextSequence(nil) = %d, want 1", got)
	}
}

func TestAutosaveDraftIdempotent(t *testing.T) {
	svc, orders, _, _ := newTestService()
	ctx := context.Background()

	first, err := svc.AutosaveDraft(ctx, "BD", validInput())
	if err != nil {
		t.Fatalf("first AutosaveDraft: %v", err)
	}
	if !first.IsDraft || first.Status != enum.OrderStatusAutoSaved {
		t.Errorf("draft flags = (%v, %s), want (true, auto-saved)", first.IsDraft, first.Status)
	}

	second, err := svc.AutosaveDraft(ctx, "BD", validInput())
	if err != nil {
		t.Fatalf("second AutosaveDraft: %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("second autosave created a new identity: %s != %s", second.ID, first.ID)
	}
	if len(orders.orders) != 1 {
		t.Errorf("store holds %d records, want 1", len(orders.orders))
	}
	if orders.creates != 1 || orders.updates != 1 {
		t.Errorf("creates/updates = %d/%d, want 1/1", orders.creates, orders.updates)
	}
}

func TestAutosaveDraftRejectsFinalizedNumber(t *testing.T) {
	svc, orders, _, _ := newTestService()
	ctx := context.Background()

	id := uuid.New()
	orders.orders[id] = &entity.Order{ID: id, OrderNumber: "BD-GEN-001", IsDraft: false}

	_, err := svc.AutosaveDraft(ctx, "BD", validInput())
	if err == nil {
		t.Fatal("expected duplicate order number error")
	}
	if apperror.GetAppError(err).Code != 409 {
		t.Errorf("error code = %d, want 409", apperror.GetAppError(err).Code)
	}
}

func TestAutosaveDraftRequiresMinimumFields(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	input := validInput()
	input.CustomerName = ""
	if _, err := svc.AutosaveDraft(ctx, "BD", input); err == nil {
		t.Error("expected error without customer name")
	}

	input = validInput()
	input.Boxes = []entity.Box{{Items: []entity.BoxItem{{Name: "  "}}, BoxCount: 1}}
	if _, err := svc.AutosaveDraft(ctx, "BD", input); err == nil {
		t.Error("expected error without a named item")
	}
}

func TestCreateOrderConvertsDraftInPlace(t *testing.T) {
	svc, orders, changelog, _ := newTestService()
	ctx := context.Background()

	draft, err := svc.AutosaveDraft(ctx, "BD", validInput())
	if err != nil {
		t.Fatalf("AutosaveDraft: %v", err)
	}

	final, err := svc.CreateOrder(ctx, "BD", validInput())
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if final.ID != draft.ID {
		t.Errorf("conversion created a new identity: %s != %s", final.ID, draft.ID)
	}
	if final.IsDraft || final.Status != enum.OrderStatusSaved {
		t.Errorf("final flags = (%v, %s), want (false, saved)", final.IsDraft, final.Status)
	}
	if final.BranchName != "Badarpur" {
		t.Errorf("BranchName = %q, want Badarpur", final.BranchName)
	}
	if len(orders.orders) != 1 {
		t.Errorf("store holds %d records, want 1 (no orphan draft)", len(orders.orders))
	}
	if len(changelog.entries) != 1 || changelog.entries[0].Action != "created" {
		t.Errorf("changelog = %+v, want one created entry", changelog.entries)
	}
}

func TestCreateOrderRejectsDuplicateNumber(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.CreateOrder(ctx, "BD", validInput()); err != nil {
		t.Fatalf("first CreateOrder: %v", err)
	}

	_, err := svc.CreateOrder(ctx, "BD", validInput())
	if err == nil {
		t.Fatal("expected duplicate order number error")
	}
	if apperror.GetAppError(err).Code != 409 {
		t.Errorf("error code = %d, want 409", apperror.GetAppError(err).Code)
	}
}

func TestCreateOrderComputesTotals(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	// 250×3 − 20×3 = 690
	order, err := svc.CreateOrder(ctx, "BD", validInput())
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if !order.GrandTotal.Equal(dec("690")) {
		t.Errorf("GrandTotal = %s, want 690", order.GrandTotal)
	}
	if !order.Balance.Equal(dec("690")) {
		t.Errorf("Balance = %s, want 690", order.Balance)
	}
	if order.TotalBoxCount != 3 {
		t.Errorf("TotalBoxCount = %d, want 3", order.TotalBoxCount)
	}
}

func TestCreateOrderSendsConfirmation(t *testing.T) {
	svc, _, _, mailer := newTestService()
	ctx := context.Background()

	input := validInput()
	input.CustomerEmail = "asha@example.com"
	if _, err := svc.CreateOrder(ctx, "BD", input); err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if len(mailer.sent) != 1 {
		t.Fatalf("mailer sent %d messages, want 1", len(mailer.sent))
	}
	if mailer.sent[0].OrderNumber != "BD-GEN-001" {
		t.Errorf("confirmation order number = %q", mailer.sent[0].OrderNumber)
	}
}

func TestCreateOrderValidation(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	input := validInput()
	input.CustomerPhone = "12345"
	input.Pincode = "abc"
	input.CustomerEmail = "not-an-email"

	_, err := svc.CreateOrder(ctx, "BD", input)
	if err == nil {
		t.Fatal("expected validation error")
	}
	appErr := apperror.GetAppError(err)
	if appErr.Code != 422 {
		t.Fatalf("error code = %d, want 422", appErr.Code)
	}
	fields := make(map[string]bool)
	for _, fe := range appErr.Errors {
		fields[fe.Field] = true
	}
	for _, want := range []string{"customer_phone", "pincode", "customer_email"} {
		if !fields[want] {
			t.Errorf("missing field error for %s in %v", want, appErr.Errors)
		}
	}
}

func TestUpdateOrderByIdentity(t *testing.T) {
	svc, orders, _, _ := newTestService()
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, "BD", validInput())
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	input := validInput()
	input.CustomerName = "Asha G"
	updated, err := svc.UpdateOrder(ctx, "BD", order.ID, input)
	if err != nil {
		t.Fatalf("UpdateOrder: %v", err)
	}
	if updated.ID != order.ID || updated.CustomerName != "Asha G" {
		t.Errorf("update changed identity or lost data: %+v", updated)
	}
	if len(orders.orders) != 1 {
		t.Errorf("store holds %d records, want 1", len(orders.orders))
	}
}

func TestUpdateOrderRejectsNumberCollision(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	first, err := svc.CreateOrder(ctx, "BD", validInput())
	if err != nil {
		t.Fatalf("first CreateOrder: %v", err)
	}
	second := validInput()
	second.OrderNumber = "BD-GEN-002"
	if _, err := svc.CreateOrder(ctx, "BD", second); err != nil {
		t.Fatalf("second CreateOrder: %v", err)
	}

	input := validInput()
	input.OrderNumber = "BD-GEN-002"
	_, err = svc.UpdateOrder(ctx, "BD", first.ID, input)
	if err == nil {
		t.Fatal("expected collision error")
	}
	if apperror.GetAppError(err).Code != 409 {
		t.Errorf("error code = %d, want 409", apperror.GetAppError(err).Code)
	}
}

func TestRecordPayment(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, "BD", validInput()) // grand total 690
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	advance := dec("300")
	paid, err := svc.RecordPayment(ctx, "BD", order.ID, &PaymentInput{AdvancePaid: &advance, Username: "ravi"})
	if err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}
	if !paid.Balance.Equal(dec("390")) {
		t.Errorf("Balance = %s, want 390", paid.Balance)
	}
	if paid.AdvancePaidDate == nil {
		t.Error("AdvancePaidDate not stamped")
	}

	// Overpayment floors at zero, never negative
	balance := dec("500")
	paid, err = svc.RecordPayment(ctx, "BD", order.ID, &PaymentInput{BalancePaid: &balance, Username: "ravi"})
	if err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}
	if !paid.Balance.Equal(dec("0")) {
		t.Errorf("Balance = %s, want 0", paid.Balance)
	}
	if paid.BalancePaidDate == nil {
		t.Error("BalancePaidDate not stamped")
	}
}

func TestIsNumberAvailable(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	ok, err := svc.IsNumberAvailable(ctx, "BD", "BD-GEN-001")
	if err != nil || !ok {
		t.Fatalf("IsNumberAvailable = (%v, %v), want (true, nil)", ok, err)
	}

	if _, err := svc.CreateOrder(ctx, "BD", validInput()); err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	ok, err = svc.IsNumberAvailable(ctx, "BD", "BD-GEN-001")
	if err != nil || ok {
		t.Fatalf("IsNumberAvailable = (%v, %v), want (false, nil)", ok, err)
	}
}
