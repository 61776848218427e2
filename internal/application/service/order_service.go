package service

import (
	"context"
	"fmt"
	"log"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mithaas/sweetshop-api/internal/domain/entity"
	"github.com/mithaas/sweetshop-api/internal/domain/enum"
	"github.com/mithaas/sweetshop-api/internal/domain/pricing"
	"github.com/mithaas/sweetshop-api/internal/domain/repository"
	"github.com/mithaas/sweetshop-api/pkg/apperror"
	"github.com/mithaas/sweetshop-api/pkg/email"
	"github.com/mithaas/sweetshop-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// ConfirmationMailer sends the order confirmation mail.
// Satisfied by *email.EmailService; narrow interface for testability.
type ConfirmationMailer interface {
	SendOrderConfirmation(toEmail string, oc email.OrderConfirmation) error
}

// OrderService handles order composition, numbering, draft reconciliation
// and payments.
type OrderService struct {
	orderRepo     repository.OrderRepository
	branchRepo    repository.BranchRepository
	changelogRepo repository.ChangelogRepository
	mailer        ConfirmationMailer
}

// NewOrderService creates a new order service. mailer may be nil when SMTP
// is not configured.
func NewOrderService(
	orderRepo repository.OrderRepository,
	branchRepo repository.BranchRepository,
	changelogRepo repository.ChangelogRepository,
	mailer ConfirmationMailer,
) *OrderService {
	return &OrderService{
		orderRepo:     orderRepo,
		branchRepo:    branchRepo,
		changelogRepo: changelogRepo,
		mailer:        mailer,
	}
}

// OrderInput carries everything the client submits for an order
type OrderInput struct {
	OrderNumber   string
	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	Address       string
	Pincode       string
	OccasionCode  string
	DeliveryDate  *time.Time
	Notes         string
	Boxes         []entity.Box
	ExtraDiscount entity.ExtraDiscount
	AdvancePaid   decimal.Decimal
	Status        enum.OrderStatus
	CreatedBy     uuid.UUID
	Username      string
}

// PaymentInput carries a payment update. Nil fields are left untouched.
type PaymentInput struct {
	AdvancePaid *decimal.Decimal
	BalancePaid *decimal.Decimal
	Username    string
}

// NextOrderNumber allocates the next number for a branch/occasion prefix
// such as "BD-GEN". It scans existing numbers with that prefix, takes the
// highest numeric suffix and increments it, zero-padded to three digits.
// The scan and the eventual insert are not atomic; concurrent submissions
// can race, and the duplicate check on save is the only backstop.
func (s *OrderService) NextOrderNumber(ctx context.Context, branchCode, prefix string) (string, error) {
	prefix = strings.ToUpper(strings.TrimSpace(prefix))
	if prefix == "" {
		return "", apperror.NewBadRequestError("Order number prefix is required")
	}
	prefix = strings.TrimSuffix(prefix, "-")

	numbers, err := s.orderRepo.ListNumbersByPrefix(ctx, branchCode, prefix+"-")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%03d", prefix, nextSequence(numbers, prefix+"-")), nil
}

// nextSequence returns max(existing numeric suffixes)+1, starting at 1.
// Suffixes that do not parse as integers are skipped.
func nextSequence(numbers []string, prefix string) int {
	max := 0
	for _, n := range numbers {
		suffix := strings.TrimPrefix(n, prefix)
		seq, err := strconv.Atoi(suffix)
		if err != nil {
			continue
		}
		if seq > max {
			max = seq
		}
	}
	return max + 1
}

// IsNumberAvailable reports whether no order in the branch carries the number
func (s *OrderService) IsNumberAvailable(ctx context.Context, branchCode, orderNumber string) (bool, error) {
	orderNumber = strings.ToUpper(strings.TrimSpace(orderNumber))
	if orderNumber == "" {
		return false, apperror.NewBadRequestError("Order number is required")
	}
	existing, err := s.orderRepo.GetByOrderNumber(ctx, branchCode, orderNumber)
	if err != nil {
		return false, err
	}
	return existing == nil, nil
}

// AutosaveDraft upserts an in-progress order keyed by its order number.
// A draft with the same number is updated in place (same record); otherwise
// a new draft is created. Calling it repeatedly with the same number never
// produces a second record.
func (s *OrderService) AutosaveDraft(ctx context.Context, branchCode string, input *OrderInput) (*entity.Order, error) {
	if err := validateDraftMinimum(input); err != nil {
		return nil, err
	}
	input.OrderNumber = strings.ToUpper(strings.TrimSpace(input.OrderNumber))

	existing, err := s.orderRepo.GetByOrderNumber(ctx, branchCode, input.OrderNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil && !existing.IsDraft {
		return nil, apperror.ErrDuplicateOrderNumber
	}

	if existing != nil {
		s.applyInput(existing, input)
		existing.IsDraft = true
		existing.Status = enum.OrderStatusAutoSaved
		if err := s.orderRepo.Update(ctx, branchCode, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	order := s.newOrder(branchCode, input)
	order.IsDraft = true
	order.Status = enum.OrderStatusAutoSaved
	if err := s.orderRepo.Create(ctx, branchCode, order); err != nil {
		return nil, err
	}
	return order, nil
}

// CreateOrder finalizes a new order. When a draft with the same number
// exists it is converted in place, reusing its identity, so no orphan draft
// remains next to the final record. A finalized order with the same number
// rejects the save; the caller must pick a new number.
func (s *OrderService) CreateOrder(ctx context.Context, branchCode string, input *OrderInput) (*entity.Order, error) {
	if err := validateOrderInput(input); err != nil {
		return nil, err
	}
	input.OrderNumber = strings.ToUpper(strings.TrimSpace(input.OrderNumber))

	branch, err := s.branchRepo.GetByCode(ctx, branchCode)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, apperror.NewNotFoundError("Branch")
	}

	existing, err := s.orderRepo.GetByOrderNumber(ctx, branchCode, input.OrderNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil && !existing.IsDraft {
		return nil, apperror.ErrDuplicateOrderNumber
	}

	var order *entity.Order
	if existing != nil {
		// Convert the auto-saved draft in place
		order = existing
		s.applyInput(order, input)
	} else {
		order = s.newOrder(branchCode, input)
	}
	order.BranchName = branch.Name
	order.IsDraft = false
	order.Status = finalStatus(input.Status)
	stampAdvance(order)

	if existing != nil {
		err = s.orderRepo.Update(ctx, branchCode, order)
	} else {
		err = s.orderRepo.Create(ctx, branchCode, order)
	}
	if err != nil {
		return nil, err
	}

	s.appendChangelog(ctx, order, "created", input.Username)
	s.sendConfirmation(order)

	return order, nil
}

// UpdateOrder updates a finalized order by identity. No draft reconciliation
// runs here; a changed order number is checked for collisions first.
func (s *OrderService) UpdateOrder(ctx context.Context, branchCode string, id uuid.UUID, input *OrderInput) (*entity.Order, error) {
	if err := validateOrderInput(input); err != nil {
		return nil, err
	}
	input.OrderNumber = strings.ToUpper(strings.TrimSpace(input.OrderNumber))

	order, err := s.orderRepo.GetByID(ctx, branchCode, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}

	if input.OrderNumber != order.OrderNumber {
		other, err := s.orderRepo.GetByOrderNumber(ctx, branchCode, input.OrderNumber)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != order.ID {
			return nil, apperror.ErrDuplicateOrderNumber
		}
	}

	s.applyInput(order, input)
	order.IsDraft = false
	order.Status = finalStatus(input.Status)
	stampAdvance(order)

	if err := s.orderRepo.Update(ctx, branchCode, order); err != nil {
		return nil, err
	}

	s.appendChangelog(ctx, order, "updated", input.Username)

	return order, nil
}

// RecordPayment applies advance/balance amounts and stamps each date the
// first time its amount is set. Balance is recomputed afterwards.
func (s *OrderService) RecordPayment(ctx context.Context, branchCode string, id uuid.UUID, input *PaymentInput) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, branchCode, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}

	now := time.Now()
	if input.AdvancePaid != nil {
		order.AdvancePaid = nonNegative(*input.AdvancePaid)
		if order.AdvancePaid.IsPositive() && order.AdvancePaidDate == nil {
			order.AdvancePaidDate = &now
		}
	}
	if input.BalancePaid != nil {
		order.BalancePaid = nonNegative(*input.BalancePaid)
		if order.BalancePaid.IsPositive() && order.BalancePaidDate == nil {
			order.BalancePaidDate = &now
		}
	}
	order.Balance = pricing.Balance(order.GrandTotal, order.AdvancePaid, order.BalancePaid)

	if err := s.orderRepo.Update(ctx, branchCode, order); err != nil {
		return nil, err
	}

	s.appendChangelog(ctx, order, "payment", input.Username)

	return order, nil
}

// GetOrder retrieves an order by ID
func (s *OrderService) GetOrder(ctx context.Context, branchCode string, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, branchCode, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// ListOrders lists orders of a branch with filtering
func (s *OrderService) ListOrders(ctx context.Context, branchCode string, params *repository.OrderFilterParams) (*pagination.PaginatedResult[entity.Order], error) {
	orders, total, err := s.orderRepo.List(ctx, branchCode, params)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}

// DeleteOrder removes an order by identity
func (s *OrderService) DeleteOrder(ctx context.Context, branchCode string, id uuid.UUID, username string) error {
	order, err := s.orderRepo.GetByID(ctx, branchCode, id)
	if err != nil {
		return err
	}
	if order == nil {
		return apperror.NewNotFoundError("Order")
	}
	if err := s.orderRepo.Delete(ctx, branchCode, id); err != nil {
		return err
	}
	s.appendChangelog(ctx, order, "deleted", username)
	return nil
}

// --- internals ---

func (s *OrderService) newOrder(branchCode string, input *OrderInput) *entity.Order {
	order := &entity.Order{BranchCode: strings.ToUpper(branchCode)}
	s.applyInput(order, input)
	return order
}

// applyInput copies the submitted fields onto the order and recomputes every
// derived total. Out-of-range discounts are clamped silently; the clamp is
// logged so staff can follow up, but it is not an error.
func (s *OrderService) applyInput(order *entity.Order, input *OrderInput) {
	order.OrderNumber = strings.ToUpper(strings.TrimSpace(input.OrderNumber))
	order.CustomerName = strings.TrimSpace(input.CustomerName)
	order.CustomerPhone = strings.TrimSpace(input.CustomerPhone)
	order.CustomerEmail = strings.TrimSpace(input.CustomerEmail)
	order.Address = input.Address
	order.Pincode = strings.TrimSpace(input.Pincode)
	order.OccasionCode = strings.ToUpper(strings.TrimSpace(input.OccasionCode))
	order.DeliveryDate = input.DeliveryDate
	order.Notes = input.Notes
	order.Boxes = input.Boxes
	order.ExtraDiscount = input.ExtraDiscount
	order.AdvancePaid = nonNegative(input.AdvancePaid)
	if order.CreatedBy == uuid.Nil {
		order.CreatedBy = input.CreatedBy
	}

	totals := pricing.Compute(order.Boxes, order.ExtraDiscount, order.AdvancePaid, order.BalancePaid)
	order.GrandTotal = totals.GrandTotal
	order.Balance = totals.Balance
	order.TotalBoxCount = totals.TotalBoxCount
	if totals.Clamped {
		log.Printf("WARN: order %s: discount out of range, clamped", order.OrderNumber)
	}
}

func (s *OrderService) appendChangelog(ctx context.Context, order *entity.Order, action, username string) {
	entry := &entity.ChangelogEntry{
		BranchCode:  order.BranchCode,
		OrderNumber: order.OrderNumber,
		Action:      action,
		Username:    username,
		Detail:      fmt.Sprintf("grand_total=%s balance=%s", order.GrandTotal, order.Balance),
	}
	if err := s.changelogRepo.Append(ctx, entry); err != nil {
		log.Printf("WARN: changelog append for order %s: %v", order.OrderNumber, err)
	}
}

// sendConfirmation mails the customer. Best effort only: failures are
// logged and never surfaced.
func (s *OrderService) sendConfirmation(order *entity.Order) {
	if s.mailer == nil || order.CustomerEmail == "" {
		return
	}
	oc := email.OrderConfirmation{
		CustomerName: order.CustomerName,
		OrderNumber:  order.OrderNumber,
		BranchName:   order.BranchName,
		GrandTotal:   order.GrandTotal.StringFixed(2),
		AdvancePaid:  order.AdvancePaid.StringFixed(2),
		Balance:      order.Balance.StringFixed(2),
	}
	if order.DeliveryDate != nil {
		oc.DeliveryDate = order.DeliveryDate.Format("2006-01-02")
	}
	if err := s.mailer.SendOrderConfirmation(order.CustomerEmail, oc); err != nil {
		log.Printf("WARN: confirmation mail for order %s: %v", order.OrderNumber, err)
	}
}

func finalStatus(status enum.OrderStatus) enum.OrderStatus {
	if status == enum.OrderStatusHeld {
		return enum.OrderStatusHeld
	}
	return enum.OrderStatusSaved
}

func stampAdvance(order *entity.Order) {
	if order.AdvancePaid.IsPositive() && order.AdvancePaidDate == nil {
		now := time.Now()
		order.AdvancePaidDate = &now
	}
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// validateDraftMinimum checks only what the auto-save loop needs. Anything
// less than this is not worth persisting as a draft.
func validateDraftMinimum(input *OrderInput) error {
	if strings.TrimSpace(input.CustomerName) == "" ||
		strings.TrimSpace(input.CustomerPhone) == "" ||
		strings.TrimSpace(input.OrderNumber) == "" {
		return apperror.NewBadRequestError("Draft needs customer name, phone and order number")
	}
	if !hasNamedItem(input.Boxes) {
		return apperror.NewBadRequestError("Draft needs at least one named item")
	}
	totals := pricing.Compute(input.Boxes, input.ExtraDiscount, decimal.Zero, decimal.Zero)
	if !totals.GrandTotal.IsPositive() {
		return apperror.NewBadRequestError("Draft needs a positive total")
	}
	return nil
}

// validateOrderInput is the full validation run on explicit saves
func validateOrderInput(input *OrderInput) error {
	var fieldErrors []apperror.FieldError

	if strings.TrimSpace(input.OrderNumber) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "order_number", Message: "Order number is required"})
	}
	if strings.TrimSpace(input.CustomerName) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "customer_name", Message: "Customer name is required"})
	}
	phone := strings.TrimSpace(input.CustomerPhone)
	if phone == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "customer_phone", Message: "Customer phone is required"})
	} else if !isDigits(phone, 10) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "customer_phone", Message: "Phone must be 10 digits"})
	}
	if pincode := strings.TrimSpace(input.Pincode); pincode != "" && !isDigits(pincode, 6) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "pincode", Message: "Pincode must be 6 digits"})
	}
	if mailAddr := strings.TrimSpace(input.CustomerEmail); mailAddr != "" {
		if _, err := mail.ParseAddress(mailAddr); err != nil {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "customer_email", Message: "Invalid email address"})
		}
	}
	if !hasNamedItem(input.Boxes) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "boxes", Message: "Order needs at least one named item"})
	}

	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

func hasNamedItem(boxes []entity.Box) bool {
	for _, b := range boxes {
		for _, it := range b.Items {
			if strings.TrimSpace(it.Name) != "" {
				return true
			}
		}
	}
	return false
}

func isDigits(s string, length int) bool {
	if len(s) != length {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
