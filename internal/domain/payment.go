package domain

import (
	"fmt"
	"time"
)

type PaymentType string

const (
	PaymentTypeCash        PaymentType = "cash"
	PaymentTypeCreditCard  PaymentType = "credit_card"
	PaymentTypeStoreCredit PaymentType = "store_credit"
)

func (t PaymentType) Valid() bool {
	switch t {
	case PaymentTypeCash, PaymentTypeCreditCard, PaymentTypeStoreCredit:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

type Payment struct {
	ID              int64         `json:"id"`
	OrderID         int64         `json:"order_id"`
	PaymentDate     time.Time     `json:"payment_date"`
	Amount          float64       `json:"amount"`
	Type            PaymentType   `json:"payment_type"`
	Status          PaymentStatus `json:"status"`
	ReferenceNumber string        `json:"reference_number,omitempty"`
}

// Validate collects every rule violation instead of stopping at the first,
// so the caller can report them all at once.
func (p *Payment) Validate() []string {
	var problems []string
	if p.OrderID == 0 {
		problems = append(problems, "order is required")
	}
	if p.Amount <= 0 {
		problems = append(problems, "payment amount must be greater than zero")
	}
	if !p.Type.Valid() {
		problems = append(problems, fmt.Sprintf("invalid payment type %q", p.Type))
	}
	if p.Type == PaymentTypeCreditCard && p.ReferenceNumber == "" {
		problems = append(problems, "reference number is required for credit card payments")
	}
	return problems
}

// Refund is only allowed for completed payments.
func (p *Payment) Refund() error {
	if p.Status != PaymentCompleted {
		return fmt.Errorf("%w: cannot refund payment in status %q", ErrInvalidStateTransition, p.Status)
	}
	p.Status = PaymentRefunded
	return nil
}

type PaymentRepository interface {
	CreatePayment(payment *Payment) (*Payment, error)
	GetPaymentByID(id int64) (*Payment, error)
	UpdatePayment(payment *Payment) (*Payment, error)
	ListPaymentsByOrder(orderID int64) ([]Payment, error)
}
