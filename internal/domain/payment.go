package domain

import "time"

// Payment status constants.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusSucceeded = "succeeded"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
)

// Payment represents a payment transaction against an order.
type Payment struct {
	ID            string    `json:"id"`
	OrderID       string    `json:"order_id"`
	UserID        string    `json:"user_id"`
	StoreID       string    `json:"store_id"`
	Amount        int64     `json:"amount"`
	Currency      string    `json:"currency"`
	Status        string    `json:"status"`
	ProviderName  string    `json:"provider_name"`
	ProviderPayID string    `json:"provider_payment_id,omitempty"`
	FailureReason string    `json:"failure_reason,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ValidPaymentStatuses returns all valid payment statuses.
func ValidPaymentStatuses() []string {
	return []string{
		PaymentStatusPending,
		PaymentStatusSucceeded,
		PaymentStatusFailed,
		PaymentStatusRefunded,
	}
}

// IsValidPaymentStatus checks whether the given status is a valid payment status.
func IsValidPaymentStatus(status string) bool {
	for _, s := range ValidPaymentStatuses() {
		if s == status {
			return true
		}
	}
	return false
}

// PaymentTransitions defines which payment status transitions are valid.
func PaymentTransitions() map[string][]string {
	return map[string][]string{
		PaymentStatusPending:   {PaymentStatusSucceeded, PaymentStatusFailed},
		PaymentStatusSucceeded: {PaymentStatusRefunded},
		PaymentStatusFailed:    {},
		PaymentStatusRefunded:  {},
	}
}

// CanTransitionTo checks if the payment can move to the target status.
func (p *Payment) CanTransitionTo(target string) bool {
	allowed, ok := PaymentTransitions()[p.Status]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == target {
			return true
		}
	}
	return false
}
