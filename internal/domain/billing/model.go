package billing

import "time"

// InvoiceStatus is the payment state of an invoice.
type InvoiceStatus string

const (
	InvoiceUnpaid        InvoiceStatus = "unpaid"
	InvoicePartiallyPaid InvoiceStatus = "partially_paid"
	InvoicePaid          InvoiceStatus = "paid"
	InvoiceVoid          InvoiceStatus = "void"
)

func InvoiceStatuses() []InvoiceStatus {
	return []InvoiceStatus{InvoiceUnpaid, InvoicePartiallyPaid, InvoicePaid, InvoiceVoid}
}

func (s InvoiceStatus) Valid() bool {
	for _, v := range InvoiceStatuses() {
		if s == v {
			return true
		}
	}
	return false
}

// PaymentMethod is how a payment was received.
type PaymentMethod string

const (
	MethodCash        PaymentMethod = "cash"
	MethodCard        PaymentMethod = "card"
	MethodMobileMoney PaymentMethod = "mobile_money"
	MethodInsurance   PaymentMethod = "insurance"
)

func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{MethodCash, MethodCard, MethodMobileMoney, MethodInsurance}
}

func (m PaymentMethod) Valid() bool {
	for _, v := range PaymentMethods() {
		if m == v {
			return true
		}
	}
	return false
}

// Invoice maps to the invoices table. The appointment link is optional so
// an invoice outlives a deleted booking.
type Invoice struct {
	ID            int64         `db:"id" json:"id"`
	PatientID     int64         `db:"patient_id" json:"patient_id"`
	AppointmentID *int64        `db:"appointment_id" json:"appointment_id,omitempty"`
	TotalAmount   float64       `db:"total_amount" json:"total_amount"`
	Status        InvoiceStatus `db:"status" json:"status"`
	IssuedAt      *time.Time    `db:"issued_at" json:"issued_at,omitempty"`
	CreatedBy     *int64        `db:"created_by" json:"created_by,omitempty"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at" json:"updated_at"`

	// Items is populated by GetWithItems, not by the row scan.
	Items []*InvoiceItem `db:"-" json:"items,omitempty"`
}

// InvoiceItem maps to the invoice_items table. LineTotal is a generated
// column (quantity * unit_price); it is read back, never written.
type InvoiceItem struct {
	ID          int64   `db:"id" json:"id"`
	InvoiceID   int64   `db:"invoice_id" json:"invoice_id"`
	Description string  `db:"description" json:"description"`
	Quantity    int     `db:"quantity" json:"quantity"`
	UnitPrice   float64 `db:"unit_price" json:"unit_price"`
	LineTotal   float64 `db:"line_total" json:"line_total"`
}

// ComputedTotal derives quantity * unit_price, the same rule the generated
// line_total column applies. Useful before the row exists.
func (it *InvoiceItem) ComputedTotal() float64 {
	return float64(it.Quantity) * it.UnitPrice
}

// Payment maps to the payments table.
type Payment struct {
	ID         int64         `db:"id" json:"id"`
	InvoiceID  int64         `db:"invoice_id" json:"invoice_id"`
	Amount     float64       `db:"amount" json:"amount"`
	Method     PaymentMethod `db:"method" json:"method"`
	Reference  *string       `db:"reference" json:"reference,omitempty"`
	ReceivedBy *int64        `db:"received_by" json:"received_by,omitempty"`
	PaidAt     time.Time     `db:"paid_at" json:"paid_at"`
}

// ItemsTotal sums the line totals of the loaded items.
func (inv *Invoice) ItemsTotal() float64 {
	var sum float64
	for _, it := range inv.Items {
		sum += it.LineTotal
	}
	return sum
}

// StatusForPayments derives the invoice status from the amount paid so far.
// A voided invoice keeps its status regardless of payments.
func (inv *Invoice) StatusForPayments(paid float64) InvoiceStatus {
	if inv.Status == InvoiceVoid {
		return InvoiceVoid
	}
	switch {
	case paid <= 0:
		return InvoiceUnpaid
	case paid < inv.TotalAmount:
		return InvoicePartiallyPaid
	default:
		return InvoicePaid
	}
}
