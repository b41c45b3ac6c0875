package billing

import "context"

type Repository interface {
	CreateInvoice(ctx context.Context, inv *Invoice) error
	GetInvoice(ctx context.Context, id int64) (*Invoice, error)
	// GetInvoiceWithItems loads the invoice and its line items in one call.
	GetInvoiceWithItems(ctx context.Context, id int64) (*Invoice, error)
	UpdateInvoiceStatus(ctx context.Context, id int64, status InvoiceStatus) error
	DeleteInvoice(ctx context.Context, id int64) error
	ListInvoicesByPatient(ctx context.Context, patientID int64, limit, offset int) ([]*Invoice, int, error)

	AddItem(ctx context.Context, item *InvoiceItem) error
	RemoveItem(ctx context.Context, itemID int64) error
	ListItems(ctx context.Context, invoiceID int64) ([]*InvoiceItem, error)
	// RecalculateTotal rewrites total_amount from the current line items and
	// returns the new total.
	RecalculateTotal(ctx context.Context, invoiceID int64) (float64, error)

	RecordPayment(ctx context.Context, p *Payment) error
	ListPayments(ctx context.Context, invoiceID int64) ([]*Payment, error)
	// PaidTotal returns the sum of recorded payments for the invoice.
	PaidTotal(ctx context.Context, invoiceID int64) (float64, error)
}
