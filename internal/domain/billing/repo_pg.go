package billing

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinicbase/clinicbase/internal/platform/db"
	"github.com/clinicbase/clinicbase/pkg/pagination"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const invoiceCols = `id, patient_id, appointment_id, total_amount, status, issued_at,
	created_by, created_at, updated_at`

func scanInvoice(row pgx.Row) (*Invoice, error) {
	var inv Invoice
	err := row.Scan(&inv.ID, &inv.PatientID, &inv.AppointmentID, &inv.TotalAmount,
		&inv.Status, &inv.IssuedAt, &inv.CreatedBy, &inv.CreatedAt, &inv.UpdatedAt)
	return &inv, err
}

func (r *repoPG) CreateInvoice(ctx context.Context, inv *Invoice) error {
	if inv.Status == "" {
		inv.Status = InvoiceUnpaid
	}
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO invoices (patient_id, appointment_id, total_amount, status, issued_at, created_by)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id, created_at, updated_at`,
		inv.PatientID, inv.AppointmentID, inv.TotalAmount, inv.Status, inv.IssuedAt, inv.CreatedBy).
		Scan(&inv.ID, &inv.CreatedAt, &inv.UpdatedAt)
}

func (r *repoPG) GetInvoice(ctx context.Context, id int64) (*Invoice, error) {
	return scanInvoice(r.conn(ctx).QueryRow(ctx,
		`SELECT `+invoiceCols+` FROM invoices WHERE id = $1`, id))
}

func (r *repoPG) GetInvoiceWithItems(ctx context.Context, id int64) (*Invoice, error) {
	inv, err := r.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	inv.Items, err = r.ListItems(ctx, id)
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *repoPG) UpdateInvoiceStatus(ctx context.Context, id int64, status InvoiceStatus) error {
	_, err := r.conn(ctx).Exec(ctx,
		`UPDATE invoices SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	return err
}

func (r *repoPG) DeleteInvoice(ctx context.Context, id int64) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	return err
}

func (r *repoPG) ListInvoicesByPatient(ctx context.Context, patientID int64, limit, offset int) ([]*Invoice, int, error) {
	page := pagination.New(limit, offset)
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM invoices WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+invoiceCols+` FROM invoices
		WHERE patient_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`, patientID, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, inv)
	}
	return items, total, rows.Err()
}

func (r *repoPG) AddItem(ctx context.Context, item *InvoiceItem) error {
	if item.Quantity == 0 {
		item.Quantity = 1
	}
	// line_total is generated, so it comes back from the insert.
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO invoice_items (invoice_id, description, quantity, unit_price)
		VALUES ($1,$2,$3,$4)
		RETURNING id, line_total`,
		item.InvoiceID, item.Description, item.Quantity, item.UnitPrice).
		Scan(&item.ID, &item.LineTotal)
}

func (r *repoPG) RemoveItem(ctx context.Context, itemID int64) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM invoice_items WHERE id = $1`, itemID)
	return err
}

func (r *repoPG) ListItems(ctx context.Context, invoiceID int64) ([]*InvoiceItem, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, invoice_id, description, quantity, unit_price, line_total
		FROM invoice_items WHERE invoice_id = $1 ORDER BY id`, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*InvoiceItem
	for rows.Next() {
		var it InvoiceItem
		if err := rows.Scan(&it.ID, &it.InvoiceID, &it.Description, &it.Quantity,
			&it.UnitPrice, &it.LineTotal); err != nil {
			return nil, err
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

func (r *repoPG) RecalculateTotal(ctx context.Context, invoiceID int64) (float64, error) {
	var total float64
	err := r.conn(ctx).QueryRow(ctx, `
		UPDATE invoices SET
			total_amount = COALESCE((SELECT SUM(line_total) FROM invoice_items WHERE invoice_id = $1), 0),
			updated_at = NOW()
		WHERE id = $1
		RETURNING total_amount`, invoiceID).Scan(&total)
	return total, err
}

func (r *repoPG) RecordPayment(ctx context.Context, p *Payment) error {
	if p.PaidAt.IsZero() {
		return r.conn(ctx).QueryRow(ctx, `
			INSERT INTO payments (invoice_id, amount, method, reference, received_by)
			VALUES ($1,$2,$3,$4,$5)
			RETURNING id, paid_at`,
			p.InvoiceID, p.Amount, p.Method, p.Reference, p.ReceivedBy).
			Scan(&p.ID, &p.PaidAt)
	}
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO payments (invoice_id, amount, method, reference, received_by, paid_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id`,
		p.InvoiceID, p.Amount, p.Method, p.Reference, p.ReceivedBy, p.PaidAt).Scan(&p.ID)
}

func (r *repoPG) ListPayments(ctx context.Context, invoiceID int64) ([]*Payment, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, invoice_id, amount, method, reference, received_by, paid_at
		FROM payments WHERE invoice_id = $1 ORDER BY paid_at, id`, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Payment
	for rows.Next() {
		var p Payment
		if err := rows.Scan(&p.ID, &p.InvoiceID, &p.Amount, &p.Method, &p.Reference,
			&p.ReceivedBy, &p.PaidAt); err != nil {
			return nil, err
		}
		items = append(items, &p)
	}
	return items, rows.Err()
}

func (r *repoPG) PaidTotal(ctx context.Context, invoiceID int64) (float64, error) {
	var total float64
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM payments WHERE invoice_id = $1`, invoiceID).Scan(&total)
	return total, err
}
