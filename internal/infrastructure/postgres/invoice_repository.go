package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/invoicer/internal/domain"
	"github.com/jhoicas/invoicer/internal/domain/entity"
	"github.com/jhoicas/invoicer/internal/domain/invoicenumber"
	"github.com/jhoicas/invoicer/internal/domain/repository"
)

var _ repository.RemoteInvoiceService = (*InvoiceRepo)(nil)

// InvoiceRepo servicio remoto de facturas sobre PostgreSQL: upsert idempotente por id,
// cuota mensual de facturas nuevas por dueño y contador autoritativo de consecutivos.
type InvoiceRepo struct {
	q            Querier
	tx           *TxRunner
	monthlyLimit int
	now          func() time.Time
}

// NewInvoiceRepository construye el adaptador. monthlyLimit 0 = sin límite.
func NewInvoiceRepository(db interface {
	Querier
	TxBeginner
}, monthlyLimit int) *InvoiceRepo {
	return &InvoiceRepo{q: db, tx: NewTxRunner(db), monthlyLimit: monthlyLimit, now: time.Now}
}

const invoiceColumns = `id, owner_id, invoice_number, sequence, invoice_date,
	customer_name, customer_phone, customer_email, customer_address, customer_category,
	mode, subtotal, shipping_cost, tax_enabled, tax_percentage, tax_amount, total,
	note, status, created_at, updated_at, synced_at`

// Upsert inserta o reemplaza la factura y sus líneas en una transacción. Solo una
// factura nueva consume cuota; reenviar la misma es idempotente.
func (r *InvoiceRepo) Upsert(ctx context.Context, inv entity.Invoice) error {
	if inv.ID == "" || inv.OwnerID == "" {
		return fmt.Errorf("%w: factura sin id o sin dueño", domain.ErrInvalidInput)
	}
	return r.tx.Run(ctx, func(tx pgx.Tx) error {
		// Serializa las altas de un mismo dueño para que el conteo de cuota sea exacto.
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, inv.OwnerID); err != nil {
			return fmt.Errorf("lock owner: %w", err)
		}

		var currentOwner string
		err := tx.QueryRow(ctx, `SELECT owner_id FROM invoices WHERE id = $1`, inv.ID).Scan(&currentOwner)
		exists := err == nil
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("get invoice owner: %w", err)
		}
		if exists && currentOwner != inv.OwnerID {
			return domain.ErrForbidden
		}
		if !exists && r.monthlyLimit > 0 {
			from, to := monthBounds(inv.InvoiceDate)
			var count int
			if err := tx.QueryRow(ctx,
				`SELECT count(*) FROM invoices WHERE owner_id = $1 AND invoice_date >= $2 AND invoice_date < $3`,
				inv.OwnerID, from, to).Scan(&count); err != nil {
				return fmt.Errorf("count invoices: %w", err)
			}
			if count >= r.monthlyLimit {
				return domain.ErrLimitReached
			}
		}

		c := inv.Customer
		_, err = tx.Exec(ctx, `
			INSERT INTO invoices (`+invoiceColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
			ON CONFLICT (id) DO UPDATE SET
				invoice_number = EXCLUDED.invoice_number,
				sequence = EXCLUDED.sequence,
				invoice_date = EXCLUDED.invoice_date,
				customer_name = EXCLUDED.customer_name,
				customer_phone = EXCLUDED.customer_phone,
				customer_email = EXCLUDED.customer_email,
				customer_address = EXCLUDED.customer_address,
				customer_category = EXCLUDED.customer_category,
				mode = EXCLUDED.mode,
				subtotal = EXCLUDED.subtotal,
				shipping_cost = EXCLUDED.shipping_cost,
				tax_enabled = EXCLUDED.tax_enabled,
				tax_percentage = EXCLUDED.tax_percentage,
				tax_amount = EXCLUDED.tax_amount,
				total = EXCLUDED.total,
				note = EXCLUDED.note,
				status = EXCLUDED.status,
				updated_at = EXCLUDED.updated_at,
				synced_at = EXCLUDED.synced_at`,
			inv.ID, inv.OwnerID, inv.InvoiceNumber, inv.Sequence, inv.InvoiceDate,
			c.Name, c.Phone, nullIfEmpty(c.Email), nullIfEmpty(c.Address), categoryOrDefault(c.Category),
			string(modeOf(inv)), inv.Subtotal, inv.ShippingCost, inv.TaxEnabled, inv.TaxPercentage, inv.TaxAmount, inv.Total,
			nullIfEmpty(inv.Note), entity.WireStatusSynced, inv.CreatedAt, inv.UpdatedAt, r.now(),
		)
		if err != nil {
			return fmt.Errorf("upsert invoice: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1`, inv.ID); err != nil {
			return fmt.Errorf("delete invoice items: %w", err)
		}
		if len(inv.Items) == 0 {
			return nil
		}
		batch := &pgx.Batch{}
		for pos, it := range inv.Items {
			row := itemToRow(it)
			batch.Queue(`
				INSERT INTO invoice_items (invoice_id, position, id, mode, description, quantity, price, gram, buyback_rate, line_amount)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
				inv.ID, pos, row.ID, row.Mode, row.Description, row.Quantity, row.Price, row.Gram, row.BuybackRate, row.LineAmount)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert invoice items: %w", err)
		}
		return nil
	})
}

// Delete es idempotente: borrar una factura inexistente no es error.
func (r *InvoiceRepo) Delete(ctx context.Context, ownerID, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}

// NextSequence incrementa y devuelve el consecutivo del dueño para el día, con tope en 999.
func (r *InvoiceRepo) NextSequence(ctx context.Context, ownerID, dateKey string) (int, error) {
	var seq int
	err := r.q.QueryRow(ctx, `
		INSERT INTO invoice_sequences (owner_id, date_key, last_value)
		VALUES ($1, $2, 1)
		ON CONFLICT (owner_id, date_key)
		DO UPDATE SET last_value = LEAST(invoice_sequences.last_value + 1, $3)
		RETURNING last_value`, ownerID, dateKey, invoicenumber.MaxSequence).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

// List facturas del dueño por fecha (más antiguas primero), con sus líneas.
func (r *InvoiceRepo) List(ctx context.Context, f repository.InvoiceFilter) ([]entity.Invoice, error) {
	var where []string
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	add("owner_id = $%d", f.OwnerID)
	if f.From != nil {
		add("invoice_date >= $%d", *f.From)
	}
	if f.To != nil {
		add("invoice_date <= $%d", *f.To)
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 100
	}
	args = append(args, limit, max(f.Offset, 0))
	query := fmt.Sprintf(`SELECT %s FROM invoices WHERE %s ORDER BY invoice_date, created_at LIMIT $%d OFFSET $%d`,
		invoiceColumns, strings.Join(where, " AND "), len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	list := make([]entity.Invoice, 0)
	index := make(map[string]int)
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		index[inv.ID] = len(list)
		list = append(list, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	if len(list) == 0 {
		return list, nil
	}

	ids := make([]string, len(list))
	for i, inv := range list {
		ids[i] = inv.ID
	}
	itemRows, err := r.q.Query(ctx, `
		SELECT invoice_id, id, mode, description, quantity, price, gram, buyback_rate, line_amount
		FROM invoice_items WHERE invoice_id = ANY($1) ORDER BY invoice_id, position`, ids)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var invoiceID string
		var row itemRow
		if err := itemRows.Scan(&invoiceID, &row.ID, &row.Mode, &row.Description,
			&row.Quantity, &row.Price, &row.Gram, &row.BuybackRate, &row.LineAmount); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		it, err := row.toItem()
		if err != nil {
			return nil, err
		}
		i := index[invoiceID]
		list[i].Items = append(list[i].Items, it)
	}
	return list, itemRows.Err()
}

func scanInvoice(rows pgx.Rows) (entity.Invoice, error) {
	var inv entity.Invoice
	var email, address, note *string
	var mode, status string
	var syncedAt time.Time
	err := rows.Scan(
		&inv.ID, &inv.OwnerID, &inv.InvoiceNumber, &inv.Sequence, &inv.InvoiceDate,
		&inv.Customer.Name, &inv.Customer.Phone, &email, &address, &inv.Customer.Category,
		&mode, &inv.Subtotal, &inv.ShippingCost, &inv.TaxEnabled, &inv.TaxPercentage, &inv.TaxAmount, &inv.Total,
		&note, &status, &inv.CreatedAt, &inv.UpdatedAt, &syncedAt,
	)
	if err != nil {
		return entity.Invoice{}, fmt.Errorf("scan invoice: %w", err)
	}
	inv.Customer.Email = derefStr(email)
	inv.Customer.Address = derefStr(address)
	inv.Note = derefStr(note)
	inv.Mode = entity.ItemMode(mode)
	inv.Status = entity.StatusFromWire(status)
	inv.SyncedAt = &syncedAt
	inv.Items = entity.Items{}
	return inv, nil
}

// itemRow forma de una línea en invoice_items: solo las columnas del modo van con valor.
type itemRow struct {
	ID          string
	Mode        string
	Description string
	Quantity    *int
	Price       *decimal.Decimal
	Gram        *decimal.Decimal
	BuybackRate *decimal.Decimal
	LineAmount  decimal.Decimal
}

func itemToRow(it entity.Item) itemRow {
	row := itemRow{ID: it.ItemID(), Mode: string(it.Mode()), Description: it.ItemDescription(), LineAmount: it.LineAmount()}
	switch v := it.(type) {
	case entity.RegularItem:
		q, p := v.Quantity, v.Price
		row.Quantity, row.Price = &q, &p
	case entity.BuybackItem:
		g, rate := v.Gram, v.BuybackRate
		row.Gram, row.BuybackRate = &g, &rate
	}
	return row
}

func (r itemRow) toItem() (entity.Item, error) {
	switch entity.ItemMode(r.Mode) {
	case entity.ModeRegular:
		if r.Quantity == nil || r.Price == nil {
			return nil, fmt.Errorf("invoice item %s: quantity/price nulos en modo regular", r.ID)
		}
		return entity.RegularItem{ID: r.ID, Description: r.Description, Quantity: *r.Quantity, Price: *r.Price}, nil
	case entity.ModeBuyback:
		if r.Gram == nil || r.BuybackRate == nil {
			return nil, fmt.Errorf("invoice item %s: gram/buyback_rate nulos en modo buyback", r.ID)
		}
		return entity.BuybackItem{ID: r.ID, Description: r.Description, Gram: *r.Gram, BuybackRate: *r.BuybackRate}, nil
	default:
		return nil, fmt.Errorf("invoice item %s: modo desconocido %q", r.ID, r.Mode)
	}
}

// monthBounds [inicio, inicio del mes siguiente) en la zona de la fecha.
func monthBounds(t time.Time) (time.Time, time.Time) {
	from := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return from, from.AddDate(0, 1, 0)
}

func modeOf(inv entity.Invoice) entity.ItemMode {
	if m := inv.Items.Mode(); m != "" {
		return m
	}
	if inv.Mode.Valid() {
		return inv.Mode
	}
	return entity.ModeRegular
}

func categoryOrDefault(c string) string {
	if c == "" {
		return entity.DefaultCustomerCategory
	}
	return c
}
