package orders

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const deliveryDateLayout = "2006-01-02"

// SQLiteRepository backs local/dev runs (DB_DRIVER=sqlite).
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, order *Order) error {
	items, err := EncodeItems(order.Items)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}
	address, err := json.Marshal(order.Address)
	if err != nil {
		return fmt.Errorf("encode address: %w", err)
	}

	var delivery *string
	if order.DeliveryDate != nil {
		d := order.DeliveryDate.Format(deliveryDateLayout)
		delivery = &d
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO orders (
			user_id, first_name, mobile_number, delivery_date, address,
			items, total_amount, order_status, payment_reference, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		order.UserID,
		order.FirstName,
		order.MobileNumber,
		delivery,
		string(address),
		string(items),
		order.TotalAmount.String(),
		order.Status,
		order.PaymentReference,
		order.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	order.ID = id
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*Order, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, first_name, mobile_number, delivery_date, address,
		       items, total_amount, order_status, payment_reference, created_at
		FROM orders WHERE id = ?
	`, id)

	o, err := scanSQLiteOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return o, nil
}

func (r *SQLiteRepository) List(ctx context.Context, filter ListFilter) ([]*Order, error) {
	var (
		where []string
		args  []any
	)

	if len(filter.Statuses) > 0 {
		marks := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			marks[i] = "?"
			args = append(args, s)
		}
		where = append(where, "order_status IN ("+strings.Join(marks, ",")+")")
	}
	if filter.UserID != "" {
		where = append(where, "user_id = ?")
		args = append(args, filter.UserID)
	}
	if !filter.Since.IsZero() {
		where = append(where, "created_at >= ?")
		args = append(args, filter.Since.UTC())
	}

	query := `
		SELECT id, user_id, first_name, mobile_number, delivery_date, address,
		       items, total_amount, order_status, payment_reference, created_at
		FROM orders`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	if filter.NewestFirst {
		query += " ORDER BY created_at DESC, id DESC"
	} else {
		query += " ORDER BY created_at ASC, id ASC"
	}
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var out []*Order
	for rows.Next() {
		o, err := scanSQLiteOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE orders SET order_status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrOrderNotFound
	}
	return nil
}

type sqlScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteOrder(row sqlScanner) (*Order, error) {
	var (
		o          Order
		firstName  sql.NullString
		mobile     sql.NullString
		delivery   sql.NullString
		address    sql.NullString
		items      sql.NullString
		total      string
		paymentRef sql.NullString
	)

	if err := row.Scan(
		&o.ID,
		&o.UserID,
		&firstName,
		&mobile,
		&delivery,
		&address,
		&items,
		&total,
		&o.Status,
		&paymentRef,
		&o.CreatedAt,
	); err != nil {
		return nil, err
	}

	o.FirstName = firstName.String
	o.MobileNumber = mobile.String
	o.PaymentReference = paymentRef.String
	o.Items = DecodeItems([]byte(items.String))
	if address.Valid {
		_ = json.Unmarshal([]byte(address.String), &o.Address)
	}
	if delivery.Valid {
		if d, err := time.Parse(deliveryDateLayout, delivery.String); err == nil {
			o.DeliveryDate = &d
		}
	}
	if amount, err := decimal.NewFromString(total); err == nil {
		o.TotalAmount = amount
	}

	return &o, nil
}
