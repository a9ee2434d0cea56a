package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const orderColumns = `
	id,
	user_id,
	first_name,
	mobile_number,
	delivery_date,
	address,
	items,
	total_amount::text,
	order_status,
	payment_reference,
	created_at
`

// --------------------------------------------------
// Create order
// --------------------------------------------------
func (r *PostgresRepository) Create(ctx context.Context, order *Order) error {
	items, err := EncodeItems(order.Items)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}
	address, err := json.Marshal(order.Address)
	if err != nil {
		return fmt.Errorf("encode address: %w", err)
	}

	return r.db.QueryRow(ctx, `
		INSERT INTO orders (
			user_id,
			first_name,
			mobile_number,
			delivery_date,
			address,
			items,
			total_amount,
			order_status,
			payment_reference
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id, created_at
	`,
		order.UserID,
		order.FirstName,
		order.MobileNumber,
		order.DeliveryDate,
		address,
		items,
		order.TotalAmount.String(),
		order.Status,
		order.PaymentReference,
	).Scan(&order.ID, &order.CreatedAt)
}

// --------------------------------------------------
// Get single order
// --------------------------------------------------
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*Order, error) {
	row := r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)

	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return o, nil
}

// --------------------------------------------------
// List orders (admin, kitchen, dashboard, customer)
// --------------------------------------------------
func (r *PostgresRepository) List(ctx context.Context, filter ListFilter) ([]*Order, error) {
	var (
		where []string
		args  []any
	)

	if len(filter.Statuses) > 0 {
		args = append(args, filter.Statuses)
		where = append(where, fmt.Sprintf("order_status = ANY($%d)", len(args)))
	}
	if filter.UserID != "" {
		args = append(args, filter.UserID)
		where = append(where, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if !filter.Since.IsZero() {
		args = append(args, filter.Since)
		where = append(where, fmt.Sprintf("created_at >= $%d", len(args)))
	}

	query := `SELECT ` + orderColumns + ` FROM orders`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	if filter.NewestFirst {
		query += ` ORDER BY created_at DESC, id DESC`
	} else {
		query += ` ORDER BY created_at ASC, id ASC`
	}
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}

	return out, rows.Err()
}

// --------------------------------------------------
// Update status
// --------------------------------------------------
func (r *PostgresRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	cmd, err := r.db.Exec(ctx, `
		UPDATE orders
		SET order_status = $1
		WHERE id = $2
	`, status, id)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func scanOrder(row pgx.Row) (*Order, error) {
	var (
		o            Order
		firstName    *string
		mobile       *string
		deliveryDate *time.Time
		address      []byte
		items        []byte
		total        string
		paymentRef   *string
	)

	if err := row.Scan(
		&o.ID,
		&o.UserID,
		&firstName,
		&mobile,
		&deliveryDate,
		&address,
		&items,
		&total,
		&o.Status,
		&paymentRef,
		&o.CreatedAt,
	); err != nil {
		return nil, err
	}

	if firstName != nil {
		o.FirstName = *firstName
	}
	if mobile != nil {
		o.MobileNumber = *mobile
	}
	if paymentRef != nil {
		o.PaymentReference = *paymentRef
	}
	o.DeliveryDate = deliveryDate
	o.Items = DecodeItems(items)
	_ = json.Unmarshal(address, &o.Address)

	amount, err := decimal.NewFromString(total)
	if err == nil {
		o.TotalAmount = amount
	}

	return &o, nil
}
