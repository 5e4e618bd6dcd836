package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/Josema-montano/FastFood-Admin/internal/domain/errors"
	"github.com/Josema-montano/FastFood-Admin/internal/domain/model"
	"github.com/Josema-montano/FastFood-Admin/internal/domain/repository"
)

// Pool is the subset of pgxpool.Pool the storage depends on.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   Pool
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type paymentRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Payments() repository.PaymentRepository {
	return &paymentRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            login TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            role TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id SERIAL PRIMARY KEY,
            table_id TEXT NOT NULL,
            state TEXT NOT NULL,
            total BIGINT NOT NULL,
            notes TEXT NOT NULL DEFAULT '',
            cancel_reason TEXT NOT NULL DEFAULT '',
            created_by BIGINT NOT NULL REFERENCES users(id),
            version BIGINT NOT NULL DEFAULT 1,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS order_items (
            id SERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id),
            product_id BIGINT NOT NULL,
            name TEXT NOT NULL,
            quantity INT NOT NULL,
            unit_price BIGINT NOT NULL,
            subtotal BIGINT NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS order_history (
            id SERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id),
            state TEXT NOT NULL,
            changed_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS payments (
            id SERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id),
            amount BIGINT NOT NULL,
            method TEXT NOT NULL,
            status TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_state ON orders(state, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_creator ON orders(created_by, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_history_order ON order_history(order_id, changed_at)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_payments_active ON payments(order_id) WHERE status <> 'FAILED'`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// classify maps transient infrastructure failures to ErrStorageUnavailable
// so callers can distinguish them from business-rule violations.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", domainErrors.ErrStorageUnavailable, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgconn.Timeout(err) {
		return fmt.Errorf("%w: %v", domainErrors.ErrStorageUnavailable, err)
	}
	return err
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, login, passwordHash string, role model.Role) (*model.User, error) {
	const query = `INSERT INTO users (login, password_hash, role) VALUES ($1, $2, $3) RETURNING id, created_at`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, login, passwordHash, role).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, classify(err)
	}
	u.Login = login
	u.PasswordHash = passwordHash
	u.Role = role
	return &u, nil
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	const query = `SELECT id, login, password_hash, role, created_at FROM users WHERE login=$1`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, login).Scan(&u.ID, &u.Login, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, classify(err)
	}
	return &u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT id, login, password_hash, role, created_at FROM users WHERE id=$1`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&u.ID, &u.Login, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, classify(err)
	}
	return &u, nil
}

// --- OrderRepository implementation ---

func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	created := *order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertOrder = `INSERT INTO orders (table_id, state, total, notes, created_by)
                             VALUES ($1, $2, $3, $4, $5)
                             RETURNING id, version, created_at, updated_at`
		err := tx.QueryRow(ctx, insertOrder, order.Table, order.State, order.Total, order.Notes, order.CreatedBy).
			Scan(&created.ID, &created.Version, &created.CreatedAt, &created.UpdatedAt)
		if err != nil {
			return err
		}

		const insertItem = `INSERT INTO order_items (order_id, product_id, name, quantity, unit_price, subtotal)
                            VALUES ($1, $2, $3, $4, $5, $6)
                            RETURNING id`
		created.Items = make([]model.LineItem, len(order.Items))
		for i, item := range order.Items {
			created.Items[i] = item
			err := tx.QueryRow(ctx, insertItem, created.ID, item.ProductID, item.Name, item.Quantity, item.UnitPrice, item.Subtotal).
				Scan(&created.Items[i].ID)
			if err != nil {
				return err
			}
		}

		const insertHistory = `INSERT INTO order_history (order_id, state) VALUES ($1, $2)`
		if _, err := tx.Exec(ctx, insertHistory, created.ID, order.State); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}

	created.History = []model.StateHistoryEntry{{State: created.State, ChangedAt: created.CreatedAt}}
	return &created, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	const query = `SELECT id, table_id, state, total, notes, cancel_reason, created_by, version, created_at, updated_at
                   FROM orders WHERE id=$1`
	var o model.Order
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.Table, &o.State, &o.Total, &o.Notes, &o.CancelReason,
		&o.CreatedBy, &o.Version, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, classify(err)
	}

	if err := r.loadRelated(ctx, &o); err != nil {
		return nil, classify(err)
	}
	return &o, nil
}

func (r *orderRepository) loadRelated(ctx context.Context, o *model.Order) error {
	const itemsQuery = `SELECT id, product_id, name, quantity, unit_price, subtotal
                        FROM order_items WHERE order_id=$1 ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, itemsQuery, o.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var item model.LineItem
		if err := rows.Scan(&item.ID, &item.ProductID, &item.Name, &item.Quantity, &item.UnitPrice, &item.Subtotal); err != nil {
			return err
		}
		o.Items = append(o.Items, item)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	const historyQuery = `SELECT state, changed_at FROM order_history WHERE order_id=$1 ORDER BY changed_at, id`
	historyRows, err := r.storage.pool.Query(ctx, historyQuery, o.ID)
	if err != nil {
		return err
	}
	defer historyRows.Close()
	for historyRows.Next() {
		var entry model.StateHistoryEntry
		if err := historyRows.Scan(&entry.State, &entry.ChangedAt); err != nil {
			return err
		}
		o.History = append(o.History, entry)
	}
	if err := historyRows.Err(); err != nil {
		return err
	}

	const paymentQuery = `SELECT id, order_id, amount, method, status, created_at
                          FROM payments WHERE order_id=$1 AND status <> 'FAILED'`
	var p model.Payment
	err = r.storage.pool.QueryRow(ctx, paymentQuery, o.ID).Scan(&p.ID, &p.OrderID, &p.Amount, &p.Method, &p.Status, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return err
	}
	o.Payment = &p
	return nil
}

func (r *orderRepository) List(ctx context.Context, scope model.OrderScope, callerID int64) ([]model.Order, error) {
	const base = `SELECT id, table_id, state, total, notes, cancel_reason, created_by, version, created_at, updated_at FROM orders`

	var (
		rows pgx.Rows
		err  error
	)
	switch scope {
	case model.ScopeKitchen:
		rows, err = r.storage.pool.Query(ctx, base+` WHERE state IN ('CREATED', 'IN_PREPARATION', 'READY') ORDER BY created_at`)
	case model.ScopeMine:
		rows, err = r.storage.pool.Query(ctx, base+` WHERE created_by=$1 ORDER BY created_at DESC`, callerID)
	default:
		rows, err = r.storage.pool.Query(ctx, base+` ORDER BY created_at DESC`)
	}
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var o model.Order
		err := rows.Scan(
			&o.ID, &o.Table, &o.State, &o.Total, &o.Notes, &o.CancelReason,
			&o.CreatedBy, &o.Version, &o.CreatedAt, &o.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}

	for i := range result {
		if err := r.loadRelated(ctx, &result[i]); err != nil {
			return nil, classify(err)
		}
	}
	return result, nil
}

func (r *orderRepository) UpdateState(ctx context.Context, id int64, from, to model.OrderState, version int64, reason string) error {
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const update = `UPDATE orders
                        SET state=$1,
                            cancel_reason=CASE WHEN $2 <> '' THEN $2 ELSE cancel_reason END,
                            version=version+1,
                            updated_at=NOW()
                        WHERE id=$3 AND state=$4 AND version=$5`
		tag, err := tx.Exec(ctx, update, to, reason, id, from, version)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			var current model.OrderState
			err := tx.QueryRow(ctx, `SELECT state FROM orders WHERE id=$1`, id).Scan(&current)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return domainErrors.ErrNotFound
				}
				return err
			}
			return domainErrors.ErrConcurrencyConflict
		}

		const insertHistory = `INSERT INTO order_history (order_id, state) VALUES ($1, $2)`
		if _, err := tx.Exec(ctx, insertHistory, id, to); err != nil {
			return err
		}
		return nil
	})
	return classify(err)
}

// --- PaymentRepository implementation ---

func (r *paymentRepository) Create(ctx context.Context, payment *model.Payment) (*model.Payment, error) {
	const query = `INSERT INTO payments (order_id, amount, method, status)
                   VALUES ($1, $2, $3, $4)
                   RETURNING id, created_at`
	created := *payment
	err := r.storage.pool.QueryRow(ctx, query, payment.OrderID, payment.Amount, payment.Method, payment.Status).
		Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrDuplicatePayment
		}
		return nil, classify(err)
	}
	return &created, nil
}

func (r *paymentRepository) GetByOrder(ctx context.Context, orderID int64) (*model.Payment, error) {
	const query = `SELECT id, order_id, amount, method, status, created_at
                   FROM payments WHERE order_id=$1 AND status <> 'FAILED'`
	var p model.Payment
	err := r.storage.pool.QueryRow(ctx, query, orderID).Scan(&p.ID, &p.OrderID, &p.Amount, &p.Method, &p.Status, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, classify(err)
	}
	return &p, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
