package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

// PaymentUpdater stamps provider orders on rows the storefront wrote.
type PaymentUpdater interface {
	AttachOrder(ctx context.Context, paymentID, orderID string, at time.Time) error
}

type Repository struct {
	db *sql.DB
}

func NewRepository(dsn string) (*Repository, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if e2 := db.Ping(); e2 != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", e2)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	log.Println("Connected to postgres!")
	return &Repository{db: db}, nil
}

func (r *Repository) RunMigrations(migrationsPath string) error {
	driver, err := postgres.WithInstance(r.db, &postgres.Config{
		MigrationsTable: "payments_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if e2 := m.Up(); e2 != nil && !errors.Is(e2, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", e2)
	}

	return nil
}

// AttachOrder stamps the provider order id on the payment row.
func (r *Repository) AttachOrder(ctx context.Context, paymentID, orderID string, at time.Time) error {
	id, err := uuid.Parse(paymentID)
	if err != nil {
		return fmt.Errorf("%w: invalid id %q", ErrPaymentNotFound, paymentID)
	}

	query := `UPDATE payments SET razorpay_order_id = $1, order_created_at = $2 WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, orderID, at.UTC(), id)
	if err != nil {
		return fmt.Errorf("update payment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update payment rows affected: %w", err)
	}
	if n == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}
