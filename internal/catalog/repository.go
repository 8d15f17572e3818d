package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	d "github.com/fjod/go_storefront/internal/domain"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	migrationsTable = "catalog_schema_migrations"
)

const productColumns = `id, name, category, price,
		COALESCE(short_description, ''), COALESCE(description, ''),
		COALESCE(image, ''), COALESCE(validity, ''),
		COALESCE(features, ''), COALESCE(highlights, '')`

type RepoInterface interface {
	GetAllProducts(ctx context.Context) ([]d.Product, error)
}

type Repository struct {
	db     *sql.DB
	driver string
}

// NewRepository opens the products table. sqlite is the local default,
// postgres points at the hosted table.
func NewRepository(driver, dsn string) (*Repository, error) {
	if driver != DriverSQLite && driver != DriverPostgres {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if driver == DriverSQLite {
		// every :memory: connection is its own database
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(20)
		db.SetMaxIdleConns(5)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Repository{db: db, driver: driver}, nil
}

// RunMigrations applies the migrations under migrationsPath/<driver>.
func (r *Repository) RunMigrations(migrationsPath string) error {
	var (
		driver database.Driver
		err    error
	)
	switch r.driver {
	case DriverPostgres:
		driver, err = postgres.WithInstance(r.db, &postgres.Config{MigrationsTable: migrationsTable})
	default:
		driver, err = sqlite.WithInstance(r.db, &sqlite.Config{MigrationsTable: migrationsTable})
	}
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", filepath.Join(migrationsPath, r.driver)),
		r.driver,
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

// GetAllProducts is the single catalog query. No filtering is pushed down.
func (r *Repository) GetAllProducts(ctx context.Context) ([]d.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products
		ORDER BY price ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []d.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return products, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func scanProduct(rows *sql.Rows) (d.Product, error) {
	var p d.Product
	err := rows.Scan(
		&p.ID,
		&p.Name,
		&p.Category,
		&p.Price,
		&p.ShortDescription,
		&p.Description,
		&p.Image,
		&p.Validity,
		&p.Features,
		&p.Highlights,
	)
	if err != nil {
		return p, fmt.Errorf("failed to scan product: %w", err)
	}
	return p, nil
}
