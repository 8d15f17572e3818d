package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fjod/go_storefront/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockPaymentsRepo struct {
	migrated   string
	migrateErr error
	closed     bool
}

func (m *mockPaymentsRepo) AttachOrder(context.Context, string, string, time.Time) error {
	return nil
}

func (m *mockPaymentsRepo) RunMigrations(path string) error {
	m.migrated = path
	return m.migrateErr
}

func (m *mockPaymentsRepo) Close() error {
	m.closed = true
	return nil
}

func TestOpenPayments_CredentialsWithoutDSN(t *testing.T) {
	cfg := &config.Config{RazorpayKeyID: "rzp_test_key", RazorpayKeySecret: "secret"}
	opened := false

	payments, closeFn, err := openPayments(cfg, func(string) (paymentsRepo, error) {
		opened = true
		return nil, errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")
	})

	require.NoError(t, err)
	assert.Nil(t, payments)
	assert.False(t, opened, "no database is dialled without PAYMENTS_DSN")
	closeFn()
}

func TestOpenPayments_DSNWithoutCredentials(t *testing.T) {
	cfg := &config.Config{PaymentsDSN: "postgres://db/payments", PaymentsMigrations: "./migrations"}
	repo := &mockPaymentsRepo{}
	var dsn string

	payments, closeFn, err := openPayments(cfg, func(d string) (paymentsRepo, error) {
		dsn = d
		return repo, nil
	})

	require.NoError(t, err)
	assert.Same(t, repo, payments)
	assert.Equal(t, "postgres://db/payments", dsn)
	assert.Equal(t, "./migrations", repo.migrated)
	closeFn()
	assert.True(t, repo.closed)
}

func TestOpenPayments_MigrationFailureClosesRepo(t *testing.T) {
	cfg := &config.Config{PaymentsDSN: "postgres://db/payments"}
	repo := &mockPaymentsRepo{migrateErr: errors.New("dirty database")}

	_, _, err := openPayments(cfg, func(string) (paymentsRepo, error) { return repo, nil })

	assert.ErrorContains(t, err, "dirty database")
	assert.True(t, repo.closed)
}

func TestNewOrderCreator(t *testing.T) {
	orders, err := newOrderCreator(&config.Config{})
	require.NoError(t, err)
	assert.Nil(t, orders)

	orders, err = newOrderCreator(&config.Config{RazorpayKeyID: "rzp_test_key", RazorpayKeySecret: "secret", RazorpayTimeout: time.Second})
	require.NoError(t, err)
	assert.NotNil(t, orders)
}
