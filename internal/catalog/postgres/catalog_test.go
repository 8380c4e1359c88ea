package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/discovery/pkg/database"
)

func floatPtr(f float64) *float64 { return &f }

func newMockProvider(t *testing.T) (*CatalogProvider, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := database.NewMockPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return NewCatalogProvider(mock), mock
}

func TestCatalogProvider_Products(t *testing.T) {
	provider, mock := newMockProvider(t)

	created := time.Date(2025, 2, 10, 8, 30, 0, 0, time.UTC)
	rows := pgxmock.NewRows([]string{
		"id", "name", "description", "tags", "category", "price", "original_price",
		"rating", "review_count", "stock", "is_new", "free_shipping", "discount", "created_at",
	}).AddRow(
		"p1", "Fresh Milk", "Whole milk", []string{"dairy"}, "dairy", 2.49, floatPtr(2.99),
		4.2, 87, 12, false, true, floatPtr(15.0), created,
	).AddRow(
		"p2", "Sourdough", "", []string(nil), "bakery", 5.99, (*float64)(nil),
		4.8, 210, 0, true, false, (*float64)(nil), created.Add(time.Hour),
	)

	mock.ExpectQuery("SELECT (.+) FROM products").WillReturnRows(rows)

	records, err := provider.Products(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "p1", records[0].ID)
	assert.Equal(t, "Fresh Milk", records[0].Name)
	assert.Equal(t, []string{"dairy"}, records[0].Tags)
	assert.Equal(t, 2.49, records[0].Price)
	require.NotNil(t, records[0].Discount)
	assert.Equal(t, 15.0, *records[0].Discount)
	assert.Equal(t, "2025-02-10T08:30:00Z", records[0].CreatedAt)

	assert.Equal(t, "p2", records[1].ID)
	assert.True(t, records[1].IsNew)
	assert.Zero(t, records[1].Stock)
	assert.Nil(t, records[1].Discount)
	assert.Equal(t, "2025-02-10T09:30:00Z", records[1].CreatedAt)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogProvider_Products_QueryError(t *testing.T) {
	provider, mock := newMockProvider(t)

	mock.ExpectQuery("SELECT (.+) FROM products").WillReturnError(errors.New("connection reset"))

	records, err := provider.Products(context.Background())
	assert.Nil(t, records)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query products")
}

func TestCatalogProvider_Products_Empty(t *testing.T) {
	provider, mock := newMockProvider(t)

	mock.ExpectQuery("SELECT (.+) FROM products").WillReturnRows(pgxmock.NewRows([]string{
		"id", "name", "description", "tags", "category", "price", "original_price",
		"rating", "review_count", "stock", "is_new", "free_shipping", "discount", "created_at",
	}))

	records, err := provider.Products(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestCatalogProvider_Orders(t *testing.T) {
	provider, mock := newMockProvider(t)

	placed := time.Date(2025, 3, 1, 14, 0, 0, 0, time.UTC)
	rows := pgxmock.NewRows([]string{"id", "summary", "status", "order_date", "total_amount"}).
		AddRow("o1", "Order #1001", "delivered", placed, floatPtr(42.50)).
		AddRow("o2", "Order #1002", "pending", placed.Add(24*time.Hour), (*float64)(nil))

	mock.ExpectQuery("SELECT (.+) FROM orders").WillReturnRows(rows)

	records, err := provider.Orders(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Order #1001", records[0].Name)
	assert.Equal(t, "delivered", records[0].OrderStatus)
	assert.Equal(t, "2025-03-01T14:00:00Z", records[0].OrderDate)
	require.NotNil(t, records[0].TotalAmount)
	assert.Equal(t, 42.50, *records[0].TotalAmount)

	assert.Nil(t, records[1].TotalAmount)
	assert.Zero(t, records[1].Amount())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogProvider_Orders_QueryError(t *testing.T) {
	provider, mock := newMockProvider(t)

	mock.ExpectQuery("SELECT (.+) FROM orders").WillReturnError(errors.New("timeout"))

	_, err := provider.Orders(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query orders")
}
