package event

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/discovery/internal/domain"
)

type fakeCatalog struct {
	upserted []domain.Record
	deleted  []string
}

func (f *fakeCatalog) UpsertProduct(r domain.Record) { f.upserted = append(f.upserted, r) }
func (f *fakeCatalog) DeleteProduct(id string)       { f.deleted = append(f.deleted, id) }

func newTestConsumer(catalog Catalog) *Consumer {
	return &Consumer{
		catalog: catalog,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func mustMarshal(t *testing.T, v any) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func TestConsumer_Handle_ProductCreated(t *testing.T) {
	catalog := &fakeCatalog{}
	c := newTestConsumer(catalog)

	discount := 10.0
	ev := &Event{
		EventID:   "ev-1",
		EventType: TopicProductCreated,
		Timestamp: time.Now(),
		Data: mustMarshal(t, ProductEventData{
			ID:           "p1",
			Name:         "Fresh Milk",
			Tags:         []string{"dairy"},
			Category:     "dairy",
			Price:        2.49,
			Rating:       4.2,
			ReviewCount:  87,
			Stock:        12,
			FreeShipping: true,
			Discount:     &discount,
			CreatedAt:    "2025-02-10T08:30:00Z",
		}),
	}

	require.NoError(t, c.Handle(context.Background(), ev))
	require.Len(t, catalog.upserted, 1)

	got := catalog.upserted[0]
	assert.Equal(t, "p1", got.ID)
	assert.Equal(t, "Fresh Milk", got.Name)
	assert.Equal(t, []string{"dairy"}, got.Tags)
	assert.Equal(t, 2.49, got.Price)
	require.NotNil(t, got.Discount)
	assert.Equal(t, 10.0, *got.Discount)
	assert.Equal(t, "2025-02-10T08:30:00Z", got.CreatedAt)
}

func TestConsumer_Handle_ProductUpdated(t *testing.T) {
	catalog := &fakeCatalog{}
	c := newTestConsumer(catalog)

	ev := &Event{
		EventID:   "ev-2",
		EventType: TopicProductUpdated,
		Data:      mustMarshal(t, ProductEventData{ID: "p1", Name: "Fresh Milk 2L", Price: 3.49}),
	}

	require.NoError(t, c.Handle(context.Background(), ev))
	require.Len(t, catalog.upserted, 1)
	assert.Equal(t, "Fresh Milk 2L", catalog.upserted[0].Name)
}

func TestConsumer_Handle_ProductDeleted(t *testing.T) {
	catalog := &fakeCatalog{}
	c := newTestConsumer(catalog)

	ev := &Event{
		EventID:   "ev-3",
		EventType: TopicProductDeleted,
		Data:      mustMarshal(t, ProductDeletedData{ID: "p1"}),
	}

	require.NoError(t, c.Handle(context.Background(), ev))
	assert.Equal(t, []string{"p1"}, catalog.deleted)
	assert.Empty(t, catalog.upserted)
}

func TestConsumer_Handle_MissingProductID(t *testing.T) {
	catalog := &fakeCatalog{}
	c := newTestConsumer(catalog)

	ev := &Event{
		EventID:   "ev-4",
		EventType: TopicProductCreated,
		Data:      mustMarshal(t, ProductEventData{Name: "No ID"}),
	}

	require.Error(t, c.Handle(context.Background(), ev))
	assert.Empty(t, catalog.upserted)
}

func TestConsumer_Handle_MalformedPayload(t *testing.T) {
	catalog := &fakeCatalog{}
	c := newTestConsumer(catalog)

	ev := &Event{
		EventID:   "ev-5",
		EventType: TopicProductUpdated,
		Data:      json.RawMessage(`{"id": 42}`),
	}

	require.Error(t, c.Handle(context.Background(), ev))
	assert.Empty(t, catalog.upserted)
}

func TestConsumer_Handle_UnknownEventTypeIgnored(t *testing.T) {
	catalog := &fakeCatalog{}
	c := newTestConsumer(catalog)

	ev := &Event{
		EventID:   "ev-6",
		EventType: "storefront.inventory.adjusted",
		Data:      json.RawMessage(`{}`),
	}

	require.NoError(t, c.Handle(context.Background(), ev))
	assert.Empty(t, catalog.upserted)
	assert.Empty(t, catalog.deleted)
}
