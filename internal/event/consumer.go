package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/utafrali/discovery/internal/domain"
)

// Kafka topics carrying product catalog changes.
const (
	TopicProductCreated = "storefront.product.created"
	TopicProductUpdated = "storefront.product.updated"
	TopicProductDeleted = "storefront.product.deleted"
)

// Event is the envelope every catalog message is wrapped in.
type Event struct {
	EventID   string          `json:"event_id"`
	EventType string          `json:"event_type"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// ProductEventData is the payload of created/updated product events.
type ProductEventData struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Tags          []string `json:"tags"`
	Category      string   `json:"category"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"original_price,omitempty"`
	Rating        float64  `json:"rating"`
	ReviewCount   int      `json:"review_count"`
	Stock         int      `json:"stock"`
	IsNew         bool     `json:"is_new"`
	FreeShipping  bool     `json:"free_shipping"`
	Discount      *float64 `json:"discount,omitempty"`
	CreatedAt     string   `json:"created_at"`
}

// ProductDeletedData is the payload of product.deleted events.
type ProductDeletedData struct {
	ID string `json:"id"`
}

// Catalog is the mutable catalog the consumer applies product events to.
type Catalog interface {
	UpsertProduct(r domain.Record)
	DeleteProduct(id string)
}

// ConsumerConfig holds Kafka consumer settings.
type ConsumerConfig struct {
	Brokers []string
	GroupID string
	Topic   string
}

// Consumer keeps the in-memory catalog snapshot in sync with product events.
type Consumer struct {
	reader    *kafka.Reader
	catalog   Catalog
	logger    *slog.Logger
	closeOnce sync.Once
}

// NewConsumer creates a consumer for one product topic.
func NewConsumer(cfg ConsumerConfig, catalog Catalog, logger *slog.Logger) *Consumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		GroupID:  cfg.GroupID,
		Topic:    cfg.Topic,
		MinBytes: 1,
		MaxBytes: 10e6,
	})

	return &Consumer{
		reader:  r,
		catalog: catalog,
		logger:  logger,
	}
}

// Start consumes messages until the context is canceled. Messages that fail
// to decode are committed and skipped so they cannot wedge the partition.
func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info("catalog consumer started",
		slog.String("topic", c.reader.Config().Topic),
		slog.String("group", c.reader.Config().GroupID),
	)

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return c.Close()
			}
			c.logger.Error("failed to fetch message", slog.String("error", err.Error()))
			continue
		}

		var ev Event
		if err := json.Unmarshal(msg.Value, &ev); err != nil {
			c.logger.Error("failed to unmarshal event",
				slog.String("error", err.Error()),
				slog.String("topic", msg.Topic),
			)
			if commitErr := c.reader.CommitMessages(ctx, msg); commitErr != nil {
				c.logger.Error("failed to commit bad message", slog.String("error", commitErr.Error()))
			}
			continue
		}

		if err := c.Handle(ctx, &ev); err != nil {
			c.logger.Error("failed to handle event",
				slog.String("event_type", ev.EventType),
				slog.String("event_id", ev.EventID),
				slog.String("error", err.Error()),
			)
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			c.logger.Error("failed to commit message", slog.String("error", err.Error()))
		}
	}
}

// Handle applies a single event to the catalog.
func (c *Consumer) Handle(ctx context.Context, ev *Event) error {
	switch ev.EventType {
	case TopicProductCreated, TopicProductUpdated:
		var data ProductEventData
		if err := json.Unmarshal(ev.Data, &data); err != nil {
			return fmt.Errorf("unmarshal product data: %w", err)
		}
		if data.ID == "" {
			return fmt.Errorf("product event %s has no id", ev.EventID)
		}
		c.catalog.UpsertProduct(toRecord(data))
		c.logger.InfoContext(ctx, "catalog product upserted", slog.String("product_id", data.ID))
		return nil

	case TopicProductDeleted:
		var data ProductDeletedData
		if err := json.Unmarshal(ev.Data, &data); err != nil {
			return fmt.Errorf("unmarshal product.deleted data: %w", err)
		}
		c.catalog.DeleteProduct(data.ID)
		c.logger.InfoContext(ctx, "catalog product removed", slog.String("product_id", data.ID))
		return nil

	default:
		c.logger.WarnContext(ctx, "unknown event type received",
			slog.String("event_type", ev.EventType),
			slog.String("event_id", ev.EventID),
		)
		return nil
	}
}

// Close shuts down the underlying reader. Safe to call more than once.
func (c *Consumer) Close() error {
	var err error
	c.closeOnce.Do(func() {
		err = c.reader.Close()
	})
	return err
}

// PingBrokers dials the first reachable broker to verify connectivity.
func PingBrokers(ctx context.Context, brokers []string) error {
	var lastErr error
	for _, broker := range brokers {
		conn, err := kafka.DialContext(ctx, "tcp", broker)
		if err != nil {
			lastErr = err
			continue
		}
		conn.Close()
		return nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no brokers configured")
	}
	return fmt.Errorf("ping kafka: %w", lastErr)
}

func toRecord(data ProductEventData) domain.Record {
	return domain.Record{
		ID:            data.ID,
		Name:          data.Name,
		Description:   data.Description,
		Tags:          data.Tags,
		Category:      data.Category,
		Price:         data.Price,
		OriginalPrice: data.OriginalPrice,
		Rating:        data.Rating,
		ReviewCount:   data.ReviewCount,
		Stock:         data.Stock,
		IsNew:         data.IsNew,
		FreeShipping:  data.FreeShipping,
		Discount:      data.Discount,
		CreatedAt:     data.CreatedAt,
	}
}
