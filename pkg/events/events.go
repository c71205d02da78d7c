package events

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	amqp "github.com/streadway/amqp"

	"artizon/internal/models"
)

// queueName is the durable queue storefront events are published to.
const queueName = "storefront_events"

// Config holds broker connection details.
type Config struct {
	URL string
}

// Client publishes storefront events to a message broker. It is optional
// infrastructure: callers hold it behind a nil-safe interface and skip
// publication when no broker is configured.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// NewClient connects to the broker and declares the storefront events queue.
func NewClient(cfg Config) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		queueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare %s: %w", queueName, err)
	}

	log.Printf("Event publisher connected, queue %s declared", queueName)

	return &Client{
		conn:    conn,
		channel: ch,
	}, nil
}

// Close closes the broker channel and connection.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors closing event publisher: %v", errs)
	}
	return nil
}

// PublishOrderPlaced announces a successfully placed order. The payload
// carries the identifiers downstream consumers need, not the full order.
func (c *Client) PublishOrderPlaced(order *models.Order) error {
	if c.channel == nil {
		return fmt.Errorf("broker channel is not available")
	}

	body, err := json.Marshal(map[string]interface{}{
		"event":        "order.placed",
		"order_id":     order.ID,
		"customer_id":  order.CustomerID,
		"total_amount": order.TotalAmount,
		"status":       order.Status,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	err = c.channel.Publish(
		"",        // exchange: default
		queueName, // routing key: the queue name
		false,     // mandatory
		false,     // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish order event: %w", err)
	}
	return nil
}
