package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"propwise/internal/adapters/observability"
	"propwise/internal/domain"
)

const (
	RoutingKeyInquiryCreated = "inquiry.created"
	eventVersion             = "1.0.0"
	publishTimeout           = 5 * time.Second
	maxAttempts              = 3
)

// InquiryEvent is the JSON body published for every stored inquiry.
type InquiryEvent struct {
	InquiryID   int64   `json:"inquiry_id"`
	PropertyID  int64   `json:"property_id"`
	Name        string  `json:"name"`
	Phone       string  `json:"phone"`
	Message     string  `json:"message"`
	Location    string  `json:"location"`
	BHK         int     `json:"bhk"`
	ListedPrice float64 `json:"listed_price"`
	CreatedAt   string  `json:"created_at"`
}

func NewInquiryEvent(iv domain.InquiryView, now time.Time) InquiryEvent {
	return InquiryEvent{
		InquiryID:   iv.ID,
		PropertyID:  iv.PropertyID,
		Name:        iv.Name,
		Phone:       iv.Phone,
		Message:     iv.Message,
		Location:    iv.Location,
		BHK:         iv.BHK,
		ListedPrice: iv.ListedPrice,
		CreatedAt:   now.UTC().Format(time.RFC3339),
	}
}

// Publisher sends inquiry events to a topic exchange.
type Publisher struct {
	exchange string

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

// Dial connects and declares the exchange.
func Dial(url, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("notify: dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("notify: channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("notify: declare %s: %w", exchange, err)
	}
	return &Publisher{exchange: exchange, conn: conn, ch: ch}, nil
}

func (p *Publisher) InquiryCreated(ctx context.Context, iv domain.InquiryView) error {
	body, err := json.Marshal(NewInquiryEvent(iv, time.Now()))
	if err != nil {
		return fmt.Errorf("notify: marshal: %w", err)
	}
	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Headers: amqp.Table{
			"event-type":    "InquiryCreated",
			"event-version": eventVersion,
		},
	}
	if tid := observability.TraceID(ctx); tid != "" {
		msg.Headers["x-trace-id"] = tid
	}

	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if lastErr = p.publish(ctx, msg); lastErr == nil {
			return nil
		}
		log.Debug().Err(lastErr).Int("attempt", i+1).Msg("inquiry publish retry")
		if !sleepCtx(ctx, backoff(i)) {
			return ctx.Err()
		}
	}
	return fmt.Errorf("notify: publish: %w", lastErr)
}

func (p *Publisher) publish(ctx context.Context, msg amqp.Publishing) error {
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ch.PublishWithContext(ctx, p.exchange, RoutingKeyInquiryCreated, false, false, msg)
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.ch.Close(); err != nil {
		log.Warn().Err(err).Msg("amqp channel close")
	}
	return p.conn.Close()
}

func backoff(i int) time.Duration {
	return time.Duration(100*(1<<i)) * time.Millisecond
}

// sleepCtx waits for d or returns false early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
