package audit

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Josema-montano/FastFood-Admin/internal/domain/model"
)

// Publisher mirrors accepted mutations to a kafka topic for the audit
// trail. It is disabled when no brokers are configured; Record then is a
// no-op. Writes are best-effort and keyed by order id so one order's
// events stay in partition order.
type Publisher struct {
	writer *kafka.Writer
	logger *slog.Logger
}

// envelope is the wire format of one audit record.
type envelope struct {
	Kind    string          `json:"kind"`
	OrderID int64           `json:"order_id"`
	Table   string          `json:"table"`
	State   string          `json:"state"`
	Total   int64           `json:"total"`
	Payment *paymentSummary `json:"payment,omitempty"`
	At      time.Time       `json:"at"`
}

type paymentSummary struct {
	ID     int64  `json:"id"`
	Amount int64  `json:"amount"`
	Method string `json:"method"`
	Status string `json:"status"`
}

// NewPublisher constructs the kafka-backed publisher. With no brokers the
// publisher is disabled.
func NewPublisher(brokers []string, topic string, logger *slog.Logger) *Publisher {
	p := &Publisher{logger: logger}
	if len(brokers) == 0 {
		return p
	}
	p.writer = &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}
	return p
}

// Enabled reports whether audit records are actually written.
func (p *Publisher) Enabled() bool {
	return p.writer != nil
}

// Record writes one audit record for the event.
func (p *Publisher) Record(ctx context.Context, event model.Event) error {
	if !p.Enabled() {
		return nil
	}

	env := envelope{
		Kind:    string(event.Kind),
		OrderID: event.Order.ID,
		Table:   event.Order.Table,
		State:   string(event.Order.State),
		Total:   event.Order.Total,
		At:      event.At,
	}
	if event.Order.Payment != nil {
		env.Payment = &paymentSummary{
			ID:     event.Order.Payment.ID,
			Amount: event.Order.Payment.Amount,
			Method: string(event.Order.Payment.Method),
			Status: string(event.Order.Payment.Status),
		}
	}

	payload, err := json.Marshal(env)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(event.Order.ID, 10)),
		Value: payload,
		Time:  event.At,
	})
}

// Close releases the kafka writer.
func (p *Publisher) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
