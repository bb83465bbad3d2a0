package events

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/freshmart/backend/internal/adapter/config"
	"go.uber.org/zap"
)

// RabbitPublisher pushes order lifecycle events to a topic exchange so other
// services (gateway push, analytics) can consume them. Publishing is
// best-effort from the caller's point of view.
type RabbitPublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	logger   *zap.Logger
}

func NewRabbitPublisher(cfg *config.AMQP, log *zap.Logger) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}

	err = channel.ExchangeDeclare(cfg.Exchange, "topic", true, false, false, false, nil)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("amqp exchange declare: %w", err)
	}

	return &RabbitPublisher{
		conn:     conn,
		channel:  channel,
		exchange: cfg.Exchange,
		logger:   log,
	}, nil
}

func (p *RabbitPublisher) Publish(ctx context.Context, routingKey string, event any) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	err = p.channel.PublishWithContext(ctx, p.exchange, routingKey, false, false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		})
	if err != nil {
		return fmt.Errorf("publish %s: %w", routingKey, err)
	}

	p.logger.Debug("Published event", zap.String("key", routingKey))
	return nil
}

func (p *RabbitPublisher) Close() {
	if err := p.channel.Close(); err != nil {
		p.logger.Warn("Closing amqp channel", zap.Error(err))
	}
	if err := p.conn.Close(); err != nil {
		p.logger.Warn("Closing amqp connection", zap.Error(err))
	}
}
