package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/serhatyuna/cengonline-backend/config"
)

// 领域事件路由键
const (
	RoutingAnnouncementCreated = "announcement.created"
	RoutingSubmissionCreated   = "submission.created"
	RoutingMessageSent         = "message.sent"
)

// Event 领域事件信封
type Event struct {
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

// Publisher 领域事件发布接口
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
	Close() error
}

// ── RabbitMQ 实现 ──

type rabbitPublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	logger   *zap.Logger
}

// NewRabbitPublisher 连接 RabbitMQ，声明 topic 交换机与通知队列并完成绑定
func NewRabbitPublisher(cfg *config.MQConfig, logger *zap.Logger) (Publisher, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("连接 RabbitMQ 失败: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("打开 RabbitMQ 通道失败: %w", err)
	}

	if err := declareTopology(ch, cfg); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	logger.Info("RabbitMQ 连接成功",
		zap.String("exchange", cfg.Exchange),
		zap.String("queue", cfg.Queue),
	)

	return &rabbitPublisher{conn: conn, channel: ch, exchange: cfg.Exchange, logger: logger}, nil
}

func declareTopology(ch *amqp.Channel, cfg *config.MQConfig) error {
	if err := ch.ExchangeDeclare(cfg.Exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return fmt.Errorf("声明交换机失败: %w", err)
	}
	if cfg.Queue == "" {
		return nil
	}
	if _, err := ch.QueueDeclare(cfg.Queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("声明队列失败: %w", err)
	}
	for _, key := range []string{RoutingAnnouncementCreated, RoutingSubmissionCreated, RoutingMessageSent} {
		if err := ch.QueueBind(cfg.Queue, key, cfg.Exchange, false, nil); err != nil {
			return fmt.Errorf("绑定队列 %s 失败: %w", key, err)
		}
	}
	return nil
}

// Publish 以 JSON 持久化消息发布事件
func (p *rabbitPublisher) Publish(ctx context.Context, routingKey string, payload interface{}) error {
	body, err := Encode(routingKey, payload, time.Now())
	if err != nil {
		return err
	}

	publishCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return p.channel.PublishWithContext(publishCtx, p.exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
	})
}

// Close 关闭通道与连接
func (p *rabbitPublisher) Close() error {
	if err := p.channel.Close(); err != nil {
		p.logger.Warn("关闭 RabbitMQ 通道失败", zap.Error(err))
	}
	return p.conn.Close()
}

// Encode 将事件序列化为信封 JSON
func Encode(routingKey string, payload interface{}, at time.Time) ([]byte, error) {
	body, err := json.Marshal(Event{Type: routingKey, OccurredAt: at.UTC(), Payload: payload})
	if err != nil {
		return nil, fmt.Errorf("序列化事件 %s 失败: %w", routingKey, err)
	}
	return body, nil
}

// ── 空实现（未启用 MQ 时使用） ──

type nopPublisher struct{}

// NewNopPublisher 返回丢弃所有事件的发布器
func NewNopPublisher() Publisher { return nopPublisher{} }

func (nopPublisher) Publish(context.Context, string, interface{}) error { return nil }

func (nopPublisher) Close() error { return nil }
