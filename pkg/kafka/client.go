// Package kafka 提供了与 Kafka 消息队列交互的功能。
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"resource-hub-go/internal/config"
	"resource-hub-go/pkg/events"
	"resource-hub-go/pkg/log"
)

const maxAttempts = 3

// Producer 将领域事件写入 Kafka 主题。
type Producer struct {
	writer *kafka.Writer
}

// NewProducer 初始化 Kafka 生产者。
func NewProducer(cfg config.KafkaConfig) *Producer {
	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.BrokerList()...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
	}
	log.Infow("Kafka 生产者初始化成功", "topic", cfg.Topic)
	return &Producer{writer: w}
}

// Publish 发送一个事件到 Kafka，以实体为 key 保证同一实体的事件有序。
func (p *Producer) Publish(ctx context.Context, ev events.Event) error {
	msg, err := encode(ev)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msg)
}

// Close flushes pending writes.
func (p *Producer) Close() error {
	return p.writer.Close()
}

func encode(ev events.Event) (kafka.Message, error) {
	value, err := json.Marshal(ev)
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{
		Key:   []byte(ev.Entity + ":" + strconv.FormatInt(ev.EntityID, 10)),
		Value: value,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(ev.Type)},
		},
	}, nil
}

// messageReader is the part of kafka.Reader the consumer loop needs.
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

// StartConsumer 启动一个 Kafka 消费者，阻塞直到 ctx 被取消。
func StartConsumer(ctx context.Context, cfg config.KafkaConfig, handler events.Handler) error {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.BrokerList(),
		Topic:    cfg.Topic,
		GroupID:  cfg.GroupID,
		MinBytes: 1,
		MaxBytes: 10e6, // 10MB
	})
	defer func() {
		if err := r.Close(); err != nil {
			log.Errorf("关闭 Kafka 消费者失败: %v", err)
		}
	}()

	log.Infof("Kafka 消费者已启动，正在监听主题 '%s'", cfg.Topic)
	return consume(ctx, r, handler, time.Second)
}

func consume(ctx context.Context, r messageReader, handler events.Handler, backoff time.Duration) error {
	for {
		m, err := r.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("从 Kafka 读取消息失败: %w", err)
		}

		var ev events.Event
		if err := json.Unmarshal(m.Value, &ev); err != nil {
			// 消息格式错误，直接提交，避免阻塞队列
			log.Errorf("无法解析 Kafka 消息: %v, offset: %d", err, m.Offset)
		} else if err := handleWithRetry(ctx, handler, ev, backoff); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			log.Errorf("事件多次处理失败(>=%d)，提交 offset 终止重试: type=%s id=%d err=%v", maxAttempts, ev.Type, ev.EntityID, err)
		}

		if err := r.CommitMessages(ctx, m); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			log.Errorf("提交 Kafka 消息 offset 失败: %v", err)
		}
	}
}

func handleWithRetry(ctx context.Context, handler events.Handler, ev events.Event, backoff time.Duration) error {
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err = handler.Handle(ctx, ev); err == nil {
			return nil
		}
		log.Warnw("event handler failed", "type", ev.Type, "entity_id", ev.EntityID, "attempt", attempt, "error", err)
		if attempt == maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff * time.Duration(attempt)):
		}
	}
	return err
}
