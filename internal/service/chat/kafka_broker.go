package chat

import (
	"context"
	"errors"
	"io"
	"time"

	"huoban_chat_server/internal/config"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// KafkaBroker 基于 Kafka 的事件中转，多实例部署使用
// 事件以房间 slug 为 key 写入主题，各实例消费后推给本机连接
type KafkaBroker struct {
	writer *kafka.Writer
	reader *kafka.Reader
	cancel context.CancelFunc
}

// NewKafkaBroker 创建 Kafka 事件中转
// 各实例使用独立消费组，保证每个实例都收到全量事件
func NewKafkaBroker(cfg config.KafkaConfig, instanceID string) *KafkaBroker {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.HostPort),
		Topic:                  cfg.ChatTopic,
		Balancer:               &kafka.Hash{},
		WriteTimeout:           cfg.Timeout,
		AllowAutoTopicCreation: true,
	}
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     []string{cfg.HostPort},
		Topic:       cfg.ChatTopic,
		GroupID:     "chat_push_" + instanceID,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafka.LastOffset,
	})
	return &KafkaBroker{writer: writer, reader: reader}
}

// Publish 发布事件到 Kafka
func (b *KafkaBroker) Publish(roomSlug string, payload []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := b.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(roomSlug),
		Value: payload,
	})
	if err != nil {
		zap.L().Error("kafka publish failed", zap.String("room", roomSlug), zap.Error(err))
	}
	return err
}

// Start 启动消费循环
func (b *KafkaBroker) Start(deliver func(roomSlug string, payload []byte)) {
	ctx, cancel := context.WithCancel(context.Background())
	b.cancel = cancel
	go func() {
		for {
			message, err := b.reader.ReadMessage(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
					return
				}
				zap.L().Error("kafka read failed", zap.Error(err))
				continue
			}
			deliver(string(message.Key), message.Value)
		}
	}()
}

// Close 停止消费并关闭读写器
func (b *KafkaBroker) Close() error {
	if b.cancel != nil {
		b.cancel()
	}
	readerErr := b.reader.Close()
	writerErr := b.writer.Close()
	if readerErr != nil {
		return readerErr
	}
	return writerErr
}
