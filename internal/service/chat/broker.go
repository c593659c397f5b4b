// Package chat 实现房间消息的实时推送层
// 业务写路径入库后把事件交给 Broker，Broker 扇出给本进程的 Hub；
// 单机部署走进程内 channel，多实例部署走 Kafka
package chat

import (
	"huoban_chat_server/pkg/constants"

	"go.uber.org/zap"
)

// RoomBroker 房间事件中转接口
type RoomBroker interface {
	// Publish 发布一条房间事件，slug 标识目标房间
	Publish(roomSlug string, payload []byte) error
	// Start 启动消费循环，收到事件时调用 deliver
	Start(deliver func(roomSlug string, payload []byte))
	// Close 停止消费并释放资源
	Close() error
}

// roomEvent 进程内中转的事件载体
type roomEvent struct {
	slug    string
	payload []byte
}

// ChannelBroker 进程内 channel 实现，单机部署使用
type ChannelBroker struct {
	events chan roomEvent
	done   chan struct{}
}

// NewChannelBroker 创建进程内事件中转
func NewChannelBroker() *ChannelBroker {
	return &ChannelBroker{
		events: make(chan roomEvent, constants.CHANNEL_SIZE),
		done:   make(chan struct{}),
	}
}

// Publish 发布事件，通道满时丢弃并记日志，不阻塞业务写路径
func (b *ChannelBroker) Publish(roomSlug string, payload []byte) error {
	select {
	case b.events <- roomEvent{slug: roomSlug, payload: payload}:
		return nil
	default:
		zap.L().Warn("broadcast channel full, event dropped", zap.String("room", roomSlug))
		return nil
	}
}

// Start 启动消费循环
func (b *ChannelBroker) Start(deliver func(roomSlug string, payload []byte)) {
	go func() {
		for {
			select {
			case event := <-b.events:
				deliver(event.slug, event.payload)
			case <-b.done:
				return
			}
		}
	}()
}

// Close 停止消费循环
func (b *ChannelBroker) Close() error {
	close(b.done)
	return nil
}
