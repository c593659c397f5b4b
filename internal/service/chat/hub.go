package chat

import (
	"sync"

	"huoban_chat_server/internal/infrastructure/metrics"

	"go.uber.org/zap"
)

// Hub 管理本进程的全部 WebSocket 连接，按房间分组扇出事件
// 实现 service.MessagePublisher，业务层入库后经 Broker 推到这里
type Hub struct {
	mu     sync.RWMutex
	rooms  map[string]map[*Client]struct{}
	broker RoomBroker
}

// NewHub 创建连接管理器
func NewHub(broker RoomBroker) *Hub {
	return &Hub{
		rooms:  make(map[string]map[*Client]struct{}),
		broker: broker,
	}
}

// Start 启动事件消费循环
func (h *Hub) Start() {
	h.broker.Start(h.deliver)
}

// Close 停止事件消费并断开全部连接
func (h *Hub) Close() error {
	h.mu.Lock()
	for _, clients := range h.rooms {
		for client := range clients {
			client.closeSend()
		}
	}
	h.rooms = make(map[string]map[*Client]struct{})
	h.mu.Unlock()
	return h.broker.Close()
}

// Publish 发布房间事件
func (h *Hub) Publish(roomSlug string, payload []byte) {
	_ = h.broker.Publish(roomSlug, payload)
}

// register 登记连接
func (h *Hub) register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	clients, ok := h.rooms[client.roomSlug]
	if !ok {
		clients = make(map[*Client]struct{})
		h.rooms[client.roomSlug] = clients
	}
	clients[client] = struct{}{}
	metrics.WsConnections.Inc()
	zap.L().Info("ws client registered",
		zap.String("room", client.roomSlug),
		zap.String("user", client.userUuid))
}

// unregister 注销连接，房间空了顺带清理分组
func (h *Hub) unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	clients, ok := h.rooms[client.roomSlug]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	if len(clients) == 0 {
		delete(h.rooms, client.roomSlug)
	}
	client.closeSend()
	metrics.WsConnections.Dec()
	zap.L().Info("ws client unregistered",
		zap.String("room", client.roomSlug),
		zap.String("user", client.userUuid))
}

// deliver 把事件扇出给房间内的全部连接
// 发送缓冲满的慢连接丢弃本条事件，不拖住其他连接
func (h *Hub) deliver(roomSlug string, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.rooms[roomSlug] {
		select {
		case client.send <- payload:
		default:
			zap.L().Warn("slow ws client, event dropped",
				zap.String("room", roomSlug),
				zap.String("user", client.userUuid))
		}
	}
}
