package chat

import (
	"sync"
	"time"

	"huoban_chat_server/pkg/constants"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	// writeWait 单次写超时
	writeWait = 10 * time.Second
	// pongWait 读超时，期间未收到 pong 视为连接死亡
	pongWait = 60 * time.Second
	// pingPeriod ping 间隔，必须小于 pongWait
	pingPeriod = (pongWait * 9) / 10
	// maxMessageSize 客户端上行帧大小上限，上行只有心跳
	maxMessageSize = 512
)

// Client 一条 WebSocket 连接
// 连接是推送通道，客户端发消息走 HTTP 接口；
// 上行帧一律当作心跳处理
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte
	roomSlug string
	userUuid string

	// onActive 活跃回调，收到上行帧或 pong 时触发
	onActive func()
	// onClose 断开回调，读循环退出时触发一次
	onClose   func()
	closeOnce sync.Once
	sendOnce  sync.Once
}

// NewClient 创建连接并登记到 Hub
func NewClient(hub *Hub, conn *websocket.Conn, roomSlug, userUuid string, onActive, onClose func()) *Client {
	client := &Client{
		hub:      hub,
		conn:     conn,
		send:     make(chan []byte, constants.CHANNEL_SIZE),
		roomSlug: roomSlug,
		userUuid: userUuid,
		onActive: onActive,
		onClose:  onClose,
	}
	hub.register(client)
	return client
}

// Start 启动读写循环
func (c *Client) Start() {
	go c.writeLoop()
	go c.readLoop()
}

// closeSend 关闭发送通道，触发写循环退出
func (c *Client) closeSend() {
	c.sendOnce.Do(func() {
		close(c.send)
	})
}

// readLoop 消费上行帧并维护读超时
func (c *Client) readLoop() {
	defer func() {
		c.hub.unregister(c)
		_ = c.conn.Close()
		c.closeOnce.Do(c.onClose)
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		c.onActive()
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				zap.L().Warn("ws read failed",
					zap.String("room", c.roomSlug),
					zap.String("user", c.userUuid),
					zap.Error(err))
			}
			return
		}
		c.onActive()
	}
}

// writeLoop 下发事件并定期 ping
func (c *Client) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
