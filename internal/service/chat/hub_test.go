package chat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient 构造不带底层连接的客户端，只用于扇出测试
func newTestClient(hub *Hub, room, user string) *Client {
	client := &Client{
		hub:      hub,
		send:     make(chan []byte, 4),
		roomSlug: room,
		userUuid: user,
		onActive: func() {},
		onClose:  func() {},
	}
	hub.register(client)
	return client
}

func TestHubFanOut(t *testing.T) {
	hub := NewHub(NewChannelBroker())
	hub.Start()
	defer hub.Close()

	clientA := newTestClient(hub, "general", "U1")
	clientB := newTestClient(hub, "general", "U2")
	other := newTestClient(hub, "elsewhere", "U3")

	hub.Publish("general", []byte("hello"))

	for _, client := range []*Client{clientA, clientB} {
		select {
		case payload := <-client.send:
			assert.Equal(t, "hello", string(payload))
		case <-time.After(time.Second):
			t.Fatalf("client %s did not receive event", client.userUuid)
		}
	}

	select {
	case payload := <-other.send:
		t.Fatalf("client in another room received %q", payload)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubUnregisterStopsDelivery(t *testing.T) {
	hub := NewHub(NewChannelBroker())
	hub.Start()
	defer hub.Close()

	client := newTestClient(hub, "general", "U1")
	hub.unregister(client)

	hub.Publish("general", []byte("after unregister"))

	// send 通道已关闭，不应再收到数据
	select {
	case payload, ok := <-client.send:
		require.False(t, ok, "unexpected payload %q", payload)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHubSlowClientDoesNotBlock(t *testing.T) {
	hub := NewHub(NewChannelBroker())
	hub.Start()
	defer hub.Close()

	slow := &Client{
		hub:      hub,
		send:     make(chan []byte), // 无缓冲且无人消费
		roomSlug: "general",
		userUuid: "U-slow",
		onActive: func() {},
		onClose:  func() {},
	}
	hub.register(slow)
	fast := newTestClient(hub, "general", "U-fast")

	hub.Publish("general", []byte("event"))

	select {
	case payload := <-fast.send:
		assert.Equal(t, "event", string(payload))
	case <-time.After(time.Second):
		t.Fatal("fast client blocked by slow client")
	}
}

func TestChannelBroker(t *testing.T) {
	broker := NewChannelBroker()
	received := make(chan string, 1)
	broker.Start(func(roomSlug string, payload []byte) {
		received <- roomSlug + ":" + string(payload)
	})
	defer broker.Close()

	require.NoError(t, broker.Publish("general", []byte("ping")))

	select {
	case got := <-received:
		assert.Equal(t, "general:ping", got)
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
}
