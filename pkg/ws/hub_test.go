package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInitDataSentOnRegister(t *testing.T) {
	h := NewHub(zap.NewNop())
	h.SetInitDataProvider(func() *InitData {
		return &InitData{Vehicles: []string{"2019 Honda Civic"}}
	})
	go h.Run()

	c := NewClient(h, nil)
	c.Register()

	select {
	case data := <-c.send:
		var msg Message
		require.NoError(t, json.Unmarshal(data, &msg))
		assert.Equal(t, MsgTypeInit, msg.Type)
		assert.Contains(t, string(data), "2019 Honda Civic")
	case <-time.After(time.Second):
		t.Fatal("no init message delivered to new client")
	}
}

func TestRegisterWithoutProviderSendsNothing(t *testing.T) {
	h := NewHub(zap.NewNop())
	go h.Run()

	c := NewClient(h, nil)
	c.Register()

	require.Eventually(t, func() bool { return h.ClientCount() == 1 }, time.Second, 10*time.Millisecond)
	assert.Empty(t, c.send)
}

func TestBroadcastEvictsSlowConsumer(t *testing.T) {
	h := NewHub(zap.NewNop())
	go h.Run()

	c := NewClient(h, nil)
	c.Register()
	require.Eventually(t, func() bool { return h.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	// 填满发送缓冲，模拟不消费的客户端
	for i := 0; i < cap(c.send); i++ {
		c.send <- []byte("x")
	}

	// 淘汰慢消费者的同时并发读客户端数，竞态检测下必须干净
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			h.ClientCount()
		}
	}()

	h.Broadcast([]byte("y"))

	require.Eventually(t, func() bool { return h.ClientCount() == 0 }, time.Second, 10*time.Millisecond)
	<-done
}
