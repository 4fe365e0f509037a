// internal/api/events.go
package api

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/personadesk/PersonaDesk/internal/services"
)

// WebSocket 升级器配置
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// 管理端为同源部署，演示环境放开来源检查
		return true
	},
}

const (
	eventWriteWait = 10 * time.Second
	eventPingWait  = 60 * time.Second
	eventSendQueue = 16
)

// eventClient 一个已连接的管理端
type eventClient struct {
	conn *websocket.Conn
	send chan []byte
}

// EventHub 向所有在线管理端广播实体变更事件
type EventHub struct {
	mu      sync.RWMutex
	clients map[*eventClient]bool
}

// NewEventHub 创建事件中心
func NewEventHub() *EventHub {
	return &EventHub{
		clients: make(map[*eventClient]bool),
	}
}

// Broadcast 向所有连接推送变更事件，发送队列满的连接直接丢弃消息
func (h *EventHub) Broadcast(event services.ChangeEvent) {
	payload, err := json.Marshal(gin.H{
		"type":      "entity_change",
		"entity":    event.Entity,
		"action":    event.Action,
		"id":        event.ID,
		"timestamp": time.Now().Format(time.RFC3339),
	})
	if err != nil {
		log.Printf("序列化变更事件失败: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		select {
		case client.send <- payload:
		default:
			// 慢消费者，跳过本条
		}
	}
}

// ClientCount 当前在线连接数
func (h *EventHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients)
}

func (h *EventHub) register(client *eventClient) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true
}

func (h *EventHub) unregister(client *eventClient) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[client] {
		delete(h.clients, client)
		close(client.send)
	}
}

// ServeWS 将HTTP请求升级为WebSocket并接入事件中心
func (h *EventHub) ServeWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket升级失败: %v", err)
		return
	}

	client := &eventClient{
		conn: conn,
		send: make(chan []byte, eventSendQueue),
	}
	h.register(client)

	go h.writePump(client)
	go h.readPump(client)
}

// writePump 将事件写入连接，并周期性发送ping
func (h *EventHub) writePump(client *eventClient) {
	ticker := time.NewTicker(eventPingWait / 2)
	defer func() {
		ticker.Stop()
		client.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-client.send:
			client.conn.SetWriteDeadline(time.Now().Add(eventWriteWait))
			if !ok {
				client.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			client.conn.SetWriteDeadline(time.Now().Add(eventWriteWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump 只负责消费控制帧并感知断开，事件流是单向的
func (h *EventHub) readPump(client *eventClient) {
	defer func() {
		h.unregister(client)
		client.conn.Close()
	}()

	client.conn.SetReadLimit(512)
	client.conn.SetReadDeadline(time.Now().Add(eventPingWait))
	client.conn.SetPongHandler(func(string) error {
		client.conn.SetReadDeadline(time.Now().Add(eventPingWait))
		return nil
	})

	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			return
		}
	}
}
