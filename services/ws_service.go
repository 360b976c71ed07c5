package service

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"quicknotes-server/models"
)

const (
	// eventBuffer is how many events a client may fall behind before it is dropped.
	eventBuffer  = 16
	writeTimeout = 10 * time.Second
)

// WSConn is the part of a websocket connection the hub writes to.
type WSConn interface {
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

type eventClient struct {
	id     string
	send   chan []byte
	done   chan struct{}
	closed bool
}

// WebSocketService fans note events out to every subscribed connection.
// Each connection has its own writer goroutine so a slow client never
// holds up Publish.
type WebSocketService struct {
	mu      sync.Mutex
	clients map[WSConn]*eventClient
}

func NewWebSocketService() *WebSocketService {
	return &WebSocketService{clients: make(map[WSConn]*eventClient)}
}

// Subscribe registers conn and returns the id assigned to it.
func (s *WebSocketService) Subscribe(conn WSConn) string {
	client := &eventClient{
		id:   uuid.NewString(),
		send: make(chan []byte, eventBuffer),
		done: make(chan struct{}),
	}

	s.mu.Lock()
	s.clients[conn] = client
	s.mu.Unlock()

	go s.writeLoop(conn, client)
	logrus.Debugf("Event client %s subscribed (%d connected)", client.id, s.ClientCount())
	return client.id
}

// RemoveClient unregisters conn and waits for its writer to stop, so the
// caller may release the connection afterwards.
func (s *WebSocketService) RemoveClient(conn WSConn) {
	s.mu.Lock()
	client, ok := s.clients[conn]
	if ok {
		client.stop()
	}
	s.mu.Unlock()

	if ok {
		<-client.done
		logrus.Debugf("Event client %s removed", client.id)
	}
}

// ClientCount reports the clients still receiving events.
func (s *WebSocketService) ClientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, client := range s.clients {
		if !client.closed {
			n++
		}
	}
	return n
}

// Publish queues event for all clients without blocking. A client whose
// queue is full is closed and dropped.
func (s *WebSocketService) Publish(event models.NoteEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		logrus.WithError(err).Error("Encoding note event")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for conn, client := range s.clients {
		if client.closed {
			continue
		}
		select {
		case client.send <- data:
		default:
			logrus.Warnf("Dropping event client %s: too far behind", client.id)
			client.stop()
			// Unblocks a writer stuck on a stalled connection.
			_ = conn.Close()
		}
	}
}

func (s *WebSocketService) writeLoop(conn WSConn, client *eventClient) {
	defer func() {
		s.mu.Lock()
		delete(s.clients, conn)
		s.mu.Unlock()
		close(client.done)
	}()

	for data := range client.send {
		err := conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err == nil {
			err = conn.WriteMessage(websocket.TextMessage, data)
		}
		if err != nil {
			logrus.WithError(err).Warnf("Dropping event client %s", client.id)
			s.mu.Lock()
			client.stop()
			s.mu.Unlock()
			_ = conn.Close()
			// Discard whatever was queued before stop.
			for range client.send {
			}
			return
		}
	}
}

// stop closes the client's queue once. Callers hold the hub lock.
func (c *eventClient) stop() {
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}
