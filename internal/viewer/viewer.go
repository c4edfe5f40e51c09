package viewer

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/zeusync/crowdsim/internal/core/driver"
	"github.com/zeusync/crowdsim/internal/core/events/bus"
	"github.com/zeusync/crowdsim/internal/core/observability/log"
)

//go:embed index.html
var indexHTML []byte

const (
	writeWait  = 2 * time.Second
	sendBuffer = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 16 * 1024,
}

// Message is the frame sent to viewers.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.send)
		_ = c.conn.Close()
	})
}

// Broadcaster streams simulation events to websocket viewers. A slow
// viewer loses frames instead of stalling the simulation.
type Broadcaster struct {
	log log.Log

	mu      sync.Mutex
	clients map[*client]struct{}
	dropped uint64
	subs    []bus.Subscription
}

func NewBroadcaster(l log.Log) *Broadcaster {
	return &Broadcaster{
		log:     l,
		clients: make(map[*client]struct{}),
	}
}

// Attach subscribes the broadcaster to the simulation events on b.
func (br *Broadcaster) Attach(b bus.EventBus) error {
	for _, et := range []string{driver.EventTick, driver.EventConverged, driver.EventStepLimit} {
		sub, err := b.Subscribe(et, br.handle)
		if err != nil {
			return err
		}
		br.mu.Lock()
		br.subs = append(br.subs, sub)
		br.mu.Unlock()
	}
	return nil
}

func (br *Broadcaster) handle(e bus.Event) error {
	data, err := json.Marshal(Message{Type: e.Type(), Data: e.Data()})
	if err != nil {
		return err
	}
	br.broadcast(data)
	return nil
}

func (br *Broadcaster) broadcast(msg []byte) {
	br.mu.Lock()
	defer br.mu.Unlock()
	for c := range br.clients {
		select {
		case c.send <- msg:
		default:
			br.dropped++
		}
	}
}

// Clients returns the number of connected viewers.
func (br *Broadcaster) Clients() int {
	br.mu.Lock()
	defer br.mu.Unlock()
	return len(br.clients)
}

// Dropped returns how many frames were skipped for slow viewers.
func (br *Broadcaster) Dropped() uint64 {
	br.mu.Lock()
	defer br.mu.Unlock()
	return br.dropped
}

// Handler serves the viewer page on / and the event stream on /ws.
func (br *Broadcaster) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", br.handleWebSocket)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(indexHTML)
	})
	return mux
}

func (br *Broadcaster) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		br.log.Warn("websocket upgrade failed", log.Error(err))
		return
	}
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}

	br.mu.Lock()
	br.clients[c] = struct{}{}
	br.mu.Unlock()
	br.log.Debug("viewer connected", log.String("remote", conn.RemoteAddr().String()))

	go br.writeLoop(c)
	br.readLoop(c)
}

// readLoop discards client frames; it returns when the connection drops.
func (br *Broadcaster) readLoop(c *client) {
	defer br.remove(c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (br *Broadcaster) writeLoop(c *client) {
	for msg := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			br.remove(c)
			return
		}
	}
}

func (br *Broadcaster) remove(c *client) {
	br.mu.Lock()
	_, ok := br.clients[c]
	delete(br.clients, c)
	br.mu.Unlock()
	if ok {
		br.log.Debug("viewer disconnected", log.String("remote", c.conn.RemoteAddr().String()))
	}
	c.close()
}

// Close unsubscribes from the bus and disconnects every viewer.
func (br *Broadcaster) Close() error {
	br.mu.Lock()
	subs := br.subs
	br.subs = nil
	clients := make([]*client, 0, len(br.clients))
	for c := range br.clients {
		clients = append(clients, c)
	}
	br.clients = make(map[*client]struct{})
	br.mu.Unlock()

	var all error
	for _, s := range subs {
		all = errors.Join(all, s.Cancel())
	}
	for _, c := range clients {
		c.close()
	}
	return all
}

// Server runs the broadcaster over HTTP.
type Server struct {
	broadcaster *Broadcaster
	http        *http.Server
	log         log.Log
}

func NewServer(addr string, br *Broadcaster, l log.Log) *Server {
	return &Server{
		broadcaster: br,
		http:        &http.Server{Addr: addr, Handler: br.Handler(), ReadHeaderTimeout: 5 * time.Second},
		log:         l,
	}
}

// Serve blocks until ctx is done or the listener fails.
func (s *Server) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("viewer listening", log.String("addr", s.http.Addr))
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.broadcaster.Close()
		return s.http.Shutdown(shutdownCtx)
	}
}
