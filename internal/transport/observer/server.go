package observer

import (
	"context"
	"log"
	"net"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"harvestvalley.farm/internal/sim/world"
)

// Server is a read-only view of the farm for loopback clients. It joins the
// world as a passive session and re-serves every OBS it receives.
type Server struct {
	world *world.World
	log   *log.Logger

	upgrader websocket.Upgrader
	nextID   atomic.Uint64

	latest atomic.Pointer[[]byte]

	mu   sync.Mutex
	subs map[uint64]chan []byte
}

func NewServer(w *world.World, logger *log.Logger) *Server {
	return &Server{
		world: w,
		log:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
		subs: map[uint64]chan []byte{},
	}
}

// Start joins the world and relays observations until ctx ends.
// It blocks until the world accepts the join.
func (s *Server) Start(ctx context.Context) error {
	out := make(chan []byte, 2)
	resp := make(chan world.JoinResponse, 1)
	select {
	case s.world.Join() <- world.JoinRequest{Name: "observer", Out: out, Resp: resp}:
	case <-ctx.Done():
		return ctx.Err()
	}
	var sessionID string
	select {
	case r := <-resp:
		sessionID = r.Welcome.SessionID
	case <-ctx.Done():
		return ctx.Err()
	}

	go func() {
		defer func() {
			select {
			case s.world.Leave() <- sessionID:
			default:
			}
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case b := <-out:
				s.publish(b)
			}
		}
	}()
	return nil
}

func (s *Server) publish(b []byte) {
	s.latest.Store(&b)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subs {
		sendLatest(ch, b)
	}
}

// Latest is the most recent observation, or nil before the first one.
func (s *Server) Latest() []byte {
	if p := s.latest.Load(); p != nil {
		return *p
	}
	return nil
}

// StateHandler serves the latest OBS as JSON.
func (s *Server) StateHandler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			rw.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if !isLoopbackRemote(r.RemoteAddr) {
			http.Error(rw, "forbidden", http.StatusForbidden)
			return
		}
		b := s.Latest()
		if b == nil {
			http.Error(rw, "no observation yet", http.StatusServiceUnavailable)
			return
		}
		rw.Header().Set("Content-Type", "application/json")
		_, _ = rw.Write(b)
	}
}

// WSHandler streams observations to a spectator. Frames from the client are ignored.
func (s *Server) WSHandler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if !isLoopbackRemote(r.RemoteAddr) {
			http.Error(rw, "forbidden", http.StatusForbidden)
			return
		}
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		id := s.nextID.Add(1)
		ch := make(chan []byte, 2)
		if b := s.Latest(); b != nil {
			ch <- b
		}
		s.mu.Lock()
		s.subs[id] = ch
		s.mu.Unlock()
		defer func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		}()

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		writeErr := make(chan error, 1)
		go func() {
			for {
				select {
				case <-ctx.Done():
					writeErr <- ctx.Err()
					return
				case b := <-ch:
					_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
					if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
						writeErr <- err
						cancel()
						return
					}
				}
			}
		}()

		for {
			_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}

		cancel()
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"), time.Now().Add(time.Second))
		select {
		case <-writeErr:
		case <-time.After(500 * time.Millisecond):
		}
	}
}

func sendLatest(ch chan []byte, b []byte) {
	select {
	case ch <- b:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- b:
	default:
	}
}

func isLoopbackRemote(remoteAddr string) bool {
	host := remoteAddr
	if h, _, err := net.SplitHostPort(remoteAddr); err == nil {
		host = h
	}
	host = strings.TrimPrefix(host, "[")
	host = strings.TrimSuffix(host, "]")
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
