package ws

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"harvestvalley.farm/internal/protocol"
	"harvestvalley.farm/internal/sim/world"
)

type Server struct {
	world *world.World
	log   *log.Logger

	upgrader websocket.Upgrader
}

func NewServer(w *world.World, logger *log.Logger) *Server {
	return &Server{
		world: w,
		log:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  16 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
	}
}

func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		sessionID, out := s.handshake(r.Context(), conn)
		if sessionID == "" {
			return
		}

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		// ACKs for rejected messages go through the same writer as OBS.
		acks := make(chan []byte, 4)

		go func() {
			for {
				var b []byte
				select {
				case <-ctx.Done():
					return
				case b = <-acks:
				case b = <-out:
				}
				_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
				if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
					cancel()
					return
				}
			}
		}()

		for {
			_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
			_, msg, err := conn.ReadMessage()
			if err != nil {
				cancel()
				break
			}
			act, code, reason := decodeAct(msg)
			if code != "" {
				s.reject(acks, code, reason)
				continue
			}
			select {
			case s.world.Inbox() <- world.ActionEnvelope{SessionID: sessionID, Act: act}:
			default:
				s.reject(acks, protocol.ErrWorldBusy, "inbox full")
			}
		}

		select {
		case s.world.Leave() <- sessionID:
		case <-time.After(time.Second):
			s.logf("leave for %s dropped", sessionID)
		}
	}
}

// decodeAct validates one client frame. A non-empty code means the frame is rejected.
func decodeAct(msg []byte) (act protocol.ActMsg, code, reason string) {
	base, err := protocol.DecodeBase(msg)
	if err != nil {
		return act, protocol.ErrProtoBadRequest, "invalid json"
	}
	if base.Type != protocol.TypeAct {
		return act, protocol.ErrProtoBadRequest, "expected ACT, got " + base.Type
	}
	if base.ProtocolVersion != protocol.Version {
		return act, protocol.ErrProtoBadRequest, "bad protocol_version"
	}
	if err := protocol.Validate(msg); err != nil {
		return act, protocol.ErrProtoBadRequest, err.Error()
	}
	if err := json.Unmarshal(msg, &act); err != nil {
		return act, protocol.ErrProtoBadRequest, err.Error()
	}
	return act, "", ""
}

func (s *Server) reject(acks chan []byte, code, reason string) {
	b, err := json.Marshal(protocol.AckMsg{
		Type:            protocol.TypeAck,
		ProtocolVersion: protocol.Version,
		Accepted:        false,
		Code:            code,
		Message:         reason,
		ServerTick:      s.world.CurrentTick(),
	})
	if err != nil {
		return
	}
	select {
	case acks <- b:
	default:
	}
}

func (s *Server) handshake(ctx context.Context, conn *websocket.Conn) (sessionID string, out chan []byte) {
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return "", nil
	}

	base, err := protocol.DecodeBase(msg)
	if err != nil || base.Type != protocol.TypeHello {
		closeWith(conn, "expected HELLO")
		return "", nil
	}
	if err := protocol.Validate(msg); err != nil {
		closeWith(conn, "bad HELLO: "+err.Error())
		return "", nil
	}
	var hello protocol.HelloMsg
	if err := json.Unmarshal(msg, &hello); err != nil {
		return "", nil
	}
	if hello.ProtocolVersion != protocol.Version {
		closeWith(conn, "bad protocol_version")
		return "", nil
	}
	name := strings.TrimSpace(hello.PlayerName)
	if name == "" {
		name = "farmer"
	}

	maxQ := hello.Capabilities.MaxQueue
	if maxQ <= 0 {
		maxQ = 8
	}
	if maxQ > 64 {
		maxQ = 64
	}
	out = make(chan []byte, maxQ)

	respCh := make(chan world.JoinResponse, 1)
	select {
	case s.world.Join() <- world.JoinRequest{Name: name, Out: out, Resp: respCh}:
	case <-ctx.Done():
		return "", nil
	}
	var resp world.JoinResponse
	select {
	case resp = <-respCh:
	case <-ctx.Done():
		// The world already has the request; release the session it registers.
		go s.abandonJoin(respCh)
		return "", nil
	}

	if err := writeJSON(conn, resp.Welcome); err != nil {
		return "", nil
	}
	s.logf("session %s connected as %q", resp.Welcome.SessionID, name)
	return resp.Welcome.SessionID, out
}

// abandonJoin waits for a join nobody is listening for and leaves it.
func (s *Server) abandonJoin(respCh <-chan world.JoinResponse) {
	select {
	case resp := <-respCh:
		select {
		case s.world.Leave() <- resp.Welcome.SessionID:
		case <-time.After(5 * time.Second):
			s.logf("session %s: leave after abandoned join timed out", resp.Welcome.SessionID)
		}
	case <-time.After(5 * time.Second):
	}
}

func closeWith(conn *websocket.Conn, reason string) {
	_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, reason), time.Now().Add(time.Second))
}

func writeJSON(conn *websocket.Conn, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	return conn.WriteMessage(websocket.TextMessage, b)
}

func (s *Server) logf(format string, args ...any) {
	if s.log != nil {
		s.log.Printf(format, args...)
	}
}
