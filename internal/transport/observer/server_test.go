package observer

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"harvestvalley.farm/internal/protocol"
	"harvestvalley.farm/internal/sim/catalogs"
	"harvestvalley.farm/internal/sim/tuning"
	"harvestvalley.farm/internal/sim/world"
	"harvestvalley.farm/internal/sim/world/terrain/gen"
)

func startObserver(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	cats, err := catalogs.Default()
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := world.ConfigFromTuning(tuning.Defaults(), gen.Layout{})
	if err != nil {
		t.Fatal(err)
	}
	cfg.ObsEveryTicks = 1
	w, err := world.New(cfg, cats)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = w.Run(ctx) }()

	s := NewServer(w, nil)
	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/state", s.StateHandler())
	mux.HandleFunc("/ws", s.WSHandler())
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return s, srv
}

func TestStateServesLatestObservation(t *testing.T) {
	s, srv := startObserver(t)
	deadline := time.Now().Add(5 * time.Second)
	for s.Latest() == nil {
		if time.Now().After(deadline) {
			t.Fatalf("no observation relayed")
		}
		time.Sleep(10 * time.Millisecond)
	}

	resp, err := http.Get(srv.URL + "/state")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: %d", resp.StatusCode)
	}
	b, _ := io.ReadAll(resp.Body)
	var obs protocol.ObsMsg
	if err := json.Unmarshal(b, &obs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if obs.Type != protocol.TypeObs || len(obs.Animals) != 3 {
		t.Fatalf("obs: type=%s animals=%d", obs.Type, len(obs.Animals))
	}
}

func TestSpectatorStream(t *testing.T) {
	_, srv := startObserver(t)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	var last uint64
	for i := 0; i < 3; i++ {
		_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		_, b, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		var obs protocol.ObsMsg
		if err := json.Unmarshal(b, &obs); err != nil {
			t.Fatal(err)
		}
		if i > 0 && obs.Tick < last {
			t.Fatalf("ticks went backwards: %d after %d", obs.Tick, last)
		}
		last = obs.Tick
	}
}

func TestIsLoopbackRemote(t *testing.T) {
	cases := map[string]bool{
		"127.0.0.1:5000": true,
		"[::1]:80":       true,
		"10.0.0.2:80":    false,
		"garbage":        false,
	}
	for in, want := range cases {
		if got := isLoopbackRemote(in); got != want {
			t.Fatalf("%s: got %v want %v", in, got, want)
		}
	}
}
