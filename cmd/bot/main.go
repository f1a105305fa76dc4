package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"

	"harvestvalley.farm/internal/protocol"
)

func main() {
	var (
		url   = flag.String("url", "ws://localhost:8080/v1/ws", "ws url")
		name  = flag.String("name", "bot", "player name")
		bed   = flag.String("bed", "15,10;16,10;17,10", "tiles to farm, x,y separated by ';'")
		every = flag.Uint64("every", 2, "act on every Nth observation")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[bot] ", log.LstdFlags|log.Lmicroseconds)
	tiles, err := parseBed(*bed)
	if err != nil {
		logger.Fatalf("bed: %v", err)
	}
	if *every == 0 {
		*every = 1
	}

	conn, _, err := websocket.DefaultDialer.Dial(*url, nil)
	if err != nil {
		logger.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	hello := protocol.HelloMsg{
		Type:            protocol.TypeHello,
		ProtocolVersion: protocol.Version,
		PlayerName:      *name,
		Capabilities:    protocol.HelloCapabilities{MaxQueue: 8},
	}
	if err := conn.WriteJSON(hello); err != nil {
		logger.Fatalf("send HELLO: %v", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	go func() {
		<-stop
		_ = conn.Close()
	}()

	f := newFarmer(tiles)
	var seen uint64
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		base, err := protocol.DecodeBase(msg)
		if err != nil {
			continue
		}
		switch base.Type {
		case protocol.TypeWelcome:
			var w protocol.WelcomeMsg
			if err := json.Unmarshal(msg, &w); err != nil {
				continue
			}
			logger.Printf("WELCOME session=%s run=%s", w.SessionID, w.RunID)

		case protocol.TypeAck:
			var ack protocol.AckMsg
			if err := json.Unmarshal(msg, &ack); err == nil {
				logger.Printf("ACK rejected code=%s msg=%s", ack.Code, ack.Message)
			}

		case protocol.TypeObs:
			var obs protocol.ObsMsg
			if err := json.Unmarshal(msg, &obs); err != nil {
				continue
			}
			for _, r := range obs.Results {
				if !r.OK && r.Code != protocol.ErrNoop {
					logger.Printf("%s %s failed: %s %s", r.ID, r.Type, r.Code, r.Message)
				} else if r.Message != "" && r.Type != protocol.ActSetTool && r.Type != protocol.ActSelectSlot {
					logger.Printf("%s", r.Message)
				}
			}
			f.observe(&obs)
			seen++
			if seen%*every != 0 {
				continue
			}
			actions := f.plan(&obs)
			if len(actions) == 0 {
				continue
			}
			act := protocol.ActMsg{
				Type:            protocol.TypeAct,
				ProtocolVersion: protocol.Version,
				Tick:            obs.Tick,
				Actions:         actions,
			}
			if err := conn.WriteJSON(act); err != nil {
				return
			}
		}
	}
}

func parseBed(s string) ([][2]int, error) {
	var out [][2]int
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		xy := strings.Split(part, ",")
		if len(xy) != 2 {
			return nil, fmt.Errorf("bad tile %q", part)
		}
		x, err := strconv.Atoi(strings.TrimSpace(xy[0]))
		if err != nil {
			return nil, fmt.Errorf("bad tile %q: %w", part, err)
		}
		y, err := strconv.Atoi(strings.TrimSpace(xy[1]))
		if err != nil {
			return nil, fmt.Errorf("bad tile %q: %w", part, err)
		}
		out = append(out, [2]int{x, y})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no tiles")
	}
	return out, nil
}
