// Package preview streams a looping choreography to websocket clients.
package preview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/go-drift/choreo/pkg/animation"
	"github.com/go-drift/choreo/pkg/choreography"
	"github.com/go-drift/choreo/pkg/graphics"
)

// Message is one websocket payload. The first message on a connection has
// type "schedule"; every later one is a "frame".
type Message struct {
	Type     string                    `json:"type"`
	Total    float64                   `json:"total_ms,omitempty"`
	Windows  []choreography.WindowInfo `json:"windows,omitempty"`
	Fraction float64                   `json:"fraction"`
	Values   map[string]any            `json:"values,omitempty"`
	Events   []string                  `json:"events,omitempty"`
}

// Server serves /ws and /health for one schedule.
type Server struct {
	schedule *choreography.Schedule
	fps      int
	log      zerolog.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]bool
	frames  uint64
	started time.Time
}

// New creates a server for s stepping fps frames per second.
func New(s *choreography.Schedule, fps int, log zerolog.Logger) *Server {
	return &Server{
		schedule: s,
		fps:      fps,
		log:      log,
		upgrader: websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
		clients:  map[*websocket.Conn]bool{},
		started:  time.Now(),
	}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Run serves on addr and plays the schedule in a loop until ctx is done.
func (s *Server) Run(ctx context.Context, addr string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	player := choreography.NewPlayer(s.schedule, s.Broadcast)
	defer player.Dispose()
	player.Loop(true)
	player.Play()

	frames := make(chan struct{})
	go func() {
		defer close(frames)
		_ = animation.RunFrames(ctx, s.fps)
	}()
	defer func() {
		cancel()
		<-frames
	}()

	srv := &http.Server{Addr: addr, Handler: s.Handler()}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.log.Info().Str("addr", addr).Int("fps", s.fps).Dur("total", s.schedule.TotalDuration()).Msg("preview listening")

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdown, stop := context.WithTimeout(context.Background(), 2*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdown); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Broadcast sends f to every connected client.
func (s *Server) Broadcast(f choreography.Frame) {
	data, err := json.Marshal(Encode(f))
	if err != nil {
		s.log.Error().Err(err).Msg("encode frame")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames++
	for conn := range s.clients {
		_ = conn.SetWriteDeadline(time.Now().Add(time.Second))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			s.log.Debug().Err(err).Str("remote", conn.RemoteAddr().String()).Msg("drop client")
			delete(s.clients, conn)
			conn.Close()
		}
	}
}

// Clients returns the number of connected clients.
func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("upgrade failed")
		return
	}
	hello := Message{
		Type:    "schedule",
		Total:   float64(s.schedule.TotalDuration()) / float64(time.Millisecond),
		Windows: s.schedule.Describe(),
	}

	s.mu.Lock()
	err = conn.WriteJSON(hello)
	if err == nil {
		s.clients[conn] = true
	}
	s.mu.Unlock()
	if err != nil {
		conn.Close()
		return
	}
	s.log.Debug().Str("remote", conn.RemoteAddr().String()).Msg("client connected")

	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.clients, conn)
			s.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	resp := map[string]any{
		"frames":   s.frames,
		"clients":  len(s.clients),
		"uptime_s": time.Since(s.started).Seconds(),
		"total_ms": s.schedule.TotalDurationMs(),
	}
	s.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// Encode converts a frame into its wire form. Values are keyed
// "target.property"; a later sample for the same key wins.
func Encode(f choreography.Frame) Message {
	m := Message{Type: "frame", Fraction: f.Fraction}
	if len(f.Samples) > 0 {
		m.Values = make(map[string]any, len(f.Samples))
	}
	for _, s := range f.Samples {
		m.Values[fmt.Sprintf("%s.%s", s.Target, s.Property)] = wireValue(s.Value)
	}
	for _, ev := range f.Events {
		if ev.Kind == choreography.EventTrigger {
			m.Events = append(m.Events, fmt.Sprintf("%d:%s#%d", ev.Segment, ev.Kind, ev.Trigger))
			continue
		}
		m.Events = append(m.Events, fmt.Sprintf("%d:%s", ev.Segment, ev.Kind))
	}
	return m
}

func wireValue(v any) any {
	switch v := v.(type) {
	case graphics.Color:
		return v.String()
	default:
		return v
	}
}
