package preview

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/choreo/pkg/animation"
	"github.com/go-drift/choreo/pkg/choreography"
	"github.com/go-drift/choreo/pkg/graphics"
)

func fade(t *testing.T) *choreography.Schedule {
	t.Helper()
	box := choreography.NewTarget("box", graphics.RectFromLTWH(0, 0, 10, 10), choreography.AllCapabilities)
	c := choreography.NewChain()
	c.Animate(box).WithDuration(100 * time.Millisecond).WithCurve(animation.LinearCurve).AlphaTo(0)
	s, err := c.Build()
	require.NoError(t, err)
	return s
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func read(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var m Message
	require.NoError(t, conn.ReadJSON(&m))
	return m
}

func TestEncode(t *testing.T) {
	s := fade(t)
	frame, err := s.Evaluate(0.5)
	require.NoError(t, err)

	m := Encode(frame)
	assert.Equal(t, "frame", m.Type)
	assert.Equal(t, 0.5, m.Fraction)
	assert.InDelta(t, 0.5, m.Values["box.alpha"], 1e-9)
	assert.Equal(t, []string{"1:start"}, m.Events)
}

func TestEncodeColor(t *testing.T) {
	m := Encode(choreography.Frame{Samples: []choreography.Sample{
		{Target: "a", Property: choreography.Color, Value: graphics.RGBA8(255, 0, 0, 255)},
	}})
	assert.Equal(t, "#ffff0000", m.Values["a.color"])
}

func TestWebsocketStreamsFrames(t *testing.T) {
	s := fade(t)
	p := New(s, 60, zerolog.Nop())
	srv := httptest.NewServer(p.Handler())
	defer srv.Close()

	conn := dial(t, srv)
	hello := read(t, conn)
	assert.Equal(t, "schedule", hello.Type)
	assert.Equal(t, 100.0, hello.Total)
	require.Len(t, hello.Windows, 1)
	assert.Equal(t, 1, p.Clients())

	frame, err := s.Evaluate(1)
	require.NoError(t, err)
	p.Broadcast(frame)

	m := read(t, conn)
	assert.Equal(t, "frame", m.Type)
	assert.Equal(t, 1.0, m.Fraction)
	assert.InDelta(t, 0.0, m.Values["box.alpha"], 1e-9)
	assert.Equal(t, []string{"1:start", "1:end"}, m.Events)
}

func TestHealth(t *testing.T) {
	p := New(fade(t), 30, zerolog.Nop())
	rec := httptest.NewRecorder()
	p.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 100.0, body["total_ms"])
	assert.Equal(t, 0.0, body["clients"])
}
