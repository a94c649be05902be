package ws

import (
	"credable/internal/config"
	"credable/internal/decision"
	"credable/internal/model"
	"credable/internal/service"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T, pacing float64, origins string) (*httptest.Server, string) {
	t.Helper()
	svc := service.NewDemoService(config.DemoConfig{Pacing: pacing}, zap.NewNop())
	h := NewHandler(svc, origins, zap.NewNop())
	srv := httptest.NewServer(http.HandlerFunc(h.DemoWS))
	return srv, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestDemoRunStream(t *testing.T) {
	defer goleak.VerifyNone(t)
	srv, url := newTestServer(t, 0, "*")
	defer srv.Close()

	conn := dial(t, url)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: MsgRun, Company: "ACME Traders"}))

	want := decision.Evaluate("ACME Traders")
	trace := decision.Trace(want)
	for i := range trace {
		msg := readMessage(t, conn)
		require.Equal(t, MsgTraceLine, msg.Type)
		var line model.TraceLine
		require.NoError(t, json.Unmarshal(msg.Payload, &line))
		assert.Equal(t, trace[i].Text, line.Text)
	}

	msg := readMessage(t, conn)
	require.Equal(t, MsgDecision, msg.Type)
	var got struct {
		Company  string              `json:"company"`
		Seed     int64               `json:"seed"`
		Takeaway string              `json:"takeaway"`
		Timeline []model.MonthSignal `json:"timeline"`
	}
	require.NoError(t, json.Unmarshal(msg.Payload, &got))
	assert.Equal(t, want.Company, got.Company)
	assert.Equal(t, want.Seed, got.Seed)
	assert.Equal(t, want.Takeaway, got.Takeaway)
	assert.Equal(t, want.Timeline, got.Timeline)
}

func TestDemoPreviewAndUnknown(t *testing.T) {
	defer goleak.VerifyNone(t)
	srv, url := newTestServer(t, 0, "*")
	defer srv.Close()

	conn := dial(t, url)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: MsgPreview, Text: "AC"}))
	msg := readMessage(t, conn)
	assert.Equal(t, MsgPreviewed, msg.Type)
	assert.Contains(t, string(msg.Payload), `"ready":false`)

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: "dance"}))
	msg = readMessage(t, conn)
	assert.Equal(t, MsgError, msg.Type)
	assert.Contains(t, string(msg.Payload), "unknown message type: dance")
}

func TestDemoDisconnectMidRun(t *testing.T) {
	defer goleak.VerifyNone(t)
	// full site pacing: the run is still waiting when the client leaves
	srv, url := newTestServer(t, 1, "*")
	defer srv.Close()

	conn := dial(t, url)
	require.NoError(t, conn.WriteJSON(ClientMessage{Type: MsgRun, Company: "Initech"}))
	msg := readMessage(t, conn)
	assert.Equal(t, MsgTraceLine, msg.Type)
	conn.Close()
}

func TestDemoRejectsForeignOrigin(t *testing.T) {
	defer goleak.VerifyNone(t)
	srv, url := newTestServer(t, 0, "https://credable.in")
	defer srv.Close()

	header := http.Header{"Origin": []string{"https://evil.example"}}
	_, resp, err := websocket.DefaultDialer.Dial(url, header)
	require.Error(t, err)
	require.NotNil(t, resp)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
