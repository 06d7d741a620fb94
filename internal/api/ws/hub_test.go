package ws

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	zapobserver "go.uber.org/zap/zaptest/observer"

	"github.com/GriffinCanCode/AgentOS/shell/internal/domain/listmodel"
	"github.com/GriffinCanCode/AgentOS/shell/internal/infrastructure/config"
	"github.com/GriffinCanCode/AgentOS/shell/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/shell/internal/shell"
)

func newShell(t *testing.T) *shell.Shell {
	t.Helper()
	cfg := config.Default()
	cfg.Scopes.Categories = 1
	cfg.Scopes.ResultsPerCategory = 2
	cfg.Scopes.AppsCategory = false
	cfg.Launcher.Pinned = []string{"a", "b"}

	s, err := shell.New(cfg, nil, nil, nil, nil)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	go s.Run(ctx)
	t.Cleanup(cancel)
	return s
}

func dial(t *testing.T, hub *Hub, query string) *websocket.Conn {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/ws", hub.HandleConnection)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) Frame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var f Frame
	require.NoError(t, json.Unmarshal(data, &f))
	return f
}

func TestModels(t *testing.T) {
	assert.Equal(t, []string{shell.ModelLauncher, shell.ModelCategories}, models(""))
	assert.Equal(t, []string{"launcher"}, models(" launcher, "))
}

func TestStreamSnapshotAndChanges(t *testing.T) {
	s := newShell(t)
	hub := NewHub(s, nil, nil, 16)
	conn := dial(t, hub, "")

	launcher := readFrame(t, conn)
	assert.Equal(t, FrameSnapshot, launcher.Type)
	assert.Equal(t, shell.ModelLauncher, launcher.Model)
	require.Len(t, launcher.Rows, 2)
	assert.Equal(t, "a", launcher.Rows[0]["appId"])
	assert.Equal(t, uint64(1), launcher.Seq)

	categories := readFrame(t, conn)
	assert.Equal(t, FrameSnapshot, categories.Type)
	assert.Equal(t, shell.ModelCategories, categories.Model)
	require.Len(t, categories.Rows, 1)
	assert.NotContains(t, categories.Rows[0], "results")

	require.NoError(t, s.Pin(context.Background(), "c", 1))

	begin := readFrame(t, conn)
	assert.Equal(t, FrameBegin, begin.Type)
	assert.Equal(t, "insert", begin.Kind)
	assert.Equal(t, 1, begin.First)
	assert.Empty(t, begin.Rows)

	end := readFrame(t, conn)
	assert.Equal(t, FrameEnd, end.Type)
	require.Len(t, end.Rows, 1)
	assert.Equal(t, "c", end.Rows[0]["appId"])

	require.NoError(t, s.Move(context.Background(), 2, 0))
	readFrame(t, conn)
	moved := readFrame(t, conn)
	assert.Equal(t, "move", moved.Kind)
	require.NotNil(t, moved.Dest)
	assert.Equal(t, 0, *moved.Dest)
	assert.Equal(t, "b", moved.Rows[0]["appId"])

	require.NoError(t, s.SetItemCount(context.Background(), "b", 4, false))
	data := readFrame(t, conn)
	assert.Equal(t, FrameData, data.Type)
	assert.Equal(t, []string{"count"}, data.Roles)
	assert.Equal(t, float64(4), data.Rows[0]["count"])
	assert.Greater(t, data.Seq, moved.Seq)
}

func TestUnknownModel(t *testing.T) {
	s := newShell(t)
	conn := dial(t, NewHub(s, nil, nil, 0), "?models=nope")

	f := readFrame(t, conn)
	assert.Equal(t, FrameError, f.Type)
	assert.Equal(t, "nope", f.Model)
}

func TestSlowClientDropped(t *testing.T) {
	metrics := monitoring.NewMetrics()
	hub := NewHub(nil, metrics, nil, 1)
	cl := &client{id: "slow", send: make(chan Frame, 1), closed: make(chan struct{})}

	hub.enqueue(cl, Frame{Type: FrameData})
	hub.enqueue(cl, Frame{Type: FrameData})

	select {
	case <-cl.closed:
	default:
		t.Fatal("slow client was not closed")
	}
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.WSDropped))

	hub.enqueue(cl, Frame{Type: FrameData})
	assert.Len(t, cl.send, 1)
}

func TestClientCount(t *testing.T) {
	s := newShell(t)
	hub := NewHub(s, nil, nil, 0)
	conn := dial(t, hub, "?models=launcher")
	readFrame(t, conn)

	assert.Equal(t, 1, hub.Clients())
	conn.Close()
	require.Eventually(t, func() bool { return hub.Clients() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestDisconnectLogsSessionLength(t *testing.T) {
	s := newShell(t)
	core, logs := zapobserver.New(zap.InfoLevel)
	hub := NewHub(s, nil, zap.New(core), 0)
	conn := dial(t, hub, "?models=launcher")
	readFrame(t, conn)
	conn.Close()

	require.Eventually(t, func() bool {
		return logs.FilterMessage("Client disconnected").Len() == 1
	}, 2*time.Second, 10*time.Millisecond)
	fields := logs.FilterMessage("Client disconnected").All()[0].ContextMap()
	assert.True(t, strings.HasPrefix(fields["client_id"].(string), "ws_"))
	assert.Contains(t, fields, "connected_for")
}

var _ listmodel.Observer = (*observer)(nil)
