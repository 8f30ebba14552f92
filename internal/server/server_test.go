package server

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjackodds/internal/engine"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func TestHandleQuery(t *testing.T) {
	conn := NewConnection(nil, engine.DefaultRules(), testLogger(), quartz.NewMock(t), 0)

	t.Run("valid pair", func(t *testing.T) {
		msg := conn.handleQuery(Query{Type: TypeQuery, PlayerTotal: 20, DealerUpcard: 10})
		assert.Equal(t, TypeOptions, msg.Type)
		assert.Equal(t, engine.ActionStand, msg.BestAction)
		assert.Greater(t, msg.StandWin, msg.StandLoss)
	})

	t.Run("out of range upcard is a zero report, not an error", func(t *testing.T) {
		for _, upcard := range []int{0, 11, -3} {
			msg := conn.handleQuery(Query{Type: TypeQuery, PlayerTotal: 18, DealerUpcard: upcard})
			assert.Equal(t, TypeOptions, msg.Type, "upcard=%d", upcard)
			assert.Zero(t, msg.StandWin, "upcard=%d", upcard)
			assert.Zero(t, msg.OptWin, "upcard=%d", upcard)
			assert.Empty(t, msg.BestAction, "upcard=%d", upcard)
		}
	})

	t.Run("calculator reused per upcard", func(t *testing.T) {
		a := conn.handleQuery(Query{Type: TypeQuery, PlayerTotal: 12, DealerUpcard: 6})
		b := conn.handleQuery(Query{Type: TypeQuery, PlayerTotal: 12, DealerUpcard: 6})
		assert.Equal(t, a, b)
		assert.Len(t, conn.calcs, 2) // upcards 10 and 6 from the subtests above
	})
}

func dialTestServer(t *testing.T, s *Server) *websocket.Conn {
	t.Helper()
	httpSrv := httptest.NewServer(s.Handler())
	t.Cleanup(httpSrv.Close)

	url := "ws" + strings.TrimPrefix(httpSrv.URL, "http") + "/ws"
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ws.Close() })
	return ws
}

func TestServerAnswersQueries(t *testing.T) {
	s := NewServer(DefaultConfig(), testLogger(), quartz.NewReal())
	go s.run()
	defer func() { _ = s.Stop() }()

	ws := dialTestServer(t, s)

	require.NoError(t, ws.WriteJSON(Query{Type: TypeQuery, PlayerTotal: 12, DealerUpcard: 6}))

	var msg OptionsMessage
	require.NoError(t, ws.SetReadDeadline(time.Now().Add(5*time.Second)))
	require.NoError(t, ws.ReadJSON(&msg))

	assert.Equal(t, TypeOptions, msg.Type)
	assert.Equal(t, 12, msg.PlayerTotal)
	assert.Equal(t, 6, msg.DealerUpcard)
	assert.Equal(t, engine.ActionHit, msg.BestAction)
	assert.Greater(t, msg.OptWin, msg.StandWin)
}

func TestServerRejectsMalformedMessages(t *testing.T) {
	s := NewServer(DefaultConfig(), testLogger(), quartz.NewReal())
	go s.run()
	defer func() { _ = s.Stop() }()

	ws := dialTestServer(t, s)
	require.NoError(t, ws.SetReadDeadline(time.Now().Add(5*time.Second)))

	require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte("{not json")))
	var errMsg ErrorMessage
	require.NoError(t, ws.ReadJSON(&errMsg))
	assert.Equal(t, TypeError, errMsg.Type)

	require.NoError(t, ws.WriteJSON(map[string]string{"type": "bogus"}))
	require.NoError(t, ws.ReadJSON(&errMsg))
	assert.Equal(t, TypeError, errMsg.Type)
	assert.Contains(t, errMsg.Error, "bogus")
}

func TestServerHealthEndpoint(t *testing.T) {
	s := NewServer(DefaultConfig(), testLogger(), quartz.NewReal())
	httpSrv := httptest.NewServer(s.Handler())
	defer httpSrv.Close()

	resp, err := httpSrv.Client().Get(httpSrv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, 200, resp.StatusCode)
}
