package ws

import (
	"encoding/json"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"roulette-lab/domain"
	"roulette-lab/runtime"

	"github.com/gorilla/websocket"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	directory := runtime.NewDirectory(log, runtime.Settings{
		Lookahead:       domain.DefaultLookahead,
		TableCapacity:   domain.DefaultTableCapacity,
		StartingBalance: 1000,
		BetLimit:        5,
	})
	coordinator := runtime.NewCoordinator(log, directory, runtime.NewRegistry(), nil)

	server := httptest.NewServer(NewServer(log, coordinator, 16))
	t.Cleanup(server.Close)
	return server
}

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, eventName string, payload any) {
	t.Helper()
	env, err := newEnvelope(eventName, payload)
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(env))
}

func readFrame(t *testing.T, conn *websocket.Conn) Envelope {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var env Envelope
	require.NoError(t, conn.ReadJSON(&env))
	return env
}

func TestServer_SoloFlow(t *testing.T) {
	req := require.New(t)
	server := newTestServer(t)
	conn := dial(t, server)

	// When joining a solo session
	send(t, conn, EventSoloJoin, nil)
	frame := readFrame(t, conn)
	req.Equal(EventSoloJoined, frame.Event)

	var joined SoloJoinedReply
	req.NoError(json.Unmarshal(frame.Data, &joined))
	req.NotEmpty(joined.SessionID)

	// When spinning that session
	send(t, conn, EventSoloSpin, SoloSpinRequest{SessionID: joined.SessionID})
	frame = readFrame(t, conn)
	req.Equal(EventSpinResult, frame.Event)

	var result SpinResultReply
	req.NoError(json.Unmarshal(frame.Data, &result))

	// Then the outcome is a valid pocket
	req.GreaterOrEqual(result.Outcome.Value, 0)
	req.Less(result.Outcome.Value, domain.WheelSize)
	req.Equal(domain.ColorOf(result.Outcome.Value), result.Outcome.Color)
}

func TestServer_SoloSpinUnknownSession(t *testing.T) {
	req := require.New(t)
	server := newTestServer(t)
	conn := dial(t, server)

	send(t, conn, EventSoloSpin, SoloSpinRequest{SessionID: "nope"})
	frame := readFrame(t, conn)

	req.Equal(EventError, frame.Event)
}

func TestServer_TableJoinBroadcast(t *testing.T) {
	req := require.New(t)
	server := newTestServer(t)
	first := dial(t, server)
	second := dial(t, server)

	// Given a first seated player
	send(t, first, EventTableJoin, TableJoinRequest{Name: "alice"})
	frame := readFrame(t, first)
	req.Equal(EventTableJoined, frame.Event)

	var seated TableJoinedReply
	req.NoError(json.Unmarshal(frame.Data, &seated))
	req.Len(seated.Players, 1)
	firstTableID := seated.TableID

	// When a second player joins the same table
	send(t, second, EventTableJoin, TableJoinRequest{Name: "bob"})
	frame = readFrame(t, second)
	req.Equal(EventTableJoined, frame.Event)
	req.NoError(json.Unmarshal(frame.Data, &seated))
	req.Equal(firstTableID, seated.TableID)
	req.Len(seated.Players, 2)

	// Then the first player is notified
	frame = readFrame(t, first)
	req.Equal(EventPlayerJoined, frame.Event)

	var notice PlayerReply
	req.NoError(json.Unmarshal(frame.Data, &notice))
	req.Equal("bob", notice.Player.Name)
}

func TestServer_BetUpdateRequiresTable(t *testing.T) {
	req := require.New(t)
	server := newTestServer(t)
	conn := dial(t, server)

	send(t, conn, EventTableBetUpdate, BetUpdateRequest{Name: "alice", Balance: 900, BetsPlaced: 1})
	frame := readFrame(t, conn)

	req.Equal(EventError, frame.Event)

	var failure ErrorReply
	req.NoError(json.Unmarshal(frame.Data, &failure))
	req.Contains(failure.Message, "no table bound")
}

func TestServer_UnknownEvent(t *testing.T) {
	req := require.New(t)
	server := newTestServer(t)
	conn := dial(t, server)

	send(t, conn, "shuffle", nil)
	frame := readFrame(t, conn)

	req.Equal(EventError, frame.Event)
}
