package notification

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_DeliversToRecipientOnly(t *testing.T) {
	hub := NewHub()
	recipient := uuid.New()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = hub.Serve(w, r, recipient)
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer ws.Close()

	require.Eventually(t, func() bool { return hub.Connections(recipient) == 1 }, time.Second, 10*time.Millisecond)

	// Someone else's event is not pushed
	other := sampleEvent()
	require.NoError(t, hub.Notify(context.Background(), other))

	event := sampleEvent()
	event.UserID = recipient
	require.NoError(t, hub.Notify(context.Background(), event))

	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, payload, err := ws.ReadMessage()
	require.NoError(t, err)

	var got Event
	require.NoError(t, json.Unmarshal(payload, &got))
	assert.Equal(t, event.BookingID, got.BookingID)
	assert.Equal(t, recipient, got.UserID)
}

func TestHub_UnregistersOnClientClose(t *testing.T) {
	hub := NewHub()
	recipient := uuid.New()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = hub.Serve(w, r, recipient)
	}))
	defer srv.Close()

	ws, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return hub.Connections(recipient) == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, ws.Close())
	assert.Eventually(t, func() bool { return hub.Connections(recipient) == 0 }, time.Second, 10*time.Millisecond)
}

func serveHub(t *testing.T, hub *Hub, userID uuid.UUID) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = hub.Serve(w, r, userID)
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestHub_ChecksOrigin(t *testing.T) {
	hub := NewHub(WithAllowedOrigins([]string{"https://app.skillconnect.test/"}))
	url := serveHub(t, hub, uuid.New())

	_, resp, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {"https://evil.test"}})
	require.ErrorIs(t, err, websocket.ErrBadHandshake)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	ws, _, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {"https://APP.skillconnect.test"}})
	require.NoError(t, err)
	ws.Close()

	// native clients send no Origin header
	ws, _, err = websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	ws.Close()
}

func TestHub_WildcardOrigin(t *testing.T) {
	hub := NewHub(WithAllowedOrigins([]string{"*"}))
	url := serveHub(t, hub, uuid.New())

	ws, _, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {"https://anywhere.test"}})
	require.NoError(t, err)
	ws.Close()
}

func TestHub_DropsUnresponsiveSocket(t *testing.T) {
	hub := NewHub(WithKeepAlive(200 * time.Millisecond))
	recipient := uuid.New()
	url := serveHub(t, hub, recipient)

	// never reads, so pings go unanswered
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer ws.Close()

	assert.Eventually(t, func() bool { return hub.Connections(recipient) == 0 }, 3*time.Second, 20*time.Millisecond)
}

func TestHub_KeepsResponsiveSocket(t *testing.T) {
	hub := NewHub(WithKeepAlive(200 * time.Millisecond))
	recipient := uuid.New()
	url := serveHub(t, hub, recipient)

	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer ws.Close()

	// reading lets the default ping handler answer with pongs
	go func() {
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()

	require.Eventually(t, func() bool { return hub.Connections(recipient) == 1 }, time.Second, 10*time.Millisecond)
	time.Sleep(600 * time.Millisecond)
	assert.Equal(t, 1, hub.Connections(recipient))
}

func TestHub_NotifyWithoutConnections(t *testing.T) {
	assert.NoError(t, NewHub().Notify(context.Background(), sampleEvent()))
}
