/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Seednode/flames/games/flames"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(h *Hub) *Client {
	c := &Client{send: make(chan any, 8)}
	h.clients[c] = true

	return c
}

func next(t *testing.T, c *Client) any {
	t.Helper()

	select {
	case msg, ok := <-c.send:
		require.True(t, ok, "send channel closed")
		return msg
	case <-time.After(time.Second):
		t.Fatal("no message")
		return nil
	}
}

func TestHubPlay(t *testing.T) {
	t.Parallel()

	cfg := &Config{}
	h := newHub("game", nil)
	player := newTestClient(h)
	player.base = "https://example.com/love"
	watcher := newTestClient(h)

	h.handlePlay(cfg, request{client: player, msg: ClientMessage{Type: "play", Name1: "Amit", Name2: "Sara"}})

	for _, c := range []*Client{player, watcher} {
		round, ok := next(t, c).(RoundMessage)
		require.True(t, ok)
		assert.Equal(t, "round", round.Type)
		assert.Equal(t, flames.Marriage, round.Round.Round.Elimination.Final)
		assert.Equal(t, flames.WebSharePayload{
			Title: "FLAMES Result: Marriage",
			Text:  "Amit & Sara - Marriage\n\nWedding bells might be ringing! 💒",
			URL:   "https://example.com/love/result?a=Amit&b=Sara",
		}, round.Round.WebShare)
		assert.Equal(t, "flames-result-Amit-Sara.png", round.Round.FileName)

		state, ok := next(t, c).(StateMessage)
		require.True(t, ok)
		assert.Equal(t, Animating, state.State)
		assert.Equal(t, 2, state.Clients)
	}

	// A second submission during the reveal only answers the sender.
	h.handlePlay(cfg, request{client: watcher, msg: ClientMessage{Type: "play", Name1: "Bob", Name2: "Alice"}})

	busy, ok := next(t, watcher).(SimpleMessage)
	require.True(t, ok)
	assert.Equal(t, "busy", busy.Type)
	assert.Empty(t, player.send)

	h.handleControl(cfg, request{client: watcher, msg: ClientMessage{Type: "finish"}})

	for _, c := range []*Client{player, watcher} {
		state, ok := next(t, c).(StateMessage)
		require.True(t, ok)
		assert.Equal(t, Idle, state.State)
	}
}

func TestHubRejectsBadNames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name1, name2 string
		field        string
	}{
		{"", "Sara", "name1"},
		{"Amit", "  ", "name2"},
		{"Steve", "steve", "names"},
	}

	for _, tt := range tests {
		h := newHub("game", newMetrics())
		c := newTestClient(h)

		h.handlePlay(&Config{}, request{client: c, msg: ClientMessage{Type: "play", Name1: tt.name1, Name2: tt.name2}})

		rejected, ok := next(t, c).(RejectedMessage)
		require.True(t, ok)
		assert.Equal(t, tt.field, rejected.Field)
		assert.NotEmpty(t, rejected.Message)
		assert.Equal(t, Idle, h.rounds.State())
	}
}

func TestHubDropsSlowClients(t *testing.T) {
	t.Parallel()

	h := newHub("game", nil)
	slow := &Client{send: make(chan any)}
	h.clients[slow] = true

	h.mu.Lock()
	h.broadcastStateLocked()
	h.mu.Unlock()

	assert.NotContains(t, h.clients, slow)

	_, ok := <-slow.send
	assert.False(t, ok)
}

func TestGameManager(t *testing.T) {
	t.Parallel()

	gm := newGameManager(0, newMetrics())
	t.Cleanup(gm.stop)

	seen := map[string]bool{}
	for range 50 {
		id := gm.newGameID()
		assert.Len(t, id, 8)
		assert.False(t, seen[id])
		seen[id] = true
	}

	cfg := &Config{}
	a := gm.getHub(cfg, "one")
	assert.Same(t, a, gm.getHub(cfg, "one"))
	assert.NotSame(t, a, gm.getHub(cfg, "two"))

	a.mu.Lock()
	a.lastActive = time.Now().Add(-2 * time.Hour)
	a.mu.Unlock()

	gm.reap(time.Now().Add(-time.Hour))

	gm.mu.Lock()
	_, stillThere := gm.hubs["one"]
	_, other := gm.hubs["two"]
	gm.mu.Unlock()

	assert.False(t, stillThere)
	assert.True(t, other)

	select {
	case <-a.done:
	case <-time.After(time.Second):
		t.Fatal("reaped hub was not stopped")
	}
}

type envelope struct {
	Type string `json:"type"`
}

func readUntil(t *testing.T, conn *websocket.Conn, typ string, v any) {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	for {
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)

		var env envelope
		require.NoError(t, json.Unmarshal(data, &env))

		if env.Type == typ {
			if v != nil {
				require.NoError(t, json.Unmarshal(data, v))
			}
			return
		}
	}
}

func dial(t *testing.T, srv *httptest.Server, gameID string) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/flames/" + gameID + "/ws"

	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	_ = resp.Body.Close()
	t.Cleanup(func() { _ = conn.Close() })

	return conn
}

func TestSessionOverWebsocket(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(newTestRouter(t, &Config{}))
	t.Cleanup(srv.Close)

	conn := dial(t, srv, "wsgame01")

	var info SessionInfoMessage
	readUntil(t, conn, "session_info", &info)
	assert.Equal(t, "wsgame01", info.GameID)
	assert.Equal(t, Idle, info.State)
	assert.Nil(t, info.Last)

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: "play", Name1: "", Name2: "Sara"}))

	var rejected RejectedMessage
	readUntil(t, conn, "rejected", &rejected)
	assert.Equal(t, "name1", rejected.Field)
	assert.Equal(t, "Please enter both names.", rejected.Message)

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: "play", Name1: "Amit", Name2: "Sara"}))

	var round RoundMessage
	readUntil(t, conn, "round", &round)
	assert.NotEmpty(t, round.Round.ID)
	assert.Equal(t, 6, round.Round.Round.Cancellation.Remaining)
	assert.Equal(t, "Marriage", round.Round.Round.Relationship.Name)
	assert.Equal(t, srv.URL+"/result?a=Amit&b=Sara", round.Round.WebShare.URL)
	assert.Equal(t, "flames-result-Amit-Sara.png", round.Round.FileName)

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: "play", Name1: "Bob", Name2: "Alice"}))
	readUntil(t, conn, "busy", nil)

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: "finish", RoundID: round.Round.ID}))

	var state StateMessage
	readUntil(t, conn, "state", &state)
	assert.Equal(t, Idle, state.State)

	late := dial(t, srv, "wsgame01")

	var lateInfo SessionInfoMessage
	readUntil(t, late, "session_info", &lateInfo)
	require.NotNil(t, lateInfo.Last)
	assert.Equal(t, round.Round.ID, lateInfo.Last.ID)
	assert.Equal(t, 2, lateInfo.Clients)
}
