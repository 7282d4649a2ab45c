/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Shared FLAMES sessions
//
// Everyone connected to /flames/:gameid watches the same reveal. Any client
// may submit a pair of names; the server computes the whole round at once
// and broadcasts it, and each browser replays the strikes and the counting
// at its own pace.
//
// Features:
// - WebSockets per game ID: /path/:gameid and /path/:gameid/ws
// - One round in flight per session; submissions during a reveal get "busy"
// - A round is released by "finish" or "reset", or when the last client leaves
// - Late joiners receive the last round in session_info
// - Games auto-reaped after configurable idle timeout
// - Random 8-char game IDs via crypto/rand, with server-side collision check
// - In-browser QR button to share the current session, backed by go-qrcode

package main

import (
	"crypto/rand"
	_ "embed"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

// Messages coming from clients
type ClientMessage struct {
	Type    string `json:"type"`               // "play", "finish", "reset"
	Name1   string `json:"name1,omitempty"`    // play
	Name2   string `json:"name2,omitempty"`    // play
	RoundID string `json:"round_id,omitempty"` // finish
}

// SessionInfoMessage is sent immediately on connect.
type SessionInfoMessage struct {
	Type      string       `json:"type"` // "session_info"
	GameID    string       `json:"game_id"`
	CreatedAt time.Time    `json:"created_at"`
	State     RoundState   `json:"state"`
	Clients   int          `json:"clients"`
	Last      *PlayedRound `json:"last,omitempty"`
}

// RoundMessage carries a fully computed round to every client.
type RoundMessage struct {
	Type  string      `json:"type"` // "round"
	Round PlayedRound `json:"round"`
}

// Sent to a single client when its names cannot be played
type RejectedMessage struct {
	Type    string `json:"type"`    // "rejected"
	Field   string `json:"field"`   // "name1", "name2" or "names"
	Message string `json:"message"` // user-facing text
}

// SimpleMessage is for generic notifications ("busy").
type SimpleMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// StateMessage informs clients that the session changed state.
type StateMessage struct {
	Type    string     `json:"type"` // "state"
	State   RoundState `json:"state"`
	Clients int        `json:"clients"`
}

type Client struct {
	conn *websocket.Conn
	send chan any
	base string // site root this client connected through
}

type request struct {
	client *Client
	msg    ClientMessage
}

type Hub struct {
	id      string
	clients map[*Client]bool

	register chan *Client
	unreg    chan *Client
	plays    chan request
	controls chan request
	done     chan struct{}

	mu sync.RWMutex

	createdAt  time.Time
	lastActive time.Time
	rounds     *RoundController
	metrics    *Metrics
}

func newHub(gameID string, m *Metrics) *Hub {
	now := time.Now()
	return &Hub{
		id:         gameID,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unreg:      make(chan *Client),
		plays:      make(chan request),
		controls:   make(chan request),
		done:       make(chan struct{}),
		createdAt:  now,
		lastActive: now,
		rounds:     newRoundController(),
		metrics:    m,
	}
}

func (h *Hub) run(cfg *Config) {
	for {
		select {
		case <-h.done:
			return

		case c := <-h.register:
			h.mu.Lock()
			h.lastActive = time.Now()
			h.clients[c] = true

			h.sendLocked(c, SessionInfoMessage{
				Type:      "session_info",
				GameID:    h.id,
				CreatedAt: h.createdAt,
				State:     h.rounds.State(),
				Clients:   len(h.clients),
				Last:      h.rounds.Last(),
			})
			h.broadcastStateLocked()
			h.mu.Unlock()

		case c := <-h.unreg:
			h.mu.Lock()
			h.lastActive = time.Now()

			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}

			// Nobody is left to finish the reveal.
			if len(h.clients) == 0 {
				h.rounds.Finish("")
			}
			h.broadcastStateLocked()
			h.mu.Unlock()

		case pr := <-h.plays:
			h.handlePlay(cfg, pr)

		case cr := <-h.controls:
			h.handleControl(cfg, cr)
		}
	}
}

// sendLocked drops clients whose buffers are full.
func (h *Hub) sendLocked(c *Client, msg any) {
	if _, ok := h.clients[c]; !ok {
		return
	}

	select {
	case c.send <- msg:
	default:
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) broadcastLocked(msg any) {
	for client := range h.clients {
		h.sendLocked(client, msg)
	}
}

func (h *Hub) broadcastStateLocked() {
	h.broadcastLocked(StateMessage{
		Type:    "state",
		State:   h.rounds.State(),
		Clients: len(h.clients),
	})
}

func rejectedField(msg ClientMessage) string {
	switch {
	case strings.TrimSpace(msg.Name1) == "":
		return "name1"
	case strings.TrimSpace(msg.Name2) == "":
		return "name2"
	default:
		return "names"
	}
}

// handlePlay processes "play" messages.
func (h *Hub) handlePlay(cfg *Config, pr request) {
	msg := pr.msg
	c := pr.client

	h.mu.Lock()
	defer h.mu.Unlock()

	h.lastActive = time.Now()

	played, err := h.rounds.Begin(msg.Name1, msg.Name2, c.base)
	switch {
	case errors.Is(err, ErrRoundInProgress):
		h.sendLocked(c, SimpleMessage{
			Type:    "busy",
			Message: "Hold on, a result is still being revealed.",
		})

		return

	case err != nil:
		_, text, reason := roundStatus(err)
		h.metrics.refused("session", reason)

		h.sendLocked(c, RejectedMessage{
			Type:    "rejected",
			Field:   rejectedField(msg),
			Message: text,
		})

		return
	}

	h.metrics.played("session", played.Round.Relationship.Name)

	logf(cfg, "GAMES: %s played round %s (%s)", h.id, played.ID, played.Round.Relationship.Name)

	h.broadcastLocked(RoundMessage{
		Type:  "round",
		Round: played,
	})
	h.broadcastStateLocked()
}

// handleControl processes "finish" and "reset" messages.
func (h *Hub) handleControl(cfg *Config, cr request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.lastActive = time.Now()

	switch cr.msg.Type {
	case "finish":
		if !h.rounds.Finish(cr.msg.RoundID) {
			return
		}
	case "reset":
		h.rounds.Reset()
		logf(cfg, "GAMES: %s reset", h.id)
	default:
		return
	}

	h.broadcastStateLocked()
}

// closeAll disconnects all clients of this hub and stops it (used by reaper).
func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	select {
	case <-h.done:
	default:
		close(h.done)
	}

	for c := range h.clients {
		close(c.send)
		if c.conn != nil {
			_ = c.conn.Close()
		}
		delete(h.clients, c)
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// GameManager holds a set of hubs keyed by game ID, so each $path/$gameid
// is its own isolated session.
type GameManager struct {
	mu          sync.Mutex
	hubs        map[string]*Hub
	idleTimeout time.Duration
	metrics     *Metrics
	done        chan struct{}
	stopOnce    sync.Once
}

func newGameManager(idleTimeout time.Duration, m *Metrics) *GameManager {
	gm := &GameManager{
		hubs:        make(map[string]*Hub),
		idleTimeout: idleTimeout,
		metrics:     m,
		done:        make(chan struct{}),
	}
	if idleTimeout > 0 {
		go gm.reaperLoop()
	}
	return gm
}

func (gm *GameManager) getHub(cfg *Config, gameID string) *Hub {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if hub, ok := gm.hubs[gameID]; ok {
		return hub
	}

	hub := newHub(gameID, gm.metrics)
	gm.hubs[gameID] = hub
	gm.metrics.sessionOpened()
	go hub.run(cfg)
	return hub
}

// newGameID generates a crypto-random game ID and ensures it doesn't
// collide with existing games.
func (gm *GameManager) newGameID() string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	for {
		buf := make([]byte, 8)
		if _, err := rand.Read(buf); err != nil {
			panic("crypto/rand failure: " + err.Error())
		}
		out := make([]byte, 8)
		for i := range out {
			out[i] = letters[int(buf[i])%len(letters)]
		}
		id := string(out)

		gm.mu.Lock()
		_, exists := gm.hubs[id]
		gm.mu.Unlock()

		if !exists {
			return id
		}
	}
}

// reap removes hubs idle since before cutoff.
func (gm *GameManager) reap(cutoff time.Time) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	for id, hub := range gm.hubs {
		hub.mu.RLock()
		last := hub.lastActive
		hub.mu.RUnlock()

		if last.Before(cutoff) {
			delete(gm.hubs, id)
			gm.metrics.sessionClosed()
			go hub.closeAll()
		}
	}
}

// reaperLoop periodically removes hubs that have been idle longer than idleTimeout.
func (gm *GameManager) reaperLoop() {
	ticker := time.NewTicker(gm.idleTimeout / 2)
	defer ticker.Stop()

	for {
		select {
		case <-gm.done:
			return
		case <-ticker.C:
			gm.reap(time.Now().Add(-gm.idleTimeout))
		}
	}
}

// stop ends every session and the reaper.
func (gm *GameManager) stop() {
	gm.stopOnce.Do(func() {
		close(gm.done)
	})

	gm.reap(time.Now().Add(time.Hour))
}

// WebSocket handler that picks the hub based on :gameid
func serveWSForManager(cfg *Config, gm *GameManager) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		gameID := ps.ByName("gameid")
		if gameID == "" {
			http.Error(w, "missing game id", http.StatusBadRequest)
			return
		}

		hub := gm.getHub(cfg, gameID)

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.Warn("websocket upgrade failed", "game", gameID, "error", err)
			return
		}

		client := &Client{
			conn: conn,
			send: make(chan any, 8),
			base: siteRoot(cfg, r),
		}

		select {
		case hub.register <- client:
		case <-hub.done:
			_ = conn.Close()
			return
		}

		logf(cfg, "GAMES: %s joined by %s", gameID, realIP(r))

		go client.writePump()
		client.readPump(hub)
	}
}

func (c *Client) readPump(h *Hub) {
	defer func() {
		select {
		case h.unreg <- c:
		case <-h.done:
		}
		_ = c.conn.Close()
	}()

	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}

		var target chan request
		switch msg.Type {
		case "play":
			target = h.plays
		case "finish", "reset":
			target = h.controls
		default:
			// ignore unknown types
			continue
		}

		select {
		case target <- request{client: c, msg: msg}:
		case <-h.done:
			return
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

// QR handler: generates a PNG QR code for the current game URL using go-qrcode.
func qrHandler(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if ps.ByName("gameid") == "" {
			http.Error(w, "missing game id", http.StatusBadRequest)
			return
		}

		// We are at /.../:gameid/qr; strip trailing "/qr" to get the game URL.
		path := strings.TrimSuffix(r.URL.Path, "/qr")

		writeQR(cfg, w, requestScheme(r)+"://"+r.Host+path, errs)
	}
}

// ---- Static file paths ----

//go:embed assets/flames/index.html
var indexHTML []byte

func getIndexHandler(cfg *Config) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("Expires", time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))
		securityHeaders(cfg, w)

		_, _ = w.Write(indexHTML)
	}
}

// redirectNewGame handles GET /path by generating a new random game ID
// (with server-side collision detection) and redirecting to /path/:gameid.
func redirectNewGame(cfg *Config, path string, gm *GameManager) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gameID := gm.newGameID()
		logf(cfg, "GAMES: Created game %s/%s", path, gameID)
		http.Redirect(w, r, cfg.prefix+path+"/"+gameID, http.StatusTemporaryRedirect)
	}
}

// registerFlamesGame sets up routes so that:
//   - $path                  → redirects to new random game (8-char ID)
//   - $path/:gameid          → HTML client
//   - $path/:gameid/ws       → WebSocket for that game
//   - $path/:gameid/qr       → PNG QR code for that game URL
func registerFlamesGame(cfg *Config, m *Metrics, path string, mux *httprouter.Router, errs chan<- error) *GameManager {
	gm := newGameManager(cfg.sessionTimeout, m)

	mux.GET(cfg.prefix+path, redirectNewGame(cfg, path, gm))
	mux.GET(cfg.prefix+path+"/:gameid", getIndexHandler(cfg))
	mux.GET(cfg.prefix+path+"/:gameid/ws", serveWSForManager(cfg, gm))
	mux.GET(cfg.prefix+path+"/:gameid/qr", qrHandler(cfg, errs))

	return gm
}
