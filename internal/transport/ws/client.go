package ws

import (
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"hivemind/internal/app"
	"hivemind/internal/domain"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 4096

	// Size of the send channel buffer
	sendBufferSize = 256
)

// Client represents a WebSocket client connection. A client is unbound until
// its first createRoom or joinRoom message; from then on every action is
// directed at that room.
type Client struct {
	conn     *websocket.Conn
	hub      *app.RoomRegistry
	session  *app.RoomSession // nil until the client creates or joins a room
	playerID string
	send     chan []byte
	done     chan struct{}
	logger   *slog.Logger
	mu       sync.Mutex
	closed   bool
}

// NewClient creates a new WebSocket client
func NewClient(conn *websocket.Conn, hub *app.RoomRegistry, playerID string, logger *slog.Logger) *Client {
	return &Client{
		conn:     conn,
		hub:      hub,
		playerID: playerID,
		send:     make(chan []byte, sendBufferSize),
		done:     make(chan struct{}),
		logger:   logger,
	}
}

// PlayerID implements app.ClientConnection
func (c *Client) PlayerID() string {
	return c.playerID
}

// Send implements app.ClientConnection
func (c *Client) Send(message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	select {
	case c.send <- data:
		return nil
	default:
		// Buffer full, message dropped
		c.logger.Warn("send buffer full, message dropped", "playerID", c.playerID)
		return nil
	}
}

// Close implements app.ClientConnection
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	c.closed = true
	close(c.done)
	return c.conn.Close()
}

// Run starts the client's read and write pumps
func (c *Client) Run() {
	go c.writePump()
	c.readPump()
}

// readPump pumps messages from the WebSocket connection
func (c *Client) readPump() {
	defer func() {
		c.leaveRoom()
		c.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Debug("websocket read error", "error", err)
			}
			break
		}

		c.handleMessage(message)
	}
}

// writePump pumps messages from the send channel to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			return
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to the current websocket message
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// leaveRoom detaches the client from its room on disconnect, destroying the
// room once the last player is gone
func (c *Client) leaveRoom() {
	if c.session == nil {
		return
	}

	if empty := c.session.Leave(c.playerID); empty {
		c.hub.Remove(c.session.Code())
	}

	c.logger.Info("player left", "roomCode", c.session.Code(), "playerID", c.playerID)
	c.session = nil
}

// handleMessage processes an incoming message from the client
func (c *Client) handleMessage(data []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		c.sendError("Invalid message format")
		return
	}

	switch msg.Type {
	case MsgCreateRoom:
		c.handleCreateRoom(msg.Payload)
	case MsgJoinRoom:
		c.handleJoinRoom(msg.Payload)
	case MsgUpdateSettings:
		c.handleUpdateSettings(msg.Payload)
	case MsgStartGame:
		c.handleStartGame()
	case MsgSubmitAnswer:
		c.handleSubmitAnswer(msg.Payload)
	case MsgNextRound:
		c.handleNextRound()
	case MsgPlayAgain:
		c.handlePlayAgain()
	case MsgPing:
		c.Send(&PongMessage{Type: MsgPong})
	default:
		c.sendError("Unknown message type")
	}
}

// handleCreateRoom creates a room and joins the caller as its host
func (c *Client) handleCreateRoom(payload json.RawMessage) {
	var req CreateRoomPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		c.sendError("Invalid payload")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		c.sendError("Name is required")
		return
	}

	if c.session != nil {
		c.sendError("Already in a room")
		return
	}

	session, err := c.hub.CreateRoom()
	if err != nil {
		c.sendError("Could not create room")
		return
	}

	if err := session.Join(c.playerID, name, c); err != nil {
		c.hub.Remove(session.Code())
		c.sendError("Could not create room")
		return
	}

	c.session = session
	c.logger.Info("room created by player", "roomCode", session.Code(), "playerID", c.playerID, "name", name)
}

// handleJoinRoom joins an existing room by code
func (c *Client) handleJoinRoom(payload json.RawMessage) {
	var req JoinRoomPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		c.sendError("Invalid payload")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		c.sendError("Name is required")
		return
	}

	if c.session != nil {
		c.sendError("Already in a room")
		return
	}

	session, err := c.hub.Lookup(req.Code)
	if err != nil {
		c.sendError("Room not found")
		return
	}

	if err := session.Join(c.playerID, name, c); err != nil {
		if errors.Is(err, domain.ErrGameInProgress) {
			c.sendError("Game already in progress")
		} else {
			c.sendError("Could not join room")
		}
		return
	}

	c.session = session
	c.logger.Info("player joined", "roomCode", session.Code(), "playerID", c.playerID, "name", name)
}

// handleUpdateSettings applies a host settings change
func (c *Client) handleUpdateSettings(payload json.RawMessage) {
	if c.session == nil {
		return
	}

	var req UpdateSettingsPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		c.sendError("Invalid payload")
		return
	}

	// Non-host callers are ignored rather than told off
	c.session.UpdateSettings(c.playerID, domain.SettingsUpdate{
		TimerSeconds: req.TimerSeconds,
		PointsToWin:  req.PointsToWin,
	})
}

// handleStartGame starts the first round
func (c *Client) handleStartGame() {
	if c.session == nil {
		return
	}

	err := c.session.StartGame(c.playerID)
	if errors.Is(err, domain.ErrNotEnoughPlayers) {
		c.sendError("Need at least 2 players to start")
	}
}

// handleSubmitAnswer records the player's answer for this round
func (c *Client) handleSubmitAnswer(payload json.RawMessage) {
	if c.session == nil {
		return
	}

	var req SubmitAnswerPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		c.sendError("Invalid payload")
		return
	}

	if strings.TrimSpace(req.Answer) == "" {
		c.sendError("Answer is required")
		return
	}

	// Out-of-round and repeat submissions are silent no-ops
	c.session.SubmitAnswer(c.playerID, req.Answer)
}

// handleNextRound advances to the next round
func (c *Client) handleNextRound() {
	if c.session == nil {
		return
	}

	c.session.NextRound(c.playerID)
}

// handlePlayAgain resets the match back to the lobby
func (c *Client) handlePlayAgain() {
	if c.session == nil {
		return
	}

	c.session.PlayAgain(c.playerID)
}

// sendError sends an error event to this client only
func (c *Client) sendError(message string) {
	roomCode := ""
	if c.session != nil {
		roomCode = c.session.Code()
	}

	c.Send(domain.NewEvent(domain.EventError, roomCode, &domain.ErrorPayload{Message: message}))
}
