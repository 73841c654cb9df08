package server

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/greenfelt/holdem/internal/game"
)

// Connection represents a WebSocket connection to a client
type Connection struct {
	conn      *websocket.Conn
	send      chan *Message
	seatID    string
	roomID    string
	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	mu        sync.RWMutex
	closeOnce sync.Once
	server    *Server
}

// NewConnection creates a new connection wrapper
func NewConnection(conn *websocket.Conn, logger *log.Logger, server *Server) *Connection {
	ctx, cancel := context.WithCancel(context.Background())

	return &Connection{
		conn:   conn,
		send:   make(chan *Message, 256),
		logger: logger.WithPrefix("conn"),
		ctx:    ctx,
		cancel: cancel,
		server: server,
	}
}

// Start begins handling the connection
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Close closes the connection
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		close(c.send)
		err = c.conn.Close()
	})
	return err
}

// SendMessage sends a message to the client
func (c *Connection) SendMessage(msg *Message) error {
	defer func() {
		if r := recover(); r != nil {
			// Channel was closed, expected during shutdown
			c.logger.Debug("Attempted to send message on closed connection", "error", r)
		}
	}()

	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return c.ctx.Err()
	default:
		c.logger.Warn("Connection send buffer full, closing connection")
		_ = c.Close()
		return ErrConnectionClosed
	}
}

// SetSeat associates this connection with a seat
func (c *Connection) SetSeat(seatID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seatID = seatID
}

// GetSeat returns the associated seat ID
func (c *Connection) GetSeat() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.seatID
}

// SetRoom associates this connection with a room
func (c *Connection) SetRoom(roomID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.roomID = roomID
}

// GetRoom returns the associated room ID
func (c *Connection) GetRoom() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.roomID
}

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

var (
	ErrConnectionClosed = websocket.ErrCloseSent
)

// readPump handles incoming messages from the client
func (c *Connection) readPump() {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		var msg Message
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			break
		}

		c.handleMessage(&msg)
	}
}

// writePump handles outgoing messages to the client
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}

// handleMessage processes incoming messages from the client
func (c *Connection) handleMessage(msg *Message) {
	c.logger.Debug("Received message", "type", msg.Type, "seat", c.GetSeat())

	switch msg.Type {
	case MessageTypeCreateRoom:
		var data CreateRoomData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse create room data")
			return
		}
		c.handleCreateRoom(data)

	case MessageTypeJoinRoom:
		var data JoinRoomData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse join room data")
			return
		}
		c.handleJoinRoom(data)

	case MessageTypeStartHand:
		var data StartHandData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse start hand data")
			return
		}
		c.handleStartHand(data)

	case MessageTypePlayerAction:
		var data PlayerActionData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse player action data")
			return
		}
		c.handlePlayerAction(data)

	case MessageTypeAdvanceStreet:
		var data AdvanceStreetData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse advance street data")
			return
		}
		c.handleAdvanceStreet(data)

	case MessageTypeGetState:
		var data GetStateData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse get state data")
			return
		}
		c.handleGetState(data)

	default:
		c.sendError("unknown_message_type", "Unknown message type: "+msg.Type.String())
	}
}

// sendError sends an error message to the client
func (c *Connection) sendError(code, message string) {
	errorMsg, err := NewMessage(MessageTypeError, ErrorData{
		Code:    code,
		Message: message,
	})
	if err != nil {
		c.logger.Error("Failed to create error message", "error", err)
		return
	}

	_ = c.SendMessage(errorMsg)
}

// handleCreateRoom creates a room with the server's configured table
// parameters; nonzero fields in the request override them.
func (c *Connection) handleCreateRoom(data CreateRoomData) {
	stakes := c.server.tableStakes
	if data.SmallBlind > 0 {
		stakes.SmallBlind = data.SmallBlind
	}
	if data.BigBlind > 0 {
		stakes.BigBlind = data.BigBlind
	}
	if data.StartingStack > 0 {
		stakes.StartingStack = data.StartingStack
	}
	if data.MaxSeats > 0 {
		stakes.MaxSeats = data.MaxSeats
	}

	rm, err := c.server.manager.CreateRoom(stakes)
	if err != nil {
		c.sendError(errorCode(err), err.Error())
		return
	}

	response, _ := NewMessage(MessageTypeRoomCreated, RoomCreatedData{
		RoomID: rm.ID,
		Stakes: rm.State.Stakes,
	})
	_ = c.SendMessage(response)
}

func (c *Connection) handleJoinRoom(data JoinRoomData) {
	c.logger.Info("Join room request", "roomId", data.RoomID, "name", data.Name)

	if data.Name == "" {
		c.sendError("invalid_name", "Player name required")
		return
	}
	if c.GetSeat() != "" {
		c.sendError("already_seated", "Connection already holds a seat")
		return
	}

	rm, seatID, err := c.server.manager.JoinRoom(data.RoomID, data.Name)
	if err != nil {
		c.sendError(errorCode(err), err.Error())
		return
	}

	c.SetRoom(data.RoomID)
	c.SetSeat(seatID)

	seat, _ := rm.State.SeatByID(seatID)
	response, _ := NewMessage(MessageTypeRoomJoined, RoomJoinedData{
		RoomID: rm.ID,
		SeatID: seatID,
		Index:  seat.Index,
		State:  buildRoomState(rm, seatID),
	})
	_ = c.SendMessage(response)

	c.server.BroadcastRoomState(rm)
}

func (c *Connection) handleStartHand(data StartHandData) {
	c.logger.Info("Start hand request", "roomId", data.RoomID, "seat", c.GetSeat())

	rm, err := c.server.manager.StartHand(data.RoomID)
	if err != nil {
		c.sendError(errorCode(err), err.Error())
		return
	}

	c.server.BroadcastRoomState(rm)
	c.server.scheduleAfterUpdate(rm)
}

func (c *Connection) handlePlayerAction(data PlayerActionData) {
	action, err := game.ParseAction(data.Action)
	if err != nil {
		c.sendError("invalid_action", err.Error())
		return
	}

	seatID := data.SeatID
	if seatID == "" {
		seatID = c.GetSeat()
	}
	if seatID == "" {
		c.sendError("not_seated", "Connection holds no seat")
		return
	}

	rm, err := c.server.manager.Act(data.RoomID, seatID, action, data.Amount)
	if err != nil {
		c.sendError(errorCode(err), err.Error())
		return
	}

	c.server.BroadcastRoomState(rm)
	c.server.scheduleAfterUpdate(rm)
}

func (c *Connection) handleAdvanceStreet(data AdvanceStreetData) {
	rm, err := c.server.manager.AdvanceStreet(data.RoomID)
	if err != nil {
		c.sendError(errorCode(err), err.Error())
		return
	}

	c.server.BroadcastRoomState(rm)
	c.server.scheduleAfterUpdate(rm)
}

func (c *Connection) handleGetState(data GetStateData) {
	rm, err := c.server.manager.GetRoom(data.RoomID)
	if err != nil {
		c.sendError(errorCode(err), err.Error())
		return
	}

	response, _ := NewMessage(MessageTypeRoomState, buildRoomState(rm, c.GetSeat()))
	_ = c.SendMessage(response)
}
