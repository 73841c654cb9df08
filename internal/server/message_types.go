package server

// MessageType represents a WebSocket message type with type safety
type MessageType string

// WebSocket message type constants
// These are used for client-server communication protocol
const (
	// Client to server messages
	MessageTypeCreateRoom    MessageType = "create_room"
	MessageTypeJoinRoom      MessageType = "join_room"
	MessageTypeStartHand     MessageType = "start_hand"
	MessageTypePlayerAction  MessageType = "player_action"
	MessageTypeAdvanceStreet MessageType = "advance_street"
	MessageTypeGetState      MessageType = "get_state"

	// Server to client messages
	MessageTypeRoomCreated MessageType = "room_created"
	MessageTypeRoomJoined  MessageType = "room_joined"
	MessageTypeRoomState   MessageType = "room_state"
	MessageTypeTurnTimeout MessageType = "turn_timeout"
	MessageTypeError       MessageType = "error"
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}
