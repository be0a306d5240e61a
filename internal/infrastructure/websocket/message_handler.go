package websocket

import (
	"encoding/json"
	"time"
)

// Inbound message types.
const (
	MessageTypePing   = "ping"
	MessageTypeSearch = "search"
	MessageTypePage   = "page"
	MessageTypeRetry  = "retry"
	MessageTypeToggle = "toggle"
)

// Outbound message types.
const (
	MessageTypePong     = "pong"
	MessageTypeWishlist = "wishlist"
	MessageTypeListing  = "listing"
	MessageTypeNotice   = "notice"
	MessageTypeToggled  = "toggled"
	MessageTypeError    = "error"
)

// WSMessage is the envelope of every frame in both directions.
type WSMessage struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp string          `json:"timestamp,omitempty"`
}

type SearchData struct {
	Query string `json:"query"`
}

type PageData struct {
	Page int `json:"page"`
}

type ToggleData struct {
	PlaceID string `json:"placeId"`
	Liked   bool   `json:"liked"`
}

type ToggledData struct {
	PlaceID string `json:"placeId"`
	Liked   bool   `json:"liked"`
	Changed bool   `json:"changed"`
}

type WishlistData struct {
	IDs []string `json:"ids"`
}

type ErrorData struct {
	Message string `json:"message"`
}

// Decode parses an inbound frame.
func Decode(raw []byte) (WSMessage, error) {
	var msg WSMessage
	err := json.Unmarshal(raw, &msg)
	return msg, err
}

// DecodeData unmarshals the payload of msg into dst.
func (msg WSMessage) DecodeData(dst interface{}) error {
	if len(msg.Data) == 0 {
		return json.Unmarshal([]byte("{}"), dst)
	}
	return json.Unmarshal(msg.Data, dst)
}

// Encode builds an outbound frame.
func Encode(msgType string, data interface{}) ([]byte, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(WSMessage{
		Type:      msgType,
		Data:      payload,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}
