package types

import "encoding/json"

// Request is the signed envelope a client submits. Body is the JSON array of
// actions and Signature covers Body byte for byte.
type Request struct {
	UserID    string `json:"userId"`
	DeviceID  string `json:"deviceId"`
	Signature string `json:"signature"`
	Body      string `json:"body"`
}

// Action is one element of a request body.
type Action struct {
	Type    ActionType      `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Result reports the outcome of one action, in submission order.
type Result struct {
	Type    ActionType      `json:"type"`
	Payload json.RawMessage `json:"payload"`
	Success bool            `json:"success"`
	Error   string          `json:"error"`
}

// Response carries one Result per submitted action.
type Response struct {
	Results []Result `json:"results"`
}

// NewAction marshals payload into an Action of type t.
func NewAction(t ActionType, payload any) (Action, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return Action{}, err
	}
	return Action{Type: t, Payload: b}, nil
}
