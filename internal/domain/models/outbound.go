package models

import (
	"encoding/json"
	"strings"
)

// OutboundMessageRequest represents requests to send a message manually via the API.
type OutboundMessageRequest struct {
	To         string `json:"to" binding:"required"`
	Message    string `json:"message" binding:"required"`
	PreviewURL bool   `json:"preview_url"`
}

// CommandRequest carries a raw command line submitted through the REST API.
type CommandRequest struct {
	Text string `json:"text" binding:"required"`
}

// TradeRequest is the REST body for sell and buy.
type TradeRequest struct {
	Item     string `json:"item" binding:"required"`
	Quantity Amount `json:"quantity" binding:"required"`
	Price    Amount `json:"price" binding:"required"`
}

// ExpenseRequest is the REST body for expense. Title may be blank.
type ExpenseRequest struct {
	Title  string `json:"title"`
	Amount Amount `json:"amount" binding:"required"`
}

// Amount is a numeric request field kept as text so that the engine applies the same
// validation as for chat commands. It accepts JSON numbers and strings.
type Amount string

func (a *Amount) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}
	*a = Amount(raw)
	return nil
}

func (a Amount) String() string { return string(a) }
