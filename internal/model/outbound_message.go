// internal/model/outbound_message.go
package model

// OutboundMessage is a rendered mail held in memory for the duration of one
// dispatch pass. It is handed to the bulk sender and never persisted.
type OutboundMessage struct {
	To      string `json:"to"`
	From    string `json:"from"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}
