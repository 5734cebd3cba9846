// Package events publishes StockGlass domain events to Kafka.
package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event types carried in Envelope.EventType.
const (
	TypeAlertCrossed   = "ALERT_CROSSED"
	TypeEmailRequested = "EMAIL_REQUESTED"
)

// Direction of a target crossing.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// AlertCrossed is published when a watched price crosses its target.
type AlertCrossed struct {
	StockID       int             `json:"stockId"`
	Symbol        string          `json:"symbol"`
	Name          string          `json:"name"`
	TargetPrice   decimal.Decimal `json:"targetPrice"`
	PreviousPrice decimal.Decimal `json:"previousPrice"`
	Price         decimal.Decimal `json:"price"`
	Direction     Direction       `json:"direction"`
	At            time.Time       `json:"at"`
}

// EmailRequested asks an out-of-process mailer to deliver a notification.
type EmailRequested struct {
	UserID  string `json:"userId"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Envelope is the JSON value written for every message.
type Envelope struct {
	EventType string    `json:"event_type"`
	Key       string    `json:"key"`
	Payload   any       `json:"payload"`
	Timestamp time.Time `json:"timestamp"`
}
