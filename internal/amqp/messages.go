package amqp

import (
	"encoding/json"
	"time"
)

// OverageAlertMessage carries a budget overage from the API process to the
// alert worker. It duplicates the persisted notification's content so the
// worker does not need store access.
type OverageAlertMessage struct {
	NotificationID string    `json:"notification_id"`
	Email          string    `json:"email"`
	Category       string    `json:"category"`
	Message        string    `json:"message"`
	Usage          int64     `json:"usage"`
	Limit          int64     `json:"limit"`
	Date           string    `json:"date"`
	Timestamp      time.Time `json:"timestamp"`
}

func (m *OverageAlertMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func OverageAlertMessageFromJSON(data []byte) (*OverageAlertMessage, error) {
	var msg OverageAlertMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
