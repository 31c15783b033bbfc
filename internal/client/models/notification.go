package models

// Notification is a persistent per-user notification.
type Notification struct {
	ID        string `json:"id"`
	Recipient string `json:"recipient"`
	Kind      string `json:"kind,omitempty"`
	Text      string `json:"text"`
	Read      bool   `json:"read,omitempty"`
	CreatedAt int64  `json:"createdAt"`
}
