package models

// Message is a direct message between two usernames.
type Message struct {
	ID        string `json:"id"`
	Sender    string `json:"sender"`
	Recipient string `json:"recipient"`
	Text      string `json:"text"`
	CreatedAt int64  `json:"createdAt"`
}
