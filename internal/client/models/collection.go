package models

// Collection groups exhibits curated by one collector.
type Collection struct {
	ID          string   `json:"id"`
	Owner       string   `json:"owner"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	ExhibitIDs  []string `json:"exhibitIds,omitempty"`
}
