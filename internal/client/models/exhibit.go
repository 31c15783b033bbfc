// Package models defines client-side data models mirrored between the hot
// cache, the local store and the remote Vitrine service.
package models

// Exhibit is a single catalogued artifact.
type Exhibit struct {
	// ID is a globally unique identifier for the exhibit.
	ID string `json:"id"`

	// Owner is the username of the collector publishing the exhibit.
	Owner string `json:"owner"`

	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Tags        []string `json:"tags,omitempty"`

	// Timestamp is the publication time in Unix milliseconds. The hot cache
	// keeps exhibits sorted by it, newest first.
	Timestamp int64 `json:"timestamp"`

	// Lite marks a partially-populated record, e.g. one received from a list
	// endpoint without full detail. A lite record never overwrites a full
	// record with the same id and is upgraded by an on-demand detail fetch.
	Lite bool `json:"lite,omitempty"`
}
