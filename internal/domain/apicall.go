package domain

import "time"

// APICall is one preview-mode GET issued on behalf of a button.
type APICall struct {
	ID         string    `json:"id"`
	ElementID  string    `json:"elementId"`
	PageID     string    `json:"pageId"`
	Endpoint   string    `json:"endpoint"`
	StatusCode int       `json:"statusCode"`
	DurationMs int64     `json:"durationMs"`
	IsError    bool      `json:"isError"`
	Error      string    `json:"error"`
	CreatedAt  time.Time `json:"createdAt"`
}

type APICallStore interface {
	CreateAPICall(c *APICall) error
	ListAPICalls(limit int) ([]APICall, error)
	DeleteAPICallsBefore(t time.Time) (int64, error)
}
