package integration

import "time"

// StateInfo is what a CSRF state remembers about the connect attempt that issued it.
type StateInfo struct {
	Provider    string    `json:"provider"`
	RedirectURI string    `json:"redirect_uri"`
	CreatedAt   time.Time `json:"created_at"`
}
