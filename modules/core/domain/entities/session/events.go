package session

import "time"

// SignedInEvent is published once the API issued a token for Username.
type SignedInEvent struct {
	Username  string
	IP        string
	UserAgent string
	At        time.Time
}
