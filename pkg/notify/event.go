package notify

import "time"

// MatchEvent is the JSON payload put on the RabbitMQ queue when a
// match is created. The notify worker turns it into an email to the
// shipowner.
type MatchEvent struct {
	MatchID           int64     `json:"match_id"`
	ShipID            int64     `json:"ship_id"`
	ShipName          string    `json:"ship_name"`
	OwnerName         string    `json:"owner_name"`
	OwnerEmail        string    `json:"owner_email"`
	InterestedName    string    `json:"interested_name"`
	InterestedCompany string    `json:"interested_company,omitempty"`
	MatchedAt         time.Time `json:"matched_at"`
}

// Subject is the email subject line for the event.
func (e MatchEvent) Subject() string {
	return "New interest in " + e.ShipName
}

// Text renders the plain-text email body for the event.
func (e MatchEvent) Text() string {
	from := e.InterestedName
	if e.InterestedCompany != "" {
		from += " (" + e.InterestedCompany + ")"
	}
	return "Hi " + e.OwnerName + ",\n\n" +
		from + " has shown interest in your vessel " + e.ShipName + ".\n" +
		"Log in to review the match and start negotiating.\n"
}
