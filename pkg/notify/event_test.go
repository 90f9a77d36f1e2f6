package notify

import (
	"strings"
	"testing"
)

func TestMatchEventRendering(t *testing.T) {
	e := MatchEvent{
		ShipName:          "Ocean Pioneer",
		OwnerName:         "Sarah",
		InterestedName:    "Marcus",
		InterestedCompany: "Grain Traders",
	}

	if e.Subject() != "New interest in Ocean Pioneer" {
		t.Errorf("subject: %q", e.Subject())
	}
	text := e.Text()
	for _, want := range []string{"Hi Sarah", "Marcus (Grain Traders)", "Ocean Pioneer"} {
		if !strings.Contains(text, want) {
			t.Errorf("body missing %q:\n%s", want, text)
		}
	}
}

func TestMatchEventTextWithoutCompany(t *testing.T) {
	e := MatchEvent{ShipName: "V", OwnerName: "O", InterestedName: "Solo"}
	text := e.Text()
	if strings.Contains(text, "(") {
		t.Errorf("no company, no parentheses expected:\n%s", text)
	}
}
