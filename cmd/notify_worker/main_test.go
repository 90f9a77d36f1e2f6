package main

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/jb-laurans/dockitback/pkg/notify"
)

type stubSender struct {
	err   error
	calls int
	to    string
}

func (s *stubSender) Send(_ context.Context, to, _, _ string) error {
	s.calls++
	s.to = to
	return s.err
}

func eventBody(t *testing.T) []byte {
	t.Helper()
	b, err := json.Marshal(notify.MatchEvent{
		MatchID: 7, ShipID: 3, ShipName: "Ocean Pioneer",
		OwnerName: "Sarah", OwnerEmail: "sarah@example.com",
		InterestedName: "Marcus",
	})
	if err != nil {
		t.Fatalf("marshal event: %v", err)
	}
	return b
}

func TestHandleEventAcksOnSuccess(t *testing.T) {
	s := &stubSender{}
	if got := handleEvent(context.Background(), s, eventBody(t), false); got != actAck {
		t.Fatalf("expected ack, got %v", got)
	}
	if s.calls != 1 || s.to != "sarah@example.com" {
		t.Errorf("send calls=%d to=%q", s.calls, s.to)
	}
}

func TestHandleEventDropsBadMessage(t *testing.T) {
	s := &stubSender{}
	if got := handleEvent(context.Background(), s, []byte("{not json"), false); got != actDrop {
		t.Fatalf("expected drop, got %v", got)
	}
	if s.calls != 0 {
		t.Errorf("no send expected, got %d", s.calls)
	}
}

func TestHandleEventDropsMissingOwnerEmail(t *testing.T) {
	s := &stubSender{}
	b, _ := json.Marshal(notify.MatchEvent{MatchID: 8, ShipName: "V", OwnerName: "O"})
	if got := handleEvent(context.Background(), s, b, false); got != actDrop {
		t.Fatalf("expected drop, got %v", got)
	}
	if s.calls != 0 {
		t.Errorf("no send expected, got %d", s.calls)
	}
}

// A send failure gets one requeue; the redelivery failing too drops the
// message instead of cycling it forever.
func TestHandleEventRetriesOnceThenDrops(t *testing.T) {
	s := &stubSender{err: errors.New("mailgun 500")}

	if got := handleEvent(context.Background(), s, eventBody(t), false); got != actRetry {
		t.Fatalf("first failure: expected requeue, got %v", got)
	}
	if got := handleEvent(context.Background(), s, eventBody(t), true); got != actDrop {
		t.Fatalf("redelivered failure: expected drop, got %v", got)
	}
}
