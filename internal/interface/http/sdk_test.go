package handlers_test

import (
	"context"
	"testing"

	"github.com/jb-laurans/dockitback/pkg/client"
)

// The swipe-to-match lifecycle again, this time driven through the Go
// SDK against the real router, so the SDK's envelope and field shapes
// stay in lockstep with the handlers.
func TestSDKAgainstRouter(t *testing.T) {
	server, _ := newTestServer(t)
	ctx := context.Background()

	sarah := client.New(server.URL)
	if _, err := sarah.Register(ctx, client.RegisterParams{
		Name: "Sarah", Email: "sarah@example.com", Password: "pass1234",
		Type: "shipowner", Company: "Pioneer Shipping",
	}); err != nil {
		t.Fatalf("register owner: %v", err)
	}

	ship, err := sarah.CreateShip(ctx, client.CreateShipParams{
		Name: "Ocean Pioneer", Type: "bulk_carrier", DWT: 75000,
		CurrentPort: "Rotterdam", NextAvailableDate: "2026-09-15",
	})
	if err != nil {
		t.Fatalf("create ship: %v", err)
	}
	if ship.ID == 0 || ship.Owner != "Pioneer Shipping" {
		t.Fatalf("unexpected ship: %+v", ship)
	}

	marcus := client.New(server.URL)
	if _, err := marcus.Register(ctx, client.RegisterParams{
		Name: "Marcus", Email: "marcus@example.com", Password: "pass1234",
		Type: "charterer", Company: "Grain Traders",
	}); err != nil {
		t.Fatalf("register charterer: %v", err)
	}

	ships, err := marcus.Ships(ctx, client.ShipFilters{MinDWT: 70000})
	if err != nil {
		t.Fatalf("list ships: %v", err)
	}
	if len(ships) != 1 || ships[0].Name != "Ocean Pioneer" {
		t.Fatalf("unexpected deck: %+v", ships)
	}

	m, err := marcus.Swipe(ctx, ship.ID, nil)
	if err != nil {
		t.Fatalf("swipe: %v", err)
	}
	if m.Status != "pending" {
		t.Errorf("new match status: %q", m.Status)
	}
	if _, err := marcus.Swipe(ctx, ship.ID, nil); err != client.ErrConflict {
		t.Fatalf("second swipe: expected ErrConflict, got %v", err)
	}

	matches, err := marcus.MyMatches(ctx)
	if err != nil {
		t.Fatalf("my matches: %v", err)
	}
	if len(matches) != 1 || matches[0].Ship == nil || matches[0].Ship.Name != "Ocean Pioneer" {
		t.Fatalf("unexpected matches: %+v", matches)
	}

	updated, err := marcus.UpdateMatchStatus(ctx, m.ID, "accepted")
	if err != nil {
		t.Fatalf("status update: %v", err)
	}
	if updated.Status != "accepted" {
		t.Errorf("expected accepted, got %q", updated.Status)
	}

	// A charterer cannot list ships through the same SDK call.
	if _, err := marcus.CreateShip(ctx, client.CreateShipParams{
		Name: "Nope", Type: "tanker", DWT: 50000,
		CurrentPort: "Oslo", NextAvailableDate: "2026-09-15",
	}); err != client.ErrForbidden {
		t.Errorf("charterer ship create: expected ErrForbidden, got %v", err)
	}
}
