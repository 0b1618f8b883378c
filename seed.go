package main

import (
	"log/slog"
	"time"

	"brokemate/models"
	"brokemate/pkg/auth"
	"brokemate/pkg/ledger"
)

// seedDemoData creates the demo account with a few sample expenses so the
// frontend has something to show on a fresh process. Opt-in via
// SEED_DEMO_DATA; the store is volatile so this runs on every start.
func seedDemoData(creds *auth.Credentials, store *ledger.Store) {
	const username = "user@example.com"
	if _, err := creds.Register(username, "password123"); err != nil {
		slog.Warn("demo seed skipped", "error", err)
		return
	}
	store.CreateLedger(username)

	store.Insert(username, 250.00, "Food", "Lunch with colleagues", models.NewDate(2025, time.September, 27))
	shopping := store.Insert(username, 1200.50, "Shopping", "New headphones", models.NewDate(2025, time.September, 26))
	transport := store.Insert(username, 150.00, "Transport", "Metro card recharge", models.NewDate(2025, time.September, 25))
	if _, err := store.SetFlag(username, shopping.ID, models.FlagRed); err != nil {
		slog.Warn("demo seed flag failed", "id", shopping.ID, "error", err)
	}
	if _, err := store.SetFlag(username, transport.ID, models.FlagGreen); err != nil {
		slog.Warn("demo seed flag failed", "id", transport.ID, "error", err)
	}
	slog.Info("seeded demo user", "username", username)
}
