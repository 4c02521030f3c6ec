package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"anonrelay_server/models"
)

// DefaultBroadcastPace is the fixed delay between broadcast sends, to stay
// under transport rate limits.
const DefaultBroadcastPace = 50 * time.Millisecond

// BroadcastService fans an admin-supplied message out to every registered
// handle. One unreachable recipient never aborts the rest of the run.
type BroadcastService struct {
	Transport Transport
	Users     UserRegistry
	Admins    map[models.Handle]struct{}
	Pace      time.Duration
}

// Broadcast delivers text to every registered user on behalf of from.
// Non-admin callers get ErrUnauthorized and nothing else — the caller decides
// whether to stay silent. Each recipient failure is counted and logged, then
// the iteration moves on. Progress and the final tally are reported to the
// admin in-band.
func (b *BroadcastService) Broadcast(ctx context.Context, from models.Handle, text string) (models.BroadcastReport, error) {
	if _, ok := b.Admins[from]; !ok {
		return models.BroadcastReport{}, ErrUnauthorized
	}
	if strings.TrimSpace(text) == "" {
		return models.BroadcastReport{}, ErrEmptyBroadcast
	}

	users, err := b.Users.ListUsers(ctx)
	if err != nil {
		return models.BroadcastReport{}, fmt.Errorf("failed to list broadcast recipients: %w", err)
	}

	report := models.BroadcastReport{Total: len(users)}
	b.tell(ctx, from, fmt.Sprintf("📢 Sending to %d users...", report.Total))

	pace := b.Pace
	for i, user := range users {
		if i > 0 && pace > 0 {
			time.Sleep(pace)
		}
		if _, err := b.Transport.Send(ctx, user, text); err != nil {
			log.Printf("⚠️ Broadcast to %d failed: %v", user, err)
			continue
		}
		report.Sent++
	}

	log.Printf("📢 Broadcast by %d complete: %d/%d delivered", from, report.Sent, report.Total)
	b.tell(ctx, from, fmt.Sprintf("✅ Sent to %d/%d users.", report.Sent, report.Total))
	return report, nil
}

func (b *BroadcastService) tell(ctx context.Context, admin models.Handle, text string) {
	if _, err := b.Transport.Send(ctx, admin, text); err != nil {
		log.Printf("⚠️ Failed to notify admin %d: %v", admin, err)
	}
}
