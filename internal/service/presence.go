package service

import (
	"fmt"
	"time"

	"cinebox/internal/domain"
	"cinebox/internal/repository"

	"github.com/rs/zerolog"
)

const (
	PresenceOnline  = "ONLINE"
	PresenceRecent  = "RECENT"
	PresenceUnknown = "UNKNOWN"
)

// Presence is the derived online/recency status shown next to an
// identity. Label is the human-granularity band for non-online states.
type Presence struct {
	State string `json:"state"`
	Label string `json:"label"`
}

// DerivePresence is pure in (lastActive, now): online within the
// 3-minute window, otherwise bucketed by whole elapsed days into
// today / yesterday / N days / weeks / 1 month / long ago.
func DerivePresence(lastActive *time.Time, now time.Time) Presence {
	if lastActive == nil {
		return Presence{State: PresenceUnknown, Label: "unknown"}
	}
	elapsed := now.Sub(*lastActive)
	if elapsed < domain.OnlineWindow {
		return Presence{State: PresenceOnline, Label: "online"}
	}
	days := int(elapsed.Hours() / 24)
	var label string
	switch {
	case days < 1:
		label = "today"
	case days == 1:
		label = "yesterday"
	case days < 7:
		label = fmt.Sprintf("%d days ago", days)
	case days < 30:
		label = "weeks ago"
	case days < 60:
		label = "1 month ago"
	default:
		label = "long ago"
	}
	return Presence{State: PresenceRecent, Label: label}
}

// PresenceService handles the heartbeat path. Heartbeats are
// best-effort: a failed write is logged and dropped, the next tick
// carries fresh state.
type PresenceService struct {
	ledgers *repository.LedgerRepository
	log     zerolog.Logger
	now     func() time.Time
}

func NewPresenceService(ledgers *repository.LedgerRepository, log zerolog.Logger) *PresenceService {
	return &PresenceService{ledgers: ledgers, log: log, now: time.Now}
}

func (s *PresenceService) Heartbeat(userID uint) {
	if err := s.ledgers.Touch(userID, s.now().UTC()); err != nil {
		s.log.Warn().Err(err).Uint("user_id", userID).Msg("heartbeat dropped")
	}
}

// Get derives the presence status for an identity.
func (s *PresenceService) Get(userID uint) (Presence, error) {
	u, err := s.ledgers.GetByID(userID)
	if err != nil {
		return Presence{State: PresenceUnknown, Label: "unknown"}, err
	}
	return DerivePresence(u.LastActive, s.now()), nil
}
