package service

import (
	"errors"
	"time"

	"cinebox/internal/repository"
	"cinebox/internal/ws"

	"github.com/rs/zerolog"
)

// RewardService converts flushed watch seconds into credit. Failures
// never propagate to the watch session: the caller fires and forgets,
// the next flush arrives with fresh local state.
type RewardService struct {
	ledgers  *repository.LedgerRepository
	hub      *ws.Hub
	log      zerolog.Logger
	maxFlush int
	now      func() time.Time
}

func NewRewardService(ledgers *repository.LedgerRepository, hub *ws.Hub, log zerolog.Logger, maxFlush int) *RewardService {
	return &RewardService{
		ledgers:  ledgers,
		hub:      hub,
		log:      log,
		maxFlush: maxFlush,
		now:      time.Now,
	}
}

// RecordWatchSeconds credits one flushed batch. The numeric counters are
// applied as store-side adds; only the daily rollover decision runs
// inside the serialized transaction.
func (s *RewardService) RecordWatchSeconds(userID uint, seconds int) {
	if seconds <= 0 || (s.maxFlush > 0 && seconds > s.maxFlush) {
		s.log.Warn().Uint("user_id", userID).Int("seconds", seconds).Msg("watch flush out of range, dropped")
		return
	}
	u, err := s.ledgers.GetByID(userID)
	if err != nil {
		s.log.Warn().Err(err).Uint("user_id", userID).Msg("watch flush for unknown identity, dropped")
		return
	}
	if u.IsBanned {
		s.log.Warn().Uint("user_id", userID).Msg("watch flush for banned identity, dropped")
		return
	}
	now := s.now().UTC()
	today := now.Format("2006-01-02")
	if err := s.ledgers.ApplyWatch(userID, int64(seconds), today, now); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.log.Warn().Uint("user_id", userID).Msg("ledger vanished during watch flush")
			return
		}
		s.log.Error().Err(err).Uint("user_id", userID).Msg("watch flush failed")
		return
	}
	s.pushLedger(userID)
}

// pushLedger streams the committed ledger state to every device the
// identity has connected.
func (s *RewardService) pushLedger(userID uint) {
	if s.hub == nil {
		return
	}
	u, err := s.ledgers.GetByID(userID)
	if err != nil {
		return
	}
	s.hub.PushToUser(userID, map[string]interface{}{
		"type":   "ledger",
		"ledger": u,
	})
}
