package service

import (
	"cinebox/internal/repository"
	"cinebox/internal/ws"

	"github.com/rs/zerolog"
)

// ModerationService owns the ban flag. Unlike the background paths,
// failures here propagate: the admin console shows them and rolls back
// its optimistic state.
type ModerationService struct {
	ledgers *repository.LedgerRepository
	hub     *ws.Hub
	log     zerolog.Logger
}

func NewModerationService(ledgers *repository.LedgerRepository, hub *ws.Hub, log zerolog.Logger) *ModerationService {
	return &ModerationService{ledgers: ledgers, hub: hub, log: log}
}

// SetBanned writes the absolute flag and pushes the transition to every
// device the identity has connected, so enforcement is immediate.
func (s *ModerationService) SetBanned(userID uint, banned bool) error {
	if err := s.ledgers.SetBanned(userID, banned); err != nil {
		return err
	}
	s.log.Info().Uint("user_id", userID).Bool("banned", banned).Msg("ban flag updated")
	if s.hub != nil {
		s.hub.PushToUser(userID, map[string]interface{}{
			"type":      "ban",
			"is_banned": banned,
		})
	}
	return nil
}
