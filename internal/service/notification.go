package service

import (
	"time"

	"cinebox/internal/models"
	"cinebox/internal/repository"
	"cinebox/internal/ws"

	"github.com/rs/zerolog"
)

// NotificationService is the dispatcher: it creates personal and
// broadcast notifications, enforces inbox retention opportunistically on
// reads, and pushes the resulting lists to live subscribers.
type NotificationService struct {
	repo *repository.NotificationRepository
	hub  *ws.Hub
	log  zerolog.Logger
	now  func() time.Time
}

func NewNotificationService(repo *repository.NotificationRepository, hub *ws.Hub, log zerolog.Logger) *NotificationService {
	return &NotificationService{repo: repo, hub: hub, log: log, now: time.Now}
}

// SendPersonal appends to the user's inbox. A non-nil scheduledFor dates
// the entry in the future (release-day reminders); retention and
// ordering key off that instant.
func (s *NotificationService) SendPersonal(userID uint, kind, title, message string, ref *repository.MediaRef, scheduledFor *time.Time) error {
	n := models.Notification{
		UserID:  userID,
		Kind:    kind,
		Title:   title,
		Message: message,
	}
	if ref != nil {
		n.MediaID = &ref.MediaID
		n.MediaType = ref.MediaType
		n.MediaTitle = ref.Title
	}
	if scheduledFor != nil {
		n.CreatedAt = *scheduledFor
	} else {
		n.CreatedAt = s.now().UTC()
	}
	if err := s.repo.Create(&n); err != nil {
		return err
	}
	s.pushInbox(userID)
	return nil
}

// SendBroadcast appends one row to the shared feed. No per-user fan-out:
// the write stays O(1) no matter the audience size.
func (s *NotificationService) SendBroadcast(title, message string) error {
	b := models.Broadcast{Title: title, Message: message, CreatedAt: s.now().UTC()}
	if err := s.repo.CreateBroadcast(&b); err != nil {
		return err
	}
	if s.hub != nil {
		s.hub.PushAll(map[string]interface{}{
			"type":      "broadcast",
			"broadcast": b,
		})
	}
	return nil
}

// ListInbox runs retention cleanup, then returns the steady-state inbox,
// newest first. Cleanup failure downgrades to a warning; a stale inbox
// beats an unreadable one.
func (s *NotificationService) ListInbox(userID uint) ([]models.Notification, error) {
	if err := s.repo.Cleanup(userID, s.now().UTC()); err != nil {
		s.log.Warn().Err(err).Uint("user_id", userID).Msg("inbox cleanup failed")
	}
	return s.repo.ListPersonal(userID)
}

func (s *NotificationService) MarkRead(userID, notifID uint) error {
	if err := s.repo.MarkRead(notifID, userID, s.now().UTC()); err != nil {
		return err
	}
	s.pushInbox(userID)
	return nil
}

// DeletePersonal is the explicit admin delete. The id is gone for good;
// re-sending the same content mints a new identity.
func (s *NotificationService) DeletePersonal(userID, notifID uint) error {
	if err := s.repo.DeletePersonal(userID, notifID); err != nil {
		return err
	}
	s.pushInbox(userID)
	return nil
}

func (s *NotificationService) ListBroadcasts() ([]models.Broadcast, error) {
	return s.repo.ListBroadcasts()
}

func (s *NotificationService) DeleteBroadcast(id uint) error {
	return s.repo.DeleteBroadcast(id)
}

// pushInbox streams the current (post-cleanup) inbox so a live view
// shrinks on its own when retention trims it.
func (s *NotificationService) pushInbox(userID uint) {
	if s.hub == nil {
		return
	}
	list, err := s.ListInbox(userID)
	if err != nil {
		s.log.Warn().Err(err).Uint("user_id", userID).Msg("inbox push skipped")
		return
	}
	s.hub.PushToUser(userID, map[string]interface{}{
		"type":          "inbox",
		"notifications": list,
	})
}
