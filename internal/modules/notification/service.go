package notification

import (
	"context"
)

// Service composes the store, the event adapter and the renderer behind
// the HTTP surface. Every read and transition is scoped to one
// recipient's inbox.
type Service struct {
	repo     *Repository
	notifier *Notifier
	renderer *Renderer
}

func NewService(repo *Repository, notifier *Notifier, renderer *Renderer) *Service {
	return &Service{repo: repo, notifier: notifier, renderer: renderer}
}

// Filter names for List.
const (
	FilterAll    = ""
	FilterUnread = "unread"
	FilterRead   = "read"
)

// List returns a page of the recipient's notifications, newest first,
// together with the total in the scope and the unread count.
func (s *Service) List(ctx context.Context, userID int64, filter string, limit, offset int) ([]Notification, int64, int64, error) {
	scope := s.repo.ForRecipient(userID)
	switch filter {
	case FilterUnread:
		scope = scope.Unread()
	case FilterRead:
		scope = scope.Read()
	}

	items, err := scope.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, 0, err
	}

	total, err := scope.Count(ctx)
	if err != nil {
		return nil, 0, 0, err
	}

	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, 0, 0, err
	}

	return items, total, unread, nil
}

func (s *Service) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

// MarkRead transitions one of the recipient's notifications to read.
// Slugs that decode to another recipient's row report ErrNotFound
// rather than leaking their existence.
func (s *Service) MarkRead(ctx context.Context, userID, slug int64) (*Notification, error) {
	n, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if n.RecipientID != userID {
		return nil, ErrNotFound
	}
	if err := s.repo.MarkAsRead(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// MarkAllRead flips the recipient's entire unread set in one update.
func (s *Service) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	return s.repo.ForRecipient(userID).MarkAllAsRead(ctx)
}

// MarkAllUnread is the symmetric inverse.
func (s *Service) MarkAllUnread(ctx context.Context, userID int64) (int64, error) {
	return s.repo.ForRecipient(userID).MarkAllAsUnread(ctx)
}

// Ingest records an activity event and returns the stored notification.
func (s *Service) Ingest(ctx context.Context, ev Event) (*Notification, error) {
	return s.notifier.Notify(ctx, ev)
}

// Describe renders a notification for display.
func (s *Service) Describe(ctx context.Context, n *Notification) string {
	return s.renderer.Render(ctx, n)
}
