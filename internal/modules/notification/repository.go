package notification

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"notifyhub/internal/pkg/slug"
)

// Repository persists notifications and hands out query scopes.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// All is the widest scope: every notification in the store.
func (r *Repository) All() QuerySet {
	return QuerySet{db: r.db.Model(&Notification{})}
}

// ForRecipient scopes to one recipient's inbox.
func (r *Repository) ForRecipient(userID int64) QuerySet {
	return r.All().ForRecipient(userID)
}

// Create inserts a notification. New rows always start unread with a
// timestamp; missing level falls back to the default. These defaults
// are enforced here rather than in the schema so an explicit false or
// zero value can never be silently rewritten by the database.
func (r *Repository) Create(ctx context.Context, n *Notification) error {
	n.Unread = true
	if n.Level == "" {
		n.Level = DefaultLevel
	}
	if n.Timestamp.IsZero() {
		n.Timestamp = time.Now()
	}
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Notification, error) {
	var n Notification
	err := r.db.WithContext(ctx).First(&n, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// GetBySlug looks a notification up by its opaque URL identifier.
func (r *Repository) GetBySlug(ctx context.Context, s int64) (*Notification, error) {
	id := slug.Decode(s)
	if id == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// MarkAsRead transitions a single notification to read. Already-read
// notifications are left untouched: the check happens before any write
// so redundant transitions cost nothing.
func (r *Repository) MarkAsRead(ctx context.Context, n *Notification) error {
	if !n.Unread {
		return nil
	}
	err := r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("id = ?", n.ID).
		Update("unread", false).Error
	if err != nil {
		return err
	}
	n.Unread = false
	return nil
}

// CountUnread returns the recipient's unread count.
func (r *Repository) CountUnread(ctx context.Context, userID int64) (int64, error) {
	return r.ForRecipient(userID).Unread().Count(ctx)
}
