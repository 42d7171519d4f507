package notification

import (
	"context"

	"gorm.io/gorm"
)

// QuerySet is a composable scope over the notifications table. Each
// method narrows the scope and returns a new QuerySet; nothing touches
// the database until a terminal operation runs. Bulk transitions are a
// single set-based UPDATE so that concurrent readers never observe a
// half-applied batch.
type QuerySet struct {
	db *gorm.DB
}

// Unread narrows the scope to unread notifications.
func (qs QuerySet) Unread() QuerySet {
	return QuerySet{db: qs.db.Where("unread = ?", true)}
}

// Read narrows the scope to already-read notifications.
func (qs QuerySet) Read() QuerySet {
	return QuerySet{db: qs.db.Where("unread = ?", false)}
}

// ForRecipient narrows the scope to one recipient's notifications.
func (qs QuerySet) ForRecipient(userID int64) QuerySet {
	return QuerySet{db: qs.db.Where("recipient_id = ?", userID)}
}

// List fetches the scoped notifications newest first.
func (qs QuerySet) List(ctx context.Context, limit, offset int) ([]Notification, error) {
	q := qs.db.WithContext(ctx).Order("timestamp DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}

	var out []Notification
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of notifications in the scope.
func (qs QuerySet) Count(ctx context.Context) (int64, error) {
	var count int64
	err := qs.db.WithContext(ctx).Count(&count).Error
	return count, err
}

// MarkAllAsRead flips every unread notification in the scope to read,
// optionally narrowed to one recipient, in one UPDATE. Idempotent:
// re-invoking once nothing is unread affects zero rows. Returns the
// number of rows transitioned.
func (qs QuerySet) MarkAllAsRead(ctx context.Context, recipient ...int64) (int64, error) {
	scoped := qs.Unread()
	if len(recipient) > 0 {
		scoped = scoped.ForRecipient(recipient[0])
	}
	res := scoped.db.WithContext(ctx).Update("unread", false)
	return res.RowsAffected, res.Error
}

// MarkAllAsUnread is the symmetric inverse of MarkAllAsRead.
func (qs QuerySet) MarkAllAsUnread(ctx context.Context, recipient ...int64) (int64, error) {
	scoped := qs.Read()
	if len(recipient) > 0 {
		scoped = scoped.ForRecipient(recipient[0])
	}
	res := scoped.db.WithContext(ctx).Update("unread", true)
	return res.RowsAffected, res.Error
}
