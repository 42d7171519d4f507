package domain

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"notifyhub/internal/contenttype"
)

// RegisterEntities wires every referenceable domain type into the
// content type registry. Called once at startup, before any event is
// accepted.
func RegisterEntities(reg *contenttype.Registry, db *gorm.DB) {
	reg.Register("users", func(ctx context.Context, id string) (any, error) {
		uid, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: users/%s", contenttype.ErrNotFound, id)
		}
		var u User
		if err := db.WithContext(ctx).First(&u, "id = ?", uid).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: users/%s", contenttype.ErrNotFound, id)
			}
			return nil, err
		}
		return &u, nil
	})
}
