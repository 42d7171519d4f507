package notification

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"notifyhub/internal/contenttype"
)

// Event is an "activity occurred" payload. Emitters hold a Notifier
// directly (no global signal bus) and fire events at it; each accepted
// event becomes exactly one stored notification.
type Event struct {
	// Actor performed the verb. Required; must be a registered entity.
	Actor any
	// Recipient is the user id the notification is for. Required.
	Recipient int64
	// Verb describes the action, e.g. "commented on". Required.
	Verb string

	// Target is what the verb was performed on; ActionObject is an
	// intermediate object involved in the verb. Each is independently
	// optional.
	Target       any
	ActionObject any

	Level           Level
	Description     string
	Public          *bool
	Timestamp       time.Time
	CustomStrFormat string

	// CustomCtx remaps rendering context entries to attributes of the
	// resolved objects; see Renderer.
	CustomCtx map[string]string

	// Extra carries any leftover key/value pairs. Stored verbatim as
	// the notification's data payload when extended-data storage is
	// enabled, silently discarded otherwise.
	Extra map[string]any
}

// Notifier converts activity events into stored notification records.
type Notifier struct {
	repo      *Repository
	extraData bool
}

func NewNotifier(repo *Repository, extraData bool) *Notifier {
	return &Notifier{repo: repo, extraData: extraData}
}

// Notify validates, resolves and persists one event. The returned
// notification is always unread.
func (nf *Notifier) Notify(ctx context.Context, ev Event) (*Notification, error) {
	if ev.Actor == nil {
		return nil, NewConfigurationError("activity event requires an actor")
	}
	if ev.Recipient == 0 {
		return nil, NewConfigurationError("activity event requires a recipient")
	}
	if ev.Verb == "" {
		return nil, NewConfigurationError("activity event requires a verb")
	}

	actorRef, err := contenttype.RefFor(ev.Actor)
	if err != nil {
		return nil, err
	}

	public := true
	if ev.Public != nil {
		public = *ev.Public
	}

	n := &Notification{
		Level:           ev.Level,
		RecipientID:     ev.Recipient,
		ActorType:       actorRef.Type,
		ActorID:         actorRef.ID,
		Verb:            ev.Verb,
		Description:     ev.Description,
		Timestamp:       ev.Timestamp,
		Public:          public,
		CustomStrFormat: ev.CustomStrFormat,
	}

	if ev.Target != nil {
		ref, err := contenttype.RefFor(ev.Target)
		if err != nil {
			return nil, err
		}
		n.TargetType, n.TargetID = ref.Type, ref.ID
	}
	if ev.ActionObject != nil {
		ref, err := contenttype.RefFor(ev.ActionObject)
		if err != nil {
			return nil, err
		}
		n.ActionObjectType, n.ActionObjectID = ref.Type, ref.ID
	}

	if nf.extraData {
		if len(ev.CustomCtx) > 0 {
			raw, err := json.Marshal(ev.CustomCtx)
			if err != nil {
				return nil, err
			}
			n.CustomCtx = raw
		}
		if len(ev.Extra) > 0 {
			raw, err := json.Marshal(ev.Extra)
			if err != nil {
				return nil, err
			}
			n.Data = raw
		}
	}

	if err := nf.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// EnsureExtraDataSupport verifies at startup that the connected backend
// can hold the JSON payload columns. Failing here keeps a misconfigured
// deployment from discovering the problem at write time.
func EnsureExtraDataSupport(db *gorm.DB) error {
	switch db.Dialector.Name() {
	case "postgres", "sqlite":
		return nil
	default:
		return NewConfigurationError(
			"extended data storage enabled but backend %q has no JSON column support",
			db.Dialector.Name(),
		)
	}
}
