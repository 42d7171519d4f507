package notification

import (
	"context"
	"time"
)

// NotificationResponse is the API shape of one notification.
type NotificationResponse struct {
	Slug        int64          `json:"slug"`
	Level       string         `json:"level"`
	RecipientID int64          `json:"recipient_id"`
	Unread      bool           `json:"unread"`
	ActorType   string         `json:"actor_type"`
	ActorID     string         `json:"actor_id"`
	Verb        string         `json:"verb"`
	Description string         `json:"description,omitempty"`
	TargetType  string         `json:"target_type,omitempty"`
	TargetID    string         `json:"target_id,omitempty"`
	ActionType  string         `json:"action_object_type,omitempty"`
	ActionID    string         `json:"action_object_id,omitempty"`
	Timestamp   string         `json:"timestamp"`
	Public      bool           `json:"public"`
	Text        string         `json:"text"`
	Data        map[string]any `json:"data,omitempty"`
}

// NotificationResponseFromEntity converts an entity plus its rendered
// text into the response DTO.
func NotificationResponseFromEntity(n *Notification, text string) *NotificationResponse {
	resp := &NotificationResponse{
		Slug:        n.Slug(),
		Level:       string(n.Level),
		RecipientID: n.RecipientID,
		Unread:      n.Unread,
		ActorType:   n.ActorType,
		ActorID:     n.ActorID,
		Verb:        n.Verb,
		Description: n.Description,
		TargetType:  n.TargetType,
		TargetID:    n.TargetID,
		ActionType:  n.ActionObjectType,
		ActionID:    n.ActionObjectID,
		Timestamp:   n.Timestamp.Format(time.RFC3339),
		Public:      n.Public,
		Text:        text,
	}
	if len(n.Data) > 0 {
		resp.Data = n.GetData()
	}
	return resp
}

// ListResponse is the list endpoint payload.
type ListResponse struct {
	Notifications []*NotificationResponse `json:"notifications"`
	Total         int64                   `json:"total"`
	UnreadCount   int64                   `json:"unread_count"`
}

// UnreadCountResponse is the unread-count endpoint payload.
type UnreadCountResponse struct {
	UnreadCount int64 `json:"unread_count"`
}

// BulkUpdateResponse reports how many rows a bulk transition touched.
type BulkUpdateResponse struct {
	Updated int64 `json:"updated"`
}

// EntityRefRequest addresses a registered entity by (type, id).
type EntityRefRequest struct {
	Type string `json:"type" binding:"required"`
	ID   string `json:"id" binding:"required"`
}

// EventRequest is the inbound activity-event payload.
type EventRequest struct {
	Actor           EntityRefRequest  `json:"actor" binding:"required"`
	Recipient       int64             `json:"recipient" binding:"required"`
	Verb            string            `json:"verb" binding:"required"`
	Target          *EntityRefRequest `json:"target,omitempty"`
	ActionObject    *EntityRefRequest `json:"action_object,omitempty"`
	Level           string            `json:"level,omitempty" binding:"omitempty,oneof=success info warning error"`
	Description     string            `json:"description,omitempty"`
	Public          *bool             `json:"public,omitempty"`
	Timestamp       *time.Time        `json:"timestamp,omitempty"`
	CustomStrFormat string            `json:"custom_str_format,omitempty"`
	CustomCtx       map[string]string `json:"custom_ctx,omitempty"`
	Extra           map[string]any    `json:"extra,omitempty"`
}

// toEvent resolves the request's entity references into live objects
// and assembles the adapter event.
func (req *EventRequest) toEvent(ctx context.Context, resolve func(context.Context, EntityRefRequest) (any, error)) (Event, error) {
	ev := Event{
		Recipient:       req.Recipient,
		Verb:            req.Verb,
		Level:           Level(req.Level),
		Description:     req.Description,
		Public:          req.Public,
		CustomStrFormat: req.CustomStrFormat,
		CustomCtx:       req.CustomCtx,
		Extra:           req.Extra,
	}
	if req.Timestamp != nil {
		ev.Timestamp = *req.Timestamp
	}

	actor, err := resolve(ctx, req.Actor)
	if err != nil {
		return Event{}, err
	}
	ev.Actor = actor

	if req.Target != nil {
		target, err := resolve(ctx, *req.Target)
		if err != nil {
			return Event{}, err
		}
		ev.Target = target
	}
	if req.ActionObject != nil {
		obj, err := resolve(ctx, *req.ActionObject)
		if err != nil {
			return Event{}, err
		}
		ev.ActionObject = obj
	}

	return ev, nil
}
