package notification

import (
	"encoding/json"
	"time"

	"notifyhub/internal/contenttype"
	"notifyhub/internal/domain"
	"notifyhub/internal/pkg/slug"
)

// Level is the severity of a notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// DefaultLevel is applied when an event carries no level.
const DefaultLevel = LevelInfo

// Notification records that an actor performed a verb, optionally on a
// target via an action object. Actor, target and action object are
// polymorphic (type tag + id) references resolved through the content
// type registry, so any registered entity kind can appear in any slot.
//
// Rendered forms:
//
//	<actor> <verb> <timesince> ago
//	<actor> <verb> <target> <timesince> ago
//	<actor> <verb> <action_object> on <target> <timesince> ago
type Notification struct {
	ID          int64        `gorm:"primaryKey" json:"id"`
	Level       Level        `gorm:"type:varchar(20);not null" json:"level"`
	RecipientID int64        `gorm:"not null;index:idx_notifications_recipient_unread" json:"recipient_id"`
	Recipient   *domain.User `gorm:"foreignKey:RecipientID" json:"-"`
	Unread      bool         `gorm:"not null;index:idx_notifications_recipient_unread" json:"unread"`

	ActorType string `gorm:"not null" json:"actor_type"`
	ActorID   string `gorm:"not null" json:"actor_id"`

	Verb        string `gorm:"not null" json:"verb"`
	Description string `json:"description,omitempty"`

	// Target and action object are each either both-set or both-empty.
	TargetType       string `json:"target_type,omitempty"`
	TargetID         string `json:"target_id,omitempty"`
	ActionObjectType string `json:"action_object_type,omitempty"`
	ActionObjectID   string `json:"action_object_id,omitempty"`

	Timestamp time.Time `gorm:"not null;index" json:"timestamp"`
	Public    bool      `gorm:"not null" json:"public"`

	CustomStrFormat string `json:"custom_str_format,omitempty"`

	// Data and CustomCtx are only populated when extended-data storage
	// is enabled in the deployment config.
	Data      json.RawMessage `gorm:"type:jsonb" json:"data,omitempty"`
	CustomCtx json.RawMessage `gorm:"type:jsonb" json:"custom_ctx,omitempty"`
}

func (Notification) TableName() string {
	return "notifications"
}

// Slug is the opaque identifier used to address this notification in
// URLs.
func (n *Notification) Slug() int64 {
	return slug.Encode(n.ID)
}

func (n *Notification) ActorRef() contenttype.Ref {
	return contenttype.Ref{Type: n.ActorType, ID: n.ActorID}
}

func (n *Notification) TargetRef() contenttype.Ref {
	return contenttype.Ref{Type: n.TargetType, ID: n.TargetID}
}

func (n *Notification) ActionObjectRef() contenttype.Ref {
	return contenttype.Ref{Type: n.ActionObjectType, ID: n.ActionObjectID}
}

func (n *Notification) HasTarget() bool {
	return n.TargetType != "" && n.TargetID != ""
}

func (n *Notification) HasActionObject() bool {
	return n.ActionObjectType != "" && n.ActionObjectID != ""
}

// GetData decodes the extended payload, returning an empty map when
// none is stored.
func (n *Notification) GetData() map[string]any {
	if len(n.Data) == 0 {
		return map[string]any{}
	}
	var data map[string]any
	_ = json.Unmarshal(n.Data, &data)
	return data
}

func (n *Notification) customCtx() map[string]string {
	if len(n.CustomCtx) == 0 {
		return nil
	}
	var ctx map[string]string
	_ = json.Unmarshal(n.CustomCtx, &ctx)
	return ctx
}
