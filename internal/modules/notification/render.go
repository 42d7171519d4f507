package notification

import (
	"context"
	"reflect"
	"time"

	"notifyhub/internal/contenttype"
)

// deletedPlaceholder stands in for a referenced entity whose row is
// gone. Rendering is a display-path operation, so a stale reference
// degrades instead of erroring.
const deletedPlaceholder = "(deleted)"

// Renderer produces the human-readable form of a notification by
// resolving its references and interpolating them into a template.
type Renderer struct {
	registry *contenttype.Registry
}

func NewRenderer(registry *contenttype.Registry) *Renderer {
	return &Renderer{registry: registry}
}

// Render formats the notification against the current wall clock.
func (r *Renderer) Render(ctx context.Context, n *Notification) string {
	return r.RenderAt(ctx, n, time.Now())
}

// RenderAt formats the notification as of the given instant.
//
// Template selection, in order: the notification's own custom format,
// the target form (with the action-object clause when present), the
// action-object form, the bare actor-verb form.
func (r *Renderer) RenderAt(ctx context.Context, n *Notification, now time.Time) string {
	rctx := map[string]any{
		"actor":     r.resolveOr(ctx, n.ActorRef()),
		"verb":      n.Verb,
		"timesince": timesince(n.Timestamp, now),
	}
	if n.HasTarget() {
		rctx["target"] = r.resolveOr(ctx, n.TargetRef())
	}
	if n.HasActionObject() {
		rctx["action_object"] = r.resolveOr(ctx, n.ActionObjectRef())
	}

	// custom_ctx swaps a context object for one of its attributes, so
	// callers can interpolate e.g. an actor's email instead of its
	// default string form.
	for key, attr := range n.customCtx() {
		if obj, ok := rctx[key]; ok {
			rctx[key] = attrOf(obj, attr)
		}
	}

	switch {
	case n.CustomStrFormat != "":
		return interpolate(n.CustomStrFormat, rctx)
	case n.HasTarget() && n.HasActionObject():
		return interpolate("%(actor)s %(verb)s %(action_object)s on %(target)s %(timesince)s ago", rctx)
	case n.HasTarget():
		return interpolate("%(actor)s %(verb)s %(target)s %(timesince)s ago", rctx)
	case n.HasActionObject():
		return interpolate("%(actor)s %(verb)s %(action_object)s %(timesince)s ago", rctx)
	default:
		return interpolate("%(actor)s %(verb)s %(timesince)s ago", rctx)
	}
}

func (r *Renderer) resolveOr(ctx context.Context, ref contenttype.Ref) any {
	obj, err := r.registry.Resolve(ctx, ref)
	if err != nil {
		return deletedPlaceholder
	}
	return obj
}

// attrOf mirrors attribute access on the resolved entity: exported
// struct field first, then a no-argument method. Unknown names keep the
// object itself so a bad custom_ctx entry degrades to the default form.
func attrOf(obj any, attr string) any {
	v := reflect.ValueOf(obj)
	if !v.IsValid() {
		return obj
	}

	if m := v.MethodByName(attr); m.IsValid() && m.Type().NumIn() == 0 && m.Type().NumOut() >= 1 {
		return m.Call(nil)[0].Interface()
	}

	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return obj
		}
		v = v.Elem()
	}
	if v.Kind() == reflect.Struct {
		if f := v.FieldByName(attr); f.IsValid() && f.CanInterface() {
			return f.Interface()
		}
	}
	return obj
}
