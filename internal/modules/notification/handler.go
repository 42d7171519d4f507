package notification

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"notifyhub/internal/contenttype"
	"notifyhub/internal/pkg/response"
)

type Handler struct {
	service  *Service
	registry *contenttype.Registry
}

func NewHandler(service *Service, registry *contenttype.Registry) *Handler {
	return &Handler{service: service, registry: registry}
}

// GetNotifications returns the caller's notifications, newest first.
// Supports ?filter=unread|read plus limit/offset pagination.
func (h *Handler) GetNotifications(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated")
		return
	}

	filter := c.Query("filter")
	if filter != FilterAll && filter != FilterUnread && filter != FilterRead {
		filter = FilterAll
	}

	limit := 20
	if s := c.Query("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			limit = v
			if limit > 100 {
				limit = 100
			}
		}
	}

	offset := 0
	if s := c.Query("offset"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 0 {
			offset = v
		}
	}

	items, total, unread, err := h.service.List(c.Request.Context(), userID, filter, limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to get notifications")
		return
	}

	resp := make([]*NotificationResponse, len(items))
	for i := range items {
		n := &items[i]
		resp[i] = NotificationResponseFromEntity(n, h.service.Describe(c.Request.Context(), n))
	}

	response.Success(c, http.StatusOK, ListResponse{
		Notifications: resp,
		Total:         total,
		UnreadCount:   unread,
	})
}

// GetUnreadCount returns the caller's unread notification count.
func (h *Handler) GetUnreadCount(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated")
		return
	}

	unread, err := h.service.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to get unread count")
		return
	}

	response.Success(c, http.StatusOK, UnreadCountResponse{UnreadCount: unread})
}

// MarkAsRead transitions one notification, addressed by slug.
func (h *Handler) MarkAsRead(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated")
		return
	}

	slugVal, err := strconv.ParseInt(c.Param("slug"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_SLUG", "Invalid notification slug")
		return
	}

	n, err := h.service.MarkRead(c.Request.Context(), userID, slugVal)
	if errors.Is(err, ErrNotFound) {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Notification not found")
		return
	}
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to mark notification as read")
		return
	}

	response.Success(c, http.StatusOK, NotificationResponseFromEntity(n, h.service.Describe(c.Request.Context(), n)))
}

// MarkAllAsRead bulk-transitions the caller's unread set.
func (h *Handler) MarkAllAsRead(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated")
		return
	}

	updated, err := h.service.MarkAllRead(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to mark notifications as read")
		return
	}

	response.Success(c, http.StatusOK, BulkUpdateResponse{Updated: updated})
}

// MarkAllAsUnread bulk-transitions the caller's read set back to unread.
func (h *Handler) MarkAllAsUnread(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated")
		return
	}

	updated, err := h.service.MarkAllUnread(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to mark notifications as unread")
		return
	}

	response.Success(c, http.StatusOK, BulkUpdateResponse{Updated: updated})
}

// PostEvent ingests one activity event and responds with the stored,
// rendered notification.
func (h *Handler) PostEvent(c *gin.Context) {
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}

	ev, err := req.toEvent(c.Request.Context(), h.resolveRef)
	if err != nil {
		switch {
		case errors.Is(err, contenttype.ErrUnregistered):
			response.Error(c, http.StatusBadRequest, "UNKNOWN_ENTITY_TYPE", err.Error())
		case errors.Is(err, contenttype.ErrNotFound):
			response.Error(c, http.StatusNotFound, "ENTITY_NOT_FOUND", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "RESOLVE_FAILED", "Failed to resolve entity reference")
		}
		return
	}

	n, err := h.service.Ingest(c.Request.Context(), ev)
	if err != nil {
		if IsConfigurationError(err) {
			response.Error(c, http.StatusBadRequest, "INVALID_EVENT", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "CREATE_FAILED", "Failed to record activity event")
		return
	}

	response.Success(c, http.StatusCreated, NotificationResponseFromEntity(n, h.service.Describe(c.Request.Context(), n)))
}

func (h *Handler) resolveRef(ctx context.Context, ref EntityRefRequest) (any, error) {
	return h.registry.Resolve(ctx, contenttype.Ref{Type: ref.Type, ID: ref.ID})
}
