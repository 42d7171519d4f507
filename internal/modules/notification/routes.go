package notification

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the notification query surface and the event
// ingestion endpoint on an authenticated route group.
func RegisterRoutes(protected *gin.RouterGroup, handler *Handler) {
	notifGroup := protected.Group("/notifications")
	{
		notifGroup.GET("", handler.GetNotifications)
		notifGroup.GET("/unread-count", handler.GetUnreadCount)
		notifGroup.PATCH("/:slug/read", handler.MarkAsRead)
		notifGroup.POST("/read-all", handler.MarkAllAsRead)
		notifGroup.POST("/unread-all", handler.MarkAllAsUnread)
	}

	protected.POST("/events", handler.PostEvent)
}
