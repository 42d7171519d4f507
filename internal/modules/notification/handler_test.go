package notification

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"notifyhub/internal/contenttype"
	"notifyhub/internal/domain"
	"notifyhub/internal/middleware"
	jwtsvc "notifyhub/internal/pkg/jwt"
)

type listEnvelope struct {
	Data ListResponse `json:"data"`
}

type notificationEnvelope struct {
	Data NotificationResponse `json:"data"`
}

type bulkEnvelope struct {
	Data BulkUpdateResponse `json:"data"`
}

func setupRouter(t *testing.T, extraData bool) (*gin.Engine, *gorm.DB, *jwtsvc.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := setupTestDB(t)

	registry := contenttype.NewRegistry()
	domain.RegisterEntities(registry, db)

	repo := NewRepository(db)
	notifier := NewNotifier(repo, extraData)
	renderer := NewRenderer(registry)
	service := NewService(repo, notifier, renderer)
	handler := NewHandler(service, registry)

	j := jwtsvc.New("test-secret", time.Hour)

	router := gin.New()
	protected := router.Group("/api/v1")
	protected.Use(middleware.Auth(j))
	RegisterRoutes(protected, handler)

	return router, db, j
}

func seedUser(t *testing.T, db *gorm.DB, name string) *domain.User {
	t.Helper()
	u := &domain.User{Email: name + "@example.com", Name: name, PasswordHash: "x"}
	require.NoError(t, db.Create(u).Error)
	return u
}

func performRequest(router *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func eventBody(actor, recipient *domain.User, verb string) map[string]any {
	return map[string]any{
		"actor":     map[string]string{"type": "users", "id": actor.EntityID()},
		"recipient": recipient.ID,
		"verb":      verb,
	}
}

func TestEventIngestionAndListing(t *testing.T) {
	router, db, j := setupRouter(t, false)
	actor := seedUser(t, db, "justquick")
	recipient := seedUser(t, db, "brosner")

	token, err := j.GenerateToken(recipient.ID)
	require.NoError(t, err)

	w := performRequest(router, http.MethodPost, "/api/v1/events", eventBody(actor, recipient, "reached level 60"), token)
	require.Equal(t, http.StatusCreated, w.Code)

	var created notificationEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.True(t, created.Data.Unread)
	require.Contains(t, created.Data.Text, "justquick reached level 60")

	w = performRequest(router, http.MethodGet, "/api/v1/notifications", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var list listEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Data.Notifications, 1)
	require.Equal(t, int64(1), list.Data.UnreadCount)
}

func TestEventRejectsUnknownEntityType(t *testing.T) {
	router, db, j := setupRouter(t, false)
	recipient := seedUser(t, db, "brosner")

	token, err := j.GenerateToken(recipient.ID)
	require.NoError(t, err)

	body := map[string]any{
		"actor":     map[string]string{"type": "ghosts", "id": "1"},
		"recipient": recipient.ID,
		"verb":      "haunted",
	}
	w := performRequest(router, http.MethodPost, "/api/v1/events", body, token)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEventRejectsMissingActorRow(t *testing.T) {
	router, db, j := setupRouter(t, false)
	recipient := seedUser(t, db, "brosner")

	token, err := j.GenerateToken(recipient.ID)
	require.NoError(t, err)

	body := map[string]any{
		"actor":     map[string]string{"type": "users", "id": "9999"},
		"recipient": recipient.ID,
		"verb":      "vanished",
	}
	w := performRequest(router, http.MethodPost, "/api/v1/events", body, token)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestMarkReadFlow(t *testing.T) {
	router, db, j := setupRouter(t, false)
	actor := seedUser(t, db, "justquick")
	recipient := seedUser(t, db, "brosner")

	token, err := j.GenerateToken(recipient.ID)
	require.NoError(t, err)

	w := performRequest(router, http.MethodPost, "/api/v1/events", eventBody(actor, recipient, "poked"), token)
	require.Equal(t, http.StatusCreated, w.Code)
	var created notificationEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	path := fmt.Sprintf("/api/v1/notifications/%d/read", created.Data.Slug)
	w = performRequest(router, http.MethodPatch, path, nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var marked notificationEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &marked))
	require.False(t, marked.Data.Unread)

	// another recipient cannot see or mutate it
	otherToken, err := j.GenerateToken(actor.ID)
	require.NoError(t, err)
	w = performRequest(router, http.MethodPatch, path, nil, otherToken)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestBulkTransitions(t *testing.T) {
	router, db, j := setupRouter(t, false)
	actor := seedUser(t, db, "justquick")
	recipient := seedUser(t, db, "brosner")

	token, err := j.GenerateToken(recipient.ID)
	require.NoError(t, err)

	for _, verb := range []string{"followed", "mentioned", "poked"} {
		w := performRequest(router, http.MethodPost, "/api/v1/events", eventBody(actor, recipient, verb), token)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := performRequest(router, http.MethodPost, "/api/v1/notifications/read-all", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	var bulk bulkEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bulk))
	require.Equal(t, int64(3), bulk.Data.Updated)

	// idempotent
	w = performRequest(router, http.MethodPost, "/api/v1/notifications/read-all", nil, token)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bulk))
	require.Equal(t, int64(0), bulk.Data.Updated)

	w = performRequest(router, http.MethodPost, "/api/v1/notifications/unread-all", nil, token)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bulk))
	require.Equal(t, int64(3), bulk.Data.Updated)

	w = performRequest(router, http.MethodGet, "/api/v1/notifications?filter=unread", nil, token)
	var list listEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Data.Notifications, 3)
}

func TestRequiresAuthentication(t *testing.T) {
	router, _, _ := setupRouter(t, false)
	w := performRequest(router, http.MethodGet, "/api/v1/notifications", nil, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
