package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asset-registry-backend/internal/model"
)

func TestSubscriptionLifecycle(t *testing.T) {
	router, s := setupTestRouter(t)
	_, submitter, _ := seedRegistry(t, s)

	w := doJSON(t, router, http.MethodPut, "/api/subscriptions", gin.H{
		"endpoint": "https://example.com/push",
		"p256dh":   "key",
		"auth":     "secret",
		"staff_id": submitter.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodGet, "/api/subscriptions?endpoint=https%3A%2F%2Fexample.com%2Fpush", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		StaffID int64 `json:"staff_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, submitter.ID, resp.StaffID)

	w = doJSON(t, router, http.MethodDelete, "/api/subscriptions", gin.H{
		"endpoint": "https://example.com/push",
	})
	require.Equal(t, http.StatusNoContent, w.Code)

	var count int64
	s.DB().Model(&model.PushSubscription{}).Count(&count)
	assert.Zero(t, count)
}

func TestPutSubscription_InvalidBody(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(t, router, http.MethodPut, "/api/subscriptions", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetVAPIDPublicKey(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/vapid_public_key", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"public_key":"test-key"}`, w.Body.String())
}
