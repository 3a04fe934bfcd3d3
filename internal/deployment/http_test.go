package deployment

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emergent-labs/coder-backend/internal/projects"
)

func newDeployRouter(t *testing.T) (*gin.Engine, *projects.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := projects.NewStore(t.TempDir())
	require.NoError(t, err)

	r := gin.New()
	Register(r.Group("/api"), NewService("", ""), store, nil)
	return r, store
}

func deployJSON(t *testing.T, r *gin.Engine, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/deploy", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestDeployEndpoint_PreviewSucceeds(t *testing.T) {
	r, store := newDeployRouter(t)

	created, err := store.Create("alice", projects.Spec{
		Name:  "demo",
		Files: map[string]string{"main.py": "print(1)"},
	})
	require.NoError(t, err)

	w := deployJSON(t, r, gin.H{
		"project_id": created.ProjectID,
		"user_id":    "alice",
		"platform":   "preview",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.Equal(t, "Static Preview", result.Platform)
	assert.NotEmpty(t, result.URL)
}

func TestDeployEndpoint_DefaultPlatformIsVercel(t *testing.T) {
	r, store := newDeployRouter(t)

	created, err := store.Create("alice", projects.Spec{Files: map[string]string{"main.py": "print(1)"}})
	require.NoError(t, err)

	w := deployJSON(t, r, gin.H{
		"project_id": created.ProjectID,
		"user_id":    "alice",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// No token configured: the attempt degrades to a setup error.
	var result Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.False(t, result.Success)
	assert.Equal(t, "Vercel token not configured", result.Error)
}

func TestDeployEndpoint_UnknownPlatform(t *testing.T) {
	r, store := newDeployRouter(t)

	created, err := store.Create("alice", projects.Spec{Files: map[string]string{"main.py": "print(1)"}})
	require.NoError(t, err)

	w := deployJSON(t, r, gin.H{
		"project_id": created.ProjectID,
		"user_id":    "alice",
		"platform":   "heroku",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Unsupported deployment platform", body["error"])
}

func TestDeployEndpoint_ProjectNotFound(t *testing.T) {
	r, _ := newDeployRouter(t)

	w := deployJSON(t, r, gin.H{
		"project_id": "missing",
		"user_id":    "alice",
		"platform":   "preview",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeployEndpoint_RequiresProjectAndUser(t *testing.T) {
	r, _ := newDeployRouter(t)

	w := deployJSON(t, r, gin.H{"platform": "preview"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeploymentsEndpoint_WithoutDatabase(t *testing.T) {
	r, _ := newDeployRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/deployments/alice", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Empty(t, body["deployments"])
	assert.NotEmpty(t, body["note"])
}
