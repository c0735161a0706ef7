package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starledger/internal/ledger"
	"starledger/internal/model"
	"starledger/internal/store"
)

const testAdminKey = "test-admin-key"

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	st := store.NewFileStore(filepath.Join(t.TempDir(), "ledger.json"))
	svc, err := ledger.NewService(st, logger)
	require.NoError(t, err)

	h := NewHandler(svc, testAdminKey)
	router := gin.New()
	users := router.Group("/api/v1/users")
	{
		users.POST("", h.CreateUser)
		users.GET("/:user_id", h.GetWallet)
		users.POST("/:user_id/deposit", h.CreateDeposit)
		users.GET("/:user_id/mine", h.GetMineStatus)
		users.POST("/:user_id/mine/claim", h.ClaimMining)
		users.GET("/:user_id/history", h.GetHistory)
		users.POST("/:user_id/withdraw", h.CreateWithdraw)
		users.POST("/:user_id/withdraw/resolve", h.AdminAuth(), h.ResolveWithdraw)
	}
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string, headers map[string]string) (*httptest.ResponseRecorder, model.Response) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp model.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func registerUser(t *testing.T, router *gin.Engine, id string) {
	t.Helper()
	w, resp := doJSON(t, router, http.MethodPost, "/api/v1/users", `{"user_id":"`+id+`"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, resp.Success)
}

func TestCreateUser(t *testing.T) {
	router := newTestRouter(t)

	registerUser(t, router, "alice")
	registerUser(t, router, "alice") // idempotent

	w, resp := doJSON(t, router, http.MethodPost, "/api/v1/users", `{}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, resp.Success)
}

func TestDepositEndpoint(t *testing.T) {
	router := newTestRouter(t)
	registerUser(t, router, "alice")

	w, resp := doJSON(t, router, http.MethodPost, "/api/v1/users/alice/deposit", `{"amount":10000}`, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)

	w, _ = doJSON(t, router, http.MethodPost, "/api/v1/users/alice/deposit", `{"amount":-5}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doJSON(t, router, http.MethodPost, "/api/v1/users/ghost/deposit", `{"amount":10}`, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMineStatusEndpoint(t *testing.T) {
	router := newTestRouter(t)
	registerUser(t, router, "alice")
	doJSON(t, router, http.MethodPost, "/api/v1/users/alice/deposit", `{"amount":20000}`, nil)

	w, resp := doJSON(t, router, http.MethodGet, "/api/v1/users/alice/mine", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, float64(3), data["level"])
	assert.Equal(t, float64(5), data["reward"])
	assert.Equal(t, float64(12), data["lock_days"])
	assert.Equal(t, "00:00:00", data["remaining"], "a fresh record is immediately claimable in wall-clock time")
}

func TestClaimEndpoint(t *testing.T) {
	router := newTestRouter(t)
	registerUser(t, router, "alice")

	// LastClaim starts at zero, which is far beyond the cooldown by now.
	w, resp := doJSON(t, router, http.MethodPost, "/api/v1/users/alice/mine/claim", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, 0.5, data["reward"])

	// The window is closed immediately after a success.
	w, resp = doJSON(t, router, http.MethodPost, "/api/v1/users/alice/mine/claim", "", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.False(t, resp.Success)
	data = resp.Data.(map[string]interface{})
	assert.Contains(t, data, "remaining")
}

func TestHistoryEndpoint(t *testing.T) {
	router := newTestRouter(t)
	registerUser(t, router, "alice")
	doJSON(t, router, http.MethodPost, "/api/v1/users/alice/deposit", `{"amount":100}`, nil)
	doJSON(t, router, http.MethodPost, "/api/v1/users/alice/deposit", `{"amount":200}`, nil)

	w, resp := doJSON(t, router, http.MethodGet, "/api/v1/users/alice/history?page=0", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := resp.Data.(map[string]interface{})
	assert.Len(t, data["entries"], 2)
	assert.Equal(t, false, data["has_prev"])
	assert.Equal(t, false, data["has_next"])

	w, resp = doJSON(t, router, http.MethodGet, "/api/v1/users/alice/history?page=9", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data = resp.Data.(map[string]interface{})
	assert.Empty(t, data["entries"])
	assert.Equal(t, true, data["has_prev"])
	assert.Equal(t, false, data["has_next"])
}

func TestWithdrawEndpoints(t *testing.T) {
	router := newTestRouter(t)
	registerUser(t, router, "alice")
	doJSON(t, router, http.MethodPost, "/api/v1/users/alice/deposit", `{"amount":100}`, nil)

	w, resp := doJSON(t, router, http.MethodPost, "/api/v1/users/alice/withdraw", `{"amount":40}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, model.WithdrawStatusPending, data["status"])

	// Settlement requires the admin key.
	w, _ = doJSON(t, router, http.MethodPost, "/api/v1/users/alice/withdraw/resolve", `{"index":0,"approve":true}`, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	admin := map[string]string{"X-API-Key": testAdminKey}
	w, resp = doJSON(t, router, http.MethodPost, "/api/v1/users/alice/withdraw/resolve", `{"index":0,"approve":true}`, admin)
	require.Equal(t, http.StatusOK, w.Code)
	data = resp.Data.(map[string]interface{})
	assert.Equal(t, model.WithdrawStatusSuccess, data["status"])

	// Second settlement of the same request is rejected.
	w, _ = doJSON(t, router, http.MethodPost, "/api/v1/users/alice/withdraw/resolve", `{"index":0,"approve":false}`, admin)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, resp = doJSON(t, router, http.MethodGet, "/api/v1/users/alice", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data = resp.Data.(map[string]interface{})
	assert.Equal(t, float64(60), data["balance"])
}
