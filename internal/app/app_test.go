package app

import (
	"net/http"
	"strings"
	"testing"

	"whatyaneed_backend/internal/config"
	"whatyaneed_backend/internal/models"
	"whatyaneed_backend/internal/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfigWithAdmin() *config.Config {
	cfg := testhelpers.TestConfig()
	cfg.FirstAdmin.Name = "Root"
	cfg.FirstAdmin.Email = "admin@whatyaneed.test"
	cfg.FirstAdmin.Password = "admin-secret"
	return cfg
}

func TestSeedFirstAdminIsIdempotent(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	cfg := testConfigWithAdmin()

	require.NoError(t, seedFirstAdmin(db, cfg))
	require.NoError(t, seedFirstAdmin(db, cfg))

	var admins []models.User
	require.NoError(t, db.Where("email = ?", cfg.FirstAdmin.Email).Find(&admins).Error)
	require.Len(t, admins, 1)
	assert.Equal(t, models.UserRoleAdmin, admins[0].Role)
	assert.Equal(t, "Root", admins[0].Name)
	assert.True(t, admins[0].Verified)
	assert.NotEqual(t, cfg.FirstAdmin.Password, admins[0].PasswordHash)
}

func TestSeedFirstAdminSkippedWhenAdminExists(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	require.NoError(t, db.Create(&models.User{
		Name: "Old", Email: "old-admin@whatyaneed.test", PasswordHash: "x", Role: models.UserRoleAdmin,
	}).Error)

	require.NoError(t, seedFirstAdmin(db, testConfigWithAdmin()))

	var count int64
	db.Model(&models.User{}).Where("role = ?", models.UserRoleAdmin).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestSeedFirstAdminEmailTakenByUser(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	require.NoError(t, db.Create(&models.User{
		Name: "Ann", Email: "admin@whatyaneed.test", PasswordHash: "x", Role: models.UserRoleRequester,
	}).Error)

	cfg := testConfigWithAdmin()
	cfg.FirstAdmin.Email = "  Admin@WhatYaNeed.test "
	require.NoError(t, seedFirstAdmin(db, cfg))

	var users []models.User
	require.NoError(t, db.Find(&users).Error)
	require.Len(t, users, 1)
	assert.Equal(t, models.UserRoleRequester, users[0].Role)
}

func TestSeedFirstAdminSkippedWithoutCredentials(t *testing.T) {
	db := testhelpers.NewTestDB(t)

	require.NoError(t, seedFirstAdmin(db, testhelpers.TestConfig()))

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.Zero(t, count)
}

func TestHealthAndSessionDiagnostics(t *testing.T) {
	ts := NewTestServer(t)
	client := ts.NewClient(t)

	var health struct {
		Status    string `json:"status"`
		Message   string `json:"message"`
		Timestamp string `json:"timestamp"`
	}
	res := client.SendJSON(t, http.MethodGet, "/api/health", nil, &health)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "Server is running", health.Message)
	assert.NotEmpty(t, health.Timestamp)
	assert.NotEmpty(t, res.Header.Get("X-Request-ID"))

	var diag struct {
		HasSession bool `json:"hasSession"`
		HasUser    bool `json:"hasUser"`
	}
	client.SendJSON(t, http.MethodGet, "/api/test-session", nil, &diag)
	assert.False(t, diag.HasSession)
	assert.False(t, diag.HasUser)

	client.RegisterAndLogin(t, "ann", models.UserRoleRequester)
	client.SendJSON(t, http.MethodGet, "/api/test-session", nil, &diag)
	assert.True(t, diag.HasSession)
	assert.True(t, diag.HasUser)
}

func TestUnknownRoute(t *testing.T) {
	ts := NewTestServer(t)

	var body errorEnvelope
	res := ts.NewClient(t).SendJSON(t, http.MethodGet, "/api/nope", nil, &body)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "NOT_FOUND", body.Error.Code)
	assert.Equal(t, "Route not found", body.Error.Message)
	assert.Equal(t, "/api/nope", body.Error.Details["path"])
}

func TestMetricsEndpoint(t *testing.T) {
	ts := NewTestServer(t)
	client := ts.NewClient(t)
	client.RegisterAndLogin(t, "ann", models.UserRoleRequester)
	createRequest(t, client, map[string]interface{}{"title": "t", "description": "d"})

	res, raw := client.Send(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, raw, "test_help_requests_created_total 1")
	assert.True(t, strings.Contains(raw, `path="/api/requests"`), "route label uses the gin route pattern")
}

func TestCORSAllowList(t *testing.T) {
	ts := NewTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, ts.Server.URL+"/api/requests", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5500")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, "http://localhost:5500", res.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", res.Header.Get("Access-Control-Allow-Credentials"))

	req.Header.Set("Origin", "http://evil.example")
	res, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	res.Body.Close()
	assert.Empty(t, res.Header.Get("Access-Control-Allow-Origin"))
}
