package app

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"whatyaneed_backend/internal/metrics"
	"whatyaneed_backend/internal/models"
	"whatyaneed_backend/internal/session"
	"whatyaneed_backend/internal/testhelpers"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestServer - роутер приложения поверх sqlite в памяти и сессий в памяти
type TestServer struct {
	Server   *httptest.Server
	DB       *gorm.DB
	Sessions *session.MemoryStore
	Metrics  *metrics.Metrics
}

func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	db := testhelpers.NewTestDB(t)
	store := session.NewMemoryStore()
	m := metrics.New("test")

	router := SetupRouter(testhelpers.TestConfig(), Deps{DB: db, Sessions: store, Metrics: m})
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &TestServer{Server: server, DB: db, Sessions: store, Metrics: m}
}

// Client - отдельный "браузер" со своей cookie-банкой
type Client struct {
	ts   *TestServer
	http *http.Client
}

func (ts *TestServer) NewClient(t *testing.T) *Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &Client{ts: ts, http: &http.Client{Jar: jar}}
}

// Send отправляет JSON-запрос и возвращает ответ с телом
func (c *Client) Send(t *testing.T, method, path string, body interface{}) (*http.Response, string) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err, "Ошибка кодирования JSON для запроса")
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, c.ts.Server.URL+path, reqBody)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, string(resBody)
}

// SendJSON - Send с разбором тела ответа в out
func (c *Client) SendJSON(t *testing.T, method, path string, body, out interface{}) *http.Response {
	t.Helper()
	res, raw := c.Send(t, method, path, body)
	if out != nil {
		require.NoError(t, json.Unmarshal([]byte(raw), out), "body: %s", raw)
	}
	return res
}

// RegisterAndLogin регистрирует пользователя через API и логинит этим клиентом
func (c *Client) RegisterAndLogin(t *testing.T, name string, role models.UserRole) string {
	t.Helper()

	email := testhelpers.UniqueEmail(name)
	res, raw := c.Send(t, http.MethodPost, "/api/auth/register", map[string]interface{}{
		"name":     name,
		"email":    email,
		"password": "secret123",
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, raw)

	res, raw = c.Send(t, http.MethodPost, "/api/auth/login", map[string]interface{}{
		"email":    email,
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, raw)
	return email
}

type errorEnvelope struct {
	Error struct {
		Code    string                 `json:"code"`
		Message string                 `json:"message"`
		Details map[string]interface{} `json:"details"`
	} `json:"error"`
}
