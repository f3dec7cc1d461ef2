package web

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/ottermq/sempctl/internal/core/management"
	"github.com/ottermq/sempctl/internal/core/registry"
	"github.com/ottermq/sempctl/internal/testutil"
	"github.com/ottermq/sempctl/pkg/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestServer(t *testing.T, aliases bool) (*fiber.App, *testutil.FakeSEMP) {
	t.Helper()
	fake := testutil.NewFakeSEMP("default", "admin", "admin")
	fake.AddQueue("orders", map[string]any{"accessType": "exclusive", "maxBindCount": 10})
	fake.AddTopicEndpoint("te-audit", map[string]any{"permission": "consume"})
	fake.AddJndiTopic("jms/audit", "te-audit")

	collector := metrics.NewCollector(nil)
	svc := management.NewService(fake.Transport(), management.WithMetrics(collector))
	id := registry.NewConnectionID()
	require.NoError(t, svc.Open(context.Background(), management.ConnectionProperties{
		VPN:            "default",
		MgmtURL:        testutil.FakeBaseURL,
		MgmtUsername:   "admin",
		MgmtPassword:   "admin",
		BrowserTimeout: management.DefaultBrowserTimeout,
		TopicAliases:   aliases,
	}, id))

	ws := NewWebServer(&Config{Version: "test"}, svc, id, "default", collector)
	return ws.SetupApp(nil), fake
}

func get(t *testing.T, app *fiber.App, path string) (int, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestListDestinations(t *testing.T) {
	app, _ := setupTestServer(t, false)

	status, body := get(t, app, "/api/destinations")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"vpn":"default","queues":[{"name":"orders"}],"topics":[{"name":"te-audit"}]}`, body)
}

func TestListDestinations_BrokerFailure(t *testing.T) {
	app, fake := setupTestServer(t, false)
	fake.FailWith(testutil.OpListTopics, http.StatusInternalServerError)

	status, body := get(t, app, "/api/destinations")
	assert.Equal(t, http.StatusBadGateway, status)

	var resp map[string]string
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	assert.Contains(t, resp["error"], "list_topics")
	assert.Equal(t, "NOT_ALLOWED: Forced failure", resp["detail"])
}

func TestListDestinations_NetworkFailure(t *testing.T) {
	tr := &testutil.FailingTransport{}
	svc := management.NewService(tr)
	id := registry.NewConnectionID()
	require.NoError(t, svc.Open(context.Background(), management.ConnectionProperties{
		VPN:            "default",
		MgmtURL:        testutil.FakeBaseURL,
		MgmtUsername:   "admin",
		MgmtPassword:   "admin",
		BrowserTimeout: management.DefaultBrowserTimeout,
	}, id))
	app := NewWebServer(&Config{}, svc, id, "default", nil).SetupApp(nil)

	status, body := get(t, app, "/api/destinations")
	assert.Equal(t, http.StatusGatewayTimeout, status)
	assert.Contains(t, body, "connection refused")
	assert.Positive(t, tr.Calls())
}

func TestHandlers_ContextNotOpen(t *testing.T) {
	fake := testutil.NewFakeSEMP("default", "admin", "admin")
	svc := management.NewService(fake.Transport())
	app := NewWebServer(&Config{}, svc, registry.NewConnectionID(), "default", nil).SetupApp(nil)

	for _, path := range []string{"/api/destinations", "/api/queues/orders", "/api/topics/audit"} {
		status, body := get(t, app, path)
		assert.Equal(t, http.StatusServiceUnavailable, status, path)
		assert.Contains(t, body, "management context not found", path)
	}
	assert.Empty(t, fake.Requests())
}

func TestGetQueue(t *testing.T) {
	app, _ := setupTestServer(t, false)

	status, body := get(t, app, "/api/queues/orders")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, `{"name":"orders","kind":"queue","properties":{"accessType":"exclusive","maxBindCount":10}}`, body)
}

func TestGetQueue_NoInformation(t *testing.T) {
	app, _ := setupTestServer(t, false)

	status, body := get(t, app, "/api/queues/unknown")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"name":"unknown","kind":"queue","properties":{}}`, body)
}

func TestGetTopic_AliasNeedsDiscovery(t *testing.T) {
	app, _ := setupTestServer(t, true)

	status, _ := get(t, app, "/api/topics/jms%2Faudit")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = get(t, app, "/api/destinations")
	require.Equal(t, http.StatusOK, status)

	status, body := get(t, app, "/api/topics/jms%2Faudit")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"name":"jms/audit","kind":"topic","properties":{"permission":"consume"}}`, body)
}

func TestHealthAndMetrics(t *testing.T) {
	app, _ := setupTestServer(t, false)

	status, body := get(t, app, "/healthz")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok","version":"test","openContexts":1}`, body)

	get(t, app, "/api/destinations")

	status, body = get(t, app, "/metrics")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `sempctl_semp_requests_total{code="200",operation="list_queues"} 1`)
	assert.Contains(t, body, "sempctl_open_contexts 1")
}

func TestUnknownRoute(t *testing.T) {
	app, _ := setupTestServer(t, false)

	status, body := get(t, app, "/api/exchanges")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, body, `"error"`)
}
