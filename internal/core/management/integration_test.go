//go:build integration

package management

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/ottermq/sempctl/internal/core/registry"
	"github.com/ottermq/sempctl/internal/core/semp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const solaceImage = "solace/solace-pubsub-standard:latest"

func startBroker(t *testing.T, ctx context.Context) string {
	t.Helper()

	req := testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        solaceImage,
			ExposedPorts: []string{"8080/tcp"},
			Env: map[string]string{
				"username_admin_globalaccesslevel":  "admin",
				"username_admin_password":           "admin",
				"system_scaling_maxconnectioncount": "100",
			},
			WaitingFor: wait.ForHTTP("/SEMP/v2/config/msgVpns/default").
				WithPort("8080/tcp").
				WithBasicAuth("admin", "admin").
				WithStatusCodeMatcher(func(status int) bool { return status == http.StatusOK }).
				WithStartupTimeout(5 * time.Minute),
		},
		Started: true,
	}

	broker, err := testcontainers.GenericContainer(ctx, req)
	require.NoError(t, err)
	testcontainers.CleanupContainer(t, broker)

	endpoint, err := broker.PortEndpoint(ctx, "8080/tcp", "http")
	require.NoError(t, err)
	return endpoint
}

func createQueue(t *testing.T, ctx context.Context, baseURL, name string) {
	t.Helper()

	body, err := json.Marshal(map[string]any{
		"queueName":      name,
		"accessType":     "exclusive",
		"permission":     "consume",
		"ingressEnabled": true,
		"egressEnabled":  true,
	})
	require.NoError(t, err)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/SEMP/v2/config/msgVpns/default/queues", bytes.NewReader(body))
	require.NoError(t, err)
	req.SetBasicAuth("admin", "admin")
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestIntegration_SolaceBroker(t *testing.T) {
	ctx := context.Background()
	baseURL := startBroker(t, ctx)
	createQueue(t, ctx, baseURL, "it-orders")

	svc := NewService(semp.NewHTTPTransport())
	id := registry.NewConnectionID()
	require.NoError(t, svc.Open(ctx, ConnectionProperties{
		VPN:            "default",
		MgmtURL:        baseURL,
		MgmtUsername:   "admin",
		MgmtPassword:   "admin",
		BrowserTimeout: DefaultBrowserTimeout,
	}, id))
	defer svc.Close(id)

	t.Run("Discover", func(t *testing.T) {
		data, err := svc.Discover(ctx, id)
		require.NoError(t, err)
		names := make([]string, 0, len(data.Queues))
		for _, q := range data.Queues {
			names = append(names, q.Name)
		}
		assert.Contains(t, names, "it-orders")
	})

	t.Run("QueueInfo", func(t *testing.T) {
		props, err := svc.GetQueueInfo(ctx, id, "it-orders")
		require.NoError(t, err)

		access, ok := props.Get("accessType")
		require.True(t, ok)
		assert.Equal(t, "exclusive", access)
		egress, ok := props.Get("egressEnabled")
		require.True(t, ok)
		assert.Equal(t, true, egress)
	})

	t.Run("UnknownQueue", func(t *testing.T) {
		props, err := svc.GetQueueInfo(ctx, id, "does-not-exist")
		require.NoError(t, err)
		assert.True(t, props.IsEmpty())
	})

	t.Run("WrongPassword", func(t *testing.T) {
		bad := registry.NewConnectionID()
		require.NoError(t, svc.Open(ctx, ConnectionProperties{
			VPN:            "default",
			MgmtURL:        baseURL,
			MgmtUsername:   "admin",
			MgmtPassword:   "wrong",
			BrowserTimeout: DefaultBrowserTimeout,
		}, bad))
		defer svc.Close(bad)

		_, err := svc.Discover(ctx, bad)
		df, ok := semp.IsDiscoveryFailure(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, df.StatusCode)
	})
}
