package semp

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// MaxPageSize bounds every list call. Further pages are never requested.
	MaxPageSize = 1000

	ListTimeout = 30 * time.Second
	InfoTimeout = 60 * time.Second

	configPath = "/SEMP/v2/config/msgVpns/%s"
)

// Operation names a kind of SEMP request. It doubles as the metrics label.
type Operation string

const (
	OpListQueues       Operation = "list_queues"
	OpListTopics       Operation = "list_topics"
	OpListTopicAliases Operation = "list_topic_aliases"
	OpQueueInfo        Operation = "queue_info"
	OpTopicInfo        Operation = "topic_info"
)

// RequestTemplate is an immutable description of a SEMP request. The same
// template may be materialised concurrently by any number of calls.
type RequestTemplate struct {
	Operation Operation
	Method    string
	URL       string
	Timeout   time.Duration
	header    http.Header
}

// Header returns a copy of the template headers.
func (t RequestTemplate) Header() http.Header {
	return t.header.Clone()
}

// NewRequest materialises the template. The returned cancel func releases the
// per-operation timeout and must be called once the response is consumed.
func (t RequestTemplate) NewRequest(ctx context.Context) (*http.Request, context.CancelFunc, error) {
	ctx, cancel := context.WithTimeout(withOperation(ctx, t.Operation), t.Timeout)
	req, err := http.NewRequestWithContext(ctx, t.Method, t.URL, nil)
	if err != nil {
		cancel()
		return nil, nil, fmt.Errorf("failed to create %s request: %w", t.Operation, err)
	}
	req.Header = t.header.Clone()
	return req, cancel, nil
}

func newTemplate(op Operation, rawURL, authToken string, timeout time.Duration) RequestTemplate {
	header := make(http.Header)
	header.Set("Content-Type", "application/json")
	header.Set("Authorization", authToken)
	return RequestTemplate{
		Operation: op,
		Method:    http.MethodGet,
		URL:       rawURL,
		Timeout:   timeout,
		header:    header,
	}
}

func vpnURL(baseURL, vpn string) string {
	return strings.TrimRight(baseURL, "/") + fmt.Sprintf(configPath, url.PathEscape(vpn))
}

func listQueuesTemplate(baseURL, vpn, authToken string) RequestTemplate {
	u := fmt.Sprintf("%s/queues?select=queueName&count=%d", vpnURL(baseURL, vpn), MaxPageSize)
	return newTemplate(OpListQueues, u, authToken, ListTimeout)
}

func listTopicsTemplate(baseURL, vpn, authToken string) RequestTemplate {
	u := fmt.Sprintf("%s/topicEndpoints?select=topicEndpointName&count=%d", vpnURL(baseURL, vpn), MaxPageSize)
	return newTemplate(OpListTopics, u, authToken, ListTimeout)
}

func listTopicAliasesTemplate(baseURL, vpn, authToken string) RequestTemplate {
	u := fmt.Sprintf("%s/jndiTopics?count=%d", vpnURL(baseURL, vpn), MaxPageSize)
	return newTemplate(OpListTopicAliases, u, authToken, ListTimeout)
}

func queueInfoTemplate(baseURL, vpn, authToken, queueName string) RequestTemplate {
	u := vpnURL(baseURL, vpn) + "/queues/" + url.PathEscape(queueName)
	return newTemplate(OpQueueInfo, u, authToken, InfoTimeout)
}

func topicInfoTemplate(baseURL, vpn, authToken, topicEndpointName string) RequestTemplate {
	u := vpnURL(baseURL, vpn) + "/topicEndpoints/" + url.PathEscape(topicEndpointName)
	return newTemplate(OpTopicInfo, u, authToken, InfoTimeout)
}

type operationKey struct{}

func withOperation(ctx context.Context, op Operation) context.Context {
	return context.WithValue(ctx, operationKey{}, op)
}

// OperationFromContext returns the operation a request was materialised for.
func OperationFromContext(ctx context.Context) (Operation, bool) {
	op, ok := ctx.Value(operationKey{}).(Operation)
	return op, ok
}
