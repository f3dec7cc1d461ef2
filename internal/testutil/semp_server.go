package testutil

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
)

// Operation names understood by FakeSEMP. They match the labels used by the
// semp package.
const (
	OpListQueues       = "list_queues"
	OpListTopics       = "list_topics"
	OpListTopicAliases = "list_topic_aliases"
	OpQueueInfo        = "queue_info"
	OpTopicInfo        = "topic_info"
)

// FakeBaseURL is the management URL to use with FakeSEMP.Transport.
const FakeBaseURL = "http://semp.test:8080"

// RecordedRequest is one request seen by FakeSEMP.
type RecordedRequest struct {
	Operation     string
	Path          string
	RawQuery      string
	ContentType   string
	Authorization string
}

type forcedResponse struct {
	status int
	body   string
}

// FakeSEMP is an in-memory SEMP v2 config API for one message VPN. It serves
// list and detail calls for queues, topic endpoints and JNDI topics, enforces
// basic auth, and can be told to fail any operation.
type FakeSEMP struct {
	mu sync.Mutex

	vpn            string
	queues         []map[string]any
	topicEndpoints []map[string]any
	jndiTopics     []map[string]any

	forced   map[string]forcedResponse
	requests []RecordedRequest

	app *fiber.App
}

func NewFakeSEMP(vpn, username, password string) *FakeSEMP {
	f := &FakeSEMP{
		vpn:    vpn,
		forced: make(map[string]forcedResponse),
	}

	app := fiber.New(fiber.Config{
		AppName:               "fake-semp",
		DisableStartupMessage: true,
	})

	auth := basicauth.New(basicauth.Config{
		Users: map[string]string{username: password},
		Unauthorized: func(c *fiber.Ctx) error {
			return sempError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
		},
	})

	api := app.Group("/SEMP/v2/config/msgVpns/:vpn", auth, f.checkVPN)
	api.Get("/queues", f.handleList(OpListQueues, func() []map[string]any { return f.queues }))
	api.Get("/queues/:name", f.handleDetail(OpQueueInfo, "queueName", func() []map[string]any { return f.queues }))
	api.Get("/topicEndpoints", f.handleList(OpListTopics, func() []map[string]any { return f.topicEndpoints }))
	api.Get("/topicEndpoints/:name", f.handleDetail(OpTopicInfo, "topicEndpointName", func() []map[string]any { return f.topicEndpoints }))
	api.Get("/jndiTopics", f.handleList(OpListTopicAliases, func() []map[string]any { return f.jndiTopics }))

	f.app = app
	return f
}

// AddQueue appends a queue. Adding the same name twice makes it appear twice
// in list responses.
func (f *FakeSEMP) AddQueue(name string, fields map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queues = append(f.queues, withName("queueName", name, fields))
}

func (f *FakeSEMP) AddTopicEndpoint(name string, fields map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.topicEndpoints = append(f.topicEndpoints, withName("topicEndpointName", name, fields))
}

func (f *FakeSEMP) AddJndiTopic(logical, physical string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jndiTopics = append(f.jndiTopics, map[string]any{
		"msgVpnName":   f.vpn,
		"topicName":    logical,
		"physicalName": physical,
	})
}

// FailWith makes op answer with status and a SEMP error envelope.
func (f *FakeSEMP) FailWith(op string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.forced[op] = forcedResponse{status: status}
}

// RespondWith makes op answer with status and a raw body.
func (f *FakeSEMP) RespondWith(op string, status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.forced[op] = forcedResponse{status: status, body: body}
}

// Reset clears forced responses.
func (f *FakeSEMP) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.forced = make(map[string]forcedResponse)
}

func (f *FakeSEMP) Calls(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.requests {
		if r.Operation == op {
			n++
		}
	}
	return n
}

func (f *FakeSEMP) Requests() []RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]RecordedRequest, len(f.requests))
	copy(out, f.requests)
	return out
}

func (f *FakeSEMP) App() *fiber.App {
	return f.app
}

// Transport returns a transport that serves requests in-process.
func (f *FakeSEMP) Transport() *FiberTransport {
	return &FiberTransport{App: f.app}
}

func (f *FakeSEMP) checkVPN(c *fiber.Ctx) error {
	if c.Params("vpn") != f.vpn {
		return sempError(c, fiber.StatusBadRequest, "NOT_FOUND", fmt.Sprintf("Could not find match for msgVpnName %s", c.Params("vpn")))
	}
	return c.Next()
}

func (f *FakeSEMP) record(c *fiber.Ctx, op string) (forcedResponse, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, RecordedRequest{
		Operation:     op,
		Path:          string(c.Request().URI().PathOriginal()),
		RawQuery:      string(c.Request().URI().QueryString()),
		ContentType:   c.Get(fiber.HeaderContentType),
		Authorization: c.Get(fiber.HeaderAuthorization),
	})
	forced, ok := f.forced[op]
	return forced, ok
}

func (f *FakeSEMP) handleList(op string, items func() []map[string]any) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if forced, ok := f.record(c, op); ok {
			return respondForced(c, forced)
		}

		f.mu.Lock()
		all := items()
		f.mu.Unlock()

		count := len(all)
		if raw := c.Query("count"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 {
				return sempError(c, fiber.StatusBadRequest, "INVALID_PARAMETER", "Invalid count "+raw)
			}
			count = min(n, len(all))
		}

		var selected []string
		if sel := c.Query("select"); sel != "" {
			selected = strings.Split(sel, ",")
		}

		data := make([]map[string]any, 0, count)
		for _, item := range all[:count] {
			data = append(data, project(item, selected))
		}

		meta := fiber.Map{"count": len(all), "responseCode": fiber.StatusOK}
		if count < len(all) {
			meta["paging"] = fiber.Map{
				"cursorQuery": "next",
				"nextPageUri": c.BaseURL() + c.Path() + "?count=" + strconv.Itoa(count) + "&cursor=next",
			}
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": data, "meta": meta})
	}
}

func (f *FakeSEMP) handleDetail(op, key string, items func() []map[string]any) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if forced, ok := f.record(c, op); ok {
			return respondForced(c, forced)
		}

		name, err := url.PathUnescape(c.Params("name"))
		if err != nil {
			return sempError(c, fiber.StatusBadRequest, "INVALID_PATH", err.Error())
		}

		f.mu.Lock()
		defer f.mu.Unlock()
		for _, item := range items() {
			if item[key] == name {
				return c.Status(fiber.StatusOK).JSON(fiber.Map{
					"data": item,
					"meta": fiber.Map{"responseCode": fiber.StatusOK},
				})
			}
		}
		return sempError(c, fiber.StatusBadRequest, "NOT_FOUND", fmt.Sprintf("Could not find match for %s %s", key, name))
	}
}

func respondForced(c *fiber.Ctx, forced forcedResponse) error {
	if forced.body != "" {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Status(forced.status).SendString(forced.body)
	}
	return sempError(c, forced.status, "NOT_ALLOWED", "Forced failure")
}

func sempError(c *fiber.Ctx, status int, code, description string) error {
	return c.Status(status).JSON(fiber.Map{
		"meta": fiber.Map{
			"error": fiber.Map{
				"code":        status,
				"description": description,
				"status":      code,
			},
			"responseCode": status,
		},
	})
}

func withName(key, name string, fields map[string]any) map[string]any {
	item := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		item[k] = v
	}
	item[key] = name
	return item
}

func project(item map[string]any, fields []string) map[string]any {
	if len(fields) == 0 {
		return item
	}
	out := make(map[string]any, len(fields))
	for _, f := range fields {
		if v, ok := item[f]; ok {
			out[f] = v
		}
	}
	return out
}

// FiberTransport hands requests straight to a fiber app without a network.
type FiberTransport struct {
	App *fiber.App
}

func (t *FiberTransport) Do(req *http.Request) (*http.Response, error) {
	if err := req.Context().Err(); err != nil {
		return nil, err
	}
	return t.App.Test(req, -1)
}

// ErrConnectionRefused is what FailingTransport returns by default.
var ErrConnectionRefused = errors.New("dial tcp 127.0.0.1:8080: connect: connection refused")

// FailingTransport fails every exchange before a response is received.
type FailingTransport struct {
	Err   error
	mu    sync.Mutex
	calls int
}

func (t *FailingTransport) Do(req *http.Request) (*http.Response, error) {
	t.mu.Lock()
	t.calls++
	t.mu.Unlock()
	if t.Err != nil {
		return nil, t.Err
	}
	return nil, ErrConnectionRefused
}

func (t *FailingTransport) Calls() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.calls
}
