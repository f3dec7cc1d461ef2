// Package semp talks to the SEMP v2 management interface of a Solace broker:
// it renders request templates for one message VPN, discovers queues and topic
// endpoints, and flattens their configuration into ordered property maps.
package semp

import (
	"encoding/base64"
	"fmt"
)

// Context binds one broker connection to its management endpoint. Everything
// except the alias table is computed at construction and never changes.
type Context struct {
	partitionID string
	baseURL     string
	authToken   string

	listQueues       RequestTemplate
	listTopics       RequestTemplate
	listTopicAliases RequestTemplate

	topicAliases bool
	aliases      *AliasTable
}

type ContextOption func(*Context)

// WithTopicAliases makes topic discovery go through the JNDI topic alias layer.
func WithTopicAliases() ContextOption {
	return func(c *Context) {
		c.topicAliases = true
	}
}

// NewContext never fails: a malformed baseURL only surfaces when a request
// built from it is issued.
func NewContext(partitionID, baseURL, username, password string, opts ...ContextOption) *Context {
	c := &Context{
		partitionID: partitionID,
		baseURL:     baseURL,
		authToken:   basicAuth(username, password),
		aliases:     NewAliasTable(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.listQueues = listQueuesTemplate(baseURL, partitionID, c.authToken)
	c.listTopics = listTopicsTemplate(baseURL, partitionID, c.authToken)
	c.listTopicAliases = listTopicAliasesTemplate(baseURL, partitionID, c.authToken)
	return c
}

// basicAuth is an identification token, not a protected secret format.
func basicAuth(username, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}

func (c *Context) PartitionID() string { return c.partitionID }
func (c *Context) BaseURL() string     { return c.baseURL }

// AuthToken returns the Authorization header value. Treat it as sensitive.
func (c *Context) AuthToken() string { return c.authToken }

func (c *Context) TopicAliasesEnabled() bool { return c.topicAliases }

// Aliases returns the per-context logical to physical topic table.
func (c *Context) Aliases() *AliasTable { return c.aliases }

func (c *Context) ListQueuesRequest() RequestTemplate       { return c.listQueues }
func (c *Context) ListTopicsRequest() RequestTemplate       { return c.listTopics }
func (c *Context) ListTopicAliasesRequest() RequestTemplate { return c.listTopicAliases }

// QueueInfoRequest builds the detail template for queueName. The name is path
// escaped and otherwise not validated.
func (c *Context) QueueInfoRequest(queueName string) RequestTemplate {
	return queueInfoTemplate(c.baseURL, c.partitionID, c.authToken, queueName)
}

// TopicInfoRequest builds the detail template for a physical topic endpoint
// name. Alias resolution is the caller's job.
func (c *Context) TopicInfoRequest(topicEndpointName string) RequestTemplate {
	return topicInfoTemplate(c.baseURL, c.partitionID, c.authToken, topicEndpointName)
}

// String never includes the credentials.
func (c *Context) String() string {
	return fmt.Sprintf("semp(vpn=%s, url=%s, aliases=%t)", c.partitionID, c.baseURL, c.topicAliases)
}
