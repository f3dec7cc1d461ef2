package models

type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

type DestinationListResponse struct {
	VPN    string            `json:"vpn"`
	Queues []ResourceSummary `json:"queues"`
	Topics []ResourceSummary `json:"topics"`
}

// ResourceInfoResponse carries the configuration of one queue or topic. An
// empty Properties object means the broker had no information for it.
type ResourceInfoResponse struct {
	Name       string      `json:"name"`
	Kind       string      `json:"kind"`
	Properties *Properties `json:"properties"`
}

type HealthResponse struct {
	Status       string `json:"status"`
	Version      string `json:"version,omitempty"`
	OpenContexts int    `json:"openContexts"`
}
