package semp

import "github.com/ottermq/sempctl/internal/core/models"

// QueueData is the SEMP v2 config representation of a queue. Pointer fields
// are absent from the payload when nil. Unlike topic endpoints, ingressEnabled
// is not part of the queue detail.
type QueueData struct {
	QueueName                          string  `json:"queueName"`
	AccessType                         *string `json:"accessType,omitempty"`
	ConsumerAckPropagationEnabled      *bool   `json:"consumerAckPropagationEnabled,omitempty"`
	DeadMsgQueue                       *string `json:"deadMsgQueue,omitempty"`
	EgressEnabled                      *bool   `json:"egressEnabled,omitempty"`
	MaxBindCount                       *int64  `json:"maxBindCount,omitempty"`
	MaxDeliveredUnackedMsgsPerFlow     *int64  `json:"maxDeliveredUnackedMsgsPerFlow,omitempty"`
	MaxMsgSize                         *int32  `json:"maxMsgSize,omitempty"`
	MaxMsgSpoolUsage                   *int64  `json:"maxMsgSpoolUsage,omitempty"`
	MaxRedeliveryCount                 *int64  `json:"maxRedeliveryCount,omitempty"`
	MaxTTL                             *int64  `json:"maxTtl,omitempty"`
	Permission                         *string `json:"permission,omitempty"`
	RejectLowPriorityMsgEnabled        *bool   `json:"rejectLowPriorityMsgEnabled,omitempty"`
	RejectLowPriorityMsgLimit          *int64  `json:"rejectLowPriorityMsgLimit,omitempty"`
	RejectMsgToSenderOnDiscardBehavior *string `json:"rejectMsgToSenderOnDiscardBehavior,omitempty"`
	RespectMsgPriorityEnabled          *bool   `json:"respectMsgPriorityEnabled,omitempty"`
	RespectTTLEnabled                  *bool   `json:"respectTtlEnabled,omitempty"`
}

// TopicEndpointData is the SEMP v2 config representation of a topic endpoint.
type TopicEndpointData struct {
	TopicEndpointName              string  `json:"topicEndpointName"`
	AccessType                     *string `json:"accessType,omitempty"`
	ConsumerAckPropagationEnabled  *bool   `json:"consumerAckPropagationEnabled,omitempty"`
	DeadMsgQueue                   *string `json:"deadMsgQueue,omitempty"`
	EgressEnabled                  *bool   `json:"egressEnabled,omitempty"`
	IngressEnabled                 *bool   `json:"ingressEnabled,omitempty"`
	MaxBindCount                   *int64  `json:"maxBindCount,omitempty"`
	MaxDeliveredUnackedMsgsPerFlow *int64  `json:"maxDeliveredUnackedMsgsPerFlow,omitempty"`
	MaxMsgSize                     *int32  `json:"maxMsgSize,omitempty"`
	MaxRedeliveryCount             *int64  `json:"maxRedeliveryCount,omitempty"`
	MaxSpoolUsage                  *int64  `json:"maxSpoolUsage,omitempty"`
	MaxTTL                         *int64  `json:"maxTtl,omitempty"`
	Permission                     *string `json:"permission,omitempty"`
	RejectLowPriorityMsgEnabled    *bool   `json:"rejectLowPriorityMsgEnabled,omitempty"`
	RejectLowPriorityMsgLimit      *int64  `json:"rejectLowPriorityMsgLimit,omitempty"`
	RespectMsgPriorityEnabled      *bool   `json:"respectMsgPriorityEnabled,omitempty"`
	RespectTTLEnabled              *bool   `json:"respectTtlEnabled,omitempty"`
}

// JndiTopicData is a JNDI topic alias: topicName is the logical name shown to
// users, physicalName the broker resource behind it.
type JndiTopicData struct {
	TopicName    string `json:"topicName"`
	PhysicalName string `json:"physicalName"`
}

func (q *QueueData) Properties() *models.Properties {
	p := models.NewProperties()
	models.PutPtr(p, "accessType", q.AccessType)
	models.PutPtr(p, "consumerAckPropagationEnabled", q.ConsumerAckPropagationEnabled)
	models.PutPtr(p, "deadMsgQueue", q.DeadMsgQueue)
	models.PutPtr(p, "egressEnabled", q.EgressEnabled)
	models.PutPtr(p, "maxBindCount", q.MaxBindCount)
	models.PutPtr(p, "maxDeliveredUnackedMsgsPerFlow", q.MaxDeliveredUnackedMsgsPerFlow)
	models.PutPtr(p, "maxMsgSize", q.MaxMsgSize)
	models.PutPtr(p, "maxMsgSpoolUsage", q.MaxMsgSpoolUsage)
	models.PutPtr(p, "maxRedeliveryCount", q.MaxRedeliveryCount)
	models.PutPtr(p, "maxTtl", q.MaxTTL)
	models.PutPtr(p, "permission", q.Permission)
	models.PutPtr(p, "rejectLowPriorityMsgEnabled", q.RejectLowPriorityMsgEnabled)
	models.PutPtr(p, "rejectLowPriorityMsgLimit", q.RejectLowPriorityMsgLimit)
	models.PutPtr(p, "rejectMsgToSenderOnDiscardBehavior", q.RejectMsgToSenderOnDiscardBehavior)
	models.PutPtr(p, "respectMsgPriorityEnabled", q.RespectMsgPriorityEnabled)
	models.PutPtr(p, "respectTtlEnabled", q.RespectTTLEnabled)
	return p
}

func (t *TopicEndpointData) Properties() *models.Properties {
	p := models.NewProperties()
	models.PutPtr(p, "accessType", t.AccessType)
	models.PutPtr(p, "consumerAckPropagationEnabled", t.ConsumerAckPropagationEnabled)
	models.PutPtr(p, "deadMsgQueue", t.DeadMsgQueue)
	models.PutPtr(p, "egressEnabled", t.EgressEnabled)
	models.PutPtr(p, "ingressEnabled", t.IngressEnabled)
	models.PutPtr(p, "maxBindCount", t.MaxBindCount)
	models.PutPtr(p, "maxDeliveredUnackedMsgsPerFlow", t.MaxDeliveredUnackedMsgsPerFlow)
	models.PutPtr(p, "maxMsgSize", t.MaxMsgSize)
	models.PutPtr(p, "maxRedeliveryCount", t.MaxRedeliveryCount)
	models.PutPtr(p, "maxSpoolUsage", t.MaxSpoolUsage)
	models.PutPtr(p, "maxTtl", t.MaxTTL)
	models.PutPtr(p, "permission", t.Permission)
	models.PutPtr(p, "rejectLowPriorityMsgEnabled", t.RejectLowPriorityMsgEnabled)
	models.PutPtr(p, "rejectLowPriorityMsgLimit", t.RejectLowPriorityMsgLimit)
	models.PutPtr(p, "respectMsgPriorityEnabled", t.RespectMsgPriorityEnabled)
	models.PutPtr(p, "respectTtlEnabled", t.RespectTTLEnabled)
	return p
}
