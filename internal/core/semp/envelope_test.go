package semp

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEnvelope_List(t *testing.T) {
	body := []byte(`{"data":[{"queueName":"Q1"},{"queueName":"Q2"}],"meta":{"count":2,"responseCode":200}}`)

	queues, err := decodeEnvelope[[]QueueData](body)
	require.NoError(t, err)
	require.Len(t, queues, 2)
	assert.Equal(t, "Q1", queues[0].QueueName)
	assert.Equal(t, "Q2", queues[1].QueueName)
}

func TestDecodeEnvelope_EmptyList(t *testing.T) {
	queues, err := decodeEnvelope[[]QueueData]([]byte(`{"data":[],"meta":{"count":0}}`))
	require.NoError(t, err)
	assert.Empty(t, queues)
}

func TestDecodeEnvelope_Single(t *testing.T) {
	body := []byte(`{"data":{"queueName":"Q1","maxMsgSize":10000000,"egressEnabled":true},"meta":{}}`)

	q, err := decodeEnvelope[QueueData](body)
	require.NoError(t, err)
	assert.Equal(t, "Q1", q.QueueName)
	require.NotNil(t, q.MaxMsgSize)
	assert.Equal(t, int32(10000000), *q.MaxMsgSize)
	require.NotNil(t, q.EgressEnabled)
	assert.True(t, *q.EgressEnabled)
	assert.Nil(t, q.DeadMsgQueue)
}

func TestDecodeEnvelope_Errors(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantMissing bool
	}{
		{name: "malformed JSON", body: `{"data":[`},
		{name: "empty body", body: ``},
		{name: "missing data", body: `{"meta":{"responseCode":200}}`, wantMissing: true},
		{name: "null data", body: `{"data":null}`, wantMissing: true},
		{name: "wrong shape", body: `{"data":{"queueName":"Q1"}}`},
		{name: "wrong field type", body: `{"data":[{"queueName":42}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeEnvelope[[]QueueData]([]byte(tt.body))
			require.Error(t, err)
			assert.Equal(t, tt.wantMissing, errors.Is(err, ErrMissingData))
		})
	}
}

func TestMetaDetail(t *testing.T) {
	body := []byte(`{"meta":{"error":{"code":6,"description":"Could not find match for queue","status":"NOT_FOUND"},"responseCode":400}}`)

	assert.Equal(t, "NOT_FOUND: Could not find match for queue", metaDetail(body))
	assert.Equal(t, "", metaDetail([]byte(`{"meta":{"responseCode":500}}`)))
	assert.Equal(t, "", metaDetail([]byte(`<html>Service Unavailable</html>`)))
}

func TestNextPageURI(t *testing.T) {
	body := []byte(`{"data":[],"meta":{"paging":{"cursorQuery":"abc","nextPageUri":"http://h/SEMP/v2/config/msgVpns/default/queues?cursor=abc"}}}`)

	assert.Equal(t, "http://h/SEMP/v2/config/msgVpns/default/queues?cursor=abc", nextPageURI(body))
	assert.Equal(t, "", nextPageURI([]byte(`{"data":[]}`)))
}
