package helpers

import (
	"encoding/json"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONMessage(t *testing.T) {
	msg, err := jsonMessage(map[string]string{"to": "a@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Len(t, msg.MessageId, 36)

	var body map[string]string
	require.NoError(t, json.Unmarshal(msg.Body, &body))
	assert.Equal(t, "a@example.com", body["to"])

	_, err = jsonMessage(make(chan int))
	assert.Error(t, err)
}

func TestRabbitPublisher_CloseNil(t *testing.T) {
	var p *RabbitPublisher
	assert.NotPanics(t, p.Close)
}
