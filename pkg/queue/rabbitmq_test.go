package queue

import (
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPublishing(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	msg, err := newPublishing(map[string]string{"rankingId": "r1"}, now)
	require.NoError(t, err)

	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, now, msg.Timestamp)
	assert.JSONEq(t, `{"rankingId":"r1"}`, string(msg.Body))
}

func TestNewPublishing_Unmarshalable(t *testing.T) {
	_, err := newPublishing(map[string]interface{}{"bad": make(chan int)}, time.Now())
	assert.Error(t, err)
}
