package helpers

import (
	"context"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
)

func TestRabbitPublisher_RedialsAfterFailure(t *testing.T) {
	errDial := errors.New("connection refused")
	dials := 0
	p := &RabbitPublisher{Queue: "emails", dial: func() (*amqp.Connection, *amqp.Channel, error) {
		dials++
		return nil, nil, errDial
	}}

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, p.PublishJSON(context.Background(), map[string]string{"to": "jane@example.com"}), errDial)
	}
	// a failed dial is not cached; every publish tries the broker again
	assert.Equal(t, 3, dials)

	p.Close()
	var nilPub *RabbitPublisher
	nilPub.Close()
}

func TestRabbitPublisher_BadPayload(t *testing.T) {
	p := &RabbitPublisher{Queue: "emails", dial: func() (*amqp.Connection, *amqp.Channel, error) {
		t.Fatal("dial must not run for a payload that cannot be encoded")
		return nil, nil, nil
	}}
	assert.Error(t, p.PublishJSON(context.Background(), make(chan int)))
}
