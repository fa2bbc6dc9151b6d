package notification

import (
	"context"
	"encoding/json"
	"fmt"
)

// Publisher is satisfied by *mqtt.Client from pkg/mqtt
type Publisher interface {
	Publish(ctx context.Context, topic string, qos byte, retained bool, payload []byte) error
}

// MQTTNotifier publishes each event to the recipient's topic,
// {prefix}/users/{userId}/notifications, at QoS 1.
type MQTTNotifier struct {
	publisher Publisher
	prefix    string
}

func NewMQTTNotifier(publisher Publisher, prefix string) *MQTTNotifier {
	return &MQTTNotifier{publisher: publisher, prefix: prefix}
}

func (n *MQTTNotifier) Topic(event *Event) string {
	return fmt.Sprintf("%s/users/%s/notifications", n.prefix, event.UserID)
}

func (n *MQTTNotifier) Notify(ctx context.Context, event *Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}
	return n.publisher.Publish(ctx, n.Topic(event), 1, false, payload)
}
