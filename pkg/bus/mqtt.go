package bus

import (
	"fmt"
	"strings"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/sirupsen/logrus"
)

// MQTT is the production bus on top of a paho client.
type MQTT struct {
	client paho.Client
	prefix string
}

func NewMQTT(broker, prefix string) (*MQTT, error) {
	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID("climatemaster").
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second)

	client := paho.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("broker connection timeout")
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}

	return &MQTT{client: client, prefix: prefix}, nil
}

func (m *MQTT) Subscribe(ids []string, handler Handler) error {
	topic := fmt.Sprintf("%s/state/#", m.prefix)
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	token := m.client.Subscribe(topic, 0, func(_ paho.Client, msg paho.Message) {
		id := strings.TrimPrefix(msg.Topic(), m.prefix+"/state/")
		if _, ok := wanted[id]; !ok {
			return
		}
		handler(id, string(msg.Payload()))
	})
	if !token.WaitTimeout(10 * time.Second) {
		return fmt.Errorf("subscribe timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("subscribe %s: %w", topic, err)
	}
	return nil
}

func (m *MQTT) Command(id, value string) error {
	topic := fmt.Sprintf("%s/set/%s", m.prefix, id)
	logrus.WithFields(logrus.Fields{
		"entity": id,
		"value":  value,
	}).Info("bus: command")

	token := m.client.Publish(topic, 0, false, value)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("publish timeout on %s", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

func (m *MQTT) PublishRetained(topic string, payload []byte) error {
	full := fmt.Sprintf("%s/%s", m.prefix, topic)
	token := m.client.Publish(full, 0, true, payload)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("publish timeout on %s", full)
	}
	return token.Error()
}

func (m *MQTT) Close() {
	m.client.Disconnect(1000)
}
