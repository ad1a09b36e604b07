package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

// Producer publishes booking events to Kafka. Without brokers it runs in mock
// mode and only logs what it would have sent.
type Producer struct {
	producer    sarama.SyncProducer
	mockMode    bool
	topicPrefix string
	log         *zap.Logger
}

func NewProducer(brokers []string, topicPrefix string, log *zap.Logger) (*Producer, error) {
	if len(brokers) == 0 {
		log.Info("kafka producer running in mock mode")
		return &Producer{mockMode: true, topicPrefix: topicPrefix, log: log}, nil
	}

	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create producer: %w", err)
	}

	log.Info("kafka producer connected", zap.Strings("brokers", brokers))
	return newWithSyncProducer(producer, topicPrefix, log), nil
}

func newWithSyncProducer(p sarama.SyncProducer, topicPrefix string, log *zap.Logger) *Producer {
	return &Producer{producer: p, topicPrefix: topicPrefix, log: log}
}

func (p *Producer) PublishBookingEvent(_ context.Context, event BookingEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	topic := p.TopicFor(event.Type)

	if p.mockMode {
		p.log.Debug("mock publish",
			zap.String("topic", topic),
			zap.String("booking_id", event.BookingID),
			zap.ByteString("payload", data),
		)
		return nil
	}

	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(event.BookingID),
		Value: sarama.ByteEncoder(data),
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to send message to %s: %w", topic, err)
	}

	p.log.Debug("event published",
		zap.String("topic", topic),
		zap.Int32("partition", partition),
		zap.Int64("offset", offset),
		zap.String("booking_id", event.BookingID),
	)
	return nil
}

// TopicFor maps "booking.status_changed" to "<prefix>.booking-status-changed".
func (p *Producer) TopicFor(eventType string) string {
	name := strings.NewReplacer(".", "-", "_", "-").Replace(eventType)
	if p.topicPrefix == "" {
		return name
	}
	return p.topicPrefix + "." + name
}

func (p *Producer) Close() error {
	if p.mockMode || p.producer == nil {
		return nil
	}
	return p.producer.Close()
}
