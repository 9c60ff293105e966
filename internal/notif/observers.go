package notif

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"planetpal/internal/common"
	"planetpal/internal/config"
	"planetpal/internal/dbmysql"
)

const writeTimeout = 5 * time.Second

type DatabaseNotificationObserver struct {
	repo NotificationRepository
	now  func() time.Time
}

func NewDatabaseNotificationObserver(repo NotificationRepository) *DatabaseNotificationObserver {
	return &DatabaseNotificationObserver{
		repo: repo,
		now:  time.Now,
	}
}

func (d *DatabaseNotificationObserver) Name() string {
	return "database_observer"
}

func (d *DatabaseNotificationObserver) Update(event common.NotificationEvent) error {
	now := d.now()
	notification := &dbmysql.Notification{
		ID:            uuid.NewString(),
		UserID:        event.UserID,
		Type:          string(event.Type),
		Header:        event.Header,
		Content:       event.Content,
		Priority:      event.Priority,
		Status:        string(common.StatusPending),
		Metadata:      event.Metadata,
		TriggerUserID: event.TriggerUserID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := d.repo.Create(ctx, notification); err != nil {
		return fmt.Errorf("failed to store notification: %w", err)
	}
	return nil
}

// MessageWriter is the part of *kafka.Writer the observer needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// NewKafkaWriter returns a writer for the configured topic, or nil when
// Kafka is disabled.
func NewKafkaWriter(cfg *config.Config) MessageWriter {
	if !cfg.Kafka.Enabled || len(cfg.Kafka.Brokers) == 0 {
		return nil
	}
	return &kafka.Writer{
		Addr:         kafka.TCP(cfg.Kafka.Brokers...),
		Topic:        cfg.Kafka.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		WriteTimeout: writeTimeout,
	}
}

type kafkaPayload struct {
	Type          common.NotificationType     `json:"type"`
	UserID        string                      `json:"user_id"`
	TriggerUserID *string                     `json:"trigger_user_id,omitempty"`
	Header        string                      `json:"header"`
	Content       string                      `json:"content"`
	Priority      int                         `json:"priority"`
	Metadata      common.NotificationMetadata `json:"metadata,omitempty"`
	CreatedAt     time.Time                   `json:"created_at"`
}

// KafkaObserver forwards notifications to a topic keyed by recipient.
type KafkaObserver struct {
	writer MessageWriter
}

func NewKafkaObserver(writer MessageWriter) *KafkaObserver {
	return &KafkaObserver{writer: writer}
}

func (k *KafkaObserver) Name() string {
	return "kafka_observer"
}

func (k *KafkaObserver) Update(event common.NotificationEvent) error {
	value, err := json.Marshal(kafkaPayload{
		Type:          event.Type,
		UserID:        event.UserID,
		TriggerUserID: event.TriggerUserID,
		Header:        event.Header,
		Content:       event.Content,
		Priority:      event.Priority,
		Metadata:      event.Metadata,
		CreatedAt:     event.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := k.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.UserID),
		Value: value,
	}); err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}
	return nil
}

func (k *KafkaObserver) Close() error {
	return k.writer.Close()
}
