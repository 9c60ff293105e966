package notif

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"planetpal/internal/common"
	"planetpal/internal/config"
	"planetpal/internal/dbmysql"
	"planetpal/internal/relationship"
)

// NotificationRepository is the inbox storage. *dbmysql.NotificationRepository
// satisfies it.
type NotificationRepository interface {
	Create(ctx context.Context, notification *dbmysql.Notification) error
	ByUserID(ctx context.Context, userID string, limit, offset int) ([]*dbmysql.Notification, error)
	MarkAsRead(ctx context.Context, id, userID string) error
	UnreadCount(ctx context.Context, userID string) (int64, error)
}

type NotificationManager struct {
	observers    map[string]common.Observer
	eventChannel chan common.NotificationEvent
	workerPool   int
	ctx          context.Context
	cancel       context.CancelFunc
	mu           sync.RWMutex
	wg           sync.WaitGroup
}

var _ common.Subject = (*NotificationManager)(nil)

func NewNotificationManager(workerPoolSize, bufferSize int) *NotificationManager {
	if workerPoolSize <= 0 {
		workerPoolSize = 1
	}
	if bufferSize <= 0 {
		bufferSize = 1000
	}
	ctx, cancel := context.WithCancel(context.Background())

	nm := &NotificationManager{
		observers:    make(map[string]common.Observer),
		eventChannel: make(chan common.NotificationEvent, bufferSize),
		workerPool:   workerPoolSize,
		ctx:          ctx,
		cancel:       cancel,
	}

	for i := 0; i < workerPoolSize; i++ {
		nm.wg.Add(1)
		go nm.processEvents()
	}

	return nm
}

func (nm *NotificationManager) Subscribe(observer common.Observer) {
	nm.mu.Lock()
	defer nm.mu.Unlock()
	nm.observers[observer.Name()] = observer
	slog.Info("observer subscribed", "observer", observer.Name())
}

func (nm *NotificationManager) Unsubscribe(observer common.Observer) {
	nm.mu.Lock()
	defer nm.mu.Unlock()
	delete(nm.observers, observer.Name())
	slog.Info("observer unsubscribed", "observer", observer.Name())
}

func (nm *NotificationManager) Notify(event common.NotificationEvent) {
	nm.mu.RLock()
	observers := make([]common.Observer, 0, len(nm.observers))
	for _, obs := range nm.observers {
		observers = append(observers, obs)
	}
	nm.mu.RUnlock()

	for _, observer := range observers {
		if err := observer.Update(event); err != nil {
			slog.Error("observer update failed", "observer", observer.Name(), "type", event.Type, "error", err)
		}
	}
}

// NotifyAsync queues the event for the worker pool. It never blocks: when
// the buffer is full the event is dropped.
func (nm *NotificationManager) NotifyAsync(event common.NotificationEvent) {
	select {
	case <-nm.ctx.Done():
		return
	default:
	}

	select {
	case nm.eventChannel <- event:
	default:
		slog.Warn("notification channel full, dropping event", "type", event.Type, "user", event.UserID)
	}
}

func (nm *NotificationManager) processEvents() {
	defer nm.wg.Done()

	for {
		select {
		case event := <-nm.eventChannel:
			nm.Notify(event)
		case <-nm.ctx.Done():
			return
		}
	}
}

// Shutdown stops the workers. The channel stays open so a late NotifyAsync
// cannot panic.
func (nm *NotificationManager) Shutdown() {
	nm.cancel()
	nm.wg.Wait()
	slog.Info("notification manager shutdown complete")
}

type NotificationService struct {
	manager *NotificationManager
	repo    NotificationRepository
	kafka   *KafkaObserver
}

var _ relationship.EventPublisher = (*NotificationService)(nil)

// NewNotificationService starts the worker pool with a database observer
// and, when writer is non-nil, a Kafka observer.
func NewNotificationService(cfg *config.Config, repo NotificationRepository, writer MessageWriter) *NotificationService {
	manager := NewNotificationManager(cfg.Notification.Workers, cfg.Notification.ChannelBufferSize)
	manager.Subscribe(NewDatabaseNotificationObserver(repo))

	service := &NotificationService{
		manager: manager,
		repo:    repo,
	}

	if writer != nil {
		service.kafka = NewKafkaObserver(writer)
		manager.Subscribe(service.kafka)
	}

	return service
}

// SendNotification queues a validated event for delivery.
func (s *NotificationService) SendNotification(ctx context.Context, event common.NotificationEvent) error {
	if err := s.validateEvent(event); err != nil {
		return fmt.Errorf("invalid notification event: %w", err)
	}

	s.manager.NotifyAsync(event)
	slog.DebugContext(ctx, "notification queued", "type", event.Type, "user", event.UserID)
	return nil
}

// Publish tells the other party of a relationship mutation.
func (s *NotificationService) Publish(ctx context.Context, ev relationship.Event) {
	event, ok := eventFor(ev)
	if !ok {
		return
	}
	if err := s.SendNotification(ctx, event); err != nil {
		slog.WarnContext(ctx, "relationship notification skipped", "event", ev.Type, "error", err)
	}
}

func eventFor(ev relationship.Event) (common.NotificationEvent, bool) {
	req := ev.Request
	if req == nil {
		return common.NotificationEvent{}, false
	}

	event := common.NotificationEvent{
		Metadata: common.NotificationMetadata{
			"request_id": req.ID,
			"from_id":    req.FromID,
			"to_id":      req.ToID,
			"action":     string(ev.Type),
		},
		CreatedAt: ev.At,
	}

	from, to := req.FromID, req.ToID
	switch ev.Type {
	case relationship.EventRequestSent:
		event.Type = common.FriendRequestType
		event.UserID, event.TriggerUserID = to, &from
		event.Header = "New Friend Request"
		event.Content = fmt.Sprintf("%s sent you a friend request", nameOr(req.FromName))
		event.Priority = 3
	case relationship.EventRequestAccepted:
		event.Type = common.FriendAcceptedType
		event.UserID, event.TriggerUserID = from, &to
		event.Header = "Friend Request Accepted"
		event.Content = fmt.Sprintf("%s accepted your friend request", nameOr(req.ToName))
		event.Priority = 3
	case relationship.EventRequestRejected:
		event.Type = common.FriendRejectedType
		event.UserID, event.TriggerUserID = from, &to
		event.Header = "Friend Request Declined"
		event.Content = fmt.Sprintf("%s declined your friend request", nameOr(req.ToName))
		event.Priority = 1
	case relationship.EventRequestCancelled:
		event.Type = common.FriendCancelledType
		event.UserID, event.TriggerUserID = to, &from
		event.Header = "Friend Request Withdrawn"
		event.Content = fmt.Sprintf("%s withdrew their friend request", nameOr(req.FromName))
		event.Priority = 1
	default:
		return common.NotificationEvent{}, false
	}
	return event, true
}

func nameOr(name string) string {
	if name == "" {
		return "Someone"
	}
	return name
}

func (s *NotificationService) UserNotifications(ctx context.Context, userID string, limit, offset int) ([]*common.NotificationResponse, int64, error) {
	notifications, err := s.repo.ByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get notifications: %w", err)
	}

	unread, err := s.repo.UnreadCount(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*common.NotificationResponse, len(notifications))
	for i, n := range notifications {
		responses[i] = &common.NotificationResponse{
			ID:        n.ID,
			Type:      n.Type,
			Header:    n.Header,
			Content:   n.Content,
			Status:    n.Status,
			Priority:  n.Priority,
			Metadata:  n.Metadata,
			CreatedAt: n.CreatedAt,
			ReadAt:    n.ReadAt,
		}
	}
	return responses, unread, nil
}

func (s *NotificationService) MarkAsRead(ctx context.Context, notificationID, userID string) error {
	return s.repo.MarkAsRead(ctx, notificationID, userID)
}

func (s *NotificationService) validateEvent(event common.NotificationEvent) error {
	switch {
	case event.UserID == "":
		return errors.New("user_id is required")
	case event.Header == "":
		return errors.New("header is required")
	case event.Content == "":
		return errors.New("content is required")
	case event.Priority < 1 || event.Priority > 5:
		return errors.New("priority must be between 1 and 5")
	}
	return nil
}

func (s *NotificationService) Shutdown() {
	s.manager.Shutdown()
	if s.kafka != nil {
		if err := s.kafka.Close(); err != nil {
			slog.Error("failed to close kafka writer", "error", err)
		}
	}
	slog.Info("notification service shutdown complete")
}
