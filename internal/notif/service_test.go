package notif

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"planetpal/internal/common"
	"planetpal/internal/config"
	"planetpal/internal/dbmongo"
	"planetpal/internal/dbmysql"
	"planetpal/internal/relationship"
)

type recordingObserver struct {
	name string
	mu   sync.Mutex
	got  []common.NotificationEvent
	err  error
}

func (o *recordingObserver) Name() string { return o.name }

func (o *recordingObserver) Update(event common.NotificationEvent) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.got = append(o.got, event)
	return o.err
}

func (o *recordingObserver) events() []common.NotificationEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]common.NotificationEvent(nil), o.got...)
}

func TestNotificationManager_Notify(t *testing.T) {
	nm := NewNotificationManager(2, 10)
	defer nm.Shutdown()

	ok := &recordingObserver{name: "ok"}
	failing := &recordingObserver{name: "failing", err: errors.New("boom")}
	nm.Subscribe(ok)
	nm.Subscribe(failing)

	nm.Notify(sampleEvent())
	assert.Len(t, ok.events(), 1)
	assert.Len(t, failing.events(), 1)

	nm.Unsubscribe(failing)
	nm.Notify(sampleEvent())
	assert.Len(t, ok.events(), 2)
	assert.Len(t, failing.events(), 1)
}

func TestNotificationManager_NotifyAsync(t *testing.T) {
	nm := NewNotificationManager(3, 100)
	obs := &recordingObserver{name: "rec"}
	nm.Subscribe(obs)

	for i := 0; i < 20; i++ {
		nm.NotifyAsync(sampleEvent())
	}
	assert.Eventually(t, func() bool { return len(obs.events()) == 20 }, 2*time.Second, 10*time.Millisecond)

	nm.Shutdown()
	assert.NotPanics(t, func() { nm.NotifyAsync(sampleEvent()) })
}

func TestNotificationManager_DropsWhenFull(t *testing.T) {
	block := make(chan struct{})
	nm := NewNotificationManager(1, 1)
	nm.Subscribe(&blockingObserver{release: block})

	for i := 0; i < 10; i++ {
		assert.NotPanics(t, func() { nm.NotifyAsync(sampleEvent()) })
	}
	close(block)
	nm.Shutdown()
}

type blockingObserver struct {
	release chan struct{}
}

func (b *blockingObserver) Name() string { return "blocking" }

func (b *blockingObserver) Update(common.NotificationEvent) error {
	<-b.release
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Notification: config.NotificationConfig{Enabled: true, Workers: 2, ChannelBufferSize: 10},
	}
}

func TestNotificationService_Publish(t *testing.T) {
	req := &dbmongo.FriendRequest{ID: "u1_u2", FromID: "u1", ToID: "u2", FromName: "Alice", ToName: "Bea"}

	tests := []struct {
		name      string
		eventType relationship.EventType
		wantUser  string
		wantType  common.NotificationType
		wantText  string
	}{
		{"sent", relationship.EventRequestSent, "u2", common.FriendRequestType, "Alice sent you a friend request"},
		{"accepted", relationship.EventRequestAccepted, "u1", common.FriendAcceptedType, "Bea accepted your friend request"},
		{"rejected", relationship.EventRequestRejected, "u1", common.FriendRejectedType, "Bea declined your friend request"},
		{"cancelled", relationship.EventRequestCancelled, "u2", common.FriendCancelledType, "Alice withdrew their friend request"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockNotificationRepository)
			stored := make(chan *dbmysql.Notification, 1)
			repo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
				stored <- args.Get(1).(*dbmysql.Notification)
			}).Return(nil).Once()

			svc := NewNotificationService(testConfig(), repo, nil)
			defer svc.Shutdown()

			svc.Publish(context.Background(), relationship.Event{Type: tt.eventType, Request: req, ActorID: "x", At: time.Now()})

			select {
			case n := <-stored:
				assert.Equal(t, tt.wantUser, n.UserID)
				assert.Equal(t, string(tt.wantType), n.Type)
				assert.Equal(t, tt.wantText, n.Content)
				assert.Equal(t, "u1_u2", n.Metadata["request_id"])
			case <-time.After(2 * time.Second):
				t.Fatal("notification was not stored")
			}
		})
	}
}

func TestNotificationService_PublishIgnoresIncompleteEvents(t *testing.T) {
	repo := new(MockNotificationRepository)
	svc := NewNotificationService(testConfig(), repo, nil)

	svc.Publish(context.Background(), relationship.Event{Type: relationship.EventRequestSent})
	svc.Publish(context.Background(), relationship.Event{Type: "unknown", Request: &dbmongo.FriendRequest{FromID: "a", ToID: "b"}})

	svc.Shutdown()
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestNotificationService_PublishWithKafka(t *testing.T) {
	repo := new(MockNotificationRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	writer := new(MockMessageWriter)
	written := make(chan struct{}, 1)
	writer.On("WriteMessages", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		written <- struct{}{}
	}).Return(nil).Once()
	writer.On("Close").Return(nil).Once()

	svc := NewNotificationService(testConfig(), repo, writer)
	svc.Publish(context.Background(), relationship.Event{
		Type:    relationship.EventRequestSent,
		Request: &dbmongo.FriendRequest{ID: "u1_u2", FromID: "u1", ToID: "u2"},
	})

	select {
	case <-written:
	case <-time.After(2 * time.Second):
		t.Fatal("kafka message was not written")
	}
	svc.Shutdown()
	writer.AssertExpectations(t)
}

func TestNotificationService_SendNotificationValidation(t *testing.T) {
	svc := NewNotificationService(testConfig(), new(MockNotificationRepository), nil)
	defer svc.Shutdown()
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*common.NotificationEvent)
		errMsg string
	}{
		{"missing user", func(e *common.NotificationEvent) { e.UserID = "" }, "user_id is required"},
		{"missing header", func(e *common.NotificationEvent) { e.Header = "" }, "header is required"},
		{"missing content", func(e *common.NotificationEvent) { e.Content = "" }, "content is required"},
		{"priority too low", func(e *common.NotificationEvent) { e.Priority = 0 }, "priority must be between 1 and 5"},
		{"priority too high", func(e *common.NotificationEvent) { e.Priority = 6 }, "priority must be between 1 and 5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := sampleEvent()
			tt.mutate(&event)
			err := svc.SendNotification(ctx, event)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestNotificationService_UserNotifications(t *testing.T) {
	repo := new(MockNotificationRepository)
	svc := NewNotificationService(testConfig(), repo, nil)
	defer svc.Shutdown()
	ctx := context.Background()

	created := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	repo.On("ByUserID", ctx, "u2", 20, 0).Return([]*dbmysql.Notification{
		{ID: "n1", UserID: "u2", Type: "friend_request", Header: "h", Content: "c", Status: "pending", Priority: 3, CreatedAt: created},
	}, nil).Once()
	repo.On("UnreadCount", ctx, "u2").Return(int64(1), nil).Once()

	list, unread, err := svc.UserNotifications(ctx, "u2", 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)
	require.Len(t, list, 1)
	assert.Equal(t, "n1", list[0].ID)
	assert.Equal(t, created, list[0].CreatedAt)

	repo.On("ByUserID", ctx, "u3", 20, 0).Return(nil, errors.New("db down")).Once()
	_, _, err = svc.UserNotifications(ctx, "u3", 20, 0)
	require.Error(t, err)

	repo.On("MarkAsRead", ctx, "n1", "u2").Return(nil).Once()
	require.NoError(t, svc.MarkAsRead(ctx, "n1", "u2"))
	repo.AssertExpectations(t)
}
