package dbmysql

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"planetpal/internal/common"
)

// openTestDB connects to the database named by PLANETPAL_MYSQL_TEST_DSN,
// e.g. planetpal:planetpal123@tcp(localhost:3306)/planetpal_test?parseTime=true
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("PLANETPAL_MYSQL_TEST_DSN")
	if dsn == "" {
		t.Skip("PLANETPAL_MYSQL_TEST_DSN not set")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	return db
}

func TestNotificationRepository_Lifecycle(t *testing.T) {
	db := openTestDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	userID := uuid.NewString()
	t.Cleanup(func() { db.Where("user_id = ?", userID).Delete(&Notification{}) })

	first := &Notification{
		ID:       uuid.NewString(),
		UserID:   userID,
		Header:   "New Friend Request",
		Content:  "Bea sent you a friend request",
		Type:     string(common.FriendRequestType),
		Status:   string(common.StatusPending),
		Priority: 3,
		Metadata: common.NotificationMetadata{"request_id": "u1_u2"},
	}
	require.NoError(t, repo.Create(ctx, first))

	list, err := repo.ByUserID(ctx, userID, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "u1_u2", list[0].Metadata["request_id"])

	unread, err := repo.UnreadCount(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	require.NoError(t, repo.MarkAsRead(ctx, first.ID, userID))
	unread, err = repo.UnreadCount(ctx, userID)
	require.NoError(t, err)
	assert.Zero(t, unread)

	err = repo.MarkAsRead(ctx, first.ID, "someone-else")
	assert.True(t, errors.Is(err, ErrNotificationNotFound))
}
