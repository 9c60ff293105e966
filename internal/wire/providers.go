package wire

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/wire"
	"gorm.io/gorm"

	"planetpal/internal/common"
	"planetpal/internal/config"
	"planetpal/internal/dbmongo"
	"planetpal/internal/dbmysql"
	"planetpal/internal/notif"
	"planetpal/internal/relationship"
	"planetpal/internal/tasks"
	"planetpal/internal/user"
)

// Application holds everything cmd/planet-svc serves.
type Application struct {
	Config        *config.Config
	Logger        *slog.Logger
	Tokens        *common.TokenManager
	Mongo         *dbmongo.MongoClient
	Users         *user.Handler
	Relationships *relationship.Handler
	Notifications *notif.Handler
	Tasks         *tasks.Handler
}

var StorageSet = wire.NewSet(
	ProvideMySQL,
	ProvideMongo,
	dbmongo.NewAccountStore,
	dbmongo.NewRelationshipStore,
	dbmongo.NewTaskStore,
	dbmysql.NewNotificationRepository,
)

var UserSet = wire.NewSet(
	common.NewTokenManager,
	user.NewCredentialRepository,
	user.NewUserService,
	user.NewHandler,
	wire.Bind(new(user.AccountRepository), new(*dbmongo.AccountStore)),
)

var NotificationSet = wire.NewSet(
	notif.NewKafkaWriter,
	ProvideNotificationService,
	ProvideEventPublisher,
	notif.NewHandler,
	wire.Bind(new(notif.NotificationRepository), new(*dbmysql.NotificationRepository)),
	wire.Bind(new(notif.Inbox), new(*notif.NotificationService)),
)

var RelationshipSet = wire.NewSet(
	relationship.NewManager,
	relationship.NewHandler,
	wire.Bind(new(relationship.Store), new(*dbmongo.RelationshipStore)),
)

var TaskSet = wire.NewSet(
	tasks.NewService,
	tasks.NewHandler,
	wire.Bind(new(tasks.Store), new(*dbmongo.TaskStore)),
)

func ProvideConfig() *config.Config {
	return config.LoadConfig()
}

// ProvideLogger builds the process logger and installs it as the slog
// default so packages logging through slog pick it up.
func ProvideLogger(cfg *config.Config) *slog.Logger {
	logger := common.NewLogger(cfg)
	slog.SetDefault(logger)
	return logger
}

func ProvideMySQL(cfg *config.Config) (*gorm.DB, func(), error) {
	db, err := dbmysql.NewMySQL(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return db, cleanup, nil
}

func ProvideMongo(cfg *config.Config) (*dbmongo.MongoClient, func(), error) {
	mc, err := dbmongo.NewMongoConnection(cfg)
	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := mc.EnsureIndexes(ctx); err != nil {
		_ = mc.Close(ctx)
		return nil, nil, fmt.Errorf("ensure indexes: %w", err)
	}
	slog.Info("connected to MongoDB", "database", cfg.MongoDB.Database)

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mc.Close(ctx); err != nil {
			slog.Error("failed to disconnect MongoDB", "error", err)
		}
	}
	return mc, cleanup, nil
}

func ProvideNotificationService(cfg *config.Config, repo notif.NotificationRepository, writer notif.MessageWriter) (*notif.NotificationService, func()) {
	svc := notif.NewNotificationService(cfg, repo, writer)
	return svc, svc.Shutdown
}

// ProvideEventPublisher returns a nil interface, not a typed nil, when
// notifications are disabled.
func ProvideEventPublisher(cfg *config.Config, svc *notif.NotificationService) relationship.EventPublisher {
	if !cfg.Notification.Enabled {
		return nil
	}
	return svc
}
