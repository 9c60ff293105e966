//go:build wireinject
// +build wireinject

package wire

import (
	"github.com/google/wire"
)

func InitializeApplication() (*Application, func(), error) {
	wire.Build(
		ProvideConfig,
		ProvideLogger,
		StorageSet,
		UserSet,
		NotificationSet,
		RelationshipSet,
		TaskSet,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil, nil
}
