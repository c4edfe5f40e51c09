//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/crowdsim/internal/core/observability/log"
	"github.com/zeusync/crowdsim/internal/core/scenario"
)

func InitializeApp(cfg *scenario.Config, level log.Level) (*App, error) {
	wire.Build(ProviderSet)
	return nil, nil
}
