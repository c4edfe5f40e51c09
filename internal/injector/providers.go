package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/crowdsim/internal/core/driver"
	"github.com/zeusync/crowdsim/internal/core/engine"
	"github.com/zeusync/crowdsim/internal/core/events/bus"
	"github.com/zeusync/crowdsim/internal/core/observability/log"
	"github.com/zeusync/crowdsim/internal/core/scenario"
	"github.com/zeusync/crowdsim/internal/viewer"
)

// App is everything one simulation run needs.
type App struct {
	Config      *scenario.Config
	Logger      log.Log
	Bus         bus.EventBus
	Driver      *driver.Driver
	Broadcaster *viewer.Broadcaster
}

var ProviderSet = wire.NewSet(
	ProvideLogger,
	ProvideBus,
	ProvideEngine,
	ProvideDriver,
	ProvideBroadcaster,
	wire.Struct(new(App), "*"),
)

func ProvideLogger(level log.Level) log.Log {
	return log.New(level)
}

func ProvideBus() bus.EventBus {
	return bus.New()
}

func ProvideEngine() engine.Engine {
	return engine.NewKinematic()
}

func ProvideDriver(eng engine.Engine, cfg *scenario.Config, b bus.EventBus, l log.Log) (*driver.Driver, error) {
	return driver.Setup(eng, cfg, driver.WithBus(b), driver.WithLogger(l))
}

// ProvideBroadcaster attaches a viewer broadcaster to the bus when display
// is enabled, and returns nil otherwise.
func ProvideBroadcaster(cfg *scenario.Config, b bus.EventBus, l log.Log) (*viewer.Broadcaster, error) {
	if !cfg.Display.Enabled {
		return nil, nil
	}
	br := viewer.NewBroadcaster(l)
	if err := br.Attach(b); err != nil {
		return nil, err
	}
	return br, nil
}
