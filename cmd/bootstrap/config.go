package bootstrap

import (
	"github.com/DevasenapathiKS/mockomi-sub001/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
)
