package components

import (
	"github.com/DevasenapathiKS/mockomi-sub001/internal/handler"
	"github.com/DevasenapathiKS/mockomi-sub001/internal/handler/api"
	"github.com/DevasenapathiKS/mockomi-sub001/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewInterviewHandler,
		api.NewAdminHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
