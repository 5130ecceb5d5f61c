package components

import (
	"github.com/DevasenapathiKS/mockomi-sub001/internal/infra/gateway"
	"github.com/DevasenapathiKS/mockomi-sub001/internal/pkg/config"
	"github.com/DevasenapathiKS/mockomi-sub001/internal/usecase/commands"

	"go.uber.org/fx"
)

var GatewayModule = fx.Module("gateway",
	fx.Provide(
		fx.Annotate(
			gateway.NewPaymentGateway,
			fx.As(new(commands.PaymentGateway)),
		),
		fx.Annotate(
			NewMeetingService,
			fx.As(new(commands.MeetingService)),
		),
		fx.Annotate(
			gateway.NewNotifier,
			fx.As(new(commands.Notifier)),
		),
	),
)

func NewMeetingService(cfg config.Config) *gateway.MeetingService {
	return gateway.NewMeetingService(cfg.Meeting)
}
