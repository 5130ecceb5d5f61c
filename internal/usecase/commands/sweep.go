package commands

import (
	"context"

	"github.com/DevasenapathiKS/mockomi-sub001/internal/pkg/clock"
	"github.com/DevasenapathiKS/mockomi-sub001/internal/usecase/shared"
)

// SweepCommands expires stale unclaimed requests. Safe to run on a schedule
// and concurrently with live claims: the bulk update is conditional on
// status, so a row claimed mid-sweep is simply not matched.
type SweepCommands interface {
	SweepExpired(ctx context.Context) (int64, error)
}

type sweepCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewSweepCommands(uow shared.UnitOfWork, clk clock.Clock) SweepCommands {
	return &sweepCommandsImpl{uow: uow, clock: clk}
}

func (c *sweepCommandsImpl) SweepExpired(ctx context.Context) (int64, error) {
	return c.uow.Interviews().SweepExpired(ctx, c.clock.Now())
}
