package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/app"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/notification"
	completeExpired "github.com/m04kA/SMC-ReservationService/internal/usecase/complete_expired"
	transitionBooking "github.com/m04kA/SMC-ReservationService/internal/usecase/transition_booking"
	"github.com/m04kA/SMC-ReservationService/pkg/metrics"
	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
)

type CompleteExpiredCmd struct {
	BatchSize int `help:"Bookings per batch; defaults to completion.batch_size."`
}

func (c *CompleteExpiredCmd) Run(ctx *Context) error {
	st, err := ctx.open()
	if err != nil {
		return err
	}
	defer st.Close()

	cfg := ctx.Config.Notifications
	sender, err := app.NewSender(cfg, ctx.Log)
	if err != nil {
		return err
	}
	defer sender.Close()

	var noMetrics *metrics.Metrics
	dispatcher := notification.NewDispatcher(sender, cfg.QueueSize, cfg.Workers,
		time.Duration(cfg.PublishTimeout)*time.Second, noMetrics, ctx.Log)

	transitioner := transitionBooking.NewUseCase(st.resources, st.bookings, txmanager.NewTransactionManager(st.wrapped),
		dispatcher, noMetrics, st.slots, ctx.Log)

	batchSize := c.BatchSize
	if batchSize <= 0 {
		batchSize = ctx.Config.Completion.BatchSize
	}

	result, runErr := completeExpired.NewUseCase(st.bookings, transitioner, st.slots, batchSize, ctx.Log).
		Execute(context.Background())

	closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := dispatcher.Close(closeCtx); err != nil {
		ctx.Log.Warn("CompleteExpired: notifications not delivered: %v", err)
	}

	if runErr != nil {
		return runErr
	}

	fmt.Fprintf(ctx.Out, "Completed %d booking(s), %d failed\n", result.Completed, result.Failed)
	return nil
}
