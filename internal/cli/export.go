package cli

import (
	"context"
	"fmt"
	"os"

	exportSchedule "github.com/m04kA/SMC-ReservationService/internal/usecase/export_schedule"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

type ExportCmd struct {
	From            string `help:"First day, YYYY-MM-DD." required:""`
	To              string `help:"Last day inclusive, YYYY-MM-DD." required:""`
	Out             string `help:"Output file; defaults to schedule_<from>_<to>.xlsx." type:"path"`
	IncludeInactive bool   `help:"Include rejected and cancelled bookings."`
}

func (c *ExportCmd) Run(ctx *Context) error {
	from, err := types.ParseDate(c.From)
	if err != nil {
		return err
	}
	to, err := types.ParseDate(c.To)
	if err != nil {
		return err
	}

	st, err := ctx.open()
	if err != nil {
		return err
	}
	defer st.Close()

	result, err := exportSchedule.NewUseCase(st.resources, st.bookings, st.slots, ctx.Log).
		Execute(context.Background(), &exportSchedule.Request{From: from, To: to, IncludeInactive: c.IncludeInactive})
	if err != nil {
		return err
	}

	path := c.Out
	if path == "" {
		path = result.FileName
	}
	if err := os.WriteFile(path, result.Content, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	fmt.Fprintf(ctx.Out, "Exported %d booking(s) to %s\n", result.Rows, path)
	return nil
}
