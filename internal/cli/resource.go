package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/m04kA/SMC-ReservationService/internal/service/resources"
	"github.com/m04kA/SMC-ReservationService/internal/service/resources/models"
)

type ResourceAddCmd struct {
	Name     string `help:"Unique resource name." required:""`
	Category string `help:"Resource category, e.g. room or lab." required:""`
	Capacity int    `help:"Number of seats." required:""`
}

func (c *ResourceAddCmd) Run(ctx *Context) error {
	st, err := ctx.open()
	if err != nil {
		return err
	}
	defer st.Close()

	created, err := resources.NewService(st.resources, ctx.Log).Create(context.Background(), &models.CreateResourceRequest{
		Name:     c.Name,
		Category: c.Category,
		Capacity: c.Capacity,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(ctx.Out, "Created resource %d: %s (%s, %d seats)\n", created.ID, created.Name, created.Category, created.Capacity)
	return nil
}

type ResourceListCmd struct {
	All bool `help:"Include resources under maintenance and retired."`
}

func (c *ResourceListCmd) Run(ctx *Context) error {
	st, err := ctx.open()
	if err != nil {
		return err
	}
	defer st.Close()

	svc := resources.NewService(st.resources, ctx.Log)

	var list *models.ResourceListResponse
	if c.All {
		list, err = svc.ListAll(context.Background())
	} else {
		list, err = svc.ListAvailable(context.Background())
	}
	if err != nil {
		return err
	}

	if len(list.Resources) == 0 {
		fmt.Fprintln(ctx.Out, "No resources found")
		return nil
	}

	w := tabwriter.NewWriter(ctx.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tCAPACITY\tSTATUS")
	for _, r := range list.Resources {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n", r.ID, r.Name, r.Category, r.Capacity, r.OperationalStatus)
	}
	return w.Flush()
}

type ResourceSetStatusCmd struct {
	ID     int64  `arg:"" help:"Resource ID."`
	Status string `arg:"" help:"available, maintenance or retired." enum:"available,maintenance,retired"`
}

func (c *ResourceSetStatusCmd) Run(ctx *Context) error {
	st, err := ctx.open()
	if err != nil {
		return err
	}
	defer st.Close()

	updated, err := resources.NewService(st.resources, ctx.Log).
		SetOperationalStatus(context.Background(), c.ID, &models.SetStatusRequest{Status: c.Status})
	if err != nil {
		return err
	}

	fmt.Fprintf(ctx.Out, "Resource %d is now %s\n", updated.ID, updated.OperationalStatus)
	return nil
}
