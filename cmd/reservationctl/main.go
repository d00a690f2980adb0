package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/m04kA/SMC-ReservationService/internal/cli"
	"github.com/m04kA/SMC-ReservationService/internal/config"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
)

var CLI struct {
	Config   string `help:"Config file path." type:"path" default:"config.toml" env:"CONFIG_PATH"`
	LogLevel string `help:"Log level." default:"warn" enum:"debug,info,warn,error"`

	Migrate struct {
		Up   cli.MigrateUpCmd   `cmd:"" help:"Apply all pending migrations."`
		Down cli.MigrateDownCmd `cmd:"" help:"Roll back migrations."`
	} `cmd:"" help:"Manage the database schema."`

	Resource struct {
		Add       cli.ResourceAddCmd       `cmd:"" help:"Add a resource to the catalog."`
		List      cli.ResourceListCmd      `cmd:"" help:"List catalog resources."`
		SetStatus cli.ResourceSetStatusCmd `cmd:"" help:"Change a resource's operational status."`
	} `cmd:"" help:"Manage the resource catalog."`

	CompleteExpired cli.CompleteExpiredCmd `cmd:"" help:"Complete approved bookings whose slot has ended."`
	Export          cli.ExportCmd          `cmd:"" help:"Export the booking schedule to xlsx."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("reservationctl"),
		kong.Description("Operator tool for the SMC reservation service"),
		kong.UsageOnError(),
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New("", CLI.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	if err := ctx.Run(&cli.Context{Config: cfg, Log: log, Out: os.Stdout}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
