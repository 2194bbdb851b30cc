// Command rigsim runs the rig firmware against simulated hardware, serves
// it to websocket clients and shows a terminal front panel.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"golang.org/x/sync/errgroup"

	"axisrig/config"
	"axisrig/core"
	"axisrig/host/cli"
	"axisrig/protocol"
	"axisrig/remote"
	"axisrig/sim"
	"axisrig/ui/panel"
)

type CLI struct {
	cli.Globals

	Run      RunCmd      `cmd:"" default:"withargs" help:"Run the simulated rig."`
	Commands CommandsCmd `cmd:"" help:"List the remote commands and their required fields."`
	Defaults DefaultsCmd `cmd:"" help:"Print the default configuration as YAML."`
}

type RunCmd struct {
	Listen   string        `help:"HTTP listen address for /ws, /metrics and /healthz. Overrides the config file."`
	Headless bool          `help:"Run without the terminal front panel."`
	Start    []int         `help:"Starting distance of each carriage from its limit switch." default:"3,3,3,3"`
	Interval time.Duration `help:"Firmware loop period." default:"5ms"`
}

func (r *RunCmd) Run(g *cli.Globals) error {
	cfg, err := g.LoadConfig()
	if err != nil {
		return err
	}
	if r.Listen != "" {
		cfg.Host.Listen = r.Listen
	}

	logger, closer, err := g.Logger(cfg.Host, !r.Headless)
	if err != nil {
		return err
	}
	defer closer.Close()
	cli.RouteFirmwareDebug(logger)

	board, err := sim.NewBoard(cfg, nil, r.Start)
	if err != nil {
		return fmt.Errorf("build board: %w", err)
	}

	hub := remote.NewHub(board, remote.Config{
		CommandRate:  cfg.Host.CommandRate,
		CommandBurst: cfg.Host.CommandBurst,
		Backlog:      cfg.Host.ClientBacklog,
		Logger:       logger,
	})
	board.Subscribe(hub)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		return cli.IgnoreCanceled(board.Run(ctx, r.Interval))
	})
	eg.Go(func() error {
		srv := &http.Server{Addr: cfg.Host.Listen, Handler: hub.Handler()}
		defer hub.Close()
		return cli.Serve(ctx, srv, logger)
	})
	if !r.Headless {
		eg.Go(func() error {
			defer stop()
			return panel.Run(board, board.Panel)
		})
	}

	logger.Info("rig simulator running", "axes", cfg.Rig.Axes, "listen", cfg.Host.Listen)
	return eg.Wait()
}

type CommandsCmd struct{}

func (c *CommandsCmd) Run(g *cli.Globals) error {
	reg := core.NewCommandRegistry()
	core.RegisterRigCommands(reg)
	fmt.Printf("protocol %s, %d commands\n", protocol.Version, reg.Count())
	fmt.Print(reg.GetDictionary())
	return nil
}

type DefaultsCmd struct{}

func (c *DefaultsCmd) Run(g *cli.Globals) error {
	data, err := config.Marshal(config.Default())
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

func main() {
	var c CLI
	ctx := kong.Parse(&c,
		kong.Name("rigsim"),
		kong.Description("Four-axis linear actuator rig simulator."),
		kong.UsageOnError(),
	)
	err := ctx.Run(&c.Globals)
	ctx.FatalIfErrorf(err)
}
