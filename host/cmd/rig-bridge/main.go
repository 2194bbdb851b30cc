// Command rig-bridge connects a rig board on USB serial to websocket
// clients: snapshots from the board go out to every client and client
// commands go to the board.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"golang.org/x/sync/errgroup"

	"axisrig/host/bridge"
	"axisrig/host/cli"
	"axisrig/host/serial"
	"axisrig/remote"
)

type CLI struct {
	cli.Globals

	Device      string `help:"Serial device of the board. Overrides the config file." short:"d"`
	Baud        int    `help:"Baud rate (ignored by USB CDC). Overrides the config file."`
	Listen      string `help:"HTTP listen address. Overrides the config file." short:"l"`
	AdvertiseIP string `help:"Address reported to clients that send get_ip." name:"advertise-ip"`
}

func (c *CLI) Run() error {
	cfg, err := c.LoadConfig()
	if err != nil {
		return err
	}
	if c.Device != "" {
		cfg.Host.SerialDevice = c.Device
	}
	if c.Baud != 0 {
		cfg.Host.SerialBaud = c.Baud
	}
	if c.Listen != "" {
		cfg.Host.Listen = c.Listen
	}

	logger, closer, err := c.Logger(cfg.Host, false)
	if err != nil {
		return err
	}
	defer closer.Close()

	port, err := serial.Open(serial.FromHost(cfg.Host))
	if err != nil {
		return err
	}
	defer port.Close()
	if err := port.Flush(); err != nil {
		logger.Warn("flush serial port", "err", err)
	}

	// The hub needs the bridge as its command sink and the bridge needs the
	// hub as its observer.
	var hub *remote.Hub
	br := bridge.New(port, publishTo(&hub), logger)
	hub = remote.NewHub(br, remote.Config{
		AdvertiseIP:  c.AdvertiseIP,
		CommandRate:  cfg.Host.CommandRate,
		CommandBurst: cfg.Host.CommandBurst,
		Backlog:      cfg.Host.ClientBacklog,
		Logger:       logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		if err := br.Run(ctx); err != nil {
			return fmt.Errorf("serial link: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		srv := &http.Server{Addr: cfg.Host.Listen, Handler: hub.Handler()}
		defer hub.Close()
		return cli.Serve(ctx, srv, logger)
	})

	logger.Info("bridging", "device", cfg.Host.SerialDevice, "listen", cfg.Host.Listen)
	err = eg.Wait()
	st := br.Stats()
	logger.Info("bridge stopped", "snapshots", st.Snapshots, "bad_frames", st.BadFrames, "commands", st.Commands)
	return err
}

func main() {
	var c CLI
	ctx := kong.Parse(&c,
		kong.Name("rig-bridge"),
		kong.Description("Serial to websocket bridge for the rig board."),
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(ctx.Run())
}
