package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"statsdemit/internal/network"
	"statsdemit/internal/protocol"
)

func listenCommand() *cli.Command {
	return &cli.Command{
		Name:  "listen",
		Usage: "print the statsd datagrams received on a UDP address",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Value: "127.0.0.1:8125",
				Usage: "UDP address to listen on",
			},
			&cli.IntFlag{
				Name:  "workers",
				Value: 4,
				Usage: "number of concurrent datagram readers",
			},
		},
		Action: func(c *cli.Context) error {
			e, err := setup(c)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			server := network.NewUDPServer(c.String("addr"), network.UDPServerOpts{
				MaxConcurrentConnections: c.Int("workers"),
			})

			if err := server.Listen(); err != nil {
				return err
			}

			e.logger.Info(
				"main: listening for datagrams: addr=%s workers=%d",
				server.Addr(),
				c.Int("workers"),
			)

			return server.Serve(ctx, &protocol.DatagramPrintHandler{
				Out:    c.App.Writer,
				Logger: e.logger,
			})
		},
	}
}
