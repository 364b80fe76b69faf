// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"net"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ava-labs/stakeviz/api"
	"github.com/ava-labs/stakeviz/explorer"
	"github.com/ava-labs/stakeviz/params"
)

func newServeCmd() *cobra.Command {
	var (
		logs logFlags
		host string
		port uint16
		c    = api.DefaultConfig()
	)
	defHost, defPort, _ := net.SplitHostPort(c.Addr)
	p, _ := strconv.ParseUint(defPort, 10, 16)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON-RPC API and Prometheus metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log, err := logs.logger()
			if err != nil {
				return err
			}
			defer log.Stop()

			e, err := explorer.New(params.DefaultConfig(), log)
			if err != nil {
				return err
			}

			reg := prometheus.NewRegistry()
			if err := reg.Register(collectors.NewGoCollector()); err != nil {
				return err
			}
			c.Addr = net.JoinHostPort(host, strconv.FormatUint(uint64(port), 10))
			s, err := api.NewServer(c, e, reg, log)
			if err != nil {
				return err
			}

			log.Info("Starting",
				zap.String("addr", c.Addr),
				zap.Duration("sessionTTL", c.SessionTTL),
			)
			return s.ListenAndServe(cmd.Context())
		},
	}

	fs := cmd.Flags()
	logs.register(fs)
	fs.StringVar(&host, "http-host", defHost, "host on which to serve the API")
	fs.Uint16Var(&port, "http-port", uint16(p), "port on which to serve the API")
	fs.DurationVar(&c.SessionTTL, "session-ttl", c.SessionTTL, "idle period after which viewer sessions are dropped; 0 disables expiry")
	return cmd
}
