// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ava-labs/stakeviz/explorer"
	"github.com/ava-labs/stakeviz/params"
	"github.com/ava-labs/stakeviz/sweep"
)

// newExplorer returns an [explorer.Explorer] for the commands that run without
// a server and therefore have nowhere useful to log.
func newExplorer() (*explorer.Explorer, error) {
	return explorer.New(params.DefaultConfig(), logging.NoLog{})
}

func newEvalCmd() *cobra.Command {
	def := params.DefaultConfig()
	in := explorer.Inputs{
		MinStake:        def.MinStake.Default,
		FinalityTimeSec: def.FinalityTimeSec.Default,
	}

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Print the outputs for one pair of slider positions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := newExplorer()
			if err != nil {
				return err
			}
			out, err := e.Evaluate(in)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, l := range []string{out.MinStakeLabel, out.FinalityLabel, out.TrafficLabel} {
				if _, err := fmt.Fprintln(w, l); err != nil {
					return err
				}
			}
			return nil
		},
	}
	fs := cmd.Flags()
	fs.Float64Var(&in.MinStake, "min-stake", in.MinStake, fmt.Sprintf("minimum stake in %s", def.TokenSymbol))
	fs.Uint64Var(&in.FinalityTimeSec, "finality-sec", in.FinalityTimeSec, "finality time in seconds")
	return cmd
}

func newSweepCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Print the finality-time curve",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := newExplorer()
			if err != nil {
				return err
			}
			ds := e.Dataset()
			w := cmd.OutOrStdout()
			switch format {
			case "table":
				return writeTable(w, ds)
			case "csv":
				return writeCSV(w, ds)
			default:
				return fmt.Errorf("--format: unknown format %q", format)
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "table", "output format (table or csv)")
	return cmd
}

func writeTable(w io.Writer, ds *sweep.Dataset) error {
	if _, err := fmt.Fprintf(w, "%s %s\n", ds.Title, ds.Subtitle); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "%s\t%s\t\n", ds.XAxisTitle, ds.YAxisTitle)
	for i, x := range ds.X {
		fmt.Fprintf(tw, "%s\t%s\t\n", strconv.FormatFloat(x, 'f', 2, 64), humanize.Comma(int64(ds.Y[i]))) //nolint:gosec // slot counts are far below 2^63
	}
	return tw.Flush()
}

func writeCSV(w io.Writer, ds *sweep.Dataset) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"min_stake", "finality_slots"}); err != nil {
		return err
	}
	for i, x := range ds.X {
		rec := []string{
			strconv.FormatFloat(x, 'f', -1, 64),
			strconv.FormatUint(ds.Y[i], 10),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func newConstantsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "constants",
		Short: "Print the fixed model parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := newExplorer()
			if err != nil {
				return err
			}
			cfg := e.Config()

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "Total supply\t%s %s\n", humanize.Comma(int64(cfg.TotalSupply)), cfg.TokenSymbol) //nolint:gosec // 2^27
			fmt.Fprintf(tw, "Target traffic\t%v messages/s\n", cfg.TargetTrafficPerSec)
			fmt.Fprintf(tw, "Slot length\t%v s\n", cfg.SlotSeconds)
			fmt.Fprintf(tw, "Min stake\t[%v, %v] default %v\n", cfg.MinStake.Min, cfg.MinStake.Max, cfg.MinStake.Default)
			fmt.Fprintf(tw, "Finality time\t[%d, %d] default %d s\n", cfg.FinalityTimeSec.Min, cfg.FinalityTimeSec.Max, cfg.FinalityTimeSec.Default)
			if err := tw.Flush(); err != nil {
				return err
			}
			for _, l := range e.Info() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), l); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
