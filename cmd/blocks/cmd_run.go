package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/zeusync/crowdsim/internal/core/driver"
	"github.com/zeusync/crowdsim/internal/core/observability/log"
	"github.com/zeusync/crowdsim/internal/injector"
	"github.com/zeusync/crowdsim/internal/viewer"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the scenario until every agent reaches its goal",
		RunE:  runScenario,
	}
	cmd.Flags().Int64("seed", 0, "Seed for the symmetry-breaking perturbation (default: entropy)")
	cmd.Flags().Int("max-steps", 0, "Step ceiling, 0 for unlimited (default: from config)")
	cmd.Flags().String("viewer", "", "Serve a live viewer on this address, e.g. :8080")
	cmd.Flags().Duration("linger", 0, "Keep the viewer up this long after the run ends")
	cmd.Flags().String("log-level", "info", "Log level: debug, info, warn, error")
	return cmd
}

func runScenario(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("seed") {
		seed, _ := flags.GetInt64("seed")
		cfg.Seed = &seed
	}
	if flags.Changed("max-steps") {
		cfg.MaxSteps, _ = flags.GetInt("max-steps")
	}
	addr, _ := flags.GetString("viewer")
	cfg.Display.Enabled = addr != ""
	if err = cfg.Validate(); err != nil {
		return err
	}

	levelName, _ := flags.GetString("log-level")
	level, err := log.ParseLevel(levelName)
	if err != nil {
		return err
	}

	app, err := injector.InitializeApp(cfg, level)
	if err != nil {
		return err
	}
	defer func() { _ = app.Logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	serverCtx, stopServer := context.WithCancel(gctx)
	defer stopServer()

	if app.Broadcaster != nil {
		srv := viewer.NewServer(addr, app.Broadcaster, app.Logger)
		g.Go(func() error { return srv.Serve(serverCtx) })
	}

	linger, _ := flags.GetDuration("linger")
	var res driver.Result
	var runErr error
	g.Go(func() error {
		defer stopServer()
		res, runErr = app.Driver.Run(gctx)
		if app.Broadcaster != nil && linger > 0 && gctx.Err() == nil {
			select {
			case <-time.After(linger):
			case <-gctx.Done():
			}
		}
		// a non-converged run is reported below, not as a group failure
		if errors.Is(runErr, driver.ErrNotConverged) {
			return nil
		}
		return runErr
	})

	if err = g.Wait(); err != nil {
		return err
	}
	if err = printResult(cmd, res); err != nil {
		return err
	}
	return runErr
}

func printResult(cmd *cobra.Command, res driver.Result) error {
	out := cmd.OutOrStdout()
	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		return json.NewEncoder(out).Encode(map[string]any{
			"run_id":      res.RunID,
			"state":       res.State.String(),
			"steps":       res.Steps,
			"global_time": res.GlobalTime,
			"elapsed_ms":  res.Elapsed.Milliseconds(),
		})
	}
	_, err := fmt.Fprintf(out, "%s after %d steps (global time %.2f, %s)\n",
		res.State, res.Steps, res.GlobalTime, res.Elapsed.Round(time.Millisecond))
	return err
}
