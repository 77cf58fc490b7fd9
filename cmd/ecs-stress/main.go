// Command ecs-stress runs particle simulations on top of the component store
// and prints a performance report.
package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"github.com/plus3/gencol/ecs"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

type options struct {
	configPath  string
	logLevel    string
	profileMode string
	profilePath string
	flags       Config
}

func newRootCommand() *cobra.Command {
	opts := &options{flags: DefaultConfig()}

	cmd := &cobra.Command{
		Use:   "ecs-stress",
		Short: "Stress test the component store with a particle simulation",
		Long: `Runs one or more independent particle worlds in parallel. Every frame
spawns particles, integrates their motion, ages them and culls the expired
ones, recycling their ids.

Examples:
  ecs-stress                          # 10s run with the default workload
  ecs-stress --worlds 4 -d 30s        # four worlds in parallel
  ecs-stress --frames 600 --seed 7    # fixed number of frames
  ecs-stress -c workload.yaml         # workload from a YAML file
  ecs-stress --profile cpu            # write a CPU profile`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := opts.resolve(cmd)
			if err != nil {
				return err
			}

			logger, err := newLogger(opts.logLevel)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			ecs.SetLogger(logger)
			defer ecs.SetLogger(nil)

			stop, err := startProfile(opts.profileMode, opts.profilePath)
			if err != nil {
				return err
			}
			defer stop()

			report, err := run(cmd.Context(), config, logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "\n--- Stress Test Report ---")
			if err := report.Generate(out); err != nil {
				return fmt.Errorf("generate report: %w", err)
			}
			fmt.Fprintln(out, "--- End of Report ---")
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "YAML workload file")
	f.StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	f.StringVar(&opts.profileMode, "profile", "", "write a profile: cpu or mem")
	f.StringVar(&opts.profilePath, "profile-path", ".", "directory for profile output")

	f.DurationVarP(&opts.flags.Duration, "duration", "d", opts.flags.Duration, "total duration the test should run for")
	f.IntVar(&opts.flags.Frames, "frames", opts.flags.Frames, "stop each world after this many frames (0 for no limit)")
	f.IntVar(&opts.flags.Worlds, "worlds", opts.flags.Worlds, "number of worlds simulated in parallel")
	f.IntVar(&opts.flags.Particles, "particles", opts.flags.Particles, "initial number of particles per world")
	f.IntVar(&opts.flags.SpawnPerFrame, "spawn", opts.flags.SpawnPerFrame, "particles spawned per world and frame")
	f.Float64Var(&opts.flags.Lifetime, "lifetime", opts.flags.Lifetime, "maximum particle lifetime in seconds")
	f.Float64Var(&opts.flags.Gravity, "gravity", opts.flags.Gravity, "vertical acceleration")
	f.Float64Var(&opts.flags.TimeStep, "time-step", opts.flags.TimeStep, "simulated seconds per frame")
	f.Uint64Var(&opts.flags.Seed, "seed", opts.flags.Seed, "random seed")
	f.BoolVar(&opts.flags.GCPauseMetrics, "gc-pause-metrics", opts.flags.GCPauseMetrics, "include GC pause metrics in the report")

	return cmd
}

// resolve loads the config file and applies the flags set on the command line.
func (o *options) resolve(cmd *cobra.Command) (Config, error) {
	config, err := LoadConfig(o.configPath)
	if err != nil {
		return config, err
	}

	overrides := []struct {
		flag  string
		apply func()
	}{
		{"duration", func() { config.Duration = o.flags.Duration }},
		{"frames", func() { config.Frames = o.flags.Frames }},
		{"worlds", func() { config.Worlds = o.flags.Worlds }},
		{"particles", func() { config.Particles = o.flags.Particles }},
		{"spawn", func() { config.SpawnPerFrame = o.flags.SpawnPerFrame }},
		{"lifetime", func() { config.Lifetime = o.flags.Lifetime }},
		{"gravity", func() { config.Gravity = o.flags.Gravity }},
		{"time-step", func() { config.TimeStep = o.flags.TimeStep }},
		{"seed", func() { config.Seed = o.flags.Seed }},
		{"gc-pause-metrics", func() { config.GCPauseMetrics = o.flags.GCPauseMetrics }},
	}
	for _, override := range overrides {
		if cmd.Flags().Changed(override.flag) {
			override.apply()
		}
	}

	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.DisableStacktrace = true

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

func startProfile(mode, path string) (func(), error) {
	var kind func(*profile.Profile)
	switch mode {
	case "":
		return func() {}, nil
	case "cpu":
		kind = profile.CPUProfile
	case "mem":
		kind = profile.MemProfileAllocs
	default:
		return nil, fmt.Errorf("unknown profile mode %q, want cpu or mem", mode)
	}

	p := profile.Start(kind, profile.ProfilePath(path), profile.NoShutdownHook, profile.Quiet)
	return p.Stop, nil
}

// run simulates config.Worlds worlds in parallel and collects their results.
func run(ctx context.Context, config Config, logger *zap.Logger) (*Report, error) {
	if config.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, config.Duration)
		defer cancel()
	}

	worlds := make([]*World, config.Worlds)
	for i := range worlds {
		worlds[i] = NewWorld(i, config, logger)
	}

	var memStart runtime.MemStats
	runtime.ReadMemStats(&memStart)

	logger.Info("running simulation",
		zap.Int("worlds", config.Worlds),
		zap.Int("particles", config.Particles),
		zap.Duration("duration", config.Duration),
		zap.Int("frames", config.Frames))

	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	for _, w := range worlds {
		g.Go(func() error {
			return w.Run(ctx)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("run worlds: %w", err)
	}
	elapsed := time.Since(start)

	results := make([]WorldResult, len(worlds))
	for i, w := range worlds {
		results[i] = w.Result()
	}

	report := NewReport(config, results)
	report.TotalTime = elapsed
	report.MemStatsStart = memStart
	runtime.ReadMemStats(&report.MemStatsEnd)

	logger.Info("simulation finished",
		zap.Int64("updates", report.TotalUpdates),
		zap.Duration("elapsed", elapsed))

	return report, nil
}
