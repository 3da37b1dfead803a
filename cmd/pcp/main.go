package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/pcp-cli/pcp/internal/config"
	"github.com/pcp-cli/pcp/internal/copier"
	"github.com/pcp-cli/pcp/internal/filter"
	"github.com/pcp-cli/pcp/internal/stats"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	var (
		workers     int
		verify      bool
		quiet       bool
		verbose     bool
		showVersion bool
		excludes    []string
	)

	rootCmd := &cobra.Command{
		Use:   "pcp [flags] <source>... <destination>",
		Short: "Copy files and directories in parallel",
		Long: `pcp copies files, directories, symlinks, FIFOs, and device nodes to a
destination, recursing into directories and copying siblings concurrently.

With two arguments the source is copied to the destination path, overwriting
an existing file. With more, or when the destination is an existing
directory, every source is copied into it.`,
		Args: func(_ *cobra.Command, args []string) error {
			if showVersion {
				return nil
			}
			if len(args) < 2 {
				return copier.ErrTooFewArgs
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Fprintf(os.Stdout, "pcp %s\n", version)
				return nil
			}

			// Configure logging. Per-item copy errors bypass the logger and
			// go straight to stderr; this only carries diagnostics.
			logLevel := slog.LevelWarn
			if verbose {
				logLevel = slog.LevelDebug
			} else if quiet {
				logLevel = slog.LevelError
			}
			logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: logLevel}))
			slog.SetDefault(logger)

			cfg, err := config.Load()
			if err != nil {
				slog.Warn("failed to load config", "error", err)
			}
			applyConfigDefaults(cmd, cfg.Defaults, &workers, &verify)

			if workers <= 0 {
				workers = min(runtime.NumCPU()*2, 32)
			}

			chain := filter.NewChain()
			for _, pattern := range append(cfg.Defaults.Exclude, excludes...) {
				if err := chain.Add(pattern); err != nil {
					return fmt.Errorf("--exclude: %w", err)
				}
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			collector := stats.NewCollector()
			copyOpts := copier.Options{
				Workers: workers,
				Verify:  verify,
				Stderr:  os.Stderr,
				Stats:   collector,
			}
			if !chain.Empty() {
				copyOpts.Exclude = chain
			}
			c := copier.New(copyOpts)

			slog.Debug("starting copy",
				"sources", args[:len(args)-1],
				"dst", args[len(args)-1],
				"workers", workers,
				"verify", verify,
			)

			failed, err := c.Copy(ctx, args)
			if err != nil {
				return err
			}

			if verbose {
				fmt.Fprintln(os.Stderr, collector.Snapshot())
			}

			if failed {
				return &exitError{code: 1}
			}
			return nil
		},
	}

	rootCmd.Flags().BoolVarP(&showVersion, "version", "V", false, "print version and exit")
	rootCmd.Flags().
		IntVarP(&workers, "workers", "n", 0, "number of concurrent copy operations (default: min(NumCPU*2, 32))")
	rootCmd.Flags().BoolVar(&verify, "verify", false, "verify copied files with BLAKE3 checksums")
	rootCmd.Flags().
		StringArrayVar(&excludes, "exclude", nil, "skip sources matching glob PATTERN (repeatable)")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress all output except errors")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging and a completion summary")

	if err := rootCmd.Execute(); err != nil {
		if exitErr, ok := err.(*exitError); ok {
			return exitErr.code
		}
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// applyConfigDefaults applies config-file defaults for flags not explicitly
// set on the CLI.
func applyConfigDefaults(cmd *cobra.Command, defaults config.DefaultsConfig, workers *int, verify *bool) {
	if !cmd.Flags().Changed("workers") && defaults.Workers != nil {
		*workers = *defaults.Workers
	}
	if !cmd.Flags().Changed("verify") && defaults.Verify != nil {
		*verify = *defaults.Verify
	}
}

type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}
