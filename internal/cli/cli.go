package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type rootOpts struct {
	cpuProfile    string
	memProfileDir string

	teardowns []func()
}

// Execute runs the nibsteg command line with the process arguments. Profilers started through the persistent flags
// are always flushed, even when the command fails.
func Execute(ctx context.Context) error {
	opts := &rootOpts{}
	defer opts.teardown()
	return NewRootCommand(opts).ExecuteContext(ctx)
}

func NewRootCommand(opts *rootOpts) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "nibsteg",
		Short:         "Hide an image inside the low nibbles of another image, and recover it again",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setupProfiling()
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.cpuProfile, "cpu-profile", "", "Dump CPU profile into the supplied file")
	rootCmd.PersistentFlags().StringVar(&opts.memProfileDir, "mem-profile-dir", "", "Dump memory profiles into the supplied directory")

	rootCmd.AddCommand(ImageCommands(), ServeAppCommand())
	return rootCmd
}

func (o *rootOpts) setupProfiling() error {
	if o.cpuProfile != "" {
		cpuProfileFile, err := os.Create(o.cpuProfile)
		if err != nil {
			return fmt.Errorf("creating cpu profile: %w", err)
		}
		if err = StartCPUProfiler(cpuProfileFile); err != nil {
			cpuProfileFile.Close()
			return err
		}
		o.teardowns = append(o.teardowns, func() {
			StopCPUProfiler()
			cpuProfileFile.Close()
		})
	}

	if o.memProfileDir != "" {
		StartMemoryProfiler(o.memProfileDir)
		o.teardowns = append(o.teardowns, StopMemoryProfiler)
	}
	return nil
}

func (o *rootOpts) teardown() {
	for i := len(o.teardowns) - 1; i >= 0; i-- {
		o.teardowns[i]()
	}
	o.teardowns = nil
}
