package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/pprof"

	"github.com/urfave/cli/v3"
)

const (
	cpuProfileKey = "cpuprofile"
	widthKey      = "width"
	heightKey     = "height"
	itersKey      = "iters"
	repeatsKey    = "repeats"
	outKey        = "out"
)

func main() {
	cmd := &cli.Command{
		Name:  "reactorbench",
		Usage: "Benchmark and inspect reactor graphs",
		Commands: []*cli.Command{
			propagateCommand(),
			layersCommand(),
			dotCommand(),
		},
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func cpuProfileFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  cpuProfileKey,
		Usage: "Write a CPU profile to this file",
	}
}

// profiled wraps an action with an optional CPU profile.
func profiled(action cli.ActionFunc) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		path := cmd.String(cpuProfileKey)
		if path == "" {
			return action(ctx, cmd)
		}

		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create cpu profile: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("start cpu profile: %w", err)
		}
		defer pprof.StopCPUProfile()

		return action(ctx, cmd)
	}
}
