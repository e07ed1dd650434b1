package main

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"

	"github.com/delaneyj/reactor/reactor"
	"github.com/urfave/cli/v3"
)

func dotCommand() *cli.Command {
	return &cli.Command{
		Name:  "dot",
		Usage: "Print a sample dependency graph in Graphviz DOT form",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    outKey,
				Aliases: []string{"o"},
				Usage:   "Write to this file instead of stdout",
			},
			&cli.UintFlag{
				Name:  widthKey,
				Usage: "Number of rows in the sample",
				Value: 2,
			},
		},
		Action: runDOT,
	}
}

func runDOT(ctx context.Context, cmd *cli.Command) error {
	rt := reactor.New()
	defer rt.Shutdown()
	buildSample(rt, int(cmd.Uint(widthKey)))

	var buf bytes.Buffer
	fingerprint := reactor.WithRegistry(rt, func(g *reactor.Graph) uint64 {
		g.WriteDOT(&buf)
		return g.Fingerprint()
	})
	stats := rt.Stats()
	log.Printf("sample graph: %d nodes, %d edges, fingerprint %016x", stats.Nodes, stats.Edges, fingerprint)

	out := cmd.String(outKey)
	if out == "" {
		_, err := os.Stdout.Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	log.Printf("wrote %s", out)
	return nil
}

// buildSample wires a small form: per row a first and last name feeding a
// full name memo, a sync effect per row and one batched effect over all rows.
func buildSample(rt *reactor.Runtime, rows int) {
	if rows <= 0 {
		rows = 1
	}
	names := make([]*reactor.Memo[string], 0, rows)
	for i := 0; i < rows; i++ {
		first := reactor.NewSignal(rt, fmt.Sprintf("first%d", i))
		last := reactor.NewSignal(rt, fmt.Sprintf("last%d", i))
		full := reactor.NewMemo(rt, func() string {
			return first.Get() + " " + last.Get()
		})
		names = append(names, full)
		reactor.NewEffect(rt, func() {
			_ = full.Get()
		})
	}
	reactor.NewEffectWithTiming(rt, reactor.TimingBatched, func() {
		total := 0
		for _, n := range names {
			total += len(n.Get())
		}
		_ = total
	})
}
