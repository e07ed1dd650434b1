package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/delaneyj/reactor/reactor"
	"github.com/dustin/go-humanize"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"
)

var (
	defaultWidths  = []int{1, 10, 100, 1_000}
	defaultHeights = []int{1, 10, 100, 1_000}
)

func propagateCommand() *cli.Command {
	return &cli.Command{
		Name:  "propagate",
		Usage: "Time write + invalidate + flush over w chains of h memos",
		Flags: []cli.Flag{
			cpuProfileFlag(),
			&cli.UintFlag{
				Name:  widthKey,
				Usage: "Only run this chain count (0 runs the full grid)",
			},
			&cli.UintFlag{
				Name:  heightKey,
				Usage: "Only run this chain height (0 runs the full grid)",
			},
			&cli.UintFlag{
				Name:  itersKey,
				Usage: "Writes per configuration",
				Value: 100,
			},
		},
		Action: profiled(runPropagate),
	}
}

func runPropagate(ctx context.Context, cmd *cli.Command) error {
	ww, hh := defaultWidths, defaultHeights
	if w := cmd.Uint(widthKey); w > 0 {
		ww = []int{int(w)}
	}
	if h := cmd.Uint(heightKey); h > 0 {
		hh = []int{int(h)}
	}
	iters := int(cmd.Uint(itersKey))
	if iters <= 0 {
		return fmt.Errorf("%s must be positive", itersKey)
	}

	log.Printf("warming up")
	benchmarkPropagate(ww[:1], hh[:1], iters, false)
	benchmarkPropagate(ww, hh, iters, true)
	return nil
}

type propagateGraph struct {
	rt     *reactor.Runtime
	src    *reactor.Signal[int]
	memos  []*reactor.Memo[int]
	effect int
}

func buildPropagateGraph(w, h int) *propagateGraph {
	rt := reactor.New()
	g := &propagateGraph{
		rt:    rt,
		src:   reactor.NewSignal(rt, 1),
		memos: make([]*reactor.Memo[int], 0, w*h),
	}
	for i := 0; i < w; i++ {
		prev := g.src.Get
		for j := 0; j < h; j++ {
			read := prev
			m := reactor.NewMemo(rt, func() int {
				return read() + 1
			})
			g.memos = append(g.memos, m)
			prev = m.Get
		}
		last := prev
		reactor.NewEffect(rt, func() {
			last()
			g.effect++
		})
	}
	return g
}

func (g *propagateGraph) step(v int) {
	g.src.Set(v)
	for _, m := range g.memos {
		m.MarkDirty()
	}
	g.rt.FlushPending()
}

func benchmarkPropagate(ww, hh []int, iters int, shouldRender bool) {
	tbl := table.NewWriter()
	tbl.SetTitle("reactor propagate")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "nodes", "edges", "avg", "min", "p75", "p99", "max", "effects/s"})

	for _, w := range ww {
		for _, h := range hh {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})
			g := buildPropagateGraph(w, h)
			stats := g.rt.Stats()

			runs := g.effect
			start := time.Now()
			for i := 0; i < iters; i++ {
				iterStart := time.Now()
				g.step(g.src.GetUntracked() + 1)
				tach.AddTime(time.Since(iterStart))
			}
			rate := float64(g.effect-runs) / time.Since(start).Seconds()

			calc := tach.Calc()
			tbl.AppendRows([]table.Row{
				{
					fmt.Sprintf("propagate: %d * %d", w, h),
					humanize.Comma(int64(stats.Nodes)),
					humanize.Comma(int64(stats.Edges)),
					calc.Time.Avg,
					calc.Time.Min,
					calc.Time.P75,
					calc.Time.P99,
					calc.Time.Max,
					humanize.Comma(int64(rate)),
				},
			})
			g.rt.Shutdown()
		}
	}

	if shouldRender {
		tbl.Render()
	}
}
