package main

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/delaneyj/reactor/reactor"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"
)

type layersConfig struct {
	name           string  // friendly name, should be unique
	width          int     // width of the graph
	totalLayers    int     // depth of the graph
	staticFraction float64 // fraction of memos that always read every source
	nSources       int     // sources read by each memo
	readFraction   float64 // fraction of leaves the reader effect watches
	iterations     int     // writes per run
}

var layersConfigs = []layersConfig{
	{name: "simple component", width: 10, staticFraction: 1, nSources: 2, totalLayers: 5, readFraction: 0.2, iterations: 60000},
	{name: "dynamic component", width: 10, totalLayers: 10, staticFraction: 0.75, nSources: 6, readFraction: 0.2, iterations: 15000},
	{name: "large web app", width: 1000, totalLayers: 12, staticFraction: 0.95, nSources: 4, readFraction: 1, iterations: 700},
	{name: "wide dense", width: 1000, totalLayers: 5, staticFraction: 1, nSources: 25, readFraction: 1, iterations: 300},
	{name: "deep", width: 5, totalLayers: 500, staticFraction: 1, nSources: 3, readFraction: 1, iterations: 500},
	{name: "very dynamic", width: 100, totalLayers: 15, staticFraction: 0.5, nSources: 6, readFraction: 1, iterations: 2000},
}

func layersCommand() *cli.Command {
	return &cli.Command{
		Name:  "layers",
		Usage: "Run the layered graph configurations with targeted invalidation",
		Flags: []cli.Flag{
			cpuProfileFlag(),
			&cli.UintFlag{
				Name:  repeatsKey,
				Usage: "Runs per configuration, the best one is reported",
				Value: 5,
			},
		},
		Action: profiled(runLayers),
	}
}

func runLayers(ctx context.Context, cmd *cli.Command) error {
	log.Print("Starting layers benchmark, please wait...")
	defer log.Print("Finished layers benchmark")

	repeats := int(cmd.Uint(repeatsKey))
	if repeats <= 0 {
		return fmt.Errorf("%s must be positive", repeatsKey)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{
		"size", "nSources", "read%", "static%",
		"nTimes", "test", "time", "recomputes", "updateRate", "alloc", "title",
	})

	for _, cfg := range layersConfigs {
		if err := ctx.Err(); err != nil {
			return err
		}
		log.Printf("Running '%s' config", cfg.name)

		type result struct {
			sum      int
			count    int64
			duration time.Duration
			alloc    uint64
		}
		best := result{duration: time.Hour}

		for i := 0; i <= repeats; i++ {
			var before, after runtime.MemStats
			runtime.GC()
			runtime.ReadMemStats(&before)

			l := buildLayers(cfg)
			start := time.Now()
			sum := l.run(cfg.iterations)
			duration := time.Since(start)
			runtime.ReadMemStats(&after)
			l.rt.Shutdown()

			// first pass is warmup
			if i == 0 {
				continue
			}
			log.Printf("Running '%s' config, iteration %d/%d %d%%", cfg.name, i, repeats, i*100/repeats)
			if duration < best.duration {
				best = result{
					sum:      sum,
					count:    l.counter,
					duration: duration,
					alloc:    after.TotalAlloc - before.TotalAlloc,
				}
			}
		}

		updateRate := float64(best.count) / (float64(best.duration) / float64(time.Millisecond))
		table.Append([]string{
			fmt.Sprintf("%dx%d", cfg.width, cfg.totalLayers),
			fmt.Sprint(cfg.nSources),
			fmt.Sprint(cfg.readFraction),
			fmt.Sprint(cfg.staticFraction),
			humanize.Comma(int64(cfg.iterations)),
			cfg.name,
			fmt.Sprint(best.duration),
			humanize.Comma(best.count),
			humanize.Comma(int64(updateRate)),
			humanize.Bytes(best.alloc),
			layersTitle(cfg),
		})
	}
	table.Render()
	return nil
}

func layersTitle(cfg layersConfig) string {
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("%dx%d %d sources", cfg.width, cfg.totalLayers, cfg.nSources))
	if cfg.staticFraction < 1 {
		sb.WriteString(" dynamic")
	}
	if cfg.readFraction < 1 {
		sb.WriteString(fmt.Sprintf(" read %0.2f%%", 100*cfg.readFraction))
	}
	return sb.String()
}

type layers struct {
	rt      *reactor.Runtime
	sources []*reactor.Signal[int]
	rows    [][]*reactor.Memo[int]
	memos   map[reactor.NodeID]*reactor.Memo[int]
	leaves  []*reactor.Memo[int]
	counter int64
	sum     int
}

func buildLayers(cfg layersConfig) *layers {
	rt := reactor.New()
	l := &layers{
		rt:      rt,
		sources: make([]*reactor.Signal[int], cfg.width),
		memos:   map[reactor.NodeID]*reactor.Memo[int]{},
	}
	for i := range l.sources {
		l.sources[i] = reactor.NewSignal(rt, i)
	}

	random := rand.New(rand.NewSource(0))
	prev := make([]func() int, len(l.sources))
	for i, s := range l.sources {
		prev[i] = s.Get
	}
	for r := 0; r < cfg.totalLayers-1; r++ {
		row := l.makeRow(prev, cfg, random)
		l.rows = append(l.rows, row)
		prev = make([]func() int, len(row))
		for i, m := range row {
			prev[i] = m.Get
		}
	}

	leaves := l.rows[len(l.rows)-1]
	skip := int(math.Round(float64(len(leaves)) * (1 - cfg.readFraction)))
	l.leaves = removeElems(leaves, skip, random)

	reactor.NewEffectWithTiming(rt, reactor.TimingBatched, func() {
		sum := 0
		for _, leaf := range l.leaves {
			sum += leaf.Get()
		}
		l.sum = sum
	})
	return l
}

func (l *layers) makeRow(sources []func() int, cfg layersConfig, random *rand.Rand) []*reactor.Memo[int] {
	row := make([]*reactor.Memo[int], len(sources))
	for myDex := range sources {
		mine := make([]func() int, 0, cfg.nSources)
		for sourceDex := 0; sourceDex < cfg.nSources; sourceDex++ {
			mine = append(mine, sources[(myDex+sourceDex)%len(sources)])
		}

		var m *reactor.Memo[int]
		if random.Float64() < cfg.staticFraction {
			m = reactor.NewMemo(l.rt, func() int {
				l.counter++
				sum := 0
				for _, read := range mine {
					sum += read()
				}
				return sum
			})
		} else {
			first, tail := mine[0], mine[1:]
			m = reactor.NewMemo(l.rt, func() int {
				l.counter++
				sum := first()
				if len(tail) == 0 {
					return sum
				}
				shouldDrop := sum&0x1 > 0
				dropDex := sum % len(tail)
				if dropDex < 0 {
					dropDex = -dropDex
				}
				for i, read := range tail {
					if shouldDrop && i == dropDex {
						continue
					}
					sum += read()
				}
				return sum
			})
		}
		row[myDex] = m
		l.memos[m.ID()] = m
	}
	return row
}

// run writes one source per iteration, dirties every memo downstream of it
// and flushes the reader effect.
func (l *layers) run(iterations int) int {
	for i := 0; i < iterations; i++ {
		sourceDex := i % len(l.sources)
		src := l.sources[sourceDex]
		src.Set(i + sourceDex)
		for _, id := range l.downstream(src.ID()) {
			l.memos[id].MarkDirty()
		}
		l.rt.FlushPending()
	}
	return l.sum
}

func (l *layers) downstream(id reactor.NodeID) []reactor.NodeID {
	return reactor.WithRegistry(l.rt, func(g *reactor.Graph) []reactor.NodeID {
		var out []reactor.NodeID
		seen := map[reactor.NodeID]struct{}{id: {}}
		queue := []reactor.NodeID{id}
		for len(queue) > 0 {
			next := queue[0]
			queue = queue[1:]
			for _, sub := range g.Subscribers(next) {
				if _, ok := seen[sub]; ok {
					continue
				}
				seen[sub] = struct{}{}
				if kind, _ := g.Kind(sub); kind == reactor.KindMemo {
					out = append(out, sub)
					queue = append(queue, sub)
				}
			}
		}
		return out
	})
}

func removeElems[T any](src []T, rmCount int, random *rand.Rand) []T {
	out := make([]T, len(src))
	copy(out, src)
	for i := 0; i < rmCount && len(out) > 0; i++ {
		rmDex := random.Intn(len(out))
		out[rmDex] = out[len(out)-1]
		out = out[:len(out)-1]
	}
	return out
}
