// Command reactively-bench builds a synthetic layered dependency graph over
// pkg/reactively and measures write-then-flush latency across repeated
// runs, the way cmd/benchmark_reactively and cmd/benchmark measured the
// original signal libraries this package grew out of.
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jamiealquiza/tachymeter"
	prettytable "github.com/jedib0t/go-pretty/v6/table"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"

	core "github.com/streamgraph/reactively/pkg/reactively"
)

func main() {
	cmd := &cli.Command{
		Name:  "reactively-bench",
		Usage: "benchmark the reactively dataflow engine against a synthetic dependency graph",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "width", Value: 10, Usage: "number of source values"},
			&cli.IntFlag{Name: "layers", Value: 5, Usage: "number of graph layers, counting the source row"},
			&cli.IntFlag{Name: "sources", Value: 2, Usage: "number of sources each expression reads"},
			&cli.IntFlag{Name: "static-percent", Value: 100, Usage: "percent of expressions that read every source on every recompute"},
			&cli.IntFlag{Name: "read-percent", Value: 100, Usage: "percent of leaf observers wired up"},
			&cli.IntFlag{Name: "iterations", Value: 2000, Usage: "number of write+flush cycles per run"},
			&cli.IntFlag{Name: "repeats", Value: 5, Usage: "number of timed runs; the fastest is reported"},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

type intReader interface{ Read() int }

type benchGraph struct {
	sources []*core.Value[int]
	leaves  []intReader
}

func run(_ context.Context, cmd *cli.Command) error {
	width := int(cmd.Int("width"))
	layers := int(cmd.Int("layers"))
	nSources := int(cmd.Int("sources"))
	staticFraction := float64(cmd.Int("static-percent")) / 100
	readFraction := float64(cmd.Int("read-percent")) / 100
	iterations := int(cmd.Int("iterations"))
	repeats := int(cmd.Int("repeats"))

	log.Printf("building a %dx%d graph, %d sources/expression, %d%% static", width, layers, nSources, int(staticFraction*100))

	var execCount int64
	ctx := core.NewContext()
	graph, isDynamic := buildGraph(ctx, &execCount, width, layers, nSources, staticFraction)

	leaves := selectFraction(graph.leaves, readFraction)
	var effectCount int64
	observers := make([]*core.Observer, len(leaves))
	sinks := make([]int, len(leaves))
	for i, leaf := range leaves {
		i, leaf := i, leaf
		observers[i] = core.CreateObserver(ctx, func() {
			effectCount++
			sinks[i] = leaf.Read()
		})
	}
	ctx.Flush()

	tach := tachymeter.New(&tachymeter.Config{Size: iterations})
	var best time.Duration = time.Hour
	var bestSum int
	var bestExecs int64

	for r := 0; r < repeats; r++ {
		execCount = 0
		effectCount = 0
		start := time.Now()
		for i := 0; i < iterations; i++ {
			iterStart := time.Now()
			src := graph.sources[i%len(graph.sources)]
			src.Write(src.Read() + 1)
			ctx.Flush()
			tach.AddTime(time.Since(iterStart))
		}
		elapsed := time.Since(start)
		if elapsed < best {
			best = elapsed
			bestExecs = execCount + effectCount
			bestSum = 0
			for _, v := range sinks {
				bestSum += v
			}
		}
	}

	dynamicRows := 0
	for _, row := range isDynamic {
		for _, d := range row {
			if d {
				dynamicRows++
			}
		}
	}

	summary := tablewriter.NewWriter(os.Stdout)
	summary.SetHeader([]string{"width", "layers", "sources", "dynamic nodes", "iterations", "best time", "exec/sec", "checksum"})
	updateRate := float64(bestExecs) / (float64(best) / float64(time.Second))
	summary.Append([]string{
		humanize.Comma(int64(width)),
		humanize.Comma(int64(layers)),
		humanize.Comma(int64(nSources)),
		humanize.Comma(int64(dynamicRows)),
		humanize.Comma(int64(iterations)),
		best.String(),
		humanize.Comma(int64(updateRate)),
		fmt.Sprint(bestSum),
	})
	summary.Render()

	calc := tach.Calc()
	tbl := prettytable.NewWriter()
	tbl.SetTitle("write+flush latency")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(prettytable.Row{"avg", "min", "p50", "p75", "p99", "max"})
	tbl.AppendRows([]prettytable.Row{
		{calc.Time.Avg, calc.Time.Min, calc.Time.P50, calc.Time.P75, calc.Time.P99, calc.Time.Max},
	})
	tbl.Render()

	return nil
}

// buildGraph lays out width sources and layers-1 expression rows above
// them (layers counts the source row), each expression reading nSources of
// the row beneath it. A staticFraction share of each row's expressions
// always read all of their sources; the rest read a variable subset chosen
// from the value of their first source, re-deriving their edge set on every
// recompute.
func buildGraph(ctx *core.Context, counter *int64, width, layers, nSources int, staticFraction float64) (*benchGraph, [][]bool) {
	sources := make([]*core.Value[int], width)
	prevRow := make([]intReader, width)
	for i := range sources {
		sources[i] = core.CreateValue(ctx, i)
		prevRow[i] = sources[i]
	}

	rnd := rand.New(rand.NewSource(0))
	isDynamic := make([][]bool, 0, layers-1)
	for l := 0; l < layers-1; l++ {
		row, dynamic := buildRow(ctx, prevRow, nSources, staticFraction, counter, rnd)
		prevRow = row
		isDynamic = append(isDynamic, dynamic)
	}

	return &benchGraph{sources: sources, leaves: prevRow}, isDynamic
}

func buildRow(ctx *core.Context, prev []intReader, nSources int, staticFraction float64, counter *int64, rnd *rand.Rand) ([]intReader, []bool) {
	row := make([]intReader, len(prev))
	isDynamic := make([]bool, len(prev))

	for i := range prev {
		mySources := make([]intReader, nSources)
		for s := 0; s < nSources; s++ {
			mySources[s] = prev[(i+s)%len(prev)]
		}

		if rnd.Float64() < staticFraction {
			row[i] = core.CreateExpression(ctx, func() int {
				*counter++
				sum := 0
				for _, src := range mySources {
					sum += src.Read()
				}
				return sum
			})
			continue
		}

		first := mySources[0]
		tail := mySources[1:]
		row[i] = core.CreateExpression(ctx, func() int {
			*counter++
			sum := first.Read()
			if len(tail) == 0 {
				return sum
			}
			shouldDrop := sum&1 > 0
			dropIdx := sum % len(tail)
			for j, t := range tail {
				if shouldDrop && j == dropIdx {
					continue
				}
				sum += t.Read()
			}
			return sum
		})
		isDynamic[i] = true
	}

	return row, isDynamic
}

func selectFraction(all []intReader, fraction float64) []intReader {
	if fraction >= 1 {
		return all
	}
	keep := int(float64(len(all)) * fraction)
	if keep < 1 {
		keep = 1
	}
	return all[:keep]
}
