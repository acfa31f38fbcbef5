// Command tune searches flocking parameters with Nelder-Mead, scoring
// each candidate on headless simulation runs across several seeds. The
// best parameter set is written back out as a ready-to-run config.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/drift/config"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config (empty uses embedded defaults)")
	maxTicks := flag.Int64("max-ticks", 3000, "simulation ticks per evaluation")
	seedCount := flag.Int("seeds", 3, "seeds per evaluation")
	maxEvals := flag.Int("max-evals", 120, "maximum fitness evaluations")
	windowTicks := flag.Int("window-ticks", 120, "stats window size in ticks")
	outputPath := flag.String("output", "tuned.yaml", "path for the tuned config")
	evalLogPath := flag.String("eval-log", "tune_evals.csv", "per-evaluation fitness log")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	params, err := NewFlockingParams(cfg)
	if err != nil {
		log.Fatalf("building parameters: %v", err)
	}

	seeds := make([]int64, *seedCount)
	for i := range seeds {
		seeds[i] = int64(i*1000 + 42)
	}

	evaluator := NewFitnessEvaluator(params, cfg, *maxTicks, seeds, *windowTicks)

	evalLog, err := os.Create(*evalLogPath)
	if err != nil {
		log.Fatalf("creating eval log: %v", err)
	}
	defer evalLog.Close()
	writer := csv.NewWriter(evalLog)
	writer.Write(append([]string{"eval", "fitness"}, params.Names()...))
	writer.Flush()

	start := time.Now()
	var history []float64

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Denormalize(x)
			fitness := evaluator.Evaluate(raw)

			eval, best := evaluator.Progress()
			history = append(history, best)

			row := []string{strconv.Itoa(eval), formatFloat(fitness)}
			for _, v := range raw {
				row = append(row, formatFloat(v))
			}
			writer.Write(row)
			writer.Flush()

			elapsed := time.Since(start)
			perEval := elapsed / time.Duration(eval)
			remaining := time.Duration(*maxEvals-eval) * perEval
			fmt.Printf("eval %3d/%d  fitness %.4f  best %.4f  elapsed %s  eta %s\n",
				eval, *maxEvals, fitness, best, formatDuration(elapsed), formatDuration(remaining))

			return fitness
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0,
	}
	method := &optimize.NelderMead{}

	result, err := optimize.Minimize(problem, params.DefaultVector(), settings, method)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}

	bestRaw := evaluator.BestParams()
	if bestRaw == nil && result != nil {
		bestRaw = params.Denormalize(result.X)
	}
	if bestRaw == nil {
		log.Fatal("no evaluations completed")
	}

	fmt.Println("\nConvergence (best fitness by evaluation):")
	fmt.Println(asciigraph.Plot(history, asciigraph.Height(12), asciigraph.Width(72)))

	fmt.Println("\nBest parameters:")
	for i, s := range params.Specs {
		fmt.Printf("  %-20s %.4f\n", s.Name, bestRaw[i])
	}

	params.ApplyToConfig(cfg, bestRaw)
	if err := cfg.WriteYAML(*outputPath); err != nil {
		log.Fatalf("writing tuned config: %v", err)
	}
	fmt.Printf("\nWrote tuned config to %s\n", *outputPath)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// formatDuration renders a duration as 1h2m3s, 2m3s, or 45s.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	if h > 0 {
		return fmt.Sprintf("%dh%dm%ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm%ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
