package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/Garsondee/hex-outbreak/internal/config"
	"github.com/Garsondee/hex-outbreak/internal/sim"
	"github.com/Garsondee/hex-outbreak/internal/trace"
)

// reportWindowTicks is the trailing window for the late spread count.
const reportWindowTicks = 100

type runStats struct {
	runIndex int
	runID    uuid.UUID
	seed     int64
	outcome  sim.Outcome

	firstSpreadTick   int
	firstLabTick      int
	firstDepletedTick int

	accepted  int
	rejected  int
	hits      int
	lateHits  int
	depleted  int
	tracePath string
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var policyName string
	var configPath string
	var traceDir string
	var verbose bool

	flag.IntVar(&runs, "runs", 5, "number of headless simulation runs")
	flag.IntVar(&ticks, "ticks", 3000, "maximum ticks per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&policyName, "policy", "economy", "player policy (idle, economy)")
	flag.StringVar(&configPath, "config", "", "optional YAML config file")
	flag.StringVar(&traceDir, "trace", "", "directory for per-run .jsonl.zst tick traces")
	flag.BoolVar(&verbose, "v", false, "log phase changes and rejected commands")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "headless"})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}
	policy, ok := sim.PolicyByName(policyName)
	if !ok {
		fmt.Printf("error: unsupported policy %q (supported: idle, economy)\n", policyName)
		return
	}
	cfg, err := config.LoadOptional(configPath)
	if err != nil {
		logger.Fatal("failed to load configuration", "path", configPath, "err", err)
	}
	rules := cfg.SimRules()

	fmt.Printf("=== Headless Outbreak Report ===\n")
	fmt.Printf("policy=%s runs=%d ticks=%d seed_base=%d seed_step=%d radius=%d\n\n",
		policy.Name(), runs, ticks, seedBase, seedStep, rules.MapRadius)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		rs, err := runOnce(i+1, seed, ticks, rules, policy, traceDir, logger)
		if err != nil {
			logger.Fatal("run failed", "run", i+1, "seed", seed, "err", err)
		}
		all = append(all, rs)
		printRun(rs)
	}

	printAggregate(all)
}

func runOnce(runIndex int, seed int64, ticks int, rules sim.Rules, policy sim.Policy, traceDir string, logger *log.Logger) (runStats, error) {
	el := sim.NewEventLog(false)
	e, err := sim.NewGame(rules, seed, sim.WithEventLog(el), sim.WithLogger(logger.With("seed", seed)))
	if err != nil {
		return runStats{}, err
	}

	rs := runStats{runIndex: runIndex, runID: uuid.New(), seed: seed}

	var hook sim.TickHook
	var w *trace.JSONLZstdWriter
	var rec *trace.Recorder
	if traceDir != "" {
		w, rs.tracePath, err = trace.Create(traceDir, rs.runID)
		if err != nil {
			return runStats{}, fmt.Errorf("open trace: %w", err)
		}
		rec, err = trace.NewRecorder(w, trace.Header{RunID: rs.runID, Seed: seed, Policy: policy.Name(), Rules: rules})
		if err != nil {
			_ = w.Close()
			return runStats{}, fmt.Errorf("write trace header: %w", err)
		}
		hook = rec.Hook
	}

	rs.outcome = sim.Run(e, policy, ticks, hook)

	if w != nil {
		if err := rec.Err(); err != nil {
			_ = w.Close()
			return runStats{}, fmt.Errorf("write trace: %w", err)
		}
		if err := w.Close(); err != nil {
			return runStats{}, fmt.Errorf("close trace: %w", err)
		}
	}

	entries := el.Entries()
	rs.firstSpreadTick = firstTick(entries, sim.CategoryInfection, "spread", "")
	rs.firstLabTick = firstTick(entries, sim.CategoryCommand, "accepted", "lab")
	rs.firstDepletedTick = firstTick(entries, sim.CategoryProduction, "depleted", "")
	rs.accepted = el.Count(sim.CategoryCommand, "accepted")
	rs.rejected = el.Count(sim.CategoryCommand, "rejected")
	rs.depleted = el.Count(sim.CategoryProduction, "depleted")
	end := rs.outcome.Tick
	rs.hits = int(el.Sum(sim.CategoryInfection, "spread", 0, end))
	rs.lateHits = int(el.Sum(sim.CategoryInfection, "spread", end-reportWindowTicks+1, end))
	return rs, nil
}

func firstTick(entries []sim.Event, category, key, contains string) int {
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Tick
		}
	}
	return -1
}

func printRun(rs runStats) {
	o := rs.outcome
	fmt.Printf("--- Run %d (seed=%d id=%s) ---\n", rs.runIndex, rs.seed, rs.runID)
	fmt.Printf("outcome=%s tick=%d research=%d/%d resources=%d\n", o.Phase, o.Tick, o.Research, o.Target, o.Resources)
	fmt.Printf("phase_markers: first_spread=%d first_lab=%d first_depleted=%d\n",
		rs.firstSpreadTick, rs.firstLabTick, rs.firstDepletedTick)
	fmt.Printf("event_totals: accepted=%d rejected=%d infection_hits=%d late_hits(last %d)=%d factories_depleted=%d\n",
		rs.accepted, rs.rejected, rs.hits, reportWindowTicks, rs.lateHits, rs.depleted)
	fmt.Printf("census: survivors=%d infected=%d (%.1f%%) infected_tiles=%d/%d lost_tiles=%d walls=%d\n",
		o.Stats.Survivors, o.Stats.Infected, o.Stats.InfectedShare()*100,
		o.Stats.InfectedTiles, o.Stats.Tiles, o.Stats.FullyInfectedTiles, o.Stats.Walls)
	if rs.tracePath != "" {
		fmt.Printf("trace=%s\n", rs.tracePath)
	}
	fmt.Println(o.Description)
	fmt.Println()
}

type aggregate struct {
	victories   int
	defeats     int
	unfinished  int
	victoryTick []int
	defeatTick  []int
	infectedPct float64
}

func summarize(all []runStats) aggregate {
	var ag aggregate
	for _, rs := range all {
		switch rs.outcome.Phase {
		case sim.PhaseVictory:
			ag.victories++
			ag.victoryTick = append(ag.victoryTick, rs.outcome.Tick)
		case sim.PhaseDefeat:
			ag.defeats++
			ag.defeatTick = append(ag.defeatTick, rs.outcome.Tick)
		default:
			ag.unfinished++
		}
		ag.infectedPct += rs.outcome.Stats.InfectedShare() * 100
	}
	if len(all) > 0 {
		ag.infectedPct /= float64(len(all))
	}
	return ag
}

func printAggregate(all []runStats) {
	ag := summarize(all)
	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d victories=%d defeats=%d unfinished=%d\n", len(all), ag.victories, ag.defeats, ag.unfinished)
	fmt.Printf("avg_end_tick: victory=%s defeat=%s\n", avgTickString(ag.victoryTick), avgTickString(ag.defeatTick))
	fmt.Printf("avg_infected_share=%.1f%%\n", ag.infectedPct)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}
