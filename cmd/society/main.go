package main

import (
	"flag"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/joho/godotenv"

	"github.com/Henry10296/Hegelian-AI-Framework-sub000/pkg/scenario"
	"github.com/Henry10296/Hegelian-AI-Framework-sub000/pkg/society"
	"github.com/Henry10296/Hegelian-AI-Framework-sub000/pkg/store"
	"github.com/Henry10296/Hegelian-AI-Framework-sub000/pkg/types"
)

// cast is the default population: philosophers seeded with genomes that
// caricature their positions, so contagion and drift are visible in
// short runs.
var cast = []struct {
	name  string
	genes map[string]float64
}{
	{"Bentham", map[string]float64{
		types.TraitUtilitarian:          0.95,
		types.TraitDeontological:        0.15,
		types.TraitVirtue:               0.4,
		types.TraitIndividualism:        0.6,
		types.TraitPowerDistance:        0.3,
		types.TraitUncertaintyAvoidance: 0.3,
	}},
	{"Kant", map[string]float64{
		types.TraitUtilitarian:          0.1,
		types.TraitDeontological:        0.95,
		types.TraitVirtue:               0.5,
		types.TraitIndividualism:        0.5,
		types.TraitPowerDistance:        0.4,
		types.TraitUncertaintyAvoidance: 0.6,
	}},
	{"Aristotle", map[string]float64{
		types.TraitUtilitarian:          0.4,
		types.TraitDeontological:        0.5,
		types.TraitVirtue:               0.95,
		types.TraitIndividualism:        0.4,
		types.TraitPowerDistance:        0.5,
		types.TraitUncertaintyAvoidance: 0.4,
	}},
	{"Hume", map[string]float64{
		types.TraitUtilitarian:          0.7,
		types.TraitDeontological:        0.3,
		types.TraitVirtue:               0.6,
		types.TraitIndividualism:        0.7,
		types.TraitPowerDistance:        0.2,
		types.TraitUncertaintyAvoidance: 0.3,
	}},
	{"Rawls", map[string]float64{
		types.TraitUtilitarian:          0.5,
		types.TraitDeontological:        0.8,
		types.TraitVirtue:               0.6,
		types.TraitIndividualism:        0.2,
		types.TraitPowerDistance:        0.2,
		types.TraitUncertaintyAvoidance: 0.7,
	}},
	{"Nietzsche", map[string]float64{
		types.TraitUtilitarian:          0.2,
		types.TraitDeontological:        0.1,
		types.TraitVirtue:               0.7,
		types.TraitIndividualism:        0.95,
		types.TraitPowerDistance:        0.7,
		types.TraitUncertaintyAvoidance: 0.1,
	}},
}

func main() {
	_ = godotenv.Load()

	ticks := flag.Int("ticks", 50, "Number of simulation ticks")
	seed := flag.Int64("seed", time.Now().UnixNano(), "Random seed (identical seeds reproduce identical runs)")
	k := flag.Int("k", 4, "Small-world lattice degree (even)")
	p := flag.Float64("p", 0.1, "Small-world rewiring probability")
	scenarioPath := flag.String("scenario", "", "YAML ethical case presented to every agent at tick 0")
	dbPath := flag.String("db", "", "SQLite path for tick snapshots (empty disables)")
	logPath := flag.String("log", "", "JSONL event log path (empty disables)")
	flag.Parse()

	fmt.Println("=== Moral Society Simulation ===")
	fmt.Printf("Running %d ticks, seed %d...\n\n", *ticks, *seed)

	cfg := society.DefaultConfig()
	cfg.Seed = *seed

	if *logPath != "" {
		logger, err := society.NewJSONLLogger(*logPath)
		if err != nil {
			log.Fatalf("Failed to open event log: %v", err)
		}
		defer logger.Close()
		cfg.Logger = logger
	}
	if *dbPath != "" {
		st, err := store.Open(*dbPath)
		if err != nil {
			log.Fatalf("Failed to open snapshot store: %v", err)
		}
		defer st.Close()
		cfg.Sink = st
	}

	mgr := society.NewManager(cfg)
	for _, member := range cast {
		if _, err := mgr.CreateAgent(member.name, member.genes); err != nil {
			log.Fatalf("Failed to create agent %s: %v", member.name, err)
		}
	}
	if err := mgr.GenerateSmallWorld(*k, *p); err != nil {
		log.Fatalf("Failed to build network: %v", err)
	}

	if *scenarioPath != "" {
		c, err := scenario.Load(*scenarioPath)
		if err != nil {
			log.Fatalf("Failed to load scenario: %v", err)
		}
		fmt.Printf("Scenario: %s (%d options)\n\n", c.Title, len(c.Options))
		for _, name := range mgr.Names() {
			mgr.Agent(name).FaceDilemma(c)
		}
	}

	before := mgr.Snapshot()

	startTime := time.Now()
	mgr.RunFor(*ticks)
	elapsed := time.Since(startTime)

	after := mgr.Snapshot()

	fmt.Println("=== Simulation Complete ===")
	fmt.Printf("Duration: %v\n", elapsed)
	fmt.Printf("Ticks: %d\n\n", *ticks)

	fmt.Println("Society Metrics:")
	fmt.Printf("  Polarization: %.4f -> %.4f\n", before.Polarization, after.Polarization)
	fmt.Printf("  Diversity:    %.4f -> %.4f\n", before.Diversity, after.Diversity)

	fmt.Println("\nNetwork:")
	fmt.Printf("  %d agents, %d edges\n", len(after.Agents), len(after.Edges))

	fmt.Println("\nAgent Drift:")
	for _, name := range mgr.Names() {
		a := mgr.Agent(name)
		fmt.Printf("  %-10s %s\n", name, genomeSummary(a.Genome.Genes()))
		if a.LastTrace != "" {
			fmt.Printf("             last: %s\n", a.LastTrace)
		}
	}

	if *dbPath != "" {
		fmt.Println("\nSnapshots saved to:", *dbPath)
	}
	if *logPath != "" {
		fmt.Println("Event log written to:", *logPath)
	}
}

func genomeSummary(genes map[string]float64) string {
	names := make([]string, 0, len(genes))
	for name := range genes {
		names = append(names, name)
	}
	sort.Strings(names)

	out := ""
	for i, name := range names {
		if i > 0 {
			out += " "
		}
		out += fmt.Sprintf("%s=%.2f", shortTrait(name), genes[name])
	}
	return out
}

func shortTrait(name string) string {
	switch name {
	case types.TraitUtilitarian:
		return "util"
	case types.TraitDeontological:
		return "deon"
	case types.TraitVirtue:
		return "virt"
	case types.TraitPowerDistance:
		return "pdist"
	case types.TraitIndividualism:
		return "indiv"
	case types.TraitUncertaintyAvoidance:
		return "uncert"
	default:
		return name
	}
}
