// Package evolution implements the moral evolver: an elitist genetic
// algorithm that aligns an agent's genome with a target moral profile,
// plus the exponential-smoothing nudge used by social contagion.
package evolution

import (
	"math/rand"
	"sort"

	"github.com/Henry10296/Hegelian-AI-Framework-sub000/pkg/genome"
	"github.com/Henry10296/Hegelian-AI-Framework-sub000/pkg/types"
)

// foundationTraits maps moral-foundation profile keys to the genome traits
// they are expressed through. Many-to-one, fixed.
var foundationTraits = map[string][]string{
	"harm_care":            {types.TraitUtilitarian, types.TraitVirtue},
	"fairness_reciprocity": {types.TraitDeontological},
	"in_group_loyalty":     {types.TraitIndividualism},
	"authority_respect":    {types.TraitPowerDistance},
	"purity_sanctity":      {types.TraitVirtue, types.TraitUncertaintyAvoidance},
}

// Config holds every tunable knob of the evolver.
type Config struct {
	PopulationSize     int
	EliteSize          int
	MutationRate       float64
	MutationStrength   float64
	SocialLearningRate float64
}

// DefaultConfig returns the standard evolver parameters.
func DefaultConfig() Config {
	return Config{
		PopulationSize:     20,
		EliteSize:          2,
		MutationRate:       0.1,
		MutationStrength:   0.05,
		SocialLearningRate: 0.05,
	}
}

// MoralEvolver mutates agent genomes. All randomness flows through the
// injected source so runs are reproducible.
type MoralEvolver struct {
	cfg Config
	rng *rand.Rand
}

// New creates an evolver with the given configuration and random source.
func New(cfg Config, rng *rand.Rand) *MoralEvolver {
	if cfg.PopulationSize < 2 {
		cfg.PopulationSize = 2
	}
	if cfg.EliteSize < 1 {
		cfg.EliteSize = 1
	}
	if cfg.EliteSize > cfg.PopulationSize {
		cfg.EliteSize = cfg.PopulationSize
	}
	return &MoralEvolver{cfg: cfg, rng: rng}
}

// Config returns the evolver's configuration.
func (e *MoralEvolver) Config() Config {
	return e.cfg
}

// EvolveTowards nudges each shared gene of g toward the target value by
// the social learning rate. This is the soft update applied when a moral
// message wins its contagion draw.
func (e *MoralEvolver) EvolveTowards(g *genome.MoralGenome, target map[string]float64) {
	for _, name := range g.Names() {
		t, ok := target[name]
		if !ok {
			continue
		}
		old := g.Trait(name)
		g.Set(name, old+(t-old)*e.cfg.SocialLearningRate)
	}
}

// EvolveFromPopulation runs one generation of elitist genetic search and
// returns the fittest genome, which fully replaces the input. The input
// genome itself is not mutated; callers install the result.
func (e *MoralEvolver) EvolveFromPopulation(g *genome.MoralGenome, profile map[string]float64) *genome.MoralGenome {
	population := make([]*genome.MoralGenome, 0, e.cfg.PopulationSize)
	population = append(population, g.Clone())
	for len(population) < e.cfg.PopulationSize {
		mutant := g.Clone()
		mutant.Mutate(e.rng, e.cfg.MutationRate, e.cfg.MutationStrength)
		population = append(population, mutant)
	}

	ranked := e.rank(population, profile)
	elites := ranked[:e.cfg.EliteSize]

	next := make([]*genome.MoralGenome, 0, e.cfg.PopulationSize)
	for _, elite := range elites {
		next = append(next, elite.Clone())
	}
	for len(next) < e.cfg.PopulationSize {
		p1 := elites[e.rng.Intn(len(elites))]
		p2 := elites[e.rng.Intn(len(elites))]
		child := e.crossover(p1, p2)
		child.Mutate(e.rng, e.cfg.MutationRate, e.cfg.MutationStrength)
		next = append(next, child)
	}

	return e.rank(next, profile)[0]
}

// Fitness scores a genome against a moral-foundation profile as the
// inverse mean squared error over every comparable (foundation, trait)
// pair. Zero comparable genes yields 0.0, never a division by zero.
func Fitness(g *genome.MoralGenome, profile map[string]float64) float64 {
	sum := 0.0
	n := 0
	for foundation, target := range profile {
		for _, trait := range foundationTraits[foundation] {
			if !g.Has(trait) {
				continue
			}
			d := g.Trait(trait) - target
			sum += d * d
			n++
		}
	}
	if n == 0 {
		return 0
	}
	mse := sum / float64(n)
	return 1 / (mse + 1e-6)
}

// rank sorts the population by fitness, descending. Stable so that equal
// fitness preserves insertion order and the incumbent genome survives
// ties.
func (e *MoralEvolver) rank(population []*genome.MoralGenome, profile map[string]float64) []*genome.MoralGenome {
	type scored struct {
		g       *genome.MoralGenome
		fitness float64
	}
	scoredPop := make([]scored, len(population))
	for i, g := range population {
		scoredPop[i] = scored{g: g, fitness: Fitness(g, profile)}
	}
	sort.SliceStable(scoredPop, func(i, j int) bool {
		return scoredPop[i].fitness > scoredPop[j].fitness
	})
	out := make([]*genome.MoralGenome, len(population))
	for i, s := range scoredPop {
		out[i] = s.g
	}
	return out
}

// crossover produces a child by single-point crossover over the sorted
// union of both parents' trait lists.
func (e *MoralEvolver) crossover(p1, p2 *genome.MoralGenome) *genome.MoralGenome {
	traits := traitUnion(p1, p2)
	if len(traits) == 0 {
		return p1.Clone()
	}
	split := e.rng.Intn(len(traits) + 1)

	child := make(map[string]float64, len(traits))
	for i, name := range traits {
		var parent *genome.MoralGenome
		if i < split {
			parent = p1
		} else {
			parent = p2
		}
		if parent.Has(name) {
			child[name] = parent.Trait(name)
		} else if p1.Has(name) {
			child[name] = p1.Trait(name)
		} else {
			child[name] = p2.Trait(name)
		}
	}
	return genome.New(child)
}

func traitUnion(p1, p2 *genome.MoralGenome) []string {
	seen := make(map[string]bool)
	union := make([]string, 0, p1.Len()+p2.Len())
	for _, name := range p1.Names() {
		seen[name] = true
		union = append(union, name)
	}
	for _, name := range p2.Names() {
		if !seen[name] {
			union = append(union, name)
		}
	}
	sort.Strings(union)
	return union
}
