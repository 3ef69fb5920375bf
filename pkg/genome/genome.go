// Package genome implements the moral genome: a named vector of scalar
// traits in [0,1] that encodes an agent's value weights.
package genome

import (
	"math"
	"math/rand"
	"sort"
)

// NeutralTrait is the value reported for traits a genome does not carry.
const NeutralTrait = 0.5

// MoralGenome maps trait names to values in [0,1]. The trait set is open;
// callers typically seed at least the six core traits from pkg/types.
// A genome is exclusively owned by one agent and is not safe for
// concurrent mutation.
type MoralGenome struct {
	genes map[string]float64
}

// New creates a genome from a seed mapping. Values are clamped to [0,1].
func New(seed map[string]float64) *MoralGenome {
	g := &MoralGenome{genes: make(map[string]float64, len(seed))}
	for name, v := range seed {
		g.genes[name] = clamp01(v)
	}
	return g
}

// Clone returns an independent deep copy.
func (g *MoralGenome) Clone() *MoralGenome {
	return New(g.genes)
}

// Trait returns a gene value, or NeutralTrait when the gene is absent.
func (g *MoralGenome) Trait(name string) float64 {
	if v, ok := g.genes[name]; ok {
		return v
	}
	return NeutralTrait
}

// Has reports whether the genome carries the named gene.
func (g *MoralGenome) Has(name string) bool {
	_, ok := g.genes[name]
	return ok
}

// Set assigns a gene value, clamped to [0,1].
func (g *MoralGenome) Set(name string, v float64) {
	g.genes[name] = clamp01(v)
}

// Genes returns a copy of the underlying trait mapping.
func (g *MoralGenome) Genes() map[string]float64 {
	out := make(map[string]float64, len(g.genes))
	for name, v := range g.genes {
		out[name] = v
	}
	return out
}

// Names returns the trait names in sorted order.
func (g *MoralGenome) Names() []string {
	names := make([]string, 0, len(g.genes))
	for name := range g.genes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of genes.
func (g *MoralGenome) Len() int {
	return len(g.genes)
}

// Mutate perturbs each gene with probability rate by a uniform delta in
// [-strength, strength], clamping results to [0,1].
func (g *MoralGenome) Mutate(rng *rand.Rand, rate, strength float64) {
	for name, v := range g.genes {
		if rng.Float64() < rate {
			delta := (rng.Float64()*2 - 1) * strength
			g.genes[name] = clamp01(v + delta)
		}
	}
}

// Similarity computes the mean pairwise product over traits shared with
// content. Both sides live in [0,1], so the result does too; disjoint
// trait sets yield 0.
func (g *MoralGenome) Similarity(content map[string]float64) float64 {
	sum := 0.0
	n := 0
	for name, v := range content {
		if own, ok := g.genes[name]; ok {
			sum += own * v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// Distance is the Euclidean distance over the union of both trait sets,
// with absent traits read as NeutralTrait.
func (g *MoralGenome) Distance(other *MoralGenome) float64 {
	seen := make(map[string]bool, len(g.genes))
	sum := 0.0
	for name, v := range g.genes {
		seen[name] = true
		d := v - other.Trait(name)
		sum += d * d
	}
	for name, v := range other.genes {
		if !seen[name] {
			d := v - g.Trait(name)
			sum += d * d
		}
	}
	return math.Sqrt(sum)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
