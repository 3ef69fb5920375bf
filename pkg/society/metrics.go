package society

import "math"

// Polarization is the mean pairwise Euclidean distance between all
// agents' genome vectors; 0 for fewer than two agents.
func (m *Manager) Polarization() float64 {
	if len(m.order) < 2 {
		return 0
	}

	sum := 0.0
	pairs := 0
	for i := 0; i < len(m.order); i++ {
		for j := i + 1; j < len(m.order); j++ {
			a := m.agents[m.order[i]].Genome
			b := m.agents[m.order[j]].Genome
			sum += a.Distance(b)
			pairs++
		}
	}
	return sum / float64(pairs)
}

// Diversity is the mean, over all gene dimensions present anywhere in the
// society, of the per-dimension standard deviation across agents.
func (m *Manager) Diversity() float64 {
	if len(m.order) == 0 {
		return 0
	}

	traits := make(map[string]struct{})
	for _, name := range m.order {
		for trait := range m.agents[name].Genome.Genes() {
			traits[trait] = struct{}{}
		}
	}
	if len(traits) == 0 {
		return 0
	}

	n := float64(len(m.order))
	total := 0.0
	for trait := range traits {
		mean := 0.0
		for _, name := range m.order {
			mean += m.agents[name].Genome.Trait(trait)
		}
		mean /= n

		variance := 0.0
		for _, name := range m.order {
			d := m.agents[name].Genome.Trait(trait) - mean
			variance += d * d
		}
		variance /= n

		total += math.Sqrt(variance)
	}
	return total / float64(len(traits))
}
