// Package network implements the society's social graph and the moral
// contagion model that governs stance propagation across it.
package network

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"sync"
)

// ErrInvalidTopology is returned when a small-world generation request
// asks for more neighbors than the agent population permits.
var ErrInvalidTopology = errors.New("invalid topology request")

// SocialGraph is an undirected graph over agent names. The adjacency
// relation is always symmetric and free of self-loops. It is mutated only
// during setup or shock events, never concurrently with a tick.
type SocialGraph struct {
	mu sync.RWMutex

	adjacency map[string]map[string]struct{}
}

// NewSocialGraph creates an empty graph.
func NewSocialGraph() *SocialGraph {
	return &SocialGraph{
		adjacency: make(map[string]map[string]struct{}),
	}
}

// AddNode ensures the named node exists, with no edges.
func (g *SocialGraph) AddNode(name string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.ensure(name)
}

// Connect inserts a symmetric edge between a and b. Idempotent; self-loops
// are ignored.
func (g *SocialGraph) Connect(a, b string) {
	if a == b {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.ensure(a)[b] = struct{}{}
	g.ensure(b)[a] = struct{}{}
}

// Disconnect removes the edge between a and b, if present.
func (g *SocialGraph) Disconnect(a, b string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if set, ok := g.adjacency[a]; ok {
		delete(set, b)
	}
	if set, ok := g.adjacency[b]; ok {
		delete(set, a)
	}
}

// HasEdge reports whether a and b are directly connected.
func (g *SocialGraph) HasEdge(a, b string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.adjacency[a][b]
	return ok
}

// Neighbors returns the sorted neighbor names of a node.
func (g *SocialGraph) Neighbors(name string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	set := g.adjacency[name]
	out := make([]string, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Degree returns the number of direct neighbors of a node.
func (g *SocialGraph) Degree(name string) int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.adjacency[name])
}

// DegreeCentrality returns degree divided by the total agent count.
func (g *SocialGraph) DegreeCentrality(name string, totalAgents int) float64 {
	if totalAgents <= 0 {
		return 0
	}
	return float64(g.Degree(name)) / float64(totalAgents)
}

// Edges returns every edge exactly once as a lexicographically ordered
// pair, the pairs themselves sorted. Used by snapshot export.
func (g *SocialGraph) Edges() [][2]string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	edges := make([][2]string, 0)
	for a, set := range g.adjacency {
		for b := range set {
			if a < b {
				edges = append(edges, [2]string{a, b})
			}
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i][0] != edges[j][0] {
			return edges[i][0] < edges[j][0]
		}
		return edges[i][1] < edges[j][1]
	})
	return edges
}

// GenerateSmallWorld builds a Watts-Strogatz small-world topology over the
// given nodes: a ring lattice connecting each node to its k/2 nearest
// neighbors on each side, followed by random rewiring of each edge with
// probability p. k must be even and the population must exceed k; otherwise
// the graph is left unchanged and ErrInvalidTopology is returned.
func (g *SocialGraph) GenerateSmallWorld(names []string, k int, p float64, rng *rand.Rand) error {
	n := len(names)
	if k <= 0 || k%2 != 0 {
		return fmt.Errorf("%w: k=%d must be a positive even number", ErrInvalidTopology, k)
	}
	if n < k+1 {
		return fmt.Errorf("%w: need at least %d agents for k=%d, have %d", ErrInvalidTopology, k+1, k, n)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	for _, name := range names {
		g.ensure(name)
	}

	// Ring lattice.
	for i, a := range names {
		for offset := 1; offset <= k/2; offset++ {
			b := names[(i+offset)%n]
			g.adjacency[a][b] = struct{}{}
			g.adjacency[b][a] = struct{}{}
		}
	}

	// Rewire each lattice edge with probability p, keeping the source
	// endpoint and picking a fresh non-neighbor target.
	for i, a := range names {
		for offset := 1; offset <= k/2; offset++ {
			b := names[(i+offset)%n]
			if rng.Float64() >= p {
				continue
			}
			target := g.randomNonNeighbor(a, names, rng)
			if target == "" {
				continue // a is already connected to everyone
			}
			delete(g.adjacency[a], b)
			delete(g.adjacency[b], a)
			g.adjacency[a][target] = struct{}{}
			g.adjacency[target][a] = struct{}{}
		}
	}

	return nil
}

// randomNonNeighbor picks a uniformly random node not already connected to
// a, excluding a itself. Caller holds the lock.
func (g *SocialGraph) randomNonNeighbor(a string, names []string, rng *rand.Rand) string {
	candidates := make([]string, 0, len(names))
	for _, name := range names {
		if name == a {
			continue
		}
		if _, connected := g.adjacency[a][name]; connected {
			continue
		}
		candidates = append(candidates, name)
	}
	if len(candidates) == 0 {
		return ""
	}
	return candidates[rng.Intn(len(candidates))]
}

func (g *SocialGraph) ensure(name string) map[string]struct{} {
	set, ok := g.adjacency[name]
	if !ok {
		set = make(map[string]struct{})
		g.adjacency[name] = set
	}
	return set
}
