// Package agent implements the moral agent: dilemma resolution over the
// Pareto front of candidate actions, and stance adoption driven by the
// contagion model.
package agent

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/Henry10296/Hegelian-AI-Framework-sub000/pkg/ethics"
	"github.com/Henry10296/Hegelian-AI-Framework-sub000/pkg/evolution"
	"github.com/Henry10296/Hegelian-AI-Framework-sub000/pkg/genome"
	"github.com/Henry10296/Hegelian-AI-Framework-sub000/pkg/network"
	"github.com/Henry10296/Hegelian-AI-Framework-sub000/pkg/types"
)

// Environment is the society surface an agent sees during one heartbeat.
// It is passed as a parameter on every tick and must not be stored; the
// society, not the agent, owns the network and the agent arena.
type Environment interface {
	// Graph returns the tick-immutable social graph.
	Graph() *network.SocialGraph
	// AgentCount returns the society population size.
	AgentCount() int
	// Now returns the simulation clock.
	Now() time.Time
	// Broadcast wraps an executed action in a moral message and delivers
	// it to the sender's direct neighbors.
	Broadcast(sender *Agent, action *types.ActionOption)
}

// Config holds agent construction parameters.
type Config struct {
	Name      string
	SeedGenes map[string]float64
	Scorer    *ethics.CulturalScorer
	Contagion *network.ContagionModel
	Evolver   evolution.Config
	Rand      *rand.Rand
}

// Agent is one member of the society. It exclusively owns its genome and
// inbox; no other agent ever mutates them.
type Agent struct {
	Name   string
	Genome *genome.MoralGenome

	// IsThinking is true iff a dilemma is installed and not yet resolved
	// this tick.
	IsThinking     bool
	CurrentDilemma *types.EthicalCase
	ChosenAction   *types.ActionOption

	// Inbox collects moral messages between ticks; it is drained and
	// cleared on every heartbeat.
	Inbox []types.MoralMessage

	// LastTrace is a short human-readable note on the agent's most
	// recent activity, exported in snapshots.
	LastTrace string

	scorer    *ethics.CulturalScorer
	contagion *network.ContagionModel
	evolver   *evolution.MoralEvolver
	rng       *rand.Rand
	tree      Node
}

// New creates an agent. Zero-value config fields fall back to defaults;
// a nil Rand gets a time-seeded source.
func New(cfg Config) *Agent {
	if cfg.Scorer == nil {
		cfg.Scorer = ethics.DefaultCulturalScorer()
	}
	if cfg.Contagion == nil {
		cfg.Contagion = network.DefaultContagionModel()
	}
	if cfg.Evolver == (evolution.Config{}) {
		cfg.Evolver = evolution.DefaultConfig()
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Agent{
		Name:      cfg.Name,
		Genome:    genome.New(cfg.SeedGenes),
		scorer:    cfg.Scorer,
		contagion: cfg.Contagion,
		evolver:   evolution.New(cfg.Evolver, cfg.Rand),
		rng:       cfg.Rand,
		tree:      heartbeatTree(),
	}
}

// Evolver returns the agent's moral evolver.
func (a *Agent) Evolver() *evolution.MoralEvolver {
	return a.evolver
}

// FaceDilemma installs a pending dilemma. A nil case is a no-op, as is a
// call while another dilemma is still unresolved.
func (a *Agent) FaceDilemma(c *types.EthicalCase) {
	if c == nil {
		return
	}
	if a.CurrentDilemma != nil {
		log.Printf("[%s] already facing %q, ignoring %q", a.Name, a.CurrentDilemma.Title, c.Title)
		return
	}
	a.CurrentDilemma = c
	a.IsThinking = true
}

// Deliver appends a message to the inbox. Messages are processed and the
// inbox cleared on the next heartbeat.
func (a *Agent) Deliver(msg types.MoralMessage) {
	a.Inbox = append(a.Inbox, msg)
}

// Tick advances one heartbeat through the behavior tree.
func (a *Agent) Tick(env Environment) Status {
	return a.tree.Tick(a, env)
}

// ResolveDilemma scores every option of the current dilemma, filters to
// the Pareto front and selects one action by cultural scalarization. With
// no pending dilemma it is a no-op.
func (a *Agent) ResolveDilemma() {
	c := a.CurrentDilemma
	if c == nil {
		return
	}
	if len(c.Options) == 0 {
		a.CurrentDilemma = nil
		a.IsThinking = false
		return
	}

	vectors := make([]ethics.Vector, len(c.Options))
	for i := range c.Options {
		vectors[i] = ethics.MoralVector(&c.Options[i], c)
	}

	front := ethics.ParetoFront(vectors)

	var chosen int
	switch len(front) {
	case 0:
		chosen = 0
	case 1:
		chosen = front[0]
	default:
		chosen = front[0]
		best := a.scorer.Score(vectors[chosen], a.Genome, &c.Options[chosen])
		for _, idx := range front[1:] {
			score := a.scorer.Score(vectors[idx], a.Genome, &c.Options[idx])
			if score > best {
				best = score
				chosen = idx
			}
		}
	}

	a.ChosenAction = &c.Options[chosen]
	a.IsThinking = false
	a.LastTrace = fmt.Sprintf("resolved %q: chose %q from a front of %d", c.Title, a.ChosenAction.Name, len(front))
}

// processInbox applies the contagion model to every pending message. Each
// message gets one uniform draw; a winning draw nudges the genome toward
// the embedded stance. The inbox is cleared regardless of outcomes.
func (a *Agent) processInbox(env Environment) Status {
	if len(a.Inbox) == 0 {
		return Success
	}

	graph := env.Graph()
	total := env.AgentCount()
	now := env.Now()

	adopted := 0
	for i := range a.Inbox {
		msg := &a.Inbox[i]
		p := a.contagion.Probability(msg, msg.OriginalSender, a.Name, a.Genome, graph, total, now)
		if a.rng.Float64() < p {
			a.evolver.EvolveTowards(a.Genome, msg.MoralContent)
			adopted++
		}
	}
	if adopted > 0 {
		a.LastTrace = fmt.Sprintf("adopted %d of %d moral messages", adopted, len(a.Inbox))
	}
	a.Inbox = a.Inbox[:0]
	return Success
}

func (a *Agent) resolveStep(Environment) Status {
	a.ResolveDilemma()
	if a.ChosenAction == nil {
		return Failure
	}
	return Success
}

// executeStep broadcasts the chosen action and returns the agent to idle.
func (a *Agent) executeStep(env Environment) Status {
	action := a.ChosenAction
	a.ChosenAction = nil
	a.CurrentDilemma = nil
	env.Broadcast(a, action)
	a.LastTrace = fmt.Sprintf("executed %q", action.Name)
	return Success
}
