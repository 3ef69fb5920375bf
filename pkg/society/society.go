// Package society implements the simulation driver: a name-keyed arena of
// agents advanced one synchronous heartbeat per tick, with per-tick
// snapshot export of genomes, edges and society-level metrics.
package society

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/Henry10296/Hegelian-AI-Framework-sub000/pkg/agent"
	"github.com/Henry10296/Hegelian-AI-Framework-sub000/pkg/ethics"
	"github.com/Henry10296/Hegelian-AI-Framework-sub000/pkg/evolution"
	"github.com/Henry10296/Hegelian-AI-Framework-sub000/pkg/network"
	"github.com/Henry10296/Hegelian-AI-Framework-sub000/pkg/types"
)

// SnapshotSink receives one snapshot at the end of every tick.
type SnapshotSink interface {
	SaveSnapshot(types.TickSnapshot) error
}

// Config holds society construction parameters.
type Config struct {
	Contagion *network.ContagionModel
	Scorer    *ethics.CulturalScorer
	Evolver   evolution.Config
	// Seed feeds every random source in the simulation; identical seeds
	// reproduce identical runs.
	Seed int64
	// StartTime and Step define the simulation clock. Each tick advances
	// the clock by Step; message decay is measured against this clock,
	// not the wall clock.
	StartTime time.Time
	Step      time.Duration
	// Logger and Sink are optional observers.
	Logger EventLogger
	Sink   SnapshotSink
}

// DefaultConfig returns a time-seeded configuration with one-second ticks.
func DefaultConfig() Config {
	return Config{
		Contagion: network.DefaultContagionModel(),
		Scorer:    ethics.DefaultCulturalScorer(),
		Evolver:   evolution.DefaultConfig(),
		Seed:      time.Now().UnixNano(),
		StartTime: time.Now(),
		Step:      time.Second,
	}
}

// Manager owns the agent arena and the social graph. Agents reference the
// manager only through the Environment parameter passed during a tick;
// messages and snapshots carry agent names, never live references.
//
// The simulation is tick-driven and single-threaded: TickAll processes
// agents synchronously in insertion order.
type Manager struct {
	cfg Config

	agents map[string]*agent.Agent
	order  []string
	graph  *network.SocialGraph

	rng     *rand.Rand
	tick    int
	simTime time.Time

	history []types.TickSnapshot
}

// NewManager creates an empty society.
func NewManager(cfg Config) *Manager {
	if cfg.Contagion == nil {
		cfg.Contagion = network.DefaultContagionModel()
	}
	if cfg.Scorer == nil {
		cfg.Scorer = ethics.DefaultCulturalScorer()
	}
	if cfg.Evolver == (evolution.Config{}) {
		cfg.Evolver = evolution.DefaultConfig()
	}
	if cfg.Step <= 0 {
		cfg.Step = time.Second
	}
	if cfg.StartTime.IsZero() {
		cfg.StartTime = time.Now()
	}

	return &Manager{
		cfg:     cfg,
		agents:  make(map[string]*agent.Agent),
		graph:   network.NewSocialGraph(),
		rng:     rand.New(rand.NewSource(cfg.Seed)),
		simTime: cfg.StartTime,
	}
}

// CreateAgent adds a new agent with a unique name and seed genome. Each
// agent receives an independent random source derived from the society
// seed, keeping runs reproducible.
func (m *Manager) CreateAgent(name string, seedGenes map[string]float64) (*agent.Agent, error) {
	if name == "" {
		return nil, fmt.Errorf("agent name must not be empty")
	}
	if _, exists := m.agents[name]; exists {
		return nil, fmt.Errorf("agent %q already exists", name)
	}

	a := agent.New(agent.Config{
		Name:      name,
		SeedGenes: seedGenes,
		Scorer:    m.cfg.Scorer,
		Contagion: m.cfg.Contagion,
		Evolver:   m.cfg.Evolver,
		Rand:      rand.New(rand.NewSource(m.rng.Int63())),
	})
	m.agents[name] = a
	m.order = append(m.order, name)
	m.graph.AddNode(name)
	return a, nil
}

// Agent returns an agent by name, or nil.
func (m *Manager) Agent(name string) *agent.Agent {
	return m.agents[name]
}

// Names returns agent names in insertion order.
func (m *Manager) Names() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// AgentCount implements agent.Environment.
func (m *Manager) AgentCount() int {
	return len(m.agents)
}

// Graph implements agent.Environment.
func (m *Manager) Graph() *network.SocialGraph {
	return m.graph
}

// Now implements agent.Environment: the simulation clock, not wall time.
func (m *Manager) Now() time.Time {
	return m.simTime
}

// Tick returns the number of completed ticks.
func (m *Manager) Tick() int {
	return m.tick
}

// Connect adds a symmetric edge between two agents.
func (m *Manager) Connect(a, b string) {
	m.graph.Connect(a, b)
}

// GenerateSmallWorld builds a Watts-Strogatz topology over every agent.
// On an invalid request the graph is left unchanged and the error is
// surfaced to the caller.
func (m *Manager) GenerateSmallWorld(k int, p float64) error {
	if err := m.graph.GenerateSmallWorld(m.order, k, p, m.rng); err != nil {
		log.Printf("small-world generation rejected: %v", err)
		return err
	}
	return nil
}

// Broadcast implements agent.Environment: wrap the executed action in a
// moral message and deliver an independent copy to each direct neighbor.
func (m *Manager) Broadcast(sender *agent.Agent, action *types.ActionOption) {
	msg := m.CreateMessageFromAction(sender, action)
	for _, neighbor := range m.graph.Neighbors(sender.Name) {
		if receiver, ok := m.agents[neighbor]; ok {
			receiver.Deliver(copyMessage(msg))
		}
	}
	m.logEvent(sender.Name, "broadcast", fmt.Sprintf("action %q to %d neighbors", action.Name, m.graph.Degree(sender.Name)))
}

// CreateMessageFromAction snapshots the sender's genome into a message.
// The genome copy is taken at send time: the sender's later evolution
// never rewrites a message already in flight.
func (m *Manager) CreateMessageFromAction(sender *agent.Agent, action *types.ActionOption) types.MoralMessage {
	return types.MoralMessage{
		ID:               uuid.NewString(),
		MoralContent:     sender.Genome.Genes(),
		OriginalSender:   sender.Name,
		TextContent:      fmt.Sprintf("%s chose %q: %s", sender.Name, action.Name, action.Description),
		EmotionalValence: action.MetaFloat("emotional_valence", 0.2),
		EmotionalArousal: action.MetaFloat("emotional_arousal", 0.5),
		SocialReward:     action.MetaFloat("social_reward", 0.5),
		GroupRelevance:   action.MetaFloat("group_relevance", 0.5),
		Urgency:          action.MetaFloat("urgency", 0.5),
		Credibility:      action.MetaFloat("credibility", 0.8),
		TransmissionPath: []string{sender.Name},
		Timestamp:        m.simTime,
	}
}

// InjectShock fans an externally-constructed message out to every agent.
// Shocks carry no original sender.
func (m *Manager) InjectShock(msg types.MoralMessage) {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = m.simTime
	}
	for _, name := range m.order {
		m.agents[name].Deliver(copyMessage(msg))
	}
	m.logEvent("", "shock", fmt.Sprintf("injected to %d agents", len(m.order)))
}

// TickAll advances every agent one heartbeat in stable insertion order,
// then records a snapshot of the whole society.
func (m *Manager) TickAll() {
	m.tick++
	m.simTime = m.simTime.Add(m.cfg.Step)

	for _, name := range m.order {
		a := m.agents[name]
		a.Tick(m)
		if a.LastTrace != "" {
			m.logEvent(name, "tick", a.LastTrace)
		}
	}

	snap := m.Snapshot()
	m.history = append(m.history, snap)
	if m.cfg.Sink != nil {
		if err := m.cfg.Sink.SaveSnapshot(snap); err != nil {
			log.Printf("snapshot sink: %v", err)
		}
	}
}

// RunFor advances the society n ticks.
func (m *Manager) RunFor(n int) {
	for i := 0; i < n; i++ {
		m.TickAll()
	}
}

// Snapshot captures the current society state: per-agent genomes and
// traces, deduplicated edges, and the two society metrics.
func (m *Manager) Snapshot() types.TickSnapshot {
	agents := make([]types.AgentSnapshot, 0, len(m.order))
	for _, name := range m.order {
		a := m.agents[name]
		agents = append(agents, types.AgentSnapshot{
			Name:      name,
			Genes:     a.Genome.Genes(),
			LastTrace: a.LastTrace,
		})
	}

	return types.TickSnapshot{
		Tick:         m.tick,
		Timestamp:    m.simTime,
		Agents:       agents,
		Edges:        m.graph.Edges(),
		Polarization: m.Polarization(),
		Diversity:    m.Diversity(),
	}
}

// History returns all recorded per-tick snapshots.
func (m *Manager) History() []types.TickSnapshot {
	return m.history
}

func (m *Manager) logEvent(agentName, event, detail string) {
	if m.cfg.Logger == nil {
		return
	}
	_ = m.cfg.Logger.LogEvent(EventLog{
		Timestamp: time.Now(),
		SimTime:   m.simTime,
		Tick:      m.tick,
		Agent:     agentName,
		Event:     event,
		Detail:    detail,
	})
}

// copyMessage deep-copies the message's owned maps and slices so each
// receiver processes an independent value.
func copyMessage(msg types.MoralMessage) types.MoralMessage {
	out := msg
	out.MoralContent = make(map[string]float64, len(msg.MoralContent))
	for k, v := range msg.MoralContent {
		out.MoralContent[k] = v
	}
	out.TransmissionPath = append([]string(nil), msg.TransmissionPath...)
	return out
}
