// Package store persists society tick snapshots in SQLite so runs can be
// inspected after the process exits.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Henry10296/Hegelian-AI-Framework-sub000/pkg/types"
)

const schema = `
CREATE TABLE IF NOT EXISTS society_ticks (
	tick          INTEGER PRIMARY KEY,
	timestamp     TEXT NOT NULL,
	polarization  REAL NOT NULL,
	diversity     REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS agent_genomes (
	tick        INTEGER NOT NULL,
	agent       TEXT NOT NULL,
	genes_json  TEXT NOT NULL,
	last_trace  TEXT,
	PRIMARY KEY (tick, agent),
	FOREIGN KEY (tick) REFERENCES society_ticks(tick)
);

CREATE TABLE IF NOT EXISTS network_edges (
	tick    INTEGER NOT NULL,
	node_a  TEXT NOT NULL,
	node_b  TEXT NOT NULL,
	PRIMARY KEY (tick, node_a, node_b),
	FOREIGN KEY (tick) REFERENCES society_ticks(tick)
);
CREATE INDEX IF NOT EXISTS idx_genomes_agent ON agent_genomes(agent);
`

// Store writes snapshots to a SQLite database. It satisfies the society
// snapshot sink interface.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and runs migrations.
// Pass ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveSnapshot writes one tick atomically. Saving the same tick twice
// replaces the earlier rows.
func (s *Store) SaveSnapshot(snap types.TickSnapshot) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	ts := snap.Timestamp.UTC().Format(time.RFC3339Nano)
	if _, err := tx.Exec(
		`INSERT OR REPLACE INTO society_ticks (tick, timestamp, polarization, diversity)
		 VALUES (?, ?, ?, ?)`,
		snap.Tick, ts, snap.Polarization, snap.Diversity,
	); err != nil {
		return fmt.Errorf("insert tick %d: %w", snap.Tick, err)
	}
	if _, err := tx.Exec(`DELETE FROM agent_genomes WHERE tick = ?`, snap.Tick); err != nil {
		return fmt.Errorf("clear genomes for tick %d: %w", snap.Tick, err)
	}
	if _, err := tx.Exec(`DELETE FROM network_edges WHERE tick = ?`, snap.Tick); err != nil {
		return fmt.Errorf("clear edges for tick %d: %w", snap.Tick, err)
	}

	for _, a := range snap.Agents {
		genes, err := json.Marshal(a.Genes)
		if err != nil {
			return fmt.Errorf("marshal genes for %s: %w", a.Name, err)
		}
		if _, err := tx.Exec(
			`INSERT INTO agent_genomes (tick, agent, genes_json, last_trace) VALUES (?, ?, ?, ?)`,
			snap.Tick, a.Name, string(genes), a.LastTrace,
		); err != nil {
			return fmt.Errorf("insert genome for %s: %w", a.Name, err)
		}
	}
	for _, e := range snap.Edges {
		if _, err := tx.Exec(
			`INSERT INTO network_edges (tick, node_a, node_b) VALUES (?, ?, ?)`,
			snap.Tick, e[0], e[1],
		); err != nil {
			return fmt.Errorf("insert edge %s-%s: %w", e[0], e[1], err)
		}
	}

	return tx.Commit()
}

// Ticks reads back every stored snapshot in tick order.
func (s *Store) Ticks() ([]types.TickSnapshot, error) {
	rows, err := s.db.Query(
		`SELECT tick, timestamp, polarization, diversity FROM society_ticks ORDER BY tick`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snaps []types.TickSnapshot
	for rows.Next() {
		var snap types.TickSnapshot
		var ts string
		if err := rows.Scan(&snap.Tick, &ts, &snap.Polarization, &snap.Diversity); err != nil {
			return nil, err
		}
		snap.Timestamp, _ = time.Parse(time.RFC3339Nano, ts)
		snaps = append(snaps, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range snaps {
		if snaps[i].Agents, err = s.agentsAt(snaps[i].Tick); err != nil {
			return nil, err
		}
		if snaps[i].Edges, err = s.edgesAt(snaps[i].Tick); err != nil {
			return nil, err
		}
	}
	return snaps, nil
}

// GenomeRecord is one agent's genome at one tick.
type GenomeRecord struct {
	Tick  int
	Genes map[string]float64
}

// GenomeHistory returns an agent's genome at every stored tick, oldest first.
func (s *Store) GenomeHistory(agent string) ([]GenomeRecord, error) {
	rows, err := s.db.Query(
		`SELECT tick, genes_json FROM agent_genomes WHERE agent = ? ORDER BY tick`,
		agent,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []GenomeRecord
	for rows.Next() {
		var rec GenomeRecord
		var genes string
		if err := rows.Scan(&rec.Tick, &genes); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(genes), &rec.Genes); err != nil {
			return nil, fmt.Errorf("parse genes for %s at tick %d: %w", agent, rec.Tick, err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func (s *Store) agentsAt(tick int) ([]types.AgentSnapshot, error) {
	rows, err := s.db.Query(
		`SELECT agent, genes_json, last_trace FROM agent_genomes WHERE tick = ? ORDER BY rowid`,
		tick,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var agents []types.AgentSnapshot
	for rows.Next() {
		var a types.AgentSnapshot
		var genes string
		var trace sql.NullString
		if err := rows.Scan(&a.Name, &genes, &trace); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(genes), &a.Genes); err != nil {
			return nil, fmt.Errorf("parse genes for %s: %w", a.Name, err)
		}
		a.LastTrace = trace.String
		agents = append(agents, a)
	}
	return agents, rows.Err()
}

func (s *Store) edgesAt(tick int) ([][2]string, error) {
	rows, err := s.db.Query(
		`SELECT node_a, node_b FROM network_edges WHERE tick = ? ORDER BY node_a, node_b`,
		tick,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var edges [][2]string
	for rows.Next() {
		var a, b string
		if err := rows.Scan(&a, &b); err != nil {
			return nil, err
		}
		edges = append(edges, [2]string{a, b})
	}
	return edges, rows.Err()
}
