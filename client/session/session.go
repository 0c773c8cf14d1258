// Package session holds the local admin trust flag. The record is a
// client-side convenience only; the server independently re-checks the
// admin role on every write, and the two can disagree.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// TTL is how long an admin session stays valid after login.
const TTL = 24 * time.Hour

const recordName = "admin-session"

// Record is the persisted session payload.
type Record struct {
	Authenticated bool  `json:"authenticated"`
	Timestamp     int64 `json:"timestamp"` // unix milliseconds at issue
}

// Gate is the process-wide admin flag backed by a file record. States are
// Anonymous and Admin; nothing in between.
type Gate struct {
	path   string
	now    func() time.Time
	record *Record
}

// NewGate loads the persisted record from dir. An expired or unreadable
// record is cleared, leaving the gate anonymous.
func NewGate(dir string) *Gate {
	g := &Gate{
		path: filepath.Join(dir, recordName),
		now:  time.Now,
	}
	g.load()
	return g
}

func (g *Gate) load() {
	data, err := os.ReadFile(g.path)
	if err != nil {
		return
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		_ = os.Remove(g.path)
		return
	}
	if g.expired(rec) {
		_ = os.Remove(g.path)
		return
	}
	g.record = &rec
}

func (g *Gate) expired(rec Record) bool {
	if !rec.Authenticated {
		return true
	}
	issued := time.UnixMilli(rec.Timestamp)
	return g.now().Sub(issued) >= TTL
}

// IsAdmin reports whether a live admin session exists. Expiry is checked
// on every read, not only at load; an expired record is cleared here.
func (g *Gate) IsAdmin() bool {
	if g.record == nil {
		return false
	}
	if g.expired(*g.record) {
		g.record = nil
		_ = os.Remove(g.path)
		return false
	}
	return true
}

// Login marks the gate admin and persists a freshly timestamped record.
func (g *Gate) Login() error {
	rec := Record{Authenticated: true, Timestamp: g.now().UnixMilli()}

	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(g.path), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(g.path, data, 0644); err != nil {
		return err
	}

	g.record = &rec
	return nil
}

// Logout clears the flag and the persisted record.
func (g *Gate) Logout() error {
	g.record = nil
	if err := os.Remove(g.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
