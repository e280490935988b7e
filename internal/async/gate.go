// Package async guards fetch lifecycles with a generation counter: a load
// takes a token before starting, and checks it before applying the result.
// Starting a newer load (or cancelling) invalidates every older token, so a
// stale response can never mutate state its consumer stopped caring about.
package async

import "sync/atomic"

// Gate issues load generations for one logical fetch slot.
// The zero value is ready to use.
type Gate struct {
	gen atomic.Uint64
}

// Next starts a new generation, invalidating all previously issued tokens.
func (g *Gate) Next() Token {
	return Token{gate: g, gen: g.gen.Add(1)}
}

// Cancel invalidates every outstanding token without starting a new load.
func (g *Gate) Cancel() {
	g.gen.Add(1)
}

// Token identifies one load generation.
type Token struct {
	gate *Gate
	gen  uint64
}

// Live reports whether this token still belongs to the latest generation.
// Results guarded by a dead token must be discarded.
func (t Token) Live() bool {
	return t.gate != nil && t.gate.gen.Load() == t.gen
}
