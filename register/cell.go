// Package register provides the stateful elements of the processor: the
// edge-triggered cell, the registers built from cells, and the register file.
//
// All elements follow the two-phase protocol. Each cycle, Step is called once
// with logic.Settle and then once with logic.Commit. Values are sampled in the
// settle phase and become visible on Q only after the commit call.
package register

import "github.com/sarchlab/gatepipe/logic"

// settleLimit bounds the number of feedback iterations of a latch. An SR loop
// built from two NOR gates stabilizes within three.
const settleLimit = 4

// latch is a gated D latch made of a cross-coupled NOR pair.
type latch struct {
	q bool
}

func (l *latch) step(d, enable bool) bool {
	s := logic.And(enable, d)
	r := logic.And(enable, logic.Not(d))

	q, qn := l.q, logic.Not(l.q)
	for i := 0; i < settleLimit; i++ {
		nextQ := logic.Nor(r, qn)
		nextQn := logic.Nor(s, nextQ)

		if nextQ == q && nextQn == qn {
			break
		}

		q, qn = nextQ, nextQn
	}

	l.q = q

	return q
}

// A Cell is a master-slave edge-triggered flip-flop.
//
// The master latch is transparent while the clock is low. The slave latch
// copies the master only on a rising clock edge, which the cell detects by
// comparing the current level with the level of its previous call.
type Cell struct {
	master    latch
	slave     latch
	prevClock bool
}

// Step evaluates the cell for one phase and returns Q.
func (c *Cell) Step(clk logic.Phase, d bool) bool {
	level := clk.Level()

	c.master.step(d, logic.Not(level))

	rising := logic.And(logic.Not(c.prevClock), level)
	c.slave.step(c.master.q, rising)

	c.prevClock = level

	return c.slave.q
}

// Q returns the committed value.
func (c *Cell) Q() bool {
	return c.slave.q
}
