package scanner

import "sync/atomic"

// reloadPolicy is the full reload countdown. Every interval cycles the
// engine ignores all cached cutoffs and rescans each location from epoch.
// A zero interval disables full reloads entirely.
//
// The counter is a plain atomic so a concurrent status query can read it
// without taking the cycle lock.
type reloadPolicy struct {
	interval  uint32
	remaining atomic.Uint32
}

func newReloadPolicy(interval uint32) *reloadPolicy {
	p := &reloadPolicy{interval: interval}
	p.remaining.Store(interval)
	return p
}

// next advances the countdown by one cycle and reports whether this cycle
// must ignore the cutoffs. When the counter reaches zero the reload fires
// and the counter resets to the full interval.
func (p *reloadPolicy) next() bool {
	if p.interval == 0 {
		return false
	}
	if p.remaining.Load() == 0 {
		p.remaining.Store(p.interval)
		return true
	}
	p.remaining.Add(^uint32(0))
	return false
}

// cyclesUntilReload returns the number of incremental cycles left before
// the next forced full reload.
func (p *reloadPolicy) cyclesUntilReload() uint32 {
	return p.remaining.Load()
}
