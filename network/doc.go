// Package network implements ConnectionNetwork: the stable-stored
// collection of ClosedNets that make up a Block's wiring, plus the
// insert/union/lookup logic that keeps a net per connected component.
//
// ConnectionNetwork never decides net membership on its own initiative —
// callers (block.Block) pass in the net(s), if any, already known to
// contain each endpoint of a new Connection, and ConnectionNetwork picks
// the right one of five branches: allocate, extend one side, extend the
// other, loop within one net, or union two nets.
package network
