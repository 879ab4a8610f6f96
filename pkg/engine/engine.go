// Package engine implements the rules of the union-chess variant: board
// state, action legality, cascading turns, victory and draw detection, the
// FEN-style text codec and the reachability analyses built on top of them.
//
// A turn is a cascade of atomic actions (lift, place, promote). Placing a
// piece onto a union square lifts the partner of the same color and the turn
// continues, so a single move can touch many squares. All analyses in this
// package work on that action graph.
package engine
