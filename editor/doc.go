// Package editor implements Editor, the per-session input state machine
// that turns two grid clicks into a legal Block mutation.
//
// Editor never mutates Block's stores or nets directly — it classifies
// coordinates via Block.WhatIsAt, computes a proposed endpoint and its
// legality each frame, and on commit defers to Block.AddConnection,
// Block.InsertOverlap, or Block.EraseCon.
package editor
