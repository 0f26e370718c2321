// Package tracking coordinates user-driven point injection with a
// point-tracking engine and a face-tracking pipeline.
//
// Clicks are expanded into candidate points by an InjectionPolicy and held in
// a PendingBuffer. Once per frame the Controller drains that buffer into the
// Engine, advances the engine by exactly one update, reads back faces and
// tracked points, renders them through a Surface, and reports changes in the
// tracked point count.
//
// The package owns no tracking mathematics. Face detection, optical flow and
// drawing are collaborators behind the narrow interfaces in engine.go.
package tracking
