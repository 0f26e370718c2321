// Package sqlite persists tracking sessions and per-frame statistics.
//
// The schema is managed with golang-migrate from migrations embedded in the
// binary. Store implements tracking.FrameSink so it can be attached directly
// to a Controller.
package sqlite
