// Package network holds the normalized representation of a multi-commodity
// flow (MMCF) instance.
//
// # Overview
//
// An [Instance] is the raw problem: a vertex count, a list of capacitated arcs
// with either a shared or a per-commodity cost, and a table of signed demands.
// [New] turns an Instance into a [Network]: it aggregates every commodity's
// supply vertices behind a single synthetic source and its consumer vertices
// behind a single synthetic target, indexes adjacency, resolves costs, and
// derives the set of valid (arc, commodity) pairs.
//
// A Network is the canonical form consumed by the model builders in
// package model and by the network-text exporter in package io.
//
// # Aggregation
//
// [Aggregate] appends one vertex per commodity and role, and one zero-cost
// bridging arc per non-zero demand entry. The aggregated source and target
// demands are balanced to min(|Σ supply|, |Σ demand|). How an imbalance is
// handled is governed by [Policy]:
//
//   - [PolicyCap] caps the flow at the common value and records an [Imbalance]
//   - [PolicyFail] rejects the instance
//
// Aggregation never renumbers existing vertices or arcs, and running it again
// on its own output adds nothing.
//
// # Valid Arcs
//
// A flow variable exists for an (arc, commodity) pair only when the pair's
// cost resolves (see [Cost.Resolve]). [Network.IsValid] and
// [Network.ValidArcs] are the single source of truth for that decision.
//
// # Concurrency
//
// A Network is immutable once [New] returns and may be shared between
// goroutines. Instances are plain values; [Aggregate] never modifies its input.
package network
