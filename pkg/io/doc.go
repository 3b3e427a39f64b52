// Package io reads MMCF instances from JSON and writes normalized networks
// back out as JSON or as the line-oriented network text format.
//
// # JSON Format
//
// An instance has three top-level members:
//
//	{
//	  "info": {"no_nodes": 4, "no_arcs": 2, "no_commodities": 1},
//	  "arcs": [
//	    {"from": 0, "to": 1, "capacity": 10, "cost": 2},
//	    {"from": 1, "to": 2, "capacity": 5, "cost": {"0": 3}}
//	  ],
//	  "demands": {
//	    "0": {"0": -3},
//	    "2": {"0": 3}
//	  }
//	}
//
// Arcs are numbered by position. A cost is either a number shared by every
// commodity or an object keyed by commodity id; commodities missing from the
// object cannot use the arc. Demands are keyed by vertex id, then commodity id:
// negative values supply, positive values consume. Missing entries are zero.
//
// Demand entries are kept in document order. Aggregation allocates endpoint
// vertices in that order, so the same document always yields the same
// network.
//
// # Endpoints
//
// [WriteInstance] adds an optional "endpoints" member recording the
// aggregated source and target of each commodity:
//
//	"endpoints": {"0": {"source": 4, "target": 5}}
//
// [ReadInstance] restores them, which makes aggregating an exported network
// a no-op.
//
// # Network Text
//
// [WriteNetwork] emits the node count and one "id 0 0" line per node, the arc
// count and one "id from to capacity cost" line per arc, then the commodity
// count and one "commodity source target amount" line per commodity. Every
// arc must carry a scalar cost.
package io
