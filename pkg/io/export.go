package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/matzehuels/mmcf/pkg/network"
)

// MarshalJSON writes the entries grouped by vertex, vertices in order of
// first appearance, so that [ReadInstance] sees the same order again.
func (d demands) MarshalJSON() ([]byte, error) {
	var order []string
	groups := make(map[string][]demand)
	for _, e := range d {
		if _, ok := groups[e.vertex]; !ok {
			order = append(order, e.vertex)
		}
		groups[e.vertex] = append(groups[e.vertex], e)
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, v := range order {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, "%q:{", v)
		for j, e := range groups[v] {
			if j > 0 {
				buf.WriteByte(',')
			}
			amount, err := json.Marshal(e.amount)
			if err != nil {
				return nil, err
			}
			fmt.Fprintf(&buf, "%q:%s", e.commodity, amount)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// WriteInstance encodes inst as JSON and writes it to w. Costs keep their
// scalar or per-commodity form. Aggregated endpoints, if any, are written to
// the "endpoints" member so the output can be re-imported with
// [ReadInstance] without aggregating twice.
func WriteInstance(inst network.Instance, w io.Writer) error {
	out := instance{
		Info: info{Nodes: inst.Nodes, Arcs: len(inst.Arcs), Commodities: inst.Commodities},
		Arcs: make([]arc, len(inst.Arcs)),
	}
	for i, a := range inst.Arcs {
		cost, err := marshalCost(a.Cost)
		if err != nil {
			return fmt.Errorf("arc %d: %w", a.ID, err)
		}
		out.Arcs[i] = arc{From: a.From, To: a.To, Capacity: a.Capacity, Cost: cost}
	}
	for _, d := range inst.Demands {
		out.Demands = append(out.Demands, demand{
			vertex:    strconv.Itoa(d.Vertex),
			commodity: strconv.Itoa(d.Commodity),
			amount:    d.Amount,
		})
	}
	if len(inst.Sources) > 0 || len(inst.Targets) > 0 {
		out.Endpoints = make(map[string]endpoint)
		for c := 0; c < inst.Commodities; c++ {
			src, okSrc := inst.Sources[c]
			tgt, okTgt := inst.Targets[c]
			if okSrc && okTgt {
				out.Endpoints[strconv.Itoa(c)] = endpoint{Source: &src.Vertex, Target: &tgt.Vertex}
			}
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportInstance writes inst to a JSON file at path.
func ExportInstance(inst network.Instance, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteInstance(inst, f)
}

func marshalCost(c network.Cost) (json.RawMessage, error) {
	if v, ok := c.Value(); ok {
		return json.Marshal(v)
	}
	byKey := make(map[string]float64)
	for k, v := range c.Mapping() {
		byKey[strconv.Itoa(k)] = v
	}
	return json.Marshal(byKey)
}
