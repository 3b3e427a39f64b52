package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/mmcf/pkg/network"
)

func TestBuildPenalizedObjective(t *testing.T) {
	net := mustNetwork(t, diamond())
	m := BuildPenalized(net, Options{})

	got := names(m, m.Objective)
	if len(got) != len(net.Arcs()) {
		t.Errorf("objective has %d terms, want one violation per vertex pair (%d)", len(got), len(net.Arcs()))
	}
	for name, coef := range got {
		if name[:2] != "v_" || coef != 1 {
			t.Errorf("objective term %g %s, want violation variables only", coef, name)
		}
	}
}

func TestBuildPenalizedCapacity(t *testing.T) {
	net := mustNetwork(t, diamond())
	m := BuildPenalized(net, Options{})

	row, ok := m.Constraint("CAP[2]1_3")
	if !ok {
		t.Fatal("missing CAP[2]1_3")
	}
	want := map[string]float64{"f_(1-3)@0": 1, "v_(1-3)": -1}
	if diff := cmp.Diff(want, names(m, row.Expr)); diff != "" {
		t.Errorf("CAP[2]1_3 mismatch (-want +got):\n%s", diff)
	}
	if row.Op != LE || row.RHS != 4 {
		t.Errorf("CAP[2]1_3 is %s %g, want <= 4", row.Op, row.RHS)
	}
}

func TestBuildPenalizedParallelArcsShareVariables(t *testing.T) {
	net := mustNetwork(t, network.Instance{
		Nodes:       2,
		Commodities: 1,
		Arcs: []network.Arc{
			{ID: 0, From: 0, To: 1, Capacity: 1, Cost: network.Scalar(1)},
			{ID: 1, From: 0, To: 1, Capacity: 2, Cost: network.Scalar(5)},
		},
		Demands: network.DemandTable{
			{Vertex: 0, Commodity: 0, Amount: -3},
			{Vertex: 1, Commodity: 0, Amount: 3},
		},
	})
	m := BuildPenalized(net, Options{})

	a, _ := m.Constraint("CAP[0]0_1")
	b, _ := m.Constraint("CAP[1]0_1")
	if diff := cmp.Diff(names(m, a.Expr), names(m, b.Expr)); diff != "" {
		t.Errorf("parallel arcs use different variables:\n%s", diff)
	}
}

func TestBuildPenalizedDemandRows(t *testing.T) {
	net := mustNetwork(t, diamond())
	m := BuildPenalized(net, Options{DemandScale: 2})

	for c := 0; c < net.Commodities(); c++ {
		tgt, src := net.Target(c), net.Source(c)

		row, ok := m.Constraint(demandName(tgt.Vertex, c))
		if !ok {
			t.Fatalf("commodity %d: missing target row", c)
		}
		if row.Op != GE || row.RHS != 2*tgt.Demand {
			t.Errorf("commodity %d: target row is %s %g, want >= %g", c, row.Op, row.RHS, 2*tgt.Demand)
		}

		row, ok = m.Constraint(supplyName(src.Vertex, c))
		if !ok {
			t.Fatalf("commodity %d: missing source row", c)
		}
		if row.Op != LE || row.RHS != -src.Demand {
			t.Errorf("commodity %d: source row is %s %g, want <= %g", c, row.Op, row.RHS, -src.Demand)
		}

		if _, ok := m.Constraint(ConservationName(tgt.Vertex, c)); ok {
			t.Errorf("commodity %d: target has a conservation row", c)
		}
	}

	row, ok := m.Constraint(ConservationName(2, 0))
	if !ok {
		t.Fatal("missing KIR_2_0")
	}
	want := map[string]float64{"f_(2-3)@0": 1, "f_(0-2)@0": -1}
	if diff := cmp.Diff(want, names(m, row.Expr)); diff != "" {
		t.Errorf("KIR_2_0 mismatch (-want +got):\n%s", diff)
	}
}
