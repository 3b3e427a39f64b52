package network

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	errs "github.com/matzehuels/mmcf/pkg/errors"
)

var costOpt = cmp.AllowUnexported(Cost{})

func TestAggregate(t *testing.T) {
	testCases := []struct {
		desc           string
		inst           Instance
		wantNodes      int
		wantArcs       []Arc
		wantSources    map[int]Endpoint
		wantTargets    map[int]Endpoint
		wantImbalances []Imbalance
	}{
		{
			// 0 --\
			//      >--> 2
			// 1 --/
			desc: "two suppliers one consumer",
			inst: Instance{
				Nodes:       3,
				Commodities: 1,
				Arcs: []Arc{
					{ID: 0, From: 0, To: 2, Capacity: 10, Cost: Scalar(1)},
					{ID: 1, From: 1, To: 2, Capacity: 10, Cost: Scalar(1)},
				},
				Demands: DemandTable{
					{Vertex: 0, Commodity: 0, Amount: -3},
					{Vertex: 1, Commodity: 0, Amount: -2},
					{Vertex: 2, Commodity: 0, Amount: 5},
				},
			},
			wantNodes: 5,
			wantArcs: []Arc{
				{ID: 0, From: 0, To: 2, Capacity: 10, Cost: Scalar(1)},
				{ID: 1, From: 1, To: 2, Capacity: 10, Cost: Scalar(1)},
				{ID: 2, From: 3, To: 0, Capacity: 3, Cost: Scalar(0)},
				{ID: 3, From: 3, To: 1, Capacity: 2, Cost: Scalar(0)},
				{ID: 4, From: 2, To: 4, Capacity: 5, Cost: Scalar(0)},
			},
			wantSources: map[int]Endpoint{0: {Vertex: 3, Demand: -5}},
			wantTargets: map[int]Endpoint{0: {Vertex: 4, Demand: 5}},
		},
		{
			desc: "demand exceeds supply is capped",
			inst: Instance{
				Nodes:       2,
				Commodities: 1,
				Arcs:        []Arc{{ID: 0, From: 0, To: 1, Capacity: 10, Cost: Scalar(2)}},
				Demands: DemandTable{
					{Vertex: 0, Commodity: 0, Amount: -4},
					{Vertex: 1, Commodity: 0, Amount: 6},
				},
			},
			wantNodes: 4,
			wantArcs: []Arc{
				{ID: 0, From: 0, To: 1, Capacity: 10, Cost: Scalar(2)},
				{ID: 1, From: 2, To: 0, Capacity: 4, Cost: Scalar(0)},
				{ID: 2, From: 1, To: 3, Capacity: 6, Cost: Scalar(0)},
			},
			wantSources:    map[int]Endpoint{0: {Vertex: 2, Demand: -4}},
			wantTargets:    map[int]Endpoint{0: {Vertex: 3, Demand: 4}},
			wantImbalances: []Imbalance{{Commodity: 0, Supply: 4, Demand: 6}},
		},
		{
			desc: "zero entries are neutral",
			inst: Instance{
				Nodes:       2,
				Commodities: 1,
				Arcs:        []Arc{{ID: 0, From: 0, To: 1, Capacity: 1, Cost: Scalar(1)}},
				Demands: DemandTable{
					{Vertex: 0, Commodity: 0, Amount: -1},
					{Vertex: 1, Commodity: 0, Amount: 0},
					{Vertex: 1, Commodity: 0, Amount: 1},
				},
			},
			wantNodes: 4,
			wantArcs: []Arc{
				{ID: 0, From: 0, To: 1, Capacity: 1, Cost: Scalar(1)},
				{ID: 1, From: 2, To: 0, Capacity: 1, Cost: Scalar(0)},
				{ID: 2, From: 1, To: 3, Capacity: 1, Cost: Scalar(0)},
			},
			wantSources: map[int]Endpoint{0: {Vertex: 2, Demand: -1}},
			wantTargets: map[int]Endpoint{0: {Vertex: 3, Demand: 1}},
		},
		{
			desc: "commodity without demand gets zero endpoints",
			inst: Instance{
				Nodes:       2,
				Commodities: 2,
				Arcs:        []Arc{{ID: 0, From: 0, To: 1, Capacity: 3, Cost: Scalar(1)}},
				Demands: DemandTable{
					{Vertex: 0, Commodity: 0, Amount: -2},
					{Vertex: 1, Commodity: 0, Amount: 2},
				},
			},
			wantNodes: 6,
			wantArcs: []Arc{
				{ID: 0, From: 0, To: 1, Capacity: 3, Cost: Scalar(1)},
				{ID: 1, From: 2, To: 0, Capacity: 2, Cost: Scalar(0)},
				{ID: 2, From: 1, To: 3, Capacity: 2, Cost: Scalar(0)},
			},
			wantSources: map[int]Endpoint{0: {Vertex: 2, Demand: -2}, 1: {Vertex: 4, Demand: 0}},
			wantTargets: map[int]Endpoint{0: {Vertex: 3, Demand: 2}, 1: {Vertex: 5, Demand: 0}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			got, imbalances, err := Aggregate(tc.inst, PolicyCap)
			if err != nil {
				t.Fatalf("Aggregate() error = %v", err)
			}
			if got.Nodes != tc.wantNodes {
				t.Errorf("Nodes = %d, want %d", got.Nodes, tc.wantNodes)
			}
			if diff := cmp.Diff(tc.wantArcs, got.Arcs, costOpt); diff != "" {
				t.Errorf("Arcs mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tc.wantSources, got.Sources); diff != "" {
				t.Errorf("Sources mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tc.wantTargets, got.Targets); diff != "" {
				t.Errorf("Targets mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tc.wantImbalances, imbalances); diff != "" {
				t.Errorf("Imbalances mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAggregateBalance(t *testing.T) {
	inst := Instance{
		Nodes:       4,
		Commodities: 3,
		Arcs:        []Arc{{ID: 0, From: 0, To: 3, Capacity: 10, Cost: Scalar(1)}},
		Demands: DemandTable{
			{Vertex: 0, Commodity: 0, Amount: -7},
			{Vertex: 3, Commodity: 0, Amount: 2},
			{Vertex: 1, Commodity: 1, Amount: -1.5},
			{Vertex: 2, Commodity: 1, Amount: -1.5},
			{Vertex: 3, Commodity: 1, Amount: 3},
			{Vertex: 2, Commodity: 2, Amount: 4},
		},
	}
	want := map[int]float64{0: 2, 1: 3, 2: 0}

	got, _, err := Aggregate(inst, PolicyCap)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	for c, balanced := range want {
		src, tgt := got.Sources[c], got.Targets[c]
		if src.Demand != -tgt.Demand {
			t.Errorf("commodity %d: source %g is not the negated target %g", c, src.Demand, tgt.Demand)
		}
		if tgt.Demand != balanced {
			t.Errorf("commodity %d: target demand = %g, want %g", c, tgt.Demand, balanced)
		}
	}
}

func TestAggregateBridgeArcs(t *testing.T) {
	inst := Instance{
		Nodes:       3,
		Commodities: 2,
		Demands: DemandTable{
			{Vertex: 0, Commodity: 0, Amount: -2.5},
			{Vertex: 1, Commodity: 1, Amount: -1},
			{Vertex: 2, Commodity: 0, Amount: 2.5},
			{Vertex: 2, Commodity: 1, Amount: 1},
		},
	}

	got, _, err := Aggregate(inst, PolicyCap)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	if len(got.Arcs) != len(inst.Demands) {
		t.Fatalf("len(Arcs) = %d, want %d", len(got.Arcs), len(inst.Demands))
	}
	for i, a := range got.Arcs {
		d := inst.Demands[i]
		if v, _ := a.Cost.Value(); v != 0 || !a.Cost.IsUnified() {
			t.Errorf("%s: cost = %v, want scalar 0", a, a.Cost)
		}
		if a.Capacity != max(d.Amount, -d.Amount) {
			t.Errorf("%s: capacity = %g, want |%g|", a, a.Capacity, d.Amount)
		}
		if a.ID != i {
			t.Errorf("arc %d has ID %d", i, a.ID)
		}
	}
}

func TestAggregateIdempotent(t *testing.T) {
	inst := Instance{
		Nodes:       4,
		Commodities: 2,
		Arcs: []Arc{
			{ID: 0, From: 0, To: 1, Capacity: 5, Cost: Scalar(1)},
			{ID: 1, From: 1, To: 3, Capacity: 5, Cost: PerCommodity(map[int]float64{1: 2})},
		},
		Demands: DemandTable{
			{Vertex: 0, Commodity: 0, Amount: -4},
			{Vertex: 2, Commodity: 0, Amount: -1},
			{Vertex: 3, Commodity: 0, Amount: 6},
			{Vertex: 1, Commodity: 1, Amount: -2},
			{Vertex: 3, Commodity: 1, Amount: 2},
		},
	}

	once, _, err := Aggregate(inst, PolicyCap)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	twice, imbalances, err := Aggregate(once, PolicyFail)
	if err != nil {
		t.Fatalf("second Aggregate() error = %v", err)
	}
	if len(imbalances) != 0 {
		t.Errorf("second Aggregate() imbalances = %v, want none", imbalances)
	}
	if diff := cmp.Diff(once, twice, costOpt); diff != "" {
		t.Errorf("re-aggregation changed the instance (-once +twice):\n%s", diff)
	}
}

func TestAggregateDoesNotModifyInput(t *testing.T) {
	inst := Instance{
		Nodes:       2,
		Commodities: 1,
		Arcs:        []Arc{{ID: 0, From: 0, To: 1, Capacity: 1, Cost: Scalar(1)}},
		Demands: DemandTable{
			{Vertex: 0, Commodity: 0, Amount: -1},
			{Vertex: 1, Commodity: 0, Amount: 1},
		},
	}
	before := inst.Clone()

	if _, _, err := Aggregate(inst, PolicyCap); err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	if diff := cmp.Diff(before, inst, costOpt, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("input modified (-before +after):\n%s", diff)
	}
}

func TestAggregateFailPolicy(t *testing.T) {
	inst := Instance{
		Nodes:       2,
		Commodities: 1,
		Demands: DemandTable{
			{Vertex: 0, Commodity: 0, Amount: -4},
			{Vertex: 1, Commodity: 0, Amount: 6},
		},
	}

	_, _, err := Aggregate(inst, PolicyFail)
	if !errs.Is(err, errs.ErrCodeImbalancedSupplyDemand) {
		t.Fatalf("Aggregate() error = %v, want %s", err, errs.ErrCodeImbalancedSupplyDemand)
	}

	inst.Demands[1].Amount = 4
	if _, _, err := Aggregate(inst, PolicyFail); err != nil {
		t.Errorf("balanced instance: Aggregate() error = %v", err)
	}
}

func TestAggregateRoundedTotals(t *testing.T) {
	inst := Instance{
		Nodes:       3,
		Commodities: 1,
		Demands: DemandTable{
			{Vertex: 0, Commodity: 0, Amount: -0.1},
			{Vertex: 1, Commodity: 0, Amount: -0.2},
			{Vertex: 2, Commodity: 0, Amount: 0.3},
		},
	}

	for _, policy := range []Policy{PolicyCap, PolicyFail} {
		t.Run(string(policy), func(t *testing.T) {
			out, imbalances, err := Aggregate(inst, policy)
			if err != nil {
				t.Fatalf("Aggregate() error = %v", err)
			}
			if len(imbalances) != 0 {
				t.Errorf("imbalances = %+v, want none", imbalances)
			}
			if src, tgt := out.Sources[0].Demand, out.Targets[0].Demand; src != -tgt {
				t.Errorf("source demand %g, target demand %g: not balanced", src, tgt)
			}
		})
	}
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    Policy
		wantErr bool
	}{
		{"", PolicyCap, false},
		{"cap", PolicyCap, false},
		{"fail", PolicyFail, false},
		{"strict", "", true},
	}

	for _, tt := range tests {
		got, err := ParsePolicy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePolicy(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParsePolicy(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
