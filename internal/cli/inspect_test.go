package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/matzehuels/mmcf/pkg/network"
	"github.com/matzehuels/mmcf/pkg/pipeline"
)

func TestNewReport(t *testing.T) {
	inst, err := pipeline.Load([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}
	net, err := network.New(inst, network.PolicyCap)
	if err != nil {
		t.Fatal(err)
	}

	r := newReport(net, net.Imbalances())
	if r.Network.Nodes != 5 || r.Network.Arcs != 4 {
		t.Errorf("network = %d nodes, %d arcs, want 5 and 4", r.Network.Nodes, r.Network.Arcs)
	}
	if len(r.Commodities) != 1 {
		t.Fatalf("got %d commodities, want 1", len(r.Commodities))
	}
	got := r.Commodities[0]
	want := commodityReport{Commodity: 0, Source: 3, Target: 4, Flow: 4, ValidArcs: 4, Capped: true}
	if got != want {
		t.Errorf("commodity 0 = %+v, want %+v", got, want)
	}
	if len(r.Imbalances) != 1 || r.Imbalances[0].Balanced != 4 {
		t.Errorf("imbalances = %+v, want one capped to 4", r.Imbalances)
	}
}

func TestInspectText(t *testing.T) {
	dir := isolate(t)
	input := writeInstance(t, dir, "net.json", sample)

	out, err := execute(t, "inspect", input)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	for _, want := range []string{"nodes 5\n", "arcs 4\n", "commodity 0 3 4 4 4\n", "capped 0 4 6 4\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestInspectJSON(t *testing.T) {
	dir := isolate(t)
	input := writeInstance(t, dir, "net.json", sample)

	out, err := execute(t, "inspect", "--json", input)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	var r report
	if err := json.Unmarshal([]byte(out), &r); err != nil {
		t.Fatalf("decode report: %v\n%s", err, out)
	}
	if r.Network.Imbalanced != 1 {
		t.Errorf("imbalanced = %d, want 1", r.Network.Imbalanced)
	}
}

func TestInspectCachedKeepsImbalances(t *testing.T) {
	dir := isolate(t)
	input := writeInstance(t, dir, "net.json", sample)

	for i := range 2 {
		out, err := execute(t, "inspect", "--json", input)
		if err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
		var r report
		if err := json.Unmarshal([]byte(out), &r); err != nil {
			t.Fatal(err)
		}
		if len(r.Imbalances) != 1 {
			t.Errorf("run %d: got %d imbalances, want 1", i, len(r.Imbalances))
		}
	}
}
