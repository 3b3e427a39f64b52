package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	errs "github.com/matzehuels/mmcf/pkg/errors"
	"github.com/matzehuels/mmcf/pkg/network"
)

type instance struct {
	Info      info                `json:"info"`
	Arcs      []arc               `json:"arcs"`
	Demands   demands             `json:"demands"`
	Endpoints map[string]endpoint `json:"endpoints,omitempty"`
}

type info struct {
	Nodes       int `json:"no_nodes"`
	Arcs        int `json:"no_arcs"`
	Commodities int `json:"no_commodities"`
}

type arc struct {
	From     int             `json:"from"`
	To       int             `json:"to"`
	Capacity float64         `json:"capacity"`
	Cost     json.RawMessage `json:"cost"`
}

// endpoint fields are pointers so that a missing member is not read as
// vertex 0.
type endpoint struct {
	Source *int `json:"source"`
	Target *int `json:"target"`
}

type demand struct {
	vertex, commodity string
	amount            float64
}

// demands is the "demands" object flattened in document order.
type demands []demand

func (d *demands) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	if err := expectDelim(dec, '{'); err != nil {
		return err
	}
	for dec.More() {
		vertex, err := stringToken(dec)
		if err != nil {
			return err
		}
		if err := expectDelim(dec, '{'); err != nil {
			return fmt.Errorf("vertex %q: %w", vertex, err)
		}
		for dec.More() {
			commodity, err := stringToken(dec)
			if err != nil {
				return err
			}
			var amount float64
			if err := dec.Decode(&amount); err != nil {
				return fmt.Errorf("vertex %q commodity %q: %w", vertex, commodity, err)
			}
			*d = append(*d, demand{vertex: vertex, commodity: commodity, amount: amount})
		}
		if err := expectDelim(dec, '}'); err != nil {
			return err
		}
	}
	return expectDelim(dec, '}')
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

func stringToken(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	s, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected object key, got %v", tok)
	}
	return s, nil
}

// ReadInstance decodes a JSON instance from r.
//
// Decoding fails with ErrCodeInvalidInput if the document is malformed, if
// "no_arcs" disagrees with the arc list, or if a vertex or commodity key is
// not an integer. Range checks on ids are left to [network.Validate].
// ReadInstance does not close r.
func ReadInstance(r io.Reader) (network.Instance, error) {
	var data instance
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return network.Instance{}, errs.Wrap(errs.ErrCodeInvalidInput, err, "decode instance")
	}

	if data.Info.Arcs != len(data.Arcs) {
		return network.Instance{}, errs.New(errs.ErrCodeInvalidInput,
			"info.no_arcs is %d but %d arcs are listed", data.Info.Arcs, len(data.Arcs))
	}

	inst := network.Instance{
		Nodes:       data.Info.Nodes,
		Commodities: data.Info.Commodities,
		Arcs:        make([]network.Arc, len(data.Arcs)),
		Sources:     make(map[int]network.Endpoint, len(data.Endpoints)),
		Targets:     make(map[int]network.Endpoint, len(data.Endpoints)),
	}
	for i, a := range data.Arcs {
		cost, err := parseCost(a.Cost)
		if err != nil {
			return network.Instance{}, errs.Wrap(errs.ErrCodeInvalidInput, err, "arc %d: cost", i)
		}
		inst.Arcs[i] = network.Arc{ID: i, From: a.From, To: a.To, Capacity: a.Capacity, Cost: cost}
	}

	for _, d := range data.Demands {
		v, err := strconv.Atoi(d.vertex)
		if err != nil {
			return network.Instance{}, errs.New(errs.ErrCodeInvalidInput, "demand vertex %q is not an integer", d.vertex)
		}
		c, err := strconv.Atoi(d.commodity)
		if err != nil {
			return network.Instance{}, errs.New(errs.ErrCodeInvalidInput, "demand commodity %q at vertex %d is not an integer", d.commodity, v)
		}
		inst.Demands = append(inst.Demands, network.Demand{Vertex: v, Commodity: c, Amount: d.amount})
	}

	for key, ep := range data.Endpoints {
		c, err := strconv.Atoi(key)
		if err != nil {
			return network.Instance{}, errs.New(errs.ErrCodeInvalidInput, "endpoint commodity %q is not an integer", key)
		}
		if ep.Source == nil || ep.Target == nil {
			return network.Instance{}, errs.New(errs.ErrCodeInvalidInput, "endpoints of commodity %d need both source and target", c)
		}
		inst.Sources[c] = network.Endpoint{Vertex: *ep.Source}
		inst.Targets[c] = network.Endpoint{Vertex: *ep.Target}
	}
	return inst, nil
}

// ImportInstance reads a JSON instance from the file at path.
func ImportInstance(path string) (network.Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return network.Instance{}, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
		}
		return network.Instance{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadInstance(f)
}

// parseCost accepts a number or an object keyed by commodity id. A missing
// or null cost is an empty mapping: no commodity may use the arc.
func parseCost(raw json.RawMessage) (network.Cost, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return network.PerCommodity(nil), nil
	}
	if raw[0] != '{' {
		var v float64
		if err := json.Unmarshal(raw, &v); err != nil {
			return network.Cost{}, err
		}
		return network.Scalar(v), nil
	}

	var byKey map[string]float64
	if err := json.Unmarshal(raw, &byKey); err != nil {
		return network.Cost{}, err
	}
	costs := make(map[int]float64, len(byKey))
	for k, v := range byKey {
		c, err := strconv.Atoi(k)
		if err != nil {
			return network.Cost{}, fmt.Errorf("commodity %q is not an integer", k)
		}
		costs[c] = v
	}
	return network.PerCommodity(costs), nil
}
