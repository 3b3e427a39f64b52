package io

import (
	"bufio"
	"io"
	"strconv"

	errs "github.com/matzehuels/mmcf/pkg/errors"
	"github.com/matzehuels/mmcf/pkg/network"
)

// WriteNetwork writes net in network text format.
//
// Every arc must have a scalar cost; otherwise WriteNetwork returns
// ErrCodeUnifiedCostRequired before writing anything, so callers that buffer
// the output never see a partial file.
func WriteNetwork(w io.Writer, net *network.Network) error {
	for _, a := range net.Arcs() {
		if !a.Cost.IsUnified() {
			return errs.New(errs.ErrCodeUnifiedCostRequired,
				"%s has per-commodity costs; network output needs one cost per arc", a)
		}
	}

	bw := bufio.NewWriter(w)
	line := func(fields ...string) {
		for i, f := range fields {
			if i > 0 {
				bw.WriteByte(' ')
			}
			bw.WriteString(f)
		}
		bw.WriteByte('\n')
	}

	line(strconv.Itoa(net.NodeCount()))
	for v := 0; v < net.NodeCount(); v++ {
		line(strconv.Itoa(v), "0", "0")
	}

	line(strconv.Itoa(net.ArcCount()))
	for _, a := range net.Arcs() {
		cost, _ := a.Cost.Value()
		line(strconv.Itoa(a.ID), strconv.Itoa(a.From), strconv.Itoa(a.To), number(a.Capacity), number(cost))
	}

	line(strconv.Itoa(net.Commodities()))
	for c := 0; c < net.Commodities(); c++ {
		src, tgt := net.Source(c), net.Target(c)
		line(strconv.Itoa(c), strconv.Itoa(src.Vertex), strconv.Itoa(tgt.Vertex), number(tgt.Demand))
	}
	return bw.Flush()
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
