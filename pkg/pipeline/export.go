package pipeline

import (
	"bytes"

	mio "github.com/matzehuels/mmcf/pkg/io"
	"github.com/matzehuels/mmcf/pkg/lpformat"
	"github.com/matzehuels/mmcf/pkg/model"
	"github.com/matzehuels/mmcf/pkg/network"
)

// Build constructs the model formulation selected in opts.
func Build(net *network.Network, opts Options) *model.Model {
	mo := model.Options{Name: opts.Name, DemandScale: opts.DemandScale}
	if opts.Model == ModelPenalized {
		return model.BuildPenalized(net, mo)
	}
	return model.BuildMMCF(net, mo)
}

// Export encodes net in the format selected in opts. For LP and MPS output it
// builds the model first and returns it alongside the artifact. The artifact
// is rendered in memory, so a failing export never yields partial output.
func Export(net *network.Network, opts Options) ([]byte, *model.Model, error) {
	var buf bytes.Buffer
	switch opts.Format {
	case FormatNetwork:
		if err := mio.WriteNetwork(&buf, net); err != nil {
			return nil, nil, err
		}
		return buf.Bytes(), nil, nil
	case FormatJSON:
		if err := mio.WriteInstance(net.Instance(), &buf); err != nil {
			return nil, nil, err
		}
		return buf.Bytes(), nil, nil
	}

	enc, err := lpformat.Lookup(opts.Writer, opts.Format)
	if err != nil {
		return nil, nil, err
	}
	m := Build(net, opts)
	if err := enc.Encode(&buf, m); err != nil {
		return nil, nil, err
	}
	return buf.Bytes(), m, nil
}
