package pipeline

import (
	"bytes"

	mio "github.com/matzehuels/mmcf/pkg/io"
	"github.com/matzehuels/mmcf/pkg/network"
)

// Load decodes a JSON instance.
func Load(input []byte) (network.Instance, error) {
	return mio.ReadInstance(bytes.NewReader(input))
}
