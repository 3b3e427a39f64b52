package cache

// Keyer builds cache keys.
type Keyer interface {
	// NetworkKey addresses the normalized instance built from an input.
	NetworkKey(inputHash string, opts NetworkKeyOpts) string
	// ArtifactKey addresses an exported model built from an input.
	ArtifactKey(inputHash string, opts ArtifactKeyOpts) string
}

// NetworkKeyOpts holds the options that affect normalization.
type NetworkKeyOpts struct {
	Policy string `json:"policy"`
}

// ArtifactKeyOpts holds the options that affect an exported model.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	Model       string  `json:"model"`
	Policy      string  `json:"policy"`
	DemandScale float64 `json:"demand_scale"`
	Writer      string  `json:"writer"`
	Name        string  `json:"name"`
}

// DefaultKeyer hashes the input hash together with the options.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a [DefaultKeyer].
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// NetworkKey returns "network:<sha256>".
func (DefaultKeyer) NetworkKey(inputHash string, opts NetworkKeyOpts) string {
	return hashKey("network", inputHash, opts)
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", inputHash, opts)
}
