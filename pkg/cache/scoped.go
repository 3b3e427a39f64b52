package cache

// ScopedKeyer prepends a fixed prefix to every key of an inner Keyer. The
// CLI scopes keys by build version so a new release never reads artifacts
// written by an older one:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "v1.2.0:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner. A nil inner selects the default keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) NetworkKey(inputHash string, opts NetworkKeyOpts) string {
	return k.prefix + k.inner.NetworkKey(inputHash, opts)
}

func (k *ScopedKeyer) ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(inputHash, opts)
}
