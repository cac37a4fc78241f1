package cache

// ScopedKeyer wraps a Keyer with a prefix, giving each user of a shared
// backend its own key space.
//
// Example usage:
//
//	// Keys for the HTTP API, separate from CLI runs sharing the same Redis
//	apiKeyer := NewScopedKeyer(NewDefaultKeyer(), "api:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// DocumentKey generates a prefixed document key.
func (k *ScopedKeyer) DocumentKey(docHash string) string {
	return k.prefix + k.inner.DocumentKey(docHash)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(docHash, opts)
}

// OutlineKey generates a prefixed outline key.
func (k *ScopedKeyer) OutlineKey(docHash string, opts OutlineKeyOpts) string {
	return k.prefix + k.inner.OutlineKey(docHash, opts)
}
