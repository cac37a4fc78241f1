package cache

// Keyer generates cache keys.
type Keyer interface {
	// DocumentKey identifies a stored scene document by its content hash.
	DocumentKey(docHash string) string
	// ArtifactKey identifies an export of a document.
	ArtifactKey(docHash string, opts ArtifactKeyOpts) string
	// OutlineKey identifies a rendered hierarchy outline of a document.
	OutlineKey(docHash string, opts OutlineKeyOpts) string
}

// ArtifactKeyOpts holds every export option that changes the output bytes.
type ArtifactKeyOpts struct {
	Scale     float64  `json:"scale"`
	Format    string   `json:"format"`
	Selection []string `json:"selection,omitempty"`
	Wysiwyg   bool     `json:"wysiwyg"`
	Order     string   `json:"order,omitempty"`
	Precision int      `json:"precision"`
	PNGScale  float64  `json:"png_scale,omitempty"`
	Title     string   `json:"title,omitempty"`
	IDs       bool     `json:"ids,omitempty"`
}

// OutlineKeyOpts holds the outline options that change the output bytes.
type OutlineKeyOpts struct {
	Format   string `json:"format"`
	Faces    bool   `json:"faces,omitempty"`
	Detailed bool   `json:"detailed,omitempty"`
	Wysiwyg  bool   `json:"wysiwyg,omitempty"`
	MaxDepth int    `json:"max_depth,omitempty"`
}

// DefaultKeyer is the standard Keyer.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard Keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// DocumentKey returns "scene:<hash>".
func (DefaultKeyer) DocumentKey(docHash string) string {
	return "scene:" + docHash
}

// ArtifactKey returns "artifact:" followed by a hash of the document hash
// and options.
func (DefaultKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", docHash, opts)
}

// OutlineKey returns "outline:" followed by a hash of the document hash and
// options.
func (DefaultKeyer) OutlineKey(docHash string, opts OutlineKeyOpts) string {
	return hashKey("outline", docHash, opts)
}
