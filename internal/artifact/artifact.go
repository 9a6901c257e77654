package artifact

// Kind classifies a unit of build output.
type Kind int

const (
	// KindCode is a JS-like chunk; textual, may reference assets.
	KindCode Kind = iota
	// KindText is a stylesheet, SVG or other textual asset; may reference assets.
	KindText
	// KindBinary is a raw binary asset; the only kind eligible for offload.
	KindBinary
)

func (k Kind) String() string {
	switch k {
	case KindCode:
		return "code"
	case KindText:
		return "text"
	case KindBinary:
		return "binary"
	default:
		return "unknown"
	}
}

// Artifact is one named unit of build output. Name is the output-relative
// path (e.g. "assets/b-a1b2.png"). The offload stage mutates Data in place
// or removes the artifact from the set; everything else stays owned by the
// build pipeline.
type Artifact struct {
	Name string
	Kind Kind
	Data []byte
}

// Prune returns artifacts with every entry whose Name has an entry in
// uploaded removed, preserving the order of survivors. Callers must only
// prune after references in the surviving artifacts have been rewritten,
// and an artifact without a mapping entry is never removed — its references
// still point at the local path.
func Prune(artifacts []*Artifact, uploaded map[string]string) []*Artifact {
	if len(uploaded) == 0 {
		return artifacts
	}
	kept := make([]*Artifact, 0, len(artifacts))
	for _, a := range artifacts {
		if _, ok := uploaded[a.Name]; ok {
			continue
		}
		kept = append(kept, a)
	}
	return kept
}
