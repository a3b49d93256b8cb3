package di

// Lifetime determines how instances produced by a provider are reused.
type Lifetime int

const (
	// Transient providers produce a fresh instance on every resolution.
	Transient Lifetime = iota
	// Singleton providers produce one instance per container, created lazily
	// on first resolution.
	Singleton
	// Scoped providers produce one instance per open scope. Resolving a
	// scoped token requires an active scope on the calling context.
	Scoped
)

func (l Lifetime) String() string {
	switch l {
	case Transient:
		return "transient"
	case Singleton:
		return "singleton"
	case Scoped:
		return "scoped"
	default:
		return "unknown"
	}
}
