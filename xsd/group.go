package xsd

// Term is the content-model arm of a particle. The concrete
// implementations are *Element, *ModelGroup and *Wildcard; the set is
// closed so that traversals can switch exhaustively.
type Term interface {
	isTerm()
}

// UnboundedOccurs marks maxOccurs="unbounded".
const UnboundedOccurs = -1

// Particle wraps a term with its occurrence bounds.
type Particle struct {
	MinOccurs int
	MaxOccurs int // UnboundedOccurs when unbounded
	Term      Term
}

// Repeats reports whether the particle allows more than one occurrence.
func (p *Particle) Repeats() bool {
	return p.MaxOccurs == UnboundedOccurs || p.MaxOccurs > 1
}

// Optional reports whether the particle may be absent.
func (p *Particle) Optional() bool {
	return p.MinOccurs == 0
}

// Compositor is the model group kind.
type Compositor int

const (
	CompositorSequence Compositor = iota
	CompositorChoice
	CompositorAll
)

func (c Compositor) String() string {
	switch c {
	case CompositorChoice:
		return "choice"
	case CompositorAll:
		return "all"
	default:
		return "sequence"
	}
}

// ModelGroup is an xs:sequence, xs:choice or xs:all content group.
type ModelGroup struct {
	Compositor Compositor
	Particles  []*Particle
}

func (g *ModelGroup) isTerm() {}

// Wildcard covers xs:any and xs:anyAttribute. The formatter treats it
// as an unsupported shape and skips it during traversal.
type Wildcard struct {
	Namespace       string
	ProcessContents string
}

func (w *Wildcard) isTerm() {}
