package projection

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
)

// Kind identifies a projection.
type Kind int

const (
	KindAncient Kind = iota
	KindAzimuthal
	KindBonne
	KindEqualArea
	KindGnomonic
	KindHemisphere
	KindIcosagnomonic
	KindLambert
	KindMercator
	KindMollweide
	KindOrthographic
	KindPeters
	KindPolyconic
	KindRectangular
	KindTSC
	KindRandom

	numConcreteKinds = int(KindRandom)
)

// ErrUnknownProjection is returned for a name that matches no projection.
var ErrUnknownProjection = errors.New("unknown projection")

var kindNames = []struct {
	name   string
	minLen int
	kind   Kind
}{
	{"ancient", 2, KindAncient},
	{"azimuthal", 2, KindAzimuthal},
	{"bonne", 1, KindBonne},
	{"equal_area", 1, KindEqualArea},
	{"gnomonic", 1, KindGnomonic},
	{"hemisphere", 1, KindHemisphere},
	{"icosagnomonic", 1, KindIcosagnomonic},
	{"lambert", 1, KindLambert},
	{"mercator", 2, KindMercator},
	{"mollweide", 2, KindMollweide},
	{"orthographic", 1, KindOrthographic},
	{"peters", 2, KindPeters},
	{"polyconic", 2, KindPolyconic},
	{"random", 2, KindRandom},
	{"rectangular", 2, KindRectangular},
	{"tsc", 1, KindTSC},
}

// Names lists every selectable projection name, including "random".
func Names() []string {
	out := make([]string, len(kindNames))
	for i, n := range kindNames {
		out[i] = n.name
	}
	return out
}

func (k Kind) String() string {
	for _, n := range kindNames {
		if n.kind == k {
			return n.name
		}
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind matches a case-insensitive abbreviation against the projection
// names. Each name has a minimum abbreviation length, e.g. "me" for mercator.
func ParseKind(s string) (Kind, error) {
	in := strings.ToLower(strings.TrimSpace(s))
	for _, n := range kindNames {
		if len(in) >= n.minLen && strings.HasPrefix(n.name, in) {
			return n.kind, nil
		}
	}
	return 0, fmt.Errorf("projection: %q (valid: %s): %w", s, strings.Join(Names(), ", "), ErrUnknownProjection)
}

// RandomKind picks uniformly among the concrete projections. A nil rng uses
// the global source.
func RandomKind(rng *rand.Rand) Kind {
	if rng == nil {
		return Kind(rand.IntN(numConcreteKinds))
	}
	return Kind(rng.IntN(numConcreteKinds))
}

// New constructs the projection for kind. KindRandom resolves with the
// global random source.
func New(kind Kind, opts Options) (Projection, error) {
	if kind == KindRandom {
		kind = RandomKind(nil)
	}
	switch kind {
	case KindAncient:
		return NewAncient(opts), nil
	case KindAzimuthal:
		return NewAzimuthal(opts), nil
	case KindBonne:
		return NewBonne(opts), nil
	case KindEqualArea:
		return NewEqualArea(opts), nil
	case KindGnomonic:
		return NewGnomonic(opts), nil
	case KindHemisphere:
		return NewHemisphere(opts), nil
	case KindIcosagnomonic:
		return NewIcosagnomonic(opts), nil
	case KindLambert:
		return NewLambert(opts), nil
	case KindMercator:
		return NewMercator(opts), nil
	case KindMollweide:
		return NewMollweide(opts), nil
	case KindOrthographic:
		return NewOrthographic(opts), nil
	case KindPeters:
		return NewPeters(opts), nil
	case KindPolyconic:
		return NewPolyconic(opts), nil
	case KindRectangular:
		return NewRectangular(opts), nil
	case KindTSC:
		return NewTSC(opts), nil
	}
	return nil, fmt.Errorf("projection: kind %d: %w", int(kind), ErrUnknownProjection)
}

// NewByName parses name and constructs the projection.
func NewByName(name string, opts Options) (Projection, error) {
	kind, err := ParseKind(name)
	if err != nil {
		return nil, err
	}
	return New(kind, opts)
}
