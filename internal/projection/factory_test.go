package projection

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	cases := []struct {
		in   string
		want Kind
	}{
		{"me", KindMercator},
		{"mercator", KindMercator},
		{"MO", KindMollweide},
		{"RECT", KindRectangular},
		{"ra", KindRandom},
		{"random", KindRandom},
		{"o", KindOrthographic},
		{"t", KindTSC},
		{"e", KindEqualArea},
		{"an", KindAncient},
		{"az", KindAzimuthal},
		{"pe", KindPeters},
		{"po", KindPolyconic},
		{"i", KindIcosagnomonic},
		{" hemisphere ", KindHemisphere},
	}
	for _, tc := range cases {
		got, err := ParseKind(tc.in)
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.want, got, tc.in)
	}

	for _, bad := range []string{"", "m", "a", "p", "r", "xyz", "mercatorx", "tscs"} {
		_, err := ParseKind(bad)
		require.Error(t, err, bad)
		require.True(t, errors.Is(err, ErrUnknownProjection), bad)
	}

	_, err := ParseKind("m")
	require.Contains(t, err.Error(), "mercator")
	require.Contains(t, err.Error(), "mollweide")
}

func TestKindString(t *testing.T) {
	require.Equal(t, "equal_area", KindEqualArea.String())
	require.Equal(t, "random", KindRandom.String())
	require.Equal(t, "Kind(99)", Kind(99).String())
	require.Len(t, Names(), numConcreteKinds+1)
}

func TestRandomKind(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	seen := map[Kind]bool{}
	for i := 0; i < 2000; i++ {
		k := RandomKind(rng)
		require.GreaterOrEqual(t, int(k), 0)
		require.Less(t, k, KindRandom)
		seen[k] = true
	}
	require.Len(t, seen, numConcreteKinds)

	p, err := New(KindRandom, testOptions(200, 100))
	require.NoError(t, err)
	require.NotNil(t, p)
}

func TestNewByName(t *testing.T) {
	p, err := NewByName("ortho", testOptions(200, 100))
	require.NoError(t, err)
	require.IsType(t, &Orthographic{}, p)
	require.False(t, p.IsWrapAround())

	p, err = NewByName("rectangular", testOptions(200, 100))
	require.NoError(t, err)
	require.True(t, p.IsWrapAround())

	_, err = NewByName("nope", testOptions(200, 100))
	require.ErrorIs(t, err, ErrUnknownProjection)

	_, err = New(Kind(42), testOptions(200, 100))
	require.ErrorIs(t, err, ErrUnknownProjection)
}

func TestWrapAround(t *testing.T) {
	wrap := map[Kind]bool{KindRectangular: true, KindMercator: true, KindLambert: true, KindPeters: true}
	for _, kind := range concreteKinds() {
		p, err := New(kind, testOptions(testW, testH))
		require.NoError(t, err)
		require.Equal(t, wrap[kind], p.IsWrapAround(), kind.String())
	}
}
