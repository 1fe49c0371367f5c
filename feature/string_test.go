package feature

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFeature_String(t *testing.T) {
	l := mustDiscrete(t, "edu.pkg", "posTag", "w", "NN", 1, 4)
	r := NewReal("edu.pkg", "length", "len", 0.5)
	c, err := NewRealConjunction("edu.pkg", "conj", l, r)
	require.NoError(t, err)

	require.Equal(t, "edu.pkg.posTag:w(NN)", l.String())
	require.Equal(t, "edu.pkg.length:len(0.5)", r.String())
	require.Equal(t, "edu.pkg.conj{edu.pkg.posTag:w(NN), edu.pkg.length:len(0.5)}(0.5)", c.String())
	require.Equal(t, "conj{posTag:w(NN), length:len(0.5)}(0.5)", c.StringNoPackage())

	d := mustConj(t, "", "pair", l, l)
	require.Equal(t, "pair{posTag:w(NN), posTag:w(NN)}", d.StringNoPackage())

	var nilFeature *Feature
	require.Equal(t, "<nil>", nilFeature.String())
}
