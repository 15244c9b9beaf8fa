package systemprompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseGeneratorProviders(t *testing.T) {
	var g BaseGenerator
	g.AddContextProviders(
		NewStaticProvider("a", "alpha"),
		NewStaticProvider("b", "beta"),
		NewStaticProvider("a", "duplicate"),
		NewStaticProvider("c", ""),
	)
	require.Len(t, g.ContextProviders(), 3)

	p, err := g.ContextProvider("a")
	require.NoError(t, err)
	assert.Equal(t, "alpha", p.Info())

	_, err = g.ContextProvider("z")
	assert.Error(t, err)

	assert.Equal(t, []string{"# CTX", "## a", "alpha", "", "## b", "beta", ""}, g.RenderContext("CTX"))

	g.RemoveContextProviders("a")
	assert.Len(t, g.ContextProviders(), 2)
	g.RemoveContextProviders("b", "c")
	assert.Empty(t, g.ContextProviders())
	assert.Nil(t, g.RenderContext("CTX"))
}
