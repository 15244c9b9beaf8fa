package simple

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bububa/vexa/components/systemprompt"
)

func TestGenerate(t *testing.T) {
	assert.Equal(t, "Be brief.", New("Be brief.").Generate())

	g := New("Be brief.", WithContextProviders(systemprompt.NewStaticProvider("Notes", "none")))
	assert.Equal(t, "Be brief.\n\n# EXTRA INFORMATION AND CONTEXT\n## Notes\nnone", g.Generate())
}
