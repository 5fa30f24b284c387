package dae

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAliasRelationCanonicalizesChain(t *testing.T) {
	r := NewAliasRelation()
	r.Union("a.e", "b.e")
	r.Union("b.e", "c.e")
	assert.Equal(t, r.Canonical("a.e"), r.Canonical("c.e"))
}

func TestAliasRelationClassesExcludesTrivial(t *testing.T) {
	r := NewAliasRelation()
	r.Union("x", "y")
	r.Union("w", "w") // registers w as a singleton class
	classes := r.Classes()
	assert.Len(t, classes, 1)
	for _, members := range classes {
		assert.ElementsMatch(t, []string{"x", "y"}, members)
	}
}

func TestAliasRelationUnknownNameIsItsOwnCanonical(t *testing.T) {
	r := NewAliasRelation()
	assert.Equal(t, "z", r.Canonical("z"))
}
