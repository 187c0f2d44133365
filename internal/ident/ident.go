package ident

import (
	"strconv"
	"strings"
)

// Generator hands out identifiers of the form base_N. N comes from a single counter shared by
// every base label, so identifiers stay unique for the lifetime of the generator even when the
// same base is reused.
type Generator struct {
	n int
}

// New returns a generator whose first identifier ends in _1.
func New() *Generator {
	return &Generator{}
}

// Next returns the next identifier for base (e.g. "Mesh" -> "Mesh_3").
func (g *Generator) Next(base string) string {
	g.n++
	return base + "_" + strconv.Itoa(g.n)
}

// Observe advances the counter past the numeric suffix of id, if it has one.
// Identifiers loaded from a saved scene go through Observe so Next never produces them again.
func (g *Generator) Observe(id string) {
	i := strings.LastIndex(id, "_")
	if i < 0 || i == len(id)-1 {
		return
	}
	n, err := strconv.Atoi(id[i+1:])
	if err != nil || n < 0 {
		return
	}
	if n > g.n {
		g.n = n
	}
}
