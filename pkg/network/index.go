package network

// Index is the adjacency of an arc list. Neighbor lists keep the order in
// which neighbors first appear and hold each neighbor once, so parallel arcs
// collapse to a single entry. Use [Index.Arcs] to recover arc identities.
type Index struct {
	vertices []int
	out      map[int][]int
	in       map[int][]int
	arcs     map[[2]int][]int
}

// NewIndex builds the adjacency of arcs. Vertices without arcs are absent.
func NewIndex(arcs []Arc) *Index {
	idx := &Index{
		out:  make(map[int][]int),
		in:   make(map[int][]int),
		arcs: make(map[[2]int][]int),
	}
	seen := make(map[int]bool)
	visit := func(v int) {
		if !seen[v] {
			seen[v] = true
			idx.vertices = append(idx.vertices, v)
		}
	}

	for _, a := range arcs {
		visit(a.From)
		visit(a.To)

		key := [2]int{a.From, a.To}
		if _, dup := idx.arcs[key]; !dup {
			idx.out[a.From] = append(idx.out[a.From], a.To)
			idx.in[a.To] = append(idx.in[a.To], a.From)
		}
		idx.arcs[key] = append(idx.arcs[key], a.ID)
	}
	return idx
}

// Vertices returns every vertex incident to an arc, in first-appearance order.
func (idx *Index) Vertices() []int { return idx.vertices }

// Out returns the distinct heads of arcs leaving v.
func (idx *Index) Out(v int) []int { return idx.out[v] }

// In returns the distinct tails of arcs entering v.
func (idx *Index) In(v int) []int { return idx.in[v] }

// Arcs returns the IDs of all arcs from u to v in ID order.
func (idx *Index) Arcs(u, v int) []int { return idx.arcs[[2]int{u, v}] }
