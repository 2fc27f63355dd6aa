package ontology

import "fmt"

// Edge is a single is_a relationship: Child is_a Parent.
type Edge struct {
	Child  TermID
	Parent TermID
}

// Ontology is a read-only directed acyclic graph of phenotype terms,
// materialized as two parallel arrays (dense integer index, CSR-style
// child->parent adjacency) with a precomputed ancestor bitset per term.
// This replaces per-query BFS with O(1) bitset tests for subclass checks,
// per the design note on ontology representation.
type Ontology struct {
	root TermID

	terms   []TermID
	indexOf map[TermID]int

	parents  [][]int // parents[i] = parent term indices of term i
	children [][]int // children[i] = child term indices of term i (inverse of parents)

	ancestorBits [][]uint64 // ancestorBits[i] includes i itself
	words        int

	names   map[TermID]string
	aliases map[TermID]TermID // alias -> primary id
}

// NewOntology builds an Ontology from a set of is_a edges. names maps a
// primary term id to its human-readable label; aliases maps obsolete/
// secondary ids to their primary id. root is the designated DAG root
// (e.g. "HP:0000118", phenotypic abnormality). Every term must be
// reachable from root via is_a edges; NewOntology returns an error if the
// edge set contains a cycle.
func NewOntology(edges []Edge, names map[TermID]string, aliases map[TermID]TermID, root TermID) (*Ontology, error) {
	o := &Ontology{
		root:    root,
		indexOf: make(map[TermID]int),
		names:   names,
		aliases: aliases,
	}
	if o.names == nil {
		o.names = map[TermID]string{}
	}
	if o.aliases == nil {
		o.aliases = map[TermID]TermID{}
	}

	o.ensureIndex(root)
	for _, e := range edges {
		ci := o.ensureIndex(e.Child)
		pi := o.ensureIndex(e.Parent)
		o.parents[ci] = append(o.parents[ci], pi)
		o.children[pi] = append(o.children[pi], ci)
	}

	o.words = (len(o.terms) + 63) / 64
	o.ancestorBits = make([][]uint64, len(o.terms))

	state := make([]uint8, len(o.terms)) // 0=unvisited, 1=in-progress, 2=done
	for i := range o.terms {
		if err := o.computeAncestors(i, state); err != nil {
			return nil, err
		}
	}

	return o, nil
}

func (o *Ontology) ensureIndex(t TermID) int {
	if i, ok := o.indexOf[t]; ok {
		return i
	}
	i := len(o.terms)
	o.terms = append(o.terms, t)
	o.indexOf[t] = i
	o.parents = append(o.parents, nil)
	o.children = append(o.children, nil)
	return i
}

func (o *Ontology) computeAncestors(i int, state []uint8) error {
	switch state[i] {
	case 2:
		return nil
	case 1:
		return fmt.Errorf("ontology: cycle detected involving term %q", o.terms[i])
	}
	state[i] = 1

	bits := make([]uint64, o.words)
	setBit(bits, i)
	for _, p := range o.parents[i] {
		if err := o.computeAncestors(p, state); err != nil {
			return err
		}
		orInto(bits, o.ancestorBits[p])
	}
	o.ancestorBits[i] = bits
	state[i] = 2
	return nil
}

func setBit(bits []uint64, i int) {
	bits[i/64] |= 1 << uint(i%64)
}

func testBit(bits []uint64, i int) bool {
	return bits[i/64]&(1<<uint(i%64)) != 0
}

func orInto(dst, src []uint64) {
	for i, w := range src {
		dst[i] |= w
	}
}

// index returns the dense index for t after alias canonicalization, or
// false if t is not a known term.
func (o *Ontology) index(t TermID) (int, bool) {
	t = o.PrimaryID(t)
	i, ok := o.indexOf[t]
	return i, ok
}

// PrimaryID canonicalizes t through the alias table. Unknown terms are
// returned unchanged so callers can distinguish "unknown" from "aliased".
func (o *Ontology) PrimaryID(t TermID) TermID {
	if primary, ok := o.aliases[t]; ok {
		return primary
	}
	return t
}

// TermName returns the human-readable label for t, if known.
func (o *Ontology) TermName(t TermID) (string, bool) {
	name, ok := o.names[o.PrimaryID(t)]
	return name, ok
}

// Root returns the ontology's designated root term.
func (o *Ontology) Root() TermID { return o.root }

// Has reports whether t (after alias canonicalization) is a known term.
func (o *Ontology) Has(t TermID) bool {
	_, ok := o.index(t)
	return ok
}

// IsDescendantOfRoot reports whether t is the root or reachable from the
// root via is_a edges (i.e. a valid phenotypic abnormality term).
func (o *Ontology) IsDescendantOfRoot(t TermID) bool {
	return o.IsSubclass(t, o.root)
}

// IsSubclass reports whether child is parent itself or a descendant of
// parent along is_a edges (child's ancestor closure contains parent).
// Both arguments are canonicalized through the alias table first.
func (o *Ontology) IsSubclass(child, parent TermID) bool {
	ci, ok := o.index(child)
	if !ok {
		return false
	}
	pi, ok := o.index(parent)
	if !ok {
		return false
	}
	return testBit(o.ancestorBits[ci], pi)
}

// Ancestors returns the set of ancestors of t. If inclSelf is true, t
// itself is included. Returns an error if t is not a known term.
func (o *Ontology) Ancestors(t TermID, inclSelf bool) (Set, error) {
	i, ok := o.index(t)
	if !ok {
		return nil, fmt.Errorf("ontology: unknown term %q", t)
	}
	out := make(Set)
	bits := o.ancestorBits[i]
	for j, id := range o.terms {
		if testBit(bits, j) {
			if !inclSelf && j == i {
				continue
			}
			out.Add(id)
		}
	}
	return out, nil
}

// ImmediateParents returns, for BFS purposes, the immediate parents of t in a
// deterministic order (index order, which is edge-insertion order).
func (o *Ontology) ImmediateParents(t TermID) []TermID {
	i, ok := o.index(t)
	if !ok {
		return nil
	}
	out := make([]TermID, 0, len(o.parents[i]))
	for _, p := range o.parents[i] {
		out = append(out, o.terms[p])
	}
	return out
}

// BFSUpward performs a breadth-first walk from t toward the root, following
// is_a edges in the parent direction. t itself is visited first (index 0),
// then its immediate parents, then grandparents, and so on; ties among
// siblings are broken by edge-insertion order for determinism. Each term
// appears exactly once, at the position of its first discovery.
func (o *Ontology) BFSUpward(t TermID) []TermID {
	i, ok := o.index(t)
	if !ok {
		return nil
	}
	visited := make(map[int]bool, len(o.terms))
	order := make([]TermID, 0, 8)
	queue := []int{i}
	visited[i] = true
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		order = append(order, o.terms[cur])
		for _, p := range o.parents[cur] {
			if !visited[p] {
				visited[p] = true
				queue = append(queue, p)
			}
		}
	}
	return order
}

// Descendants returns every term reachable from root by following is_a
// edges in the child direction (i.e. every term whose ancestor closure
// contains root), including root itself.
func (o *Ontology) Descendants(root TermID) Set {
	ri, ok := o.index(root)
	if !ok {
		return Set{}
	}
	out := make(Set)
	out.Add(o.terms[ri])
	queue := []int{ri}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, c := range o.children[cur] {
			id := o.terms[c]
			if !out.Contains(id) {
				out.Add(id)
				queue = append(queue, c)
			}
		}
	}
	return out
}
