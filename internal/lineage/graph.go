package lineage

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Edge is a directed remix relationship from parent to child, carrying the
// royalty percentage fixed at remix time.
type Edge struct {
	ParentID   uuid.UUID
	ChildID    uuid.UUID
	RoyaltyPct float64
	CreatedAt  time.Time
}

// Graph holds the forest of remix lineage edges. Every child has at most
// one parent, so the edge set forms trees rooted at non-remix videos.
//
// The graph is a read/write view over the persisted edge set: it is loaded
// from the store at startup and kept in sync as edges are created.
//
// Parent pointers live in a sync.Map keyed by child id. Inserting an edge
// is a LoadOrStore on that key, so concurrent inserts for distinct children
// never contend and two racing inserts for the same child resolve to
// exactly one winner.
type Graph struct {
	maxDepth int

	videos   sync.Map // uuid.UUID -> struct{}
	parents  sync.Map // child uuid.UUID -> Edge
	children sync.Map // parent uuid.UUID -> *childEdges
}

type childEdges struct {
	mu    sync.Mutex
	edges []Edge
}

const DefaultMaxDepth = 64

// NewGraph creates an empty graph. maxDepth bounds ancestry walks; values
// below 1 fall back to DefaultMaxDepth.
func NewGraph(maxDepth int) *Graph {
	if maxDepth < 1 {
		maxDepth = DefaultMaxDepth
	}
	return &Graph{maxDepth: maxDepth}
}

// AddVideo registers a video id as known. Edges may only reference
// registered videos.
func (g *Graph) AddVideo(id uuid.UUID) {
	g.videos.Store(id, struct{}{})
}

// KnowsVideo reports whether the id has been registered.
func (g *Graph) KnowsVideo(id uuid.UUID) bool {
	_, ok := g.videos.Load(id)
	return ok
}

// AddEdge inserts a parent→child edge. It fails with ErrRoyaltyOutOfRange,
// ErrUnknownVideo, ErrDuplicateParent, ErrCycleDetected or
// ErrLineageTooDeep. On success the edge is visible to Parent, Children
// and AncestorChain.
func (g *Graph) AddEdge(parentID, childID uuid.UUID, royaltyPct float64, createdAt time.Time) error {
	if royaltyPct < 0 || royaltyPct > 100 {
		return ErrRoyaltyOutOfRange
	}
	if !g.KnowsVideo(parentID) || !g.KnowsVideo(childID) {
		return ErrUnknownVideo
	}
	if parentID == childID {
		return ErrCycleDetected
	}

	// Walk up from the prospective parent: if the child is already an
	// ancestor of the parent, the edge would close a cycle. The single
	// parent invariant makes this structurally impossible for freshly
	// created remixes, kept as a validation guard.
	if err := g.checkCycle(parentID, childID); err != nil {
		return err
	}

	edge := Edge{
		ParentID:   parentID,
		ChildID:    childID,
		RoyaltyPct: royaltyPct,
		CreatedAt:  createdAt,
	}

	if _, loaded := g.parents.LoadOrStore(childID, edge); loaded {
		return ErrDuplicateParent
	}

	// Re-verify after insert: two racing inserts with swapped parent and
	// child both pass the pre-check, so the loser rolls back here.
	if err := g.checkCycle(parentID, childID); err != nil {
		g.parents.Delete(childID)
		return err
	}

	set, _ := g.children.LoadOrStore(parentID, &childEdges{})
	ce := set.(*childEdges)
	ce.mu.Lock()
	ce.edges = append(ce.edges, edge)
	ce.mu.Unlock()

	return nil
}

// DeleteEdge removes the child's parent edge. It exists only as a
// compensation hook when persisting an already-validated edge fails; it is
// not part of the lineage contract.
func (g *Graph) DeleteEdge(childID uuid.UUID) {
	v, ok := g.parents.LoadAndDelete(childID)
	if !ok {
		return
	}
	edge := v.(Edge)
	if set, ok := g.children.Load(edge.ParentID); ok {
		ce := set.(*childEdges)
		ce.mu.Lock()
		for i, e := range ce.edges {
			if e.ChildID == childID {
				ce.edges = append(ce.edges[:i], ce.edges[i+1:]...)
				break
			}
		}
		ce.mu.Unlock()
	}
}

// Parent returns the child's parent edge, if any. O(1).
func (g *Graph) Parent(childID uuid.UUID) (Edge, bool) {
	v, ok := g.parents.Load(childID)
	if !ok {
		return Edge{}, false
	}
	return v.(Edge), true
}

// Children returns the direct child edges of a parent in insertion order.
func (g *Graph) Children(parentID uuid.UUID) []Edge {
	set, ok := g.children.Load(parentID)
	if !ok {
		return nil
	}
	ce := set.(*childEdges)
	ce.mu.Lock()
	out := make([]Edge, len(ce.edges))
	copy(out, ce.edges)
	ce.mu.Unlock()
	return out
}

// ChildCount returns the number of direct children of a parent.
func (g *Graph) ChildCount(parentID uuid.UUID) int {
	set, ok := g.children.Load(parentID)
	if !ok {
		return 0
	}
	ce := set.(*childEdges)
	ce.mu.Lock()
	n := len(ce.edges)
	ce.mu.Unlock()
	return n
}

// AncestorChain returns the edges from the video's immediate parent up to
// the root. A root (non-remix) video yields an empty chain.
func (g *Graph) AncestorChain(videoID uuid.UUID) ([]Edge, error) {
	if !g.KnowsVideo(videoID) {
		return nil, ErrUnknownVideo
	}

	var chain []Edge
	current := videoID
	for depth := 0; ; depth++ {
		if depth > g.maxDepth {
			return nil, ErrLineageTooDeep
		}
		edge, ok := g.Parent(current)
		if !ok {
			return chain, nil
		}
		chain = append(chain, edge)
		current = edge.ParentID
	}
}

func (g *Graph) checkCycle(parentID, childID uuid.UUID) error {
	current := parentID
	for depth := 0; ; depth++ {
		if depth > g.maxDepth {
			return ErrLineageTooDeep
		}
		edge, ok := g.Parent(current)
		if !ok {
			return nil
		}
		if edge.ParentID == childID {
			return ErrCycleDetected
		}
		current = edge.ParentID
	}
}
