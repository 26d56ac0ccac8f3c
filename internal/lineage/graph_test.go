package lineage

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestGraph(t *testing.T, videos ...uuid.UUID) *Graph {
	t.Helper()
	g := NewGraph(0)
	for _, id := range videos {
		g.AddVideo(id)
	}
	return g
}

func TestAddEdge(t *testing.T) {
	parent, child := uuid.New(), uuid.New()
	g := newTestGraph(t, parent, child)
	now := time.Now()

	if err := g.AddEdge(parent, child, 10, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	edge, ok := g.Parent(child)
	if !ok {
		t.Fatalf("expected child to have a parent")
	}
	if edge.ParentID != parent || edge.RoyaltyPct != 10 {
		t.Fatalf("unexpected edge: %+v", edge)
	}

	children := g.Children(parent)
	if len(children) != 1 || children[0].ChildID != child {
		t.Fatalf("unexpected children: %+v", children)
	}
}

func TestAddEdgeDuplicateParent(t *testing.T) {
	p1, p2, child := uuid.New(), uuid.New(), uuid.New()
	g := newTestGraph(t, p1, p2, child)
	now := time.Now()

	if err := g.AddEdge(p1, child, 10, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := g.AddEdge(p2, child, 10, now); !errors.Is(err, ErrDuplicateParent) {
		t.Fatalf("expected ErrDuplicateParent, got %v", err)
	}

	// The original edge must be untouched.
	edge, _ := g.Parent(child)
	if edge.ParentID != p1 {
		t.Fatalf("rejected edge replaced the existing parent")
	}
}

func TestAddEdgeUnknownVideo(t *testing.T) {
	known := uuid.New()
	g := newTestGraph(t, known)
	now := time.Now()

	if err := g.AddEdge(known, uuid.New(), 10, now); !errors.Is(err, ErrUnknownVideo) {
		t.Fatalf("expected ErrUnknownVideo for unknown child, got %v", err)
	}
	if err := g.AddEdge(uuid.New(), known, 10, now); !errors.Is(err, ErrUnknownVideo) {
		t.Fatalf("expected ErrUnknownVideo for unknown parent, got %v", err)
	}
}

func TestAddEdgeSelfCycle(t *testing.T) {
	v := uuid.New()
	g := newTestGraph(t, v)

	if err := g.AddEdge(v, v, 10, time.Now()); !errors.Is(err, ErrCycleDetected) {
		t.Fatalf("expected ErrCycleDetected for self edge, got %v", err)
	}
}

func TestAddEdgeTwoNodeCycle(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	g := newTestGraph(t, a, b)
	now := time.Now()

	if err := g.AddEdge(a, b, 10, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := g.AddEdge(b, a, 10, now); !errors.Is(err, ErrCycleDetected) {
		t.Fatalf("expected ErrCycleDetected, got %v", err)
	}
	if _, ok := g.Parent(a); ok {
		t.Fatalf("rejected cyclic edge must not persist")
	}
}

func TestAddEdgeRoyaltyRange(t *testing.T) {
	parent, child := uuid.New(), uuid.New()
	g := newTestGraph(t, parent, child)
	now := time.Now()

	if err := g.AddEdge(parent, child, -1, now); !errors.Is(err, ErrRoyaltyOutOfRange) {
		t.Fatalf("expected ErrRoyaltyOutOfRange for -1, got %v", err)
	}
	if err := g.AddEdge(parent, child, 100.5, now); !errors.Is(err, ErrRoyaltyOutOfRange) {
		t.Fatalf("expected ErrRoyaltyOutOfRange for 100.5, got %v", err)
	}

	// Boundary values are valid.
	if err := g.AddEdge(parent, child, 0, now); err != nil {
		t.Fatalf("0%% royalty should be valid: %v", err)
	}
	other := uuid.New()
	g.AddVideo(other)
	if err := g.AddEdge(parent, other, 100, now); err != nil {
		t.Fatalf("100%% royalty should be valid: %v", err)
	}
}

func TestChildrenInsertionOrder(t *testing.T) {
	parent := uuid.New()
	g := newTestGraph(t, parent)
	now := time.Now()

	var order []uuid.UUID
	for i := 0; i < 5; i++ {
		child := uuid.New()
		g.AddVideo(child)
		if err := g.AddEdge(parent, child, 10, now); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		order = append(order, child)
	}

	children := g.Children(parent)
	if len(children) != 5 {
		t.Fatalf("expected 5 children, got %d", len(children))
	}
	for i, edge := range children {
		if edge.ChildID != order[i] {
			t.Fatalf("children out of insertion order at %d", i)
		}
	}
	if g.ChildCount(parent) != 5 {
		t.Fatalf("unexpected child count %d", g.ChildCount(parent))
	}
}

func TestAncestorChain(t *testing.T) {
	root, mid, leaf := uuid.New(), uuid.New(), uuid.New()
	g := newTestGraph(t, root, mid, leaf)
	now := time.Now()

	if err := g.AddEdge(root, mid, 10, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := g.AddEdge(mid, leaf, 20, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	chain, err := g.AncestorChain(leaf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chain) != 2 {
		t.Fatalf("expected chain of 2, got %d", len(chain))
	}
	if chain[0].ParentID != mid || chain[1].ParentID != root {
		t.Fatalf("chain not ordered closest-first: %+v", chain)
	}

	// A root has an empty chain, not an error.
	chain, err = g.AncestorChain(root)
	if err != nil || len(chain) != 0 {
		t.Fatalf("expected empty chain for root, got %v %v", chain, err)
	}

	if _, err := g.AncestorChain(uuid.New()); !errors.Is(err, ErrUnknownVideo) {
		t.Fatalf("expected ErrUnknownVideo, got %v", err)
	}
}

func TestLineageDepthLimit(t *testing.T) {
	g := NewGraph(3)
	now := time.Now()

	ids := make([]uuid.UUID, 6)
	for i := range ids {
		ids[i] = uuid.New()
		g.AddVideo(ids[i])
	}

	// The insert walk starts at the new edge's parent, so a chain of
	// maxDepth+1 edges is the deepest that can be built.
	for i := 1; i <= 4; i++ {
		if err := g.AddEdge(ids[i-1], ids[i], 10, now); err != nil {
			t.Fatalf("unexpected error at edge %d: %v", i, err)
		}
	}

	// Growing the chain any further is rejected at insert time.
	if err := g.AddEdge(ids[4], ids[5], 10, now); !errors.Is(err, ErrLineageTooDeep) {
		t.Fatalf("expected ErrLineageTooDeep from AddEdge, got %v", err)
	}
	if _, ok := g.Parent(ids[5]); ok {
		t.Fatalf("rejected edge must not persist")
	}

	// Nodes within the limit still resolve.
	chain, err := g.AncestorChain(ids[3])
	if err != nil {
		t.Fatalf("unexpected error for in-limit node: %v", err)
	}
	if len(chain) != 3 {
		t.Fatalf("expected chain of 3, got %d", len(chain))
	}

	// The deepest node's chain exceeds the walk limit. This is the guard
	// royalty walks rely on when a persisted edge set deeper than the
	// configured limit is loaded at startup.
	if _, err := g.AncestorChain(ids[4]); !errors.Is(err, ErrLineageTooDeep) {
		t.Fatalf("expected ErrLineageTooDeep from AncestorChain, got %v", err)
	}
}

func TestAddEdgeConcurrentSameChild(t *testing.T) {
	child := uuid.New()
	g := newTestGraph(t, child)
	now := time.Now()

	const n = 16
	parents := make([]uuid.UUID, n)
	for i := range parents {
		parents[i] = uuid.New()
		g.AddVideo(parents[i])
	}

	var wg sync.WaitGroup
	results := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = g.AddEdge(parents[i], child, 10, now)
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrDuplicateParent):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 {
		t.Fatalf("expected exactly one winning insert, got %d", wins)
	}

	edge, ok := g.Parent(child)
	if !ok {
		t.Fatalf("child lost its parent")
	}
	if g.ChildCount(edge.ParentID) != 1 {
		t.Fatalf("winner's child list inconsistent")
	}
}

func TestDeleteEdge(t *testing.T) {
	parent, child := uuid.New(), uuid.New()
	g := newTestGraph(t, parent, child)

	if err := g.AddEdge(parent, child, 10, time.Now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	g.DeleteEdge(child)

	if _, ok := g.Parent(child); ok {
		t.Fatalf("parent pointer survived deletion")
	}
	if g.ChildCount(parent) != 0 {
		t.Fatalf("child list entry survived deletion")
	}

	// Deleting a non-existent edge is a no-op.
	g.DeleteEdge(child)
}
