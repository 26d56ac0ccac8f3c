package lineage

import "github.com/google/uuid"

// Distributor computes the effective royalty share owed to each ancestor
// of a video by walking its lineage chain.
type Distributor struct {
	graph *Graph
}

func NewDistributor(graph *Graph) *Distributor {
	return &Distributor{graph: graph}
}

// EffectiveShares maps each ancestor video id to the percentage of the
// queried video's attributable value owed to it.
//
// Percentages compound multiplicatively along the chain: the immediate
// parent is owed its edge's raw percentage, an ancestor k hops up is owed
// the product of all percentages on the path divided by 100^(k-1). Two 10%
// edges give the grandparent 1%, not 20% — each hop's royalty is a cut of
// the hop below it, not a flat stack.
//
// Shares are allocated from the immediate parent upward and each share is
// capped at the still-unallocated percentage, so the total never exceeds
// 100 and the owner's implicit remainder completes it exactly. The cap
// only binds on pathological chains of very high per-edge percentages.
//
// A root video has no ancestors and yields an empty map: its owner retains
// 100%. An unknown id fails with ErrUnknownVideo.
func (d *Distributor) EffectiveShares(videoID uuid.UUID) (map[uuid.UUID]float64, error) {
	chain, err := d.graph.AncestorChain(videoID)
	if err != nil {
		return nil, err
	}

	shares := make(map[uuid.UUID]float64, len(chain))
	allocated := 0.0
	factor := 1.0
	for _, edge := range chain {
		raw := factor * edge.RoyaltyPct
		share := raw
		if remaining := 100 - allocated; share > remaining {
			share = remaining
		}
		if share > 0 {
			shares[edge.ParentID] = share
			allocated += share
		}
		factor = factor * edge.RoyaltyPct / 100
	}

	return shares, nil
}

// OwnerRemainder returns the percentage the video's own owner retains
// after all ancestor shares.
func (d *Distributor) OwnerRemainder(videoID uuid.UUID) (float64, error) {
	shares, err := d.EffectiveShares(videoID)
	if err != nil {
		return 0, err
	}
	remainder := 100.0
	for _, s := range shares {
		remainder -= s
	}
	return remainder, nil
}
