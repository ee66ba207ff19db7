package dao

import (
	"context"
	"fmt"
)

func init() {
	RegisterAccessor(&GuardianRID, &Guardian{})
}

// Guardian is the DAO for child guardians.
type Guardian struct {
	Resource
}

// Init initializes the guardian DAO.
func (g *Guardian) Init(f Factory, rid *ResourceID) {
	g.Resource.Init(f, rid)
	g.SetNameKeys("fullName")
}

// ByChild returns the guardians registered for a child.
func (g *Guardian) ByChild(ctx context.Context, childID string) ([]Record, error) {
	if childID == "" {
		return nil, fmt.Errorf("child id cannot be empty")
	}
	return g.listWhere(ctx, "childId", childID)
}

// ByRelation returns guardians with the given relation to their ward,
// e.g. "ibu", "nenek", "paman".
func (g *Guardian) ByRelation(ctx context.Context, relation string) ([]Record, error) {
	if relation == "" {
		return nil, fmt.Errorf("relation cannot be empty")
	}
	return g.listWhere(ctx, "relation", relation)
}
