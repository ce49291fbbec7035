// Package planopt contains the rule batch pipeline used to rewrite
// logical query plans before physical planning.
package planopt

import (
	"context"

	"github.com/featurebasedb/planopt/planner/types"
)

// Catalog abstracts the host engine catalog. It exposes relation output
// schemas and the partition column attribute sets rules use to classify
// filter predicates. Implementations are supplied by the host engine and
// injected into the optimizer at construction.
type Catalog interface {
	RelationSchema(ctx context.Context, relation string) (types.Schema, error)
	PartitionAttrs(ctx context.Context, relation string) (types.Schema, error)
}

// Ensure type implements interface.
var _ Catalog = (*NopCatalog)(nil)

// NopCatalog is a no-op implementation of the Catalog interface.
type NopCatalog struct{}

func NewNopCatalog() *NopCatalog {
	return &NopCatalog{}
}

func (c *NopCatalog) RelationSchema(ctx context.Context, relation string) (types.Schema, error) {
	return types.Schema{}, nil
}

func (c *NopCatalog) PartitionAttrs(ctx context.Context, relation string) (types.Schema, error) {
	return types.Schema{}, nil
}
