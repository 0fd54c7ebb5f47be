package ports

import "context"

// Record is one row returned by an ERP module endpoint.
type Record map[string]any

// ModuleReader reads listing and detail data from the ERP REST API on behalf of
// the signed-in user.
type ModuleReader interface {
	List(ctx context.Context, token, module string) ([]Record, error)
	Get(ctx context.Context, token, module, id string) (Record, error)
}
