package reagent

import "context"

// Finder resolves a reagent by its exact name.
type Finder interface {
	Find(ctx context.Context, name string) (*Reagent, error)
}

// Service is the reagent catalog as seen by the web and cli layers.
type Service interface {
	Finder
	// List returns every reagent in stored order.
	List(ctx context.Context) []*Reagent
	// Register validates, persists and publishes a new reagent.
	Register(ctx context.Context, req *RegisterReq) (*Reagent, error)
	// QueryCompound looks a compound up on PubChem to prefill a registration.
	QueryCompound(ctx context.Context, req *CompoundReq) (*CompoundResp, error)
	// Ping checks the backing store.
	Ping(ctx context.Context) error
}
