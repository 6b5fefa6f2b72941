package catalog

import (
	"context"
	"strings"
	"sync"

	"github.com/gofrs/uuid/v5"
	"github.com/scienceol/equivalents/pkg/common/code"
	"github.com/scienceol/equivalents/pkg/core/notify"
	"github.com/scienceol/equivalents/pkg/core/reagent"
	"github.com/scienceol/equivalents/pkg/middleware/logger"
	"github.com/scienceol/equivalents/pkg/middleware/metrics"
	"github.com/scienceol/equivalents/pkg/repo"
	"github.com/scienceol/equivalents/pkg/repo/model"
)

const defaultLockKey = "equivalents:catalog:register"

// Catalog holds the reagent library in memory and writes registrations
// through to its store.
type Catalog struct {
	store   repo.CatalogRepo
	locker  repo.Locker
	pubchem repo.PubChemRepo
	center  notify.MsgCenter
	origin  uuid.UUID
	lockKey string

	mu       sync.RWMutex
	reagents []*reagent.Reagent
}

type Option func(*Catalog)

func WithLockKey(key string) Option {
	return func(c *Catalog) {
		if key != "" {
			c.lockKey = key
		}
	}
}

func WithPubChem(p repo.PubChemRepo) Option {
	return func(c *Catalog) { c.pubchem = p }
}

// WithNotify announces registrations on center and reloads when another
// catalog announces one.
func WithNotify(center notify.MsgCenter) Option {
	return func(c *Catalog) { c.center = center }
}

var _ reagent.Service = (*Catalog)(nil)

// New loads the whole store once. A row that cannot be decoded fails
// construction.
func New(ctx context.Context, store repo.CatalogRepo, locker repo.Locker, opts ...Option) (*Catalog, error) {
	c := &Catalog{
		store:   store,
		locker:  locker,
		origin:  uuid.Must(uuid.NewV4()),
		lockKey: defaultLockKey,
	}
	for _, opt := range opts {
		opt(c)
	}

	rows, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}
	reagents, err := decode(ctx, rows)
	if err != nil {
		return nil, err
	}
	c.reagents = reagents
	metrics.SetCatalogSize(len(reagents))
	logger.Infof(ctx, "reagent catalog loaded with %d reagents", len(reagents))

	if c.center != nil {
		if err := c.center.Registry(ctx, notify.CatalogModify, c.onModify); err != nil {
			return nil, err
		}
	}

	return c, nil
}

func (c *Catalog) onModify(ctx context.Context, msg *notify.SendMsg) error {
	if msg.Origin == c.origin {
		return nil
	}
	logger.Infof(ctx, "reagent %q registered elsewhere, reloading catalog", msg.Reagent)
	return c.Reload(ctx)
}

// Reload replaces memory with the stored sequence. On error memory is
// left as it was.
func (c *Catalog) Reload(ctx context.Context) error {
	rows, err := c.store.Load(ctx)
	if err != nil {
		return err
	}
	reagents, err := decode(ctx, rows)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.reagents = reagents
	c.mu.Unlock()
	metrics.SetCatalogSize(len(reagents))
	return nil
}

func decode(ctx context.Context, rows []*model.Reagent) ([]*reagent.Reagent, error) {
	seen := make(map[string]struct{}, len(rows))
	out := make([]*reagent.Reagent, 0, len(rows))
	for i, row := range rows {
		r, err := reagent.FromRow(row)
		if err != nil {
			logger.Errorf(ctx, "decode catalog row %d (%s) err: %+v", i, row.Name, err)
			return nil, err
		}
		if _, ok := seen[r.Name]; ok {
			logger.Warnf(ctx, "duplicate reagent name %q in catalog, first entry wins", r.Name)
		}
		seen[r.Name] = struct{}{}
		out = append(out, r)
	}
	return out, nil
}

func (c *Catalog) Find(_ context.Context, name string) (*reagent.Reagent, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, r := range c.reagents {
		if r.Name == name {
			return r, nil
		}
	}
	return nil, code.ReagentNotFound.WithMsgf("no reagent named %q", name)
}

func (c *Catalog) List(_ context.Context) []*reagent.Reagent {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*reagent.Reagent, len(c.reagents))
	copy(out, c.reagents)
	return out
}

// Register appends a reagent under the registration lock. The store is
// re-read first so writes from other processes are not lost; memory is
// only replaced once the store accepted the new sequence.
func (c *Catalog) Register(ctx context.Context, req *reagent.RegisterReq) (res *reagent.Reagent, err error) {
	defer func() { metrics.ObserveRegistration(err) }()

	r, err := req.Build()
	if err != nil {
		return nil, err
	}

	unlock, err := c.locker.Lock(ctx, c.lockKey)
	if err != nil {
		logger.Errorf(ctx, "Register lock err: %+v", err)
		return nil, err
	}
	defer unlock()

	rows, err := c.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	current, err := decode(ctx, rows)
	if err != nil {
		return nil, err
	}
	for _, e := range current {
		if e.Name == r.Name {
			return nil, code.ReagentExist.WithMsgf("reagent %q already exists", r.Name)
		}
	}

	rows = append(rows, reagent.ToRow(r))
	if err := c.store.Save(ctx, rows); err != nil {
		logger.Errorf(ctx, "Register save err: %+v", err)
		return nil, err
	}

	current = append(current, r)
	c.mu.Lock()
	c.reagents = current
	c.mu.Unlock()
	metrics.SetCatalogSize(len(current))
	logger.Infof(ctx, "registered reagent %q (%s)", r.Name, r.Category())

	if c.center != nil {
		msg := &notify.SendMsg{Channel: notify.CatalogModify, Origin: c.origin, Reagent: r.Name}
		if err := c.center.Broadcast(ctx, msg); err != nil {
			logger.Warnf(ctx, "announce reagent %q err: %+v", r.Name, err)
		}
	}

	return r, nil
}

func (c *Catalog) QueryCompound(ctx context.Context, req *reagent.CompoundReq) (*reagent.CompoundResp, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, code.ParamErr.WithMsg("compound name is empty")
	}
	if c.pubchem == nil {
		return nil, code.RPCHttpErr.WithMsg("pubchem lookup is not configured")
	}
	info, err := c.pubchem.GetCompound(ctx, name)
	if err != nil {
		return nil, err
	}
	return &reagent.CompoundResp{
		Name:             info.Name,
		MolecularFormula: info.MolecularFormula,
		MolarMass:        info.MolecularWeight,
	}, nil
}

func (c *Catalog) Ping(ctx context.Context) error {
	return c.store.Ping(ctx)
}
