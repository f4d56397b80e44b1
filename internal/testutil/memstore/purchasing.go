package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
)

type supplierRepo struct{ s *Store }

func (s *Store) Suppliers() repository.SupplierRepository { return supplierRepo{s} }

func (r supplierRepo) Create(_ context.Context, sp *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.st.suppliers[sp.ID] = *sp
	return nil
}

func (r supplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if sp, ok := r.s.st.suppliers[id]; ok {
		return &sp, nil
	}
	return nil, nil
}

func (r supplierRepo) Update(_ context.Context, sp *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.st.suppliers[sp.ID] = *sp
	return nil
}

func (r supplierRepo) List(_ context.Context, orgID string, onlyActive bool, limit, offset int) ([]*entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Supplier, 0)
	for _, sp := range r.s.st.suppliers {
		if sp.OrganizationID != orgID || (onlyActive && !sp.IsActive) {
			continue
		}
		sp := sp
		out = append(out, &sp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, limit, offset), nil
}

type quoteRepo struct{ s *Store }

func (s *Store) Quotes() repository.QuoteRepository { return quoteRepo{s} }

func (r quoteRepo) Create(_ context.Context, q *entity.Quote) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.st.quotes[q.ID] = *q
	return nil
}

func (r quoteRepo) ListValidByProduct(_ context.Context, orgID, productID string, at time.Time) ([]*entity.Quote, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Quote, 0)
	for _, q := range r.s.st.quotes {
		sp := r.s.st.suppliers[q.SupplierID]
		if q.OrganizationID != orgID || q.ProductID != productID || q.ValidUntil.Before(at) || !sp.IsActive {
			continue
		}
		q := q
		out = append(out, &q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type scoreRepo struct{ s *Store }

func (s *Store) Scores() repository.SupplierScoreRepository { return scoreRepo{s} }

func (r scoreRepo) Get(_ context.Context, supplierID string) (*entity.SupplierScore, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if sc, ok := r.s.st.scores[supplierID]; ok {
		return &sc, nil
	}
	return nil, nil
}

func (r scoreRepo) GetForUpdate(ctx context.Context, supplierID string) (*entity.SupplierScore, error) {
	return r.Get(ctx, supplierID)
}

func (r scoreRepo) Upsert(_ context.Context, sc *entity.SupplierScore) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Scores.Upsert"); err != nil {
		return err
	}
	r.s.st.scores[sc.SupplierID] = *sc
	return nil
}

func (r scoreRepo) ListByOrganization(_ context.Context, orgID string) (map[string]*entity.SupplierScore, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := map[string]*entity.SupplierScore{}
	for id, sc := range r.s.st.scores {
		if r.s.st.suppliers[id].OrganizationID == orgID {
			sc := sc
			out[id] = &sc
		}
	}
	return out, nil
}
