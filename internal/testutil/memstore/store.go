// Package memstore implementa los puertos de repositorio en memoria para los
// tests de casos de uso. Run aplica rollback restaurando una copia del estado.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
)

type state struct {
	orgs          map[string]entity.Organization
	modules       map[string]entity.OrganizationModule // org|module
	users         map[string]entity.User
	warehouses    map[string]entity.Warehouse
	products      map[string]entity.Product
	stock         map[string]entity.Stock // product|warehouse
	movements     []entity.InventoryMovement
	patients      map[string]entity.Patient
	municipios    map[string]bool
	prescriptions map[string]entity.Prescription
	deliveries    map[string]entity.Delivery
	transfers     map[string]entity.Transfer
	receipts      map[string]entity.PurchaseReceipt
	returns       map[string]entity.ProductReturn
	suppliers     map[string]entity.Supplier
	quotes        map[string]entity.Quote
	scores        map[string]entity.SupplierScore
}

// Store base de datos en memoria.
type Store struct {
	mu sync.Mutex
	st state
	// FailOn hace fallar la operación con ese nombre (ej. "Deliveries.Create").
	FailOn map[string]error
}

// New crea un Store vacío.
func New() *Store {
	return &Store{st: state{
		orgs:          map[string]entity.Organization{},
		modules:       map[string]entity.OrganizationModule{},
		users:         map[string]entity.User{},
		warehouses:    map[string]entity.Warehouse{},
		products:      map[string]entity.Product{},
		stock:         map[string]entity.Stock{},
		patients:      map[string]entity.Patient{},
		municipios:    map[string]bool{},
		prescriptions: map[string]entity.Prescription{},
		deliveries:    map[string]entity.Delivery{},
		transfers:     map[string]entity.Transfer{},
		receipts:      map[string]entity.PurchaseReceipt{},
		returns:       map[string]entity.ProductReturn{},
		suppliers:     map[string]entity.Supplier{},
		quotes:        map[string]entity.Quote{},
		scores:        map[string]entity.SupplierScore{},
	}, FailOn: map[string]error{}}
}

func (s *Store) fail(op string) error {
	if err, ok := s.FailOn[op]; ok {
		return err
	}
	return nil
}

func (st state) clone() state {
	c := state{
		orgs:          copyMap(st.orgs),
		modules:       copyMap(st.modules),
		users:         copyMap(st.users),
		warehouses:    copyMap(st.warehouses),
		products:      copyMap(st.products),
		stock:         copyMap(st.stock),
		movements:     append([]entity.InventoryMovement(nil), st.movements...),
		patients:      copyMap(st.patients),
		municipios:    copyMap(st.municipios),
		prescriptions: map[string]entity.Prescription{},
		deliveries:    map[string]entity.Delivery{},
		transfers:     copyMap(st.transfers),
		receipts:      copyMap(st.receipts),
		returns:       copyMap(st.returns),
		suppliers:     copyMap(st.suppliers),
		quotes:        copyMap(st.quotes),
		scores:        copyMap(st.scores),
	}
	for k, v := range st.prescriptions {
		c.prescriptions[k] = clonePrescription(v)
	}
	for k, v := range st.deliveries {
		c.deliveries[k] = cloneDelivery(v)
	}
	return c
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func clonePrescription(p entity.Prescription) entity.Prescription {
	p.Items = append([]entity.PrescriptionItem(nil), p.Items...)
	return p
}

func cloneDelivery(d entity.Delivery) entity.Delivery {
	d.Items = append([]entity.DeliveryItem(nil), d.Items...)
	return d
}

// Run ejecuta fn con los repositorios del Store; si fn falla restaura el estado previo.
func (s *Store) Run(ctx context.Context, fn func(repos repository.TxRepos) error) error {
	s.mu.Lock()
	snapshot := s.st.clone()
	s.mu.Unlock()
	if err := fn(s.TxRepos()); err != nil {
		s.mu.Lock()
		s.st = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// TxRepos repositorios transaccionales respaldados por el Store.
func (s *Store) TxRepos() repository.TxRepos {
	return repository.TxRepos{
		Movements:     s.Movements(),
		Stock:         s.Stock(),
		Products:      s.Products(),
		Deliveries:    s.Deliveries(),
		Prescriptions: s.Prescriptions(),
		Returns:       s.Returns(),
		Receipts:      s.Receipts(),
		Transfers:     s.Transfers(),
		Scores:        s.Scores(),
	}
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// ── Seed helpers ────────────────────────────────────────────────────────────

// AddMunicipality registra un código DIVIPOLA válido.
func (s *Store) AddMunicipality(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.municipios[code] = true
}

// SetStock fija la cantidad de un producto en una bodega.
func (s *Store) SetStock(productID, warehouseID string, qty decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.stock[productID+"|"+warehouseID] = entity.Stock{ProductID: productID, WarehouseID: warehouseID, Quantity: qty}
}

// StockOf cantidad actual (cero si no existe).
func (s *Store) StockOf(productID, warehouseID string) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.stock[productID+"|"+warehouseID].Quantity
}

// AllMovements copia de los movimientos registrados.
func (s *Store) AllMovements() []entity.InventoryMovement {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.InventoryMovement(nil), s.st.movements...)
}

// ── Organizations / modules / users ────────────────────────────────────────

type orgRepo struct{ s *Store }

func (s *Store) Organizations() repository.OrganizationRepository { return orgRepo{s} }

func (r orgRepo) Create(_ context.Context, o *entity.Organization) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.st.orgs {
		if x.NIT == o.NIT {
			return domain.ErrDuplicate
		}
	}
	r.s.st.orgs[o.ID] = *o
	return nil
}

func (r orgRepo) GetByID(_ context.Context, id string) (*entity.Organization, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if o, ok := r.s.st.orgs[id]; ok {
		return &o, nil
	}
	return nil, nil
}

func (r orgRepo) GetByNIT(_ context.Context, nit string) (*entity.Organization, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.st.orgs {
		if o.NIT == nit {
			return &o, nil
		}
	}
	return nil, nil
}

func (r orgRepo) List(_ context.Context, limit, offset int) ([]*entity.Organization, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Organization, 0)
	for _, o := range r.s.st.orgs {
		o := o
		out = append(out, &o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, limit, offset), nil
}

type moduleRepo struct{ s *Store }

func (s *Store) Modules() repository.OrganizationModuleRepository { return moduleRepo{s} }

func (r moduleRepo) HasActiveModule(_ context.Context, orgID, name string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.st.modules[orgID+"|"+name]
	if !ok || !m.IsActive {
		return false, nil
	}
	return m.ExpiresAt == nil || m.ExpiresAt.After(time.Now()), nil
}

func (r moduleRepo) ListByOrganization(_ context.Context, orgID string) ([]*entity.OrganizationModule, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.OrganizationModule, 0)
	for _, m := range r.s.st.modules {
		if m.OrganizationID == orgID {
			m := m
			out = append(out, &m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ModuleName < out[j].ModuleName })
	return out, nil
}

func (r moduleRepo) Upsert(_ context.Context, m *entity.OrganizationModule) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.st.modules[m.OrganizationID+"|"+m.ModuleName] = *m
	return nil
}

type userRepo struct{ s *Store }

func (s *Store) Users() repository.UserRepository { return userRepo{s} }

func (r userRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.st.users {
		if x.Email == u.Email && x.OrganizationID == u.OrganizationID {
			return domain.ErrDuplicate
		}
	}
	r.s.st.users[u.ID] = *u
	return nil
}

func (r userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.st.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.st.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, nil
}

func (r userRepo) GetByEmailAndOrganization(_ context.Context, email, orgID string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.st.users {
		if strings.EqualFold(u.Email, email) && u.OrganizationID == orgID {
			return &u, nil
		}
	}
	return nil, nil
}

func (r userRepo) ListByOrganization(_ context.Context, orgID string, limit, offset int) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.User, 0)
	for _, u := range r.s.st.users {
		if u.OrganizationID == orgID {
			u := u
			out = append(out, &u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return page(out, limit, offset), nil
}

// ── Warehouses / products / stock / movements ──────────────────────────────

type warehouseRepo struct{ s *Store }

func (s *Store) Warehouses() repository.WarehouseRepository { return warehouseRepo{s} }

func (r warehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.st.warehouses[w.ID] = *w
	return nil
}

func (r warehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if w, ok := r.s.st.warehouses[id]; ok {
		return &w, nil
	}
	return nil, nil
}

func (r warehouseRepo) Update(_ context.Context, w *entity.Warehouse) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.warehouses[w.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.st.warehouses[w.ID] = *w
	return nil
}

func (r warehouseRepo) ListByOrganization(_ context.Context, orgID string, f repository.WarehouseFilter, limit, offset int) ([]*entity.Warehouse, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Warehouse, 0)
	for _, w := range r.s.st.warehouses {
		if w.OrganizationID != orgID || (f.Type != "" && w.Type != f.Type) || (f.OnlyActive && !w.IsActive) {
			continue
		}
		w := w
		out = append(out, &w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, limit, offset), nil
}

type productRepo struct{ s *Store }

func (s *Store) Products() repository.ProductRepository { return productRepo{s} }

func (r productRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.st.products {
		if x.OrganizationID == p.OrganizationID && x.CUM == p.CUM {
			return domain.ErrDuplicate
		}
	}
	r.s.st.products[p.ID] = *p
	return nil
}

func (r productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.st.products[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r productRepo) GetByOrganizationAndCUM(_ context.Context, orgID, cum string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.st.products {
		if p.OrganizationID == orgID && p.CUM == cum {
			return &p, nil
		}
	}
	return nil, nil
}

func (r productRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	old, ok := r.s.st.products[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Cost = old.Cost
	r.s.st.products[p.ID] = *p
	return nil
}

func (r productRepo) UpdateCost(_ context.Context, id string, cost decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.st.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Cost = cost
	r.s.st.products[id] = p
	return nil
}

func (r productRepo) ListByOrganization(_ context.Context, orgID, search string, limit, offset int) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	q := strings.ToLower(search)
	out := make([]*entity.Product, 0)
	for _, p := range r.s.st.products {
		if p.OrganizationID != orgID {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(p.Name+" "+p.ActiveIngredient+" "+p.CUM), q) {
			continue
		}
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, limit, offset), nil
}

type stockRepo struct{ s *Store }

func (s *Store) Stock() repository.StockRepository { return stockRepo{s} }

func (r stockRepo) Get(_ context.Context, productID, warehouseID string) (*entity.Stock, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if st, ok := r.s.st.stock[productID+"|"+warehouseID]; ok {
		return &st, nil
	}
	return &entity.Stock{ProductID: productID, WarehouseID: warehouseID, Quantity: decimal.Zero}, nil
}

func (r stockRepo) GetForUpdate(ctx context.Context, productID, warehouseID string) (*entity.Stock, error) {
	return r.Get(ctx, productID, warehouseID)
}

func (r stockRepo) Upsert(_ context.Context, st *entity.Stock) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Stock.Upsert"); err != nil {
		return err
	}
	r.s.st.stock[st.ProductID+"|"+st.WarehouseID] = *st
	return nil
}

func (r stockRepo) ListByWarehouse(_ context.Context, warehouseID string) ([]repository.StockLevel, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]repository.StockLevel, 0)
	for _, st := range r.s.st.stock {
		if st.WarehouseID != warehouseID {
			continue
		}
		p := r.s.st.products[st.ProductID]
		out = append(out, repository.StockLevel{
			ProductID: st.ProductID, ProductName: p.Name, CUM: p.CUM, WarehouseID: st.WarehouseID,
			Quantity: st.Quantity, UnitCost: p.Cost, UpdatedAt: st.UpdatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductName < out[j].ProductName })
	return out, nil
}

type movementRepo struct{ s *Store }

func (s *Store) Movements() repository.InventoryMovementRepository { return movementRepo{s} }

func (r movementRepo) Create(_ context.Context, m *entity.InventoryMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.st.movements = append(r.s.st.movements, *m)
	return nil
}

func (r movementRepo) ListByWarehouse(_ context.Context, warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.InventoryMovement, 0)
	for _, m := range r.s.st.movements {
		if m.WarehouseID != warehouseID || (from != nil && m.Date.Before(*from)) || (to != nil && m.Date.After(*to)) {
			continue
		}
		m := m
		out = append(out, &m)
	}
	return page(out, limit, offset), nil
}

func (r movementRepo) ListByReference(_ context.Context, refType, refID string) ([]*entity.InventoryMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.InventoryMovement, 0)
	for _, m := range r.s.st.movements {
		if m.ReferenceType == refType && m.ReferenceID == refID {
			m := m
			out = append(out, &m)
		}
	}
	return out, nil
}
