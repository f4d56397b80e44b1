package memstore

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
)

type patientRepo struct{ s *Store }

func (s *Store) Patients() repository.PatientRepository { return patientRepo{s} }

func (r patientRepo) Create(_ context.Context, p *entity.Patient) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.st.patients {
		if x.OrganizationID == p.OrganizationID && x.DocumentType == p.DocumentType && x.DocumentNumber == p.DocumentNumber {
			return domain.ErrDuplicate
		}
	}
	r.s.st.patients[p.ID] = *p
	return nil
}

func (r patientRepo) GetByID(_ context.Context, id string) (*entity.Patient, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.st.patients[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r patientRepo) GetByDocument(_ context.Context, orgID, docType, docNumber string) (*entity.Patient, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.st.patients {
		if p.OrganizationID == orgID && p.DocumentType == docType && p.DocumentNumber == docNumber {
			return &p, nil
		}
	}
	return nil, nil
}

func (r patientRepo) Update(_ context.Context, p *entity.Patient) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.st.patients {
		if x.ID != p.ID && x.OrganizationID == p.OrganizationID && x.DocumentType == p.DocumentType && x.DocumentNumber == p.DocumentNumber {
			return domain.ErrDuplicate
		}
	}
	r.s.st.patients[p.ID] = *p
	return nil
}

func (r patientRepo) List(_ context.Context, orgID, search string, limit, offset int) ([]*entity.Patient, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	q := strings.ToLower(search)
	out := make([]*entity.Patient, 0)
	for _, p := range r.s.st.patients {
		if p.OrganizationID != orgID {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(p.DocumentNumber+" "+p.FullName()), q) {
			continue
		}
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DocumentNumber < out[j].DocumentNumber })
	return page(out, limit, offset), nil
}

func (r patientRepo) MunicipalityExists(_ context.Context, code string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.st.municipios[code], nil
}

type prescriptionRepo struct{ s *Store }

func (s *Store) Prescriptions() repository.PrescriptionRepository { return prescriptionRepo{s} }

func (r prescriptionRepo) Create(_ context.Context, p *entity.Prescription) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.st.prescriptions[p.ID] = clonePrescription(*p)
	return nil
}

func (r prescriptionRepo) GetByID(_ context.Context, id string) (*entity.Prescription, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.st.prescriptions[id]; ok {
		c := clonePrescription(p)
		return &c, nil
	}
	return nil, nil
}

func (r prescriptionRepo) GetForUpdate(ctx context.Context, id string) (*entity.Prescription, error) {
	return r.GetByID(ctx, id)
}

func (r prescriptionRepo) UpdateProgress(_ context.Context, p *entity.Prescription) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Prescriptions.UpdateProgress"); err != nil {
		return err
	}
	if _, ok := r.s.st.prescriptions[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.st.prescriptions[p.ID] = clonePrescription(*p)
	return nil
}

func (r prescriptionRepo) ListByPatient(_ context.Context, patientID string, limit, offset int) ([]*entity.Prescription, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Prescription, 0)
	for _, p := range r.s.st.prescriptions {
		if p.PatientID == patientID {
			c := clonePrescription(p)
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].IssuedAt.After(out[j].IssuedAt) })
	return page(out, limit, offset), nil
}

func (r prescriptionRepo) CountOpen(_ context.Context, orgID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, p := range r.s.st.prescriptions {
		if p.OrganizationID == orgID && (p.Status == entity.PrescriptionPending || p.Status == entity.PrescriptionPartial) {
			n++
		}
	}
	return n, nil
}

type deliveryRepo struct{ s *Store }

func (s *Store) Deliveries() repository.DeliveryRepository { return deliveryRepo{s} }

func (r deliveryRepo) Create(_ context.Context, d *entity.Delivery) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Deliveries.Create"); err != nil {
		return err
	}
	r.s.st.deliveries[d.ID] = cloneDelivery(*d)
	return nil
}

func (r deliveryRepo) GetByID(_ context.Context, id string) (*entity.Delivery, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if d, ok := r.s.st.deliveries[id]; ok {
		c := cloneDelivery(d)
		return &c, nil
	}
	return nil, nil
}

func (r deliveryRepo) List(_ context.Context, orgID string, f repository.DeliveryFilter, limit, offset int) ([]*entity.Delivery, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Delivery, 0)
	for _, d := range r.s.st.deliveries {
		if d.OrganizationID != orgID ||
			(f.WarehouseID != "" && d.WarehouseID != f.WarehouseID) ||
			(f.PatientID != "" && d.PatientID != f.PatientID) ||
			(f.From != nil && d.DeliveredAt.Before(*f.From)) ||
			(f.To != nil && d.DeliveredAt.After(*f.To)) {
			continue
		}
		c := cloneDelivery(d)
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DeliveredAt.After(out[j].DeliveredAt) })
	return page(out, limit, offset), nil
}

// AddDelivery registra una entrega histórica sin mover inventario (para sembrar consumo).
func (s *Store) AddDelivery(d entity.Delivery) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.deliveries[d.ID] = cloneDelivery(d)
}

type returnRepo struct{ s *Store }

func (s *Store) Returns() repository.ReturnRepository { return returnRepo{s} }

func (r returnRepo) Create(_ context.Context, ret *entity.ProductReturn) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *ret
	c.Items = append([]entity.ProductReturnItem(nil), ret.Items...)
	r.s.st.returns[ret.ID] = c
	return nil
}

func (r returnRepo) GetByID(_ context.Context, id string) (*entity.ProductReturn, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if ret, ok := r.s.st.returns[id]; ok {
		return &ret, nil
	}
	return nil, nil
}

func (r returnRepo) ListByDelivery(_ context.Context, deliveryID string) ([]*entity.ProductReturn, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.ProductReturn, 0)
	for _, ret := range r.s.st.returns {
		if ret.DeliveryID == deliveryID {
			ret := ret
			out = append(out, &ret)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r returnRepo) ReturnedQuantities(_ context.Context, deliveryID string) (map[string]decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := map[string]decimal.Decimal{}
	for _, ret := range r.s.st.returns {
		if ret.DeliveryID != deliveryID {
			continue
		}
		for _, it := range ret.Items {
			out[it.ProductID] = out[it.ProductID].Add(it.Quantity)
		}
	}
	return out, nil
}

type transferRepo struct{ s *Store }

func (s *Store) Transfers() repository.TransferRepository { return transferRepo{s} }

func (r transferRepo) Create(_ context.Context, t *entity.Transfer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *t
	c.Items = append([]entity.TransferItem(nil), t.Items...)
	r.s.st.transfers[t.ID] = c
	return nil
}

func (r transferRepo) GetByID(_ context.Context, id string) (*entity.Transfer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if t, ok := r.s.st.transfers[id]; ok {
		return &t, nil
	}
	return nil, nil
}

func (r transferRepo) List(_ context.Context, orgID string, limit, offset int) ([]*entity.Transfer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Transfer, 0)
	for _, t := range r.s.st.transfers {
		if t.OrganizationID == orgID {
			t := t
			out = append(out, &t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, limit, offset), nil
}

type receiptRepo struct{ s *Store }

func (s *Store) Receipts() repository.PurchaseReceiptRepository { return receiptRepo{s} }

func (r receiptRepo) Create(_ context.Context, rc *entity.PurchaseReceipt) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.st.receipts {
		if x.OrganizationID == rc.OrganizationID && x.SupplierID == rc.SupplierID && x.InvoiceNumber == rc.InvoiceNumber {
			return domain.ErrDuplicate
		}
	}
	c := *rc
	c.Items = append([]entity.PurchaseReceiptItem(nil), rc.Items...)
	r.s.st.receipts[rc.ID] = c
	return nil
}

func (r receiptRepo) GetByID(_ context.Context, id string) (*entity.PurchaseReceipt, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if rc, ok := r.s.st.receipts[id]; ok {
		return &rc, nil
	}
	return nil, nil
}

func (r receiptRepo) List(_ context.Context, orgID string, from, to *time.Time, limit, offset int) ([]*entity.PurchaseReceipt, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.PurchaseReceipt, 0)
	for _, rc := range r.s.st.receipts {
		if rc.OrganizationID != orgID || (from != nil && rc.ReceivedAt.Before(*from)) || (to != nil && rc.ReceivedAt.After(*to)) {
			continue
		}
		rc := rc
		out = append(out, &rc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ReceivedAt.After(out[j].ReceivedAt) })
	return page(out, limit, offset), nil
}
