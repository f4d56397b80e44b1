package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
	"github.com/jhoicas/farmacia-api/internal/domain/rips"
	"github.com/jhoicas/farmacia-api/internal/domain/rotation"
)

type rotationRepo struct{ s *Store }

func (s *Store) Rotation() repository.RotationRepository { return rotationRepo{s} }

func (r rotationRepo) ConsumptionSince(_ context.Context, orgID, warehouseID string, since time.Time) ([]rotation.Consumption, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sums := map[string]*rotation.Consumption{}
	for _, d := range r.s.st.deliveries {
		wh := r.s.st.warehouses[d.WarehouseID]
		if d.OrganizationID != orgID || d.DeliveredAt.Before(since) || !wh.IsDispensary() || !wh.IsActive {
			continue
		}
		if warehouseID != "" && d.WarehouseID != warehouseID {
			continue
		}
		for _, it := range d.Items {
			key := d.WarehouseID + "|" + it.ProductID
			c, ok := sums[key]
			if !ok {
				c = &rotation.Consumption{
					WarehouseID:   d.WarehouseID,
					WarehouseName: wh.Name,
					ProductID:     it.ProductID,
					ProductName:   r.s.st.products[it.ProductID].Name,
					CurrentStock:  r.s.st.stock[it.ProductID+"|"+d.WarehouseID].Quantity,
				}
				sums[key] = c
			}
			c.Consumed = c.Consumed.Add(it.Quantity)
		}
	}
	out := make([]rotation.Consumption, 0, len(sums))
	for _, c := range sums {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].WarehouseID != out[j].WarehouseID {
			return out[i].WarehouseID < out[j].WarehouseID
		}
		return out[i].ProductID < out[j].ProductID
	})
	return out, nil
}

func (r rotationRepo) SupplyStock(_ context.Context, orgID string) (rotation.SupplyStock, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := rotation.SupplyStock{}
	for _, st := range r.s.st.stock {
		wh := r.s.st.warehouses[st.WarehouseID]
		if wh.OrganizationID != orgID || wh.Type != entity.WarehouseTypeBodega || !wh.IsActive {
			continue
		}
		out[st.ProductID] = out[st.ProductID].Add(st.Quantity)
	}
	return out, nil
}

type analyticsRepo struct{ s *Store }

func (s *Store) Analytics() repository.AnalyticsRepository { return analyticsRepo{s} }

func (r analyticsRepo) CountPatients(_ context.Context, orgID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, p := range r.s.st.patients {
		if p.OrganizationID == orgID {
			n++
		}
	}
	return n, nil
}

func (r analyticsRepo) CountDeliveries(_ context.Context, orgID string, from, to time.Time) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, d := range r.s.st.deliveries {
		if d.OrganizationID == orgID && !d.DeliveredAt.Before(from) && !d.DeliveredAt.After(to) {
			n++
		}
	}
	return n, nil
}

func (r analyticsRepo) TopDispensed(_ context.Context, orgID string, from, to time.Time, limit int) ([]repository.DispensedProduct, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	agg := map[string]*repository.DispensedProduct{}
	for _, d := range r.s.st.deliveries {
		if d.OrganizationID != orgID || d.DeliveredAt.Before(from) || d.DeliveredAt.After(to) {
			continue
		}
		for _, it := range d.Items {
			a, ok := agg[it.ProductID]
			if !ok {
				p := r.s.st.products[it.ProductID]
				a = &repository.DispensedProduct{ProductID: p.ID, CUM: p.CUM, ProductName: p.Name}
				agg[it.ProductID] = a
			}
			a.Quantity = a.Quantity.Add(it.Quantity)
			a.Deliveries++
		}
	}
	out := make([]repository.DispensedProduct, 0, len(agg))
	for _, a := range agg {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Quantity.Equal(out[j].Quantity) {
			return out[i].Quantity.GreaterThan(out[j].Quantity)
		}
		return out[i].ProductName < out[j].ProductName
	})
	return page(out, limit, 0), nil
}

type reportRepo struct{ s *Store }

func (s *Store) Reports() repository.ReportRepository { return reportRepo{s} }

func (r reportRepo) DispensedLines(_ context.Context, orgID string, from, to time.Time, epsCode string) ([]rips.DispensedLine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	deliveries := make([]entity.Delivery, 0)
	for _, d := range r.s.st.deliveries {
		if d.OrganizationID == orgID && !d.DeliveredAt.Before(from) && !d.DeliveredAt.After(to) {
			deliveries = append(deliveries, d)
		}
	}
	sort.Slice(deliveries, func(i, j int) bool { return deliveries[i].DeliveredAt.Before(deliveries[j].DeliveredAt) })

	out := make([]rips.DispensedLine, 0)
	for _, d := range deliveries {
		patient := r.s.st.patients[d.PatientID]
		if epsCode != "" && patient.EPSCode != epsCode {
			continue
		}
		returned := map[string]decimal.Decimal{}
		for _, ret := range r.s.st.returns {
			if ret.DeliveryID == d.ID {
				for _, it := range ret.Items {
					returned[it.ProductID] = returned[it.ProductID].Add(it.Quantity)
				}
			}
		}
		var presc *entity.Prescription
		if p, ok := r.s.st.prescriptions[d.PrescriptionID]; ok {
			c := clonePrescription(p)
			presc = &c
		}
		for _, it := range d.Items {
			qty := it.Quantity
			if ret := returned[it.ProductID]; ret.GreaterThan(decimal.Zero) {
				take := decimal.Min(ret, qty)
				qty = qty.Sub(take)
				returned[it.ProductID] = ret.Sub(take)
			}
			if !qty.GreaterThan(decimal.Zero) {
				continue
			}
			product := r.s.st.products[it.ProductID]
			days := 0
			if presc != nil {
				for _, pi := range presc.Items {
					if pi.ID == it.PrescriptionItemID {
						days = pi.TreatmentDays
					}
				}
			}
			pat := patient
			out = append(out, rips.DispensedLine{
				Patient:       &pat,
				Product:       &product,
				Prescription:  presc,
				TreatmentDays: days,
				Quantity:      qty,
				DeliveredAt:   d.DeliveredAt,
			})
		}
	}
	return out, nil
}

func (r reportRepo) PurchaseLines(_ context.Context, orgID string, from, to time.Time) ([]repository.PurchaseExportLine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]repository.PurchaseExportLine, 0)
	for _, rc := range r.s.st.receipts {
		if rc.OrganizationID != orgID || rc.ReceivedAt.Before(from) || rc.ReceivedAt.After(to) {
			continue
		}
		sp := r.s.st.suppliers[rc.SupplierID]
		wh := r.s.st.warehouses[rc.WarehouseID]
		for _, it := range rc.Items {
			p := r.s.st.products[it.ProductID]
			out = append(out, repository.PurchaseExportLine{
				ReceiptID: rc.ID, InvoiceNumber: rc.InvoiceNumber, ReceivedAt: rc.ReceivedAt,
				SupplierNIT: sp.NIT, SupplierName: sp.Name, WarehouseName: wh.Name,
				CUM: p.CUM, ProductName: p.Name, Quantity: it.Quantity, UnitCost: it.UnitCost,
				Lot: it.Lot, ExpirationDate: it.ExpirationDate,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ReceivedAt.Before(out[j].ReceivedAt) })
	return out, nil
}
