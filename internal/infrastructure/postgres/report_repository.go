package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
	"github.com/jhoicas/farmacia-api/internal/domain/rips"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo lecturas para RIPS y la exportación contable.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

type dispensedRow struct {
	deliveryID     string
	deliveredAt    time.Time
	productID      string
	quantity       decimal.Decimal
	treatmentDays  int
	patientID      string
	prescriptionID string
	returned       decimal.Decimal
}

// DispensedLines entregas del período netas de devoluciones. Lo devuelto de un
// producto se descuenta de las líneas de esa entrega en orden; las líneas que
// quedan en cero no se reportan.
func (r *ReportRepo) DispensedLines(ctx context.Context, organizationID string, from, to time.Time, epsCode string) ([]rips.DispensedLine, error) {
	const query = `
	SELECT
	    d.id, d.delivered_at, di.product_id, di.quantity,
	    COALESCE(pi.treatment_days, 0),
	    d.patient_id, COALESCE(d.prescription_id::text, ''),
	    COALESCE(ret.quantity, 0)
	FROM deliveries d
	JOIN delivery_items di          ON di.delivery_id = d.id
	JOIN patients pa                ON pa.id = d.patient_id
	LEFT JOIN prescription_items pi ON pi.id = di.prescription_item_id
	LEFT JOIN (
	    SELECT r.delivery_id, i.product_id, SUM(i.quantity) AS quantity
	    FROM product_returns r
	    JOIN product_return_items i ON i.return_id = r.id
	    GROUP BY r.delivery_id, i.product_id
	) ret ON ret.delivery_id = d.id AND ret.product_id = di.product_id
	WHERE d.organization_id = $1
	  AND d.delivered_at BETWEEN $2 AND $3
	  AND ($4 = '' OR pa.eps_code = $4)
	ORDER BY d.delivered_at, d.id, di.id`

	rows, err := r.pool.Query(ctx, query, organizationID, from, to, epsCode)
	if err != nil {
		return nil, fmt.Errorf("report.DispensedLines: %w", err)
	}
	var raw []dispensedRow
	for rows.Next() {
		var d dispensedRow
		if err := rows.Scan(&d.deliveryID, &d.deliveredAt, &d.productID, &d.quantity, &d.treatmentDays,
			&d.patientID, &d.prescriptionID, &d.returned); err != nil {
			rows.Close()
			return nil, fmt.Errorf("report.DispensedLines scan: %w", err)
		}
		raw = append(raw, d)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	patientIDs, productIDs, prescriptionIDs := []string{}, []string{}, []string{}
	consumed := map[string]decimal.Decimal{} // delivery|product -> devuelto ya descontado
	kept := raw[:0]
	for _, d := range raw {
		key := d.deliveryID + "|" + d.productID
		pending := d.returned.Sub(consumed[key])
		if pending.GreaterThan(decimal.Zero) {
			take := decimal.Min(pending, d.quantity)
			d.quantity = d.quantity.Sub(take)
			consumed[key] = consumed[key].Add(take)
		}
		if !d.quantity.GreaterThan(decimal.Zero) {
			continue
		}
		kept = append(kept, d)
		patientIDs = append(patientIDs, d.patientID)
		productIDs = append(productIDs, d.productID)
		if d.prescriptionID != "" {
			prescriptionIDs = append(prescriptionIDs, d.prescriptionID)
		}
	}
	out := make([]rips.DispensedLine, 0, len(kept))
	if len(kept) == 0 {
		return out, nil
	}

	patients, err := r.patientsByID(ctx, patientIDs)
	if err != nil {
		return nil, err
	}
	products, err := r.productsByID(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	prescriptions, err := r.prescriptionsByID(ctx, prescriptionIDs)
	if err != nil {
		return nil, err
	}
	for _, d := range kept {
		out = append(out, rips.DispensedLine{
			Patient:       patients[d.patientID],
			Product:       products[d.productID],
			Prescription:  prescriptions[d.prescriptionID],
			TreatmentDays: d.treatmentDays,
			Quantity:      d.quantity,
			DeliveredAt:   d.deliveredAt,
		})
	}
	return out, nil
}

func (r *ReportRepo) patientsByID(ctx context.Context, ids []string) (map[string]*entity.Patient, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+patientColumns+` FROM patients WHERE id = ANY($1::uuid[])`, ids)
	if err != nil {
		return nil, fmt.Errorf("report patients: %w", err)
	}
	defer rows.Close()
	out := make(map[string]*entity.Patient)
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, fmt.Errorf("report patients scan: %w", err)
		}
		out[p.ID] = p
	}
	return out, rows.Err()
}

func (r *ReportRepo) productsByID(ctx context.Context, ids []string) (map[string]*entity.Product, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+productColumns+` FROM products WHERE id = ANY($1::uuid[])`, ids)
	if err != nil {
		return nil, fmt.Errorf("report products: %w", err)
	}
	defer rows.Close()
	out := make(map[string]*entity.Product)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("report products scan: %w", err)
		}
		out[p.ID] = p
	}
	return out, rows.Err()
}

// prescriptionsByID solo cabeceras; RIPS no usa las líneas.
func (r *ReportRepo) prescriptionsByID(ctx context.Context, ids []string) (map[string]*entity.Prescription, error) {
	out := make(map[string]*entity.Prescription)
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.pool.Query(ctx, `SELECT `+prescriptionColumns+` FROM prescriptions WHERE id = ANY($1::uuid[])`, ids)
	if err != nil {
		return nil, fmt.Errorf("report prescriptions: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		p, err := scanPrescription(rows)
		if err != nil {
			return nil, fmt.Errorf("report prescriptions scan: %w", err)
		}
		out[p.ID] = p
	}
	return out, rows.Err()
}

// PurchaseLines líneas de recepción del período para la exportación a Siigo.
func (r *ReportRepo) PurchaseLines(ctx context.Context, organizationID string, from, to time.Time) ([]repository.PurchaseExportLine, error) {
	const query = `
	SELECT
	    rc.id, rc.invoice_number, rc.received_at,
	    s.nit, s.name, w.name,
	    p.cum, p.name,
	    i.quantity, i.unit_cost, i.lot, i.expiration_date
	FROM purchase_receipts rc
	JOIN purchase_receipt_items i ON i.receipt_id = rc.id
	JOIN suppliers  s ON s.id = rc.supplier_id
	JOIN warehouses w ON w.id = rc.warehouse_id
	JOIN products   p ON p.id = i.product_id
	WHERE rc.organization_id = $1
	  AND rc.received_at BETWEEN $2 AND $3
	ORDER BY rc.received_at, rc.id, i.id`

	rows, err := r.pool.Query(ctx, query, organizationID, from, to)
	if err != nil {
		return nil, fmt.Errorf("report.PurchaseLines: %w", err)
	}
	defer rows.Close()

	out := make([]repository.PurchaseExportLine, 0)
	for rows.Next() {
		var l repository.PurchaseExportLine
		if err := rows.Scan(&l.ReceiptID, &l.InvoiceNumber, &l.ReceivedAt, &l.SupplierNIT, &l.SupplierName,
			&l.WarehouseName, &l.CUM, &l.ProductName, &l.Quantity, &l.UnitCost, &l.Lot, &l.ExpirationDate); err != nil {
			return nil, fmt.Errorf("report.PurchaseLines scan: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
