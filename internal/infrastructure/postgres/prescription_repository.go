package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
)

var _ repository.PrescriptionRepository = (*PrescriptionRepo)(nil)

// PrescriptionRepo fórmulas médicas y sus líneas (usable con pool o tx).
type PrescriptionRepo struct {
	q Querier
}

// NewPrescriptionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPrescriptionRepository(q Querier) *PrescriptionRepo {
	return &PrescriptionRepo{q: q}
}

const prescriptionColumns = `id, organization_id, patient_id, prescriber_name, prescriber_document, diagnosis_code,
	related_diagnosis_code, authorization_number, mipres_id, issued_at, status, created_at, updated_at`

func scanPrescription(row pgx.Row) (*entity.Prescription, error) {
	var p entity.Prescription
	if err := row.Scan(&p.ID, &p.OrganizationID, &p.PatientID, &p.PrescriberName, &p.PrescriberDocument,
		&p.DiagnosisCode, &p.RelatedDiagnosisCode, &p.AuthorizationNumber, &p.MIPRESID, &p.IssuedAt,
		&p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste la cabecera y las líneas de la fórmula.
func (r *PrescriptionRepo) Create(ctx context.Context, p *entity.Prescription) error {
	query := `INSERT INTO prescriptions (` + prescriptionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	if _, err := r.q.Exec(ctx, query,
		p.ID, p.OrganizationID, p.PatientID, p.PrescriberName, p.PrescriberDocument, p.DiagnosisCode,
		p.RelatedDiagnosisCode, p.AuthorizationNumber, p.MIPRESID, p.IssuedAt, p.Status, p.CreatedAt, p.UpdatedAt,
	); err != nil {
		return fmt.Errorf("insert prescription: %w", err)
	}
	const itemQuery = `
		INSERT INTO prescription_items (id, prescription_id, product_id, quantity_prescribed, quantity_delivered, treatment_days)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for i := range p.Items {
		it := &p.Items[i]
		it.PrescriptionID = p.ID
		if _, err := r.q.Exec(ctx, itemQuery,
			it.ID, it.PrescriptionID, it.ProductID, it.QuantityPrescribed, it.QuantityDelivered, it.TreatmentDays,
		); err != nil {
			return fmt.Errorf("insert prescription item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la fórmula con sus líneas.
func (r *PrescriptionRepo) GetByID(ctx context.Context, id string) (*entity.Prescription, error) {
	return r.get(ctx, id, "")
}

// GetForUpdate bloquea la fórmula y sus líneas hasta el fin de la transacción.
func (r *PrescriptionRepo) GetForUpdate(ctx context.Context, id string) (*entity.Prescription, error) {
	return r.get(ctx, id, " FOR UPDATE")
}

func (r *PrescriptionRepo) get(ctx context.Context, id, lock string) (*entity.Prescription, error) {
	p, err := scanPrescription(r.q.QueryRow(ctx,
		`SELECT `+prescriptionColumns+` FROM prescriptions WHERE id = $1`+lock, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get prescription: %w", err)
	}
	items, err := r.items(ctx, []string{p.ID}, lock)
	if err != nil {
		return nil, err
	}
	p.Items = items[p.ID]
	return p, nil
}

// items líneas de varias fórmulas indexadas por prescription_id.
func (r *PrescriptionRepo) items(ctx context.Context, ids []string, lock string) (map[string][]entity.PrescriptionItem, error) {
	query := `
		SELECT id, prescription_id, product_id, quantity_prescribed, quantity_delivered, treatment_days
		FROM prescription_items WHERE prescription_id = ANY($1::uuid[]) ORDER BY prescription_id, id` + lock
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("list prescription items: %w", err)
	}
	defer rows.Close()
	out := make(map[string][]entity.PrescriptionItem, len(ids))
	for rows.Next() {
		var it entity.PrescriptionItem
		if err := rows.Scan(&it.ID, &it.PrescriptionID, &it.ProductID, &it.QuantityPrescribed,
			&it.QuantityDelivered, &it.TreatmentDays); err != nil {
			return nil, fmt.Errorf("scan prescription item: %w", err)
		}
		out[it.PrescriptionID] = append(out[it.PrescriptionID], it)
	}
	return out, rows.Err()
}

// UpdateProgress persiste estado y cantidades entregadas de cada línea.
func (r *PrescriptionRepo) UpdateProgress(ctx context.Context, p *entity.Prescription) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE prescriptions SET status = $2, updated_at = $3 WHERE id = $1`, p.ID, p.Status, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update prescription: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	for _, it := range p.Items {
		if _, err := r.q.Exec(ctx,
			`UPDATE prescription_items SET quantity_delivered = $2 WHERE id = $1`, it.ID, it.QuantityDelivered,
		); err != nil {
			return fmt.Errorf("update prescription item: %w", err)
		}
	}
	return nil
}

// ListByPatient fórmulas del paciente, la más reciente primero.
func (r *PrescriptionRepo) ListByPatient(ctx context.Context, patientID string, limit, offset int) ([]*entity.Prescription, error) {
	query := `SELECT ` + prescriptionColumns + ` FROM prescriptions
		WHERE patient_id = $1 ORDER BY issued_at DESC, created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, patientID, limitArg(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list prescriptions: %w", err)
	}
	list := make([]*entity.Prescription, 0)
	ids := make([]string, 0)
	for rows.Next() {
		p, err := scanPrescription(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan prescription: %w", err)
		}
		list = append(list, p)
		ids = append(ids, p.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return list, nil
	}
	items, err := r.items(ctx, ids, "")
	if err != nil {
		return nil, err
	}
	for _, p := range list {
		p.Items = items[p.ID]
	}
	return list, nil
}

// CountOpen fórmulas pendientes o parciales de la organización.
func (r *PrescriptionRepo) CountOpen(ctx context.Context, organizationID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM prescriptions WHERE organization_id = $1 AND status IN ('pending', 'partial')`,
		organizationID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count open prescriptions: %w", err)
	}
	return n, nil
}
