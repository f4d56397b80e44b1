package purchasing_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/application/purchasing"
	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/testutil/memstore"
)

func TestCompareQuotes_PrecioNetoYLuegoPuntaje(t *testing.T) {
	s := memstore.New()
	ctx := context.Background()
	product := s.SeedProduct(orgID, "19943212-01", "Losartán 50 mg", d("100"))
	andina := s.SeedSupplier(orgID, "Andina")
	valle := s.SeedSupplier(orgID, "Valle")
	caribe := s.SeedSupplier(orgID, "Caribe")
	cerrado := s.SeedSupplier(orgID, "Cerrado")

	quotes := purchasing.NewQuoteUseCase(s.Quotes(), s.Suppliers(), s.Products(), s.Scores())
	suppliers := purchasing.NewSupplierUseCase(s.Suppliers())
	scores := purchasing.NewScoringUseCase(s, s.Suppliers(), s.Scores())
	nextMonth := time.Now().AddDate(0, 1, 0).Format("2006-01-02")

	create := func(supplierID, price, discount, validUntil string) {
		_, err := quotes.Create(ctx, orgID, dto.CreateQuoteRequest{
			SupplierID: supplierID, ProductID: product.ID,
			UnitPrice: d(price), DiscountPct: d(discount), ValidUntil: validUntil,
		})
		require.NoError(t, err)
	}
	create(andina.ID, "1000", "10", nextMonth) // neto 900
	create(valle.ID, "950", "0", nextMonth)    // neto 950
	create(caribe.ID, "900", "0", nextMonth)   // neto 900, mejor calificado
	create(valle.ID, "500", "0", "2020-01-01") // vencida
	create(cerrado.ID, "100", "0", nextMonth)

	inactive := false
	_, err := suppliers.Update(ctx, orgID, cerrado.ID, dto.UpdateSupplierRequest{IsActive: &inactive})
	require.NoError(t, err)
	_, err = scores.UpdateSupplierScore(ctx, orgID, dto.UpdateSupplierScoreRequest{SupplierID: caribe.ID, PriceCompetitive: ptrBool(true)})
	require.NoError(t, err)

	out, err := quotes.CompareQuotes(ctx, orgID, product.ID)
	require.NoError(t, err)
	require.Len(t, out.Items, 3)

	assert.Equal(t, "Caribe", out.Items[0].SupplierName)
	assert.Equal(t, 55, out.Items[0].OverallScore)
	assert.Equal(t, "Andina", out.Items[1].SupplierName)
	assert.True(t, d("900").Equal(out.Items[1].NetPrice))
	assert.Equal(t, 50, out.Items[1].OverallScore)
	assert.Equal(t, "Valle", out.Items[2].SupplierName)
}

func TestQuoteCreate_Validaciones(t *testing.T) {
	s := memstore.New()
	product := s.SeedProduct(orgID, "1", "Acetaminofén", d("10"))
	sp := s.SeedSupplier(orgID, "Andina")
	foreign := s.SeedSupplier("org-2", "Ajeno")
	uc := purchasing.NewQuoteUseCase(s.Quotes(), s.Suppliers(), s.Products(), s.Scores())

	tests := []struct {
		name string
		in   dto.CreateQuoteRequest
		want error
	}{
		{"precio cero", dto.CreateQuoteRequest{SupplierID: sp.ID, ProductID: product.ID, UnitPrice: d("0"), ValidUntil: "2030-01-01"}, domain.ErrInvalidInput},
		{"descuento 100", dto.CreateQuoteRequest{SupplierID: sp.ID, ProductID: product.ID, UnitPrice: d("1"), DiscountPct: d("100"), ValidUntil: "2030-01-01"}, domain.ErrInvalidInput},
		{"fecha inválida", dto.CreateQuoteRequest{SupplierID: sp.ID, ProductID: product.ID, UnitPrice: d("1"), ValidUntil: "01/01/2030"}, domain.ErrInvalidInput},
		{"proveedor de otra organización", dto.CreateQuoteRequest{SupplierID: foreign.ID, ProductID: product.ID, UnitPrice: d("1"), ValidUntil: "2030-01-01"}, domain.ErrNotFound},
		{"producto inexistente", dto.CreateQuoteRequest{SupplierID: sp.ID, ProductID: "nope", UnitPrice: d("1"), ValidUntil: "2030-01-01"}, domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Create(context.Background(), orgID, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
