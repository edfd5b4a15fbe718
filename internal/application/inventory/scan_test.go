package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mynt/inventory-tracker/internal/application/inventory"
	"github.com/mynt/inventory-tracker/internal/domain/classify"
	"github.com/mynt/inventory-tracker/internal/domain/entity"
)

// stubBaseResolver responde base types fijos por producto, sin caché ni red.
type stubBaseResolver struct {
	byProduct map[string]*string
	err       error
}

func (s *stubBaseResolver) ResolveBaseType(_ context.Context, productID string) (*string, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.byProduct[productID], nil
}

// scanHarness arma un ScanUseCase completo sobre los dobles en memoria.
type scanHarness struct {
	scan     *inventory.ScanUseCase
	proc     *fakeProcessedRepo
	mov      *fakeMovementRepo
	settings *fakeSettingsRepo
	source   *fakeOrderSource
	tx       *fakeTxRunner
}

func newScanHarness(resolver classify.BaseTypeResolver, orders ...entity.SourceOrder) *scanHarness {
	proc := newFakeProcessedRepo()
	mov := newFakeMovementRepo()
	settings := newFakeSettingsRepo()
	source := &fakeOrderSource{orders: orders}
	tx := newFakeTxRunner(proc, mov)
	classifier := classify.New(classify.Config{}, resolver)
	return &scanHarness{
		scan:     inventory.NewScanUseCase(tx, proc, settings, source, classifier),
		proc:     proc,
		mov:      mov,
		settings: settings,
		source:   source,
		tx:       tx,
	}
}

func keyP10() entity.InventoryKey {
	return entity.InventoryKey{BaseType: "P", Category: "Wandfarbe", Size: "10 Liter"}
}

func TestScan_AgregaPorClaveYCuenta(t *testing.T) {
	order := entity.SourceOrder{
		ID:        1001,
		Name:      "#1001",
		CreatedAt: mustDate("2026-08-10"),
		LineItems: []entity.LineItem{
			// Dos líneas en la misma clave se agregan en un solo movimiento.
			{Name: "Wandfarbe Custom Color P1", VariantTitle: "10 Liter", Quantity: 2},
			{Name: "Wandfarbe Custom Color", VariantTitle: "P1 / 10 Liter", Quantity: 3},
			{Name: "Wall Primer", VariantTitle: "10 Liter", Quantity: 1},
			// Sin tamaño: se ignora.
			{Name: "Pinsel-Set", VariantTitle: "3-teilig", Quantity: 1},
		},
	}
	h := newScanHarness(&stubBaseResolver{}, order)

	res, err := h.scan.Scan(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, 1, res.OrdersFetched)
	assert.Equal(t, 1, res.Processed)
	assert.Equal(t, 0, res.Skipped)
	assert.Equal(t, 2, res.MovementsCreated)
	assert.Equal(t, 1, res.IgnoredLineItems)
	assert.Nil(t, res.From)

	assert.Equal(t, 5, h.mov.sumFor(keyP10()))
	assert.Equal(t, 1, h.mov.sumFor(entity.InventoryKey{BaseType: "Wall Primer", Category: "Wandfarbe", Size: "10 Liter"}))

	exists, err := h.proc.Exists("1001")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestScan_SegundaPasadaSaltaLoYaConciliado(t *testing.T) {
	order := entity.SourceOrder{
		ID:        1002,
		Name:      "#1002",
		CreatedAt: mustDate("2026-08-11"),
		LineItems: []entity.LineItem{
			{Name: "Wandfarbe Custom Color P1", VariantTitle: "10 Liter", Quantity: 4},
		},
	}
	h := newScanHarness(&stubBaseResolver{}, order)

	_, err := h.scan.Scan(context.Background(), nil)
	require.NoError(t, err)

	res, err := h.scan.Scan(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, 0, res.Processed)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, 0, res.MovementsCreated)
	// El consumo registrado no cambia: exactamente una vez por orden.
	assert.Equal(t, 4, h.mov.sumFor(keyP10()))
}

func TestScan_ConCorteReconstruyeLaVentana(t *testing.T) {
	order := entity.SourceOrder{
		ID:        1003,
		Name:      "#1003",
		CreatedAt: mustDate("2026-08-12"),
		LineItems: []entity.LineItem{
			{Name: "Lack Custom Color P2", VariantTitle: "0.75 Liter", Quantity: 6},
		},
	}
	h := newScanHarness(&stubBaseResolver{}, order)
	from := mustDate("2026-08-01")

	_, err := h.scan.Scan(context.Background(), &from)
	require.NoError(t, err)

	// Mismo corte de nuevo: la ventana se borra y se reconcilia entera, así
	// que la orden se procesa otra vez pero el consumo total queda igual.
	res, err := h.scan.Scan(context.Background(), &from)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Processed)
	assert.Equal(t, 0, res.Skipped)
	require.NotNil(t, res.From)
	assert.True(t, res.From.Equal(from))
	assert.Equal(t, 6, h.mov.sumFor(entity.InventoryKey{BaseType: "U", Category: "Lack", Size: "0.75 Liter"}))
	assert.Len(t, h.mov.movements, 1)
	assert.Len(t, h.proc.orders, 1)
}

func TestScan_SinCorteExplicitoUsaElDeSettings(t *testing.T) {
	h := newScanHarness(&stubBaseResolver{})
	defaultFrom := mustDate("2026-07-01")
	_, err := h.settings.UpsertDefaultFrom(&defaultFrom)
	require.NoError(t, err)

	res, err := h.scan.Scan(context.Background(), nil)
	require.NoError(t, err)

	require.NotNil(t, h.source.gotCreatedAtMin)
	assert.True(t, h.source.gotCreatedAtMin.Equal(defaultFrom), "la fuente recibe el corte de settings")
	require.NotNil(t, res.From)
	assert.True(t, res.From.Equal(defaultFrom))
	// Con corte efectivo hubo transacción de reconstrucción aunque no haya
	// órdenes que conciliar.
	assert.Equal(t, 1, h.tx.runs)
}

func TestScan_SinCorteNiSettingsEscaneaTodoSinReconstruir(t *testing.T) {
	h := newScanHarness(&stubBaseResolver{})

	res, err := h.scan.Scan(context.Background(), nil)
	require.NoError(t, err)

	assert.Nil(t, h.source.gotCreatedAtMin)
	assert.Nil(t, res.From)
	assert.Zero(t, h.tx.runs, "sin corte efectivo no hay reconstrucción")
}

func TestScan_CantidadNoPositivaNoGeneraMovimiento(t *testing.T) {
	order := entity.SourceOrder{
		ID:        1004,
		Name:      "#1004",
		CreatedAt: mustDate("2026-08-13"),
		LineItems: []entity.LineItem{
			{Name: "Wandfarbe Custom Color P1", VariantTitle: "10 Liter", Quantity: 0},
		},
	}
	h := newScanHarness(&stubBaseResolver{}, order)

	res, err := h.scan.Scan(context.Background(), nil)
	require.NoError(t, err)

	// La orden entra al libro mayor igual, pero sin movimientos.
	assert.Equal(t, 1, res.Processed)
	assert.Equal(t, 0, res.MovementsCreated)
	assert.Empty(t, h.mov.movements)
}

func TestScan_FallaDeTransaccionNoDejaEstadoParcial(t *testing.T) {
	first := entity.SourceOrder{
		ID:        2001,
		Name:      "#2001",
		CreatedAt: mustDate("2026-08-14"),
		LineItems: []entity.LineItem{
			{Name: "Wandfarbe Custom Color P1", VariantTitle: "10 Liter", Quantity: 1},
		},
	}
	second := entity.SourceOrder{
		ID:        2002,
		Name:      "#2002",
		CreatedAt: mustDate("2026-08-15"),
		LineItems: []entity.LineItem{
			{Name: "Wandfarbe Custom Color P1", VariantTitle: "10 Liter", Quantity: 9},
		},
	}
	h := newScanHarness(&stubBaseResolver{}, first)

	// La primera orden se procesa en una corrida limpia.
	_, err := h.scan.Scan(context.Background(), nil)
	require.NoError(t, err)

	// Aparece la segunda orden y rompemos el commit de la próxima transacción:
	// al re-escanear, la primera se salta (ya está en el libro mayor) y la
	// segunda falla.
	h.source.orders = append(h.source.orders, second)
	h.tx.failNextCommit = errors.New("commit roto")
	_, err = h.scan.Scan(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2002")

	// La orden fallida no dejó ni fila del libro mayor ni movimientos: un
	// re-escaneo posterior la retoma desde cero.
	exists, err := h.proc.Exists("2002")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Equal(t, 1, h.mov.sumFor(keyP10()))

	res, err := h.scan.Scan(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Processed)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, 10, h.mov.sumFor(keyP10()))
}

func TestScan_ErrorDeLaFuenteAborta(t *testing.T) {
	h := newScanHarness(&stubBaseResolver{})
	h.source.err = errors.New("fuente caída")

	_, err := h.scan.Scan(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "obtener órdenes pagadas")
}

func TestScan_ErrorDelResolverAborta(t *testing.T) {
	order := entity.SourceOrder{
		ID:        3001,
		Name:      "#3001",
		CreatedAt: mustDate("2026-08-16"),
		LineItems: []entity.LineItem{
			{ProductID: i64Ptr(42), Name: "Signalweiß Wandfarbe", VariantTitle: "10 Liter", Quantity: 1},
		},
	}
	h := newScanHarness(&stubBaseResolver{err: errors.New("tags no disponibles")}, order)

	_, err := h.scan.Scan(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "clasificar línea")
	// Nada quedó a medias.
	assert.Empty(t, h.proc.orders)
	assert.Empty(t, h.mov.movements)
}
