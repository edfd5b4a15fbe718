package inventory_test

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/mynt/inventory-tracker/internal/domain"
	"github.com/mynt/inventory-tracker/internal/domain/entity"
	"github.com/mynt/inventory-tracker/internal/domain/repository"
)

// Dobles en memoria de los repositorios y fuentes externas. Implementan los
// mismos contratos que los adaptadores reales (incluidos los errores
// centinela), para que los casos de uso se prueben sin base ni red.

func strPtr(s string) *string { return &s }
func i64Ptr(v int64) *int64   { return &v }

func mustDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// ──────────────────────────────────────────────────────────────────────────────
// StartRecordRepository
// ──────────────────────────────────────────────────────────────────────────────

type fakeStartRepo struct {
	records map[entity.InventoryKey]*entity.StartRecord
	listErr error
}

func newFakeStartRepo() *fakeStartRepo {
	return &fakeStartRepo{records: make(map[entity.InventoryKey]*entity.StartRecord)}
}

func (f *fakeStartRepo) upsert(key entity.InventoryKey) *entity.StartRecord {
	r, ok := f.records[key]
	if !ok {
		r = &entity.StartRecord{
			ID:       strconv.Itoa(len(f.records) + 1),
			BaseType: key.BaseType,
			Category: key.Category,
			Size:     key.Size,
		}
		f.records[key] = r
	}
	return r
}

func (f *fakeStartRepo) UpsertStartQty(key entity.InventoryKey, startQty int) (*entity.StartRecord, error) {
	r := f.upsert(key)
	r.StartQty = startQty
	return r, nil
}

func (f *fakeStartRepo) UpsertMinQty(key entity.InventoryKey, minQty int) (*entity.StartRecord, error) {
	r := f.upsert(key)
	r.MinQty = minQty
	return r, nil
}

func (f *fakeStartRepo) List() ([]*entity.StartRecord, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*entity.StartRecord, 0, len(f.records))
	for _, r := range f.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].BaseType != out[j].BaseType {
			return out[i].BaseType < out[j].BaseType
		}
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Size < out[j].Size
	})
	return out, nil
}

// seed carga un registro con start y min en un solo paso.
func (f *fakeStartRepo) seed(key entity.InventoryKey, startQty, minQty int) {
	r := f.upsert(key)
	r.StartQty = startQty
	r.MinQty = minQty
}

// ──────────────────────────────────────────────────────────────────────────────
// MovementRepository
// ──────────────────────────────────────────────────────────────────────────────

type fakeMovementRepo struct {
	movements []*entity.Movement
	nextID    int
	createErr error
	sumErr    error
}

func newFakeMovementRepo() *fakeMovementRepo { return &fakeMovementRepo{} }

func (f *fakeMovementRepo) Create(m *entity.Movement) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	cp := *m
	cp.ID = strconv.Itoa(f.nextID)
	cp.CreatedAt = time.Now().UTC()
	f.movements = append(f.movements, &cp)
	return nil
}

func (f *fakeMovementRepo) SumUsedSince(from *time.Time) ([]entity.UsedAggregate, error) {
	if f.sumErr != nil {
		return nil, f.sumErr
	}
	totals := make(map[entity.InventoryKey]int)
	var keys []entity.InventoryKey
	for _, m := range f.movements {
		if from != nil && m.OrderCreatedAt.Before(*from) {
			continue
		}
		k := m.Key()
		if _, seen := totals[k]; !seen {
			keys = append(keys, k)
		}
		totals[k] += m.QtyUsed
	}
	out := make([]entity.UsedAggregate, 0, len(keys))
	for _, k := range keys {
		out = append(out, entity.UsedAggregate{Key: k, QtyUsed: totals[k]})
	}
	return out, nil
}

func (f *fakeMovementRepo) DeleteWindow(cutoff time.Time) (int64, error) {
	var kept []*entity.Movement
	var n int64
	for _, m := range f.movements {
		if m.OrderCreatedAt.Before(cutoff) {
			kept = append(kept, m)
			continue
		}
		n++
	}
	f.movements = kept
	return n, nil
}

// sumFor devuelve el consumo acumulado de una clave (atajo de aserción).
func (f *fakeMovementRepo) sumFor(key entity.InventoryKey) int {
	total := 0
	for _, m := range f.movements {
		if m.Key() == key {
			total += m.QtyUsed
		}
	}
	return total
}

// ──────────────────────────────────────────────────────────────────────────────
// ProcessedOrderRepository
// ──────────────────────────────────────────────────────────────────────────────

type fakeProcessedRepo struct {
	orders    []*entity.ProcessedOrder
	createErr error
}

func newFakeProcessedRepo() *fakeProcessedRepo { return &fakeProcessedRepo{} }

func (f *fakeProcessedRepo) Create(po *entity.ProcessedOrder) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.orders {
		if existing.OrderID == po.OrderID {
			return domain.ErrDuplicate
		}
	}
	cp := *po
	f.orders = append(f.orders, &cp)
	return nil
}

func (f *fakeProcessedRepo) Exists(orderID string) (bool, error) {
	for _, po := range f.orders {
		if po.OrderID == orderID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeProcessedRepo) DeleteWindow(cutoff time.Time) (int64, error) {
	var kept []*entity.ProcessedOrder
	var n int64
	for _, po := range f.orders {
		if po.OrderCreatedAt.Before(cutoff) {
			kept = append(kept, po)
			continue
		}
		n++
	}
	f.orders = kept
	return n, nil
}

func (f *fakeProcessedRepo) List(limit, offset int) ([]*entity.ProcessedOrder, error) {
	sorted := make([]*entity.ProcessedOrder, len(f.orders))
	copy(sorted, f.orders)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].OrderCreatedAt.After(sorted[j].OrderCreatedAt)
	})
	if offset >= len(sorted) {
		return nil, nil
	}
	sorted = sorted[offset:]
	if limit < len(sorted) {
		sorted = sorted[:limit]
	}
	return sorted, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// TxRunner
// ──────────────────────────────────────────────────────────────────────────────

// fakeTxRunner emula la atomicidad de la transacción real: toma un snapshot
// del estado antes de fn y lo restaura si fn falla. failNextCommit fuerza el
// fallo de la próxima transacción después de ejecutar fn (commit roto).
type fakeTxRunner struct {
	proc           *fakeProcessedRepo
	mov            *fakeMovementRepo
	runs           int
	failNextCommit error
}

func newFakeTxRunner(proc *fakeProcessedRepo, mov *fakeMovementRepo) *fakeTxRunner {
	return &fakeTxRunner{proc: proc, mov: mov}
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(repository.ProcessedOrderRepository, repository.MovementRepository) error) error {
	f.runs++

	procSnap := make([]*entity.ProcessedOrder, len(f.proc.orders))
	copy(procSnap, f.proc.orders)
	movSnap := make([]*entity.Movement, len(f.mov.movements))
	copy(movSnap, f.mov.movements)

	err := fn(f.proc, f.mov)
	if err == nil && f.failNextCommit != nil {
		err = f.failNextCommit
		f.failNextCommit = nil
	}
	if err != nil {
		f.proc.orders = procSnap
		f.mov.movements = movSnap
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// SettingsRepository
// ──────────────────────────────────────────────────────────────────────────────

type fakeSettingsRepo struct {
	settings *entity.Settings
	getErr   error
}

func newFakeSettingsRepo() *fakeSettingsRepo { return &fakeSettingsRepo{} }

func (f *fakeSettingsRepo) Get() (*entity.Settings, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.settings, nil
}

func (f *fakeSettingsRepo) UpsertDefaultFrom(defaultFrom *time.Time) (*entity.Settings, error) {
	f.settings = &entity.Settings{ID: entity.SettingsID, DefaultFrom: defaultFrom, UpdatedAt: time.Now().UTC()}
	return f.settings, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// AlertLogRepository
// ──────────────────────────────────────────────────────────────────────────────

type fakeAlertLogRepo struct {
	rows      []*entity.EmailAlertLog
	existsErr error
	createErr error
}

func newFakeAlertLogRepo() *fakeAlertLogRepo { return &fakeAlertLogRepo{} }

func (f *fakeAlertLogRepo) Exists(kind string, forDate time.Time) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}
	for _, r := range f.rows {
		if r.Kind == kind && r.ForDate.Equal(forDate) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAlertLogRepo) Create(logRow *entity.EmailAlertLog) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, r := range f.rows {
		if r.Kind == logRow.Kind && r.ForDate.Equal(logRow.ForDate) {
			return domain.ErrDuplicate
		}
	}
	cp := *logRow
	f.rows = append(f.rows, &cp)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// TagCacheRepository
// ──────────────────────────────────────────────────────────────────────────────

type fakeTagCacheRepo struct {
	entries   map[string]*entity.TagCache
	getErr    error
	upsertErr error
}

func newFakeTagCacheRepo() *fakeTagCacheRepo {
	return &fakeTagCacheRepo{entries: make(map[string]*entity.TagCache)}
}

func (f *fakeTagCacheRepo) Get(productID string) (*entity.TagCache, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.entries[productID], nil
}

func (f *fakeTagCacheRepo) Upsert(c *entity.TagCache) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	cp := *c
	f.entries[c.ProductID] = &cp
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fuentes externas
// ──────────────────────────────────────────────────────────────────────────────

type fakeOrderSource struct {
	orders          []entity.SourceOrder
	err             error
	calls           int
	gotCreatedAtMin *time.Time
}

func (f *fakeOrderSource) FetchPaidOrders(_ context.Context, createdAtMin *time.Time) ([]entity.SourceOrder, error) {
	f.calls++
	f.gotCreatedAtMin = createdAtMin
	if f.err != nil {
		return nil, f.err
	}
	return f.orders, nil
}

type fakeTagSource struct {
	tags  map[string]string
	err   error
	calls int
}

func (f *fakeTagSource) FetchProductTags(_ context.Context, productID string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.tags[productID], nil
}

type sentMail struct {
	to      string
	subject string
	body    string
}

type fakeSink struct {
	sent []sentMail
	err  error
}

func (f *fakeSink) Send(_ context.Context, to, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}
