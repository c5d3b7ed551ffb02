// Package memstore implementa los repositorios en memoria para tests de casos de uso y handlers.
// Las transacciones se serializan y un error en fn restaura el estado previo completo.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/dental-inventory-api/internal/domain"
	"github.com/jhoicas/dental-inventory-api/internal/domain/entity"
	"github.com/jhoicas/dental-inventory-api/internal/domain/repository"
)

type stockKey struct{ clinicID, materialID string }

type state struct {
	users     map[string]entity.User
	clinics   map[string]entity.Clinic
	materials map[string]entity.Material
	stocks    map[stockKey]entity.ClinicStock
	movements []entity.StockMovement
	txs       map[string]entity.FinancialTransaction
}

func newState() state {
	return state{
		users:     map[string]entity.User{},
		clinics:   map[string]entity.Clinic{},
		materials: map[string]entity.Material{},
		stocks:    map[stockKey]entity.ClinicStock{},
		txs:       map[string]entity.FinancialTransaction{},
	}
}

func (s state) clone() state {
	c := newState()
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.clinics {
		c.clinics[k] = v
	}
	for k, v := range s.materials {
		c.materials[k] = v
	}
	for k, v := range s.stocks {
		c.stocks[k] = v
	}
	c.movements = append([]entity.StockMovement(nil), s.movements...)
	for k, v := range s.txs {
		c.txs[k] = v
	}
	return c
}

// Store base de datos en memoria.
type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex
	st   state

	// FailMovementCreate, si no es nil, lo devuelve el siguiente Create de movimiento (y se limpia).
	FailMovementCreate error
}

// New crea un store vacío.
func New() *Store {
	return &Store{st: newState()}
}

func (s *Store) Users() *UserRepo               { return &UserRepo{s} }
func (s *Store) Clinics() *ClinicRepo           { return &ClinicRepo{s} }
func (s *Store) Materials() *MaterialRepo       { return &MaterialRepo{s} }
func (s *Store) Stocks() *StockRepo             { return &StockRepo{s} }
func (s *Store) Movements() *MovementRepo       { return &MovementRepo{s} }
func (s *Store) Transactions() *TransactionRepo { return &TransactionRepo{s} }
func (s *Store) TxRunner() *TxRunner            { return &TxRunner{s} }

// MovementCount total de movimientos registrados.
func (s *Store) MovementCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.st.movements)
}

// TxRunner ejecuta fn con los repos del store; si fn falla restaura el estado anterior.
type TxRunner struct{ s *Store }

// Run serializa las transacciones.
func (r *TxRunner) Run(ctx context.Context, fn func(
	materialRepo repository.MaterialRepository,
	stockRepo repository.ClinicStockRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()

	r.s.mu.Lock()
	snapshot := r.s.st.clone()
	r.s.mu.Unlock()

	if err := fn(r.s.Materials(), r.s.Stocks(), r.s.Movements()); err != nil {
		r.s.mu.Lock()
		r.s.st = snapshot
		r.s.mu.Unlock()
		return err
	}
	return nil
}

// ─── Usuarios ────────────────────────────────────────────────────────────────

// UserRepo implementa repository.UserRepository.
type UserRepo struct{ s *Store }

var _ repository.UserRepository = (*UserRepo)(nil)

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.st.users {
		if x.UserName == u.UserName {
			return domain.ErrUserNameExists
		}
	}
	r.s.st.users[u.ID] = *u
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.st.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *UserRepo) GetByUserName(_ context.Context, userName string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.st.users {
		if u.UserName == userName {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) List(_ context.Context) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.User, 0, len(r.s.st.users))
	for _, u := range r.s.st.users {
		u := u
		out = append(out, &u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserName < out[j].UserName })
	return out, nil
}

// ─── Clínicas ────────────────────────────────────────────────────────────────

// ClinicRepo implementa repository.ClinicRepository.
type ClinicRepo struct{ s *Store }

var _ repository.ClinicRepository = (*ClinicRepo)(nil)

func (r *ClinicRepo) Create(_ context.Context, c *entity.Clinic) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.st.clinics[c.ID] = *c
	return nil
}

func (r *ClinicRepo) GetByID(_ context.Context, id string) (*entity.Clinic, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.st.clinics[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (r *ClinicRepo) Update(_ context.Context, c *entity.Clinic) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.clinics[c.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.st.clinics[c.ID] = *c
	return nil
}

func (r *ClinicRepo) List(_ context.Context) ([]*entity.Clinic, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Clinic, 0, len(r.s.st.clinics))
	for _, c := range r.s.st.clinics {
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *ClinicRepo) ListSummaries(_ context.Context) ([]repository.ClinicSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]repository.ClinicSummary, 0, len(r.s.st.clinics))
	for _, c := range r.s.st.clinics {
		sum := repository.ClinicSummary{ClinicID: c.ID, ClinicName: c.Name}
		for k, st := range r.s.st.stocks {
			if k.clinicID != c.ID {
				continue
			}
			if st.QuantityAvailable > 0 {
				sum.DistinctMaterials++
			}
			sum.TotalQuantity += st.QuantityAvailable
		}
		out = append(out, sum)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ClinicName < out[j].ClinicName })
	return out, nil
}

// Delete elimina en cascada stock, movimientos y transacciones de la clínica.
func (r *ClinicRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.clinics[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.st.clinics, id)
	for k := range r.s.st.stocks {
		if k.clinicID == id {
			delete(r.s.st.stocks, k)
		}
	}
	kept := r.s.st.movements[:0]
	for _, m := range r.s.st.movements {
		if m.ClinicID == nil || *m.ClinicID != id {
			kept = append(kept, m)
		}
	}
	r.s.st.movements = kept
	for k, t := range r.s.st.txs {
		if t.ClinicID == id {
			delete(r.s.st.txs, k)
		}
	}
	return nil
}

// ─── Materiales ──────────────────────────────────────────────────────────────

// MaterialRepo implementa repository.MaterialRepository.
type MaterialRepo struct{ s *Store }

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

func (r *MaterialRepo) dupLocked(m *entity.Material) bool {
	for _, x := range r.s.st.materials {
		if x.ID != m.ID && x.SameIdentity(m.Name, m.Category) {
			return true
		}
	}
	return false
}

func (r *MaterialRepo) Create(_ context.Context, m *entity.Material) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.dupLocked(m) {
		return domain.ErrDuplicate
	}
	r.s.st.materials[m.ID] = *m
	return nil
}

func (r *MaterialRepo) GetByID(_ context.Context, id string) (*entity.Material, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if m, ok := r.s.st.materials[id]; ok {
		return &m, nil
	}
	return nil, nil
}

func (r *MaterialRepo) GetForUpdate(ctx context.Context, id string) (*entity.Material, error) {
	return r.GetByID(ctx, id)
}

func (r *MaterialRepo) FindByNameAndCategory(_ context.Context, name string, category entity.MaterialCategory) (*entity.Material, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.st.materials {
		if m.SameIdentity(name, category) {
			m := m
			return &m, nil
		}
	}
	return nil, nil
}

func (r *MaterialRepo) Update(_ context.Context, m *entity.Material) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.materials[m.ID]; !ok {
		return domain.ErrNotFound
	}
	if r.dupLocked(m) {
		return domain.ErrDuplicate
	}
	r.s.st.materials[m.ID] = *m
	return nil
}

func (r *MaterialRepo) List(_ context.Context) ([]*entity.Material, error) {
	return r.filter(func(entity.Material) bool { return true }), nil
}

func (r *MaterialRepo) ListByCategory(_ context.Context, category entity.MaterialCategory) ([]*entity.Material, error) {
	return r.filter(func(m entity.Material) bool { return m.Category == category }), nil
}

func (r *MaterialRepo) filter(keep func(entity.Material) bool) []*entity.Material {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Material
	for _, m := range r.s.st.materials {
		if keep(m) {
			m := m
			out = append(out, &m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].Category < out[j].Category
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func (r *MaterialRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.materials[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.st.materials, id)
	for k := range r.s.st.stocks {
		if k.materialID == id {
			delete(r.s.st.stocks, k)
		}
	}
	kept := r.s.st.movements[:0]
	for _, m := range r.s.st.movements {
		if m.MaterialID != id {
			kept = append(kept, m)
		}
	}
	r.s.st.movements = kept
	return nil
}

// ─── Stock por clínica ───────────────────────────────────────────────────────

// StockRepo implementa repository.ClinicStockRepository.
type StockRepo struct{ s *Store }

var _ repository.ClinicStockRepository = (*StockRepo)(nil)

func (r *StockRepo) Get(_ context.Context, clinicID, materialID string) (*entity.ClinicStock, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if st, ok := r.s.st.stocks[stockKey{clinicID, materialID}]; ok {
		return &st, nil
	}
	return nil, nil
}

func (r *StockRepo) GetForUpdate(ctx context.Context, clinicID, materialID string) (*entity.ClinicStock, error) {
	return r.Get(ctx, clinicID, materialID)
}

func (r *StockRepo) Upsert(_ context.Context, st *entity.ClinicStock) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.clinics[st.ClinicID]; !ok {
		return domain.ErrNotFound
	}
	if _, ok := r.s.st.materials[st.MaterialID]; !ok {
		return domain.ErrNotFound
	}
	r.s.st.stocks[stockKey{st.ClinicID, st.MaterialID}] = *st
	return nil
}

func (r *StockRepo) ListByClinic(_ context.Context, clinicID string) ([]repository.ClinicStockView, error) {
	return r.views(func(k stockKey) bool { return k.clinicID == clinicID }), nil
}

func (r *StockRepo) ListAll(_ context.Context) ([]repository.ClinicStockView, error) {
	return r.views(func(stockKey) bool { return true }), nil
}

func (r *StockRepo) views(keep func(stockKey) bool) []repository.ClinicStockView {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []repository.ClinicStockView
	for k, st := range r.s.st.stocks {
		if !keep(k) {
			continue
		}
		m := r.s.st.materials[k.materialID]
		out = append(out, repository.ClinicStockView{
			ClinicID:          k.clinicID,
			ClinicName:        r.s.st.clinics[k.clinicID].Name,
			MaterialID:        k.materialID,
			MaterialName:      m.Name,
			Category:          m.Category,
			QuantityAvailable: st.QuantityAvailable,
			IsOpen:            st.IsOpen,
			OpenedAt:          st.OpenedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MaterialName == out[j].MaterialName {
			return out[i].ClinicName < out[j].ClinicName
		}
		return out[i].MaterialName < out[j].MaterialName
	})
	return out
}

// ─── Movimientos ─────────────────────────────────────────────────────────────

// MovementRepo implementa repository.StockMovementRepository.
type MovementRepo struct{ s *Store }

var _ repository.StockMovementRepository = (*MovementRepo)(nil)

func (r *MovementRepo) Create(_ context.Context, mv *entity.StockMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.FailMovementCreate; err != nil {
		r.s.FailMovementCreate = nil
		return err
	}
	if mv.ClinicID != nil {
		if _, ok := r.s.st.clinics[*mv.ClinicID]; !ok {
			return domain.ErrNotFound
		}
	}
	if _, ok := r.s.st.materials[mv.MaterialID]; !ok {
		return domain.ErrNotFound
	}
	r.s.st.movements = append(r.s.st.movements, *mv)
	return nil
}

func (r *MovementRepo) view(mv entity.StockMovement) repository.StockMovementView {
	m := r.s.st.materials[mv.MaterialID]
	return repository.StockMovementView{
		StockMovement:    mv,
		MaterialName:     m.Name,
		MaterialCategory: m.Category,
		MaterialCost:     m.Cost,
		PerformedByName:  r.s.st.users[mv.PerformedBy].UserName,
	}
}

func (r *MovementRepo) GetByID(_ context.Context, id string) (*repository.StockMovementView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, mv := range r.s.st.movements {
		if mv.ID == id {
			v := r.view(mv)
			return &v, nil
		}
	}
	return nil, nil
}

func (r *MovementRepo) ListByClinic(_ context.Context, clinicID string, limit, offset int) ([]repository.StockMovementView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []repository.StockMovementView
	// recorrido inverso: a igual created_at queda primero el último insertado
	for i := len(r.s.st.movements) - 1; i >= 0; i-- {
		mv := r.s.st.movements[i]
		if mv.ClinicID != nil && *mv.ClinicID == clinicID {
			out = append(out, r.view(mv))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *MovementRepo) ListInRange(_ context.Context, f repository.MovementFilter) ([]repository.StockMovementView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []repository.StockMovementView
	for _, mv := range r.s.st.movements {
		if mv.CreatedAt.Before(f.From) || mv.CreatedAt.After(f.To) {
			continue
		}
		if f.ClinicID != nil && (mv.ClinicID == nil || *mv.ClinicID != *f.ClinicID) {
			continue
		}
		if len(f.Kinds) > 0 && !hasKind(f.Kinds, mv.Kind) {
			continue
		}
		out = append(out, r.view(mv))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func hasKind(kinds []entity.MovementKind, k entity.MovementKind) bool {
	for _, x := range kinds {
		if x == k {
			return true
		}
	}
	return false
}

func (r *MovementRepo) DeleteByClinic(_ context.Context, clinicID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	kept := r.s.st.movements[:0]
	for _, mv := range r.s.st.movements {
		if mv.ClinicID != nil && *mv.ClinicID == clinicID {
			n++
			continue
		}
		kept = append(kept, mv)
	}
	r.s.st.movements = kept
	return n, nil
}

// ─── Transacciones financieras ───────────────────────────────────────────────

// TransactionRepo implementa repository.FinancialTransactionRepository.
type TransactionRepo struct{ s *Store }

var _ repository.FinancialTransactionRepository = (*TransactionRepo)(nil)

func (r *TransactionRepo) Create(_ context.Context, t *entity.FinancialTransaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.clinics[t.ClinicID]; !ok {
		return domain.ErrNotFound
	}
	c := *t
	c.TransactionDate = entity.DateOnly(c.TransactionDate)
	r.s.st.txs[t.ID] = c
	return nil
}

func (r *TransactionRepo) view(t entity.FinancialTransaction) repository.FinancialTransactionView {
	return repository.FinancialTransactionView{
		FinancialTransaction: t,
		ClinicName:           r.s.st.clinics[t.ClinicID].Name,
		CreatedByName:        r.s.st.users[t.CreatedBy].UserName,
	}
}

func (r *TransactionRepo) GetByID(_ context.Context, id string) (*repository.FinancialTransactionView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.st.txs[id]
	if !ok {
		return nil, nil
	}
	v := r.view(t)
	return &v, nil
}

func (r *TransactionRepo) List(_ context.Context, f repository.TransactionFilter) ([]repository.FinancialTransactionView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []repository.FinancialTransactionView
	for _, t := range r.s.st.txs {
		if f.ClinicID != nil && t.ClinicID != *f.ClinicID {
			continue
		}
		if f.From != nil && t.TransactionDate.Before(entity.DateOnly(*f.From)) {
			continue
		}
		if f.To != nil && t.TransactionDate.After(entity.DateOnly(*f.To)) {
			continue
		}
		out = append(out, r.view(t))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].TransactionDate.Equal(out[j].TransactionDate) {
			return out[i].TransactionDate.After(out[j].TransactionDate)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *TransactionRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.txs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.st.txs, id)
	return nil
}
