package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/fintrackhq/fintrack-backend/internal/models"
)

var errInjected = errors.New("injected failure")

// fakeStore backs the repository interfaces with maps. fakeRunner snapshots
// the maps before the critical section and restores them when it fails, so
// rollback behavior is observable in tests.
type fakeStore struct {
	mu        sync.Mutex
	users     map[string]models.User
	tokens    map[string]models.RefreshToken
	entries   map[models.EntryKind]map[string]models.Entry
	mirrors   map[string]models.TransactionRecord
	summaries map[string]models.FinancialSummary
	audits    []models.AuditLog

	failSummary bool // next ApplySummary returns an error
	failTokens  bool // next token Create returns an error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:  map[string]models.User{},
		tokens: map[string]models.RefreshToken{},
		entries: map[models.EntryKind]map[string]models.Entry{
			models.KindIncome:  {},
			models.KindExpense: {},
		},
		mirrors:   map[string]models.TransactionRecord{},
		summaries: map[string]models.FinancialSummary{},
	}
}

type fakeRunner struct{ store *fakeStore }

func (r *fakeRunner) WithTx(ctx context.Context, fn func(pgx.Tx) error) error {
	r.store.mu.Lock()
	snap := r.store.snapshot()
	r.store.mu.Unlock()

	if err := fn(nil); err != nil {
		r.store.mu.Lock()
		r.store.restore(snap)
		r.store.mu.Unlock()
		return err
	}
	return nil
}

type storeSnapshot struct {
	users     map[string]models.User
	tokens    map[string]models.RefreshToken
	income    map[string]models.Entry
	expense   map[string]models.Entry
	mirrors   map[string]models.TransactionRecord
	summaries map[string]models.FinancialSummary
}

func copyMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *fakeStore) snapshot() storeSnapshot {
	return storeSnapshot{
		users:     copyMap(s.users),
		tokens:    copyMap(s.tokens),
		income:    copyMap(s.entries[models.KindIncome]),
		expense:   copyMap(s.entries[models.KindExpense]),
		mirrors:   copyMap(s.mirrors),
		summaries: copyMap(s.summaries),
	}
}

func (s *fakeStore) restore(snap storeSnapshot) {
	s.users = snap.users
	s.tokens = snap.tokens
	s.entries[models.KindIncome] = snap.income
	s.entries[models.KindExpense] = snap.expense
	s.mirrors = snap.mirrors
	s.summaries = snap.summaries
}

// ---- repo.Users ----

func (s *fakeStore) Create(ctx context.Context, tx pgx.Tx, name, email, hash string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := models.User{ID: uuid.NewString(), Name: name, Email: email, PasswordHash: hash, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	s.users[u.ID] = u
	return u, nil
}

func (s *fakeStore) GetByID(ctx context.Context, id string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return models.User{}, pgx.ErrNoRows
}

func (s *fakeStore) GetByEmail(ctx context.Context, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, pgx.ErrNoRows
}

func (s *fakeStore) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := s.GetByEmail(ctx, email)
	return err == nil, nil
}

func (s *fakeStore) Update(ctx context.Context, u models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.users[u.ID]
	if !ok {
		return models.User{}, pgx.ErrNoRows
	}
	existing.Name, existing.Email, existing.UpdatedAt = u.Name, u.Email, time.Now()
	s.users[u.ID] = existing
	return existing, nil
}

// ---- repo.RefreshTokens ----

type fakeTokens struct{ store *fakeStore }

func (f *fakeTokens) Create(ctx context.Context, tx pgx.Tx, userID, token string, expiresAt time.Time) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	if f.store.failTokens {
		return errInjected
	}
	f.store.tokens[token] = models.RefreshToken{ID: uuid.NewString(), UserID: userID, Token: token, ExpiresAt: expiresAt, CreatedAt: time.Now()}
	return nil
}

func (f *fakeTokens) FindValid(ctx context.Context, token string, notBefore time.Time) (models.RefreshToken, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	if t, ok := f.store.tokens[token]; ok && t.ExpiresAt.After(notBefore) {
		return t, nil
	}
	return models.RefreshToken{}, pgx.ErrNoRows
}

func (f *fakeTokens) Revoke(ctx context.Context, token string, at time.Time) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	if t, ok := f.store.tokens[token]; ok && t.ExpiresAt.After(at) {
		t.ExpiresAt = at
		f.store.tokens[token] = t
	}
	return nil
}

func (f *fakeTokens) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	var n int64
	for k, t := range f.store.tokens {
		if t.ExpiresAt.Before(before) {
			delete(f.store.tokens, k)
			n++
		}
	}
	return n, nil
}

// ---- repo.Ledger ----

type fakeLedger struct{ store *fakeStore }

func mirrorKey(kind models.EntryKind, entryID string) string { return string(kind) + ":" + entryID }

func (f *fakeLedger) InsertEntry(ctx context.Context, tx pgx.Tx, kind models.EntryKind, e models.Entry) (models.Entry, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now()
	}
	e.CreatedAt, e.UpdatedAt = time.Now(), time.Now()
	f.store.entries[kind][e.ID] = e
	return e, nil
}

func (f *fakeLedger) GetEntryForUpdate(ctx context.Context, tx pgx.Tx, kind models.EntryKind, id string) (models.Entry, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	if e, ok := f.store.entries[kind][id]; ok {
		return e, nil
	}
	return models.Entry{}, pgx.ErrNoRows
}

func (f *fakeLedger) UpdateEntry(ctx context.Context, tx pgx.Tx, kind models.EntryKind, e models.Entry) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	if _, ok := f.store.entries[kind][e.ID]; !ok {
		return pgx.ErrNoRows
	}
	e.UpdatedAt = time.Now()
	f.store.entries[kind][e.ID] = e
	return nil
}

func (f *fakeLedger) DeleteEntry(ctx context.Context, tx pgx.Tx, kind models.EntryKind, id string) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	if _, ok := f.store.entries[kind][id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.store.entries[kind], id)
	return nil
}

func (f *fakeLedger) ListEntries(ctx context.Context, kind models.EntryKind, userID string, limit, offset int) ([]models.Entry, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	var out []models.Entry
	for _, e := range f.store.entries[kind] {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeLedger) InsertMirror(ctx context.Context, tx pgx.Tx, rec models.TransactionRecord) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	entryID := ""
	if rec.IncomeID != nil {
		entryID = *rec.IncomeID
	} else if rec.ExpenseID != nil {
		entryID = *rec.ExpenseID
	}
	f.store.mirrors[mirrorKey(rec.Type, entryID)] = rec
	return nil
}

func (f *fakeLedger) UpdateMirror(ctx context.Context, tx pgx.Tx, kind models.EntryKind, e models.Entry) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	key := mirrorKey(kind, e.ID)
	if rec, ok := f.store.mirrors[key]; ok {
		rec.Amount, rec.Description, rec.Category = e.Amount, e.Description, e.Category
		f.store.mirrors[key] = rec
	}
	return nil
}

func (f *fakeLedger) DeleteMirror(ctx context.Context, tx pgx.Tx, kind models.EntryKind, entryID string) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	delete(f.store.mirrors, mirrorKey(kind, entryID))
	return nil
}

func (f *fakeLedger) ApplySummary(ctx context.Context, tx pgx.Tx, userID string, kind models.EntryKind, delta decimal.Decimal, seenAt *time.Time) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	if f.store.failSummary {
		return errInjected
	}
	sum := f.store.summaries[userID]
	sum.UserID = userID
	if kind == models.KindIncome {
		sum.CurrentBalance = sum.CurrentBalance.Add(delta)
		sum.TotalIncome = sum.TotalIncome.Add(delta)
		if seenAt != nil {
			sum.LastIncomeDate = seenAt
		}
	} else {
		sum.CurrentBalance = sum.CurrentBalance.Sub(delta)
		sum.TotalExpenses = sum.TotalExpenses.Add(delta)
		if seenAt != nil {
			sum.LastExpenseDate = seenAt
		}
	}
	sum.UpdatedAt = time.Now()
	f.store.summaries[userID] = sum
	return nil
}

func (f *fakeLedger) InitSummary(ctx context.Context, tx pgx.Tx, userID string) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	if _, ok := f.store.summaries[userID]; !ok {
		f.store.summaries[userID] = models.FinancialSummary{UserID: userID, UpdatedAt: time.Now()}
	}
	return nil
}

func (f *fakeLedger) GetSummary(ctx context.Context, userID string) (models.FinancialSummary, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	if sum, ok := f.store.summaries[userID]; ok {
		return sum, nil
	}
	return models.FinancialSummary{}, pgx.ErrNoRows
}

func (f *fakeLedger) ListHistory(ctx context.Context, userID string, limit, offset int) ([]models.TransactionRecord, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	var out []models.TransactionRecord
	for _, rec := range f.store.mirrors {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	return out, nil
}

// ---- repo.AuditLogs ----

type fakeAudit struct{ store *fakeStore }

func (f *fakeAudit) Create(ctx context.Context, l models.AuditLog) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	f.store.audits = append(f.store.audits, l)
	return nil
}
