// README: Quota tests (lazy monthly reset and the exhausted boundary).
package quota

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"fleetreport/internal/testutil"
)

func TestUseTokenCrossMonthReset(t *testing.T) {
	svc, db := setupTestService(t, 10)
	ctx := context.Background()

	if _, err := db.Exec(ctx, "INSERT INTO narrative_quota VALUES ('user_reset', 0, '2000-01')"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := svc.UseToken(ctx, "user_reset"); err != nil {
		t.Fatalf("UseToken after cross-month reset: %v", err)
	}
	if got := remaining(t, db, "user_reset"); got != 9 {
		t.Fatalf("expected 9 tokens remaining, got %d", got)
	}
}

func TestUseTokenInsufficient(t *testing.T) {
	svc, db := setupTestService(t, 10)
	ctx := context.Background()

	if _, err := db.Exec(ctx, "INSERT INTO narrative_quota (uid, tokens_remaining, last_reset_month) VALUES ('user_zero', 0, TO_CHAR(NOW(), 'YYYY-MM'))"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := svc.UseToken(ctx, "user_zero"); !errors.Is(err, ErrInsufficientTokens) {
		t.Fatalf("expected ErrInsufficientTokens, got %v", err)
	}
}

func TestUseTokenNewUser(t *testing.T) {
	svc, db := setupTestService(t, 3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := svc.UseToken(ctx, "user_new"); err != nil {
			t.Fatalf("UseToken #%d: %v", i+1, err)
		}
	}
	if got := remaining(t, db, "user_new"); got != 0 {
		t.Fatalf("expected 0 tokens remaining, got %d", got)
	}
	if err := svc.UseToken(ctx, "user_new"); !errors.Is(err, ErrInsufficientTokens) {
		t.Fatalf("expected ErrInsufficientTokens after allowance, got %v", err)
	}
}

func TestRemaining(t *testing.T) {
	svc, _ := setupTestService(t, 5)
	ctx := context.Background()

	if n, err := svc.Remaining(ctx, "nobody"); err != nil || n != 5 {
		t.Fatalf("Remaining(unknown) = %d, %v; want 5", n, err)
	}
	if err := svc.UseToken(ctx, "someone"); err != nil {
		t.Fatal(err)
	}
	if n, err := svc.Remaining(ctx, "someone"); err != nil || n != 4 {
		t.Fatalf("Remaining = %d, %v; want 4", n, err)
	}
}

type fakeStore struct {
	rows   map[string]int
	ensure int
}

func (f *fakeStore) UseToken(_ context.Context, uid string) error {
	n, ok := f.rows[uid]
	if !ok || n == 0 {
		return ErrInsufficientTokens
	}
	f.rows[uid] = n - 1
	return nil
}

func (f *fakeStore) EnsureUser(_ context.Context, uid string) error {
	f.ensure++
	if _, ok := f.rows[uid]; !ok {
		f.rows[uid] = 2
	}
	return nil
}

func (f *fakeStore) Remaining(_ context.Context, uid string) (int, error) {
	return f.rows[uid], nil
}

func TestServiceInitialisesMissingCaller(t *testing.T) {
	store := &fakeStore{rows: map[string]int{}}
	svc := &Service{store: store}
	ctx := context.Background()

	if err := svc.UseToken(ctx, "a"); err != nil {
		t.Fatalf("first use: %v", err)
	}
	if err := svc.UseToken(ctx, "a"); err != nil {
		t.Fatalf("second use: %v", err)
	}
	if err := svc.UseToken(ctx, "a"); !errors.Is(err, ErrInsufficientTokens) {
		t.Fatalf("expected ErrInsufficientTokens, got %v", err)
	}
	if store.ensure != 2 {
		t.Errorf("EnsureUser calls = %d, want 2", store.ensure)
	}
}

func TestStoreDefaultsAllowance(t *testing.T) {
	if s := NewStore(nil, 0); s.monthly != DefaultMonthlyTokens {
		t.Errorf("monthly = %d, want %d", s.monthly, DefaultMonthlyTokens)
	}
	if s := NewStore(nil, 7); s.monthly != 7 {
		t.Errorf("monthly = %d, want 7", s.monthly)
	}
}

func setupTestService(t *testing.T, monthly int) (*Service, *pgxpool.Pool) {
	t.Helper()
	db := testutil.Postgres(t, "narrative_quota")
	return NewService(NewStore(db, monthly)), db
}

func remaining(t *testing.T, db *pgxpool.Pool, uid string) int {
	t.Helper()
	var n int
	if err := db.QueryRow(context.Background(), "SELECT tokens_remaining FROM narrative_quota WHERE uid = $1", uid).Scan(&n); err != nil {
		t.Fatalf("query: %v", err)
	}
	return n
}
