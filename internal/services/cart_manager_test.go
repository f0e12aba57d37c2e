package services_test

import (
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"cocobloom/internal/domain"
	"cocobloom/internal/repos"
	"cocobloom/internal/services"
)

// memdb opens a seeded in-memory store shared by the service tests.
func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// noteSink collects notices the managers emit.
type noteSink struct {
	notes []services.Notice
}

func (s *noteSink) Notify(level, message string) {
	s.notes = append(s.notes, services.Notice{Level: level, Message: message})
}

func (s *noteSink) hasMessage(substr string) bool {
	for _, n := range s.notes {
		if strings.Contains(n.Message, substr) {
			return true
		}
	}
	return false
}

func seededUser(t *testing.T, db *sqlx.DB, id string) *domain.User {
	t.Helper()
	u, err := repos.NewUserRepo(db).ByID(id)
	if err != nil {
		t.Fatalf("load user %s: %v", id, err)
	}
	return u
}

func seededProduct(t *testing.T, db *sqlx.DB, id string) domain.Product {
	t.Helper()
	p, err := repos.NewProductRepo(db).Get(id)
	if err != nil {
		t.Fatalf("load product %s: %v", id, err)
	}
	return p
}

func TestCartAddRequiresSignIn(t *testing.T) {
	db := memdb(t)
	sink := &noteSink{}
	cart := services.NewCartManager(repos.NewCartRepo(db), sink)

	err := cart.AddToCart(seededProduct(t, db, "p-mango-milk"))
	if err != services.ErrSignInRequired {
		t.Fatalf("want ErrSignInRequired, got %v", err)
	}
	if len(cart.Lines()) != 0 {
		t.Fatalf("anonymous add must not create a line: %+v", cart.Lines())
	}
	if !sink.hasMessage("sign in") {
		t.Fatalf("expected sign-in notice, got %+v", sink.notes)
	}
}

func TestCartAddAndIncrement(t *testing.T) {
	db := memdb(t)
	cartRepo := repos.NewCartRepo(db)
	sink := &noteSink{}
	cart := services.NewCartManager(cartRepo, sink)
	u := seededUser(t, db, "u-meera")
	cart.SetUser(u)
	p := seededProduct(t, db, "p-mango-milk")

	if err := cart.AddToCart(p); err != nil {
		t.Fatal(err)
	}
	if err := cart.AddToCart(p); err != nil {
		t.Fatal(err)
	}

	lines := cart.Lines()
	if len(lines) != 1 || lines[0].Quantity != 2 {
		t.Fatalf("want one line with qty 2, got %+v", lines)
	}
	if cart.TotalItems() != 2 {
		t.Fatalf("want 2 items, got %d", cart.TotalItems())
	}
	if got, want := cart.TotalPrice(), 2*p.Price; got != want {
		t.Fatalf("want total %v, got %v", want, got)
	}

	// mirrored to the store
	rows, err := cartRepo.Lines(u.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0].Quantity != 2 {
		t.Fatalf("store rows out of sync: %+v", rows)
	}
	if !sink.hasMessage("Increased") {
		t.Fatalf("expected increment notice, got %+v", sink.notes)
	}
}

func TestCartRemoveIsIdempotent(t *testing.T) {
	db := memdb(t)
	cart := services.NewCartManager(repos.NewCartRepo(db), &noteSink{})
	cart.SetUser(seededUser(t, db, "u-meera"))
	p := seededProduct(t, db, "p-dark-70")

	cart.RemoveFromCart(p.ID) // absent, no-op
	if err := cart.AddToCart(p); err != nil {
		t.Fatal(err)
	}
	cart.RemoveFromCart(p.ID)
	cart.RemoveFromCart(p.ID)
	if len(cart.Lines()) != 0 {
		t.Fatalf("line should be gone, got %+v", cart.Lines())
	}
}

func TestCartQuantityZeroRemovesLine(t *testing.T) {
	db := memdb(t)
	cartRepo := repos.NewCartRepo(db)
	cart := services.NewCartManager(cartRepo, &noteSink{})
	u := seededUser(t, db, "u-meera")
	cart.SetUser(u)
	p := seededProduct(t, db, "p-sea-salt")

	if err := cart.AddToCart(p); err != nil {
		t.Fatal(err)
	}
	cart.UpdateQuantity(p.ID, 5)
	if cart.TotalItems() != 5 {
		t.Fatalf("want 5 items, got %d", cart.TotalItems())
	}
	cart.UpdateQuantity(p.ID, 0)
	if len(cart.Lines()) != 0 {
		t.Fatalf("qty 0 must remove the line, got %+v", cart.Lines())
	}
	rows, err := cartRepo.Lines(u.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 0 {
		t.Fatalf("store row should be deleted, got %+v", rows)
	}
}

func TestCartSignOutClearsLocalKeepsRemote(t *testing.T) {
	db := memdb(t)
	cartRepo := repos.NewCartRepo(db)
	cart := services.NewCartManager(cartRepo, &noteSink{})
	u := seededUser(t, db, "u-meera")
	cart.SetUser(u)
	p := seededProduct(t, db, "p-gift-9")

	if err := cart.AddToCart(p); err != nil {
		t.Fatal(err)
	}

	cart.SetUser(nil)
	if len(cart.Lines()) != 0 {
		t.Fatalf("sign-out must clear local lines, got %+v", cart.Lines())
	}
	rows, err := cartRepo.Lines(u.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("stored rows must survive sign-out, got %+v", rows)
	}

	// signing back in restores from the store
	cart.SetUser(u)
	lines := cart.Lines()
	if len(lines) != 1 || lines[0].ProductID != p.ID {
		t.Fatalf("sign-in should refetch lines, got %+v", lines)
	}
}
