package services_test

import (
	"testing"

	"cocobloom/internal/repos"
	"cocobloom/internal/services"
)

func TestWishlistToggleRequiresSignIn(t *testing.T) {
	db := memdb(t)
	sink := &noteSink{}
	wl := services.NewWishlistManager(repos.NewWishlistRepo(db), sink)

	member, err := wl.Toggle("p-mango-milk")
	if err != services.ErrSignInRequired {
		t.Fatalf("want ErrSignInRequired, got %v", err)
	}
	if member || wl.Len() != 0 {
		t.Fatalf("anonymous toggle must not change membership")
	}
	if !sink.hasMessage("sign in") {
		t.Fatalf("expected sign-in notice, got %+v", sink.notes)
	}
}

func TestWishlistToggleRoundTrip(t *testing.T) {
	db := memdb(t)
	wlRepo := repos.NewWishlistRepo(db)
	wl := services.NewWishlistManager(wlRepo, &noteSink{})
	u := seededUser(t, db, "u-arjun")
	wl.SetUser(u)

	member, err := wl.Toggle("p-dark-70")
	if err != nil {
		t.Fatal(err)
	}
	if !member || !wl.IsIn("p-dark-70") {
		t.Fatal("first toggle should add")
	}
	ids, err := wlRepo.ProductIDs(u.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 1 || ids[0] != "p-dark-70" {
		t.Fatalf("store out of sync: %+v", ids)
	}

	member, err = wl.Toggle("p-dark-70")
	if err != nil {
		t.Fatal(err)
	}
	if member || wl.IsIn("p-dark-70") {
		t.Fatal("second toggle should remove")
	}
	ids, err = wlRepo.ProductIDs(u.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 0 {
		t.Fatalf("store row should be gone: %+v", ids)
	}
}

func TestWishlistIdentitySwap(t *testing.T) {
	db := memdb(t)
	wlRepo := repos.NewWishlistRepo(db)
	wl := services.NewWishlistManager(wlRepo, &noteSink{})

	meera := seededUser(t, db, "u-meera")
	arjun := seededUser(t, db, "u-arjun")

	wl.SetUser(meera)
	if _, err := wl.Toggle("p-hazel-white"); err != nil {
		t.Fatal(err)
	}

	// another identity sees its own (empty) list, not the previous user's
	wl.SetUser(arjun)
	if wl.Len() != 0 {
		t.Fatalf("identity swap leaked membership: %d", wl.Len())
	}

	wl.SetUser(meera)
	if !wl.IsIn("p-hazel-white") {
		t.Fatal("signing back in should reload membership from the store")
	}
}
