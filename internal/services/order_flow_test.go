package services_test

import (
	"testing"

	"cocobloom/internal/repos"
	"cocobloom/internal/services"
)

// Sign in, build a cart, place an attributed order.
func TestOrderFlow_LoginCartCheckout(t *testing.T) {
	db := memdb(t)

	cartRepo := repos.NewCartRepo(db)
	wishRepo := repos.NewWishlistRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	offerRepo := repos.NewOfferRepo(db)
	statsRepo := repos.NewAnalyticsRepo(db)

	auth := &services.AuthService{Users: repos.NewUserRepo(db)}
	reg := services.NewRegistry(cartRepo, wishRepo, auth)
	tracker := services.NewAnalyticsTracker(statsRepo)
	orders := services.NewOrderService(cartRepo, orderRepo, offerRepo, tracker)

	sid := "sid-flow"
	st := reg.For(sid)
	p := seededProduct(t, db, "p-gift-9")

	// anonymous adds abort
	if err := st.Cart.AddToCart(p); err != services.ErrSignInRequired {
		t.Fatalf("want ErrSignInRequired before login, got %v", err)
	}

	u, err := auth.Login(sid, "meera@cocobloom.test", "Passw0rd!")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	// login resynced the registry state; adds now persist
	if err := st.Cart.AddToCart(p); err != nil {
		t.Fatal(err)
	}
	if err := st.Cart.AddToCart(p); err != nil {
		t.Fatal(err)
	}

	oid, total, err := orders.Place(u, sid, services.Contact{Name: "Meera", Email: "meera@cocobloom.test"}, "of-trio")
	if err != nil {
		t.Fatal(err)
	}
	if oid == "" {
		t.Fatal("no order id")
	}
	if want := 2 * p.Price; total != want {
		t.Fatalf("want total %v, got %v", want, total)
	}

	o, items, err := orderRepo.Get(oid)
	if err != nil {
		t.Fatal(err)
	}
	if o.Status != "PLACED" || o.OfferID != "of-trio" || o.UserID != u.ID {
		t.Fatalf("bad order row: %+v", o)
	}
	if len(items) != 1 || items[0].Qty != 2 {
		t.Fatalf("bad order items: %+v", items)
	}

	// attributed order recorded a conversion with the order total as revenue
	s, err := statsRepo.ForDay("of-trio", today())
	if err != nil {
		t.Fatal(err)
	}
	if s.Conversions != 1 || s.Revenue != total {
		t.Fatalf("want 1 conversion with revenue %v, got %+v", total, s)
	}

	// checkout handler clears the manager after success
	st.Cart.ClearCart()
	rows, err := cartRepo.Lines(u.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 0 {
		t.Fatalf("cart rows should be cleared after checkout, got %+v", rows)
	}
}

func TestOrderPlaceGuards(t *testing.T) {
	db := memdb(t)

	cartRepo := repos.NewCartRepo(db)
	tracker := services.NewAnalyticsTracker(repos.NewAnalyticsRepo(db))
	orders := services.NewOrderService(cartRepo, repos.NewOrderRepo(db), repos.NewOfferRepo(db), tracker)

	if _, _, err := orders.Place(nil, "sid-x", services.Contact{}, ""); err != services.ErrSignInRequired {
		t.Fatalf("anonymous place should abort, got %v", err)
	}

	u := seededUser(t, db, "u-arjun")
	if _, _, err := orders.Place(u, "sid-x", services.Contact{Name: "A", Email: "a@b.c"}, ""); err == nil {
		t.Fatal("empty cart should fail")
	}
}

func TestOrderDropsUnknownOfferAttribution(t *testing.T) {
	db := memdb(t)

	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	statsRepo := repos.NewAnalyticsRepo(db)
	orders := services.NewOrderService(cartRepo, orderRepo, repos.NewOfferRepo(db), services.NewAnalyticsTracker(statsRepo))

	u := seededUser(t, db, "u-arjun")
	cart := services.NewCartManager(cartRepo, &noteSink{})
	cart.SetUser(u)
	if err := cart.AddToCart(seededProduct(t, db, "p-mango-milk")); err != nil {
		t.Fatal(err)
	}

	oid, _, err := orders.Place(u, "sid-y", services.Contact{Name: "A", Email: "a@b.c"}, "of-ghost")
	if err != nil {
		t.Fatal(err)
	}
	o, _, err := orderRepo.Get(oid)
	if err != nil {
		t.Fatal(err)
	}
	if o.OfferID != "" {
		t.Fatalf("unknown offer must not be attributed, got %q", o.OfferID)
	}
	if _, err := statsRepo.ForDay("of-ghost", today()); err == nil {
		t.Fatal("no conversion row should exist for an unknown offer")
	}
}
