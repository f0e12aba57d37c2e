package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed baseline data if DB is empty (categories/products/offers/sections)
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	// Ensure users exist (idempotent; safe to run every start)
	if err := seedUsers(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Categories
CREATE TABLE IF NOT EXISTS categories(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_name_nocase ON categories(LOWER(name));

-- Products
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  category_id TEXT NOT NULL REFERENCES categories(id) ON DELETE RESTRICT,
  name TEXT NOT NULL,
  description TEXT,
  price NUMERIC NOT NULL CHECK (price >= 0),
  image TEXT,
  active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_products_category   ON products(category_id);
CREATE INDEX IF NOT EXISTS idx_products_name       ON products(LOWER(name));
CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at);

-- Offers (combo / festival promotions)
CREATE TABLE IF NOT EXISTS offers(
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  description TEXT,
  kind TEXT NOT NULL CHECK (kind IN ('combo','festival')),
  price NUMERIC NOT NULL CHECK (price >= 0),
  image TEXT,
  active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);

-- Cart lines, one per (user, product)
CREATE TABLE IF NOT EXISTS cart_items(
  user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE RESTRICT,
  name TEXT NOT NULL,
  unit_price NUMERIC NOT NULL,
  qty INTEGER NOT NULL CHECK (qty >= 1),
  image TEXT,
  category TEXT,
  created_at TEXT,
  updated_at TEXT,
  PRIMARY KEY (user_id, product_id)
);

-- Wishlist membership, one row per (user, product)
CREATE TABLE IF NOT EXISTS wishlist_items(
  user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE RESTRICT,
  created_at TEXT,
  PRIMARY KEY (user_id, product_id)
);

-- Reviews, one per (product, user)
CREATE TABLE IF NOT EXISTS reviews(
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
  comment TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_reviews_product_user ON reviews(product_id, user_id);
CREATE INDEX IF NOT EXISTS idx_reviews_product ON reviews(product_id);

-- Day-bucketed offer counters, one row per (offer, day)
CREATE TABLE IF NOT EXISTS offer_analytics(
  offer_id TEXT NOT NULL REFERENCES offers(id) ON DELETE CASCADE,
  day TEXT NOT NULL,
  views INTEGER NOT NULL DEFAULT 0,
  clicks INTEGER NOT NULL DEFAULT 0,
  conversions INTEGER NOT NULL DEFAULT 0,
  revenue NUMERIC NOT NULL DEFAULT 0,
  PRIMARY KEY (offer_id, day)
);

-- Orders
CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  user_id TEXT,
  session_id TEXT,
  customer_name TEXT,
  customer_email TEXT,
  offer_id TEXT,
  total NUMERIC NOT NULL,
  status TEXT NOT NULL DEFAULT 'PLACED',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at);
CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id);

CREATE TABLE IF NOT EXISTS order_items(
  order_id  TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL REFERENCES products(id),
  qty INTEGER NOT NULL,
  price NUMERIC NOT NULL,
  PRIMARY KEY (order_id, product_id)
);

-- Home page sections (admin-toggleable)
CREATE TABLE IF NOT EXISTS site_sections(
  key TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  visible INTEGER NOT NULL DEFAULT 1,
  sort INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS testimonials(
  id TEXT PRIMARY KEY,
  author TEXT NOT NULL,
  quote TEXT NOT NULL,
  rating INTEGER NOT NULL DEFAULT 5
);

-- Users & Sessions
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('USER','ADMIN')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM categories`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo categories/products/offers/sections")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO categories(id,name) VALUES
	  ('milk','Milk Chocolate'),
	  ('dark','Dark Chocolate'),
	  ('white','White Chocolate'),
	  ('gifting','Gift Boxes')`)

	tx.MustExec(`INSERT INTO products(id,category_id,name,description,price,image) VALUES
	  ('p-mango-milk','milk','Mango Milk 35g','Alphonso mango folded into creamy milk chocolate',149,'products/p-mango-milk/main.jpg'),
	  ('p-dark-70','dark','Single Origin Dark 70%','Idukki cacao, stone ground, 70% dark',249,'products/p-dark-70/main.jpg'),
	  ('p-hazel-white','white','Hazelnut White 40g','Roasted hazelnut in ivory white chocolate',179,'products/p-hazel-white/main.jpg'),
	  ('p-sea-salt','dark','Sea Salt Dark 55%','Flaky sea salt over smooth dark chocolate',199,'products/p-sea-salt/main.jpg'),
	  ('p-gift-9','gifting','Assorted Box of 9','Nine signature bonbons in a keepsake box',599,'products/p-gift-9/main.jpg')`)

	tx.MustExec(`INSERT INTO offers(id,title,description,kind,price,image) VALUES
	  ('of-trio','Tasting Trio','Mango Milk + Dark 70 + Sea Salt','combo',499,'offers/of-trio/main.jpg'),
	  ('of-diwali','Festival Hamper','Festival gift hamper with 12 bonbons and dry fruit','festival',999,'offers/of-diwali/main.jpg')`)

	tx.MustExec(`INSERT INTO site_sections(key,title,visible,sort) VALUES
	  ('hero','Hero Carousel',1,1),
	  ('products','Our Chocolates',1,2),
	  ('offers','Combos & Festival Offers',1,3),
	  ('gallery','Gallery',1,4),
	  ('testimonials','What Customers Say',1,5),
	  ('loyalty','Loyalty Tiers',1,6),
	  ('winners','Lucky Winners',1,7)`)

	tx.MustExec(`INSERT INTO testimonials(id,author,quote,rating) VALUES
	  ('t-1','Meera','The mango milk bar tastes like summer. Ordering again.',5),
	  ('t-2','Arjun','Dark 70 is the best Indian-origin bar I have tried.',5),
	  ('t-3','Sana','Gift box arrived beautifully packed, zero melting.',4)`)

	return tx.Commit()
}

// seedUsers ensures two USERs and one ADMIN exist (idempotent).
func seedUsers(db *sqlx.DB) error {
	type u struct {
		ID, Email, Name, Role, Hash string
	}
	mk := func(id, email, name, role, raw string) u {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return u{ID: id, Email: email, Name: name, Role: role, Hash: string(h)}
	}

	users := []u{
		mk("u-meera", "meera@cocobloom.test", "Meera", "USER", "Passw0rd!"),
		mk("u-arjun", "arjun@cocobloom.test", "Arjun", "USER", "Passw0rd!"),
		mk("u-admin", "admin@cocobloom.test", "Admin", "ADMIN", "Passw0rd!"),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		if _, err := tx.Exec(`
			INSERT INTO users(id,email,name,password_hash,role)
			VALUES(?,?,?,?,?)
			ON CONFLICT(email) DO NOTHING
		`, x.ID, x.Email, x.Name, x.Hash, x.Role); err != nil {
			return err
		}
	}

	return tx.Commit()
}
