package backend

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"

	"feirarinos/internal/domain"
	"feirarinos/internal/validate"
)

// Backend is the SQLite implementation of DocumentStore, Identity and
// SessionStore.
type Backend struct {
	DB *sqlx.DB
}

// Open connects, ensures the schema and seeds the produtos master
// catalog when the database is empty.
func Open(dsn string) (*Backend, error) {
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
	if err := seedCatalog(db); err != nil {
		return nil, err
	}
	return &Backend{DB: db}, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Collection documents (banca, produtos)
CREATE TABLE IF NOT EXISTS documents(
  collection TEXT NOT NULL,
  id         TEXT NOT NULL,
  body       TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  PRIMARY KEY(collection, id)
);
CREATE INDEX IF NOT EXISTS idx_documents_collection ON documents(collection);

-- Credentials
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
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

// masterCatalog is the fixed set of sellable labels offered during
// product selection.
var masterCatalog = []string{
	"Doces-Goiabada",
	"Doces-Rapadura",
	"Frutas-Abacaxi",
	"Frutas-Banana",
	"Frutas-Laranja",
	"Frutas-Mamão",
	"Frutas-Maçã",
	"Laticínios-Queijo",
	"Laticínios-Requeijão",
	"Legumes-Abóbora",
	"Legumes-Batata",
	"Legumes-Cenoura",
	"Legumes-Mandioca",
	"Ovos-Codorna",
	"Ovos-Galinha",
	"Temperos-Alho",
	"Temperos-Cheiro Verde",
	"Temperos-Pimenta",
	"Verduras-Alface",
	"Verduras-Couve",
}

// seedCatalog inserts the master catalog if produtos is empty
// (idempotent; safe to run every start).
func seedCatalog(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM documents WHERE collection=?`, CollectionProducts); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting produtos master catalog")

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, name := range masterCatalog {
		body, err := json.Marshal(domain.CatalogEntry{Name: name})
		if err != nil {
			return err
		}
		if _, err := tx.Exec(`INSERT INTO documents(collection,id,body) VALUES(?,?,?)`,
			CollectionProducts, uuid.NewString(), string(body)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ---------- DocumentStore ----------

func (b *Backend) ReadAll(collection string) ([]Document, error) {
	rows, err := b.DB.Queryx(`SELECT id, body FROM documents WHERE collection=? ORDER BY created_at, id`, collection)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		var id, body string
		if err := rows.Scan(&id, &body); err != nil {
			return nil, err
		}
		out = append(out, Document{ID: id, body: []byte(body)})
	}
	return out, rows.Err()
}

func (b *Backend) Create(collection string, fields any) (string, error) {
	body, err := json.Marshal(fields)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()
	if _, err := b.DB.Exec(`INSERT INTO documents(collection,id,body) VALUES(?,?,?)`,
		collection, id, string(body)); err != nil {
		return "", err
	}
	return id, nil
}

// ---------- Identity ----------

func (b *Backend) CreateUser(email, password string) (string, error) {
	if _, ok := validate.Email(email); !ok {
		return "", coded(CodeInvalidEmail)
	}
	if len(password) < 6 {
		return "", coded(CodeWeakPassword)
	}
	var n int
	if err := b.DB.Get(&n, `SELECT COUNT(*) FROM users WHERE LOWER(email)=LOWER(?)`, email); err != nil {
		return "", err
	}
	if n > 0 {
		return "", coded(CodeEmailInUse)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()
	if _, err := b.DB.Exec(`INSERT INTO users(id,email,password_hash) VALUES(?,?,?)`,
		id, email, string(hash)); err != nil {
		return "", err
	}
	return id, nil
}

func (b *Backend) SignIn(email, password string) (string, error) {
	var u domain.User
	err := b.DB.Get(&u, `SELECT id,email,password_hash FROM users WHERE LOWER(email)=LOWER(?)`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return "", coded(CodeInvalidCredentials)
	}
	if err != nil {
		return "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return "", coded(CodeInvalidCredentials)
	}
	return u.ID, nil
}

// ---------- SessionStore ----------

func (b *Backend) BindSession(sid, userID string) error {
	_, err := b.DB.Exec(`INSERT INTO sessions(id,user_id,last_seen)
                          VALUES(?,?,CURRENT_TIMESTAMP)
                          ON CONFLICT(id) DO UPDATE SET user_id=excluded.user_id,last_seen=CURRENT_TIMESTAMP`, sid, userID)
	return err
}

func (b *Backend) SessionUser(sid string) (*domain.User, error) {
	var u domain.User
	err := b.DB.Get(&u, `
      SELECT u.id,u.email,u.password_hash
      FROM sessions s
      JOIN users u ON u.id=s.user_id
      WHERE s.id=?`, sid)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (b *Backend) UnbindSession(sid string) error {
	_, err := b.DB.Exec(`UPDATE sessions SET user_id=NULL,last_seen=CURRENT_TIMESTAMP WHERE id=?`, sid)
	return err
}
