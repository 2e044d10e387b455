// Package backend provides the document store and identity provider the
// application runs on, plus the SQLite implementation of both.
package backend

import (
	"encoding/json"

	"feirarinos/internal/domain"
)

// Collection names.
const (
	CollectionVendors  = "banca"
	CollectionProducts = "produtos"
)

// Document is one record of a collection with its raw JSON body.
type Document struct {
	ID   string
	body []byte
}

// NewDocument builds a document from any JSON-marshalable value.
func NewDocument(id string, fields any) (Document, error) {
	b, err := json.Marshal(fields)
	if err != nil {
		return Document{}, err
	}
	return Document{ID: id, body: b}, nil
}

// Decode unmarshals the document body into out.
func (d Document) Decode(out any) error { return json.Unmarshal(d.body, out) }

// DocumentStore reads and appends collection documents. There is no
// update or delete: vendor records are written once at registration.
type DocumentStore interface {
	ReadAll(collection string) ([]Document, error)
	Create(collection string, fields any) (string, error)
}

// Identity creates and verifies email+password credentials. Failures
// carry an auth/* code (see errors.go).
type Identity interface {
	CreateUser(email, password string) (string, error)
	SignIn(email, password string) (string, error)
}

// SessionStore binds browser session ids to signed-in users.
type SessionStore interface {
	BindSession(sid, userID string) error
	SessionUser(sid string) (*domain.User, error)
	UnbindSession(sid string) error
}
