// Package wizard drives the three-step vendor registration flow as an
// explicit state machine: identity, stall profile, product selection,
// then a single two-call submission.
package wizard

import (
	"errors"
	"strings"

	"feirarinos/internal/backend"
	"feirarinos/internal/domain"
	"feirarinos/internal/textutil"
)

type State int

const (
	StateIdentity State = iota
	StateProfile
	StateProducts
	StateSubmitting
	StateSuccess
)

// ErrValidation marks a guard rejection; the step stays active and
// Message carries the user-facing text.
var ErrValidation = errors.New("validation failed")

// ErrWrongState is returned when a step submit arrives out of order.
var ErrWrongState = errors.New("step not active")

// Draft is the in-progress registration, held only in memory and
// discarded when the flow is abandoned.
type Draft struct {
	Name     string
	Phone    string // digits only
	Email    string
	Location string
	Password string

	DisplayName string
	Delivery    bool
	Money       bool
	Pix         bool
	Card        bool
	WorkingDays []string

	Products map[domain.ProductRef]bool
}

// IdentityForm carries the first step's fields.
type IdentityForm struct {
	Name            string
	Phone           string
	Email           string
	Location        string
	Password        string
	PasswordConfirm string
}

// ProfileForm carries the second step's fields.
type ProfileForm struct {
	DisplayName string
	Delivery    bool
	Money       bool
	Pix         bool
	Card        bool
	WorkingDays []string
}

// Wizard accumulates a Draft across steps and performs the terminal
// submission. Not safe for concurrent use.
type Wizard struct {
	identity backend.Identity
	store    backend.DocumentStore

	state   State
	draft   Draft
	message string
}

func New(identity backend.Identity, store backend.DocumentStore) *Wizard {
	return &Wizard{identity: identity, store: store}
}

func (w *Wizard) State() State    { return w.state }
func (w *Wizard) Draft() Draft    { return w.draft }
func (w *Wizard) Message() string { return w.message }

// SubmitIdentity validates the credential fields and advances to the
// profile step. Password must be at least 6 characters and match its
// confirmation.
func (w *Wizard) SubmitIdentity(f IdentityForm) error {
	if w.state != StateIdentity {
		return ErrWrongState
	}
	if len(f.Password) < 6 {
		w.message = "A senha deve ter no mínimo 6 dígitos."
		return ErrValidation
	}
	if f.Password != f.PasswordConfirm {
		w.message = "As senhas digitadas não conferem"
		return ErrValidation
	}
	w.draft.Name = f.Name
	w.draft.Phone = digitsOnly(f.Phone)
	w.draft.Email = f.Email
	w.draft.Location = f.Location
	w.draft.Password = f.Password
	w.message = ""
	w.state = StateProfile
	return nil
}

// SubmitProfile validates the stall fields and advances to product
// selection. At least one working day is required.
func (w *Wizard) SubmitProfile(f ProfileForm) error {
	if w.state != StateProfile {
		return ErrWrongState
	}
	if len(f.WorkingDays) == 0 {
		w.message = "Favor informar os dias em que você realiza vendas."
		return ErrValidation
	}
	w.draft.DisplayName = f.DisplayName
	w.draft.Delivery = f.Delivery
	w.draft.Money = f.Money
	w.draft.Pix = f.Pix
	w.draft.Card = f.Card
	w.draft.WorkingDays = f.WorkingDays
	w.message = ""
	w.state = StateProducts
	return nil
}

// SubmitProducts stores the selection and moves to the submitting
// state. At least one product must be selected.
func (w *Wizard) SubmitProducts(selected map[domain.ProductRef]bool) error {
	if w.state != StateProducts {
		return ErrWrongState
	}
	n := 0
	for _, on := range selected {
		if on {
			n++
		}
	}
	if n == 0 {
		w.message = "Favor escolher ao menos um produto."
		return ErrValidation
	}
	w.draft.Products = selected
	w.message = ""
	w.state = StateSubmitting
	return nil
}

// Back returns to the previous step without discarding entered data.
func (w *Wizard) Back() {
	switch w.state {
	case StateProfile:
		w.state = StateIdentity
	case StateProducts:
		w.state = StateProfile
	}
}

// Submit creates the credential, then the banca document tagged with
// the new user id. The two calls are strictly sequential; a document
// write failure leaves the already-created credential in place and
// returns control to the product step with a mapped message.
func (w *Wizard) Submit() error {
	if w.state != StateSubmitting {
		return ErrWrongState
	}
	uid, err := w.identity.CreateUser(w.draft.Email, w.draft.Password)
	if err != nil {
		w.message = backend.MessageFor(err)
		w.state = StateProducts
		return err
	}
	var products []domain.ProductRef
	for p, on := range w.draft.Products {
		if on {
			products = append(products, p)
		}
	}
	labels := make([]string, len(products))
	for i, p := range products {
		labels[i] = p.Label()
	}
	textutil.OrderStrings(labels)
	ordered := make([]domain.ProductRef, len(labels))
	for i, l := range labels {
		ordered[i] = domain.ParseProductLabel(l)
	}

	vendor := domain.Vendor{
		UserID:      uid,
		DisplayName: w.draft.DisplayName,
		WorkingDays: strings.Join(w.draft.WorkingDays, ","),
		Delivery:    w.draft.Delivery,
		Pix:         w.draft.Pix,
		Card:        w.draft.Card,
		Phone:       w.draft.Phone,
		Location:    w.draft.Location,
		Products:    ordered,
	}
	if _, err := w.store.Create(backend.CollectionVendors, vendor); err != nil {
		w.message = backend.MessageFor(err)
		w.state = StateProducts
		return err
	}
	w.message = ""
	w.state = StateSuccess
	return nil
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
