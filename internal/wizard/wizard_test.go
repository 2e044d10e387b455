package wizard_test

import (
	"errors"
	"reflect"
	"testing"

	"feirarinos/internal/backend"
	"feirarinos/internal/domain"
	"feirarinos/internal/wizard"
)

type fakeIdentity struct {
	uid     string
	err     error
	created []string
}

func (f *fakeIdentity) CreateUser(email, password string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.created = append(f.created, email)
	return f.uid, nil
}

func (f *fakeIdentity) SignIn(email, password string) (string, error) {
	return "", errors.New("not implemented")
}

type fakeDocs struct {
	err     error
	vendors []domain.Vendor
}

func (f *fakeDocs) ReadAll(string) ([]backend.Document, error) { return nil, nil }

func (f *fakeDocs) Create(collection string, fields any) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if collection != backend.CollectionVendors {
		return "", errors.New("unexpected collection " + collection)
	}
	f.vendors = append(f.vendors, fields.(domain.Vendor))
	return "doc-1", nil
}

func validIdentity() wizard.IdentityForm {
	return wizard.IdentityForm{
		Name:            "Maria",
		Phone:           "(38) 99999-8888",
		Email:           "maria@example.com",
		Location:        "ARINOS-MG",
		Password:        "segredo",
		PasswordConfirm: "segredo",
	}
}

func validProfile() wizard.ProfileForm {
	return wizard.ProfileForm{
		DisplayName: "Banca da Maria",
		Pix:         true,
		Money:       true,
		WorkingDays: []string{"Sábado", "Domingo"},
	}
}

func selection() map[domain.ProductRef]bool {
	return map[domain.ProductRef]bool{
		{Category: "Frutas", Item: "Banana"}:  true,
		{Category: "Legumes", Item: "Batata"}: true,
		{Category: "Doces", Item: "Rapadura"}: false,
	}
}

func TestShortPasswordStaysOnIdentity(t *testing.T) {
	w := wizard.New(&fakeIdentity{}, &fakeDocs{})
	f := validIdentity()
	f.Password, f.PasswordConfirm = "abc", "abc"
	if err := w.SubmitIdentity(f); !errors.Is(err, wizard.ErrValidation) {
		t.Fatalf("want ErrValidation, got %v", err)
	}
	if w.State() != wizard.StateIdentity {
		t.Fatalf("state advanced to %v", w.State())
	}
	if w.Message() == "" {
		t.Fatal("expected a validation message")
	}
}

func TestPasswordMismatchStaysOnIdentity(t *testing.T) {
	w := wizard.New(&fakeIdentity{}, &fakeDocs{})
	f := validIdentity()
	f.PasswordConfirm = "outrasenha"
	if err := w.SubmitIdentity(f); !errors.Is(err, wizard.ErrValidation) {
		t.Fatalf("want ErrValidation, got %v", err)
	}
	if w.State() != wizard.StateIdentity {
		t.Fatalf("state advanced to %v", w.State())
	}
}

func TestNoWorkingDaysStaysOnProfile(t *testing.T) {
	w := wizard.New(&fakeIdentity{}, &fakeDocs{})
	if err := w.SubmitIdentity(validIdentity()); err != nil {
		t.Fatal(err)
	}
	p := validProfile()
	p.WorkingDays = nil
	if err := w.SubmitProfile(p); !errors.Is(err, wizard.ErrValidation) {
		t.Fatalf("want ErrValidation, got %v", err)
	}
	if w.State() != wizard.StateProfile {
		t.Fatalf("state advanced to %v", w.State())
	}
}

func TestNoProductsStaysOnProducts(t *testing.T) {
	w := wizard.New(&fakeIdentity{}, &fakeDocs{})
	if err := w.SubmitIdentity(validIdentity()); err != nil {
		t.Fatal(err)
	}
	if err := w.SubmitProfile(validProfile()); err != nil {
		t.Fatal(err)
	}
	none := map[domain.ProductRef]bool{{Category: "Frutas", Item: "Banana"}: false}
	if err := w.SubmitProducts(none); !errors.Is(err, wizard.ErrValidation) {
		t.Fatalf("want ErrValidation, got %v", err)
	}
	if w.State() != wizard.StateProducts {
		t.Fatalf("state advanced to %v", w.State())
	}
}

func TestStepsRejectOutOfOrderSubmits(t *testing.T) {
	w := wizard.New(&fakeIdentity{}, &fakeDocs{})
	if err := w.SubmitProfile(validProfile()); !errors.Is(err, wizard.ErrWrongState) {
		t.Fatalf("want ErrWrongState, got %v", err)
	}
	if err := w.SubmitProducts(selection()); !errors.Is(err, wizard.ErrWrongState) {
		t.Fatalf("want ErrWrongState, got %v", err)
	}
	if err := w.Submit(); !errors.Is(err, wizard.ErrWrongState) {
		t.Fatalf("want ErrWrongState, got %v", err)
	}
}

func TestBackKeepsEnteredData(t *testing.T) {
	w := wizard.New(&fakeIdentity{}, &fakeDocs{})
	if err := w.SubmitIdentity(validIdentity()); err != nil {
		t.Fatal(err)
	}
	if err := w.SubmitProfile(validProfile()); err != nil {
		t.Fatal(err)
	}
	w.Back()
	if w.State() != wizard.StateProfile {
		t.Fatalf("want StateProfile, got %v", w.State())
	}
	w.Back()
	if w.State() != wizard.StateIdentity {
		t.Fatalf("want StateIdentity, got %v", w.State())
	}
	d := w.Draft()
	if d.Name != "Maria" || d.DisplayName != "Banca da Maria" {
		t.Fatalf("draft lost data: %+v", d)
	}
}

func TestFullFlowSuccess(t *testing.T) {
	id := &fakeIdentity{uid: "u-123"}
	docs := &fakeDocs{}
	w := wizard.New(id, docs)

	if err := w.SubmitIdentity(validIdentity()); err != nil {
		t.Fatal(err)
	}
	if err := w.SubmitProfile(validProfile()); err != nil {
		t.Fatal(err)
	}
	if err := w.SubmitProducts(selection()); err != nil {
		t.Fatal(err)
	}
	if w.State() != wizard.StateSubmitting {
		t.Fatalf("want StateSubmitting, got %v", w.State())
	}
	if err := w.Submit(); err != nil {
		t.Fatal(err)
	}
	if w.State() != wizard.StateSuccess {
		t.Fatalf("want StateSuccess, got %v", w.State())
	}

	if len(docs.vendors) != 1 {
		t.Fatalf("expected one banca document, got %d", len(docs.vendors))
	}
	v := docs.vendors[0]
	if v.UserID != "u-123" {
		t.Fatalf("document not tagged with the new user id: %q", v.UserID)
	}
	if v.DisplayName != "Banca da Maria" || v.Location != "ARINOS-MG" {
		t.Fatalf("unexpected vendor: %+v", v)
	}
	if v.Phone != "38999998888" {
		t.Fatalf("phone should be digits only, got %q", v.Phone)
	}
	if v.WorkingDays != "Sábado,Domingo" {
		t.Fatalf("working days = %q", v.WorkingDays)
	}
	wantLabels := []string{"Frutas-Banana", "Legumes-Batata"}
	if !reflect.DeepEqual(v.Labels(), wantLabels) {
		t.Fatalf("products = %v, want %v", v.Labels(), wantLabels)
	}
	if !v.Pix || v.Card || v.Delivery {
		t.Fatalf("flags wrong: %+v", v)
	}
}

func TestSubmitMapsEmailInUse(t *testing.T) {
	id := &fakeIdentity{err: &backend.Error{Code: backend.CodeEmailInUse}}
	w := wizard.New(id, &fakeDocs{})
	if err := w.SubmitIdentity(validIdentity()); err != nil {
		t.Fatal(err)
	}
	if err := w.SubmitProfile(validProfile()); err != nil {
		t.Fatal(err)
	}
	if err := w.SubmitProducts(selection()); err != nil {
		t.Fatal(err)
	}
	if err := w.Submit(); err == nil {
		t.Fatal("expected submit failure")
	}
	if w.State() != wizard.StateProducts {
		t.Fatalf("failure should return to the visible step, got %v", w.State())
	}
	if w.Message() != "Este e-mail já esta sendo utilizado" {
		t.Fatalf("message = %q", w.Message())
	}
}

func TestSubmitVendorWriteFailureLeavesCredential(t *testing.T) {
	id := &fakeIdentity{uid: "u-1"}
	docs := &fakeDocs{err: errors.New("write failed")}
	w := wizard.New(id, docs)
	if err := w.SubmitIdentity(validIdentity()); err != nil {
		t.Fatal(err)
	}
	if err := w.SubmitProfile(validProfile()); err != nil {
		t.Fatal(err)
	}
	if err := w.SubmitProducts(selection()); err != nil {
		t.Fatal(err)
	}
	if err := w.Submit(); err == nil {
		t.Fatal("expected submit failure")
	}
	// no compensating rollback: the credential stays
	if len(id.created) != 1 {
		t.Fatalf("credential count = %d, want 1", len(id.created))
	}
	if w.State() != wizard.StateProducts {
		t.Fatalf("want StateProducts after failure, got %v", w.State())
	}
	if w.Message() != backend.GenericMessage {
		t.Fatalf("message = %q", w.Message())
	}
}
