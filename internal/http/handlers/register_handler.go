package handlers

import (
	"errors"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"feirarinos/internal/backend"
	"feirarinos/internal/catalog"
	"feirarinos/internal/domain"
	"feirarinos/internal/log"
	"feirarinos/internal/wizard"
)

// draftTTL bounds how long an abandoned draft survives. Entries idle
// past this are swept on the next registry access.
const draftTTL = 30 * time.Minute

type wizardEntry struct {
	w       *wizard.Wizard
	touched time.Time
}

// RegisterHandler serves the three-step registration wizard. Each
// browser session gets its own wizard; the draft lives only in this
// process and is dropped on success or after draftTTL of inactivity.
// Rendering the form never allocates: only the first step's submit
// registers a wizard, so anonymous page loads cannot grow the registry.
type RegisterHandler struct {
	Identity backend.Identity
	Store    backend.DocumentStore
	Location string

	mu      sync.Mutex
	wizards map[string]*wizardEntry
	now     func() time.Time
}

func NewRegisterHandler(identity backend.Identity, store backend.DocumentStore, location string) *RegisterHandler {
	return &RegisterHandler{
		Identity: identity,
		Store:    store,
		Location: location,
		wizards:  make(map[string]*wizardEntry),
		now:      time.Now,
	}
}

// wizardFor returns the session's wizard, registering one on first use.
func (h *RegisterHandler) wizardFor(sid string) *wizard.Wizard {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sweep()
	e, ok := h.wizards[sid]
	if !ok {
		e = &wizardEntry{w: wizard.New(h.Identity, h.Store)}
		h.wizards[sid] = e
	}
	e.touched = h.now()
	return e.w
}

// peek returns the session's wizard if one is registered, nil otherwise.
func (h *RegisterHandler) peek(sid string) *wizard.Wizard {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sweep()
	e, ok := h.wizards[sid]
	if !ok {
		return nil
	}
	e.touched = h.now()
	return e.w
}

// sweep drops entries idle past draftTTL. Caller holds mu.
func (h *RegisterHandler) sweep() {
	cutoff := h.now().Add(-draftTTL)
	for sid, e := range h.wizards {
		if e.touched.Before(cutoff) {
			delete(h.wizards, sid)
		}
	}
}

func (h *RegisterHandler) drop(sid string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.wizards, sid)
}

func (h *RegisterHandler) catalogGroups() ([]catalog.CategoryProducts, []string, error) {
	docs, err := h.Store.ReadAll(backend.CollectionProducts)
	if err != nil {
		return nil, nil, err
	}
	labels := make([]string, 0, len(docs))
	for _, d := range docs {
		var p domain.CatalogEntry
		if err := d.Decode(&p); err != nil {
			return nil, nil, err
		}
		labels = append(labels, p.Name)
	}
	return catalog.GroupByCategory(labels), labels, nil
}

// Form renders the active step. Sessions without a registered wizard
// get the blank first step; the wizard itself appears only once the
// identity form is submitted.
func (h *RegisterHandler) Form(c *fiber.Ctx) error {
	sid := ensureSID(c)
	w := h.peek(sid)
	if w == nil {
		w = wizard.New(h.Identity, h.Store)
	}

	groups, _, err := h.catalogGroups()
	if err != nil {
		log.Error(c, "register.catalog.load", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Tivemos um erro no servidor. Tente mais tarde."})
	}

	d := w.Draft()
	selected := map[string]bool{}
	for p, on := range d.Products {
		if on {
			selected[p.Label()] = true
		}
	}
	days := map[string]bool{}
	for _, day := range d.WorkingDays {
		days[day] = true
	}

	return render(c, "cadastro", fiber.Map{
		"Step":     int(w.State()),
		"Message":  w.Message(),
		"Draft":    d,
		"Selected": selected,
		"Days":     days,
		"DayNames": domain.WorkingDayNames,
		"Groups":   groups,
		"Location": h.Location,
	})
}

// SubmitIdentity handles the first step's form post.
func (h *RegisterHandler) SubmitIdentity(c *fiber.Ctx) error {
	sid := ensureSID(c)
	w := h.wizardFor(sid)
	// Copied: the draft retains these past the handler, and Fiber's
	// non-immutable mode backs c.FormValue with pooled request buffers.
	err := w.SubmitIdentity(wizard.IdentityForm{
		Name:            utils.CopyString(c.FormValue("name")),
		Phone:           utils.CopyString(c.FormValue("phone")),
		Email:           utils.CopyString(c.FormValue("email")),
		Location:        utils.CopyString(c.FormValue("location")),
		Password:        utils.CopyString(c.FormValue("password")),
		PasswordConfirm: utils.CopyString(c.FormValue("passwordConfirm")),
	})
	if err != nil && !errors.Is(err, wizard.ErrValidation) && !errors.Is(err, wizard.ErrWrongState) {
		log.Error(c, "register.identity", err, nil)
	}
	return c.Redirect("/cadastro", fiber.StatusSeeOther)
}

// SubmitProfile handles the second step's form post.
func (h *RegisterHandler) SubmitProfile(c *fiber.Ctx) error {
	sid := ensureSID(c)
	w := h.peek(sid)
	if w == nil {
		return c.Redirect("/cadastro", fiber.StatusSeeOther)
	}

	var days []string
	for _, v := range c.Request().PostArgs().PeekMulti("daysWorking") {
		days = append(days, string(v))
	}

	_ = w.SubmitProfile(wizard.ProfileForm{
		DisplayName: utils.CopyString(c.FormValue("customName")),
		Delivery:    c.FormValue("delivery") == "on",
		Money:       c.FormValue("money") == "on",
		Pix:         c.FormValue("pix") == "on",
		Card:        c.FormValue("card") == "on",
		WorkingDays: days,
	})
	return c.Redirect("/cadastro", fiber.StatusSeeOther)
}

// SubmitProducts handles the final step and, when its guard passes,
// performs the terminal submission.
func (h *RegisterHandler) SubmitProducts(c *fiber.Ctx) error {
	sid := ensureSID(c)
	w := h.peek(sid)
	if w == nil {
		return c.Redirect("/cadastro", fiber.StatusSeeOther)
	}

	_, labels, err := h.catalogGroups()
	if err != nil {
		log.Error(c, "register.catalog.load", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Tivemos um erro no servidor. Tente mais tarde."})
	}

	// Selection state keyed by the known catalog, not by whatever keys
	// arrived in the payload.
	selected := make(map[domain.ProductRef]bool, len(labels))
	for _, label := range labels {
		if c.FormValue(label) == "on" {
			selected[domain.ParseProductLabel(label)] = true
		}
	}

	if err := w.SubmitProducts(selected); err != nil {
		return c.Redirect("/cadastro", fiber.StatusSeeOther)
	}

	if err := w.Submit(); err != nil {
		log.Error(c, "register.submit", err, map[string]any{"sid": sid})
		return c.Redirect("/cadastro", fiber.StatusSeeOther)
	}

	log.Audit(c, "register.success", map[string]any{"sid": sid})
	h.drop(sid)
	return c.Redirect("/busca", fiber.StatusSeeOther)
}

// Back steps the wizard one step backwards.
func (h *RegisterHandler) Back(c *fiber.Ctx) error {
	sid := ensureSID(c)
	if w := h.peek(sid); w != nil {
		w.Back()
	}
	return c.Redirect("/cadastro", fiber.StatusSeeOther)
}
