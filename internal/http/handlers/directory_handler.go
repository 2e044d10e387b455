package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"feirarinos/internal/backend"
	"feirarinos/internal/catalog"
	"feirarinos/internal/directory"
	"feirarinos/internal/log"
	"feirarinos/internal/textutil"
	"feirarinos/internal/validate"
)

type DirectoryHandler struct {
	Store    backend.DocumentStore
	Location string
}

// vendorCard is the template view of one banca.
type vendorCard struct {
	ID          string
	Name        string
	Categories  []string
	Products    []string
	WorkingDays string
	Phone       string
	Delivery    bool
	Pix         bool
	Card        bool
}

func (h *DirectoryHandler) Home(c *fiber.Ctx) error {
	return render(c, "home", fiber.Map{"Location": h.Location})
}

func (h *DirectoryHandler) Page(c *fiber.Ctx) error {
	eng := directory.New(h.Store)
	if err := eng.Load(); err != nil {
		log.Error(c, "directory.load", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Tivemos um erro no servidor. Tente mais tarde."})
	}

	rawQ := c.Query("q")
	category := strings.TrimSpace(c.Query("categoria"))

	var entries []directory.Entry
	switch {
	case category != "":
		entries = eng.FilterByCategory(category)
	case strings.TrimSpace(rawQ) != "":
		q, ok := validate.Term(rawQ)
		if !ok {
			log.Security(c, "validation.fail", map[string]any{"field": "q", "value": rawQ})
			return c.Status(fiber.StatusBadRequest).Render("busca", fiber.Map{
				"Q": "", "ActiveCategory": "", "Categories": eng.Categories(),
				"Vendors": []vendorCard{}, "Count": 0,
				"Err": "Busque apenas por letras e números", "Location": h.Location,
			})
		}
		entries = eng.FilterByTerm(q)
	default:
		entries = eng.Clear()
	}

	cards := make([]vendorCard, 0, len(entries))
	for _, en := range entries {
		v := en.Vendor
		cards = append(cards, vendorCard{
			ID:          en.ID,
			Name:        strings.ToUpper(v.DisplayName),
			Categories:  catalog.ExtractCategories(v.Labels()),
			Products:    v.Labels(),
			WorkingDays: v.WorkingDays,
			Phone:       textutil.PhoneMask(v.Phone),
			Delivery:    v.Delivery,
			Pix:         v.Pix,
			Card:        v.Card,
		})
	}

	return render(c, "busca", fiber.Map{
		"Q":              eng.Term(),
		"ActiveCategory": eng.ActiveCategory(),
		"Categories":     eng.Categories(),
		"Vendors":        cards,
		"Count":          len(cards),
		"Location":       h.Location,
	})
}
