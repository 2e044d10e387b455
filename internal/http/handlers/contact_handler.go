package handlers

import (
	"github.com/gofiber/fiber/v2"

	"feirarinos/internal/backend"
	"feirarinos/internal/domain"
	"feirarinos/internal/log"
)

// ContactHandler redirects to the vendor's WhatsApp conversation. The
// deep link embeds the stored phone digits; no response is awaited.
type ContactHandler struct {
	Store   backend.DocumentStore
	BaseURL string
}

// countryCode prefixes every stored number, which is national-format.
const countryCode = "55"

func (h *ContactHandler) Redirect(c *fiber.Ctx) error {
	id := c.Params("id")
	docs, err := h.Store.ReadAll(backend.CollectionVendors)
	if err != nil {
		log.Error(c, "contact.load", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Tivemos um erro no servidor. Tente mais tarde."})
	}
	for _, d := range docs {
		if d.ID != id {
			continue
		}
		var v domain.Vendor
		if err := d.Decode(&v); err != nil {
			log.Error(c, "contact.decode", err, map[string]any{"id": id})
			break
		}
		log.Info(c, "contact.redirect", map[string]any{"id": id})
		return c.Redirect(h.BaseURL+"/"+countryCode+v.Phone, fiber.StatusFound)
	}
	return c.Status(404).Render("notfound", fiber.Map{"Message": "Feirante não encontrado"})
}
