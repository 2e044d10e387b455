package domain

import (
	"encoding/json"
	"strings"
)

// ProductRef identifies one sellable item inside a category. The stored
// form is the hyphen-joined label "<category>-<item>"; in memory the two
// halves stay separate.
type ProductRef struct {
	Category string
	Item     string
}

// Label returns the wire/storage form of the reference.
func (p ProductRef) Label() string { return p.Category + "-" + p.Item }

// ParseProductLabel splits a label on its first hyphen. A label without a
// hyphen becomes a category with an empty item; items may themselves
// contain hyphens and keep them.
func ParseProductLabel(label string) ProductRef {
	i := strings.Index(label, "-")
	if i < 0 {
		return ProductRef{Category: label}
	}
	return ProductRef{Category: label[:i], Item: label[i+1:]}
}

func (p ProductRef) MarshalJSON() ([]byte, error) { return json.Marshal(p.Label()) }

func (p *ProductRef) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*p = ParseProductLabel(s)
	return nil
}

// Vendor is one registered stall ("banca"). Field names follow the
// document layout of the banca collection.
type Vendor struct {
	UserID      string       `json:"userID"`
	DisplayName string       `json:"customName"`
	WorkingDays string       `json:"daysWorking"` // comma-joined day names
	Delivery    bool         `json:"delivery"`
	Pix         bool         `json:"pix"`
	Card        bool         `json:"card"`
	Phone       string       `json:"phone"` // digits only
	Location    string       `json:"location"`
	Products    []ProductRef `json:"products"`
}

// Labels returns the stored label form of every product.
func (v Vendor) Labels() []string {
	out := make([]string, len(v.Products))
	for i, p := range v.Products {
		out[i] = p.Label()
	}
	return out
}

// CatalogEntry is one document of the produtos master catalog.
type CatalogEntry struct {
	Name string `json:"name"`
}

// WorkingDayNames is the fixed selectable set, week order.
var WorkingDayNames = []string{"Domingo", "Segunda", "Terça", "Quarta", "Quinta", "Sexta", "Sábado"}
