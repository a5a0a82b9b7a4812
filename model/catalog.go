package model

import (
	"github.com/orderapi/contract-tests/apidef"
)

// Catalog indexes the ingredient list returned by GET /ingredients.
type Catalog struct {
	items []apidef.Ingredient
	byID  map[string]apidef.Ingredient
}

func NewCatalog(items []apidef.Ingredient) Catalog {
	c := Catalog{
		items: append([]apidef.Ingredient(nil), items...),
		byID:  make(map[string]apidef.Ingredient, len(items)),
	}
	for _, i := range items {
		c.byID[i.ID] = i
	}
	return c
}

func (c Catalog) Items() []apidef.Ingredient {
	return append([]apidef.Ingredient(nil), c.items...)
}

func (c Catalog) Len() int { return len(c.items) }

func (c Catalog) Get(id string) (apidef.Ingredient, bool) {
	i, ok := c.byID[id]
	return i, ok
}

// IDs returns the set of known ingredient ids.
func (c Catalog) IDs() map[string]struct{} {
	ret := make(map[string]struct{}, len(c.byID))
	for id := range c.byID {
		ret[id] = struct{}{}
	}
	return ret
}
