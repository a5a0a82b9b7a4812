package model

import (
	"github.com/orderapi/contract-tests/apidef"
)

// Order is an ordered sequence of ingredients. Duplicates are allowed and order matters.
type Order struct {
	ingredients []apidef.Ingredient
}

func NewOrder(ingredients ...apidef.Ingredient) Order {
	return Order{ingredients: append([]apidef.Ingredient(nil), ingredients...)}
}

func (o Order) Ingredients() []apidef.Ingredient {
	return append([]apidef.Ingredient(nil), o.ingredients...)
}

// IngredientIDs returns the ids in order.
func (o Order) IngredientIDs() []string {
	ids := make([]string, 0, len(o.ingredients))
	for _, i := range o.ingredients {
		ids = append(ids, i.ID)
	}
	return ids
}

// Price is the sum of the ingredient prices.
func (o Order) Price() int {
	total := 0
	for _, i := range o.ingredients {
		total += i.Price
	}
	return total
}

// Params is the submission payload for this order.
func (o Order) Params() apidef.OrderParams {
	return apidef.OrderParams{Ingredients: o.IngredientIDs()}
}

// Returned is the listing entry this order is expected to appear as. Only the ingredient ids are
// filled in, which is all that OrderReturned.SameComposition looks at.
func (o Order) Returned() apidef.OrderReturned {
	return apidef.OrderReturned{Ingredients: o.IngredientIDs()}
}
