package apitests

import (
	"fmt"
	"net/http"

	"github.com/orderapi/contract-tests/apidef"
	"github.com/orderapi/contract-tests/fixtures"
	"github.com/orderapi/contract-tests/model"
	"github.com/orderapi/contract-tests/verify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ingredientsPerOrder = 2

func DoCreateOrderTests(t *T) {
	t.Run("authorized", func(t *T) {
		u := t.RegisterActor()
		order := t.RandomOrder(ingredientsPerOrder)
		created := t.PlaceOrder(u, order)

		verify.CreatedOrder(t, created)
		verify.OwnedOrder(t, created)
		verify.Composition(t, order.Ingredients(), created.Order.Ingredients)
		verify.Price(t, t.Catalog(), order.IngredientIDs(), created.Order.Price)
		if created.Order.Owner != nil {
			verify.Owner(t, u.Credentials(), *created.Order.Owner)
		}
	})

	t.Run("unauthorized", func(t *T) {
		order := t.RandomOrder(ingredientsPerOrder)
		resp, err := t.Client().CreateOrder(t.Ctx(), "", order.Params(), http.StatusOK)
		require.NoError(t, err)
		var created apidef.CreateOrderResponse
		require.NoError(t, resp.Decode(&created))
		verify.CreatedOrder(t, created)
	})

	for _, authorized := range []bool{true, false} {
		token := func(t *T) string {
			if authorized {
				return t.RegisterActor().AccessToken()
			}
			return ""
		}

		t.Run(withAuthName("no ingredients", authorized), func(t *T) {
			resp, err := t.Client().CreateOrder(t.Ctx(), token(t), model.NewOrder().Params(), http.StatusBadRequest)
			require.NoError(t, err)
			verify.Failure(t, resp, apidef.MessageIngredientsMissing)
		})

		t.Run(withAuthName("unknown ingredient ids", authorized), func(t *T) {
			ids := fixtures.UnknownIngredientIDs(t.Catalog(), ingredientsPerOrder)
			t.Debug("Unknown ids: %v", ids)
			_, err := t.Client().CreateOrder(t.Ctx(), token(t), apidef.OrderParams{Ingredients: ids},
				http.StatusInternalServerError)
			require.NoError(t, err)
		})
	}
}

// listingCounts are the numbers of orders created before each listing test. The ones above the
// cap check that the listing is truncated.
var listingCounts = []int{0, 1, 25, 49, 50, 51, 52, 100}

func DoListOrderTests(t *T) {
	for _, count := range listingCounts {
		count := count
		name := fmt.Sprintf("%d orders", count)
		if count > apidef.OrderListCap {
			name += " above cap"
		}
		t.Run(name, func(t *T) {
			u := t.RegisterActor()
			submitted := make([]model.Order, 0, count)
			for i := 0; i < count; i++ {
				order := t.RandomOrder(ingredientsPerOrder)
				t.PlaceOrder(u, order)
				submitted = append(submitted, order)
			}

			list := t.ListOrders(u)
			assert.True(t, list.Success, "success flag")
			verify.PaginationCap(t, count, list.Orders)
			verify.OrdersBelongTo(t, list.Orders, submitted)
			verify.SortedByUpdate(t, list.Orders, t.SortDirection())
		})
	}

	t.Run("unauthorized", func(t *T) {
		resp, err := t.Client().ListOrders(t.Ctx(), "", http.StatusUnauthorized)
		require.NoError(t, err)
		verify.Failure(t, resp, apidef.MessageUnauthorised)
	})
}

func withAuthName(name string, authorized bool) string {
	if authorized {
		return name + ", authorized"
	}
	return name + ", unauthorized"
}
