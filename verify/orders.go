package verify

import (
	"fmt"
	"time"

	"github.com/orderapi/contract-tests/apidef"
	"github.com/orderapi/contract-tests/model"

	"github.com/stretchr/testify/assert"
)

// Direction is the expected order of an order listing by update time.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// ParseDirection accepts "asc" or "desc".
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "asc", "":
		return Ascending, nil
	case "desc":
		return Descending, nil
	default:
		return Ascending, fmt.Errorf("unknown sort direction %q, expected asc or desc", s)
	}
}

// Composition checks that the ingredients of a created order are the submitted ones, in the same
// order and with every field equal. The size, set and sequence checks on ids run first because
// their failure messages say more than a diff of whole objects does.
func Composition(t assert.TestingT, expected, actual []apidef.Ingredient) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	expectedIDs, actualIDs := ingredientIDs(expected), ingredientIDs(actual)
	ok := assert.Len(t, actualIDs, len(expectedIDs), "order has the wrong number of ingredients")
	ok = assert.Subset(t, expectedIDs, actualIDs, "order contains ingredients that were not submitted") && ok
	ok = assert.Subset(t, actualIDs, expectedIDs, "order is missing submitted ingredients") && ok
	if !ok || !assert.Equal(t, expectedIDs, actualIDs, "order ingredients are not in submission order") {
		return false
	}
	return assert.Equal(t, expected, actual, "order echoes ingredients that differ from the submitted ones")
}

// Price checks the price of a created order against the sum of the catalog prices of the submitted
// ids. The prices echoed back in the order are never used for the expected value.
func Price(t assert.TestingT, catalog model.Catalog, submittedIDs []string, actual *int) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	expected := 0
	for _, id := range submittedIDs {
		item, found := catalog.Get(id)
		if !found {
			return assert.Fail(t, fmt.Sprintf("ingredient %q is not in the catalog, cannot compute the price", id))
		}
		expected += item.Price
	}
	if !assert.NotNil(t, actual, "order has no price") {
		return false
	}
	return assert.Equal(t, expected, *actual, "order price is not the sum of its ingredient prices")
}

// CreatedOrder checks the fields that every created order has, whether or not it has an owner.
func CreatedOrder(t assert.TestingT, resp apidef.CreateOrderResponse) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	ok := assert.True(t, resp.Success, "success flag")
	ok = assert.Greater(t, resp.Order.Number, 0, "order number") && ok
	return assert.NotEmpty(t, resp.Name, "order name") && ok
}

// OwnedOrder checks the fields that only an order placed by an authenticated user has.
func OwnedOrder(t assert.TestingT, resp apidef.CreateOrderResponse) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	ok := assert.NotEmpty(t, resp.Order.ID, "order id")
	ok = assert.NotEmpty(t, resp.Order.Status, "order status") && ok
	return assert.NotNil(t, resp.Order.Owner, "order owner") && ok
}

// PaginationCap checks that a listing of an actor who created `created` orders returns
// min(created, OrderListCap) of them.
func PaginationCap(t assert.TestingT, created int, returned []apidef.OrderReturned) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	expected := created
	if expected > apidef.OrderListCap {
		expected = apidef.OrderListCap
	}
	if len(returned) > apidef.OrderListCap {
		return assert.Fail(t, fmt.Sprintf(
			"listing returned %d orders, more than the documented cap of %d (%d were created)",
			len(returned), apidef.OrderListCap, created))
	}
	return assert.Len(t, returned, expected, "listing size for %d created orders", created)
}

// SortedByUpdate checks that a listing is monotonic by updatedAt in the given direction. Equal
// timestamps are allowed in either direction.
func SortedByUpdate(t assert.TestingT, orders []apidef.OrderReturned, direction Direction) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	times := make([]time.Time, 0, len(orders))
	for i, o := range orders {
		ts, err := time.Parse(time.RFC3339Nano, o.UpdatedAt)
		if !assert.NoError(t, err, "order %d (%s) has an unparseable updatedAt", i, o.ID) {
			return false
		}
		times = append(times, ts)
	}
	for i := 1; i < len(times); i++ {
		prev, cur := times[i-1], times[i]
		if (direction == Ascending && cur.Before(prev)) || (direction == Descending && cur.After(prev)) {
			return assert.Fail(t, fmt.Sprintf(
				"listing is not sorted %s by updatedAt: order %d (%s) has %s, order %d (%s) has %s",
				direction, i-1, orders[i-1].ID, orders[i-1].UpdatedAt, i, orders[i].ID, orders[i].UpdatedAt))
		}
	}
	return true
}

// OrdersBelongTo checks that every listed order has the composition of some order in submitted.
func OrdersBelongTo(t assert.TestingT, returned []apidef.OrderReturned, submitted []model.Order) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	ok := true
	for i, r := range returned {
		found := false
		for _, s := range submitted {
			if r.SameComposition(s.Returned()) {
				found = true
				break
			}
		}
		if !found {
			ok = assert.Fail(t, fmt.Sprintf("listed order %d (%s) with ingredients %v was not submitted by this user",
				i, r.ID, r.Ingredients))
		}
	}
	return ok
}

func ingredientIDs(items []apidef.Ingredient) []string {
	ids := make([]string, 0, len(items))
	for _, i := range items {
		ids = append(ids, i.ID)
	}
	return ids
}
