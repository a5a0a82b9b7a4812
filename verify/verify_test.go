package verify

import (
	"fmt"
	"testing"
	"time"

	"github.com/orderapi/contract-tests/apiclient"
	"github.com/orderapi/contract-tests/apidef"
	"github.com/orderapi/contract-tests/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

type recordingT struct {
	failures []string
}

func (r *recordingT) Errorf(format string, args ...interface{}) {
	r.failures = append(r.failures, fmt.Sprintf(format, args...))
}

func (r *recordingT) failed() bool { return len(r.failures) > 0 }

var (
	bun   = apidef.Ingredient{ID: "bun-1", Name: "Bun", Type: "bun", Price: 1255}
	sauce = apidef.Ingredient{ID: "sauce-1", Name: "Sauce", Type: "sauce", Price: 90}
	patty = apidef.Ingredient{ID: "main-1", Name: "Patty", Type: "main", Price: 424}
)

func intPtr(n int) *int { return &n }

func listing(timestamps ...string) []apidef.OrderReturned {
	ret := make([]apidef.OrderReturned, 0, len(timestamps))
	for i, ts := range timestamps {
		ret = append(ret, apidef.OrderReturned{ID: fmt.Sprint(i), UpdatedAt: ts, Ingredients: []string{"x"}})
	}
	return ret
}

func TestComposition(t *testing.T) {
	t.Run("same sequence", func(t *testing.T) {
		r := &recordingT{}
		assert.True(t, Composition(r, []apidef.Ingredient{bun, sauce, sauce}, []apidef.Ingredient{bun, sauce, sauce}))
		assert.False(t, r.failed())
	})

	t.Run("different order", func(t *testing.T) {
		r := &recordingT{}
		assert.False(t, Composition(r, []apidef.Ingredient{bun, sauce}, []apidef.Ingredient{sauce, bun}))
		require.Len(t, r.failures, 1)
		assert.Contains(t, r.failures[0], "not in submission order")
	})

	t.Run("missing ingredient", func(t *testing.T) {
		r := &recordingT{}
		assert.False(t, Composition(r, []apidef.Ingredient{bun, sauce}, []apidef.Ingredient{bun}))
		assert.Len(t, r.failures, 2)
	})

	t.Run("descriptive field differs", func(t *testing.T) {
		r := &recordingT{}
		corrupted := bun
		corrupted.Name = "Renamed"
		corrupted.Price = 1
		corrupted.Calories = 0
		assert.False(t, Composition(r, []apidef.Ingredient{bun, sauce}, []apidef.Ingredient{corrupted, sauce}))
		require.Len(t, r.failures, 1)
		assert.Contains(t, r.failures[0], "differ from the submitted ones")
	})
}

func TestPrice(t *testing.T) {
	catalog := model.NewCatalog([]apidef.Ingredient{bun, sauce, patty})

	r := &recordingT{}
	assert.True(t, Price(r, catalog, []string{bun.ID, patty.ID, patty.ID}, intPtr(1255+424+424)))
	assert.False(t, r.failed())

	r = &recordingT{}
	assert.False(t, Price(r, catalog, []string{bun.ID}, intPtr(1)))
	assert.Len(t, r.failures, 1)

	r = &recordingT{}
	assert.False(t, Price(r, catalog, []string{bun.ID}, nil))

	r = &recordingT{}
	assert.False(t, Price(r, catalog, []string{"nope"}, intPtr(0)))
	require.Len(t, r.failures, 1)
	assert.Contains(t, r.failures[0], `"nope" is not in the catalog`)
}

func TestPaginationCap(t *testing.T) {
	for _, n := range []int{0, 1, 25, 49, 50} {
		r := &recordingT{}
		assert.True(t, PaginationCap(r, n, make([]apidef.OrderReturned, n)), "%d orders", n)
	}

	r := &recordingT{}
	assert.True(t, PaginationCap(r, 100, make([]apidef.OrderReturned, 50)))

	r = &recordingT{}
	assert.False(t, PaginationCap(r, 51, make([]apidef.OrderReturned, 51)))
	require.Len(t, r.failures, 1)
	assert.Contains(t, r.failures[0], "more than the documented cap of 50")

	r = &recordingT{}
	assert.False(t, PaginationCap(r, 10, make([]apidef.OrderReturned, 9)))
}

func TestSortedByUpdate(t *testing.T) {
	ascending := listing("2024-01-01T10:00:00.000Z", "2024-01-01T10:00:00.000Z", "2024-01-01T10:00:01.5Z")

	r := &recordingT{}
	assert.True(t, SortedByUpdate(r, ascending, Ascending))
	assert.False(t, SortedByUpdate(r, ascending, Descending))

	t.Run("compares instants, not strings", func(t *testing.T) {
		// 11:00+02:00 is 09:00Z, which sorts after 08:30Z even though the strings do not
		orders := listing("2024-01-01T08:30:00Z", "2024-01-01T11:00:00+02:00")
		r := &recordingT{}
		assert.True(t, SortedByUpdate(r, orders, Ascending))
	})

	t.Run("unparseable timestamp", func(t *testing.T) {
		r := &recordingT{}
		assert.False(t, SortedByUpdate(r, listing("yesterday"), Ascending))
	})

	t.Run("empty listing", func(t *testing.T) {
		assert.True(t, SortedByUpdate(&recordingT{}, nil, Descending))
	})
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("desc")
	require.NoError(t, err)
	assert.Equal(t, Descending, d)
	d, err = ParseDirection("")
	require.NoError(t, err)
	assert.Equal(t, Ascending, d)
	_, err = ParseDirection("sideways")
	assert.Error(t, err)
}

func TestOrdersBelongTo(t *testing.T) {
	submitted := []model.Order{model.NewOrder(bun, sauce), model.NewOrder(patty)}
	returned := []apidef.OrderReturned{
		{ID: "a", Ingredients: []string{patty.ID}},
		{ID: "b", Ingredients: []string{bun.ID, sauce.ID}},
	}
	r := &recordingT{}
	assert.True(t, OrdersBelongTo(r, returned, submitted))

	returned = append(returned, apidef.OrderReturned{ID: "c", Ingredients: []string{sauce.ID, bun.ID}})
	assert.False(t, OrdersBelongTo(r, returned, submitted))
	require.Len(t, r.failures, 1)
	assert.Contains(t, r.failures[0], "(c)")
}

func TestCreatedOrder(t *testing.T) {
	r := &recordingT{}
	ok := CreatedOrder(r, apidef.CreateOrderResponse{
		Envelope: apidef.Envelope{Success: true},
		Name:     "Spicy burger",
		Order:    apidef.CreatedOrder{Number: 12345},
	})
	assert.True(t, ok)
	assert.False(t, CreatedOrder(r, apidef.CreateOrderResponse{Envelope: apidef.Envelope{Success: true}}))
}

func TestOwnedOrder(t *testing.T) {
	owner := apidef.UserInfo{Email: "some.one@example.com", Name: "Some One"}
	r := &recordingT{}
	assert.True(t, OwnedOrder(r, apidef.CreateOrderResponse{
		Order: apidef.CreatedOrder{ID: "6512f0a1", Status: "done", Owner: &owner, Number: 1},
	}))
	assert.Empty(t, r.failures)

	assert.False(t, OwnedOrder(r, apidef.CreateOrderResponse{
		Order: apidef.CreatedOrder{Status: "done", Owner: &owner, Number: 1},
	}))
	require.Len(t, r.failures, 1)
	assert.Contains(t, r.failures[0], "order id")

	r = &recordingT{}
	assert.False(t, OwnedOrder(r, apidef.CreateOrderResponse{
		Order: apidef.CreatedOrder{ID: "6512f0a1", Number: 1},
	}))
	require.Len(t, r.failures, 2)
	assert.Contains(t, r.failures[0], "order status")
	assert.Contains(t, r.failures[1], "order owner")
}

func TestOwner(t *testing.T) {
	creds := model.Credentials{Email: "Some.One@Example.com", Name: "Some One", Password: "x"}
	r := &recordingT{}
	assert.True(t, Owner(r, creds, apidef.UserInfo{Email: "some.one@example.com", Name: "Some One"}))
	assert.False(t, Owner(r, creds, apidef.UserInfo{Email: "some.one@example.com", Name: "some one"}))
	assert.False(t, Owner(r, creds, apidef.UserInfo{Email: "other@example.com", Name: "Some One"}))

	r = &recordingT{}
	assert.False(t, Owner(r, creds, apidef.UserInfo{Email: "Some.One@Example.com", Name: "Some One"}))
	require.Len(t, r.failures, 1)
	assert.Contains(t, r.failures[0], "user email")
}

func TestFailure(t *testing.T) {
	resp := &apiclient.Response{
		StatusCode: 401,
		Message:    apidef.MessageUnauthorised,
		Body:       ldvalue.ObjectBuild().Set("success", ldvalue.Bool(false)).Build(),
	}
	r := &recordingT{}
	assert.True(t, Failure(r, resp, apidef.MessageUnauthorised))
	assert.False(t, Failure(r, resp, apidef.MessageIncorrectLogin))

	resp.Success = true
	assert.False(t, Failure(r, resp, apidef.MessageUnauthorised))

	assert.False(t, Failure(r, &apiclient.Response{StatusCode: 500, Body: ldvalue.Null()}, "anything"))
	assert.False(t, Failure(r, nil, "anything"))
}

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	return s
}

func TestTokens(t *testing.T) {
	valid := signedToken(t, jwt.MapClaims{"id": "u1", "exp": time.Now().Add(time.Minute * 20).Unix()})

	r := &recordingT{}
	assert.True(t, Tokens(r, model.TokenPair{AccessToken: "Bearer " + valid, RefreshToken: "r"}))
	assert.False(t, r.failed())

	t.Run("missing prefix", func(t *testing.T) {
		assert.False(t, Tokens(&recordingT{}, model.TokenPair{AccessToken: valid, RefreshToken: "r"}))
	})

	t.Run("not a JWT", func(t *testing.T) {
		assert.False(t, Tokens(&recordingT{}, model.TokenPair{AccessToken: "Bearer abc", RefreshToken: "r"}))
	})

	t.Run("no expiry", func(t *testing.T) {
		noExp := signedToken(t, jwt.MapClaims{"id": "u1"})
		assert.False(t, Tokens(&recordingT{}, model.TokenPair{AccessToken: "Bearer " + noExp, RefreshToken: "r"}))
	})

	t.Run("no refresh token", func(t *testing.T) {
		assert.False(t, Tokens(&recordingT{}, model.TokenPair{AccessToken: "Bearer " + valid}))
	})
}
