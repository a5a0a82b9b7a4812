package mockapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/orderapi/contract-tests/apidef"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const orderStatusDone = "done"

func (s *Server) ingredients(c echo.Context) error {
	return c.JSON(http.StatusOK, apidef.IngredientsResponse{
		Envelope: apidef.Envelope{Success: true},
		Data:     s.config.Catalog,
	})
}

func (s *Server) createOrder(c echo.Context) error {
	var body apidef.OrderParams
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}
	if len(body.Ingredients) == 0 {
		return fail(c, http.StatusBadRequest, apidef.MessageIngredientsMissing)
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	items := make([]apidef.Ingredient, 0, len(body.Ingredients))
	for _, id := range body.Ingredients {
		item, ok := s.catalog[id]
		if !ok {
			// The real service fails while looking up the ingredient and answers with its default
			// error page rather than a JSON envelope.
			s.logger.Debug("unknown ingredient id", zap.String("id", id))
			return c.HTML(http.StatusInternalServerError, internalErrorPage)
		}
		items = append(items, item)
	}

	now := s.now()
	ts := now.Format(timestampLayout)
	number := s.nextNumber
	s.nextNumber++
	name := orderName(items)

	owner := currentAccount(c)
	if owner == nil {
		return c.JSON(http.StatusOK, apidef.CreateOrderResponse{
			Envelope: apidef.Envelope{Success: true},
			Name:     name,
			Order:    apidef.CreatedOrder{Number: number},
		})
	}

	price := 0
	for _, item := range items {
		price += item.Price
	}
	stored := &storedOrder{
		order: apidef.OrderReturned{
			ID:          uuid.NewString(),
			Ingredients: append([]string(nil), body.Ingredients...),
			Status:      orderStatusDone,
			Name:        name,
			CreatedAt:   ts,
			UpdatedAt:   ts,
			Number:      number,
		},
		ownerID: owner.id,
		updated: now,
	}
	s.orders = append(s.orders, stored)

	info := owner.info()
	return c.JSON(http.StatusOK, apidef.CreateOrderResponse{
		Envelope: apidef.Envelope{Success: true},
		Name:     name,
		Order: apidef.CreatedOrder{
			ID:          stored.order.ID,
			Ingredients: items,
			Owner:       &info,
			Status:      orderStatusDone,
			Name:        name,
			CreatedAt:   ts,
			UpdatedAt:   ts,
			Number:      number,
			Price:       &price,
		},
	})
}

func (s *Server) listOrders(c echo.Context) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	mine := s.ordersOf(currentAccount(c).id)
	if len(mine) > s.config.ListLimit {
		mine = mine[len(mine)-s.config.ListLimit:]
	}
	orders := make([]apidef.OrderReturned, 0, len(mine))
	for _, o := range mine {
		orders = append(orders, o.order)
	}
	if s.config.Descending {
		for i, j := 0, len(orders)-1; i < j; i, j = i+1, j-1 {
			orders[i], orders[j] = orders[j], orders[i]
		}
	}

	startOfDay := time.Now().UTC().Truncate(time.Hour * 24)
	today := 0
	for _, o := range s.orders {
		if !o.updated.Before(startOfDay) {
			today++
		}
	}
	return c.JSON(http.StatusOK, apidef.OrdersResponse{
		Envelope:   apidef.Envelope{Success: true},
		Orders:     orders,
		Total:      len(s.orders),
		TotalToday: today,
	})
}

// orderName mimics the service's generated names: the distinct ingredient types, then "burger".
func orderName(items []apidef.Ingredient) string {
	seen := make(map[string]bool)
	var parts []string
	for _, item := range items {
		if !seen[item.Type] {
			seen[item.Type] = true
			parts = append(parts, item.Type)
		}
	}
	return strings.Join(append(parts, "burger"), " ")
}
