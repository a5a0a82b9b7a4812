package apiclient

import (
	"context"
	"net/http"

	"github.com/orderapi/contract-tests/apidef"
)

// Register sends POST /auth/register. Registration is always anonymous.
func (c *Client) Register(ctx context.Context, params apidef.RegistrationParams, expectedStatus int) (*Response, error) {
	return c.Execute(ctx, Request{
		Method:         http.MethodPost,
		Path:           apidef.PathRegister,
		Body:           params,
		ExpectedStatus: expectedStatus,
	})
}

// Login sends POST /auth/login.
func (c *Client) Login(ctx context.Context, params apidef.LoginParams, expectedStatus int) (*Response, error) {
	return c.Execute(ctx, Request{
		Method:         http.MethodPost,
		Path:           apidef.PathLogin,
		Body:           params,
		ExpectedStatus: expectedStatus,
	})
}

// UpdateUser sends PATCH /auth/user. An empty token sends the request anonymously.
func (c *Client) UpdateUser(
	ctx context.Context,
	token string,
	params apidef.RegistrationParams,
	expectedStatus int,
) (*Response, error) {
	return c.Execute(ctx, Request{
		Method:         http.MethodPatch,
		Path:           apidef.PathUser,
		Body:           params,
		Token:          token,
		ExpectedStatus: expectedStatus,
	})
}

// DeleteUser sends DELETE /auth/user and requires the API to accept it.
func (c *Client) DeleteUser(ctx context.Context, token string) error {
	if token == "" {
		return ErrNoToken
	}
	_, err := c.Execute(ctx, Request{
		Method:         http.MethodDelete,
		Path:           apidef.PathUser,
		Token:          token,
		ExpectedStatus: http.StatusAccepted,
	})
	return err
}

// Ingredients fetches the ingredient catalog.
func (c *Client) Ingredients(ctx context.Context) ([]apidef.Ingredient, error) {
	resp, err := c.Execute(ctx, Request{
		Method:         http.MethodGet,
		Path:           apidef.PathIngredients,
		ExpectedStatus: http.StatusOK,
	})
	if err != nil {
		return nil, err
	}
	var ir apidef.IngredientsResponse
	if err := resp.Decode(&ir); err != nil {
		return nil, err
	}
	return ir.Data, nil
}

// CreateOrder sends POST /orders. An empty token places an anonymous order.
func (c *Client) CreateOrder(
	ctx context.Context,
	token string,
	params apidef.OrderParams,
	expectedStatus int,
) (*Response, error) {
	return c.Execute(ctx, Request{
		Method:         http.MethodPost,
		Path:           apidef.PathOrders,
		Body:           params,
		Token:          token,
		ExpectedStatus: expectedStatus,
	})
}

// ListOrders sends GET /orders.
func (c *Client) ListOrders(ctx context.Context, token string, expectedStatus int) (*Response, error) {
	return c.Execute(ctx, Request{
		Method:         http.MethodGet,
		Path:           apidef.PathOrders,
		Token:          token,
		ExpectedStatus: expectedStatus,
	})
}
