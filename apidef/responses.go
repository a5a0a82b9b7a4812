package apidef

// Envelope is the part of every response body that the API always sends.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// UserInfo is the "user" object of the auth responses, and the "owner" object of a created order.
type UserInfo struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// AuthResponse is returned by POST /auth/register and POST /auth/login. PATCH /auth/user returns
// the same shape without tokens.
type AuthResponse struct {
	Envelope
	AccessToken  string   `json:"accessToken,omitempty"`
	RefreshToken string   `json:"refreshToken,omitempty"`
	User         UserInfo `json:"user"`
}

// Ingredient is one element of the ingredient catalog.
type Ingredient struct {
	ID            string `json:"_id"`
	Name          string `json:"name"`
	Type          string `json:"type"`
	Proteins      int    `json:"proteins"`
	Fat           int    `json:"fat"`
	Carbohydrates int    `json:"carbohydrates"`
	Calories      int    `json:"calories"`
	Price         int    `json:"price"`
	Image         string `json:"image"`
	ImageMobile   string `json:"image_mobile"`
	ImageLarge    string `json:"image_large"`
	Version       int    `json:"__v"`
}

// IngredientsResponse is returned by GET /ingredients.
type IngredientsResponse struct {
	Envelope
	Data []Ingredient `json:"data"`
}

// CreatedOrder is the "order" object returned by POST /orders. Anonymous orders carry only Number;
// the other fields are filled in when the order was placed by an authenticated user.
type CreatedOrder struct {
	ID          string       `json:"_id,omitempty"`
	Ingredients []Ingredient `json:"ingredients,omitempty"`
	Owner       *UserInfo    `json:"owner,omitempty"`
	Status      string       `json:"status,omitempty"`
	Name        string       `json:"name,omitempty"`
	CreatedAt   string       `json:"createdAt,omitempty"`
	UpdatedAt   string       `json:"updatedAt,omitempty"`
	Number      int          `json:"number"`
	Price       *int         `json:"price,omitempty"`
}

// CreateOrderResponse is returned by POST /orders.
type CreateOrderResponse struct {
	Envelope
	Name  string       `json:"name"`
	Order CreatedOrder `json:"order"`
}

// OrderReturned is one element of the order listing. Its ingredients are ids, not full objects.
type OrderReturned struct {
	ID          string   `json:"_id"`
	Ingredients []string `json:"ingredients"`
	Status      string   `json:"status"`
	Name        string   `json:"name"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
	Number      int      `json:"number"`
}

// SameComposition reports whether two orders have the same ingredient id sequence, which is the only
// notion of equality the harness needs between orders; every other field is descriptive.
func (o OrderReturned) SameComposition(other OrderReturned) bool {
	if len(o.Ingredients) != len(other.Ingredients) {
		return false
	}
	for i, id := range o.Ingredients {
		if other.Ingredients[i] != id {
			return false
		}
	}
	return true
}

// OrdersResponse is returned by GET /orders.
type OrdersResponse struct {
	Envelope
	Orders     []OrderReturned `json:"orders"`
	Total      int             `json:"total"`
	TotalToday int             `json:"totalToday"`
}
