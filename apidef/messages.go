package apidef

// Error messages the API documents. The text is part of the contract, so checks compare it exactly.
const (
	MessageRequiredFields     = "Email, password and name are required fields"
	MessageUserExists         = "User already exists"
	MessageIncorrectLogin     = "email or password are incorrect"
	MessageUnauthorised       = "You should be authorised"
	MessageEmailTaken         = "User with such email already exists"
	MessageIngredientsMissing = "Ingredient ids must be provided"
)

// OrderListCap is the documented maximum number of orders returned by GET /orders.
const OrderListCap = 50

const (
	PathRegister    = "/auth/register"
	PathLogin       = "/auth/login"
	PathUser        = "/auth/user"
	PathIngredients = "/ingredients"
	PathOrders      = "/orders"
)
