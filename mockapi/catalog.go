package mockapi

import "github.com/orderapi/contract-tests/apidef"

// DefaultCatalog returns a small ingredient catalog with object-id style identifiers.
func DefaultCatalog() []apidef.Ingredient {
	return []apidef.Ingredient{
		{ID: "643d69a5c3f7b9001cfa093c", Name: "Crater bun N-200i", Type: "bun",
			Proteins: 80, Fat: 24, Carbohydrates: 53, Calories: 420, Price: 1255},
		{ID: "643d69a5c3f7b9001cfa093d", Name: "Fluorescent bun R2-D3", Type: "bun",
			Proteins: 44, Fat: 26, Carbohydrates: 85, Calories: 643, Price: 988},
		{ID: "643d69a5c3f7b9001cfa0941", Name: "Biocutlet from Martian magnolia", Type: "main",
			Proteins: 420, Fat: 142, Carbohydrates: 242, Calories: 4242, Price: 424},
		{ID: "643d69a5c3f7b9001cfa0944", Name: "Tetraodontimform fillet", Type: "main",
			Proteins: 44, Fat: 26, Carbohydrates: 85, Calories: 643, Price: 988},
		{ID: "643d69a5c3f7b9001cfa0942", Name: "Spicy-X sauce", Type: "sauce",
			Proteins: 30, Fat: 20, Carbohydrates: 40, Calories: 30, Price: 90},
		{ID: "643d69a5c3f7b9001cfa0945", Name: "Antarian flat-walker sauce", Type: "sauce",
			Proteins: 101, Fat: 99, Carbohydrates: 100, Calories: 100, Price: 88},
	}
}
