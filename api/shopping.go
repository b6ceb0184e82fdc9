package api

import (
	"context"
)

// DefaultShoppingListID is the list Grocy creates on install.
const DefaultShoppingListID = 1

// ShoppingListAdd puts a product on a shopping list.
type ShoppingListAdd struct {
	ProductID int
	// ListID defaults to DefaultShoppingListID.
	ListID int
	// Amount defaults to 1.
	Amount         float64
	QuantityUnitID *int
	Note           string
}

func (a ShoppingListAdd) body() map[string]any {
	data := map[string]any{
		"product_id":     a.ProductID,
		"list_id":        listOrDefault(a.ListID),
		"product_amount": amountOrOne(a.Amount),
	}
	if a.QuantityUnitID != nil {
		data["qu_id"] = *a.QuantityUnitID
	}
	if a.Note != "" {
		data["note"] = a.Note
	}
	return data
}

// ShoppingListRemove takes an amount of a product off a shopping list.
type ShoppingListRemove struct {
	ProductID int
	ListID    int
	Amount    float64
}

func (r ShoppingListRemove) body() map[string]any {
	return map[string]any{
		"product_id":     r.ProductID,
		"list_id":        listOrDefault(r.ListID),
		"product_amount": amountOrOne(r.Amount),
	}
}

func listOrDefault(id int) int {
	if id <= 0 {
		return DefaultShoppingListID
	}
	return id
}

func amountOrOne(amount float64) float64 {
	if amount <= 0 {
		return 1
	}
	return amount
}

// ShoppingList lists shopping list rows across all lists.
func (c *Client) ShoppingList(ctx context.Context, filters Filters) ([]ShoppingListItem, error) {
	var out []ShoppingListItem
	if _, err := c.get(ctx, "objects/shopping_list", filters.values(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddMissingProductsToShoppingList adds everything below min stock.
func (c *Client) AddMissingProductsToShoppingList(ctx context.Context, listID int) error {
	_, err := c.post(ctx, "stock/shoppinglist/add-missing-products", map[string]any{"list_id": listOrDefault(listID)}, nil)
	return err
}

// AddProductToShoppingList puts a product on a list.
func (c *Client) AddProductToShoppingList(ctx context.Context, req ShoppingListAdd) error {
	_, err := c.post(ctx, "stock/shoppinglist/add-product", req.body(), nil)
	return err
}

// RemoveProductFromShoppingList takes a product off a list.
func (c *Client) RemoveProductFromShoppingList(ctx context.Context, req ShoppingListRemove) error {
	_, err := c.post(ctx, "stock/shoppinglist/remove-product", req.body(), nil)
	return err
}

// ClearShoppingList empties a list.
func (c *Client) ClearShoppingList(ctx context.Context, listID int) error {
	_, err := c.post(ctx, "stock/shoppinglist/clear", map[string]any{"list_id": listOrDefault(listID)}, nil)
	return err
}

// MealPlan lists meal plan entries.
func (c *Client) MealPlan(ctx context.Context, filters Filters) ([]MealPlanResponse, error) {
	var out []MealPlanResponse
	if _, err := c.get(ctx, "objects/meal_plan", filters.values(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MealPlanSections lists meal plan sections.
func (c *Client) MealPlanSections(ctx context.Context, filters Filters) ([]MealPlanSectionResponse, error) {
	var out []MealPlanSectionResponse
	if _, err := c.get(ctx, "objects/meal_plan_sections", filters.values(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MealPlanSection fetches one section.
func (c *Client) MealPlanSection(ctx context.Context, sectionID int) (*MealPlanSectionResponse, error) {
	var out MealPlanSectionResponse
	ok, err := c.get(ctx, "objects/meal_plan_sections/"+itoa(sectionID), nil, &out)
	if err != nil || !ok {
		return nil, err
	}
	return &out, nil
}

// Recipe fetches one recipe.
func (c *Client) Recipe(ctx context.Context, recipeID int) (*RecipeDetailsResponse, error) {
	var out RecipeDetailsResponse
	ok, err := c.get(ctx, "objects/recipes/"+itoa(recipeID), nil, &out)
	if err != nil || !ok {
		return nil, err
	}
	return &out, nil
}

// ConsumeRecipe books the ingredients of a recipe out of stock.
func (c *Client) ConsumeRecipe(ctx context.Context, recipeID int) error {
	_, err := c.post(ctx, "recipes/"+itoa(recipeID)+"/consume", nil, nil)
	return err
}
