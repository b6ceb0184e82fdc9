package api

import (
	"github.com/five82/pantry/parse"
)

// MealPlanItemType is what a meal plan entry refers to.
type MealPlanItemType string

const (
	MealPlanNote    MealPlanItemType = "note"
	MealPlanProduct MealPlanItemType = "product"
	MealPlanRecipe  MealPlanItemType = "recipe"
)

// Valid reports whether m is a known meal plan entry type.
func (m MealPlanItemType) Valid() bool {
	switch m {
	case MealPlanNote, MealPlanProduct, MealPlanRecipe:
		return true
	}
	return false
}

// MealPlanResponse is a row of objects/meal_plan.
type MealPlanResponse struct {
	ID                  int
	Day                 *parse.Time
	Type                *MealPlanItemType
	RecipeID            *int
	RecipeServings      *int
	Note                string
	ProductID           *int
	ProductAmount       *float64
	ProductQuID         *int
	SectionID           *int
	RowCreatedTimestamp *parse.Time
	Userfields          map[string]any
}

func (m *MealPlanResponse) UnmarshalJSON(data []byte) error {
	f, err := decodeFields("meal plan", data)
	if err != nil {
		return err
	}
	*m = MealPlanResponse{
		ID:                  f.requiredInt("id"),
		Day:                 f.time("day"),
		RecipeID:            f.optInt("recipe_id"),
		RecipeServings:      f.optInt("recipe_servings"),
		Note:                f.str("note"),
		ProductID:           f.optInt("product_id"),
		ProductAmount:       f.optFloat("product_amount"),
		ProductQuID:         f.optInt("product_qu_id"),
		SectionID:           f.optInt("section_id"),
		RowCreatedTimestamp: f.time("row_created_timestamp"),
		Userfields:          f.userfields("userfields"),
	}
	if t := MealPlanItemType(f.str("type")); t.Valid() {
		m.Type = &t
	}
	return f.err
}

// MealPlanSectionResponse is a row of objects/meal_plan_sections.
type MealPlanSectionResponse struct {
	ID                  int
	Name                string
	SortNumber          *int
	RowCreatedTimestamp *parse.Time
}

func (s *MealPlanSectionResponse) UnmarshalJSON(data []byte) error {
	f, err := decodeFields("meal plan section", data)
	if err != nil {
		return err
	}
	*s = MealPlanSectionResponse{
		ID:                  f.requiredInt("id"),
		Name:                f.str("name"),
		SortNumber:          f.optInt("sort_number"),
		RowCreatedTimestamp: f.time("row_created_timestamp"),
	}
	return f.err
}

// RecipeDetailsResponse is a row of objects/recipes.
type RecipeDetailsResponse struct {
	ID              int
	Name            string
	Description     string
	BaseServings    *int
	DesiredServings *int
	PictureFileName string
	Userfields      map[string]any
}

func (r *RecipeDetailsResponse) UnmarshalJSON(data []byte) error {
	f, err := decodeFields("recipe", data)
	if err != nil {
		return err
	}
	*r = RecipeDetailsResponse{
		ID:              f.requiredInt("id"),
		Name:            f.str("name"),
		Description:     f.str("description"),
		BaseServings:    f.optInt("base_servings"),
		DesiredServings: f.optInt("desired_servings"),
		PictureFileName: f.str("picture_file_name"),
		Userfields:      f.userfields("userfields"),
	}
	return f.err
}

// ShoppingListItem is a row of objects/shopping_list.
type ShoppingListItem struct {
	ID                  int
	ShoppingListID      *int
	ProductID           *int
	Note                string
	Amount              float64
	Done                bool
	RowCreatedTimestamp *parse.Time
	Userfields          map[string]any
}

func (s *ShoppingListItem) UnmarshalJSON(data []byte) error {
	f, err := decodeFields("shopping list item", data)
	if err != nil {
		return err
	}
	*s = ShoppingListItem{
		ID:                  f.requiredInt("id"),
		ShoppingListID:      f.optInt("shopping_list_id"),
		ProductID:           f.optInt("product_id"),
		Note:                f.str("note"),
		Amount:              f.floatOr("amount", 0),
		Done:                f.boolInt("done"),
		RowCreatedTimestamp: f.time("row_created_timestamp"),
		Userfields:          f.userfields("userfields"),
	}
	return f.err
}
