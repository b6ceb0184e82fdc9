package grocy

import (
	"context"
	"encoding/base64"
	"strconv"

	"github.com/five82/pantry/api"
	"github.com/five82/pantry/parse"
)

// DefaultPictureWidth is the best_fit_width used when none is given.
const DefaultPictureWidth = 400

// MealPlanFetcher loads the recipe and section a meal plan entry points at.
// *api.Client satisfies it.
type MealPlanFetcher interface {
	Recipe(ctx context.Context, recipeID int) (*api.RecipeDetailsResponse, error)
	MealPlanSection(ctx context.Context, sectionID int) (*api.MealPlanSectionResponse, error)
}

var _ MealPlanFetcher = (*api.Client)(nil)

// RecipeItem is a recipe referenced from the meal plan.
type RecipeItem struct {
	id              int
	name            string
	description     string
	baseServings    *int
	desiredServings *int
	pictureFileName string
}

// RecipeItemFromResponse builds a recipe from its record.
func RecipeItemFromResponse(resp *api.RecipeDetailsResponse) (*RecipeItem, error) {
	if resp == nil {
		return nil, &ShapeError{Model: "recipe", Shape: "nil recipe record"}
	}
	return &RecipeItem{
		id:              resp.ID,
		name:            resp.Name,
		description:     resp.Description,
		baseServings:    resp.BaseServings,
		desiredServings: resp.DesiredServings,
		pictureFileName: resp.PictureFileName,
	}, nil
}

func (r *RecipeItem) ID() int { return r.id }
func (r *RecipeItem) Name() string { return r.name }
func (r *RecipeItem) Description() string { return r.description }
func (r *RecipeItem) BaseServings() *int { return r.baseServings }
func (r *RecipeItem) DesiredServings() *int { return r.desiredServings }
func (r *RecipeItem) PictureFileName() string { return r.pictureFileName }

// PictureURLPath is the API path serving the recipe picture scaled to width,
// or "" when the recipe has no picture. A width of zero or less uses
// DefaultPictureWidth.
func (r *RecipeItem) PictureURLPath(width int) string {
	if r.pictureFileName == "" {
		return ""
	}
	if width <= 0 {
		width = DefaultPictureWidth
	}
	name := base64.StdEncoding.EncodeToString([]byte(r.pictureFileName))
	return "files/recipepictures/" + name + "?force_serve_as=picture&best_fit_width=" + strconv.Itoa(width)
}

// MealPlanSection is a named slot of a meal plan day.
type MealPlanSection struct {
	id                  int
	name                string
	sortNumber          *int
	rowCreatedTimestamp *parse.Time
}

// MealPlanSectionFromResponse builds a section from its record.
func MealPlanSectionFromResponse(resp *api.MealPlanSectionResponse) (*MealPlanSection, error) {
	if resp == nil {
		return nil, &ShapeError{Model: "meal plan section", Shape: "nil section record"}
	}
	return &MealPlanSection{
		id:                  resp.ID,
		name:                resp.Name,
		sortNumber:          resp.SortNumber,
		rowCreatedTimestamp: resp.RowCreatedTimestamp,
	}, nil
}

func (s *MealPlanSection) ID() int { return s.id }
func (s *MealPlanSection) Name() string { return s.name }
func (s *MealPlanSection) SortNumber() *int { return s.sortNumber }
func (s *MealPlanSection) RowCreatedTimestamp() *parse.Time { return s.rowCreatedTimestamp }

// MealPlanItem is one meal plan entry. Recipe and Section stay nil until
// FetchDetails loads them.
type MealPlanItem struct {
	id             int
	day            *parse.Time
	itemType       *api.MealPlanItemType
	recipeID       *int
	recipeServings *int
	note           string
	productID      *int
	productAmount  *float64
	sectionID      *int

	recipe  *RecipeItem
	section *MealPlanSection
}

// MealPlanItemFromResponse builds an entry from its record.
func MealPlanItemFromResponse(resp *api.MealPlanResponse) (*MealPlanItem, error) {
	if resp == nil {
		return nil, &ShapeError{Model: "meal plan item", Shape: "nil meal plan record"}
	}
	return &MealPlanItem{
		id:             resp.ID,
		day:            resp.Day,
		itemType:       resp.Type,
		recipeID:       resp.RecipeID,
		recipeServings: resp.RecipeServings,
		note:           resp.Note,
		productID:      resp.ProductID,
		productAmount:  resp.ProductAmount,
		sectionID:      resp.SectionID,
	}, nil
}

// FetchDetails loads the referenced recipe and section, each only when the
// entry names one. Section ids below 1 mean "no section" and are skipped. An
// empty response leaves the previous value in place.
func (m *MealPlanItem) FetchDetails(ctx context.Context, fetcher MealPlanFetcher) error {
	if m.recipeID != nil {
		resp, err := fetcher.Recipe(ctx, *m.recipeID)
		if err != nil {
			return err
		}
		if resp != nil {
			m.recipe, _ = RecipeItemFromResponse(resp)
		}
	}
	if m.sectionID != nil && *m.sectionID > 0 {
		resp, err := fetcher.MealPlanSection(ctx, *m.sectionID)
		if err != nil {
			return err
		}
		if resp != nil {
			m.section, _ = MealPlanSectionFromResponse(resp)
		}
	}
	return nil
}

func (m *MealPlanItem) ID() int { return m.id }
func (m *MealPlanItem) Day() *parse.Time { return m.day }
func (m *MealPlanItem) Type() *api.MealPlanItemType { return m.itemType }
func (m *MealPlanItem) RecipeID() *int { return m.recipeID }
func (m *MealPlanItem) RecipeServings() *int { return m.recipeServings }
func (m *MealPlanItem) Note() string { return m.note }
func (m *MealPlanItem) ProductID() *int { return m.productID }
func (m *MealPlanItem) ProductAmount() *float64 { return m.productAmount }
func (m *MealPlanItem) SectionID() *int { return m.sectionID }
func (m *MealPlanItem) Recipe() *RecipeItem { return m.recipe }
func (m *MealPlanItem) Section() *MealPlanSection { return m.section }
