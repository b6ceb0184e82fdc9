package grocy

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/five82/pantry/api"
)

// Chores lists chores. With getDetails every chore is hydrated with its own
// request, in order; the first failure aborts the listing.
func (g *Grocy) Chores(ctx context.Context, getDetails bool, filters api.Filters) ([]*Chore, error) {
	entries, err := g.client.Chores(ctx, filters)
	if err != nil {
		return nil, err
	}
	chores, err := collect(entries, ChoreFromCurrent)
	if err != nil {
		return nil, err
	}
	if getDetails {
		g.logger.Debug("fetching chore details", zap.Int("count", len(chores)))
		for _, c := range chores {
			if err := c.FetchDetails(ctx, g.client); err != nil {
				return nil, err
			}
		}
	}
	return chores, nil
}

// Chore returns one detailed chore, or nil when the server has none.
func (g *Grocy) Chore(ctx context.Context, choreID int) (*Chore, error) {
	details, err := g.client.ChoreDetails(ctx, choreID)
	if err != nil || details == nil {
		return nil, err
	}
	return ChoreFromDetails(details)
}

// ExecuteChore tracks an execution of a chore.
func (g *Grocy) ExecuteChore(ctx context.Context, choreID int, req api.ChoreExecution) error {
	return g.client.ExecuteChore(ctx, choreID, req)
}

// Tasks lists tasks.
func (g *Grocy) Tasks(ctx context.Context, filters api.Filters) ([]*Task, error) {
	records, err := g.client.Tasks(ctx, filters)
	if err != nil {
		return nil, err
	}
	return collect(records, TaskFromResponse)
}

// Task returns one task, or nil when the server has none.
func (g *Grocy) Task(ctx context.Context, taskID int) (*Task, error) {
	resp, err := g.client.Task(ctx, taskID)
	if err != nil || resp == nil {
		return nil, err
	}
	return TaskFromResponse(resp)
}

// CompleteTask marks a task done. A zero doneTime means now.
func (g *Grocy) CompleteTask(ctx context.Context, taskID int, doneTime time.Time) error {
	return g.client.CompleteTask(ctx, taskID, doneTime)
}

// Batteries lists batteries, optionally hydrating each one.
func (g *Grocy) Batteries(ctx context.Context, getDetails bool, filters api.Filters) ([]*Battery, error) {
	entries, err := g.client.Batteries(ctx, filters)
	if err != nil {
		return nil, err
	}
	batteries, err := collect(entries, BatteryFromCurrent)
	if err != nil {
		return nil, err
	}
	if getDetails {
		g.logger.Debug("fetching battery details", zap.Int("count", len(batteries)))
		for _, b := range batteries {
			if err := b.FetchDetails(ctx, g.client); err != nil {
				return nil, err
			}
		}
	}
	return batteries, nil
}

// Battery returns one detailed battery, or nil when the server has none.
func (g *Grocy) Battery(ctx context.Context, batteryID int) (*Battery, error) {
	details, err := g.client.BatteryDetails(ctx, batteryID)
	if err != nil || details == nil {
		return nil, err
	}
	return BatteryFromDetails(details)
}

// ChargeBattery tracks a charge cycle. A zero trackedTime means now.
func (g *Grocy) ChargeBattery(ctx context.Context, batteryID int, trackedTime time.Time) error {
	return g.client.ChargeBattery(ctx, batteryID, trackedTime)
}

// MealPlan lists meal plan entries. With getDetails each entry loads its
// recipe and section.
func (g *Grocy) MealPlan(ctx context.Context, getDetails bool, filters api.Filters) ([]*MealPlanItem, error) {
	records, err := g.client.MealPlan(ctx, filters)
	if err != nil {
		return nil, err
	}
	items, err := collect(records, MealPlanItemFromResponse)
	if err != nil {
		return nil, err
	}
	if getDetails {
		g.logger.Debug("fetching meal plan details", zap.Int("count", len(items)))
		for _, m := range items {
			if err := m.FetchDetails(ctx, g.client); err != nil {
				return nil, err
			}
		}
	}
	return items, nil
}

// MealPlanSections lists meal plan sections.
func (g *Grocy) MealPlanSections(ctx context.Context, filters api.Filters) ([]*MealPlanSection, error) {
	records, err := g.client.MealPlanSections(ctx, filters)
	if err != nil {
		return nil, err
	}
	return collect(records, MealPlanSectionFromResponse)
}

// MealPlanSection returns one section, or nil when the server has none.
func (g *Grocy) MealPlanSection(ctx context.Context, sectionID int) (*MealPlanSection, error) {
	resp, err := g.client.MealPlanSection(ctx, sectionID)
	if err != nil || resp == nil {
		return nil, err
	}
	return MealPlanSectionFromResponse(resp)
}

// Recipe returns one recipe, or nil when the server has none.
func (g *Grocy) Recipe(ctx context.Context, recipeID int) (*RecipeItem, error) {
	resp, err := g.client.Recipe(ctx, recipeID)
	if err != nil || resp == nil {
		return nil, err
	}
	return RecipeItemFromResponse(resp)
}

// ConsumeRecipe books a recipe's ingredients out of stock.
func (g *Grocy) ConsumeRecipe(ctx context.Context, recipeID int) error {
	return g.client.ConsumeRecipe(ctx, recipeID)
}
