// Package grocy provides the domain model and facade over a Grocy server.
//
// # Overview
//
// Package api returns one record per JSON shape. This package turns those
// records into the entities a caller works with: Product, Chore, Task,
// Battery, MealPlanItem, ShoppingListProduct, User and the system
// descriptions. Grocy is the single entry point that composes both layers.
//
// # Architecture
//
//   - grocy.go: Grocy, options, users, system and generic objects
//   - stock_ops.go: stock, volatile stock, master data, shopping list
//   - household_ops.go: chores, tasks, batteries, meal plan
//   - product.go, chore.go, task.go, battery.go, meal.go, system.go: models
//   - errors.go: ShapeError
//
// # Construction
//
// Every model is built by a named factory that states its source shape:
//
//	ProductFromStockEntry(*api.CurrentStockResponse)
//	ProductFromMissing(*api.MissingProductResponse)
//	ProductFromDetails(*api.ProductDetailsResponse)
//	ProductFromData(*api.ProductData)
//
// The shape decides which optional fields are set. A product built from a
// missing products entry has AmountMissing and IsPartlyInStock but no
// AvailableAmount; one built from a stock entry is the reverse. Fields a
// shape does not carry stay nil, never zero. A factory given nil returns a
// *ShapeError.
//
// Models expose getters only. Child values (users, categories, units,
// recipes, sections) are copies owned by their parent; two entities that
// reference the same user id hold independent User values.
//
// # Detail Hydration
//
// Product, Chore, Battery, ShoppingListProduct and MealPlanItem start as
// summaries when built from a list call. FetchDetails issues the follow-up
// request and merges the answer into the receiver:
//
//	chores, err := g.Chores(ctx, false, nil)
//	for _, c := range chores {
//		if err := c.FetchDetails(ctx, g.Client()); err != nil {
//			return err
//		}
//	}
//
// FetchDetails always goes to the server. Calling it twice makes two
// requests and leaves the same result as calling it once. An empty
// response leaves the receiver as it was. A ShoppingListProduct without a
// product id makes no request; a MealPlanItem requests its recipe and its
// section independently and only when it names them.
//
// The fetcher argument is a narrow interface (ProductFetcher, ChoreFetcher,
// BatteryFetcher, MealPlanFetcher) that *api.Client satisfies, so tests can
// hand in a stub.
//
// # Batches
//
// The list operations that take getDetails hydrate items one after another.
// The first failing detail request aborts the call and its error is
// returned as is. Callers who want to skip failing items list without
// details and call FetchDetails themselves.
//
// # Thread Safety
//
// Grocy is safe for concurrent use. Model values are not: hydrating the
// same value from two goroutines is a data race and the caller's to avoid.
package grocy
