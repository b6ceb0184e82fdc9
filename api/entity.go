package api

import "strings"

// EntityType names a Grocy table reachable through the generic objects API.
type EntityType string

const (
	EntityProducts                EntityType = "products"
	EntityChores                  EntityType = "chores"
	EntityProductBarcodes         EntityType = "product_barcodes"
	EntityBatteries               EntityType = "batteries"
	EntityLocations               EntityType = "locations"
	EntityQuantityUnits           EntityType = "quantity_units"
	EntityQuantityUnitConversions EntityType = "quantity_unit_conversions"
	EntityShoppingList            EntityType = "shopping_list"
	EntityShoppingLists           EntityType = "shopping_lists"
	EntityShoppingLocations       EntityType = "shopping_locations"
	EntityRecipes                 EntityType = "recipes"
	EntityRecipesPos              EntityType = "recipes_pos"
	EntityRecipesNestings         EntityType = "recipes_nestings"
	EntityTasks                   EntityType = "tasks"
	EntityTaskCategories          EntityType = "task_categories"
	EntityProductGroups           EntityType = "product_groups"
	EntityEquipment               EntityType = "equipment"
	EntityUserfields              EntityType = "userfields"
	EntityUserentities            EntityType = "userentities"
	EntityUserobjects             EntityType = "userobjects"
	EntityMealPlan                EntityType = "meal_plan"
	EntityMealPlanSections        EntityType = "meal_plan_sections"
	EntityStockLog                EntityType = "stock_log"
)

// EntityTypes lists the entities Grocy ships with in a stable order. The
// objects API accepts other names too, such as log tables and user entities.
var EntityTypes = []EntityType{
	EntityProducts, EntityChores, EntityProductBarcodes, EntityBatteries,
	EntityLocations, EntityQuantityUnits, EntityQuantityUnitConversions,
	EntityShoppingList, EntityShoppingLists, EntityShoppingLocations,
	EntityRecipes, EntityRecipesPos, EntityRecipesNestings, EntityTasks,
	EntityTaskCategories, EntityProductGroups, EntityEquipment,
	EntityUserfields, EntityUserentities, EntityUserobjects, EntityMealPlan,
	EntityMealPlanSections, EntityStockLog,
}

// Known reports whether e is one of EntityTypes.
func (e EntityType) Known() bool {
	for _, known := range EntityTypes {
		if e == known {
			return true
		}
	}
	return false
}

// Valid reports whether e can name a collection in a request path. The
// server decides whether the collection exists.
func (e EntityType) Valid() bool {
	return strings.TrimSpace(string(e)) != "" && !strings.Contains(string(e), "/") && e != "." && e != ".."
}
