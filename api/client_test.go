package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/five82/pantry/internal/grocytest"
)

func TestStock(t *testing.T) {
	client, _ := newTestClient(t, "k")
	stock, err := client.Stock(context.Background())
	if err != nil {
		t.Fatalf("Stock returned error: %v", err)
	}
	if len(stock) != 2 {
		t.Fatalf("len(stock) = %d, want 2", len(stock))
	}
	if stock[0].ProductID != 0 || stock[0].Amount != 12.53 {
		t.Fatalf("stock[0] = %#v, want product 0 amount 12.53", stock[0])
	}
	if stock[1].ProductID != 10 || stock[1].Product == nil || stock[1].Product.Name != "Cheese" {
		t.Fatalf("stock[1] = %#v, want Cheese", stock[1])
	}
}

func TestVolatileStock(t *testing.T) {
	client, srv := newTestClient(t, "k")
	volatile, err := client.VolatileStock(context.Background(), 5)
	if err != nil {
		t.Fatalf("VolatileStock returned error: %v", err)
	}
	if len(volatile.DueProducts) != 1 || volatile.DueProducts[0].ProductID != 0 {
		t.Fatalf("DueProducts = %#v, want product 0", volatile.DueProducts)
	}
	if len(volatile.OverdueProducts) != 0 {
		t.Fatalf("OverdueProducts = %#v, want empty", volatile.OverdueProducts)
	}
	if len(volatile.ExpiredProducts) != 1 || volatile.ExpiredProducts[0].ProductID != 10 {
		t.Fatalf("ExpiredProducts = %#v, want product 10", volatile.ExpiredProducts)
	}
	if len(volatile.MissingProducts) != 1 || volatile.MissingProducts[0].ProductID != 7 {
		t.Fatalf("MissingProducts = %#v, want product 7", volatile.MissingProducts)
	}
	req, _ := srv.Last(http.MethodGet, "stock/volatile")
	if got := req.Query.Get("due_soon_days"); got != "5" {
		t.Fatalf("due_soon_days = %q, want 5", got)
	}

	if _, err := client.VolatileStock(context.Background(), 0); err != nil {
		t.Fatalf("VolatileStock returned error: %v", err)
	}
	req, _ = srv.Last(http.MethodGet, "stock/volatile")
	if req.Query.Has("due_soon_days") {
		t.Fatalf("due_soon_days sent for zero: %v", req.Query)
	}
}

func TestProductDetails(t *testing.T) {
	client, _ := newTestClient(t, "k")
	details, err := client.ProductDetails(context.Background(), 0)
	if err != nil {
		t.Fatalf("ProductDetails returned error: %v", err)
	}
	if details.Product.Name != "test product" {
		t.Fatalf("Product.Name = %q, want test product", details.Product.Name)
	}
	if len(details.Barcodes) != 2 || details.Barcodes[0].Barcode != "string" || details.Barcodes[1].Barcode != "123" {
		t.Fatalf("Barcodes = %#v, want string,123", details.Barcodes)
	}
	if details.StockAmount == nil || *details.StockAmount != 10 {
		t.Fatalf("StockAmount = %v, want 10", details.StockAmount)
	}
	if details.QuantityUnitPurchase == nil || details.QuantityUnitPurchase.Name != "Piece" {
		t.Fatalf("QuantityUnitPurchase = %#v, want Piece", details.QuantityUnitPurchase)
	}
	if details.Location == nil || details.Location.Name != "Fridge" {
		t.Fatalf("Location = %#v, want Fridge", details.Location)
	}
}

func TestProductDetailsUnknownProduct(t *testing.T) {
	client, _ := newTestClient(t, "k")
	_, err := client.ProductDetails(context.Background(), 999)
	apiErr, ok := AsError(err)
	if !ok || apiErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("error = %v, want 400", err)
	}
}

func TestProductByBarcode(t *testing.T) {
	client, _ := newTestClient(t, "k")
	details, err := client.ProductByBarcode(context.Background(), "4006040000019")
	if err != nil {
		t.Fatalf("ProductByBarcode returned error: %v", err)
	}
	if details.Product.ID != 6 || details.Product.Name != "Milk" {
		t.Fatalf("Product = %#v, want Milk", details.Product)
	}
	if details.LastPrice == nil || *details.LastPrice != 1.09 {
		t.Fatalf("LastPrice = %v, want 1.09", details.LastPrice)
	}
}

func TestProductsFilters(t *testing.T) {
	client, srv := newTestClient(t, "k")
	products, err := client.Products(context.Background(), Filters{"name=Milk"})
	if err != nil {
		t.Fatalf("Products returned error: %v", err)
	}
	if len(products) != 1 || products[0].ID != 6 {
		t.Fatalf("products = %#v, want Milk only", products)
	}
	if products[0].QuFactorPurchaseToStock == nil || *products[0].QuFactorPurchaseToStock != 6 {
		t.Fatalf("QuFactorPurchaseToStock = %v, want 6", products[0].QuFactorPurchaseToStock)
	}
	req, _ := srv.Last(http.MethodGet, "objects/products")
	if got := req.Query["query[]"]; len(got) != 1 || got[0] != "name=Milk" {
		t.Fatalf("query[] = %v, want [name=Milk]", got)
	}
}

func TestRepeatedFilters(t *testing.T) {
	client, srv := newTestClient(t, "k")
	products, err := client.Products(context.Background(), Filters{"location_id=1", "min_stock_amount>0"})
	if err != nil {
		t.Fatalf("Products returned error: %v", err)
	}
	if len(products) != 1 || products[0].Name != "Milk" {
		t.Fatalf("products = %#v, want Milk", products)
	}
	req, _ := srv.Last(http.MethodGet, "objects/products")
	if got := req.Query["query[]"]; len(got) != 2 {
		t.Fatalf("query[] = %v, want two conditions", got)
	}
}

func TestInvalidFilterIsServerError(t *testing.T) {
	client, _ := newTestClient(t, "k")
	_, err := client.Products(context.Background(), Filters{"bogus"})
	apiErr, ok := AsError(err)
	if !ok || !apiErr.IsServerError() {
		t.Fatalf("error = %v, want server error", err)
	}
}

func TestStockBookings(t *testing.T) {
	ctx := context.Background()
	client, srv := newTestClient(t, "k")
	price := 1.5
	bestBefore := time.Date(2022, 8, 1, 0, 0, 0, 0, time.UTC)

	added, err := client.AddProduct(ctx, 6, StockAdd{Amount: 2, Price: &price, BestBeforeDate: &bestBefore})
	if err != nil {
		t.Fatalf("AddProduct returned error: %v", err)
	}
	if len(added) != 1 || added[0].TransactionType != TransactionPurchase || added[0].ProductID != 6 {
		t.Fatalf("added = %#v, want one purchase of 6", added)
	}
	body := mustLast(t, srv, http.MethodPost, "stock/products/6/add").JSON()
	if body["amount"] != 2.0 || body["price"] != 1.5 || body["best_before_date"] != "2022-08-01" {
		t.Fatalf("add body = %v", body)
	}
	if body["transaction_type"] != "purchase" {
		t.Fatalf("transaction_type = %v, want purchase", body["transaction_type"])
	}

	consumed, err := client.ConsumeProduct(ctx, 6, StockConsume{Amount: 1, Spoiled: true})
	if err != nil {
		t.Fatalf("ConsumeProduct returned error: %v", err)
	}
	if consumed[0].TransactionType != TransactionConsume || !consumed[0].Spoiled {
		t.Fatalf("consumed = %#v, want spoiled consume", consumed[0])
	}

	opened, err := client.OpenProduct(ctx, 6, StockOpen{Amount: 1})
	if err != nil {
		t.Fatalf("OpenProduct returned error: %v", err)
	}
	if opened[0].TransactionType != TransactionProductOpened {
		t.Fatalf("opened = %#v, want product-opened", opened[0])
	}

	inventory, err := client.InventoryProduct(ctx, 6, StockInventory{NewAmount: 4})
	if err != nil {
		t.Fatalf("InventoryProduct returned error: %v", err)
	}
	if inventory[0].TransactionType != TransactionInventoryCorrection {
		t.Fatalf("inventory = %#v, want inventory-correction", inventory[0])
	}
	if body := mustLast(t, srv, http.MethodPost, "stock/products/6/inventory").JSON(); body["new_amount"] != 4.0 {
		t.Fatalf("inventory body = %v", body)
	}

	log, err := client.StockLog(ctx, Filters{"product_id=6"})
	if err != nil {
		t.Fatalf("StockLog returned error: %v", err)
	}
	if len(log) != 4 {
		t.Fatalf("len(log) = %d, want 4", len(log))
	}
}

func TestStockBookingsByBarcode(t *testing.T) {
	ctx := context.Background()
	client, srv := newTestClient(t, "k")

	if _, err := client.AddProductByBarcode(ctx, "4006040000019", StockAdd{Amount: 1}); err != nil {
		t.Fatalf("AddProductByBarcode returned error: %v", err)
	}
	if _, err := client.ConsumeProductByBarcode(ctx, "4006040000019", StockConsume{Amount: 1}); err != nil {
		t.Fatalf("ConsumeProductByBarcode returned error: %v", err)
	}
	booked, err := client.InventoryProductByBarcode(ctx, "4006040000019", StockInventory{NewAmount: 3})
	if err != nil {
		t.Fatalf("InventoryProductByBarcode returned error: %v", err)
	}
	if booked[0].ProductID != 6 {
		t.Fatalf("ProductID = %d, want 6", booked[0].ProductID)
	}
	if srv.Count(http.MethodPost, "stock/products/by-barcode/4006040000019/add") != 1 {
		t.Fatal("add by barcode not requested")
	}

	_, err = client.AddProductByBarcode(ctx, "000", StockAdd{Amount: 1})
	if apiErr, ok := AsError(err); !ok || apiErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("error = %v, want 400", err)
	}
}

func TestBarcodeStaysOnePathSegment(t *testing.T) {
	ctx := context.Background()
	client, srv := newTestClient(t, "k")

	tests := []struct {
		barcode string
		path    string
	}{
		{barcode: "ab/cd", path: "stock/products/by-barcode/ab%2Fcd"},
		{barcode: "../../system/info", path: "stock/products/by-barcode/..%2F..%2Fsystem%2Finfo"},
		{barcode: "a b?c", path: "stock/products/by-barcode/a%20b%3Fc"},
	}
	for _, tt := range tests {
		t.Run(tt.barcode, func(t *testing.T) {
			srv.Reset()
			_, err := client.ProductByBarcode(ctx, tt.barcode)
			apiErr, ok := AsError(err)
			if !ok || apiErr.StatusCode != http.StatusBadRequest {
				t.Fatalf("error = %v, want 400", err)
			}
			if want := "No product with barcode " + tt.barcode + " found"; apiErr.Message != want {
				t.Fatalf("Message = %q, want %q", apiErr.Message, want)
			}
			if srv.Count(http.MethodGet, tt.path) != 1 {
				t.Fatalf("requests = %#v, want GET %s", srv.Requests(), tt.path)
			}
			if srv.Count(http.MethodGet, "system/info") != 0 {
				t.Fatal("barcode resolved to system/info")
			}

			if _, err := client.AddProductByBarcode(ctx, tt.barcode, StockAdd{Amount: 1}); err == nil {
				t.Fatal("AddProductByBarcode returned nil error")
			}
			if srv.Count(http.MethodPost, tt.path+"/add") != 1 {
				t.Fatalf("requests = %#v, want POST %s/add", srv.Requests(), tt.path)
			}
		})
	}
}

func TestStockBookingSingleObject(t *testing.T) {
	client, srv := newTestClient(t, "k")
	srv.Respond(http.MethodPost, "stock/products/6/add", http.StatusOK,
		`{"id": "9", "product_id": "6", "amount": "1", "transaction_type": "purchase"}`)

	booked, err := client.AddProduct(context.Background(), 6, StockAdd{Amount: 1})
	if err != nil {
		t.Fatalf("AddProduct returned error: %v", err)
	}
	if len(booked) != 1 || booked[0].ID != 9 {
		t.Fatalf("booked = %#v, want single booking 9", booked)
	}
}

func TestInvalidTransactionTypeNotSent(t *testing.T) {
	client, srv := newTestClient(t, "k")
	_, err := client.AddProduct(context.Background(), 6, StockAdd{Amount: 1, TransactionType: "teleport"})
	if !errors.Is(err, ErrUnknownValue) {
		t.Fatalf("error = %v, want ErrUnknownValue", err)
	}
	if srv.Count(http.MethodPost, "stock/products/6/add") != 0 {
		t.Fatal("request sent for invalid transaction type")
	}
}

func TestUploadProductPicture(t *testing.T) {
	client, srv := newTestClient(t, "k")
	picture := []byte{0xff, 0xd8, 0xff, 0xe0}

	if err := client.UploadProductPicture(context.Background(), 6, bytes.NewReader(picture)); err != nil {
		t.Fatalf("UploadProductPicture returned error: %v", err)
	}
	if got := ProductPictureFileName(6); got != "Ni5qcGc=" {
		t.Fatalf("ProductPictureFileName = %q, want Ni5qcGc=", got)
	}
	stored, ok := srv.File("productpictures", "Ni5qcGc=")
	if !ok || !bytes.Equal(stored, picture) {
		t.Fatalf("stored = %v, want %v", stored, picture)
	}
	upload := mustLast(t, srv, http.MethodPut, "files/productpictures/Ni5qcGc=")
	if got := upload.Header.Get("Content-Type"); got != "application/octet-stream" {
		t.Fatalf("Content-Type = %q, want application/octet-stream", got)
	}
	update := mustLast(t, srv, http.MethodPut, "objects/products/6").JSON()
	if update["picture_file_name"] != "6.jpg" {
		t.Fatalf("update body = %v, want picture_file_name 6.jpg", update)
	}
}

func TestMasterData(t *testing.T) {
	ctx := context.Background()
	client, _ := newTestClient(t, "k")

	units, err := client.QuantityUnits(ctx, nil)
	if err != nil || len(units) != 2 {
		t.Fatalf("QuantityUnits = %v, %v; want 2 units", units, err)
	}
	locations, err := client.Locations(ctx, Filters{"name=Pantry"})
	if err != nil || len(locations) != 1 || locations[0].ID != 2 {
		t.Fatalf("Locations = %v, %v; want Pantry", locations, err)
	}
	groups, err := client.ProductGroups(ctx, nil)
	if err != nil || len(groups) != 3 {
		t.Fatalf("ProductGroups = %v, %v; want 3 groups", groups, err)
	}
}

func TestChores(t *testing.T) {
	ctx := context.Background()
	client, srv := newTestClient(t, "k")

	chores, err := client.Chores(ctx, nil)
	if err != nil {
		t.Fatalf("Chores returned error: %v", err)
	}
	if len(chores) != 2 || chores[0].ChoreID != 4 || chores[1].ChoreID != 6 {
		t.Fatalf("chores = %#v, want 4 and 6", chores)
	}
	if !chores[1].TrackDateOnly {
		t.Fatal("chore 6 TrackDateOnly = false, want true")
	}

	details, err := client.ChoreDetails(ctx, 6)
	if err != nil {
		t.Fatalf("ChoreDetails returned error: %v", err)
	}
	if details.Chore.PeriodType == nil || *details.Chore.PeriodType != PeriodWeekly {
		t.Fatalf("PeriodType = %v, want weekly", details.Chore.PeriodType)
	}
	if details.LastDoneBy == nil || details.LastDoneBy.DisplayName != "Guzzboy" {
		t.Fatalf("LastDoneBy = %#v, want Guzzboy", details.LastDoneBy)
	}
	if details.NextExecutionAssignedUser == nil || details.NextExecutionAssignedUser.ID != 42 {
		t.Fatalf("NextExecutionAssignedUser = %#v, want 42", details.NextExecutionAssignedUser)
	}
	if details.TrackCount == nil || *details.TrackCount != 12 {
		t.Fatalf("TrackCount = %v, want 12", details.TrackCount)
	}

	tracked := time.Date(2022, 7, 10, 21, 17, 34, 0, time.UTC)
	doneBy := 1
	if err := client.ExecuteChore(ctx, 6, ChoreExecution{TrackedTime: &tracked, DoneBy: &doneBy, Skipped: true}); err != nil {
		t.Fatalf("ExecuteChore returned error: %v", err)
	}
	body := mustLast(t, srv, http.MethodPost, "chores/6/execute").JSON()
	if body["tracked_time"] != "2022-07-10T21:17:34Z" || body["done_by"] != 1.0 || body["skipped"] != true {
		t.Fatalf("execute body = %v", body)
	}

	if err := client.ExecuteChore(ctx, 4, ChoreExecution{}); err != nil {
		t.Fatalf("ExecuteChore returned error: %v", err)
	}
	body = mustLast(t, srv, http.MethodPost, "chores/4/execute").JSON()
	if _, ok := body["tracked_time"]; ok {
		t.Fatalf("tracked_time sent without a time: %v", body)
	}
}

func TestTasks(t *testing.T) {
	ctx := context.Background()
	client, srv := newTestClient(t, "k")

	tasks, err := client.Tasks(ctx, Filters{"done=0"})
	if err != nil {
		t.Fatalf("Tasks returned error: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Name != "Repair the garage door" {
		t.Fatalf("tasks = %#v, want garage door", tasks)
	}
	if tasks[0].Category == nil || tasks[0].Category.Name != "Home" {
		t.Fatalf("Category = %#v, want Home", tasks[0].Category)
	}
	if tasks[0].AssignedToUser == nil || tasks[0].AssignedToUser.ID != 1 {
		t.Fatalf("AssignedToUser = %#v, want user 1", tasks[0].AssignedToUser)
	}

	done := time.Date(2022, 7, 10, 21, 17, 34, 0, time.UTC)
	if err := client.CompleteTask(ctx, 1, done); err != nil {
		t.Fatalf("CompleteTask returned error: %v", err)
	}
	if body := mustLast(t, srv, http.MethodPost, "tasks/1/complete").JSON(); body["done_time"] != "2022-07-10T21:17:34Z" {
		t.Fatalf("complete body = %v", body)
	}
	task, err := client.Task(ctx, 1)
	if err != nil {
		t.Fatalf("Task returned error: %v", err)
	}
	if !task.Done {
		t.Fatal("task 1 not done after CompleteTask")
	}

	if err := client.CompleteTask(ctx, 3, time.Time{}); err != nil {
		t.Fatalf("CompleteTask returned error: %v", err)
	}
	if body := mustLast(t, srv, http.MethodPost, "tasks/3/complete").JSON(); body["done_time"] == nil {
		t.Fatal("done_time missing for zero time")
	}
}

func TestBatteries(t *testing.T) {
	ctx := context.Background()
	client, srv := newTestClient(t, "k")

	batteries, err := client.Batteries(ctx, nil)
	if err != nil {
		t.Fatalf("Batteries returned error: %v", err)
	}
	if len(batteries) != 2 || batteries[0].ID != 1 {
		t.Fatalf("batteries = %#v, want 1 and 2", batteries)
	}
	if batteries[1].LastTrackedTime != nil {
		t.Fatalf("battery 2 LastTrackedTime = %v, want nil", batteries[1].LastTrackedTime)
	}

	details, err := client.BatteryDetails(ctx, 1)
	if err != nil {
		t.Fatalf("BatteryDetails returned error: %v", err)
	}
	if details.Battery.Name != "Battery1" || details.Battery.UsedIn != "TV remote control" {
		t.Fatalf("Battery = %#v, want Battery1", details.Battery)
	}
	if details.ChargeCyclesCount == nil || *details.ChargeCyclesCount != 4 {
		t.Fatalf("ChargeCyclesCount = %v, want 4", details.ChargeCyclesCount)
	}
	if details.Battery.ChargeIntervalDays == nil || *details.Battery.ChargeIntervalDays != 180 {
		t.Fatalf("ChargeIntervalDays = %v, want 180", details.Battery.ChargeIntervalDays)
	}

	if err := client.ChargeBattery(ctx, 1, time.Time{}); err != nil {
		t.Fatalf("ChargeBattery returned error: %v", err)
	}
	if srv.Count(http.MethodPost, "batteries/1/charge") != 1 {
		t.Fatal("charge not requested")
	}
}

func TestShoppingList(t *testing.T) {
	ctx := context.Background()
	client, srv := newTestClient(t, "k")

	items, err := client.ShoppingList(ctx, nil)
	if err != nil {
		t.Fatalf("ShoppingList returned error: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("len(items) = %d, want 3", len(items))
	}
	if items[2].ProductID != nil || items[2].Note != "Birthday candles" {
		t.Fatalf("items[2] = %#v, want note-only row", items[2])
	}

	if err := client.AddProductToShoppingList(ctx, ShoppingListAdd{ProductID: 10, Note: "aged"}); err != nil {
		t.Fatalf("AddProductToShoppingList returned error: %v", err)
	}
	body := mustLast(t, srv, http.MethodPost, "stock/shoppinglist/add-product").JSON()
	if body["list_id"] != 1.0 || body["product_amount"] != 1.0 || body["note"] != "aged" {
		t.Fatalf("add body = %v, want defaults list 1 amount 1", body)
	}
	if err := client.RemoveProductFromShoppingList(ctx, ShoppingListRemove{ProductID: 6}); err != nil {
		t.Fatalf("RemoveProductFromShoppingList returned error: %v", err)
	}
	if err := client.AddMissingProductsToShoppingList(ctx, 0); err != nil {
		t.Fatalf("AddMissingProductsToShoppingList returned error: %v", err)
	}

	items, err = client.ShoppingList(ctx, Filters{"shopping_list_id=1"})
	if err != nil {
		t.Fatalf("ShoppingList returned error: %v", err)
	}
	if len(items) != 4 {
		t.Fatalf("len(items) = %d, want 4", len(items))
	}

	if err := client.ClearShoppingList(ctx, 1); err != nil {
		t.Fatalf("ClearShoppingList returned error: %v", err)
	}
	items, err = client.ShoppingList(ctx, nil)
	if err != nil {
		t.Fatalf("ShoppingList returned error: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("len(items) = %d, want 0 after clear", len(items))
	}
}

func TestShoppingListErrors(t *testing.T) {
	ctx := context.Background()
	client, _ := newTestClient(t, "k")

	err := client.AddProductToShoppingList(ctx, ShoppingListAdd{ProductID: 6, ListID: 3})
	apiErr, ok := AsError(err)
	if !ok || apiErr.Message != "Shopping list does not exist" {
		t.Fatalf("error = %v, want missing list", err)
	}
	err = client.RemoveProductFromShoppingList(ctx, ShoppingListRemove{ProductID: 999})
	apiErr, ok = AsError(err)
	if !ok || apiErr.Message != "Product does not exist or is inactive" {
		t.Fatalf("error = %v, want missing product", err)
	}
}

func TestMealPlanAndRecipes(t *testing.T) {
	ctx := context.Background()
	client, srv := newTestClient(t, "k")

	plan, err := client.MealPlan(ctx, nil)
	if err != nil {
		t.Fatalf("MealPlan returned error: %v", err)
	}
	if len(plan) != 4 {
		t.Fatalf("len(plan) = %d, want 4", len(plan))
	}
	if plan[1].Type == nil || *plan[1].Type != MealPlanNote || plan[1].Note != "This is a note" {
		t.Fatalf("plan[1] = %#v, want note", plan[1])
	}

	sections, err := client.MealPlanSections(ctx, nil)
	if err != nil || len(sections) != 2 {
		t.Fatalf("MealPlanSections = %v, %v; want 2", sections, err)
	}
	section, err := client.MealPlanSection(ctx, 1)
	if err != nil || section.Name != "Breakfast" {
		t.Fatalf("MealPlanSection = %v, %v; want Breakfast", section, err)
	}

	recipe, err := client.Recipe(ctx, 1)
	if err != nil {
		t.Fatalf("Recipe returned error: %v", err)
	}
	if recipe.Name != "Pizza" || recipe.PictureFileName != "pizza.jpg" {
		t.Fatalf("recipe = %#v, want Pizza", recipe)
	}
	if err := client.ConsumeRecipe(ctx, 1); err != nil {
		t.Fatalf("ConsumeRecipe returned error: %v", err)
	}
	if srv.Count(http.MethodPost, "recipes/1/consume") != 1 {
		t.Fatal("consume not requested")
	}
}

func TestGenericObjects(t *testing.T) {
	ctx := context.Background()
	client, srv := newTestClient(t, "k")

	id, err := client.AddGeneric(ctx, EntityBatteries, map[string]any{"name": "Battery3", "used_in": "Clock"})
	if err != nil {
		t.Fatalf("AddGeneric returned error: %v", err)
	}
	if id != 3 {
		t.Fatalf("created id = %d, want 3", id)
	}

	obj, err := client.GenericObject(ctx, EntityBatteries, id)
	if err != nil {
		t.Fatalf("GenericObject returned error: %v", err)
	}
	if obj["name"] != "Battery3" {
		t.Fatalf("obj = %v, want Battery3", obj)
	}

	if err := client.UpdateGeneric(ctx, EntityBatteries, id, map[string]any{"name": "Battery 3"}); err != nil {
		t.Fatalf("UpdateGeneric returned error: %v", err)
	}
	rows, err := client.GenericObjects(ctx, EntityBatteries, Filters{"name=Battery 3"})
	if err != nil || len(rows) != 1 {
		t.Fatalf("GenericObjects = %v, %v; want renamed row", rows, err)
	}

	if err := client.DeleteGeneric(ctx, EntityBatteries, id); err != nil {
		t.Fatalf("DeleteGeneric returned error: %v", err)
	}
	if _, err := client.GenericObject(ctx, EntityBatteries, id); err == nil {
		t.Fatal("expected error after delete")
	}
	if srv.Count(http.MethodDelete, "objects/batteries/3") != 1 {
		t.Fatal("delete not requested")
	}
}

func TestGenericObjectErrors(t *testing.T) {
	ctx := context.Background()
	client, srv := newTestClient(t, "k")

	tests := []struct {
		name    string
		call    func() error
		status  int
		message string
	}{
		{
			name: "add unknown field",
			call: func() error {
				_, err := client.AddGeneric(ctx, EntityBatteries, map[string]any{"voltage": 9})
				return err
			},
			status:  http.StatusBadRequest,
			message: "Field voltage does not exist",
		},
		{
			name:    "update missing row",
			call:    func() error { return client.UpdateGeneric(ctx, EntityBatteries, 999, map[string]any{"name": "x"}) },
			status:  http.StatusBadRequest,
			message: "Object not found",
		},
		{
			name:    "update without body",
			call:    func() error { return client.UpdateGeneric(ctx, EntityBatteries, 1, nil) },
			status:  http.StatusBadRequest,
			message: "Request body could not be parsed",
		},
		{
			name:   "delete missing row",
			call:   func() error { return client.DeleteGeneric(ctx, EntityBatteries, 999) },
			status: http.StatusNotFound,
		},
		{
			name: "get missing row",
			call: func() error {
				_, err := client.GenericObject(ctx, EntityBatteries, 999)
				return err
			},
			status:  http.StatusNotFound,
			message: "Object not found",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr, ok := AsError(tt.call())
			if !ok {
				t.Fatalf("expected *Error")
			}
			if apiErr.StatusCode != tt.status || apiErr.Message != tt.message {
				t.Fatalf("error = %d %q, want %d %q", apiErr.StatusCode, apiErr.Message, tt.status, tt.message)
			}
		})
	}

	srv.Reset()
	for _, entity := range []EntityType{"", " ", "a/b", ".", ".."} {
		if _, err := client.GenericObjects(ctx, entity, nil); err == nil {
			t.Fatalf("GenericObjects(%q) returned nil error", entity)
		}
	}
	if len(srv.Requests()) != 0 {
		t.Fatalf("requests = %d, want 0 for unusable entity names", len(srv.Requests()))
	}
}

func TestGenericObjectsAnyEntityName(t *testing.T) {
	ctx := context.Background()
	client, srv := newTestClient(t, "k")

	for _, entity := range []EntityType{"chores_log", "battery_charge_cycles", "stock_current_locations"} {
		_, err := client.GenericObjects(ctx, entity, nil)
		apiErr, ok := AsError(err)
		if !ok || apiErr.StatusCode != http.StatusBadRequest {
			t.Fatalf("GenericObjects(%q) error = %v, want server 400", entity, err)
		}
		if srv.Count(http.MethodGet, "objects/"+string(entity)) != 1 {
			t.Fatalf("objects/%s not requested", entity)
		}
	}
	if EntityType("chores_log").Known() {
		t.Fatal("chores_log reported as a built-in entity")
	}
	if !EntityStockLog.Known() {
		t.Fatal("stock_log not reported as a built-in entity")
	}
}

func TestUserfields(t *testing.T) {
	ctx := context.Background()
	client, _ := newTestClient(t, "k")

	if err := client.SetUserfield(ctx, EntityProducts, 6, "organic", "1"); err != nil {
		t.Fatalf("SetUserfield returned error: %v", err)
	}
	fields, err := client.Userfields(ctx, EntityProducts, 6)
	if err != nil {
		t.Fatalf("Userfields returned error: %v", err)
	}
	if fields["organic"] != "1" {
		t.Fatalf("fields = %v, want organic=1", fields)
	}
}

func TestUsersAndSystem(t *testing.T) {
	ctx := context.Background()
	client, _ := newTestClient(t, "k")

	users, err := client.Users(ctx, nil)
	if err != nil || len(users) != 2 {
		t.Fatalf("Users = %v, %v; want 2", users, err)
	}
	user, err := client.User(ctx, 1)
	if err != nil || user.DisplayName != "Guzzboy" {
		t.Fatalf("User = %v, %v; want Guzzboy", user, err)
	}

	changed, err := client.LastDBChanged(ctx)
	if err != nil {
		t.Fatalf("LastDBChanged returned error: %v", err)
	}
	if want := time.Date(2022, 4, 22, 17, 20, 5, 0, time.UTC); !changed.ChangedTime.Equal(want) {
		t.Fatalf("ChangedTime = %v, want %v", changed.ChangedTime.Time, want)
	}

	info, err := client.SystemInfo(ctx)
	if err != nil {
		t.Fatalf("SystemInfo returned error: %v", err)
	}
	if info.PHPVersion != "8.0.20" || info.SQLiteVersion != "3.38.5" {
		t.Fatalf("info = %#v", info)
	}

	clock, err := client.SystemTime(ctx)
	if err != nil {
		t.Fatalf("SystemTime returned error: %v", err)
	}
	if clock.Timezone != "UTC" || clock.Timestamp == nil || *clock.Timestamp != 1658679505 {
		t.Fatalf("clock = %#v", clock)
	}

	config, err := client.SystemConfig(ctx)
	if err != nil {
		t.Fatalf("SystemConfig returned error: %v", err)
	}
	features := config.EnabledFeatures()
	if len(features) == 0 || features[0] != "FEATURE_FLAG_STOCK" {
		t.Fatalf("EnabledFeatures = %v, want FEATURE_FLAG_STOCK first", features)
	}
	for _, name := range features {
		if name == "FEATURE_FLAG_THERMAL_PRINTER" {
			t.Fatal("disabled flag reported as enabled")
		}
	}
}

func mustLast(t *testing.T, srv *grocytest.Server, method, path string) grocytest.Request {
	t.Helper()
	req, ok := srv.Last(method, path)
	if !ok {
		t.Fatalf("no %s %s recorded", method, path)
	}
	return req
}
