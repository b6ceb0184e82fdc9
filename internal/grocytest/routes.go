package grocytest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
)

var bookingTypes = map[string]string{
	"add":       "purchase",
	"consume":   "consume",
	"open":      "product-opened",
	"inventory": "inventory-correction",
}

var knownTransactions = map[string]bool{
	"purchase": true, "consume": true, "inventory-correction": true,
	"product-opened": true, "stock-edit-old": true, "stock-edit-new": true,
	"transfer_from": true, "transfer_to": true, "self-production": true,
}

func (s *Server) routes(r chi.Router) {
	r.Get("/stock", serveFixture("stock.json"))
	r.Get("/stock/volatile", serveFixture("volatile.json"))
	r.Get("/stock/products/by-barcode/{barcode}", s.productByBarcode)
	r.Post("/stock/products/by-barcode/{barcode}/{action}", s.bookByBarcode)
	r.Get("/stock/products/{id}", s.productDetails)
	r.Post("/stock/products/{id}/{action}", s.book)
	r.Post("/stock/shoppinglist/{action}", s.shoppingList)

	r.Get("/chores", serveFixture("chores.json"))
	r.Get("/chores/{id}", s.choreDetails)
	r.Post("/chores/{id}/execute", s.executeChore)

	r.Get("/tasks", s.tasks)
	r.Post("/tasks/{id}/complete", s.completeTask)

	r.Get("/batteries", serveFixture("batteries.json"))
	r.Get("/batteries/{id}", s.batteryDetails)
	r.Post("/batteries/{id}/charge", s.chargeBattery)

	r.Post("/recipes/{id}/consume", s.consumeRecipe)

	r.Get("/users", s.users)
	r.Get("/users/{id}", s.user)

	r.Get("/system/info", serveFixture("system_info.json"))
	r.Get("/system/time", serveFixture("system_time.json"))
	r.Get("/system/config", serveFixture("system_config.json"))
	r.Get("/system/db-changed-time", serveFixture("db_changed_time.json"))

	r.Get("/objects/{entity}", s.listObjects)
	r.Post("/objects/{entity}", s.addObject)
	r.Get("/objects/{entity}/{id}", s.getObject)
	r.Put("/objects/{entity}/{id}", s.updateObject)
	r.Delete("/objects/{entity}/{id}", s.deleteObject)

	r.Get("/userfields/{entity}/{id}", s.getUserfields)
	r.Put("/userfields/{entity}/{id}", s.setUserfields)

	r.Put("/files/{group}/{name}", s.putFile)
	r.Get("/files/{group}/{name}", s.getFile)
}

func serveFixture(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := fixture(name)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(data)
	}
}

func decodeBody(r *http.Request) (map[string]any, bool) {
	data, err := io.ReadAll(r.Body)
	if err != nil || len(data) == 0 {
		return map[string]any{}, true
	}
	var body map[string]any
	if err := json.Unmarshal(data, &body); err != nil || body == nil {
		return nil, false
	}
	return body, true
}

// productDetailsLocked builds the stock details payload. Callers hold s.mu.
func (s *Server) productDetailsLocked(id string) (map[string]any, bool) {
	product, ok := s.find("products", id)
	if !ok {
		return nil, false
	}
	out, ok := fixtureByID("product_details.json", id)
	if !ok {
		out = map[string]any{}
	}
	out["product"] = product
	barcodes := s.where("product_barcodes", "product_id", id)
	if barcodes == nil {
		barcodes = []map[string]any{}
	}
	out["product_barcodes"] = barcodes
	if qu, ok := s.find("quantity_units", idString(product["qu_id_purchase"])); ok {
		out["default_quantity_unit_purchase"] = qu
	}
	if qu, ok := s.find("quantity_units", idString(product["qu_id_stock"])); ok {
		out["quantity_unit_stock"] = qu
	}
	if loc, ok := s.find("locations", idString(product["location_id"])); ok {
		out["location"] = loc
	}
	return out, true
}

func (s *Server) barcodeOwnerLocked(code string) (string, bool) {
	rows := s.where("product_barcodes", "barcode", code)
	if len(rows) == 0 {
		return "", false
	}
	return idString(rows[0]["product_id"]), true
}

func (s *Server) productDetails(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	details, ok := s.productDetailsLocked(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "Product does not exist or is inactive")
		return
	}
	writeJSON(w, http.StatusOK, details)
}

func (s *Server) productByBarcode(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	code := barcodeParam(r)
	id, ok := s.barcodeOwnerLocked(code)
	if !ok {
		writeError(w, http.StatusBadRequest, "No product with barcode "+code+" found")
		return
	}
	details, _ := s.productDetailsLocked(id)
	writeJSON(w, http.StatusOK, details)
}

// barcodeParam undoes the client's path escaping; chi matches on the raw
// path when one is set.
func barcodeParam(r *http.Request) string {
	raw := chi.URLParam(r, "barcode")
	if code, err := url.PathUnescape(raw); err == nil {
		return code
	}
	return raw
}

func (s *Server) book(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookLocked(w, r, chi.URLParam(r, "id"))
}

func (s *Server) bookByBarcode(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	code := barcodeParam(r)
	id, ok := s.barcodeOwnerLocked(code)
	if !ok {
		writeError(w, http.StatusBadRequest, "No product with barcode "+code+" found")
		return
	}
	s.bookLocked(w, r, id)
}

func (s *Server) bookLocked(w http.ResponseWriter, r *http.Request, productID string) {
	defaultType, ok := bookingTypes[chi.URLParam(r, "action")]
	if !ok {
		http.NotFound(w, r)
		return
	}
	if _, ok := s.find("products", productID); !ok {
		writeError(w, http.StatusBadRequest, "Product does not exist or is inactive")
		return
	}
	body, ok := decodeBody(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Request body could not be parsed")
		return
	}
	txType := defaultType
	if raw, ok := body["transaction_type"].(string); ok && raw != "" {
		if !knownTransactions[raw] {
			writeError(w, http.StatusBadRequest, "Transaction type is not valid")
			return
		}
		txType = raw
	}
	amount := body["amount"]
	if amount == nil {
		amount = body["new_amount"]
	}
	id := s.nextID("stock_log")
	row := map[string]any{
		"id":                    strconv.Itoa(id),
		"product_id":            productID,
		"amount":                amount,
		"best_before_date":      body["best_before_date"],
		"spoiled":               boolInt(body["spoiled"]),
		"stock_id":              "fake" + strconv.Itoa(id),
		"transaction_type":      txType,
		"price":                 body["price"],
		"undone":                "0",
		"transaction_id":        "tx" + strconv.Itoa(id),
		"row_created_timestamp": "2022-07-24 16:18:25",
	}
	s.objects["stock_log"] = append(s.objects["stock_log"], row)
	writeJSON(w, http.StatusOK, []map[string]any{row})
}

func boolInt(v any) string {
	if b, ok := v.(bool); ok && b {
		return "1"
	}
	return "0"
}

func (s *Server) shoppingList(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	body, ok := decodeBody(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Request body could not be parsed")
		return
	}
	listID := "1"
	if raw, ok := body["list_id"]; ok {
		listID = idString(raw)
	}
	if _, ok := s.find("shopping_lists", listID); !ok {
		writeError(w, http.StatusBadRequest, "Shopping list does not exist")
		return
	}
	productID := idString(body["product_id"])
	switch chi.URLParam(r, "action") {
	case "add-missing-products":
		s.appendShoppingRow(listID, "7", 2, "")
	case "add-product":
		if _, ok := s.find("products", productID); !ok {
			writeError(w, http.StatusBadRequest, "Product does not exist or is inactive")
			return
		}
		amount, _ := body["product_amount"].(float64)
		note, _ := body["note"].(string)
		s.appendShoppingRow(listID, productID, amount, note)
	case "remove-product":
		if _, ok := s.find("products", productID); !ok {
			writeError(w, http.StatusBadRequest, "Product does not exist or is inactive")
			return
		}
		kept := s.objects["shopping_list"][:0]
		for _, row := range s.objects["shopping_list"] {
			if idString(row["product_id"]) == productID && idString(row["shopping_list_id"]) == listID {
				continue
			}
			kept = append(kept, row)
		}
		s.objects["shopping_list"] = kept
	case "clear":
		kept := s.objects["shopping_list"][:0]
		for _, row := range s.objects["shopping_list"] {
			if idString(row["shopping_list_id"]) != listID {
				kept = append(kept, row)
			}
		}
		s.objects["shopping_list"] = kept
	default:
		http.NotFound(w, r)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) appendShoppingRow(listID, productID string, amount float64, note string) {
	row := map[string]any{
		"id":               strconv.Itoa(s.nextID("shopping_list")),
		"product_id":       productID,
		"amount":           strconv.FormatFloat(amount, 'f', -1, 64),
		"shopping_list_id": listID,
		"done":             "0",
	}
	if note != "" {
		row["note"] = note
	}
	s.objects["shopping_list"] = append(s.objects["shopping_list"], row)
}

func (s *Server) choreDetails(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := chi.URLParam(r, "id")
	chore, ok := s.find("chores", id)
	if !ok {
		writeError(w, http.StatusBadRequest, "Chore does not exist")
		return
	}
	extra, _ := fixtureByID("chore_details.json", id)
	out := map[string]any{
		"chore":                         chore,
		"last_tracked":                  extra["last_tracked"],
		"track_count":                   extra["track_count"],
		"next_estimated_execution_time": extra["next_estimated_execution_time"],
		"last_done_by":                  nil,
		"next_execution_assigned_user":  nil,
	}
	if user, ok := s.find("users", idString(extra["last_done_by_id"])); ok {
		out["last_done_by"] = user
	}
	if user, ok := s.find("users", idString(extra["next_execution_assigned_user_id"])); ok {
		out["next_execution_assigned_user"] = user
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) executeChore(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := chi.URLParam(r, "id")
	if _, ok := s.find("chores", id); !ok {
		writeError(w, http.StatusBadRequest, "Chore does not exist")
		return
	}
	body, _ := decodeBody(r)
	writeJSON(w, http.StatusOK, map[string]any{
		"id":              "1",
		"chore_id":        id,
		"tracked_time":    body["tracked_time"],
		"done_by_user_id": body["done_by"],
		"skipped":         boolInt(body["skipped"]),
	})
}

func (s *Server) tasks(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	conds, err := parseConditions(r.URL.Query()["query[]"])
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	rows := filterRows(s.objects["tasks"], conds)
	for _, row := range rows {
		if cat, ok := s.find("task_categories", idString(row["category_id"])); ok {
			row["category"] = cat
		}
		if user, ok := s.find("users", idString(row["assigned_to_user_id"])); ok {
			row["assigned_to_user"] = user
		}
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) completeTask(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf("tasks", chi.URLParam(r, "id"))
	if i < 0 {
		writeError(w, http.StatusBadRequest, "Task does not exist")
		return
	}
	body, _ := decodeBody(r)
	s.objects["tasks"][i]["done"] = "1"
	s.objects["tasks"][i]["done_timestamp"] = body["done_time"]
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) batteryDetails(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := chi.URLParam(r, "id")
	battery, ok := s.find("batteries", id)
	if !ok {
		writeError(w, http.StatusBadRequest, "Battery does not exist")
		return
	}
	out, ok := fixtureByID("battery_details.json", id)
	if !ok {
		out = map[string]any{}
	}
	out["battery"] = battery
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) chargeBattery(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := chi.URLParam(r, "id")
	if _, ok := s.find("batteries", id); !ok {
		writeError(w, http.StatusBadRequest, "Battery does not exist")
		return
	}
	body, _ := decodeBody(r)
	writeJSON(w, http.StatusOK, map[string]any{
		"id":           "1",
		"battery_id":   id,
		"tracked_time": body["tracked_time"],
	})
}

func (s *Server) consumeRecipe(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.find("recipes", chi.URLParam(r, "id")); !ok {
		writeError(w, http.StatusBadRequest, "Recipe does not exist")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) users(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	conds, err := parseConditions(r.URL.Query()["query[]"])
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, filterRows(s.objects["users"], conds))
}

func (s *Server) user(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.find("users", chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "User does not exist")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) listObjects(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, ok := s.objects[chi.URLParam(r, "entity")]
	if !ok {
		writeError(w, http.StatusBadRequest, "Entity does not exist or is not exposed")
		return
	}
	conds, err := parseConditions(r.URL.Query()["query[]"])
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, filterRows(rows, conds))
}

func (s *Server) getObject(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.find(chi.URLParam(r, "entity"), chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "Object not found")
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (s *Server) addObject(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entity := chi.URLParam(r, "entity")
	rows, ok := s.objects[entity]
	if !ok {
		writeError(w, http.StatusBadRequest, "Entity does not exist or is not exposed")
		return
	}
	body, ok := decodeBody(r)
	if !ok || len(body) == 0 {
		writeError(w, http.StatusBadRequest, "Request body could not be parsed")
		return
	}
	if len(rows) > 0 {
		for key := range body {
			if _, known := rows[0][key]; !known {
				writeError(w, http.StatusBadRequest, "Field "+key+" does not exist")
				return
			}
		}
	}
	id := s.nextID(entity)
	body["id"] = strconv.Itoa(id)
	s.objects[entity] = append(rows, body)
	writeJSON(w, http.StatusOK, map[string]any{"created_object_id": strconv.Itoa(id)})
}

func (s *Server) updateObject(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entity := chi.URLParam(r, "entity")
	i := s.indexOf(entity, chi.URLParam(r, "id"))
	if i < 0 {
		writeError(w, http.StatusBadRequest, "Object not found")
		return
	}
	body, ok := decodeBody(r)
	if !ok || len(body) == 0 {
		writeError(w, http.StatusBadRequest, "Request body could not be parsed")
		return
	}
	for k, v := range body {
		s.objects[entity][i][k] = v
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) deleteObject(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entity := chi.URLParam(r, "entity")
	i := s.indexOf(entity, chi.URLParam(r, "id"))
	if i < 0 {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	rows := s.objects[entity]
	s.objects[entity] = append(rows[:i:i], rows[i+1:]...)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getUserfields(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := chi.URLParam(r, "entity") + "/" + chi.URLParam(r, "id")
	fields := s.userfields[key]
	if fields == nil {
		fields = map[string]any{}
	}
	writeJSON(w, http.StatusOK, fields)
}

func (s *Server) setUserfields(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	body, ok := decodeBody(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Request body could not be parsed")
		return
	}
	key := chi.URLParam(r, "entity") + "/" + chi.URLParam(r, "id")
	if s.userfields[key] == nil {
		s.userfields[key] = map[string]any{}
	}
	for k, v := range body {
		s.userfields[key][k] = v
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) putFile(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.mu.Lock()
	s.files[chi.URLParam(r, "group")+"/"+chi.URLParam(r, "name")] = data
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getFile(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	data, ok := s.files[chi.URLParam(r, "group")+"/"+chi.URLParam(r, "name")]
	s.mu.Unlock()
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	_, _ = w.Write(data)
}
