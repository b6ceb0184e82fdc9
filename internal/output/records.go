package output

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/five82/pantry/api"
	"github.com/five82/pantry/grocy"
	"github.com/five82/pantry/parse"
)

var fieldHeaders = []string{"FIELD", "VALUE"}

// ProductRecord is the structured form of a product.
type ProductRecord struct {
	ID              int      `json:"id" yaml:"id"`
	Name            string   `json:"name,omitempty" yaml:"name,omitempty"`
	ProductGroupID  *int     `json:"product_group_id,omitempty" yaml:"product_group_id,omitempty"`
	AvailableAmount *float64 `json:"available_amount,omitempty" yaml:"available_amount,omitempty"`
	AmountMissing   *float64 `json:"amount_missing,omitempty" yaml:"amount_missing,omitempty"`
	IsPartlyInStock *bool    `json:"is_partly_in_stock,omitempty" yaml:"is_partly_in_stock,omitempty"`
	BestBeforeDate  string   `json:"best_before_date,omitempty" yaml:"best_before_date,omitempty"`
	PurchaseUnit    string   `json:"purchase_unit,omitempty" yaml:"purchase_unit,omitempty"`
	PurchaseFactor  *float64 `json:"qu_factor_purchase_to_stock,omitempty" yaml:"qu_factor_purchase_to_stock,omitempty"`
	Barcodes        []string `json:"barcodes,omitempty" yaml:"barcodes,omitempty"`
}

func productRecord(p *grocy.Product) ProductRecord {
	r := ProductRecord{
		ID:              p.ID(),
		Name:            p.Name(),
		ProductGroupID:  p.ProductGroupID(),
		AvailableAmount: p.AvailableAmount(),
		AmountMissing:   p.AmountMissing(),
		IsPartlyInStock: p.IsPartlyInStock(),
		BestBeforeDate:  timeString(p.BestBeforeDate()),
		PurchaseFactor:  p.QuFactorPurchaseToStock(),
		Barcodes:        p.Barcodes(),
	}
	if qu := p.DefaultQuantityUnitPurchase(); qu != nil {
		r.PurchaseUnit = qu.Name()
	}
	return r
}

// Products lists products with their stock amounts.
func Products(products []*grocy.Product) Result {
	records := make([]ProductRecord, 0, len(products))
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		if p == nil {
			continue
		}
		r := productRecord(p)
		records = append(records, r)
		rows = append(rows, []string{
			strconv.Itoa(r.ID),
			r.Name,
			floatString(r.AvailableAmount),
			floatString(r.AmountMissing),
			r.BestBeforeDate,
		})
	}
	return Result{
		Data:    records,
		Headers: []string{"ID", "NAME", "AMOUNT", "MISSING", "BEST BEFORE"},
		Rows:    rows,
	}
}

// Product shows one product field by field.
func Product(p *grocy.Product) Result {
	r := productRecord(p)
	rows := [][]string{
		{"id", strconv.Itoa(r.ID)},
		{"name", r.Name},
		{"product group", intString(r.ProductGroupID)},
		{"available amount", floatString(r.AvailableAmount)},
		{"best before", r.BestBeforeDate},
		{"purchase unit", r.PurchaseUnit},
		{"purchase factor", floatString(r.PurchaseFactor)},
		{"barcodes", joinNonEmpty(r.Barcodes)},
	}
	return Result{Data: r, Headers: fieldHeaders, Rows: filterRows(rows)}
}

// ChoreRecord is the structured form of a chore.
type ChoreRecord struct {
	ID                         int            `json:"id" yaml:"id"`
	Name                       string         `json:"name,omitempty" yaml:"name,omitempty"`
	Description                string         `json:"description,omitempty" yaml:"description,omitempty"`
	PeriodType                 string         `json:"period_type,omitempty" yaml:"period_type,omitempty"`
	PeriodDays                 *int           `json:"period_days,omitempty" yaml:"period_days,omitempty"`
	AssignmentType             string         `json:"assignment_type,omitempty" yaml:"assignment_type,omitempty"`
	Active                     *bool          `json:"active,omitempty" yaml:"active,omitempty"`
	LastTrackedTime            string         `json:"last_tracked_time,omitempty" yaml:"last_tracked_time,omitempty"`
	NextEstimatedExecutionTime string         `json:"next_estimated_execution_time,omitempty" yaml:"next_estimated_execution_time,omitempty"`
	TrackCount                 *int           `json:"track_count,omitempty" yaml:"track_count,omitempty"`
	LastDoneBy                 string         `json:"last_done_by,omitempty" yaml:"last_done_by,omitempty"`
	NextAssignedTo             string         `json:"next_execution_assigned_to,omitempty" yaml:"next_execution_assigned_to,omitempty"`
	Userfields                 map[string]any `json:"userfields,omitempty" yaml:"userfields,omitempty"`
}

func choreRecord(c *grocy.Chore) ChoreRecord {
	r := ChoreRecord{
		ID:                         c.ID(),
		Name:                       c.Name(),
		Description:                c.Description(),
		PeriodDays:                 c.PeriodDays(),
		Active:                     c.Active(),
		LastTrackedTime:            timeString(c.LastTrackedTime()),
		NextEstimatedExecutionTime: timeString(c.NextEstimatedExecutionTime()),
		TrackCount:                 c.TrackCount(),
		LastDoneBy:                 userName(c.LastDoneBy()),
		NextAssignedTo:             userName(c.NextExecutionAssignedUser()),
		Userfields:                 plainMap(c.Userfields()),
	}
	if pt := c.PeriodType(); pt != nil {
		r.PeriodType = string(*pt)
	}
	if at := c.AssignmentType(); at != nil {
		r.AssignmentType = string(*at)
	}
	return r
}

// Chores lists chores by next execution.
func Chores(chores []*grocy.Chore) Result {
	records := make([]ChoreRecord, 0, len(chores))
	rows := make([][]string, 0, len(chores))
	for _, c := range chores {
		if c == nil {
			continue
		}
		r := choreRecord(c)
		records = append(records, r)
		rows = append(rows, []string{
			strconv.Itoa(r.ID),
			r.Name,
			r.NextEstimatedExecutionTime,
			r.LastTrackedTime,
			r.NextAssignedTo,
		})
	}
	return Result{
		Data:    records,
		Headers: []string{"ID", "NAME", "NEXT", "LAST TRACKED", "ASSIGNED"},
		Rows:    rows,
	}
}

// Chore shows one chore field by field.
func Chore(c *grocy.Chore) Result {
	r := choreRecord(c)
	rows := [][]string{
		{"id", strconv.Itoa(r.ID)},
		{"name", r.Name},
		{"description", r.Description},
		{"period", r.PeriodType},
		{"period days", intString(r.PeriodDays)},
		{"assignment", r.AssignmentType},
		{"active", boolString(r.Active)},
		{"last tracked", r.LastTrackedTime},
		{"next execution", r.NextEstimatedExecutionTime},
		{"track count", intString(r.TrackCount)},
		{"last done by", r.LastDoneBy},
		{"assigned to", r.NextAssignedTo},
	}
	return Result{Data: r, Headers: fieldHeaders, Rows: filterRows(rows)}
}

// TaskRecord is the structured form of a task.
type TaskRecord struct {
	ID            int            `json:"id" yaml:"id"`
	Name          string         `json:"name" yaml:"name"`
	Description   string         `json:"description,omitempty" yaml:"description,omitempty"`
	DueDate       string         `json:"due_date,omitempty" yaml:"due_date,omitempty"`
	Done          bool           `json:"done" yaml:"done"`
	DoneTimestamp string         `json:"done_timestamp,omitempty" yaml:"done_timestamp,omitempty"`
	Category      string         `json:"category,omitempty" yaml:"category,omitempty"`
	AssignedTo    string         `json:"assigned_to,omitempty" yaml:"assigned_to,omitempty"`
	Userfields    map[string]any `json:"userfields,omitempty" yaml:"userfields,omitempty"`
}

// Tasks lists tasks.
func Tasks(tasks []*grocy.Task) Result {
	records := make([]TaskRecord, 0, len(tasks))
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		if t == nil {
			continue
		}
		r := TaskRecord{
			ID:            t.ID(),
			Name:          t.Name(),
			Description:   t.Description(),
			DueDate:       timeString(t.DueDate()),
			Done:          t.Done(),
			DoneTimestamp: timeString(t.DoneTimestamp()),
			AssignedTo:    userName(t.AssignedToUser()),
			Userfields:    plainMap(t.Userfields()),
		}
		if cat := t.Category(); cat != nil {
			r.Category = cat.Name()
		}
		records = append(records, r)
		rows = append(rows, []string{
			strconv.Itoa(r.ID),
			r.Name,
			r.DueDate,
			yesNo(r.Done),
			r.Category,
			r.AssignedTo,
		})
	}
	return Result{
		Data:    records,
		Headers: []string{"ID", "NAME", "DUE", "DONE", "CATEGORY", "ASSIGNED"},
		Rows:    rows,
	}
}

// BatteryRecord is the structured form of a battery.
type BatteryRecord struct {
	ID                      int            `json:"id" yaml:"id"`
	Name                    string         `json:"name,omitempty" yaml:"name,omitempty"`
	Description             string         `json:"description,omitempty" yaml:"description,omitempty"`
	UsedIn                  string         `json:"used_in,omitempty" yaml:"used_in,omitempty"`
	ChargeIntervalDays      *int           `json:"charge_interval_days,omitempty" yaml:"charge_interval_days,omitempty"`
	ChargeCyclesCount       *int           `json:"charge_cycles_count,omitempty" yaml:"charge_cycles_count,omitempty"`
	LastCharged             string         `json:"last_charged,omitempty" yaml:"last_charged,omitempty"`
	NextEstimatedChargeTime string         `json:"next_estimated_charge_time,omitempty" yaml:"next_estimated_charge_time,omitempty"`
	Userfields              map[string]any `json:"userfields,omitempty" yaml:"userfields,omitempty"`
}

func batteryRecord(b *grocy.Battery) BatteryRecord {
	return BatteryRecord{
		ID:                      b.ID(),
		Name:                    b.Name(),
		Description:             b.Description(),
		UsedIn:                  b.UsedIn(),
		ChargeIntervalDays:      b.ChargeIntervalDays(),
		ChargeCyclesCount:       b.ChargeCyclesCount(),
		LastCharged:             timeString(b.LastCharged()),
		NextEstimatedChargeTime: timeString(b.NextEstimatedChargeTime()),
		Userfields:              plainMap(b.Userfields()),
	}
}

// Batteries lists batteries.
func Batteries(batteries []*grocy.Battery) Result {
	records := make([]BatteryRecord, 0, len(batteries))
	rows := make([][]string, 0, len(batteries))
	for _, b := range batteries {
		if b == nil {
			continue
		}
		r := batteryRecord(b)
		records = append(records, r)
		rows = append(rows, []string{
			strconv.Itoa(r.ID),
			r.Name,
			r.LastCharged,
			r.NextEstimatedChargeTime,
			intString(r.ChargeCyclesCount),
		})
	}
	return Result{
		Data:    records,
		Headers: []string{"ID", "NAME", "LAST CHARGED", "NEXT CHARGE", "CYCLES"},
		Rows:    rows,
	}
}

// ShoppingItemRecord is the structured form of a shopping list row.
type ShoppingItemRecord struct {
	ID        int     `json:"id" yaml:"id"`
	ProductID *int    `json:"product_id,omitempty" yaml:"product_id,omitempty"`
	Product   string  `json:"product,omitempty" yaml:"product,omitempty"`
	Amount    float64 `json:"amount" yaml:"amount"`
	Note      string  `json:"note,omitempty" yaml:"note,omitempty"`
}

// ShoppingList lists shopping list rows.
func ShoppingList(items []*grocy.ShoppingListProduct) Result {
	records := make([]ShoppingItemRecord, 0, len(items))
	rows := make([][]string, 0, len(items))
	for _, s := range items {
		if s == nil {
			continue
		}
		r := ShoppingItemRecord{
			ID:        s.ID(),
			ProductID: s.ProductID(),
			Amount:    s.Amount(),
			Note:      s.Note(),
		}
		if p := s.Product(); p != nil {
			r.Product = p.Name()
		}
		product := r.Product
		if product == "" && r.ProductID != nil {
			product = "#" + strconv.Itoa(*r.ProductID)
		}
		records = append(records, r)
		rows = append(rows, []string{
			strconv.Itoa(r.ID),
			product,
			strconv.FormatFloat(r.Amount, 'f', -1, 64),
			r.Note,
		})
	}
	return Result{
		Data:    records,
		Headers: []string{"ID", "PRODUCT", "AMOUNT", "NOTE"},
		Rows:    rows,
	}
}

// MealPlanRecord is the structured form of a meal plan entry.
type MealPlanRecord struct {
	ID             int      `json:"id" yaml:"id"`
	Day            string   `json:"day,omitempty" yaml:"day,omitempty"`
	Type           string   `json:"type,omitempty" yaml:"type,omitempty"`
	RecipeID       *int     `json:"recipe_id,omitempty" yaml:"recipe_id,omitempty"`
	Recipe         string   `json:"recipe,omitempty" yaml:"recipe,omitempty"`
	RecipeServings *int     `json:"recipe_servings,omitempty" yaml:"recipe_servings,omitempty"`
	Note           string   `json:"note,omitempty" yaml:"note,omitempty"`
	ProductID      *int     `json:"product_id,omitempty" yaml:"product_id,omitempty"`
	ProductAmount  *float64 `json:"product_amount,omitempty" yaml:"product_amount,omitempty"`
	SectionID      *int     `json:"section_id,omitempty" yaml:"section_id,omitempty"`
	Section        string   `json:"section,omitempty" yaml:"section,omitempty"`
}

// MealPlan lists meal plan entries.
func MealPlan(items []*grocy.MealPlanItem) Result {
	records := make([]MealPlanRecord, 0, len(items))
	rows := make([][]string, 0, len(items))
	for _, m := range items {
		if m == nil {
			continue
		}
		r := MealPlanRecord{
			ID:             m.ID(),
			Day:            timeString(m.Day()),
			RecipeID:       m.RecipeID(),
			RecipeServings: m.RecipeServings(),
			Note:           m.Note(),
			ProductID:      m.ProductID(),
			ProductAmount:  m.ProductAmount(),
			SectionID:      m.SectionID(),
		}
		if t := m.Type(); t != nil {
			r.Type = string(*t)
		}
		if recipe := m.Recipe(); recipe != nil {
			r.Recipe = recipe.Name()
		}
		if section := m.Section(); section != nil {
			r.Section = section.Name()
		}
		records = append(records, r)
		rows = append(rows, []string{
			strconv.Itoa(r.ID),
			r.Day,
			r.Type,
			mealLabel(r),
			r.Section,
		})
	}
	return Result{
		Data:    records,
		Headers: []string{"ID", "DAY", "TYPE", "ITEM", "SECTION"},
		Rows:    rows,
	}
}

func mealLabel(r MealPlanRecord) string {
	switch {
	case r.Recipe != "":
		return r.Recipe
	case r.RecipeID != nil:
		return "recipe #" + strconv.Itoa(*r.RecipeID)
	case r.ProductID != nil:
		return "product #" + strconv.Itoa(*r.ProductID)
	default:
		return r.Note
	}
}

// UserRecord is the structured form of a user.
type UserRecord struct {
	ID          int    `json:"id" yaml:"id"`
	Username    string `json:"username" yaml:"username"`
	FirstName   string `json:"first_name,omitempty" yaml:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty" yaml:"last_name,omitempty"`
	DisplayName string `json:"display_name,omitempty" yaml:"display_name,omitempty"`
}

// Users lists users.
func Users(users []*grocy.User) Result {
	records := make([]UserRecord, 0, len(users))
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		if u == nil {
			continue
		}
		r := UserRecord{
			ID:          u.ID(),
			Username:    u.Username(),
			FirstName:   u.FirstName(),
			LastName:    u.LastName(),
			DisplayName: u.DisplayName(),
		}
		records = append(records, r)
		rows = append(rows, []string{strconv.Itoa(r.ID), r.Username, r.DisplayName})
	}
	return Result{
		Data:    records,
		Headers: []string{"ID", "USERNAME", "DISPLAY NAME"},
		Rows:    rows,
	}
}

// StockLogRecord is the structured form of a stock booking.
type StockLogRecord struct {
	ID              int      `json:"id" yaml:"id"`
	ProductID       int      `json:"product_id" yaml:"product_id"`
	TransactionType string   `json:"transaction_type" yaml:"transaction_type"`
	Amount          *float64 `json:"amount,omitempty" yaml:"amount,omitempty"`
	BestBeforeDate  string   `json:"best_before_date,omitempty" yaml:"best_before_date,omitempty"`
	Price           *float64 `json:"price,omitempty" yaml:"price,omitempty"`
	Spoiled         bool     `json:"spoiled" yaml:"spoiled"`
	Undone          bool     `json:"undone" yaml:"undone"`
	StockID         string   `json:"stock_id,omitempty" yaml:"stock_id,omitempty"`
	TransactionID   string   `json:"transaction_id,omitempty" yaml:"transaction_id,omitempty"`
}

// StockLog lists stock bookings, as returned by the booking endpoints.
func StockLog(entries []api.StockLogResponse) Result {
	records := make([]StockLogRecord, 0, len(entries))
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		r := StockLogRecord{
			ID:              e.ID,
			ProductID:       e.ProductID,
			TransactionType: string(e.TransactionType),
			Amount:          e.Amount,
			BestBeforeDate:  timeString(e.BestBeforeDate),
			Price:           e.Price,
			Spoiled:         e.Spoiled,
			Undone:          e.Undone,
			StockID:         e.StockID,
			TransactionID:   e.TransactionID,
		}
		records = append(records, r)
		rows = append(rows, []string{
			strconv.Itoa(r.ID),
			strconv.Itoa(r.ProductID),
			r.TransactionType,
			floatString(r.Amount),
			r.BestBeforeDate,
			r.TransactionID,
		})
	}
	return Result{
		Data:    records,
		Headers: []string{"ID", "PRODUCT", "TYPE", "AMOUNT", "BEST BEFORE", "TRANSACTION"},
		Rows:    rows,
	}
}

// SystemInfo shows the server's version information.
func SystemInfo(info *grocy.SystemInfo) Result {
	data := map[string]string{
		"grocy_version":      info.GrocyVersion(),
		"grocy_release_date": timeString(info.GrocyReleaseDate()),
		"php_version":        info.PHPVersion(),
		"sqlite_version":     info.SQLiteVersion(),
		"os":                 info.OS(),
		"client":             info.Client(),
	}
	rows := [][]string{
		{"grocy version", data["grocy_version"]},
		{"release date", data["grocy_release_date"]},
		{"php", data["php_version"]},
		{"sqlite", data["sqlite_version"]},
		{"os", data["os"]},
		{"client", data["client"]},
	}
	return Result{Data: data, Headers: fieldHeaders, Rows: filterRows(rows)}
}

// SystemTime shows the server clock.
func SystemTime(st *grocy.SystemTime) Result {
	data := map[string]any{
		"timezone":   st.Timezone(),
		"time_local": timeString(st.TimeLocal()),
		"time_utc":   timeString(st.TimeUTC()),
	}
	if ts := st.Timestamp(); ts != nil {
		data["timestamp"] = *ts
	}
	rows := [][]string{
		{"timezone", st.Timezone()},
		{"local", timeString(st.TimeLocal())},
		{"utc", timeString(st.TimeUTC())},
		{"timestamp", intString(st.Timestamp())},
	}
	return Result{Data: data, Headers: fieldHeaders, Rows: filterRows(rows)}
}

// SystemConfig shows the server settings and enabled features.
func SystemConfig(cfg *grocy.SystemConfig) Result {
	features := cfg.EnabledFeatures()
	data := map[string]any{
		"username":       cfg.Username(),
		"base_path":      cfg.BasePath(),
		"base_url":       cfg.BaseURL(),
		"mode":           cfg.Mode(),
		"default_locale": cfg.DefaultLocale(),
		"locale":         cfg.Locale(),
		"currency":       cfg.Currency(),
		"features":       normalizeNilSlice(features),
	}
	rows := [][]string{
		{"username", cfg.Username()},
		{"base url", cfg.BaseURL()},
		{"base path", cfg.BasePath()},
		{"mode", cfg.Mode()},
		{"locale", cfg.Locale()},
		{"default locale", cfg.DefaultLocale()},
		{"currency", cfg.Currency()},
		{"features", joinNonEmpty(features)},
	}
	return Result{Data: data, Headers: fieldHeaders, Rows: filterRows(rows)}
}

// DBChanged shows the last database change time.
func DBChanged(t time.Time) Result {
	value := ""
	if !t.IsZero() {
		value = t.Format(time.RFC3339)
	}
	return Result{
		Data:    map[string]string{"changed": value},
		Headers: fieldHeaders,
		Rows:    [][]string{{"changed", value}},
	}
}

// Objects lists generic rows. Columns are id, then name, then the remaining
// keys in order.
func Objects(objects []api.Object) Result {
	data := make([]map[string]any, 0, len(objects))
	seen := map[string]bool{}
	var keys []string
	for _, o := range objects {
		data = append(data, plainMap(o))
		for k := range o {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	keys = orderKeys(keys)

	headers := append([]string(nil), keys...)
	rows := make([][]string, 0, len(data))
	for _, o := range data {
		row := make([]string, len(keys))
		for i, k := range keys {
			row[i] = valueString(o[k])
		}
		rows = append(rows, row)
	}
	return Result{Data: data, Headers: headers, Rows: rows}
}

// Object shows one generic row field by field.
func Object(o api.Object) Result {
	data := plainMap(o)
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	keys = orderKeys(keys)
	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []string{k, valueString(data[k])})
	}
	return Result{Data: data, Headers: fieldHeaders, Rows: rows}
}

func orderKeys(keys []string) []string {
	rank := func(k string) int {
		switch k {
		case "id":
			return 0
		case "name":
			return 1
		default:
			return 2
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		ri, rj := rank(keys[i]), rank(keys[j])
		if ri != rj {
			return ri < rj
		}
		return keys[i] < keys[j]
	})
	return keys
}

// plainMap copies m with json.Number values turned into Go numbers.
func plainMap(m map[string]any) map[string]any {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = plainValue(v)
	}
	return out
}

func plainValue(v any) any {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case map[string]any:
		return plainMap(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = plainValue(item)
		}
		return out
	default:
		return v
	}
}

func valueString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case map[string]any, []any:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	default:
		return fmt.Sprint(val)
	}
}

func timeString(t *parse.Time) string {
	if t == nil {
		return ""
	}
	return t.String()
}

func floatString(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

func intString(i *int) string {
	if i == nil {
		return ""
	}
	return strconv.Itoa(*i)
}

func boolString(b *bool) string {
	if b == nil {
		return ""
	}
	return yesNo(*b)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func userName(u *grocy.User) string {
	if u == nil {
		return ""
	}
	if u.DisplayName() != "" {
		return u.DisplayName()
	}
	return u.Username()
}

func joinNonEmpty(values []string) string {
	kept := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			kept = append(kept, v)
		}
	}
	return strings.Join(kept, ", ")
}

// filterRows drops field rows with no value.
func filterRows(rows [][]string) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		if len(r) == 2 && r[1] == "" {
			continue
		}
		out = append(out, r)
	}
	return out
}

// GroupRecord is the structured form of a location or product group.
type GroupRecord struct {
	ID          int    `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Groups lists locations or product groups.
func Groups(groups []*grocy.Group) Result {
	records := make([]GroupRecord, 0, len(groups))
	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		if g == nil {
			continue
		}
		r := GroupRecord{ID: g.ID(), Name: g.Name(), Description: g.Description()}
		records = append(records, r)
		rows = append(rows, []string{strconv.Itoa(r.ID), r.Name, r.Description})
	}
	return Result{
		Data:    records,
		Headers: []string{"ID", "NAME", "DESCRIPTION"},
		Rows:    rows,
	}
}

// QuantityUnitRecord is the structured form of a quantity unit.
type QuantityUnitRecord struct {
	ID          int    `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	NamePlural  string `json:"name_plural,omitempty" yaml:"name_plural,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// QuantityUnits lists quantity units.
func QuantityUnits(units []*grocy.QuantityUnit) Result {
	records := make([]QuantityUnitRecord, 0, len(units))
	rows := make([][]string, 0, len(units))
	for _, q := range units {
		if q == nil {
			continue
		}
		r := QuantityUnitRecord{ID: q.ID(), Name: q.Name(), NamePlural: q.NamePlural(), Description: q.Description()}
		records = append(records, r)
		rows = append(rows, []string{strconv.Itoa(r.ID), r.Name, r.NamePlural})
	}
	return Result{
		Data:    records,
		Headers: []string{"ID", "NAME", "PLURAL"},
		Rows:    rows,
	}
}
