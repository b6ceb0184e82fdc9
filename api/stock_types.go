package api

import (
	"github.com/five82/pantry/parse"
)

// TransactionType is the kind of stock booking.
type TransactionType string

const (
	TransactionPurchase            TransactionType = "purchase"
	TransactionConsume             TransactionType = "consume"
	TransactionInventoryCorrection TransactionType = "inventory-correction"
	TransactionProductOpened       TransactionType = "product-opened"
	TransactionStockEditOld        TransactionType = "stock-edit-old"
	TransactionStockEditNew        TransactionType = "stock-edit-new"
	TransactionTransferFrom        TransactionType = "transfer_from"
	TransactionTransferTo          TransactionType = "transfer_to"
	TransactionSelfProduction      TransactionType = "self-production"
)

// Valid reports whether t is a booking type Grocy knows.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionPurchase, TransactionConsume, TransactionInventoryCorrection,
		TransactionProductOpened, TransactionStockEditOld, TransactionStockEditNew,
		TransactionTransferFrom, TransactionTransferTo, TransactionSelfProduction:
		return true
	}
	return false
}

// QuantityUnitData is a row of objects/quantity_units.
type QuantityUnitData struct {
	ID          int
	Name        string
	NamePlural  string
	Description string
	Userfields  map[string]any
}

func (q *QuantityUnitData) UnmarshalJSON(data []byte) error {
	f, err := decodeFields("quantity unit", data)
	if err != nil {
		return err
	}
	*q = QuantityUnitData{
		ID:          f.requiredInt("id"),
		Name:        f.str("name"),
		NamePlural:  f.str("name_plural"),
		Description: f.str("description"),
		Userfields:  f.userfields("userfields"),
	}
	return f.err
}

// LocationData is a row of objects/locations. Product groups and shopping
// locations share the shape.
type LocationData struct {
	ID                  int
	Name                string
	Description         string
	IsFreezer           bool
	RowCreatedTimestamp *parse.Time
	Userfields          map[string]any
}

func (l *LocationData) UnmarshalJSON(data []byte) error {
	f, err := decodeFields("location", data)
	if err != nil {
		return err
	}
	*l = LocationData{
		ID:                  f.requiredInt("id"),
		Name:                f.str("name"),
		Description:         f.str("description"),
		IsFreezer:           f.boolInt("is_freezer"),
		RowCreatedTimestamp: f.time("row_created_timestamp"),
		Userfields:          f.userfields("userfields"),
	}
	return f.err
}

// ProductData is a row of objects/products.
type ProductData struct {
	ID                       int
	Name                     string
	Description              string
	LocationID               *int
	ProductGroupID           *int
	QuIDStock                *int
	QuIDPurchase             *int
	QuFactorPurchaseToStock  *float64
	PictureFileName          string
	AllowPartialUnitsInStock bool
	MinStockAmount           float64
	DefaultBestBeforeDays    *int
	RowCreatedTimestamp      *parse.Time
	Userfields               map[string]any
}

func (p *ProductData) UnmarshalJSON(data []byte) error {
	f, err := decodeFields("product", data)
	if err != nil {
		return err
	}
	*p = ProductData{
		ID:                       f.requiredInt("id"),
		Name:                     f.str("name"),
		Description:              f.str("description"),
		LocationID:               f.optInt("location_id"),
		ProductGroupID:           f.optInt("product_group_id"),
		QuIDStock:                f.optInt("qu_id_stock"),
		QuIDPurchase:             f.optInt("qu_id_purchase"),
		QuFactorPurchaseToStock:  f.optFloat("qu_factor_purchase_to_stock"),
		PictureFileName:          f.str("picture_file_name"),
		AllowPartialUnitsInStock: f.boolInt("allow_partial_units_in_stock"),
		MinStockAmount:           f.floatOr("min_stock_amount", 0),
		DefaultBestBeforeDays:    f.optInt("default_best_before_days"),
		RowCreatedTimestamp:      f.time("row_created_timestamp"),
		Userfields:               f.userfields("userfields"),
	}
	return f.err
}

// ProductBarcodeData is one entry of a product's barcode list.
type ProductBarcodeData struct {
	Barcode string
}

func (b *ProductBarcodeData) UnmarshalJSON(data []byte) error {
	f, err := decodeFields("product barcode", data)
	if err != nil {
		return err
	}
	*b = ProductBarcodeData{Barcode: f.requiredStr("barcode")}
	return f.err
}

// CurrentStockResponse is one entry of GET stock and the volatile lists.
type CurrentStockResponse struct {
	ProductID              int
	Amount                 float64
	AmountAggregated       *float64
	AmountOpened           *float64
	AmountOpenedAggregated *float64
	BestBeforeDate         *parse.Time
	IsAggregatedAmount     bool
	Product                *ProductData
}

func (s *CurrentStockResponse) UnmarshalJSON(data []byte) error {
	f, err := decodeFields("current stock", data)
	if err != nil {
		return err
	}
	*s = CurrentStockResponse{
		ProductID:              f.requiredInt("product_id"),
		Amount:                 f.requiredFloat("amount"),
		AmountAggregated:       f.optFloat("amount_aggregated"),
		AmountOpened:           f.optFloat("amount_opened"),
		AmountOpenedAggregated: f.optFloat("amount_opened_aggregated"),
		BestBeforeDate:         f.time("best_before_date"),
		IsAggregatedAmount:     f.boolInt("is_aggregated_amount"),
		Product:                nested[ProductData](f, "product"),
	}
	return f.err
}

// MissingProductResponse is an entry of the volatile missing_products list.
type MissingProductResponse struct {
	ProductID       int
	Name            string
	AmountMissing   *float64
	IsPartlyInStock bool
}

func (m *MissingProductResponse) UnmarshalJSON(data []byte) error {
	f, err := decodeFields("missing product", data)
	if err != nil {
		return err
	}
	*m = MissingProductResponse{
		ProductID:       f.requiredInt("id"),
		Name:            f.str("name"),
		AmountMissing:   f.optFloat("amount_missing"),
		IsPartlyInStock: f.boolInt("is_partly_in_stock"),
	}
	return f.err
}

// CurrentVolatileStockResponse is GET stock/volatile.
type CurrentVolatileStockResponse struct {
	DueProducts     []CurrentStockResponse
	OverdueProducts []CurrentStockResponse
	ExpiredProducts []CurrentStockResponse
	MissingProducts []MissingProductResponse
}

func (v *CurrentVolatileStockResponse) UnmarshalJSON(data []byte) error {
	f, err := decodeFields("volatile stock", data)
	if err != nil {
		return err
	}
	*v = CurrentVolatileStockResponse{
		DueProducts:     list[CurrentStockResponse](f, f.first("due_products", "expiring_products")),
		OverdueProducts: list[CurrentStockResponse](f, "overdue_products"),
		ExpiredProducts: list[CurrentStockResponse](f, "expired_products"),
		MissingProducts: list[MissingProductResponse](f, "missing_products"),
	}
	return f.err
}

// ProductDetailsResponse is GET stock/products/{id}.
type ProductDetailsResponse struct {
	Product               ProductData
	LastPurchased         *parse.Time
	LastUsed              *parse.Time
	StockAmount           *float64
	StockAmountOpened     *float64
	StockAmountAggregated *float64
	NextDueDate           *parse.Time
	LastPrice             *float64
	AvgPrice              *float64
	QuantityUnitPurchase  *QuantityUnitData
	QuantityUnitStock     *QuantityUnitData
	Location              *LocationData
	Barcodes              []ProductBarcodeData
}

func (d *ProductDetailsResponse) UnmarshalJSON(data []byte) error {
	f, err := decodeFields("product details", data)
	if err != nil {
		return err
	}
	*d = ProductDetailsResponse{
		LastPurchased:         f.time("last_purchased"),
		LastUsed:              f.time("last_used"),
		StockAmount:           f.optFloat("stock_amount"),
		StockAmountOpened:     f.optFloat("stock_amount_opened"),
		StockAmountAggregated: f.optFloat("stock_amount_aggregated"),
		NextDueDate:           f.time(f.first("next_due_date", "next_best_before_date")),
		LastPrice:             f.optFloat("last_price"),
		AvgPrice:              f.optFloat("avg_price"),
		QuantityUnitPurchase:  nested[QuantityUnitData](f, f.first("default_quantity_unit_purchase", "quantity_unit_purchase")),
		QuantityUnitStock:     nested[QuantityUnitData](f, "quantity_unit_stock"),
		Location:              nested[LocationData](f, "location"),
		Barcodes:              list[ProductBarcodeData](f, "product_barcodes"),
	}
	if !f.decode("product", &d.Product) && f.err == nil {
		f.fail("product", ErrMissing)
	}
	return f.err
}

// StockLogResponse is a stock booking, from objects/stock_log or returned by
// a stock mutation.
type StockLogResponse struct {
	ID                  int
	ProductID           int
	TransactionType     TransactionType
	Amount              *float64
	BestBeforeDate      *parse.Time
	PurchasedDate       *parse.Time
	UsedDate            *parse.Time
	OpenedDate          *parse.Time
	Spoiled             bool
	StockID             string
	Price               *float64
	Undone              bool
	UndoneTimestamp     *parse.Time
	LocationID          *int
	RecipeID            *int
	ShoppingLocationID  *int
	UserID              *int
	TransactionID       string
	CorrelationID       string
	Note                string
	RowCreatedTimestamp *parse.Time
}

func (l *StockLogResponse) UnmarshalJSON(data []byte) error {
	f, err := decodeFields("stock log", data)
	if err != nil {
		return err
	}
	*l = StockLogResponse{
		ID:                  f.requiredInt("id"),
		ProductID:           f.requiredInt("product_id"),
		TransactionType:     TransactionType(f.requiredStr("transaction_type")),
		Amount:              f.optFloat("amount"),
		BestBeforeDate:      f.time("best_before_date"),
		PurchasedDate:       f.time("purchased_date"),
		UsedDate:            f.time("used_date"),
		OpenedDate:          f.time("opened_date"),
		Spoiled:             f.boolInt("spoiled"),
		StockID:             f.str("stock_id"),
		Price:               f.optFloat("price"),
		Undone:              f.boolInt("undone"),
		UndoneTimestamp:     f.time("undone_timestamp"),
		LocationID:          f.optInt("location_id"),
		RecipeID:            f.optInt("recipe_id"),
		ShoppingLocationID:  f.optInt("shopping_location_id"),
		UserID:              f.optInt("user_id"),
		TransactionID:       f.str("transaction_id"),
		CorrelationID:       f.str("correlation_id"),
		Note:                f.str("note"),
		RowCreatedTimestamp: f.time("row_created_timestamp"),
	}
	if l.TransactionType != "" && !l.TransactionType.Valid() {
		f.fail("transaction_type", ErrUnknownValue)
	}
	return f.err
}
