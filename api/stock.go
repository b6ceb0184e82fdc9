package api

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/url"
	"time"
)

const dateLayout = "2006-01-02"

// StockAdd is the body of a purchase booking.
type StockAdd struct {
	Amount float64
	Price  *float64
	// BestBeforeDate is sent as a calendar date.
	BestBeforeDate     *time.Time
	LocationID         *int
	ShoppingLocationID *int
	// TransactionType defaults to TransactionPurchase.
	TransactionType TransactionType
}

func (a StockAdd) body() (map[string]any, error) {
	tt, err := transactionOr(a.TransactionType, TransactionPurchase)
	if err != nil {
		return nil, err
	}
	data := map[string]any{
		"amount":           a.Amount,
		"transaction_type": tt,
	}
	if a.Price != nil {
		data["price"] = *a.Price
	}
	if a.BestBeforeDate != nil {
		data["best_before_date"] = a.BestBeforeDate.Format(dateLayout)
	}
	if a.LocationID != nil {
		data["location_id"] = *a.LocationID
	}
	if a.ShoppingLocationID != nil {
		data["shopping_location_id"] = *a.ShoppingLocationID
	}
	return data, nil
}

// StockConsume is the body of a consume booking.
type StockConsume struct {
	Amount                      float64
	Spoiled                     bool
	AllowSubproductSubstitution bool
	LocationID                  *int
	RecipeID                    *int
	// TransactionType defaults to TransactionConsume.
	TransactionType TransactionType
}

func (c StockConsume) body() (map[string]any, error) {
	tt, err := transactionOr(c.TransactionType, TransactionConsume)
	if err != nil {
		return nil, err
	}
	data := map[string]any{
		"amount":                        c.Amount,
		"spoiled":                       c.Spoiled,
		"transaction_type":              tt,
		"allow_subproduct_substitution": c.AllowSubproductSubstitution,
	}
	if c.LocationID != nil {
		data["location_id"] = *c.LocationID
	}
	if c.RecipeID != nil {
		data["recipe_id"] = *c.RecipeID
	}
	return data, nil
}

// StockOpen is the body of a product-opened booking.
type StockOpen struct {
	Amount                      float64
	AllowSubproductSubstitution bool
}

func (o StockOpen) body() map[string]any {
	return map[string]any{
		"amount":                        o.Amount,
		"allow_subproduct_substitution": o.AllowSubproductSubstitution,
	}
}

// StockInventory sets the absolute amount in stock.
type StockInventory struct {
	NewAmount          float64
	BestBeforeDate     *time.Time
	LocationID         *int
	ShoppingLocationID *int
	Price              *float64
}

func (i StockInventory) body() map[string]any {
	data := map[string]any{"new_amount": i.NewAmount}
	if i.BestBeforeDate != nil {
		data["best_before_date"] = i.BestBeforeDate.Format(dateLayout)
	}
	if i.LocationID != nil {
		data["location_id"] = *i.LocationID
	}
	if i.ShoppingLocationID != nil {
		data["shopping_location_id"] = *i.ShoppingLocationID
	}
	if i.Price != nil {
		data["price"] = *i.Price
	}
	return data
}

func transactionOr(t, def TransactionType) (TransactionType, error) {
	if t == "" {
		return def, nil
	}
	if !t.Valid() {
		return "", fmt.Errorf("transaction type %q: %w", t, ErrUnknownValue)
	}
	return t, nil
}

// Stock lists everything currently in stock.
func (c *Client) Stock(ctx context.Context) ([]CurrentStockResponse, error) {
	var out []CurrentStockResponse
	if _, err := c.get(ctx, "stock", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// VolatileStock returns the due, overdue, expired and missing lists.
// dueSoonDays is omitted from the request when not positive.
func (c *Client) VolatileStock(ctx context.Context, dueSoonDays int) (*CurrentVolatileStockResponse, error) {
	var query url.Values
	if dueSoonDays > 0 {
		query = url.Values{"due_soon_days": {itoa(dueSoonDays)}}
	}
	var out CurrentVolatileStockResponse
	ok, err := c.get(ctx, "stock/volatile", query, &out)
	if err != nil || !ok {
		return nil, err
	}
	return &out, nil
}

// ProductDetails fetches stock details for one product. A nil result with
// a nil error means the server returned an empty body.
func (c *Client) ProductDetails(ctx context.Context, productID int) (*ProductDetailsResponse, error) {
	var out ProductDetailsResponse
	ok, err := c.get(ctx, "stock/products/"+itoa(productID), nil, &out)
	if err != nil || !ok {
		return nil, err
	}
	return &out, nil
}

func barcodePath(barcode string) string {
	return "stock/products/by-barcode/" + url.PathEscape(barcode)
}

// ProductByBarcode fetches stock details for the product owning barcode.
func (c *Client) ProductByBarcode(ctx context.Context, barcode string) (*ProductDetailsResponse, error) {
	var out ProductDetailsResponse
	ok, err := c.get(ctx, barcodePath(barcode), nil, &out)
	if err != nil || !ok {
		return nil, err
	}
	return &out, nil
}

// Products lists product master data.
func (c *Client) Products(ctx context.Context, filters Filters) ([]ProductData, error) {
	var out []ProductData
	if _, err := c.get(ctx, "objects/products", filters.values(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddProduct books a purchase.
func (c *Client) AddProduct(ctx context.Context, productID int, req StockAdd) ([]StockLogResponse, error) {
	return c.stockBooking(ctx, "stock/products/"+itoa(productID)+"/add", req.body)
}

// AddProductByBarcode books a purchase for the product owning barcode.
func (c *Client) AddProductByBarcode(ctx context.Context, barcode string, req StockAdd) ([]StockLogResponse, error) {
	return c.stockBooking(ctx, barcodePath(barcode)+"/add", req.body)
}

// ConsumeProduct books a consumption.
func (c *Client) ConsumeProduct(ctx context.Context, productID int, req StockConsume) ([]StockLogResponse, error) {
	return c.stockBooking(ctx, "stock/products/"+itoa(productID)+"/consume", req.body)
}

// ConsumeProductByBarcode books a consumption for the product owning barcode.
func (c *Client) ConsumeProductByBarcode(ctx context.Context, barcode string, req StockConsume) ([]StockLogResponse, error) {
	return c.stockBooking(ctx, barcodePath(barcode)+"/consume", req.body)
}

// OpenProduct marks stock as opened.
func (c *Client) OpenProduct(ctx context.Context, productID int, req StockOpen) ([]StockLogResponse, error) {
	return c.stockBooking(ctx, "stock/products/"+itoa(productID)+"/open", func() (map[string]any, error) {
		return req.body(), nil
	})
}

// InventoryProduct corrects the amount in stock.
func (c *Client) InventoryProduct(ctx context.Context, productID int, req StockInventory) ([]StockLogResponse, error) {
	return c.stockBooking(ctx, "stock/products/"+itoa(productID)+"/inventory", func() (map[string]any, error) {
		return req.body(), nil
	})
}

// InventoryProductByBarcode corrects the amount in stock for the product
// owning barcode.
func (c *Client) InventoryProductByBarcode(ctx context.Context, barcode string, req StockInventory) ([]StockLogResponse, error) {
	return c.stockBooking(ctx, barcodePath(barcode)+"/inventory", func() (map[string]any, error) {
		return req.body(), nil
	})
}

func (c *Client) stockBooking(ctx context.Context, path string, build func() (map[string]any, error)) ([]StockLogResponse, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	data, err := build()
	if err != nil {
		return nil, err
	}
	resp, err := c.transport.Post(ctx, path, data)
	if err != nil {
		return nil, err
	}
	return decodeBookings(path, resp)
}

// StockLog lists stock bookings.
func (c *Client) StockLog(ctx context.Context, filters Filters) ([]StockLogResponse, error) {
	var out []StockLogResponse
	if _, err := c.get(ctx, "objects/stock_log", filters.values(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ProductPictureFileName is the base64 file name Grocy stores a product's
// picture under.
func ProductPictureFileName(productID int) string {
	return base64.StdEncoding.EncodeToString([]byte(fmt.Sprintf("%d.jpg", productID)))
}

// ProductPicturePath is the API path of a product's picture.
func ProductPicturePath(productID int) string {
	return "files/productpictures/" + ProductPictureFileName(productID)
}

// UploadProductPicture stores picture as the product's image and points the
// product at it.
func (c *Client) UploadProductPicture(ctx context.Context, productID int, picture io.Reader) error {
	if err := c.put(ctx, ProductPicturePath(productID), picture, ContentOctetStream); err != nil {
		return err
	}
	return c.put(ctx, "objects/products/"+itoa(productID), map[string]any{
		"picture_file_name": fmt.Sprintf("%d.jpg", productID),
	}, ContentJSON)
}

// QuantityUnits lists quantity units.
func (c *Client) QuantityUnits(ctx context.Context, filters Filters) ([]QuantityUnitData, error) {
	var out []QuantityUnitData
	if _, err := c.get(ctx, "objects/quantity_units", filters.values(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Locations lists storage locations.
func (c *Client) Locations(ctx context.Context, filters Filters) ([]LocationData, error) {
	var out []LocationData
	if _, err := c.get(ctx, "objects/locations", filters.values(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ProductGroups lists product groups.
func (c *Client) ProductGroups(ctx context.Context, filters Filters) ([]LocationData, error) {
	var out []LocationData
	if _, err := c.get(ctx, "objects/product_groups", filters.values(), &out); err != nil {
		return nil, err
	}
	return out, nil
}
