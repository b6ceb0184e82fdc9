package grocy

import (
	"context"

	"github.com/five82/pantry/api"
	"github.com/five82/pantry/parse"
)

// ProductFetcher loads stock details for one product. *api.Client
// satisfies it.
type ProductFetcher interface {
	ProductDetails(ctx context.Context, productID int) (*api.ProductDetailsResponse, error)
}

var _ ProductFetcher = (*api.Client)(nil)

// ProductBarcode is one barcode attached to a product.
type ProductBarcode struct {
	barcode string
}

func newProductBarcodes(records []api.ProductBarcodeData) []ProductBarcode {
	out := make([]ProductBarcode, 0, len(records))
	for _, r := range records {
		out = append(out, ProductBarcode{barcode: r.Barcode})
	}
	return out
}

func (b ProductBarcode) Barcode() string { return b.barcode }

// QuantityUnit is a unit products are counted or bought in.
type QuantityUnit struct {
	id          int
	name        string
	namePlural  string
	description string
}

// QuantityUnitFromData builds a unit from its object row.
func QuantityUnitFromData(data *api.QuantityUnitData) (*QuantityUnit, error) {
	if data == nil {
		return nil, &ShapeError{Model: "quantity unit", Shape: "nil quantity unit data"}
	}
	return &QuantityUnit{
		id:          data.ID,
		name:        data.Name,
		namePlural:  data.NamePlural,
		description: data.Description,
	}, nil
}

func (q *QuantityUnit) ID() int { return q.id }
func (q *QuantityUnit) Name() string { return q.name }
func (q *QuantityUnit) NamePlural() string { return q.namePlural }
func (q *QuantityUnit) Description() string { return q.description }

// Group is a product group or a storage location. Grocy returns both in the
// same shape.
type Group struct {
	id          int
	name        string
	description string
}

// GroupFromData builds a group from a location or product group row.
func GroupFromData(data *api.LocationData) (*Group, error) {
	if data == nil {
		return nil, &ShapeError{Model: "group", Shape: "nil location data"}
	}
	return &Group{id: data.ID, name: data.Name, description: data.Description}, nil
}

func (g *Group) ID() int { return g.id }
func (g *Group) Name() string { return g.name }
func (g *Group) Description() string { return g.description }

// Product is a product as seen from one of the stock endpoints. Which
// optional fields are set depends on the factory that built it; the others
// stay nil.
type Product struct {
	id                          int
	name                        string
	productGroupID              *int
	availableAmount             *float64
	bestBeforeDate              *parse.Time
	barcodes                    []ProductBarcode
	amountMissing               *float64
	isPartlyInStock             *bool
	defaultQuantityUnitPurchase *QuantityUnit
	quFactorPurchaseToStock     *float64
}

// ProductFromStockEntry builds a product from a current stock or volatile
// stock entry.
func ProductFromStockEntry(entry *api.CurrentStockResponse) (*Product, error) {
	if entry == nil {
		return nil, &ShapeError{Model: "product", Shape: "nil stock entry"}
	}
	p := &Product{
		id:              entry.ProductID,
		availableAmount: ptr(entry.Amount),
		bestBeforeDate:  entry.BestBeforeDate,
		barcodes:        []ProductBarcode{},
	}
	if entry.Product != nil {
		p.name = entry.Product.Name
		p.productGroupID = entry.Product.ProductGroupID
		p.quFactorPurchaseToStock = entry.Product.QuFactorPurchaseToStock
	}
	return p, nil
}

// ProductFromMissing builds a product from a missing_products entry.
func ProductFromMissing(entry *api.MissingProductResponse) (*Product, error) {
	if entry == nil {
		return nil, &ShapeError{Model: "product", Shape: "nil missing product entry"}
	}
	partly := entry.IsPartlyInStock
	return &Product{
		id:              entry.ProductID,
		name:            entry.Name,
		amountMissing:   entry.AmountMissing,
		isPartlyInStock: &partly,
		barcodes:        []ProductBarcode{},
	}, nil
}

// ProductFromDetails builds a product from a stock details response.
func ProductFromDetails(details *api.ProductDetailsResponse) (*Product, error) {
	if details == nil {
		return nil, &ShapeError{Model: "product", Shape: "nil product details"}
	}
	p := &Product{
		id:              details.Product.ID,
		availableAmount: details.StockAmount,
		bestBeforeDate:  details.NextDueDate,
	}
	p.applyDetails(details)
	return p, nil
}

// ProductFromData builds a product from its master data row.
func ProductFromData(data *api.ProductData) (*Product, error) {
	if data == nil {
		return nil, &ShapeError{Model: "product", Shape: "nil product data"}
	}
	return &Product{
		id:                      data.ID,
		name:                    data.Name,
		productGroupID:          data.ProductGroupID,
		quFactorPurchaseToStock: data.QuFactorPurchaseToStock,
		barcodes:                []ProductBarcode{},
	}, nil
}

// applyDetails overwrites the fields a details response is authoritative
// for. Stock amounts are left alone so a summary keeps what its list call
// reported.
func (p *Product) applyDetails(details *api.ProductDetailsResponse) {
	p.name = details.Product.Name
	p.productGroupID = details.Product.ProductGroupID
	p.barcodes = newProductBarcodes(details.Barcodes)
	p.quFactorPurchaseToStock = details.Product.QuFactorPurchaseToStock
	p.defaultQuantityUnitPurchase = nil
	if details.QuantityUnitPurchase != nil {
		p.defaultQuantityUnitPurchase, _ = QuantityUnitFromData(details.QuantityUnitPurchase)
	}
}

// FetchDetails loads the product's details and merges name, barcodes, group
// and purchase unit into p. Every call goes to the server. An empty response
// leaves p unchanged.
func (p *Product) FetchDetails(ctx context.Context, fetcher ProductFetcher) error {
	details, err := fetcher.ProductDetails(ctx, p.id)
	if err != nil {
		return err
	}
	if details != nil {
		p.applyDetails(details)
	}
	return nil
}

func (p *Product) ID() int { return p.id }
func (p *Product) Name() string { return p.name }
func (p *Product) ProductGroupID() *int { return p.productGroupID }
func (p *Product) AvailableAmount() *float64 { return p.availableAmount }
func (p *Product) BestBeforeDate() *parse.Time { return p.bestBeforeDate }
func (p *Product) AmountMissing() *float64 { return p.amountMissing }
func (p *Product) IsPartlyInStock() *bool { return p.isPartlyInStock }
func (p *Product) DefaultQuantityUnitPurchase() *QuantityUnit { return p.defaultQuantityUnitPurchase }
func (p *Product) QuFactorPurchaseToStock() *float64 { return p.quFactorPurchaseToStock }

// ProductBarcodes returns the barcodes in server order.
func (p *Product) ProductBarcodes() []ProductBarcode {
	return append([]ProductBarcode(nil), p.barcodes...)
}

// Barcodes returns the barcode strings in server order.
func (p *Product) Barcodes() []string {
	out := make([]string, 0, len(p.barcodes))
	for _, b := range p.barcodes {
		out = append(out, b.barcode)
	}
	return out
}

// ShoppingListProduct is one shopping list row. Product stays nil until
// FetchDetails loads it.
type ShoppingListProduct struct {
	id        int
	productID *int
	amount    float64
	note      string
	product   *Product
}

// ShoppingListProductFromItem builds a row from its object record.
func ShoppingListProductFromItem(item *api.ShoppingListItem) (*ShoppingListProduct, error) {
	if item == nil {
		return nil, &ShapeError{Model: "shopping list product", Shape: "nil shopping list item"}
	}
	return &ShoppingListProduct{
		id:        item.ID,
		productID: item.ProductID,
		amount:    item.Amount,
		note:      item.Note,
	}, nil
}

// FetchDetails loads the referenced product. Rows without a product make no
// call.
func (s *ShoppingListProduct) FetchDetails(ctx context.Context, fetcher ProductFetcher) error {
	if s.productID == nil {
		return nil
	}
	details, err := fetcher.ProductDetails(ctx, *s.productID)
	if err != nil {
		return err
	}
	if details == nil {
		return nil
	}
	s.product, err = ProductFromDetails(details)
	return err
}

func (s *ShoppingListProduct) ID() int { return s.id }
func (s *ShoppingListProduct) ProductID() *int { return s.productID }
func (s *ShoppingListProduct) Amount() float64 { return s.amount }
func (s *ShoppingListProduct) Note() string { return s.note }
func (s *ShoppingListProduct) Product() *Product { return s.product }

func ptr[T any](v T) *T { return &v }
