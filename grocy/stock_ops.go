package grocy

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/five82/pantry/api"
)

// Stock lists products currently in stock.
func (g *Grocy) Stock(ctx context.Context) ([]*Product, error) {
	entries, err := g.client.Stock(ctx)
	if err != nil {
		return nil, err
	}
	return collect(entries, ProductFromStockEntry)
}

func (g *Grocy) volatile(ctx context.Context) (*api.CurrentVolatileStockResponse, error) {
	resp, err := g.client.VolatileStock(ctx, g.dueSoonDays)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		resp = &api.CurrentVolatileStockResponse{}
	}
	return resp, nil
}

// DueProducts lists products due within the configured window.
func (g *Grocy) DueProducts(ctx context.Context, getDetails bool) ([]*Product, error) {
	resp, err := g.volatile(ctx)
	if err != nil {
		return nil, err
	}
	return g.stockProducts(ctx, resp.DueProducts, getDetails)
}

// OverdueProducts lists products past their due date.
func (g *Grocy) OverdueProducts(ctx context.Context, getDetails bool) ([]*Product, error) {
	resp, err := g.volatile(ctx)
	if err != nil {
		return nil, err
	}
	return g.stockProducts(ctx, resp.OverdueProducts, getDetails)
}

// ExpiredProducts lists products past their expiry date.
func (g *Grocy) ExpiredProducts(ctx context.Context, getDetails bool) ([]*Product, error) {
	resp, err := g.volatile(ctx)
	if err != nil {
		return nil, err
	}
	return g.stockProducts(ctx, resp.ExpiredProducts, getDetails)
}

// MissingProducts lists products below their minimum stock amount.
func (g *Grocy) MissingProducts(ctx context.Context, getDetails bool) ([]*Product, error) {
	resp, err := g.volatile(ctx)
	if err != nil {
		return nil, err
	}
	products, err := collect(resp.MissingProducts, ProductFromMissing)
	if err != nil {
		return nil, err
	}
	if getDetails {
		if err := g.fetchProducts(ctx, products); err != nil {
			return nil, err
		}
	}
	return products, nil
}

func (g *Grocy) stockProducts(ctx context.Context, entries []api.CurrentStockResponse, getDetails bool) ([]*Product, error) {
	products, err := collect(entries, ProductFromStockEntry)
	if err != nil {
		return nil, err
	}
	if getDetails {
		if err := g.fetchProducts(ctx, products); err != nil {
			return nil, err
		}
	}
	return products, nil
}

// fetchProducts hydrates products in order and stops at the first failure.
func (g *Grocy) fetchProducts(ctx context.Context, products []*Product) error {
	g.logger.Debug("fetching product details", zap.Int("count", len(products)))
	for _, p := range products {
		if err := p.FetchDetails(ctx, g.client); err != nil {
			return err
		}
	}
	return nil
}

// Product returns one product with its stock details, or nil when the
// server has none.
func (g *Grocy) Product(ctx context.Context, productID int) (*Product, error) {
	details, err := g.client.ProductDetails(ctx, productID)
	if err != nil || details == nil {
		return nil, err
	}
	return ProductFromDetails(details)
}

// ProductByBarcode returns the product owning barcode.
func (g *Grocy) ProductByBarcode(ctx context.Context, barcode string) (*Product, error) {
	details, err := g.client.ProductByBarcode(ctx, barcode)
	if err != nil || details == nil {
		return nil, err
	}
	return ProductFromDetails(details)
}

// AllProducts lists product master data, in stock or not.
func (g *Grocy) AllProducts(ctx context.Context, filters api.Filters) ([]*Product, error) {
	records, err := g.client.Products(ctx, filters)
	if err != nil {
		return nil, err
	}
	return collect(records, ProductFromData)
}

// AddProduct books a purchase.
func (g *Grocy) AddProduct(ctx context.Context, productID int, req api.StockAdd) ([]api.StockLogResponse, error) {
	return g.client.AddProduct(ctx, productID, req)
}

// AddProductByBarcode books a purchase by barcode.
func (g *Grocy) AddProductByBarcode(ctx context.Context, barcode string, req api.StockAdd) ([]api.StockLogResponse, error) {
	return g.client.AddProductByBarcode(ctx, barcode, req)
}

// ConsumeProduct books a consumption.
func (g *Grocy) ConsumeProduct(ctx context.Context, productID int, req api.StockConsume) ([]api.StockLogResponse, error) {
	return g.client.ConsumeProduct(ctx, productID, req)
}

// ConsumeProductByBarcode books a consumption by barcode.
func (g *Grocy) ConsumeProductByBarcode(ctx context.Context, barcode string, req api.StockConsume) ([]api.StockLogResponse, error) {
	return g.client.ConsumeProductByBarcode(ctx, barcode, req)
}

// OpenProduct marks stock as opened.
func (g *Grocy) OpenProduct(ctx context.Context, productID int, req api.StockOpen) ([]api.StockLogResponse, error) {
	return g.client.OpenProduct(ctx, productID, req)
}

// InventoryProduct sets the amount in stock.
func (g *Grocy) InventoryProduct(ctx context.Context, productID int, req api.StockInventory) ([]api.StockLogResponse, error) {
	return g.client.InventoryProduct(ctx, productID, req)
}

// InventoryProductByBarcode sets the amount in stock by barcode.
func (g *Grocy) InventoryProductByBarcode(ctx context.Context, barcode string, req api.StockInventory) ([]api.StockLogResponse, error) {
	return g.client.InventoryProductByBarcode(ctx, barcode, req)
}

// AddProductPicture uploads the image at path as the product's picture.
func (g *Grocy) AddProductPicture(ctx context.Context, productID int, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open picture: %w", err)
	}
	defer f.Close()
	if err := g.client.UploadProductPicture(ctx, productID, f); err != nil {
		return err
	}
	g.logger.Debug("product picture uploaded",
		zap.Int("product_id", productID),
		zap.String("file", api.ProductPictureFileName(productID)),
	)
	return nil
}

// StockLog lists stock bookings.
func (g *Grocy) StockLog(ctx context.Context, filters api.Filters) ([]api.StockLogResponse, error) {
	return g.client.StockLog(ctx, filters)
}

// ProductGroups lists product groups.
func (g *Grocy) ProductGroups(ctx context.Context, filters api.Filters) ([]*Group, error) {
	records, err := g.client.ProductGroups(ctx, filters)
	if err != nil {
		return nil, err
	}
	return collect(records, GroupFromData)
}

// Locations lists storage locations.
func (g *Grocy) Locations(ctx context.Context, filters api.Filters) ([]*Group, error) {
	records, err := g.client.Locations(ctx, filters)
	if err != nil {
		return nil, err
	}
	return collect(records, GroupFromData)
}

// QuantityUnits lists quantity units.
func (g *Grocy) QuantityUnits(ctx context.Context, filters api.Filters) ([]*QuantityUnit, error) {
	records, err := g.client.QuantityUnits(ctx, filters)
	if err != nil {
		return nil, err
	}
	return collect(records, QuantityUnitFromData)
}

// ShoppingList lists shopping list entries. With getDetails, entries that
// name a product get that product attached.
func (g *Grocy) ShoppingList(ctx context.Context, getDetails bool, filters api.Filters) ([]*ShoppingListProduct, error) {
	items, err := g.client.ShoppingList(ctx, filters)
	if err != nil {
		return nil, err
	}
	entries, err := collect(items, ShoppingListProductFromItem)
	if err != nil {
		return nil, err
	}
	if getDetails {
		g.logger.Debug("fetching shopping list details", zap.Int("count", len(entries)))
		for _, e := range entries {
			if err := e.FetchDetails(ctx, g.client); err != nil {
				return nil, err
			}
		}
	}
	return entries, nil
}

// AddMissingProductsToShoppingList puts every product below minimum stock on
// the list. A listID below 1 means the default list.
func (g *Grocy) AddMissingProductsToShoppingList(ctx context.Context, listID int) error {
	return g.client.AddMissingProductsToShoppingList(ctx, listID)
}

// AddProductToShoppingList puts a product on a list.
func (g *Grocy) AddProductToShoppingList(ctx context.Context, req api.ShoppingListAdd) error {
	return g.client.AddProductToShoppingList(ctx, req)
}

// RemoveProductFromShoppingList takes a product off a list.
func (g *Grocy) RemoveProductFromShoppingList(ctx context.Context, req api.ShoppingListRemove) error {
	return g.client.RemoveProductFromShoppingList(ctx, req)
}

// ClearShoppingList empties a list.
func (g *Grocy) ClearShoppingList(ctx context.Context, listID int) error {
	return g.client.ClearShoppingList(ctx, listID)
}
