package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/pantry/api"
	"github.com/five82/pantry/grocy"
	"github.com/five82/pantry/internal/output"
)

func newStockCmd(o *rootOptions) *cobra.Command {
	var due, overdue, expired, missing, details bool
	cmd := &cobra.Command{
		Use:   "stock",
		Short: "List products in stock",
		Long: "List products in stock. --due, --overdue, --expired and --missing narrow the list to " +
			"the matching volatile stock section; --details loads each product's purchase unit.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			var (
				products []*grocy.Product
				err      error
			)
			switch {
			case due:
				products, err = o.grocy.DueProducts(ctx, details)
			case overdue:
				products, err = o.grocy.OverdueProducts(ctx, details)
			case expired:
				products, err = o.grocy.ExpiredProducts(ctx, details)
			case missing:
				products, err = o.grocy.MissingProducts(ctx, details)
			default:
				products, err = o.grocy.Stock(ctx)
			}
			if err != nil {
				return err
			}
			return o.printer.Print(output.Products(products))
		},
	}
	cmd.Flags().BoolVar(&due, "due", false, "Only products due soon")
	cmd.Flags().BoolVar(&overdue, "overdue", false, "Only overdue products")
	cmd.Flags().BoolVar(&expired, "expired", false, "Only expired products")
	cmd.Flags().BoolVar(&missing, "missing", false, "Only products below their minimum stock amount")
	cmd.Flags().BoolVar(&details, "details", false, "Load product details for filtered lists")
	cmd.MarkFlagsMutuallyExclusive("due", "overdue", "expired", "missing")

	cmd.AddCommand(&cobra.Command{
		Use:   "log",
		Short: "List stock bookings (use --filter to narrow)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := o.grocy.StockLog(cmd.Context(), o.apiFilters())
			if err != nil {
				return err
			}
			return o.printer.Print(output.StockLog(entries))
		},
	})
	return cmd
}

func newMasterDataCmds(o *rootOptions) []*cobra.Command {
	return []*cobra.Command{
		{
			Use:   "locations",
			Short: "List storage locations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				groups, err := o.grocy.Locations(cmd.Context(), o.apiFilters())
				if err != nil {
					return err
				}
				return o.printer.Print(output.Groups(groups))
			},
		},
		{
			Use:   "product-groups",
			Short: "List product groups",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				groups, err := o.grocy.ProductGroups(cmd.Context(), o.apiFilters())
				if err != nil {
					return err
				}
				return o.printer.Print(output.Groups(groups))
			},
		},
		{
			Use:   "units",
			Short: "List quantity units",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				units, err := o.grocy.QuantityUnits(cmd.Context(), o.apiFilters())
				if err != nil {
					return err
				}
				return o.printer.Print(output.QuantityUnits(units))
			},
		},
	}
}

func newProductCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product <id>",
		Short: "Show a product, or book stock for it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("product id", args[0])
			if err != nil {
				return err
			}
			p, err := o.grocy.Product(cmd.Context(), id)
			if err != nil {
				return err
			}
			if p == nil {
				return fmt.Errorf("product %d not found", id)
			}
			return o.printer.Print(output.Product(p))
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "barcode <code>",
			Short: "Show the product owning a barcode",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				p, err := o.grocy.ProductByBarcode(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if p == nil {
					return fmt.Errorf("no product with barcode %q", args[0])
				}
				return o.printer.Print(output.Product(p))
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List product master data, in stock or not",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				products, err := o.grocy.AllProducts(cmd.Context(), o.apiFilters())
				if err != nil {
					return err
				}
				return o.printer.Print(output.Products(products))
			},
		},
		&cobra.Command{
			Use:   "picture <id> <file>",
			Short: "Upload a product picture",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID("product id", args[0])
				if err != nil {
					return err
				}
				if err := o.grocy.AddProductPicture(cmd.Context(), id, args[1]); err != nil {
					return err
				}
				return o.printer.Done(fmt.Sprintf("Picture uploaded for product %d.", id), map[string]any{
					"product_id": id,
					"file_name":  api.ProductPictureFileName(id),
				})
			},
		},
		newProductAddCmd(o),
		newProductConsumeCmd(o),
		newProductOpenCmd(o),
		newProductInventoryCmd(o),
	)
	return cmd
}

// productTarget resolves "<id>" or --barcode, exactly one of which is given.
func productTarget(args []string, barcode string) (int, error) {
	switch {
	case barcode != "" && len(args) > 0:
		return 0, fmt.Errorf("give a product id or --barcode, not both")
	case barcode != "":
		return 0, nil
	case len(args) == 0:
		return 0, fmt.Errorf("a product id or --barcode is required")
	default:
		return parseID("product id", args[0])
	}
}

func newProductAddCmd(o *rootOptions) *cobra.Command {
	var (
		barcode          string
		amount           float64
		price            float64
		bestBefore       string
		location         int
		shoppingLocation int
		transactionType  string
	)
	cmd := &cobra.Command{
		Use:   "add [<id>]",
		Short: "Add stock for a product",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := productTarget(args, barcode)
			if err != nil {
				return err
			}
			bb, err := parseDate("best-before", bestBefore)
			if err != nil {
				return err
			}
			req := api.StockAdd{
				Amount:             amount,
				Price:              optionalFloat(cmd, "price", price),
				BestBeforeDate:     bb,
				LocationID:         optionalInt(cmd, "location", location),
				ShoppingLocationID: optionalInt(cmd, "shopping-location", shoppingLocation),
				TransactionType:    api.TransactionType(transactionType),
			}
			var entries []api.StockLogResponse
			if barcode != "" {
				entries, err = o.grocy.AddProductByBarcode(cmd.Context(), barcode, req)
			} else {
				entries, err = o.grocy.AddProduct(cmd.Context(), id, req)
			}
			if err != nil {
				return err
			}
			return o.printer.Print(output.StockLog(entries))
		},
	}
	cmd.Flags().StringVar(&barcode, "barcode", "", "Book by barcode instead of product id")
	cmd.Flags().Float64Var(&amount, "amount", 1, "Amount to add")
	cmd.Flags().Float64Var(&price, "price", 0, "Price per unit")
	cmd.Flags().StringVar(&bestBefore, "best-before", "", "Best before date YYYY-MM-DD")
	cmd.Flags().IntVar(&location, "location", 0, "Location id")
	cmd.Flags().IntVar(&shoppingLocation, "shopping-location", 0, "Shopping location id")
	cmd.Flags().StringVar(&transactionType, "transaction-type", "", "Transaction type (default purchase)")
	return cmd
}

func newProductConsumeCmd(o *rootOptions) *cobra.Command {
	var (
		barcode         string
		amount          float64
		spoiled         bool
		substitute      bool
		location        int
		recipe          int
		transactionType string
	)
	cmd := &cobra.Command{
		Use:   "consume [<id>]",
		Short: "Consume stock of a product",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := productTarget(args, barcode)
			if err != nil {
				return err
			}
			req := api.StockConsume{
				Amount:                      amount,
				Spoiled:                     spoiled,
				AllowSubproductSubstitution: substitute,
				LocationID:                  optionalInt(cmd, "location", location),
				RecipeID:                    optionalInt(cmd, "recipe", recipe),
				TransactionType:             api.TransactionType(transactionType),
			}
			var entries []api.StockLogResponse
			if barcode != "" {
				entries, err = o.grocy.ConsumeProductByBarcode(cmd.Context(), barcode, req)
			} else {
				entries, err = o.grocy.ConsumeProduct(cmd.Context(), id, req)
			}
			if err != nil {
				return err
			}
			return o.printer.Print(output.StockLog(entries))
		},
	}
	cmd.Flags().StringVar(&barcode, "barcode", "", "Book by barcode instead of product id")
	cmd.Flags().Float64Var(&amount, "amount", 1, "Amount to consume")
	cmd.Flags().BoolVar(&spoiled, "spoiled", false, "Mark the consumed amount as spoiled")
	cmd.Flags().BoolVar(&substitute, "allow-substitution", false, "Allow consuming a subproduct instead")
	cmd.Flags().IntVar(&location, "location", 0, "Consume from this location id")
	cmd.Flags().IntVar(&recipe, "recipe", 0, "Recipe id the stock was used for")
	cmd.Flags().StringVar(&transactionType, "transaction-type", "", "Transaction type (default consume)")
	return cmd
}

func newProductOpenCmd(o *rootOptions) *cobra.Command {
	var (
		amount     float64
		substitute bool
	)
	cmd := &cobra.Command{
		Use:   "open <id>",
		Short: "Mark stock of a product as opened",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("product id", args[0])
			if err != nil {
				return err
			}
			entries, err := o.grocy.OpenProduct(cmd.Context(), id, api.StockOpen{
				Amount:                      amount,
				AllowSubproductSubstitution: substitute,
			})
			if err != nil {
				return err
			}
			return o.printer.Print(output.StockLog(entries))
		},
	}
	cmd.Flags().Float64Var(&amount, "amount", 1, "Amount to open")
	cmd.Flags().BoolVar(&substitute, "allow-substitution", false, "Allow opening a subproduct instead")
	return cmd
}

func newProductInventoryCmd(o *rootOptions) *cobra.Command {
	var (
		barcode          string
		amount           float64
		bestBefore       string
		location         int
		shoppingLocation int
		price            float64
	)
	cmd := &cobra.Command{
		Use:   "inventory [<id>]",
		Short: "Set the amount of a product in stock",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := productTarget(args, barcode)
			if err != nil {
				return err
			}
			bb, err := parseDate("best-before", bestBefore)
			if err != nil {
				return err
			}
			req := api.StockInventory{
				NewAmount:          amount,
				BestBeforeDate:     bb,
				LocationID:         optionalInt(cmd, "location", location),
				ShoppingLocationID: optionalInt(cmd, "shopping-location", shoppingLocation),
				Price:              optionalFloat(cmd, "price", price),
			}
			var entries []api.StockLogResponse
			if barcode != "" {
				entries, err = o.grocy.InventoryProductByBarcode(cmd.Context(), barcode, req)
			} else {
				entries, err = o.grocy.InventoryProduct(cmd.Context(), id, req)
			}
			if err != nil {
				return err
			}
			return o.printer.Print(output.StockLog(entries))
		},
	}
	cmd.Flags().StringVar(&barcode, "barcode", "", "Book by barcode instead of product id")
	cmd.Flags().Float64Var(&amount, "amount", 0, "New amount in stock")
	cmd.Flags().StringVar(&bestBefore, "best-before", "", "Best before date YYYY-MM-DD")
	cmd.Flags().IntVar(&location, "location", 0, "Location id")
	cmd.Flags().IntVar(&shoppingLocation, "shopping-location", 0, "Shopping location id")
	cmd.Flags().Float64Var(&price, "price", 0, "Price per unit")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}
