package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/pantry/api"
	"github.com/five82/pantry/internal/output"
)

func newShoppingCmd(o *rootOptions) *cobra.Command {
	var listID int
	cmd := &cobra.Command{
		Use:   "shopping",
		Short: "Manage shopping lists",
	}
	cmd.PersistentFlags().IntVar(&listID, "list", api.DefaultShoppingListID, "Shopping list id")

	var details bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List shopping list rows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filters := o.apiFilters()
			if cmd.Flags().Changed("list") {
				filters = append(filters, fmt.Sprintf("shopping_list_id=%d", listID))
			}
			items, err := o.grocy.ShoppingList(cmd.Context(), details, filters)
			if err != nil {
				return err
			}
			return o.printer.Print(output.ShoppingList(items))
		},
	}
	list.Flags().BoolVar(&details, "details", false, "Load the product of each row")

	var (
		addAmount float64
		addUnit   int
		addNote   string
	)
	add := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Put a product on a shopping list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("product id", args[0])
			if err != nil {
				return err
			}
			err = o.grocy.AddProductToShoppingList(cmd.Context(), api.ShoppingListAdd{
				ProductID:      id,
				ListID:         listID,
				Amount:         addAmount,
				QuantityUnitID: optionalInt(cmd, "unit", addUnit),
				Note:           addNote,
			})
			if err != nil {
				return err
			}
			return o.printer.Done(fmt.Sprintf("Product %d added to shopping list %d.", id, listID),
				map[string]any{"product_id": id, "list_id": listID})
		},
	}
	add.Flags().Float64Var(&addAmount, "amount", 1, "Amount to put on the list")
	add.Flags().IntVar(&addUnit, "unit", 0, "Quantity unit id")
	add.Flags().StringVar(&addNote, "note", "", "Note for the row")

	var removeAmount float64
	remove := &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Take an amount of a product off a shopping list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("product id", args[0])
			if err != nil {
				return err
			}
			err = o.grocy.RemoveProductFromShoppingList(cmd.Context(), api.ShoppingListRemove{
				ProductID: id,
				ListID:    listID,
				Amount:    removeAmount,
			})
			if err != nil {
				return err
			}
			return o.printer.Done(fmt.Sprintf("Product %d removed from shopping list %d.", id, listID),
				map[string]any{"product_id": id, "list_id": listID})
		},
	}
	remove.Flags().Float64Var(&removeAmount, "amount", 1, "Amount to remove")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every row from a shopping list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := o.grocy.ClearShoppingList(cmd.Context(), listID); err != nil {
				return err
			}
			return o.printer.Done(fmt.Sprintf("Shopping list %d cleared.", listID), map[string]any{"list_id": listID})
		},
	}

	addMissing := &cobra.Command{
		Use:   "add-missing",
		Short: "Add every product below its minimum stock amount",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := o.grocy.AddMissingProductsToShoppingList(cmd.Context(), listID); err != nil {
				return err
			}
			return o.printer.Done(fmt.Sprintf("Missing products added to shopping list %d.", listID),
				map[string]any{"list_id": listID})
		},
	}

	cmd.AddCommand(list, add, remove, clearCmd, addMissing)
	return cmd
}
