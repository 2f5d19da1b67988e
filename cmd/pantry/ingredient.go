// Ingredient commands manage the inventory collection.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

var (
	ingName      string
	ingQuantity  float64
	ingUnit      string
	ingUnitPrice float64
	ingExpiry    string
	ingWithin    time.Duration
)

var ingredientCmd = &cobra.Command{
	Use:   "ingredient",
	Short: "Manage inventory ingredients",
}

var ingredientAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new ingredient",
	Long: `Add creates a new ingredient with the given name, quantity, and unit.

Example:
  pantry ingredient add --name Flour --quantity 1000 --unit g --price 0.002
  pantry ingredient add --name Milk --quantity 1 --unit l --expiry 2026-09-05`,
	RunE: runIngredientAdd,
}

var ingredientGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show an ingredient by ID",
	Args:  cobra.ExactArgs(1),
	RunE:  runIngredientGet,
}

var ingredientListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all ingredients",
	RunE:  runIngredientList,
}

var ingredientDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove an ingredient by ID",
	Args:  cobra.ExactArgs(1),
	RunE:  runIngredientDelete,
}

var ingredientLowStockCmd = &cobra.Command{
	Use:   "low-stock",
	Short: "List ingredients at or below their low stock threshold",
	RunE:  runIngredientLowStock,
}

var ingredientExpiringCmd = &cobra.Command{
	Use:   "expiring",
	Short: "List ingredients expiring within a duration",
	RunE:  runIngredientExpiring,
}

func init() {
	ingredientAddCmd.Flags().StringVar(&ingName, "name", "", "ingredient name (required)")
	ingredientAddCmd.Flags().Float64Var(&ingQuantity, "quantity", 0, "quantity on hand")
	ingredientAddCmd.Flags().StringVar(&ingUnit, "unit", "g", "measurement unit (g, kg, ml, l, pc, tsp, tbsp, cup, oz, lb)")
	ingredientAddCmd.Flags().Float64Var(&ingUnitPrice, "price", 0, "cost per unit")
	ingredientAddCmd.Flags().StringVar(&ingExpiry, "expiry", "", "expiry date (YYYY-MM-DD)")
	_ = ingredientAddCmd.MarkFlagRequired("name")

	ingredientExpiringCmd.Flags().DurationVar(&ingWithin, "within", 72*time.Hour, "expiry horizon")

	ingredientCmd.AddCommand(ingredientAddCmd)
	ingredientCmd.AddCommand(ingredientGetCmd)
	ingredientCmd.AddCommand(ingredientListCmd)
	ingredientCmd.AddCommand(ingredientDeleteCmd)
	ingredientCmd.AddCommand(ingredientLowStockCmd)
	ingredientCmd.AddCommand(ingredientExpiringCmd)
}

func runIngredientAdd(cmd *cobra.Command, args []string) error {
	unit, err := types.ParseUnit(ingUnit)
	if err != nil {
		return fmt.Errorf("%w (valid units: %s)", err, joinTokens(types.AllUnits))
	}

	ingredient, err := types.NewIngredient(ingName, ingQuantity, unit)
	if err != nil {
		return fmt.Errorf("create ingredient: %w", err)
	}
	if err := ingredient.SetUnitPrice(ingUnitPrice); err != nil {
		return err
	}
	if ingExpiry != "" {
		expiry, err := time.Parse("2006-01-02", ingExpiry)
		if err != nil {
			return fmt.Errorf("parse expiry date: %w", err)
		}
		ingredient.ExpiryDate = &expiry
	}

	if err := repo.AddIngredient(ingredient); err != nil {
		return fmt.Errorf("add ingredient: %w", err)
	}
	if err := persist(); err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(ingredient)
	}
	fmt.Printf("Added ingredient: %s\n", ingredient.ID)
	return nil
}

func runIngredientGet(cmd *cobra.Command, args []string) error {
	ingredient, err := repo.GetIngredient(args[0])
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(ingredient)
	}
	printIngredientTable([]*types.Ingredient{ingredient})
	return nil
}

func runIngredientList(cmd *cobra.Command, args []string) error {
	return outputIngredients(repo.ListIngredients())
}

func runIngredientDelete(cmd *cobra.Command, args []string) error {
	if err := repo.RemoveIngredient(args[0]); err != nil {
		return err
	}
	if err := persist(); err != nil {
		return err
	}
	fmt.Printf("Deleted ingredient: %s\n", args[0])
	return nil
}

func runIngredientLowStock(cmd *cobra.Command, args []string) error {
	return outputIngredients(repo.ListLowStockIngredients())
}

func runIngredientExpiring(cmd *cobra.Command, args []string) error {
	return outputIngredients(repo.ListExpiringIngredients(ingWithin))
}

func outputIngredients(ingredients []*types.Ingredient) error {
	if jsonOutput {
		return printJSON(ingredients)
	}
	printIngredientTable(ingredients)
	return nil
}

// printIngredientTable prints ingredients in a human-readable table format.
func printIngredientTable(ingredients []*types.Ingredient) {
	if len(ingredients) == 0 {
		fmt.Println("No ingredients found.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tQUANTITY\tUNIT\tCOST\tEXPIRY")
	for _, ingredient := range ingredients {
		expiry := "-"
		if ingredient.ExpiryDate != nil {
			expiry = ingredient.ExpiryDate.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%s\t%s\t%g\t%s\t%.2f\t%s\n",
			ingredient.ID, ingredient.Name, ingredient.Quantity,
			ingredient.Unit, ingredient.Cost(), expiry)
	}
	w.Flush()
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(output))
	return nil
}

// joinTokens renders a token list for flag help and error messages.
func joinTokens(units []types.Unit) string {
	tokens := make([]string, len(units))
	for i, u := range units {
		tokens[i] = u.String()
	}
	return strings.Join(tokens, ", ")
}
