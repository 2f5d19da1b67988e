// Meal commands manage the planned meal collection.
package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

var (
	mealName     string
	mealType     string
	mealRecipeID string
	mealServings int
	mealDate     string
	mealStatus   string
)

var mealCmd = &cobra.Command{
	Use:   "meal",
	Short: "Manage planned meals",
}

var mealAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Plan a new meal",
	Long: `Add plans a new meal, optionally seeded from a stored recipe. When a
recipe is given, the meal receives scaled copies of its ingredients.

Example:
  pantry meal add --name "Sunday dinner" --type dinner --recipe <recipe-id> --servings 4`,
	RunE: runMealAdd,
}

var mealListCmd = &cobra.Command{
	Use:   "list",
	Short: "List planned meals",
	Long:  "List all meals, or only those planned for a given day with --date.",
	RunE:  runMealList,
}

var mealStatusCmd = &cobra.Command{
	Use:   "status <id>",
	Short: "Set a meal's status",
	Args:  cobra.ExactArgs(1),
	RunE:  runMealStatus,
}

func init() {
	mealAddCmd.Flags().StringVar(&mealName, "name", "", "meal name (required)")
	mealAddCmd.Flags().StringVar(&mealType, "type", types.MealDinner, "meal type (breakfast, lunch, dinner, snack)")
	mealAddCmd.Flags().StringVar(&mealRecipeID, "recipe", "", "recipe ID to seed ingredients from")
	mealAddCmd.Flags().IntVar(&mealServings, "servings", 1, "serving count")
	_ = mealAddCmd.MarkFlagRequired("name")

	mealListCmd.Flags().StringVar(&mealDate, "date", "", "filter by planned day (YYYY-MM-DD)")

	mealStatusCmd.Flags().StringVar(&mealStatus, "set", "", "status (planned, shopping, preparing, ready, consumed)")
	_ = mealStatusCmd.MarkFlagRequired("set")

	mealCmd.AddCommand(mealAddCmd)
	mealCmd.AddCommand(mealListCmd)
	mealCmd.AddCommand(mealStatusCmd)
}

func runMealAdd(cmd *cobra.Command, args []string) error {
	meal, err := types.NewMeal(mealName, mealType)
	if err != nil {
		return fmt.Errorf("create meal: %w", err)
	}
	if err := meal.SetServings(mealServings); err != nil {
		return err
	}
	if mealRecipeID != "" {
		recipe, err := repo.GetRecipe(mealRecipeID)
		if err != nil {
			return err
		}
		if err := meal.SetRecipe(recipe); err != nil {
			return fmt.Errorf("apply recipe: %w", err)
		}
	}

	if err := repo.AddMeal(meal); err != nil {
		return fmt.Errorf("add meal: %w", err)
	}
	if err := persist(); err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(meal)
	}
	fmt.Printf("Planned meal: %s\n", meal.ID)
	return nil
}

func runMealList(cmd *cobra.Command, args []string) error {
	var meals []*types.Meal
	if mealDate != "" {
		date, err := time.Parse("2006-01-02", mealDate)
		if err != nil {
			return fmt.Errorf("parse date: %w", err)
		}
		meals = repo.ListMealsByDate(date)
	} else {
		meals = repo.ListMeals()
	}

	if jsonOutput {
		return printJSON(meals)
	}
	printMealTable(meals)
	return nil
}

func runMealStatus(cmd *cobra.Command, args []string) error {
	meal, err := repo.GetMeal(args[0])
	if err != nil {
		return err
	}
	if err := meal.SetStatus(mealStatus); err != nil {
		return err
	}
	if err := repo.UpdateMeal(meal); err != nil {
		return err
	}
	if err := persist(); err != nil {
		return err
	}
	fmt.Printf("Meal %s is now %s\n", meal.ID, meal.Status)
	return nil
}

// printMealTable prints meals in a human-readable table format.
func printMealTable(meals []*types.Meal) {
	if len(meals) == 0 {
		fmt.Println("No meals found.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tSTATUS\tPLANNED\tSERVINGS\tCOST")
	for _, meal := range meals {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%.2f\n",
			meal.ID, meal.Name, meal.Type, meal.Status,
			meal.PlannedTime.Format("2006-01-02 15:04"), meal.Servings,
			meal.EstimatedCost)
	}
	w.Flush()
}
