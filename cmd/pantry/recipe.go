// Recipe commands manage the recipe collection.
package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

var (
	recName        string
	recDescription string
	recDifficulty  string
	recServings    int
)

var recipeCmd = &cobra.Command{
	Use:   "recipe",
	Short: "Manage recipes",
}

var recipeAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new recipe",
	Long: `Add creates a new recipe with the given name and description.
Ingredients and steps are added by editing the stored data or through the
library API.

Example:
  pantry recipe add --name Bread --description "Plain white loaf" --difficulty medium --servings 4`,
	RunE: runRecipeAdd,
}

var recipeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all recipes",
	RunE:  runRecipeList,
}

var recipeSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search recipes by name and description",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecipeSearch,
}

var recipeShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a recipe in full",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecipeShow,
}

func init() {
	recipeAddCmd.Flags().StringVar(&recName, "name", "", "recipe name (required)")
	recipeAddCmd.Flags().StringVar(&recDescription, "description", "", "recipe description")
	recipeAddCmd.Flags().StringVar(&recDifficulty, "difficulty", types.DifficultyEasy, "difficulty (easy, medium, hard)")
	recipeAddCmd.Flags().IntVar(&recServings, "servings", 1, "serving count")
	_ = recipeAddCmd.MarkFlagRequired("name")

	recipeCmd.AddCommand(recipeAddCmd)
	recipeCmd.AddCommand(recipeListCmd)
	recipeCmd.AddCommand(recipeSearchCmd)
	recipeCmd.AddCommand(recipeShowCmd)
}

func runRecipeAdd(cmd *cobra.Command, args []string) error {
	recipe, err := types.NewRecipe(recName, recDescription)
	if err != nil {
		return fmt.Errorf("create recipe: %w", err)
	}
	if err := recipe.SetDifficulty(recDifficulty); err != nil {
		return err
	}
	if err := recipe.SetServings(recServings); err != nil {
		return err
	}

	if err := repo.AddRecipe(recipe); err != nil {
		return fmt.Errorf("add recipe: %w", err)
	}
	if err := persist(); err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(recipe)
	}
	fmt.Printf("Added recipe: %s\n", recipe.ID)
	return nil
}

func runRecipeList(cmd *cobra.Command, args []string) error {
	return outputRecipes(repo.ListRecipes())
}

func runRecipeSearch(cmd *cobra.Command, args []string) error {
	return outputRecipes(repo.SearchRecipes(args[0]))
}

func runRecipeShow(cmd *cobra.Command, args []string) error {
	recipe, err := repo.GetRecipe(args[0])
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(recipe)
	}

	fmt.Printf("%s (%s, %d servings, %s)\n", recipe.Name, recipe.Difficulty, recipe.Servings, recipe.TotalTime())
	if recipe.Description != "" {
		fmt.Println(recipe.Description)
	}
	fmt.Printf("Total cost: %.2f\n", recipe.TotalCost())
	if len(recipe.Ingredients) > 0 {
		fmt.Println("Ingredients:")
		for _, ingredient := range recipe.Ingredients {
			fmt.Printf("  %g %s %s\n", ingredient.Quantity, ingredient.Unit, ingredient.Name)
		}
	}
	if len(recipe.Steps) > 0 {
		fmt.Println("Steps:")
		for _, step := range recipe.Steps {
			fmt.Printf("  %d. %s (%d min)\n", step.Order, step.Description, step.DurationMinutes)
		}
	}
	return nil
}

func outputRecipes(recipes []*types.Recipe) error {
	if jsonOutput {
		return printJSON(recipes)
	}
	printRecipeTable(recipes)
	return nil
}

// printRecipeTable prints recipes in a human-readable table format.
func printRecipeTable(recipes []*types.Recipe) {
	if len(recipes) == 0 {
		fmt.Println("No recipes found.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tDIFFICULTY\tSERVINGS\tCOST\tVALID")
	for _, recipe := range recipes {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2f\t%t\n",
			recipe.ID, recipe.Name, recipe.Difficulty, recipe.Servings,
			recipe.TotalCost(), recipe.IsValid())
	}
	w.Flush()
}
