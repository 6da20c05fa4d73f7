package assistant

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FormatPreview renders a proposed action as markdown for human review. It is
// pure and total: every catalog action has its own branch and unrecognized
// names fall back to a raw argument dump, so the operator always sees
// something before confirming. This is the only preview formatter; the same
// output is shown on the propose path and in the confirmation dialog.
func FormatPreview(action Action) string {
	args := action.Arguments

	switch action.Name {
	case ActionCreateRecipe:
		return recipePreview("Create Recipe", args)
	case ActionUpdateRecipe:
		return recipePreview("Update Recipe", args)
	case ActionCreateProduct:
		return productPreview("Create Product", args)
	case ActionUpdateProduct:
		return productPreview("Update Product", args)
	case ActionDeleteRecipe:
		return fmt.Sprintf("**Delete Recipe: %s**\n\nThis permanently removes the recipe from the storefront.", argString(args, "slug"))
	case ActionDeleteProduct:
		return fmt.Sprintf("**Delete Product: %s**\n\nThis permanently removes the product from the shop.", argString(args, "slug"))
	case ActionUpdateInventory:
		return fmt.Sprintf("**Set Inventory: %s**\n\n- New stock quantity: %s", argString(args, "slug"), argNumber(args, "quantity"))
	case ActionApproveUser:
		role := argString(args, "role")
		if role == "" {
			role = "employee"
		}
		return fmt.Sprintf("**Approve User: %s**\n\n- Role: %s\n- Account will be marked approved", argString(args, "email"), role)
	default:
		dump, err := json.MarshalIndent(args, "", "  ")
		if err != nil {
			dump = []byte(fmt.Sprintf("%v", args))
		}
		return fmt.Sprintf("**%s**\n\n```json\n%s\n```", action.Name, dump)
	}
}

func recipePreview(verb string, args map[string]interface{}) string {
	var b strings.Builder

	title := argString(args, "title")
	if title == "" {
		title = argString(args, "slug")
	}
	fmt.Fprintf(&b, "**%s: %s**\n", verb, title)

	writeLine(&b, "Slug", argString(args, "slug"))
	writeLine(&b, "Description", argString(args, "description"))
	writeLine(&b, "Category", argString(args, "category"))
	writeLine(&b, "Difficulty", titleCase(argString(args, "difficulty")))
	writeLine(&b, "Servings", argNumber(args, "servings"))
	writeLine(&b, "Prep time", minutes(args, "prepTime"))
	writeLine(&b, "Cook time", minutes(args, "cookTime"))

	if items, ok := args["ingredients"].([]interface{}); ok && len(items) > 0 {
		b.WriteString("\nIngredients:\n")
		for _, item := range items {
			entry, _ := item.(map[string]interface{})
			line := strings.TrimSpace(fmt.Sprintf("%s %s %s",
				argString(entry, "amount"), argString(entry, "unit"), argString(entry, "name")))
			fmt.Fprintf(&b, "- %s\n", line)
		}
	}

	if steps, ok := args["instructions"].([]interface{}); ok && len(steps) > 0 {
		b.WriteString("\nInstructions:\n")
		for _, step := range steps {
			entry, _ := step.(map[string]interface{})
			fmt.Fprintf(&b, "%s. %s\n", argNumber(entry, "step"), argString(entry, "instruction"))
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func productPreview(verb string, args map[string]interface{}) string {
	var b strings.Builder

	name := argString(args, "name")
	if name == "" {
		name = argString(args, "slug")
	}
	fmt.Fprintf(&b, "**%s: %s**\n", verb, name)

	writeLine(&b, "Slug", argString(args, "slug"))
	writeLine(&b, "Description", argString(args, "description"))
	writeLine(&b, "Category", argString(args, "category"))
	if _, ok := args["price"]; ok {
		writeLine(&b, "Price", fmt.Sprintf("%s cents", argNumber(args, "price")))
	}
	writeLine(&b, "Stock", argNumber(args, "stock"))
	if v, ok := args["available"].(bool); ok {
		writeLine(&b, "Available", fmt.Sprintf("%t", v))
	}

	return strings.TrimRight(b.String(), "\n")
}

func writeLine(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "- %s: %s\n", label, value)
}

func argString(args map[string]interface{}, key string) string {
	if args == nil {
		return ""
	}
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

// argNumber renders a numeric argument without a trailing ".0" for whole values
func argNumber(args map[string]interface{}, key string) string {
	if args == nil {
		return ""
	}
	v, ok := args[key].(float64)
	if !ok {
		if n, isInt := args[key].(int); isInt {
			return fmt.Sprintf("%d", n)
		}
		return ""
	}
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}

func minutes(args map[string]interface{}, key string) string {
	n := argNumber(args, key)
	if n == "" {
		return ""
	}
	return n + " min"
}

func titleCase(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
