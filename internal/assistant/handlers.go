package assistant

import (
	"encoding/json"
	"fmt"

	"mise/internal/auth"
	"mise/internal/models"
)

// One handler per catalog entry. Handlers are the only code that mutates the
// store on behalf of the assistant, and they run only after the dispatcher's
// role and argument checks.

func (d *Dispatcher) createRecipe(args map[string]interface{}) ActionResult {
	recipe := models.Recipe{
		Slug:            stringArg(args, "slug"),
		Title:           stringArg(args, "title"),
		Description:     stringArg(args, "description"),
		Category:        stringArg(args, "category"),
		Difficulty:      stringArg(args, "difficulty"),
		Servings:        intArg(args, "servings"),
		PrepTimeMinutes: intArg(args, "prepTime"),
		CookTimeMinutes: intArg(args, "cookTime"),
		Tags:            stringSliceArg(args, "tags"),
	}

	if raw, ok := args["ingredients"]; ok {
		ingredients, err := decodeList[models.Ingredient](raw)
		if err != nil {
			return errorResult(ReasonInvalidArguments, fmt.Sprintf("invalid ingredients: %v", err))
		}
		if err := recipe.SetIngredients(ingredients); err != nil {
			return errorResult(ReasonInvalidArguments, err.Error())
		}
	}
	if raw, ok := args["instructions"]; ok {
		instructions, err := decodeList[models.Instruction](raw)
		if err != nil {
			return errorResult(ReasonInvalidArguments, fmt.Sprintf("invalid instructions: %v", err))
		}
		if err := recipe.SetInstructions(instructions); err != nil {
			return errorResult(ReasonInvalidArguments, err.Error())
		}
	}

	if err := d.db.Create(&recipe).Error; err != nil {
		return errorResult(ReasonStoreFailure, err.Error())
	}

	return successResult(
		fmt.Sprintf("Recipe %q created.", recipe.Title),
		"/recipes/"+recipe.Slug,
		map[string]interface{}{"slug": recipe.Slug},
	)
}

func (d *Dispatcher) createProduct(args map[string]interface{}) ActionResult {
	product := models.Product{
		Slug:        stringArg(args, "slug"),
		Name:        stringArg(args, "name"),
		Description: stringArg(args, "description"),
		Category:    stringArg(args, "category"),
		PriceCents:  intArg(args, "price"),
		Stock:       intArg(args, "stock"),
		ImageURL:    stringArg(args, "imageUrl"),
		Available:   true,
	}
	if v, ok := args["available"].(bool); ok {
		product.Available = v
	}

	if err := d.db.Create(&product).Error; err != nil {
		return errorResult(ReasonStoreFailure, err.Error())
	}

	return successResult(
		fmt.Sprintf("Product %q created.", product.Name),
		"/shop/"+product.Slug,
		map[string]interface{}{"slug": product.Slug},
	)
}

func (d *Dispatcher) updateRecipe(args map[string]interface{}) ActionResult {
	slug := stringArg(args, "slug")

	// Only fields explicitly present in the arguments are written; omitted
	// fields stay untouched.
	updates := map[string]interface{}{}
	if _, ok := args["title"]; ok {
		updates["title"] = stringArg(args, "title")
	}
	if _, ok := args["description"]; ok {
		updates["description"] = stringArg(args, "description")
	}
	if _, ok := args["category"]; ok {
		updates["category"] = stringArg(args, "category")
	}
	if _, ok := args["difficulty"]; ok {
		updates["difficulty"] = stringArg(args, "difficulty")
	}
	if _, ok := args["servings"]; ok {
		updates["servings"] = intArg(args, "servings")
	}
	if _, ok := args["prepTime"]; ok {
		updates["prep_time_minutes"] = intArg(args, "prepTime")
	}
	if _, ok := args["cookTime"]; ok {
		updates["cook_time_minutes"] = intArg(args, "cookTime")
	}
	if _, ok := args["tags"]; ok {
		updates["tags"] = stringSliceArg(args, "tags")
	}
	if raw, ok := args["ingredients"]; ok {
		ingredients, err := decodeList[models.Ingredient](raw)
		if err != nil {
			return errorResult(ReasonInvalidArguments, fmt.Sprintf("invalid ingredients: %v", err))
		}
		data, err := json.Marshal(ingredients)
		if err != nil {
			return errorResult(ReasonInvalidArguments, err.Error())
		}
		updates["ingredients_json"] = string(data)
	}
	if raw, ok := args["instructions"]; ok {
		instructions, err := decodeList[models.Instruction](raw)
		if err != nil {
			return errorResult(ReasonInvalidArguments, fmt.Sprintf("invalid instructions: %v", err))
		}
		data, err := json.Marshal(instructions)
		if err != nil {
			return errorResult(ReasonInvalidArguments, err.Error())
		}
		updates["instructions_json"] = string(data)
	}

	if len(updates) == 0 {
		return errorResult(ReasonInvalidArguments, fmt.Sprintf("no fields to update for recipe %q", slug))
	}

	query := d.db.Model(&models.Recipe{}).Where("slug = ?", slug).Updates(updates)
	if query.Error != nil {
		return errorResult(ReasonStoreFailure, query.Error.Error())
	}
	if query.RowsAffected == 0 {
		return errorResult(ReasonStoreFailure, fmt.Sprintf("no recipe found with slug %q", slug))
	}

	return successResult(
		fmt.Sprintf("Recipe %q updated.", slug),
		"/recipes/"+slug,
		nil,
	)
}

func (d *Dispatcher) updateProduct(args map[string]interface{}) ActionResult {
	slug := stringArg(args, "slug")

	updates := map[string]interface{}{}
	if _, ok := args["name"]; ok {
		updates["name"] = stringArg(args, "name")
	}
	if _, ok := args["description"]; ok {
		updates["description"] = stringArg(args, "description")
	}
	if _, ok := args["category"]; ok {
		updates["category"] = stringArg(args, "category")
	}
	if _, ok := args["price"]; ok {
		updates["price_cents"] = intArg(args, "price")
	}
	if _, ok := args["stock"]; ok {
		updates["stock"] = intArg(args, "stock")
	}
	if _, ok := args["imageUrl"]; ok {
		updates["image_url"] = stringArg(args, "imageUrl")
	}
	if v, ok := args["available"].(bool); ok {
		updates["available"] = v
	}

	if len(updates) == 0 {
		return errorResult(ReasonInvalidArguments, fmt.Sprintf("no fields to update for product %q", slug))
	}

	query := d.db.Model(&models.Product{}).Where("slug = ?", slug).Updates(updates)
	if query.Error != nil {
		return errorResult(ReasonStoreFailure, query.Error.Error())
	}
	if query.RowsAffected == 0 {
		return errorResult(ReasonStoreFailure, fmt.Sprintf("no product found with slug %q", slug))
	}

	return successResult(
		fmt.Sprintf("Product %q updated.", slug),
		"/shop/"+slug,
		nil,
	)
}

func (d *Dispatcher) deleteRecipe(args map[string]interface{}) ActionResult {
	slug := stringArg(args, "slug")

	query := d.db.Where("slug = ?", slug).Delete(&models.Recipe{})
	if query.Error != nil {
		return errorResult(ReasonStoreFailure, query.Error.Error())
	}
	if query.RowsAffected == 0 {
		return errorResult(ReasonStoreFailure, fmt.Sprintf("no recipe found with slug %q", slug))
	}

	return successResult(fmt.Sprintf("Recipe %q deleted.", slug), "", nil)
}

func (d *Dispatcher) deleteProduct(args map[string]interface{}) ActionResult {
	slug := stringArg(args, "slug")

	query := d.db.Where("slug = ?", slug).Delete(&models.Product{})
	if query.Error != nil {
		return errorResult(ReasonStoreFailure, query.Error.Error())
	}
	if query.RowsAffected == 0 {
		return errorResult(ReasonStoreFailure, fmt.Sprintf("no product found with slug %q", slug))
	}

	return successResult(fmt.Sprintf("Product %q deleted.", slug), "", nil)
}

func (d *Dispatcher) updateInventory(args map[string]interface{}) ActionResult {
	slug := stringArg(args, "slug")
	quantity := intArg(args, "quantity")
	if quantity < 0 {
		return errorResult(ReasonInvalidArguments, "stock quantity cannot be negative")
	}

	query := d.db.Model(&models.Product{}).Where("slug = ?", slug).
		Updates(map[string]interface{}{"stock": quantity})
	if query.Error != nil {
		return errorResult(ReasonStoreFailure, query.Error.Error())
	}
	if query.RowsAffected == 0 {
		return errorResult(ReasonStoreFailure, fmt.Sprintf("no product found with slug %q", slug))
	}

	return successResult(fmt.Sprintf("Stock for %q set to %d.", slug, quantity), "", nil)
}

func (d *Dispatcher) approveUser(args map[string]interface{}) ActionResult {
	email := stringArg(args, "email")
	role := stringArg(args, "role")
	if role == "" {
		role = string(auth.RoleEmployee)
	}
	if !auth.Role(role).Valid() {
		return errorResult(ReasonInvalidArguments, fmt.Sprintf("unknown role %q", role))
	}

	query := d.db.Model(&models.User{}).Where("email = ?", email).
		Updates(map[string]interface{}{"role": role, "approved": true})
	if query.Error != nil {
		return errorResult(ReasonStoreFailure, query.Error.Error())
	}
	if query.RowsAffected == 0 {
		return errorResult(ReasonStoreFailure, fmt.Sprintf("no user found with email %q", email))
	}

	return successResult(fmt.Sprintf("User %s approved with role %s.", email, role), "", nil)
}

// Argument helpers: assistant arguments arrive as decoded JSON, so numbers
// are float64 and lists are []interface{}.

func stringArg(args map[string]interface{}, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

func intArg(args map[string]interface{}, key string) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

func stringSliceArg(args map[string]interface{}, key string) models.StringSlice {
	raw, ok := args[key].([]interface{})
	if !ok {
		return nil
	}
	out := make(models.StringSlice, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// decodeList re-marshals a decoded JSON list into a typed slice
func decodeList[T any](raw interface{}) ([]T, error) {
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
