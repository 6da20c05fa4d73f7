package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPreviewCreateRecipe(t *testing.T) {
	preview := FormatPreview(Action{
		Name: ActionCreateRecipe,
		Arguments: map[string]interface{}{
			"slug":       "shoyu-blast",
			"title":      "Shoyu Blast",
			"difficulty": "easy",
			"servings":   2.0,
			"ingredients": []interface{}{
				map[string]interface{}{"name": "soy sauce", "amount": "2", "unit": "tbsp"},
			},
			"instructions": []interface{}{
				map[string]interface{}{"step": 1.0, "instruction": "mix"},
			},
		},
	})

	assert.Contains(t, preview, "Create Recipe: Shoyu Blast")
	assert.Contains(t, preview, "Difficulty: Easy")
	assert.Contains(t, preview, "Servings: 2")
	assert.Contains(t, preview, "2 tbsp soy sauce")
	assert.Contains(t, preview, "1. mix")
}

func TestFormatPreviewDeleteWarns(t *testing.T) {
	preview := FormatPreview(Action{
		Name:      ActionDeleteProduct,
		Arguments: map[string]interface{}{"slug": "chili-crisp"},
	})

	assert.Contains(t, preview, "Delete Product: chili-crisp")
	assert.Contains(t, preview, "permanently")
}

func TestFormatPreviewInventory(t *testing.T) {
	preview := FormatPreview(Action{
		Name:      ActionUpdateInventory,
		Arguments: map[string]interface{}{"slug": "sourdough-loaf", "quantity": 8.0},
	})

	assert.Contains(t, preview, "Set Inventory: sourdough-loaf")
	assert.Contains(t, preview, "New stock quantity: 8")
}

func TestFormatPreviewApproveUserDefaultsRole(t *testing.T) {
	preview := FormatPreview(Action{
		Name:      ActionApproveUser,
		Arguments: map[string]interface{}{"email": "cook@mise.local"},
	})

	assert.Contains(t, preview, "Approve User: cook@mise.local")
	assert.Contains(t, preview, "Role: employee")
}

func TestFormatPreviewUnknownActionFallsBack(t *testing.T) {
	// An unrecognized name must still show the operator something
	preview := FormatPreview(Action{
		Name:      "mystery_action",
		Arguments: map[string]interface{}{"slug": "whatever"},
	})

	assert.Contains(t, preview, "mystery_action")
	assert.Contains(t, preview, `"slug": "whatever"`)
}

func TestFormatPreviewPartialUpdate(t *testing.T) {
	preview := FormatPreview(Action{
		Name:      ActionUpdateRecipe,
		Arguments: map[string]interface{}{"slug": "simple-pasta", "servings": 6.0},
	})

	assert.Contains(t, preview, "Update Recipe: simple-pasta")
	assert.Contains(t, preview, "Servings: 6")
	assert.NotContains(t, preview, "Difficulty")
}
