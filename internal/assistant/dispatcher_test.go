package assistant

import (
	"context"
	"path/filepath"
	"testing"

	"mise/internal/auth"
	"mise/internal/database"
	"mise/internal/models"

	"github.com/jinzhu/gorm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open("sqlite3", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

var (
	employee = auth.Actor{Email: "cook@mise.local", Role: auth.RoleEmployee}
	admin    = auth.Actor{Email: "admin@mise.local", Role: auth.RoleAdmin}
)

func TestDispatchCreateRecipe(t *testing.T) {
	db := newTestDB(t)
	d := NewDispatcher(db)

	result := d.Dispatch(context.Background(), Action{
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
	}, employee)

	require.Equal(t, "success", result.Type, result.Message)
	assert.Equal(t, "/recipes/shoyu-blast", result.Link)

	var recipe models.Recipe
	require.NoError(t, db.Where("slug = ?", "shoyu-blast").First(&recipe).Error)
	assert.Equal(t, "Shoyu Blast", recipe.Title)
	assert.Equal(t, 2, recipe.Servings)

	ingredients, err := recipe.GetIngredients()
	require.NoError(t, err)
	require.Len(t, ingredients, 1)
	assert.Equal(t, "soy sauce", ingredients[0].Name)
}

func TestDispatchPartialUpdateLeavesOtherFieldsAlone(t *testing.T) {
	db := newTestDB(t)
	d := NewDispatcher(db)

	recipe := models.Recipe{
		Slug:       "simple-pasta",
		Title:      "Simple Pasta",
		Difficulty: "easy",
		Servings:   4,
		Category:   "main",
	}
	require.NoError(t, db.Create(&recipe).Error)

	result := d.Dispatch(context.Background(), Action{
		Name:      ActionUpdateRecipe,
		Arguments: map[string]interface{}{"slug": "simple-pasta", "servings": 6.0},
	}, employee)
	require.Equal(t, "success", result.Type, result.Message)

	var updated models.Recipe
	require.NoError(t, db.Where("slug = ?", "simple-pasta").First(&updated).Error)
	assert.Equal(t, 6, updated.Servings)
	assert.Equal(t, "Simple Pasta", updated.Title)
	assert.Equal(t, "easy", updated.Difficulty)
	assert.Equal(t, "main", updated.Category)
}

func TestDispatchUpdateMissingSlugFails(t *testing.T) {
	db := newTestDB(t)
	d := NewDispatcher(db)

	result := d.Dispatch(context.Background(), Action{
		Name:      ActionUpdateRecipe,
		Arguments: map[string]interface{}{"slug": "ghost", "servings": 2.0},
	}, employee)

	assert.Equal(t, "error", result.Type)
	assert.Equal(t, ReasonStoreFailure, result.Reason)
	assert.Contains(t, result.Message, "ghost")
}

func TestDispatchDeleteMissingSlugIsNotSilent(t *testing.T) {
	db := newTestDB(t)
	d := NewDispatcher(db)

	result := d.Dispatch(context.Background(), Action{
		Name:      ActionDeleteProduct,
		Arguments: map[string]interface{}{"slug": "nonexistent-slug"},
	}, employee)

	assert.Equal(t, "error", result.Type)
	assert.Equal(t, ReasonStoreFailure, result.Reason)
}

func TestDispatchDeleteRecipe(t *testing.T) {
	db := newTestDB(t)
	d := NewDispatcher(db)

	require.NoError(t, db.Create(&models.Recipe{Slug: "old-special", Title: "Old Special"}).Error)

	result := d.Dispatch(context.Background(), Action{
		Name:      ActionDeleteRecipe,
		Arguments: map[string]interface{}{"slug": "old-special"},
	}, employee)
	require.Equal(t, "success", result.Type, result.Message)

	var count int64
	db.Model(&models.Recipe{}).Where("slug = ?", "old-special").Count(&count)
	assert.Zero(t, count)
}

func TestDispatchUpdateInventoryReplacesStock(t *testing.T) {
	db := newTestDB(t)
	d := NewDispatcher(db)

	require.NoError(t, db.Create(&models.Product{Slug: "chili-crisp", Name: "Chili Crisp", Stock: 24}).Error)

	result := d.Dispatch(context.Background(), Action{
		Name:      ActionUpdateInventory,
		Arguments: map[string]interface{}{"slug": "chili-crisp", "quantity": 5.0},
	}, employee)
	require.Equal(t, "success", result.Type, result.Message)

	var product models.Product
	require.NoError(t, db.Where("slug = ?", "chili-crisp").First(&product).Error)
	assert.Equal(t, 5, product.Stock)
}

func TestDispatchApproveUserRequiresAdmin(t *testing.T) {
	db := newTestDB(t)
	d := NewDispatcher(db)

	require.NoError(t, db.Create(&models.User{Email: "new@mise.local", Role: "customer"}).Error)

	action := Action{
		Name:      ActionApproveUser,
		Arguments: map[string]interface{}{"email": "new@mise.local", "role": "employee"},
	}

	// An employee cannot approve accounts, and nothing is written
	result := d.Dispatch(context.Background(), action, employee)
	assert.Equal(t, "error", result.Type)
	assert.Equal(t, ReasonUnauthorized, result.Reason)

	var user models.User
	require.NoError(t, db.Where("email = ?", "new@mise.local").First(&user).Error)
	assert.False(t, user.Approved)
	assert.Equal(t, "customer", user.Role)

	// The same call from an admin succeeds
	result = d.Dispatch(context.Background(), action, admin)
	require.Equal(t, "success", result.Type, result.Message)

	require.NoError(t, db.Where("email = ?", "new@mise.local").First(&user).Error)
	assert.True(t, user.Approved)
	assert.Equal(t, "employee", user.Role)
}

func TestDispatchUnknownActionInvokesNoHandler(t *testing.T) {
	db := newTestDB(t)
	d := NewDispatcher(db)

	result := d.Dispatch(context.Background(), Action{
		Name:      "format_disk",
		Arguments: map[string]interface{}{},
	}, admin)

	assert.Equal(t, "error", result.Type)
	assert.Equal(t, ReasonUnknownAction, result.Reason)
}

func TestDispatchRejectsMissingRequiredArguments(t *testing.T) {
	db := newTestDB(t)
	d := NewDispatcher(db)

	result := d.Dispatch(context.Background(), Action{
		Name:      ActionCreateRecipe,
		Arguments: map[string]interface{}{"title": "No Slug"},
	}, employee)

	assert.Equal(t, "error", result.Type)
	assert.Equal(t, ReasonInvalidArguments, result.Reason)

	var count int64
	db.Model(&models.Recipe{}).Count(&count)
	assert.Zero(t, count)
}

func TestDispatchDuplicateSlugSurfacesStoreError(t *testing.T) {
	db := newTestDB(t)
	d := NewDispatcher(db)

	args := map[string]interface{}{"slug": "dup", "name": "Dup"}
	first := d.Dispatch(context.Background(), Action{Name: ActionCreateProduct, Arguments: args}, employee)
	require.Equal(t, "success", first.Type, first.Message)

	second := d.Dispatch(context.Background(), Action{Name: ActionCreateProduct, Arguments: args}, employee)
	assert.Equal(t, "error", second.Type)
	assert.Equal(t, ReasonStoreFailure, second.Reason)
	assert.NotEmpty(t, second.Message)
}
