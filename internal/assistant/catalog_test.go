package assistant

import (
	"testing"

	"mise/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogIsClosedAndComplete(t *testing.T) {
	names := []string{
		ActionCreateRecipe, ActionCreateProduct,
		ActionUpdateRecipe, ActionUpdateProduct,
		ActionDeleteRecipe, ActionDeleteProduct,
		ActionUpdateInventory, ActionApproveUser,
	}

	assert.Len(t, Catalog(), len(names))
	for _, name := range names {
		schema, ok := Lookup(name)
		require.True(t, ok, "missing schema for %s", name)
		assert.NotEmpty(t, schema.Description)
		assert.True(t, schema.MinRole.Valid(), "schema %s has no minimum role", name)
	}

	_, ok := Lookup("drop_all_tables")
	assert.False(t, ok)
}

func TestCatalogRoleRequirements(t *testing.T) {
	for _, schema := range Catalog() {
		if schema.Name == ActionApproveUser {
			assert.Equal(t, auth.RoleAdmin, schema.MinRole)
		} else {
			assert.Equal(t, auth.RoleEmployee, schema.MinRole)
		}
	}
}

func TestValidateArguments(t *testing.T) {
	schema, ok := Lookup(ActionUpdateInventory)
	require.True(t, ok)

	err := ValidateArguments(schema, map[string]interface{}{"slug": "chili-crisp", "quantity": 5.0})
	assert.NoError(t, err)

	err = ValidateArguments(schema, map[string]interface{}{"slug": "chili-crisp"})
	assert.ErrorContains(t, err, "quantity")

	err = ValidateArguments(schema, map[string]interface{}{"slug": "", "quantity": 5.0})
	assert.ErrorContains(t, err, "slug")
}

func TestToolDefinitionsMirrorCatalog(t *testing.T) {
	defs := ToolDefinitions()
	require.Len(t, defs, len(Catalog()))
	for i, schema := range Catalog() {
		assert.Equal(t, schema.Name, defs[i].Name)
		assert.Equal(t, schema.Parameters, defs[i].Parameters)
	}
}
