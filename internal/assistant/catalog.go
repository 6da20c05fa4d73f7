package assistant

import (
	"fmt"

	"mise/internal/auth"
	"mise/internal/providers"
)

// ParameterSchema is a recursive JSON-Schema-shaped type descriptor. It is
// handed to the model so it knows each function's contract, and used at the
// boundary to reject arguments missing required fields.
type ParameterSchema struct {
	Type        string                     `json:"type"`
	Description string                     `json:"description,omitempty"`
	Properties  map[string]ParameterSchema `json:"properties,omitempty"`
	Items       *ParameterSchema           `json:"items,omitempty"`
	Enum        []string                   `json:"enum,omitempty"`
	Required    []string                   `json:"required,omitempty"`
}

// FunctionSchema describes one callable action: its contract for the model
// and the minimum role required to execute it. Every schema declares MinRole
// and the dispatcher enforces it uniformly.
type FunctionSchema struct {
	Name        string
	Description string
	Parameters  ParameterSchema
	MinRole     auth.Role
}

// Action names form a closed set: one schema and one handler per name.
const (
	ActionCreateRecipe    = "create_recipe"
	ActionCreateProduct   = "create_product"
	ActionUpdateRecipe    = "update_recipe"
	ActionUpdateProduct   = "update_product"
	ActionDeleteRecipe    = "delete_recipe"
	ActionDeleteProduct   = "delete_product"
	ActionUpdateInventory = "update_inventory"
	ActionApproveUser     = "approve_user"
)

var ingredientSchema = ParameterSchema{
	Type: "object",
	Properties: map[string]ParameterSchema{
		"name":   {Type: "string"},
		"amount": {Type: "string"},
		"unit":   {Type: "string"},
	},
	Required: []string{"name", "amount"},
}

var instructionSchema = ParameterSchema{
	Type: "object",
	Properties: map[string]ParameterSchema{
		"step":        {Type: "number"},
		"instruction": {Type: "string"},
	},
	Required: []string{"step", "instruction"},
}

var recipeProperties = map[string]ParameterSchema{
	"slug":         {Type: "string", Description: "URL slug, lowercase with hyphens, e.g. shoyu-blast"},
	"title":        {Type: "string"},
	"description":  {Type: "string"},
	"category":     {Type: "string"},
	"difficulty":   {Type: "string", Enum: []string{"easy", "medium", "hard"}},
	"servings":     {Type: "number"},
	"prepTime":     {Type: "number", Description: "Preparation time in minutes"},
	"cookTime":     {Type: "number", Description: "Cooking time in minutes"},
	"ingredients":  {Type: "array", Items: &ingredientSchema},
	"instructions": {Type: "array", Items: &instructionSchema},
	"tags":         {Type: "array", Items: &ParameterSchema{Type: "string"}},
}

var productProperties = map[string]ParameterSchema{
	"slug":        {Type: "string", Description: "URL slug, lowercase with hyphens"},
	"name":        {Type: "string"},
	"description": {Type: "string"},
	"category":    {Type: "string"},
	"price":       {Type: "number", Description: "Price in cents"},
	"stock":       {Type: "number"},
	"imageUrl":    {Type: "string"},
	"available":   {Type: "boolean"},
}

// catalog is the single source of truth: it is what the model oracle sees on
// every request, so an action absent here is unreachable by construction.
var catalog = []FunctionSchema{
	{
		Name:        ActionCreateRecipe,
		Description: "Create a new recipe on the storefront",
		MinRole:     auth.RoleEmployee,
		Parameters: ParameterSchema{
			Type:       "object",
			Properties: recipeProperties,
			Required:   []string{"slug", "title"},
		},
	},
	{
		Name:        ActionCreateProduct,
		Description: "Create a new product in the shop",
		MinRole:     auth.RoleEmployee,
		Parameters: ParameterSchema{
			Type:       "object",
			Properties: productProperties,
			Required:   []string{"slug", "name"},
		},
	},
	{
		Name:        ActionUpdateRecipe,
		Description: "Update an existing recipe; only the supplied fields change",
		MinRole:     auth.RoleEmployee,
		Parameters: ParameterSchema{
			Type:       "object",
			Properties: recipeProperties,
			Required:   []string{"slug"},
		},
	},
	{
		Name:        ActionUpdateProduct,
		Description: "Update an existing product; only the supplied fields change",
		MinRole:     auth.RoleEmployee,
		Parameters: ParameterSchema{
			Type:       "object",
			Properties: productProperties,
			Required:   []string{"slug"},
		},
	},
	{
		Name:        ActionDeleteRecipe,
		Description: "Delete a recipe by slug",
		MinRole:     auth.RoleEmployee,
		Parameters: ParameterSchema{
			Type: "object",
			Properties: map[string]ParameterSchema{
				"slug": {Type: "string"},
			},
			Required: []string{"slug"},
		},
	},
	{
		Name:        ActionDeleteProduct,
		Description: "Delete a product by slug",
		MinRole:     auth.RoleEmployee,
		Parameters: ParameterSchema{
			Type: "object",
			Properties: map[string]ParameterSchema{
				"slug": {Type: "string"},
			},
			Required: []string{"slug"},
		},
	},
	{
		Name:        ActionUpdateInventory,
		Description: "Set a product's stock quantity (full replace, not an increment)",
		MinRole:     auth.RoleEmployee,
		Parameters: ParameterSchema{
			Type: "object",
			Properties: map[string]ParameterSchema{
				"slug":     {Type: "string"},
				"quantity": {Type: "number"},
			},
			Required: []string{"slug", "quantity"},
		},
	},
	{
		Name:        ActionApproveUser,
		Description: "Approve a user account and set its role",
		MinRole:     auth.RoleAdmin,
		Parameters: ParameterSchema{
			Type: "object",
			Properties: map[string]ParameterSchema{
				"email": {Type: "string"},
				"role":  {Type: "string", Enum: []string{"customer", "employee", "admin"}},
			},
			Required: []string{"email"},
		},
	},
}

// Catalog returns the full set of action schemas
func Catalog() []FunctionSchema {
	return catalog
}

// Lookup resolves an action name against the catalog
func Lookup(name string) (FunctionSchema, bool) {
	for _, schema := range catalog {
		if schema.Name == name {
			return schema, true
		}
	}
	return FunctionSchema{}, false
}

// ToolDefinitions converts the catalog into the shape providers send to the model
func ToolDefinitions() []providers.ToolDefinition {
	defs := make([]providers.ToolDefinition, len(catalog))
	for i, schema := range catalog {
		defs[i] = providers.ToolDefinition{
			Name:        schema.Name,
			Description: schema.Description,
			Parameters:  schema.Parameters,
		}
	}
	return defs
}

// ValidateArguments rejects arguments missing any required top-level field
// for the named function. An empty string counts as missing: every required
// string here is an identifier (slug, email, title) and an empty one could
// only produce an unusable row. Deeper shape problems surface as handler
// errors.
func ValidateArguments(schema FunctionSchema, args map[string]interface{}) error {
	for _, field := range schema.Parameters.Required {
		value, ok := args[field]
		if !ok || value == nil {
			return fmt.Errorf("missing required field %q for %s", field, schema.Name)
		}
		if s, isString := value.(string); isString && s == "" {
			return fmt.Errorf("missing required field %q for %s", field, schema.Name)
		}
	}
	return nil
}
