package assistant

import (
	"context"
	"fmt"

	"mise/internal/auth"
	"mise/internal/monitoring"

	"github.com/jinzhu/gorm"
)

// Dispatcher routes confirmed actions to their handlers. Each dispatch is an
// independent, stateless request: catalog lookup, uniform role check, argument
// validation, then exactly one handler invocation.
type Dispatcher struct {
	db *gorm.DB
}

// NewDispatcher creates a dispatcher over the given database
func NewDispatcher(db *gorm.DB) *Dispatcher {
	return &Dispatcher{db: db}
}

// Dispatch executes one confirmed action for the given actor. Store errors
// pass through verbatim in the result message: the audience is staff, not
// end customers.
func (d *Dispatcher) Dispatch(ctx context.Context, action Action, actor auth.Actor) ActionResult {
	schema, ok := Lookup(action.Name)
	if !ok {
		monitoring.RecordExecution(action.Name, "unknown")
		return errorResult(ReasonUnknownAction, fmt.Sprintf("unknown action %q", action.Name))
	}

	if !actor.Role.AtLeast(schema.MinRole) {
		monitoring.RecordExecution(action.Name, "unauthorized")
		return errorResult(ReasonUnauthorized,
			fmt.Sprintf("%s requires the %s role; your role is %s", action.Name, schema.MinRole, actor.Role))
	}

	if err := ValidateArguments(schema, action.Arguments); err != nil {
		monitoring.RecordExecution(action.Name, "invalid")
		return errorResult(ReasonInvalidArguments, err.Error())
	}

	var result ActionResult
	switch action.Name {
	case ActionCreateRecipe:
		result = d.createRecipe(action.Arguments)
	case ActionCreateProduct:
		result = d.createProduct(action.Arguments)
	case ActionUpdateRecipe:
		result = d.updateRecipe(action.Arguments)
	case ActionUpdateProduct:
		result = d.updateProduct(action.Arguments)
	case ActionDeleteRecipe:
		result = d.deleteRecipe(action.Arguments)
	case ActionDeleteProduct:
		result = d.deleteProduct(action.Arguments)
	case ActionUpdateInventory:
		result = d.updateInventory(action.Arguments)
	case ActionApproveUser:
		result = d.approveUser(action.Arguments)
	}

	if result.Type == "success" {
		monitoring.RecordExecution(action.Name, "success")
	} else {
		monitoring.RecordExecution(action.Name, "error")
	}
	return result
}
