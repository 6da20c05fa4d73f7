package assistant

// Action is a named, parameterized mutation request. The same shape serves
// both a proposal returned to the client and a confirmed action echoed back
// for execution: the trust boundary is the path, not the shape. A proposal
// only reaches the dispatcher through an explicit confirm request.
type Action struct {
	Name      string                 `json:"function"`
	Arguments map[string]interface{} `json:"arguments"`
}

// ErrorReason classifies why a dispatch produced an error result. It is not
// serialized; the HTTP layer uses it to pick a status code.
type ErrorReason string

const (
	ReasonNone             ErrorReason = ""
	ReasonUnknownAction    ErrorReason = "unknown_action"
	ReasonUnauthorized     ErrorReason = "unauthorized"
	ReasonInvalidArguments ErrorReason = "invalid_arguments"
	ReasonStoreFailure     ErrorReason = "store_failure"
)

// ActionResult is the outcome of one dispatched action
type ActionResult struct {
	Type    string                 `json:"type"` // "success" or "error"
	Message string                 `json:"message"`
	Link    string                 `json:"link,omitempty"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Reason  ErrorReason            `json:"-"`
}

func successResult(message, link string, data map[string]interface{}) ActionResult {
	return ActionResult{Type: "success", Message: message, Link: link, Data: data}
}

func errorResult(reason ErrorReason, message string) ActionResult {
	return ActionResult{Type: "error", Message: message, Reason: reason}
}
