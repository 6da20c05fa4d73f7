package api

import (
	"net/http"

	"mise/internal/assistant"
	"mise/internal/monitoring"
	"mise/internal/providers"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AssistantRequest is the body of POST /api/ai/assistant. The two operations
// share one endpoint and are distinguished by shape: a propose request
// carries a message, an execute request carries a confirmed action.
type AssistantRequest struct {
	Message string            `json:"message"`
	Images  []providers.Image `json:"images"`

	Action    *assistant.Action `json:"action"`
	Signature string            `json:"signature"`
}

// HandleAssistant routes a propose or execute request. Authentication has
// already happened in middleware; the actor's role comes from the session
// token, never from the body.
func (s *Server) HandleAssistant(c *gin.Context) {
	var req AssistantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Action != nil {
		s.executeAction(c, &req)
		return
	}

	s.proposeAction(c, &req)
}

// proposeAction resolves a message into text or one proposed action. It is
// read-only with respect to business data: nothing executes here.
func (s *Server) proposeAction(c *gin.Context, req *AssistantRequest) {
	if req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	resolution, err := s.Resolver.Resolve(c.Request.Context(), req.Message, req.Images)
	if err != nil {
		monitoring.RecordProposal("error")
		monitoring.RecordResolverFailure()
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if resolution.Proposed == nil {
		monitoring.RecordProposal("text")
		c.JSON(http.StatusOK, gin.H{
			"type":    "text",
			"message": resolution.Text,
		})
		return
	}

	monitoring.RecordProposal("function_call")
	response := gin.H{
		"type":      "function_call",
		"id":        uuid.NewString(),
		"function":  resolution.Proposed.Name,
		"arguments": resolution.Proposed.Arguments,
		"message":   assistant.FormatPreview(*resolution.Proposed),
	}
	if s.Signer != nil {
		response["signature"] = s.Signer.Sign(*resolution.Proposed)
	}
	c.JSON(http.StatusOK, response)
}

// executeAction dispatches a confirmed action. The model is bypassed
// entirely: the client echoes the exact proposal it captured.
func (s *Server) executeAction(c *gin.Context, req *AssistantRequest) {
	actor, ok := authActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no authenticated session"})
		return
	}

	if s.Signer != nil && !s.Signer.Verify(*req.Action, req.Signature) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "action signature is missing or invalid"})
		return
	}

	result := s.Dispatcher.Dispatch(c.Request.Context(), *req.Action, *actor)

	s.Hub.Broadcast(ActionEvent{
		Actor:    actor.Email,
		Function: req.Action.Name,
		Result:   result,
	})

	switch result.Reason {
	case assistant.ReasonNone:
		c.JSON(http.StatusOK, result)
	case assistant.ReasonUnauthorized:
		c.JSON(http.StatusForbidden, gin.H{"error": result.Message})
	case assistant.ReasonUnknownAction, assistant.ReasonInvalidArguments:
		c.JSON(http.StatusBadRequest, gin.H{"error": result.Message})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": result.Message})
	}
}
