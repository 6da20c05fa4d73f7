package main

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"mise/internal/assistant"
	"mise/internal/providers"
)

// ApiClient handles API requests to the Mise API
type ApiClient struct {
	httpClient *http.Client
	BaseURL    string
	Token      string
}

// NewApiClient creates a new API client
func NewApiClient(baseURL, token string) *ApiClient {
	if baseURL == "" {
		baseURL = os.Getenv("MISE_API_URL")
	}
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	return &ApiClient{
		httpClient: &http.Client{
			Timeout: time.Second * 60,
		},
		BaseURL: baseURL,
		Token:   token,
	}
}

// Ping checks if the API server is available
func (c *ApiClient) Ping() bool {
	resp, err := c.httpClient.Get(c.BaseURL + "/health")
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// ProposeResponse is the server's reply to a propose request
type ProposeResponse struct {
	Type      string                 `json:"type"`
	ID        string                 `json:"id"`
	Function  string                 `json:"function"`
	Arguments map[string]interface{} `json:"arguments"`
	Message   string                 `json:"message"`
	Signature string                 `json:"signature"`
}

// Propose sends a chat message (plus queued images) to the assistant
func (c *ApiClient) Propose(message string, images []providers.Image) (*ProposeResponse, error) {
	body := map[string]interface{}{"message": message}
	if len(images) > 0 {
		body["images"] = images
	}

	data, err := c.post(body)
	if err != nil {
		return nil, err
	}

	var resp ProposeResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &resp, nil
}

// Execute sends a confirmed action back for execution. The action is the
// exact payload captured at proposal time.
func (c *ApiClient) Execute(action assistant.Action, signature string) (*assistant.ActionResult, error) {
	body := map[string]interface{}{"action": action}
	if signature != "" {
		body["signature"] = signature
	}

	data, err := c.post(body)
	if err != nil {
		return nil, err
	}

	var result assistant.ActionResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &result, nil
}

// post sends one request to the assistant endpoint and returns the body,
// surfacing the server's error message on non-200 statuses
func (c *ApiClient) post(body map[string]interface{}) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, c.BaseURL+"/api/ai/assistant", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.Token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		var serverErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &serverErr) == nil && serverErr.Error != "" {
			return nil, fmt.Errorf("%s", serverErr.Error)
		}
		return nil, fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	return data, nil
}

// loadImage reads a local file into a base64 data URL attachment
func loadImage(path string) (providers.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return providers.Image{}, err
	}

	mimeType := "image/png"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		mimeType = "image/jpeg"
	case ".gif":
		mimeType = "image/gif"
	case ".webp":
		mimeType = "image/webp"
	}

	return providers.Image{
		MimeType: mimeType,
		Data:     fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data)),
	}, nil
}
