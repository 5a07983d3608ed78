// internal/generative/client.go
package generative

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"cinechat/internal/common/httpclient"
	"cinechat/internal/common/logger"
)

var (
	ErrGenerationTimeout = errors.New("GENERATION_TIMEOUT")
	ErrGenerationFailed  = errors.New("GENERATION_FAILED")
)

// Client calls a hosted text-generation model. The wire shape follows the
// Hugging Face inference API: a JSON body with the prompt and sampling
// parameters, answered by an array whose first element carries the
// generated text.
type Client struct {
	config *Config
	client *httpclient.Client
	logger logger.Logger
}

func NewClient(config *Config, log logger.Logger) *Client {
	return &Client{
		config: config,
		client: httpclient.NewClient(config.Timeout),
		logger: log.With(map[string]interface{}{
			"component": "generative",
		}),
	}
}

// Generate requests a short sampled continuation of the prompt and returns
// the continuation with the prompt echo stripped.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	requestBody := map[string]interface{}{
		"inputs": prompt,
		"parameters": map[string]interface{}{
			"max_new_tokens": c.config.MaxTokens,
			"temperature":    c.config.Temperature,
			"do_sample":      true,
		},
	}

	body, _ := json.Marshal(requestBody)
	endpoint := c.config.BaseURL + "/models/" + c.config.Model
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", ErrGenerationTimeout
		}
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrGenerationFailed, resp.StatusCode)
	}

	var apiResponse []struct {
		GeneratedText string `json:"generated_text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return "", fmt.Errorf("%w: decode error: %v", ErrGenerationFailed, err)
	}

	if len(apiResponse) == 0 {
		return "", fmt.Errorf("%w: empty response", ErrGenerationFailed)
	}

	// Models echo the prompt back ahead of the continuation.
	generated := strings.TrimSpace(strings.Replace(apiResponse[0].GeneratedText, prompt, "", 1))

	c.logger.Debug("generation completed", map[string]interface{}{
		"length": len(generated),
	})

	return generated, nil
}
