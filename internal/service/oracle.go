package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/solacehq/solace/internal/domain"
)

// Oracle is the inference backend the pipeline dispatches to. Implemented
// by OracleClient in production and by fakes in tests.
type Oracle interface {
	Ask(ctx context.Context, message string, mode domain.ResponseMode) (*domain.Answer, error)
}

type OracleClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewOracleClient(baseURL, apiKey string, timeout time.Duration) *OracleClient {
	return &OracleClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type oracleRequest struct {
	Message      string `json:"message"`
	ResponseType string `json:"response_type"`
}

type oracleResponse struct {
	Response struct {
		Answer          string          `json:"answer"`
		Sources         []domain.Source `json:"sources"`
		Type            string          `json:"type"`
		Confidence      float64         `json:"confidence"`
		GuardianAlerted *bool           `json:"guardian_alerted"`
		CrisisLevel     string          `json:"crisis_level"`
	} `json:"response"`
}

func (c *OracleClient) Ask(ctx context.Context, message string, mode domain.ResponseMode) (*domain.Answer, error) {
	payload, err := json.Marshal(oracleRequest{
		Message:      message,
		ResponseType: string(mode),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("oracle request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("rate limited by oracle (429)")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("oracle returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var result oracleResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	return &domain.Answer{
		Answer:          result.Response.Answer,
		Sources:         result.Response.Sources,
		Type:            result.Response.Type,
		Confidence:      result.Response.Confidence,
		GuardianAlerted: result.Response.GuardianAlerted,
		CrisisLevel:     result.Response.CrisisLevel,
	}, nil
}
