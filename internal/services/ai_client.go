package services

import (
  "bytes"
  "context"
  "encoding/json"
  "fmt"
  "io"
  "net/http"
  "time"

  "github.com/yungbote/conceptbridge-backend/internal/logger"
  "github.com/yungbote/conceptbridge-backend/internal/utils"
)

// AIClient is the one outbound dependency of the analogy pipeline. A single
// failed call is final: no retry loop here, the caller degrades to the
// offline fallback instead.
type AIClient interface {
  Chat(ctx context.Context, messages []AIMessage, opts *AIOptions) (*AICompletion, error)
  Model() string
}

type AIMessage struct {
  Role    string `json:"role"`
  Content string `json:"content"`
}

type AIOptions struct {
  Temperature float64
  MaxTokens   int
}

type AICompletion struct {
  Content string
}

type aiClient struct {
  httpClient *http.Client
  log        *logger.Logger
  apiKey     string
  baseURL    string
  chatModel  string
}

func NewAIClient(log *logger.Logger) (AIClient, error) {
  serviceLog := log.With("service", "AIClient")
  apiKey := utils.GetEnv("OPENAI_API_KEY", "", log)
  if apiKey == "" {
    return nil, fmt.Errorf("OPENAI_API_KEY is not set")
  }
  baseURL := utils.GetEnv("OPENAI_BASE_URL", "https://api.openai.com/v1", log)
  chatModel := utils.GetEnv("OPENAI_CHAT_MODEL", "gpt-4", log)
  timeoutSec := utils.GetEnvAsInt("OPENAI_TIMEOUT_SECONDS", 60, log)
  return &aiClient{
    httpClient: &http.Client{
      Timeout: time.Duration(timeoutSec) * time.Second,
    },
    log:       serviceLog,
    apiKey:    apiKey,
    baseURL:   baseURL,
    chatModel: chatModel,
  }, nil
}

type chatCompletionRequest struct {
  Model       string      `json:"model"`
  Messages    []AIMessage `json:"messages"`
  Temperature float64     `json:"temperature,omitempty"`
  MaxTokens   int         `json:"max_tokens,omitempty"`
}

type chatCompletionResponse struct {
  Choices []struct {
    Message struct {
      Role    string `json:"role"`
      Content string `json:"content"`
    } `json:"message"`
    FinishReason string `json:"finish_reason"`
  } `json:"choices"`
}

func (c *aiClient) Model() string {
  return c.chatModel
}

func (c *aiClient) Chat(ctx context.Context, messages []AIMessage, opts *AIOptions) (*AICompletion, error) {
  reqBody := chatCompletionRequest{
    Model:    c.chatModel,
    Messages: messages,
  }
  if opts != nil {
    reqBody.Temperature = opts.Temperature
    reqBody.MaxTokens = opts.MaxTokens
  }

  var buf bytes.Buffer
  if err := json.NewEncoder(&buf).Encode(reqBody); err != nil {
    return nil, err
  }

  req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", &buf)
  if err != nil {
    return nil, err
  }
  req.Header.Set("Authorization", "Bearer "+c.apiKey)
  req.Header.Set("Content-Type", "application/json")

  resp, err := c.httpClient.Do(req)
  if err != nil {
    return nil, err
  }
  raw, readErr := io.ReadAll(resp.Body)
  _ = resp.Body.Close()
  if readErr != nil {
    return nil, readErr
  }
  if resp.StatusCode < 200 || resp.StatusCode >= 300 {
    return nil, fmt.Errorf("openai http %d: %s", resp.StatusCode, string(raw))
  }

  var parsed chatCompletionResponse
  if err := json.Unmarshal(raw, &parsed); err != nil {
    return nil, fmt.Errorf("openai decode error: %w", err)
  }
  if len(parsed.Choices) == 0 {
    return nil, fmt.Errorf("openai returned no choices")
  }
  return &AICompletion{Content: parsed.Choices[0].Message.Content}, nil
}
