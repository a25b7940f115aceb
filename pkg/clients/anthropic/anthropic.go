package anthropic

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	defaultBaseURL = "https://api.anthropic.com"
	apiVersion     = "2023-06-01"
	model          = "claude-3-haiku-20240307"
	maxTokens      = 128
)

// NoCommand is what the model answers when the text is not a bookkeeping instruction.
const NoCommand = "NONE"

// ErrNoCommand is returned when the text could not be mapped onto a command.
var ErrNoCommand = errors.New("text does not describe a command")

// Client translates free-form chat text into the pipe-delimited command syntax.
type Client interface {
	TranslateToCommand(ctx context.Context, input string) (string, error)
}

type anthropicClient struct {
	httpClient *resty.Client
}

// NewClient creates a configured Anthropic client. An empty baseURL targets the public API.
func NewClient(apiKey, baseURL string) Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	client := resty.New().
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetHeader("x-api-key", apiKey).
		SetHeader("anthropic-version", apiVersion).
		SetHeader("content-type", "application/json").
		SetTimeout(15 * time.Second)

	return &anthropicClient{httpClient: client}
}

type messageRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system"`
	Messages  []Message `json:"messages"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messageResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

const systemPrompt = `You convert shop owners' chat messages into bookkeeping commands.
Reply with exactly one line in one of these forms and nothing else:
sell | item | quantity | price
buy | item | quantity | price
expense | title | amount
stock | item
stock
profit
Quantities, prices and amounts are plain numbers without currency symbols or thousands separators.
Keep the item name as the user wrote it.
If the message is not one of these operations, reply with NONE.

Examples:
"j'ai vendu 4 tshirts a 80" -> sell | tshirts | 4 | 80
"bought 10 pens for 2 each" -> buy | pens | 10 | 2
"paid 200 rent" -> expense | rent | 200
"how many caps do I have?" -> stock | caps
"combien j'ai gagne" -> profit`

// TranslateToCommand asks the model for the command equivalent of input.
func (c *anthropicClient) TranslateToCommand(ctx context.Context, input string) (string, error) {
	reqBody := messageRequest{
		Model:     model,
		MaxTokens: maxTokens,
		System:    systemPrompt,
		Messages:  []Message{{Role: "user", Content: input}},
	}

	var respBody messageResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(reqBody).
		SetResult(&respBody).
		Post("/v1/messages")
	if err != nil {
		return "", fmt.Errorf("anthropic api call: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("anthropic api error: status=%d body=%s", resp.StatusCode(), resp.String())
	}
	if len(respBody.Content) == 0 {
		return "", fmt.Errorf("empty response from ai")
	}

	return cleanCommand(respBody.Content[0].Text)
}

// cleanCommand keeps the first non-empty line of the model output, without code fences
// or quotes.
func cleanCommand(text string) (string, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	for _, line := range strings.Split(text, "\n") {
		line = strings.Trim(strings.TrimSpace(line), "`\"'")
		if line == "" || line == "text" {
			continue
		}
		if strings.EqualFold(line, NoCommand) {
			return "", ErrNoCommand
		}
		return line, nil
	}
	return "", ErrNoCommand
}
