package tools

import (
	"errors"
	"fmt"
	"strings"

	"octav_mcp/internal/app/formatter"
	"octav_mcp/internal/app/validation"
	"octav_mcp/internal/client"

	"github.com/tidwall/pretty"
)

// Content is one block of a tool result. Only text blocks are produced.
type Content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Result is what a tool call returns to the host.
type Result struct {
	Content []Content `json:"content"`
	IsError bool      `json:"isError,omitempty"`
}

// Text joins every text block with a blank line.
func (r Result) Text() string {
	parts := make([]string, 0, len(r.Content))
	for _, c := range r.Content {
		parts = append(parts, c.Text)
	}
	return strings.Join(parts, "\n\n")
}

// UnknownToolError is returned when a name is not registered.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("Unknown tool '%s'", e.Name)
}

func textResult(out formatter.Output) (Result, error) {
	encoded, err := json.Marshal(out.JSON)
	if err != nil {
		return Result{}, fmt.Errorf("failed to encode tool output: %w", err)
	}
	return Result{Content: []Content{
		{Type: "text", Text: out.Markdown},
		{Type: "text", Text: strings.TrimRight(string(pretty.Pretty(encoded)), "\n")},
	}}, nil
}

// ErrorResult wraps err as an isError result carrying ErrorText.
func ErrorResult(err error) Result {
	return Result{
		Content: []Content{{Type: "text", Text: ErrorText(err)}},
		IsError: true,
	}
}

// ErrorText renders err as the prose shown to the host.
func ErrorText(err error) string {
	var (
		unknownErr *UnknownToolError
		validErr   *validation.ValidationError
		creditsErr *client.InsufficientCreditsError
		rateErr    *client.RateLimitError
		authErr    *client.AuthenticationError
		apiErr     *client.APIError
		msg        string
	)
	switch {
	case errors.As(err, &unknownErr):
		return "Error: " + unknownErr.Error()
	case errors.As(err, &validErr):
		return "Validation Error: " + validErr.Error()
	case errors.As(err, &creditsErr):
		msg = "API Error: " + creditsErr.Message
		if creditsErr.CreditsNeeded != nil {
			msg += "\n\nCredits needed: " + client.FormatHint(*creditsErr.CreditsNeeded)
		}
		return msg + "\n\nPurchase more credits at: " + formatter.PurchaseURL
	case errors.As(err, &rateErr):
		msg = "API Error: " + rateErr.Message
		if rateErr.RetryAfter != nil {
			msg += fmt.Sprintf("\n\nRetry after %s seconds", client.FormatHint(*rateErr.RetryAfter))
		}
		return msg
	case errors.As(err, &authErr):
		return "API Error: " + authErr.Message
	case errors.As(err, &apiErr):
		return "API Error: " + apiErr.Message
	default:
		return "Error: " + err.Error()
	}
}

// outcome labels a call for metrics and logs.
func outcome(err error) string {
	var (
		unknownErr *UnknownToolError
		validErr   *validation.ValidationError
		creditsErr *client.InsufficientCreditsError
		rateErr    *client.RateLimitError
		authErr    *client.AuthenticationError
		apiErr     *client.APIError
	)
	switch {
	case err == nil:
		return "success"
	case errors.As(err, &unknownErr):
		return "unknown_tool"
	case errors.As(err, &validErr):
		return "validation_error"
	case errors.As(err, &authErr):
		return "auth_error"
	case errors.As(err, &creditsErr):
		return "insufficient_credits"
	case errors.As(err, &rateErr):
		return "rate_limited"
	case errors.As(err, &apiErr):
		if apiErr.IsNetwork() {
			return "network_error"
		}
		return "api_error"
	default:
		return "error"
	}
}
