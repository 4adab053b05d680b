// Package enrich generates short natural-language documentation for
// individual members via an OpenAI-compatible chat endpoint. It is a
// pure boundary around the resolved record set: no merge logic, errors
// returned to the caller.
package enrich

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/sync/errgroup"
)

const (
	defaultTemperature = 0.2
	defaultMaxTokens   = 256
	defaultConcurrency = 4
)

// Options configures the member-doc writer. BaseURL may point at any
// OpenAI-compatible server (a local vLLM instance works fine; such
// servers still require a dummy API key).
type Options struct {
	BaseURL string
	APIKey  string
	Model   string
}

// MemberDocWriter produces short developer-facing descriptions for
// class members.
type MemberDocWriter struct {
	client *openai.Client
	model  string
}

// NewMemberDocWriter creates a writer from the given options.
func NewMemberDocWriter(opts Options) *MemberDocWriter {
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}

	return &MemberDocWriter{
		client: openai.NewClientWithConfig(cfg),
		model:  opts.Model,
	}
}

// Describe asks the model for a short description of one member of the
// named class, given the flattened text of the class body.
func (w *MemberDocWriter) Describe(ctx context.Context, className, memberName, classText string) (string, error) {
	slog.Debug("generating member doc", "class", className, "member", memberName)

	req := openai.ChatCompletionRequest{
		Model:       w.model,
		Temperature: defaultTemperature,
		MaxTokens:   defaultMaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are an expert, concise API documentation writer.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: BuildPrompt(className, memberName, classText),
			},
		},
	}

	resp, err := w.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("member doc request for %s.%s: %w", className, memberName, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("member doc request for %s.%s: no choices returned", className, memberName)
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// DescribeAll generates a description per member with bounded fan-out.
// The first failing request cancels the rest.
func (w *MemberDocWriter) DescribeAll(ctx context.Context, className, classText string, memberNames []string) (map[string]string, error) {
	out := make(map[string]string, len(memberNames))

	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(defaultConcurrency)

	for _, name := range memberNames {
		g.Go(func() error {
			text, err := w.Describe(ctx, className, name, classText)
			if err != nil {
				return err
			}

			mu.Lock()
			out[name] = text
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// BuildPrompt renders the user prompt for one member.
func BuildPrompt(className, memberName, classText string) string {
	return strings.TrimSpace(fmt.Sprintf(`
I will give you the full description of a class: %s.
Then I will give you the name of one member of that class.

Write a short, developer-friendly documentation snippet (max 3 sentences)
for that member, focusing on what it does and how it is used.

Class description:
---
%s
---

Member name: %s

Return ONLY the description text, no bullet points, no JSON.`,
		className, classText, memberName))
}

// YAMLToText flattens a nested record body into an indented,
// human-readable text blob suitable for prompting. Map keys render in
// sorted order, nil values are dropped.
func YAMLToText(data any) string {
	var lines []string

	flatten(data, 0, &lines)

	return strings.Join(lines, "\n")
}

func flatten(node any, indent int, lines *[]string) {
	pad := strings.Repeat("  ", indent)

	switch n := node.(type) {
	case map[string]any:
		keys := make([]string, 0, len(n))
		for key := range n {
			keys = append(keys, key)
		}

		sort.Strings(keys)

		for _, key := range keys {
			val := n[key]
			if val == nil {
				continue
			}

			switch val.(type) {
			case map[string]any, []any:
				*lines = append(*lines, pad+key+":")
				flatten(val, indent+1, lines)
			default:
				*lines = append(*lines, fmt.Sprintf("%s%s: %v", pad, key, val))
			}
		}

	case []any:
		for _, item := range n {
			flatten(item, indent, lines)
		}

	default:
		*lines = append(*lines, fmt.Sprintf("%s%v", pad, n))
	}
}
