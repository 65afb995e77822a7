// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pdiddy/catalog-engine/internal/httputil"
	"github.com/pdiddy/catalog-engine/pkg/types"
)

const classifySystemPrompt = "You are an expert academic librarian specializing in subject classification."

const classifyPromptTmpl = `Classify the following academic paper into ONE primary subject category and up to 2 secondary categories.

Available categories: %s

Paper information:
%s

Respond in JSON format:
{
    "primary_subject": "category name",
    "secondary_subjects": ["category1", "category2"],
    "confidence": "high/medium/low",
    "reasoning": "brief explanation"
}`

const defaultBaseURL = "https://api.openai.com/v1"

// classifyContentChars bounds how much body text is sent to the model.
const classifyContentChars = 1000

// OpenAIBackend classifies papers via an OpenAI-compatible
// chat-completions endpoint.
type OpenAIBackend struct {
	APIKey     string
	Model      string
	BaseURL    string
	Categories []string
	Client     *http.Client
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// aiResult is the JSON shape the prompt asks the model for.
type aiResult struct {
	PrimarySubject    string   `json:"primary_subject"`
	SecondarySubjects []string `json:"secondary_subjects"`
	Confidence        string   `json:"confidence"`
	Reasoning         string   `json:"reasoning"`
}

// Classify submits the paper's title, authors, and content excerpt with
// the category list and parses the model's JSON assignment.
func (b *OpenAIBackend) Classify(ctx context.Context, title, content, authors string) (types.Classification, error) {
	categories := b.Categories
	if len(categories) == 0 {
		categories = types.DefaultCategories
	}

	var info strings.Builder
	fmt.Fprintf(&info, "Title: %s\n", title)
	if authors != "" {
		fmt.Fprintf(&info, "Authors: %s\n", authors)
	}
	if content != "" {
		fmt.Fprintf(&info, "Abstract/Content: %s\n", firstRunes(content, classifyContentChars))
	}

	prompt := fmt.Sprintf(classifyPromptTmpl, strings.Join(categories, ", "), info.String())

	reqBody := chatRequest{
		Model: b.Model,
		Messages: []chatMessage{
			{Role: "system", Content: classifySystemPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   300,
		Temperature: 0.3,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return types.Classification{}, fmt.Errorf("marshaling request: %w", err)
	}

	url := strings.TrimRight(b.BaseURL, "/")
	if url == "" {
		url = defaultBaseURL
	}
	url += "/chat/completions"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return types.Classification{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+b.APIKey)

	client := b.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return types.Classification{}, fmt.Errorf("calling classification API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return types.Classification{}, fmt.Errorf("classification API returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var cResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cResp); err != nil {
		return types.Classification{}, fmt.Errorf("decoding classification response: %w", err)
	}
	if len(cResp.Choices) == 0 {
		return types.Classification{}, fmt.Errorf("classification API returned no choices")
	}

	var result aiResult
	raw := stripCodeFence(cResp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return types.Classification{}, fmt.Errorf("parsing classification JSON: %w", err)
	}

	cls := types.Classification{
		PrimarySubject:    result.PrimarySubject,
		SecondarySubjects: result.SecondarySubjects,
		Confidence:        result.Confidence,
		Reasoning:         result.Reasoning,
		Method:            types.MethodAI,
	}
	if cls.PrimarySubject == "" {
		cls.PrimarySubject = "Other"
	}
	if cls.SecondarySubjects == nil {
		cls.SecondarySubjects = []string{}
	}
	if cls.Confidence == "" {
		cls.Confidence = "medium"
	}
	return cls, nil
}

// stripCodeFence unwraps a ```json ... ``` block around the model's answer.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	if i := strings.Index(s, "```"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
