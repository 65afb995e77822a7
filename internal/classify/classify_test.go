// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/catalog-engine/pkg/types"
)

type mockBackend struct {
	cls   types.Classification
	err   error
	calls int
}

func (m *mockBackend) Classify(ctx context.Context, title, content, authors string) (types.Classification, error) {
	m.calls++
	return m.cls, m.err
}

func TestKeywordClassify(t *testing.T) {
	tests := []struct {
		name           string
		title          string
		content        string
		wantPrimary    string
		wantConfidence string
	}{
		{
			name:           "chinese history paper",
			title:          "中國古代戰爭史",
			content:        "文明的歷史時期",
			wantPrimary:    "History",
			wantConfidence: "high",
		},
		{
			name:           "two keyword hits is medium",
			title:          "Market Trade Patterns",
			wantPrimary:    "Economics",
			wantConfidence: "medium",
		},
		{
			name:           "single hit is low",
			title:          "On Quantum Puzzles",
			wantPrimary:    "Physics",
			wantConfidence: "low",
		},
		{
			name:           "no keywords",
			title:          "Untitled Manuscript",
			wantPrimary:    "Other",
			wantConfidence: "low",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := KeywordClassify(tt.title, tt.content)
			assert.Equal(t, tt.wantPrimary, got.PrimarySubject)
			assert.Equal(t, tt.wantConfidence, got.Confidence)
			assert.Equal(t, types.MethodKeyword, got.Method)
		})
	}
}

func TestKeywordClassifyTieBreaksByCategoryOrder(t *testing.T) {
	// "behavior" scores in both Social Sciences and Psychology; the
	// earlier category wins and the other becomes secondary.
	got := KeywordClassify("A Study of Behavior", "")

	assert.Equal(t, "Social Sciences", got.PrimarySubject)
	assert.Equal(t, []string{"Psychology"}, got.SecondarySubjects)
}

func TestKeywordClassifySecondaryLimit(t *testing.T) {
	got := KeywordClassify("社會 文化 經濟 市場 歷史 戰爭 心理 認知", "")

	assert.Len(t, got.SecondarySubjects, 2)
}

func TestClassifierUsesBackend(t *testing.T) {
	backend := &mockBackend{cls: types.Classification{PrimarySubject: "Law", Method: types.MethodAI}}
	c := New(backend)

	got := c.Classify(context.Background(), "Some Title", "", "")

	assert.Equal(t, "Law", got.PrimarySubject)
	assert.Equal(t, types.MethodAI, got.Method)
	assert.Equal(t, 1, backend.calls)
}

func TestClassifierFallsBackOnBackendError(t *testing.T) {
	backend := &mockBackend{err: errors.New("quota exceeded")}
	c := New(backend)

	got := c.Classify(context.Background(), "Market Trade Patterns", "", "")

	assert.Equal(t, "Economics", got.PrimarySubject)
	assert.Equal(t, types.MethodKeyword, got.Method)
}

func TestClassifierNilBackendUsesKeywords(t *testing.T) {
	got := New(nil).Classify(context.Background(), "On Quantum Puzzles", "", "")

	assert.Equal(t, types.MethodKeyword, got.Method)
}

func TestClassifyBatch(t *testing.T) {
	c := New(nil)
	records := []types.PaperRecord{
		{Title: "Market Trade Patterns"},
		{Title: "Untitled Manuscript"},
	}

	var out bytes.Buffer
	got := c.ClassifyBatch(context.Background(), records, &out)

	require.Len(t, got, 2)
	require.NotNil(t, got[0].Classification)
	assert.Equal(t, "Economics", got[0].Classification.PrimarySubject)
	assert.Equal(t, "Other", got[1].Classification.PrimarySubject)
	assert.Contains(t, out.String(), "classified Market Trade Patterns: Economics")
}

func TestOpenAIBackendClassify(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{\"primary_subject\":\"History\",\"secondary_subjects\":[\"Social Sciences\"],\"confidence\":\"high\",\"reasoning\":\"war history\"}"}}]}`))
	}))
	defer srv.Close()

	b := &OpenAIBackend{APIKey: "k", Model: "gpt-3.5-turbo", BaseURL: srv.URL}
	cls, err := b.Classify(context.Background(), "戰爭史", "content here", "Wei Chen")

	require.NoError(t, err)
	assert.Equal(t, "History", cls.PrimarySubject)
	assert.Equal(t, []string{"Social Sciences"}, cls.SecondarySubjects)
	assert.Equal(t, "high", cls.Confidence)
	assert.Equal(t, types.MethodAI, cls.Method)

	messages := gotBody["messages"].([]any)
	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].(map[string]any)["role"])
	userContent := messages[1].(map[string]any)["content"].(string)
	assert.Contains(t, userContent, "戰爭史")
	assert.Contains(t, userContent, "Authors: Wei Chen")
	assert.Contains(t, userContent, "Computer Science")
}

func TestOpenAIBackendDefaultsSparseAnswer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"` + "```json\\n{}\\n```" + `"}}]}`))
	}))
	defer srv.Close()

	b := &OpenAIBackend{APIKey: "k", Model: "m", BaseURL: srv.URL}
	cls, err := b.Classify(context.Background(), "T", "", "")

	require.NoError(t, err)
	assert.Equal(t, "Other", cls.PrimarySubject)
	assert.Equal(t, "medium", cls.Confidence)
	assert.Empty(t, cls.SecondarySubjects)
}

func TestOpenAIBackendUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	b := &OpenAIBackend{APIKey: "k", Model: "m", BaseURL: srv.URL}
	_, err := b.Classify(context.Background(), "T", "", "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripCodeFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence(`{"a":1}`))
}
