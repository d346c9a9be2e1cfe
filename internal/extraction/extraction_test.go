package extraction

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/syneepse/ResumeFix/internal/config"
	"github.com/syneepse/ResumeFix/internal/logger"
)

type stubGenerator struct {
	reply  string
	err    error
	prompt string
}

func (s *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.reply, s.err
}

type blockingGenerator struct{}

func (blockingGenerator) Generate(ctx context.Context, _ string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("Jane Smith\nSkills: Python, SQL")

	assert.Contains(t, prompt, `"skills": array of strings or null`)
	assert.Contains(t, prompt, "John Doe")
	assert.Contains(t, prompt, "Use null for missing fields")
	assert.True(t, strings.HasSuffix(prompt, "Resume:\nJane Smith\nSkills: Python, SQL"))
}

func TestSanitize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"```json\n{\"name\":\"A\"}\n```", `{"name":"A"}`},
		{"```\n{\"name\":\"A\"}\n```", `{"name":"A"}`},
		{"JSON {\"name\":\"A\"}", `{"name":"A"}`},
		{"Here you go: {\"name\":\"A\"} Let me know!", `{"name":"A"}`},
		{"  {\"a\":{\"b\":1}}  ", `{"a":{"b":1}}`},
		{"no json here", "no json here"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Sanitize(tc.in), tc.in)
	}
}

func TestParse_FencedWithTrailingProse(t *testing.T) {
	raw := "```json\n{\"name\":\"A\",\"skills\":[\"X\"]}\n```\nHope this helps!"

	extracted, err := Parse(raw)
	require.NoError(t, err)
	require.NotNil(t, extracted.Name)
	assert.Equal(t, "A", *extracted.Name)
	assert.Equal(t, []string{"X"}, extracted.Skills)
	assert.Nil(t, extracted.Email)
}

func TestParse_LenientFields(t *testing.T) {
	raw := `{
		"name": "  Jane Smith ",
		"email": null,
		"phone": 5551234567,
		"skills": "Python, SQL , ",
		"work_experience": ["Data Analyst at Acme", "Intern at Beta"],
		"summary": ""
	}`

	extracted, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "Jane Smith", *extracted.Name)
	assert.Nil(t, extracted.Email)
	assert.Equal(t, "5551234567", *extracted.Phone)
	assert.Equal(t, []string{"Python", "SQL"}, extracted.Skills)
	assert.Equal(t, "Data Analyst at Acme\nIntern at Beta", *extracted.WorkExperience)
	assert.Nil(t, extracted.Summary)
}

func TestParse_KeepsRawOnFailure(t *testing.T) {
	_, err := Parse("I could not find a resume.")

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "I could not find a resume.", parseErr.Raw)
}

func TestClient_Extract(t *testing.T) {
	gen := &stubGenerator{reply: `{"name":"Jane Smith","skills":["Python","SQL"],"summary":"Recent graduate."}`}
	client := NewClient(gen, time.Second, logger.Nop())

	extracted, err := client.Extract(context.Background(), "Jane Smith")
	require.NoError(t, err)
	assert.Equal(t, "Jane Smith", *extracted.Name)
	assert.Equal(t, []string{"Python", "SQL"}, extracted.Skills)
	assert.Contains(t, gen.prompt, "Resume:\nJane Smith")
}

func TestClient_NoCredential(t *testing.T) {
	client := NewClient(nil, time.Second, logger.Nop())

	_, err := client.Extract(context.Background(), "text")
	assert.ErrorIs(t, err, ErrNoCredential)

	extracted, ok := client.ExtractOrEmpty(context.Background(), "text")
	assert.False(t, ok)
	assert.Equal(t, &Extracted{}, extracted)
}

func TestClient_ExtractOrEmpty(t *testing.T) {
	t.Run("model error", func(t *testing.T) {
		client := NewClient(&stubGenerator{err: errors.New("quota exceeded")}, time.Second, logger.Nop())
		extracted, ok := client.ExtractOrEmpty(context.Background(), "text")
		assert.False(t, ok)
		assert.Nil(t, extracted.Name)
		assert.Empty(t, extracted.Skills)
	})

	t.Run("unparseable", func(t *testing.T) {
		client := NewClient(&stubGenerator{reply: "sorry"}, time.Second, logger.Nop())
		_, ok := client.ExtractOrEmpty(context.Background(), "text")
		assert.False(t, ok)
	})

	t.Run("timeout", func(t *testing.T) {
		client := NewClient(blockingGenerator{}, 20*time.Millisecond, logger.Nop())
		_, ok := client.ExtractOrEmpty(context.Background(), "text")
		assert.False(t, ok)
	})

	t.Run("success", func(t *testing.T) {
		client := NewClient(&stubGenerator{reply: `{"name":"A"}`}, time.Second, logger.Nop())
		extracted, ok := client.ExtractOrEmpty(context.Background(), "text")
		assert.True(t, ok)
		assert.Equal(t, "A", *extracted.Name)
	})
}

func TestNewGenerator_WithoutKey(t *testing.T) {
	gen, err := NewGenerator(context.Background(), config.LLMConfig{Provider: config.ProviderGenAI, Model: "gemini-2.0-flash"})
	require.NoError(t, err)
	assert.Nil(t, gen)
}
