package parsers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toolm8/toolm8/internal/entities"
)

const taaftSampleCSV = `"taaft_icon src","ai_link","external_ai_link href","task_label","ai_launch_date","stats_views","saves","average_rating","comment_body"
"https://cdn.example.com/chatgpt.svg","ChatGPT","https://openai.com/chatgpt?ref=taaft&utm_source=newsletter","Writing","Free + from $20/mo","1,500","25","4.5","Great AI tool for drafting"
"https://cdn.example.com/other.svg","Some Other Tool","","","100% free","800","5","",""
`

func TestTAAFTParserValidate(t *testing.T) {
	parser := NewTAAFTParser()

	require.NoError(t, parser.Validate([]byte(taaftSampleCSV)))

	err := parser.Validate([]byte("name,website\nFoo,https://foo.example\n"))
	require.Error(t, err)

	var formatErr *FormatError
	require.True(t, errors.As(err, &formatErr))
	assert.Equal(t, []string{"ai_link"}, formatErr.Missing)
	assert.Contains(t, err.Error(), "ai_link")
}

func TestTAAFTParserParse(t *testing.T) {
	parser := NewTAAFTParser()

	tools := parser.Parse([]byte(taaftSampleCSV))
	require.Len(t, tools, 2)

	chatgpt := tools[0]
	assert.Equal(t, "ChatGPT", chatgpt.Name)
	assert.Equal(t, "chatgpt", chatgpt.Slug)
	assert.Equal(t, "Writing. Great AI tool for drafting", chatgpt.Description)
	assert.Equal(t, "https://openai.com/chatgpt", chatgpt.WebsiteURL)
	assert.Equal(t, "https://cdn.example.com/chatgpt.svg", chatgpt.LogoURL)
	assert.Equal(t, entities.PricingTypeFreemium, chatgpt.PricingType)
	assert.Equal(t, "$20/month", chatgpt.PriceRange)
	assert.True(t, chatgpt.HasFreeTrial)
	assert.Equal(t, entities.StringList{"writing", "freemium"}, chatgpt.Tags)
	assert.Equal(t, entities.StringList{"highly-rated", "user-reviewed"}, chatgpt.Features)
	assert.Equal(t, "theresanaiforthat.com", chatgpt.Source)
	// rating 4.5 -> +2, commentary -> +1, saves 25 -> +0.5
	assert.Equal(t, 9, chatgpt.QualityScore)
	// 1500 views / 1000 + 25 saves * 2
	assert.Equal(t, 51, chatgpt.PopularityScore)
}

func TestTAAFTParserSparseRow(t *testing.T) {
	parser := NewTAAFTParser()

	tools := parser.Parse([]byte(taaftSampleCSV))
	require.Len(t, tools, 2)

	sparse := tools[1]
	assert.Equal(t, "Some Other Tool", sparse.Name)
	assert.Equal(t, "some-other-tool", sparse.Slug)
	assert.Equal(t, "AI tool for various tasks", sparse.Description)
	assert.Empty(t, sparse.WebsiteURL)
	assert.Equal(t, entities.PricingTypeFree, sparse.PricingType)
	assert.False(t, sparse.HasFreeTrial)
	assert.Equal(t, entities.StringList{"free"}, sparse.Tags)
	assert.Empty(t, sparse.Features)
}

func TestTAAFTParserSkipsRowsWithoutName(t *testing.T) {
	parser := NewTAAFTParser()

	csv := `ai_link,task_label
,"Writing"
Copywriter,"Writing"
`
	tools := parser.Parse([]byte(csv))
	require.Len(t, tools, 1)
	assert.Equal(t, "Copywriter", tools[0].Name)
}

func TestTAAFTParserFallbackWebsiteColumn(t *testing.T) {
	parser := NewTAAFTParser()

	csv := `ai_link,"visit_ai_website_link href"
Scribble,https://scribble.example/?utm_campaign=launch
`
	tools := parser.Parse([]byte(csv))
	require.Len(t, tools, 1)
	assert.Equal(t, "https://scribble.example/", tools[0].WebsiteURL)
}

func TestTAAFTParserUnreadableInput(t *testing.T) {
	parser := NewTAAFTParser()

	err := parser.Validate([]byte(""))
	require.Error(t, err)

	var formatErr *FormatError
	require.True(t, errors.As(err, &formatErr))
	assert.NotEmpty(t, formatErr.Reason)
}
