package parsers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toolm8/toolm8/internal/entities"
)

const productHuntSampleCSV = `"name","tagline","description","website","maker","launch_date","upvotes","comments_count","pricing","category"
"ChatGPT","AI Assistant","Revolutionary AI chatbot for conversations and coding","https://openai.com/chatgpt?ref=producthunt","OpenAI","2022-11-30","1500","250","Free + from $20/mo","AI Tools"
"Tiny Tool","Does one thing","","https://tiny.example","Jane Doe","2023-05-01","42","3","","Utilities"
`

func TestProductHuntParserValidate(t *testing.T) {
	parser := NewProductHuntParser()

	require.NoError(t, parser.Validate([]byte(productHuntSampleCSV)))

	err := parser.Validate([]byte("name,website\nFoo,https://foo.example\n"))
	require.Error(t, err)

	var formatErr *FormatError
	require.True(t, errors.As(err, &formatErr))
	assert.Equal(t, []string{"tagline"}, formatErr.Missing)
}

func TestProductHuntParserParse(t *testing.T) {
	parser := NewProductHuntParser()

	tools := parser.Parse([]byte(productHuntSampleCSV))
	require.Len(t, tools, 2)

	chatgpt := tools[0]
	assert.Equal(t, "ChatGPT", chatgpt.Name)
	assert.Equal(t, "chatgpt", chatgpt.Slug)
	assert.Equal(t, "Revolutionary AI chatbot for conversations and coding", chatgpt.Description)
	assert.Equal(t, "https://openai.com/chatgpt", chatgpt.WebsiteURL)
	assert.Equal(t, entities.PricingTypeFreemium, chatgpt.PricingType)
	assert.Equal(t, "$20/month", chatgpt.PriceRange)
	assert.True(t, chatgpt.HasFreeTrial)
	assert.Equal(t, entities.StringList{"ai tools", "by-openai"}, chatgpt.Tags)
	assert.Equal(t, entities.StringList{"highly-popular", "well-discussed"}, chatgpt.Features)
	assert.Equal(t, "producthunt.com", chatgpt.Source)
	// 1500 upvotes -> +3, 250 comments -> +1
	assert.Equal(t, 9, chatgpt.QualityScore)
	// 1500/10 + 250/5
	assert.Equal(t, 200, chatgpt.PopularityScore)
}

func TestProductHuntParserTaglineFallback(t *testing.T) {
	parser := NewProductHuntParser()

	tools := parser.Parse([]byte(productHuntSampleCSV))
	require.Len(t, tools, 2)

	tiny := tools[1]
	assert.Equal(t, "Does one thing", tiny.Description)
	assert.Equal(t, entities.PricingTypeNone, tiny.PricingType)
	assert.Empty(t, tiny.Features)
	assert.Equal(t, 5, tiny.QualityScore)
	assert.Equal(t, 4, tiny.PopularityScore)
}

func TestProductHuntParserSkipsRowsWithoutName(t *testing.T) {
	parser := NewProductHuntParser()

	csv := `name,tagline
,"No name here"
Notion,"All-in-one workspace"
`
	tools := parser.Parse([]byte(csv))
	require.Len(t, tools, 1)
	assert.Equal(t, "Notion", tools[0].Name)
}

func TestProductHuntParserIgnoresBadNumericValues(t *testing.T) {
	parser := NewProductHuntParser()

	csv := `name,tagline,upvotes,comments_count
Gizmo,"A gizmo",not-a-number,also-bad
`
	tools := parser.Parse([]byte(csv))
	require.Len(t, tools, 1)
	assert.Equal(t, 5, tools[0].QualityScore)
	assert.Equal(t, 0, tools[0].PopularityScore)
}
