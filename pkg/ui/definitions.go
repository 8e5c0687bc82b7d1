package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/vanderheijden86/sentidash/pkg/model"
)

type definition struct {
	key, name, text string
}

var definitions = []definition{
	{model.KeyNetPositivity, "Net Positivity", "Share of positive emotional signal in an answer after subtracting neutral speech. Drawn as the line in the positivity panel."},
	{model.KeyInterest, "Interest", "Curiosity and engagement with the topic; analysts asking follow-ups tend to score high."},
	{model.KeyEnthusiasm, "Enthusiasm", "Energetic, upbeat delivery, usually when guidance is raised or a product is launched."},
	{model.KeyCalmness, "Calmness", "Steady, unhurried tone. Paired with doubt to show composure under scrutiny."},
	{model.KeySatisfaction, "Satisfaction", "Contentment with results or with the answer given."},
	{model.KeySurprisePositive, "Surprise (positive)", "Pleasant surprise, such as a beat on revenue or margin."},
	{model.KeyNetNegativity, "Net Negativity", "Share of negative emotional signal in an answer. Drawn as the line in the negativity panel."},
	{model.KeyConfusion, "Confusion", "Uncertainty about what was said; often precedes clarifying questions."},
	{model.KeyAnnoyance, "Annoyance", "Irritation or impatience, for example with a repeated question."},
	{model.KeyDoubt, "Doubt", "Skepticism toward guidance or explanations."},
	{model.KeyDisapproval, "Disapproval", "Explicit dissatisfaction with results or strategy."},
	{model.KeySurpriseNegative, "Surprise (negative)", "Unpleasant surprise, such as a miss or a cut to guidance."},
}

// DefinitionsMarkdown returns the Sentiment Definitions page as markdown.
func DefinitionsMarkdown() string {
	var b strings.Builder
	b.WriteString("# Sentiment Definitions\n\n")
	b.WriteString("Scores are on a 0 to 100 scale per quarter. Cards show the latest value and the change from the previous quarter.\n\n")
	b.WriteString("## Positive\n\n")
	for i, d := range definitions {
		if i == 6 {
			b.WriteString("\n## Negative\n\n")
		}
		fmt.Fprintf(&b, "- **%s** (`%s`): %s\n", d.name, d.key, d.text)
	}
	return b.String()
}

// renderDefinitions renders the markdown for the given width. Plain output
// skips ANSI styling.
func renderDefinitions(width int, plain bool) string {
	md := DefinitionsMarkdown()
	style := glamour.WithAutoStyle()
	if plain {
		style = glamour.WithStandardStyle("notty")
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(max(width-4, 20)))
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n ")
}
