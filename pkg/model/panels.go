package model

// Metric keys used by trend rows, cards and chart series.
const (
	KeyNetPositivity    = "netPositivity"
	KeyInterest         = "interest"
	KeyEnthusiasm       = "enthusiasm"
	KeyCalmness         = "calmness"
	KeySatisfaction     = "satisfaction"
	KeySurprisePositive = "surprisePositive"
	KeyNetNegativity    = "netNegativity"
	KeyConfusion        = "confusion"
	KeyAnnoyance        = "annoyance"
	KeyDoubt            = "doubt"
	KeyDisapproval      = "disapproval"
	KeySurpriseNegative = "surpriseNegative"
)

// TrendKeys lists every trend key in display order.
var TrendKeys = []string{
	KeyNetPositivity, KeyInterest, KeyEnthusiasm, KeyCalmness, KeySatisfaction, KeySurprisePositive,
	KeyNetNegativity, KeyConfusion, KeyAnnoyance, KeyDoubt, KeyDisapproval, KeySurpriseNegative,
}

// SeriesDescriptor names one chart series. The first descriptor of a chart is
// drawn as a line on the secondary scale, the rest as grouped bars.
type SeriesDescriptor struct {
	Key   string `json:"key" yaml:"key"`
	Color string `json:"color" yaml:"color"`
	Name  string `json:"name" yaml:"name"`
}

// PanelID identifies a maximizable region of the dashboard.
type PanelID string

const (
	PanelQuestions               PanelID = "questions"
	PanelPositivity              PanelID = "positivity"
	PanelNegativity              PanelID = "negativity"
	PanelInterestConfusion       PanelID = "interest-confusion"
	PanelEnthusiasmAnnoyance     PanelID = "enthusiasm-annoyance"
	PanelCalmnessDoubt           PanelID = "calmness-doubt"
	PanelSatisfactionDisapproval PanelID = "satisfaction-disapproval"
	PanelSurprise                PanelID = "surprise"
)

// ChartPanel is a titled trend chart with its series.
type ChartPanel struct {
	ID     PanelID
	Title  string
	Series []SeriesDescriptor
}

// Palette colors shared by the chart panels.
const (
	ColorCyan   = "#00B5E2"
	ColorSlate  = "#425563"
	ColorGreen  = "#01A982"
	ColorCoral  = "#FF8D6D"
	ColorYellow = "#F5C400"
	ColorPlum   = "#614767"
)

// ChartPanels returns the seven trend panels in layout order.
func ChartPanels() []ChartPanel {
	return []ChartPanel{
		{ID: PanelPositivity, Title: "Net Positivity Trend", Series: []SeriesDescriptor{
			{Key: KeyNetPositivity, Color: ColorCyan, Name: "Net Positivity"},
			{Key: KeyInterest, Color: ColorSlate, Name: "Interest"},
			{Key: KeyEnthusiasm, Color: ColorGreen, Name: "Enthusiasm"},
		}},
		{ID: PanelNegativity, Title: "Net Negativity Trend", Series: []SeriesDescriptor{
			{Key: KeyNetNegativity, Color: ColorCoral, Name: "Net Negativity"},
			{Key: KeyConfusion, Color: ColorYellow, Name: "Confusion"},
			{Key: KeyAnnoyance, Color: ColorPlum, Name: "Annoyance"},
		}},
		{ID: PanelInterestConfusion, Title: "Interest vs Confusion", Series: []SeriesDescriptor{
			{Key: KeyInterest, Color: ColorCyan, Name: "Interest"},
			{Key: KeyConfusion, Color: ColorCoral, Name: "Confusion"},
		}},
		{ID: PanelEnthusiasmAnnoyance, Title: "Enthusiasm vs Annoyance", Series: []SeriesDescriptor{
			{Key: KeyEnthusiasm, Color: ColorGreen, Name: "Enthusiasm"},
			{Key: KeyAnnoyance, Color: ColorCoral, Name: "Annoyance"},
		}},
		{ID: PanelCalmnessDoubt, Title: "Calmness vs Doubt", Series: []SeriesDescriptor{
			{Key: KeyCalmness, Color: ColorSlate, Name: "Calmness"},
			{Key: KeyDoubt, Color: ColorCoral, Name: "Doubt"},
		}},
		{ID: PanelSatisfactionDisapproval, Title: "Satisfaction vs Disapproval", Series: []SeriesDescriptor{
			{Key: KeySatisfaction, Color: ColorGreen, Name: "Satisfaction"},
			{Key: KeyDisapproval, Color: ColorCoral, Name: "Disapproval"},
		}},
		{ID: PanelSurprise, Title: "Surprise (Positive vs Negative)", Series: []SeriesDescriptor{
			{Key: KeySurprisePositive, Color: ColorGreen, Name: "Positive Surprise"},
			{Key: KeySurpriseNegative, Color: ColorCoral, Name: "Negative Surprise"},
		}},
	}
}

// FindChartPanel returns the chart panel with the given id.
func FindChartPanel(id PanelID) (ChartPanel, bool) {
	for _, p := range ChartPanels() {
		if p.ID == id {
			return p, true
		}
	}
	return ChartPanel{}, false
}

// PanelOrder is the focus order of every maximizable panel.
func PanelOrder() []PanelID {
	ids := []PanelID{PanelQuestions}
	for _, p := range ChartPanels() {
		ids = append(ids, p.ID)
	}
	return ids
}

// DefaultPositiveCards returns the positive-family cards with zeroed metrics.
func DefaultPositiveCards() []MetricCard {
	return []MetricCard{
		{Key: KeyNetPositivity, Title: "Net Positivity", Category: CategoryNetPositive},
		{Key: KeyInterest, Title: "Interest", Category: CategoryOtherPositive},
		{Key: KeyEnthusiasm, Title: "Enthusiasm", Category: CategoryOtherPositive},
		{Key: KeyCalmness, Title: "Calmness", Category: CategoryOtherPositive},
		{Key: KeySatisfaction, Title: "Satisfaction", Category: CategoryOtherPositive},
		{Key: KeySurprisePositive, Title: "Surprise", Category: CategoryOtherPositive},
	}
}

// DefaultNegativeCards returns the negative-family cards with zeroed metrics.
func DefaultNegativeCards() []MetricCard {
	return []MetricCard{
		{Key: KeyNetNegativity, Title: "Net Negativity", Category: CategoryNetNegative},
		{Key: KeyConfusion, Title: "Confusion", Category: CategoryOtherNegative},
		{Key: KeyAnnoyance, Title: "Annoyance", Category: CategoryOtherNegative},
		{Key: KeyDoubt, Title: "Doubt", Category: CategoryOtherNegative},
		{Key: KeyDisapproval, Title: "Disapproval", Category: CategoryOtherNegative},
		{Key: KeySurpriseNegative, Title: "Surprise", Category: CategoryOtherNegative},
	}
}
