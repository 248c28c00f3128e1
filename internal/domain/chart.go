package domain

type ChartKind int

const (
	BarChart ChartKind = iota
	HorizontalBarChart
	Histogram
)

// Chart describes one image to render. Labels and Values line up for bar charts;
// Histogram charts only use Values and Bins.
type Chart struct {
	File   string
	Kind   ChartKind
	Title  string
	XLabel string
	YLabel string
	Labels []string
	Values []float64
	Bins   int
	Width  float64 // inches
	Height float64 // inches
}
