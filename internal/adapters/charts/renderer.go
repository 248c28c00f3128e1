package charts

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"propwise/internal/adapters/observability"
	"propwise/internal/domain"
)

const (
	defaultWidth  = 6.4 // inches
	defaultHeight = 4.8
	barWidth      = 18 // points
)

// Renderer writes PNG charts into a fixed directory. File names are reused,
// so every render overwrites the previous image.
type Renderer struct {
	dir     string
	workers int
}

func New(dir string, workers int) (*Renderer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("charts: %w", err)
	}
	if workers <= 0 {
		workers = 2
	}
	return &Renderer{dir: dir, workers: workers}, nil
}

func (r *Renderer) Render(ctx context.Context, charts []domain.Chart) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for _, c := range charts {
		c := c
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			err := r.renderOne(c)
			observability.ObserveChart(c.File, err)
			if err != nil {
				return fmt.Errorf("charts: %s: %w", c.File, err)
			}
			return nil
		})
	}
	return g.Wait()
}

func (r *Renderer) renderOne(c domain.Chart) error {
	p := plot.New()
	p.Title.Text = c.Title
	p.X.Label.Text = c.XLabel
	p.Y.Label.Text = c.YLabel

	switch c.Kind {
	case domain.Histogram:
		h, err := plotter.NewHist(plotter.Values(c.Values), c.Bins)
		if err != nil {
			return err
		}
		p.Add(h)
	case domain.BarChart, domain.HorizontalBarChart:
		bars, err := plotter.NewBarChart(plotter.Values(c.Values), vg.Points(barWidth))
		if err != nil {
			return err
		}
		p.Add(bars)
		if c.Kind == domain.HorizontalBarChart {
			bars.Horizontal = true
			p.NominalY(c.Labels...)
		} else {
			p.NominalX(c.Labels...)
		}
	default:
		return fmt.Errorf("unknown chart kind %d", c.Kind)
	}

	w, h := c.Width, c.Height
	if w <= 0 || h <= 0 {
		w, h = defaultWidth, defaultHeight
	}
	wt, err := p.WriterTo(vg.Length(w)*vg.Inch, vg.Length(h)*vg.Inch, "png")
	if err != nil {
		return err
	}
	return r.writeAtomic(c.File, wt)
}

// writeAtomic writes to a temp file in dir and renames it over the target.
func (r *Renderer) writeAtomic(name string, wt io.WriterTo) error {
	f, err := os.CreateTemp(r.dir, "."+name+".*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := wt.WriteTo(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, r.Path(name))
}

// Path returns where the named chart is written.
func (r *Renderer) Path(name string) string {
	return filepath.Join(r.dir, name)
}
