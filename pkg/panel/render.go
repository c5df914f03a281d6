package panel

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/fogleman/gg"

	"github.com/matzehuels/dailywall/pkg/errors"
	"github.com/matzehuels/dailywall/pkg/sources"
	"github.com/matzehuels/dailywall/pkg/textlayout"
)

// Kind identifies a panel.
type Kind string

// Panel kinds.
const (
	KindWeather Kind = "weather"
	KindJoke    Kind = "joke"
)

// Panel is a rendered overlay, ready for compositing.
type Panel struct {
	Kind  Kind
	Title string
	Image *image.RGBA

	// Lines holds the text lines drawn on a joke panel.
	Lines []string

	// Rows is the number of forecast rows or joke lines drawn.
	Rows int
}

// Bounds returns the panel image bounds.
func (p *Panel) Bounds() image.Rectangle {
	return p.Image.Bounds()
}

// errReporter is implemented by typesetters that defer errors, such as
// FontTypesetter.
type errReporter interface {
	Err() error
}

// Renderer draws panels using a Config and a Typesetter.
type Renderer struct {
	Config     Config
	Typesetter Typesetter
}

// NewRenderer returns a renderer for cfg. A nil text colour means white.
func NewRenderer(cfg Config, ts Typesetter) *Renderer {
	if cfg.TextColor == nil {
		cfg.TextColor = color.White
	}
	return &Renderer{Config: cfg, Typesetter: ts}
}

// RenderWeather draws the forecast table. Rows beyond the layout's
// MaxRows are ignored. The panel always has the full layout height, so
// fewer rows leave blank space at the bottom.
func (r *Renderer) RenderWeather(rows []sources.ForecastRow) (*Panel, error) {
	l := r.Config.Weather
	if err := l.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "weather panel")
	}
	if l.MaxRows > 0 && len(rows) > l.MaxRows {
		rows = rows[:l.MaxRows]
	}

	dc := r.newContext(l.Width, l.Height)
	r.drawTitle(dc, l.Title, l.Width, l.TitleBaseline, l.TitleSize)

	if len(l.Headers) > 0 {
		header, err := textlayout.LayoutRow(l.Headers, l.Columns)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeRender, err, "weather header")
		}
		r.drawCells(dc, header, l.HeaderBaseline, l.BodySize)
	}

	dc.SetLineWidth(1)
	dc.DrawLine(0, l.RuleY+0.5, float64(l.Width), l.RuleY+0.5)
	dc.Stroke()

	for i, row := range rows {
		cells, err := textlayout.LayoutRow(row.Cells(), l.Columns)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeRender, err, "weather row %d", i)
		}
		r.drawCells(dc, cells, l.FirstRowBaseline+l.RowSpacing*float64(i), l.BodySize)
	}

	if err := r.typesetterErr(); err != nil {
		return nil, err
	}
	return &Panel{
		Kind:  KindWeather,
		Title: l.Title,
		Image: rgba(dc),
		Rows:  len(rows),
	}, nil
}

// RenderJoke draws text as a wrapped paragraph. The panel is cropped to
// the baseline of the last line plus one line spacing. Lines that would
// push the panel past the layout's MaxHeight are dropped, but the first
// line is always kept.
func (r *Renderer) RenderJoke(text string) (*Panel, error) {
	l := r.Config.Joke
	if err := l.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "joke panel")
	}

	maxWidth := float64(l.Width) - 2*l.Margin
	lines := textlayout.Wrap(text, maxWidth, r.Typesetter, l.BodySize)
	if limit := l.maxLines(); limit > 0 && len(lines) > limit {
		lines = lines[:limit]
	}

	dc := r.newContext(l.Width, l.height(len(lines)))
	r.drawTitle(dc, l.Title, l.Width, l.TitleBaseline, l.TitleSize)
	for i, line := range lines {
		r.Typesetter.DrawText(dc, l.Margin, l.FirstLineBaseline+l.LineSpacing*float64(i), line, l.BodySize)
	}

	if err := r.typesetterErr(); err != nil {
		return nil, err
	}
	return &Panel{
		Kind:  KindJoke,
		Title: l.Title,
		Image: rgba(dc),
		Lines: lines,
		Rows:  len(lines),
	}, nil
}

// height returns the cropped panel height for n lines.
func (l JokeLayout) height(n int) int {
	return int(l.FirstLineBaseline + l.LineSpacing*float64(n))
}

// maxLines returns how many lines fit within MaxHeight, never less than
// one. Zero means unlimited.
func (l JokeLayout) maxLines() int {
	if l.MaxHeight == 0 {
		return 0
	}
	n := int((float64(l.MaxHeight) - l.FirstLineBaseline) / l.LineSpacing)
	return max(n, 1)
}

func (r *Renderer) newContext(w, h int) *gg.Context {
	dc := gg.NewContext(w, h)
	dc.SetColor(color.Black)
	dc.Clear()
	dc.SetColor(r.Config.TextColor)
	return dc
}

func (r *Renderer) drawTitle(dc *gg.Context, title string, width int, baseline, size float64) {
	if title == "" {
		return
	}
	x := (float64(width) - r.Typesetter.MeasureText(title, size)) / 2
	r.Typesetter.DrawText(dc, x, baseline, title, size)
}

func (r *Renderer) drawCells(dc *gg.Context, cells []textlayout.Cell, baseline, size float64) {
	for _, c := range cells {
		r.Typesetter.DrawText(dc, c.X, baseline, c.Text, size)
	}
}

func (r *Renderer) typesetterErr() error {
	if er, ok := r.Typesetter.(errReporter); ok {
		return er.Err()
	}
	return nil
}

// rgba returns the context's backing image. gg always allocates an
// *image.RGBA, but a copy is made if that ever changes.
func rgba(dc *gg.Context) *image.RGBA {
	img := dc.Image()
	if m, ok := img.(*image.RGBA); ok {
		return m
	}
	m := image.NewRGBA(img.Bounds())
	draw.Draw(m, m.Bounds(), img, img.Bounds().Min, draw.Src)
	return m
}
