package certificate

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/abhisek/orientation/internal/i18n"
)

const (
	pageWidth  = 1100
	pageHeight = 850
	margin     = 60
	border     = 8

	// baseFontSize is the glyph size in pixels for Scale 1.
	baseFontSize = 13
)

// regular is Go Regular, which covers Latin-1 so Spanish text renders.
var regular = mustParseFont(goregular.TTF)

func mustParseFont(ttf []byte) *opentype.Font {
	f, err := opentype.Parse(ttf)
	if err != nil {
		panic(fmt.Sprintf("certificate: parse embedded font: %v", err))
	}
	return f
}

var (
	inkColor    = color.NRGBA{R: 0x1F, G: 0x29, B: 0x37, A: 0xFF}
	accentColor = color.NRGBA{R: 0x7C, G: 0x3A, B: 0xED, A: 0xFF}
)

// PNGRenderer draws certificates as PNG images into a directory.
type PNGRenderer struct {
	dir     string
	catalog *i18n.Catalog
	face    font.Face // scale 1
	now     func() time.Time
	log     *zap.Logger

	mu    sync.Mutex // guards faces and drawing
	faces map[int]font.Face
}

// PNGOption configures a PNGRenderer.
type PNGOption func(*PNGRenderer)

// WithClock replaces time.Now for the default completion date.
func WithClock(now func() time.Time) PNGOption {
	return func(r *PNGRenderer) { r.now = now }
}

// WithLogger sets the renderer logger.
func WithLogger(l *zap.Logger) PNGOption {
	return func(r *PNGRenderer) { r.log = l }
}

// NewPNGRenderer returns a renderer writing into dir. An empty dir means the
// working directory.
func NewPNGRenderer(dir string, catalog *i18n.Catalog, opts ...PNGOption) *PNGRenderer {
	if dir == "" {
		dir = "."
	}
	r := &PNGRenderer{
		dir:     dir,
		catalog: catalog,
		faces:   make(map[int]font.Face),
		now:     time.Now,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.face = r.faceFor(1)
	return r
}

// faceFor returns the face for a scale, creating it on first use.
func (r *PNGRenderer) faceFor(scale int) font.Face {
	if scale < 1 {
		scale = 1
	}
	if f, ok := r.faces[scale]; ok {
		return f
	}
	f, err := opentype.NewFace(regular, &opentype.FaceOptions{
		Size:    float64(baseFontSize * scale),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		// Only fails on invalid options, which are constant here.
		panic(fmt.Sprintf("certificate: font face: %v", err))
	}
	r.faces[scale] = f
	return f
}

// Render writes the certificate for a passing result and returns its path.
func (r *PNGRenderer) Render(ctx context.Context, req Request) (string, error) {
	if !req.Results.Passing {
		return "", ErrNotEligible
	}
	if req.CompletedAt.IsZero() {
		req.CompletedAt = r.now()
	}

	r.mu.Lock()
	img := r.draw(req)
	r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", fmt.Errorf("create certificate directory: %w", err)
	}

	path := filepath.Join(r.dir, FileName(req.StudentName, req.CompletedAt, "png"))
	if err := imaging.Save(img, path); err != nil {
		return "", fmt.Errorf("save certificate: %w", err)
	}

	r.log.Info("certificate written",
		zap.String("path", path),
		zap.String("grade", req.Results.Grade.String()),
	)
	return path, nil
}

func (r *PNGRenderer) draw(req Request) *image.NRGBA {
	page := imaging.New(pageWidth, pageHeight, accentColor)
	inner := imaging.New(pageWidth-2*border, pageHeight-2*border, color.White)
	page = imaging.Paste(page, inner, image.Pt(border, border))

	lines := Lines(r.catalog, req)
	blocks := make([]*image.NRGBA, 0, len(lines))
	gaps := make([]int, 0, len(lines))
	total := 0
	for _, l := range lines {
		wrapped := r.wrap(l.Text, l.Scale, pageWidth-2*margin)
		for i, text := range wrapped {
			b := r.renderLine(text, l.Scale)
			blocks = append(blocks, b)
			gap := 4
			if i == len(wrapped)-1 {
				gap = l.Gap
			}
			gaps = append(gaps, gap)
			total += b.Bounds().Dy() + gap
		}
	}

	y := (pageHeight - total) / 2
	if y < margin {
		y = margin
	}
	for i, b := range blocks {
		x := (pageWidth - b.Bounds().Dx()) / 2
		page = imaging.Overlay(page, b, image.Pt(x, y), 1.0)
		y += b.Bounds().Dy() + gaps[i]
	}
	return page
}

// renderLine draws text with the face sized for scale.
func (r *PNGRenderer) renderLine(text string, scale int) *image.NRGBA {
	face := r.faceFor(scale)
	m := face.Metrics()
	w := font.MeasureString(face, text).Ceil()
	h := (m.Ascent + m.Descent).Ceil()
	if w < 1 {
		w = 1
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(inkColor),
		Face: face,
		Dot:  fixed.Point26_6{X: 0, Y: m.Ascent},
	}
	d.DrawString(text)
	return dst
}

// wrap splits text into lines that fit maxWidth pixels at scale.
func (r *PNGRenderer) wrap(text string, scale, maxWidth int) []string {
	face := r.faceFor(scale)
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	cur := words[0]
	for _, w := range words[1:] {
		next := cur + " " + w
		if font.MeasureString(face, next).Ceil() > maxWidth {
			lines = append(lines, cur)
			cur = w
			continue
		}
		cur = next
	}
	return append(lines, cur)
}
