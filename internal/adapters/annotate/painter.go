package annotate

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"

	"github.com/bnema/mira/internal/domain"
	"github.com/bnema/mira/internal/ports"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

const (
	defaultJPEGQuality = 85
	boxLineWidth       = 2
	labelPadding       = 3
)

var (
	boxColor   = color.RGBA{R: 0, G: 220, B: 90, A: 255}
	labelInk   = color.Black
	labelPaper = color.RGBA{R: 0, G: 220, B: 90, A: 220}
)

// Painter draws item boxes with gg and samples garment colors.
type Painter struct {
	face    font.Face
	quality int
}

var _ ports.FramePainter = (*Painter)(nil)

func NewPainter() *Painter {
	return &Painter{face: basicfont.Face7x13, quality: defaultJPEGQuality}
}

// Decode reads the JPEG payload of frame.
func (p *Painter) Decode(frame domain.Frame) (image.Image, error) {
	img, err := jpeg.Decode(bytes.NewReader(frame.Data))
	if err != nil {
		return nil, fmt.Errorf("decode frame %d: %w", frame.Seq, err)
	}
	return img, nil
}

// Paint draws items onto img and returns frame with the re-encoded JPEG.
func (p *Painter) Paint(frame domain.Frame, img image.Image, items []domain.Item) (domain.Frame, error) {
	if len(items) == 0 {
		return frame, nil
	}
	if img == nil {
		return frame, fmt.Errorf("paint frame %d: no decoded image", frame.Seq)
	}

	dc := gg.NewContextForImage(img)
	dc.SetFontFace(p.face)
	dc.SetLineWidth(boxLineWidth)

	for _, item := range items {
		box := item.BBox
		dc.SetColor(boxColor)
		dc.DrawRectangle(box.X1, box.Y1, box.Width(), box.Height())
		dc.Stroke()

		caption := Caption(item)
		textWidth, textHeight := dc.MeasureString(caption)

		top := box.Y1 - textHeight - 2*labelPadding
		if top < 0 {
			top = box.Y1
		}

		dc.SetColor(labelPaper)
		dc.DrawRectangle(box.X1, top, textWidth+2*labelPadding, textHeight+2*labelPadding)
		dc.Fill()

		dc.SetColor(labelInk)
		dc.DrawStringAnchored(caption, box.X1+labelPadding, top+labelPadding+textHeight/2, 0, 0.5)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dc.Image(), &jpeg.Options{Quality: p.quality}); err != nil {
		return frame, fmt.Errorf("encode annotated frame: %w", err)
	}

	annotated := frame
	annotated.Data = buf.Bytes()
	bounds := dc.Image().Bounds()
	annotated.Width = bounds.Dx()
	annotated.Height = bounds.Dy()

	return annotated, nil
}

// Caption is the text drawn above a box, for example "tie 0.87 navy".
func Caption(item domain.Item) string {
	caption := fmt.Sprintf("%s %.2f", item.DisplayLabel(), item.Confidence)
	if item.Color != "" && item.Color != domain.UnknownColor {
		caption += " " + item.Color
	}
	return caption
}

func (p *Painter) Colors(img image.Image, boxes []domain.BBox) []string {
	colors := make([]string, len(boxes))
	for i, box := range boxes {
		if img == nil {
			colors[i] = domain.UnknownColor
			continue
		}
		colors[i] = DominantColor(img, box)
	}

	return colors
}
