package annotate

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/bnema/mira/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidImage(width, height int, fill color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: fill}, image.Point{}, draw.Src)
	return img
}

func jpegFrame(t *testing.T, img image.Image) domain.Frame {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 95}))
	bounds := img.Bounds()
	return domain.Frame{Seq: 1, Width: bounds.Dx(), Height: bounds.Dy(), Data: buf.Bytes()}
}

func TestDominantColorNearestPaletteEntry(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		fill color.RGBA
		want string
	}{
		{name: "navy", fill: color.RGBA{R: 22, G: 33, B: 88, A: 255}, want: "navy"},
		{name: "red", fill: color.RGBA{R: 210, G: 20, B: 25, A: 255}, want: "red"},
		{name: "white", fill: color.RGBA{R: 250, G: 250, B: 250, A: 255}, want: "white"},
		{name: "beige", fill: color.RGBA{R: 225, G: 205, B: 165, A: 255}, want: "beige"},
		{name: "black", fill: color.RGBA{R: 5, G: 5, B: 5, A: 255}, want: "black"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			img := solidImage(40, 40, tt.fill)
			assert.Equal(t, tt.want, DominantColor(img, domain.BBox{X1: 0, Y1: 0, X2: 40, Y2: 40}))
		})
	}
}

func TestDominantColorSamplesBoxCenter(t *testing.T) {
	t.Parallel()

	img := solidImage(100, 100, color.RGBA{R: 250, G: 250, B: 250, A: 255})
	draw.Draw(img, image.Rect(30, 30, 70, 70), &image.Uniform{C: color.RGBA{R: 200, G: 30, B: 30, A: 255}}, image.Point{}, draw.Src)

	assert.Equal(t, "red", DominantColor(img, domain.BBox{X1: 10, Y1: 10, X2: 90, Y2: 90}))
}

func TestDominantColorOutsideImageIsUnknown(t *testing.T) {
	t.Parallel()

	img := solidImage(10, 10, color.Black)
	assert.Equal(t, domain.UnknownColor, DominantColor(img, domain.BBox{X1: 50, Y1: 50, X2: 80, Y2: 80}))
	assert.Equal(t, domain.UnknownColor, DominantColor(img, domain.BBox{X1: 5, Y1: 5, X2: 5, Y2: 5}))
}

func TestPainterColorsFromJPEGFrame(t *testing.T) {
	t.Parallel()

	img := solidImage(120, 80, color.RGBA{R: 250, G: 250, B: 250, A: 255})
	draw.Draw(img, image.Rect(60, 0, 120, 80), &image.Uniform{C: color.RGBA{R: 25, G: 35, B: 90, A: 255}}, image.Point{}, draw.Src)

	painter := NewPainter()
	decoded, err := painter.Decode(jpegFrame(t, img))
	require.NoError(t, err)

	colors := painter.Colors(decoded, []domain.BBox{
		{X1: 0, Y1: 0, X2: 60, Y2: 80},
		{X1: 60, Y1: 0, X2: 120, Y2: 80},
	})
	assert.Equal(t, []string{"white", "navy"}, colors)
}

func TestPainterColorsWithoutImageAreUnknown(t *testing.T) {
	t.Parallel()

	colors := NewPainter().Colors(nil, []domain.BBox{{X2: 1, Y2: 1}})
	assert.Equal(t, []string{domain.UnknownColor}, colors)
}

func TestPainterPaintDrawsOnFrame(t *testing.T) {
	t.Parallel()

	frame := jpegFrame(t, solidImage(160, 120, color.White))
	item := domain.Item{Label: "tie", Confidence: 0.87, Color: "navy", BBox: domain.BBox{X1: 20, Y1: 40, X2: 100, Y2: 110}}

	painter := NewPainter()
	img, err := painter.Decode(frame)
	require.NoError(t, err)

	annotated, err := painter.Paint(frame, img, []domain.Item{item})
	require.NoError(t, err)

	assert.NotEqual(t, frame.Data, annotated.Data)
	assert.Equal(t, 160, annotated.Width)
	assert.Equal(t, 120, annotated.Height)
	assert.Equal(t, frame.Seq, annotated.Seq)

	decoded, err := jpeg.Decode(bytes.NewReader(annotated.Data))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 160, 120), decoded.Bounds())
}

func TestPainterPaintWithoutItemsReturnsFrame(t *testing.T) {
	t.Parallel()

	frame := domain.Frame{Seq: 3, Data: []byte("not even a jpeg")}
	annotated, err := NewPainter().Paint(frame, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, frame, annotated)
}

func TestPainterRejectsUndecodableFrame(t *testing.T) {
	t.Parallel()

	frame := domain.Frame{Seq: 3, Data: []byte("garbage")}
	_, err := NewPainter().Decode(frame)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode frame 3")

	_, err = NewPainter().Paint(frame, nil, []domain.Item{{Label: "tie"}})
	require.Error(t, err)
}

func TestCaption(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "tie 0.87 navy", Caption(domain.Item{Label: "tie", Confidence: 0.87, Color: "navy"}))
	assert.Equal(t, "handbag 0.50", Caption(domain.Item{Label: "handbag", Confidence: 0.5, Color: domain.UnknownColor}))
}

func TestSnapshotSinkWritesLatestFrame(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "live.jpg")
	sink := NewSnapshotSink(path)

	require.NoError(t, sink.WriteFrame(context.Background(), domain.Frame{Data: []byte("first")}))
	require.NoError(t, sink.WriteFrame(context.Background(), domain.Frame{Data: []byte("second")}))
	require.NoError(t, sink.WriteFrame(context.Background(), domain.Frame{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
