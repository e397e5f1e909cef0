package thumbnail

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simplifytour/pkg/logger"
	"simplifytour/pkg/storage"
)

func setup(t *testing.T) (*Thumbnailer, *storage.FileSystemStorage, string) {
	t.Helper()
	root := t.TempDir()
	s := storage.NewFileSystemStorage(root, "/media/")
	return New(s, "/media/", ".thumbnails", logger.NewConsoleLogger(logger.LevelError)), s, root
}

func writeImage(t *testing.T, root, name string, w, h int) {
	t.Helper()
	img := imaging.New(w, h, color.NRGBA{R: 200, G: 30, B: 30, A: 255})
	full := filepath.Join(root, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, imaging.Save(img, full))
}

func decodeSize(t *testing.T, full string) (int, int) {
	t.Helper()
	img, err := imaging.Open(full)
	require.NoError(t, err)
	return img.Bounds().Dx(), img.Bounds().Dy()
}

func TestThumbnail_Empty(t *testing.T) {
	th, _, _ := setup(t)
	assert.Equal(t, "", th.Thumbnail("", 10, 10, DefaultOptions()))
}

func TestThumbnail_MissingSourceReturnsOriginal(t *testing.T) {
	th, _, _ := setup(t)
	assert.Equal(t, "featured_images/none.jpg", th.Thumbnail("/media/featured_images/none.jpg?v=2", 10, 10, DefaultOptions()))
}

func TestThumbnail_CreatesResizedCopy(t *testing.T) {
	th, _, root := setup(t)
	writeImage(t, root, "featured_images/peak.jpg", 400, 200)

	got := th.Thumbnail("/media/featured_images/peak.jpg", 100, 100, DefaultOptions())
	assert.Equal(t, "featured_images/.thumbnails/peak.jpg/peak-100x100.jpg", got)

	w, h := decodeSize(t, filepath.Join(root, "featured_images", ".thumbnails", "peak.jpg", "peak-100x100.jpg"))
	assert.Equal(t, 100, w)
	assert.Equal(t, 100, h)

	// second call finds the existing file
	assert.Equal(t, got, th.Thumbnail("featured_images/peak.jpg", 100, 100, DefaultOptions()))
}

func TestThumbnail_KeepsAspectRatioForZeroDimension(t *testing.T) {
	th, _, root := setup(t)
	writeImage(t, root, "peak.png", 400, 200)

	got := th.Thumbnail("peak.png", 200, 0, DefaultOptions())
	assert.Equal(t, ".thumbnails/peak.png/peak-200x0.png", got)

	w, h := decodeSize(t, filepath.Join(root, ".thumbnails", "peak.png", "peak-200x0.png"))
	assert.Equal(t, 200, w)
	assert.Equal(t, 100, h)
}

func TestThumbnail_NoUpscale(t *testing.T) {
	th, _, root := setup(t)
	writeImage(t, root, "small.jpg", 50, 40)

	opts := DefaultOptions()
	opts.Upscale = false
	got := th.Thumbnail("small.jpg", 500, 400, opts)
	assert.Equal(t, ".thumbnails/small.jpg/small-500x400-no-upscale.jpg", got)

	w, h := decodeSize(t, filepath.Join(root, ".thumbnails", "small.jpg", "small-500x400-no-upscale.jpg"))
	assert.Equal(t, 50, w)
	assert.Equal(t, 40, h)
}

func TestThumbnail_NameCarriesFocalPointAndPadding(t *testing.T) {
	th, _, root := setup(t)
	writeImage(t, root, "wide.jpg", 300, 100)

	opts := DefaultOptions()
	opts.Left = 1.7
	opts.Top = 0.25
	opts.Padding = true
	opts.PaddingColor = "#000"
	got := th.Thumbnail("wide.jpg", 60, 60, opts)
	assert.True(t, strings.HasSuffix(got, "wide-60x60-1x0.25-padded-%23000.jpg"), got)
}

func TestThumbnail_RejectsUnsafeParameters(t *testing.T) {
	th, _, root := setup(t)
	writeImage(t, root, "gallery/peak.png", 40, 20)

	cases := []struct {
		name          string
		width, height int
		color         string
	}{
		{"traversal in padding colour", 10, 10, "/../../../../avatar/planted"},
		{"named colour", 10, 10, "red"},
		{"width over limit", 5000, 10, "#fff"},
		{"height over limit", 10, DefaultMaxSize + 1, "#fff"},
		{"negative width", -1, 10, "#fff"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.Padding = true
			opts.PaddingColor = tc.color
			assert.Equal(t, "gallery/peak.png", th.Thumbnail("gallery/peak.png", tc.width, tc.height, opts))
		})
	}

	_, err := os.Stat(filepath.Join(root, "avatar"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(root, "gallery", ".thumbnails"))
	assert.True(t, os.IsNotExist(err))
}

func TestThumbnail_MaxSizeIsConfigurable(t *testing.T) {
	th, _, root := setup(t)
	th.WithMaxSize(50)
	writeImage(t, root, "peak.png", 100, 100)

	assert.Equal(t, "peak.png", th.Thumbnail("peak.png", 60, 60, DefaultOptions()))
	assert.Equal(t, ".thumbnails/peak.png/peak-50x50.png", th.Thumbnail("peak.png", 50, 50, DefaultOptions()))
}

func TestThumbnail_ThumbStaysUnderSourceDirectory(t *testing.T) {
	th, _, root := setup(t)
	writeImage(t, root, "peak.png", 40, 40)

	got := th.Thumbnail("/media/gallery/../../peak.png", 20, 20, DefaultOptions())
	assert.Equal(t, ".thumbnails/peak.png/peak-20x20.png", got)
	_, err := os.Stat(filepath.Join(root, ".thumbnails", "peak.png", "peak-20x20.png"))
	assert.NoError(t, err)
}

func TestValidColor(t *testing.T) {
	for _, ok := range []string{"#fff", "fff", "#A0b1C2", "000000"} {
		assert.True(t, ValidColor(ok), ok)
	}
	for _, bad := range []string{"", "#ff", "#fffffff", "red", "#fff/..", "../fff"} {
		assert.False(t, ValidColor(bad), bad)
	}
}

func TestThumbnail_UndecodableReturnsOriginal(t *testing.T) {
	th, s, _ := setup(t)
	_, err := s.Save("broken.jpg", strings.NewReader("not an image"))
	require.NoError(t, err)

	assert.Equal(t, "broken.jpg", th.Thumbnail("broken.jpg", 10, 10, DefaultOptions()))
}

func TestFit_CropsToTargetRatio(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 300, 100))
	out := Fit(src, 50, 50, .5, .5)
	assert.Equal(t, 50, out.Bounds().Dx())
	assert.Equal(t, 50, out.Bounds().Dy())
}

func TestParseHexColor(t *testing.T) {
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, parseHexColor("#fff"))
	assert.Equal(t, color.NRGBA{R: 0x12, G: 0x34, B: 0x56, A: 255}, parseHexColor("#123456"))
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, parseHexColor("nope"))
}

func TestAdminThumb(t *testing.T) {
	th, _, root := setup(t)
	writeImage(t, root, "a.jpg", 40, 40)
	assert.Equal(t, `<img src="/media/.thumbnails/a.jpg/a-24x24.jpg">`, th.AdminThumb("a.jpg", 24, 24))
	assert.Equal(t, "", th.AdminThumb("", 24, 24))
}
