package thumbnail

import (
	"fmt"
	"html"
	"image"
	"image/color"
	"math"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"

	"simplifytour/pkg/logger"
	"simplifytour/pkg/storage"
)

type Options struct {
	Upscale      bool
	Quality      int
	Left         float64
	Top          float64
	Padding      bool
	PaddingColor string
}

func DefaultOptions() Options {
	return Options{
		Upscale:      true,
		Quality:      95,
		Left:         .5,
		Top:          .5,
		PaddingColor: "#fff",
	}
}

// DefaultMaxSize bounds the width and height of generated thumbnails.
const DefaultMaxSize = 2000

var hexColor = regexp.MustCompile(`^#?([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidColor reports whether s is a #rgb or #rrggbb padding colour.
func ValidColor(s string) bool {
	return hexColor.MatchString(s)
}

type Thumbnailer struct {
	storage  storage.Storage
	mediaURL string
	dirName  string
	maxSize  int
	log      logger.Logger
}

func New(s storage.Storage, mediaURL, dirName string, log logger.Logger) *Thumbnailer {
	return &Thumbnailer{storage: s, mediaURL: mediaURL, dirName: dirName, maxSize: DefaultMaxSize, log: log}
}

// WithMaxSize sets the largest width or height a thumbnail may be generated at.
func (t *Thumbnailer) WithMaxSize(n int) *Thumbnailer {
	if n > 0 {
		t.maxSize = n
	}
	return t
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func clamp(f float64) float64 {
	return math.Min(1, math.Max(0, f))
}

// Thumbnail resizes the image at imageURL on first request and returns the
// media-relative URL of the result. A zero width or height keeps the source
// aspect ratio. Any failure yields the original URL.
func (t *Thumbnailer) Thumbnail(imageURL string, width, height int, opts Options) string {
	if imageURL == "" {
		return ""
	}

	if unescaped, err := url.PathUnescape(imageURL); err == nil {
		imageURL = unescaped
	}
	imageURL = strings.SplitN(imageURL, "?", 2)[0]
	imageURL = strings.TrimPrefix(imageURL, t.mediaURL)
	imageURL = strings.TrimPrefix(path.Clean("/"+imageURL), "/")
	if imageURL == "" {
		return ""
	}
	if width < 0 || height < 0 || width > t.maxSize || height > t.maxSize {
		return imageURL
	}
	if opts.Padding && !ValidColor(opts.PaddingColor) {
		return imageURL
	}

	imageDir, imageName := path.Split(imageURL)
	imageExt := path.Ext(imageName)
	imagePrefix := strings.TrimSuffix(imageName, imageExt)
	format := imaging.JPEG
	switch strings.ToLower(imageExt) {
	case ".png":
		format = imaging.PNG
	case ".gif":
		format = imaging.GIF
	}

	thumbName := fmt.Sprintf("%s-%dx%d", imagePrefix, width, height)
	if !opts.Upscale {
		thumbName += "-no-upscale"
	}
	left, top := opts.Left, opts.Top
	if left != .5 || top != .5 {
		left, top = clamp(left), clamp(top)
		thumbName = fmt.Sprintf("%s-%sx%s", thumbName, formatFloat(left), formatFloat(top))
	}
	if opts.Padding {
		thumbName += "-padded-" + opts.PaddingColor
	}
	thumbName += imageExt

	thumbDir := path.Join(imageDir, t.dirName, imageName)
	thumbStorageName := path.Join(thumbDir, thumbName)
	if path.Dir(thumbStorageName) != thumbDir {
		return imageURL
	}
	thumbURL := fmt.Sprintf("%s/%s/%s", t.dirName, url.PathEscape(imageName), url.PathEscape(thumbName))
	if dir := strings.TrimSuffix(imageDir, "/"); dir != "" {
		thumbURL = dir + "/" + thumbURL
	}

	if t.storage.Exists(thumbStorageName) {
		return thumbURL
	}
	if !t.storage.Exists(imageURL) {
		return imageURL
	}

	f, err := t.storage.Open(imageURL)
	if err != nil {
		return imageURL
	}
	img, err := imaging.Decode(f, imaging.AutoOrientation(true))
	f.Close()
	if err != nil {
		return imageURL
	}

	fromWidth, fromHeight := img.Bounds().Dx(), img.Bounds().Dy()
	toWidth, toHeight := width, height
	if !opts.Upscale {
		toWidth = min(toWidth, fromWidth)
		toHeight = min(toHeight, fromHeight)
	}
	if toWidth == 0 {
		toWidth = fromWidth * toHeight / fromHeight
	} else if toHeight == 0 {
		toHeight = fromHeight * toWidth / fromWidth
	}
	if toWidth <= 0 || toHeight <= 0 {
		return imageURL
	}

	if opts.Padding {
		img = pad(img, toWidth, toHeight, parseHexColor(opts.PaddingColor))
	}
	thumb := Fit(img, toWidth, toHeight, left, top)

	if err := t.write(thumbStorageName, thumb, format, opts.Quality); err != nil {
		t.log.Warn("thumbnail generation failed for ", imageURL, ": ", err)
		return imageURL
	}
	return thumbURL
}

func (t *Thumbnailer) write(name string, img image.Image, format imaging.Format, quality int) error {
	full := t.storage.Path(name)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	out, err := os.Create(full)
	if err != nil {
		return err
	}
	if err := imaging.Encode(out, img, format, imaging.JPEGQuality(quality)); err != nil {
		out.Close()
		os.Remove(full)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(full)
		return err
	}
	return nil
}

// Fit crops img to the target aspect ratio around the (left, top) focal
// point and resizes it to exactly width x height.
func Fit(img image.Image, width, height int, left, top float64) *image.NRGBA {
	b := img.Bounds()
	fromWidth, fromHeight := b.Dx(), b.Dy()
	liveRatio := float64(fromWidth) / float64(fromHeight)
	outRatio := float64(width) / float64(height)

	cropWidth, cropHeight := fromWidth, fromHeight
	if liveRatio > outRatio {
		cropWidth = int(math.Round(outRatio * float64(fromHeight)))
	} else if liveRatio < outRatio {
		cropHeight = int(math.Round(float64(fromWidth) / outRatio))
	}

	x := b.Min.X + int(float64(fromWidth-cropWidth)*left)
	y := b.Min.Y + int(float64(fromHeight-cropHeight)*top)
	cropped := imaging.Crop(img, image.Rect(x, y, x+cropWidth, y+cropHeight))
	return imaging.Resize(cropped, width, height, imaging.Lanczos)
}

// pad centres img on a background matching the target aspect ratio.
func pad(img image.Image, toWidth, toHeight int, bg color.Color) image.Image {
	fromWidth, fromHeight := img.Bounds().Dx(), img.Bounds().Dy()
	fromRatio := float64(fromWidth) / float64(fromHeight)
	toRatio := float64(toWidth) / float64(toHeight)

	switch {
	case toRatio < fromRatio:
		padHeight := int(float64(toHeight) * (float64(fromWidth) / float64(toWidth)))
		canvas := imaging.New(fromWidth, padHeight, bg)
		return imaging.Paste(canvas, img, image.Pt(0, (padHeight-fromHeight)/2))
	case toRatio > fromRatio:
		padWidth := int(float64(toWidth) * (float64(fromHeight) / float64(toHeight)))
		canvas := imaging.New(padWidth, fromHeight, bg)
		return imaging.Paste(canvas, img, image.Pt((padWidth-fromWidth)/2, 0))
	}
	return img
}

// parseHexColor accepts #rgb and #rrggbb, defaulting to white.
func parseHexColor(s string) color.NRGBA {
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	s = strings.TrimPrefix(s, "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return white
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return white
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

// AdminThumb renders the listing thumbnail used by the admin screens.
func (t *Thumbnailer) AdminThumb(imageURL string, width, height int) string {
	if imageURL == "" {
		return ""
	}
	thumbURL := t.Thumbnail(imageURL, width, height, DefaultOptions())
	return fmt.Sprintf(`<img src="%s%s">`, t.mediaURL, html.EscapeString(thumbURL))
}
