// internal/api/blog/thumbs.go
package blog

import (
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/image/draw"
)

const thumbJPEGQuality = 95

func writeFile(path string, src io.Reader) error {
	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(path)
		return err
	}
	return dst.Close()
}

// writeThumbnail scales the stored image down so its longer side is at most
// maxSize pixels, preserving aspect ratio. Images already small enough are
// copied unscaled.
func writeThumbnail(srcPath, dstPath string, maxSize int) error {
	f, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return err
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width > maxSize || height > maxSize {
		if width >= height {
			height = height * maxSize / width
			width = maxSize
		} else {
			width = width * maxSize / height
			height = maxSize
		}
		if width < 1 {
			width = 1
		}
		if height < 1 {
			height = 1
		}
		scaled := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, bounds, draw.Over, nil)
		img = scaled
	}

	out, err := os.Create(dstPath)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(srcPath)) {
	case ".png":
		err = png.Encode(out, img)
	default:
		err = jpeg.Encode(out, img, &jpeg.Options{Quality: thumbJPEGQuality})
	}
	if err != nil {
		out.Close()
		os.Remove(dstPath)
		return err
	}
	return out.Close()
}

func removeUpload(name string, logger *zerolog.Logger) {
	for _, file := range []string{name, "thumb_" + name} {
		path := filepath.Join(appConfig.Uploads.Dir, file)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			logger.Warn().Err(err).Str("path", path).Msg("Failed to remove upload")
		}
	}
}
