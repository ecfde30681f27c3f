// Package preview generates small thumbnail renditions of converted PNGs.
package preview

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"golang.org/x/image/draw"
)

// Thumbnail decodes a standard PNG and scales it so its longer edge is at
// most maxEdge pixels, preserving aspect ratio. Images already within the
// bound are re-encoded unscaled.
func Thumbnail(data []byte, maxEdge int) ([]byte, error) {
	if maxEdge < 1 {
		return nil, fmt.Errorf("preview: thumbnail edge must be positive, got %d", maxEdge)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("preview: decoding png: %w", err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width > maxEdge || height > maxEdge {
		newWidth, newHeight := fitWithin(width, height, maxEdge)
		scaled := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
		draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, bounds, draw.Over, nil)
		img = scaled
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("preview: encoding thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}

// fitWithin scales (width, height) down so both fit in maxEdge, keeping the
// aspect ratio and never returning a zero dimension.
func fitWithin(width, height, maxEdge int) (int, int) {
	if width >= height {
		newHeight := height * maxEdge / width
		if newHeight < 1 {
			newHeight = 1
		}
		return maxEdge, newHeight
	}
	newWidth := width * maxEdge / height
	if newWidth < 1 {
		newWidth = 1
	}
	return newWidth, maxEdge
}

// ThumbnailPath maps an output file to its preview sibling.
func ThumbnailPath(outputPath string) string {
	return outputPath + ".thumb.png"
}
