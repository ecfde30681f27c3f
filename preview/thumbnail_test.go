package preview

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func encodeTestPNG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 0x40, A: 0xff})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding test png: %v", err)
	}
	return buf.Bytes()
}

func decodeSize(t *testing.T, data []byte) (int, int) {
	t.Helper()

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decoding thumbnail: %v", err)
	}
	return img.Bounds().Dx(), img.Bounds().Dy()
}

func TestThumbnailScalesDown(t *testing.T) {
	tests := []struct {
		name       string
		width      int
		height     int
		maxEdge    int
		wantWidth  int
		wantHeight int
	}{
		{"landscape", 400, 200, 100, 100, 50},
		{"portrait", 200, 400, 100, 50, 100},
		{"square", 300, 300, 64, 64, 64},
		{"extreme aspect ratio", 1000, 2, 100, 100, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Thumbnail(encodeTestPNG(t, tt.width, tt.height), tt.maxEdge)
			if err != nil {
				t.Fatalf("Thumbnail: %v", err)
			}
			gotWidth, gotHeight := decodeSize(t, out)
			if gotWidth != tt.wantWidth || gotHeight != tt.wantHeight {
				t.Errorf("thumbnail size = %dx%d, want %dx%d",
					gotWidth, gotHeight, tt.wantWidth, tt.wantHeight)
			}
		})
	}
}

func TestThumbnailKeepsSmallImages(t *testing.T) {
	out, err := Thumbnail(encodeTestPNG(t, 40, 30), 256)
	if err != nil {
		t.Fatalf("Thumbnail: %v", err)
	}
	gotWidth, gotHeight := decodeSize(t, out)
	if gotWidth != 40 || gotHeight != 30 {
		t.Errorf("small image was scaled to %dx%d, want 40x30 unchanged", gotWidth, gotHeight)
	}
}

func TestThumbnailRejectsBadInput(t *testing.T) {
	if _, err := Thumbnail([]byte("not a png"), 100); err == nil {
		t.Error("expected an error for non-PNG data")
	}
	if _, err := Thumbnail(encodeTestPNG(t, 10, 10), 0); err == nil {
		t.Error("expected an error for a zero edge")
	}
}

func TestThumbnailPath(t *testing.T) {
	got := ThumbnailPath("/out/icons/app.png")
	want := "/out/icons/app.png.thumb.png"
	if got != want {
		t.Errorf("ThumbnailPath = %q, want %q", got, want)
	}
}
