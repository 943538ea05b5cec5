package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	_ "image/gif"
	_ "image/jpeg"

	xdraw "golang.org/x/image/draw"
)

// Normalize decodes raw image bytes and produces a PNG of exactly
// width x height. The source is scaled to cover the target rectangle and
// cropped centrally, so aspect ratio is preserved without letterboxing.
func Normalize(data []byte, width, height int) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("imaging: invalid target size %dx%d", width, height)
	}
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("imaging: decode: %w", err)
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, coverRect(src.Bounds(), width, height), xdraw.Src, nil)

	buf := &bytes.Buffer{}
	if err := png.Encode(buf, dst); err != nil {
		return nil, fmt.Errorf("imaging: encode: %w", err)
	}
	return buf.Bytes(), nil
}

// coverRect selects the centered source region whose aspect ratio matches
// the target, comparing ratios via cross products to stay in integers.
func coverRect(b image.Rectangle, tw, th int) image.Rectangle {
	sw, sh := b.Dx(), b.Dy()
	if sw*th > sh*tw {
		// Source is wider than the target: crop the width.
		cw := sh * tw / th
		if cw < 1 {
			cw = 1
		}
		x0 := b.Min.X + (sw-cw)/2
		return image.Rect(x0, b.Min.Y, x0+cw, b.Max.Y)
	}
	ch := sw * th / tw
	if ch < 1 {
		ch = 1
	}
	y0 := b.Min.Y + (sh-ch)/2
	return image.Rect(b.Min.X, y0, b.Max.X, y0+ch)
}
