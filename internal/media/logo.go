package media

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

const (
	maxLogoDim  = 512
	webpQuality = 85
)

// ProcessLogo decodifica PNG/JPEG, ajusta para caber em 512x512
// mantendo proporção e reencoda em WebP, o formato único servido na
// página pública.
func ProcessLogo(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode logo: %w", err)
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("empty image")
	}

	if w > maxLogoDim || h > maxLogoDim {
		scale := float64(maxLogoDim) / float64(w)
		if h > w {
			scale = float64(maxLogoDim) / float64(h)
		}
		dstW := int(float64(w) * scale)
		dstH := int(float64(h) * scale)

		dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		src = dst
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, src, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}

	return buf.Bytes(), nil
}
