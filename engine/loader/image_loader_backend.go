package loader

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/Carmen-Shannon/oxy-tour/common"
)

type imageLoaderBackendImpl struct{}

var _ loaderBackend = &imageLoaderBackendImpl{}

func newImageLoaderBackend() loaderBackend {
	return &imageLoaderBackendImpl{}
}

func (b *imageLoaderBackendImpl) Supports(ext string) bool {
	switch ext {
	case ".png", ".jpg", ".jpeg", ".webp":
		return true
	}
	return false
}

func (b *imageLoaderBackendImpl) Decode(r io.Reader, maxSize int) (common.TextureStagingData, error) {
	src, format, err := image.Decode(r)
	if err != nil {
		return common.TextureStagingData{}, err
	}

	bounds := src.Bounds()
	w, h := fitWithin(bounds.Dx(), bounds.Dy(), maxSize)
	if w == 0 || h == 0 {
		return common.TextureStagingData{}, fmt.Errorf("%s image has no pixels", format)
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == bounds.Dx() && h == bounds.Dy() {
		draw.Draw(dst, dst.Bounds(), src, bounds.Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Src, nil)
	}

	return common.TextureStagingData{
		Pixels: dst.Pix,
		Width:  uint32(w),
		Height: uint32(h),
	}, nil
}

// fitWithin scales (w, h) down to fit a maxSize square while keeping the aspect ratio.
func fitWithin(w, h, maxSize int) (int, int) {
	if maxSize <= 0 || (w <= maxSize && h <= maxSize) {
		return w, h
	}
	if w >= h {
		return maxSize, max(1, h*maxSize/w)
	}
	return max(1, w*maxSize/h), maxSize
}
