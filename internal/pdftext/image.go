// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdftext

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"golang.org/x/image/draw"
)

// Defaults for vision submission: bounded longest edge and moderate JPEG
// quality keep the upload small without losing headline text legibility.
const (
	DefaultMaxEdge     = 1536
	DefaultJPEGQuality = 75
)

// PageImage renders the given 1-based page as a JPEG suitable for
// multimodal inference. Scanned periodicals store each page as one large
// image XObject; the largest image on the page is taken as the page
// raster, downscaled to maxEdge on its longest side.
func PageImage(path string, pageNr, maxEdge, quality int) ([]byte, error) {
	if maxEdge <= 0 {
		maxEdge = DefaultMaxEdge
	}
	if quality <= 0 {
		quality = DefaultJPEGQuality
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return nil, fmt.Errorf("pdfcpu read: %w", err)
	}
	if pageNr < 1 || pageNr > ctx.PageCount {
		return nil, fmt.Errorf("page %d out of range (1-%d)", pageNr, ctx.PageCount)
	}

	images, err := pdfcpu.ExtractPageImages(ctx, pageNr, false)
	if err != nil {
		return nil, fmt.Errorf("extracting page images: %w", err)
	}
	if len(images) == 0 {
		return nil, fmt.Errorf("page %d has no image content", pageNr)
	}

	// Largest payload wins: page scans dwarf logos and ornaments.
	var raw []byte
	for _, img := range images {
		data, err := io.ReadAll(img)
		if err != nil {
			continue
		}
		if len(data) > len(raw) {
			raw = data
		}
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("page %d image streams unreadable", pageNr)
	}

	decoded, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decoding page image: %w", err)
	}

	return encodeJPEG(shrink(decoded, maxEdge), quality)
}

// shrink scales img so its longest edge is at most maxEdge, preserving
// aspect ratio. Images already within bounds pass through untouched.
func shrink(img image.Image, maxEdge int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxEdge && h <= maxEdge {
		return img
	}

	ratio := float64(maxEdge) / float64(w)
	if h > w {
		ratio = float64(maxEdge) / float64(h)
	}
	dst := image.NewRGBA(image.Rect(0, 0, int(float64(w)*ratio), int(float64(h)*ratio)))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encoding JPEG: %w", err)
	}
	return buf.Bytes(), nil
}
