//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"fmt"
	"image"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// rootScreenshot reads the pixels of the default screen's root window.
func rootScreenshot() (*image.RGBA, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("x11 connect: %w", err)
	}
	defer conn.Close()

	setup := xproto.Setup(conn)
	screen := setup.DefaultScreen(conn)
	w, h := int(screen.WidthInPixels), int(screen.HeightInPixels)
	reply, err := xproto.GetImage(conn, xproto.ImageFormatZPixmap, xproto.Drawable(screen.Root),
		0, 0, uint16(w), uint16(h), ^uint32(0)).Reply()
	if err != nil {
		return nil, fmt.Errorf("x11 get image: %w", err)
	}
	bpp := 0
	for _, f := range setup.PixmapFormats {
		if f.Depth == reply.Depth {
			bpp = int(f.BitsPerPixel)
			break
		}
	}
	return zpixmapToRGBA(reply.Data, w, h, bpp)
}

// zpixmapToRGBA converts little-endian BGRx rows to RGBA. Alpha is forced
// opaque; root windows carry no meaningful alpha.
func zpixmapToRGBA(data []byte, w, h, bpp int) (*image.RGBA, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("x11 image has empty geometry")
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("unsupported x11 pixel format %d bpp", bpp)
	}
	stride := len(data) / h
	if stride*h != len(data) || stride < w*bpp/8 {
		return nil, fmt.Errorf("x11 image: unexpected stride")
	}
	px := bpp / 8
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		row := data[y*stride:]
		for x := 0; x < w; x++ {
			s := row[x*px:]
			o := img.PixOffset(x, y)
			img.Pix[o+0] = s[2]
			img.Pix[o+1] = s[1]
			img.Pix[o+2] = s[0]
			img.Pix[o+3] = 0xFF
		}
	}
	return img, nil
}
