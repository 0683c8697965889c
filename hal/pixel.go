package hal

// RGB565 packs an 8-bit-per-channel color.
func RGB565(r, g, b uint8) uint16 {
	return uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
}

// RGB888 expands a packed color, replicating the high bits into the low ones
// so that full-scale channels map to 0xFF.
func RGB888(p uint16) (r, g, b uint8) {
	r5 := uint8(p >> 11 & 0x1F)
	g6 := uint8(p >> 5 & 0x3F)
	b5 := uint8(p & 0x1F)
	return r5<<3 | r5>>2, g6<<2 | g6>>4, b5<<3 | b5>>2
}

// PutRGB565Row stores row into dst little-endian, stopping at the end of dst.
func PutRGB565Row(dst []byte, row []uint16) {
	n := min(len(row), len(dst)/2)
	for i, c := range row[:n] {
		dst[2*i] = byte(c)
		dst[2*i+1] = byte(c >> 8)
	}
}

// SetRGB565 writes one pixel into an RGB565 framebuffer. Out-of-range
// coordinates and other formats are ignored.
func SetRGB565(fb Framebuffer, x, y int, p uint16) {
	if fb.Format() != PixelFormatRGB565 || x < 0 || y < 0 || x >= fb.Width() || y >= fb.Height() {
		return
	}
	buf := fb.Buffer()
	off := y*fb.StrideBytes() + x*2
	if off+1 >= len(buf) {
		return
	}
	buf[off] = byte(p)
	buf[off+1] = byte(p >> 8)
}

func fillRGB565(buf []byte, p uint16) {
	for i := 0; i+1 < len(buf); i += 2 {
		buf[i] = byte(p)
		buf[i+1] = byte(p >> 8)
	}
}
