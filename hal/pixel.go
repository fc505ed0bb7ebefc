package hal

// RGB565 packs an 8-bit-per-channel color into the framebuffer encoding.
func RGB565(r, g, b uint8) uint16 {
	return uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
}

// RGB888 expands an RGB565 pixel, replicating the high bits into the low
// ones so that full-scale channels map to 0xFF.
func RGB888(p uint16) (r, g, b uint8) {
	r5 := uint8(p>>11) & 0x1F
	g6 := uint8(p>>5) & 0x3F
	b5 := uint8(p) & 0x1F
	return r5<<3 | r5>>2, g6<<2 | g6>>4, b5<<3 | b5>>2
}

// swapRGB565 converts little-endian RGB565 pixels in src into the
// big-endian byte order the panel controller expects.
func swapRGB565(dst, src []byte) int {
	n := min(len(dst), len(src)) &^ 1
	for i := 0; i < n; i += 2 {
		dst[i], dst[i+1] = src[i+1], src[i]
	}
	return n
}
