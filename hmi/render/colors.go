package render

// Panel colours, RGB565.
const (
	Black       Color = 0x0000
	Navy        Color = 0x000F
	DarkGreen   Color = 0x03E0
	Maroon      Color = 0x7800
	Purple      Color = 0x780F
	DarkPurple  Color = 0x3006
	LightGrey   Color = 0xD69A
	DarkGrey    Color = 0x7BEF
	Blue        Color = 0x001F
	Green       Color = 0x07E0
	Cyan        Color = 0x07FF
	Red         Color = 0xF800
	Magenta     Color = 0xF81F
	Yellow      Color = 0xFFE0
	White       Color = 0xFFFF
	Orange      Color = 0xFDA0
	GreenYellow Color = 0xB7E0
	Pink        Color = 0xFE19
	SkyBlue     Color = 0x867D
	Silver      Color = 0xC618
	Emerald     Color = 0x564F

	// DarkBlue is the waterfall background for empty bins.
	DarkBlue Color = 0x0809
	// Shadow is the scale band under the tuning marker.
	Shadow Color = 0x18C3

	Background = Black
)
