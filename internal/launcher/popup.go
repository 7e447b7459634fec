package launcher

import "fmt"

// Fixed popup size in pixels.
const (
	PopupWidth  = 1200
	PopupHeight = 900
)

// Geometry places a popup window on screen.
type Geometry struct {
	Width  int
	Height int
	Left   int
	Top    int
}

// CenteredPopup centers a 1200x900 window horizontally and puts it a quarter
// of the spare height from the top. Offsets never go negative on small screens.
func CenteredPopup(screenWidth, screenHeight int) Geometry {
	return Geometry{
		Width:  PopupWidth,
		Height: PopupHeight,
		Left:   max(0, (screenWidth-PopupWidth)/2),
		Top:    max(0, (screenHeight-PopupHeight)/4),
	}
}

// Features renders the window feature list for a chrome-less popup.
func (g Geometry) Features() string {
	return fmt.Sprintf(
		"toolbar=no, location=no, directories=no, status=no, menubar=no, scrollbars=no, resizable=no, copyhistory=no, width=%d, height=%d, top=%d, left=%d",
		g.Width, g.Height, g.Top, g.Left,
	)
}
