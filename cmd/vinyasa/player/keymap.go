package player

// Key binding constants used in handleKey.
const (
	KeyQuit    = "q"
	KeyCtrlC   = "ctrl+c"
	KeyEsc     = "esc"
	KeySpace   = " "
	KeyEnter   = "enter"
	KeyRight   = "right"
	KeyLeft    = "left"
	KeyNext    = "n"
	KeyPrev    = "p"
	KeyL       = "l"
	KeyH       = "h"
	KeyRestart = "r"
	KeyDetails = "d"
)
