package display

import (
	"fmt"
	"os"

	"github.com/imgtools/imgslim/internal/logging"
)

// PrintBanner prints the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner() {
	if logging.Magenta != "" {
		fmt.Fprint(os.Stdout, "\033[1;95m")
	}
	fmt.Fprint(os.Stdout, ` _                     _ _
(_)_ __ ___   __ _ ___| (_)_ __ ___
| | '_ ` + "`" + ` _ \ / _` + "`" + ` / __| | | '_ ` + "`" + ` _ \
| | | | | | | (_| \__ \ | | | | | | |
|_|_| |_| |_|\__, |___/_|_|_| |_| |_|
             |___/
`)
	if logging.Magenta != "" {
		fmt.Fprintln(os.Stdout, logging.NC)
	}
}
