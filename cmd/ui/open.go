package ui

import (
	"os/exec"
	"runtime"
)

// openURL hands a URL (or app deep link) to the OS. Errors are ignored:
// there is no reliable signal of whether anything handled the link, which
// is exactly why the web fallback exists.
func openURL(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	_ = cmd.Start()
}
