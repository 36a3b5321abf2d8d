package site

import (
	"os/exec"
	"runtime"
)

// OpenBrowser opens url in the default browser. Failures are ignored since
// the caller has already printed the address.
func OpenBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	_ = cmd.Start()
}
