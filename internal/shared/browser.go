package shared

import (
	"fmt"
	"os/exec"
	"runtime"
)

var getRuntime = func() string { return runtime.GOOS }

// OpenBrowser opens url in the default system browser.
//
// Used by the serve and preview commands to jump to the dashboard or an
// external search page. Covers macOS, Linux, and Windows.
func OpenBrowser(url string) error {
	var launcher *exec.Cmd
	switch rt := getRuntime(); rt {
	case "darwin":
		launcher = exec.Command("open", url)
	case "linux":
		launcher = exec.Command("xdg-open", url)
	case "windows":
		launcher = exec.Command("cmd", "/c", "start", url)
	default:
		return fmt.Errorf("unsupported platform: %s", rt)
	}

	if err := launcher.Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}
