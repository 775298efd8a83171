//go:build darwin

package platform

import (
	"fmt"
	"os/exec"
)

// Notify displays a desktop notification using macOS Notification Center.
// Notification Center has no icon or timeout control from AppleScript, so
// only the category is shown, as the subtitle.
func Notify(title, body string, opts Options) error {
	script := fmt.Sprintf("display notification %q with title %q", body, title)
	if opts.Category != "" {
		script += fmt.Sprintf(" subtitle %q", opts.Category)
	}
	return exec.Command("osascript", "-e", script).Run()
}
