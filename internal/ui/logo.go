package ui

import (
	"os/exec"
	"strings"
	"sync"
)

// logoText renders the lantern wordmark with figlet when it is installed and
// falls back to plain text. The result is computed once per process.
var logoText = sync.OnceValue(func() string {
	output, err := exec.Command("figlet", "-f", "slant", "lantern").Output()
	if err == nil {
		if art := strings.TrimRight(string(output), "\n "); strings.TrimSpace(art) != "" {
			return art
		}
	}
	return "L A N T E R N"
})
