package shop

import "sync/atomic"

// Theme preference is process-wide, not per-user; logout never resets it.

var themeDark atomic.Bool

func Theme() string {
	if themeDark.Load() {
		return "dark"
	}
	return "light"
}

// ToggleTheme flips the preference and returns the resulting theme.
func ToggleTheme() string {
	for {
		cur := themeDark.Load()
		if themeDark.CompareAndSwap(cur, !cur) {
			break
		}
	}
	return Theme()
}
