//go:build viewport_debug

package viewport

const debugInvariants = true
