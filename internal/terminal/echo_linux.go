package terminal

import "golang.org/x/sys/unix"

// setEcho flips only the ECHO bit of the terminal attributes, keeping
// canonical (line) mode so local input stays line-buffered.
func setEcho(fd int, enabled bool) error {
	tio, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return err
	}
	if enabled {
		tio.Lflag |= unix.ECHO
	} else {
		tio.Lflag &^= unix.ECHO
	}
	return unix.IoctlSetTermios(fd, unix.TCSETS, tio)
}
