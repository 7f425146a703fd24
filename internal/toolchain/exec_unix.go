//go:build unix

package toolchain

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// ExecutableOnPath stats path and checks the owner, group, or other
// executable bit is set — a check exec.LookPath itself already performs
// internally, done again here explicitly on the path Find is about to run.
func ExecutableOnPath(path string) error {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return err
	}
	if st.Mode&0o111 == 0 {
		return fmt.Errorf("%s has no executable bit set", path)
	}
	return nil
}
