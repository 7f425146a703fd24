//go:build !unix

package toolchain

// ExecutableOnPath is a no-op on non-POSIX hosts: exec.LookPath's own
// extension/ACL checks are what Windows actually enforces.
func ExecutableOnPath(path string) error { return nil }
