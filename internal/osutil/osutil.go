// Package osutil holds shared filesystem constants.
package osutil

const (
	DirPermission  = 0o755
	FilePermission = 0o644
)
