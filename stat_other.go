//go:build !linux && !darwin

package filefind

import "os"

// Platforms without a usable Stat_t only see the portable fields; the
// access and ownership directives will treat every file as uid/gid 0.
func fillSys(info *Info, fi os.FileInfo) {
	info.Atime = fi.ModTime()
	info.Ctime = fi.ModTime()
}
