//go:build darwin

package filefind

import (
	"os"
	"syscall"
	"time"
)

func fillSys(info *Info, fi os.FileInfo) {
	st, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		info.Atime = fi.ModTime()
		info.Ctime = fi.ModTime()
		return
	}
	info.UID = st.Uid
	info.GID = st.Gid
	info.Atime = time.Unix(st.Atimespec.Sec, st.Atimespec.Nsec)
	info.Ctime = time.Unix(st.Ctimespec.Sec, st.Ctimespec.Nsec)
}
