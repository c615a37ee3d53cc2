//go:build linux

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
	info.Atime = time.Unix(st.Atim.Sec, st.Atim.Nsec)
	info.Ctime = time.Unix(st.Ctim.Sec, st.Ctim.Nsec)
}
