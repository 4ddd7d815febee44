//go:build unix

package lines

import (
	"github.com/edsrzf/mmap-go"
	"golang.org/x/sys/unix"
)

// adviseSequentialWillNeed hints to the kernel that m will be read
// sequentially and should be paged in eagerly. Advise failures are
// informational only: the mapping still works without the hint, so
// callers never see these errors.
func adviseSequentialWillNeed(m mmap.MMap) {
	_ = unix.Madvise(m, unix.MADV_SEQUENTIAL)
	_ = unix.Madvise(m, unix.MADV_WILLNEED)
}
