//go:build !unix

package lines

import "github.com/edsrzf/mmap-go"

// adviseSequentialWillNeed is a no-op on platforms without madvise.
func adviseSequentialWillNeed(m mmap.MMap) {}
