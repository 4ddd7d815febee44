package lines

import (
	"bytes"
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"

	"github.com/go-line-cardinality/cuniq/internal/fs"
)

// ErrNotRegularFile is returned by [WalkMmap] when f is not backed by an
// *os.File (e.g. the [fs.FS] implementation swapped in a non-file reader).
var ErrNotRegularFile = fmt.Errorf("mmap: not backed by a regular *os.File")

// WalkMmap memory-maps f (which must be a regular, seekable file) and
// invokes fn once per line, identically to [Walk]. Where the platform
// supports it, the kernel is advised that the mapping will be read
// sequentially and needed immediately; advise failures are non-fatal.
func WalkMmap(f fs.File, fn func(line []byte) error) error {
	osFile, ok := f.(*os.File)
	if !ok {
		return ErrNotRegularFile
	}

	info, err := f.Stat()
	if err != nil {
		return err
	}

	if info.Size() == 0 {
		return nil
	}

	m, err := mmap.Map(osFile, mmap.RDONLY, 0)
	if err != nil {
		return err
	}
	defer m.Unmap()

	adviseSequentialWillNeed(m)

	data := []byte(m)

	for len(data) > 0 {
		idx := bytes.IndexByte(data, '\n')
		if idx < 0 {
			return fn(data)
		}

		if err := fn(data[:idx]); err != nil {
			return err
		}

		data = data[idx+1:]
	}

	return nil
}
