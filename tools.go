package memdl

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ZenLiuCN/fn"
	"github.com/cespare/xxhash/v2"
)

// Image is a read-only view over the bytes of a shared library.
type Image []byte

func (i Image) Format() Format  { return Classify(i) }
func (i Image) Arch() Arch      { return DetectArch(i) }
func (i Image) Validate() error { return Validate(i) }
func (i Image) Digest() string  { return Digest(i) }

// Digest is a short content hash of data, used to tell loaded images apart in logs.
func Digest(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}

// ReadImage reads a whole file into an Image, the way a caller would obtain library bytes.
func ReadImage(path string) (img Image, err error) {
	var f *os.File
	if f, err = os.Open(path); err != nil {
		return
	}
	defer fn.IgnoreClose(f)
	var b []byte
	if b, err = io.ReadAll(f); err != nil {
		return
	}
	return b, nil
}

// Info describes an image without loading it.
type Info struct {
	Size   int
	Format Format
	Arch   Arch
	Digest string
	Err    error // validation failure, nil when loadable
}

// Inspect collects the Info of data.
func Inspect(data []byte) *Info {
	return &Info{
		Size:   len(data),
		Format: Classify(data),
		Arch:   DetectArch(data),
		Digest: Digest(data),
		Err:    Validate(data),
	}
}

func (i Info) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("size:\t%d\n", i.Size))
	s.WriteString(fmt.Sprintf("format:\t%s\n", i.Format))
	s.WriteString(fmt.Sprintf("arch:\t%s\n", i.Arch))
	s.WriteString(fmt.Sprintf("digest:\t%s\n", i.Digest))
	if i.Err != nil {
		s.WriteString(fmt.Sprintf("error:\t%s\n", i.Err))
	}
	return s.String()
}
