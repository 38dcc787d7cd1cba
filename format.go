package memdl

import (
	"encoding/binary"
)

// Format is the executable-image format recognized by its magic bytes.
type Format int

const (
	FormatUnrecognized Format = iota
	FormatELF
	FormatMachO
	FormatPE
)

func (f Format) String() string {
	switch f {
	case FormatELF:
		return "ELF"
	case FormatMachO:
		return "Mach-O"
	case FormatPE:
		return "PE"
	default:
		return "unrecognized"
	}
}

// Arch is the target CPU architecture of an image.
type Arch int

const (
	ArchUnknown Arch = iota
	ArchX86
	ArchX86_64
	ArchARM
	ArchARM64
)

func (a Arch) String() string {
	switch a {
	case ArchX86:
		return "x86"
	case ArchX86_64:
		return "x86_64"
	case ArchARM:
		return "arm"
	case ArchARM64:
		return "arm64"
	default:
		return "unknown"
	}
}

const minImageSize = 4

var elfMagic = [4]byte{0x7F, 'E', 'L', 'F'}

var machoMagics = [...]uint32{
	0xFEEDFACE, // 32 bit
	0xFEEDFACF, // 64 bit
	0xCEFAEDFE, // 32 bit, swapped
	0xCFFAEDFE, // 64 bit, swapped
}

// elfArchs maps the byte at elfArchOffset.
var elfArchs = map[byte]Arch{
	1:   ArchX86,
	2:   ArchX86_64,
	40:  ArchARM,
	183: ArchARM64,
}

const elfArchOffset = 4

// Classify reports the format of data from its leading magic bytes only.
func Classify(data []byte) Format {
	if len(data) < minImageSize {
		return FormatUnrecognized
	}
	if [4]byte(data[:4]) == elfMagic {
		return FormatELF
	}
	magic := binary.LittleEndian.Uint32(data)
	for _, m := range machoMagics {
		if magic == m {
			return FormatMachO
		}
	}
	if data[0] == 'M' && data[1] == 'Z' {
		return FormatPE
	}
	return FormatUnrecognized
}

// Validate checks that data looks like a loadable image.
func Validate(data []byte) error {
	if len(data) < minImageSize {
		return inputError("validate", ErrInvalidData)
	}
	if Classify(data) == FormatUnrecognized {
		return &Error{Op: "validate", Kind: KindFormat, Err: ErrUnrecognizedFormat}
	}
	return nil
}

// DetectArch reports the architecture of data. It never fails: invalid images and
// non-ELF formats yield ArchUnknown.
func DetectArch(data []byte) Arch {
	if Validate(data) != nil || Classify(data) != FormatELF || len(data) <= elfArchOffset {
		return ArchUnknown
	}
	if a, ok := elfArchs[data[elfArchOffset]]; ok {
		return a
	}
	return ArchUnknown
}
