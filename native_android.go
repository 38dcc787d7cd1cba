//go:build android

package memdl

import (
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
	"golang.org/x/sys/unix"
)

const (
	dlextUseLibraryFD = 0x10 // ANDROID_DLEXT_USE_LIBRARY_FD
	propValueMax      = 92   // PROP_VALUE_MAX
)

// dlextinfo mirrors android_dlextinfo from <android/dlext.h>.
type dlextinfo struct {
	flags            uint64
	reservedAddr     uintptr
	reservedSize     uintptr
	relroFD          int32
	libraryFD        int32
	libraryFDOffset  int64
	libraryNamespace uintptr
}

type bionicAPI struct {
	dlopenExt   uintptr
	dlerror     uintptr
	propertyGet uintptr
}

var (
	bionicOnce sync.Once
	bionic     bionicAPI
	bionicErr  error
)

func getBionicAPI() (*bionicAPI, error) {
	bionicOnce.Do(func() {
		var dl, c uintptr
		if dl, bionicErr = purego.Dlopen("libdl.so", purego.RTLD_NOW|purego.RTLD_GLOBAL); bionicErr != nil {
			return
		}
		if bionic.dlopenExt, bionicErr = purego.Dlsym(dl, "android_dlopen_ext"); bionicErr != nil {
			return
		}
		if bionic.dlerror, bionicErr = purego.Dlsym(dl, "dlerror"); bionicErr != nil {
			return
		}
		if c, bionicErr = purego.Dlopen("libc.so", purego.RTLD_NOW|purego.RTLD_GLOBAL); bionicErr != nil {
			return
		}
		bionic.propertyGet, bionicErr = purego.Dlsym(c, "__system_property_get")
	})
	if bionicErr != nil {
		return nil, bionicErr
	}
	return &bionic, nil
}

// androidNative adds android_dlopen_ext on top of plain dlopen.
type androidNative struct {
	dlNative
}

func (androidNative) OpenFD(fd int, path string, flags Flag) (uintptr, error) {
	api, err := getBionicAPI()
	if err != nil {
		return 0, fmt.Errorf("resolve android_dlopen_ext: %w", err)
	}
	cPath, err := unix.BytePtrFromString(path)
	if err != nil {
		return 0, err
	}
	info := &dlextinfo{
		flags:     dlextUseLibraryFD,
		libraryFD: int32(fd),
	}
	h, _, _ := purego.SyscallN(api.dlopenExt,
		uintptr(unsafe.Pointer(cPath)),
		uintptr(dlFlags(flags)),
		uintptr(unsafe.Pointer(info)))
	runtime.KeepAlive(cPath)
	runtime.KeepAlive(info)
	if h == 0 {
		return 0, bionicError(api, "android_dlopen_ext failed")
	}
	return h, nil
}

func bionicError(api *bionicAPI, fallback string) error {
	p, _, _ := purego.SyscallN(api.dlerror)
	if p == 0 {
		return errors.New(fallback)
	}
	if msg := unix.BytePtrToString((*byte)(unsafe.Pointer(p))); msg != "" {
		return errors.New(msg)
	}
	return errors.New(fallback)
}

// systemSDK reads ro.build.version.sdk, zero when it can't be read.
func systemSDK() int {
	api, err := getBionicAPI()
	if err != nil {
		return 0
	}
	name, _ := unix.BytePtrFromString("ro.build.version.sdk")
	value := make([]byte, propValueMax)
	n, _, _ := purego.SyscallN(api.propertyGet,
		uintptr(unsafe.Pointer(name)),
		uintptr(unsafe.Pointer(&value[0])))
	runtime.KeepAlive(name)
	if int32(n) <= 0 {
		return 0
	}
	sdk, err := strconv.Atoi(string(value[:n]))
	if err != nil {
		return 0
	}
	return sdk
}
