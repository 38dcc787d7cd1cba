package memdl

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
)

const (
	// MemFDName is the name memfd_create(2) descriptors get, visible in /proc/<pid>/fd.
	MemFDName = "memdl_lib"
	// AndroidMemFDSDK is the first Android API level with memfd loading through android_dlopen_ext.
	AndroidMemFDSDK = 24
	// AndroidPseudoPath is the name android_dlopen_ext records for descriptor loaded libraries.
	AndroidPseudoPath = "/memfd"
	// TempPattern is the file name pattern of staging files, a random part replaces '*'.
	TempPattern = "memdl-*"
)

// Env is what a Strategy loads through.
type Env struct {
	Native Native
	Logger *zap.Logger
	// Leaked is called for each staging file that could not be removed, may be nil.
	Leaked func(path string, err error)
}

func (e *Env) log() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

func (e *Env) leaked(path string, err error) {
	e.log().Warn("staging file not removed", zap.String("path", path), zap.Error(err))
	if e.Leaked != nil {
		e.Leaked(path, err)
	}
}

// Strategy turns image bytes into a native handle by one mechanism.
//
// path is the file or pseudo path the native loader was given.
type Strategy interface {
	Name() string
	Load(env *Env, data []byte, flags Flag) (handle uintptr, path string, err error)
}

// MemFD loads from an anonymous memory backed descriptor through /proc/self/fd.
type MemFD struct {
	// Create replaces memfd_create(2), nil uses the real syscall.
	Create func(name string) (int, error)
}

func (MemFD) Name() string { return "memfd" }

func (m MemFD) Load(env *Env, data []byte, flags Flag) (h uintptr, path string, err error) {
	var fd int
	if fd, err = createMemFD(m.Create, data); err != nil {
		return
	}
	path = fdPath(fd)
	h, err = env.Native.Open(path, flags)
	// the mapping outlives the descriptor
	if cerr := closeFD(fd); cerr != nil {
		env.log().Debug("close memfd", zap.Int("fd", fd), zap.Error(cerr))
	}
	if err == nil && h == 0 {
		err = errors.New("dlopen returned a nil handle")
	}
	return
}

// createMemFD returns a descriptor holding all of data, rewound to its start.
func createMemFD(create func(string) (int, error), data []byte) (fd int, err error) {
	if create == nil {
		create = memfdCreate
	}
	if fd, err = create(MemFDName); err != nil {
		return -1, fmt.Errorf("memfd_create: %w", err)
	}
	if err = writeFD(fd, data); err == nil {
		err = rewindFD(fd)
	}
	if err != nil {
		_ = closeFD(fd)
		return -1, fmt.Errorf("write memfd: %w", err)
	}
	return
}

// AndroidExt hands an anonymous memory backed descriptor to android_dlopen_ext.
type AndroidExt struct {
	// MinSDK gates the strategy at runtime, see AndroidMemFDSDK.
	MinSDK int
	// SDK replaces reading ro.build.version.sdk, nil reads the system property.
	SDK func() int
	// Create replaces memfd_create(2), nil uses the real syscall.
	Create func(name string) (int, error)
}

func (AndroidExt) Name() string { return "android_dlopen_ext" }

func (a AndroidExt) Load(env *Env, data []byte, flags Flag) (h uintptr, path string, err error) {
	sdk := a.SDK
	if sdk == nil {
		sdk = systemSDK
	}
	if v := sdk(); v < a.MinSDK {
		return 0, "", fmt.Errorf("api level %d below %d: %w", v, a.MinSDK, ErrUnsupported)
	}
	opener, ok := env.Native.(FDOpener)
	if !ok {
		return 0, "", fmt.Errorf("descriptor loading: %w", ErrUnsupported)
	}
	var fd int
	if fd, err = createMemFD(a.Create, data); err != nil {
		return
	}
	path = AndroidPseudoPath
	h, err = opener.OpenFD(fd, path, flags)
	if cerr := closeFD(fd); cerr != nil {
		env.log().Debug("close memfd", zap.Int("fd", fd), zap.Error(cerr))
	}
	if err == nil && h == 0 {
		err = errors.New("android_dlopen_ext returned a nil handle")
	}
	return
}

var (
	writeStaging = func(f *os.File, data []byte) error {
		_, err := f.Write(data)
		return err
	}
	// removeLater deletes path once nothing holds it, ErrUnsupported where the platform can't.
	removeLater = scheduleRemove
)

// TempFile stages the image as a uniquely named file, loads it, and removes it again.
//
// The file is removed on every path. When it can't be removed right away its removal is scheduled
// where the platform allows, otherwise it is reported to Env.Leaked. Neither is ever returned.
type TempFile struct {
	Dir string // empty uses os.TempDir
	Ext string // suffix the native loader may expect, like .so or .dll
}

func (TempFile) Name() string { return "tempfile" }

func (t TempFile) Load(env *Env, data []byte, flags Flag) (h uintptr, path string, err error) {
	var f *os.File
	if f, err = os.CreateTemp(t.Dir, TempPattern+t.Ext); err != nil {
		return 0, "", fmt.Errorf("create staging file: %w", err)
	}
	path = f.Name()
	defer func() {
		rerr := os.Remove(path)
		if rerr == nil || errors.Is(rerr, os.ErrNotExist) {
			return
		}
		// windows keeps a loaded dll open
		if lerr := removeLater(path); lerr == nil {
			env.log().Info("staging file removal scheduled", zap.String("path", path), zap.NamedError("cause", rerr))
			return
		}
		env.leaked(path, rerr)
	}()
	err = writeStaging(f, data)
	// the loader needs a closed file on windows
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return 0, path, fmt.Errorf("write staging file: %w", err)
	}
	if h, err = env.Native.Open(path, flags); err == nil && h == 0 {
		err = errors.New("native loader returned a nil handle")
	}
	return
}
