/*
Package memdl loads shared libraries from memory buffers.

The caller hands over the bytes of a library (downloaded, decrypted, embedded ...) and gets a
[Library] to resolve exported symbols from, without writing a discoverable file first.

# Underwater

 1. The image is only checked by its magic bytes: ELF, Mach-O or PE. It is never parsed or relocated
    here, the native loader of the platform does all the work.
 2. Each platform has an ordered chain of [Strategy], a failing one falls through to the next:
    - linux: memfd_create(2) then dlopen of /proc/self/fd/N, else a staging file.
    - android: memfd_create(2) with android_dlopen_ext on API 24+, else a staging file.
    - macos, ios and windows: a staging file only.
 3. Staging files get unique names and are removed right after the load attempt, loaded or not.
    A removal failure never fails the load, it is logged and counted in [Stats].
 4. Symbols are looked up through dlsym(3) or GetProcAddress, called through [purego].

# Notes

 1. Flags are ignored on windows, LoadLibrary has no equivalent switches.
 2. Every operation returns its error. [Loader.LastError] keeps the latest text for callers that
    want a status string, it is scoped per Loader.
 3. [Library.Close] releases the native handle once, it is safe to call from many goroutines.
 4. Closing a library loaded from anonymous memory leaves unloading to the native loader.

# Samples

	lib, err := memdl.Open(data, memdl.Now|memdl.Local)
	if err != nil {
		return err
	}
	defer lib.Close()
	var entry func() int32
	if err = memdl.Bind(lib, "entry", &entry); err != nil {
		return err
	}
	entry()

See tests and the memload command.

[purego]: https://github.com/ebitengine/purego
*/
package memdl
