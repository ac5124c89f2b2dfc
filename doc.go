// Package fdpath returns the path the operating system currently associates
// with an open file.
//
// The path is queried from the kernel on every call: /proc/self/fd on Linux,
// fcntl(F_GETPATH) on macOS and iOS, GetFinalPathNameByHandleW on Windows.
// On Windows, extended-length (\\?\C:\...) and UNC (\\?\UNC\server\...)
// prefixes are converted to the standard forms C:\... and \\server\....
//
// The result is a snapshot. If the file is renamed or removed after the call
// returns, the path is stale. Errors reported by the operating system are
// returned as *os.PathError without translation.
package fdpath
