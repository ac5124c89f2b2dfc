package fs

import "bytes"

// cString returns the bytes of buf up to the first NUL. Bytes after the
// terminator are ignored, they are not guaranteed to be zero.
func cString(buf []byte) []byte {
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		return buf[:i]
	}
	return buf
}
