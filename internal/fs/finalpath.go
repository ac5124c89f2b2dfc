package fs

// Prefixes GetFinalPathNameByHandle puts in front of the paths it returns.
var (
	uncPathPrefix      = []uint16{'\\', '\\', '?', '\\', 'U', 'N', 'C', '\\'}
	extendedPathPrefix = []uint16{'\\', '\\', '?', '\\'}
)

// finalPathQuery fills buf with the final path of a handle and returns the
// number of UTF-16 code units required or written, as GetFinalPathNameByHandle
// does. An empty buf asks for the required size.
type finalPathQuery func(buf []uint16) (uint32, error)

// fetchFinalPath runs query twice: once to learn the required buffer size,
// and once to fill a buffer of exactly that size. The result is trimmed to
// the length reported by the second call.
func fetchFinalPath(query finalPathQuery) ([]uint16, error) {
	size, err := query(nil)
	if err != nil {
		return nil, err
	}

	buf := make([]uint16, size)
	n, err := query(buf)
	if err != nil {
		return nil, err
	}

	// the path was renamed to something longer between both calls
	if n >= size {
		return nil, ErrPathGrew
	}

	return buf[:n], nil
}

// normaliseFinalPath converts the extended-length paths returned by
// GetFinalPathNameByHandle into standard paths:
//
//	\\?\UNC\server\share\file into \\server\share\file
//	\\?\C:\foo\bar into C:\foo\bar
//
// Everything else is returned unchanged. The UNC prefix must be tested
// first, it starts with the extended-length prefix.
func normaliseFinalPath(path []uint16) []uint16 {
	switch {
	case hasPrefix(path, uncPathPrefix):
		return append([]uint16{'\\', '\\'}, path[len(uncPathPrefix):]...)
	case hasPrefix(path, extendedPathPrefix):
		return path[len(extendedPathPrefix):]
	}

	return path
}

func hasPrefix(s, prefix []uint16) bool {
	if len(s) < len(prefix) {
		return false
	}

	for i := range prefix {
		if s[i] != prefix[i] {
			return false
		}
	}

	return true
}
