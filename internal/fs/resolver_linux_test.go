package fs

import "golang.org/x/sys/unix"

// longestPath is the length of the longest path the kernel accepts.
const longestPath = unix.PathMax - 1
