package fs

// longestPath is the length of the longest path F_GETPATH can return.
const longestPath = maxPathLen - 1
