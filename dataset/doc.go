// Package dataset reads and writes point correspondence files.
//
// The on-disk format is plain text: one correspondence per line, columns
// separated by whitespace, with '#' starting a comment that runs to the
// end of the line. The first data row fixes the column count. Files ending
// in .zst, .zstd or .lz4 are transparently compressed and decompressed.
package dataset
