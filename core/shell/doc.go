// Package shell implements the minish command interpreter.
//
// Each input line goes through a reduced version of the POSIX shell steps
// (https://pubs.opengroup.org/onlinepubs/9699919799/utilities/V3_chap02.html):
//
// 1. The shell reads a line from the interactive prompt or from the -c option.
//
// 2. The line is broken into words on runs of blanks. There's no quoting,
// escaping, expansion or globbing.
//
// 3. If the first word names a builtin with enough operands, the builtin runs
// in the shell's own process.
//
// 4. Otherwise redirection operators (<, >) and the background operator (&)
// are removed from the word list and applied; see proc.Scan.
//
// 5. The program is located through PATH and started, the shell then waits
// for it unless it was sent to the background.
package shell
