// quote.go turns an argument vector into a single shell command line, so
// "dtags run TAG -- git log --oneline" and "dtags run TAG -c 'git log
// --oneline'" execute the same thing.

package run

import "strings"

// safe holds the characters that never need quoting.
const safe = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789-_./:=@%+,"

// Quote joins args into a POSIX shell command line, single-quoting any
// argument that contains characters the shell would interpret.
func Quote(args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = quoteArg(a)
	}
	return strings.Join(quoted, " ")
}

func quoteArg(a string) string {
	if a == "" {
		return "''"
	}
	if strings.Trim(a, safe) == "" {
		return a
	}
	return "'" + strings.ReplaceAll(a, "'", `'\''`) + "'"
}
