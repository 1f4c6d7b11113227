package runner

import (
	"strings"
)

// EncodeCommandLine joins argv into a single Windows command line using the
// MSVCRT quoting rules, so that DecodeCommandLine (and the child's C runtime)
// recovers exactly the same tokens.
func EncodeCommandLine(argv []string) string {
	var b strings.Builder
	for i, arg := range argv {
		if i > 0 {
			b.WriteByte(' ')
		}
		appendEscapedArg(&b, arg)
	}
	return b.String()
}

// appendEscapedArg writes one token.
//
// Backslashes are literal unless they precede a double quote. Inside quotes,
// a run of n backslashes before a quote is written as 2n+1 backslashes and the
// quote. A run before the closing quote is doubled.
func appendEscapedArg(b *strings.Builder, arg string) {
	if arg == "" {
		b.WriteString(`""`)
		return
	}
	if !strings.ContainsAny(arg, " \t\n\v\"") {
		b.WriteString(arg)
		return
	}

	b.WriteByte('"')
	slashes := 0
	for i := 0; i < len(arg); i++ {
		c := arg[i]
		switch c {
		case '\\':
			slashes++
			continue
		case '"':
			b.WriteString(strings.Repeat(`\`, 2*slashes+1))
		default:
			b.WriteString(strings.Repeat(`\`, slashes))
		}
		b.WriteByte(c)
		slashes = 0
	}
	b.WriteString(strings.Repeat(`\`, 2*slashes))
	b.WriteByte('"')
}

// DecodeCommandLine splits a command line using the MSVCRT argument rules.
//
// Every token, including the first, is parsed with the argument rules.
func DecodeCommandLine(cmdline string) []string {
	var (
		args     []string
		cur      strings.Builder
		inToken  bool
		inQuotes bool
	)

	for i := 0; i < len(cmdline); {
		c := cmdline[i]
		switch {
		case (c == ' ' || c == '\t') && !inQuotes:
			if inToken {
				args = append(args, cur.String())
				cur.Reset()
				inToken = false
			}
			i++

		case c == '\\':
			n := 0
			for i+n < len(cmdline) && cmdline[i+n] == '\\' {
				n++
			}
			inToken = true
			if i+n < len(cmdline) && cmdline[i+n] == '"' {
				cur.WriteString(strings.Repeat(`\`, n/2))
				if n%2 == 1 {
					cur.WriteByte('"')
					i += n + 1
				} else {
					i += n
				}
				continue
			}
			cur.WriteString(strings.Repeat(`\`, n))
			i += n

		case c == '"':
			inToken = true
			if inQuotes && i+1 < len(cmdline) && cmdline[i+1] == '"' {
				cur.WriteByte('"')
				i += 2
				continue
			}
			inQuotes = !inQuotes
			i++

		default:
			inToken = true
			cur.WriteByte(c)
			i++
		}
	}

	if inToken {
		args = append(args, cur.String())
	}
	return args
}
