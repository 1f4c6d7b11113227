package runner

import (
	"bufio"
	"errors"
	"io"
)

// maxLineBytes caps a single delivered line. Longer runs are delivered in pieces.
const maxLineBytes = 1 << 20

// scanLines reads r until EOF, calling sink once per line.
//
// Lines end at "\n", "\r\n" or a bare "\r" (yt-dlp redraws progress with "\r").
// The terminator is not included. A trailing unterminated line is delivered.
func scanLines(r io.Reader, sink func(string)) error {
	br := bufio.NewReaderSize(r, 64*1024)
	line := make([]byte, 0, 256)
	skipLF := false

	emit := func() {
		sink(string(line))
		line = line[:0]
	}

	for {
		b, err := br.ReadByte()
		if err != nil {
			if len(line) > 0 {
				emit()
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		if skipLF {
			skipLF = false
			if b == '\n' {
				continue
			}
		}

		switch b {
		case '\n':
			emit()
		case '\r':
			emit()
			skipLF = true
		default:
			line = append(line, b)
			if len(line) >= maxLineBytes {
				emit()
			}
		}
	}
}
