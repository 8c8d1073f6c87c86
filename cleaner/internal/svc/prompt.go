package svc

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/juju/errors"
)

// Confirm asks a yes/no question. Anything but y or yes, including end of
// input, is a no.
func Confirm(in *bufio.Reader, out io.Writer, question string) (bool, error) {
	if _, err := fmt.Fprintf(out, "%s [y/N] ", question); err != nil {
		return false, errors.Trace(err)
	}
	line, err := in.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, errors.Trace(err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
