// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package prompt asks line-oriented yes/no questions. It reads plain lines
// so answers can be piped in (`yes | emv *.png .jpg`).
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNoAnswer is returned when input ends before a y or n was read.
var ErrNoAnswer = errors.New("no answer to confirmation prompt")

// Confirm writes question to out and reads answers from in until it gets
// y/Y (true) or n/N (false). Anything else repeats the question.
func Confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprintf(out, "%s (y/n): ", question)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		switch strings.TrimSpace(scanner.Text()) {
		case "y", "Y":
			return true, nil
		case "n", "N":
			return false, nil
		}
		fmt.Fprintf(out, "Invalid answer. %s (y/n): ", question)
	}
	if err := scanner.Err(); err != nil {
		return false, fmt.Errorf("reading answer: %w", err)
	}
	fmt.Fprintln(out)
	return false, ErrNoAnswer
}

// Func returns a confirmation callback bound to in and out.
func Func(in io.Reader, out io.Writer) func(question string) (bool, error) {
	return func(question string) (bool, error) {
		return Confirm(in, out, question)
	}
}
