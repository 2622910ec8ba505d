/*
Copyright 2011-2024 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"bufio"
	"fmt"
	"os"
)

// Printer writes status lines to stdout, suppressed entirely in quiet mode.
type Printer struct {
	w     *bufio.Writer
	quiet bool
}

// NewPrinter creates a Printer writing to stdout.
func NewPrinter(quiet bool) *Printer {
	return &Printer{w: bufio.NewWriter(os.Stdout), quiet: quiet}
}

// Println prints one line, flushing immediately, unless quiet.
func (p *Printer) Println(msg string) {
	if p.quiet {
		return
	}

	fmt.Fprintln(p.w, msg)
	p.w.Flush()
}

// Printf prints a formatted line, flushing immediately, unless quiet.
func (p *Printer) Printf(format string, args ...any) {
	if p.quiet {
		return
	}

	fmt.Fprintf(p.w, format, args...)
	p.w.Flush()
}
