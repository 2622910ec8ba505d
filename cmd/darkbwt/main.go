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

// Command darkbwt compresses or decompresses a single file with the BWT
// plus adaptive-entropy pipeline implemented by the block package. CLI
// parsing, file handling and progress reporting are thin collaborators
// around that core; none of it participates in the compressed format.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/kvark/bwtdark/block"
)

const (
	argCompress   = "-c"
	argDecompress = "-d"
	argInput      = "-i="
	argOutput     = "-o="
	argBlock      = "-b="
	argMode       = "-m="
	argChecksum   = "-s="
	argQuiet      = "-q"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var compress, decompress, quiet bool
	var input, output string
	blockSize := block.DefaultBlockSize
	mode := block.ModeFast
	cksum := block.ChecksumNone

	for _, a := range args {
		switch {
		case a == argCompress:
			compress = true
		case a == argDecompress:
			decompress = true
		case a == argQuiet:
			quiet = true
		case strings.HasPrefix(a, argInput):
			input = a[len(argInput):]
		case strings.HasPrefix(a, argOutput):
			output = a[len(argOutput):]
		case strings.HasPrefix(a, argBlock):
			n, err := parseSize(a[len(argBlock):])

			if err != nil {
				fmt.Fprintf(os.Stderr, "darkbwt: invalid block size: %v\n", err)
				return 1
			}

			blockSize = n
		case strings.HasPrefix(a, argMode):
			switch a[len(argMode):] {
			case "fast":
				mode = block.ModeFast
			case "low":
				mode = block.ModeLowMemory
			default:
				fmt.Fprintf(os.Stderr, "darkbwt: unknown memory mode %q\n", a[len(argMode):])
				return 1
			}
		case strings.HasPrefix(a, argChecksum):
			switch a[len(argChecksum):] {
			case "none":
				cksum = block.ChecksumNone
			case "xxhash":
				cksum = block.ChecksumXXHash
			case "whirlpool":
				cksum = block.ChecksumWhirlpool
			default:
				fmt.Fprintf(os.Stderr, "darkbwt: unknown checksum %q\n", a[len(argChecksum):])
				return 1
			}
		default:
			fmt.Fprintf(os.Stderr, "darkbwt: unknown argument %q\n", a)
			return 1
		}
	}

	if compress == decompress {
		fmt.Fprintln(os.Stderr, "darkbwt: specify exactly one of -c or -d")
		return 1
	}

	if input == "" || output == "" {
		fmt.Fprintln(os.Stderr, "darkbwt: -i=<input> and -o=<output> are required")
		return 1
	}

	printer := NewPrinter(quiet)
	in, err := os.Open(input)

	if err != nil {
		fmt.Fprintf(os.Stderr, "darkbwt: %v\n", err)
		return 1
	}

	defer in.Close()

	out, err := os.Create(output)

	if err != nil {
		fmt.Fprintf(os.Stderr, "darkbwt: %v\n", err)
		return 1
	}

	defer out.Close()

	codec, err := block.NewCodec(blockSize, mode, cksum)

	if err != nil {
		fmt.Fprintf(os.Stderr, "darkbwt: %v\n", err)
		return 1
	}

	start := time.Now()

	if compress {
		err = codec.Encode(in, out)
	} else {
		err = codec.Decode(in, out)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "darkbwt: %v\n", err)
		return 2
	}

	elapsed := time.Since(start)
	verb := "Decompressed"

	if compress {
		verb = "Compressed"
	}

	printer.Printf("%s %s -> %s in %s\n", verb, input, output, elapsed.Round(time.Millisecond))
	return 0
}

// parseSize parses a byte count with an optional KB/MB/GB suffix (binary
// units: 1 KB = 1024 bytes).
func parseSize(s string) (int, error) {
	units := []struct {
		suffix string
		scale  int
	}{
		{"GB", 1 << 30},
		{"MB", 1 << 20},
		{"KB", 1 << 10},
	}

	for _, u := range units {
		if strings.HasSuffix(strings.ToUpper(s), u.suffix) {
			n, err := strconv.Atoi(s[:len(s)-len(u.suffix)])

			if err != nil {
				return 0, err
			}

			return n * u.scale, nil
		}
	}

	return strconv.Atoi(s)
}
