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

package transform

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"

	kanzi "github.com/kvark/bwtdark"
)

// spillStore is a scratch-file-backed queue of int32 values: one sorted
// subrange of rotation-start indices spilled by the low-memory forward
// BWT's partition step, later streamed back out during the 16-way merge.
// Acquisition is scoped: a spillStore is always created empty-and-ready
// and always released by close, on every exit path, including error paths.
type spillStore struct {
	f   *os.File
	w   *bufio.Writer
	r   *bufio.Reader
	buf [4]byte
}

// newSpillStore creates a scratch file in dir (the default temp directory
// when dir is empty) ready to accept writes.
func newSpillStore(dir string) (*spillStore, error) {
	f, err := os.CreateTemp(dir, "bwtdark-spill-*")

	if err != nil {
		return nil, kanzi.WrapError(kanzi.IoError, "failed to create BWT scratch file", err)
	}

	return &spillStore{f: f, w: bufio.NewWriter(f)}, nil
}

// write appends one index to the store. Must be called before startRead.
func (s *spillStore) write(v int32) error {
	binary.LittleEndian.PutUint32(s.buf[:], uint32(v))

	if _, err := s.w.Write(s.buf[:]); err != nil {
		return kanzi.WrapError(kanzi.IoError, "failed to spill BWT scratch data", err)
	}

	return nil
}

// startRead flushes pending writes and rewinds the store for sequential
// reading. Must be called exactly once, after the last write.
func (s *spillStore) startRead() error {
	if err := s.w.Flush(); err != nil {
		return kanzi.WrapError(kanzi.IoError, "failed to flush BWT scratch data", err)
	}

	if _, err := s.f.Seek(0, 0); err != nil {
		return kanzi.WrapError(kanzi.IoError, "failed to rewind BWT scratch file", err)
	}

	s.r = bufio.NewReader(s.f)
	return nil
}

// next returns the next spilled value and true, or false once exhausted.
func (s *spillStore) next() (int32, bool, error) {
	if _, err := io.ReadFull(s.r, s.buf[:]); err != nil {
		if err == io.EOF {
			return 0, false, nil
		}

		return 0, false, kanzi.WrapError(kanzi.IoError, "failed to read BWT scratch data", err)
	}

	return int32(binary.LittleEndian.Uint32(s.buf[:])), true, nil
}

// close releases the scratch file unconditionally, matching spec ss5's
// requirement that scratch storage is released on every exit path.
func (s *spillStore) close() {
	if s.f == nil {
		return
	}

	name := s.f.Name()
	s.f.Close()
	os.Remove(name)
	s.f = nil
}
