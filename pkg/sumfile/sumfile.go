// Package sumfile reads and writes the archive sum cache kept beside
// published archives. Each line is
//
//	<algo>:<base58 sum> <size> <modtime> <name>
//
// and lines are kept sorted by name.
package sumfile

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

var ErrMalformed = errors.New("malformed sumfile line")

type Entry struct {
	Name    string
	Algo    string
	Sum     []byte
	Size    int64
	ModTime int64
}

func (e Entry) String() string {
	return e.Algo + ":" + base58.Encode(e.Sum)
}

// Matches reports whether the entry was computed from a file of the given
// size and modification time (unix nanoseconds).
func (e Entry) Matches(size, modTime int64) bool {
	return e.Size == size && e.ModTime == modTime
}

type Sumfile struct {
	entries []Entry
}

func (s *Sumfile) Load(r io.Reader) error {
	br := bufio.NewReader(r)

	for lineNo := 1; ; lineNo++ {
		line, err := br.ReadBytes('\n')
		if err != nil && err != io.EOF {
			return err
		}

		if fields := bytes.Fields(line); len(fields) > 0 {
			e, perr := parseLine(fields)
			if perr != nil {
				return errors.Wrapf(perr, "line %d", lineNo)
			}

			s.Set(e)
		}

		if err == io.EOF {
			return nil
		}
	}
}

func parseLine(fields [][]byte) (Entry, error) {
	var e Entry

	if len(fields) < 4 {
		return e, ErrMalformed
	}

	colon := bytes.IndexByte(fields[0], ':')
	if colon == -1 {
		return e, ErrMalformed
	}

	e.Algo = string(fields[0][:colon])

	sum, err := base58.Decode(string(fields[0][colon+1:]))
	if err != nil {
		return e, err
	}

	e.Sum = sum

	e.Size, err = strconv.ParseInt(string(fields[1]), 10, 64)
	if err != nil {
		return e, ErrMalformed
	}

	e.ModTime, err = strconv.ParseInt(string(fields[2]), 10, 64)
	if err != nil {
		return e, ErrMalformed
	}

	e.Name = string(bytes.Join(fields[3:], []byte(" ")))

	return e, nil
}

func (s *Sumfile) search(name string) int {
	return sort.Search(len(s.entries), func(i int) bool {
		return s.entries[i].Name >= name
	})
}

// Set adds e, replacing any entry with the same name.
func (s *Sumfile) Set(e Entry) {
	idx := s.search(e.Name)

	if idx < len(s.entries) && s.entries[idx].Name == e.Name {
		s.entries[idx] = e
		return
	}

	s.entries = append(s.entries, Entry{})
	copy(s.entries[idx+1:], s.entries[idx:])
	s.entries[idx] = e
}

func (s *Sumfile) Lookup(name string) (Entry, bool) {
	idx := s.search(name)

	if idx < len(s.entries) && s.entries[idx].Name == name {
		return s.entries[idx], true
	}

	return Entry{}, false
}

func (s *Sumfile) Len() int {
	return len(s.entries)
}

func (s *Sumfile) Save(w io.Writer) error {
	for _, e := range s.entries {
		_, err := fmt.Fprintf(w, "%s %d %d %s\n", e, e.Size, e.ModTime, e.Name)
		if err != nil {
			return err
		}
	}

	return nil
}
