package textfile

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/guiguan/caster"
	"github.com/npillmayer/rope"
	"github.com/npillmayer/rope/chunk"
	"golang.org/x/sync/errgroup"
)

// Some constants for fragment size defaults
const (
	twoKb     = 2048
	sixKb     = 6144
	tenKb     = 10240
	hundredKb = 102400
	oneMb     = 1048576
)

// ErrNotRegular is returned for paths which do not denote a regular file.
var ErrNotRegular = errors.New("file is not a regular file")

// FragmentLoaded is broadcast to subscribers whenever a fragment of a file
// has been read.
type FragmentLoaded struct {
	Path   string
	Index  int   // fragment number, in file order
	Offset int64 // start position of the fragment within the file
	Length int64 // length of the fragment in bytes
	Err    error // read error, if any
}

// LoadDone is broadcast after the last fragment of a file has been read and
// the rope has been assembled (or loading failed).
type LoadDone struct {
	Path  string
	Size  int64
	Runes uint64
	Err   error
}

// Loader loads text files as ropes. A Loader may be used for any number of
// files, also concurrently. Clients may subscribe to progress messages.
type Loader struct {
	fragSize int64
	workers  int
	startAt  int64
	cast     *caster.Caster // broadcaster for async file loading
}

// Option configures a Loader.
type Option func(*Loader)

// FragmentSize sets the size of the fragments a file is read in. 0 lets the
// loader choose a size depending on the size of the file.
func FragmentSize(n int64) Option {
	return func(l *Loader) {
		l.fragSize = n
	}
}

// Workers sets the maximum number of fragments read concurrently.
func Workers(n int) Option {
	return func(l *Loader) {
		l.workers = n
	}
}

// StartAt lets the loader read the fragment containing byte position pos
// first, continuing cyclically. -1 means starting with the trailing fragment.
func StartAt(pos int64) Option {
	return func(l *Loader) {
		l.startAt = pos
	}
}

// NewLoader creates a loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		workers: 4,
		cast:    caster.New(context.Background()), // we will broadcast messages when fragments are loaded
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.workers < 1 {
		l.workers = 1
	}
	return l
}

// Subscribe returns a channel of progress messages, of types FragmentLoaded
// and LoadDone. The subscription ends when ctx is done or the loader is
// closed. Subscribers have to drain the channel, otherwise loading stalls.
func (l *Loader) Subscribe(ctx context.Context) (<-chan interface{}, bool) {
	return l.cast.Sub(ctx, 16)
}

// Close ends all subscriptions. The loader must not be used afterwards.
func (l *Loader) Close() {
	l.cast.Close()
}

// Load reads a file, which must be a UTF-8 text file, and returns it as a
// rope. Fragments are read concurrently; Load returns when all of them have
// been read and assembled.
func (l *Loader) Load(ctx context.Context, name string) (rope.Rope, error) {
	tf, err := openFile(name)
	if err != nil {
		return rope.Rope{}, err
	}
	defer tf.file.Close()
	r, err := l.load(ctx, tf)
	done := LoadDone{Path: name, Size: tf.info.Size(), Runes: r.Len(), Err: err}
	l.cast.Pub(done)
	if err != nil {
		tracer().Errorf("loading %s: %v", name, err)
		return rope.Rope{}, err
	}
	tracer().Infof("loaded %s: %d bytes, %d runes", name, done.Size, done.Runes)
	return r, nil
}

// Load reads a file with default settings.
func Load(name string) (rope.Rope, error) {
	l := NewLoader()
	defer l.Close()
	return l.Load(context.Background(), name)
}

// --- Implementation --------------------------------------------------------

// textFile represents an OS file which will be loaded as a rope.
type textFile struct {
	path string      // file name
	info os.FileInfo // result from Stat(path)
	file *os.File    // file handle
}

// fragment is a span of bytes of a file.
type fragment struct {
	index  int
	pos    int64
	length int64
	data   []byte
}

// openFile opens an OS file and collects some useful information on it,
// checking for error conditions.
func openFile(name string) (*textFile, error) {
	fi, err := os.Stat(name)
	if err != nil {
		return nil, err
	} else if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("%s: %w", name, ErrNotRegular)
	}
	file, err := os.Open(name) // just open for read access
	if err != nil {
		return nil, err
	}
	return &textFile{path: name, info: fi, file: file}, nil
}

// fragmentSize returns a sensible fragment size for a file.
func fragmentSize(size, requested int64) int64 {
	if requested > 0 {
		return requested
	}
	switch {
	case size < 1024:
		return 64
	case size < tenKb:
		return 256
	case size < hundredKb:
		return 512
	case size < oneMb:
		return twoKb
	}
	return sixKb
}

// plan divides a file into fragments, in file order.
func plan(size, fragSize int64) []*fragment {
	frags := make([]*fragment, 0, size/fragSize+1)
	for k := int64(0); k < size; k += fragSize {
		frags = append(frags, &fragment{
			index:  len(frags),
			pos:    k,
			length: min(fragSize, size-k),
		})
	}
	return frags
}

// schedule returns the fragments in reading order: starting with the one
// containing startAt and wrapping around.
func schedule(frags []*fragment, startAt int64) []*fragment {
	if len(frags) == 0 {
		return frags
	}
	first := 0
	if startAt < 0 {
		first = len(frags) - 1
	} else {
		for first < len(frags)-1 && frags[first].pos+frags[first].length <= startAt {
			first++
		}
	}
	return append(append([]*fragment(nil), frags[first:]...), frags[:first]...)
}

func (l *Loader) load(ctx context.Context, tf *textFile) (rope.Rope, error) {
	size := tf.info.Size()
	if size == 0 {
		return rope.Rope{}, nil
	}
	frags := plan(size, fragmentSize(size, l.fragSize))
	tracer().Debugf("loading %s in %d fragments", tf.path, len(frags))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)
	for _, frag := range schedule(frags, l.startAt) {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			err := frag.read(tf.file)
			l.cast.Pub(FragmentLoaded{
				Path:   tf.path,
				Index:  frag.index,
				Offset: frag.pos,
				Length: frag.length,
				Err:    err,
			})
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return rope.Rope{}, err
	}
	return stitch(frags)
}

func (frag *fragment) read(f io.ReaderAt) error {
	buf := make([]byte, frag.length)
	cnt, err := f.ReadAt(buf, frag.pos)
	if err != nil && err != io.EOF {
		return fmt.Errorf("error loading text fragment at %d: %w", frag.pos, err)
	} else if int64(cnt) < frag.length {
		return fmt.Errorf("not all bytes loaded for text fragment at %d: %w", frag.pos, io.ErrUnexpectedEOF)
	}
	frag.data = buf
	return nil
}

// stitch assembles fragments into a rope. Fragments have been cut at byte
// positions, so runes may straddle fragment boundaries; the incomplete tail
// of a fragment is carried over to the next one.
func stitch(frags []*fragment) (rope.Rope, error) {
	b := rope.NewBuilder()
	var carry []byte
	for _, frag := range frags {
		data := append(carry, frag.data...)
		cut := chunk.CompleteRunes(data)
		if err := b.AppendBytes(data[:cut]); err != nil {
			return rope.Rope{}, fmt.Errorf("fragment at %d: %w", frag.pos, err)
		}
		carry = append([]byte(nil), data[cut:]...)
		frag.data = nil
	}
	if len(carry) > 0 {
		return rope.Rope{}, fmt.Errorf("truncated UTF-8 sequence at end of file: %w", rope.ErrIllegalArguments)
	}
	return b.Rope(), nil
}
