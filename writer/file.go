package writer

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/gzip"

	"github.com/structlog-go/structlog/encoder"
)

// sharedFile is the single open handle for one log file path. Every
// file writer over the same canonical path shares it, so they present
// the same destination value to destLock and cannot interleave output.
// Gzip writers additionally share one compression stream per path; two
// independent streams appended to one file would not decode.
type sharedFile struct {
	file *os.File
	bw   *bufio.Writer
	gz   *gzip.Writer // created on first gzip writer for the path
	refs int
}

var (
	sharedFilesMu sync.Mutex
	sharedFiles   = make(map[string]*sharedFile)
)

func acquireFile(path string) (*sharedFile, string, error) {
	key, err := filepath.Abs(path)
	if err != nil {
		return nil, "", err
	}
	sharedFilesMu.Lock()
	defer sharedFilesMu.Unlock()
	if sf, ok := sharedFiles[key]; ok {
		sf.refs++
		return sf, key, nil
	}
	file, err := openLogFile(key)
	if err != nil {
		return nil, "", err
	}
	sf := &sharedFile{
		file: file,
		bw:   bufio.NewWriterSize(file, 4096),
		refs: 1,
	}
	sharedFiles[key] = sf
	return sf, key, nil
}

// fileRelease drops one reference to a shared file handle. The last
// reference terminates the gzip stream if one exists, flushes, syncs,
// and closes the file.
type fileRelease struct {
	key string
}

func (r *fileRelease) Close() error {
	sharedFilesMu.Lock()
	sf := sharedFiles[r.key]
	if sf == nil {
		sharedFilesMu.Unlock()
		return nil
	}
	sf.refs--
	if sf.refs > 0 {
		sharedFilesMu.Unlock()
		return nil
	}
	delete(sharedFiles, r.key)
	sharedFilesMu.Unlock()

	var firstErr error
	if sf.gz != nil {
		firstErr = sf.gz.Close()
	}
	if err := sf.bw.Flush(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := sf.file.Sync(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := sf.file.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// NewFile creates a synchronous writer appending to the file at path,
// creating parent directories as needed. Writes go through a buffered
// writer that is flushed after every record. Opening the same path
// twice yields writers sharing one file handle and one lock.
func NewFile(path string, enc encoder.Encoder) (*Sync, error) {
	sf, key, err := acquireFile(path)
	if err != nil {
		return nil, err
	}
	w := NewSync(sf.bw, enc)
	w.owned = &fileRelease{key: key}
	return w, nil
}

// NewGzip creates a synchronous writer that gzip-compresses encoded
// records onto dest. The compressor is flushed after every record so
// each event is immediately recoverable, at some cost in ratio.
// Closing the writer terminates the gzip stream but leaves dest open.
func NewGzip(dest io.Writer, enc encoder.Encoder) *Sync {
	gz := gzip.NewWriter(dest)
	w := NewSync(gz, enc)
	w.owned = gz
	return w
}

// NewGzipFile creates a synchronous writer appending gzip-compressed
// records to the file at path. The same path always means the same
// compression stream, however many writers address it.
func NewGzipFile(path string, enc encoder.Encoder) (*Sync, error) {
	sf, key, err := acquireFile(path)
	if err != nil {
		return nil, err
	}
	sharedFilesMu.Lock()
	if sf.gz == nil {
		sf.gz = gzip.NewWriter(sf.bw)
	}
	gz := sf.gz
	sharedFilesMu.Unlock()

	w := NewSync(gz, enc)
	w.owned = &fileRelease{key: key}
	return w, nil
}

func openLogFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}
