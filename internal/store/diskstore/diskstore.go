// Package diskstore implements store.Backend on the local filesystem. Each
// secret is a single file named by its id, prefixed with a fixed 22-byte
// header encoding the magic string "passer" and the absolute expiry as a
// 14-digit decimal millisecond timestamp. The directory is scanned once at
// construction time to recover size accounting and to prune anything
// already expired; malformed files are skipped and left on disk.
package diskstore

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/haukened/gone/internal/domain"
	"github.com/haukened/gone/internal/store"
)

// magic is the fixed 7-byte preamble of every on-disk secret file.
const magic = "passer\n"

// headerLen is the total fixed header size: magic (7) + 14 expiry digits + \n.
const headerLen = len(magic) + domain.ExpiryDigits + 1

// maxAttempts bounds id-collision retries on Put.
const maxAttempts = 8

// Store is a filesystem-backed store.Backend rooted at a single directory.
// It is not safe for concurrent use by itself; facade.Store supplies the
// required locking.
type Store struct {
	root    string
	maxSize int64
	size    int64
}

// New opens (and recovers size accounting for) a disk-backed store rooted at
// dir, creating it with restrictive permissions if it does not yet exist.
func New(dir string, maxSize int64) (*Store, error) {
	fi, err := os.Stat(dir)
	if errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, err
		}
		fi, err = os.Stat(dir)
	}
	if err != nil {
		return nil, err
	}
	if !fi.IsDir() {
		return nil, errors.New("store root is not a directory")
	}
	s := &Store{root: dir, maxSize: maxSize}
	if err := s.recover(); err != nil {
		return nil, err
	}
	return s, nil
}

// recover scans root, skips (without deleting) malformed files, deletes
// expired ones, and sums the remaining files' full lengths (header plus
// payload) into s.size.
func (s *Store) recover() error {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return err
	}
	now := time.Now()
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		id, err := domain.ParseID(e.Name())
		if err != nil {
			// Not one of ours; ignore rather than delete foreign files.
			continue
		}
		expiresAt, size, err := s.readHeader(id)
		if err != nil {
			// Malformed file: ignore per the on-disk contract, do not delete.
			continue
		}
		if !domain.Live(now, expiresAt) {
			_ = os.Remove(s.path(id))
			continue
		}
		s.size += size
	}
	return nil
}

func (s *Store) path(id domain.SecretID) string {
	return filepath.Join(s.root, id.Encode())
}

// readHeader opens the file for id and returns its decoded expiry and its
// full on-disk length (header plus ciphertext payload) — the tracked size
// unit per spec §3.
func (s *Store) readHeader(id domain.SecretID) (time.Time, int64, error) {
	fi, err := os.Stat(s.path(id))
	if err != nil {
		return time.Time{}, 0, err
	}
	if fi.Size() < int64(headerLen) {
		return time.Time{}, 0, errors.New("diskstore: file shorter than header")
	}
	f, err := os.Open(s.path(id)) // #nosec G304 path constructed from a validated id
	if err != nil {
		return time.Time{}, 0, err
	}
	defer f.Close()
	header := make([]byte, headerLen)
	if _, err := io.ReadFull(f, header); err != nil {
		return time.Time{}, 0, err
	}
	expiresAt, err := decodeHeader(header)
	if err != nil {
		return time.Time{}, 0, err
	}
	return expiresAt, fi.Size(), nil
}

// decodeHeader validates the magic preamble and trailing newline and parses
// the embedded expiry field.
func decodeHeader(header []byte) (time.Time, error) {
	if len(header) != headerLen {
		return time.Time{}, errors.New("diskstore: wrong header length")
	}
	if string(header[:len(magic)]) != magic {
		return time.Time{}, errors.New("diskstore: bad magic")
	}
	if header[headerLen-1] != '\n' {
		return time.Time{}, errors.New("diskstore: missing trailing newline")
	}
	field := string(header[len(magic) : headerLen-1])
	return domain.ParseExpiry(field)
}

// encodeHeader renders the fixed header for expiresAt.
func encodeHeader(expiresAt time.Time) ([]byte, error) {
	field, err := domain.FormatExpiry(expiresAt)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, 0, headerLen)
	buf = append(buf, magic...)
	buf = append(buf, field...)
	buf = append(buf, '\n')
	return buf, nil
}

// Refresh deletes every on-disk file whose expiry has already passed.
func (s *Store) Refresh(now time.Time) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		id, err := domain.ParseID(e.Name())
		if err != nil {
			continue
		}
		expiresAt, size, err := s.readHeader(id)
		if err != nil {
			continue
		}
		if !domain.Live(now, expiresAt) {
			if err := os.Remove(s.path(id)); err == nil {
				s.size -= size
			}
		}
	}
}

// Put writes data under a freshly generated id, prefixed with the encoded
// header for expiresAt.
func (s *Store) Put(data []byte, expiresAt time.Time) (domain.SecretID, error) {
	if int64(len(data))+int64(headerLen) > store.MaxSecretBytes {
		return domain.SecretID{}, store.ErrTooLarge
	}
	if s.size+int64(len(data))+int64(headerLen) > s.maxSize {
		return domain.SecretID{}, store.ErrStoreFull
	}
	header, err := encodeHeader(expiresAt)
	if err != nil {
		return domain.SecretID{}, store.ErrGeneric
	}

	var id domain.SecretID
	var f *os.File
	for attempt := 0; ; attempt++ {
		candidate, err := domain.NewID()
		if err != nil {
			return domain.SecretID{}, store.ErrGeneric
		}
		// #nosec G304: path built from a freshly generated id under our root.
		candidateFile, err := os.OpenFile(s.path(candidate), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
		if err == nil {
			id, f = candidate, candidateFile
			break
		}
		if !os.IsExist(err) {
			return domain.SecretID{}, store.ErrGeneric
		}
		if attempt >= maxAttempts {
			return domain.SecretID{}, store.ErrGeneric
		}
	}
	defer f.Close()

	if _, err := f.Write(header); err != nil {
		_ = os.Remove(s.path(id))
		return domain.SecretID{}, store.ErrGeneric
	}
	if _, err := f.Write(data); err != nil {
		_ = os.Remove(s.path(id))
		return domain.SecretID{}, store.ErrGeneric
	}
	if err := f.Sync(); err != nil {
		_ = os.Remove(s.path(id))
		return domain.SecretID{}, store.ErrGeneric
	}

	s.size += int64(len(data)) + int64(headerLen)
	return id, nil
}

// Get destructively reads the secret stored under id: the file is removed
// as soon as its contents have been read in full.
func (s *Store) Get(id domain.SecretID) ([]byte, error) {
	p := s.path(id)
	f, err := os.Open(p) // #nosec G304 path constructed from a validated id
	if err != nil {
		if os.IsNotExist(err) {
			return nil, store.ErrSecretNotFound
		}
		return nil, store.ErrGeneric
	}

	header := make([]byte, headerLen)
	if _, err := io.ReadFull(f, header); err != nil {
		f.Close()
		_ = os.Remove(p)
		return nil, store.ErrSecretNotFound
	}
	expiresAt, err := decodeHeader(header)
	if err != nil {
		f.Close()
		_ = os.Remove(p)
		return nil, store.ErrSecretNotFound
	}

	data, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		_ = os.Remove(p)
		return nil, store.ErrGeneric
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return nil, store.ErrGeneric
	}
	s.size -= int64(len(data)) + int64(headerLen)

	if !domain.Live(time.Now(), expiresAt) {
		return nil, store.ErrSecretNotFound
	}
	return data, nil
}

// Size reports the current aggregate tracked size in bytes.
func (s *Store) Size() int64 {
	return s.size
}
