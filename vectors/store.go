package vectors

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/spf13/afero"
	"github.com/vdparikh/aestrace"
)

var (
	// ErrUnknownVector is returned for a name missing from the catalog.
	ErrUnknownVector = errors.New("vectors: unknown vector")
	// ErrPlaintextUnavailable is returned for decrypt-only vectors.
	ErrPlaintextUnavailable = errors.New("vectors: no plaintext file")
	// ErrCiphertextUnavailable is returned when a vector has no expected
	// ciphertext for the requested mode.
	ErrCiphertextUnavailable = errors.New("vectors: no ciphertext file for mode")
)

// Store reads vector files below root on fs.
type Store struct {
	fs      afero.Fs
	root    string
	catalog Catalog
}

// NewStore returns a Store for catalog. A nil catalog means DefaultCatalog.
func NewStore(fs afero.Fs, root string, catalog Catalog) *Store {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Store{fs: fs, root: root, catalog: catalog}
}

// Catalog returns the vectors known to the store.
func (s *Store) Catalog() Catalog { return s.catalog }

// Vector looks up a vector by name.
func (s *Store) Vector(name string) (Vector, error) {
	return s.catalog.Find(name)
}

// Key returns the hex key of v.
func (s *Store) Key(v Vector) (string, error) {
	return s.read(v.KeyFile)
}

// Plaintext returns the hex plaintext of v.
func (s *Store) Plaintext(v Vector) (string, error) {
	if v.PlaintextFile == "" {
		return "", fmt.Errorf("%w: %s", ErrPlaintextUnavailable, v.Name)
	}
	return s.read(v.PlaintextFile)
}

// Ciphertext returns the expected hex ciphertext of v in mode.
func (s *Store) Ciphertext(v Vector, mode aestrace.Mode) (string, error) {
	var file string
	switch mode {
	case aestrace.ECB:
		file = v.ECBCiphertextFile
	case aestrace.CBC:
		file = v.CBCCiphertextFile
	}
	if file == "" {
		return "", fmt.Errorf("%w: %s has no %v ciphertext", ErrCiphertextUnavailable, v.Name, mode)
	}
	return s.read(file)
}

// Compare checks got against the expected ciphertext of v in mode.
func (s *Store) Compare(v Vector, mode aestrace.Mode, got string) (*Comparison, error) {
	expected, err := s.Ciphertext(v, mode)
	if err != nil {
		return nil, err
	}
	return &Comparison{
		Match:    strings.EqualFold(expected, got),
		Expected: expected,
		Got:      got,
	}, nil
}

// ComparePlaintext checks a decryption result against the plaintext of v.
func (s *Store) ComparePlaintext(v Vector, got string) (*Comparison, error) {
	expected, err := s.Plaintext(v)
	if err != nil {
		return nil, err
	}
	return &Comparison{
		Match:    strings.EqualFold(expected, got),
		Expected: expected,
		Got:      got,
	}, nil
}

// read returns the file contents with all whitespace removed.
func (s *Store) read(name string) (string, error) {
	data, err := afero.ReadFile(s.fs, filepath.Join(s.root, name))
	if err != nil {
		return "", fmt.Errorf("failed to read vector file: %w", err)
	}
	return stripSpace(string(data)), nil
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// Comparison is the outcome of Store.Compare.
type Comparison struct {
	Match    bool
	Expected string
	Got      string
}

func (c *Comparison) String() string {
	if c.Match {
		return "Match!"
	}
	return fmt.Sprintf("Mismatch! Expected: %s, Got: %s", c.Expected, c.Got)
}
