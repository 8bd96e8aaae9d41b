package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/afero"
	"github.com/vdparikh/aestrace"
	"github.com/vdparikh/aestrace/vectors"
)

var (
	op          = flag.String("op", "encrypt", "Operation: expand, encrypt or decrypt")
	keyHex      = flag.String("key", "", "Key as 32, 48 or 64 hex characters")
	inHex       = flag.String("in", "", "Plaintext or ciphertext as hex, a multiple of 32 characters")
	ivHex       = flag.String("iv", "", "CBC IV as 32 hex characters (default all zero)")
	modeName    = flag.String("mode", "ecb", "Chaining mode: ecb or cbc")
	vectorName  = flag.String("vector", "", "Name of a reference vector supplying key and input, e.g. test1")
	vectorsDir  = flag.String("vectors", "test_files", "Directory holding the reference vector files")
	catalogPath = flag.String("catalog", "", "JSON vector catalog (default: built-in catalog)")
	fsType      = flag.String("fs", vectors.OsType, "Filesystem for vectors and output files")
	outPath     = flag.String("out", "", "Write the result to this file instead of stdout")
	tracePath   = flag.String("trace", "", "Write the trace to this file instead of stdout")
	workers     = flag.Int("workers", 1, "Goroutines used for ECB blocks")
	quiet       = flag.Bool("quiet", false, "Do not print the trace")
)

type config struct {
	op      string
	key     string
	in      string
	iv      string
	mode    string
	vector  string
	vectors string
	catalog string
	out     string
	trace   string
	workers int
	quiet   bool
}

func main() {
	flag.Parse()

	fs, err := vectors.GetFs(*fsType)
	if err != nil {
		log.Fatalf("Cannot set up filesystem: %v", err)
	}
	cfg := config{
		op:      *op,
		key:     *keyHex,
		in:      *inHex,
		iv:      *ivHex,
		mode:    *modeName,
		vector:  *vectorName,
		vectors: *vectorsDir,
		catalog: *catalogPath,
		out:     *outPath,
		trace:   *tracePath,
		workers: *workers,
		quiet:   *quiet,
	}
	if err := run(fs, os.Stdout, cfg); err != nil {
		log.Fatalf("%s failed: %v", cfg.op, err)
	}
}

func run(fs afero.Fs, w io.Writer, cfg config) error {
	var store *vectors.Store
	var vec vectors.Vector
	if cfg.vector != "" {
		var catalog vectors.Catalog
		if cfg.catalog != "" {
			var err error
			if catalog, err = vectors.LoadCatalog(fs, cfg.catalog); err != nil {
				return err
			}
		}
		store = vectors.NewStore(fs, cfg.vectors, catalog)
		var err error
		if vec, err = store.Vector(cfg.vector); err != nil {
			return err
		}
		fmt.Fprintf(w, "Vector: %s\n", vec.Label)
		if cfg.key == "" {
			if cfg.key, err = store.Key(vec); err != nil {
				return err
			}
		}
	}
	if cfg.key == "" {
		return errors.New("no key given: use -key or -vector")
	}

	switch cfg.op {
	case "expand":
		return expand(fs, w, cfg)
	case "encrypt", "decrypt":
	default:
		return fmt.Errorf("unknown operation %q (supported: expand, encrypt, decrypt)", cfg.op)
	}

	mode, err := aestrace.ParseMode(cfg.mode)
	if err != nil {
		return err
	}
	if cfg.in == "" && store != nil {
		if cfg.op == "encrypt" {
			cfg.in, err = store.Plaintext(vec)
		} else {
			cfg.in, err = store.Ciphertext(vec, mode)
		}
		if err != nil {
			return err
		}
	}
	if cfg.in == "" {
		return errors.New("no input given: use -in or -vector")
	}

	c, err := aestrace.NewCipher(cfg.key, mode)
	if err != nil {
		return err
	}
	c.SetWorkers(cfg.workers)

	var res *aestrace.Result
	if cfg.op == "encrypt" {
		res, err = c.Encrypt(cfg.in, cfg.iv)
	} else {
		res, err = c.Decrypt(cfg.in, cfg.iv)
	}
	if err != nil {
		return err
	}

	label := "Ciphertext"
	if cfg.op == "decrypt" {
		label = "Plaintext"
	}
	if err := emit(fs, w, label, res.Hex, cfg.out); err != nil {
		return err
	}
	if err := emitTrace(fs, w, res.Trace, cfg); err != nil {
		return err
	}

	if store != nil {
		return compare(w, store, vec, mode, cfg.op, res.Hex)
	}
	return nil
}

func expand(fs afero.Fs, w io.Writer, cfg config) error {
	exp, err := aestrace.ExpandKey(cfg.key)
	if err != nil {
		return err
	}
	if err := emit(fs, w, fmt.Sprintf("Expanded key (%v)", exp.Variant), exp.RoundKeysHex(), cfg.out); err != nil {
		return err
	}
	return emitTrace(fs, w, exp.Trace, cfg)
}

// compare reports the outcome against the vector. A vector without the
// expected value is not an error.
func compare(w io.Writer, store *vectors.Store, vec vectors.Vector, mode aestrace.Mode, op, got string) error {
	var cmp *vectors.Comparison
	var err error
	if op == "encrypt" {
		cmp, err = store.Compare(vec, mode, got)
	} else {
		cmp, err = store.ComparePlaintext(vec, got)
	}
	switch {
	case errors.Is(err, vectors.ErrCiphertextUnavailable), errors.Is(err, vectors.ErrPlaintextUnavailable):
		fmt.Fprintf(w, "Comparison: skipped (%v)\n", err)
		return nil
	case err != nil:
		return err
	}
	fmt.Fprintf(w, "Comparison: %s\n", cmp)
	if !cmp.Match {
		return errors.New("result does not match the reference vector")
	}
	return nil
}

func emit(fs afero.Fs, w io.Writer, label, value, path string) error {
	if path == "" {
		fmt.Fprintf(w, "%s:\n%s\n", label, value)
		return nil
	}
	if err := afero.WriteFile(fs, path, []byte(value+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Fprintf(w, "%s written to %s\n", label, path)
	return nil
}

func emitTrace(fs afero.Fs, w io.Writer, trace string, cfg config) error {
	if cfg.trace != "" {
		return emit(fs, w, "Trace", trace, cfg.trace)
	}
	if cfg.quiet {
		return nil
	}
	return emit(fs, w, "Trace", trace, "")
}
