package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

const (
	testKey        = "000102030405060708090a0b0c0d0e0f"
	testPlaintext  = "00112233445566778899aabbccddeeff"
	testCiphertext = "69c4e0d86a7b0430d8cdb78070b4c55a"
)

func testFs(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	files := map[string]string{
		"aes-key1.txt":            testKey + "\n",
		"aes-plaintext1.txt":      testPlaintext + "\n",
		"aes-ciphertext1-ecb.txt": testCiphertext + "\n",
		"aes-ciphertext1-cbc.txt": testCiphertext + "\n",
		"aes-key2.txt":            testKey,
		"aes-plaintext2.txt":      testPlaintext,
		"aes-ciphertext2-ecb.txt": strings.Repeat("0", 32),
		"aes-key11.txt":           testKey,
		"aes-plaintext11.txt":     testPlaintext,
	}
	for name, content := range files {
		if err := afero.WriteFile(fs, filepath.Join("test_files", name), []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	return fs
}

func baseConfig() config {
	return config{op: "encrypt", mode: "ecb", vectors: "test_files", workers: 1}
}

func TestRunEncrypt(t *testing.T) {
	cfg := baseConfig()
	cfg.key = testKey
	cfg.in = testPlaintext

	var out bytes.Buffer
	if err := run(afero.NewMemMapFs(), &out, cfg); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.Contains(out.String(), "Ciphertext:\n"+testCiphertext+"\n") {
		t.Errorf("output missing ciphertext:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "round 10 addRoundKey (k10)") {
		t.Error("output missing trace")
	}
}

func TestRunQuiet(t *testing.T) {
	cfg := baseConfig()
	cfg.key = testKey
	cfg.in = testPlaintext
	cfg.quiet = true

	var out bytes.Buffer
	if err := run(afero.NewMemMapFs(), &out, cfg); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if strings.Contains(out.String(), "Trace") {
		t.Errorf("quiet output contains trace:\n%s", out.String())
	}
}

func TestRunWritesFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg := baseConfig()
	cfg.op = "decrypt"
	cfg.key = testKey
	cfg.in = testCiphertext
	cfg.out = "plain.txt"
	cfg.trace = "trace.txt"

	var out bytes.Buffer
	if err := run(fs, &out, cfg); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	got, err := afero.ReadFile(fs, "plain.txt")
	if err != nil {
		t.Fatalf("result file: %v", err)
	}
	if string(got) != testPlaintext+"\n" {
		t.Errorf("result file = %q", got)
	}
	trace, err := afero.ReadFile(fs, "trace.txt")
	if err != nil {
		t.Fatalf("trace file: %v", err)
	}
	if !strings.HasPrefix(string(trace), "block 1:\t"+testCiphertext) {
		t.Errorf("trace file starts with %q", strings.SplitN(string(trace), "\n", 2)[0])
	}
}

func TestRunExpand(t *testing.T) {
	cfg := baseConfig()
	cfg.op = "expand"
	cfg.key = "2b7e151628aed2a6abf7158809cf4f3c"
	cfg.quiet = true

	var out bytes.Buffer
	if err := run(afero.NewMemMapFs(), &out, cfg); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.Contains(out.String(), "Expanded key (AES-128):") {
		t.Errorf("output missing header:\n%s", out.String())
	}
	if !strings.HasSuffix(out.String(), "d014f9a8c9ee2589e13f0cc8b6630ca6\n") {
		t.Errorf("output does not end with the last round key:\n%s", out.String())
	}
}

func TestRunVector(t *testing.T) {
	fs := testFs(t)

	tests := []struct {
		name    string
		op      string
		mode    string
		vector  string
		want    string
		wantErr bool
	}{
		{"encrypt match", "encrypt", "ecb", "test1", "Comparison: Match!", false},
		{"decrypt match", "decrypt", "ecb", "test1", "Comparison: Match!", false},
		{"encrypt mismatch", "encrypt", "ecb", "test2", "Comparison: Mismatch! Expected: " + strings.Repeat("0", 32), true},
		{"no expected ciphertext", "encrypt", "cbc", "test11", "Comparison: skipped", false},
		{"decrypt without ciphertext", "decrypt", "ecb", "test11", "", true},
		{"unknown vector", "encrypt", "ecb", "test42", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig()
			cfg.op = tt.op
			cfg.mode = tt.mode
			cfg.vector = tt.vector
			cfg.quiet = true

			var out bytes.Buffer
			err := run(fs, &out, cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("run error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.want != "" && !strings.Contains(out.String(), tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, out.String())
			}
		})
	}
}

func TestRunCatalog(t *testing.T) {
	fs := testFs(t)
	catalog := `[{"name": "fips", "label": "FIPS-197 C.1", "keyFile": "aes-key1.txt",
		"plaintextFile": "aes-plaintext1.txt", "ecbCiphertextFile": "aes-ciphertext1-ecb.txt"}]`
	if err := afero.WriteFile(fs, "catalog.json", []byte(catalog), 0o644); err != nil {
		t.Fatalf("Failed to write catalog: %v", err)
	}

	cfg := baseConfig()
	cfg.vector = "fips"
	cfg.catalog = "catalog.json"
	cfg.quiet = true

	var out bytes.Buffer
	if err := run(fs, &out, cfg); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.Contains(out.String(), "Vector: FIPS-197 C.1") || !strings.Contains(out.String(), "Match!") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  func(*config)
	}{
		{"no key", func(c *config) { c.in = testPlaintext }},
		{"no input", func(c *config) { c.key = testKey }},
		{"bad op", func(c *config) { c.op = "sign"; c.key = testKey; c.in = testPlaintext }},
		{"bad mode", func(c *config) { c.mode = "ofb"; c.key = testKey; c.in = testPlaintext }},
		{"bad key", func(c *config) { c.key = testKey[:30]; c.in = testPlaintext }},
		{"bad input", func(c *config) { c.key = testKey; c.in = testPlaintext[:31] }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig()
			tt.cfg(&cfg)
			if err := run(afero.NewMemMapFs(), &bytes.Buffer{}, cfg); err == nil {
				t.Error("expected error")
			}
		})
	}
}
