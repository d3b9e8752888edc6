package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catsText = "Cats are great. Cats are furry. Dogs bark loudly. The weather today is sunny and warm."

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRun_Stdin(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{"-n", "2"}, strings.NewReader(catsText), &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	assert.Equal(t, "Cats are great. The weather today is sunny and warm.\n", stdout.String())
}

func TestRun_FilesKeepArgumentOrder(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"c.txt", "a.txt", "b.txt"} {
		paths = append(paths, writeFile(t, dir, name, "Only "+name+" here."))
	}
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), append([]string{"-output", "json"}, paths...), strings.NewReader(""), &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	var got []SummaryOutput
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
	require.Len(t, got, 3)
	for i, p := range paths {
		assert.Equal(t, p, got[i].Source)
		assert.Equal(t, "naive-extractive", got[i].Method)
	}
	assert.Equal(t, "Only c.txt here.", got[0].Summary)
}

func TestRun_TextOutputForSeveralFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "First file.")
	b := writeFile(t, dir, "b.txt", "")
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{a, b}, strings.NewReader(""), &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	assert.Equal(t, "==> "+a+" <==\nFirst file.\n==> "+b+" <==\n\n", stdout.String())
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantErr  string
	}{
		{name: "zero sentences", args: []string{"-n", "0"}, wantCode: 2, wantErr: "-n must be at least 1"},
		{name: "negative sentences", args: []string{"-n", "-3"}, wantCode: 2, wantErr: "-n must be at least 1"},
		{name: "bad output format", args: []string{"-output", "xml"}, wantCode: 2, wantErr: "invalid output format"},
		{name: "unknown flag", args: []string{"-x"}, wantCode: 2, wantErr: "flag provided but not defined"},
		{name: "missing file", args: []string{filepath.Join(t.TempDir(), "nope.txt")}, wantCode: 1, wantErr: "nope.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer

			code := run(context.Background(), tt.args, strings.NewReader("Some text."), &stdout, &stderr)

			assert.Equal(t, tt.wantCode, code)
			assert.Contains(t, stderr.String(), tt.wantErr)
			assert.Empty(t, stdout.String())
		})
	}
}

func TestRun_Help(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{"-h"}, strings.NewReader(""), &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.Contains(t, stderr.String(), "Usage: notes-summarize")
}
