// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package transform

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/eutils/internal/format"
	"github.com/pdiddy/eutils/pkg/types"
)

// mockRunner records calls and returns configured responses.
type mockRunner struct {
	missing map[string]bool // binaries LookPath reports as absent
	runFunc func(name string, args []string, stdout, stderr io.Writer) error
	calls   [][]string
}

func (m *mockRunner) LookPath(file string) (string, error) {
	if m.missing[file] {
		return "", errors.New("executable file not found in $PATH")
	}
	return "/usr/bin/" + file, nil
}

func (m *mockRunner) Run(_ context.Context, name string, args []string, stdout, stderr io.Writer) error {
	m.calls = append(m.calls, append([]string{name}, args...))
	if m.runFunc != nil {
		return m.runFunc(name, args, stdout, stderr)
	}
	return nil
}

// failingRunner fails the test if the executor ever reaches it.
type failingRunner struct{ t *testing.T }

func (f failingRunner) LookPath(file string) (string, error) {
	f.t.Fatalf("LookPath(%q) called for a plan that needs no conversion", file)
	return "", nil
}

func (f failingRunner) Run(_ context.Context, name string, _ []string, _, _ io.Writer) error {
	f.t.Fatalf("Run(%q) called for a plan that needs no conversion", name)
	return nil
}

func defaultCatalog(t *testing.T) *format.Catalog {
	t.Helper()
	c, err := format.NewCatalog([]types.FileFormat{
		{
			Name:            "image",
			Members:         []string{".png", ".jpg", ".jpeg", ".webp"},
			Transformations: [][]string{{"image", "magick {s} {e}"}},
		},
		{
			Name:            "video",
			Members:         []string{".mp4", ".mov", ".avi", ".mkv"},
			Transformations: [][]string{{"video", "ffmpeg -i {s} {e}"}},
		},
	})
	require.NoError(t, err)
	return c
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestExecuteConvertsWithTemplate(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, "photo.png", "png bytes")

	run := &mockRunner{}
	e := newExecutor(defaultCatalog(t), run)

	plan := types.Plan{Source: "photo.png", Dest: "photo.jpg", SourceExt: ".png", TargetExt: ".jpg", NeedsConversion: true}
	res, err := e.Execute(context.Background(), plan, true)
	require.NoError(t, err)

	assert.Equal(t, types.ActionConvert, res.Action)
	assert.Equal(t, "magick photo.png photo.jpg", res.CommandLine())
	require.Len(t, run.calls, 1)
	assert.Equal(t, []string{"magick", "photo.png", "photo.jpg"}, run.calls[0])
	assert.NoFileExists(t, "photo.png", "source is removed after a successful move")
}

func TestExecuteKeepsSourceWithoutDelete(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "clip.mov")
	writeFile(t, src, "mov")

	run := &mockRunner{}
	e := newExecutor(defaultCatalog(t), run)

	plan := types.Plan{Source: src, Dest: filepath.Join(dir, "clip.mp4"), SourceExt: ".mov", TargetExt: ".mp4", NeedsConversion: true}
	_, err := e.Execute(context.Background(), plan, false)
	require.NoError(t, err)

	assert.Equal(t, []string{"ffmpeg", "-i", src, filepath.Join(dir, "clip.mp4")}, run.calls[0])
	assert.FileExists(t, src)
}

func TestExecuteFailedConversionKeepsSource(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "photo.png")
	writeFile(t, src, "png")

	run := &mockRunner{runFunc: func(string, []string, io.Writer, io.Writer) error {
		return errors.New("boom")
	}}
	e := newExecutor(defaultCatalog(t), run)

	plan := types.Plan{Source: src, Dest: filepath.Join(dir, "photo.webp"), SourceExt: ".png", TargetExt: ".webp", NeedsConversion: true}
	_, err := e.Execute(context.Background(), plan, true)
	require.ErrorIs(t, err, ErrProcessSpawn)
	assert.FileExists(t, src)
}

func TestExecuteMissingExecutable(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "photo.png")
	writeFile(t, src, "png")

	run := &mockRunner{missing: map[string]bool{"magick": true}}
	e := newExecutor(defaultCatalog(t), run)

	plan := types.Plan{Source: src, Dest: filepath.Join(dir, "photo.jpg"), SourceExt: ".png", TargetExt: ".jpg", NeedsConversion: true}
	_, err := e.Execute(context.Background(), plan, true)
	require.ErrorIs(t, err, ErrProcessSpawn)
	assert.Contains(t, err.Error(), `"magick"`)
	assert.Empty(t, run.calls)
	assert.FileExists(t, src)
}

func TestExecuteResolutionErrors(t *testing.T) {
	e := newExecutor(defaultCatalog(t), failingRunner{t})

	tests := []struct {
		name    string
		plan    types.Plan
		wantErr error
	}{
		{
			name:    "unknown source format",
			plan:    types.Plan{Source: "a.docx", Dest: "a.pdf", SourceExt: ".docx", TargetExt: ".pdf", NeedsConversion: true},
			wantErr: format.ErrUnknownFormat,
		},
		{
			name:    "no transformation across formats",
			plan:    types.Plan{Source: "a.png", Dest: "a.mp4", SourceExt: ".png", TargetExt: ".mp4", NeedsConversion: true},
			wantErr: format.ErrNoTransformation,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Execute(context.Background(), tt.plan, true)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecuteCopyNeverSpawns(t *testing.T) {
	broken, err := format.NewCatalog([]types.FileFormat{{
		Name:            "image",
		Members:         []string{".png"},
		Transformations: [][]string{{"image", "/nonexistent/converter --explode {s} {e}"}},
	}})
	require.NoError(t, err)

	dir := t.TempDir()
	src := filepath.Join(dir, "photo.png")
	dst := filepath.Join(dir, "copy.png")
	writeFile(t, src, "png bytes")

	e := newExecutor(broken, failingRunner{t})
	plan := types.Plan{Source: src, Dest: dst, SourceExt: ".png", TargetExt: ".png"}

	res, err := e.Execute(context.Background(), plan, false)
	require.NoError(t, err)
	assert.Equal(t, types.ActionCopy, res.Action)
	assert.Equal(t, "png bytes", readFile(t, dst))
	assert.Equal(t, "png bytes", readFile(t, src))
}

func TestExecuteCopyWritesThroughSymlink(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "photo.png")
	target := filepath.Join(dir, "real.png")
	link := filepath.Join(dir, "link.png")
	writeFile(t, src, "new")
	writeFile(t, target, "old")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	e := newExecutor(defaultCatalog(t), failingRunner{t})
	res, err := e.Execute(context.Background(), types.Plan{Source: src, Dest: link, SourceExt: ".png", TargetExt: ".png"}, false)
	require.NoError(t, err)
	assert.Equal(t, types.ActionCopy, res.Action)

	info, err := os.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink, "link must survive the copy")
	assert.Equal(t, "new", readFile(t, target))
	assert.Equal(t, "new", readFile(t, link))
}

func TestResolveDest(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "real.png")
	writeFile(t, target, "x")
	link := filepath.Join(dir, "link.png")
	dangling := filepath.Join(dir, "dangling.png")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	require.NoError(t, os.Symlink(filepath.Join(dir, "missing.png"), dangling))

	want, err := filepath.EvalSymlinks(target)
	require.NoError(t, err)

	assert.Equal(t, want, resolveDest(link))
	assert.Equal(t, target, resolveDest(target))
	assert.Equal(t, dangling, resolveDest(dangling))
	assert.Equal(t, filepath.Join(dir, "new.png"), resolveDest(filepath.Join(dir, "new.png")))
}

func TestExecuteMove(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "clip.mp4")
	dst := filepath.Join(dir, "outdir", "clip.mp4")
	writeFile(t, src, "mp4")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "outdir"), 0o755))

	e := newExecutor(defaultCatalog(t), failingRunner{t})
	res, err := e.Execute(context.Background(), types.Plan{Source: src, Dest: dst, SourceExt: ".mp4", TargetExt: ".mp4"}, true)
	require.NoError(t, err)
	assert.Equal(t, types.ActionMove, res.Action)
	assert.NoFileExists(t, src)
	assert.Equal(t, "mp4", readFile(t, dst))
}

func TestExecuteSameFileIsUnchanged(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "photo.png")
	writeFile(t, src, "png")

	e := newExecutor(defaultCatalog(t), failingRunner{t})
	plan := types.Plan{Source: src, Dest: filepath.Join(dir, ".", "photo.png"), SourceExt: ".png", TargetExt: ".png"}

	for _, del := range []bool{false, true} {
		res, err := e.Execute(context.Background(), plan, del)
		require.NoError(t, err)
		assert.Equal(t, types.ActionUnchanged, res.Action)
		assert.Equal(t, "png", readFile(t, src))
	}
}

func TestExecuteCopyFailureLeavesNoPartialFile(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "out.png")

	e := newExecutor(defaultCatalog(t), failingRunner{t})
	_, err := e.Execute(context.Background(), types.Plan{
		Source: filepath.Join(dir, "missing.png"), Dest: dst, SourceExt: ".png", TargetExt: ".png",
	}, true)
	require.ErrorIs(t, err, ErrFilesystem)
	assert.NoFileExists(t, dst)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCopyFileIntoMissingDirectory(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.png")
	writeFile(t, src, "png")

	err := copyFile(src, filepath.Join(dir, "nope", "a.png"))
	require.ErrorIs(t, err, ErrFilesystem)
	assert.FileExists(t, src)
}

func TestCopyFileKeepsMode(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "run.sh")
	require.NoError(t, os.WriteFile(src, []byte("#!/bin/sh\n"), 0o755))

	dst := filepath.Join(dir, "run-copy.sh")
	require.NoError(t, copyFile(src, dst))

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}

func TestCopyFileOverwrites(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.png")
	dst := filepath.Join(dir, "b.png")
	writeFile(t, src, "new")
	writeFile(t, dst, "old contents that are longer")

	require.NoError(t, copyFile(src, dst))
	assert.Equal(t, "new", readFile(t, dst))
}

func TestDescribe(t *testing.T) {
	e := newExecutor(defaultCatalog(t), failingRunner{t})

	res, err := e.Describe(types.Plan{Source: "in dir/a.mkv", Dest: "b.avi", SourceExt: ".mkv", TargetExt: ".avi", NeedsConversion: true}, false)
	require.NoError(t, err)
	assert.Equal(t, types.ActionConvert, res.Action)
	assert.Equal(t, []string{"ffmpeg", "-i", "in dir/a.mkv", "b.avi"}, res.Command)

	res, err = e.Describe(types.Plan{Source: "a.png", Dest: "out/a.png", SourceExt: ".png", TargetExt: ".png"}, false)
	require.NoError(t, err)
	assert.Equal(t, types.ActionCopy, res.Action)
	assert.Empty(t, res.CommandLine())

	res, err = e.Describe(types.Plan{Source: "a.png", Dest: "out/a.png", SourceExt: ".png", TargetExt: ".png"}, true)
	require.NoError(t, err)
	assert.Equal(t, types.ActionMove, res.Action)
}

func TestExecuteForwardsConverterOutput(t *testing.T) {
	run := &mockRunner{runFunc: func(_ string, _ []string, stdout, stderr io.Writer) error {
		io.WriteString(stdout, "frame=1\n")
		io.WriteString(stderr, "warning: lossy\n")
		return nil
	}}
	e := newExecutor(defaultCatalog(t), run)
	var out, errOut bytes.Buffer
	e.Stdout, e.Stderr = &out, &errOut

	_, err := e.Execute(context.Background(), types.Plan{
		Source: "a.mp4", Dest: "a.mkv", SourceExt: ".mp4", TargetExt: ".mkv", NeedsConversion: true,
	}, false)
	require.NoError(t, err)
	assert.Equal(t, "frame=1\n", out.String())
	assert.True(t, strings.HasPrefix(errOut.String(), "warning"))
}
