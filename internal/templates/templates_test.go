package templates

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erg0nix/ralphed/internal/core"
)

func TestBundledContainsManifest(t *testing.T) {
	fsys := Bundled()

	for _, e := range Manifest {
		data, err := fs.ReadFile(fsys, e.Src)
		require.NoError(t, err, e.Src)
		assert.NotEmpty(t, data, e.Src)
	}

	_, err := fs.ReadFile(fsys, RequirementsFile)
	assert.NoError(t, err)
}

func TestPrepareTargetCreatesLogsPlaceholder(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "fresh", "plans")

	created, err := PrepareTarget(dir)
	require.NoError(t, err)
	assert.True(t, created)

	info, err := os.Stat(filepath.Join(dir, LogsDir))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	placeholder, err := os.Stat(filepath.Join(dir, LogsDir, PlaceholderFile))
	require.NoError(t, err)
	assert.Zero(t, placeholder.Size())
}

func TestPrepareTargetExistingDirectory(t *testing.T) {
	dir := t.TempDir()
	keep := filepath.Join(dir, "keep.txt")
	require.NoError(t, os.WriteFile(keep, []byte("mine"), 0o644))

	created, err := PrepareTarget(dir)
	require.NoError(t, err)
	assert.False(t, created)

	created, err = PrepareTarget(dir)
	require.NoError(t, err)
	assert.False(t, created)

	data, err := os.ReadFile(keep)
	require.NoError(t, err)
	assert.Equal(t, "mine", string(data))
}

func TestInstallCopiesAndRenames(t *testing.T) {
	dir := t.TempDir()

	result, err := Install(Bundled(), dir)
	require.NoError(t, err)
	assert.Empty(t, result.Skipped)
	assert.Len(t, result.Created, len(Manifest))

	for _, e := range Manifest {
		want, err := fs.ReadFile(Bundled(), e.Src)
		require.NoError(t, err)

		got, err := os.ReadFile(filepath.Join(dir, e.Dest))
		require.NoError(t, err, e.Dest)
		assert.Equal(t, want, got, e.Dest)
	}

	_, err = os.Stat(filepath.Join(dir, "gitignore"))
	assert.True(t, os.IsNotExist(err), "source name must not leak into the target")
}

func TestInstallExecutableBits(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not meaningful on windows")
	}

	dir := t.TempDir()
	_, err := Install(Bundled(), dir)
	require.NoError(t, err)

	for _, e := range Manifest {
		info, err := os.Stat(filepath.Join(dir, e.Dest))
		require.NoError(t, err)

		isScript := filepath.Ext(e.Dest) == ".sh"
		executable := info.Mode().Perm()&0o111 != 0
		assert.Equal(t, isScript, executable, "%s mode %v", e.Dest, info.Mode().Perm())
	}
}

func TestInstallOverwritesAndResetsMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not meaningful on windows")
	}

	dir := t.TempDir()
	stale := filepath.Join(dir, "AGENTS.md")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0o755))

	_, err := Install(Bundled(), dir)
	require.NoError(t, err)

	want, err := fs.ReadFile(Bundled(), "AGENTS.md")
	require.NoError(t, err)
	got, err := os.ReadFile(stale)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	info, err := os.Stat(stale)
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0o644), info.Mode().Perm())
}

func TestInstallIdempotent(t *testing.T) {
	dir := t.TempDir()

	first, err := Install(Bundled(), dir)
	require.NoError(t, err)
	before := listDir(t, dir)

	second, err := Install(Bundled(), dir)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, before, listDir(t, dir))
}

func TestInstallSkipsMissingSources(t *testing.T) {
	dir := t.TempDir()
	fsys := fstest.MapFS{
		ScriptFile:  {Data: []byte("#!/bin/sh\n")},
		"AGENTS.md": {Data: []byte("# agents\n")},
	}

	result, err := Install(fsys, dir)
	require.NoError(t, err)

	assert.Equal(t, []string{ScriptFile, "AGENTS.md"}, result.Created)
	assert.Equal(t, []string{"gitignore", PlanFile, "PROMPT_plan.md", "PROMPT_build.md"}, result.Skipped)

	_, err = os.Stat(filepath.Join(dir, ".gitignore"))
	assert.True(t, os.IsNotExist(err))
}

func TestPlaceRequirementsTemplate(t *testing.T) {
	dir := t.TempDir()

	placement, err := PlaceRequirements(Bundled(), dir, core.Requirements{})
	require.NoError(t, err)
	assert.Equal(t, PlacementTemplate, placement)

	want, err := fs.ReadFile(Bundled(), RequirementsFile)
	require.NoError(t, err)
	got, err := os.ReadFile(filepath.Join(dir, RequirementsFile))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestPlaceRequirementsTemplateMissing(t *testing.T) {
	dir := t.TempDir()

	placement, err := PlaceRequirements(fstest.MapFS{}, dir, core.Requirements{})
	require.NoError(t, err)
	assert.Equal(t, PlacementNone, placement)
	assertNoRequirementsFile(t, dir)
}

func TestPlaceRequirementsCopiesFile(t *testing.T) {
	src := filepath.Join(t.TempDir(), "my-prd.md")
	content := []byte("# My product\n\nbytes \x00 and all\n")
	require.NoError(t, os.WriteFile(src, content, 0o600))

	dir := t.TempDir()
	placement, err := PlaceRequirements(Bundled(), dir, core.StatRequirements(src))
	require.NoError(t, err)
	assert.Equal(t, PlacementCopied, placement)

	got, err := os.ReadFile(filepath.Join(dir, RequirementsFile))
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestPlaceRequirementsSameFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, RequirementsFile)
	require.NoError(t, os.WriteFile(src, []byte("keep me"), 0o644))

	placement, err := PlaceRequirements(Bundled(), dir, core.StatRequirements(src))
	require.NoError(t, err)
	assert.Equal(t, PlacementCopied, placement)

	got, err := os.ReadFile(src)
	require.NoError(t, err)
	assert.Equal(t, "keep me", string(got))
}

func TestPlaceRequirementsDirectory(t *testing.T) {
	prdDir := t.TempDir()
	dir := t.TempDir()

	placement, err := PlaceRequirements(Bundled(), dir, core.StatRequirements(prdDir))
	require.NoError(t, err)
	assert.Equal(t, PlacementDirectory, placement)
	assertNoRequirementsFile(t, dir)
}

func TestPlaceRequirementsMissingPath(t *testing.T) {
	dir := t.TempDir()

	req := core.StatRequirements(filepath.Join(t.TempDir(), "nope.md"))
	placement, err := PlaceRequirements(Bundled(), dir, req)
	require.NoError(t, err)
	assert.Equal(t, PlacementNone, placement)
	assertNoRequirementsFile(t, dir)
}

func assertNoRequirementsFile(t *testing.T, dir string) {
	t.Helper()
	_, err := os.Stat(filepath.Join(dir, RequirementsFile))
	assert.True(t, os.IsNotExist(err), "%s should not exist", RequirementsFile)
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
