package fsys

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeOf(t *testing.T) {
	dir := t.TempDir()

	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	link := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink(file, link))

	fifo := filepath.Join(dir, "fifo")
	require.NoError(t, CreateFifo(fifo, 0644))

	for _, tc := range []struct {
		path string
		want FileType
	}{
		{file, Regular},
		{dir, Directory},
		{link, Symlink}, // the link itself, not its target
		{fifo, Fifo},
	} {
		got, err := TypeOf(tc.path)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, tc.path)
	}

	_, err := TypeOf(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "regular file", Regular.String())
	assert.Equal(t, "socket", Socket.String())
	assert.Equal(t, "unknown", FileType(99).String())
}

func TestIdentityOf(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	a, err := IdentityOf(file, false)
	require.NoError(t, err)
	b, err := IdentityOf(file, true)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	other := filepath.Join(dir, "other")
	require.NoError(t, os.WriteFile(other, []byte("y"), 0644))
	c, err := IdentityOf(other, false)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestIdentityOfSymlink(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
	link := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink(file, link))

	fileID, err := IdentityOf(file, false)
	require.NoError(t, err)

	followed, err := IdentityOf(link, true)
	require.NoError(t, err)
	assert.Equal(t, fileID, followed)

	linkID, err := IdentityOf(link, false)
	require.NoError(t, err)
	assert.NotEqual(t, fileID, linkID)
}

func TestCopyRegular(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")

	data := []byte("some file content")
	require.NoError(t, os.WriteFile(src, data, 0600))

	n, err := CopyRegular(src, dst)
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), n)

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, data, got)

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestCopyRegularOverwrites(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")

	require.NoError(t, os.WriteFile(src, []byte("new"), 0644))
	require.NoError(t, os.WriteFile(dst, []byte("old and longer"), 0600))

	_, err := CopyRegular(src, dst)
	require.NoError(t, err)

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), got)

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
}

func TestCopyRegularRefusesSymlinkDest(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0644))

	dst := filepath.Join(dir, "dst")
	require.NoError(t, os.Symlink(filepath.Join(dir, "dangling"), dst))

	_, err := CopyRegular(src, dst)
	assert.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "dangling"))
}

func TestCreateSymlink(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "link")

	require.NoError(t, CreateSymlink("some/relative/target", dst))

	target, err := os.Readlink(dst)
	require.NoError(t, err)
	assert.Equal(t, "some/relative/target", target)
}

func TestCreateFifo(t *testing.T) {
	dir := t.TempDir()
	fifo := filepath.Join(dir, "fifo")

	require.NoError(t, CreateFifo(fifo, 0640))

	info, err := os.Lstat(fifo)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeNamedPipe)
	assert.Equal(t, os.FileMode(0640), info.Mode().Perm())
}

func TestCreateDirectory(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "sub")

	require.NoError(t, CreateDirectory(dst, 0750))

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, os.FileMode(0750), info.Mode().Perm())

	// Existing destination is an error, not a merge.
	assert.Error(t, CreateDirectory(dst, 0750))
}

func TestCreateDirectoryKeepsSetgidAndSticky(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "shared")

	require.NoError(t, CreateDirectory(dst, 0770|os.ModeSetgid|os.ModeSticky))

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0770), info.Mode().Perm())
	assert.NotZero(t, info.Mode()&os.ModeSetgid)
	assert.NotZero(t, info.Mode()&os.ModeSticky)
}

func TestCopyRegularVirtualFile(t *testing.T) {
	// procfs files stat with a zero size; the copy must still read to EOF.
	if _, err := os.Stat("/proc/version"); err != nil {
		t.Skip("procfs not available")
	}

	dst := filepath.Join(t.TempDir(), "version")
	n, err := CopyRegular("/proc/version", dst)
	require.NoError(t, err)

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.NotEmpty(t, got)
	assert.Equal(t, int64(len(got)), n)
}

func TestListChildren(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "file"), []byte("x"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))
	require.NoError(t, os.Symlink("file", filepath.Join(dir, "link")))

	children, err := ListChildren(dir)
	require.NoError(t, err)
	require.Len(t, children, 3)

	types := make(map[string]FileType, len(children))
	for _, child := range children {
		require.NoError(t, child.Err)
		types[child.Name] = child.Type
	}
	assert.Equal(t, Regular, types["file"])
	assert.Equal(t, Directory, types["sub"])
	assert.Equal(t, Symlink, types["link"])
}

func TestListChildrenMissingDir(t *testing.T) {
	_, err := ListChildren(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestCopyDeviceBytes(t *testing.T) {
	if _, err := os.Stat("/dev/null"); err != nil {
		t.Skip("/dev/null not available")
	}

	dir := t.TempDir()
	dst := filepath.Join(dir, "null-copy")

	n, err := CopyDeviceBytes("/dev/null", dst, 0644)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.True(t, info.Mode().IsRegular())
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
}
