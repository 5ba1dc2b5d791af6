package elfreader

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeMinimalELF writes a valid ELF64 header with no program or section
// headers: the smallest container debug/elf accepts. It yields a binary
// with no symbols and no declared dependencies.
func writeMinimalELF(t *testing.T) string {
	t.Helper()

	buf := make([]byte, 64)
	copy(buf, []byte{0x7f, 'E', 'L', 'F'})
	buf[4] = 2 // ELFCLASS64
	buf[5] = 1 // ELFDATA2LSB
	buf[6] = 1 // EV_CURRENT
	le := binary.LittleEndian
	le.PutUint16(buf[16:], 2)    // e_type: ET_EXEC
	le.PutUint16(buf[18:], 0x3e) // e_machine: EM_X86_64
	le.PutUint32(buf[20:], 1)    // e_version
	le.PutUint16(buf[52:], 64)   // e_ehsize

	path := filepath.Join(t.TempDir(), "minimal")
	require.NoError(t, os.WriteFile(path, buf, 0o600))
	return path
}

func TestRead_MinimalELF(t *testing.T) {
	reader := NewReader()
	bin, err := reader.Read(writeMinimalELF(t))
	require.NoError(t, err)

	assert.Empty(t, bin.Symbols)
	assert.Empty(t, bin.NeededLibs)
	assert.NotEmpty(t, bin.Path)
}

func TestRead_NonexistentFile(t *testing.T) {
	_, err := NewReader().Read(filepath.Join(t.TempDir(), "no_such_file"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRead_NotAnELF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("just some text, long enough to read magic"), 0o600))

	_, err := NewReader().Read(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotELF)
}

func TestRead_TruncatedMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiny")
	require.NoError(t, os.WriteFile(path, []byte{0x7f, 'E'}, 0o600))

	_, err := NewReader().Read(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotELF)
}

func TestRead_ELFMagicButCorruptHeader(t *testing.T) {
	// Correct magic followed by garbage must fail as malformed, not crash.
	data := append([]byte{0x7f, 'E', 'L', 'F'}, []byte("garbage header bytes")...)
	path := filepath.Join(t.TempDir(), "corrupt")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	_, err := NewReader().Read(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotELF)
}

func TestRead_DirectoryIsRejected(t *testing.T) {
	_, err := NewReader().Read(t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotRegularFile)
}

func TestIsELFMagic(t *testing.T) {
	assert.True(t, isELFMagic([]byte{0x7f, 'E', 'L', 'F'}))
	assert.True(t, isELFMagic([]byte{0x7f, 'E', 'L', 'F', 2, 1}))
	assert.False(t, isELFMagic([]byte{0x7f, 'E', 'L'}))
	assert.False(t, isELFMagic([]byte("ELF\x7f")))
	assert.False(t, isELFMagic(nil))
}
