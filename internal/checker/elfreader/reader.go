// Package elfreader wraps the debug/elf collaborator: it turns one ELF file
// into a symtab.Binary fact table (declared dependencies, defined symbols
// with size and type, imported symbols) and is the only package that touches
// raw container bytes.
package elfreader

import (
	"bytes"
	"debug/elf"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/isseis/go-symbol-audit/internal/checker/symtab"
)

// elfMagicStr is the ELF magic number string literal.
const elfMagicStr = "\x7fELF"

// elfMagic is the ELF magic number bytes.
var elfMagic = []byte(elfMagicStr)

// elfMagicLen is the number of bytes in the ELF magic number.
const elfMagicLen = len(elfMagicStr)

// maxFileSize is the maximum file size accepted for analysis (1 GB).
const maxFileSize = 1 << 30

// Static errors for linter compliance (err113).
var (
	// ErrNotELF indicates the file cannot be parsed as an ELF container.
	ErrNotELF = errors.New("file is not an ELF binary")

	// ErrNotRegularFile indicates the file is not a regular file.
	ErrNotRegularFile = errors.New("not a regular file")

	// ErrFileTooLarge indicates the file exceeds the maximum size for analysis.
	ErrFileTooLarge = errors.New("file too large")
)

// Reader extracts symbol fact tables from ELF files on disk.
type Reader struct{}

// NewReader creates a new Reader.
func NewReader() *Reader {
	return &Reader{}
}

// Read parses the ELF file at path into a symtab.Binary. It fails with
// ErrNotELF (wrapped) when the file is not a valid ELF container, and with
// ErrNotRegularFile / ErrFileTooLarge for files that should never be handed
// to the parser in the first place.
func (r *Reader) Read(path string) (*symtab.Binary, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			slog.Warn("error closing file during symbol extraction",
				slog.String("path", path), slog.Any("error", closeErr))
		}
	}()

	// Reject devices, FIFOs, and oversized files before parsing. This
	// prevents resource exhaustion when a search path entry points at
	// something that merely shares a library's filename.
	fileInfo, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if !fileInfo.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotRegularFile, fileInfo.Mode())
	}
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrFileTooLarge, fileInfo.Size(), maxFileSize)
	}

	// Check the magic number explicitly so non-ELF input gets a stable,
	// matchable error instead of whatever debug/elf reports.
	magic := make([]byte, elfMagicLen)
	if _, err := io.ReadFull(file, magic); err != nil {
		return nil, fmt.Errorf("%w: failed to read magic number: %s", ErrNotELF, err)
	}
	if !isELFMagic(magic) {
		return nil, fmt.Errorf("%w: %s", ErrNotELF, path)
	}

	// os.File implements io.ReaderAt, so the already-open handle can be
	// passed to elf.NewFile without re-opening the path.
	elfFile, err := elf.NewFile(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotELF, err)
	}
	defer func() {
		if closeErr := elfFile.Close(); closeErr != nil {
			slog.Warn("error closing ELF file during symbol extraction",
				slog.String("path", path), slog.Any("error", closeErr))
		}
	}()

	bin := symtab.NewBinary(path)

	needed, err := elfFile.ImportedLibraries()
	if err != nil {
		// A missing dynamic section means a statically linked binary
		// with zero declared dependencies, not a malformed container.
		slog.Debug("no dynamic section", slog.String("path", path), slog.Any("error", err))
	}
	bin.NeededLibs = needed

	// Collect facts from both .symtab and .dynsym. Either table may be
	// absent (stripped binaries keep only .dynsym); that is not an error.
	if syms, err := elfFile.Symbols(); err == nil {
		recordSymbols(bin, syms)
	} else if !errors.Is(err, elf.ErrNoSymbols) {
		return nil, fmt.Errorf("failed to read symbol table: %w", err)
	}
	if dynsyms, err := elfFile.DynamicSymbols(); err == nil {
		recordSymbols(bin, dynsyms)
	} else if !errors.Is(err, elf.ErrNoSymbols) {
		return nil, fmt.Errorf("failed to read dynamic symbols: %w", err)
	}

	return bin, nil
}

// recordSymbols folds one ELF symbol table into the fact table. Undefined
// entries (SHN_UNDEF) become imported references; everything else with a
// name becomes a definition with its size and type.
func recordSymbols(bin *symtab.Binary, syms []elf.Symbol) {
	for _, sym := range syms {
		if sym.Name == "" {
			continue
		}
		if sym.Section == elf.SHN_UNDEF {
			bin.AddReferenced(sym.Name)
			continue
		}
		bin.AddDefined(sym.Name, sym.Size, symbolType(elf.ST_TYPE(sym.Info)))
	}
}

// symbolType maps ELF STT values onto the checker's symbol-type enum.
func symbolType(st elf.SymType) symtab.SymbolType {
	switch st {
	case elf.STT_OBJECT:
		return symtab.TypeObject
	case elf.STT_FUNC:
		return symtab.TypeFunc
	case elf.STT_SECTION:
		return symtab.TypeSection
	case elf.STT_FILE:
		return symtab.TypeFile
	case elf.STT_COMMON:
		return symtab.TypeCommon
	case elf.STT_TLS:
		return symtab.TypeTLS
	default:
		return symtab.TypeNoType
	}
}

// isELFMagic checks if the given bytes match the ELF magic number.
func isELFMagic(magic []byte) bool {
	if len(magic) < elfMagicLen {
		return false
	}
	return bytes.Equal(magic[:elfMagicLen], elfMagic)
}
