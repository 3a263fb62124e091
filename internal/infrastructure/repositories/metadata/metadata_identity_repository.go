package metadata

import (
	"crypto/sha1" //nolint:gosec // public key tokens are defined as SHA-1 digests
	"debug/pe"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rios0rios0/repacktask/internal/domain/entities"
	"github.com/rios0rios0/repacktask/internal/domain/repositories"
)

var (
	// ErrNotManagedAssembly is returned for files that are not PE images carrying an assembly manifest.
	ErrNotManagedAssembly = errors.New("not a managed assembly")

	// ErrMalformedMetadata is returned when the CLI metadata is truncated or inconsistent.
	ErrMalformedMetadata = errors.New("malformed CLI metadata")
)

const (
	cliHeaderDirectoryIndex = 14
	cliHeaderMinSize        = 16 // cb, runtime version and the MetaData directory
	publicKeyTokenSize      = 8
)

// IdentityRepository reads assembly identities from PE files on disk.
type IdentityRepository struct{}

var _ repositories.IdentityRepository = (*IdentityRepository)(nil)

// NewIdentityRepository creates a new IdentityRepository.
func NewIdentityRepository() *IdentityRepository {
	return &IdentityRepository{}
}

// ReadIdentity opens path read-only, decodes its assembly manifest and closes
// the file before returning, whatever the outcome.
func (it *IdentityRepository) ReadIdentity(path string) (entities.Identity, error) {
	file, err := os.Open(path)
	if err != nil {
		return entities.Identity{}, fmt.Errorf("failed to open %q: %w", path, err)
	}
	defer file.Close()

	identity, err := ReadIdentityFrom(file)
	if err != nil {
		return entities.Identity{}, fmt.Errorf("failed to read assembly identity from %q: %w", path, err)
	}
	return identity, nil
}

// ReadIdentityFrom decodes the assembly identity of a PE image.
func ReadIdentityFrom(reader io.ReaderAt) (entities.Identity, error) {
	image, err := pe.NewFile(reader)
	if err != nil {
		return entities.Identity{}, fmt.Errorf("%w: %v", ErrNotManagedAssembly, err)
	}
	defer image.Close()

	root, err := readMetadataRoot(image)
	if err != nil {
		return entities.Identity{}, err
	}
	return decodeAssemblyIdentity(root)
}

// readMetadataRoot follows the CLI header data directory to the metadata root.
func readMetadataRoot(image *pe.File) ([]byte, error) {
	var directory pe.DataDirectory
	switch header := image.OptionalHeader.(type) {
	case *pe.OptionalHeader32:
		if header.NumberOfRvaAndSizes <= cliHeaderDirectoryIndex {
			return nil, fmt.Errorf("%w: no CLI header directory", ErrNotManagedAssembly)
		}
		directory = header.DataDirectory[cliHeaderDirectoryIndex]
	case *pe.OptionalHeader64:
		if header.NumberOfRvaAndSizes <= cliHeaderDirectoryIndex {
			return nil, fmt.Errorf("%w: no CLI header directory", ErrNotManagedAssembly)
		}
		directory = header.DataDirectory[cliHeaderDirectoryIndex]
	default:
		return nil, fmt.Errorf("%w: missing optional header", ErrNotManagedAssembly)
	}

	if directory.VirtualAddress == 0 || directory.Size < cliHeaderMinSize {
		return nil, fmt.Errorf("%w: empty CLI header directory", ErrNotManagedAssembly)
	}

	cliHeader, err := readRVA(image, directory.VirtualAddress, cliHeaderMinSize)
	if err != nil {
		return nil, err
	}

	metadataRVA := binary.LittleEndian.Uint32(cliHeader[8:])
	metadataSize := binary.LittleEndian.Uint32(cliHeader[12:])
	if metadataRVA == 0 || metadataSize == 0 {
		return nil, fmt.Errorf("%w: CLI header has no metadata", ErrNotManagedAssembly)
	}

	return readRVA(image, metadataRVA, metadataSize)
}

// readRVA reads size bytes at a relative virtual address from the section containing it.
func readRVA(image *pe.File, rva, size uint32) ([]byte, error) {
	for _, section := range image.Sections {
		extent := max(section.VirtualSize, section.Size)
		if rva < section.VirtualAddress || rva-section.VirtualAddress >= extent {
			continue
		}

		offset := rva - section.VirtualAddress
		if uint64(offset)+uint64(size) > uint64(section.Size) {
			return nil, fmt.Errorf("%w: RVA 0x%x+%d exceeds section %q", ErrMalformedMetadata, rva, size, section.Name)
		}

		data := make([]byte, size)
		if _, err := section.ReadAt(data, int64(offset)); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedMetadata, err)
		}
		return data, nil
	}

	return nil, fmt.Errorf("%w: RVA 0x%x is outside every section", ErrMalformedMetadata, rva)
}

// decodeAssemblyIdentity reads the single row of the Assembly table.
func decodeAssemblyIdentity(root []byte) (entities.Identity, error) {
	streams, err := parseStreams(root)
	if err != nil {
		return entities.Identity{}, err
	}

	tableData, ok := streams[compressedTablesStream]
	if !ok {
		tableData, ok = streams[uncompressedTablesStream]
	}
	if !ok {
		return entities.Identity{}, fmt.Errorf("%w: no table stream", ErrMalformedMetadata)
	}

	tables, err := parseTableStream(tableData)
	if err != nil {
		return entities.Identity{}, err
	}
	if tables.rows[tableAssembly] == 0 {
		return entities.Identity{}, fmt.Errorf("%w: module has no assembly manifest", ErrNotManagedAssembly)
	}

	row, err := tables.firstRow(tableAssembly)
	if err != nil {
		return entities.Identity{}, err
	}

	heap := heaps{stringHeap: streams[stringsStream], blobHeap: streams[blobStream]}
	reader := rowReader{data: row, tables: tables}

	reader.skip(4) // HashAlgId
	version := entities.NewVersion(
		int(reader.uint16()), int(reader.uint16()), int(reader.uint16()), int(reader.uint16()),
	)
	reader.skip(4) // Flags

	publicKey, err := heap.readBlob(reader.heapIndex(blobHeapFlag))
	if err != nil {
		return entities.Identity{}, err
	}
	name, err := heap.readString(reader.heapIndex(stringHeapFlag))
	if err != nil {
		return entities.Identity{}, err
	}
	culture, err := heap.readString(reader.heapIndex(stringHeapFlag))
	if err != nil {
		return entities.Identity{}, err
	}
	if name == "" {
		return entities.Identity{}, fmt.Errorf("%w: assembly has no name", ErrMalformedMetadata)
	}

	return entities.Identity{
		Name:           name,
		Version:        version,
		Culture:        culture,
		PublicKeyToken: publicKeyToken(publicKey),
	}, nil
}

// publicKeyToken is the last eight bytes of the SHA-1 digest of the key, reversed.
func publicKeyToken(publicKey []byte) []byte {
	if len(publicKey) == 0 {
		return nil
	}
	digest := sha1.Sum(publicKey) //nolint:gosec // see import
	token := make([]byte, publicKeyTokenSize)
	for i := range publicKeyTokenSize {
		token[i] = digest[len(digest)-1-i]
	}
	return token
}
