//go:build integration || unit || test

package repositorybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"bytes"
	"debug/pe"
	"encoding/binary"
	"fmt"
	"maps"
	"os"

	testkit "github.com/rios0rios0/testkit/pkg/test"
)

const (
	peHeaderOffset  = 0x80
	fileAlignment   = 0x200
	sectionRVA      = 0x2000
	cliHeaderSize   = 72
	metadataVersion = "v4.0.30319"
	tableCount      = 64

	// wideHeapFiller pushes every heap index written after it past 16 bits.
	wideHeapFiller = 0x10000
	rowFiller      = 0xA5
)

// Tables that WithRows can populate with filler rows.
const (
	TableTypeRef         = 0x01
	TableTypeDef         = 0x02
	TableField           = 0x04
	TableMethodDef       = 0x06
	TableParam           = 0x08
	TableMemberRef       = 0x0A
	TableCustomAttribute = 0x0C
	TableStandAloneSig   = 0x11
	TableModuleRef       = 0x1A
	TableTypeSpec        = 0x1B

	tableModule      = 0x00
	tableAssembly    = 0x20
	tableAssemblyRef = 0x23
)

// ECMAPublicKey is the well-known ECMA standard public key; its token is b77a5c561934e089.
//
//nolint:gochecknoglobals // fixture data
var ECMAPublicKey = []byte{0, 0, 0, 0, 0, 0, 0, 0, 4, 0, 0, 0, 0, 0, 0, 0}

// AssemblyImageBuilder writes minimal PE32 images carrying CLI metadata with a
// Module row, optional filler rows in other tables and, unless disabled, an
// Assembly row.
type AssemblyImageBuilder struct {
	*testkit.BaseBuilder
	name      string
	version   [4]uint16
	culture   string
	publicKey []byte
	manifest  bool
	rows      map[int]uint32
	wideHeaps bool
}

// NewAssemblyImageBuilder creates a builder for "Foo" version 1.0.0.0, neutral and unsigned.
func NewAssemblyImageBuilder() *AssemblyImageBuilder {
	return &AssemblyImageBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		name:        "Foo",
		version:     [4]uint16{1, 0, 0, 0},
		manifest:    true,
		rows:        map[int]uint32{},
	}
}

// WithName sets the assembly name.
func (b *AssemblyImageBuilder) WithName(name string) *AssemblyImageBuilder {
	b.name = name
	return b
}

// WithVersion sets the assembly version.
func (b *AssemblyImageBuilder) WithVersion(major, minor, build, revision uint16) *AssemblyImageBuilder {
	b.version = [4]uint16{major, minor, build, revision}
	return b
}

// WithCulture sets the assembly culture.
func (b *AssemblyImageBuilder) WithCulture(culture string) *AssemblyImageBuilder {
	b.culture = culture
	return b
}

// WithPublicKey sets the full public key stored in the manifest.
func (b *AssemblyImageBuilder) WithPublicKey(key []byte) *AssemblyImageBuilder {
	b.publicKey = key
	return b
}

// WithoutManifest produces a module without an Assembly row.
func (b *AssemblyImageBuilder) WithoutManifest() *AssemblyImageBuilder {
	b.manifest = false
	return b
}

// WithRows adds count filler rows to table. The row width follows the heap
// sizes and the row counts of the other tables, as a real compiler lays it out.
func (b *AssemblyImageBuilder) WithRows(table int, count uint32) *AssemblyImageBuilder {
	switch table {
	case TableTypeRef, TableTypeDef, TableField, TableMethodDef, TableParam, TableMemberRef,
		TableCustomAttribute, TableStandAloneSig, TableModuleRef, TableTypeSpec:
		b.rows[table] = count
	default:
		panic(fmt.Sprintf("no row layout for table 0x%02x", table))
	}
	return b
}

// WithWideHeaps sets the #Strings, #GUID and #Blob flags in HeapSizes and
// grows the heaps so the indexes of the manifest strings and blobs exceed 16 bits.
func (b *AssemblyImageBuilder) WithWideHeaps() *AssemblyImageBuilder {
	b.wideHeaps = true
	return b
}

// Build creates the image (satisfies testkit.Builder interface).
func (b *AssemblyImageBuilder) Build() interface{} {
	return b.BuildImage()
}

// BuildImage returns the bytes of the PE image.
func (b *AssemblyImageBuilder) BuildImage() []byte {
	metadata := b.metadata()

	section := new(bytes.Buffer)
	write(section, uint32(cliHeaderSize))
	write(section, uint16(2)) // runtime major
	write(section, uint16(5)) // runtime minor
	write(section, pe.DataDirectory{VirtualAddress: sectionRVA + cliHeaderSize, Size: uint32(len(metadata))})
	write(section, uint32(1)) // ILONLY
	section.Write(make([]byte, cliHeaderSize-section.Len()))
	section.Write(metadata)
	virtualSize := uint32(section.Len())
	pad(section, fileAlignment)

	image := new(bytes.Buffer)
	image.WriteString("MZ")
	image.Write(make([]byte, 0x3C-image.Len()))
	write(image, uint32(peHeaderOffset))
	pad(image, peHeaderOffset)
	image.WriteString("PE\x00\x00")

	optional := pe.OptionalHeader32{
		Magic:               0x10b,
		SectionAlignment:    sectionRVA,
		FileAlignment:       fileAlignment,
		SizeOfImage:         sectionRVA + uint32(section.Len()),
		SizeOfHeaders:       fileAlignment,
		Subsystem:           pe.IMAGE_SUBSYSTEM_WINDOWS_CUI,
		NumberOfRvaAndSizes: 16,
	}
	optional.DataDirectory[pe.IMAGE_DIRECTORY_ENTRY_COM_DESCRIPTOR] = pe.DataDirectory{
		VirtualAddress: sectionRVA,
		Size:           cliHeaderSize,
	}

	write(image, pe.FileHeader{
		Machine:              pe.IMAGE_FILE_MACHINE_I386,
		NumberOfSections:     1,
		SizeOfOptionalHeader: uint16(binary.Size(optional)),
		Characteristics:      pe.IMAGE_FILE_EXECUTABLE_IMAGE | pe.IMAGE_FILE_32BIT_MACHINE | pe.IMAGE_FILE_DLL,
	})
	write(image, optional)

	header := pe.SectionHeader32{
		VirtualSize:      virtualSize,
		VirtualAddress:   sectionRVA,
		SizeOfRawData:    uint32(section.Len()),
		PointerToRawData: fileAlignment,
		Characteristics:  pe.IMAGE_SCN_CNT_CODE | pe.IMAGE_SCN_MEM_EXECUTE | pe.IMAGE_SCN_MEM_READ,
	}
	copy(header.Name[:], ".text")
	write(image, header)

	pad(image, fileAlignment)
	image.Write(section.Bytes())
	return image.Bytes()
}

// WriteFile writes the image to path.
func (b *AssemblyImageBuilder) WriteFile(path string) error {
	return os.WriteFile(path, b.BuildImage(), 0o600)
}

// Reset clears the builder state, allowing it to be reused.
func (b *AssemblyImageBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.name = "Foo"
	b.version = [4]uint16{1, 0, 0, 0}
	b.culture = ""
	b.publicKey = nil
	b.manifest = true
	b.rows = map[int]uint32{}
	b.wideHeaps = false
	return b
}

// Clone creates a deep copy of the AssemblyImageBuilder.
func (b *AssemblyImageBuilder) Clone() testkit.Builder {
	return &AssemblyImageBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		name:        b.name,
		version:     b.version,
		culture:     b.culture,
		publicKey:   append([]byte(nil), b.publicKey...),
		manifest:    b.manifest,
		rows:        maps.Clone(b.rows),
		wideHeaps:   b.wideHeaps,
	}
}

// metadata lays out the metadata root followed by the #~, #Strings and #Blob streams.
func (b *AssemblyImageBuilder) metadata() []byte {
	strings := new(bytes.Buffer)
	strings.WriteByte(0)
	if b.wideHeaps {
		strings.Write(make([]byte, wideHeapFiller))
	}
	moduleName := addString(strings, b.name+".dll")
	assemblyName := addString(strings, b.name)
	culture := uint32(0)
	if b.culture != "" {
		culture = addString(strings, b.culture)
	}
	pad(strings, 4)

	blobs := new(bytes.Buffer)
	blobs.WriteByte(0)
	if b.wideHeaps {
		blobs.Write(make([]byte, wideHeapFiller))
	}
	publicKey := uint32(0)
	if len(b.publicKey) > 0 {
		publicKey = uint32(blobs.Len())
		if len(b.publicKey) < 0x80 {
			blobs.WriteByte(byte(len(b.publicKey)))
		} else {
			blobs.WriteByte(byte(0x80 | len(b.publicKey)>>8))
			blobs.WriteByte(byte(len(b.publicKey)))
		}
		blobs.Write(b.publicKey)
	}
	pad(blobs, 4)

	heapWidth := b.heapWidth()

	tables := new(bytes.Buffer)
	write(tables, uint32(0)) // reserved
	write(tables, uint8(2))  // major
	write(tables, uint8(0))  // minor
	heapSizes := uint8(0)
	if b.wideHeaps {
		heapSizes = 0x01 | 0x02 | 0x04
	}
	write(tables, heapSizes)
	write(tables, uint8(1)) // reserved
	valid := uint64(0)
	for table := range tableCount {
		if b.rowCount(table) > 0 {
			valid |= uint64(1) << table
		}
	}
	write(tables, valid)
	write(tables, uint64(0)) // sorted
	for table := range tableCount {
		if count := b.rowCount(table); count > 0 {
			write(tables, count)
		}
	}
	for table := range tableCount {
		count := b.rowCount(table)
		switch {
		case count == 0:
		case table == tableModule:
			// Generation, Name, Mvid, EncId, EncBaseId
			write(tables, uint16(0))
			writeIndex(tables, moduleName, heapWidth)
			for range 3 {
				writeIndex(tables, 0, heapWidth)
			}
		case table == tableAssembly:
			flags := uint32(0)
			if publicKey != 0 {
				flags = 1
			}
			write(tables, uint32(0x8004)) // SHA-1
			write(tables, b.version[:])
			write(tables, flags)
			writeIndex(tables, publicKey, heapWidth)
			writeIndex(tables, assemblyName, heapWidth)
			writeIndex(tables, culture, heapWidth)
		default:
			tables.Write(bytes.Repeat([]byte{rowFiller}, b.rowSize(table)*int(count)))
		}
	}
	pad(tables, 4)

	version := []byte(metadataVersion)
	versionLength := (len(version) + 1 + 3) &^ 3

	type stream struct {
		name string
		data []byte
	}
	streams := []stream{
		{name: "#~", data: tables.Bytes()},
		{name: "#Strings", data: strings.Bytes()},
		{name: "#Blob", data: blobs.Bytes()},
	}

	headerSize := 16 + versionLength + 4
	for _, s := range streams {
		headerSize += 8 + (len(s.name)+1+3)&^3
	}

	root := new(bytes.Buffer)
	write(root, uint32(0x424A5342))
	write(root, uint16(1))
	write(root, uint16(1))
	write(root, uint32(0))
	write(root, uint32(versionLength))
	root.Write(version)
	root.Write(make([]byte, versionLength-len(version)))
	write(root, uint16(0))
	write(root, uint16(len(streams)))

	offset := headerSize
	for _, s := range streams {
		write(root, uint32(offset))
		write(root, uint32(len(s.data)))
		root.WriteString(s.name)
		root.WriteByte(0)
		pad(root, 4)
		offset += len(s.data)
	}
	for _, s := range streams {
		root.Write(s.data)
	}
	return root.Bytes()
}

func (b *AssemblyImageBuilder) rowCount(table int) uint32 {
	switch table {
	case tableModule:
		return 1
	case tableAssembly:
		if b.manifest {
			return 1
		}
		return 0
	default:
		return b.rows[table]
	}
}

func (b *AssemblyImageBuilder) heapWidth() int {
	if b.wideHeaps {
		return 4
	}
	return 2
}

func (b *AssemblyImageBuilder) indexWidth(table int) int {
	if b.rowCount(table) > 0xFFFF {
		return 4
	}
	return 2
}

// codedWidth is 4 when any of tables has more rows than the bits left after the tag can address.
func (b *AssemblyImageBuilder) codedWidth(tagBits uint, tables ...int) int {
	for _, table := range tables {
		if b.rowCount(table) >= uint32(1)<<(16-tagBits) {
			return 4
		}
	}
	return 2
}

// rowSize follows ECMA-335 partition II, section 22, for the tables the builder writes.
func (b *AssemblyImageBuilder) rowSize(table int) int {
	heap := b.heapWidth()
	switch table {
	case TableTypeRef:
		return b.codedWidth(2, tableModule, TableModuleRef, tableAssemblyRef, TableTypeRef) + 2*heap
	case TableTypeDef:
		return 4 + 2*heap + b.codedWidth(2, TableTypeDef, TableTypeRef, TableTypeSpec) +
			b.indexWidth(TableField) + b.indexWidth(TableMethodDef)
	case TableField:
		return 2 + 2*heap
	case TableMethodDef:
		return 4 + 2 + 2 + 2*heap + b.indexWidth(TableParam)
	case TableParam:
		return 2 + 2 + heap
	case TableMemberRef:
		return b.codedWidth(3, TableTypeDef, TableTypeRef, TableModuleRef, TableMethodDef, TableTypeSpec) + 2*heap
	case TableCustomAttribute:
		parent := b.codedWidth(5, tableModule, TableTypeRef, TableTypeDef, TableField, TableMethodDef, TableParam,
			TableMemberRef, TableStandAloneSig, TableModuleRef, TableTypeSpec, tableAssembly, tableAssemblyRef)
		return parent + b.codedWidth(3, TableMethodDef, TableMemberRef) + heap
	case TableStandAloneSig, TableModuleRef, TableTypeSpec:
		return heap
	default:
		panic(fmt.Sprintf("no row layout for table 0x%02x", table))
	}
}

func addString(heap *bytes.Buffer, value string) uint32 {
	index := uint32(heap.Len())
	heap.WriteString(value)
	heap.WriteByte(0)
	return index
}

func pad(buffer *bytes.Buffer, alignment int) {
	if remainder := buffer.Len() % alignment; remainder != 0 {
		buffer.Write(make([]byte, alignment-remainder))
	}
}

func writeIndex(buffer *bytes.Buffer, value uint32, width int) {
	if width == 4 { //nolint:mnd // wide index
		write(buffer, value)
		return
	}
	write(buffer, uint16(value))
}

func write(buffer *bytes.Buffer, value any) {
	if err := binary.Write(buffer, binary.LittleEndian, value); err != nil {
		panic(err)
	}
}
