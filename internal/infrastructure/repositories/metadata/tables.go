package metadata

import (
	"encoding/binary"
	"fmt"
)

const (
	tableStreamHeaderSize = 24
	tableCount            = 64

	stringHeapFlag    byte = 0x01
	guidHeapFlag      byte = 0x02
	blobHeapFlag      byte = 0x04
	extraDataHeapFlag byte = 0x40
)

// Table identifiers from ECMA-335 partition II, section 22.
const (
	tableModule                 = 0x00
	tableTypeRef                = 0x01
	tableTypeDef                = 0x02
	tableFieldPtr               = 0x03
	tableField                  = 0x04
	tableMethodPtr              = 0x05
	tableMethodDef              = 0x06
	tableParamPtr               = 0x07
	tableParam                  = 0x08
	tableInterfaceImpl          = 0x09
	tableMemberRef              = 0x0A
	tableConstant               = 0x0B
	tableCustomAttribute        = 0x0C
	tableFieldMarshal           = 0x0D
	tableDeclSecurity           = 0x0E
	tableClassLayout            = 0x0F
	tableFieldLayout            = 0x10
	tableStandAloneSig          = 0x11
	tableEventMap               = 0x12
	tableEventPtr               = 0x13
	tableEvent                  = 0x14
	tablePropertyMap            = 0x15
	tablePropertyPtr            = 0x16
	tableProperty               = 0x17
	tableMethodSemantics        = 0x18
	tableMethodImpl             = 0x19
	tableModuleRef              = 0x1A
	tableTypeSpec               = 0x1B
	tableImplMap                = 0x1C
	tableFieldRVA               = 0x1D
	tableEncLog                 = 0x1E
	tableEncMap                 = 0x1F
	tableAssembly               = 0x20
	tableAssemblyRef            = 0x23
	tableFile                   = 0x26
	tableExportedType           = 0x27
	tableManifestResource       = 0x28
	tableGenericParam           = 0x2A
	tableMethodSpec             = 0x2B
	tableGenericParamConstraint = 0x2C
)

// codedIndex describes a tagged reference into one of several tables.
type codedIndex struct {
	tagBits uint
	tables  []int
}

//nolint:gochecknoglobals // coded index definitions are constant data
var (
	typeDefOrRef    = codedIndex{tagBits: 2, tables: []int{tableTypeDef, tableTypeRef, tableTypeSpec}}
	hasConstant     = codedIndex{tagBits: 2, tables: []int{tableField, tableParam, tableProperty}}
	hasFieldMarshal = codedIndex{tagBits: 1, tables: []int{tableField, tableParam}}
	hasDeclSecurity = codedIndex{tagBits: 2, tables: []int{tableTypeDef, tableMethodDef, tableAssembly}}
	memberRefParent = codedIndex{tagBits: 3, tables: []int{
		tableTypeDef, tableTypeRef, tableModuleRef, tableMethodDef, tableTypeSpec,
	}}
	hasSemantics        = codedIndex{tagBits: 1, tables: []int{tableEvent, tableProperty}}
	methodDefOrRef      = codedIndex{tagBits: 1, tables: []int{tableMethodDef, tableMemberRef}}
	memberForwarded     = codedIndex{tagBits: 1, tables: []int{tableField, tableMethodDef}}
	customAttributeType = codedIndex{tagBits: 3, tables: []int{tableMethodDef, tableMemberRef}}
	resolutionScope     = codedIndex{tagBits: 2, tables: []int{
		tableModule, tableModuleRef, tableAssemblyRef, tableTypeRef,
	}}
	hasCustomAttribute = codedIndex{tagBits: 5, tables: []int{
		tableMethodDef, tableField, tableTypeRef, tableTypeDef, tableParam, tableInterfaceImpl,
		tableMemberRef, tableModule, tableDeclSecurity, tableProperty, tableEvent, tableStandAloneSig,
		tableModuleRef, tableTypeSpec, tableAssembly, tableAssemblyRef, tableFile, tableExportedType,
		tableManifestResource, tableGenericParam, tableGenericParamConstraint, tableMethodSpec,
	}}
)

// column is one cell of a table row: a fixed-width value, a heap index, a
// simple table index, or a coded index.
type column struct {
	fixed int
	heap  byte
	table int
	coded *codedIndex
}

func fixed(width int) column { return column{fixed: width, table: -1} }
func heapIndex(flag byte) column { return column{heap: flag, table: -1} }
func tableIndex(table int) column { return column{table: table} }
func coded(index *codedIndex) column { return column{table: -1, coded: index} }
func strColumn() column { return heapIndex(stringHeapFlag) }
func guidColumn() column { return heapIndex(guidHeapFlag) }
func blobColumn() column { return heapIndex(blobHeapFlag) }

// tableSchemas lists the columns of every table that can precede Assembly,
// and Assembly itself.
//
//nolint:gochecknoglobals // schema definitions are constant data
var tableSchemas = map[int][]column{
	tableModule:          {fixed(2), strColumn(), guidColumn(), guidColumn(), guidColumn()},
	tableTypeRef:         {coded(&resolutionScope), strColumn(), strColumn()},
	tableTypeDef:         {fixed(4), strColumn(), strColumn(), coded(&typeDefOrRef), tableIndex(tableField), tableIndex(tableMethodDef)},
	tableFieldPtr:        {tableIndex(tableField)},
	tableField:           {fixed(2), strColumn(), blobColumn()},
	tableMethodPtr:       {tableIndex(tableMethodDef)},
	tableMethodDef:       {fixed(4), fixed(2), fixed(2), strColumn(), blobColumn(), tableIndex(tableParam)},
	tableParamPtr:        {tableIndex(tableParam)},
	tableParam:           {fixed(2), fixed(2), strColumn()},
	tableInterfaceImpl:   {tableIndex(tableTypeDef), coded(&typeDefOrRef)},
	tableMemberRef:       {coded(&memberRefParent), strColumn(), blobColumn()},
	tableConstant:        {fixed(2), coded(&hasConstant), blobColumn()},
	tableCustomAttribute: {coded(&hasCustomAttribute), coded(&customAttributeType), blobColumn()},
	tableFieldMarshal:    {coded(&hasFieldMarshal), blobColumn()},
	tableDeclSecurity:    {fixed(2), coded(&hasDeclSecurity), blobColumn()},
	tableClassLayout:     {fixed(2), fixed(4), tableIndex(tableTypeDef)},
	tableFieldLayout:     {fixed(4), tableIndex(tableField)},
	tableStandAloneSig:   {blobColumn()},
	tableEventMap:        {tableIndex(tableTypeDef), tableIndex(tableEvent)},
	tableEventPtr:        {tableIndex(tableEvent)},
	tableEvent:           {fixed(2), strColumn(), coded(&typeDefOrRef)},
	tablePropertyMap:     {tableIndex(tableTypeDef), tableIndex(tableProperty)},
	tablePropertyPtr:     {tableIndex(tableProperty)},
	tableProperty:        {fixed(2), strColumn(), blobColumn()},
	tableMethodSemantics: {fixed(2), tableIndex(tableMethodDef), coded(&hasSemantics)},
	tableMethodImpl:      {tableIndex(tableTypeDef), coded(&methodDefOrRef), coded(&methodDefOrRef)},
	tableModuleRef:       {strColumn()},
	tableTypeSpec:        {blobColumn()},
	tableImplMap:         {fixed(2), coded(&memberForwarded), strColumn(), tableIndex(tableModuleRef)},
	tableFieldRVA:        {fixed(4), tableIndex(tableField)},
	tableEncLog:          {fixed(4), fixed(4)},
	tableEncMap:          {fixed(4)},
	tableAssembly: {
		fixed(4), fixed(2), fixed(2), fixed(2), fixed(2), fixed(4), blobColumn(), strColumn(), strColumn(),
	},
}

// tableStream is the decoded header of the #~ stream.
type tableStream struct {
	heapSizes byte
	rows      [tableCount]uint32
	data      []byte // table contents, starting with the first present table
}

func parseTableStream(stream []byte) (*tableStream, error) {
	if len(stream) < tableStreamHeaderSize {
		return nil, fmt.Errorf("%w: truncated table stream header", ErrMalformedMetadata)
	}

	tables := &tableStream{heapSizes: stream[6]}
	valid := binary.LittleEndian.Uint64(stream[8:])

	position := tableStreamHeaderSize
	for table := range tableCount {
		if valid&(uint64(1)<<table) == 0 {
			continue
		}
		if position+4 > len(stream) {
			return nil, fmt.Errorf("%w: truncated row counts", ErrMalformedMetadata)
		}
		tables.rows[table] = binary.LittleEndian.Uint32(stream[position:])
		position += 4
	}
	if tables.heapSizes&extraDataHeapFlag != 0 {
		position += 4
	}
	if position > len(stream) {
		return nil, fmt.Errorf("%w: truncated table stream", ErrMalformedMetadata)
	}

	tables.data = stream[position:]
	return tables, nil
}

// heapIndexSize is 4 when the heap flagged by flag is large, 2 otherwise.
func (it *tableStream) heapIndexSize(flag byte) int {
	if it.heapSizes&flag != 0 {
		return 4
	}
	return 2
}

func (it *tableStream) tableIndexSize(table int) int {
	if it.rows[table] > 0xFFFF {
		return 4
	}
	return 2
}

func (it *tableStream) codedIndexSize(index *codedIndex) int {
	limit := uint32(1) << (16 - index.tagBits)
	for _, table := range index.tables {
		if it.rows[table] >= limit {
			return 4
		}
	}
	return 2
}

func (it *tableStream) columnSize(col column) int {
	switch {
	case col.fixed > 0:
		return col.fixed
	case col.heap != 0:
		return it.heapIndexSize(col.heap)
	case col.coded != nil:
		return it.codedIndexSize(col.coded)
	default:
		return it.tableIndexSize(col.table)
	}
}

func (it *tableStream) rowSize(table int) (int, error) {
	schema, ok := tableSchemas[table]
	if !ok {
		return 0, fmt.Errorf("%w: unsupported table 0x%02x", ErrMalformedMetadata, table)
	}
	size := 0
	for _, col := range schema {
		size += it.columnSize(col)
	}
	return size, nil
}

// firstRow returns the bytes of the first row of table, skipping every table before it.
func (it *tableStream) firstRow(table int) ([]byte, error) {
	offset := uint64(0)
	for preceding := range table {
		if it.rows[preceding] == 0 {
			continue
		}
		size, err := it.rowSize(preceding)
		if err != nil {
			return nil, err
		}
		offset += uint64(size) * uint64(it.rows[preceding])
	}

	size, err := it.rowSize(table)
	if err != nil {
		return nil, err
	}
	if offset+uint64(size) > uint64(len(it.data)) {
		return nil, fmt.Errorf("%w: table 0x%02x is truncated", ErrMalformedMetadata, table)
	}
	return it.data[offset : offset+uint64(size)], nil
}

// rowReader walks the columns of a single row. Reads never exceed the row
// because firstRow sized it with the same column widths.
type rowReader struct {
	data     []byte
	position int
	tables   *tableStream
}

func (it *rowReader) skip(width int) {
	it.position += width
}

func (it *rowReader) uint16() uint16 {
	value := binary.LittleEndian.Uint16(it.data[it.position:])
	it.position += 2
	return value
}

func (it *rowReader) heapIndex(flag byte) uint32 {
	if it.tables.heapIndexSize(flag) == 4 { //nolint:mnd // wide heap index
		value := binary.LittleEndian.Uint32(it.data[it.position:])
		it.position += 4
		return value
	}
	return uint32(it.uint16())
}
