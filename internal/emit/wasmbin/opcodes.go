package wasmbin

// Section IDs, https://webassembly.github.io/spec/core/binary/modules.html#sections
const (
	sectionType     = 1
	sectionImport   = 2
	sectionFunction = 3
	sectionMemory   = 5
	sectionGlobal   = 6
	sectionExport   = 7
	sectionStart    = 8
	sectionCode     = 10
)

const (
	externKindFunc   = 0x00
	externKindMemory = 0x02
	externKindGlobal = 0x03
)

const funcTypeTag = 0x60

// Opcodes, https://webassembly.github.io/spec/core/binary/instructions.html
const (
	opUnreachable = 0x00
	opDrop        = 0x1a
	opLocalGet    = 0x20
	opEnd         = 0x0b

	opI32Const = 0x41
	opI64Const = 0x42
	opF32Const = 0x43
	opF64Const = 0x44

	opI32Add  = 0x6a
	opI32Sub  = 0x6b
	opI32Mul  = 0x6c
	opI32DivS = 0x6d
	opI32DivU = 0x6e
	opI32RemS = 0x6f
	opI32RemU = 0x70
	opI32And  = 0x71
	opI32Or   = 0x72
	opI32Xor  = 0x73
	opI32Shl  = 0x74
	opI32ShrS = 0x75
	opI32ShrU = 0x76

	opI64Add  = 0x7c
	opI64Sub  = 0x7d
	opI64Mul  = 0x7e
	opI64DivS = 0x7f
	opI64DivU = 0x80
	opI64RemS = 0x81
	opI64RemU = 0x82
	opI64And  = 0x83
	opI64Or   = 0x84
	opI64Xor  = 0x85
	opI64Shl  = 0x86
	opI64ShrS = 0x87
	opI64ShrU = 0x88

	opF32Add = 0x92
	opF32Sub = 0x93
	opF32Mul = 0x94
	opF32Div = 0x95

	opF64Add = 0xa0
	opF64Sub = 0xa1
	opF64Mul = 0xa2
	opF64Div = 0xa3

	opI32WrapI64    = 0xa7
	opI32TruncF32S  = 0xa8
	opI32TruncF32U  = 0xa9
	opI32TruncF64S  = 0xaa
	opI32TruncF64U  = 0xab
	opI64ExtendI32S = 0xac
	opI64ExtendI32U = 0xad
	opI64TruncF32S  = 0xae
	opI64TruncF32U  = 0xaf
	opI64TruncF64S  = 0xb0
	opI64TruncF64U  = 0xb1
	opF32ConvertI32S = 0xb2
	opF32ConvertI32U = 0xb3
	opF32ConvertI64S = 0xb4
	opF32ConvertI64U = 0xb5
	opF32DemoteF64   = 0xb6
	opF64ConvertI32S = 0xb7
	opF64ConvertI32U = 0xb8
	opF64ConvertI64S = 0xb9
	opF64ConvertI64U = 0xba
	opF64PromoteF32  = 0xbb

	opReturn = 0x0f
)
