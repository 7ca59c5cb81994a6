package source

type (
	// FileID uniquely identifies a dump file within a FileSet.
	FileID uint32 // просто ID источника
	// FileFlags encodes metadata about a loaded file.
	FileFlags uint8 // метаданные
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota // добавлен не с диска (тест, stdin)
	FileHadBOM
	FileNormalizedCRLF
	// FileDecodedLatin1 indicates the raw bytes were not valid UTF-8 and were
	// reinterpreted as ISO 8859-1 during load.
	FileDecodedLatin1
)

// File captures metadata and content for a single configuration dump.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a dump file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
