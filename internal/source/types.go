package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota
	// FileHadBOM indicates a UTF-8 BOM was stripped on load.
	FileHadBOM
	// FileHadCRLF indicates CRLF endings were normalized to LF on load.
	// The emitter uses this flag to restore the original ending style.
	FileHadCRLF
	// FileTranscoded indicates the content was transcoded from UTF-16.
	FileTranscoded
)

// File captures metadata and content for a single Python source file.
// Content is always normalized to UTF-8 with LF endings.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}

// LineEnding returns the line terminator the original file used.
func (f *File) LineEnding() string {
	if f.Flags&FileHadCRLF != 0 {
		return "\r\n"
	}
	return "\n"
}
