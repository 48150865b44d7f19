package internal

import (
	"bytes"
	"io/ioutil"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
	"golang.org/x/text/transform"
)

// FileReader retrieves the full text of named files for slurp.
type FileReader interface {
	// ReadFile returns the contents of the named file. If there is no such
	// file, the error wraps os.ErrNotExist.
	ReadFile(name string) (string, error)
}

// OSFiles reads files from the operating system.
type OSFiles struct{}

// ReadFile reads the named file and decodes it with DecodeText.
func (OSFiles) ReadFile(name string) (string, error) {
	b, err := ioutil.ReadFile(name)
	if err != nil {
		return "", err
	}
	return DecodeText(b)
}

var (
	bomUTF32LE = []byte{0xff, 0xfe, 0, 0}
	bomUTF32BE = []byte{0, 0, 0xfe, 0xff}
)

// DecodeText converts file contents to a UTF-8 string. Text with a UTF-16 or
// UTF-32 byte order mark is decoded from that encoding; anything else is
// taken as UTF-8. The byte order mark is removed in every case.
func DecodeText(b []byte) (string, error) {
	var t transform.Transformer
	switch {
	// The UTF-32LE mark begins with the UTF-16LE mark, so check it first.
	case bytes.HasPrefix(b, bomUTF32LE):
		t = utf32.UTF32(utf32.LittleEndian, utf32.UseBOM).NewDecoder()
	case bytes.HasPrefix(b, bomUTF32BE):
		t = utf32.UTF32(utf32.BigEndian, utf32.UseBOM).NewDecoder()
	default:
		t = unicode.BOMOverride(unicode.UTF8.NewDecoder())
	}
	r, _, err := transform.Bytes(t, b)
	if err != nil {
		return "", err
	}
	return string(r), nil
}

// MapFiles is a FileReader serving files from memory, keyed by name.
type MapFiles map[string]string

// ReadFile returns the text stored under name.
func (m MapFiles) ReadFile(name string) (string, error) {
	text, ok := m[name]
	if !ok {
		return "", &os.PathError{Op: "open", Path: name, Err: os.ErrNotExist}
	}
	return text, nil
}
