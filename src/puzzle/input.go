//Package puzzle reads the simulation inputs: plain or zstd compressed text files and challenge collections
package puzzle

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
)

//zstdMagic starts every zstd frame
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

//ReadFile returns the text of the file, decompressing it when it holds a zstd stream
func ReadFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	text, err := Read(f)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return text, nil
}

//Read returns the whole text of r, zstd streams are recognized by their magic number
func Read(r io.Reader) (string, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(len(zstdMagic))
	if err != nil && err != io.EOF {
		return "", err
	}
	var src io.Reader = br
	if bytes.Equal(head, zstdMagic) {
		dec, err := zstd.NewReader(br)
		if err != nil {
			return "", err
		}
		defer dec.Close()
		src = dec
	}
	b, err := io.ReadAll(src)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
