//Package trace keeps a zstd compressed JSONL record of the simulated steps
package trace

import (
	"bufio"
	"encoding/json"
	"os"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"

	"flashsim/src/cascade"
	"flashsim/src/grid"
)

//Record describes one simulated step
type Record struct {
	Step         int      `json:"step"`
	Flashes      int      `json:"flashes"`
	Total        int      `json:"total"`
	Synchronized bool     `json:"synchronized,omitempty"`
	Energies     []string `json:"energies,omitempty"` //one string of digits per row
}

//EnergyRows renders the grid as it is stored in Record.Energies
func EnergyRows(g *grid.Grid[cascade.Energy]) []string {
	if g.Len() == 0 {
		return nil
	}
	return strings.Split(strings.TrimSuffix(g.String(), "\n"), "\n")
}

//Writer appends records to a file, one JSON document per line
type Writer struct {
	mu  sync.Mutex
	f   *os.File
	enc *zstd.Encoder
	w   *bufio.Writer
}

//Create truncates or creates the file at path
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &Writer{f: f, enc: enc, w: bufio.NewWriterSize(enc, 128*1024)}, nil
}

func (w *Writer) Write(r Record) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	b, err := json.Marshal(r)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	return w.w.WriteByte('\n')
}

//Close flushes the pending records and closes the file
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.f == nil {
		return nil
	}
	err := w.w.Flush()
	if cerr := w.enc.Close(); err == nil {
		err = cerr
	}
	if cerr := w.f.Close(); err == nil {
		err = cerr
	}
	w.f = nil
	return err
}

//ReadRecords reads all records of a trace file
func ReadRecords(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	var records []Record
	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 64*1024), 8*1024*1024)
	for sc.Scan() {
		var r Record
		if err := json.Unmarshal(sc.Bytes(), &r); err != nil {
			return records, err
		}
		records = append(records, r)
	}
	return records, sc.Err()
}
