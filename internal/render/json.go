package render

import (
	"encoding/json"
	"io"
)

// Record is one output line of the machine formats.
type Record struct {
	File   string `json:"file,omitempty"`
	Source string `json:"source,omitempty"`
	Value  string `json:"value,omitempty"`
	Mode   string `json:"mode,omitempty"`
	Error  string `json:"error,omitempty"`
}

// JSON writes one JSON object per line: a record per result, then an error
// record for a failed file.
func JSON(w io.Writer, files []File) error {
	enc := json.NewEncoder(w)
	for _, f := range files {
		for _, r := range f.Results {
			rec := Record{File: f.Path, Source: r.Source, Value: r.Text(), Mode: r.Mode.String()}
			if err := enc.Encode(rec); err != nil {
				return err
			}
		}
		if f.Err != nil {
			if err := enc.Encode(Record{File: f.Path, Error: f.Err.Error()}); err != nil {
				return err
			}
		}
	}
	return nil
}
