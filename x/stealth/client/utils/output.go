package utils

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Output formats
const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
)

// PrintOutput writes v to w as indented JSON or as YAML for text output
func PrintOutput(w io.Writer, format string, v any) error {
	var (
		bz  []byte
		err error
	)
	switch format {
	case OutputFormatJSON:
		bz, err = json.MarshalIndent(v, "", "  ")
		bz = append(bz, '\n')
	case OutputFormatText, "":
		bz, err = yaml.Marshal(v)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	if err != nil {
		return err
	}

	_, err = w.Write(bz)
	return err
}
