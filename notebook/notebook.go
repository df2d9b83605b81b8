// Package notebook models Jupyter notebook documents (nbformat v4) just
// deeply enough for rendering: ordered cells with type, source, metadata,
// and output events. Content values that the format allows to be either a
// single string or a list of fragments are normalized to one string at the
// decode boundary, so nothing downstream ever handles the list form.
package notebook

import "encoding/json"

// Notebook is one parsed notebook document.
type Notebook struct {
	Cells         []Cell         `json:"cells"`
	Metadata      map[string]any `json:"metadata"`
	NBFormat      int            `json:"nbformat"`
	NBFormatMinor int            `json:"nbformat_minor"`
}

// Language returns the kernel language recorded in the notebook metadata,
// defaulting to python when the kernelspec is absent or incomplete.
func (n *Notebook) Language() string {
	kernelspec := Map(Map(n.Metadata)["kernelspec"])
	return StringOr(kernelspec["language"], "python")
}

// Cell is one notebook cell. Source arrives joined; Outputs is empty for
// non-code cells.
type Cell struct {
	Type     string
	Source   string
	Metadata map[string]any
	Outputs  []Output
}

// UnmarshalJSON decodes a raw nbformat cell, joining a fragmented source
// list into a single string.
func (c *Cell) UnmarshalJSON(data []byte) error {
	var raw struct {
		CellType string         `json:"cell_type"`
		Source   any            `json:"source"`
		Metadata map[string]any `json:"metadata"`
		Outputs  []Output       `json:"outputs"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.Type = raw.CellType
	c.Source = Text(raw.Source)
	c.Metadata = raw.Metadata
	c.Outputs = raw.Outputs
	return nil
}

// Output is one entry of a cell's output list. Stream output carries Text;
// rich output (display_data, execute_result) carries a Data bundle keyed by
// content type. Other output types are preserved with their tag only.
type Output struct {
	Type string
	Name string
	Text string
	Data map[string]string
}

// Stream reports whether the output is a plain text stream event.
func (o Output) Stream() bool {
	return o.Type == "stream"
}

// Rich reports whether the output carries a content-type bundle.
func (o Output) Rich() bool {
	return o.Type == "display_data" || o.Type == "execute_result"
}

// UnmarshalJSON decodes a raw nbformat output event. Fragmented text and
// bundle values are joined; bundle values that are not text (for example
// the JSON payload of an interactive widget) keep their key with empty
// content, so content-type detection still sees them.
func (o *Output) UnmarshalJSON(data []byte) error {
	var raw struct {
		OutputType string         `json:"output_type"`
		Name       string         `json:"name"`
		Text       any            `json:"text"`
		Data       map[string]any `json:"data"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	o.Type = raw.OutputType
	o.Name = raw.Name
	o.Text = Text(raw.Text)
	if len(raw.Data) > 0 {
		o.Data = make(map[string]string, len(raw.Data))
		for mime, v := range raw.Data {
			o.Data[mime] = Text(v)
		}
	}
	return nil
}
