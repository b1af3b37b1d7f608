package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/cardsearch/internal/deck"
	"github.com/san-kum/cardsearch/internal/search"
)

type Format string

const (
	JSON Format = "json"
	CSV  Format = "csv"
	YAML Format = "yaml"
	SVG  Format = "svg"
)

func Formats() []Format {
	return []Format{JSON, CSV, YAML, SVG}
}

func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	switch f {
	case JSON, CSV, YAML, SVG:
		return f, nil
	case "yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("export: unknown format %q (want one of %v)", name, Formats())
	}
}

// Document is the exported form of a run. Its JSON shape matches the
// response of the simulate endpoint.
type Document struct {
	Cards   []int              `json:"cards" yaml:"cards"`
	Target  int                `json:"target" yaml:"target"`
	Steps   []search.Step      `json:"steps" yaml:"steps"`
	Result  search.Result      `json:"result" yaml:"result"`
	Metrics map[string]float64 `json:"metrics,omitempty" yaml:"metrics,omitempty"`
}

func NewDocument(run *search.Run) Document {
	return Document{
		Cards:   run.Deck.Ints(),
		Target:  run.Target,
		Steps:   run.Steps,
		Result:  run.Result(),
		Metrics: run.Metrics,
	}
}

func Write(w io.Writer, f Format, run *search.Run) error {
	switch f {
	case JSON:
		return WriteJSON(w, run)
	case CSV:
		return WriteCSV(w, run)
	case YAML:
		return WriteYAML(w, run)
	case SVG:
		_, err := io.WriteString(w, RunToSVG(run, 1)+"\n")
		return err
	default:
		return fmt.Errorf("export: unknown format %q", f)
	}
}

// ToFile writes run to path, or to stdout when path is empty or "-".
func ToFile(path string, f Format, run *search.Run) error {
	if path == "" || path == "-" {
		return Write(os.Stdout, f, run)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := Write(file, f, run); err != nil {
		return err
	}
	return file.Close()
}

func WriteJSON(w io.Writer, run *search.Run) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewDocument(run))
}

func WriteYAML(w io.Writer, run *search.Run) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewDocument(run)); err != nil {
		return err
	}
	return enc.Close()
}

var csvHeader = []string{"step", "action", "selected_card", "selected_index", "comparisons", "remaining", "cards", "removed", "description"}

func WriteCSV(w io.Writer, run *search.Run) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, st := range run.Steps {
		card, idx := "", ""
		if c, i, ok := st.Selection(); ok {
			card, idx = strconv.Itoa(c), strconv.Itoa(i)
		}
		row := []string{
			strconv.Itoa(st.Number),
			string(st.Action),
			card,
			idx,
			strconv.Itoa(st.Comparisons),
			strconv.Itoa(len(st.Cards)),
			deck.Join(st.Cards, " "),
			deck.Join(st.Removed, " "),
			st.Description,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
