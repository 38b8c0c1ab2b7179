package alfred

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// minJSONVersion is the first Alfred release that reads JSON Script Filter output.
var minJSONVersion = semver.MustParse("3.0.0")

const errorIcon = "erroricon.png"

// Item is one row in Alfred's result list.
type Item struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Arg      string `json:"arg,omitempty"`
	Valid    *bool  `json:"valid,omitempty"`
	Icon     *Icon  `json:"icon,omitempty"`
}

// Icon points at an image shipped inside the workflow bundle.
type Icon struct {
	Path string `json:"path"`
}

// IconPath is shorthand for &Icon{Path: path}.
func IconPath(path string) *Icon {
	return &Icon{Path: path}
}

// IsValid reports whether actioning the item runs the next workflow step.
// Items are valid unless Valid says otherwise.
func (it Item) IsValid() bool {
	return it.Valid == nil || *it.Valid
}

// CanUseJSON reports whether the host understands JSON output. An empty or
// unparsable version is assumed to be a current Alfred.
func CanUseJSON(version string) bool {
	version = strings.TrimSpace(version)
	if version == "" {
		return true
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return true
	}
	return v.Compare(minJSONVersion) >= 0
}

type document struct {
	Items     []Item            `json:"items"`
	Variables map[string]string `json:"variables,omitempty"`
}

// Write renders items in JSON or, for old hosts, XML. vars are workflow
// variables passed downstream; the XML format cannot carry them.
func Write(w io.Writer, items []Item, useJSON bool, vars map[string]string) error {
	if items == nil {
		items = []Item{}
	}
	if useJSON {
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(document{Items: items, Variables: vars}); err != nil {
			return fmt.Errorf("writing script filter JSON: %w", err)
		}
		return nil
	}
	return writeXML(w, items)
}

// WriteError renders err as a single item that cannot be actioned. This is
// how fatal errors reach the user.
func WriteError(w io.Writer, err error, useJSON bool) error {
	invalid := false
	item := Item{
		Title:    "Error",
		Subtitle: err.Error(),
		Valid:    &invalid,
		Icon:     IconPath(errorIcon),
	}
	return Write(w, []Item{item}, useJSON, nil)
}

type xmlItems struct {
	XMLName xml.Name  `xml:"items"`
	Items   []xmlItem `xml:"item"`
}

type xmlItem struct {
	Arg      string `xml:"arg,attr,omitempty"`
	Valid    string `xml:"valid,attr"`
	Title    string `xml:"title"`
	Subtitle string `xml:"subtitle,omitempty"`
	Icon     string `xml:"icon,omitempty"`
}

func writeXML(w io.Writer, items []Item) error {
	doc := xmlItems{Items: make([]xmlItem, 0, len(items))}
	for _, it := range items {
		x := xmlItem{
			Arg:      it.Arg,
			Valid:    "yes",
			Title:    it.Title,
			Subtitle: it.Subtitle,
		}
		if !it.IsValid() {
			x.Valid = "no"
		}
		if it.Icon != nil {
			x.Icon = it.Icon.Path
		}
		doc.Items = append(doc.Items, x)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("writing script filter XML: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("writing script filter XML: %w", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("writing script filter XML: %w", err)
	}
	return nil
}
