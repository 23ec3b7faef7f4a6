package document

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/folio/paginate"
	"gopkg.in/yaml.v3"
)

// Author is one document author as given in the front matter.
type Author struct {
	Name         string `yaml:"name"`
	Surname      string `yaml:"surname"`
	Organization string `yaml:"organization"`
	Email        string `yaml:"email"`
}

// LastName returns the surname, falling back to the last word of the name.
func (a Author) LastName() string {
	if a.Surname != "" {
		return a.Surname
	}
	fields := strings.Fields(a.Name)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

// Metadata is the YAML front matter of a document.
type Metadata struct {
	Title     string            `yaml:"title"`
	Abbrev    string            `yaml:"abbrev"`
	Number    string            `yaml:"number"`
	DocName   string            `yaml:"docname"`
	Category  string            `yaml:"category"`
	Workgroup string            `yaml:"workgroup"`
	Date      Date              `yaml:"date"`
	Authors   []Author          `yaml:"authors"`
	PI        map[string]string `yaml:"pi"`
}

var categories = map[string]string{
	"std":      "Standards Track",
	"info":     "Informational",
	"exp":      "Experimental",
	"bcp":      "Best Current Practice",
	"historic": "Historic",
}

// CategoryName returns the display name of the document category.
func (m Metadata) CategoryName() string {
	if name, ok := categories[strings.ToLower(m.Category)]; ok {
		return name
	}
	return m.Category
}

// Identifier returns the left header text: the RFC number when there is
// one, otherwise Internet-Draft.
func (m Metadata) Identifier() string {
	if m.Number != "" {
		return "RFC " + m.Number
	}
	return "Internet-Draft"
}

// Running returns the page header and footer information.
func (m Metadata) Running() paginate.Metadata {
	surnames := make([]string, 0, len(m.Authors))
	for _, a := range m.Authors {
		if s := a.LastName(); s != "" {
			surnames = append(surnames, s)
		}
	}
	return paginate.Metadata{
		Identifier: m.Identifier(),
		Title:      m.Title,
		Abbrev:     m.Abbrev,
		Month:      m.Date.Month,
		Year:       m.Date.Year,
		Authors:    surnames,
		Category:   m.CategoryName(),
	}
}

// Overrides returns the page layout overrides set in the pi map.
func (m Metadata) Overrides() paginate.Overrides {
	o := paginate.Overrides{}
	for _, k := range []string{"header", "footer", "autobreaks"} {
		if v, ok := m.PI[k]; ok {
			o[k] = v
		}
	}
	return o
}

// enabled reports whether the pi setting key is on, defaulting to def.
func (m Metadata) enabled(key string, def bool) bool {
	v, ok := m.PI[key]
	if !ok {
		return def
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "no", "false", "off", "0":
		return false
	default:
		return true
	}
}

func (m Metadata) tocDepth() int {
	if d, err := strconv.Atoi(strings.TrimSpace(m.PI["tocdepth"])); err == nil && d > 0 {
		return d
	}
	return defaultTOCDepth
}

// Date is a publication date. Only month and year appear in headers.
type Date struct {
	Day   int
	Month string
	Year  string
}

// String formats the date as "Month Year".
func (d Date) String() string {
	return strings.TrimSpace(d.Month + " " + d.Year)
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01",
	"January 2006",
	"Jan 2006",
	"2 January 2006",
	"January 2, 2006",
}

// ParseDate parses the date formats accepted in front matter.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		d := Date{Month: t.Month().String(), Year: strconv.Itoa(t.Year())}
		if strings.Contains(layout, "2,") || strings.HasPrefix(layout, "2 ") || layout == "2006-01-02" {
			d.Day = t.Day()
		}
		return d, nil
	}
	return Date{}, fmt.Errorf("unsupported date %q", s)
}

// UnmarshalYAML accepts either a date string or a mapping with month, year
// and an optional day.
func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		parsed, err := ParseDate(value.Value)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case yaml.MappingNode:
		var raw struct {
			Day   int    `yaml:"day"`
			Month string `yaml:"month"`
			Year  string `yaml:"year"`
		}
		if err := value.Decode(&raw); err != nil {
			return err
		}
		month := raw.Month
		if n, err := strconv.Atoi(month); err == nil {
			if n < 1 || n > 12 {
				return fmt.Errorf("invalid month %d", n)
			}
			month = time.Month(n).String()
		}
		*d = Date{Day: raw.Day, Month: month, Year: raw.Year}
		return nil
	default:
		return fmt.Errorf("invalid date at line %d", value.Line)
	}
}

func (m *Metadata) fold() {
	m.Title = Fold(m.Title)
	m.Abbrev = Fold(m.Abbrev)
	m.Workgroup = Fold(m.Workgroup)
	for i := range m.Authors {
		m.Authors[i].Name = Fold(m.Authors[i].Name)
		m.Authors[i].Surname = Fold(m.Authors[i].Surname)
		m.Authors[i].Organization = Fold(m.Authors[i].Organization)
	}
}
