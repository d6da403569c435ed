package seed

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/opencatalog/excel-ingest/models"
)

// File is a declarative catalog tree used to load reference data by hand:
// code sets first (columns may point at them), then communities with their
// owned domains, tables and columns.
type File struct {
	CodeSets    []CodeSet   `yaml:"code_sets"`
	Communities []Community `yaml:"communities"`
}

type CodeSet struct {
	ID     string  `yaml:"id"`
	Name   string  `yaml:"name"`
	Values []Value `yaml:"values"`
}

type Value struct {
	ID    string `yaml:"id"`
	Code  string `yaml:"code"`
	Label string `yaml:"label"`
}

type Community struct {
	Name        string   `yaml:"name"`
	Description *string  `yaml:"description"`
	Domains     []Domain `yaml:"domains"`
}

type Domain struct {
	ID     string  `yaml:"id"`
	Name   string  `yaml:"name"`
	Tables []Table `yaml:"tables"`
}

type Table struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description *string  `yaml:"description"`
	Columns     []Column `yaml:"columns"`
}

type Column struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name"`
	Description *string `yaml:"description"`
	DataType    *string `yaml:"data_type"`
	CodeSet     *string `yaml:"code_set"`
}

// Load parses a seed file.
func Load(filename string) (*File, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("unmarshalling YAML: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *File) validate() error {
	sets := map[string]bool{}
	for _, cs := range f.CodeSets {
		if cs.ID == "" || cs.Name == "" {
			return fmt.Errorf("code set needs id and name, got id=%q name=%q", cs.ID, cs.Name)
		}
		sets[cs.ID] = true
	}
	for _, c := range f.Communities {
		if c.Name == "" {
			return fmt.Errorf("community needs a name")
		}
		for _, d := range c.Domains {
			if d.ID == "" {
				return fmt.Errorf("domain under %q needs an id", c.Name)
			}
			for _, t := range d.Tables {
				if t.ID == "" {
					return fmt.Errorf("table under domain %q needs an id", d.ID)
				}
				for _, col := range t.Columns {
					if col.ID == "" {
						return fmt.Errorf("column under table %q needs an id", t.ID)
					}
					if col.CodeSet != nil && !sets[*col.CodeSet] {
						return fmt.Errorf("column %q references unknown code set %q", col.ID, *col.CodeSet)
					}
				}
			}
		}
	}
	return nil
}

// Apply inserts the whole tree through q in ownership order. Counts of
// inserted rows come back for reporting.
func (f *File) Apply(ctx context.Context, q models.Querier) (Counts, error) {
	var n Counts
	for _, cs := range f.CodeSets {
		if err := models.InsertCodeSet(ctx, q, &models.CodeSet{ID: cs.ID, Name: cs.Name}); err != nil {
			return n, err
		}
		n.CodeSets++
		for _, v := range cs.Values {
			err := models.InsertCodeValue(ctx, q, &models.CodeValue{
				ID: v.ID, Code: v.Code, Label: v.Label, CodeSetID: cs.ID,
			})
			if err != nil {
				return n, err
			}
			n.CodeValues++
		}
	}
	for _, c := range f.Communities {
		community := &models.Community{Name: c.Name, Description: c.Description}
		if err := models.InsertCommunity(ctx, q, community); err != nil {
			return n, err
		}
		n.Communities++
		for _, d := range c.Domains {
			err := models.InsertDomain(ctx, q, &models.Domain{
				ID: d.ID, Name: d.Name, CommunityID: community.ID,
			})
			if err != nil {
				return n, err
			}
			n.Domains++
			for _, t := range d.Tables {
				err := models.InsertDataTable(ctx, q, &models.DataTable{
					ID: t.ID, Name: t.Name, Description: t.Description, DomainID: d.ID,
				})
				if err != nil {
					return n, err
				}
				n.Tables++
				for _, col := range t.Columns {
					err := models.InsertDataColumn(ctx, q, &models.DataColumn{
						ID: col.ID, Name: col.Name, Description: col.Description,
						DataType: col.DataType, DataTableID: t.ID, CodeSetID: col.CodeSet,
					})
					if err != nil {
						return n, err
					}
					n.Columns++
				}
			}
		}
	}
	return n, nil
}

// Counts reports how many rows Apply inserted per entity.
type Counts struct {
	Communities int
	Domains     int
	Tables      int
	Columns     int
	CodeSets    int
	CodeValues  int
}
