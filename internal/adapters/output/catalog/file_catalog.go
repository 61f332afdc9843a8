package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"talkpro/internal/domain"
	"talkpro/internal/ports/output"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Compile-time check to ensure FileCatalog implements Catalog interface
var _ output.Catalog = (*FileCatalog)(nil)

// Base names looked up in the catalog directory. Each may be .json, .yaml or .yml.
const (
	questionsFile = "questions"
	scenariosFile = "scenarios"
	personasFile  = "personas"
)

var extensions = []string{".json", ".yaml", ".yml"}

// FileCatalog struct - Output adapter serving interview seed content loaded from disk
type FileCatalog struct {
	questions []domain.Question
	scenarios []domain.Scenario
	personas  []domain.Persona
}

// NewCatalog func - Creates a catalog from in-memory entries
func NewCatalog(questions []domain.Question, scenarios []domain.Scenario, personas []domain.Persona) *FileCatalog {
	return &FileCatalog{
		questions: questions,
		scenarios: scenarios,
		personas:  personas,
	}
}

// LoadFileCatalog func - Reads questions, scenarios and personas from dir.
// A missing or broken file is logged and leaves that part of the catalog empty.
func LoadFileCatalog(dir string) *FileCatalog {
	c := &FileCatalog{}

	if err := loadEntries(dir, questionsFile, &c.questions); err != nil {
		logrus.Errorf("Failed to load questions: %v", err)
	}
	if err := loadEntries(dir, scenariosFile, &c.scenarios); err != nil {
		logrus.Errorf("Failed to load scenarios: %v", err)
	}
	if err := loadEntries(dir, personasFile, &c.personas); err != nil {
		logrus.Errorf("Failed to load personas: %v", err)
	}

	logrus.Infof("Catalog loaded from %s: %d questions, %d scenarios, %d personas",
		dir, len(c.questions), len(c.scenarios), len(c.personas))
	return c
}

func loadEntries[T any](dir, name string, out *[]T) error {
	for _, ext := range extensions {
		path := filepath.Join(dir, name+ext)
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		var entries []T
		if ext == ".json" {
			err = json.Unmarshal(data, &entries)
		} else {
			err = yaml.Unmarshal(data, &entries)
		}
		if err != nil {
			return fmt.Errorf("decode %s: %w", path, err)
		}
		*out = entries
		return nil
	}
	return fmt.Errorf("no %s file in %s", name, dir)
}

// Questions func - Returns a copy; the catalog itself is read-only
func (c *FileCatalog) Questions() []domain.Question {
	return slices.Clone(c.questions)
}

// Scenarios func
func (c *FileCatalog) Scenarios() []domain.Scenario {
	return slices.Clone(c.scenarios)
}

// Personas func
func (c *FileCatalog) Personas() []domain.Persona {
	return slices.Clone(c.personas)
}

// QuestionsByDifficulty func - Case-insensitive difficulty match
func (c *FileCatalog) QuestionsByDifficulty(difficulty string) []domain.Question {
	var out []domain.Question
	for _, q := range c.questions {
		if strings.EqualFold(q.Difficulty, difficulty) {
			out = append(out, q)
		}
	}
	return out
}

// Scenario func - Exact id match
func (c *FileCatalog) Scenario(id string) (domain.Scenario, bool) {
	for _, s := range c.scenarios {
		if s.ID == id {
			return s, true
		}
	}
	return domain.Scenario{}, false
}

// Persona func - Exact id match
func (c *FileCatalog) Persona(id string) (domain.Persona, bool) {
	for _, p := range c.personas {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Persona{}, false
}
