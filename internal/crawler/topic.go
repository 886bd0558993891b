package crawler

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Topic is the vocabulary the prioritizer ranks links against.
type Topic struct {
	// Keywords are matched against URL paths and link context.
	Keywords []string `yaml:"keywords"`
	// Phrases are human-readable variants matched against anchor text.
	Phrases []string `yaml:"phrases"`
	// Combos are word pairs that earn a bonus when both halves appear.
	Combos [][]string `yaml:"combos"`
}

// DefaultTopic targets company, offering and AI-capability pages.
func DefaultTopic() Topic {
	return Topic{
		Keywords: []string{
			"about", "company", "who-we-are", "our-story", "overview", "about-us",
			"services", "solutions", "products", "what-we-do", "offerings", "capabilities",
			"technology", "innovation", "ai", "artificial-intelligence", "digital", "ml",
			"machine-learning", "data", "analytics", "automation",
			"case-studies", "portfolio", "work", "projects", "success", "clients",
			"testimonials", "success-stories", "customers", "case-study",
			"team", "leadership", "people", "executives", "our-team",
			"careers", "jobs", "join-us", "work-with-us",
			"news", "blog", "insights", "resources", "press",
		},
		Phrases: []string{
			"about us", "about", "company", "who we are", "our company", "company info",
			"about the company", "learn more", "our story",
			"products", "our products", "services", "our services", "solutions",
			"what we do", "offerings", "capabilities",
			"technology", "innovation", "ai", "artificial intelligence",
			"machine learning", "data analytics", "automation",
			"case studies", "portfolio", "our work", "projects", "success stories",
			"client stories", "customer success",
			"team", "leadership", "our team", "people", "meet the team",
			"careers", "join us", "work with us", "jobs",
		},
		Combos: [][]string{
			{"about", "company"},
			{"our", "services"},
			{"what", "do"},
			{"case", "stud"},
			{"success", "stor"},
			{"our", "team"},
			{"artificial", "intelligence"},
			{"machine", "learning"},
		},
	}
}

// LoadTopic reads a Topic from a YAML file. Empty sections fall back to the
// defaults so a file may override only what it needs.
func LoadTopic(path string) (Topic, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Topic{}, fmt.Errorf("read topic file: %w", err)
	}
	var t Topic
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Topic{}, fmt.Errorf("parse topic file: %w", err)
	}
	def := DefaultTopic()
	if len(t.Keywords) == 0 {
		t.Keywords = def.Keywords
	}
	if len(t.Phrases) == 0 {
		t.Phrases = def.Phrases
	}
	if len(t.Combos) == 0 {
		t.Combos = def.Combos
	}
	return t, nil
}
