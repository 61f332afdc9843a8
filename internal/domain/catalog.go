package domain

// Example is one worked input/output pair of a coding question
type Example struct {
	Input       string `json:"input" yaml:"input"`
	Output      string `json:"output" yaml:"output"`
	Explanation string `json:"explanation,omitempty" yaml:"explanation,omitempty"`
}

// Question is an algorithm catalog entry
type Question struct {
	ID         string    `json:"id" yaml:"id"`
	Title      string    `json:"title" yaml:"title"`
	Difficulty string    `json:"difficulty" yaml:"difficulty"`
	Content    string    `json:"content" yaml:"content"`
	Examples   []Example `json:"examples" yaml:"examples"`
	Tags       []string  `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Scenario is a system design catalog entry
type Scenario struct {
	ID           string `json:"id" yaml:"id"`
	Title        string `json:"title" yaml:"title"`
	Description  string `json:"description" yaml:"description"`
	Requirements string `json:"requirements" yaml:"requirements"`
	Constraints  string `json:"constraints" yaml:"constraints"`
	Difficulty   string `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
}

// Persona is a workplace catalog entry
type Persona struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Role        string   `json:"role" yaml:"role"`
	Persona     string   `json:"persona" yaml:"persona"` // interviewer instruction text
	Context     string   `json:"context" yaml:"context"` // situation handed to the interviewer for the opening
	Dimensions  []string `json:"dimensions" yaml:"dimensions"`
}
