package engine

// AiDefinition describes one combatant. It is authored outside the
// battlefield and passed through to the simulation untouched, except for
// the team tag assigned in team mode.
type AiDefinition struct {
	Name           string `yaml:"name" json:"name"`
	Team           string `yaml:"team,omitempty" json:"team,omitempty"`
	Code           string `yaml:"code,omitempty" json:"code,omitempty"`
	ExecutionLimit int    `yaml:"execution_limit,omitempty" json:"executionLimit,omitempty"`
}

// NewAiDefinition returns a definition with the given name.
func NewAiDefinition(name string) *AiDefinition {
	return &AiDefinition{Name: name}
}

// AssignToTeam tags the definition with a team name.
func (d *AiDefinition) AssignToTeam(team string) {
	d.Team = team
}
