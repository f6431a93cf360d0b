package engine

import (
	"encoding/json"
	"fmt"
)

// DescriptorVersion is written into every encoded descriptor.
const DescriptorVersion = 3

// UltimateBattleDescriptor captures everything needed to replay a battle.
type UltimateBattleDescriptor struct {
	Version     int            `json:"version"`
	RngSeed     int64          `json:"rngSeed"`
	TeamMode    bool           `json:"teamMode"`
	TimeLimitMs int64          `json:"timeLimit"`
	AiList      []AiDefinition `json:"aiList"`
}

// Encode serializes the descriptor into its portable string form.
func (d *UltimateBattleDescriptor) Encode() (string, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("engine: cannot encode battle descriptor: %w", err)
	}
	return string(data), nil
}

// DecodeDescriptor parses a string produced by Encode.
func DecodeDescriptor(s string) (*UltimateBattleDescriptor, error) {
	var d UltimateBattleDescriptor
	if err := json.Unmarshal([]byte(s), &d); err != nil {
		return nil, fmt.Errorf("engine: cannot decode battle descriptor: %w", err)
	}
	if d.Version != DescriptorVersion {
		return nil, fmt.Errorf("engine: unsupported descriptor version %d", d.Version)
	}
	return &d, nil
}
