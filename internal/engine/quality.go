package engine

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Quality is a requested render quality: either automatic or a fixed
// number in [0, 1]. The zero value is a fixed quality of 0.
type Quality struct {
	auto  bool
	value float64
}

// QualityAuto lets the renderer adjust quality to keep up.
var QualityAuto = Quality{auto: true}

// FixedQuality returns a fixed quality clamped to [0, 1].
func FixedQuality(v float64) Quality {
	switch {
	case v < 0:
		v = 0
	case v > 1:
		v = 1
	}
	return Quality{value: v}
}

// ParseQuality accepts "auto" or a number in [0, 1].
func ParseQuality(s string) (Quality, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "auto" || s == "" {
		return QualityAuto, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Quality{}, fmt.Errorf("engine: invalid quality %q: want \"auto\" or a number", s)
	}
	if v < 0 || v > 1 {
		return Quality{}, fmt.Errorf("engine: quality %v out of range [0, 1]", v)
	}
	return Quality{value: v}, nil
}

// IsAuto reports whether q is automatic.
func (q Quality) IsAuto() bool {
	return q.auto
}

// Value returns the fixed value. It is meaningless for QualityAuto.
func (q Quality) Value() float64 {
	return q.value
}

func (q Quality) String() string {
	if q.auto {
		return "auto"
	}
	return strconv.FormatFloat(q.value, 'f', -1, 64)
}

// MarshalYAML implements yaml.Marshaler.
func (q Quality) MarshalYAML() (any, error) {
	if q.auto {
		return "auto", nil
	}
	return q.value, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (q *Quality) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := ParseQuality(node.Value)
	if err != nil {
		return err
	}
	*q = parsed
	return nil
}
