package domain

import "strings"

// PlayerClass partitions players into the three modeled groups.
type PlayerClass string

const (
	ClassForward    PlayerClass = "forward"
	ClassDefenseman PlayerClass = "defenseman"
	ClassGoalie     PlayerClass = "goalie"
	ClassUnknown    PlayerClass = "unknown"
)

// Player is a row of the player_info table.
type Player struct {
	ID        int64
	FirstName string
	LastName  string
	Team      string
	Position  string
	Age       int
}

// Class derives the player class from the free-text position code.
// 'C' or 'W' anywhere in the code means forward, 'D' defenseman,
// 'G' goalie.
func (p Player) Class() PlayerClass {
	return ClassForPosition(p.Position)
}

// ClassForPosition classifies a raw position code.
func ClassForPosition(position string) PlayerClass {
	pos := strings.ToUpper(position)
	switch {
	case strings.Contains(pos, "C") || strings.Contains(pos, "W"):
		return ClassForward
	case strings.Contains(pos, "D"):
		return ClassDefenseman
	case strings.Contains(pos, "G"):
		return ClassGoalie
	default:
		return ClassUnknown
	}
}

// ModelNameForPosition maps a request position string to the model that
// serves it. The match is a case-insensitive substring check; anything
// that is neither a defenseman nor a goalie falls back to the forward
// model.
func ModelNameForPosition(position string) string {
	pos := strings.ToLower(position)
	switch {
	case strings.Contains(pos, "defenseman"):
		return "defenseman_model"
	case strings.Contains(pos, "goalie"):
		return "goalie_model"
	default:
		return "forward_model"
	}
}
