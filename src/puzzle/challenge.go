package puzzle

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const DefParts = 1

var (
	ErrChallengeNotFound = errors.New("challenge not found")
	ErrInvalidChallenges = errors.New("invalid challenges file")

	//go:embed challenges.schema.json
	challengesSchemaText string
	challengesSchema     = jsonschema.MustCompileString("challenges.schema.json", challengesSchemaText)
)

//Challenge is one day of a challenges file
type Challenge struct {
	Day         int    `json:"day"`
	Parts       int    `json:"parts"`
	ExampleData string `json:"example_data"`
	Data        string `json:"data"`
}

//Input returns the example data or the real data
func (c Challenge) Input(example bool) string {
	if example {
		return c.ExampleData
	}
	return c.Data
}

//LoadChallenge reads the challenges file at path and returns the one keyed by day
//a missing day field takes the key, missing parts default to one
func LoadChallenge(path string, day int) (Challenge, error) {
	text, err := ReadFile(path)
	if err != nil {
		return Challenge{}, err
	}
	c, err := ParseChallenge([]byte(text), day)
	if err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

//ParseChallenge validates a challenges document and returns the one keyed by day
func ParseChallenge(doc []byte, day int) (Challenge, error) {
	var raw interface{}
	if err := json.Unmarshal(doc, &raw); err != nil {
		return Challenge{}, fmt.Errorf("%w: %v", ErrInvalidChallenges, err)
	}
	if err := challengesSchema.Validate(raw); err != nil {
		return Challenge{}, fmt.Errorf("%w: %v", ErrInvalidChallenges, err)
	}

	var challenges map[string]Challenge
	if err := json.Unmarshal(doc, &challenges); err != nil {
		return Challenge{}, fmt.Errorf("%w: %v", ErrInvalidChallenges, err)
	}
	c, ok := challenges[strconv.Itoa(day)]
	if !ok {
		return Challenge{}, fmt.Errorf("%w: day %d", ErrChallengeNotFound, day)
	}
	if c.Day == 0 {
		c.Day = day
	}
	if c.Parts == 0 {
		c.Parts = DefParts
	}
	return c, nil
}
