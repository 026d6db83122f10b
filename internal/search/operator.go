package search

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Operator defines how the value of a query item is matched
type Operator int

const (
	OperatorAnd Operator = iota
	OperatorOr
	OperatorNot
	OperatorPhrase
	OperatorIs
)

var operatorNames = map[Operator]string{
	OperatorAnd:    "AND",
	OperatorOr:     "OR",
	OperatorNot:    "NOT",
	OperatorPhrase: "PHRASE",
	OperatorIs:     "IS",
}

func (o Operator) String() string {
	if name, ok := operatorNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Operator(%d)", int(o))
}

// ParseOperator returns the operator named s, case insensitive
func ParseOperator(s string) (Operator, error) {
	for op, name := range operatorNames {
		if strings.EqualFold(name, s) {
			return op, nil
		}
	}
	return OperatorAnd, fmt.Errorf("unknown operator %q", s)
}

func (o Operator) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

func (o *Operator) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	op, err := ParseOperator(s)
	if err != nil {
		return err
	}
	*o = op
	return nil
}

// GroupOperator joins items inside a group, or groups inside an advanced search
type GroupOperator int

const (
	GroupAnd GroupOperator = iota
	GroupOr
)

func (g GroupOperator) String() string {
	if g == GroupOr {
		return "OR"
	}
	return "AND"
}

// connective returns the boolean keyword placed between two clauses
func (g GroupOperator) connective() string {
	return " " + g.String() + " "
}

func (g GroupOperator) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.String())
}

func (g *GroupOperator) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch strings.ToUpper(s) {
	case "AND", "":
		*g = GroupAnd
	case "OR":
		*g = GroupOr
	default:
		return fmt.Errorf("unknown group operator %q", s)
	}
	return nil
}
