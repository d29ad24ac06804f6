package engine

import (
	"encoding/json"
)

// Logic is the combinator applied to a condition group's children.
type Logic string

const (
	// LogicAnd matches when no child evaluates false.
	LogicAnd Logic = "AND"

	// LogicOr matches when at least one child evaluates true.
	LogicOr Logic = "OR"
)

// Operator compares a context fact against a rule value. Operator semantics
// depend on the rule type; types ignore operators they do not support.
type Operator string

const (
	OpEquals      Operator = "equals"
	OpNotEquals   Operator = "not_equals"
	OpContains    Operator = "contains"
	OpNotContains Operator = "not_contains"
	OpGreaterThan Operator = "greater_than"
	OpLessThan    Operator = "less_than"
	OpStartsWith  Operator = "starts_with"
	OpEndsWith    Operator = "ends_with"
	OpInRange     Operator = "in_range"
	OpNotIn       Operator = "not_in"
)

// Built-in rule types. The set is open; see Registry.
const (
	RuleTypePageType   = "page_type"
	RuleTypeUserStatus = "user_status"
	RuleTypeUserRole   = "user_role"
	RuleTypeDeviceType = "device_type"
	RuleTypePostID     = "post_id"
	RuleTypeCategory   = "category"
	RuleTypeTag        = "tag"
	RuleTypeURL        = "url"
	RuleTypeDateRange  = "date_range"
	RuleTypeTime       = "time"
	RuleTypeDayOfWeek  = "day_of_week"
)

// Node is one element of a condition tree: either a group (Rules non-nil)
// or a leaf rule. The JSON shape matches the stored representation: a node
// carrying a "rules" key is a group, anything else is a rule.
type Node struct {
	// Group fields.
	Logic Logic  `json:"logic,omitempty" yaml:"logic,omitempty"`
	Rules []Node `json:"rules,omitempty" yaml:"rules,omitempty"`

	// Rule fields.
	Type     string   `json:"type,omitempty" yaml:"type,omitempty"`
	Operator Operator `json:"operator,omitempty" yaml:"operator,omitempty"`
	Value    string   `json:"value,omitempty" yaml:"value,omitempty"`
}

// IsGroup reports whether the node is a nested condition group.
func (n *Node) IsGroup() bool {
	return n != nil && n.Rules != nil
}

// Group builds an explicit condition group.
func Group(logic Logic, children ...Node) *Node {
	if children == nil {
		children = []Node{}
	}
	return &Node{Logic: logic, Rules: children}
}

// RuleNode builds a leaf rule node.
func RuleNode(ruleType string, op Operator, value string) Node {
	return Node{Type: ruleType, Operator: op, Value: value}
}

// canonical returns a deterministic serialization of the tree for use in
// memoization keys. encoding/json is stable for struct fields, so marshaling
// the node directly is canonical.
func (n *Node) canonical() []byte {
	if n == nil {
		return nil
	}
	data, err := json.Marshal(n)
	if err != nil {
		// Node contains only marshalable field types; this cannot happen.
		return nil
	}
	return data
}
