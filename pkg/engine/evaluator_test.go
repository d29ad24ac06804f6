package engine

import (
	"testing"

	"tagforge-hq/tagforge/pkg/pagectx"
)

func TestEvaluateEmptyTree(t *testing.T) {
	e := NewEvaluator(nil, nil)

	if !e.Evaluate(nil, ruleCtx()) {
		t.Error("nil tree should match unconditionally")
	}
	if !e.Evaluate(Group(LogicAnd), ruleCtx()) {
		t.Error("empty AND group should match unconditionally")
	}
	if !e.Evaluate(Group(LogicOr), ruleCtx()) {
		t.Error("empty OR group should match unconditionally")
	}
}

func TestEvaluateLogic(t *testing.T) {
	yes := RuleNode(RuleTypePageType, OpEquals, "single")
	no := RuleNode(RuleTypePageType, OpEquals, "archive")

	tests := []struct {
		name string
		tree *Node
		want bool
	}{
		{"AND all true", Group(LogicAnd, yes, yes), true},
		{"AND one false", Group(LogicAnd, yes, no), false},
		{"OR one true", Group(LogicOr, no, yes), true},
		{"OR all false", Group(LogicOr, no, no), false},
		{"unknown logic defaults to AND", Group(Logic("XOR"), yes, no), false},
		{"nested group", Group(LogicAnd, yes, *Group(LogicOr, no, yes)), true},
		{"nested group fails", Group(LogicOr, no, *Group(LogicAnd, yes, no)), false},
		{"deep nesting", Group(LogicAnd, *Group(LogicOr, no, *Group(LogicAnd, yes, yes))), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEvaluator(nil, nil)
			if got := e.Evaluate(tt.tree, ruleCtx()); got != tt.want {
				t.Errorf("Evaluate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluateMemoizesPerTreeAndContext(t *testing.T) {
	calls := 0
	reg := NewRegistry()
	reg.Register("counted", func(rule Node, ctx pagectx.Context) bool {
		calls++
		return true
	})

	e := NewEvaluator(reg, nil)
	tree := Group(LogicAnd, RuleNode("counted", OpEquals, "x"))
	ctx := ruleCtx()

	for i := 0; i < 5; i++ {
		if !e.Evaluate(tree, ctx) {
			t.Fatal("tree should match")
		}
	}
	if calls != 1 {
		t.Errorf("rule evaluated %d times for identical inputs, want 1", calls)
	}

	// A structurally identical but distinct tree hits the same memo entry.
	clone := Group(LogicAnd, RuleNode("counted", OpEquals, "x"))
	e.Evaluate(clone, ctx)
	if calls != 1 {
		t.Errorf("structurally identical tree re-evaluated, calls = %d", calls)
	}

	// A different context misses the memo.
	other := ctx
	other.URL = "/elsewhere"
	e.Evaluate(tree, other)
	if calls != 2 {
		t.Errorf("different context should re-evaluate, calls = %d", calls)
	}
}

func TestEvaluateUnknownRuleTypeFailsOpen(t *testing.T) {
	e := NewEvaluator(nil, nil)

	tree := Group(LogicAnd,
		RuleNode("some_future_type", OpEquals, "whatever"),
		RuleNode(RuleTypePageType, OpEquals, "single"),
	)
	if !e.Evaluate(tree, ruleCtx()) {
		t.Error("unknown rule type should not suppress a matching tree")
	}

	alone := Group(LogicAnd, RuleNode("some_future_type", OpEquals, "whatever"))
	if !e.Evaluate(alone, ruleCtx()) {
		t.Error("a tree of only unknown rules should match")
	}
}

func TestEvaluateAllRulesRun(t *testing.T) {
	// Groups evaluate every child even after the outcome is decided.
	calls := 0
	reg := NewRegistry()
	reg.Register("counted_false", func(rule Node, ctx pagectx.Context) bool {
		calls++
		return false
	})

	e := NewEvaluator(reg, nil)
	tree := Group(LogicAnd,
		RuleNode("counted_false", OpEquals, "a"),
		RuleNode("counted_false", OpEquals, "b"),
		RuleNode("counted_false", OpEquals, "c"),
	)
	if e.Evaluate(tree, ruleCtx()) {
		t.Fatal("tree should not match")
	}
	if calls != 3 {
		t.Errorf("evaluated %d rules, want all 3", calls)
	}
}
