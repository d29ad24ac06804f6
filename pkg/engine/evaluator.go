package engine

import (
	"log/slog"

	"github.com/zeebo/xxh3"

	"tagforge-hq/tagforge/pkg/pagectx"
)

// Evaluator evaluates condition trees against request contexts. It memoizes
// results per (tree, context) content hash, so it is meant to live for one
// page render: the render pipeline creates a fresh Evaluator per request
// and drops it afterwards. An Evaluator is not safe for concurrent use.
type Evaluator struct {
	registry *Registry
	logger   *slog.Logger
	memo     map[memoKey]bool
}

type memoKey struct {
	tree uint64
	ctx  pagectx.Fingerprint
}

// NewEvaluator creates an evaluator backed by the given registry. A nil
// registry gets the built-in rule types; a nil logger gets slog.Default().
func NewEvaluator(registry *Registry, logger *slog.Logger) *Evaluator {
	if registry == nil {
		registry = NewRegistry()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Evaluator{
		registry: registry,
		logger:   logger,
		memo:     make(map[memoKey]bool),
	}
}

// Evaluate reports whether the condition tree matches the context. A nil
// tree or a group with no rules matches unconditionally.
//
// Every rule in a group is evaluated before the group combines results; the
// outcome is logically equivalent to short-circuit AND/OR, and keeping
// evaluation total keeps memoization behavior independent of rule order.
func (e *Evaluator) Evaluate(tree *Node, ctx pagectx.Context) bool {
	if tree == nil || len(tree.Rules) == 0 {
		return true
	}

	key := memoKey{tree: xxh3.Hash(tree.canonical()), ctx: ctx.Digest()}
	if result, ok := e.memo[key]; ok {
		return result
	}

	result := e.evaluateGroup(tree, ctx)
	e.memo[key] = result
	return result
}

func (e *Evaluator) evaluateGroup(group *Node, ctx pagectx.Context) bool {
	if len(group.Rules) == 0 {
		return true
	}

	results := make([]bool, 0, len(group.Rules))
	for i := range group.Rules {
		child := &group.Rules[i]
		if child.IsGroup() {
			results = append(results, e.evaluateGroup(child, ctx))
		} else {
			results = append(results, e.evaluateRule(*child, ctx))
		}
	}

	if group.Logic == LogicOr {
		for _, r := range results {
			if r {
				return true
			}
		}
		return false
	}

	// AND is the default for any other logic value.
	for _, r := range results {
		if !r {
			return false
		}
	}
	return true
}

func (e *Evaluator) evaluateRule(rule Node, ctx pagectx.Context) bool {
	fn := e.registry.lookup(rule.Type)
	if fn == nil {
		// Fail-open: an unrecognized rule type never suppresses output.
		e.logger.Debug("unknown rule type, treating as match",
			"type", rule.Type,
			"operator", rule.Operator,
		)
		return true
	}
	return fn(rule, ctx)
}
