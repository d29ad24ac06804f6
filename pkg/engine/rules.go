package engine

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"tagforge-hq/tagforge/pkg/pagectx"
)

// RuleFunc evaluates one rule against a request context. Implementations
// must be pure: same inputs, same result.
type RuleFunc func(rule Node, ctx pagectx.Context) bool

// Registry maps rule type names to their evaluators. The built-in types are
// pre-registered; hosts extend it with custom types. A type with no
// registered evaluator matches unconditionally (fail-open), preserving the
// behavior of the original system this engine replaces.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]RuleFunc
}

// NewRegistry returns a registry with all built-in rule types registered.
func NewRegistry() *Registry {
	r := &Registry{funcs: make(map[string]RuleFunc)}
	r.Register(RuleTypePageType, evalPageType)
	r.Register(RuleTypeUserStatus, evalUserStatus)
	r.Register(RuleTypeUserRole, evalUserRole)
	r.Register(RuleTypeDeviceType, evalDeviceType)
	r.Register(RuleTypePostID, evalPostID)
	r.Register(RuleTypeCategory, evalCategory)
	r.Register(RuleTypeTag, evalTag)
	r.Register(RuleTypeURL, evalURL)
	r.Register(RuleTypeDateRange, evalDateRange)
	r.Register(RuleTypeTime, evalTime)
	r.Register(RuleTypeDayOfWeek, evalDayOfWeek)
	return r
}

// Register adds or replaces the evaluator for a rule type.
func (r *Registry) Register(ruleType string, fn RuleFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.funcs[ruleType] = fn
}

// lookup returns the evaluator for a rule type, or nil when unregistered.
func (r *Registry) lookup(ruleType string) RuleFunc {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.funcs[ruleType]
}

func evalPageType(rule Node, ctx pagectx.Context) bool {
	is := ctx.PageType == rule.Value
	if rule.Operator == OpNotEquals {
		return !is
	}
	return is
}

func evalUserStatus(rule Node, ctx pagectx.Context) bool {
	var is bool
	if rule.Value == "logged_in" {
		is = ctx.LoggedIn
	} else {
		is = !ctx.LoggedIn
	}
	if rule.Operator == OpNotEquals {
		return !is
	}
	return is
}

func evalUserRole(rule Node, ctx pagectx.Context) bool {
	if !ctx.LoggedIn {
		return rule.Operator == OpNotEquals
	}
	has := ctx.HasRole(rule.Value)
	if rule.Operator == OpNotEquals {
		return !has
	}
	return has
}

func evalDeviceType(rule Node, ctx pagectx.Context) bool {
	is := string(ctx.Device) == rule.Value
	if rule.Operator == OpNotEquals {
		return !is
	}
	return is
}

// evalPostID compares the page's primary entity ID against a comma list.
// equals/not_equals use the whole list; greater_than/less_than compare
// against the first token only.
func evalPostID(rule Node, ctx pagectx.Context) bool {
	ids := parseIntList(rule.Value)
	if len(ids) == 0 {
		return false
	}

	switch rule.Operator {
	case OpEquals:
		return containsInt(ids, ctx.EntityID)
	case OpNotEquals:
		return !containsInt(ids, ctx.EntityID)
	case OpGreaterThan:
		return ctx.EntityID > ids[0]
	case OpLessThan:
		return ctx.EntityID < ids[0]
	default:
		return false
	}
}

func evalCategory(rule Node, ctx pagectx.Context) bool {
	// Categories only make sense on single posts and category archives.
	if ctx.PageType != pagectx.PageTypeSingle && ctx.PageType != pagectx.PageTypeCategory {
		return rule.Operator == OpNotEquals
	}
	has := intersects(ctx.Categories, splitList(rule.Value))
	if rule.Operator == OpNotEquals {
		return !has
	}
	return has
}

func evalTag(rule Node, ctx pagectx.Context) bool {
	if ctx.PageType != pagectx.PageTypeSingle && ctx.PageType != pagectx.PageTypeTag {
		return rule.Operator == OpNotEquals
	}
	has := intersects(ctx.Tags, splitList(rule.Value))
	if rule.Operator == OpNotEquals {
		return !has
	}
	return has
}

func evalURL(rule Node, ctx pagectx.Context) bool {
	switch rule.Operator {
	case OpContains:
		return strings.Contains(ctx.URL, rule.Value)
	case OpNotContains:
		return !strings.Contains(ctx.URL, rule.Value)
	case OpEquals:
		return ctx.URL == rule.Value
	case OpNotEquals:
		return ctx.URL != rule.Value
	case OpStartsWith:
		return strings.HasPrefix(ctx.URL, rule.Value)
	case OpEndsWith:
		return strings.HasSuffix(ctx.URL, rule.Value)
	default:
		return false
	}
}

// evalDateRange parses "2006-01-02|2006-01-02" and checks whether the
// request time falls inside the range, end date inclusive through 23:59:59.
// A malformed range evaluates false.
func evalDateRange(rule Node, ctx pagectx.Context) bool {
	parts := strings.Split(rule.Value, "|")
	if len(parts) != 2 {
		return false
	}

	loc := ctx.Now.Location()
	start, err := parseDate(strings.TrimSpace(parts[0]), loc)
	if err != nil {
		return false
	}
	end, err := parseDate(strings.TrimSpace(parts[1]), loc)
	if err != nil {
		return false
	}
	end = end.Add(24*time.Hour - time.Second) // through 23:59:59

	in := !ctx.Now.Before(start) && !ctx.Now.After(end)
	if rule.Operator == OpNotIn {
		return !in
	}
	return in
}

// evalTime parses "HH:MM|HH:MM" and compares the request's clock time
// lexicographically, matching the encoded representation.
func evalTime(rule Node, ctx pagectx.Context) bool {
	parts := strings.Split(rule.Value, "|")
	if len(parts) != 2 {
		return false
	}

	now := ctx.Now.Format("15:04")
	in := now >= strings.TrimSpace(parts[0]) && now <= strings.TrimSpace(parts[1])
	if rule.Operator == OpNotIn {
		return !in
	}
	return in
}

func evalDayOfWeek(rule Node, ctx pagectx.Context) bool {
	today := strings.ToLower(ctx.Now.Weekday().String())
	is := false
	for _, day := range splitList(rule.Value) {
		if strings.ToLower(day) == today {
			is = true
			break
		}
	}
	if rule.Operator == OpNotIn {
		return !is
	}
	return is
}

func parseDate(value string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", value, loc)
}

// splitList splits a comma-encoded rule value into trimmed tokens.
func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseIntList parses a comma list of integers, mapping unparseable tokens
// to zero the way the stored format has always been interpreted.
func parseIntList(value string) []int64 {
	parts := strings.Split(value, ",")
	out := make([]int64, 0, len(parts))
	for _, p := range parts {
		n, _ := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		out = append(out, n)
	}
	return out
}

func containsInt(list []int64, n int64) bool {
	for _, v := range list {
		if v == n {
			return true
		}
	}
	return false
}

func intersects(facts, values []string) bool {
	for _, f := range facts {
		for _, v := range values {
			if f == v {
				return true
			}
		}
	}
	return false
}
