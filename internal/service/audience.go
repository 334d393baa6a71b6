// internal/service/audience.go
package service

import "github.com/farmacliq/crm-backend/internal/model"

// TargetPredicate decides whether a client belongs to a campaign audience.
// The campaign's target expression is advisory metadata; new selector kinds
// plug in here without touching the dispatch loop.
type TargetPredicate interface {
    Evaluate(c *model.Client) bool
}

type allTargets struct{}

func (allTargets) Evaluate(_ *model.Client) bool { return true }

type tagTarget struct {
    tag string
}

func (t tagTarget) Evaluate(c *model.Client) bool { return c.HasTag(t.tag) }

// ParseTarget understands "all" (and empty) plus "tag:<name>". Anything
// unrecognized degrades to the full audience rather than failing dispatch.
func ParseTarget(expr string) TargetPredicate {
    const tagPrefix = "tag:"
    if len(expr) > len(tagPrefix) && expr[:len(tagPrefix)] == tagPrefix {
        return tagTarget{tag: expr[len(tagPrefix):]}
    }
    return allTargets{}
}
