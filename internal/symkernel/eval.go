package symkernel

// Substitute rebuilds each expr in exprs, replacing every subtree
// identical to olds[i] (matched by Name for symbols, by pointer identity
// otherwise) with news[i]. Handles are immutable, so substitution
// always produces fresh nodes rather than mutating shared ones (§5).
func Substitute(exprs []*Handle, olds []*Handle, news []*Handle) []*Handle {
	out := make([]*Handle, len(exprs))
	for i, e := range exprs {
		out[i] = substituteOne(e, olds, news)
	}
	return out
}

func substituteOne(h *Handle, olds, news []*Handle) *Handle {
	for i, old := range olds {
		if matches(h, old) {
			return news[i]
		}
	}
	if len(h.Args) == 0 {
		return h
	}
	newArgs := make([]*Handle, len(h.Args))
	changed := false
	for i, a := range h.Args {
		newArgs[i] = substituteOne(a, olds, news)
		if newArgs[i] != a {
			changed = true
		}
	}
	if !changed {
		return h
	}
	clone := *h
	clone.Args = newArgs
	return &clone
}

func matches(a, b *Handle) bool {
	if a == b {
		return true
	}
	if a.Op == "sym" && b.Op == "sym" {
		return a.Name == b.Name
	}
	return false
}

// SymVar collects the free symbols referenced within expr, in
// first-encounter order and de-duplicated by name, per §6's symvar.
func SymVar(expr *Handle) []*Handle {
	seen := map[string]bool{}
	var out []*Handle
	var walk func(h *Handle)
	walk = func(h *Handle) {
		if h.Op == "sym" {
			if !seen[h.Name] {
				seen[h.Name] = true
				out = append(out, h)
			}
			return
		}
		for _, a := range h.Args {
			walk(a)
		}
	}
	walk(expr)
	return out
}
