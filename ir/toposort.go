package ir

// SortSchemas orders named entries so that dependencies precede dependents,
// without reordering entries that have no dependency relationship: the visit
// iterates in input order and appends depth-first post-order, so ties keep
// their original parse order and emission stays deterministic.
//
// Cycle policy: a dependency that is currently in-progress is not recursed
// into and not reported as an error; each entry is emitted where its own visit
// completes. Mutually recursive entries therefore keep their relative input
// order, and consumers of the sorted list must tolerate forward references.
func SortSchemas(schemas []Named) []Named {
	byName := make(map[string]int, len(schemas))
	for i, s := range schemas {
		byName[s.Name] = i
	}

	const (
		unvisited = iota
		inProgress
		done
	)
	state := make([]int, len(schemas))
	out := make([]Named, 0, len(schemas))

	var visit func(i int)
	visit = func(i int) {
		if state[i] != unvisited {
			return
		}
		state[i] = inProgress
		for _, dep := range orderedDeps(schemas[i]) {
			j, ok := byName[dep]
			if !ok {
				// Dangling ref; nothing to order against.
				continue
			}
			if state[j] == inProgress {
				// Cycle: leave j to finish its own visit.
				continue
			}
			visit(j)
		}
		state[i] = done
		out = append(out, schemas[i])
	}

	for i := range schemas {
		visit(i)
	}
	return out
}

// orderedDeps returns an entry's dependencies in a deterministic order: input
// order of the dependency set as discovered by a fresh structural walk. Using
// the walk rather than map iteration keeps the sort stable across runs.
func orderedDeps(n Named) []string {
	var out []string
	seen := map[string]struct{}{}
	var walk func(s Schema)
	walk = func(s Schema) {
		switch t := s.(type) {
		case *Ref:
			if t.Name == n.Name {
				return
			}
			if _, ok := seen[t.Name]; ok {
				return
			}
			seen[t.Name] = struct{}{}
			out = append(out, t.Name)
		case *Object:
			for _, p := range t.Properties {
				walk(p.Schema)
			}
			if t.Policy == AdditionalSchema && t.Additional != nil {
				walk(t.Additional)
			}
		case *Array:
			walk(t.Items)
		case *Tuple:
			for _, it := range t.Items {
				walk(it)
			}
		case *Record:
			walk(t.Key)
			walk(t.Value)
		case *Union:
			for _, m := range t.Members {
				walk(m)
			}
		case *Intersection:
			for _, m := range t.Members {
				walk(m)
			}
		}
	}
	walk(n.Schema)
	return out
}
