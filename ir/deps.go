package ir

// Dependencies collects the names of every ref reachable by structural
// traversal of s. The walk covers a single schema's finite tree, so no cycle
// guard is needed; cycles only exist across named entries, through refs, and
// refs are not followed.
func Dependencies(s Schema) map[string]struct{} {
	deps := map[string]struct{}{}
	collectDeps(s, deps)
	return deps
}

func collectDeps(s Schema, deps map[string]struct{}) {
	switch t := s.(type) {
	case *Ref:
		deps[t.Name] = struct{}{}
	case *Object:
		for _, p := range t.Properties {
			collectDeps(p.Schema, deps)
		}
		if t.Policy == AdditionalSchema && t.Additional != nil {
			collectDeps(t.Additional, deps)
		}
	case *Array:
		collectDeps(t.Items, deps)
	case *Tuple:
		for _, it := range t.Items {
			collectDeps(it, deps)
		}
	case *Record:
		collectDeps(t.Key, deps)
		collectDeps(t.Value, deps)
	case *Union:
		for _, m := range t.Members {
			collectDeps(m, deps)
		}
	case *Intersection:
		for _, m := range t.Members {
			collectDeps(m, deps)
		}
	}
}
