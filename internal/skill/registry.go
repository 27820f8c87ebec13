package skill

import (
	"fmt"
	"log"
	"sort"
)

// DefaultCandidateFloor drops matches too weak to be worth ranking.
// The planner's policy owns the effective value; this is its default.
const DefaultCandidateFloor = 0.2

// Match pairs a skill with its scored result for one utterance.
type Match struct {
	Skill  *Skill
	Result MatchResult
}

// Registry holds all registered skills. Built once via
// RegistryBuilder and read-only afterward, so concurrent lookups need
// no locking.
type Registry struct {
	skills []*Skill
	byID   map[string]*Skill
	logf   func(format string, args ...any)
}

// RegistryBuilder assembles an immutable Registry from a fixed list
// of skill descriptors.
type RegistryBuilder struct {
	skills []*Skill
	logf   func(format string, args ...any)
	err    error
}

// NewRegistryBuilder creates a builder with stdlib logging for
// matcher faults.
func NewRegistryBuilder() *RegistryBuilder {
	return &RegistryBuilder{
		logf: log.Printf,
	}
}

// WithLogf overrides the fault logger (tests pass t.Logf).
func (b *RegistryBuilder) WithLogf(logf func(format string, args ...any)) *RegistryBuilder {
	if logf != nil {
		b.logf = logf
	}
	return b
}

// Register adds a skill. Errors are deferred to Build.
func (b *RegistryBuilder) Register(s *Skill) *RegistryBuilder {
	if b.err != nil {
		return b
	}
	if err := s.validate(); err != nil {
		b.err = err
		return b
	}
	for _, existing := range b.skills {
		if existing.ID == s.ID {
			b.err = fmt.Errorf("skill %q registered twice", s.ID)
			return b
		}
	}
	b.skills = append(b.skills, s)
	return b
}

// Build finalizes the registry.
func (b *RegistryBuilder) Build() (*Registry, error) {
	if b.err != nil {
		return nil, b.err
	}
	byID := make(map[string]*Skill, len(b.skills))
	for _, s := range b.skills {
		byID[s.ID] = s
	}
	return &Registry{
		skills: b.skills,
		byID:   byID,
		logf:   b.logf,
	}, nil
}

// Get returns a skill by ID, or nil.
func (r *Registry) Get(id string) *Skill {
	return r.byID[id]
}

// Skills returns the registered skills in registration order.
func (r *Registry) Skills() []*Skill {
	out := make([]*Skill, len(r.skills))
	copy(out, r.skills)
	return out
}

// FindMatches runs every skill's matcher and returns candidates at or
// above the floor, sorted by descending confidence with skill ID as a
// deterministic tie-break. The floor comes from the caller's policy.
// A panicking matcher is logged and skipped; it never aborts the
// other skills.
func (r *Registry) FindMatches(in MatchInput, floor float64) []Match {
	matches := make([]Match, 0, len(r.skills))
	for _, s := range r.skills {
		result, ok := r.matchOne(s, in)
		if !ok {
			continue
		}
		if result.Confidence < floor {
			continue
		}
		matches = append(matches, Match{Skill: s, Result: result})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Result.Confidence != matches[j].Result.Confidence {
			return matches[i].Result.Confidence > matches[j].Result.Confidence
		}
		return matches[i].Skill.ID < matches[j].Skill.ID
	})
	return matches
}

// matchOne isolates one matcher invocation.
func (r *Registry) matchOne(s *Skill, in MatchInput) (result MatchResult, ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logf("skill %s: matcher panicked: %v", s.ID, rec)
			ok = false
		}
	}()
	return s.Match(in), true
}
