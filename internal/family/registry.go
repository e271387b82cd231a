package family

import (
	"errors"
	"fmt"
	"sync"

	"phenos/internal/model"
)

var (
	ErrIndividualExists   = errors.New("individual already registered")
	ErrIndividualNotFound = errors.New("individual not found")
	ErrUnionExists        = errors.New("union already registered")
	ErrUnionNotFound      = errors.New("union not found")
)

// Registry holds the family network. Individuals and unions are immutable
// once registered, and both registries preserve insertion order so network
// iteration stays deterministic.
type Registry struct {
	mu sync.RWMutex

	individuals map[string]model.Individual
	memberOrder []string

	unions     map[string]model.FamilyUnion
	unionOrder []string
}

func NewRegistry() *Registry {
	return &Registry{
		individuals: make(map[string]model.Individual),
		unions:      make(map[string]model.FamilyUnion),
	}
}

func (r *Registry) RegisterIndividual(individual model.Individual) error {
	if individual.ID == "" {
		return errors.New("individual id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.individuals[individual.ID]; exists {
		return fmt.Errorf("%w: %s", ErrIndividualExists, individual.ID)
	}
	individual.Markers = append([]string(nil), individual.Markers...)
	r.individuals[individual.ID] = individual
	r.memberOrder = append(r.memberOrder, individual.ID)
	return nil
}

func (r *Registry) GetIndividual(id string) (model.Individual, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	individual, ok := r.individuals[id]
	return individual, ok
}

// RegisterUnion records a union between two already-registered individuals.
// GeneticDistance is carried through unchanged (default 0).
func (r *Registry) RegisterUnion(unionID, motherID, fatherID string) (model.FamilyUnion, error) {
	if unionID == "" {
		return model.FamilyUnion{}, errors.New("union id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.unions[unionID]; exists {
		return model.FamilyUnion{}, fmt.Errorf("%w: %s", ErrUnionExists, unionID)
	}
	mother, ok := r.individuals[motherID]
	if !ok {
		return model.FamilyUnion{}, fmt.Errorf("%w: %s", ErrIndividualNotFound, motherID)
	}
	father, ok := r.individuals[fatherID]
	if !ok {
		return model.FamilyUnion{}, fmt.Errorf("%w: %s", ErrIndividualNotFound, fatherID)
	}

	union := model.FamilyUnion{
		UnionID: unionID,
		Mother:  mother,
		Father:  father,
	}
	r.unions[unionID] = union
	r.unionOrder = append(r.unionOrder, unionID)
	return union, nil
}

func (r *Registry) GetUnion(unionID string) (model.FamilyUnion, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	union, ok := r.unions[unionID]
	return union, ok
}

// Network returns all registered individuals in registration order. The
// profiler iterates this slice directly.
func (r *Registry) Network() []model.Individual {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Individual, 0, len(r.memberOrder))
	for _, id := range r.memberOrder {
		out = append(out, r.individuals[id])
	}
	return out
}

// Unions returns all registered unions in registration order.
func (r *Registry) Unions() []model.FamilyUnion {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.FamilyUnion, 0, len(r.unionOrder))
	for _, id := range r.unionOrder {
		out = append(out, r.unions[id])
	}
	return out
}
