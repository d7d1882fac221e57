package library

import (
	"slices"
	"strings"
	"time"
)

// ResourceStatus tracks the last fetch outcome of one backend resource.
type ResourceStatus struct {
	Name        string    `json:"name"`
	LastSuccess time.Time `json:"lastSuccess,omitzero"`
	LastError   string    `json:"lastError,omitempty"`
	LastErrorAt time.Time `json:"lastErrorAt,omitzero"`
}

// Status summarizes the loaded snapshot.
type Status struct {
	Ready            bool             `json:"ready"`
	LoadedAt         time.Time        `json:"loadedAt,omitzero"`
	Documents        int              `json:"documents"`
	DocTypes         int              `json:"docTypes"`
	FacetDefinitions int              `json:"facetDefinitions"`
	Resources        []ResourceStatus `json:"resources"`
}

// Healthy reports whether every resource loaded on its last attempt.
func (st Status) Healthy() bool {
	for _, r := range st.Resources {
		if r.LastError != "" {
			return false
		}
	}
	return st.Ready
}

// Status returns the current load status.
func (s *Service) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	resources := make([]ResourceStatus, 0, len(s.status))
	for _, r := range s.status {
		resources = append(resources, *r)
	}
	slices.SortFunc(resources, func(a, b ResourceStatus) int {
		return strings.Compare(a.Name, b.Name)
	})

	return Status{
		Ready:            s.ready,
		LoadedAt:         s.snapshot.LoadedAt,
		Documents:        len(s.snapshot.Documents),
		DocTypes:         len(s.snapshot.DocTypes),
		FacetDefinitions: len(s.snapshot.FacetDefinitions),
		Resources:        resources,
	}
}
