package scene

// Repository maps labels to the instances that carry them. It is the only
// way one feature references another by name, so placement ordering
// decides which labels are visible to later features.
type Repository struct {
	byLabel map[string][]*Instance
}

// NewRepository returns an empty label repository.
func NewRepository() *Repository {
	return &Repository{byLabel: make(map[string][]*Instance)}
}

// Put registers the instance under every given label. Empty labels are
// ignored.
func (r *Repository) Put(inst *Instance, labels ...string) {
	for _, label := range labels {
		if label == "" {
			continue
		}
		r.byLabel[label] = append(r.byLabel[label], inst)
	}
}

// Has reports whether any instance carries the label.
func (r *Repository) Has(label string) bool {
	return len(r.byLabel[label]) > 0
}

// GetOne returns the first instance registered under the label, or nil.
func (r *Repository) GetOne(label string) *Instance {
	instances := r.byLabel[label]
	if len(instances) == 0 {
		return nil
	}
	return instances[0]
}

// GetAll returns every instance registered under the label.
func (r *Repository) GetAll(label string) []*Instance {
	return r.byLabel[label]
}
