package quiz

// SetSummary is what the set picker shows for one set.
type SetSummary struct {
	Name          string `json:"name"`
	QuestionCount int    `json:"questionCount"`
}

// Catalog maps set names to question sets, remembering insertion order.
// A Catalog belongs to one user and is not safe for concurrent use.
type Catalog struct {
	order []string
	sets  map[string]*QuizSet
}

func NewCatalog() *Catalog {
	return &Catalog{sets: make(map[string]*QuizSet)}
}

// AddOrReplace stores set under its name. Replacing keeps the original
// position in List.
func (c *Catalog) AddOrReplace(set *QuizSet) {
	if _, ok := c.sets[set.Name()]; !ok {
		c.order = append(c.order, set.Name())
	}
	c.sets[set.Name()] = set
}

func (c *Catalog) List() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

func (c *Catalog) Get(name string) (*QuizSet, error) {
	s, ok := c.sets[name]
	if !ok {
		return nil, &UnknownSetError{Name: name}
	}
	return s, nil
}

// QuestionCount returns 0 for names not in the catalog.
func (c *Catalog) QuestionCount(name string) int {
	if s, ok := c.sets[name]; ok {
		return s.Len()
	}
	return 0
}

func (c *Catalog) Summaries() []SetSummary {
	out := make([]SetSummary, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, SetSummary{Name: name, QuestionCount: c.sets[name].Len()})
	}
	return out
}

func (c *Catalog) Len() int { return len(c.order) }
