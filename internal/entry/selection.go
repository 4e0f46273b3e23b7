package entry

import (
	"slices"

	"github.com/tasaronina/MyDiary/internal/models"
)

// Selection tracks which catalog labels are ticked. Not safe for
// concurrent use.
type Selection struct {
	picked map[models.Group]map[string]bool
}

func NewSelection() *Selection {
	return &Selection{picked: map[models.Group]map[string]bool{}}
}

// FromRecord restores a selection from a saved record, ignoring labels
// that are not in the catalog.
func FromRecord(r models.HealthRecord) *Selection {
	s := NewSelection()
	for g, list := range map[models.Group][]string{
		models.GroupDiseases: r.Diseases,
		models.GroupSymptoms: r.Symptoms,
		models.GroupTriggers: r.Triggers,
	} {
		for _, l := range list {
			if slices.Contains(catalog[g], l) {
				s.set(g, l, true)
			}
		}
	}
	return s
}

func (s *Selection) set(g models.Group, label string, on bool) {
	if s.picked[g] == nil {
		s.picked[g] = map[string]bool{}
	}
	s.picked[g][label] = on
}

// Toggle flips the i-th label of g. Out-of-range indexes are ignored.
func (s *Selection) Toggle(g models.Group, i int) {
	labels := catalog[g]
	if i < 0 || i >= len(labels) {
		return
	}
	s.set(g, labels[i], !s.picked[g][labels[i]])
}

func (s *Selection) Has(g models.Group, label string) bool {
	return s.picked[g][label]
}

// Selected returns ticked labels of g in catalog order.
func (s *Selection) Selected(g models.Group) []string {
	out := []string{}
	for _, l := range catalog[g] {
		if s.picked[g][l] {
			out = append(out, l)
		}
	}
	return out
}

// Reset unticks everything.
func (s *Selection) Reset() {
	s.picked = map[models.Group]map[string]bool{}
}
