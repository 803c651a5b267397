package student

import "strings"

// Roster is the locally held copy of the student list.
// Entries only change through server-confirmed records. It is not safe for concurrent use.
type Roster struct {
	students []Student
	loaded   bool
}

// Set replaces the whole list, e.g. after fetching it.
func (r *Roster) Set(students []Student) {
	r.students = make([]Student, len(students))
	copy(r.students, students)
	r.loaded = true
}

func (r *Roster) Loaded() bool {
	return r.loaded
}

func (r *Roster) Len() int {
	return len(r.students)
}

// All returns a copy of the list.
func (r *Roster) All() []Student {
	all := make([]Student, len(r.students))
	copy(all, r.students)
	return all
}

func (r *Roster) Get(id int) (Student, bool) {
	if i := r.index(id); i >= 0 {
		return r.students[i], true
	}
	return Student{}, false
}

// Add appends a newly created student. If a student with the same ID is already listed, it is
// replaced instead, so the ID appears exactly once. Returns false on replace.
func (r *Roster) Add(s Student) bool {
	if i := r.index(s.ID); i >= 0 {
		r.students[i] = s
		return false
	}
	r.students = append(r.students, s)
	return true
}

// Replace swaps the listed student having the same ID as `s`.
// Returns false if no such student is listed.
func (r *Roster) Replace(s Student) bool {
	if i := r.index(s.ID); i >= 0 {
		r.students[i] = s
		return true
	}
	return false
}

// Filter returns the students matching `query`. See Filter.
func (r *Roster) Filter(query string) []Student {
	return Filter(r.students, query)
}

func (r *Roster) index(id int) int {
	for i, s := range r.students {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// Filter returns, in order, the students whose first name, last name or ID contains `query`,
// case-insensitively. A blank query matches everyone; otherwise surrounding spaces are part of
// the query.
func Filter(students []Student, query string) []Student {
	blank := strings.TrimSpace(query) == ""
	query = strings.ToLower(query)
	filtered := make([]Student, 0, len(students))
	for _, s := range students {
		if blank || s.Matches(query) {
			filtered = append(filtered, s)
		}
	}
	return filtered
}
