package domain

// Customer is a regular patron occupying the current-customer slot.
type Customer struct {
	Name     string       `json:"name"`
	Hint     string       `json:"hint"`
	Avatar   string       `json:"avatar"`
	Demand   DemandVector `json:"demand"`
	SpawnDay int          `json:"spawn_day"`
}

// BossCourse is one course of a boss's multi-course order.
type BossCourse struct {
	Name        string       `json:"name"`
	Hint        string       `json:"hint"`
	Demand      DemandVector `json:"demand"`
	MaxDistance float64      `json:"max_distance"`
}

// Boss is a multi-course encounter that replaces the day's final customer
// slot on its configured day.
type Boss struct {
	Name          string       `json:"name"`
	Title         string       `json:"title"`
	Avatar        string       `json:"avatar"`
	Day           int          `json:"day"`
	Orders        []BossCourse `json:"orders"`
	VictoryBonus  float64      `json:"victory_bonus"`
	CurrentCourse int          `json:"current_course"`
	CoursesServed int          `json:"courses_served"`
	CoursesPassed int          `json:"courses_passed"`
}

// OnFinalCourse reports whether the boss is waiting on its last course.
func (b *Boss) OnFinalCourse() bool {
	return b.CurrentCourse >= len(b.Orders)-1
}

// Course returns the currently active course, or nil when the encounter has
// run past its order list.
func (b *Boss) Course() *BossCourse {
	if b.CurrentCourse < 0 || b.CurrentCourse >= len(b.Orders) {
		return nil
	}
	return &b.Orders[b.CurrentCourse]
}
