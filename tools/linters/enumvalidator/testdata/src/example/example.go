package example

type Priority string

const (
	PriorityLow  Priority = "low"
	PriorityHigh Priority = "high"
)

type MemberRole string

const (
	MemberRoleAdmin MemberRole = "admin"
)

type Task struct {
	Title    string
	Priority Priority
}

type Member struct {
	Role MemberRole
}

func bad() {
	t := &Task{}
	t.Priority = "urgent" // want "enum field Priority assigned string literal"

	m := &Member{}
	m.Role = "superuser" // want "enum field Role assigned string literal"

	_ = Task{Title: "ok", Priority: "later"} // want "enum field Priority assigned string literal"
}

func good() {
	t := &Task{}
	t.Priority = PriorityHigh
	t.Title = "plain strings are fine"

	m := &Member{}
	m.Role = MemberRoleAdmin

	_ = Task{Title: "ok", Priority: PriorityLow}
}

func alsoGood() {
	// Variable, not literal
	priority := PriorityLow
	t := &Task{Priority: priority}
	_ = t
}
