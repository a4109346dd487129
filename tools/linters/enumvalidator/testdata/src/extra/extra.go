package extra

type Visibility string

const VisibilityPublic Visibility = "public"

type Board struct {
	Visibility Visibility
}

func configured() {
	b := &Board{}
	b.Visibility = "private" // want "enum field Visibility assigned string literal"
	b.Visibility = VisibilityPublic
}
