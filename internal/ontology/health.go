package ontology

// healthConcepts is the closed vocabulary of health concepts.
var healthConcepts = []string{
	"hydration", "fatigue", "energy", "sleep", "exercise",
	"nutrition", "stress", "mood", "heart_health", "weight",
	"blood_pressure", "recovery", "endurance", "focus",
	"immune_system", "inflammation", "mental_clarity",
}

// healthEdges lists the directed influence relations. Order matters:
// successor and predecessor lists preserve it.
var healthEdges = []Edge{
	{"hydration", "fatigue"},
	{"hydration", "energy"},
	{"hydration", "focus"},
	{"sleep", "energy"},
	{"sleep", "mood"},
	{"sleep", "recovery"},
	{"sleep", "immune_system"},
	{"exercise", "energy"},
	{"exercise", "mood"},
	{"exercise", "heart_health"},
	{"exercise", "sleep"},
	{"nutrition", "energy"},
	{"nutrition", "immune_system"},
	{"nutrition", "weight"},
	{"stress", "sleep"},
	{"stress", "mood"},
	{"stress", "heart_health"},
	{"weight", "heart_health"},
	{"weight", "blood_pressure"},
	{"recovery", "endurance"},
	{"recovery", "energy"},
	{"inflammation", "recovery"},
	{"hydration", "mental_clarity"},
	{"exercise", "stress"},
	{"sleep", "mental_clarity"},
}

// NewHealthGraph builds the fixed health concept graph. The graph is
// identical on every call and never mutated after construction.
func NewHealthGraph() *Graph {
	g, err := New(healthConcepts, healthEdges)
	if err != nil {
		// The vocabulary and edge list are compile-time constants;
		// a construction failure is a programming error.
		panic(err)
	}
	return g
}
