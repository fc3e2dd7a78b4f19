package corpus

// Role is a coarse functional grouping of classes. The role partition is a
// fixed hand-specified table used only by the coarsened spectral-gap metric.
type Role string

const (
	RoleEnergy           Role = "energy"
	RoleFlowHazard       Role = "flow-hazard"
	RoleFlowSafe         Role = "flow-safe"
	RoleControl          Role = "control"
	RoleFrequentOperator Role = "frequent-operator"
	RoleAuxiliary        Role = "auxiliary"
)

// roleOrder fixes the matrix row/column order for the macro-state chain.
var roleOrder = []Role{
	RoleEnergy,
	RoleFlowHazard,
	RoleFlowSafe,
	RoleControl,
	RoleFrequentOperator,
	RoleAuxiliary,
}

// Partition maps class ids onto roles. Immutable after construction;
// unmapped classes fall into the auxiliary bucket.
type Partition struct {
	byClass map[ClassID]Role
}

// NewPartition builds a partition from an explicit class-to-role table.
func NewPartition(table map[ClassID]Role) *Partition {
	byClass := make(map[ClassID]Role, len(table))
	for class, role := range table {
		byClass[class] = role
	}
	return &Partition{byClass: byClass}
}

// RoleOf returns the role for a class, defaulting to auxiliary.
func (p *Partition) RoleOf(class ClassID) Role {
	if role, ok := p.byClass[class]; ok {
		return role
	}
	return RoleAuxiliary
}

// Roles returns all roles in fixed matrix order.
func (p *Partition) Roles() []Role {
	out := make([]Role, len(roleOrder))
	copy(out, roleOrder)
	return out
}

// Index returns the matrix index of a role, or -1 for an unknown role.
func (p *Partition) Index(role Role) int {
	for i, r := range roleOrder {
		if r == role {
			return i
		}
	}
	return -1
}

// Size returns the number of macro-states.
func (p *Partition) Size() int {
	return len(roleOrder)
}

// DefaultPartition returns the hand-specified role table for the 49-class
// taxonomy used by the transcription classifier.
func DefaultPartition() *Partition {
	table := map[ClassID]Role{}
	assign := func(role Role, classes ...ClassID) {
		for _, c := range classes {
			table[c] = role
		}
	}
	assign(RoleEnergy, 1, 2, 8, 14, 21, 28, 35, 42)
	assign(RoleFlowHazard, 3, 9, 15, 22, 29, 36, 43, 47)
	assign(RoleFlowSafe, 4, 10, 16, 23, 30, 37, 44, 48)
	assign(RoleControl, 5, 11, 17, 24, 31, 38, 45)
	assign(RoleFrequentOperator, 6, 12, 18, 25, 32, 39, 46, 49)
	assign(RoleAuxiliary, 7, 13, 19, 20, 26, 27, 33, 34, 40, 41)
	return NewPartition(table)
}
