package ast

// NodeID indexes into a Tree's arena. The zero value, NoNodeID, never
// names a real node, matching the "may be missing" children spec §4.3
// and §4.11 require the lowerer to tolerate.
type NodeID uint32

const NoNodeID NodeID = 0

func (id NodeID) IsValid() bool { return id != NoNodeID }
