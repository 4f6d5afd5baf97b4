package ir

// ValueID names the result of an instruction or a function parameter
// within one function. Values are never shared across functions.
type ValueID uint32

// NoValue marks the absence of a destination (e.g. a store or a call to
// a void function).
const NoValue ValueID = 0

// BlockID names a basic block within one function.
type BlockID uint32

// FuncID names a function within a Module.
type FuncID uint32

// GlobalID names a global variable within a Module.
type GlobalID uint32
