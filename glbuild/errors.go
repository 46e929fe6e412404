package glbuild

import "strconv"

// ShaderStage identifies the step of program creation that failed.
type ShaderStage uint8

const (
	StageVertex ShaderStage = iota + 1
	StageFragment
	StageLink
)

func (s ShaderStage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	case StageLink:
		return "link"
	}
	return "ShaderStage(" + strconv.Itoa(int(s)) + ")"
}

// CompileError is returned when the graphics runtime rejects a synthesized program.
// Synthesis is deterministic so retrying with the same root count fails identically.
type CompileError struct {
	Stage ShaderStage
	// Log is the compiler or linker info log.
	Log string
	// Source is the rejected source. Empty for link errors.
	Source string
}

func (e *CompileError) Error() string {
	if e.Stage == StageLink {
		return "glbuild: program link failed: " + e.Log
	}
	return "glbuild: " + e.Stage.String() + " shader compilation failed: " + e.Log
}
