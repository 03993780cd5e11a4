package diag

import "fmt"

type Code uint16

const (
	UnknownCode Code = 0

	// Semantic / borrow-check codes.
	SemaInfo                 Code = 3000
	SemaError                Code = 3001
	SemaBorrowConflict       Code = 3018
	SemaBorrowMutation       Code = 3019
	SemaBorrowMove           Code = 3020
	SemaBorrowImmutable      Code = 3022
	SemaBorrowNonAddressable Code = 3023
	SemaBorrowDropInvalid    Code = 3024
	SemaUseAfterMove         Code = 3130

	// I/O errors.
	IOLoadFileError Code = 4001

	// Pipeline / project-level errors.
	ProjInfo             Code = 5000
	ProjDuplicateModule  Code = 5001
	ProjMissingModule    Code = 5002
	ProjDependencyFailed Code = 5007

	// Observability.
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:              "Unknown error",
	SemaInfo:                 "Semantic information",
	SemaError:                "Semantic error",
	SemaBorrowConflict:       "Borrow conflict",
	SemaBorrowMutation:       "Mutation while borrowed",
	SemaBorrowMove:           "Move while borrowed",
	SemaBorrowImmutable:      "Cannot take mutable borrow of immutable value",
	SemaBorrowNonAddressable: "Expression is not addressable",
	SemaBorrowDropInvalid:    "Drop target has no active borrow",
	SemaUseAfterMove:         "Use of moved value",
	IOLoadFileError:          "I/O load file error",
	ProjInfo:                 "Project information",
	ProjDuplicateModule:      "Duplicate module definition",
	ProjMissingModule:        "Missing module",
	ProjDependencyFailed:     "Dependency module has errors",
	ObsInfo:                  "Observability information",
	ObsTimings:               "Pipeline timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
