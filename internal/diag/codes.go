package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Ownership analysis (1000-1999)
	OwnInfo              Code = 1000
	OwnDuplicateDecl     Code = 1001 // Two declarations share a name
	OwnUnknownType       Code = 1002 // Owns-list entry names an undeclared type
	OwnUnannotated       Code = 1003 // Stored member has no ownership annotation
	OwnUnexpectedRef     Code = 1004 // Stored member not covered by the owner's owns-list
	OwnDisjoint          Code = 1005 // Stored member has no ownership relation to the owner
	OwnRetainCycle       Code = 1006 // Mutual-ownership cycle only partially declared
	OwnValueChainTooDeep Code = 1007 // Value-type owns-chain exceeds the flattening depth

	// Document loading (4000-4999)
	DocInfo Code = 4000
)

var codeDescription = map[Code]string{
	UnknownCode:          "Unknown diagnostic",
	OwnInfo:              "Ownership info",
	OwnDuplicateDecl:     "Duplicate type declaration",
	OwnUnknownType:       "Owns-list names an unknown type",
	OwnUnannotated:       "Stored member is unannotated",
	OwnUnexpectedRef:     "Stored member not covered by owns-list",
	OwnDisjoint:          "Stored member has no ownership relation to owner",
	OwnRetainCycle:       "Retain cycle is only partially declared",
	OwnValueChainTooDeep: "Value-type owns-chain is too deep",
	DocInfo:              "Document info",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("OWN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("DOC%04d", ic)
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
