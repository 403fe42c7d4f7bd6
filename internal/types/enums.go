package types

type AttributeUse string

const (
	AttributeUseOptional AttributeUse = "optional"
	AttributeUseRequired AttributeUse = "required"
)

type GroupKind string

const (
	GroupKindSequence GroupKind = "sequence"
	GroupKindChoice   GroupKind = "choice"
)

type ResolutionOutcome string

const (
	// ResolutionResolved means the full content model was computed.
	ResolutionResolved ResolutionOutcome = "resolved"

	// ResolutionTruncated means a depth cap or reference cycle cut the
	// resolution short and the content model may be partial.
	ResolutionTruncated ResolutionOutcome = "truncated"
)
