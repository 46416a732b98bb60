package schema

import "errors"

var (
	// ErrInvalidDate is returned when a date string matches none of the accepted layouts.
	ErrInvalidDate = errors.New("invalid date")

	// ErrUnknownRangeType is returned for a range type outside ValidRangeTypes.
	ErrUnknownRangeType = errors.New("unknown range type")

	// ErrInvalidPivot is returned when a pivot label does not parse for its range type.
	ErrInvalidPivot = errors.New("invalid pivot label")

	// ErrUnknownKind is returned for a schedule kind outside ValidScheduleKinds.
	ErrUnknownKind = errors.New("unknown schedule kind")
)
