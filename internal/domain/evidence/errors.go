package evidence

import "errors"

// Sentinel kinds for bundle construction and validation. Construction
// errors are programmer errors: callers abort the batch rather than
// recovering locally.
var (
	ErrInputLogMissing     = errors.New("INPUT_LOG missing")
	ErrProcessTraceMissing = errors.New("PROCESS_TRACE missing")
	ErrInputRecorded       = errors.New("input log already recorded")
	ErrCompleted           = errors.New("process trace already completed")
	ErrSealed              = errors.New("bundle already sealed")
	ErrIncompleteBundle    = errors.New("incomplete evidence bundle")
	ErrFutureTimestamp     = errors.New("bundle timestamp too far in the future")
)
