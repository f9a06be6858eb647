package evidence

import (
	"fmt"
	"time"

	"github.com/okian/gavel/internal/domain/model"
)

// maxTimestampSkew is how far into the future a bundle timestamp may
// drift before validation rejects it.
const maxTimestampSkew = time.Hour

// Validate checks presence of the five required fields and the basic
// structural rules of a sealed bundle. A bundle is only usable
// downstream if Validate and VerifyIntegrity both pass.
func Validate(b model.EvidenceBundle) error {
	return validateAt(b, time.Now())
}

func validateAt(b model.EvidenceBundle, now time.Time) error {
	switch {
	case b.InputLog.InputID == "" || b.InputLog.ContentHash == "":
		return fmt.Errorf("%w: input log needs an id and content", ErrIncompleteBundle)
	case len(b.ProcessTrace.Stages) == 0:
		return fmt.Errorf("%w: process trace needs at least one stage", ErrIncompleteBundle)
	case b.ProcessTrace.Decision == "":
		return fmt.Errorf("%w: process trace needs a decision", ErrIncompleteBundle)
	case b.OutputHash == "":
		return fmt.Errorf("%w: output hash missing", ErrIncompleteBundle)
	case b.Timestamp.IsZero():
		return fmt.Errorf("%w: timestamp missing", ErrIncompleteBundle)
	case b.ValidatorSig == "":
		return fmt.Errorf("%w: validator signature missing", ErrIncompleteBundle)
	case b.Timestamp.After(now.Add(maxTimestampSkew)):
		return ErrFutureTimestamp
	}
	return nil
}

// VerifyIntegrity recomputes the integrity hash from the other fields
// and compares it to the sealed value.
func VerifyIntegrity(b model.EvidenceBundle) bool {
	return b.IntegrityHash == IntegrityHash(b)
}
