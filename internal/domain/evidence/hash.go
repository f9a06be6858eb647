package evidence

import (
	"fmt"
	"strings"
	"time"

	"github.com/okian/gavel/internal/domain/model"
)

// Rolling-hash parameters (djb2-style). These hashes give internal
// consistency checking only; swap in a cryptographic digest plus an
// HMAC at this boundary if adversarial tamper-resistance is ever
// required.
const (
	hashSeed       uint64 = 5381
	hashMultiplier uint64 = 33
	hashHexWidth          = 16

	// fieldSeparator keeps multi-part hashes positional: "ab"+"c" and
	// "a"+"bc" must not collide.
	fieldSeparator = '\x1f'

	maskKeep = 3
)

// rollingHash folds parts into a fixed-width hex digest.
func rollingHash(parts ...string) string {
	h := hashSeed
	for _, part := range parts {
		for _, r := range part {
			h = h*hashMultiplier + uint64(r)
		}
		h = h*hashMultiplier + fieldSeparator
	}
	return fmt.Sprintf("%0*x", hashHexWidth, h)
}

// PositionalHash stores content as a fixed-width positional hash so raw
// text never appears in an audit record.
func PositionalHash(content string) string {
	return rollingHash(content)
}

// MaskIdentifier keeps the first and last three characters of an
// identifier and masks the middle. Short identifiers are fully masked.
func MaskIdentifier(id string) string {
	if id == "" {
		return ""
	}
	if len(id) <= maskKeep*2 {
		return strings.Repeat("*", len(id))
	}
	return id[:maskKeep] + "***" + id[len(id)-maskKeep:]
}

// outputHash digests the input log and the process trace.
func outputHash(in model.InputLog, trace model.ProcessTrace) string {
	parts := []string{in.Source, in.InputID, in.Kind, in.ContentHash, in.Submitter}
	for _, stage := range trace.Stages {
		parts = append(parts, stage.Name, stage.Result)
	}
	parts = append(parts, trace.Decision)
	parts = append(parts, trace.RulesApplied...)
	return rollingHash(parts...)
}

// validatorSig digests the input id, the seal timestamp and the system
// tag.
func validatorSig(inputID string, ts time.Time, systemTag string) string {
	return rollingHash(inputID, ts.UTC().Format(time.RFC3339Nano), systemTag)
}

// IntegrityHash digests every other bundle field. Recomputing it over a
// sealed bundle and comparing is the integrity check.
func IntegrityHash(b model.EvidenceBundle) string {
	parts := []string{
		b.InputLog.Source, b.InputLog.InputID, b.InputLog.Kind,
		b.InputLog.ContentHash, b.InputLog.Submitter,
	}
	for _, stage := range b.ProcessTrace.Stages {
		parts = append(parts, stage.Name, stage.Result)
	}
	parts = append(parts, b.ProcessTrace.Decision)
	parts = append(parts, b.ProcessTrace.RulesApplied...)
	parts = append(parts,
		b.OutputHash,
		b.Timestamp.UTC().Format(time.RFC3339Nano),
		b.ValidatorSig,
	)
	return rollingHash(parts...)
}
